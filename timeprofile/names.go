package timeprofile

import "strings"

// ShortName trims a package-qualified operation name to its Type.Operation
// (or bare function) form: everything up to the last path separator goes,
// then the package identifier before the first dot.
func ShortName(name string) string {
	if i := strings.LastIndex(name, "/"); i >= 0 {
		name = name[i+1:]
	}

	if i := strings.Index(name, "."); i >= 0 {
		name = name[i+1:]
	}

	return name
}
