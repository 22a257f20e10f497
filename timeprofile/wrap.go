package timeprofile

import (
	"fmt"
	"reflect"
	"runtime"
	"strings"
)

// Ignore is a zero-size marker type. Embedding it in a struct excludes that
// struct, and every composite nested below it, from [Profiler.WrapAll]:
//
//	type Internals struct {
//	    timeprofile.Ignore
//
//	    Helper func()
//	}
type Ignore struct{}

// ignoreTag is the struct tag value that excludes a single field:
// `timeprofile:"ignore"`.
const ignoreTag = "ignore"

var ignoreType = reflect.TypeOf(Ignore{})

// WrapFunc returns a function with fn's exact signature that records one
// interval per invocation under fn's qualified name, then delegates to fn.
// Results and panics propagate unchanged; the interval is recorded even when
// fn panics.
//
// The name is resolved from fn's code pointer, so method values of the same
// method on different receivers share one profile. Wrapping is idempotent:
// passing a function this profiler already produced returns it unchanged.
//
// WrapFunc panics if fn is not a non-nil function; use the returned value by
// asserting it back to fn's type:
//
//	work = p.WrapFunc(work).(func(int) error)
func (p *Profiler) WrapFunc(fn any) any {
	v := reflect.ValueOf(fn)
	if v.Kind() != reflect.Func || v.IsNil() {
		panic(fmt.Sprintf("timeprofile: WrapFunc on %T, want non-nil func", fn))
	}

	return p.wrap(v, funcName(v)).Interface()
}

// wrap builds the recording wrapper for v, or returns v unchanged when it is
// already a wrapper.
func (p *Profiler) wrap(v reflect.Value, name string) reflect.Value {
	if p.isWrapped(v) {
		return v
	}

	variadic := v.Type().IsVariadic()

	w := reflect.MakeFunc(v.Type(), func(args []reflect.Value) []reflect.Value {
		start := p.Now()

		// Deferred so the interval is recorded when v.Call panics; the panic
		// then continues to the caller untouched.
		defer func() {
			_ = p.Record(name, start, p.Now())
		}()

		if variadic {
			return v.CallSlice(args)
		}

		return v.Call(args)
	})

	p.mu.Lock()
	p.wrapped[w.Pointer()] = struct{}{}
	p.mu.Unlock()

	return w
}

// isWrapped reports whether v is a wrapper this profiler produced. Every
// [reflect.MakeFunc] value shares one underlying code stub, so a single
// recorded pointer identifies all of them; the check only needs to answer
// "would wrapping this compound the timing overhead".
func (p *Profiler) isWrapped(v reflect.Value) bool {
	p.mu.Lock()
	defer p.mu.Unlock()

	_, ok := p.wrapped[v.Pointer()]

	return ok
}

// WrapAll instruments a composite: every exported func-typed field of the
// struct that composite points to is replaced with its [Profiler.WrapFunc]
// wrapper, keyed by the owning type and field name. Exported struct and
// struct-pointer fields declared in the same package as the root composite
// are recursed into; foreign types are left alone.
//
// Fields tagged `timeprofile:"ignore"` are skipped, and structs embedding
// [Ignore] are skipped entirely, including everything nested below them.
// Applying WrapAll twice does not double-wrap.
func (p *Profiler) WrapAll(composite any) error {
	v := reflect.ValueOf(composite)
	if v.Kind() != reflect.Pointer || v.IsNil() || v.Elem().Kind() != reflect.Struct {
		return fmt.Errorf("%w: got %T", ErrNotStructPointer, composite)
	}

	elem := v.Elem()

	p.wrapStruct(elem, elem.Type().PkgPath())

	return nil
}

// wrapStruct wraps v's func fields and recurses into nested composites owned
// by ownerPkg. v must be addressable.
func (p *Profiler) wrapStruct(v reflect.Value, ownerPkg string) {
	t := v.Type()
	if hasIgnoreMarker(t) {
		return
	}

	for i := range t.NumField() {
		field := t.Field(i)
		if !field.IsExported() || field.Tag.Get("timeprofile") == ignoreTag {
			continue
		}

		fv := v.Field(i)

		switch field.Type.Kind() {
		case reflect.Func:
			if fv.IsNil() {
				continue
			}

			name := fieldName(t, field.Name)
			fv.Set(p.wrap(fv, name))

		case reflect.Struct:
			if field.Type.PkgPath() == ownerPkg {
				p.wrapStruct(fv, ownerPkg)
			}

		case reflect.Pointer:
			if fv.IsNil() || field.Type.Elem().Kind() != reflect.Struct {
				continue
			}

			if field.Type.Elem().PkgPath() == ownerPkg {
				p.wrapStruct(fv.Elem(), ownerPkg)
			}
		}
	}
}

// hasIgnoreMarker reports whether t embeds [Ignore].
func hasIgnoreMarker(t reflect.Type) bool {
	for i := range t.NumField() {
		field := t.Field(i)
		if field.Anonymous && field.Type == ignoreType {
			return true
		}
	}

	return false
}

// funcName resolves v's qualified name from its code pointer. Method values
// carry a "-fm" suffix on their shared per-method stub; trimming it leaves
// one stable name for the method across all receivers.
func funcName(v reflect.Value) string {
	f := runtime.FuncForPC(v.Pointer())
	if f == nil {
		return "unknown"
	}

	return strings.TrimSuffix(f.Name(), "-fm")
}

// fieldName builds the registry key for a wrapped struct field,
// package-qualified like a method name.
func fieldName(t reflect.Type, field string) string {
	if t.PkgPath() == "" {
		return t.Name() + "." + field
	}

	return t.PkgPath() + "." + t.Name() + "." + field
}
