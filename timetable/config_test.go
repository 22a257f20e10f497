package timetable_test

import (
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go.jacobcolvin.com/timeprofiles/timetable"
)

func TestConfig_RegisterFlags(t *testing.T) {
	t.Parallel()

	cfg := timetable.NewConfig()
	flags := pflag.NewFlagSet("test", pflag.ContinueOnError)

	cfg.RegisterFlags(flags)

	for _, name := range []string{"order-by", "reverse", "full-names", "format"} {
		require.NotNil(t, flags.Lookup(name), "flag %s should be registered", name)
	}

	err := flags.Parse([]string{
		"--order-by=bottleneck",
		"--reverse",
		"--full-names",
		"--format=yaml",
	})
	require.NoError(t, err)

	assert.Equal(t, "bottleneck", cfg.OrderBy)
	assert.True(t, cfg.Reverse)
	assert.True(t, cfg.FullNames)
	assert.Equal(t, "yaml", cfg.Format)
}

func TestConfig_Defaults(t *testing.T) {
	t.Parallel()

	cfg := timetable.NewConfig()
	flags := pflag.NewFlagSet("test", pflag.ContinueOnError)

	cfg.RegisterFlags(flags)

	require.NoError(t, flags.Parse(nil))

	assert.Equal(t, "name", cfg.OrderBy)
	assert.False(t, cfg.Reverse)
	assert.False(t, cfg.FullNames)
	assert.Equal(t, "table", cfg.Format)
	assert.Empty(t, cfg.Options())
}

func TestConfig_RegisterCompletions(t *testing.T) {
	t.Parallel()

	cfg := timetable.NewConfig()

	cmd := &cobra.Command{Use: "test"}
	cfg.RegisterFlags(cmd.Flags())

	require.NoError(t, cfg.RegisterCompletions(cmd))

	for flag, want := range map[string][]string{
		"order-by": timetable.OrderStrings(),
		"format":   timetable.FormatStrings(),
	} {
		completionFn, ok := cmd.GetFlagCompletionFunc(flag)
		require.True(t, ok)

		values, directive := completionFn(cmd, nil, "")
		assert.Equal(t, cobra.ShellCompDirectiveNoFileComp, directive)
		assert.Equal(t, want, values)
	}
}

func TestParseFormat(t *testing.T) {
	t.Parallel()

	for _, name := range timetable.FormatStrings() {
		format, err := timetable.ParseFormat(name)
		require.NoError(t, err)
		assert.Equal(t, name, string(format))
	}

	format, err := timetable.ParseFormat("YAML")
	require.NoError(t, err)
	assert.Equal(t, timetable.FormatYAML, format)

	_, err = timetable.ParseFormat("xml")
	require.ErrorIs(t, err, timetable.ErrUnknownFormat)
}
