package timetable

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// Format selects the report output format.
type Format string

const (
	// FormatTable renders an aligned plain-text table.
	FormatTable Format = "table"
	// FormatYAML emits the YAML [Report] document.
	FormatYAML Format = "yaml"
	// FormatJSON emits the JSON [Report] document.
	FormatJSON Format = "json"
)

// ParseFormat parses a format name as accepted on the command line.
func ParseFormat(s string) (Format, error) {
	switch Format(strings.ToLower(s)) {
	case FormatTable:
		return FormatTable, nil
	case FormatYAML:
		return FormatYAML, nil
	case FormatJSON:
		return FormatJSON, nil
	}

	return "", fmt.Errorf("%w: %q", ErrUnknownFormat, s)
}

// FormatStrings returns all format names, for flag help and completions.
func FormatStrings() []string {
	return []string{string(FormatTable), string(FormatYAML), string(FormatJSON)}
}

// Flags holds CLI flag names for report configuration, allowing callers to
// customize flag names while keeping sensible defaults via [NewConfig].
type Flags struct {
	OrderBy   string
	Reverse   string
	FullNames string
	Format    string
}

// NewConfig creates a new [Config] embedding these flag names.
func (f Flags) NewConfig() *Config {
	return &Config{
		Flags: f,
	}
}

// Config holds CLI flag values for report configuration.
//
// Create instances with [NewConfig] and register CLI flags with
// [Config.RegisterFlags].
type Config struct {
	OrderBy   string
	Format    string
	Flags     Flags
	Reverse   bool
	FullNames bool
}

// NewConfig returns a new [Config] with default flag names.
// Use [Config.RegisterFlags] to add CLI flags, or set values directly.
func NewConfig() *Config {
	f := Flags{
		OrderBy:   "order-by",
		Reverse:   "reverse",
		FullNames: "full-names",
		Format:    "format",
	}

	return f.NewConfig()
}

// RegisterFlags adds report flags to the given [*pflag.FlagSet].
func (c *Config) RegisterFlags(flags *pflag.FlagSet) {
	flags.StringVar(&c.OrderBy, c.Flags.OrderBy, OrderByName.String(),
		fmt.Sprintf("report ordering, one of: %s", strings.Join(OrderStrings(), ", ")))
	flags.BoolVar(&c.Reverse, c.Flags.Reverse, false,
		"reverse the report ordering")
	flags.BoolVar(&c.FullNames, c.Flags.FullNames, false,
		"display package-qualified operation names")
	flags.StringVar(&c.Format, c.Flags.Format, string(FormatTable),
		fmt.Sprintf("report format, one of: %s", strings.Join(FormatStrings(), ", ")))
}

// RegisterCompletions registers shell completions for report flags on cmd.
func (c *Config) RegisterCompletions(cmd *cobra.Command) error {
	err := cmd.RegisterFlagCompletionFunc(c.Flags.OrderBy,
		cobra.FixedCompletions(OrderStrings(), cobra.ShellCompDirectiveNoFileComp))
	if err != nil {
		return fmt.Errorf("registering %s completion: %w", c.Flags.OrderBy, err)
	}

	err = cmd.RegisterFlagCompletionFunc(c.Flags.Format,
		cobra.FixedCompletions(FormatStrings(), cobra.ShellCompDirectiveNoFileComp))
	if err != nil {
		return fmt.Errorf("registering %s completion: %w", c.Flags.Format, err)
	}

	return nil
}

// Options returns the [Rows] options selected by the config.
func (c *Config) Options() []Option {
	var opts []Option
	if c.FullNames {
		opts = append(opts, WithFullNames())
	}

	return opts
}
