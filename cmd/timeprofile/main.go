// Command timeprofile runs an instrumented demo workload, a concurrent
// fan-out of jittered operations, and reports the recorded profiles as a
// summary table, a machine-readable report, or an interactive timeline
// chart.
//
// # Usage
//
//	timeprofile [flags]
//
// By default a table and a static timeline are printed. Use --chart for the
// interactive view (zoom, pan, merged-cover toggle), --format=yaml|json for
// machine-readable reports, and --print-schema for the JSON Schema
// describing them.
package main

import (
	"encoding/json"
	"fmt"
	"os"

	tea "charm.land/bubbletea/v2"
	clog "charm.land/log/v2"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"go.jacobcolvin.com/timeprofiles/timechart"
	"go.jacobcolvin.com/timeprofiles/timeprofile"
	"go.jacobcolvin.com/timeprofiles/timetable"
	"go.jacobcolvin.com/timeprofiles/version"
)

type options struct {
	report      *timetable.Config
	logLevel    string
	workers     int
	width       int
	chart       bool
	merged      bool
	printSchema bool
	showVersion bool
}

func main() {
	opts := options{
		report: timetable.NewConfig(),
	}

	rootCmd := &cobra.Command{
		Use:   "timeprofile [flags]",
		Short: "Profile a demo workload and display per-operation timings",
		Long: `timeprofile instruments a demo workload (a concurrent fan-out of jittered
operations), records every call's active interval, and reports per-operation
call counts, average/longest elapsed times, and the merged "bottleneck" time
during which at least one call was active.`,
		SilenceErrors: true,
		SilenceUsage:  true,
		RunE: func(_ *cobra.Command, _ []string) error {
			return run(opts)
		},
	}

	flags := rootCmd.Flags()
	opts.report.RegisterFlags(flags)
	flags.IntVar(&opts.workers, "workers", 5, "concurrent workers in the demo fan-out")
	flags.IntVar(&opts.width, "width", 0, "chart width in columns (0 = auto-detect)")
	flags.BoolVar(&opts.chart, "chart", false, "open the interactive timeline chart")
	flags.BoolVar(&opts.merged, "merged", false, "plot merged covers instead of raw calls")
	flags.BoolVar(&opts.printSchema, "print-schema", false, "print the report JSON Schema and exit")
	flags.BoolVar(&opts.showVersion, "version", false, "print version information and exit")
	flags.StringVar(&opts.logLevel, "log-level", "info", "log level (debug, info, warn, error)")

	completionErr := opts.report.RegisterCompletions(rootCmd)
	if completionErr != nil {
		fmt.Fprintf(os.Stderr, "register completions: %v\n", completionErr)
	}

	err := rootCmd.Execute()
	if err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(1)
	}
}

func run(opts options) error {
	if opts.showVersion {
		fmt.Println(version.String())

		return nil
	}

	if opts.printSchema {
		return printSchema()
	}

	order, err := timetable.ParseOrder(opts.report.OrderBy)
	if err != nil {
		return err
	}

	format, err := timetable.ParseFormat(opts.report.Format)
	if err != nil {
		return err
	}

	logger := clog.NewWithOptions(os.Stderr, clog.Options{ReportTimestamp: true})

	level, err := clog.ParseLevel(opts.logLevel)
	if err != nil {
		return fmt.Errorf("parsing log level: %w", err)
	}

	logger.SetLevel(level)

	profiler := timeprofile.New()

	d := newDemo()

	err = profiler.WrapAll(d)
	if err != nil {
		return fmt.Errorf("instrumenting workload: %w", err)
	}

	logger.Info("running workload", "workers", opts.workers)
	d.Run(opts.workers)
	logger.Info("workload complete", "operations", profiler.Len())

	if opts.chart {
		return runChart(profiler, opts)
	}

	rows := timetable.Rows(profiler, opts.report.Options()...)
	timetable.Sort(rows, order, opts.report.Reverse)

	switch format {
	case timetable.FormatYAML:
		return timetable.NewReport(rows).EncodeYAML(os.Stdout)

	case timetable.FormatJSON:
		return timetable.NewReport(rows).EncodeJSON(os.Stdout)

	case timetable.FormatTable:
		fmt.Print(timetable.Render(rows))

		return printStaticChart(profiler, opts)
	}

	return nil
}

// printStaticChart prints the non-interactive timeline below the table.
func printStaticChart(p *timeprofile.Profiler, opts options) error {
	chartOpts := []timechart.Option{
		timechart.WithWidth(barWidth(opts.width)),
	}
	if opts.merged {
		chartOpts = append(chartOpts, timechart.WithMerged())
	}
	if opts.report.Reverse {
		chartOpts = append(chartOpts, timechart.WithReverse())
	}
	if opts.report.FullNames {
		chartOpts = append(chartOpts, timechart.WithFullNames())
	}

	out, err := timechart.Chart(p, chartOpts...)
	if err != nil {
		return fmt.Errorf("rendering chart: %w", err)
	}

	fmt.Println()
	fmt.Print(out)

	return nil
}

// runChart opens the interactive bubbletea timeline view.
func runChart(p *timeprofile.Profiler, opts options) error {
	prog := tea.NewProgram(newChartModel(p, barWidth(opts.width), opts.merged))

	_, err := prog.Run()
	if err != nil {
		return fmt.Errorf("running chart view: %w", err)
	}

	return nil
}

// barWidth resolves the chart bar width: an explicit flag value wins,
// otherwise the terminal width minus the label reserve, otherwise a default.
func barWidth(flagWidth int) int {
	if flagWidth > 0 {
		return flagWidth
	}

	w, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil {
		return 80
	}

	return max(minBarWidth, w-labelReserve)
}

func printSchema() error {
	out, err := json.MarshalIndent(timetable.Schema(), "", "  ")
	if err != nil {
		return fmt.Errorf("encoding schema: %w", err)
	}

	fmt.Println(string(out))

	return nil
}
