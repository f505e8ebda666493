package main

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/joshuapare/poolkit/pkg/mem"
	"github.com/joshuapare/poolkit/pkg/types"
)

var (
	// Global flags
	verbose bool
	quiet   bool
	jsonOut bool
	budget  int
)

var rootCmd = &cobra.Command{
	Use:   "poolctl",
	Short: "Exercise and inspect the poolkit memory pools",
	Long: `poolctl drives the poolkit allocators from the command line. It runs
alloc/free churn benchmarks against the Go heap, shows how request sizes map
to size classes, and simulates variable-length workloads on the block arena.`,
	Version: "0.1.0",
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		configureLogging()
	},
}

func init() {
	// Global flags
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose output")
	rootCmd.PersistentFlags().
		BoolVarP(&quiet, "quiet", "q", false, "Suppress all output except errors")
	rootCmd.PersistentFlags().BoolVar(&jsonOut, "json", false, "Output in JSON format")
	rootCmd.PersistentFlags().
		IntVar(&budget, "budget", types.DefaultBudget, "Pooling threshold and per-class reservation in bytes")
}

func execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// configureLogging routes allocator diagnostics to stderr: debug tracing
// with --verbose, nothing with --quiet.
func configureLogging() {
	switch {
	case quiet:
		mem.SetLogger(slog.New(slog.NewTextHandler(io.Discard, nil)))
	case verbose:
		mem.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug})))
	default:
		mem.SetLogger(nil)
	}
}

// Helper functions for output

// printer groups digits in human-facing numbers.
var printer = message.NewPrinter(language.English)

// printInfo prints an info message if not in quiet mode
func printInfo(format string, args ...interface{}) {
	if !quiet {
		printer.Fprintf(os.Stdout, format, args...)
	}
}

// printVerbose prints a verbose message if verbose mode is enabled
func printVerbose(format string, args ...interface{}) {
	if verbose && !quiet {
		printer.Fprintf(os.Stdout, format, args...)
	}
}

// printJSON outputs data as JSON
func printJSON(v interface{}) error {
	encoder := json.NewEncoder(os.Stdout)
	encoder.SetIndent("", "  ")
	return encoder.Encode(v)
}

// infoWriter is where multi-line reports go: stdout, or nowhere when quiet.
func infoWriter() io.Writer {
	if quiet {
		return io.Discard
	}
	return os.Stdout
}

// baseConfig returns the manager config selected by the global flags.
func baseConfig() types.Config {
	cfg := types.DefaultConfig()
	cfg.Budget = budget
	return cfg
}
