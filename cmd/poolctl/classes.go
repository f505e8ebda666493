package main

import (
	"fmt"
	"strconv"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/joshuapare/poolkit/pool/registry"
)

func init() {
	rootCmd.AddCommand(newClassesCmd())
}

func newClassesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "classes <size>...",
		Short: "Show the size class serving each request size",
		Long: `The classes command shows, for each request size, the size class that
serves it, the block count of that class's pool under --budget, and whether
the request is pooled or sent straight to the Go heap.

Example:
  poolctl classes 1 5 9 100
  poolctl classes 70000 --budget 65536
  poolctl classes 24 --json`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runClasses(args)
		},
	}
	return cmd
}

// ClassRow describes how one request size is served.
type ClassRow struct {
	Request   int  `json:"request"`
	Key       int  `json:"key"`
	ClassSize int  `json:"class_size"`
	Blocks    int  `json:"blocks"`
	Pooled    bool `json:"pooled"`
}

func runClasses(args []string) error {
	if budget <= 0 {
		return fmt.Errorf("budget must be positive, got %d", budget)
	}

	rows := make([]ClassRow, 0, len(args))
	for _, arg := range args {
		n, err := strconv.Atoi(arg)
		if err != nil {
			return fmt.Errorf("invalid size %q: %w", arg, err)
		}
		if n <= 0 || n > 1<<registry.MaxClassKey {
			return fmt.Errorf("size %d out of range [1, %d]", n, 1<<registry.MaxClassKey)
		}
		rows = append(rows, classRow(n))
	}

	if jsonOut {
		return printJSON(rows)
	}

	w := tabwriter.NewWriter(infoWriter(), 0, 0, 2, ' ', 0)
	printer.Fprintf(w, "REQUEST\tKEY\tCLASS\tBLOCKS\tSERVED BY\n")
	for _, r := range rows {
		servedBy := "pool"
		blocks := printer.Sprintf("%d", r.Blocks)
		if !r.Pooled {
			servedBy = "heap"
			blocks = "-"
		}
		printer.Fprintf(w, "%d\t%d\t%d\t%s\t%s\n", r.Request, r.Key, r.ClassSize, blocks, servedBy)
	}
	return w.Flush()
}

func classRow(n int) ClassRow {
	key, size := registry.ClassOf(n)
	row := ClassRow{Request: n, Key: key, ClassSize: size, Pooled: n <= budget}
	if row.Pooled {
		row.Blocks = registry.Capacity(budget, size)
	}
	return row
}
