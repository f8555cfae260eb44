// Package main provides the CLI entry point for sheetcalc.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"

	"github.com/spf13/cobra"
)

var (
	storeDir string
	owner    string
	pretty   bool
	verbose  bool

	rows         int
	cols         int
	tableRows    int
	tableCols    int
	passes       int
	importSheet  string
	exportSheet  string
	showDisplay  bool
	bold         bool
	italic       bool
	align        string
	background   string
	textColor    string
	fontSize     int
	numberFormat string
	borders      string
	borderSpec   string
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "sheetcalc",
		Short: "Edit board spreadsheets from the command line",
		Long: `sheetcalc drives the board spreadsheet engine against a directory of
JSON documents: edit cells, evaluate formulas, format ranges, move tables
and exchange grids with xlsx files.`,
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			level := slog.LevelInfo
			if verbose {
				level = slog.LevelDebug
			}
			slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))
		},
	}

	rootCmd.PersistentFlags().StringVar(&storeDir, "store", "boards", "Directory holding board documents")
	rootCmd.PersistentFlags().StringVar(&owner, "owner", defaultOwner(), "Caller identity used for board ownership")
	rootCmd.PersistentFlags().BoolVar(&pretty, "pretty", false, "Pretty-print JSON output")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")

	rootCmd.AddCommand(
		newCmd(),
		listCmd(),
		deleteCmd(),
		showCmd(),
		setCmd(),
		evalCmd(),
		refsCmd(),
		recomputeCmd(),
		tablesCmd(),
		insertTableCmd(),
		moveTableCmd(),
		pasteCmd(),
		clearCmd(),
		formatCmd(),
		importCmd(),
		exportCmd(),
	)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		stop()
		os.Exit(1)
	}
}

func defaultOwner() string {
	if u := os.Getenv("USER"); u != "" {
		return u
	}
	return "local"
}

func printJSON(data []byte, err error) error {
	if err != nil {
		return fmt.Errorf("serialization failed: %w", err)
	}
	fmt.Println(string(data))
	return nil
}
