package main

import (
	"fmt"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/iconraster/internal/history"
	"github.com/pdiddy/iconraster/pkg/types"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List or export recorded conversions",
	Long: `History reads the SQLite ledger written when --history (or "history" in the
config file) is set, and lists recorded conversions newest first. Use --export
to dump them as YAML or JSON.`,
	Args: cobra.NoArgs,
	RunE: runHistory,
}

func init() {
	historyCmd.Flags().Int("limit", 50, "maximum number of entries")
	historyCmd.Flags().String("status", "", "filter by status: converted or failed")
	historyCmd.Flags().String("input", "", "filter by input path substring")
	historyCmd.Flags().Int64("run", 0, "only entries from this run id")
	historyCmd.Flags().Bool("last", false, "only entries from the most recent run")
	historyCmd.Flags().String("export", "", "write entries as yaml or json instead of a table")

	rootCmd.AddCommand(historyCmd)
}

func runHistory(cmd *cobra.Command, args []string) error {
	path := viper.GetString("history")
	if path == "" {
		return fmt.Errorf("no history database: pass --history or set history in the config file")
	}

	limit, _ := cmd.Flags().GetInt("limit")
	status, _ := cmd.Flags().GetString("status")
	input, _ := cmd.Flags().GetString("input")
	runID, _ := cmd.Flags().GetInt64("run")
	last, _ := cmd.Flags().GetBool("last")
	export, _ := cmd.Flags().GetString("export")

	switch types.ConversionStatus(status) {
	case "", types.ConversionDone, types.ConversionFailed:
	default:
		return fmt.Errorf("unknown status %q (want converted or failed)", status)
	}

	store, err := history.Open(path)
	if err != nil {
		return err
	}
	defer store.Close()

	ctx := cmd.Context()
	if last {
		runID, err = store.LatestRunID(ctx)
		if err != nil {
			return err
		}
	}

	entries, err := store.List(ctx, history.QueryOptions{
		RunID:  runID,
		Status: types.ConversionStatus(status),
		Input:  input,
		Limit:  limit,
	})
	if err != nil {
		return err
	}

	w := cmd.OutOrStdout()
	if export != "" {
		return history.Export(w, entries, history.Format(export))
	}

	if len(entries) == 0 {
		fmt.Fprintln(w, "no conversions recorded")
		return nil
	}
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "RUN\tSTATUS\tSIZE\tDURATION\tINPUT\tERROR")
	for _, e := range entries {
		fmt.Fprintf(tw, "%d\t%s\t%dx%d\t%s\t%s\t%s\n",
			e.RunID, e.Status, e.Size, e.Size,
			time.Duration(e.DurationMS)*time.Millisecond, e.Input, e.Error)
	}
	return tw.Flush()
}
