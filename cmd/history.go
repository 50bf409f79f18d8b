package cmd

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/papapumpkin/conflux/internal/config"
	"github.com/papapumpkin/conflux/internal/history"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List recent count runs",
	RunE:  runHistory,
}

func init() {
	historyCmd.Flags().Int("limit", 20, "maximum runs to list")

	rootCmd.AddCommand(historyCmd)
}

func runHistory(cmd *cobra.Command, args []string) error {
	cfg := config.Load()

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	store, err := history.Open(ctx, cfg.History.Path)
	if err != nil {
		return err
	}
	defer store.Close()

	limit, _ := cmd.Flags().GetInt("limit")
	runs, err := store.Recent(ctx, limit)
	if err != nil {
		return err
	}
	if len(runs) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "no recorded runs")
		return nil
	}

	w := cmd.OutOrStdout()
	fmt.Fprintf(w, "%-4s %-20s %-8s %-8s %-6s %-8s %s\n",
		"ID", "WHEN", "NODES", "CONNS", "SETS", "TOOK", "SOURCE")
	for _, r := range runs {
		fmt.Fprintf(w, "%-4d %-20s %-8d %-8d %-6d %-8s %s\n",
			r.ID,
			r.CreatedAt.Local().Format(time.DateTime),
			r.NodeCount,
			r.ConnectionCount,
			r.SetCount,
			r.Duration.Round(time.Millisecond),
			r.NodesSource)
	}
	return nil
}
