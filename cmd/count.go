package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/papapumpkin/conflux/internal/config"
	"github.com/papapumpkin/conflux/internal/dataset"
	"github.com/papapumpkin/conflux/internal/disjoint"
	"github.com/papapumpkin/conflux/internal/history"
	"github.com/papapumpkin/conflux/internal/telemetry"
)

var countCmd = &cobra.Command{
	Use:   "count",
	Short: "Count the disjoint sets in a node/connection dataset",
	RunE:  runCount,
}

func init() {
	addDatasetFlags(countCmd)
	rootCmd.AddCommand(countCmd)
}

// addDatasetFlags registers the input-selection flags shared by count and
// watch.
func addDatasetFlags(c *cobra.Command) {
	c.Flags().String("nodes", "", "newline-delimited node label file")
	c.Flags().String("connections", "", "connection pair file")
	c.Flags().String("manifest", "", "TOML dataset manifest (replaces --nodes/--connections)")
	c.Flags().Bool("labels", false, "treat connection pairs as labels instead of indices")
	c.Flags().String("delimiter", "", "pair field delimiter (default from config, then \",\")")
	c.Flags().String("telemetry", "", "append JSONL run events to this file")
}

// countOptions is the resolved input selection for one count run.
type countOptions struct {
	nodesFile    string
	connsFile    string
	manifestFile string
	labelPairs   bool
	delimiter    string
}

// countResult summarizes one completed run.
type countResult struct {
	NodeCount       int
	ConnectionCount int
	SetCount        int
	Duration        time.Duration
}

func resolveCountOptions(cmd *cobra.Command, cfg config.Config) (countOptions, error) {
	opts := countOptions{delimiter: cfg.Delimiter}
	opts.nodesFile, _ = cmd.Flags().GetString("nodes")
	opts.connsFile, _ = cmd.Flags().GetString("connections")
	opts.manifestFile, _ = cmd.Flags().GetString("manifest")
	opts.labelPairs, _ = cmd.Flags().GetBool("labels")
	if d, _ := cmd.Flags().GetString("delimiter"); d != "" {
		opts.delimiter = d
	}

	switch {
	case opts.manifestFile != "":
		if opts.nodesFile != "" || opts.connsFile != "" {
			return opts, errors.New("--manifest cannot be combined with --nodes/--connections")
		}
	case opts.nodesFile == "" || opts.connsFile == "":
		return opts, errors.New("either --manifest or both --nodes and --connections are required")
	}
	return opts, nil
}

// runDataset loads the selected inputs and counts their disjoint sets.
func runDataset(opts countOptions, tel *telemetry.Emitter) (countResult, error) {
	start := time.Now()

	if opts.manifestFile != "" {
		m, err := dataset.LoadManifest(opts.manifestFile)
		if err != nil {
			return countResult{}, err
		}
		return countManifest(m, start, tel)
	}

	labels, err := dataset.LoadNodes(opts.nodesFile)
	if err != nil {
		return countResult{}, err
	}
	if err := tel.Emit(telemetry.KindNodesLoaded, map[string]int{"count": len(labels)}); err != nil {
		return countResult{}, err
	}

	if opts.labelPairs {
		pairs, err := dataset.LoadLabelPairs(opts.connsFile, opts.delimiter)
		if err != nil {
			return countResult{}, err
		}
		return countNamed(labels, pairs, start, tel)
	}

	conns, err := dataset.LoadIndexPairs(opts.connsFile, opts.delimiter)
	if err != nil {
		return countResult{}, err
	}

	client := disjoint.NewBulk()
	client.AddNodesBulk(labels)
	if err := client.ConnectNodesBulk(conns); err != nil {
		return countResult{}, err
	}
	if err := tel.Emit(telemetry.KindConnectionsApplied, map[string]int{"count": len(conns)}); err != nil {
		return countResult{}, err
	}

	return countResult{
		NodeCount:       client.NodeCount(),
		ConnectionCount: len(conns),
		SetCount:        client.DisjointSetCount(),
		Duration:        time.Since(start),
	}, nil
}

func countNamed(labels []string, pairs []dataset.LabelPair, start time.Time, tel *telemetry.Emitter) (countResult, error) {
	client := disjoint.NewNamed()
	for _, label := range labels {
		client.AddNode(label)
	}
	for _, pair := range pairs {
		if err := client.ConnectNodes(pair.A, pair.B); err != nil {
			return countResult{}, err
		}
	}
	if err := tel.Emit(telemetry.KindConnectionsApplied, map[string]int{"count": len(pairs)}); err != nil {
		return countResult{}, err
	}
	return countResult{
		NodeCount:       client.NodeCount(),
		ConnectionCount: len(pairs),
		SetCount:        client.DisjointSetCount(),
		Duration:        time.Since(start),
	}, nil
}

func countManifest(m *dataset.Manifest, start time.Time, tel *telemetry.Emitter) (countResult, error) {
	if err := tel.Emit(telemetry.KindNodesLoaded, map[string]int{"count": len(m.Nodes)}); err != nil {
		return countResult{}, err
	}
	return countNamed(m.Nodes, m.Pairs(), start, tel)
}

func runCount(cmd *cobra.Command, args []string) error {
	cfg := config.Load()
	if v, _ := cmd.Flags().GetBool("verbose"); v {
		cfg.Verbose = true
	}

	opts, err := resolveCountOptions(cmd, cfg)
	if err != nil {
		return err
	}

	tel, err := openTelemetry(cmd, cfg)
	if err != nil {
		return err
	}
	defer tel.Close()

	if err := tel.Emit(telemetry.KindRunStart, map[string]string{
		"nodes":       opts.nodesFile,
		"connections": opts.connsFile,
		"manifest":    opts.manifestFile,
	}); err != nil {
		return err
	}

	result, err := runDataset(opts, tel)
	if err != nil {
		return err
	}

	if err := tel.Emit(telemetry.KindRunDone, map[string]int{"set_count": result.SetCount}); err != nil {
		return err
	}
	if err := recordRun(cmd.Context(), cfg, opts, result); err != nil {
		// History is best-effort; the count already succeeded.
		fmt.Fprintf(os.Stderr, "warning: recording run history: %v\n", err)
	}

	if cfg.Verbose {
		fmt.Fprintf(os.Stderr, "%d nodes, %d connections in %s\n",
			result.NodeCount, result.ConnectionCount, result.Duration.Round(time.Millisecond))
	}
	fmt.Fprintln(cmd.OutOrStdout(), result.SetCount)
	return nil
}

// openTelemetry resolves the telemetry destination from the flag, then the
// config. A nil emitter (telemetry off) is valid everywhere.
func openTelemetry(cmd *cobra.Command, cfg config.Config) (*telemetry.Emitter, error) {
	path, _ := cmd.Flags().GetString("telemetry")
	if path == "" {
		path = cfg.TelemetryPath
	}
	if path == "" {
		return nil, nil
	}
	return telemetry.NewEmitter(path)
}

func recordRun(ctx context.Context, cfg config.Config, opts countOptions, result countResult) error {
	if !cfg.History.Enabled {
		return nil
	}
	if ctx == nil {
		ctx = context.Background()
	}
	store, err := history.Open(ctx, cfg.History.Path)
	if err != nil {
		return err
	}
	defer store.Close()

	nodesSource, connsSource := opts.nodesFile, opts.connsFile
	if opts.manifestFile != "" {
		nodesSource, connsSource = opts.manifestFile, opts.manifestFile
	}
	_, err = store.Record(ctx, history.Run{
		NodesSource:     nodesSource,
		ConnsSource:     connsSource,
		NodeCount:       result.NodeCount,
		ConnectionCount: result.ConnectionCount,
		SetCount:        result.SetCount,
		Duration:        result.Duration,
	})
	return err
}
