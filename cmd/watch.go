package cmd

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/papapumpkin/conflux/internal/config"
	"github.com/papapumpkin/conflux/internal/dataset"
	"github.com/papapumpkin/conflux/internal/telemetry"
)

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Re-count whenever the input files change",
	RunE:  runWatch,
}

func init() {
	addDatasetFlags(watchCmd)
	rootCmd.AddCommand(watchCmd)
}

func runWatch(cmd *cobra.Command, args []string) error {
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

	// Initial count before waiting on changes.
	if err := countOnce(cmd, opts, tel); err != nil {
		return err
	}

	files := []string{opts.nodesFile, opts.connsFile}
	if opts.manifestFile != "" {
		files = []string{opts.manifestFile}
	}
	watcher, err := dataset.NewWatcher(files...)
	if err != nil {
		return fmt.Errorf("creating watcher: %w", err)
	}
	if err := watcher.Start(); err != nil {
		return fmt.Errorf("starting watcher: %w", err)
	}
	defer watcher.Stop()

	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(sigs)

	fmt.Fprintln(os.Stderr, "watching for changes (ctrl-c to stop)")
	for {
		select {
		case change, ok := <-watcher.Changes:
			if !ok {
				return nil
			}
			if err := tel.Emit(telemetry.KindWatchTrigger, map[string]string{"file": change.File}); err != nil {
				return err
			}
			if cfg.Verbose {
				fmt.Fprintf(os.Stderr, "%s changed\n", change.File)
			}
			// A re-count failure (half-written file, bad edit) should not end
			// the watch; report it and wait for the next change.
			if err := countOnce(cmd, opts, tel); err != nil {
				fmt.Fprintf(os.Stderr, "count failed: %v\n", err)
			}
		case <-sigs:
			return nil
		}
	}
}

// countOnce runs a single count over the watched inputs and prints the result.
func countOnce(cmd *cobra.Command, opts countOptions, tel *telemetry.Emitter) error {
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
	fmt.Fprintf(cmd.OutOrStdout(), "%s  %d\n",
		time.Now().Format("15:04:05"), result.SetCount)
	return nil
}
