package cli

import (
	"context"
	"errors"
	"fmt"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/notesync-cli/internal/core/domain"
	"github.com/custodia-labs/notesync-cli/internal/logger"
)

var watchNoScanFlag bool

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Watch the vault and sync continuously",
	Long: `Performs a full scan, then watches the vault for changes. Edits are
coalesced per note and synced after a quiet period; rapid saves of the
same note produce a single sync. Stop with Ctrl-C; pending changes are
drained before exit.`,
	RunE: runWatch,
}

func init() {
	watchCmd.Flags().BoolVar(&watchNoScanFlag, "no-scan", false,
		"skip the initial full scan")
	rootCmd.AddCommand(watchCmd)
}

func runWatch(cmd *cobra.Command, _ []string) error {
	store, err := getSettingsStore()
	if err != nil {
		return fmt.Errorf("opening settings store: %w", err)
	}
	settings, err := store.Load()
	if err != nil {
		return fmt.Errorf("loading settings: %w", err)
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	stack, err := buildStack(ctx, settings)
	if err != nil {
		return err
	}
	defer stack.Close()

	if !watchNoScanFlag {
		cmd.Printf("Scanning vault %s...\n", settings.VaultPath)
		if err := stack.source.Scan(ctx, stack.engine.Enqueue); err != nil {
			return fmt.Errorf("scanning vault: %w", err)
		}
		if pending := stack.engine.Pending(); pending > 0 {
			cmd.Printf("Syncing %d notes...\n", pending)
			if err := stack.engine.Drain(ctx); err != nil {
				return fmt.Errorf("initial sync failed: %w", err)
			}
		}
	}

	cmd.Printf("Watching %s (debounce %s). Ctrl-C to stop.\n",
		settings.VaultPath, settings.DebounceDelay())

	err = stack.source.Watch(ctx, stack.engine.Enqueue)
	if err != nil && !errors.Is(err, context.Canceled) {
		return fmt.Errorf("watching vault: %w", err)
	}

	// Drain whatever the debounce timer had not flushed yet
	if stack.engine.Pending() > 0 {
		cmd.Printf("\nSyncing %d pending notes before exit...\n", stack.engine.Pending())
		if err := stack.engine.Drain(context.Background()); err != nil &&
			!errors.Is(err, domain.ErrSyncInProgress) {
			logger.Warn("final drain failed: %v", err)
		}
	}

	cmd.Println("Stopped.")
	return nil
}
