package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

var syncCmd = &cobra.Command{
	Use:   "sync",
	Short: "Scan the vault and sync it once",
	Long: `Walks the whole vault, queues every identifiable note, and drains
the queue immediately. Use this for the first sync or after changes
made while the watcher was not running.`,
	RunE: runSync,
}

func init() {
	rootCmd.AddCommand(syncCmd)
}

func runSync(cmd *cobra.Command, _ []string) error {
	store, err := getSettingsStore()
	if err != nil {
		return fmt.Errorf("opening settings store: %w", err)
	}
	settings, err := store.Load()
	if err != nil {
		return fmt.Errorf("loading settings: %w", err)
	}

	ctx := cmd.Context()

	stack, err := buildStack(ctx, settings)
	if err != nil {
		return err
	}
	defer stack.Close()

	cmd.Printf("Scanning vault %s...\n", settings.VaultPath)
	if err := stack.source.Scan(ctx, stack.engine.Enqueue); err != nil {
		return fmt.Errorf("scanning vault: %w", err)
	}

	pending := stack.engine.Pending()
	if pending == 0 {
		cmd.Println("Nothing to sync.")
		return nil
	}

	cmd.Printf("Syncing %d notes...\n", pending)
	if err := stack.engine.Drain(ctx); err != nil {
		return fmt.Errorf("sync failed: %w", err)
	}

	cmd.Println("Sync complete.")
	return nil
}
