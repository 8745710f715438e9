package cli

import (
	"fmt"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/notesync-cli/internal/adapters/driven/storage/sqlite"
	"github.com/custodia-labs/notesync-cli/internal/core/ports/driven"
)

const statusRunLimit = 5

// openJournal is replaced in tests.
var openJournal = func() (driven.SyncJournal, func() error, error) {
	dataDir := configDirFlag
	if dataDir != "" {
		dataDir = filepath.Join(dataDir, "data")
	}
	db, err := sqlite.NewStore(dataDir)
	if err != nil {
		return nil, nil, err
	}
	return db.SyncJournal(), db.Close, nil
}

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show sync state and recent runs",
	RunE:  runStatus,
}

func init() {
	rootCmd.AddCommand(statusCmd)
}

func runStatus(cmd *cobra.Command, _ []string) error {
	store, err := getSettingsStore()
	if err != nil {
		return fmt.Errorf("opening settings store: %w", err)
	}
	settings, err := store.Load()
	if err != nil {
		return fmt.Errorf("loading settings: %w", err)
	}

	cmd.Println("Configuration")
	cmd.Printf("  Config file: %s\n", store.Path())
	cmd.Printf("  Vault: %s\n", orUnset(settings.VaultPath))
	cmd.Printf("  Vector store: %s (collection %q)\n", settings.QdrantURL, settings.Collection)
	cmd.Printf("  Embedding model: %s\n", settings.EmbeddingModel)
	if err := settings.Validate(); err != nil {
		cmd.Printf("  Warning: %v\n", err)
	}
	cmd.Println()

	journal, closeJournal, err := openJournal()
	if err != nil {
		return fmt.Errorf("opening sync journal: %w", err)
	}
	defer closeJournal() //nolint:errcheck

	ctx := cmd.Context()

	count, err := journal.NoteCount(ctx)
	if err != nil {
		return fmt.Errorf("reading journal: %w", err)
	}
	cmd.Printf("Synced notes: %d\n", count)
	cmd.Println()

	runs, err := journal.RecentRuns(ctx, statusRunLimit)
	if err != nil {
		return fmt.Errorf("reading journal: %w", err)
	}

	if len(runs) == 0 {
		cmd.Println("No sync runs recorded yet.")
		return nil
	}

	cmd.Println("Recent runs")
	for _, run := range runs {
		duration := run.EndedAt.Sub(run.StartedAt).Round(10 * time.Millisecond)
		if run.Error != "" {
			cmd.Printf("  %s  FAILED after %s: %s\n",
				run.StartedAt.Local().Format("2006-01-02 15:04:05"), duration, run.Error)
			continue
		}
		cmd.Printf("  %s  %d upserted, %d deleted in %s\n",
			run.StartedAt.Local().Format("2006-01-02 15:04:05"),
			run.Upserted, run.Deleted, duration)
	}

	return nil
}

func orUnset(s string) string {
	if s == "" {
		return "(not set)"
	}
	return s
}
