// Package cli provides the notesync command line interface.
package cli

import (
	"github.com/spf13/cobra"

	"github.com/custodia-labs/notesync-cli/internal/adapters/driven/config/file"
	"github.com/custodia-labs/notesync-cli/internal/core/ports/driven"
	"github.com/custodia-labs/notesync-cli/internal/logger"
)

// version is set at build time via ldflags.
var version = "dev"

// Injected dependencies. Constructed lazily from the parsed flags,
// overridden in tests.
var (
	settingsStore driven.SettingsStore
	buildStack    stackBuilder = newAppStack
)

var (
	verboseFlag   bool
	configDirFlag string
)

var rootCmd = &cobra.Command{
	Use:   "notesync",
	Short: "Sync a markdown vault to a vector database",
	Long: `notesync watches a vault of markdown notes and keeps a vector
database in step with it. Notes are identified by a frontmatter ID
field, chunked, embedded, and upserted; deleted notes have their
vectors removed.`,
	SilenceUsage: true,
	PersistentPreRun: func(_ *cobra.Command, _ []string) {
		logger.SetVerbose(verboseFlag)
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verboseFlag, "verbose", "v", false,
		"enable verbose logging")
	rootCmd.PersistentFlags().StringVar(&configDirFlag, "config", "",
		"config directory (default ~/.notesync)")
}

// getSettingsStore returns the injected settings store, creating a
// file-based one from the --config flag on first use.
func getSettingsStore() (driven.SettingsStore, error) {
	if settingsStore != nil {
		return settingsStore, nil
	}
	return file.NewSettingsStore(configDirFlag)
}

// SetVersion sets the version string shown by the version command.
func SetVersion(v string) {
	version = v
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}
