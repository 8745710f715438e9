package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/notesync-cli/internal/core/domain"
)

var initVaultFlag string

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Create the configuration file",
	Long: `Writes a configuration file with default values. Pass --vault to set
the vault path directly; credentials and endpoint overrides are edited
in the file afterwards.`,
	RunE: runInit,
}

func init() {
	initCmd.Flags().StringVar(&initVaultFlag, "vault", "", "path to the markdown vault")
	rootCmd.AddCommand(initCmd)
}

func runInit(cmd *cobra.Command, _ []string) error {
	store, err := getSettingsStore()
	if err != nil {
		return fmt.Errorf("opening settings store: %w", err)
	}

	if _, statErr := os.Stat(store.Path()); statErr == nil {
		return fmt.Errorf("config already exists at %s", store.Path())
	}

	settings := domain.DefaultSettings()
	if initVaultFlag != "" {
		settings.VaultPath = initVaultFlag
	}

	if err := store.Save(settings); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}

	cmd.Printf("Wrote config to %s\n", store.Path())
	if settings.VaultPath == "" {
		cmd.Println("Set vault_path before running 'notesync sync'.")
	}
	cmd.Println("Set embedding_api_key to enable embedding requests.")

	return nil
}
