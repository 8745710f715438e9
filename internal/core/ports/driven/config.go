package driven

import "github.com/custodia-labs/notesync-cli/internal/core/domain"

// SettingsStore persists the user-facing configuration.
type SettingsStore interface {
	// Load reads settings from storage. A missing store yields defaults.
	Load() (domain.Settings, error)

	// Save writes settings to storage, replacing what was there.
	Save(settings domain.Settings) error

	// Path returns the backing file path, for display to the user.
	Path() string
}
