package cli

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/notesync-cli/internal/adapters/driven/config/file"
	"github.com/custodia-labs/notesync-cli/internal/core/domain"
)

func setupInitTest(t *testing.T) (*file.SettingsStore, func()) {
	t.Helper()

	store, err := file.NewSettingsStore(t.TempDir())
	require.NoError(t, err)

	oldStore := settingsStore
	settingsStore = store
	return store, func() {
		settingsStore = oldStore
		initVaultFlag = ""
	}
}

func TestInitCmd_WritesDefaults(t *testing.T) {
	store, cleanup := setupInitTest(t)
	defer cleanup()

	out, err := execute(t, "init")

	require.NoError(t, err)
	assert.Contains(t, out, "Wrote config to")
	assert.Contains(t, out, "Set vault_path")

	settings, err := store.Load()
	require.NoError(t, err)
	assert.Equal(t, domain.DefaultSettings(), settings)
}

func TestInitCmd_VaultFlag(t *testing.T) {
	store, cleanup := setupInitTest(t)
	defer cleanup()

	out, err := execute(t, "init", "--vault", "/home/user/vault")

	require.NoError(t, err)
	assert.NotContains(t, out, "Set vault_path")

	settings, err := store.Load()
	require.NoError(t, err)
	assert.Equal(t, "/home/user/vault", settings.VaultPath)
}

func TestInitCmd_RefusesOverwrite(t *testing.T) {
	store, cleanup := setupInitTest(t)
	defer cleanup()

	existing := domain.DefaultSettings()
	existing.VaultPath = "/keep/me"
	require.NoError(t, store.Save(existing))

	_, err := execute(t, "init")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "already exists")

	settings, err := store.Load()
	require.NoError(t, err)
	assert.Equal(t, "/keep/me", settings.VaultPath)
}

func TestInitCmd_StorePath(t *testing.T) {
	store, cleanup := setupInitTest(t)
	defer cleanup()

	assert.Equal(t, "config.toml", filepath.Base(store.Path()))
}
