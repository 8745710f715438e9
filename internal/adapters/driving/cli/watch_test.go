package cli

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWatchCmd_Use(t *testing.T) {
	assert.Equal(t, "watch", watchCmd.Use)
}

func TestWatchCmd_WatchError(t *testing.T) {
	engine := &mockEngine{}
	source := &mockSource{watchErr: errors.New("creating watcher: too many open files")}
	cleanup := setupStackTest(engine, source)
	defer cleanup()

	_, err := execute(t, "watch", "--no-scan")
	defer func() { watchNoScanFlag = false }()

	require.Error(t, err)
	assert.Contains(t, err.Error(), "watching vault")
}

func TestWatchCmd_NoScanSkipsInitialSync(t *testing.T) {
	engine := &mockEngine{}
	source := &mockSource{scanIDs: []string{"1"}, watchErr: errors.New("stop")}
	cleanup := setupStackTest(engine, source)
	defer cleanup()

	_, err := execute(t, "watch", "--no-scan")
	defer func() { watchNoScanFlag = false }()

	require.Error(t, err)
	assert.Equal(t, 0, source.scans)
	assert.Equal(t, 0, engine.drained)
}

func TestWatchCmd_ScansBeforeWatching(t *testing.T) {
	engine := &mockEngine{}
	source := &mockSource{scanIDs: []string{"1", "2"}, watchErr: errors.New("stop")}
	cleanup := setupStackTest(engine, source)
	defer cleanup()

	out, err := execute(t, "watch")

	require.Error(t, err)
	assert.Equal(t, 1, source.scans)
	assert.Equal(t, 1, engine.drained)
	assert.Contains(t, out, "Syncing 2 notes")
}
