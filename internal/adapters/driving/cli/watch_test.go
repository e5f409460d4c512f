package cli

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWatchCmd_Use(t *testing.T) {
	assert.Equal(t, "watch [file.json]", watchCmd.Use)
}

func TestWatchCmd_RequiresFile(t *testing.T) {
	_, err := runCLI("watch")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "accepts 1 arg(s)")
}

func TestWatchCmd_NotConfigured(t *testing.T) {
	old := exportService
	exportService = nil
	defer func() { exportService = old }()

	_, err := runCLI("watch", "deck.json")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "export service not configured")
}

func TestWatchCmd_StopsWithContext(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()

	dir := t.TempDir()
	input := filepath.Join(dir, "deck.json")
	require.NoError(t, os.WriteFile(input, []byte(`{"title": "Watched", "slides": [{"elements": []}]}`), 0644))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	// Subcommands keep the first context they were given.
	watchCmd.SetContext(ctx)
	defer watchCmd.SetContext(context.Background())

	out, err := runCLI("watch", input)
	require.NoError(t, err)
	assert.Contains(t, out, "Watching "+input)
}
