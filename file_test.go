package scribe

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// A file sink on a nonexistent nested path creates the directories,
// writes the header and starts receiving messages.
func TestAddFileCreatesDirectories(t *testing.T) {
	t.Parallel()

	l, _, _ := newTestLogger(t)
	path := filepath.Join(t.TempDir(), "a", "b", "c.log")

	require.NoError(t, l.AddFile(path, Append, Max))

	l.Infof("into the file")
	require.NoError(t, l.RemoveSink(path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	content := string(data)

	assert.Contains(t, content, "arguments:")
	assert.Contains(t, content, "Verbosity level:")
	assert.Contains(t, content, PreambleLegend)
	assert.Contains(t, content, "into the file")
}

func TestAddFileTruncateAndAppend(t *testing.T) {
	t.Parallel()

	l, _, _ := newTestLogger(t)
	path := filepath.Join(t.TempDir(), "modes.log")

	require.NoError(t, l.AddFile(path, Truncate, Max))
	l.Infof("first run")
	require.NoError(t, l.RemoveSink(path))

	require.NoError(t, l.AddFile(path, Append, Max))
	l.Infof("second run")
	require.NoError(t, l.RemoveSink(path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "first run")
	assert.Contains(t, string(data), "second run")

	require.NoError(t, l.AddFile(path, Truncate, Max))
	require.NoError(t, l.RemoveSink(path))

	data, err = os.ReadFile(path)
	require.NoError(t, err)
	assert.NotContains(t, string(data), "first run", "truncate discards prior content")
}

func TestAddFileCutoff(t *testing.T) {
	t.Parallel()

	l, _, _ := newTestLogger(t)
	l.SetVerbosity(Max)
	path := filepath.Join(t.TempDir(), "readable.log")

	require.NoError(t, l.AddFile(path, Truncate, Info))
	l.Logf(2, "chatty detail")
	l.Warningf("readable warning")
	require.NoError(t, l.RemoveSink(path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.NotContains(t, string(data), "chatty detail")
	assert.Contains(t, string(data), "readable warning")
}

func TestAddFileHeaderEffectiveVerbosity(t *testing.T) {
	t.Parallel()

	l, _, _ := newTestLogger(t)
	l.SetVerbosity(2)
	path := filepath.Join(t.TempDir(), "eff.log")

	require.NoError(t, l.AddFile(path, Truncate, Max))
	require.NoError(t, l.RemoveSink(path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "Verbosity level: 2",
		"header shows the tighter of threshold and cutoff")
}

func TestAddFileOpenFailure(t *testing.T) {
	t.Parallel()

	l, alert, _ := newTestLogger(t)

	dir := t.TempDir()
	// A directory cannot be opened as a log file.
	err := l.AddFile(dir, Append, Max)
	assert.Error(t, err)
	assert.Contains(t, alert.String(), "Failed to open")

	l.Infof("engine still works")
}

func TestAddFileLogsRegistration(t *testing.T) {
	t.Parallel()

	l, _, normal := newTestLogger(t)
	path := filepath.Join(t.TempDir(), "noted.log")

	require.NoError(t, l.AddFile(path, Append, Info))
	assert.True(t, strings.Contains(normal.String(), "Logging to"))
}
