package catalog_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/syssam/fkjoin/catalog"
)

func TestWatchReload(t *testing.T) {
	path := filepath.Join(t.TempDir(), "schema.yaml")
	require.NoError(t, os.WriteFile(path, []byte(fixture), 0o644))

	w, err := catalog.Watch(path, catalog.WithLogger(zaptest.NewLogger(t)))
	require.NoError(t, err)
	defer w.Close()

	first := w.Schema()
	assert.Equal(t, 2, first.Tables())

	// Add a third table and wait for the watcher to pick it up.
	updated := `
tables:
  - name: users
    columns:
      - name: id
  - name: teams
    columns:
      - name: id
  - name: orgs
    columns:
      - name: id
`
	require.NoError(t, os.WriteFile(path, []byte(updated), 0o644))

	require.Eventually(t, func() bool {
		return w.Schema().Tables() == 3
	}, 5*time.Second, 10*time.Millisecond)
	assert.NotEqual(t, first.ID(), w.Schema().ID())
}

func TestWatchKeepsLastGoodSnapshot(t *testing.T) {
	path := filepath.Join(t.TempDir(), "schema.yaml")
	require.NoError(t, os.WriteFile(path, []byte(fixture), 0o644))

	w, err := catalog.Watch(path)
	require.NoError(t, err)
	defer w.Close()

	id := w.Schema().ID()
	require.NoError(t, os.WriteFile(path, []byte("views:\n  - name: broken\n    of: nowhere\n"), 0o644))

	// A broken fixture must not replace the snapshot. Give the watcher a
	// moment to see the write, then confirm nothing changed.
	time.Sleep(200 * time.Millisecond)
	assert.Equal(t, id, w.Schema().ID())
	assert.Equal(t, 2, w.Schema().Tables())
}

func TestWatchMissingFile(t *testing.T) {
	_, err := catalog.Watch(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}
