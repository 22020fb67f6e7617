package medium

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/nexusvpn/mockapi/internal/medium/mediumtest"
	"github.com/nexusvpn/mockapi/pkg/types"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func TestDirConformance(t *testing.T) {
	mediumtest.Run(t, func(t *testing.T) types.Medium {
		d, err := NewDir(t.TempDir())
		require.NoError(t, err)
		return d
	})
}

func TestDirCreatesDataDir(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "data")

	_, err := NewDir(dir)
	require.NoError(t, err)

	info, err := os.Stat(dir)
	require.NoError(t, err)
	assert.True(t, info.IsDir())
}

func TestDirWritesOneFilePerKey(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	d, err := NewDir(dir)
	require.NoError(t, err)
	defer d.Close()

	require.NoError(t, d.Set(ctx, "mock_Server", []byte(`[]`)))
	require.NoError(t, d.Set(ctx, "mock_user", []byte(`{"id":"demo-user-123"}`)))

	data, err := os.ReadFile(filepath.Join(dir, "mock_user.json"))
	require.NoError(t, err)
	assert.JSONEq(t, `{"id":"demo-user-123"}`, string(data))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 2, "no temp files may be left behind")
}

func TestDirClearKeepsForeignFiles(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	d, err := NewDir(dir)
	require.NoError(t, err)
	defer d.Close()

	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte("backend: file\n"), 0o644))
	require.NoError(t, d.Set(ctx, "mock_Payment", []byte(`[]`)))
	require.NoError(t, d.Clear(ctx))

	_, err = os.Stat(filepath.Join(dir, "config.yaml"))
	assert.NoError(t, err)
	_, err = os.Stat(filepath.Join(dir, "mock_Payment.json"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestDirRejectsEscapingKeys(t *testing.T) {
	ctx := context.Background()
	d, err := NewDir(t.TempDir())
	require.NoError(t, err)
	defer d.Close()

	for _, key := range []string{"", "../mock_user", "a/b", ".hidden"} {
		err := d.Set(ctx, key, []byte(`{}`))
		assert.ErrorIs(t, err, types.ErrInvalidName, "key %q", key)
	}
}

func TestDirHonoursCancelledContext(t *testing.T) {
	d, err := NewDir(t.TempDir())
	require.NoError(t, err)
	defer d.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	assert.ErrorIs(t, d.Set(ctx, "mock_user", []byte(`{}`)), context.Canceled)
	_, _, err = d.Get(ctx, "mock_user")
	assert.ErrorIs(t, err, context.Canceled)
}

func TestWriteFileAtomicReplaces(t *testing.T) {
	path := filepath.Join(t.TempDir(), "slot.json")

	require.NoError(t, writeFileAtomic(path, []byte("first")))
	require.NoError(t, writeFileAtomic(path, []byte("second")))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "second", string(data))
}
