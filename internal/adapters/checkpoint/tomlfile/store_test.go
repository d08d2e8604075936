package tomlfile

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/daiimus/paracord/internal/domain"
)

func tempStore(t *testing.T) (*Store, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "progress.toml")
	store, err := NewStore(path)
	require.NoError(t, err)
	return store, path
}

func TestLoadMissingFileIsEmpty(t *testing.T) {
	t.Parallel()

	store, _ := tempStore(t)
	records, err := store.Load(context.Background())
	require.NoError(t, err)
	assert.Empty(t, records)
}

func TestSaveLoadRoundTrip(t *testing.T) {
	t.Parallel()

	store, path := tempStore(t)
	record := domain.ProgressRecord{
		TargetID:  "chan-1",
		Cursor:    domain.Cursor("1234567890"),
		Processed: 42,
		Skipped:   3,
		Failed:    1,
		Completed: true,
		UpdatedAt: time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC),
	}

	require.NoError(t, store.Save(context.Background(), record))

	records, err := store.Load(context.Background())
	require.NoError(t, err)
	require.Contains(t, records, "chan-1")
	assert.Equal(t, record, records["chan-1"])

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())
}

func TestSaveUpserts(t *testing.T) {
	t.Parallel()

	store, _ := tempStore(t)
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, domain.ProgressRecord{TargetID: "chan-1", Processed: 1}))
	require.NoError(t, store.Save(ctx, domain.ProgressRecord{TargetID: "chan-1", Processed: 2}))

	records, err := store.Load(ctx)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, 2, records["chan-1"].Processed)
}

func TestSavePreservesForeignRecords(t *testing.T) {
	t.Parallel()

	store, _ := tempStore(t)
	ctx := context.Background()

	// A record for a target no longer in the configuration must survive
	// saves for other targets.
	require.NoError(t, store.Save(ctx, domain.ProgressRecord{TargetID: "chan-old", Completed: true}))
	require.NoError(t, store.Save(ctx, domain.ProgressRecord{TargetID: "chan-new", Processed: 5}))

	records, err := store.Load(ctx)
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.True(t, records["chan-old"].Completed)
	assert.Equal(t, 5, records["chan-new"].Processed)
}

func TestSaveRejectsEmptyTargetID(t *testing.T) {
	t.Parallel()

	store, _ := tempStore(t)
	require.Error(t, store.Save(context.Background(), domain.ProgressRecord{}))
}

func TestLoadRejectsNewerSchema(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "progress.toml")
	require.NoError(t, os.WriteFile(path, []byte("version = 99\n"), 0o600))

	store, err := NewStore(path)
	require.NoError(t, err)

	_, err = store.Load(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported checkpoint schema version")
}

func TestLoadRejectsMalformedFile(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "progress.toml")
	require.NoError(t, os.WriteFile(path, []byte("not = [valid"), 0o600))

	store, err := NewStore(path)
	require.NoError(t, err)

	_, err = store.Load(context.Background())
	require.Error(t, err)
}

func TestWriteStampsCurrentVersion(t *testing.T) {
	t.Parallel()

	store, path := tempStore(t)
	require.NoError(t, store.Save(context.Background(), domain.ProgressRecord{TargetID: "chan-1"}))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "version = 1")
}

func TestStoreCreatesParentDirectory(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "nested", "dir", "progress.toml")
	store, err := NewStore(path)
	require.NoError(t, err)

	require.NoError(t, store.Save(context.Background(), domain.ProgressRecord{TargetID: "chan-1"}))

	records, err := store.Load(context.Background())
	require.NoError(t, err)
	assert.Contains(t, records, "chan-1")
}

func TestSaveHonorsCancelledContext(t *testing.T) {
	t.Parallel()

	store, _ := tempStore(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	require.ErrorIs(t, store.Save(ctx, domain.ProgressRecord{TargetID: "chan-1"}), context.Canceled)
}
