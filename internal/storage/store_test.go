package storage

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func backends(t *testing.T) map[string]Store {
	t.Helper()
	dir := t.TempDir()

	fs, err := NewFileStore(filepath.Join(dir, "kv"))
	require.NoError(t, err)
	ss, err := NewSQLiteStore(filepath.Join(dir, "kv.db"))
	require.NoError(t, err)

	stores := map[string]Store{
		"memory": NewMemoryStore(),
		"file":   fs,
		"sqlite": ss,
	}
	t.Cleanup(func() {
		for _, s := range stores {
			s.Close()
		}
	})
	return stores
}

func TestStore_RoundTrip(t *testing.T) {
	ctx := context.Background()
	for name, s := range backends(t) {
		t.Run(name, func(t *testing.T) {
			_, err := s.Get(ctx, "savquest_onboarding")
			assert.ErrorIs(t, err, ErrNotFound)

			require.NoError(t, s.Set(ctx, "savquest_onboarding", []byte(`{"currentStep":2}`)))
			got, err := s.Get(ctx, "savquest_onboarding")
			require.NoError(t, err)
			assert.JSONEq(t, `{"currentStep":2}`, string(got))

			require.NoError(t, s.Set(ctx, "savquest_onboarding", []byte(`{"currentStep":3}`)))
			got, err = s.Get(ctx, "savquest_onboarding")
			require.NoError(t, err)
			assert.JSONEq(t, `{"currentStep":3}`, string(got))

			require.NoError(t, s.Delete(ctx, "savquest_onboarding"))
			_, err = s.Get(ctx, "savquest_onboarding")
			assert.ErrorIs(t, err, ErrNotFound)

			// Deleting a missing key is not an error.
			assert.NoError(t, s.Delete(ctx, "savquest_onboarding"))
		})
	}
}

func TestStore_RejectsBadKeys(t *testing.T) {
	ctx := context.Background()
	for name, s := range backends(t) {
		t.Run(name, func(t *testing.T) {
			for _, key := range []string{"", "../escape", `a\b`, ".."} {
				assert.Error(t, s.Set(ctx, key, []byte("{}")), "set %q", key)
				_, err := s.Get(ctx, key)
				assert.Error(t, err, "get %q", key)
				assert.NotErrorIs(t, err, ErrNotFound, "get %q", key)
				assert.Error(t, s.Delete(ctx, key), "delete %q", key)
			}
		})
	}
}

func TestFileStore_PersistsAcrossInstances(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()

	a, err := NewFileStore(dir)
	require.NoError(t, err)
	require.NoError(t, a.Set(ctx, "savquest_progress", []byte(`{"level":4}`)))

	b, err := NewFileStore(dir)
	require.NoError(t, err)
	got, err := b.Get(ctx, "savquest_progress")
	require.NoError(t, err)
	assert.JSONEq(t, `{"level":4}`, string(got))
}

func TestOpen(t *testing.T) {
	dir := t.TempDir()

	s, err := Open(Options{Driver: DriverSQLite, SQLitePath: filepath.Join(dir, "a.db")})
	require.NoError(t, err)
	assert.IsType(t, &SQLiteStore{}, s)
	s.Close()

	s, err = Open(Options{Driver: DriverFile, Dir: dir})
	require.NoError(t, err)
	assert.IsType(t, &FileStore{}, s)

	s, err = Open(Options{Driver: DriverMemory})
	require.NoError(t, err)
	assert.IsType(t, &MemoryStore{}, s)

	_, err = Open(Options{Driver: "redis"})
	assert.Error(t, err)
}
