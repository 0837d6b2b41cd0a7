package repository

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"skyfare/internal/domain/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKVRepositories_Contract(t *testing.T) {
	tests := []struct {
		name string
		repo func(t *testing.T) repository.KeyValueRepository
	}{
		{name: "memory", repo: func(t *testing.T) repository.KeyValueRepository { return NewMemoryKVRepository() }},
		{name: "file", repo: func(t *testing.T) repository.KeyValueRepository {
			return NewFileKVRepository(filepath.Join(t.TempDir(), "nested", "storage.json"))
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := context.Background()
			repo := tt.repo(t)

			value, err := repo.Get(ctx, "missing")
			require.NoError(t, err)
			assert.Nil(t, value)

			require.NoError(t, repo.Set(ctx, repository.KeyAccessToken, []byte("abc")))
			value, err = repo.Get(ctx, repository.KeyAccessToken)
			require.NoError(t, err)
			assert.Equal(t, []byte("abc"), value)

			require.NoError(t, repo.Set(ctx, repository.KeyAccessToken, []byte("def")))
			value, err = repo.Get(ctx, repository.KeyAccessToken)
			require.NoError(t, err)
			assert.Equal(t, []byte("def"), value)

			require.NoError(t, repo.Set(ctx, "empty", []byte{}))
			value, err = repo.Get(ctx, "empty")
			require.NoError(t, err)
			assert.NotNil(t, value)
			assert.Empty(t, value)

			require.NoError(t, repo.Delete(ctx, repository.KeyAccessToken))
			require.NoError(t, repo.Delete(ctx, repository.KeyAccessToken))
			value, err = repo.Get(ctx, repository.KeyAccessToken)
			require.NoError(t, err)
			assert.Nil(t, value)
		})
	}
}

func TestFileKVRepository_SurvivesReopen(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "storage.json")

	first := NewFileKVRepository(path)
	require.NoError(t, first.Set(ctx, repository.KeyFavorites, []byte(`[{"carrierCode":"KE"}]`)))
	require.NoError(t, first.Set(ctx, repository.KeyThemePreference, []byte("dark")))

	second := NewFileKVRepository(path)
	value, err := second.Get(ctx, repository.KeyFavorites)
	require.NoError(t, err)
	assert.JSONEq(t, `[{"carrierCode":"KE"}]`, string(value))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())

	// no temp files left behind
	entries, err := os.ReadDir(filepath.Dir(path))
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}

func TestFileKVRepository_KeepsWritesFromOtherHandles(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "storage.json")

	watcher := NewFileKVRepository(path)
	cli := NewFileKVRepository(path)

	_, err := watcher.Get(ctx, repository.KeyPriceAlerts)
	require.NoError(t, err)

	require.NoError(t, cli.Set(ctx, repository.KeyFavorites, []byte(`[{"carrierCode":"KE"}]`)))
	require.NoError(t, cli.Set(ctx, repository.KeyAccessToken, []byte("fresh")))
	require.NoError(t, watcher.Set(ctx, repository.KeyPriceAlerts, []byte(`[]`)))

	// the watcher sees the other handle's writes too
	value, err := watcher.Get(ctx, repository.KeyAccessToken)
	require.NoError(t, err)
	assert.Equal(t, "fresh", string(value))

	fresh := NewFileKVRepository(path)
	value, err = fresh.Get(ctx, repository.KeyFavorites)
	require.NoError(t, err)
	assert.JSONEq(t, `[{"carrierCode":"KE"}]`, string(value))

	value, err = fresh.Get(ctx, repository.KeyPriceAlerts)
	require.NoError(t, err)
	assert.Equal(t, "[]", string(value))

	require.NoError(t, cli.Delete(ctx, repository.KeyAccessToken))
	value, err = watcher.Get(ctx, repository.KeyAccessToken)
	require.NoError(t, err)
	assert.Nil(t, value)
}

func TestFileKVRepository_CorruptFile(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "storage.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o600))

	repo := NewFileKVRepository(path)
	_, err := repo.Get(ctx, repository.KeyFavorites)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to decode storage file")

	err = repo.Set(ctx, repository.KeyFavorites, []byte("[]"))
	require.Error(t, err)
}

func TestMemoryKVRepository_CopiesValues(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryKVRepository()

	input := []byte("abc")
	require.NoError(t, repo.Set(ctx, "k", input))
	input[0] = 'z'

	value, err := repo.Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, "abc", string(value))

	value[1] = 'z'
	again, _ := repo.Get(ctx, "k")
	assert.Equal(t, "abc", string(again))
}
