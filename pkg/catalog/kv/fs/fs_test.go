package fs

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tendant/simple-catalog/pkg/catalog/kv"
)

func TestFSBackend_BasicOps(t *testing.T) {
	tmp := t.TempDir()
	b, err := New(Config{BaseDir: filepath.Join(tmp, "nested")})
	require.NoError(t, err)
	ctx := context.Background()

	_, err = b.Get(ctx, "REPOSITORIO_CM_CONTEUDOS_V1")
	assert.ErrorIs(t, err, kv.ErrKeyNotFound)

	require.NoError(t, b.Put(ctx, "REPOSITORIO_CM_CONTEUDOS_V1", []byte(`[1]`)))
	require.NoError(t, b.Put(ctx, "REPOSITORIO_CM_CONTEUDOS_V1", []byte(`[1,2]`)))

	got, err := b.Get(ctx, "REPOSITORIO_CM_CONTEUDOS_V1")
	require.NoError(t, err)
	assert.Equal(t, []byte(`[1,2]`), got)

	entries, err := os.ReadDir(filepath.Join(tmp, "nested"))
	require.NoError(t, err)
	require.Len(t, entries, 1, "temporary files must be cleaned up")
	assert.Equal(t, "REPOSITORIO_CM_CONTEUDOS_V1.json", entries[0].Name())

	require.NoError(t, b.Delete(ctx, "REPOSITORIO_CM_CONTEUDOS_V1"))
	require.NoError(t, b.Delete(ctx, "REPOSITORIO_CM_CONTEUDOS_V1"))
	_, err = b.Get(ctx, "REPOSITORIO_CM_CONTEUDOS_V1")
	assert.ErrorIs(t, err, kv.ErrKeyNotFound)
}

func TestFSBackend_Config(t *testing.T) {
	_, err := New(Config{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "base directory is required")
}

func TestFSBackend_RejectsPathKeys(t *testing.T) {
	b, err := New(Config{BaseDir: t.TempDir()})
	require.NoError(t, err)

	for _, key := range []string{"", "../escape", "a/b", `a\b`, ".."} {
		assert.Error(t, b.Put(context.Background(), key, []byte("x")), key)
	}
}
