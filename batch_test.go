package sisl

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProbeAll(t *testing.T) {
	dir := t.TempDir()

	var paths []string
	for i := 0; i < 4; i++ {
		dm := testDM()
		dm.Nsc = [3]int{i, i, i} // i=0 exercises the legacy header
		path := filepath.Join(dir, "run"+string(rune('a'+i))+".DM")
		require.NoError(t, WriteDensityMatrix(path, dm))
		paths = append(paths, path)
	}

	sizes, err := ProbeAll(context.Background(), paths)
	require.NoError(t, err)
	require.Len(t, sizes, 4)
	for i, sz := range sizes {
		assert.Equal(t, [3]int{i, i, i}, sz.Nsc, "order must follow input order")
		assert.Equal(t, 6, sz.Nnz)
	}
}

func TestProbeAllMissingFile(t *testing.T) {
	dir := t.TempDir()
	good := filepath.Join(dir, "good.DM")
	require.NoError(t, WriteDensityMatrix(good, testDM()))

	_, err := ProbeAll(context.Background(), []string{good, filepath.Join(dir, "missing.DM")})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "missing.DM")
}

func TestProbeAllCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	path := filepath.Join(t.TempDir(), "run.DM")
	require.NoError(t, WriteDensityMatrix(path, testDM()))

	paths := make([]string, 64)
	for i := range paths {
		paths[i] = path
	}
	_, err := ProbeAll(ctx, paths)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestProbeAllEmpty(t *testing.T) {
	sizes, err := ProbeAll(context.Background(), nil)
	require.NoError(t, err)
	assert.Empty(t, sizes)
}
