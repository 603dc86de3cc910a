package scene

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadAssetUnsupportedExtension(t *testing.T) {
	_, err := LoadAsset(filepath.Join(t.TempDir(), "model.fbx"))
	assert.ErrorIs(t, err, ErrUnsupportedFormat)
}

func TestLoadAssetNormalizesToOrigin(t *testing.T) {
	dir := t.TempDir()
	obj := "v 10 10 10\nv 14 10 10\nv 14 12 10\nv 10 12 11\nf 1 2 3\nf 1 3 4\n"
	path := writeFile(t, dir, "offset.obj", obj)

	a, err := LoadAsset(path)
	require.NoError(t, err)
	require.Len(t, a.Meshes, 1)

	c := a.Bounds.Center()
	assert.InDelta(t, 0, c.X, 1e-5)
	assert.InDelta(t, 0, c.Y, 1e-5)
	assert.InDelta(t, 0, c.Z, 1e-5)

	// the longest axis (x, 4 units) becomes 2 units
	size := a.Bounds.Size()
	assert.InDelta(t, 2, size.X, 1e-5)
	assert.InDelta(t, 1, size.Y, 1e-5)
	assert.InDelta(t, 0.5, size.Z, 1e-5)

	assert.Less(t, a.GroundHeight(), a.Bounds.Min.Y)
	assert.Same(t, a.Material, a.Meshes[0].Material)
}

func TestNewAssetRejectsEmptyMeshes(t *testing.T) {
	_, err := NewAsset("empty", []*Mesh{CreateMeshFromData("empty", nil, nil)})
	assert.ErrorIs(t, err, ErrNoGeometry)
}

func TestFallbackAsset(t *testing.T) {
	a := FallbackAsset()
	require.NotNil(t, a)
	assert.Len(t, a.Meshes, 1)
	assert.Equal(t, uint32(36), a.Meshes[0].IndexCount)
	assert.InDelta(t, -1, a.Bounds.Min.Y, 1e-5)
}
