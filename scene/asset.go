package scene

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"asset-viewer/math"
)

var (
	// ErrNoGeometry is returned when a file parses but holds no triangles.
	ErrNoGeometry = errors.New("no geometry")
	// ErrUnsupportedFormat is returned for file types no loader handles.
	ErrUnsupportedFormat = errors.New("unsupported asset format")
)

// normalizedSize is the edge length of the largest bounding-box axis after
// normalization. It keeps any asset comfortably inside the default orbit
// radius and the light's orthographic frustum.
const normalizedSize = 2

// Asset is the viewed model: a flat list of meshes sharing one material.
type Asset struct {
	Path     string
	Meshes   []*Mesh
	Material *Material
	Bounds   AABB
}

// LoadAsset picks a loader by file extension and normalizes the result so
// it is centred on the origin.
func LoadAsset(path string) (*Asset, error) {
	var (
		meshes []*Mesh
		err    error
	)
	switch strings.ToLower(filepath.Ext(path)) {
	case ".obj":
		meshes, err = LoadOBJ(path)
	case ".gltf", ".glb":
		meshes, err = LoadGLTF(path)
	default:
		return nil, fmt.Errorf("load %q: %w", path, ErrUnsupportedFormat)
	}
	if err != nil {
		return nil, err
	}
	return NewAsset(path, meshes)
}

// NewAsset wraps meshes into an Asset. The first mesh material found becomes
// the shared material, which is what the texture panel edits.
func NewAsset(path string, meshes []*Mesh) (*Asset, error) {
	a := &Asset{Path: path}
	for _, m := range meshes {
		if m == nil || m.IndexCount == 0 {
			continue
		}
		a.Meshes = append(a.Meshes, m)
		if a.Material == nil && m.Material != nil {
			a.Material = m.Material
		}
	}
	if len(a.Meshes) == 0 {
		return nil, fmt.Errorf("asset %q: %w", path, ErrNoGeometry)
	}
	if a.Material == nil {
		a.Material = DefaultMaterial()
	}
	for _, m := range a.Meshes {
		m.Material = a.Material
	}
	a.normalize()
	return a, nil
}

// FallbackAsset is shown when no asset could be loaded.
func FallbackAsset() *Asset {
	a, _ := NewAsset("cube", []*Mesh{CreateCube(normalizedSize)})
	return a
}

func (a *Asset) computeBounds() AABB {
	b := a.Meshes[0].LocalAABB
	for _, m := range a.Meshes[1:] {
		b = b.Union(m.LocalAABB)
	}
	return b
}

// normalize recentres the asset on the origin and scales it uniformly so
// its largest extent equals normalizedSize.
func (a *Asset) normalize() {
	b := a.computeBounds()
	size := b.Size()
	extent := size.X
	if size.Y > extent {
		extent = size.Y
	}
	if size.Z > extent {
		extent = size.Z
	}
	scale := float32(1)
	if extent > 0 {
		scale = normalizedSize / extent
	}

	mtx := math.Mat4Translation(b.Center().Negate()).Mul(math.Mat4Scale(math.Vec3{X: scale, Y: scale, Z: scale}))
	for _, m := range a.Meshes {
		m.Transform(mtx)
	}
	a.Bounds = a.computeBounds()
}

// GroundHeight is the y coordinate the ground plane sits at: just below the
// asset.
func (a *Asset) GroundHeight() float32 {
	return a.Bounds.Min.Y - 0.001
}
