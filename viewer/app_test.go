package viewer

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"asset-viewer/renderer"
	"asset-viewer/scene"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeDevice struct {
	culling, wireframe, msaa bool
}

func (d *fakeDevice) SetCulling(enabled bool)     { d.culling = enabled }
func (d *fakeDevice) SetWireframe(enabled bool)   { d.wireframe = enabled }
func (d *fakeDevice) SetMultisample(enabled bool) { d.msaa = enabled }

type fakeStore struct {
	next     uint32
	loadable map[string]bool
	released []string
}

func (s *fakeStore) LoadTexture(path string) (*scene.Texture, error) {
	if !s.loadable[path] {
		return nil, errors.New("no such image")
	}
	t := &scene.Texture{Name: path, Width: 1, Height: 1, Pixels: make([]byte, 4)}
	return t, s.UploadTexture(t)
}

func (s *fakeStore) UploadTexture(t *scene.Texture) error {
	s.next++
	t.GLID = s.next
	return nil
}

func (s *fakeStore) ReleaseTexture(t *scene.Texture) {
	s.released = append(s.released, t.Name)
	t.GLID = 0
}

func newTestApp(t *testing.T) (*App, *fakeDevice, *fakeStore) {
	t.Helper()
	cfg := DefaultConfig()
	cfg.ResourceDir = t.TempDir()
	models := filepath.Join(cfg.ResourceDir, "models")
	require.NoError(t, os.MkdirAll(models, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(models, "default.obj"),
		[]byte("v 0 0 0\nv 1 0 0\nv 1 1 0\nv 0 1 0\nf 1 2 3 4\n"), 0o644))

	dev := &fakeDevice{msaa: true}
	store := &fakeStore{loadable: map[string]bool{
		cfg.DefaultTexturePath(scene.TextureDiffuse): true,
		"brick.png": true,
	}}
	return NewApp(cfg, dev, store), dev, store
}

func TestConfigValidate(t *testing.T) {
	cfg := DefaultConfig()
	assert.NoError(t, cfg.Validate())

	cfg.ShadowSize = 4096
	assert.NoError(t, cfg.Validate())

	cfg.ShadowSize = 3000
	assert.Error(t, cfg.Validate())

	cfg = DefaultConfig()
	cfg.Width = 0
	assert.Error(t, cfg.Validate())
}

func TestConfigPaths(t *testing.T) {
	cfg := DefaultConfig()
	assert.Equal(t, filepath.Join("res", "models", "default.obj"), cfg.ResolvedAssetPath())
	assert.Equal(t, filepath.Join("res", "shaders"), cfg.ShaderDir())
	assert.Equal(t, filepath.Join("res", "textures", "normal.png"), cfg.DefaultTexturePath(scene.TextureNormal))
	assert.Equal(t, filepath.Join("res", "icons", "wireframe.png"), cfg.ModeIconPath(renderer.ModeWireframe))

	cfg.AssetPath = "helmet.glb"
	assert.Equal(t, "helmet.glb", cfg.ResolvedAssetPath())
}

func TestNewAppLoadsDefaultAssetWithTextures(t *testing.T) {
	app, dev, _ := newTestApp(t)

	require.Len(t, app.Asset.Meshes, 1)
	mat := app.Asset.Material
	assert.Equal(t, app.Config.DefaultTexturePath(scene.TextureDiffuse), mat.Slots[scene.TextureDiffuse].Texture.Name)
	// missing bundled textures fall back to placeholders
	assert.Equal(t, "placeholder-normal", mat.Slots[scene.TextureNormal].Texture.Name)
	for _, s := range mat.Slots {
		assert.True(t, s.Texture.Uploaded())
	}

	assert.Equal(t, renderer.ModeLit, app.Modes.Mode())
	assert.True(t, dev.culling)
	assert.False(t, dev.wireframe)
}

func TestNewAppFallsBackToCube(t *testing.T) {
	cfg := DefaultConfig()
	cfg.ResourceDir = t.TempDir()
	cfg.AssetPath = filepath.Join(cfg.ResourceDir, "missing.obj")

	app := NewApp(cfg, &fakeDevice{}, &fakeStore{})
	assert.Equal(t, "Cube", app.Asset.Meshes[0].Name)
}

func TestTextureHotSwap(t *testing.T) {
	app, _, store := newTestApp(t)
	oldPath := app.Panel.Params.TexturePaths[scene.TextureDiffuse]
	old := app.Asset.Material.Slots[scene.TextureDiffuse].Texture

	// failed swap keeps the previous texture and path
	app.Panel.Paths[scene.TextureDiffuse] = oldPath + "x"
	assert.Error(t, app.Panel.CommitTexture(scene.TextureDiffuse))
	assert.Same(t, old, app.Asset.Material.Slots[scene.TextureDiffuse].Texture)
	assert.Equal(t, oldPath, app.Panel.Params.TexturePaths[scene.TextureDiffuse])
	assert.Equal(t, oldPath, app.Panel.Paths[scene.TextureDiffuse])
	assert.Empty(t, store.released)

	app.Panel.Paths[scene.TextureDiffuse] = "brick.png"
	require.NoError(t, app.Panel.CommitTexture(scene.TextureDiffuse))

	assert.Equal(t, "brick.png", app.Asset.Material.Slots[scene.TextureDiffuse].Texture.Name)
	assert.Equal(t, "brick.png", app.Panel.Params.TexturePaths[scene.TextureDiffuse])
	assert.Equal(t, []string{oldPath}, store.released)
}

func TestFrameReflectsPanel(t *testing.T) {
	app, _, _ := newTestApp(t)
	app.Panel.Params.Rotation.Y = 90
	app.Panel.Params.ShowGround = false
	app.OnFramebufferSize(800, 400)

	f := app.Frame()
	assert.Equal(t, int32(800), f.Viewport.Width)
	assert.False(t, f.ShowGround)
	assert.Equal(t, app.Camera.ViewMatrix(), f.View)
	assert.Equal(t, app.Panel.Params.Transform().GetMatrix(), f.Model)
	assert.Equal(t, app.Camera.ProjectionMatrix(2), f.Projection)
}

func TestTickReportsOncePerSecond(t *testing.T) {
	app, _, _ := newTestApp(t)

	_, ok := app.Tick(0.5)
	assert.False(t, ok)
	title, ok := app.Tick(0.5)
	assert.True(t, ok)
	assert.Contains(t, title, "2 FPS")
	assert.Contains(t, title, "[lit]")

	app.Panel.SetMode(renderer.ModeWireframe)
	title, ok = app.Tick(0.01)
	assert.True(t, ok)
	assert.Contains(t, title, "[wireframe]")
}

func TestReleaseFreesTextures(t *testing.T) {
	app, _, store := newTestApp(t)
	app.Release()
	assert.Len(t, store.released, 2*int(scene.TextureKindCount))
}
