package viewer

import (
	"fmt"
	"log/slog"

	"asset-viewer/core"
	"asset-viewer/gui"
	"asset-viewer/renderer"
	"asset-viewer/scene"
)

// App is the viewer's whole mutable state. Window callbacks and the frame
// loop all run on the main thread and share it without locking.
type App struct {
	Config Config

	Camera *scene.OrbitCamera
	Panel  *gui.Panel
	Modes  *renderer.ModeSwitch

	// Capture is asked before mouse and key events reach the camera and
	// hotkeys. It never captures until cmd/viewer installs the GUI layer.
	Capture InputCapture

	Asset  *scene.Asset
	Ground *scene.Mesh

	textures       scene.TextureStore
	viewport       core.Viewport
	closeRequested bool
	titleDirty     bool
	stats          FrameStats
}

// NewApp loads the asset (falling back to a cube), realizes its textures
// through store and wires the panel callbacks. State changes go to dev.
func NewApp(cfg Config, dev renderer.StateDevice, store scene.TextureStore) *App {
	a := &App{
		Config:   cfg,
		Camera:   scene.NewOrbitCamera(),
		Capture:  noCapture{},
		textures: store,
		viewport: core.Viewport{Width: int32(cfg.Width), Height: int32(cfg.Height)},
	}

	a.Asset = loadAsset(cfg)
	a.fillDefaultTextures()
	if err := a.Asset.Material.Realize(store); err != nil {
		slog.Warn("some textures fell back to placeholders", "err", err)
	}

	a.Ground = scene.CreatePlane(20, 20, 1)
	a.Ground.Material = scene.DefaultMaterial()
	if err := a.Ground.Material.Realize(store); err != nil {
		slog.Warn("ground textures", "err", err)
	}

	params := gui.DefaultParams()
	params.Shininess = a.Asset.Material.Shininess
	for k := range params.TexturePaths {
		params.TexturePaths[k] = a.Asset.Material.Slots[k].Path
	}

	a.Panel = gui.NewPanel(params)
	a.Panel.OnTextureCommit = a.swapTexture
	a.Panel.OnModeChange = a.onModeChange
	a.Modes = renderer.NewModeSwitch(dev, params.Mode)
	return a
}

func loadAsset(cfg Config) *scene.Asset {
	path := cfg.ResolvedAssetPath()
	asset, err := scene.LoadAsset(path)
	if err != nil {
		slog.Error("failed to load asset, showing a cube", "path", path, "err", err)
		return scene.FallbackAsset()
	}
	n := 0
	for _, m := range asset.Meshes {
		n += len(m.Indices) / 3
	}
	slog.Info("asset loaded", "path", path, "meshes", len(asset.Meshes), "triangles", n)
	return asset
}

// fillDefaultTextures points empty slots at the bundled textures.
func (a *App) fillDefaultTextures() {
	mat := a.Asset.Material
	for k := range mat.Slots {
		slot := &mat.Slots[k]
		if slot.Path == "" && slot.Texture == nil {
			slot.Path = a.Config.DefaultTexturePath(scene.TextureKind(k))
		}
	}
}

func (a *App) swapTexture(kind scene.TextureKind, path string) error {
	a.titleDirty = true
	if err := a.Asset.Material.SwapTexture(a.textures, kind, path); err != nil {
		return fmt.Errorf("swap %s texture: %w", kind, err)
	}
	return nil
}

// CloseRequested reports whether Escape was pressed while the panel did not
// have keyboard focus.
func (a *App) CloseRequested() bool { return a.closeRequested }

func (a *App) Viewport() core.Viewport { return a.viewport }

// Frame snapshots the panel and camera into the per-frame render inputs.
func (a *App) Frame() renderer.Frame {
	p := &a.Panel.Params
	t := p.Transform()
	return renderer.Frame{
		View:           a.Camera.ViewMatrix(),
		Projection:     a.Camera.ProjectionMatrix(a.viewport.Aspect()),
		CameraPos:      a.Camera.Position(),
		Viewport:       a.viewport,
		Background:     p.Background,
		WireframeColor: p.WireframeColor,
		Shininess:      p.Shininess,
		Light:          p.Light(),
		Mode:           a.Modes.Mode(),
		Model:          t.GetMatrix(),
		ShowGround:     p.ShowGround,
	}
}

// Tick advances the frame statistics and returns the window title when it
// should be refreshed: once per second, and after a mode change or texture
// swap.
func (a *App) Tick(dt float64) (string, bool) {
	report := a.stats.Tick(dt)
	if !report && !a.titleDirty {
		return "", false
	}
	a.titleDirty = false
	return fmt.Sprintf("%s - %.0f FPS - %s", a.Config.Title, a.stats.FPS(), a.Panel.Status()), true
}

// Release frees the textures the app owns.
func (a *App) Release() {
	a.Asset.Material.Release(a.textures)
	a.Ground.Material.Release(a.textures)
}

// FrameStats counts frames and reports FPS once per second.
type FrameStats struct {
	frames  int
	elapsed float64
	fps     float64
}

// Tick records one frame of length dt and reports whether a full second
// has passed since the last report.
func (s *FrameStats) Tick(dt float64) bool {
	s.frames++
	s.elapsed += dt
	if s.elapsed < 1 {
		return false
	}
	s.fps = float64(s.frames) / s.elapsed
	s.frames = 0
	s.elapsed = 0
	return true
}

func (s *FrameStats) FPS() float64 { return s.fps }
