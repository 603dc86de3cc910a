package viewer

import (
	"fmt"
	"path/filepath"

	"asset-viewer/renderer"
	"asset-viewer/scene"
)

// Config holds the start-up settings. There is no config file; cmd/viewer
// fills it from flags.
type Config struct {
	Width   int
	Height  int
	Title   string
	Samples int

	// ShadowSize is the edge length of the square shadow map.
	ShadowSize int

	// ResourceDir holds shaders/, models/, textures/, icons/ and icon.png.
	ResourceDir string

	// AssetPath is the model to show. Empty means the bundled default.
	AssetPath string
}

func DefaultConfig() Config {
	return Config{
		Width:       1280,
		Height:      720,
		Title:       "Asset Viewer",
		Samples:     4,
		ShadowSize:  2048,
		ResourceDir: "res",
	}
}

func (c Config) Validate() error {
	if c.Width <= 0 || c.Height <= 0 {
		return fmt.Errorf("window size %dx%d must be positive", c.Width, c.Height)
	}
	if c.ShadowSize <= 0 || c.ShadowSize&(c.ShadowSize-1) != 0 {
		return fmt.Errorf("shadow map size %d must be a power of two", c.ShadowSize)
	}
	if c.Samples < 0 {
		return fmt.Errorf("sample count %d must not be negative", c.Samples)
	}
	return nil
}

func (c Config) ShaderDir() string {
	return filepath.Join(c.ResourceDir, "shaders")
}

func (c Config) IconPath() string {
	return filepath.Join(c.ResourceDir, "icon.png")
}

// ModeIconPath is the image on the panel button for a shading mode.
func (c Config) ModeIconPath(mode renderer.ShadingMode) string {
	return filepath.Join(c.ResourceDir, "icons", mode.String()+".png")
}

// ResolvedAssetPath is AssetPath, or the bundled model when none was given.
func (c Config) ResolvedAssetPath() string {
	if c.AssetPath != "" {
		return c.AssetPath
	}
	return filepath.Join(c.ResourceDir, "models", "default.obj")
}

// DefaultTexturePath is where the bundled texture for a slot lives. It is
// used for slots the asset leaves empty.
func (c Config) DefaultTexturePath(kind scene.TextureKind) string {
	return filepath.Join(c.ResourceDir, "textures", kind.String()+".png")
}
