package main

import (
	"fmt"
	"image"
	"log/slog"
	"os"

	"github.com/anthonynsimon/bild/imgio"
	"github.com/anthonynsimon/bild/transform"
	"github.com/spf13/pflag"

	"asset-viewer/gui"
	"asset-viewer/internal/opengl"
	"asset-viewer/internal/ui"
	"asset-viewer/internal/window"
	"asset-viewer/renderer"
	"asset-viewer/viewer"
)

var keyMap = map[int]viewer.Key{
	window.KeyEscape: viewer.KeyEscape,
	window.Key1:      viewer.Key1,
	window.Key2:      viewer.Key2,
	window.Key3:      viewer.Key3,
	window.Key4:      viewer.Key4,
}

var actionMap = map[int]viewer.Action{
	window.ActionRelease: viewer.Release,
	window.ActionPress:   viewer.Press,
	window.ActionRepeat:  viewer.Repeat,
}

var buttonMap = map[int]viewer.MouseButton{
	window.MouseButtonLeft:   viewer.MouseLeft,
	window.MouseButtonRight:  viewer.MouseRight,
	window.MouseButtonMiddle: viewer.MouseMiddle,
}

func main() {
	cfg, verbose := parseFlags()

	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))

	if err := run(cfg); err != nil {
		slog.Error("viewer failed", "err", err)
		os.Exit(1)
	}
}

func parseFlags() (viewer.Config, bool) {
	cfg := viewer.DefaultConfig()
	pflag.IntVar(&cfg.Width, "width", cfg.Width, "window width in pixels")
	pflag.IntVar(&cfg.Height, "height", cfg.Height, "window height in pixels")
	pflag.IntVar(&cfg.ShadowSize, "shadow-size", cfg.ShadowSize, "shadow map resolution (power of two)")
	pflag.IntVar(&cfg.Samples, "samples", cfg.Samples, "MSAA samples, 0 disables")
	pflag.StringVar(&cfg.ResourceDir, "resources", cfg.ResourceDir, "directory holding shaders, models and textures")
	verbose := pflag.BoolP("verbose", "v", false, "enable debug logging")
	pflag.Usage = func() {
		fmt.Fprintf(os.Stderr, "usage: %s [flags] [asset.obj|asset.gltf|asset.glb]\n", os.Args[0])
		pflag.PrintDefaults()
	}
	pflag.Parse()

	if pflag.NArg() > 1 {
		pflag.Usage()
		os.Exit(2)
	}
	cfg.AssetPath = pflag.Arg(0)
	return cfg, *verbose
}

func run(cfg viewer.Config) error {
	if err := cfg.Validate(); err != nil {
		return err
	}

	wcfg := window.DefaultConfig()
	wcfg.Width = cfg.Width
	wcfg.Height = cfg.Height
	wcfg.Title = cfg.Title
	wcfg.Samples = cfg.Samples

	win, err := window.New(wcfg)
	if err != nil {
		return err
	}
	defer win.Destroy()

	if err := opengl.Init(); err != nil {
		return err
	}

	if icons, err := loadIcon(cfg.IconPath()); err != nil {
		slog.Warn("window icon not set", "err", err)
	} else {
		win.SetIcon(icons...)
	}

	// A program that fails to build draws nothing; the rest still run.
	programs, err := opengl.LoadProgramSet(cfg.ShaderDir())
	if err != nil {
		slog.Error("some shader programs failed to build", "err", err)
	}
	defer programs.Destroy()

	device, err := opengl.NewDevice(cfg.ShadowSize)
	if err != nil {
		return err
	}
	defer device.Destroy()

	textures := opengl.NewTextureCache()
	defer textures.Destroy()

	app := viewer.NewApp(cfg, device, textures)
	defer app.Release()

	layer, guiRenderer := newGUI(cfg)
	if layer != nil {
		defer layer.Destroy()
		defer guiRenderer.Destroy()
		app.Capture = layer
	}
	icons := loadModeIcons(cfg, textures)

	fbw, fbh := win.GetFramebufferSize()
	app.OnFramebufferSize(fbw, fbh)
	registerCallbacks(win, app, layer)

	seq := renderer.NewSequencer(device, programs.Programs())
	slog.Info("viewer ready",
		"shadow_size", cfg.ShadowSize,
		"samples", cfg.Samples,
		"controls", "drag LMB orbit, wheel zoom, 1/2 fill/wireframe raster, 3/4 MSAA, Esc quit")

	last := window.Time()
	for !win.ShouldClose() {
		now := window.Time()
		dt := now - last
		last = now

		win.PollEvents()
		if app.CloseRequested() {
			win.SetShouldClose(true)
		}

		fbw, fbh := win.GetFramebufferSize()
		if layer != nil {
			layer.NewFrame(win.Width, win.Height, fbw, fbh, dt)
			ui.BuildPanel(app.Panel, icons, layer.Framerate())
		}

		frame := app.Frame()
		seq.RenderFrame(&frame, app.Asset, app.Ground)
		if layer != nil {
			guiRenderer.Render(layer.Render(), fbw, fbh)
		}
		win.SwapBuffers()

		if title, ok := app.Tick(dt); ok {
			win.SetTitle(title)
		}
	}

	slog.Info("shutting down")
	return nil
}

// newGUI sets up the panel layer and its renderer. Without them the viewer
// still runs, just with no panel.
func newGUI(cfg viewer.Config) (*ui.Layer, *opengl.GUIRenderer) {
	layer := ui.New()
	r, err := opengl.NewGUIRenderer(cfg.ShaderDir(), layer)
	if err != nil {
		slog.Error("panel disabled", "err", err)
		layer.Destroy()
		return nil, nil
	}
	return layer, r
}

// loadModeIcons uploads the mode button images. A missing image leaves its
// button as text.
func loadModeIcons(cfg viewer.Config, textures *opengl.TextureCache) ui.ModeIcons {
	var icons ui.ModeIcons
	for i, mode := range gui.Modes {
		tex, err := textures.LoadTexture(cfg.ModeIconPath(mode))
		if err != nil {
			slog.Warn("mode icon not loaded", "mode", mode.String(), "err", err)
			continue
		}
		icons[i] = tex.GLID
	}
	return icons
}

// registerCallbacks sends every window event to the panel layer first and
// then to the app, which checks the layer's capture flags itself.
func registerCallbacks(win *window.Window, app *viewer.App, layer *ui.Layer) {
	win.SetKeyCallback(func(key, scancode, action, mods int) {
		if layer != nil {
			layer.KeyEvent(key, action != window.ActionRelease, mods)
		}
		app.OnKey(keyMap[key], actionMap[action])
	})
	win.SetCharCallback(func(r rune) {
		if layer != nil {
			layer.CharEvent(r)
		}
	})
	win.SetMouseButtonCallback(func(button, action, mods int) {
		if layer != nil {
			layer.MouseButtonEvent(button, action == window.ActionPress)
		}
		b, ok := buttonMap[button]
		if !ok {
			return
		}
		app.OnMouseButton(b, actionMap[action])
	})
	win.SetCursorPosCallback(func(x, y float64) {
		if layer != nil {
			layer.MousePosEvent(x, y)
		}
		app.OnCursorPos(x, y)
	})
	win.SetScrollCallback(func(xoff, yoff float64) {
		if layer != nil {
			layer.ScrollEvent(xoff, yoff)
		}
		app.OnScroll(xoff, yoff)
	})
	win.SetFramebufferSizeCallback(app.OnFramebufferSize)
}

// loadIcon reads the icon image and returns it at the sizes window
// managers usually ask for.
func loadIcon(path string) ([]image.Image, error) {
	img, err := imgio.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open icon: %w", err)
	}
	sizes := []int{16, 32, 48}
	icons := make([]image.Image, 0, len(sizes))
	for _, s := range sizes {
		icons = append(icons, transform.Resize(img, s, s, transform.Linear))
	}
	return icons, nil
}
