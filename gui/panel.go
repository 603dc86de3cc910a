package gui

import (
	"fmt"
	"log/slog"
	"strings"

	"asset-viewer/renderer"
	"asset-viewer/scene"
)

// TextureCommitFunc loads path into a texture slot. A non-nil error means
// the slot kept its previous texture.
type TextureCommitFunc func(kind scene.TextureKind, path string) error

// ModeFunc applies a shading mode change.
type ModeFunc func(mode renderer.ShadingMode)

// Modes lists the shading modes in button order.
var Modes = [3]renderer.ShadingMode{renderer.ModeLit, renderer.ModeWireframe, renderer.ModeUnlit}

// Panel is the state behind the parameter window. The widgets edit Params
// and the path buffers in place; the panel owns what happens when a path is
// committed or abandoned.
type Panel struct {
	Params Params

	// Paths are the text buffers of the three texture path fields. They
	// differ from Params.TexturePaths only while the user is typing.
	Paths [scene.TextureKindCount]string

	OnTextureCommit TextureCommitFunc
	OnModeChange    ModeFunc

	lastErr error
}

func NewPanel(params Params) *Panel {
	p := &Panel{Params: params}
	p.Params.Clamp()
	p.Paths = p.Params.TexturePaths
	return p
}

// LastError is the most recent failed texture commit, cleared by the next
// successful one.
func (p *Panel) LastError() error { return p.lastErr }

// CommitTexture asks OnTextureCommit to load the typed path. The field keeps
// the new path only if the load succeeded; otherwise the edit is discarded
// and the old path comes back.
func (p *Panel) CommitTexture(kind scene.TextureKind) error {
	if kind < 0 || kind >= scene.TextureKindCount {
		return nil
	}
	path := strings.TrimSpace(p.Paths[kind])
	old := p.Params.TexturePaths[kind]
	if path == "" || path == old || p.OnTextureCommit == nil {
		p.Paths[kind] = old
		return nil
	}

	if err := p.OnTextureCommit(kind, path); err != nil {
		p.lastErr = err
		p.Paths[kind] = old
		slog.Warn("texture swap failed, keeping previous texture",
			"slot", kind.String(), "path", path, "err", err)
		return err
	}
	p.lastErr = nil
	p.Params.TexturePaths[kind] = path
	p.Paths[kind] = path
	slog.Info("texture swapped", "slot", kind.String(), "path", path)
	return nil
}

// DiscardEdit restores a path field the user left without pressing Enter.
func (p *Panel) DiscardEdit(kind scene.TextureKind) {
	if kind < 0 || kind >= scene.TextureKindCount {
		return
	}
	p.Paths[kind] = p.Params.TexturePaths[kind]
}

// SetMode is what the three mode buttons do.
func (p *Panel) SetMode(mode renderer.ShadingMode) {
	if p.Params.Mode == mode {
		return
	}
	p.Params.Mode = mode
	if p.OnModeChange != nil {
		p.OnModeChange(mode)
	}
}

// Status is a one-line summary for the window title.
func (p *Panel) Status() string {
	var b strings.Builder
	fmt.Fprintf(&b, "[%s]", p.Params.Mode)
	if !p.Params.Shadows {
		b.WriteString(" shadows off")
	}
	if p.lastErr != nil {
		b.WriteString(" | texture load failed")
	}
	return b.String()
}
