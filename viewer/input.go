package viewer

import (
	"log/slog"

	"asset-viewer/renderer"
)

// Key is a key the viewer reacts to. cmd/viewer maps window key codes onto
// it.
type Key int

const (
	KeyUnknown Key = iota
	KeyEscape
	Key1
	Key2
	Key3
	Key4
)

type Action int

const (
	Release Action = iota
	Press
	Repeat
)

type MouseButton int

const (
	MouseLeft MouseButton = iota
	MouseRight
	MouseMiddle
)

// InputCapture reports whether the GUI layer wants the mouse or keyboard
// for itself this frame.
type InputCapture interface {
	WantCaptureMouse() bool
	WantCaptureKeyboard() bool
}

type noCapture struct{}

func (noCapture) WantCaptureMouse() bool    { return false }
func (noCapture) WantCaptureKeyboard() bool { return false }

// OnKey handles the viewer hotkeys. Keys go to the panel instead while it
// has keyboard focus.
func (a *App) OnKey(key Key, action Action) {
	if action != Press || a.Capture.WantCaptureKeyboard() {
		return
	}

	switch key {
	case KeyEscape:
		a.closeRequested = true
	case Key1:
		a.Modes.SetPolygonFill(true)
	case Key2:
		a.Modes.SetPolygonFill(false)
	case Key3:
		a.Modes.SetMultisample(true)
	case Key4:
		a.Modes.SetMultisample(false)
	}
}

// OnMouseButton focuses the camera while the left button is held. A press
// over the panel does not start an orbit; a release always ends one.
func (a *App) OnMouseButton(button MouseButton, action Action) {
	if button != MouseLeft {
		return
	}
	switch action {
	case Press:
		if a.Capture.WantCaptureMouse() {
			return
		}
		a.Camera.SetFocus(true)
	case Release:
		a.Camera.SetFocus(false)
	}
}

// OnCursorPos orbits the camera. Once the panel takes the mouse or the
// keyboard the drag ends, so orbiting never runs under a widget.
func (a *App) OnCursorPos(x, y float64) {
	if a.Capture.WantCaptureMouse() || a.Capture.WantCaptureKeyboard() {
		a.Camera.SetFocus(false)
		return
	}
	a.Camera.CursorMoved(x, y)
}

func (a *App) OnScroll(_, yoff float64) {
	if a.Capture.WantCaptureMouse() {
		return
	}
	a.Camera.Scrolled(yoff)
}

// OnFramebufferSize tracks the drawable size; the next frame uses it for
// the viewport and projection aspect.
func (a *App) OnFramebufferSize(width, height int) {
	a.viewport.Width = int32(width)
	a.viewport.Height = int32(height)
}

func (a *App) onModeChange(mode renderer.ShadingMode) {
	a.Modes.Set(mode)
	a.titleDirty = true
	slog.Debug("shading mode changed", "mode", mode.String())
}
