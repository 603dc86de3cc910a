// Package ui runs the Dear ImGui context behind the parameter window. It
// turns window events into ImGui input and builds the panel widgets each
// frame; internal/opengl draws the result.
package ui

import (
	"unsafe"

	imgui "github.com/AllenDang/cimgui-go"

	"asset-viewer/internal/window"
)

var keyMap = map[int]imgui.Key{
	window.KeyTab:          imgui.KeyTab,
	window.KeyLeft:         imgui.KeyLeftArrow,
	window.KeyRight:        imgui.KeyRightArrow,
	window.KeyUp:           imgui.KeyUpArrow,
	window.KeyDown:         imgui.KeyDownArrow,
	window.KeyPageUp:       imgui.KeyPageUp,
	window.KeyPageDown:     imgui.KeyPageDown,
	window.KeyHome:         imgui.KeyHome,
	window.KeyEnd:          imgui.KeyEnd,
	window.KeyInsert:       imgui.KeyInsert,
	window.KeyDelete:       imgui.KeyDelete,
	window.KeyBackspace:    imgui.KeyBackspace,
	window.KeySpace:        imgui.KeySpace,
	window.KeyEnter:        imgui.KeyEnter,
	window.KeyKPEnter:      imgui.KeyKeypadEnter,
	window.KeyEscape:       imgui.KeyEscape,
	window.KeyA:            imgui.KeyA,
	window.KeyC:            imgui.KeyC,
	window.KeyV:            imgui.KeyV,
	window.KeyX:            imgui.KeyX,
	window.KeyY:            imgui.KeyY,
	window.KeyZ:            imgui.KeyZ,
	window.KeyLeftShift:    imgui.KeyLeftShift,
	window.KeyLeftControl:  imgui.KeyLeftCtrl,
	window.KeyLeftAlt:      imgui.KeyLeftAlt,
	window.KeyLeftSuper:    imgui.KeyLeftSuper,
	window.KeyRightShift:   imgui.KeyRightShift,
	window.KeyRightControl: imgui.KeyRightCtrl,
	window.KeyRightAlt:     imgui.KeyRightAlt,
	window.KeyRightSuper:   imgui.KeyRightSuper,
}

// Layer owns the ImGui context. All methods must run on the thread that
// owns the GL context.
type Layer struct {
	ctx *imgui.Context
}

func New() *Layer {
	ctx := imgui.CreateContext()
	io := imgui.CurrentIO()
	io.SetIniFilename("")
	io.SetBackendFlags(io.BackendFlags() | imgui.BackendFlagsRendererHasVtxOffset)
	imgui.StyleColorsDark()
	return &Layer{ctx: ctx}
}

func (l *Layer) Destroy() {
	if l.ctx == nil {
		return
	}
	imgui.DestroyContextV(l.ctx)
	l.ctx = nil
}

// FontAtlas returns the RGBA pixels of the font atlas for upload.
func (l *Layer) FontAtlas() (pixels unsafe.Pointer, width, height int32) {
	pixels, width, height, _ = imgui.CurrentIO().Fonts().GetTextureDataAsRGBA32()
	return pixels, width, height
}

// SetFontTexture tells ImGui which GL texture holds the font atlas.
func (l *Layer) SetFontTexture(tex uint32) {
	imgui.CurrentIO().Fonts().SetTexID(TextureID(tex))
}

// TextureID wraps a GL texture name for ImGui draw commands.
func TextureID(tex uint32) imgui.TextureID {
	return imgui.TextureID{Data: uintptr(tex)}
}

// GLTexture is the inverse of TextureID.
func GLTexture(id imgui.TextureID) uint32 {
	return uint32(id.Data)
}

func (l *Layer) MousePosEvent(x, y float64) {
	imgui.CurrentIO().AddMousePosEvent(float32(x), float32(y))
}

// MouseButtonEvent takes a window button code; left, right and middle map
// to ImGui buttons 0, 1 and 2.
func (l *Layer) MouseButtonEvent(button int, down bool) {
	var b int32
	switch button {
	case window.MouseButtonLeft:
		b = 0
	case window.MouseButtonRight:
		b = 1
	case window.MouseButtonMiddle:
		b = 2
	default:
		return
	}
	imgui.CurrentIO().AddMouseButtonEvent(b, down)
}

func (l *Layer) ScrollEvent(xoff, yoff float64) {
	imgui.CurrentIO().AddMouseWheelEvent(float32(xoff), float32(yoff))
}

// KeyEvent forwards a window key and modifier state. Keys ImGui has no use
// for are dropped.
func (l *Layer) KeyEvent(key int, down bool, mods int) {
	io := imgui.CurrentIO()
	io.AddKeyEvent(imgui.ModCtrl, mods&window.ModControl != 0)
	io.AddKeyEvent(imgui.ModShift, mods&window.ModShift != 0)
	io.AddKeyEvent(imgui.ModAlt, mods&window.ModAlt != 0)
	io.AddKeyEvent(imgui.ModSuper, mods&window.ModSuper != 0)
	if k, ok := keyMap[key]; ok {
		io.AddKeyEvent(k, down)
	}
}

func (l *Layer) CharEvent(r rune) {
	imgui.CurrentIO().AddInputCharactersUTF8(string(r))
}

// NewFrame starts a frame. The window size is in screen coordinates and
// the framebuffer size in pixels; they differ on high-DPI displays.
func (l *Layer) NewFrame(winW, winH, fbW, fbH int, dt float64) {
	io := imgui.CurrentIO()
	io.SetDisplaySize(imgui.Vec2{X: float32(winW), Y: float32(winH)})
	if winW > 0 && winH > 0 {
		io.SetDisplayFramebufferScale(imgui.Vec2{
			X: float32(fbW) / float32(winW),
			Y: float32(fbH) / float32(winH),
		})
	}
	if dt <= 0 {
		dt = 1.0 / 60
	}
	io.SetDeltaTime(float32(dt))
	imgui.NewFrame()
}

// Render ends the frame and returns what to draw.
func (l *Layer) Render() *imgui.DrawData {
	imgui.Render()
	return imgui.CurrentDrawData()
}

func (l *Layer) WantCaptureMouse() bool {
	return imgui.CurrentIO().WantCaptureMouse()
}

func (l *Layer) WantCaptureKeyboard() bool {
	return imgui.CurrentIO().WantCaptureKeyboard()
}

// Framerate is ImGui's rolling average of frames per second.
func (l *Layer) Framerate() float32 {
	return imgui.CurrentIO().Framerate()
}
