package renderer

import (
	"errors"
	"fmt"

	"asset-viewer/math"
)

// ShadingMode selects which program draws the colour pass. Exactly one mode
// is active at a time.
type ShadingMode int

const (
	ModeLit ShadingMode = iota
	ModeWireframe
	ModeUnlit
)

func (m ShadingMode) String() string {
	switch m {
	case ModeLit:
		return "lit"
	case ModeWireframe:
		return "wireframe"
	case ModeUnlit:
		return "unlit"
	}
	return fmt.Sprintf("ShadingMode(%d)", int(m))
}

// ShaderProgram is a linked GPU program. Setters resolve the uniform by
// name on every call; a name the program does not use is silently ignored.
type ShaderProgram interface {
	Use()
	SetInt(name string, v int32)
	SetFloat(name string, v float32)
	SetVec3(name string, v math.Vec3)
	SetMat4(name string, m math.Mat4)
}

// Programs holds the depth program and one colour program per mode.
type Programs struct {
	Depth     ShaderProgram
	Lit       ShaderProgram
	Wireframe ShaderProgram
	Unlit     ShaderProgram
}

// For resolves a mode to its program. Unknown modes fall back to Lit.
func (p Programs) For(mode ShadingMode) ShaderProgram {
	switch mode {
	case ModeWireframe:
		return p.Wireframe
	case ModeUnlit:
		return p.Unlit
	}
	return p.Lit
}

// NullProgram stands in for a program that failed to build. Everything it
// is asked to draw comes out blank.
type NullProgram struct{}

func (NullProgram) Use()                      {}
func (NullProgram) SetInt(string, int32)      {}
func (NullProgram) SetFloat(string, float32)  {}
func (NullProgram) SetVec3(string, math.Vec3) {}
func (NullProgram) SetMat4(string, math.Mat4) {}

// ProgramLoader builds one named program. On failure it may still return a
// program to stand in for the broken one.
type ProgramLoader func(name string) (ShaderProgram, error)

// ProgramNames are the file stems LoadPrograms asks for.
var ProgramNames = [4]string{"depth", "lit", "wireframe", "unlit"}

// LoadPrograms builds every program. A failure is not fatal: the broken
// program is replaced and the viewer keeps running with the rest, while the
// joined error tells the caller what went wrong.
func LoadPrograms(load ProgramLoader) (Programs, error) {
	var errs []error
	built := make([]ShaderProgram, len(ProgramNames))
	for i, name := range ProgramNames {
		p, err := load(name)
		if err != nil {
			errs = append(errs, fmt.Errorf("program %s: %w", name, err))
		}
		if p == nil {
			p = NullProgram{}
		}
		built[i] = p
	}
	return Programs{
		Depth:     built[0],
		Lit:       built[1],
		Wireframe: built[2],
		Unlit:     built[3],
	}, errors.Join(errs...)
}

// StateDevice owns the rasterizer state the viewer toggles.
type StateDevice interface {
	SetCulling(enabled bool)
	SetWireframe(enabled bool)
	SetMultisample(enabled bool)
}

// ModeSwitch couples the shading mode with the raster state it needs:
// wireframe draws lines with culling off, the other modes fill with back
// faces culled.
type ModeSwitch struct {
	dev  StateDevice
	mode ShadingMode
}

func NewModeSwitch(dev StateDevice, mode ShadingMode) *ModeSwitch {
	s := &ModeSwitch{dev: dev}
	s.Set(mode)
	return s
}

func (s *ModeSwitch) Mode() ShadingMode { return s.mode }

// Set activates mode and applies its culling and fill state in one step.
func (s *ModeSwitch) Set(mode ShadingMode) {
	switch mode {
	case ModeLit, ModeWireframe, ModeUnlit:
	default:
		mode = ModeLit
	}
	s.mode = mode
	wire := mode == ModeWireframe
	s.dev.SetCulling(!wire)
	s.dev.SetWireframe(wire)
}

// SetPolygonFill overrides the fill state without changing the mode, for
// the fill/line hotkeys.
func (s *ModeSwitch) SetPolygonFill(fill bool) {
	s.dev.SetWireframe(!fill)
}

func (s *ModeSwitch) SetMultisample(enabled bool) {
	s.dev.SetMultisample(enabled)
}
