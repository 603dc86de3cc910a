package gui

import (
	"github.com/chewxy/math32"

	"asset-viewer/core"
	"asset-viewer/math"
	"asset-viewer/renderer"
	"asset-viewer/scene"
)

// Params is every value the panel edits. The frame loop reads it each
// frame to fill the shader uniforms; nothing else writes it.
type Params struct {
	LightIntensity    float32
	AmbientIntensity  float32
	SpecularIntensity float32
	Shininess         float32
	LightColor        math.Vec3
	LightElevation    float32
	LightAzimuth      float32
	Shadows           bool

	Translation math.Vec3
	Rotation    math.Vec3
	Scale       float32

	Background     core.Color
	WireframeColor math.Vec3
	ShowGround     bool

	Mode         renderer.ShadingMode
	TexturePaths [scene.TextureKindCount]string
}

func DefaultParams() Params {
	light := renderer.DefaultLight()
	return Params{
		LightIntensity:    light.Intensity,
		AmbientIntensity:  light.AmbientIntensity,
		SpecularIntensity: light.SpecularIntensity,
		Shininess:         32,
		LightColor:        light.Color,
		LightElevation:    light.Elevation,
		LightAzimuth:      light.Azimuth,
		Shadows:           light.Shadows,
		Scale:             1,
		Background:        core.Color{R: 0.1, G: 0.1, B: 0.12, A: 1},
		WireframeColor:    math.Vec3{X: 0.2, Y: 1, Z: 0.4},
		ShowGround:        true,
		Mode:              renderer.ModeLit,
	}
}

// Light builds the light descriptor for this frame.
func (p *Params) Light() renderer.Light {
	return renderer.Light{
		Elevation:         p.LightElevation,
		Azimuth:           p.LightAzimuth,
		Color:             p.LightColor,
		Intensity:         p.LightIntensity,
		AmbientIntensity:  p.AmbientIntensity,
		SpecularIntensity: p.SpecularIntensity,
		Shadows:           p.Shadows,
	}
}

func (p *Params) Transform() core.Transform {
	return core.Transform{
		Translation: p.Translation,
		Rotation:    p.Rotation,
		Scale:       p.Scale,
	}
}

// Range is the span a widget lets a value take.
type Range struct {
	Min, Max float32
}

func (r Range) clamp(v float32) float32 {
	return math.Clamp(v, r.Min, r.Max)
}

// wrap folds v into [Min, Max) for angles that go round.
func (r Range) wrap(v float32) float32 {
	span := r.Max - r.Min
	v = math32.Mod(v-r.Min, span)
	if v < 0 {
		v += span
	}
	return v + r.Min
}

var (
	IntensityRange   = Range{0, 5}
	AmbientRange     = Range{0, 1}
	SpecularRange    = Range{0, 2}
	ShininessRange   = Range{1, 256}
	ElevationRange   = Range{-90, 90}
	AzimuthRange     = Range{0, 360}
	TranslationRange = Range{-10, 10}
	RotationRange    = Range{-180, 180}
	ScaleRange       = Range{0.05, 10}
	colorRange       = Range{0, 1}
)

// Clamp pulls every value back into the span its widget allows. Drag
// widgets can overshoot and typed input is unbounded, so the frame loop
// calls this after the panel is drawn.
func (p *Params) Clamp() {
	p.LightIntensity = IntensityRange.clamp(p.LightIntensity)
	p.AmbientIntensity = AmbientRange.clamp(p.AmbientIntensity)
	p.SpecularIntensity = SpecularRange.clamp(p.SpecularIntensity)
	p.Shininess = ShininessRange.clamp(p.Shininess)
	p.LightElevation = ElevationRange.clamp(p.LightElevation)
	p.LightAzimuth = AzimuthRange.wrap(p.LightAzimuth)

	p.Translation = math.Vec3{
		X: TranslationRange.clamp(p.Translation.X),
		Y: TranslationRange.clamp(p.Translation.Y),
		Z: TranslationRange.clamp(p.Translation.Z),
	}
	p.Rotation = math.Vec3{
		X: RotationRange.wrap(p.Rotation.X),
		Y: RotationRange.wrap(p.Rotation.Y),
		Z: RotationRange.wrap(p.Rotation.Z),
	}
	p.Scale = ScaleRange.clamp(p.Scale)

	p.LightColor = clampColor(p.LightColor)
	p.WireframeColor = clampColor(p.WireframeColor)
	p.Background.R = colorRange.clamp(p.Background.R)
	p.Background.G = colorRange.clamp(p.Background.G)
	p.Background.B = colorRange.clamp(p.Background.B)
}

func clampColor(c math.Vec3) math.Vec3 {
	return math.Vec3{X: colorRange.clamp(c.X), Y: colorRange.clamp(c.Y), Z: colorRange.clamp(c.Z)}
}
