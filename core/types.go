package core

import (
	"asset-viewer/math"
)

type Color struct {
	R, G, B, A float32
}

var ColorWhite = Color{1, 1, 1, 1}

func (c Color) RGB() math.Vec3 {
	return math.Vec3{X: c.R, Y: c.G, Z: c.B}
}

type Vertex struct {
	Position  math.Vec3
	Normal    math.Vec3
	UV        math.Vec2
	Color     Color
	Tangent   math.Vec3
	Bitangent math.Vec3
}

// Transform places the viewed asset. Rotation holds Euler angles in degrees
// and Scale is uniform.
type Transform struct {
	Translation math.Vec3
	Rotation    math.Vec3
	Scale       float32
}

func NewTransform() Transform {
	return Transform{Scale: 1}
}

func (t Transform) GetMatrix() math.Mat4 {
	rot := math.Vec3{
		X: math.Radians(t.Rotation.X),
		Y: math.Radians(t.Rotation.Y),
		Z: math.Radians(t.Rotation.Z),
	}
	return math.Mat4TRS(t.Translation, rot, math.Vec3{X: t.Scale, Y: t.Scale, Z: t.Scale})
}

type Viewport struct {
	X, Y, Width, Height int32
}

func (v Viewport) Aspect() float32 {
	if v.Height <= 0 {
		return 1
	}
	return float32(v.Width) / float32(v.Height)
}
