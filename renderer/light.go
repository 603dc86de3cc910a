package renderer

import (
	"asset-viewer/math"

	"github.com/chewxy/math32"
)

const (
	// lightDistance places the shadow camera so the orbit target sits in
	// the middle of the [shadowNear, shadowFar] depth range.
	lightDistance = (shadowNear + shadowFar) / 2

	shadowExtent = 10
	shadowNear   = 1
	shadowFar    = 25
)

// Light is the single directional light. Angles are in degrees; the
// direction is recomputed from them every frame.
type Light struct {
	Elevation float32
	Azimuth   float32

	Color             math.Vec3
	Intensity         float32
	AmbientIntensity  float32
	SpecularIntensity float32

	Shadows bool
}

func DefaultLight() Light {
	return Light{
		Elevation:         45,
		Azimuth:           45,
		Color:             math.Vec3One,
		Intensity:         1,
		AmbientIntensity:  0.2,
		SpecularIntensity: 0.5,
		Shadows:           true,
	}
}

// Direction is the unit vector the light travels along, pointing from the
// sky toward the scene.
func (l Light) Direction() math.Vec3 {
	el := math.Radians(l.Elevation)
	az := math.Radians(l.Azimuth)
	toLight := math.Vec3{
		X: math32.Cos(el) * math32.Cos(az),
		Y: math32.Sin(el),
		Z: math32.Cos(el) * math32.Sin(az),
	}
	return toLight.Normalize().Negate()
}

// LightSpaceMatrix maps world space into the shadow map's clip space:
// an orthographic box looking at target along dir.
func LightSpaceMatrix(dir, target math.Vec3) math.Mat4 {
	dir = dir.Normalize()
	eye := target.Sub(dir.Mul(lightDistance))

	up := math.Vec3Up
	if math32.Abs(dir.Dot(up)) > 0.999 {
		up = math.Vec3{X: 0, Y: 0, Z: 1}
	}

	view := math.Mat4LookAt(eye, target, up)
	proj := math.Mat4Orthographic(-shadowExtent, shadowExtent, -shadowExtent, shadowExtent, shadowNear, shadowFar)
	return view.Mul(proj)
}
