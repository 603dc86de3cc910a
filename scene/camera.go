package scene

import (
	"asset-viewer/math"

	"github.com/chewxy/math32"
)

const (
	defaultYaw         = 90
	defaultPitch       = 0
	defaultRadius      = 5
	defaultSensitivity = 0.1
	fieldOfView        = 45

	minPitch  = -89
	maxPitch  = 89
	minRadius = 1
	maxRadius = 50

	nearPlane = 0.1
	farPlane  = 100
)

// OrbitCamera circles a fixed target. Yaw and pitch are in degrees and the
// position always lies on the sphere of the current radius around the
// target. Cursor movement only orbits while the camera is focused, which the
// viewer ties to the left mouse button.
type OrbitCamera struct {
	Target  math.Vec3
	WorldUp math.Vec3

	yaw         float32
	pitch       float32
	radius      float32
	sensitivity float32

	position math.Vec3
	front    math.Vec3
	right    math.Vec3
	up       math.Vec3
	view     math.Mat4

	focused    bool
	firstMouse bool
	lastX      float64
	lastY      float64
}

func NewOrbitCamera() *OrbitCamera {
	c := &OrbitCamera{
		Target:      math.Vec3Zero,
		WorldUp:     math.Vec3Up,
		yaw:         defaultYaw,
		pitch:       defaultPitch,
		radius:      defaultRadius,
		sensitivity: defaultSensitivity,
		firstMouse:  true,
	}
	c.update()
	return c
}

// CursorMoved feeds an absolute cursor position. The first event after
// focus is gained only records the reference point.
func (c *OrbitCamera) CursorMoved(x, y float64) {
	if !c.focused {
		return
	}
	if c.firstMouse {
		c.lastX = x
		c.lastY = y
		c.firstMouse = false
		return
	}

	dx := float32(x-c.lastX) * c.sensitivity
	dy := float32(c.lastY-y) * c.sensitivity
	c.lastX = x
	c.lastY = y

	c.yaw += dx
	c.pitch = math.Clamp(c.pitch-dy, minPitch, maxPitch)
	c.update()
}

// Scrolled zooms toward or away from the target. It works regardless of
// focus.
func (c *OrbitCamera) Scrolled(dy float64) {
	c.radius = math.Clamp(c.radius-float32(dy), minRadius, maxRadius)
	c.update()
}

// SetFocus enables or disables orbiting. Either way the next cursor event
// becomes the new reference point, so regaining focus never jumps.
func (c *OrbitCamera) SetFocus(focused bool) {
	c.focused = focused
	c.firstMouse = true
}

func (c *OrbitCamera) Focused() bool { return c.focused }

func (c *OrbitCamera) ViewMatrix() math.Mat4 { return c.view }

// FieldOfView is the vertical field of view in degrees.
func (c *OrbitCamera) FieldOfView() float32 { return fieldOfView }

func (c *OrbitCamera) ProjectionMatrix(aspect float32) math.Mat4 {
	return math.Mat4Perspective(math.Radians(fieldOfView), aspect, nearPlane, farPlane)
}

func (c *OrbitCamera) Position() math.Vec3 { return c.position }
func (c *OrbitCamera) Front() math.Vec3    { return c.front }
func (c *OrbitCamera) Right() math.Vec3    { return c.right }
func (c *OrbitCamera) Up() math.Vec3       { return c.up }
func (c *OrbitCamera) Yaw() float32        { return c.yaw }
func (c *OrbitCamera) Pitch() float32      { return c.pitch }
func (c *OrbitCamera) Radius() float32     { return c.radius }

func (c *OrbitCamera) update() {
	yaw := math.Radians(c.yaw)
	pitch := math.Radians(c.pitch)

	offset := math.Vec3{
		X: math32.Cos(pitch) * math32.Cos(yaw),
		Y: math32.Sin(pitch),
		Z: math32.Cos(pitch) * math32.Sin(yaw),
	}
	c.position = c.Target.Add(offset.Mul(c.radius))

	c.front = c.Target.Sub(c.position).Normalize()
	c.right = c.front.Cross(c.WorldUp).Normalize()
	c.up = c.right.Cross(c.front).Normalize()
	c.view = math.Mat4LookAt(c.position, c.Target, c.up)
}
