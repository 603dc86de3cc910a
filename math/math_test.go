package math

import (
	"testing"

	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
)

const eps = 1e-5

// assertMatchesMGL compares a Mat4 against an mgl32 matrix. Both are
// column-major, so m[c][r] corresponds to want[c*4+r].
func assertMatchesMGL(t *testing.T, want mgl32.Mat4, got Mat4) {
	t.Helper()
	for c := 0; c < 4; c++ {
		for r := 0; r < 4; r++ {
			assert.InDelta(t, want[c*4+r], got[c][r], eps, "element col %d row %d", c, r)
		}
	}
}

func assertVec3(t *testing.T, want, got Vec3) {
	t.Helper()
	assert.InDelta(t, want.X, got.X, eps, "x")
	assert.InDelta(t, want.Y, got.Y, eps, "y")
	assert.InDelta(t, want.Z, got.Z, eps, "z")
}

func TestVec3Operations(t *testing.T) {
	v1 := NewVec3(1, 2, 3)
	v2 := NewVec3(4, 5, 6)

	assert.Equal(t, NewVec3(5, 7, 9), v1.Add(v2))
	assert.Equal(t, NewVec3(3, 3, 3), v2.Sub(v1))
	assert.Equal(t, NewVec3(2, 4, 6), v1.Mul(2))
	assert.Equal(t, float32(32), v1.Dot(v2))

	// Right x Up = Front in a right-handed system
	assert.Equal(t, Vec3Front, Vec3Right.Cross(Vec3Up))

	assert.Equal(t, NewVec3(1, 2, 3), v1.Min(v2))
	assert.Equal(t, NewVec3(4, 5, 6), v2.Max(v1))
}

func TestVec3Normalize(t *testing.T) {
	n := NewVec3(3, 0, 0).Normalize()
	assert.Equal(t, NewVec3(1, 0, 0), n)
	assert.InDelta(t, 1, n.Length(), eps)

	// zero vector stays zero instead of producing NaN
	assert.Equal(t, Vec3Zero, Vec3Zero.Normalize())
}

func TestScalarHelpers(t *testing.T) {
	assert.InDelta(t, math32.Pi/2, Radians(90), eps)
	assert.InDelta(t, 180, Degrees(math32.Pi), 1e-3)
	assert.Equal(t, float32(89), Clamp(120, -89, 89))
	assert.Equal(t, float32(-89), Clamp(-90, -89, 89))
	assert.Equal(t, float32(10), Clamp(10, -89, 89))
}

func TestMat4Identity(t *testing.T) {
	assertMatchesMGL(t, mgl32.Ident4(), Mat4Identity())
}

func TestMat4Multiplication(t *testing.T) {
	a := Mat4Translation(NewVec3(1, 2, 3))
	b := Mat4Scale(NewVec3(2, 3, 4))

	// a.Mul(b) applies a first, which is b*a in column-vector notation
	want := mgl32.Scale3D(2, 3, 4).Mul4(mgl32.Translate3D(1, 2, 3))
	assertMatchesMGL(t, want, a.Mul(b))
}

func TestMat4Translation(t *testing.T) {
	m := Mat4Translation(NewVec3(10, 20, 30))
	assertVec3(t, NewVec3(11, 22, 33), m.MulVec3(NewVec3(1, 2, 3)))
	assertVec3(t, NewVec3(1, 2, 3), m.MulDir(NewVec3(1, 2, 3)))
}

func TestMat4TRSOrder(t *testing.T) {
	m := Mat4TRS(NewVec3(1, 2, 3), NewVec3(0, math32.Pi/2, 0), NewVec3(2, 2, 2))

	want := mgl32.Translate3D(1, 2, 3).
		Mul4(mgl32.HomogRotate3DY(math32.Pi / 2)).
		Mul4(mgl32.Scale3D(2, 2, 2))
	assertMatchesMGL(t, want, m)

	// (1,0,0) scaled to (2,0,0), rotated to (0,0,-2), translated
	assertVec3(t, NewVec3(1, 2, 1), m.MulVec3(NewVec3(1, 0, 0)))
}

func TestMat4Rotation(t *testing.T) {
	euler := NewVec3(0.3, -0.7, 1.1)
	want := mgl32.HomogRotate3DZ(1.1).
		Mul4(mgl32.HomogRotate3DY(-0.7)).
		Mul4(mgl32.HomogRotate3DX(0.3))
	assertMatchesMGL(t, want, Mat4Rotation(euler))
}

func TestMat4Perspective(t *testing.T) {
	fov := Radians(45)
	want := mgl32.Perspective(fov, 16.0/9.0, 0.1, 100)
	assertMatchesMGL(t, want, Mat4Perspective(fov, 16.0/9.0, 0.1, 100))
}

func TestMat4Orthographic(t *testing.T) {
	want := mgl32.Ortho(-10, 10, -10, 10, 1, 25)
	assertMatchesMGL(t, want, Mat4Orthographic(-10, 10, -10, 10, 1, 25))
}

func TestMat4LookAt(t *testing.T) {
	eye := NewVec3(3, 4, 5)
	want := mgl32.LookAtV(mgl32.Vec3{3, 4, 5}, mgl32.Vec3{0, 0, 0}, mgl32.Vec3{0, 1, 0})
	m := Mat4LookAt(eye, Vec3Zero, Vec3Up)
	assertMatchesMGL(t, want, m)

	// the eye lands at the view-space origin
	assertVec3(t, Vec3Zero, m.MulVec3(eye))
}

func TestMat4Transpose(t *testing.T) {
	m := Mat4Translation(NewVec3(1, 2, 3))
	assertMatchesMGL(t, mgl32.Translate3D(1, 2, 3).Transpose(), m.Transpose())
}

func TestMat4NormalMatrix(t *testing.T) {
	gl := mgl32.Translate3D(4, -2, 1).Mul4(mgl32.HomogRotate3DY(0.6)).Mul4(mgl32.Scale3D(2, 1, 0.5))
	m := Mat4Scale(NewVec3(2, 1, 0.5)).Mul(Mat4RotationY(0.6)).Mul(Mat4Translation(NewVec3(4, -2, 1)))
	assertMatchesMGL(t, gl, m)

	want := gl.Mat3().Inv().Transpose()
	got := m.NormalMatrix()
	for c := 0; c < 3; c++ {
		for r := 0; r < 3; r++ {
			assert.InDelta(t, want[c*3+r], got[c][r], eps, "element col %d row %d", c, r)
		}
	}
	assert.Equal(t, float32(0), got[3][0], "translation dropped")
	assert.InDelta(t, gl.Mat3().Det(), m.Determinant3(), eps)
}

func TestMat4NormalMatrixKeepsNormalsPerpendicular(t *testing.T) {
	// A 45 degree surface squashed along X.
	m := Mat4Scale(NewVec3(2, 1, 1))
	n := Vec3{X: 1, Y: 1}.Normalize()
	edge := Vec3{X: 1, Y: -1}

	got := m.NormalMatrix().MulDir(n).Normalize()
	assert.InDelta(t, 0, got.Dot(m.MulDir(edge)), eps)
	assertVec3(t, NewVec3(1, 2, 0).Normalize(), got)
}

func TestMat4Determinant3Mirror(t *testing.T) {
	assert.Less(t, Mat4Scale(NewVec3(-1, 1, 1)).Determinant3(), float32(0))
	assert.InDelta(t, 1, Mat4RotationZ(1.2).Mul(Mat4Translation(NewVec3(3, 3, 3))).Determinant3(), eps)
	assert.Equal(t, Mat4Identity(), Mat4Scale(NewVec3(0, 1, 1)).Inverse3())
}

func TestQuaternionIdentity(t *testing.T) {
	q := QuaternionIdentity()
	assertVec3(t, NewVec3(1, 2, 3), q.RotateVector(NewVec3(1, 2, 3)))
}

func TestQuaternionRotation(t *testing.T) {
	q := QuaternionFromAxisAngle(Vec3Up, math32.Pi/2)
	assertVec3(t, NewVec3(0, 0, -1), q.RotateVector(Vec3Right))

	want := mgl32.QuatRotate(math32.Pi/2, mgl32.Vec3{0, 1, 0}).Mat4()
	assertMatchesMGL(t, want, q.ToMat4())
}

func TestQuaternionNormalize(t *testing.T) {
	q := Quaternion{X: 0, Y: 2, Z: 0, W: 0}.Normalize()
	assert.InDelta(t, 1, q.Y, eps)
}

func BenchmarkVec3Add(b *testing.B) {
	v1 := NewVec3(1, 2, 3)
	v2 := NewVec3(4, 5, 6)
	for i := 0; i < b.N; i++ {
		_ = v1.Add(v2)
	}
}

func BenchmarkMat4Mul(b *testing.B) {
	m1 := Mat4Identity()
	m2 := Mat4Translation(NewVec3(1, 2, 3))
	for i := 0; i < b.N; i++ {
		_ = m1.Mul(m2)
	}
}
