package scenegraph

import (
	"github.com/go-gl/mathgl/mgl32"
)

// Object3D and Scene3D are the rigid 3D instantiations of the graph.
type (
	Object3D = Object[Rigid3D]
	Scene3D  = Object[Rigid3D]

	// MatrixObject3D allows scaling and shearing in the hierarchy.
	MatrixObject3D = Object[Matrix3D]
)

// NewScene3D creates a rigid 3D scene root.
func NewScene3D() *Scene3D {
	return NewScene[Rigid3D]()
}

// NewObject3D creates a rigid 3D object attached to parent.
func NewObject3D(parent *Object3D) *Object3D {
	return NewObject(parent)
}

// --- Matrix3D ---

// Matrix3D is a general affine 3D transformation stored as a 4x4
// homogeneous matrix.
type Matrix3D struct {
	m mgl32.Mat4
}

// NewMatrix3D wraps an arbitrary affine matrix.
func NewMatrix3D(m mgl32.Mat4) Matrix3D {
	return Matrix3D{m}
}

// Compose returns t * other.
func (t Matrix3D) Compose(other Matrix3D) Matrix3D {
	return Matrix3D{t.m.Mul4(other.m)}
}

// Inverted returns the general matrix inverse.
func (t Matrix3D) Inverted() Matrix3D {
	return Matrix3D{t.m.Inv()}
}

// Identity returns the identity transformation.
func (Matrix3D) Identity() Matrix3D {
	return Matrix3D{mgl32.Ident4()}
}

// Matrix materializes the transformation as a dense matrix.
func (t Matrix3D) Matrix() mgl32.Mat4 {
	return t.m
}

// ScalingMatrix3D returns an affine transformation scaling by v.
func ScalingMatrix3D(v mgl32.Vec3) Matrix3D {
	return Matrix3D{mgl32.Scale3D(v.X(), v.Y(), v.Z())}
}

// TranslationMatrix3D returns an affine transformation translating by v.
func TranslationMatrix3D(v mgl32.Vec3) Matrix3D {
	return Matrix3D{mgl32.Translate3D(v.X(), v.Y(), v.Z())}
}

// RotationMatrix3D returns an affine rotation by angle radians around axis.
func RotationMatrix3D(angle float32, axis mgl32.Vec3) Matrix3D {
	return Matrix3D{mgl32.HomogRotate3D(angle, axis.Normalize())}
}

// --- Rigid3D ---

// Rigid3D is a 3D transformation restricted to rotation, reflection and
// translation, stored as a 4x4 homogeneous matrix whose rotation part stays
// orthogonal.
type Rigid3D struct {
	m mgl32.Mat4
}

// NewRigid3D wraps a matrix that must already be rigid. Panics when the
// rotation part is not orthogonal or the bottom row is not (0, 0, 0, 1).
func NewRigid3D(m mgl32.Mat4) Rigid3D {
	if !isRigid3D(m) {
		panic("rowan/scenegraph: matrix is not rigid")
	}
	return Rigid3D{m}
}

func isRigid3D(m mgl32.Mat4) bool {
	c0 := mgl32.Vec3{m.At(0, 0), m.At(1, 0), m.At(2, 0)}
	c1 := mgl32.Vec3{m.At(0, 1), m.At(1, 1), m.At(2, 1)}
	c2 := mgl32.Vec3{m.At(0, 2), m.At(1, 2), m.At(2, 2)}
	return mgl32.FloatEqualThreshold(c0.Dot(c0), 1, rigidEpsilon) &&
		mgl32.FloatEqualThreshold(c1.Dot(c1), 1, rigidEpsilon) &&
		mgl32.FloatEqualThreshold(c2.Dot(c2), 1, rigidEpsilon) &&
		mgl32.FloatEqualThreshold(c0.Dot(c1), 0, rigidEpsilon) &&
		mgl32.FloatEqualThreshold(c0.Dot(c2), 0, rigidEpsilon) &&
		mgl32.FloatEqualThreshold(c1.Dot(c2), 0, rigidEpsilon) &&
		mgl32.FloatEqualThreshold(m.At(3, 0), 0, rigidEpsilon) &&
		mgl32.FloatEqualThreshold(m.At(3, 1), 0, rigidEpsilon) &&
		mgl32.FloatEqualThreshold(m.At(3, 2), 0, rigidEpsilon) &&
		mgl32.FloatEqualThreshold(m.At(3, 3), 1, rigidEpsilon)
}

// Compose returns t * other. The product of two rigid transformations is
// rigid.
func (t Rigid3D) Compose(other Rigid3D) Rigid3D {
	return Rigid3D{t.m.Mul4(other.m)}
}

// Inverted returns the inverse using the orthogonality of the rotation
// part: R⁻¹ = Rᵀ, t⁻¹ = -Rᵀt.
func (t Rigid3D) Inverted() Rigid3D {
	m := t.m
	// Transposed rotation block, row-indexed: i[r][c] = m[c][r].
	var i [3][3]float32
	for r := 0; r < 3; r++ {
		for c := 0; c < 3; c++ {
			i[r][c] = m.At(c, r)
		}
	}
	tx, ty, tz := m.At(0, 3), m.At(1, 3), m.At(2, 3)
	return Rigid3D{mgl32.Mat4{
		i[0][0], i[1][0], i[2][0], 0,
		i[0][1], i[1][1], i[2][1], 0,
		i[0][2], i[1][2], i[2][2], 0,
		-(i[0][0]*tx + i[0][1]*ty + i[0][2]*tz),
		-(i[1][0]*tx + i[1][1]*ty + i[1][2]*tz),
		-(i[2][0]*tx + i[2][1]*ty + i[2][2]*tz),
		1,
	}}
}

// Identity returns the identity transformation.
func (Rigid3D) Identity() Rigid3D {
	return Rigid3D{mgl32.Ident4()}
}

// Matrix materializes the transformation as a dense matrix.
func (t Rigid3D) Matrix() mgl32.Mat4 {
	return t.m
}

// Normalized re-orthonormalizes the rotation part with Gram-Schmidt.
func (t Rigid3D) Normalized() Rigid3D {
	c0 := mgl32.Vec3{t.m.At(0, 0), t.m.At(1, 0), t.m.At(2, 0)}.Normalize()
	c1 := mgl32.Vec3{t.m.At(0, 1), t.m.At(1, 1), t.m.At(2, 1)}
	c1 = c1.Sub(c0.Mul(c0.Dot(c1))).Normalize()
	c2 := mgl32.Vec3{t.m.At(0, 2), t.m.At(1, 2), t.m.At(2, 2)}
	c2 = c2.Sub(c0.Mul(c0.Dot(c2))).Sub(c1.Mul(c1.Dot(c2))).Normalize()
	return Rigid3D{mgl32.Mat4{
		c0.X(), c0.Y(), c0.Z(), 0,
		c1.X(), c1.Y(), c1.Z(), 0,
		c2.X(), c2.Y(), c2.Z(), 0,
		t.m.At(0, 3), t.m.At(1, 3), t.m.At(2, 3), 1,
	}}
}

// Translation3D returns a rigid transformation translating by v.
func Translation3D(v mgl32.Vec3) Rigid3D {
	return Rigid3D{mgl32.Translate3D(v.X(), v.Y(), v.Z())}
}

// Rotation3D returns a rigid rotation by angle radians around axis. The
// axis is normalized first.
func Rotation3D(angle float32, axis mgl32.Vec3) Rigid3D {
	return Rigid3D{mgl32.HomogRotate3D(angle, axis.Normalize())}
}

// Reflection3D returns a rigid reflection across the plane through the
// origin with the given normal. The normal is normalized first.
func Reflection3D(normal mgl32.Vec3) Rigid3D {
	n := normal.Normalize()
	x, y, z := n.X(), n.Y(), n.Z()
	return Rigid3D{mgl32.Mat4{
		1 - 2*x*x, -2 * x * y, -2 * x * z, 0,
		-2 * x * y, 1 - 2*y*y, -2 * y * z, 0,
		-2 * x * z, -2 * y * z, 1 - 2*z*z, 0,
		0, 0, 0, 1,
	}}
}
