package scenegraph

import (
	"github.com/go-gl/mathgl/mgl32"
)

// rigidEpsilon is the tolerance used when validating that a matrix is
// rigid (orthogonal rotation part, affine bottom row).
const rigidEpsilon = 1e-5

// Object2D and Scene2D are the rigid 2D instantiations of the graph,
// the common case for game scenes.
type (
	Object2D = Object[Rigid2D]
	Scene2D  = Object[Rigid2D]

	// MatrixObject2D allows scaling and shearing in the hierarchy.
	MatrixObject2D = Object[Matrix2D]
)

// NewScene2D creates a rigid 2D scene root.
func NewScene2D() *Scene2D {
	return NewScene[Rigid2D]()
}

// NewObject2D creates a rigid 2D object attached to parent.
func NewObject2D(parent *Object2D) *Object2D {
	return NewObject(parent)
}

// --- Matrix2D ---

// Matrix2D is a general affine 2D transformation stored as a 3x3
// homogeneous matrix. It supports scaling and shearing in addition to the
// rigid operations.
type Matrix2D struct {
	m mgl32.Mat3
}

// NewMatrix2D wraps an arbitrary affine matrix.
func NewMatrix2D(m mgl32.Mat3) Matrix2D {
	return Matrix2D{m}
}

// Compose returns t * other.
func (t Matrix2D) Compose(other Matrix2D) Matrix2D {
	return Matrix2D{t.m.Mul3(other.m)}
}

// Inverted returns the general matrix inverse.
func (t Matrix2D) Inverted() Matrix2D {
	return Matrix2D{t.m.Inv()}
}

// Identity returns the identity transformation.
func (Matrix2D) Identity() Matrix2D {
	return Matrix2D{mgl32.Ident3()}
}

// Matrix materializes the transformation as a dense matrix.
func (t Matrix2D) Matrix() mgl32.Mat3 {
	return t.m
}

// ScalingMatrix2D returns an affine transformation scaling by v.
func ScalingMatrix2D(v mgl32.Vec2) Matrix2D {
	return Matrix2D{mgl32.Scale2D(v.X(), v.Y())}
}

// TranslationMatrix2D returns an affine transformation translating by v.
func TranslationMatrix2D(v mgl32.Vec2) Matrix2D {
	return Matrix2D{mgl32.Translate2D(v.X(), v.Y())}
}

// RotationMatrix2D returns an affine counterclockwise rotation by angle
// radians.
func RotationMatrix2D(angle float32) Matrix2D {
	return Matrix2D{mgl32.HomogRotate2D(angle)}
}

// --- Rigid2D ---

// Rigid2D is a 2D transformation restricted to rotation, reflection and
// translation, stored as a 3x3 homogeneous matrix whose rotation part stays
// orthogonal. Composition preserves rigidity, which keeps inversion cheap
// (transpose instead of a full inverse).
type Rigid2D struct {
	m mgl32.Mat3
}

// NewRigid2D wraps a matrix that must already be rigid. Panics when the
// rotation part is not orthogonal or the bottom row is not (0, 0, 1) —
// passing a scaling or shearing matrix here is a programming error.
func NewRigid2D(m mgl32.Mat3) Rigid2D {
	if !isRigid2D(m) {
		panic("rowan/scenegraph: matrix is not rigid")
	}
	return Rigid2D{m}
}

func isRigid2D(m mgl32.Mat3) bool {
	c0 := mgl32.Vec2{m.At(0, 0), m.At(1, 0)}
	c1 := mgl32.Vec2{m.At(0, 1), m.At(1, 1)}
	return mgl32.FloatEqualThreshold(c0.Dot(c0), 1, rigidEpsilon) &&
		mgl32.FloatEqualThreshold(c1.Dot(c1), 1, rigidEpsilon) &&
		mgl32.FloatEqualThreshold(c0.Dot(c1), 0, rigidEpsilon) &&
		mgl32.FloatEqualThreshold(m.At(2, 0), 0, rigidEpsilon) &&
		mgl32.FloatEqualThreshold(m.At(2, 1), 0, rigidEpsilon) &&
		mgl32.FloatEqualThreshold(m.At(2, 2), 1, rigidEpsilon)
}

// Compose returns t * other. The product of two rigid transformations is
// rigid.
func (t Rigid2D) Compose(other Rigid2D) Rigid2D {
	return Rigid2D{t.m.Mul3(other.m)}
}

// Inverted returns the inverse using the orthogonality of the rotation
// part: R⁻¹ = Rᵀ, t⁻¹ = -Rᵀt.
func (t Rigid2D) Inverted() Rigid2D {
	r00, r10 := t.m.At(0, 0), t.m.At(1, 0)
	r01, r11 := t.m.At(0, 1), t.m.At(1, 1)
	tx, ty := t.m.At(0, 2), t.m.At(1, 2)
	// Transposed rotation block.
	i00, i01 := r00, r10
	i10, i11 := r01, r11
	return Rigid2D{mgl32.Mat3{
		i00, i10, 0,
		i01, i11, 0,
		-(i00*tx + i01*ty), -(i10*tx + i11*ty), 1,
	}}
}

// Identity returns the identity transformation.
func (Rigid2D) Identity() Rigid2D {
	return Rigid2D{mgl32.Ident3()}
}

// Matrix materializes the transformation as a dense matrix.
func (t Rigid2D) Matrix() mgl32.Mat3 {
	return t.m
}

// Normalized re-orthonormalizes the rotation part with Gram-Schmidt.
// Long chains of composed rotations accumulate float error; renormalizing
// occasionally keeps the representation rigid.
func (t Rigid2D) Normalized() Rigid2D {
	c0 := mgl32.Vec2{t.m.At(0, 0), t.m.At(1, 0)}.Normalize()
	c1 := mgl32.Vec2{t.m.At(0, 1), t.m.At(1, 1)}
	c1 = c1.Sub(c0.Mul(c0.Dot(c1))).Normalize()
	return Rigid2D{mgl32.Mat3{
		c0.X(), c0.Y(), 0,
		c1.X(), c1.Y(), 0,
		t.m.At(0, 2), t.m.At(1, 2), 1,
	}}
}

// Translation2D returns a rigid transformation translating by v.
func Translation2D(v mgl32.Vec2) Rigid2D {
	return Rigid2D{mgl32.Translate2D(v.X(), v.Y())}
}

// Rotation2D returns a rigid counterclockwise rotation by angle radians.
func Rotation2D(angle float32) Rigid2D {
	return Rigid2D{mgl32.HomogRotate2D(angle)}
}

// Reflection2D returns a rigid reflection across the line through the
// origin perpendicular to normal. The normal is normalized first.
func Reflection2D(normal mgl32.Vec2) Rigid2D {
	n := normal.Normalize()
	// Householder: H = I - 2nnᵀ.
	return Rigid2D{mgl32.Mat3{
		1 - 2*n.X()*n.X(), -2 * n.X() * n.Y(), 0,
		-2 * n.X() * n.Y(), 1 - 2*n.Y()*n.Y(), 0,
		0, 0, 1,
	}}
}
