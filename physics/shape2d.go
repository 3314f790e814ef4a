package physics

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl32"
)

// Geometry2D is the closed set of concrete 2D shape payloads. It is sealed:
// only the types in this package implement it.
type Geometry2D interface {
	kind2D() Kind2D
	transformed2D(m mgl32.Mat3) Geometry2D
}

// Point2D is a single point.
type Point2D struct {
	Position mgl32.Vec2
}

// Line2D is an infinite line through A and B.
type Line2D struct {
	A, B mgl32.Vec2
}

// LineSegment2D is the segment between A and B.
type LineSegment2D struct {
	A, B mgl32.Vec2
}

// Sphere2D is a circle, named for parity with the 3D shape set.
type Sphere2D struct {
	Center mgl32.Vec2
	Radius float32
}

// Capsule2D is the set of points within Radius of the segment A-B.
type Capsule2D struct {
	A, B   mgl32.Vec2
	Radius float32
}

// AxisAlignedBox2D is an axis-aligned rectangle.
type AxisAlignedBox2D struct {
	Min, Max mgl32.Vec2
}

// Box2D is an oriented rectangle: half extents around a center, rotated by
// Rotation (which must stay orthogonal).
type Box2D struct {
	Center      mgl32.Vec2
	HalfExtents mgl32.Vec2
	Rotation    mgl32.Mat2
}

// Group2D is a container of shapes. Colliding against a group means
// colliding against its members.
type Group2D struct {
	Shapes []Shape2D
}

func (Point2D) kind2D() Kind2D          { return KindPoint2D }
func (Line2D) kind2D() Kind2D           { return KindLine2D }
func (LineSegment2D) kind2D() Kind2D    { return KindLineSegment2D }
func (Sphere2D) kind2D() Kind2D         { return KindSphere2D }
func (Capsule2D) kind2D() Kind2D        { return KindCapsule2D }
func (AxisAlignedBox2D) kind2D() Kind2D { return KindAxisAlignedBox2D }
func (Box2D) kind2D() Kind2D            { return KindBox2D }
func (Group2D) kind2D() Kind2D          { return KindGroup2D }

// transformPoint2D applies a homogeneous 3x3 matrix to a point.
func transformPoint2D(m mgl32.Mat3, p mgl32.Vec2) mgl32.Vec2 {
	v := m.Mul3x1(p.Vec3(1))
	return mgl32.Vec2{v.X(), v.Y()}
}

// scale2D is the length of the matrix's first basis column, used to scale
// radii. Assumes uniform scaling; rigid matrices give exactly 1.
func scale2D(m mgl32.Mat3) float32 {
	c := mgl32.Vec2{m.At(0, 0), m.At(1, 0)}
	return c.Len()
}

// rotation2D extracts the normalized rotation block of the matrix.
func rotation2D(m mgl32.Mat3) mgl32.Mat2 {
	s := scale2D(m)
	if s == 0 {
		return mgl32.Ident2()
	}
	return mgl32.Mat2{
		m.At(0, 0) / s, m.At(1, 0) / s,
		m.At(0, 1) / s, m.At(1, 1) / s,
	}
}

func (s Point2D) transformed2D(m mgl32.Mat3) Geometry2D {
	return Point2D{Position: transformPoint2D(m, s.Position)}
}

func (s Line2D) transformed2D(m mgl32.Mat3) Geometry2D {
	return Line2D{A: transformPoint2D(m, s.A), B: transformPoint2D(m, s.B)}
}

func (s LineSegment2D) transformed2D(m mgl32.Mat3) Geometry2D {
	return LineSegment2D{A: transformPoint2D(m, s.A), B: transformPoint2D(m, s.B)}
}

func (s Sphere2D) transformed2D(m mgl32.Mat3) Geometry2D {
	return Sphere2D{
		Center: transformPoint2D(m, s.Center),
		Radius: s.Radius * scale2D(m),
	}
}

func (s Capsule2D) transformed2D(m mgl32.Mat3) Geometry2D {
	return Capsule2D{
		A:      transformPoint2D(m, s.A),
		B:      transformPoint2D(m, s.B),
		Radius: s.Radius * scale2D(m),
	}
}

// AxisAlignedBox2D stays axis-aligned: the transformed corners are
// re-normalized per axis, so rotation effectively grows into a bounding
// box of the two corners only.
func (s AxisAlignedBox2D) transformed2D(m mgl32.Mat3) Geometry2D {
	a := transformPoint2D(m, s.Min)
	b := transformPoint2D(m, s.Max)
	return AxisAlignedBox2D{
		Min: mgl32.Vec2{min(a.X(), b.X()), min(a.Y(), b.Y())},
		Max: mgl32.Vec2{max(a.X(), b.X()), max(a.Y(), b.Y())},
	}
}

func (s Box2D) transformed2D(m mgl32.Mat3) Geometry2D {
	return Box2D{
		Center:      transformPoint2D(m, s.Center),
		HalfExtents: s.HalfExtents.Mul(scale2D(m)),
		Rotation:    rotation2D(m).Mul2(s.Rotation),
	}
}

func (s Group2D) transformed2D(m mgl32.Mat3) Geometry2D {
	out := Group2D{Shapes: make([]Shape2D, len(s.Shapes))}
	for i, member := range s.Shapes {
		out.Shapes[i] = Shape2D{geom: member.geom.transformed2D(m)}
	}
	return out
}

// --- Shape wrapper ---

// Shape2D owns a concrete geometric payload by value. The zero value holds
// no payload and is unusable.
type Shape2D struct {
	geom Geometry2D
}

// NewShape2D wraps a payload. Panics on a nil payload.
func NewShape2D(g Geometry2D) Shape2D {
	if g == nil {
		panic("rowan/physics: nil shape payload")
	}
	return Shape2D{geom: g}
}

// Kind returns the payload kind. Constant per payload type.
func (s Shape2D) Kind() Kind2D {
	return s.geom.kind2D()
}

// Geometry returns the concrete payload.
func (s Shape2D) Geometry() Geometry2D {
	return s.geom
}

// Clone returns an independently owned copy. Groups are copied deeply.
func (s Shape2D) Clone() Shape2D {
	if g, ok := s.geom.(Group2D); ok {
		members := make([]Shape2D, len(g.Shapes))
		for i, m := range g.Shapes {
			members[i] = m.Clone()
		}
		return Shape2D{geom: Group2D{Shapes: members}}
	}
	// Non-group payloads are plain values; the wrapper copy is already
	// independent.
	return s
}

// Transform applies m to the payload and writes the result into dst, which
// must already hold a payload of the same kind. A mismatched destination is
// a programming error and panics.
func (s Shape2D) Transform(m mgl32.Mat3, dst *Shape2D) {
	if dst == nil || dst.geom == nil {
		panic("rowan/physics: transform destination holds no shape")
	}
	if dst.Kind() != s.Kind() {
		panic(fmt.Sprintf("rowan/physics: transform destination kind %v does not match source kind %v", dst.Kind(), s.Kind()))
	}
	dst.geom = s.geom.transformed2D(m)
}
