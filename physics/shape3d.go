package physics

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl32"
)

// Geometry3D is the closed set of concrete 3D shape payloads. It is sealed:
// only the types in this package implement it.
type Geometry3D interface {
	kind3D() Kind3D
	transformed3D(m mgl32.Mat4) Geometry3D
}

// Point3D is a single point.
type Point3D struct {
	Position mgl32.Vec3
}

// Line3D is an infinite line through A and B.
type Line3D struct {
	A, B mgl32.Vec3
}

// LineSegment3D is the segment between A and B.
type LineSegment3D struct {
	A, B mgl32.Vec3
}

// Sphere3D is a sphere.
type Sphere3D struct {
	Center mgl32.Vec3
	Radius float32
}

// Capsule3D is the set of points within Radius of the segment A-B.
type Capsule3D struct {
	A, B   mgl32.Vec3
	Radius float32
}

// AxisAlignedBox3D is an axis-aligned box.
type AxisAlignedBox3D struct {
	Min, Max mgl32.Vec3
}

// Box3D is an oriented box: half extents around a center, rotated by
// Rotation (which must stay orthogonal).
type Box3D struct {
	Center      mgl32.Vec3
	HalfExtents mgl32.Vec3
	Rotation    mgl32.Mat3
}

// Plane3D is an infinite plane through Position with the given Normal.
type Plane3D struct {
	Position mgl32.Vec3
	Normal   mgl32.Vec3
}

// Group3D is a container of shapes. Colliding against a group means
// colliding against its members.
type Group3D struct {
	Shapes []Shape3D
}

func (Point3D) kind3D() Kind3D          { return KindPoint3D }
func (Line3D) kind3D() Kind3D           { return KindLine3D }
func (LineSegment3D) kind3D() Kind3D    { return KindLineSegment3D }
func (Sphere3D) kind3D() Kind3D         { return KindSphere3D }
func (Capsule3D) kind3D() Kind3D        { return KindCapsule3D }
func (AxisAlignedBox3D) kind3D() Kind3D { return KindAxisAlignedBox3D }
func (Box3D) kind3D() Kind3D            { return KindBox3D }
func (Plane3D) kind3D() Kind3D          { return KindPlane3D }
func (Group3D) kind3D() Kind3D          { return KindGroup3D }

// transformPoint3D applies a homogeneous 4x4 matrix to a point.
func transformPoint3D(m mgl32.Mat4, p mgl32.Vec3) mgl32.Vec3 {
	v := m.Mul4x1(p.Vec4(1))
	return mgl32.Vec3{v.X(), v.Y(), v.Z()}
}

// transformVector3D applies only the linear part of the matrix.
func transformVector3D(m mgl32.Mat4, v mgl32.Vec3) mgl32.Vec3 {
	w := m.Mul4x1(v.Vec4(0))
	return mgl32.Vec3{w.X(), w.Y(), w.Z()}
}

// scale3D is the length of the matrix's first basis column, used to scale
// radii. Assumes uniform scaling; rigid matrices give exactly 1.
func scale3D(m mgl32.Mat4) float32 {
	c := mgl32.Vec3{m.At(0, 0), m.At(1, 0), m.At(2, 0)}
	return c.Len()
}

// rotation3D extracts the normalized rotation block of the matrix.
func rotation3D(m mgl32.Mat4) mgl32.Mat3 {
	s := scale3D(m)
	if s == 0 {
		return mgl32.Ident3()
	}
	return mgl32.Mat3{
		m.At(0, 0) / s, m.At(1, 0) / s, m.At(2, 0) / s,
		m.At(0, 1) / s, m.At(1, 1) / s, m.At(2, 1) / s,
		m.At(0, 2) / s, m.At(1, 2) / s, m.At(2, 2) / s,
	}
}

func (s Point3D) transformed3D(m mgl32.Mat4) Geometry3D {
	return Point3D{Position: transformPoint3D(m, s.Position)}
}

func (s Line3D) transformed3D(m mgl32.Mat4) Geometry3D {
	return Line3D{A: transformPoint3D(m, s.A), B: transformPoint3D(m, s.B)}
}

func (s LineSegment3D) transformed3D(m mgl32.Mat4) Geometry3D {
	return LineSegment3D{A: transformPoint3D(m, s.A), B: transformPoint3D(m, s.B)}
}

func (s Sphere3D) transformed3D(m mgl32.Mat4) Geometry3D {
	return Sphere3D{
		Center: transformPoint3D(m, s.Center),
		Radius: s.Radius * scale3D(m),
	}
}

func (s Capsule3D) transformed3D(m mgl32.Mat4) Geometry3D {
	return Capsule3D{
		A:      transformPoint3D(m, s.A),
		B:      transformPoint3D(m, s.B),
		Radius: s.Radius * scale3D(m),
	}
}

// AxisAlignedBox3D stays axis-aligned: the transformed corners are
// re-normalized per axis.
func (s AxisAlignedBox3D) transformed3D(m mgl32.Mat4) Geometry3D {
	a := transformPoint3D(m, s.Min)
	b := transformPoint3D(m, s.Max)
	return AxisAlignedBox3D{
		Min: mgl32.Vec3{min(a.X(), b.X()), min(a.Y(), b.Y()), min(a.Z(), b.Z())},
		Max: mgl32.Vec3{max(a.X(), b.X()), max(a.Y(), b.Y()), max(a.Z(), b.Z())},
	}
}

func (s Box3D) transformed3D(m mgl32.Mat4) Geometry3D {
	return Box3D{
		Center:      transformPoint3D(m, s.Center),
		HalfExtents: s.HalfExtents.Mul(scale3D(m)),
		Rotation:    rotation3D(m).Mul3(s.Rotation),
	}
}

func (s Plane3D) transformed3D(m mgl32.Mat4) Geometry3D {
	return Plane3D{
		Position: transformPoint3D(m, s.Position),
		Normal:   transformVector3D(m, s.Normal).Normalize(),
	}
}

func (s Group3D) transformed3D(m mgl32.Mat4) Geometry3D {
	out := Group3D{Shapes: make([]Shape3D, len(s.Shapes))}
	for i, member := range s.Shapes {
		out.Shapes[i] = Shape3D{geom: member.geom.transformed3D(m)}
	}
	return out
}

// --- Shape wrapper ---

// Shape3D owns a concrete geometric payload by value. The zero value holds
// no payload and is unusable.
type Shape3D struct {
	geom Geometry3D
}

// NewShape3D wraps a payload. Panics on a nil payload.
func NewShape3D(g Geometry3D) Shape3D {
	if g == nil {
		panic("rowan/physics: nil shape payload")
	}
	return Shape3D{geom: g}
}

// Kind returns the payload kind. Constant per payload type.
func (s Shape3D) Kind() Kind3D {
	return s.geom.kind3D()
}

// Geometry returns the concrete payload.
func (s Shape3D) Geometry() Geometry3D {
	return s.geom
}

// Clone returns an independently owned copy. Groups are copied deeply.
func (s Shape3D) Clone() Shape3D {
	if g, ok := s.geom.(Group3D); ok {
		members := make([]Shape3D, len(g.Shapes))
		for i, m := range g.Shapes {
			members[i] = m.Clone()
		}
		return Shape3D{geom: Group3D{Shapes: members}}
	}
	return s
}

// Transform applies m to the payload and writes the result into dst, which
// must already hold a payload of the same kind. A mismatched destination is
// a programming error and panics.
func (s Shape3D) Transform(m mgl32.Mat4, dst *Shape3D) {
	if dst == nil || dst.geom == nil {
		panic("rowan/physics: transform destination holds no shape")
	}
	if dst.Kind() != s.Kind() {
		panic(fmt.Sprintf("rowan/physics: transform destination kind %v does not match source kind %v", dst.Kind(), s.Kind()))
	}
	dst.geom = s.geom.transformed3D(m)
}
