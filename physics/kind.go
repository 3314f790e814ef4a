// Package physics implements collision shapes and a symmetric pairwise
// collision dispatcher.
//
// Every shape kind within one dimensionality carries a distinct small prime
// identifier. The product of two kinds' primes uniquely identifies the
// unordered pair, so a single product-keyed table resolves [Collides2D] and
// [Collides3D] regardless of argument order. Each concrete test is written
// once for a canonical kind order; the dispatcher reorders arguments to
// match.
//
// The kind set is closed. Asking for a pair no test is registered for is a
// programming error and panics.
package physics

// Kind2D identifies the concrete payload of a 2D shape. Values are primes
// (Point uses 1) so the product of two kinds keys an unordered pair.
type Kind2D uint8

const (
	KindPoint2D          Kind2D = 1
	KindLine2D           Kind2D = 2
	KindLineSegment2D    Kind2D = 3
	KindSphere2D         Kind2D = 5
	KindCapsule2D        Kind2D = 7
	KindAxisAlignedBox2D Kind2D = 11
	KindBox2D            Kind2D = 13
	KindGroup2D          Kind2D = 17
)

// String returns the kind name for debug output.
func (k Kind2D) String() string {
	switch k {
	case KindPoint2D:
		return "Point"
	case KindLine2D:
		return "Line"
	case KindLineSegment2D:
		return "LineSegment"
	case KindSphere2D:
		return "Sphere"
	case KindCapsule2D:
		return "Capsule"
	case KindAxisAlignedBox2D:
		return "AxisAlignedBox"
	case KindBox2D:
		return "Box"
	case KindGroup2D:
		return "Group"
	}
	return "Invalid"
}

// Kind3D identifies the concrete payload of a 3D shape.
type Kind3D uint8

const (
	KindPoint3D          Kind3D = 1
	KindLine3D           Kind3D = 2
	KindLineSegment3D    Kind3D = 3
	KindSphere3D         Kind3D = 5
	KindCapsule3D        Kind3D = 7
	KindAxisAlignedBox3D Kind3D = 11
	KindBox3D            Kind3D = 13
	KindPlane3D          Kind3D = 17
	KindGroup3D          Kind3D = 19
)

// String returns the kind name for debug output.
func (k Kind3D) String() string {
	switch k {
	case KindPoint3D:
		return "Point"
	case KindLine3D:
		return "Line"
	case KindLineSegment3D:
		return "LineSegment"
	case KindSphere3D:
		return "Sphere"
	case KindCapsule3D:
		return "Capsule"
	case KindAxisAlignedBox3D:
		return "AxisAlignedBox"
	case KindBox3D:
		return "Box"
	case KindPlane3D:
		return "Plane"
	case KindGroup3D:
		return "Group"
	}
	return "Invalid"
}
