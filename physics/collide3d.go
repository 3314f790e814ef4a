package physics

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl32"
)

// planeEpsilon is the thickness tolerance for point-on-plane tests.
const planeEpsilon = 1e-6

// collideFunc3D tests one concrete kind pair. The first argument always
// holds the canonical first kind of the entry it is registered under.
type collideFunc3D func(a, b Geometry3D) bool

type collisionEntry3D struct {
	first Kind3D
	test  collideFunc3D
}

var collisions3D = make(map[uint16]collisionEntry3D)

func register3D(a, b Kind3D, test collideFunc3D) {
	key := uint16(a) * uint16(b)
	if _, dup := collisions3D[key]; dup {
		panic(fmt.Sprintf("rowan/physics: duplicate collision registration for %v vs %v", a, b))
	}
	collisions3D[key] = collisionEntry3D{first: a, test: test}
}

func init() {
	register3D(KindPoint3D, KindSphere3D, collidePointSphere3D)
	register3D(KindPoint3D, KindCapsule3D, collidePointCapsule3D)
	register3D(KindPoint3D, KindAxisAlignedBox3D, collidePointAABB3D)
	register3D(KindPoint3D, KindBox3D, collidePointBox3D)
	register3D(KindPoint3D, KindPlane3D, collidePointPlane3D)
	register3D(KindLine3D, KindSphere3D, collideLineSphere3D)
	register3D(KindLineSegment3D, KindSphere3D, collideSegmentSphere3D)
	register3D(KindLineSegment3D, KindPlane3D, collideSegmentPlane3D)
	register3D(KindSphere3D, KindSphere3D, collideSphereSphere3D)
	register3D(KindSphere3D, KindCapsule3D, collideSphereCapsule3D)
	register3D(KindSphere3D, KindAxisAlignedBox3D, collideSphereAABB3D)
	register3D(KindSphere3D, KindBox3D, collideSphereBox3D)
	register3D(KindSphere3D, KindPlane3D, collideSpherePlane3D)
	register3D(KindCapsule3D, KindCapsule3D, collideCapsuleCapsule3D)
	register3D(KindAxisAlignedBox3D, KindAxisAlignedBox3D, collideAABBAABB3D)
}

// Collides3D reports whether two shapes overlap. Semantics mirror
// [Collides2D]: symmetric result, groups short-circuit on the first
// colliding member, unregistered non-group pairs panic.
func Collides3D(a, b Shape3D) bool {
	ka, kb := a.Kind(), b.Kind()
	if ka == KindGroup3D {
		for _, member := range a.geom.(Group3D).Shapes {
			if Collides3D(member, b) {
				return true
			}
		}
		return false
	}
	if kb == KindGroup3D {
		return Collides3D(b, a)
	}
	entry, ok := collisions3D[uint16(ka)*uint16(kb)]
	if !ok {
		panic(fmt.Sprintf("rowan/physics: no collision test registered for %v vs %v", ka, kb))
	}
	if ka == entry.first {
		return entry.test(a.geom, b.geom)
	}
	return entry.test(b.geom, a.geom)
}

// --- Concrete tests, written for their canonical kind order ---

func collidePointSphere3D(a, b Geometry3D) bool {
	p := a.(Point3D)
	s := b.(Sphere3D)
	d := p.Position.Sub(s.Center)
	return d.Dot(d) <= s.Radius*s.Radius
}

func collidePointCapsule3D(a, b Geometry3D) bool {
	p := a.(Point3D)
	c := b.(Capsule3D)
	return distPointSegmentSqr3D(p.Position, c.A, c.B) <= c.Radius*c.Radius
}

func collidePointAABB3D(a, b Geometry3D) bool {
	p := a.(Point3D)
	box := b.(AxisAlignedBox3D)
	return p.Position.X() >= box.Min.X() && p.Position.X() <= box.Max.X() &&
		p.Position.Y() >= box.Min.Y() && p.Position.Y() <= box.Max.Y() &&
		p.Position.Z() >= box.Min.Z() && p.Position.Z() <= box.Max.Z()
}

func collidePointBox3D(a, b Geometry3D) bool {
	p := a.(Point3D)
	box := b.(Box3D)
	local := box.Rotation.Transpose().Mul3x1(p.Position.Sub(box.Center))
	return abs32(local.X()) <= box.HalfExtents.X() &&
		abs32(local.Y()) <= box.HalfExtents.Y() &&
		abs32(local.Z()) <= box.HalfExtents.Z()
}

func collidePointPlane3D(a, b Geometry3D) bool {
	p := a.(Point3D)
	pl := b.(Plane3D)
	dist := pl.Normal.Normalize().Dot(p.Position.Sub(pl.Position))
	return abs32(dist) <= planeEpsilon
}

func collideLineSphere3D(a, b Geometry3D) bool {
	l := a.(Line3D)
	s := b.(Sphere3D)
	dir := l.B.Sub(l.A)
	lenSqr := dir.Dot(dir)
	if lenSqr == 0 {
		return collidePointSphere3D(Point3D{Position: l.A}, s)
	}
	w := s.Center.Sub(l.A)
	cross := dir.Cross(w)
	return cross.Dot(cross) <= s.Radius*s.Radius*lenSqr
}

func collideSegmentSphere3D(a, b Geometry3D) bool {
	seg := a.(LineSegment3D)
	s := b.(Sphere3D)
	return distPointSegmentSqr3D(s.Center, seg.A, seg.B) <= s.Radius*s.Radius
}

func collideSegmentPlane3D(a, b Geometry3D) bool {
	seg := a.(LineSegment3D)
	pl := b.(Plane3D)
	n := pl.Normal.Normalize()
	da := n.Dot(seg.A.Sub(pl.Position))
	db := n.Dot(seg.B.Sub(pl.Position))
	if abs32(da) <= planeEpsilon || abs32(db) <= planeEpsilon {
		return true
	}
	return (da > 0) != (db > 0)
}

func collideSphereSphere3D(a, b Geometry3D) bool {
	s1 := a.(Sphere3D)
	s2 := b.(Sphere3D)
	d := s1.Center.Sub(s2.Center)
	r := s1.Radius + s2.Radius
	return d.Dot(d) <= r*r
}

func collideSphereCapsule3D(a, b Geometry3D) bool {
	s := a.(Sphere3D)
	c := b.(Capsule3D)
	r := s.Radius + c.Radius
	return distPointSegmentSqr3D(s.Center, c.A, c.B) <= r*r
}

func collideSphereAABB3D(a, b Geometry3D) bool {
	s := a.(Sphere3D)
	box := b.(AxisAlignedBox3D)
	closest := mgl32.Vec3{
		mgl32.Clamp(s.Center.X(), box.Min.X(), box.Max.X()),
		mgl32.Clamp(s.Center.Y(), box.Min.Y(), box.Max.Y()),
		mgl32.Clamp(s.Center.Z(), box.Min.Z(), box.Max.Z()),
	}
	d := s.Center.Sub(closest)
	return d.Dot(d) <= s.Radius*s.Radius
}

func collideSphereBox3D(a, b Geometry3D) bool {
	s := a.(Sphere3D)
	box := b.(Box3D)
	local := box.Rotation.Transpose().Mul3x1(s.Center.Sub(box.Center))
	closest := mgl32.Vec3{
		mgl32.Clamp(local.X(), -box.HalfExtents.X(), box.HalfExtents.X()),
		mgl32.Clamp(local.Y(), -box.HalfExtents.Y(), box.HalfExtents.Y()),
		mgl32.Clamp(local.Z(), -box.HalfExtents.Z(), box.HalfExtents.Z()),
	}
	d := local.Sub(closest)
	return d.Dot(d) <= s.Radius*s.Radius
}

func collideSpherePlane3D(a, b Geometry3D) bool {
	s := a.(Sphere3D)
	pl := b.(Plane3D)
	dist := pl.Normal.Normalize().Dot(s.Center.Sub(pl.Position))
	return abs32(dist) <= s.Radius
}

func collideCapsuleCapsule3D(a, b Geometry3D) bool {
	c1 := a.(Capsule3D)
	c2 := b.(Capsule3D)
	r := c1.Radius + c2.Radius
	return distSegmentSegmentSqr3D(c1.A, c1.B, c2.A, c2.B) <= r*r
}

func collideAABBAABB3D(a, b Geometry3D) bool {
	b1 := a.(AxisAlignedBox3D)
	b2 := b.(AxisAlignedBox3D)
	return b1.Min.X() <= b2.Max.X() && b1.Max.X() >= b2.Min.X() &&
		b1.Min.Y() <= b2.Max.Y() && b1.Max.Y() >= b2.Min.Y() &&
		b1.Min.Z() <= b2.Max.Z() && b1.Max.Z() >= b2.Min.Z()
}

// distPointSegmentSqr3D is the squared distance from p to segment a-b.
func distPointSegmentSqr3D(p, a, b mgl32.Vec3) float32 {
	ab := b.Sub(a)
	t := p.Sub(a).Dot(ab)
	lenSqr := ab.Dot(ab)
	if lenSqr > 0 {
		t = mgl32.Clamp(t/lenSqr, 0, 1)
	} else {
		t = 0
	}
	d := p.Sub(a.Add(ab.Mul(t)))
	return d.Dot(d)
}

// distSegmentSegmentSqr3D is the squared distance between segments p1-q1
// and p2-q2 (Ericson, Real-Time Collision Detection, §5.1.9).
func distSegmentSegmentSqr3D(p1, q1, p2, q2 mgl32.Vec3) float32 {
	d1 := q1.Sub(p1)
	d2 := q2.Sub(p2)
	r := p1.Sub(p2)
	la := d1.Dot(d1)
	lb := d2.Dot(d2)
	f := d2.Dot(r)

	var s, t float32
	if la == 0 && lb == 0 {
		return r.Dot(r)
	}
	if la == 0 {
		t = mgl32.Clamp(f/lb, 0, 1)
	} else {
		c := d1.Dot(r)
		if lb == 0 {
			s = mgl32.Clamp(-c/la, 0, 1)
		} else {
			bd := d1.Dot(d2)
			denom := la*lb - bd*bd
			if denom != 0 {
				s = mgl32.Clamp((bd*f-c*lb)/denom, 0, 1)
			}
			t = (bd*s + f) / lb
			if t < 0 {
				t = 0
				s = mgl32.Clamp(-c/la, 0, 1)
			} else if t > 1 {
				t = 1
				s = mgl32.Clamp((bd-c)/la, 0, 1)
			}
		}
	}
	c1 := p1.Add(d1.Mul(s))
	c2 := p2.Add(d2.Mul(t))
	d := c1.Sub(c2)
	return d.Dot(d)
}
