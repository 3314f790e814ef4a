package physics

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl32"
)

// collideFunc2D tests one concrete kind pair. The first argument always
// holds the canonical first kind of the entry it is registered under.
type collideFunc2D func(a, b Geometry2D) bool

type collisionEntry2D struct {
	first Kind2D // canonical first-argument kind
	test  collideFunc2D
}

// collisions2D is keyed by the product of the two kinds' primes. Built once
// at package init; the prime assignment makes every unordered pair's key
// unique.
var collisions2D = make(map[uint16]collisionEntry2D)

func register2D(a, b Kind2D, test collideFunc2D) {
	key := uint16(a) * uint16(b)
	if _, dup := collisions2D[key]; dup {
		panic(fmt.Sprintf("rowan/physics: duplicate collision registration for %v vs %v", a, b))
	}
	collisions2D[key] = collisionEntry2D{first: a, test: test}
}

func init() {
	register2D(KindPoint2D, KindSphere2D, collidePointSphere2D)
	register2D(KindPoint2D, KindCapsule2D, collidePointCapsule2D)
	register2D(KindPoint2D, KindAxisAlignedBox2D, collidePointAABB2D)
	register2D(KindPoint2D, KindBox2D, collidePointBox2D)
	register2D(KindLine2D, KindSphere2D, collideLineSphere2D)
	register2D(KindLineSegment2D, KindSphere2D, collideSegmentSphere2D)
	register2D(KindSphere2D, KindSphere2D, collideSphereSphere2D)
	register2D(KindSphere2D, KindCapsule2D, collideSphereCapsule2D)
	register2D(KindSphere2D, KindAxisAlignedBox2D, collideSphereAABB2D)
	register2D(KindSphere2D, KindBox2D, collideSphereBox2D)
	register2D(KindCapsule2D, KindCapsule2D, collideCapsuleCapsule2D)
	register2D(KindAxisAlignedBox2D, KindAxisAlignedBox2D, collideAABBAABB2D)
}

// Collides2D reports whether two shapes overlap. The result is symmetric in
// its arguments. Groups collide when any member collides (first match wins);
// two groups are tested member cross-product. Asking for a non-group pair
// with no registered test panics: the kind set is closed, so a missing pair
// is a logic bug, not a runtime condition.
func Collides2D(a, b Shape2D) bool {
	ka, kb := a.Kind(), b.Kind()
	if ka == KindGroup2D {
		for _, member := range a.geom.(Group2D).Shapes {
			if Collides2D(member, b) {
				return true
			}
		}
		return false
	}
	if kb == KindGroup2D {
		return Collides2D(b, a)
	}
	entry, ok := collisions2D[uint16(ka)*uint16(kb)]
	if !ok {
		panic(fmt.Sprintf("rowan/physics: no collision test registered for %v vs %v", ka, kb))
	}
	if ka == entry.first {
		return entry.test(a.geom, b.geom)
	}
	return entry.test(b.geom, a.geom)
}

// --- Concrete tests, written for their canonical kind order ---

func collidePointSphere2D(a, b Geometry2D) bool {
	p := a.(Point2D)
	s := b.(Sphere2D)
	d := p.Position.Sub(s.Center)
	return d.Dot(d) <= s.Radius*s.Radius
}

func collidePointCapsule2D(a, b Geometry2D) bool {
	p := a.(Point2D)
	c := b.(Capsule2D)
	return distPointSegmentSqr2D(p.Position, c.A, c.B) <= c.Radius*c.Radius
}

func collidePointAABB2D(a, b Geometry2D) bool {
	p := a.(Point2D)
	box := b.(AxisAlignedBox2D)
	return p.Position.X() >= box.Min.X() && p.Position.X() <= box.Max.X() &&
		p.Position.Y() >= box.Min.Y() && p.Position.Y() <= box.Max.Y()
}

func collidePointBox2D(a, b Geometry2D) bool {
	p := a.(Point2D)
	box := b.(Box2D)
	local := box.Rotation.Transpose().Mul2x1(p.Position.Sub(box.Center))
	return abs32(local.X()) <= box.HalfExtents.X() &&
		abs32(local.Y()) <= box.HalfExtents.Y()
}

func collideLineSphere2D(a, b Geometry2D) bool {
	l := a.(Line2D)
	s := b.(Sphere2D)
	dir := l.B.Sub(l.A)
	lenSqr := dir.Dot(dir)
	if lenSqr == 0 {
		// Degenerate line collapses to a point.
		return collidePointSphere2D(Point2D{Position: l.A}, s)
	}
	w := s.Center.Sub(l.A)
	// Perpendicular distance via the 2D cross product.
	cross := dir.X()*w.Y() - dir.Y()*w.X()
	return cross*cross <= s.Radius*s.Radius*lenSqr
}

func collideSegmentSphere2D(a, b Geometry2D) bool {
	seg := a.(LineSegment2D)
	s := b.(Sphere2D)
	return distPointSegmentSqr2D(s.Center, seg.A, seg.B) <= s.Radius*s.Radius
}

func collideSphereSphere2D(a, b Geometry2D) bool {
	s1 := a.(Sphere2D)
	s2 := b.(Sphere2D)
	d := s1.Center.Sub(s2.Center)
	r := s1.Radius + s2.Radius
	return d.Dot(d) <= r*r
}

func collideSphereCapsule2D(a, b Geometry2D) bool {
	s := a.(Sphere2D)
	c := b.(Capsule2D)
	r := s.Radius + c.Radius
	return distPointSegmentSqr2D(s.Center, c.A, c.B) <= r*r
}

func collideSphereAABB2D(a, b Geometry2D) bool {
	s := a.(Sphere2D)
	box := b.(AxisAlignedBox2D)
	closest := mgl32.Vec2{
		mgl32.Clamp(s.Center.X(), box.Min.X(), box.Max.X()),
		mgl32.Clamp(s.Center.Y(), box.Min.Y(), box.Max.Y()),
	}
	d := s.Center.Sub(closest)
	return d.Dot(d) <= s.Radius*s.Radius
}

func collideSphereBox2D(a, b Geometry2D) bool {
	s := a.(Sphere2D)
	box := b.(Box2D)
	local := box.Rotation.Transpose().Mul2x1(s.Center.Sub(box.Center))
	closest := mgl32.Vec2{
		mgl32.Clamp(local.X(), -box.HalfExtents.X(), box.HalfExtents.X()),
		mgl32.Clamp(local.Y(), -box.HalfExtents.Y(), box.HalfExtents.Y()),
	}
	d := local.Sub(closest)
	return d.Dot(d) <= s.Radius*s.Radius
}

func collideCapsuleCapsule2D(a, b Geometry2D) bool {
	c1 := a.(Capsule2D)
	c2 := b.(Capsule2D)
	r := c1.Radius + c2.Radius
	return distSegmentSegmentSqr2D(c1.A, c1.B, c2.A, c2.B) <= r*r
}

func collideAABBAABB2D(a, b Geometry2D) bool {
	b1 := a.(AxisAlignedBox2D)
	b2 := b.(AxisAlignedBox2D)
	return b1.Min.X() <= b2.Max.X() && b1.Max.X() >= b2.Min.X() &&
		b1.Min.Y() <= b2.Max.Y() && b1.Max.Y() >= b2.Min.Y()
}

// distPointSegmentSqr2D is the squared distance from p to segment a-b.
func distPointSegmentSqr2D(p, a, b mgl32.Vec2) float32 {
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

// distSegmentSegmentSqr2D is the squared distance between segments p1-q1
// and p2-q2 (Ericson, Real-Time Collision Detection, §5.1.9).
func distSegmentSegmentSqr2D(p1, q1, p2, q2 mgl32.Vec2) float32 {
	d1 := q1.Sub(p1)
	d2 := q2.Sub(p2)
	r := p1.Sub(p2)
	la := d1.Dot(d1)
	lb := d2.Dot(d2)
	f := d2.Dot(r)

	var s, t float32
	if la == 0 && lb == 0 {
		d := r
		return d.Dot(d)
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

func abs32(v float32) float32 {
	if v < 0 {
		return -v
	}
	return v
}
