package physics

import "testing"

func TestKind2DProductsUnique(t *testing.T) {
	kinds := []Kind2D{
		KindPoint2D, KindLine2D, KindLineSegment2D, KindSphere2D,
		KindCapsule2D, KindAxisAlignedBox2D, KindBox2D, KindGroup2D,
	}
	seen := make(map[uint16][2]Kind2D)
	for i, a := range kinds {
		for _, b := range kinds[i:] {
			key := uint16(a) * uint16(b)
			if prev, dup := seen[key]; dup {
				t.Errorf("product %d collides: (%v, %v) and (%v, %v)", key, prev[0], prev[1], a, b)
			}
			seen[key] = [2]Kind2D{a, b}
		}
	}
}

func TestKind3DProductsUnique(t *testing.T) {
	kinds := []Kind3D{
		KindPoint3D, KindLine3D, KindLineSegment3D, KindSphere3D,
		KindCapsule3D, KindAxisAlignedBox3D, KindBox3D, KindPlane3D, KindGroup3D,
	}
	seen := make(map[uint16][2]Kind3D)
	for i, a := range kinds {
		for _, b := range kinds[i:] {
			key := uint16(a) * uint16(b)
			if prev, dup := seen[key]; dup {
				t.Errorf("product %d collides: (%v, %v) and (%v, %v)", key, prev[0], prev[1], a, b)
			}
			seen[key] = [2]Kind3D{a, b}
		}
	}
}

func TestKindStrings(t *testing.T) {
	if got := KindSphere2D.String(); got != "Sphere" {
		t.Errorf("KindSphere2D.String() = %q", got)
	}
	if got := KindPlane3D.String(); got != "Plane" {
		t.Errorf("KindPlane3D.String() = %q", got)
	}
	if got := Kind2D(4).String(); got != "Invalid" {
		t.Errorf("Kind2D(4).String() = %q", got)
	}
}
