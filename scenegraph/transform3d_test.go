package scenegraph

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
)

func assertMat4(t *testing.T, name string, got, want mgl32.Mat4) {
	t.Helper()
	for i := 0; i < 16; i++ {
		if math.Abs(float64(got[i]-want[i])) > epsilon {
			t.Errorf("%s[%d] = %v, want %v (full:\n%v\nvs\n%v)", name, i, got[i], want[i], got, want)
			return
		}
	}
}

func TestWorldComposes3D(t *testing.T) {
	s := NewScene3D()
	a := NewObject3D(s)
	b := NewObject3D(a)
	a.SetTransformation(Translation3D(mgl32.Vec3{1, 2, 3}))
	b.SetTransformation(Rotation3D(deg(90), mgl32.Vec3{0, 0, 1}))

	want := mgl32.Translate3D(1, 2, 3).Mul4(mgl32.HomogRotate3D(deg(90), mgl32.Vec3{0, 0, 1}))
	assertMat4(t, "composed world", b.AbsoluteTransformation().Matrix(), want)
}

func TestRigid3DInverted(t *testing.T) {
	m := Translation3D(mgl32.Vec3{1, -0.3, 2.2}).
		Compose(Rotation3D(deg(17), mgl32.Vec3{1, 1, 0}))
	assertMat4(t, "inv * m", m.Inverted().Compose(m).Matrix(), mgl32.Ident4())
	assertMat4(t, "fast vs general inverse", m.Inverted().Matrix(), m.Matrix().Inv())
}

func TestRotation3DNormalizesAxis(t *testing.T) {
	a := Rotation3D(deg(35), mgl32.Vec3{0, 0, 1})
	b := Rotation3D(deg(35), mgl32.Vec3{0, 0, 10})
	assertMat4(t, "scaled axis", b.Matrix(), a.Matrix())
}

func TestNewRigid3DRejectsScaling(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("expected panic wrapping a scaling matrix as rigid")
		}
	}()
	NewRigid3D(mgl32.Scale3D(1, 2, 1))
}

func TestReflection3D(t *testing.T) {
	r := Reflection3D(mgl32.Vec3{0, 0, 1})
	p := r.Matrix().Mul4x1(mgl32.Vec4{1, 2, 3, 1})
	if math.Abs(float64(p.Z()+3)) > epsilon {
		t.Errorf("reflected z = %v, want -3", p.Z())
	}
	assertMat4(t, "double reflection", r.Compose(r).Matrix(), mgl32.Ident4())
}

func TestRigid3DNormalized(t *testing.T) {
	m := Rotation3D(0.001, mgl32.Vec3{1, 2, 3})
	acc := m.Identity()
	for i := 0; i < 10000; i++ {
		acc = acc.Compose(m)
	}
	n := acc.Normalized().Matrix()
	c0 := mgl32.Vec3{n.At(0, 0), n.At(1, 0), n.At(2, 0)}
	c1 := mgl32.Vec3{n.At(0, 1), n.At(1, 1), n.At(2, 1)}
	c2 := mgl32.Vec3{n.At(0, 2), n.At(1, 2), n.At(2, 2)}
	for i, c := range []mgl32.Vec3{c0, c1, c2} {
		if math.Abs(float64(c.Len()-1)) > epsilon {
			t.Errorf("column %d length = %v after renormalizing", i, c.Len())
		}
	}
	if math.Abs(float64(c0.Dot(c1))) > epsilon || math.Abs(float64(c1.Dot(c2))) > epsilon {
		t.Error("columns not orthogonal after renormalizing")
	}
}

func TestMatrix3DInverted(t *testing.T) {
	m := TranslationMatrix3D(mgl32.Vec3{2, 3, 4}).
		Compose(RotationMatrix3D(deg(30), mgl32.Vec3{0, 1, 0})).
		Compose(ScalingMatrix3D(mgl32.Vec3{2, 0.5, 1}))
	assertMat4(t, "inv * m", m.Inverted().Compose(m).Matrix(), mgl32.Ident4())
}

func BenchmarkRigid3DInverted(b *testing.B) {
	m := Translation3D(mgl32.Vec3{1, -0.3, 2.2}).
		Compose(Rotation3D(deg(17), mgl32.Vec3{1, 1, 0}))
	for b.Loop() {
		_ = m.Inverted()
	}
}
