package rowan

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/tanema/gween/ease"

	"github.com/emberforge/rowan/scenegraph"
)

func translationOf(o *scenegraph.Object2D) (float32, float32) {
	m := o.Transformation().Matrix()
	return m.At(0, 2), m.At(1, 2)
}

func TestTweenTranslationReachesTarget(t *testing.T) {
	s := scenegraph.NewScene2D()
	o := scenegraph.NewObject2D(s)

	tw := TweenTranslation(o, mgl32.Vec2{10, -4}, 1, ease.Linear)

	tw.Update(0.5)
	x, y := translationOf(o)
	if !approxEqual(float64(x), 5, 1e-3) || !approxEqual(float64(y), -2, 1e-3) {
		t.Errorf("midpoint = (%v, %v), want (5, -2)", x, y)
	}
	if tw.Done {
		t.Error("tween done at midpoint")
	}

	tw.Update(0.5)
	x, y = translationOf(o)
	if !approxEqual(float64(x), 10, 1e-3) || !approxEqual(float64(y), -4, 1e-3) {
		t.Errorf("endpoint = (%v, %v), want (10, -4)", x, y)
	}
	if !tw.Done {
		t.Error("tween not done after full duration")
	}
}

func TestTweenTranslationKeepsRotation(t *testing.T) {
	s := scenegraph.NewScene2D()
	o := scenegraph.NewObject2D(s)
	o.SetTransformation(scenegraph.Rotation2D(math.Pi / 4))

	tw := TweenTranslation(o, mgl32.Vec2{2, 0}, 1, ease.Linear)
	tw.Update(1)

	m := o.Transformation().Matrix()
	angle := math.Atan2(float64(m.At(1, 0)), float64(m.At(0, 0)))
	if !approxEqual(angle, math.Pi/4, 1e-3) {
		t.Errorf("rotation = %v, want π/4", angle)
	}
	if !approxEqual(float64(m.At(0, 2)), 2, 1e-3) {
		t.Errorf("translation x = %v, want 2", m.At(0, 2))
	}
}

func TestTweenRotation(t *testing.T) {
	s := scenegraph.NewScene2D()
	o := scenegraph.NewObject2D(s)
	o.SetTransformation(scenegraph.Translation2D(mgl32.Vec2{3, 3}))

	tw := TweenRotation(o, math.Pi/2, 2, ease.Linear)
	tw.Update(1)

	m := o.Transformation().Matrix()
	angle := math.Atan2(float64(m.At(1, 0)), float64(m.At(0, 0)))
	if !approxEqual(angle, math.Pi/4, 1e-3) {
		t.Errorf("half-way rotation = %v, want π/4", angle)
	}
	// Translation survives the rotation tween.
	if !approxEqual(float64(m.At(0, 2)), 3, 1e-3) {
		t.Errorf("translation x = %v, want 3", m.At(0, 2))
	}
}

func TestTweenMarksObjectDirty(t *testing.T) {
	s := scenegraph.NewScene2D()
	o := scenegraph.NewObject2D(s)
	o.SetClean()

	tw := TweenTranslation(o, mgl32.Vec2{1, 0}, 1, ease.Linear)
	tw.Update(0.1)
	if !o.IsDirty() {
		t.Error("tween update did not dirty the object")
	}
}

func TestTweenStopsOnDestroyedObject(t *testing.T) {
	s := scenegraph.NewScene2D()
	o := scenegraph.NewObject2D(s)

	tw := TweenTranslation(o, mgl32.Vec2{1, 0}, 1, ease.Linear)
	o.Destroy()
	tw.Update(0.5)
	if !tw.Done {
		t.Error("tween kept running on a destroyed object")
	}
}

func TestFinishedTweenIsInert(t *testing.T) {
	s := scenegraph.NewScene2D()
	o := scenegraph.NewObject2D(s)

	tw := TweenTranslation(o, mgl32.Vec2{1, 0}, 1, ease.Linear)
	tw.Update(2)
	x, _ := translationOf(o)
	if !approxEqual(float64(x), 1, 1e-3) {
		t.Fatalf("overshoot clamped to %v, want 1", x)
	}

	// Further updates change nothing.
	tw.Update(1)
	x, _ = translationOf(o)
	if !approxEqual(float64(x), 1, 1e-3) {
		t.Errorf("finished tween moved the object to %v", x)
	}
}
