package rowan

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"

	"github.com/emberforge/rowan/scenegraph"
)

// TransformTween animates a rigid 2D object's translation and rotation.
// Create one via TweenTranslation or TweenRotation and call Update(dt)
// each frame; values write through SetTransformation, so the usual dirty
// propagation applies. If the target object is destroyed, the tween stops
// immediately.
//
// There is no global animation manager — callers drive Update themselves.
type TransformTween struct {
	x, y, angle *gween.Tween
	object      *scenegraph.Object2D
	Done        bool
}

// Update advances the tween by dt seconds and writes the interpolated
// transformation to the object.
func (t *TransformTween) Update(dt float32) {
	if t.Done {
		return
	}
	if t.object.IsDestroyed() {
		t.Done = true
		return
	}

	x, y, angle := decomposeRigid2D(t.object.Transformation())
	allDone := true
	if t.x != nil {
		v, finished := t.x.Update(dt)
		x = v
		allDone = allDone && finished
	}
	if t.y != nil {
		v, finished := t.y.Update(dt)
		y = v
		allDone = allDone && finished
	}
	if t.angle != nil {
		v, finished := t.angle.Update(dt)
		angle = v
		allDone = allDone && finished
	}
	t.Done = allDone

	t.object.SetTransformation(
		scenegraph.Translation2D(mgl32.Vec2{x, y}).
			Compose(scenegraph.Rotation2D(angle)))
}

// TweenTranslation animates the object's translation to the target over
// duration seconds, keeping the current rotation.
func TweenTranslation(o *scenegraph.Object2D, to mgl32.Vec2, duration float32, fn ease.TweenFunc) *TransformTween {
	x, y, _ := decomposeRigid2D(o.Transformation())
	return &TransformTween{
		x:      gween.New(x, to.X(), duration, fn),
		y:      gween.New(y, to.Y(), duration, fn),
		object: o,
	}
}

// TweenRotation animates the object's rotation to the target angle (in
// radians) over duration seconds, keeping the current translation.
func TweenRotation(o *scenegraph.Object2D, toAngle float32, duration float32, fn ease.TweenFunc) *TransformTween {
	_, _, angle := decomposeRigid2D(o.Transformation())
	return &TransformTween{
		angle:  gween.New(angle, toAngle, duration, fn),
		object: o,
	}
}

// decomposeRigid2D splits a rigid transformation into translation and
// rotation angle. Assumes no reflection (tweens are not defined across a
// reflection).
func decomposeRigid2D(t scenegraph.Rigid2D) (x, y, angle float32) {
	m := t.Matrix()
	return m.At(0, 2), m.At(1, 2),
		float32(math.Atan2(float64(m.At(1, 0)), float64(m.At(0, 0))))
}
