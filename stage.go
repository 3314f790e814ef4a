package rowan

import (
	"time"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/emberforge/rowan/physics"
	"github.com/emberforge/rowan/scenegraph"
)

// Actor binds a scene-graph object to drawable geometry and an optional
// collision shape. The shape is authored in the object's local space;
// Stage.Update refreshes a world-space copy after cleaning the graph.
type Actor struct {
	Object *scenegraph.Object2D
	View   MeshView
	Tint   Color
	Blend  BlendMode

	// Shape is the local-space collision shape, nil for non-collidable
	// actors.
	Shape *physics.Shape2D

	// world is the double-buffered transformed copy of Shape.
	world    physics.Shape2D
	hasWorld bool
}

// WorldShape returns the actor's shape transformed into world space as of
// the last Stage.Update. The second return is false when the actor has no
// shape or Update has not run yet.
func (a *Actor) WorldShape() (physics.Shape2D, bool) {
	return a.world, a.hasWorld
}

// Stage owns a rigid 2D scene graph, the actors attached to it, and a pool
// of offscreen targets. Single-threaded: Update, CollidingPairs and Draw
// must be called from one goroutine.
type Stage struct {
	root   *scenegraph.Scene2D
	actors []*Actor
	pool   framebufferPool
	debug  bool
}

// NewStage creates an empty stage with a scene root.
func NewStage() *Stage {
	return &Stage{root: scenegraph.NewScene2D()}
}

// Root returns the scene root. Its transformation is immovable.
func (s *Stage) Root() *scenegraph.Object2D {
	return s.root
}

// Spawn creates a new actor whose object is attached to parent (the scene
// root when parent is nil).
func (s *Stage) Spawn(parent *scenegraph.Object2D) *Actor {
	if parent == nil {
		parent = s.root
	}
	a := &Actor{
		Object: scenegraph.NewObject2D(parent),
		Tint:   ColorWhite,
	}
	s.actors = append(s.actors, a)
	return a
}

// Actors returns the actor list. The returned slice MUST NOT be mutated.
func (s *Stage) Actors() []*Actor {
	return s.actors
}

// Remove detaches an actor from the stage and destroys its object subtree.
func (s *Stage) Remove(a *Actor) {
	for i, other := range s.actors {
		if other == a {
			copy(s.actors[i:], s.actors[i+1:])
			s.actors[len(s.actors)-1] = nil
			s.actors = s.actors[:len(s.actors)-1]
			break
		}
	}
	if a.Object != nil {
		a.Object.Destroy()
	}
}

// Update cleans the transformation graph and refreshes every collidable
// actor's world-space shape.
func (s *Stage) Update() {
	var stats debugStats
	var t0 time.Time
	if s.debug {
		t0 = time.Now()
	}

	s.root.SetClean()

	if s.debug {
		stats.cleanTime = time.Since(t0)
		t0 = time.Now()
	}

	for _, a := range s.actors {
		if a.Shape == nil {
			a.hasWorld = false
			continue
		}
		world := a.Object.AbsoluteTransformation().Matrix()
		if !a.hasWorld || a.world.Kind() != a.Shape.Kind() {
			// First refresh (or the author swapped the shape kind):
			// re-seed the buffer with a matching clone.
			a.world = a.Shape.Clone()
		}
		a.Shape.Transform(world, &a.world)
		a.hasWorld = true
	}

	if s.debug {
		stats.shapeTime = time.Since(t0)
		stats.actorCount = len(s.actors)
		s.debugLogUpdate(stats)
	}
}

// CollidingPairs invokes fn for every unordered pair of collidable actors
// whose world-space shapes overlap. Returning false from fn stops the
// scan. Shapes are as of the last Update.
func (s *Stage) CollidingPairs(fn func(a, b *Actor) bool) {
	for i := 0; i < len(s.actors); i++ {
		ai := s.actors[i]
		if !ai.hasWorld {
			continue
		}
		for j := i + 1; j < len(s.actors); j++ {
			aj := s.actors[j]
			if !aj.hasWorld {
				continue
			}
			if physics.Collides2D(ai.world, aj.world) {
				if !fn(ai, aj) {
					return
				}
			}
		}
	}
}

// Draw submits every actor's mesh view with its object's world
// transformation. Actors draw in spawn order.
func (s *Stage) Draw(dst *ebiten.Image) {
	var stats debugStats
	var t0 time.Time
	if s.debug {
		t0 = time.Now()
	}

	s.root.SetClean()
	for _, a := range s.actors {
		if a.View.IsZero() {
			continue
		}
		a.View.Draw(dst, a.Object.AbsoluteTransformation().Matrix(), a.Tint, a.Blend)
		stats.drawCount++
	}

	if s.debug {
		stats.drawTime = time.Since(t0)
		s.debugLogDraw(stats)
	}
}

// AcquireTarget returns a pooled offscreen image with at least (w, h)
// pixels, for intermediate passes (shader ping-pong, subtree capture).
func (s *Stage) AcquireTarget(w, h int) *ebiten.Image {
	return s.pool.Acquire(w, h)
}

// ReleaseTarget returns a pooled image for reuse.
func (s *Stage) ReleaseTarget(img *ebiten.Image) {
	s.pool.Release(img)
}

// SetDebugMode enables per-frame timing logs on stderr and
// destroyed-object checks in the scene graph.
func (s *Stage) SetDebugMode(enabled bool) {
	s.debug = enabled
	scenegraph.SetDebugChecks(enabled)
}
