// Package rowan is a small rendering and collision front end for
// [Ebitengine] built around a transformation scene graph.
//
// The heavy lifting lives in two subpackages: rowan/scenegraph maintains
// hierarchical transformations with lazily cached world matrices, and
// rowan/physics resolves pairwise shape collisions through a symmetric
// prime-keyed dispatcher. This package ties them to the GPU: shader
// programs ([Program]), offscreen render targets ([Framebuffer]), mesh
// draw submission ([Mesh], [MeshView]), and a [Stage] that runs the
// clean/collide/draw cycle each frame.
//
// # Quick start
//
//	stage := rowan.NewStage()
//	actor := stage.Spawn(nil)
//	actor.View = mesh.FullView()
//	actor.Object.Transform(scenegraph.Translation2D(mgl32.Vec2{100, 50}), scenegraph.Global)
//
//	// inside your ebiten.Game:
//	func (g *Game) Update() error        { g.stage.Update(); return nil }
//	func (g *Game) Draw(s *ebiten.Image) { g.stage.Draw(s) }
//
// Collision shapes attach to actors in local space and are re-transformed
// into world space during [Stage.Update]; query overlaps with
// [Stage.CollidingPairs].
//
// Tweens (via [gween]) animate object transformations; see
// [TweenTranslation] and [TweenRotation].
//
// [Ebitengine]: https://ebitengine.org
// [gween]: https://github.com/tanema/gween
package rowan
