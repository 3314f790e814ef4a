// Package scenegraph implements a hierarchical transformation graph with
// lazily cached world transformations.
//
// Objects form a tree rooted at a scene. Each object carries a local
// transformation relative to its parent; the world transformation is the
// composition of the whole ancestor chain and is cached per object. Mutating
// an object marks its subtree dirty; [Object.SetClean] (or any query through
// [Object.AbsoluteTransformation]) restores the cache.
//
// The transformation class is a type parameter, so the same tree works for
// general affine and rigid transformations in two and three dimensions. See
// [Matrix2D], [Rigid2D], [Matrix3D], and [Rigid3D].
package scenegraph

import "fmt"

// TransformationType selects the coordinate space a relative transformation
// is applied in.
type TransformationType uint8

const (
	// Global applies the transformation in the parent's space: new = t ∘ old.
	Global TransformationType = iota
	// Local applies the transformation in the object's own space: new = old ∘ t.
	Local
)

// Transformation is the constraint for transformation classes usable with
// [Object]. Compose must be the class-specific composition operator (matrix
// multiplication for the built-in classes) so that rigid representations
// stay rigid through the tree.
type Transformation[T any] interface {
	// Compose returns this transformation followed in composition order by
	// other, i.e. the matrix product this * other.
	Compose(other T) T
	// Inverted returns the inverse transformation.
	Inverted() T
	// Identity returns the identity transformation. Callable on the zero
	// value.
	Identity() T
}

// Object is a node of the transformation graph. An object exclusively owns
// its children; the parent pointer is a non-owning back reference.
//
// The zero value is not usable; create objects with [NewObject] or
// [NewScene].
type Object[T Transformation[T]] struct {
	parent   *Object[T]
	children []*Object[T]

	transformation T
	world          T
	dirty          bool

	scene     bool
	destroyed bool
}

// debugChecks enables destroyed-object panics in tree operations.
// Mirrors the render layer's debug mode; off by default.
var debugChecks bool

// SetDebugChecks toggles destroyed-object checks in tree operations.
// When enabled, using a destroyed object panics with a descriptive message
// instead of silently corrupting the tree.
func SetDebugChecks(enabled bool) {
	debugChecks = enabled
}

// NewScene creates the immovable root of a transformation graph. Its local
// and world transformations are always identity; mutation attempts are
// silently ignored.
func NewScene[T Transformation[T]]() *Object[T] {
	var z T
	id := z.Identity()
	return &Object[T]{transformation: id, world: id, scene: true}
}

// NewObject creates an object attached to the given parent. A nil parent
// creates a detached object that can be attached later with SetParent.
// New objects start with an identity local transformation and a dirty
// world transformation.
func NewObject[T Transformation[T]](parent *Object[T]) *Object[T] {
	var z T
	id := z.Identity()
	o := &Object[T]{transformation: id, world: id, dirty: true}
	if parent != nil {
		o.SetParent(parent)
	}
	return o
}

// IsScene reports whether this object is the immovable root of its graph.
func (o *Object[T]) IsScene() bool {
	return o.scene
}

// Parent returns the owning parent, or nil for a root.
func (o *Object[T]) Parent() *Object[T] {
	return o.parent
}

// Children returns the child list. The returned slice MUST NOT be mutated.
func (o *Object[T]) Children() []*Object[T] {
	return o.children
}

// SetParent moves this object (and its subtree) under a new parent. A nil
// parent detaches the object. Panics if this object is a scene, if the
// object would become its own ancestor, or — in debug mode — if either
// object is destroyed.
func (o *Object[T]) SetParent(parent *Object[T]) {
	if o.scene {
		panic("rowan/scenegraph: scene cannot have a parent")
	}
	if debugChecks {
		o.checkDestroyed("SetParent (child)")
		if parent != nil {
			parent.checkDestroyed("SetParent (parent)")
		}
	}
	if parent == o.parent {
		return
	}
	for p := parent; p != nil; p = p.parent {
		if p == o {
			panic("rowan/scenegraph: reparenting would create a cycle")
		}
	}
	if o.parent != nil {
		o.parent.removeChild(o)
	}
	o.parent = parent
	if parent != nil {
		parent.children = append(parent.children, o)
	}
	o.setDirty()
}

// Destroy detaches this object from its parent and destroys the whole
// subtree. Further operations on destroyed objects are undefined; with
// SetDebugChecks enabled they panic.
func (o *Object[T]) Destroy() {
	if o.destroyed {
		return
	}
	if o.parent != nil {
		o.parent.removeChild(o)
		o.parent = nil
	}
	o.destroy()
}

func (o *Object[T]) destroy() {
	o.destroyed = true
	for _, c := range o.children {
		c.parent = nil
		c.destroy()
	}
	o.children = nil
}

// IsDestroyed reports whether Destroy was called on this object or one of
// its ancestors.
func (o *Object[T]) IsDestroyed() bool {
	return o.destroyed
}

// Transformation returns the current local transformation.
func (o *Object[T]) Transformation() T {
	return o.transformation
}

// SetTransformation replaces the local transformation (absolute, not
// relative to the previous value) and marks the subtree dirty. Silently
// ignored on a scene.
func (o *Object[T]) SetTransformation(t T) {
	if o.scene {
		return
	}
	if debugChecks {
		o.checkDestroyed("SetTransformation")
	}
	o.transformation = t
	o.setDirty()
}

// Transform composes t with the current local transformation and marks the
// subtree dirty. Global applies t in the parent's space, Local in the
// object's own space. Silently ignored on a scene.
func (o *Object[T]) Transform(t T, typ TransformationType) {
	if o.scene {
		return
	}
	if debugChecks {
		o.checkDestroyed("Transform")
	}
	if typ == Global {
		o.transformation = t.Compose(o.transformation)
	} else {
		o.transformation = o.transformation.Compose(t)
	}
	o.setDirty()
}

// IsDirty reports whether the cached world transformation is stale.
func (o *Object[T]) IsDirty() bool {
	return o.dirty
}

// AbsoluteTransformation returns the object's world transformation,
// recomputing stale caches first.
func (o *Object[T]) AbsoluteTransformation() T {
	o.SetClean()
	return o.world
}

// SetClean recomputes the world transformation for this object and,
// recursively, for all dirty descendants. Dirty ancestors are recomputed
// first (path only) so every node composes against a current parent world.
// This is the single place cache invariants are restored.
func (o *Object[T]) SetClean() {
	// Dirty chain from this object up to the first clean ancestor. Marking
	// guarantees a dirty object's whole subtree is dirty, so the chain is
	// contiguous.
	var chain []*Object[T]
	for p := o; p != nil && p.dirty; p = p.parent {
		chain = append(chain, p)
	}
	for i := len(chain) - 1; i >= 1; i-- {
		p := chain[i]
		p.world = p.parentWorld().Compose(p.transformation)
		p.dirty = false
	}
	o.clean(o.parentWorld())
}

func (o *Object[T]) parentWorld() T {
	if o.parent != nil {
		return o.parent.world
	}
	return o.transformation.Identity()
}

// clean recomputes this object if dirty and recurses. Clean interior nodes
// are traversed without recomputation so independently dirtied descendants
// are still found.
func (o *Object[T]) clean(parentWorld T) {
	if o.dirty {
		o.world = parentWorld.Compose(o.transformation)
		o.dirty = false
	}
	for _, c := range o.children {
		c.clean(o.world)
	}
}

// setDirty marks this object and all descendants dirty, stopping descent at
// already-dirty subtrees (their descendants are dirty by invariant).
func (o *Object[T]) setDirty() {
	if o.dirty {
		return
	}
	o.dirty = true
	for _, c := range o.children {
		c.setDirty()
	}
}

func (o *Object[T]) removeChild(child *Object[T]) {
	for i, c := range o.children {
		if c == child {
			copy(o.children[i:], o.children[i+1:])
			o.children[len(o.children)-1] = nil
			o.children = o.children[:len(o.children)-1]
			return
		}
	}
}

func (o *Object[T]) checkDestroyed(op string) {
	if o.destroyed {
		panic(fmt.Sprintf("rowan/scenegraph: %s on destroyed object", op))
	}
}
