package rowan

import (
	"image"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
)

// Framebuffer is an offscreen render target with tracked viewport state.
// The SubImage derived for the current viewport is cached so repeated
// draws to the same region skip re-deriving it.
type Framebuffer struct {
	img      *ebiten.Image
	viewport image.Rectangle
	sub      *ebiten.Image
}

// NewFramebuffer creates an offscreen target of the given size. The image
// is unmanaged: it is never implicitly restored, which is fine for targets
// redrawn every frame.
func NewFramebuffer(w, h int) *Framebuffer {
	if w <= 0 || h <= 0 {
		panic("rowan: framebuffer dimensions must be positive")
	}
	img := ebiten.NewImageWithOptions(
		image.Rect(0, 0, w, h),
		&ebiten.NewImageOptions{Unmanaged: true},
	)
	return &Framebuffer{img: img, viewport: img.Bounds(), sub: img}
}

// Image returns the full underlying image.
func (f *Framebuffer) Image() *ebiten.Image {
	return f.img
}

// SetViewport restricts subsequent Target calls to the given region.
// Setting the same viewport again reuses the cached sub-image.
func (f *Framebuffer) SetViewport(r image.Rectangle) {
	r = r.Intersect(f.img.Bounds())
	if r == f.viewport && f.sub != nil {
		return
	}
	f.viewport = r
	if r == f.img.Bounds() {
		f.sub = f.img
		return
	}
	f.sub = f.img.SubImage(r).(*ebiten.Image)
}

// Target returns the image restricted to the current viewport.
func (f *Framebuffer) Target() *ebiten.Image {
	return f.sub
}

// Viewport returns the current viewport rectangle.
func (f *Framebuffer) Viewport() image.Rectangle {
	return f.viewport
}

// Clear fills the current viewport with transparent black.
func (f *Framebuffer) Clear() {
	f.sub.Clear()
}

// Deallocate releases the underlying image. The framebuffer must not be
// used afterwards.
func (f *Framebuffer) Deallocate() {
	if f.img != nil {
		f.img.Deallocate()
		f.img = nil
		f.sub = nil
	}
}

// --- Framebuffer pool ---

// framebufferPool manages reusable offscreen images keyed by power-of-two
// dimensions. After warmup, Acquire/Release are zero-alloc.
type framebufferPool struct {
	buckets map[uint64][]*ebiten.Image
}

// poolKey packs power-of-two width and height into a single uint64.
func poolKey(w, h int) uint64 {
	return uint64(w)<<32 | uint64(h)
}

// Acquire returns a cleared offscreen image with at least (w, h) pixels.
// Dimensions are rounded up to the next power of two.
func (p *framebufferPool) Acquire(w, h int) *ebiten.Image {
	pw := nextPowerOfTwo(w)
	ph := nextPowerOfTwo(h)
	key := poolKey(pw, ph)

	if p.buckets != nil {
		if stack := p.buckets[key]; len(stack) > 0 {
			img := stack[len(stack)-1]
			p.buckets[key] = stack[:len(stack)-1]
			img.Clear()
			return img
		}
	}

	return ebiten.NewImageWithOptions(
		image.Rect(0, 0, pw, ph),
		&ebiten.NewImageOptions{Unmanaged: true},
	)
}

// Release returns an image to the pool for reuse. The image is cleared on
// next Acquire, not here (avoids redundant GPU work if released then
// immediately re-acquired).
func (p *framebufferPool) Release(img *ebiten.Image) {
	if img == nil {
		return
	}
	b := img.Bounds()
	key := poolKey(b.Dx(), b.Dy())

	if p.buckets == nil {
		p.buckets = make(map[uint64][]*ebiten.Image)
	}
	p.buckets[key] = append(p.buckets[key], img)
}

// nextPowerOfTwo returns the smallest power of two >= n (minimum 1).
func nextPowerOfTwo(n int) int {
	if n <= 1 {
		return 1
	}
	return 1 << int(math.Ceil(math.Log2(float64(n))))
}
