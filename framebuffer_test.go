package rowan

import (
	"image"
	"testing"
)

func TestNewFramebufferDimensions(t *testing.T) {
	fb := NewFramebuffer(128, 64)
	defer fb.Deallocate()

	b := fb.Image().Bounds()
	if b.Dx() != 128 || b.Dy() != 64 {
		t.Errorf("bounds = %dx%d, want 128x64", b.Dx(), b.Dy())
	}
	if fb.Viewport() != b {
		t.Errorf("initial viewport = %v, want full bounds %v", fb.Viewport(), b)
	}
}

func TestNewFramebufferZeroSizePanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("expected panic for zero dimensions")
		}
	}()
	NewFramebuffer(0, 64)
}

func TestFramebufferViewportRestrictsTarget(t *testing.T) {
	fb := NewFramebuffer(64, 64)
	defer fb.Deallocate()

	r := image.Rect(8, 8, 32, 32)
	fb.SetViewport(r)
	if fb.Viewport() != r {
		t.Errorf("viewport = %v, want %v", fb.Viewport(), r)
	}
	if got := fb.Target().Bounds(); got != r {
		t.Errorf("target bounds = %v, want %v", got, r)
	}

	// Setting the same viewport again must reuse the cached sub-image.
	prev := fb.Target()
	fb.SetViewport(r)
	if fb.Target() != prev {
		t.Error("redundant SetViewport re-derived the sub-image")
	}

	// Restoring the full viewport hands back the root image.
	fb.SetViewport(fb.Image().Bounds())
	if fb.Target() != fb.Image() {
		t.Error("full viewport should target the root image")
	}
}

func TestFramebufferViewportClipped(t *testing.T) {
	fb := NewFramebuffer(32, 32)
	defer fb.Deallocate()

	fb.SetViewport(image.Rect(-10, -10, 100, 100))
	if fb.Viewport() != fb.Image().Bounds() {
		t.Errorf("viewport = %v, want clipped to %v", fb.Viewport(), fb.Image().Bounds())
	}
}

func TestFramebufferClear(t *testing.T) {
	fb := NewFramebuffer(16, 16)
	defer fb.Deallocate()

	// Should not panic.
	fb.Clear()
	fb.SetViewport(image.Rect(0, 0, 8, 8))
	fb.Clear()
}

func TestFramebufferDoubleDeallocate(t *testing.T) {
	fb := NewFramebuffer(16, 16)
	fb.Deallocate()
	fb.Deallocate()
}

// --- pool ---

func TestPoolRoundsUpToPowerOfTwo(t *testing.T) {
	var p framebufferPool
	img := p.Acquire(100, 30)
	b := img.Bounds()
	if b.Dx() != 128 || b.Dy() != 32 {
		t.Errorf("acquired %dx%d, want 128x32", b.Dx(), b.Dy())
	}
	p.Release(img)
}

func TestPoolReusesReleasedImages(t *testing.T) {
	var p framebufferPool
	img := p.Acquire(64, 64)
	p.Release(img)

	// Same bucket: the released image must come back.
	got := p.Acquire(50, 60)
	if got != img {
		t.Error("pool did not reuse the released image")
	}

	// Different bucket: a fresh image.
	other := p.Acquire(256, 256)
	if other == img {
		t.Error("pool returned an image from the wrong bucket")
	}
	p.Release(got)
	p.Release(other)
}

func TestPoolReleaseNil(t *testing.T) {
	var p framebufferPool
	p.Release(nil) // must not panic
}

func TestNextPowerOfTwo(t *testing.T) {
	cases := []struct{ in, want int }{
		{0, 1}, {1, 1}, {2, 2}, {3, 4}, {4, 4}, {5, 8},
		{127, 128}, {128, 128}, {129, 256}, {1000, 1024},
	}
	for _, c := range cases {
		if got := nextPowerOfTwo(c.in); got != c.want {
			t.Errorf("nextPowerOfTwo(%d) = %d, want %d", c.in, got, c.want)
		}
	}
}

func BenchmarkPoolAcquireRelease(b *testing.B) {
	var p framebufferPool
	p.Release(p.Acquire(256, 256))

	b.ReportAllocs()
	for b.Loop() {
		img := p.Acquire(200, 200)
		p.Release(img)
	}
}
