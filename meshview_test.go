package rowan

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/hajimehoshi/ebiten/v2"
)

func quadVertices() []ebiten.Vertex {
	return []ebiten.Vertex{
		{DstX: 0, DstY: 0, ColorR: 1, ColorG: 1, ColorB: 1, ColorA: 1},
		{DstX: 1, DstY: 0, ColorR: 1, ColorG: 1, ColorB: 1, ColorA: 1},
		{DstX: 1, DstY: 1, ColorR: 1, ColorG: 1, ColorB: 1, ColorA: 1},
		{DstX: 0, DstY: 1, ColorR: 1, ColorG: 1, ColorB: 1, ColorA: 1},
	}
}

func TestNewMeshRejectsPartialTriangles(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("expected panic for index count not a multiple of 3")
		}
	}()
	NewMesh(nil, quadVertices(), []uint16{0, 1})
}

func TestNewMeshRejectsOutOfRangeIndex(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("expected panic for out-of-range index")
		}
	}()
	NewMesh(nil, quadVertices(), []uint16{0, 1, 9})
}

func TestMeshViewRange(t *testing.T) {
	m := NewMesh(nil, quadVertices(), []uint16{0, 1, 2, 0, 2, 3})

	full := m.FullView()
	if full.IndexCount() != 6 {
		t.Errorf("full view count = %d, want 6", full.IndexCount())
	}

	half := m.View(3, 3)
	if half.IndexCount() != 3 {
		t.Errorf("half view count = %d, want 3", half.IndexCount())
	}
}

func TestMeshViewUnalignedPanics(t *testing.T) {
	m := NewMesh(nil, quadVertices(), []uint16{0, 1, 2, 0, 2, 3})
	defer func() {
		if recover() == nil {
			t.Error("expected panic for unaligned view range")
		}
	}()
	m.View(1, 3)
}

func TestMeshViewOutOfRangePanics(t *testing.T) {
	m := NewMesh(nil, quadVertices(), []uint16{0, 1, 2})
	defer func() {
		if recover() == nil {
			t.Error("expected panic for out-of-range view")
		}
	}()
	m.View(0, 6)
}

func TestZeroMeshViewDrawsNothing(t *testing.T) {
	dst := ebiten.NewImage(8, 8)
	defer dst.Deallocate()

	var v MeshView
	if !v.IsZero() {
		t.Error("zero view should report IsZero")
	}
	// Should not panic.
	v.Draw(dst, mgl32.Ident3(), ColorWhite, BlendNormal)
}

func TestMeshViewDraw(t *testing.T) {
	dst := ebiten.NewImage(16, 16)
	defer dst.Deallocate()

	m := NewMesh(nil, quadVertices(), []uint16{0, 1, 2, 0, 2, 3})
	// Should not panic, textured or not.
	m.FullView().Draw(dst, mgl32.Translate2D(2, 3), Color{1, 0, 0, 0.5}, BlendAdd)

	img := ebiten.NewImage(4, 4)
	defer img.Deallocate()
	QuadMesh(img).FullView().Draw(dst, mgl32.Ident3(), ColorWhite, BlendNormal)
}

func TestTransformMeshVertices(t *testing.T) {
	src := quadVertices()
	dst := make([]ebiten.Vertex, len(src))

	world := mgl32.Translate2D(10, 20)
	transformMeshVertices(src, dst, world, Color{0.5, 1, 1, 0.5})

	if !approxEqual(float64(dst[2].DstX), 11, epsilon) || !approxEqual(float64(dst[2].DstY), 21, epsilon) {
		t.Errorf("translated vertex = (%v, %v), want (11, 21)", dst[2].DstX, dst[2].DstY)
	}
	// Tint is premultiplied into the vertex colors.
	if !approxEqual(float64(dst[0].ColorR), 0.25, epsilon) {
		t.Errorf("ColorR = %v, want 0.25", dst[0].ColorR)
	}
	if !approxEqual(float64(dst[0].ColorA), 0.5, epsilon) {
		t.Errorf("ColorA = %v, want 0.5", dst[0].ColorA)
	}
	// Source must be untouched.
	if src[2].DstX != 1 || src[0].ColorR != 1 {
		t.Error("transform mutated the source vertices")
	}
}

func TestQuadMeshGeometry(t *testing.T) {
	img := ebiten.NewImage(32, 16)
	defer img.Deallocate()

	m := QuadMesh(img)
	v := m.Vertices()
	if len(v) != 4 {
		t.Fatalf("vertex count = %d, want 4", len(v))
	}
	if v[2].DstX != 32 || v[2].DstY != 16 {
		t.Errorf("far corner = (%v, %v), want (32, 16)", v[2].DstX, v[2].DstY)
	}
	if m.FullView().IndexCount() != 6 {
		t.Errorf("index count = %d, want 6", m.FullView().IndexCount())
	}
}

func TestScratchHighWater(t *testing.T) {
	m := NewMesh(nil, quadVertices(), []uint16{0, 1, 2})
	first := m.ensureScratch()
	second := m.ensureScratch()
	if cap(second) != cap(first) {
		t.Error("scratch buffer reallocated at constant size")
	}
}

func BenchmarkMeshViewDraw(b *testing.B) {
	dst := ebiten.NewImage(64, 64)
	defer dst.Deallocate()

	m := NewMesh(nil, quadVertices(), []uint16{0, 1, 2, 0, 2, 3})
	v := m.FullView()
	world := mgl32.Translate2D(5, 5)

	b.ReportAllocs()
	for b.Loop() {
		v.Draw(dst, world, ColorWhite, BlendNormal)
	}
}
