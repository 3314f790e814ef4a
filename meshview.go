package rowan

import (
	"fmt"
	"image/color"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/hajimehoshi/ebiten/v2"
)

// Mesh owns vertex and index buffers plus the source texture. Buffers are
// validated once at construction; draw submission happens through views.
type Mesh struct {
	vertices []ebiten.Vertex
	indices  []uint16
	image    *ebiten.Image
	scratch  []ebiten.Vertex // reused transform buffer, high-water mark
}

// NewMesh creates a mesh. The index count must be a multiple of three and
// every index must be in range — violations are programming errors and
// panic. A nil image draws untextured (solid white source).
func NewMesh(img *ebiten.Image, vertices []ebiten.Vertex, indices []uint16) *Mesh {
	if len(indices)%3 != 0 {
		panic("rowan: mesh index count must be a multiple of 3")
	}
	for _, idx := range indices {
		if int(idx) >= len(vertices) {
			panic(fmt.Sprintf("rowan: mesh index %d out of range (%d vertices)", idx, len(vertices)))
		}
	}
	return &Mesh{vertices: vertices, indices: indices, image: img}
}

// Vertices returns the vertex buffer. The returned slice MUST NOT be
// resized by the caller; mutating vertex values is fine.
func (m *Mesh) Vertices() []ebiten.Vertex {
	return m.vertices
}

// View returns a view over count indices starting at offset. Offset and
// count must be triangle-aligned and in range.
func (m *Mesh) View(offset, count int) MeshView {
	if offset%3 != 0 || count%3 != 0 {
		panic("rowan: mesh view range must be triangle-aligned")
	}
	if offset < 0 || count < 0 || offset+count > len(m.indices) {
		panic(fmt.Sprintf("rowan: mesh view range [%d, %d) out of range (%d indices)", offset, offset+count, len(m.indices)))
	}
	return MeshView{mesh: m, offset: offset, count: count}
}

// FullView returns a view over the whole index buffer.
func (m *Mesh) FullView() MeshView {
	return MeshView{mesh: m, offset: 0, count: len(m.indices)}
}

// MeshView is a draw submission over a sub-range of a mesh's indices.
// Views are values; copying one is free and draws share the mesh's
// buffers.
type MeshView struct {
	mesh   *Mesh
	offset int
	count  int
}

// IsZero reports whether the view references no mesh.
func (v MeshView) IsZero() bool {
	return v.mesh == nil
}

// IndexCount returns the number of indices this view submits.
func (v MeshView) IndexCount() int {
	return v.count
}

// Draw transforms the mesh vertices by the world matrix on the CPU and
// submits the view's triangles.
func (v MeshView) Draw(dst *ebiten.Image, world mgl32.Mat3, tint Color, blend BlendMode) {
	if v.mesh == nil || v.count == 0 {
		return
	}
	verts := v.mesh.ensureScratch()
	transformMeshVertices(v.mesh.vertices, verts, world, tint)
	op := &ebiten.DrawTrianglesOptions{}
	op.Blend = blend.EbitenBlend()
	dst.DrawTriangles(verts, v.mesh.indices[v.offset:v.offset+v.count], v.mesh.sourceImage(), op)
}

// DrawWithProgram is Draw routed through a shader program. The mesh's
// texture is bound as image slot 0 and the program's uniforms are passed
// along.
func (v MeshView) DrawWithProgram(dst *ebiten.Image, world mgl32.Mat3, tint Color, p *Program) {
	if v.mesh == nil || v.count == 0 {
		return
	}
	verts := v.mesh.ensureScratch()
	transformMeshVertices(v.mesh.vertices, verts, world, tint)
	op := &ebiten.DrawTrianglesShaderOptions{}
	op.Images[0] = v.mesh.sourceImage()
	op.Uniforms = p.uniforms
	dst.DrawTrianglesShader(verts, v.mesh.indices[v.offset:v.offset+v.count], p.shader, op)
}

// ensureScratch grows the transform buffer to fit the vertex count, never
// shrinking.
func (m *Mesh) ensureScratch() []ebiten.Vertex {
	need := len(m.vertices)
	if cap(m.scratch) < need {
		m.scratch = make([]ebiten.Vertex, need)
	}
	m.scratch = m.scratch[:need]
	return m.scratch
}

func (m *Mesh) sourceImage() *ebiten.Image {
	if m.image != nil {
		return m.image
	}
	return ensureWhitePixel()
}

// transformMeshVertices applies a homogeneous 2D world matrix and color
// tint to src vertices, writing into dst. dst must be at least len(src).
// The tint is premultiplied into the vertex colors here.
func transformMeshVertices(src, dst []ebiten.Vertex, world mgl32.Mat3, tint Color) {
	a, c, tx := world.At(0, 0), world.At(0, 1), world.At(0, 2)
	b, d, ty := world.At(1, 0), world.At(1, 1), world.At(1, 2)

	for i := range src {
		s := &src[i]
		x := s.DstX
		y := s.DstY
		dst[i] = ebiten.Vertex{
			DstX:   a*x + c*y + tx,
			DstY:   b*x + d*y + ty,
			SrcX:   s.SrcX,
			SrcY:   s.SrcY,
			ColorR: s.ColorR * tint.R * tint.A,
			ColorG: s.ColorG * tint.G * tint.A,
			ColorB: s.ColorB * tint.B * tint.A,
			ColorA: s.ColorA * tint.A,
		}
	}
}

// whitePixelImage backs untextured meshes. Lazily created; rowan is
// single-threaded, so no sync.Once.
var whitePixelImage *ebiten.Image

func ensureWhitePixel() *ebiten.Image {
	if whitePixelImage == nil {
		whitePixelImage = ebiten.NewImage(1, 1)
		whitePixelImage.Fill(color.RGBA{R: 255, G: 255, B: 255, A: 255})
	}
	return whitePixelImage
}

// QuadMesh builds a textured unit quad (two triangles) covering the given
// image, convenient for sprite-like actors.
func QuadMesh(img *ebiten.Image) *Mesh {
	b := img.Bounds()
	w := float32(b.Dx())
	h := float32(b.Dy())
	sx := float32(b.Min.X)
	sy := float32(b.Min.Y)
	verts := []ebiten.Vertex{
		{DstX: 0, DstY: 0, SrcX: sx, SrcY: sy, ColorR: 1, ColorG: 1, ColorB: 1, ColorA: 1},
		{DstX: w, DstY: 0, SrcX: sx + w, SrcY: sy, ColorR: 1, ColorG: 1, ColorB: 1, ColorA: 1},
		{DstX: w, DstY: h, SrcX: sx + w, SrcY: sy + h, ColorR: 1, ColorG: 1, ColorB: 1, ColorA: 1},
		{DstX: 0, DstY: h, SrcX: sx, SrcY: sy + h, ColorR: 1, ColorG: 1, ColorB: 1, ColorA: 1},
	}
	return NewMesh(img, verts, []uint16{0, 1, 2, 0, 2, 3})
}
