package rowan

import (
	"fmt"

	"github.com/hajimehoshi/ebiten/v2"
)

// Program wraps a compiled Kage shader together with a retained uniform
// set. Uniforms are stored in a single map that is reused across draws, so
// setting them is alloc-free after warmup and unchanged values carry over
// from frame to frame.
type Program struct {
	shader   *ebiten.Shader
	uniforms map[string]any
}

// NewProgram compiles Kage source into a Program.
func NewProgram(src []byte) (*Program, error) {
	shader, err := ebiten.NewShader(src)
	if err != nil {
		return nil, fmt.Errorf("compile shader: %w", err)
	}
	return &Program{
		shader:   shader,
		uniforms: make(map[string]any),
	}, nil
}

// SetUniform stores a uniform value. The value is passed to every
// subsequent draw until overwritten.
func (p *Program) SetUniform(name string, value any) {
	p.uniforms[name] = value
}

// Uniform returns the currently stored value for name.
func (p *Program) Uniform(name string) (any, bool) {
	v, ok := p.uniforms[name]
	return v, ok
}

// Shader returns the underlying compiled shader.
func (p *Program) Shader() *ebiten.Shader {
	return p.shader
}

// Apply renders src into dst through the program, covering dst's bounds.
// src is bound as image slot 0.
func (p *Program) Apply(dst, src *ebiten.Image) {
	b := dst.Bounds()
	op := &ebiten.DrawRectShaderOptions{}
	op.Images[0] = src
	op.Uniforms = p.uniforms
	dst.DrawRectShader(b.Dx(), b.Dy(), p.shader, op)
}

// Deallocate releases the underlying shader. The program must not be used
// afterwards.
func (p *Program) Deallocate() {
	if p.shader != nil {
		p.shader.Deallocate()
		p.shader = nil
	}
}

// colorMatrixShaderSrc applies a 4x5 color matrix (row-major, offsets in
// elements 4, 9, 14, 19). Ebitengine uses premultiplied alpha; the shader
// un-premultiplies before applying the matrix and re-premultiplies after.
const colorMatrixShaderSrc = `//kage:unit pixels
package main

var Matrix [20]float

func Fragment(dst vec4, src vec2, color vec4) vec4 {
	c := imageSrc0At(src)
	if c.a > 0 {
		c.rgb /= c.a
	}
	r := Matrix[0]*c.r + Matrix[1]*c.g + Matrix[2]*c.b + Matrix[3]*c.a + Matrix[4]
	g := Matrix[5]*c.r + Matrix[6]*c.g + Matrix[7]*c.b + Matrix[8]*c.a + Matrix[9]
	b := Matrix[10]*c.r + Matrix[11]*c.g + Matrix[12]*c.b + Matrix[13]*c.a + Matrix[14]
	a := Matrix[15]*c.r + Matrix[16]*c.g + Matrix[17]*c.b + Matrix[18]*c.a + Matrix[19]
	r = clamp(r, 0, 1)
	g = clamp(g, 0, 1)
	b = clamp(b, 0, 1)
	a = clamp(a, 0, 1)
	return vec4(r*a, g*a, b*a, a)
}
`

// identityColorMatrix leaves colors unchanged.
var identityColorMatrix = [20]float32{
	1, 0, 0, 0, 0,
	0, 1, 0, 0, 0,
	0, 0, 1, 0, 0,
	0, 0, 0, 1, 0,
}

// NewColorMatrixProgram compiles the built-in color matrix shader with the
// identity matrix preloaded. Set the "Matrix" uniform to change it.
func NewColorMatrixProgram() (*Program, error) {
	p, err := NewProgram([]byte(colorMatrixShaderSrc))
	if err != nil {
		return nil, err
	}
	p.SetUniform("Matrix", identityColorMatrix)
	return p, nil
}
