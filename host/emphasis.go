package host

import "github.com/hajimehoshi/ebiten/v2"

// emphasisShaderSrc applies a 4x5 colour matrix to a straight-alpha copy of
// the source and re-premultiplies. Ebitengine images are premultiplied.
const emphasisShaderSrc = `//kage:unit pixels
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
	a = clamp(a, 0, 1) * color.a
	return vec4(r*a, g*a, b*a, a)
}
`

// Single-threaded like the rest of the draw path, so no sync.Once.
var emphasisShader *ebiten.Shader

func ensureEmphasisShader() *ebiten.Shader {
	if emphasisShader == nil {
		s, err := ebiten.NewShader([]byte(emphasisShaderSrc))
		if err != nil {
			panic("carousel: failed to compile emphasis shader: " + err.Error())
		}
		emphasisShader = s
	}
	return emphasisShader
}

// emphasisMatrix returns the row-major 4x5 matrix that desaturates toward
// Rec. 601 luma by (1-sat) and then washes toward white by lift.
func emphasisMatrix(sat, lift float64) [20]float64 {
	sr := (1 - sat) * 0.299
	sg := (1 - sat) * 0.587
	sb := (1 - sat) * 0.114
	k := 1 - lift
	return [20]float64{
		(sr + sat) * k, sg * k, sb * k, 0, lift,
		sr * k, (sg + sat) * k, sb * k, 0, lift,
		sr * k, sg * k, (sb + sat) * k, 0, lift,
		0, 0, 0, 1, 0,
	}
}

// emphasisPainter draws one image with an item's saturation and lift.
type emphasisPainter struct {
	matrixF32   [20]float32 // persistent buffer so the uniform map never reallocates
	matrixSlice []float32
	uniforms    map[string]any
	op          ebiten.DrawRectShaderOptions
}

func newEmphasisPainter() *emphasisPainter {
	p := &emphasisPainter{uniforms: make(map[string]any, 1)}
	p.matrixSlice = p.matrixF32[:]
	p.uniforms["Matrix"] = p.matrixSlice
	return p
}

// draw renders src into dst scaled to the rectangle r, colour graded by
// sat and lift and faded by alpha.
func (p *emphasisPainter) draw(dst, src *ebiten.Image, r screenRect, sat, lift, alpha float64) {
	m := emphasisMatrix(sat, lift)
	for i, v := range m {
		p.matrixF32[i] = float32(v)
	}
	b := src.Bounds()
	w, h := b.Dx(), b.Dy()
	if w == 0 || h == 0 {
		return
	}
	p.op.GeoM.Reset()
	p.op.GeoM.Scale(r.Width/float64(w), r.Height/float64(h))
	p.op.GeoM.Translate(r.X, r.Y)
	p.op.ColorScale.Reset()
	p.op.ColorScale.ScaleAlpha(float32(alpha))
	p.op.Images[0] = src
	p.op.Uniforms = p.uniforms
	dst.DrawRectShader(w, h, ensureEmphasisShader(), &p.op)
}
