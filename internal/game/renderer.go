package game

import (
	"fmt"
	"unsafe"

	"github.com/go-gl/gl/v4.1-core/gl"
)

// glOffset converts a byte offset to unsafe.Pointer for OpenGL VBO offset params.
func glOffset(n int) unsafe.Pointer { return unsafe.Pointer(uintptr(n)) }

// Renderer owns the GL programs. Everything is drawn in framebuffer pixels:
// quads and text through the atlas program, lights as additive point sprites.
type Renderer struct {
	// Glow (radial light) program.
	glowProg        uint32
	glowVAO         uint32
	glowVBO         uint32
	glowUOffset     int32
	glowUResolution int32

	// Font atlas, text and solid quads.
	fontTex      uint32
	textProg     uint32
	textVAO      uint32
	textVBO      uint32
	textURes     int32
	textUOffset  int32
	textUFontTex int32
	textBuf      []float32
	sprites      *Sprites

	// Reused every frame.
	glowBuf []float32
}

func NewRenderer() (*Renderer, error) {
	glowProg, err := linkProgram(glowVertSrc, glowFragSrc)
	if err != nil {
		return nil, fmt.Errorf("glow program: %w", err)
	}
	r := &Renderer{glowProg: glowProg}

	// Each sprite: 8 floats (x, y, size, r, g, b, a, rotation).
	var sVAO, sVBO uint32
	gl.GenVertexArrays(1, &sVAO)
	gl.GenBuffers(1, &sVBO)
	gl.BindVertexArray(sVAO)
	gl.BindBuffer(gl.ARRAY_BUFFER, sVBO)

	stride := int32(8 * 4)
	gl.BufferData(gl.ARRAY_BUFFER, MaxSpriteRender*int(stride), nil, gl.STREAM_DRAW)
	// aPos (vec2)
	gl.EnableVertexAttribArray(0)
	gl.VertexAttribPointer(0, 2, gl.FLOAT, false, stride, glOffset(0))
	// aSize (float)
	gl.EnableVertexAttribArray(1)
	gl.VertexAttribPointer(1, 1, gl.FLOAT, false, stride, glOffset(2*4))
	// aColor (vec4)
	gl.EnableVertexAttribArray(2)
	gl.VertexAttribPointer(2, 4, gl.FLOAT, false, stride, glOffset(3*4))
	// aRotation (float)
	gl.EnableVertexAttribArray(3)
	gl.VertexAttribPointer(3, 1, gl.FLOAT, false, stride, glOffset(7*4))
	r.glowVAO = sVAO
	r.glowVBO = sVBO

	gl.UseProgram(glowProg)
	r.glowUOffset = gl.GetUniformLocation(glowProg, gl.Str("uOffset\x00"))
	r.glowUResolution = gl.GetUniformLocation(glowProg, gl.Str("uResolution\x00"))

	gl.BindVertexArray(0)
	gl.Enable(gl.PROGRAM_POINT_SIZE)
	return r, nil
}

func (r *Renderer) Destroy() {
	for _, id := range []uint32{r.glowVBO, r.textVBO} {
		if id != 0 {
			gl.DeleteBuffers(1, &id)
		}
	}
	for _, id := range []uint32{r.glowVAO, r.textVAO} {
		if id != 0 {
			gl.DeleteVertexArrays(1, &id)
		}
	}
	for _, id := range []uint32{r.glowProg, r.textProg} {
		if id != 0 {
			gl.DeleteProgram(id)
		}
	}
	if r.fontTex != 0 {
		gl.DeleteTextures(1, &r.fontTex)
	}
}

// BeginFrame sets the viewport and clears to col.
func (r *Renderer) BeginFrame(fbW, fbH int, col RGB) {
	gl.Viewport(0, 0, int32(fbW), int32(fbH))
	cr, cg, cb := col.floats()
	gl.ClearColor(cr, cg, cb, 1)
	gl.Clear(gl.COLOR_BUFFER_BIT)
}

// DrawScene draws a built scene: quads first, then lights on top.
func (r *Renderer) DrawScene(sc *Scene, fbW, fbH int, offX, offY float32) {
	r.DrawQuads(sc.Quads)
	r.Flush(fbW, fbH, offX, offY)
	r.glowBuf = sc.GlowBuffer(r.glowBuf)
	r.DrawGlowSprites(r.glowBuf, fbW, fbH, offX, offY)
}
