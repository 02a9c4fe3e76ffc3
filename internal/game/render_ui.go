package game

import (
	"github.com/go-gl/gl/v4.1-core/gl"
)

// InitAtlas uploads the glyph and sprite atlas and sets up the text and
// quad pipeline. sp may be nil.
func (r *Renderer) InitAtlas(sp *Sprites) error {
	r.sprites = sp
	atlas := buildAtlas(sp)
	b := atlas.Bounds()

	var tex uint32
	gl.GenTextures(1, &tex)
	gl.BindTexture(gl.TEXTURE_2D, tex)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, gl.NEAREST)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, gl.NEAREST)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_S, gl.CLAMP_TO_EDGE)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_T, gl.CLAMP_TO_EDGE)
	gl.TexImage2D(gl.TEXTURE_2D, 0, gl.RGBA8,
		int32(b.Dx()), int32(b.Dy()), 0,
		gl.RGBA, gl.UNSIGNED_BYTE, gl.Ptr(atlas.Pix))
	r.fontTex = tex

	prog, err := linkProgram(textVertSrc, textFragSrc)
	if err != nil {
		return err
	}
	r.textProg = prog
	gl.UseProgram(prog)
	r.textURes = gl.GetUniformLocation(prog, gl.Str("uResolution\x00"))
	r.textUOffset = gl.GetUniformLocation(prog, gl.Str("uOffset\x00"))
	r.textUFontTex = gl.GetUniformLocation(prog, gl.Str("uFontTex\x00"))
	gl.Uniform1i(r.textUFontTex, 2) // texture unit 2

	// Per-vertex pos(2) + uv(2) + color(4) = 8 floats.
	var vao, vbo uint32
	gl.GenVertexArrays(1, &vao)
	gl.GenBuffers(1, &vbo)
	gl.BindVertexArray(vao)
	gl.BindBuffer(gl.ARRAY_BUFFER, vbo)

	stride := int32(8 * 4)
	gl.BufferData(gl.ARRAY_BUFFER, 2048*6*int(stride), nil, gl.STREAM_DRAW)
	gl.EnableVertexAttribArray(0) // aPos
	gl.VertexAttribPointer(0, 2, gl.FLOAT, false, stride, glOffset(0))
	gl.EnableVertexAttribArray(1) // aUV
	gl.VertexAttribPointer(1, 2, gl.FLOAT, false, stride, glOffset(2*4))
	gl.EnableVertexAttribArray(2) // aColor
	gl.VertexAttribPointer(2, 4, gl.FLOAT, false, stride, glOffset(4*4))

	r.textVAO = vao
	r.textVBO = vbo
	gl.BindVertexArray(0)
	return nil
}

func (r *Renderer) pushQuad(x, y, w, h, u0, v0, u1, v1 float32, col RGB, a float32) {
	cr, cg, cb := col.floats()
	// Two triangles: TL, TR, BL then TR, BR, BL.
	r.textBuf = append(r.textBuf,
		x, y, u0, v0, cr, cg, cb, a,
		x+w, y, u1, v0, cr, cg, cb, a,
		x, y+h, u0, v1, cr, cg, cb, a,
		x+w, y, u1, v0, cr, cg, cb, a,
		x+w, y+h, u1, v1, cr, cg, cb, a,
		x, y+h, u0, v1, cr, cg, cb, a,
	)
}

// DrawRect queues a filled rectangle in screen pixel space.
func (r *Renderer) DrawRect(x, y, w, h float32, col RGB, a float32) {
	u, v := solidUV()
	r.pushQuad(x, y, w, h, u, v, u, v, col, a)
}

// DrawQuads queues a scene's rectangles, textured where a sprite is loaded.
func (r *Renderer) DrawQuads(qs []Quad) {
	for _, q := range qs {
		if !r.sprites.Has(q.Sprite) {
			r.DrawRect(q.X, q.Y, q.W, q.H, q.Col, q.A)
			continue
		}
		if q.Deco {
			continue
		}
		u0, v0, u1, v1 := spriteUV(q.Sprite)
		r.pushQuad(q.X, q.Y, q.W, q.H, u0, v0, u1, v1, RGB{R: 255, G: 255, B: 255}, q.A)
	}
}

// DrawChar queues a single character as a textured quad in screen pixel space.
func (r *Renderer) DrawChar(ch rune, sx, sy, scale float32, col RGB) {
	u0, v0, u1, v1, ok := glyphUV(ch)
	if !ok || ch == solidGlyph {
		return
	}
	r.pushQuad(sx, sy, FontCellW*scale, FontCellH*scale, u0, v0, u1, v1, col, 1)
}

// DrawString queues a string at screen pixel position (sx, sy) with given scale.
func (r *Renderer) DrawString(text string, sx, sy int, scale float32, col RGB) {
	advance := float32(FontCellW) * scale
	lineAdvance := float32(FontCellH) * scale
	baseX := float32(sx)
	x := float32(sx)
	y := float32(sy)
	for _, ch := range text {
		if ch == '\n' {
			x = baseX
			y += lineAdvance
			continue
		}
		r.DrawChar(ch, x, y, scale, col)
		x += advance
	}
}

// Flush draws all queued quads, shifted by the offset, and clears the queue.
func (r *Renderer) Flush(fbW, fbH int, offX, offY float32) {
	if len(r.textBuf) == 0 {
		return
	}

	gl.UseProgram(r.textProg)
	gl.BindVertexArray(r.textVAO)
	gl.BindBuffer(gl.ARRAY_BUFFER, r.textVBO)

	gl.Uniform2f(r.textURes, float32(fbW), float32(fbH))
	gl.Uniform2f(r.textUOffset, offX, offY)

	gl.ActiveTexture(gl.TEXTURE2)
	gl.BindTexture(gl.TEXTURE_2D, r.fontTex)

	gl.Enable(gl.BLEND)
	gl.BlendFunc(gl.SRC_ALPHA, gl.ONE_MINUS_SRC_ALPHA)

	count := len(r.textBuf) / 8
	gl.BufferData(gl.ARRAY_BUFFER, len(r.textBuf)*4, gl.Ptr(r.textBuf), gl.STREAM_DRAW)
	gl.DrawArrays(gl.TRIANGLES, 0, int32(count))

	gl.Disable(gl.BLEND)
	gl.ActiveTexture(gl.TEXTURE0)
	r.textBuf = r.textBuf[:0]
}
