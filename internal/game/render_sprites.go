package game

import "github.com/go-gl/gl/v4.1-core/gl"

// DrawGlowSprites renders light sprites with additive blending and radial falloff.
// buf format: [x, y, size, r, g, b, a, rotation] * N in framebuffer pixels.
// RGB values should be pre-multiplied by desired brightness.
func (r *Renderer) DrawGlowSprites(buf []float32, fbW, fbH int, offX, offY float32) {
	if len(buf) == 0 {
		return
	}
	count := len(buf) / 8
	if count > MaxSpriteRender {
		count = MaxSpriteRender
	}
	gl.UseProgram(r.glowProg)
	gl.BindVertexArray(r.glowVAO)
	gl.BindBuffer(gl.ARRAY_BUFFER, r.glowVBO)
	gl.Uniform2f(r.glowUOffset, offX, offY)
	gl.Uniform2f(r.glowUResolution, float32(fbW), float32(fbH))
	gl.Enable(gl.BLEND)
	gl.BlendFunc(gl.ONE, gl.ONE)
	gl.BufferData(gl.ARRAY_BUFFER, count*8*4, gl.Ptr(buf), gl.STREAM_DRAW)
	gl.DrawArrays(gl.POINTS, 0, int32(count))
	gl.Disable(gl.BLEND)
	gl.BindVertexArray(0)
}
