package game

import (
	"image"
	"image/color"
	"image/draw"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

// buildAtlas rasterises basicfont's 7x13 face white-on-clear and appends
// whatever sprites were loaded.
func buildAtlas(sp *Sprites) *image.NRGBA {
	atlas := image.NewNRGBA(image.Rect(0, 0, AtlasW, AtlasH))
	face := basicfont.Face7x13
	d := &font.Drawer{Dst: atlas, Src: image.White, Face: face}
	for ch := FontFirst; ch < solidGlyph; ch++ {
		cx, cy := cellOrigin(rune(ch))
		d.Dot = fixed.P(cx, cy+face.Ascent)
		d.DrawString(string(rune(ch)))
	}
	cx, cy := cellOrigin(solidGlyph)
	draw.Draw(atlas, image.Rect(cx, cy, cx+FontCellW, cy+FontCellH),
		image.NewUniform(color.White), image.Point{}, draw.Src)
	sp.paint(atlas)
	return atlas
}

func cellOrigin(ch rune) (int, int) {
	i := int(ch) - FontFirst
	return (i % FontCols) * FontCellW, (i / FontCols) * FontCellH
}

// glyphUV returns the atlas texture coordinates of a character.
func glyphUV(ch rune) (u0, v0, u1, v1 float32, ok bool) {
	if ch < FontFirst || ch > solidGlyph {
		return 0, 0, 0, 0, false
	}
	cx, cy := cellOrigin(ch)
	u0 = float32(cx) / AtlasW
	v0 = float32(cy) / AtlasH
	u1 = float32(cx+FontCellW) / AtlasW
	v1 = float32(cy+FontCellH) / AtlasH
	return u0, v0, u1, v1, true
}

// solidUV samples the centre of the solid cell so filtering never reaches
// a neighbouring glyph.
func solidUV() (float32, float32) {
	cx, cy := cellOrigin(solidGlyph)
	return (float32(cx) + FontCellW/2.0) / AtlasW, (float32(cy) + FontCellH/2.0) / AtlasH
}

// TextWidth returns the width in screen pixels of a string at given scale.
func TextWidth(text string, scale float32) int {
	lineLen := 0
	maxLineLen := 0
	for _, ch := range text {
		if ch == '\n' {
			if lineLen > maxLineLen {
				maxLineLen = lineLen
			}
			lineLen = 0
			continue
		}
		lineLen++
	}
	if lineLen > maxLineLen {
		maxLineLen = lineLen
	}
	return int(float32(maxLineLen*FontCellW) * scale)
}
