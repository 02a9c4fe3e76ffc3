package game

// Window defaults.
const (
	WindowWidth  = 960
	WindowHeight = 540
)

// Sprites per draw call.
const MaxSpriteRender = 4096

// Font atlas layout: printable ASCII from FontFirst, FontCols per row.
// The last cell holds a solid block used to fill rectangles.
const (
	FontCellW  = 7
	FontCellH  = 13
	FontCols   = 16
	FontRows   = 6
	FontFirst  = 32
	FontAtlasW = FontCellW * FontCols // 112
	FontAtlasH = FontCellH * FontRows // 78
	solidGlyph = FontFirst + FontCols*FontRows - 1
)

// Loaded sprites sit in one row of square cells below the glyphs.
const (
	SpriteCell = 32
	AtlasW     = SpriteCell * 4 // one cell per SpriteID after SpriteNone
	AtlasH     = FontAtlasH + SpriteCell
)

// Camera shake on hits, in screen pixels and seconds.
const (
	HitShake         = 14.0
	HitShakeDuration = 0.35
	BossShake        = 3.0
	BossShakeTime    = 0.08
)
