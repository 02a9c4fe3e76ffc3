package tty

import (
	"math"
	"strings"

	"chickenescape/internal/session"
	"chickenescape/internal/sim"

	"github.com/gdamore/tcell/v2"
)

// Side view scale: the play field spans the terminal width and each text
// row is sideUnitsPerRow units tall.
const (
	sideFieldWidth  = 800.0
	sideUnitsPerRow = 20.0
)

// Top-down scale for the 3D modes.
const (
	colsPerMetre = 5.0
	metresPerRow = 2.0
)

var (
	styleText     = tcell.StyleDefault.Foreground(tcell.ColorWhite)
	styleTitle    = tcell.StyleDefault.Foreground(tcell.ColorYellow).Bold(true)
	styleDim      = tcell.StyleDefault.Foreground(tcell.NewRGBColor(120, 120, 125))
	styleGround   = tcell.StyleDefault.Foreground(tcell.NewRGBColor(34, 139, 34))
	styleChicken  = tcell.StyleDefault.Foreground(tcell.NewRGBColor(255, 215, 0)).Bold(true)
	styleFryer    = tcell.StyleDefault.Foreground(tcell.NewRGBColor(150, 150, 150))
	styleBoss     = tcell.StyleDefault.Foreground(tcell.NewRGBColor(200, 60, 40))
	styleShot     = tcell.StyleDefault.Foreground(tcell.ColorWhite)
	styleFireball = tcell.StyleDefault.Foreground(tcell.NewRGBColor(255, 140, 30))
	styleStunned  = tcell.StyleDefault.Foreground(tcell.NewRGBColor(120, 110, 60))
)

var hazardGlyphs = map[sim.ObstacleKind]struct {
	r     rune
	style tcell.Style
}{
	sim.KindCrate: {'#', tcell.StyleDefault.Foreground(tcell.NewRGBColor(160, 110, 60))},
	sim.KindFire:  {'^', tcell.StyleDefault.Foreground(tcell.NewRGBColor(255, 90, 30))},
	sim.KindOil:   {'~', tcell.StyleDefault.Foreground(tcell.NewRGBColor(90, 80, 140))},
	sim.KindSmoke: {'%', tcell.StyleDefault.Foreground(tcell.NewRGBColor(200, 200, 200))},
}

// rect is an inclusive range of cells.
type rect struct {
	c0, r0, c1, r1 int
}

// projection maps a world box onto screen cells.
type projection interface {
	rect(b sim.Box) rect
}

// sideProjection looks at the x/y plane; the ground is the second last row.
type sideProjection struct {
	w, h int
}

func (p sideProjection) ground() int { return p.h - 2 }

func (p sideProjection) rect(b sim.Box) rect {
	k := float64(p.w) / sideFieldWidth
	c0, c1 := span((b.Center.X-b.Half.X)*k, (b.Center.X+b.Half.X)*k)
	lo, hi := span((b.Center.Y-b.Half.Y)/sideUnitsPerRow, (b.Center.Y+b.Half.Y)/sideUnitsPerRow)
	g := p.ground()
	return rect{c0: c0, r0: g - 1 - hi, c1: c1, r1: g - 1 - lo}
}

// topProjection looks down on the x/z plane with the player near the
// bottom and the track running up the screen.
type topProjection struct {
	w, h int
}

func (p topProjection) base() int { return p.h - 4 }

func (p topProjection) rect(b sim.Box) rect {
	mid := p.w / 2
	c0, c1 := span((b.Center.X-b.Half.X)*colsPerMetre, (b.Center.X+b.Half.X)*colsPerMetre)
	r0, r1 := span((b.Center.Z-b.Half.Z)/metresPerRow, (b.Center.Z+b.Half.Z)/metresPerRow)
	return rect{c0: mid + c0, r0: p.base() + r0, c1: mid + c1, r1: p.base() + r1}
}

// span turns a continuous interval into the cells it covers. Every
// interval covers at least one cell.
func span(lo, hi float64) (int, int) {
	a := int(math.Floor(lo))
	b := int(math.Ceil(hi)) - 1
	if b < a {
		b = a
	}
	return a, b
}

func projectionFor(m sim.Mode, w, h int) projection {
	if m == sim.ModeSide {
		return sideProjection{w: w, h: h}
	}
	return topProjection{w: w, h: h}
}

func fill(scr tcell.Screen, rc rect, r rune, style tcell.Style) {
	w, h := scr.Size()
	for y := max(rc.r0, 1); y <= rc.r1 && y < h-1; y++ {
		for x := max(rc.c0, 0); x <= rc.c1 && x < w; x++ {
			scr.SetContent(x, y, r, nil, style)
		}
	}
}

func drawText(scr tcell.Screen, x, y int, s string, style tcell.Style) {
	for _, r := range s {
		scr.SetContent(x, y, r, nil, style)
		x++
	}
}

func drawCentered(scr tcell.Screen, y int, s string, style tcell.Style) {
	w, _ := scr.Size()
	drawText(scr, (w-len([]rune(s)))/2, y, s, style)
}

// draw renders one frame of the world. It does not call Show.
func draw(scr tcell.Screen, w *sim.World) {
	scr.Clear()
	sw, sh := scr.Size()
	if sw <= 0 || sh <= 0 {
		return
	}
	c := &w.Cfg
	s := &w.State
	proj := projectionFor(c.Mode, sw, sh)

	if sp, ok := proj.(sideProjection); ok {
		for x := 0; x < sw; x++ {
			scr.SetContent(x, sp.ground(), '=', nil, styleGround)
		}
	} else {
		drawLanes(scr, proj.(topProjection), c)
	}

	for i := range s.Obstacles {
		o := &s.Obstacles[i]
		g := hazardGlyphs[o.Kind]
		fill(scr, proj.rect(c.ObstacleBox(o)), g.r, g.style)
	}
	for i := range s.Teammates {
		t := &s.Teammates[i]
		r, style := 'c', styleChicken
		if t.Stun > 0 {
			r, style = 'x', styleStunned
		}
		fill(scr, proj.rect(c.TeammateBox(t)), r, style)
	}
	if c.BossEnabled && !s.Boss.Health.IsDead() {
		fill(scr, proj.rect(c.BossBox(&s.Boss)), 'B', styleBoss)
	}
	if c.ChaserEnabled {
		fill(scr, proj.rect(c.ChaserBox(&s.Chaser)), 'F', styleFryer)
	}
	for i := range s.Projectiles {
		p := &s.Projectiles[i]
		if p.FromPlayer {
			fill(scr, proj.rect(sim.Box{Center: p.Pos, Half: c.ShotHalf}), '|', styleShot)
		} else {
			fill(scr, proj.rect(sim.Box{Center: p.Pos, Half: c.FireballHalf}), 'o', styleFireball)
		}
	}
	fill(scr, proj.rect(c.PlayerBox(&s.Player)), playerGlyph(&s.Player), styleChicken)

	drawHUD(scr, w)
}

func drawLanes(scr tcell.Screen, p topProjection, c *sim.Config) {
	_, h := scr.Size()
	var xs []float64
	if c.Lanes > 0 {
		for i := 0; i <= c.Lanes; i++ {
			xs = append(xs, c.LaneX(i)-c.LaneWidth/2)
		}
	} else {
		xs = []float64{c.MinX - 0.5, c.MaxX + 0.5}
	}
	for _, x := range xs {
		col := p.w/2 + int(math.Round(x*colsPerMetre))
		for y := 1; y < h-1; y++ {
			scr.SetContent(col, y, ':', nil, styleDim)
		}
	}
}

func playerGlyph(p *sim.Player) rune {
	switch {
	case !p.Grounded:
		return 'A'
	case p.Ducking:
		return 'v'
	}
	return '@'
}

func drawHUD(scr tcell.Screen, w *sim.World) {
	sw, sh := scr.Size()
	var parts []string
	for _, r := range session.Readouts(w) {
		parts = append(parts, r.String())
	}
	drawText(scr, 1, 0, strings.Join(parts, "   "), styleText)
	mode := strings.ToUpper(w.Cfg.Mode.String())
	drawText(scr, sw-len(mode)-1, 0, mode, styleDim)
	drawText(scr, 1, sh-1, session.ModeHint+"  ESC quit", styleDim)

	title, lines := session.Banner(w)
	if title == "" {
		return
	}
	y := sh/2 - 2
	drawCentered(scr, y, title, styleTitle)
	for i, l := range lines {
		drawCentered(scr, y+2+i, l, styleText)
	}
}
