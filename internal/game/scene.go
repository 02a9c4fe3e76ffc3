package game

import (
	"math"
	"sort"

	"chickenescape/internal/sim"
)

// Quad is a filled screen-space rectangle in framebuffer pixels, origin
// top-left. With a Sprite it is drawn textured when that sprite is loaded;
// a Deco quad only details the flat fallback and is skipped then.
type Quad struct {
	X, Y, W, H float32
	Col        RGB
	A          float32
	Sprite     SpriteID
	Deco       bool
}

// Glow is an additive radial light sprite centred on X, Y.
type Glow struct {
	X, Y, Size float32
	Col        RGB
	A          float32
}

// Scene is one frame's draw list, back to front.
type Scene struct {
	Quads []Quad
	Glows []Glow
}

func (s *Scene) Reset() {
	s.Quads = s.Quads[:0]
	s.Glows = s.Glows[:0]
}

// quad appends a rectangle and returns it, or nil when it is empty. The
// pointer is only valid until the next append.
func (s *Scene) quad(x, y, w, h float64, col RGB, a float32) *Quad {
	if w <= 0 || h <= 0 || a <= 0 {
		return nil
	}
	s.Quads = append(s.Quads, Quad{X: float32(x), Y: float32(y), W: float32(w), H: float32(h), Col: col, A: a})
	return &s.Quads[len(s.Quads)-1]
}

// as tags q with a sprite. It accepts nil.
func (q *Quad) as(id SpriteID, deco bool) {
	if q != nil {
		q.Sprite, q.Deco = id, deco
	}
}

func (s *Scene) glow(x, y, size float64, col RGB, a float32) {
	if size <= 0 {
		return
	}
	s.Glows = append(s.Glows, Glow{X: float32(x), Y: float32(y), Size: float32(size), Col: col, A: a})
}

// GlowBuffer packs the glows for DrawGlowSprites, RGB pre-multiplied by A.
func (s *Scene) GlowBuffer(buf []float32) []float32 {
	buf = buf[:0]
	for _, g := range s.Glows {
		r, gr, b := g.Col.floats()
		buf = append(buf, g.X, g.Y, g.Size, r*g.A, gr*g.A, b*g.A, 1, 0)
	}
	return buf
}

// BuildScene fills sc with the world as seen through cam. t is wall time in
// seconds and only animates flicker.
func BuildScene(sc *Scene, w *sim.World, cam *Camera, fbW, fbH int, t float64) {
	sc.Reset()
	if cam.Ortho {
		buildSide(sc, w, cam, fbW, fbH, t)
		return
	}
	buildTrack(sc, w, cam, fbW, fbH, t)
}

// sideRect projects a box onto the side canvas.
func sideRect(cam *Camera, b sim.Box, fbW, fbH int) (x, y, w, h float64) {
	x0, y0, _, _ := cam.Project(sim.Vec3{X: b.Center.X - b.Half.X, Y: b.Center.Y + b.Half.Y}, fbW, fbH)
	x1, y1, _, _ := cam.Project(sim.Vec3{X: b.Center.X + b.Half.X, Y: b.Center.Y - b.Half.Y}, fbW, fbH)
	return x0, y0, x1 - x0, y1 - y0
}

func buildSide(sc *Scene, w *sim.World, cam *Camera, fbW, fbH int, t float64) {
	c := &w.Cfg
	s := &w.State

	// Sky gradient in bands, then the grass strip.
	const bands = 8
	x0, top, k, _ := cam.Project(sim.Vec3{Y: SideGroundY}, fbW, fbH)
	bandH := SideGroundY * k / bands
	for i := 0; i < bands; i++ {
		col := lerpRGB(Palette.SkyTop, Palette.SkyBottom, float64(i)/(bands-1))
		sc.quad(x0, top+float64(i)*bandH, SideViewW*k, bandH+1, col, 1)
	}
	_, gy, _, _ := cam.Project(sim.Vec3{}, fbW, fbH)
	sc.quad(x0, gy, SideViewW*k, (SideViewH-SideGroundY)*k, Palette.Grass, 1)
	for tx := 0.0; tx < SideViewW; tx += 20 {
		sc.quad(x0+tx*k, gy-4*k, 6*k, 4*k, Palette.GrassDark, 1)
	}

	for i := range s.Obstacles {
		x, y, bw, bh := sideRect(cam, c.ObstacleBox(&s.Obstacles[i]), fbW, fbH)
		// Three overlapping puffs, drifting up.
		for p := 0; p < 3; p++ {
			off := float64(p)
			sc.quad(x+off*8*k, y-off*5*k, bw*0.7, bh*0.7, Palette.Smoke, 0.5)
		}
	}

	if c.ChaserEnabled {
		x, y, bw, bh := sideRect(cam, c.ChaserBox(&s.Chaser), fbW, fbH)
		sc.quad(x, y, bw, bh, Palette.FryerBody, 1).as(SpriteFryer, false)
		sc.quad(x, y, bw, bh*0.3, Palette.FryerTop, 1).as(SpriteFryer, true)
		sc.quad(x+bw*0.125, y-bh*0.25, bw*0.75, bh*0.25, Palette.FryerTop, 1).as(SpriteFryer, true)
		sc.glow(x+bw/2, y, bw*0.9, Palette.FryerOil, 0.35+0.1*float32(math.Sin(t*9)))
	}

	x, y, bw, bh := sideRect(cam, c.PlayerBox(&s.Player), fbW, fbH)
	sc.quad(x, y, bw, bh, Palette.Chicken, 1).as(SpriteChicken, false)
	eye := 4 * k
	sc.quad(x+bw*0.75-eye/2, y+bh*0.25-eye/2, eye, eye, Palette.Eye, 1).as(SpriteChicken, true)
	sc.quad(x+bw*0.875, y+bh*0.25, bw*0.25, bh*0.25, Palette.Beak, 1).as(SpriteChicken, true)
}

// solid is a box awaiting depth sorting.
type solid struct {
	box   sim.Box
	col   RGB
	a     float32
	depth float64
	glow  RGB
	lit   float32 // glow brightness; zero for none
	spr   SpriteID
}

func buildTrack(sc *Scene, w *sim.World, cam *Camera, fbW, fbH int, t float64) {
	c := &w.Cfg
	s := &w.State

	// Sky above the horizon, ground plane below it.
	fw, fh := float64(fbW), float64(fbH)
	_, horizon, _, ok := cam.Project(sim.Vec3{Z: -1000}, fbW, fbH)
	if !ok {
		horizon = 0
	}
	horizon = clampF(horizon, 0, fh)
	sc.quad(0, 0, fw, horizon, Palette.SkyTop, 1)
	sc.quad(0, horizon, fw, fh-horizon, Palette.Floor, 1)
	buildMarkings(sc, c, cam, fbW, fbH)

	var solids []solid
	add := func(b sim.Box, col RGB) *solid {
		solids = append(solids, solid{box: b, col: col, a: 1})
		return &solids[len(solids)-1]
	}

	for i := range s.Obstacles {
		o := &s.Obstacles[i]
		b := c.ObstacleBox(o)
		switch o.Kind {
		case sim.KindCrate:
			add(b, Palette.Crate).spr = SpriteCrate
		case sim.KindFire:
			flick := 0.5 + 0.5*math.Sin(t*14+float64(o.ID))
			sd := add(b, lerpRGB(Palette.FireCool, Palette.FireHot, flick))
			sd.glow, sd.lit = Palette.FireHot, 0.5
		case sim.KindOil:
			add(b, Palette.Oil)
		case sim.KindSmoke:
			add(b, Palette.Smoke).a = 0.55
		}
	}
	for i := range s.Teammates {
		tm := &s.Teammates[i]
		col := Palette.Chicken
		if tm.Stun > 0 {
			col = Palette.Stunned
		}
		add(c.TeammateBox(tm), col).spr = SpriteChicken
	}
	if c.BossEnabled && !s.Boss.Health.IsDead() {
		sd := add(c.BossBox(&s.Boss), Palette.Boss)
		sd.glow, sd.lit, sd.spr = Palette.FryerOil, 0.3, SpriteBoss
	}
	if c.ChaserEnabled {
		sd := add(c.ChaserBox(&s.Chaser), Palette.FryerBody)
		sd.glow, sd.lit, sd.spr = Palette.FryerOil, 0.25, SpriteFryer
	}
	for i := range s.Projectiles {
		p := &s.Projectiles[i]
		if p.FromPlayer {
			sd := add(sim.Box{Center: p.Pos, Half: c.ShotHalf}, Palette.Shot)
			sd.glow, sd.lit = Palette.Shot, 0.4
		} else {
			sd := add(sim.Box{Center: p.Pos, Half: c.FireballHalf}, Palette.Fireball)
			sd.glow, sd.lit = Palette.Fireball, 0.7
		}
	}
	add(c.PlayerBox(&s.Player), Palette.Chicken).spr = SpriteChicken

	for i := range solids {
		solids[i].depth = cam.Depth(solids[i].box.Center)
	}
	// Farthest first; the stable sort keeps the player above what it stands in.
	sort.SliceStable(solids, func(i, j int) bool { return solids[i].depth > solids[j].depth })
	for i := range solids {
		drawSolid(sc, cam, &solids[i], fbW, fbH)
	}
}

// drawSolid emits the top and front faces of a box as their screen bounds.
func drawSolid(sc *Scene, cam *Camera, sd *solid, fbW, fbH int) {
	b := sd.box
	front := b.Center.Z + b.Half.Z
	back := b.Center.Z - b.Half.Z
	lx, rx := b.Center.X-b.Half.X, b.Center.X+b.Half.X
	top, bottom := b.Center.Y+b.Half.Y, b.Center.Y-b.Half.Y

	fx0, fy0, _, ok0 := cam.Project(sim.Vec3{X: lx, Y: top, Z: front}, fbW, fbH)
	fx1, fy1, _, ok1 := cam.Project(sim.Vec3{X: rx, Y: bottom, Z: front}, fbW, fbH)
	if !ok0 || !ok1 {
		return
	}
	if _, by, _, ok := cam.Project(sim.Vec3{X: lx, Y: top, Z: back}, fbW, fbH); ok && by < fy0 {
		sc.quad(fx0, by, fx1-fx0, fy0-by, sd.col.Add(28, 28, 28), sd.a).as(sd.spr, sd.spr != SpriteNone)
	}
	sc.quad(fx0, fy0, fx1-fx0, fy1-fy0, sd.col, sd.a).as(sd.spr, false)
	if sd.lit > 0 {
		sc.glow((fx0+fx1)/2, (fy0+fy1)/2, (fx1-fx0)*1.6, sd.glow, sd.lit)
	}
}

// buildMarkings dashes the lane dividers, or the field edges when the mode
// has no lanes, along the track.
func buildMarkings(sc *Scene, c *sim.Config, cam *Camera, fbW, fbH int) {
	var xs []float64
	if c.Lanes > 0 {
		for i := 0; i <= c.Lanes; i++ {
			xs = append(xs, c.LaneX(i)-c.LaneWidth/2)
		}
	} else {
		xs = []float64{c.MinX - 0.5, c.MaxX + 0.5}
	}
	for _, x := range xs {
		for z := -60.0; z < 10; z += 2 {
			sx0, sy0, k0, ok0 := cam.Project(sim.Vec3{X: x, Z: z}, fbW, fbH)
			_, sy1, _, ok1 := cam.Project(sim.Vec3{X: x, Z: z + 1}, fbW, fbH)
			if !ok0 || !ok1 {
				continue
			}
			wd := math.Max(1, 0.06*k0)
			sc.quad(sx0-wd/2, sy0, wd, sy1-sy0, Palette.LaneLine, 0.6)
		}
	}
}
