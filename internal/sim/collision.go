package sim

import "math"

// Box is an axis-aligned bounding box given by its centre and half extents.
type Box struct {
	Center Vec3
	Half   Vec3
}

// Overlaps reports whether two boxes intersect on all three axes. Touching
// faces do not count.
func Overlaps(a, b Box) bool {
	return math.Abs(a.Center.X-b.Center.X) < a.Half.X+b.Half.X &&
		math.Abs(a.Center.Y-b.Center.Y) < a.Half.Y+b.Half.Y &&
		math.Abs(a.Center.Z-b.Center.Z) < a.Half.Z+b.Half.Z
}

// baseBox builds a box standing on pos with the given full size.
func baseBox(pos, size Vec3) Box {
	return Box{
		Center: Vec3{X: pos.X, Y: pos.Y + size.Y/2, Z: pos.Z},
		Half:   Vec3{X: size.X / 2, Y: size.Y / 2, Z: size.Z / 2},
	}
}

// PlayerBox returns the player's hit box; ducking shrinks its height.
func (c *Config) PlayerBox(p *Player) Box {
	size := c.PlayerSize
	if p.Ducking {
		size.Y *= c.DuckScale
	}
	return baseBox(p.Pos, size)
}

func (c *Config) ChaserBox(ch *Chaser) Box {
	return baseBox(ch.Pos, c.ChaserSize)
}

// ObstacleBox returns the hit box of an obstacle. Obstacle positions already
// include the kind's lift.
func (c *Config) ObstacleBox(o *Obstacle) Box {
	return baseBox(o.Pos, c.HazardShapes[o.Kind].Size)
}

// ProjectileBox covers the whole distance travelled during the last tick so
// fast shots cannot skip over a thin target.
func (c *Config) ProjectileBox(p *Projectile) Box {
	half := c.FireballHalf
	if p.FromPlayer {
		half = c.ShotHalf
	}
	b := Box{Center: p.Pos, Half: half}
	b.Center.Z -= p.travel / 2
	b.Half.Z += math.Abs(p.travel) / 2
	return b
}

func (c *Config) BossBox(b *Boss) Box {
	return Box{Center: b.Pos, Half: c.BossHalf}
}

func (c *Config) TeammateBox(t *Teammate) Box {
	return baseBox(t.Pos, c.TeammateSize)
}
