package sim

import "time"

// spawnHazard places a random hazard the given distance ahead of the origin.
func (w *World) spawnHazard(ahead float64) {
	c := &w.Cfg
	kind := c.HazardKinds[w.rng.Intn(len(c.HazardKinds))]

	pos := Vec3{Y: c.HazardShapes[kind].Lift}
	pos.SetAlong(c.Track, c.trackPos(ahead))
	if c.Lanes > 0 {
		pos.X = c.LaneX(w.rng.Intn(c.Lanes))
	}

	w.State.Obstacles = append(w.State.Obstacles, Obstacle{
		ID:   w.newID(),
		Kind: kind,
		Pos:  pos,
	})
}

// refillHazards appends a batch beyond the farthest live hazard, never
// closer than the first spawn distance.
func (w *World) refillHazards() {
	c := &w.Cfg
	far := c.HazardFirst
	for _, o := range w.State.Obstacles {
		if d := -c.behind(o.Pos.Along(c.Track)); d > far {
			far = d
		}
	}
	for i := 1; i <= c.HazardBatch; i++ {
		w.spawnHazard(far + float64(i)*c.HazardSpacing)
	}
	w.log.WithField("live", len(w.State.Obstacles)).Debug("hazards refilled")
}

func (w *World) fireShot() {
	c := &w.Cfg
	p := &w.State.Player
	pos := Vec3{X: p.Pos.X, Y: p.Pos.Y + c.ShotOffsetY, Z: p.Pos.Z}
	w.State.Projectiles = append(w.State.Projectiles, Projectile{
		ID:         w.newID(),
		FromPlayer: true,
		Pos:        pos,
	})
	w.Events.Emit(Event{Type: EventFire})
}

// spawnVolley throws one fireball at the player and one at each teammate.
func (w *World) spawnVolley() {
	c := &w.Cfg
	s := &w.State
	targets := []float64{s.Player.Pos.X}
	for _, t := range s.Teammates {
		targets = append(targets, t.Pos.X)
	}
	for _, x := range targets {
		s.Projectiles = append(s.Projectiles, Projectile{
			ID:  w.newID(),
			Pos: Vec3{X: x, Y: c.FireballY, Z: c.FireballSpawnZ},
		})
	}
	w.Events.Emit(Event{Type: EventVolley, Data: len(targets)})
}

func (w *World) nextVolleyDelay() time.Duration {
	c := &w.Cfg
	jitter := w.rng.RangeF(-1, 1) * float64(c.VolleyJitter)
	d := c.VolleyInterval + time.Duration(jitter)
	if d < 0 {
		return 0
	}
	return d
}
