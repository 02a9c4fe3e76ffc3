package sim

import "time"

// Step advances the world by dt. Outside the playing phase it only watches
// for start and restart presses.
func (w *World) Step(in Input, dt time.Duration) {
	s := &w.State
	switch s.Phase {
	case PhaseReady:
		if in.Pressed(ActionJump) || in.Pressed(ActionRestart) {
			w.Start()
		}
		return
	case PhaseGameOver, PhaseGameWon:
		if in.Pressed(ActionRestart) || (w.Cfg.JumpRestarts && in.Pressed(ActionJump)) {
			w.Restart()
		}
		return
	}

	if dt < 0 {
		dt = 0
	}
	s.Elapsed += dt
	if w.stepTimer(dt) {
		return
	}

	sec := dt.Seconds()
	w.stepPlayer(in, sec)
	w.stepChaser(sec)
	w.stepHazards(sec)
	if w.Cfg.BossEnabled {
		w.stepProjectiles(in, dt)
	}

	w.collide()
	if s.Phase != PhasePlaying {
		return
	}
	w.cullProjectiles()
	w.stepTeammates(dt)
}

// stepTimer counts the round down and reports whether it ran out.
func (w *World) stepTimer(dt time.Duration) bool {
	if w.Cfg.TimeLimit <= 0 {
		return false
	}
	s := &w.State
	s.TimeLeft -= dt
	if s.TimeLeft > 0 {
		return false
	}
	s.TimeLeft = 0
	w.setPhase(PhaseGameWon)
	return true
}

func (w *World) stepPlayer(in Input, sec float64) {
	c := &w.Cfg
	p := &w.State.Player

	p.Ducking = in.Held(ActionDuck)

	switch {
	case c.Lanes > 0:
		if in.Pressed(ActionLeft) && p.Lane > 0 {
			p.Lane--
		}
		if in.Pressed(ActionRight) && p.Lane < c.Lanes-1 {
			p.Lane++
		}
		p.Pos.X = c.LaneX(p.Lane)
	case c.MoveSpeed > 0:
		if in.Held(ActionLeft) {
			p.Pos.X -= c.MoveSpeed * sec
		}
		if in.Held(ActionRight) {
			p.Pos.X += c.MoveSpeed * sec
		}
		p.Pos.X = clampF(p.Pos.X, c.MinX, c.MaxX)
	default:
		if in.Pressed(ActionLeft) {
			p.Pos.X -= c.MoveStep
		}
		if in.Pressed(ActionRight) {
			p.Pos.X += c.MoveStep
		}
		p.Pos.X = clampF(p.Pos.X, c.MinX, c.MaxX)
	}

	p.Pos.Y += p.VelY * sec
	p.VelY += c.Gravity * sec
	// A rising player that has not left the ground yet stays airborne.
	if p.Pos.Y <= 0 && p.VelY <= 0 {
		p.Pos.Y = 0
		p.VelY = 0
		p.Grounded = true
	}

	if in.Held(ActionJump) && p.Grounded && !p.Ducking {
		p.VelY = c.JumpVelocity
		p.Grounded = false
		w.Events.Emit(Event{Type: EventJump})
	}
}

func (w *World) stepChaser(sec float64) {
	c := &w.Cfg
	if !c.ChaserEnabled {
		return
	}
	s := &w.State
	ch := &s.Chaser

	pos := ch.Pos.Along(c.Track) + c.Approach*ch.Speed*sec
	ch.Pos.SetAlong(c.Track, pos)
	if c.behind(pos) <= c.ChaserWrap {
		return
	}

	ch.Pos.SetAlong(c.Track, c.trackPos(c.ChaserStart))
	ch.Speed += c.ChaserSpeedStep
	ch.Laps++
	if c.ChaserTracksLane {
		ch.Pos.X = s.Player.Pos.X
	}
	s.Score++
	w.Events.Emit(Event{Type: EventScore, Data: s.Score})
	w.log.WithField("lap", ch.Laps).WithField("speed", ch.Speed).Debug("chaser wrapped")
}

func (w *World) stepHazards(sec float64) {
	c := &w.Cfg
	if len(c.HazardKinds) == 0 {
		return
	}
	s := &w.State
	s.Speed += c.HazardAccel * sec
	shift := c.Approach * s.Speed * sec

	kept := s.Obstacles[:0]
	for _, o := range s.Obstacles {
		pos := o.Pos.Along(c.Track) + shift
		if c.behind(pos) > c.HazardCutoff {
			continue
		}
		o.Pos.SetAlong(c.Track, pos)
		kept = append(kept, o)
	}
	s.Obstacles = kept

	if len(s.Obstacles) < c.HazardThreshold {
		w.refillHazards()
	}
}

func (w *World) stepProjectiles(in Input, dt time.Duration) {
	c := &w.Cfg
	s := &w.State
	sec := dt.Seconds()

	for i := range s.Projectiles {
		pr := &s.Projectiles[i]
		if pr.FromPlayer {
			pr.travel = -c.ShotSpeed * sec
		} else {
			pr.travel = c.FireballSpeed * sec
		}
		pr.Pos.Z += pr.travel
	}

	if in.Pressed(ActionFire) {
		w.fireShot()
	}

	s.VolleyTimer -= dt
	if s.VolleyTimer <= 0 {
		w.spawnVolley()
		s.VolleyTimer = w.nextVolleyDelay()
	}
}

// collide resolves every overlap of the tick. Boss defeat is checked before
// player death.
func (w *World) collide() {
	c := &w.Cfg
	s := &w.State
	p := &s.Player
	pb := c.PlayerBox(p)

	hit := c.ChaserEnabled && Overlaps(pb, c.ChaserBox(&s.Chaser))
	for i := 0; !hit && i < len(s.Obstacles); i++ {
		hit = Overlaps(pb, c.ObstacleBox(&s.Obstacles[i]))
	}
	if hit {
		p.Health.Damage(p.Health.Current)
		w.Events.Emit(Event{Type: EventHit})
		w.setPhase(PhaseGameOver)
		return
	}

	if len(s.Projectiles) == 0 {
		return
	}
	bossBox := c.BossBox(&s.Boss)
	kept := s.Projectiles[:0]
	for _, pr := range s.Projectiles {
		box := c.ProjectileBox(&pr)
		if pr.FromPlayer {
			if !s.Boss.Health.IsDead() && Overlaps(box, bossBox) {
				s.Boss.Health.Damage(c.BossDamage)
				s.Score++
				w.Events.Emit(Event{Type: EventBossHit, Data: s.Boss.Health.Current})
				continue
			}
		} else {
			if Overlaps(box, pb) {
				p.Health.Damage(c.FireballDamage)
				w.Events.Emit(Event{Type: EventHit, Data: p.Health.Current})
				continue
			}
			if w.stunTeammate(box) {
				continue
			}
		}
		kept = append(kept, pr)
	}
	s.Projectiles = kept

	switch {
	case c.BossEnabled && s.Boss.Health.IsDead():
		w.setPhase(PhaseGameWon)
	case p.Health.IsDead():
		w.setPhase(PhaseGameOver)
	}
}

func (w *World) stunTeammate(box Box) bool {
	c := &w.Cfg
	for i := range w.State.Teammates {
		t := &w.State.Teammates[i]
		if Overlaps(box, c.TeammateBox(t)) {
			t.Stun = c.TeammateStunTime
			return true
		}
	}
	return false
}

func (w *World) cullProjectiles() {
	c := &w.Cfg
	s := &w.State
	kept := s.Projectiles[:0]
	for _, pr := range s.Projectiles {
		if pr.FromPlayer && pr.Pos.Z <= -c.ShotRange {
			continue
		}
		if !pr.FromPlayer && pr.Pos.Z >= c.FireballRange {
			continue
		}
		kept = append(kept, pr)
	}
	s.Projectiles = kept
}

func (w *World) stepTeammates(dt time.Duration) {
	for i := range w.State.Teammates {
		t := &w.State.Teammates[i]
		t.Stun -= dt
		if t.Stun < 0 {
			t.Stun = 0
		}
	}
}
