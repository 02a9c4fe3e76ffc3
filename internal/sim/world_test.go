package sim

import (
	"testing"
	"time"

	"chickenescape/pkg/logger"

	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
)

const frame = 16 * time.Millisecond

func press(actions ...Action) Input {
	var s InputState
	for _, a := range actions {
		s.Press(a)
	}
	return s.Snapshot()
}

func hold(actions ...Action) Input {
	var s InputState
	for _, a := range actions {
		s.Press(a)
	}
	s.Snapshot()
	return s.Snapshot()
}

// quietConfig returns a mode config with no chaser and no hazards.
func quietConfig(mode Mode) Config {
	cfg := DefaultConfig(mode)
	cfg.ChaserEnabled = false
	cfg.HazardKinds = nil
	cfg.HazardInitial = 0
	return cfg
}

func playing(t *testing.T, cfg Config) *World {
	t.Helper()
	w := NewWorld(cfg, 42)
	w.Start()
	if w.State.Phase != PhasePlaying {
		t.Fatalf("phase after Start = %v, want playing", w.State.Phase)
	}
	return w
}

func countEvents(w *World, typ EventType) *int {
	n := new(int)
	w.Events.Subscribe(typ, func(Event) { *n++ })
	return n
}

func TestReadyWaitsForStart(t *testing.T) {
	w := NewWorld(DefaultConfig(ModeSolo), 1)
	for i := 0; i < 10; i++ {
		w.Step(Input{}, frame)
	}
	if w.State.Phase != PhaseReady {
		t.Fatalf("phase = %v, want ready", w.State.Phase)
	}
	if w.State.TimeLeft != w.Cfg.TimeLimit {
		t.Fatalf("timer ran while ready: %v", w.State.TimeLeft)
	}

	w.Step(press(ActionJump), frame)
	if w.State.Phase != PhasePlaying {
		t.Fatalf("phase after jump = %v, want playing", w.State.Phase)
	}
}

func TestTimerExpiryWins(t *testing.T) {
	w := playing(t, quietConfig(ModeSolo))
	phases := countEvents(w, EventPhase)

	ticks := int(120 * time.Second / frame)
	for i := 0; i < ticks-1; i++ {
		w.Step(Input{}, frame)
	}
	if w.State.Phase != PhasePlaying {
		t.Fatalf("phase one tick before expiry = %v, want playing", w.State.Phase)
	}

	w.Step(Input{}, frame)
	if w.State.Phase != PhaseGameWon {
		t.Fatalf("phase = %v, want gameWon", w.State.Phase)
	}
	if w.State.TimeLeft != 0 {
		t.Fatalf("timeLeft = %v, want 0", w.State.TimeLeft)
	}
	if *phases != 1 {
		t.Fatalf("phase events = %d, want 1", *phases)
	}
}

func TestTimerNeverNegative(t *testing.T) {
	w := playing(t, quietConfig(ModeSide))
	w.State.TimeLeft = 5 * time.Millisecond
	w.Step(Input{}, 100*time.Millisecond)
	if w.State.TimeLeft != 0 || w.State.Phase != PhaseGameWon {
		t.Fatalf("timeLeft=%v phase=%v, want 0 gameWon", w.State.TimeLeft, w.State.Phase)
	}
}

func TestTeamModeHasNoTimer(t *testing.T) {
	cfg := DefaultConfig(ModeTeam)
	cfg.VolleyInterval = time.Hour
	w := playing(t, cfg)
	for i := 0; i < 1000; i++ {
		w.Step(Input{}, 100*time.Millisecond)
	}
	if w.State.Phase != PhasePlaying {
		t.Fatalf("phase = %v, want playing", w.State.Phase)
	}
}

func TestNegativeDeltaIsIgnored(t *testing.T) {
	w := playing(t, DefaultConfig(ModeSolo))
	before := w.State.TimeLeft
	w.Step(Input{}, -time.Second)
	if w.State.TimeLeft != before {
		t.Fatalf("timeLeft changed on negative dt: %v -> %v", before, w.State.TimeLeft)
	}
}

func TestJumpLandsBackOnGround(t *testing.T) {
	for _, mode := range []Mode{ModeSide, ModeSolo, ModeTeam} {
		t.Run(mode.String(), func(t *testing.T) {
			cfg := quietConfig(mode)
			cfg.TimeLimit = 0
			cfg.VolleyInterval = time.Hour
			w := playing(t, cfg)
			jumps := countEvents(w, EventJump)

			w.Step(hold(ActionJump), frame)
			p := &w.State.Player
			if p.Grounded || p.VelY != cfg.JumpVelocity {
				t.Fatalf("after jump grounded=%v velY=%f, want airborne at %f", p.Grounded, p.VelY, cfg.JumpVelocity)
			}

			peak := 0.0
			for i := 0; i < 200 && !p.Grounded; i++ {
				w.Step(Input{}, frame)
				if p.Pos.Y < 0 {
					t.Fatalf("tick %d: y = %f below ground", i, p.Pos.Y)
				}
				if p.Pos.Y > peak {
					peak = p.Pos.Y
				}
			}
			if !p.Grounded || p.Pos.Y != 0 {
				t.Fatalf("did not land: grounded=%v y=%f", p.Grounded, p.Pos.Y)
			}
			if peak <= 0 {
				t.Fatalf("never left the ground")
			}
			if *jumps != 1 {
				t.Fatalf("jump events = %d, want 1", *jumps)
			}
		})
	}
}

func TestJumpSurvivesZeroDelta(t *testing.T) {
	w := playing(t, quietConfig(ModeSolo))
	w.Step(hold(ActionJump), frame)
	w.Step(Input{}, 0)
	if w.State.Player.Grounded {
		t.Fatalf("zero-length tick cancelled the jump")
	}
}

func TestCannotJumpWhileDucking(t *testing.T) {
	w := playing(t, quietConfig(ModeSolo))
	w.Step(hold(ActionJump, ActionDuck), frame)
	if !w.State.Player.Grounded || w.State.Player.VelY != 0 {
		t.Fatalf("ducking player jumped")
	}
}

func TestHazardAtPlayerEndsRound(t *testing.T) {
	w := playing(t, quietConfig(ModeSolo))
	hits := countEvents(w, EventHit)
	w.State.Obstacles = append(w.State.Obstacles, Obstacle{
		ID:   99,
		Kind: KindCrate,
		Pos:  Vec3{X: w.State.Player.Pos.X},
	})

	w.Step(Input{}, frame)
	if w.State.Phase != PhaseGameOver {
		t.Fatalf("phase = %v, want gameOver", w.State.Phase)
	}
	if *hits != 1 {
		t.Fatalf("hit events = %d, want 1", *hits)
	}

	// Nothing moves after the round ends.
	obs := w.State.Obstacles[0].Pos
	w.Step(Input{}, frame)
	if w.State.Obstacles[0].Pos != obs {
		t.Fatalf("obstacle moved after gameOver")
	}
}

func TestDuckUnderSmoke(t *testing.T) {
	w := playing(t, quietConfig(ModeSolo))
	smoke := w.Cfg.HazardShapes[KindSmoke]
	w.State.Obstacles = []Obstacle{{
		ID:   1,
		Kind: KindSmoke,
		Pos:  Vec3{X: w.State.Player.Pos.X, Y: smoke.Lift},
	}}

	w.Step(hold(ActionDuck), frame)
	if w.State.Phase != PhasePlaying {
		t.Fatalf("ducking player was hit by smoke")
	}
	w.Step(Input{}, frame)
	if w.State.Phase != PhaseGameOver {
		t.Fatalf("standing player was not hit by smoke")
	}
}

func TestLaneMovesAreClamped(t *testing.T) {
	w := playing(t, quietConfig(ModeSolo))
	if w.State.Player.Lane != 1 || w.State.Player.Pos.X != 0 {
		t.Fatalf("start lane=%d x=%f, want 1 0", w.State.Player.Lane, w.State.Player.Pos.X)
	}

	w.Step(press(ActionLeft), frame)
	w.Step(press(ActionLeft), frame)
	if w.State.Player.Lane != 0 || w.State.Player.Pos.X != -1 {
		t.Fatalf("lane=%d x=%f, want 0 -1", w.State.Player.Lane, w.State.Player.Pos.X)
	}

	// Holding a lane key does not repeat the move.
	w.Step(press(ActionRight), frame)
	w.Step(hold(ActionRight), frame)
	if w.State.Player.Lane != 1 {
		t.Fatalf("lane=%d, want 1", w.State.Player.Lane)
	}
}

func TestSideMovementStaysInField(t *testing.T) {
	w := playing(t, quietConfig(ModeSide))
	for i := 0; i < 200; i++ {
		w.Step(hold(ActionLeft), frame)
	}
	if x := w.State.Player.Pos.X; x != w.Cfg.MinX {
		t.Fatalf("x = %f, want %f", x, w.Cfg.MinX)
	}
	for i := 0; i < 400; i++ {
		w.Step(hold(ActionRight), frame)
	}
	if x := w.State.Player.Pos.X; x != w.Cfg.MaxX {
		t.Fatalf("x = %f, want %f", x, w.Cfg.MaxX)
	}
}

func TestChaserSpeedsUpEachLap(t *testing.T) {
	cfg := quietConfig(ModeSide)
	cfg.ChaserEnabled = true
	w := playing(t, cfg)
	scores := countEvents(w, EventScore)
	// Off the chaser's plane so it can never catch the player.
	w.State.Player.Pos.Z = 5

	prevSpeed := w.State.Chaser.Speed
	prevLaps := 0
	for i := 0; i < 600; i++ {
		prevScore := w.State.Score
		w.Step(Input{}, 100*time.Millisecond)
		ch := w.State.Chaser
		if ch.Speed < prevSpeed {
			t.Fatalf("tick %d: chaser slowed %f -> %f", i, prevSpeed, ch.Speed)
		}
		if ch.Laps != prevLaps {
			if ch.Laps != prevLaps+1 {
				t.Fatalf("tick %d: laps jumped %d -> %d", i, prevLaps, ch.Laps)
			}
			if w.State.Score != prevScore+1 {
				t.Fatalf("tick %d: score %d -> %d on wrap", i, prevScore, w.State.Score)
			}
			if ch.Speed != prevSpeed+cfg.ChaserSpeedStep {
				t.Fatalf("tick %d: speed %f -> %f on wrap", i, prevSpeed, ch.Speed)
			}
		} else if w.State.Score != prevScore {
			t.Fatalf("tick %d: score changed without a wrap", i)
		}
		prevSpeed, prevLaps = ch.Speed, ch.Laps
	}
	if prevLaps < 3 {
		t.Fatalf("laps = %d, want at least 3", prevLaps)
	}
	if *scores != prevLaps {
		t.Fatalf("score events = %d, laps = %d", *scores, prevLaps)
	}
}

func TestChaserCatchesIdlePlayer(t *testing.T) {
	cfg := quietConfig(ModeSolo)
	cfg.ChaserEnabled = true
	w := playing(t, cfg)
	for i := 0; i < 1000 && w.State.Phase == PhasePlaying; i++ {
		w.Step(Input{}, frame)
	}
	if w.State.Phase != PhaseGameOver {
		t.Fatalf("phase = %v, want gameOver", w.State.Phase)
	}
	if w.State.Chaser.Laps != 0 {
		t.Fatalf("chaser wrapped through the player")
	}
}

func TestHazardsStreamAndAccelerate(t *testing.T) {
	cfg := DefaultConfig(ModeSolo)
	cfg.ChaserEnabled = false
	w := playing(t, cfg)
	if n := len(w.State.Obstacles); n != cfg.HazardInitial {
		t.Fatalf("initial obstacles = %d, want %d", n, cfg.HazardInitial)
	}
	// Park the player beyond the cull line.
	w.State.Player.Pos.Z = 1000

	seen := map[uint64]bool{}
	for i := 0; i < 3000; i++ {
		w.Step(Input{}, 100*time.Millisecond)
		if w.State.Phase != PhasePlaying {
			break
		}
		if len(w.State.Obstacles) < cfg.HazardThreshold {
			t.Fatalf("tick %d: only %d obstacles live", i, len(w.State.Obstacles))
		}
		for _, o := range w.State.Obstacles {
			if w.Cfg.behind(o.Pos.Z) > cfg.HazardCutoff {
				t.Fatalf("obstacle %d not culled at z=%f", o.ID, o.Pos.Z)
			}
			if o.Kind != KindSmoke && o.Pos.Y != 0 {
				t.Fatalf("obstacle %d floats at y=%f", o.ID, o.Pos.Y)
			}
			seen[o.ID] = true
		}
	}
	if w.State.Speed <= cfg.HazardSpeed {
		t.Fatalf("speed = %f, want > %f", w.State.Speed, cfg.HazardSpeed)
	}
	if len(seen) <= cfg.HazardInitial {
		t.Fatalf("no hazards were respawned")
	}
}

func TestBossDefeatWins(t *testing.T) {
	cfg := DefaultConfig(ModeTeam)
	cfg.VolleyInterval = time.Hour
	w := playing(t, cfg)
	hits := countEvents(w, EventBossHit)

	shots := cfg.BossHealth / cfg.BossDamage
	for i := 0; i < shots; i++ {
		w.Step(press(ActionFire), frame)
	}
	for i := 0; i < 200 && w.State.Phase == PhasePlaying; i++ {
		w.Step(Input{}, frame)
	}

	if w.State.Phase != PhaseGameWon {
		t.Fatalf("phase = %v, want gameWon", w.State.Phase)
	}
	if w.State.Boss.Health.Current != 0 {
		t.Fatalf("boss health = %d, want 0", w.State.Boss.Health.Current)
	}
	if *hits != shots || w.State.Score != shots {
		t.Fatalf("hits=%d score=%d, want %d", *hits, w.State.Score, shots)
	}
}

func TestFastShotDoesNotTunnel(t *testing.T) {
	cfg := DefaultConfig(ModeTeam)
	cfg.VolleyInterval = time.Hour
	cfg.BossHalf.Z = 0.2
	w := playing(t, cfg)
	w.Step(press(ActionFire), 0)
	for i := 0; i < 10; i++ {
		w.Step(Input{}, cfg.MaxStep)
	}
	if w.State.Boss.Health.Current != cfg.BossHealth-cfg.BossDamage {
		t.Fatalf("boss health = %d, shot missed", w.State.Boss.Health.Current)
	}
}

func TestMissedShotsAreCulled(t *testing.T) {
	cfg := DefaultConfig(ModeTeam)
	cfg.VolleyInterval = time.Hour
	cfg.ShotOffsetY = 5 // over the boss
	w := playing(t, cfg)
	w.Step(press(ActionFire), frame)
	if len(w.State.Projectiles) != 1 {
		t.Fatalf("projectiles = %d, want 1", len(w.State.Projectiles))
	}
	for i := 0; i < 100; i++ {
		w.Step(Input{}, frame)
	}
	if len(w.State.Projectiles) != 0 {
		t.Fatalf("shot survived past its range")
	}
}

func TestFireballsDrainPlayerHealth(t *testing.T) {
	cfg := DefaultConfig(ModeTeam)
	cfg.VolleyInterval = time.Hour
	w := playing(t, cfg)
	hits := countEvents(w, EventHit)

	for i := 0; i < cfg.PlayerHealth; i++ {
		if w.State.Phase != PhasePlaying {
			t.Fatalf("round ended after %d hits", i)
		}
		w.State.Projectiles = append(w.State.Projectiles, Projectile{
			ID:  uint64(100 + i),
			Pos: Vec3{X: w.State.Player.Pos.X, Y: cfg.FireballY, Z: w.State.Player.Pos.Z},
		})
		w.Step(Input{}, frame)
		if got := w.State.Player.Health.Current; got != cfg.PlayerHealth-i-1 {
			t.Fatalf("health = %d, want %d", got, cfg.PlayerHealth-i-1)
		}
		if len(w.State.Projectiles) != 0 {
			t.Fatalf("fireball was not consumed")
		}
	}
	if w.State.Phase != PhaseGameOver {
		t.Fatalf("phase = %v, want gameOver", w.State.Phase)
	}
	if *hits != cfg.PlayerHealth {
		t.Fatalf("hit events = %d, want %d", *hits, cfg.PlayerHealth)
	}
}

func TestDuckingDodgesFireball(t *testing.T) {
	cfg := DefaultConfig(ModeTeam)
	cfg.VolleyInterval = time.Hour
	w := playing(t, cfg)
	w.State.Projectiles = []Projectile{{
		ID:  1,
		Pos: Vec3{X: w.State.Player.Pos.X, Y: cfg.FireballY, Z: w.State.Player.Pos.Z},
	}}
	w.Step(hold(ActionDuck), frame)
	if w.State.Player.Health.Current != cfg.PlayerHealth {
		t.Fatalf("ducking player took damage")
	}
}

func TestFireballStunsTeammate(t *testing.T) {
	cfg := DefaultConfig(ModeTeam)
	cfg.VolleyInterval = time.Hour
	w := playing(t, cfg)
	mate := w.State.Teammates[0]
	w.State.Projectiles = []Projectile{{
		ID:  1,
		Pos: Vec3{X: mate.Pos.X, Y: cfg.FireballY, Z: mate.Pos.Z},
	}}

	w.Step(Input{}, frame)
	if len(w.State.Projectiles) != 0 {
		t.Fatalf("fireball passed through teammate")
	}
	stun := w.State.Teammates[0].Stun
	if stun <= 0 || stun > cfg.TeammateStunTime {
		t.Fatalf("stun = %v", stun)
	}
	for i := 0; i < 100; i++ {
		w.Step(Input{}, frame)
	}
	if w.State.Teammates[0].Stun != 0 {
		t.Fatalf("stun did not wear off")
	}
	if w.State.Player.Health.Current != cfg.PlayerHealth {
		t.Fatalf("teammate hit hurt the player")
	}
}

func TestVolleyTargetsEveryChicken(t *testing.T) {
	cfg := DefaultConfig(ModeTeam)
	cfg.VolleyInterval = 50 * time.Millisecond
	cfg.VolleyJitter = 0
	w := playing(t, cfg)
	volleys := countEvents(w, EventVolley)

	for i := 0; i < 4; i++ {
		w.Step(Input{}, frame)
	}
	if *volleys != 1 {
		t.Fatalf("volleys = %d, want 1", *volleys)
	}
	want := 1 + len(cfg.Teammates)
	if n := len(w.State.Projectiles); n != want {
		t.Fatalf("fireballs = %d, want %d", n, want)
	}
	for _, pr := range w.State.Projectiles {
		if pr.FromPlayer || pr.Pos.Y != cfg.FireballY {
			t.Fatalf("unexpected projectile %+v", pr)
		}
	}
}

func TestRestartResetsRound(t *testing.T) {
	cfg := DefaultConfig(ModeSide)
	w := playing(t, cfg)
	fresh := w.State

	for i := 0; i < 100; i++ {
		w.Step(Input{}, frame)
	}
	w.State.Score = 7
	w.State.Obstacles = append(w.State.Obstacles, Obstacle{ID: 500, Kind: KindSmoke, Pos: w.State.Player.Pos})
	w.Step(Input{}, frame)
	if w.State.Phase != PhaseGameOver {
		t.Fatalf("phase = %v, want gameOver", w.State.Phase)
	}

	// Side mode restarts on jump as well as on restart.
	w.Step(press(ActionJump), frame)
	s := w.State
	if s.Phase != PhasePlaying {
		t.Fatalf("phase after restart = %v, want playing", s.Phase)
	}
	if s.Score != 0 || s.TimeLeft != cfg.TimeLimit || s.Elapsed != 0 {
		t.Fatalf("score=%d timeLeft=%v elapsed=%v not reset", s.Score, s.TimeLeft, s.Elapsed)
	}
	if s.Player.Pos != fresh.Player.Pos || !s.Player.Grounded {
		t.Fatalf("player not reset: %+v", s.Player)
	}
	if s.Chaser.Speed != cfg.ChaserSpeed || s.Chaser.Pos != fresh.Chaser.Pos {
		t.Fatalf("chaser not reset: %+v", s.Chaser)
	}
	if len(s.Obstacles) != cfg.HazardInitial || s.Speed != cfg.HazardSpeed {
		t.Fatalf("hazards not reset: %d at speed %f", len(s.Obstacles), s.Speed)
	}
}

func TestRestartLogsPhaseLeft(t *testing.T) {
	old := logger.Log.ReplaceHooks(make(logrus.LevelHooks))
	t.Cleanup(func() { logger.Log.ReplaceHooks(old) })
	hook := test.NewLocal(logger.Log)

	for _, end := range []Phase{PhaseGameOver, PhaseGameWon} {
		w := playing(t, DefaultConfig(ModeSolo))
		w.setPhase(end)
		hook.Reset()

		var phases []Phase
		w.Events.Subscribe(EventPhase, func(e Event) { phases = append(phases, Phase(e.Data)) })
		w.Step(press(ActionRestart), frame)

		entry := hook.LastEntry()
		if entry == nil || entry.Message != "phase changed" {
			t.Fatalf("last log entry = %+v", entry)
		}
		if from, to := entry.Data["from"], entry.Data["to"]; from != end.String() || to != "playing" {
			t.Fatalf("restart from %v logged from=%v to=%v", end, from, to)
		}
		if len(phases) != 1 || phases[0] != PhasePlaying {
			t.Fatalf("phase events = %v", phases)
		}
	}
}

func TestRestartKeyOnlyInTerminalPhase(t *testing.T) {
	cfg := DefaultConfig(ModeSolo)
	cfg.ChaserEnabled = false
	w := playing(t, cfg)
	w.Step(Input{}, time.Second)
	left := w.State.TimeLeft
	w.Step(press(ActionRestart), frame)
	if w.State.TimeLeft != left-frame {
		t.Fatalf("restart key reset a running round")
	}

	// Jump does not restart outside side mode.
	w.State.Obstacles = append(w.State.Obstacles, Obstacle{ID: 500, Kind: KindCrate, Pos: w.State.Player.Pos})
	w.Step(Input{}, frame)
	w.Step(press(ActionJump), frame)
	if w.State.Phase != PhaseGameOver {
		t.Fatalf("phase = %v, want gameOver", w.State.Phase)
	}
	w.Step(press(ActionRestart), frame)
	if w.State.Phase != PhasePlaying {
		t.Fatalf("phase = %v, want playing", w.State.Phase)
	}
}

func TestSameSeedSameRun(t *testing.T) {
	run := func() Snapshot {
		w := NewWorld(DefaultConfig(ModeSolo), 7)
		w.Start()
		for i := 0; i < 300; i++ {
			var in Input
			if i%40 == 0 {
				in = press(ActionLeft)
			}
			w.Step(in, frame)
		}
		return w.Snapshot()
	}
	a, b := run(), run()
	if a != b {
		t.Fatalf("runs diverged:\n%+v\n%+v", a, b)
	}
}

func TestSnapshotReflectsState(t *testing.T) {
	w := playing(t, DefaultConfig(ModeTeam))
	snap := w.Snapshot()
	if snap.Mode != "team" || snap.Phase != "playing" {
		t.Fatalf("snapshot = %+v", snap)
	}
	if snap.BossHealth != 5000 || snap.BossMaxHealth != 5000 || snap.PlayerHealth != 3 {
		t.Fatalf("snapshot health = %+v", snap)
	}
}
