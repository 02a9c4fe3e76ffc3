package session

import (
	"testing"
	"time"

	"chickenescape/internal/config"
	"chickenescape/internal/sim"
)

type recorder struct {
	snaps []sim.Snapshot
}

func (r *recorder) Publish(s sim.Snapshot) { r.snaps = append(r.snaps, s) }

type fakeClock struct {
	t time.Time
}

func (c *fakeClock) now() time.Time { return c.t }

func (c *fakeClock) advance(d time.Duration) { c.t = c.t.Add(d) }

func newTestSession(mode sim.Mode) (*Session, *recorder, *fakeClock) {
	cfg := config.Default()
	cfg.Mode = mode
	cfg.Seed = 7
	rec := &recorder{}
	clk := &fakeClock{t: time.Unix(1000, 0)}
	return NewWithClock(cfg, rec, clk.now), rec, clk
}

func TestNewPublishesInitialSnapshot(t *testing.T) {
	s, rec, _ := newTestSession(sim.ModeSolo)
	if len(rec.snaps) != 1 {
		t.Fatalf("published %d snapshots, want 1", len(rec.snaps))
	}
	if got := rec.snaps[0].Phase; got != "ready" {
		t.Fatalf("phase = %q, want ready", got)
	}
	if s.Mode() != sim.ModeSolo {
		t.Fatalf("mode = %v", s.Mode())
	}
}

func TestFrameStartsAndAdvances(t *testing.T) {
	s, rec, clk := newTestSession(sim.ModeSolo)

	s.Input.Press(sim.ActionJump)
	if dt := s.Frame(); dt != 0 {
		t.Fatalf("first frame dt = %v, want 0", dt)
	}
	if s.World.State.Phase != sim.PhasePlaying {
		t.Fatalf("phase = %v, want playing", s.World.State.Phase)
	}
	s.Input.Release(sim.ActionJump)

	clk.advance(16 * time.Millisecond)
	if dt := s.Frame(); dt != 16*time.Millisecond {
		t.Fatalf("dt = %v, want 16ms", dt)
	}
	if s.World.State.Elapsed != 16*time.Millisecond {
		t.Fatalf("elapsed = %v", s.World.State.Elapsed)
	}
	if len(rec.snaps) != 3 {
		t.Fatalf("published %d snapshots, want 3", len(rec.snaps))
	}
}

func TestFrameCapsStalls(t *testing.T) {
	s, _, clk := newTestSession(sim.ModeTeam)
	s.Input.Press(sim.ActionRestart)
	s.Frame()
	s.Input.Release(sim.ActionRestart)

	clk.advance(5 * time.Second)
	if dt := s.Frame(); dt != s.World.Cfg.MaxStep {
		t.Fatalf("dt = %v, want cap %v", dt, s.World.Cfg.MaxStep)
	}
}

func TestFrameUncappedWithZeroMaxStep(t *testing.T) {
	cfg := config.Default()
	cfg.Mode = sim.ModeSolo
	cfg.Seed = 7
	cfg.MaxStep = 0
	clk := &fakeClock{t: time.Unix(1000, 0)}
	s := NewWithClock(cfg, nil, clk.now)

	s.Frame()
	clk.advance(time.Second)
	if dt := s.Frame(); dt != time.Second {
		t.Fatalf("dt = %v, want the full second", dt)
	}
}

func TestSwitchModeKeepsSubscribers(t *testing.T) {
	s, _, _ := newTestSession(sim.ModeSolo)
	var phases []int
	s.Subscribe(sim.EventPhase, func(e sim.Event) { phases = append(phases, e.Data) })

	if s.SwitchMode(sim.ModeSolo) {
		t.Fatal("switching to the running mode reported a change")
	}
	if !s.SwitchMode(sim.ModeSide) {
		t.Fatal("switch to side reported no change")
	}
	if s.World.Cfg.Mode != sim.ModeSide {
		t.Fatalf("world mode = %v, want side", s.World.Cfg.Mode)
	}
	if s.World.State.Phase != sim.PhaseReady {
		t.Fatalf("phase after switch = %v, want ready", s.World.State.Phase)
	}

	s.Input.Press(sim.ActionJump)
	s.Frame()
	if len(phases) != 1 || phases[0] != int(sim.PhasePlaying) {
		t.Fatalf("phase events = %v, want [playing]", phases)
	}
}

func TestSwitchModeRefusedMidRound(t *testing.T) {
	s, _, clk := newTestSession(sim.ModeSolo)
	s.World.Start()
	for i := 0; i < 30; i++ {
		clk.advance(16 * time.Millisecond)
		s.Frame()
	}
	before := s.World

	if s.SwitchMode(sim.ModeTeam) {
		t.Fatal("mode switched during a round")
	}
	if s.Mode() != sim.ModeSolo || s.World != before || s.World.State.Phase != sim.PhasePlaying {
		t.Fatalf("round disturbed: mode=%v phase=%v", s.Mode(), s.World.State.Phase)
	}

	// Once the round is over the hot-keys work again.
	s.World.State.Phase = sim.PhaseGameOver
	if !s.SwitchMode(sim.ModeTeam) {
		t.Fatal("switch refused after the round ended")
	}
	if s.Mode() != sim.ModeTeam || s.World.State.Phase != sim.PhaseReady {
		t.Fatalf("after switch: mode=%v phase=%v", s.Mode(), s.World.State.Phase)
	}
}

func TestSwitchModeClearsInput(t *testing.T) {
	s, _, _ := newTestSession(sim.ModeSolo)
	s.Input.Press(sim.ActionDuck)
	s.SwitchMode(sim.ModeTeam)
	in := s.Input.Snapshot()
	if in.Held(sim.ActionDuck) {
		t.Fatal("duck still held after mode switch")
	}
}

func TestTimeLimitOverride(t *testing.T) {
	cfg := config.Default()
	cfg.Mode = sim.ModeSide
	cfg.Seed = 1
	cfg.TimeLimit = 10 * time.Second
	s := New(cfg, nil)
	if s.World.State.TimeLeft != 10*time.Second {
		t.Fatalf("time left = %v, want 10s", s.World.State.TimeLeft)
	}
}
