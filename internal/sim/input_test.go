package sim

import (
	"testing"
	"time"
)

func TestPressEdgeLastsOneSnapshot(t *testing.T) {
	var s InputState
	s.Press(ActionJump)
	in := s.Snapshot()
	if !in.Pressed(ActionJump) || !in.Held(ActionJump) {
		t.Fatalf("first snapshot: pressed=%v held=%v", in.Pressed(ActionJump), in.Held(ActionJump))
	}

	// Key repeat while held is not a new press.
	s.Press(ActionJump)
	in = s.Snapshot()
	if in.Pressed(ActionJump) || !in.Held(ActionJump) {
		t.Fatalf("second snapshot: pressed=%v held=%v", in.Pressed(ActionJump), in.Held(ActionJump))
	}

	s.Release(ActionJump)
	in = s.Snapshot()
	if in.Held(ActionJump) {
		t.Fatalf("still held after release")
	}
}

func TestTapAndRelease(t *testing.T) {
	var s InputState
	s.Press(ActionFire)
	s.Release(ActionFire)
	in := s.Snapshot()
	if !in.Pressed(ActionFire) || in.Held(ActionFire) {
		t.Fatalf("quick tap lost: pressed=%v held=%v", in.Pressed(ActionFire), in.Held(ActionFire))
	}
}

func TestTapExpires(t *testing.T) {
	var s InputState
	t0 := time.Unix(100, 0)
	hold := 150 * time.Millisecond

	s.Tap(ActionDuck, t0)
	s.Expire(t0.Add(100*time.Millisecond), hold)
	if !s.Snapshot().Held(ActionDuck) {
		t.Fatalf("released before the hold window")
	}

	// Auto-repeat refreshes the tap.
	s.Tap(ActionDuck, t0.Add(120*time.Millisecond))
	s.Expire(t0.Add(200*time.Millisecond), hold)
	if !s.Snapshot().Held(ActionDuck) {
		t.Fatalf("refreshed tap released early")
	}

	s.Expire(t0.Add(time.Second), hold)
	if s.Snapshot().Held(ActionDuck) {
		t.Fatalf("tap never expired")
	}
}

func TestRepeatedTapsEachPress(t *testing.T) {
	var s InputState
	t0 := time.Unix(100, 0)
	hold := 400 * time.Millisecond

	s.Tap(ActionLeft, t0)
	if !s.Snapshot().Pressed(ActionLeft) {
		t.Fatal("first tap not pressed")
	}
	s.Expire(t0.Add(200*time.Millisecond), hold)
	s.Tap(ActionLeft, t0.Add(200*time.Millisecond))
	if in := s.Snapshot(); !in.Pressed(ActionLeft) || !in.Held(ActionLeft) {
		t.Fatalf("second tap inside the hold window: pressed=%v held=%v", in.Pressed(ActionLeft), in.Held(ActionLeft))
	}

	edges := 0
	for i := 0; i < 10; i++ {
		now := t0.Add(time.Duration(i) * 250 * time.Millisecond)
		s.Expire(now, hold)
		s.Tap(ActionFire, now)
		if s.Snapshot().Pressed(ActionFire) {
			edges++
		}
	}
	if edges != 10 {
		t.Fatalf("fire edges = %d, want 10", edges)
	}

	// Press keeps key-down semantics: a held key gives no second edge.
	s.Clear()
	s.Press(ActionRight)
	s.Snapshot()
	s.Press(ActionRight)
	if s.Snapshot().Pressed(ActionRight) {
		t.Fatal("held Press produced a second edge")
	}
}

func TestUnknownActionIgnored(t *testing.T) {
	var s InputState
	s.Press(Action(-1))
	s.Press(actionCount)
	in := s.Snapshot()
	if in.Held(actionCount) || in.Pressed(Action(-1)) {
		t.Fatalf("out of range action registered")
	}
}

func TestKeymapApply(t *testing.T) {
	km := Keymap[string]{
		"a":     ActionLeft,
		"space": ActionJump,
	}
	var s InputState
	if !km.Apply(&s, "space", true) {
		t.Fatalf("bound key not applied")
	}
	if km.Apply(&s, "q", true) {
		t.Fatalf("unbound key applied")
	}
	in := s.Snapshot()
	if !in.Pressed(ActionJump) {
		t.Fatalf("jump not pressed")
	}
	for a := Action(0); a < actionCount; a++ {
		if a != ActionJump && in.Held(a) {
			t.Fatalf("%v held by unbound key", a)
		}
	}

	km.Apply(&s, "space", false)
	if s.Snapshot().Held(ActionJump) {
		t.Fatalf("jump held after key up")
	}
}

func TestClearDropsEverything(t *testing.T) {
	var s InputState
	s.Press(ActionLeft)
	s.Tap(ActionRight, time.Now())
	s.Clear()
	in := s.Snapshot()
	if in.Held(ActionLeft) || in.Held(ActionRight) || in.Pressed(ActionLeft) {
		t.Fatalf("state survived Clear")
	}
}
