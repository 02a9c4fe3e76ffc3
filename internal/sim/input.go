package sim

import "time"

// Action is a logical control, independent of the host's key codes.
type Action int

const (
	ActionLeft Action = iota
	ActionRight
	ActionJump
	ActionDuck
	ActionFire
	ActionRestart
	actionCount
)

func (a Action) String() string {
	switch a {
	case ActionLeft:
		return "left"
	case ActionRight:
		return "right"
	case ActionJump:
		return "jump"
	case ActionDuck:
		return "duck"
	case ActionFire:
		return "fire"
	case ActionRestart:
		return "restart"
	}
	return "unknown"
}

// Input is the immutable per-tick view of the controls.
type Input struct {
	held    [actionCount]bool
	pressed [actionCount]bool
}

// Held reports whether the action's key is down at tick time.
func (in Input) Held(a Action) bool {
	return a >= 0 && a < actionCount && in.held[a]
}

// Pressed reports whether the action went down since the previous snapshot.
func (in Input) Pressed(a Action) bool {
	return a >= 0 && a < actionCount && in.pressed[a]
}

// InputState accumulates key events between ticks.
type InputState struct {
	held    [actionCount]bool
	pressed [actionCount]bool
	tapped  [actionCount]time.Time
}

func (s *InputState) Press(a Action) {
	if a < 0 || a >= actionCount {
		return
	}
	if !s.held[a] {
		s.pressed[a] = true
	}
	s.held[a] = true
}

func (s *InputState) Release(a Action) {
	if a < 0 || a >= actionCount {
		return
	}
	s.held[a] = false
	s.tapped[a] = time.Time{}
}

// Tap presses an action for hosts that never deliver key-up events. Every
// tap is a new press edge, auto-repeats included. The action stays held
// until Expire sees no tap within the hold window.
func (s *InputState) Tap(a Action, now time.Time) {
	if a < 0 || a >= actionCount {
		return
	}
	s.held[a] = true
	s.pressed[a] = true
	s.tapped[a] = now
}

// Expire releases tapped actions older than hold.
func (s *InputState) Expire(now time.Time, hold time.Duration) {
	for a := Action(0); a < actionCount; a++ {
		t := s.tapped[a]
		if !t.IsZero() && now.Sub(t) > hold {
			s.Release(a)
		}
	}
}

// Clear drops all held keys, e.g. when the window loses focus.
func (s *InputState) Clear() {
	*s = InputState{}
}

// Snapshot returns the controls for this tick and resets press edges.
func (s *InputState) Snapshot() Input {
	in := Input{held: s.held, pressed: s.pressed}
	s.pressed = [actionCount]bool{}
	return in
}

// Keymap binds host key codes to actions.
type Keymap[K comparable] map[K]Action

// Apply forwards a key event; unrecognised keys are ignored and return false.
func (km Keymap[K]) Apply(s *InputState, key K, down bool) bool {
	a, ok := km[key]
	if !ok {
		return false
	}
	if down {
		s.Press(a)
	} else {
		s.Release(a)
	}
	return true
}
