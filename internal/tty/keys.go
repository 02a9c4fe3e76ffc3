package tty

import (
	"time"
	"unicode"

	"chickenescape/internal/sim"

	"github.com/gdamore/tcell/v2"
)

// Terminals report key presses and auto-repeats but never releases, so a
// tapped action stays held until no repeat arrives within holdWindow. The
// window has to outlast the typical initial auto-repeat delay.
const holdWindow = 400 * time.Millisecond

// DefaultKeymap binds key names, as produced by keyName, to actions.
var DefaultKeymap = sim.Keymap[string]{
	"left":  sim.ActionLeft,
	"a":     sim.ActionLeft,
	"right": sim.ActionRight,
	"d":     sim.ActionRight,
	" ":     sim.ActionJump,
	"up":    sim.ActionJump,
	"w":     sim.ActionJump,
	"down":  sim.ActionDuck,
	"s":     sim.ActionDuck,
	"f":     sim.ActionFire,
	"q":     sim.ActionRestart,
	"enter": sim.ActionRestart,
}

// keyName returns a stable lower-case name for a key event, or "" for keys
// the game ignores.
func keyName(ev *tcell.EventKey) string {
	switch ev.Key() {
	case tcell.KeyLeft:
		return "left"
	case tcell.KeyRight:
		return "right"
	case tcell.KeyUp:
		return "up"
	case tcell.KeyDown:
		return "down"
	case tcell.KeyEnter:
		return "enter"
	case tcell.KeyEscape:
		return "esc"
	case tcell.KeyCtrlC:
		return "ctrl-c"
	case tcell.KeyRune:
		return string(unicode.ToLower(ev.Rune()))
	}
	return ""
}

// tap forwards a key press through km. Terminal keys are always taps.
func tap(km sim.Keymap[string], in *sim.InputState, name string, now time.Time) bool {
	a, ok := km[name]
	if !ok {
		return false
	}
	in.Tap(a, now)
	return true
}
