package game

import (
	"chickenescape/internal/session"
	"chickenescape/internal/sim"

	"github.com/go-gl/glfw/v3.3/glfw"
)

// DesktopKeymap binds keyboard keys to actions.
var DesktopKeymap = sim.Keymap[glfw.Key]{
	glfw.KeyA:     sim.ActionLeft,
	glfw.KeyLeft:  sim.ActionLeft,
	glfw.KeyD:     sim.ActionRight,
	glfw.KeyRight: sim.ActionRight,
	glfw.KeySpace: sim.ActionJump,
	glfw.KeyUp:    sim.ActionJump,
	glfw.KeyW:     sim.ActionJump,
	glfw.KeyDown:  sim.ActionDuck,
	glfw.KeyS:     sim.ActionDuck,
	glfw.KeyF:     sim.ActionFire,
	glfw.KeyQ:     sim.ActionRestart,
	glfw.KeyEnter: sim.ActionRestart,
}

var modeKeys = map[glfw.Key]rune{
	glfw.Key1: '1',
	glfw.Key2: '2',
	glfw.Key3: '3',
}

// Input routes GLFW key callbacks into a session.
type Input struct {
	km       sim.Keymap[glfw.Key]
	sess     *session.Session
	switched bool
}

func NewInput(sess *session.Session) *Input {
	return &Input{km: DesktopKeymap, sess: sess}
}

// Key handles one key transition. Repeats carry no new edge and are ignored.
func (in *Input) Key(window *glfw.Window, key glfw.Key, action glfw.Action) {
	switch action {
	case glfw.Press:
		if key == glfw.KeyEscape {
			window.SetShouldClose(true)
			return
		}
		if r, ok := modeKeys[key]; ok {
			if m, ok := session.ModeForKey(r); ok && in.sess.SwitchMode(m) {
				in.switched = true
			}
			return
		}
		in.km.Apply(&in.sess.Input, key, true)
	case glfw.Release:
		in.km.Apply(&in.sess.Input, key, false)
	}
}

// TakeSwitched reports whether the mode changed since the last call.
func (in *Input) TakeSwitched() bool {
	s := in.switched
	in.switched = false
	return s
}

// Attach installs the key and focus callbacks on window.
func (in *Input) Attach(window *glfw.Window) {
	window.SetKeyCallback(func(w *glfw.Window, key glfw.Key, _ int, action glfw.Action, _ glfw.ModifierKey) {
		in.Key(w, key, action)
	})
	// Keys released while unfocused never report; drop them all.
	window.SetFocusCallback(func(_ *glfw.Window, focused bool) {
		if !focused {
			in.sess.Input.Clear()
		}
	})
}
