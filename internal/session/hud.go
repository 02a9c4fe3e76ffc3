package session

import (
	"fmt"
	"math"
	"time"

	"chickenescape/internal/sim"
)

// Readout is one labelled HUD value.
type Readout struct {
	Label string
	Value string
}

func (r Readout) String() string { return r.Label + ": " + r.Value }

// Readouts lists the HUD values of the running round in display order.
func Readouts(w *sim.World) []Readout {
	c := &w.Cfg
	s := &w.State
	out := []Readout{{"Score", fmt.Sprint(s.Score)}}
	if c.TimeLimit > 0 {
		out = append(out, Readout{"Time", fmt.Sprintf("%ds", secondsLeft(s.TimeLeft))})
	}
	if len(c.HazardKinds) > 0 && c.Lanes > 0 {
		out = append(out, Readout{"Speed", fmt.Sprintf("%.1f", s.Speed)})
	}
	if c.BossEnabled {
		out = append(out, Readout{"Boss Health", fmt.Sprintf("%d/%d", s.Boss.Health.Current, s.Boss.Health.Max)})
	}
	if s.Player.Health.Max > 1 {
		out = append(out, Readout{"HP", fmt.Sprintf("%d/%d", s.Player.Health.Current, s.Player.Health.Max)})
	}
	return out
}

// secondsLeft rounds up so the display reaches 0 only when time is out.
func secondsLeft(d time.Duration) int {
	if d <= 0 {
		return 0
	}
	return int(math.Ceil(d.Seconds()))
}

// Banner returns the title and message lines shown outside the playing
// phase. Both are empty while playing.
func Banner(w *sim.World) (string, []string) {
	s := &w.State
	switch s.Phase {
	case sim.PhaseReady:
		return "CHICKEN ESCAPE", []string{"Press SPACE to start", controlsHint(w.Cfg.Mode)}
	case sim.PhaseGameOver:
		return "GAME OVER", []string{fmt.Sprintf("Final Score: %d", s.Score), restartHint(&w.Cfg)}
	case sim.PhaseGameWon:
		return "YOU WIN!", []string{fmt.Sprintf("Final Score: %d", s.Score), restartHint(&w.Cfg)}
	}
	return "", nil
}

func restartHint(c *sim.Config) string {
	if c.JumpRestarts {
		return "Press SPACE to restart"
	}
	return "Press Q or ENTER to restart"
}

func controlsHint(m sim.Mode) string {
	switch m {
	case sim.ModeSide:
		return "A/D move  SPACE jump  DOWN duck"
	case sim.ModeTeam:
		return "LEFT/RIGHT move  F fire  SPACE jump"
	}
	return "LEFT/RIGHT change lane  SPACE jump  DOWN duck"
}

// ModeHint names the mode hot-keys.
const ModeHint = "1 side  2 solo  3 team"

// ModeForKey maps the digit hot-keys to modes.
func ModeForKey(r rune) (sim.Mode, bool) {
	switch r {
	case '1':
		return sim.ModeSide, true
	case '2':
		return sim.ModeSolo, true
	case '3':
		return sim.ModeTeam, true
	}
	return 0, false
}
