package game

import (
	"fmt"
	"strings"

	"chickenescape/internal/session"
	"chickenescape/internal/sim"
)

const barChars = 16

// RenderHUD draws the readouts, health bars and phase banner over the scene.
func RenderHUD(r *Renderer, w *sim.World, fbW, fbH int) {
	white := RGB{R: 255, G: 255, B: 255}
	yellow := RGB{R: 255, G: 255, B: 100}
	red := RGB{R: 255, G: 80, B: 80}
	grey := RGB{R: 200, G: 200, B: 200}
	s := float32(1.2)

	readouts := session.Readouts(w)
	parts := make([]string, 0, len(readouts))
	for _, ro := range readouts {
		parts = append(parts, ro.String())
	}
	r.DrawRect(0, 0, float32(fbW), FontCellH*s+12, RGB{}, 0.35)
	r.DrawString(strings.Join(parts, "   "), 8, 6, s, white)

	mode := w.Cfg.Mode.String()
	r.DrawString(mode, fbW-TextWidth(mode, s)-8, 6, s, grey)

	st := &w.State
	if w.Cfg.BossEnabled {
		frac := st.Boss.Health.Fraction()
		bar := fmt.Sprintf("[%-*s]", barChars, repeatChar('#', int(float64(barChars)*frac)))
		bs := float32(1.4)
		r.DrawString("BOSS", fbW/2-TextWidth("BOSS", 1)/2, 30, 1, red)
		r.DrawString(bar, fbW/2-TextWidth(bar, bs)/2, 46, bs, HealthBarColor(frac))
	}
	if st.Player.Health.Max > 1 {
		frac := st.Player.Health.Fraction()
		bar := fmt.Sprintf("[%-*s]", barChars, repeatChar('#', int(float64(barChars)*frac)))
		r.DrawString("HP", 10, fbH-58, 1, white)
		r.DrawString(bar, 10, fbH-42, s, HealthBarColor(frac))
	}

	hint := session.ModeHint + "  ESC quit"
	r.DrawString(hint, fbW-TextWidth(hint, 1)-8, fbH-FontCellH-6, 1, grey)

	title, lines := session.Banner(w)
	if title != "" {
		ts := float32(4)
		y := fbH/2 - 90
		r.DrawRect(0, float32(y-16), float32(fbW), 190, RGB{}, 0.5)
		titleCol := yellow
		if st.Phase == sim.PhaseGameOver {
			titleCol = red
		}
		r.DrawString(title, fbW/2-TextWidth(title, ts)/2, y, ts, titleCol)
		y += int(FontCellH*ts) + 16
		for _, line := range lines {
			r.DrawString(line, fbW/2-TextWidth(line, s)/2, y, s, white)
			y += int(FontCellH*s) + 8
		}
	}

	r.Flush(fbW, fbH, 0, 0)
}

// repeatChar returns a string of n copies of ch.
func repeatChar(ch byte, n int) string {
	if n <= 0 {
		return ""
	}
	b := make([]byte, n)
	for i := range b {
		b[i] = ch
	}
	return string(b)
}
