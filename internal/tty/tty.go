// Package tty runs the game in a terminal: tcell for the screen and keys,
// beep for sound.
package tty

import (
	"context"
	"fmt"
	"time"

	"chickenescape/internal/config"
	"chickenescape/internal/session"
	"chickenescape/internal/sim"
	"chickenescape/pkg/logger"

	"github.com/gdamore/tcell/v2"
	"github.com/sirupsen/logrus"
)

const frameInterval = 16 * time.Millisecond

// Game drives a session from terminal events.
type Game struct {
	screen tcell.Screen
	sess   *session.Session
	keys   sim.Keymap[string]
	sound  *beeper
	now    func() time.Time
	log    *logrus.Entry
}

// Run takes over the terminal until ctx is done or the player quits.
func Run(ctx context.Context, cfg config.Config, pub sim.Publisher) error {
	screen, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("terminal: %w", err)
	}
	if err := screen.Init(); err != nil {
		return fmt.Errorf("terminal init: %w", err)
	}
	defer screen.Fini()
	screen.HideCursor()

	g := newGame(screen, session.New(cfg, pub), newBeeper(cfg.Mute))
	defer g.sound.close()
	return g.run(ctx)
}

func newGame(screen tcell.Screen, sess *session.Session, sound *beeper) *Game {
	g := &Game{
		screen: screen,
		sess:   sess,
		keys:   DefaultKeymap,
		sound:  sound,
		now:    time.Now,
		log:    logger.Component("tty"),
	}
	sess.Subscribe(sim.EventJump, func(sim.Event) { g.sound.play(toneJump) })
	sess.Subscribe(sim.EventHit, func(sim.Event) { g.sound.play(toneHit) })
	sess.Subscribe(sim.EventFire, func(sim.Event) { g.sound.play(toneFire) })
	sess.Subscribe(sim.EventPhase, func(e sim.Event) {
		if sim.Phase(e.Data) == sim.PhaseGameWon {
			g.sound.play(toneWin)
		}
	})
	return g
}

// handleEvent applies one terminal event and reports whether to keep running.
func (g *Game) handleEvent(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		name := keyName(ev)
		switch name {
		case "esc", "ctrl-c":
			return false
		case "":
			return true
		}
		if m, ok := session.ModeForKey(ev.Rune()); ok && ev.Key() == tcell.KeyRune {
			g.sess.SwitchMode(m)
			return true
		}
		tap(g.keys, &g.sess.Input, name, g.now())
	case *tcell.EventResize:
		g.screen.Sync()
	}
	return true
}

func (g *Game) frame() {
	g.sess.Input.Expire(g.now(), holdWindow)
	g.sess.Frame()
	draw(g.screen, g.sess.World)
	g.screen.Show()
}

func (g *Game) run(ctx context.Context) error {
	done := make(chan struct{})
	defer close(done)

	events := make(chan tcell.Event, 100)
	go func() {
		for {
			ev := g.screen.PollEvent()
			if ev == nil {
				return
			}
			select {
			case events <- ev:
			case <-done:
				return
			}
		}
	}()

	ticker := time.NewTicker(frameInterval)
	defer ticker.Stop()

	g.log.WithField("mode", g.sess.Mode().String()).Info("terminal front end started")
	for {
		select {
		case <-ctx.Done():
			return nil
		case ev := <-events:
			if !g.handleEvent(ev) {
				g.log.Info("quit requested")
				return nil
			}
		case <-ticker.C:
			g.frame()
		}
	}
}
