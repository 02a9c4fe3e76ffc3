// Package session owns the running world on behalf of a front end: it keeps
// the input state and frame clock, rebuilds the world on a mode switch and
// publishes a snapshot after every frame.
package session

import (
	"time"

	"chickenescape/internal/config"
	"chickenescape/internal/sim"
	"chickenescape/pkg/logger"

	"github.com/sirupsen/logrus"
)

type subscription struct {
	typ sim.EventType
	fn  sim.EventHandler
}

// Session is driven from a single goroutine, the host's frame loop.
type Session struct {
	World *sim.World
	Input sim.InputState

	cfg   config.Config
	clock *sim.Clock
	pub   sim.Publisher
	subs  []subscription
	log   *logrus.Entry
}

// New builds a session for the configured mode. pub may be nil.
func New(cfg config.Config, pub sim.Publisher) *Session {
	return NewWithClock(cfg, pub, time.Now)
}

// NewWithClock is New with an explicit wall-clock source.
func NewWithClock(cfg config.Config, pub sim.Publisher, now func() time.Time) *Session {
	s := &Session{
		cfg: cfg,
		pub: pub,
		log: logger.Component("session"),
	}
	s.clock = sim.NewClockFunc(now, cfg.Sim().MaxStep)
	s.build()
	return s
}

func (s *Session) build() {
	s.World = sim.NewWorld(s.cfg.Sim(), s.cfg.WorldSeed())
	for _, sub := range s.subs {
		s.World.Events.Subscribe(sub.typ, sub.fn)
	}
	s.Input.Clear()
	s.clock.MaxStep = s.World.Cfg.MaxStep
	s.clock.Reset()
	s.publish()
}

func (s *Session) Mode() sim.Mode { return s.cfg.Mode }

// Subscribe registers an event handler that survives mode switches.
func (s *Session) Subscribe(t sim.EventType, fn sim.EventHandler) {
	s.subs = append(s.subs, subscription{typ: t, fn: fn})
	s.World.Events.Subscribe(t, fn)
}

// SwitchMode replaces the world with a fresh one of the given mode. It
// returns false when m is already running or a round is in progress.
func (s *Session) SwitchMode(m sim.Mode) bool {
	if m == s.cfg.Mode || s.World.State.Phase == sim.PhasePlaying {
		return false
	}
	s.log.WithFields(logrus.Fields{
		"from": s.cfg.Mode.String(),
		"to":   m.String(),
	}).Info("mode switched")
	s.cfg.Mode = m
	s.build()
	return true
}

// Frame advances the world by the time since the previous frame and
// returns the delta it used.
func (s *Session) Frame() time.Duration {
	dt := s.clock.Tick()
	s.World.Step(s.Input.Snapshot(), dt)
	s.publish()
	return dt
}

func (s *Session) publish() {
	if s.pub != nil {
		s.pub.Publish(s.World.Snapshot())
	}
}
