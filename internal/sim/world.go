package sim

import (
	"time"

	"chickenescape/pkg/logger"

	"github.com/sirupsen/logrus"
)

// State is everything that changes from tick to tick.
type State struct {
	Phase    Phase
	Score    int
	TimeLeft time.Duration
	Elapsed  time.Duration
	Speed    float64 // hazard game speed

	Player      Player
	Chaser      Chaser
	Obstacles   []Obstacle
	Projectiles []Projectile
	Teammates   []Teammate
	Boss        Boss
	VolleyTimer time.Duration

	nextID uint64
}

// World owns one simulation: its constants, its state and its event bus.
// It is not safe for concurrent use; the host calls Step once per frame.
type World struct {
	Cfg    Config
	State  State
	Events *EventBus

	rng *Rand
	log *logrus.Entry
}

func NewWorld(cfg Config, seed uint64) *World {
	w := &World{
		Cfg:    cfg,
		Events: NewEventBus(),
		rng:    NewRand(seed),
		log: logger.Component("sim").WithFields(logrus.Fields{
			"mode": cfg.Mode.String(),
			"seed": seed,
		}),
	}
	w.State = w.initialState()
	w.log.Debug("world created")
	return w
}

func (w *World) initialState() State {
	c := &w.Cfg
	s := State{
		Phase:    PhaseReady,
		TimeLeft: c.TimeLimit,
		Speed:    c.HazardSpeed,
	}

	hp := c.PlayerHealth
	if hp < 1 {
		hp = 1
	}
	s.Player = Player{Pos: c.PlayerStart, Grounded: true, Health: NewHealth(hp)}
	if c.Lanes > 0 {
		s.Player.Lane = c.Lanes / 2
		s.Player.Pos.X = c.LaneX(s.Player.Lane)
	}

	if c.ChaserEnabled {
		s.Chaser = Chaser{Speed: c.ChaserSpeed}
		s.Chaser.Pos.SetAlong(c.Track, c.trackPos(c.ChaserStart))
		if c.ChaserTracksLane {
			s.Chaser.Pos.X = s.Player.Pos.X
		}
	}

	if c.BossEnabled {
		s.Boss = Boss{Pos: c.BossPos, Health: NewHealth(c.BossHealth)}
		s.VolleyTimer = w.nextVolleyDelay()
	}
	for _, pos := range c.Teammates {
		s.Teammates = append(s.Teammates, Teammate{Pos: pos})
	}

	w.State = s
	for i := 0; i < c.HazardInitial; i++ {
		w.spawnHazard(c.HazardFirst + float64(i)*c.HazardSpacing)
	}
	return w.State
}

// Start leaves the ready screen.
func (w *World) Start() {
	if w.State.Phase != PhaseReady {
		return
	}
	w.setPhase(PhasePlaying)
}

// Restart resets every entity, the score and the timer, then plays.
func (w *World) Restart() {
	prev := w.State.Phase
	w.State = w.initialState()
	w.changePhase(prev, PhasePlaying)
}

func (w *World) setPhase(p Phase) {
	if w.State.Phase == p {
		return
	}
	w.changePhase(w.State.Phase, p)
}

// changePhase enters p. prev is only reported; Restart has already reset
// the state by the time it gets here.
func (w *World) changePhase(prev, p Phase) {
	w.State.Phase = p
	w.log.WithFields(logrus.Fields{
		"from":  prev.String(),
		"to":    p.String(),
		"score": w.State.Score,
	}).Info("phase changed")
	w.Events.Emit(Event{Type: EventPhase, Data: int(p)})
}

func (w *World) newID() uint64 {
	w.State.nextID++
	return w.State.nextID
}

// Snapshot is the read-only view handed to HUDs and overlays.
type Snapshot struct {
	Mode          string  `json:"mode" msgpack:"mode"`
	Phase         string  `json:"phase" msgpack:"phase"`
	Score         int     `json:"score" msgpack:"score"`
	TimeLeftMs    int64   `json:"timeLeftMs" msgpack:"timeLeftMs"`
	Speed         float64 `json:"speed" msgpack:"speed"`
	ChaserSpeed   float64 `json:"chaserSpeed" msgpack:"chaserSpeed"`
	PlayerHealth  int     `json:"playerHealth" msgpack:"playerHealth"`
	BossHealth    int     `json:"bossHealth,omitempty" msgpack:"bossHealth,omitempty"`
	BossMaxHealth int     `json:"bossMaxHealth,omitempty" msgpack:"bossMaxHealth,omitempty"`
	Obstacles     int     `json:"obstacles" msgpack:"obstacles"`
	Projectiles   int     `json:"projectiles" msgpack:"projectiles"`
}

func (w *World) Snapshot() Snapshot {
	s := &w.State
	snap := Snapshot{
		Mode:         w.Cfg.Mode.String(),
		Phase:        s.Phase.String(),
		Score:        s.Score,
		TimeLeftMs:   s.TimeLeft.Milliseconds(),
		Speed:        s.Speed,
		ChaserSpeed:  s.Chaser.Speed,
		PlayerHealth: s.Player.Health.Current,
		Obstacles:    len(s.Obstacles),
		Projectiles:  len(s.Projectiles),
	}
	if w.Cfg.BossEnabled {
		snap.BossHealth = s.Boss.Health.Current
		snap.BossMaxHealth = s.Boss.Health.Max
	}
	return snap
}

// Publisher receives a snapshot after every frame.
type Publisher interface {
	Publish(Snapshot)
}
