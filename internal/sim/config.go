package sim

import (
	"fmt"
	"strings"
	"time"
)

// Mode selects one of the game variants.
type Mode int

const (
	ModeSide Mode = iota // 2D side-scroller
	ModeSolo             // lane runner chased by the fryer
	ModeTeam             // boss battle with teammates
)

func (m Mode) String() string {
	switch m {
	case ModeSide:
		return "side"
	case ModeSolo:
		return "solo"
	case ModeTeam:
		return "team"
	}
	return fmt.Sprintf("mode(%d)", int(m))
}

func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "side", "2d":
		return ModeSide, nil
	case "solo", "runner", "3d":
		return ModeSolo, nil
	case "team", "boss":
		return ModeTeam, nil
	}
	return 0, fmt.Errorf("unknown mode %q", s)
}

// Shape is the collision extent of an obstacle kind. Lift raises the
// base above the ground (smoke hangs in the air).
type Shape struct {
	Size Vec3
	Lift float64
}

// Config holds every constant of a game variant. Distances are in world
// units: pixels for the side-scroller, metres for the 3D modes.
type Config struct {
	Mode Mode

	// TimeLimit is the survival countdown; zero disables it.
	TimeLimit time.Duration
	// MaxStep caps delta-time in Clock.
	MaxStep time.Duration

	// Play field.
	Lanes     int     // >0 selects lane snapping
	LaneWidth float64 // distance between lane centres
	MinX      float64 // player centre bounds for free movement
	MaxX      float64
	MoveSpeed float64 // held movement, units/s
	MoveStep  float64 // per-press movement; used when MoveSpeed is zero

	// Player.
	PlayerStart  Vec3
	PlayerSize   Vec3
	DuckScale    float64
	Gravity      float64 // units/s^2, negative pulls down
	JumpVelocity float64 // units/s
	PlayerHealth int
	JumpRestarts bool // Space restarts after a round ends

	// Track axis along which hazards and the chaser approach.
	Track Axis
	// Approach is the sign of hazard motion along Track (+1 or -1).
	Approach float64

	// Chaser.
	ChaserEnabled    bool
	ChaserSize       Vec3
	ChaserStart      float64 // distance ahead of the origin at (re)spawn
	ChaserWrap       float64 // distance behind the origin that ends a lap
	ChaserSpeed      float64
	ChaserSpeedStep  float64
	ChaserTracksLane bool

	// Hazards.
	HazardKinds     []ObstacleKind
	HazardShapes    map[ObstacleKind]Shape
	HazardSpeed     float64 // initial game speed, units/s
	HazardAccel     float64 // game speed growth, units/s^2
	HazardFirst     float64 // distance of the first hazard
	HazardSpacing   float64
	HazardInitial   int
	HazardCutoff    float64 // distance behind the origin that culls a hazard
	HazardThreshold int
	HazardBatch     int

	// Team mode.
	BossEnabled      bool
	BossPos          Vec3
	BossHalf         Vec3
	BossHealth       int
	BossDamage       int
	ShotSpeed        float64
	ShotHalf         Vec3
	ShotOffsetY      float64
	ShotRange        float64 // player shots culled beyond this depth
	FireballSpeed    float64
	FireballHalf     Vec3
	FireballSpawnZ   float64
	FireballY        float64
	FireballRange    float64 // fireballs culled beyond this depth
	FireballDamage   int
	VolleyInterval   time.Duration
	VolleyJitter     time.Duration
	Teammates        []Vec3
	TeammateSize     Vec3
	TeammateStunTime time.Duration
}

// DefaultConfig returns the tuned constants of a variant.
func DefaultConfig(mode Mode) Config {
	switch mode {
	case ModeSide:
		return sideConfig()
	case ModeTeam:
		return teamConfig()
	default:
		return soloConfig()
	}
}

// Side-scroller constants are the canvas values converted from per-frame
// (60 Hz) to per-second units.
func sideConfig() Config {
	return Config{
		Mode:      ModeSide,
		TimeLimit: 120 * time.Second,
		MaxStep:   100 * time.Millisecond,

		MinX:      20,
		MaxX:      780,
		MoveSpeed: 300,

		PlayerStart:  Vec3{X: 70},
		PlayerSize:   Vec3{X: 40, Y: 40, Z: 1},
		DuckScale:    0.5,
		Gravity:      -2160,
		JumpVelocity: 720,
		PlayerHealth: 1,
		JumpRestarts: true,

		Track:    AxisX,
		Approach: -1,

		ChaserEnabled:   true,
		ChaserSize:      Vec3{X: 40, Y: 40, Z: 1},
		ChaserStart:     820,
		ChaserWrap:      20,
		ChaserSpeed:     360,
		ChaserSpeedStep: 12,

		HazardKinds: []ObstacleKind{KindSmoke},
		HazardShapes: map[ObstacleKind]Shape{
			KindSmoke: {Size: Vec3{X: 60, Y: 40, Z: 1}, Lift: 25},
		},
		HazardSpeed:     120,
		HazardAccel:     4,
		HazardFirst:     530,
		HazardSpacing:   450,
		HazardInitial:   2,
		HazardCutoff:    60,
		HazardThreshold: 2,
		HazardBatch:     2,
	}
}

func soloConfig() Config {
	return Config{
		Mode:      ModeSolo,
		TimeLimit: 120 * time.Second,
		MaxStep:   100 * time.Millisecond,

		Lanes:     3,
		LaneWidth: 1,

		PlayerStart:  Vec3{},
		PlayerSize:   Vec3{X: 0.8, Y: 1.2, Z: 1.2},
		DuckScale:    0.5,
		Gravity:      -25,
		JumpVelocity: 12,
		PlayerHealth: 1,

		Track:    AxisZ,
		Approach: 1,

		ChaserEnabled:    true,
		ChaserSize:       Vec3{X: 2, Y: 2, Z: 2},
		ChaserStart:      40,
		ChaserWrap:       6,
		ChaserSpeed:      9,
		ChaserSpeedStep:  0.5,
		ChaserTracksLane: true,

		HazardKinds: []ObstacleKind{KindCrate, KindCrate, KindFire, KindOil, KindSmoke},
		HazardShapes: map[ObstacleKind]Shape{
			KindCrate: {Size: Vec3{X: 0.8, Y: 1.5, Z: 0.8}},
			KindFire:  {Size: Vec3{X: 0.8, Y: 0.6, Z: 0.8}},
			KindOil:   {Size: Vec3{X: 0.9, Y: 0.1, Z: 1.2}},
			KindSmoke: {Size: Vec3{X: 0.8, Y: 0.8, Z: 0.8}, Lift: 0.9},
		},
		HazardSpeed:     5,
		HazardAccel:     0.2,
		HazardFirst:     10,
		HazardSpacing:   8,
		HazardInitial:   24,
		HazardCutoff:    10,
		HazardThreshold: 12,
		HazardBatch:     8,
	}
}

// Team mode projectile speeds are the per-frame values of the 3D game
// converted to per-second units.
func teamConfig() Config {
	return Config{
		Mode:    ModeTeam,
		MaxStep: 100 * time.Millisecond,

		MinX:     -3,
		MaxX:     3,
		MoveStep: 1,

		PlayerStart:  Vec3{},
		PlayerSize:   Vec3{X: 0.8, Y: 1.2, Z: 1.2},
		DuckScale:    0.5,
		Gravity:      -25,
		JumpVelocity: 12,
		PlayerHealth: 3,

		Track:    AxisZ,
		Approach: 1,

		BossEnabled:      true,
		BossPos:          Vec3{Y: 1, Z: -15},
		BossHalf:         Vec3{X: 3.5, Y: 1, Z: 1.9},
		BossHealth:       5000,
		BossDamage:       100,
		ShotSpeed:        48,
		ShotHalf:         Vec3{X: 0.1, Y: 0.1, Z: 0.1},
		ShotOffsetY:      1,
		ShotRange:        20,
		FireballSpeed:    36,
		FireballHalf:     Vec3{X: 0.6, Y: 0.2, Z: 0.9},
		FireballSpawnZ:   -14,
		FireballY:        1,
		FireballRange:    8,
		FireballDamage:   1,
		VolleyInterval:   3 * time.Second,
		VolleyJitter:     500 * time.Millisecond,
		Teammates:        []Vec3{{X: -2, Z: -8}, {X: 2, Z: -8}},
		TeammateSize:     Vec3{X: 0.8, Y: 1.2, Z: 1.2},
		TeammateStunTime: 500 * time.Millisecond,
	}
}

// LaneX returns the x centre of a lane; lanes are centred on zero.
func (c *Config) LaneX(lane int) float64 {
	return (float64(lane) - float64(c.Lanes-1)/2) * c.LaneWidth
}

// trackPos converts a distance ahead of the origin into a track coordinate.
func (c *Config) trackPos(ahead float64) float64 {
	return -c.Approach * ahead
}

// behind returns how far a track coordinate lies behind the origin.
func (c *Config) behind(pos float64) float64 {
	return c.Approach * pos
}
