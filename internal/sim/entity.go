package sim

import "time"

// Axis selects one component of a Vec3.
type Axis int

const (
	AxisX Axis = iota
	AxisY
	AxisZ
)

// Vec3 is a position in world units. Y is height above the ground.
type Vec3 struct {
	X, Y, Z float64
}

func (v Vec3) Along(a Axis) float64 {
	switch a {
	case AxisX:
		return v.X
	case AxisY:
		return v.Y
	default:
		return v.Z
	}
}

func (v *Vec3) SetAlong(a Axis, f float64) {
	switch a {
	case AxisX:
		v.X = f
	case AxisY:
		v.Y = f
	default:
		v.Z = f
	}
}

// Player is the chicken. Pos is the centre of its feet.
type Player struct {
	Pos      Vec3
	VelY     float64
	Grounded bool
	Ducking  bool
	Lane     int
	Health   Health
}

// Chaser is the fryer running at the player along the track axis.
type Chaser struct {
	Pos   Vec3
	Speed float64
	Laps  int
}

type ObstacleKind int

const (
	KindCrate ObstacleKind = iota
	KindFire
	KindOil
	KindSmoke
)

func (k ObstacleKind) String() string {
	switch k {
	case KindCrate:
		return "crate"
	case KindFire:
		return "fire"
	case KindOil:
		return "oil"
	case KindSmoke:
		return "smoke"
	}
	return "unknown"
}

// Obstacle is a static hazard. Pos is the centre of its base.
type Obstacle struct {
	ID   uint64
	Kind ObstacleKind
	Pos  Vec3
}

// Projectile is a player shot or a boss fireball. Pos is its centre.
type Projectile struct {
	ID         uint64
	FromPlayer bool
	Pos        Vec3

	travel float64 // Z covered by the latest move, for swept hit tests
}

// Teammate is an AI chicken in team mode. Stun is purely cosmetic.
type Teammate struct {
	Pos  Vec3
	Stun time.Duration
}

// Boss is the giant fryer in team mode. Pos is its centre.
type Boss struct {
	Pos    Vec3
	Health Health
}
