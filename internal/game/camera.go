package game

import (
	"math"

	"chickenescape/internal/sim"
)

// Side view canvas, in world units. The ground line sits at GroundY.
const (
	SideViewW   = 800.0
	SideViewH   = 400.0
	SideGroundY = 340.0
)

type Camera struct {
	// Ortho selects the side view; the perspective fields are ignored.
	Ortho bool

	// Perspective camera.
	Eye, Target vec3
	FovY        float64 // vertical field of view, radians
	Near        float64

	// Screen shake.
	ShakeX, ShakeY float64 // current offset in screen pixels
	ShakeTimer     float64 // remaining shake time
	ShakeIntensity float64 // max offset magnitude
}

// SideCamera frames the 800x400 side-scroller canvas.
func SideCamera() Camera {
	return Camera{Ortho: true}
}

// ChaseCamera is the fixed camera of the 3D modes, up and behind the
// player, looking at the origin.
func ChaseCamera() Camera {
	return Camera{
		Eye:  vec3{0, 8, 12},
		FovY: 60 * math.Pi / 180,
		Near: 0.1,
	}
}

func CameraFor(m sim.Mode) Camera {
	if m == sim.ModeSide {
		return SideCamera()
	}
	return ChaseCamera()
}

// Project maps a world point to framebuffer pixels. scale is the number of
// pixels per world unit at the point's depth; ok is false for points at or
// behind the near plane.
func (c *Camera) Project(p sim.Vec3, fbW, fbH int) (sx, sy, scale float64, ok bool) {
	w, h := float64(fbW), float64(fbH)
	if c.Ortho {
		k := math.Min(w/SideViewW, h/SideViewH)
		ox := (w - SideViewW*k) / 2
		oy := (h - SideViewH*k) / 2
		return ox + p.X*k, oy + (SideGroundY-p.Y)*k, k, true
	}

	fwd, right, up := c.basis()
	d := vec3{p.X, p.Y, p.Z}.sub(c.Eye)
	z := d.dot(fwd)
	if z <= c.Near {
		return 0, 0, 0, false
	}
	focal := (h / 2) / math.Tan(c.FovY/2)
	scale = focal / z
	return w/2 + d.dot(right)*scale, h/2 - d.dot(up)*scale, scale, true
}

// Depth is the distance of p along the view direction; the side view has
// no depth.
func (c *Camera) Depth(p sim.Vec3) float64 {
	if c.Ortho {
		return 0
	}
	fwd, _, _ := c.basis()
	return vec3{p.X, p.Y, p.Z}.sub(c.Eye).dot(fwd)
}

func (c *Camera) basis() (fwd, right, up vec3) {
	fwd = c.Target.sub(c.Eye).norm()
	right = fwd.cross(vec3{0, 1, 0}).norm()
	up = right.cross(fwd)
	return fwd, right, up
}

// AddShake triggers screen shake with given intensity and duration.
func (c *Camera) AddShake(intensity, duration float64) {
	if intensity > c.ShakeIntensity {
		c.ShakeIntensity = intensity
	}
	if duration > c.ShakeTimer {
		c.ShakeTimer = duration
	}
}

// UpdateShake decays shake and computes random offsets.
func (c *Camera) UpdateShake(dt float64, seed uint64) {
	if c.ShakeTimer <= 0 {
		c.ShakeX = 0
		c.ShakeY = 0
		c.ShakeIntensity = 0
		return
	}
	c.ShakeTimer -= dt
	if c.ShakeTimer < 0 {
		c.ShakeTimer = 0
	}
	// Decaying intensity.
	t := c.ShakeTimer
	rr := sim.NewRand(seed ^ uint64(t*10000))
	mag := c.ShakeIntensity * (t / (t + 0.08))
	c.ShakeX = rr.RangeF(-mag, mag)
	c.ShakeY = rr.RangeF(-mag, mag)
}
