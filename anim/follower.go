/*package anim eases the displayed animation parameter toward the value
supplied by the scroll position. Scroll input arrives in jumps; a critically
damped spring turns those jumps into smooth per-frame motion.
*/
package anim

import (
	"math"

	"github.com/charmbracelet/harmonica"
)

const (
	DefaultFPS       = 60
	DefaultFrequency = 6.0
	DefaultDamping   = 1.0
	// SettleTolerance is the distance and speed below which a Follower is
	// considered to have reached its target.
	SettleTolerance = 1e-4
)

// Follower tracks a target value with a damped spring. It is not safe for
// concurrent use.
type Follower struct {
	spring   harmonica.Spring
	pos, vel float64
	target   float64
	lo, hi   float64
	clamp    bool
}

// NewFollower creates a Follower that is updated fps times per second.
// frequency controls how quickly it moves and damping how much it
// overshoots: 1 is critically damped.
func NewFollower(fps int, frequency, damping float64) *Follower {
	if fps <= 0 {
		panic("Follower frame rate must be positive.")
	}
	return &Follower{
		spring: harmonica.NewSpring(harmonica.FPS(fps), frequency, damping),
	}
}

// DefaultFollower returns a critically damped Follower at 60 frames per
// second.
func DefaultFollower() *Follower {
	return NewFollower(DefaultFPS, DefaultFrequency, DefaultDamping)
}

// Clamp restricts the values reported by Value to [lo, hi]. An underdamped
// spring would otherwise overshoot the range of the animation parameter.
func (f *Follower) Clamp(lo, hi float64) {
	if lo > hi {
		panic("Follower clamp range is inverted.")
	}
	f.lo, f.hi, f.clamp = lo, hi, true
}

// Update advances the spring by one frame toward target and returns the new
// value.
func (f *Follower) Update(target float64) float64 {
	f.target = target
	f.pos, f.vel = f.spring.Update(f.pos, f.vel, target)
	return f.Value()
}

// Snap moves the Follower to x immediately and stops it.
func (f *Follower) Snap(x float64) {
	f.pos, f.vel, f.target = x, 0, x
}

// Value returns the current position of the spring.
func (f *Follower) Value() float64 {
	if f.clamp {
		return math.Max(f.lo, math.Min(f.hi, f.pos))
	}
	return f.pos
}

// Velocity returns the current speed of the spring in units per second.
func (f *Follower) Velocity() float64 { return f.vel }

// Target returns the most recent target.
func (f *Follower) Target() float64 { return f.target }

// Settled returns true if the Follower is at rest on its target.
func (f *Follower) Settled() bool {
	return math.Abs(f.pos-f.target) < SettleTolerance &&
		math.Abs(f.vel) < SettleTolerance
}
