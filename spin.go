package carousel

import "math"

// minPixelsPerRadian is the smallest on-screen angular scale treated as
// usable. Below it the ring is close to edge-on and conversions blow up.
const minPixelsPerRadian = 1e-2

// Spin owns the ring's rotational state: an ever-accumulating rotation
// offset and an angular velocity that decays multiplicatively each tick.
type Spin struct {
	// Rotation is the ring rotation in radians. It is never wrapped.
	Rotation float64
	// Velocity is the impulse velocity in rad/s, on top of the idle spin.
	Velocity float64
	// Frozen suppresses rotation (idle spin included) while set.
	Frozen bool

	damping     float64
	frozenDecay float64
	maxVelocity float64
	fallbackPPR float64
}

// NewSpin returns a Spin with the given per-tick damping, extra per-tick
// decay while frozen, and velocity clamp. maxVelocity <= 0 disables the
// clamp. fallbackPPR is used by ApplyFling when the caller's conversion is
// degenerate; SetViewportWidth replaces it with a screen-derived estimate.
func NewSpin(damping, frozenDecay, maxVelocity, fallbackPPR float64) *Spin {
	return &Spin{
		damping:     damping,
		frozenDecay: frozenDecay,
		maxVelocity: maxVelocity,
		fallbackPPR: fallbackPPR,
	}
}

// MaxVelocity returns the velocity clamp (0 when unclamped).
func (s *Spin) MaxVelocity() float64 { return s.maxVelocity }

// SetViewportWidth sets the global fallback conversion to one full turn
// across the given screen width.
func (s *Spin) SetViewportWidth(width float64) {
	if finite(width) && width > 0 {
		s.fallbackPPR = width / (2 * math.Pi)
	}
}

// FallbackPixelsPerRadian returns the conversion used for degenerate
// geometry.
func (s *Spin) FallbackPixelsPerRadian() float64 { return s.fallbackPPR }

// Tick advances the spin by dt seconds with the given idle spin rate.
// While frozen, rotation holds still and velocity bleeds off faster.
func (s *Spin) Tick(dt, baseSpin float64) {
	if !finite(dt) || dt < 0 {
		dt = 0
	}
	if !s.Frozen {
		next := s.Rotation + (baseSpin+s.Velocity)*dt
		if finite(next) {
			s.Rotation = next
		}
	} else {
		s.Velocity *= s.frozenDecay
	}
	s.Velocity *= s.damping
	s.clamp()
}

// AddImpulse adds delta rad/s to the velocity and clamps it.
func (s *Spin) AddImpulse(delta float64) {
	if !finite(delta) {
		return
	}
	s.Velocity += delta
	s.clamp()
}

// SetVelocity replaces the velocity, clamped.
func (s *Spin) SetVelocity(v float64) {
	if !finite(v) {
		return
	}
	s.Velocity = v
	s.clamp()
}

// Rotate turns the ring by delta radians directly, as a drag does.
func (s *Spin) Rotate(delta float64) {
	next := s.Rotation + delta
	if finite(next) {
		s.Rotation = next
	}
}

// SetFrozen toggles the freeze. Velocity is left alone.
func (s *Spin) SetFrozen(frozen bool) {
	s.Frozen = frozen
}

// Stop zeroes the velocity.
func (s *Spin) Stop() {
	s.Velocity = 0
}

// ApplyFling converts a screen-space release velocity in px/s to an angular
// impulse and adds it. A degenerate pixelsPerRadian (near zero or not
// finite) is replaced by the fallback. It returns the impulse applied
// before clamping.
func (s *Spin) ApplyFling(pixelsPerSecond, pixelsPerRadian float64) float64 {
	ppr := s.usablePPR(pixelsPerRadian)
	if ppr == 0 || !finite(pixelsPerSecond) {
		return 0
	}
	impulse := pixelsPerSecond / ppr
	s.AddImpulse(impulse)
	return impulse
}

func (s *Spin) usablePPR(ppr float64) float64 {
	if degeneratePPR(ppr) {
		ppr = s.fallbackPPR
	}
	if degeneratePPR(ppr) {
		return 0
	}
	return ppr
}

func degeneratePPR(ppr float64) bool {
	return !finite(ppr) || math.Abs(ppr) < minPixelsPerRadian
}

func (s *Spin) clamp() {
	if !finite(s.Velocity) {
		s.Velocity = 0
		return
	}
	if m := s.maxVelocity; m > 0 {
		s.Velocity = clamp(s.Velocity, -m, m)
	}
}
