package carousel

import "math"

// EaseEpsilon is the smallest change worth applying. A value closer than
// this to its target snaps onto it; a smaller step is skipped.
const EaseEpsilon = 1e-4

// maxEaseCarry bounds the skipped time an itemEaser accumulates.
const maxEaseCarry = 1.0

// Step moves current toward target by the fraction min(1, rate·dt), the
// frame-rate-aware exponential approach used for every eased item value.
// Within EaseEpsilon of the target it snaps; a step smaller than
// EaseEpsilon is not applied and current is returned unchanged. It is a
// no-op at the fixed point, for non-positive rate or dt, and for
// non-finite input.
func Step(current, target, rate, dt float64) float64 {
	if current == target || !finite(target) {
		return current
	}
	if !finite(current) {
		return target
	}
	if !finite(rate) || !finite(dt) || rate <= 0 || dt <= 0 {
		return current
	}
	if math.Abs(target-current) < EaseEpsilon {
		return target
	}
	t := math.Min(1, rate*dt)
	next := current + (target-current)*t
	if math.Abs(next-current) < EaseEpsilon {
		return current
	}
	return next
}

// stepItems eases every item's scale at scaleRate and its saturation and
// lift at colorRate. It reports whether any value changed.
func stepItems(items []Item, scaleRate, colorRate, dt float64) bool {
	changed := false
	for i := range items {
		it := &items[i]
		if it.Settled() {
			continue
		}
		s := Step(it.Scale, it.ScaleTarget, scaleRate, dt)
		sat := Step(it.Saturation, it.SaturationTarget, colorRate, dt)
		lift := Step(it.Lift, it.LiftTarget, colorRate, dt)
		if s != it.Scale || sat != it.Saturation || lift != it.Lift {
			changed = true
		}
		it.Scale, it.Saturation, it.Lift = s, sat, lift
	}
	return changed
}

// itemEaser runs stepItems once per frame. Time from frames where every
// step was too small to apply carries into the next frame, so short
// frames still add up and values always reach their targets.
type itemEaser struct {
	carry float64
}

func (ie *itemEaser) step(items []Item, scaleRate, colorRate, dt float64) bool {
	total := ie.carry + dt
	changed := stepItems(items, scaleRate, colorRate, total)
	if changed || allSettled(items) {
		ie.carry = 0
	} else {
		ie.carry = math.Min(total, maxEaseCarry)
	}
	return changed
}

func allSettled(items []Item) bool {
	for i := range items {
		if !items[i].Settled() {
			return false
		}
	}
	return true
}
