package carousel

import "math"

// falloffPower is the exponent p in g(r) = 1 / (1 + (r/k)^p).
const falloffPower = 2.0

// Emphasis is the target visual state of one item.
type Emphasis struct {
	Scale      float64
	Saturation float64
	Lift       float64
}

// Neutral is the emphasis of every item when nothing is focused.
var Neutral = Emphasis{Scale: 1, Saturation: 1, Lift: 0}

// FocusField computes the emphasis of every item for a given focus index.
//
// Colour is a hard split: the focused item keeps full colour and the rest
// are desaturated and lifted toward white by grayLift. Scale bulges around
// the focus with a heavy-tailed falloff over ring distance, clamped to the
// influence radius, so items beyond the radius keep the radius's scale.
type FocusField struct {
	ring       Ring
	focusScale float64
	grayLift   float64
	radius     int
	k          float64
}

// NewFocusField returns the field for ring r. adjacentFactor is the share
// of the focus enlargement kept one step away; k is solved from it so that
// g(1) == adjacentFactor.
func NewFocusField(r Ring, focusScale, adjacentFactor float64, influenceNeighbors int, grayLift float64) FocusField {
	g1 := clamp(adjacentFactor, 1e-6, 1-1e-6)
	return FocusField{
		ring:       r,
		focusScale: focusScale,
		grayLift:   grayLift,
		radius:     max(1, influenceNeighbors),
		k:          math.Pow(g1/(1-g1), 1/falloffPower),
	}
}

// K returns the solved falloff width.
func (f FocusField) K() float64 { return f.k }

// Falloff returns g(r), clamped to the influence radius.
func (f FocusField) Falloff(d int) float64 {
	r := float64(min(d, f.radius))
	return 1 / (1 + math.Pow(r/f.k, falloffPower))
}

// At returns the emphasis of item i when focus is the focused index. An
// out-of-range focus counts as no focus.
func (f FocusField) At(i, focus int) Emphasis {
	if !f.ring.Contains(focus) {
		return Neutral
	}
	d := f.ring.Distance(i, focus)
	if d == 0 {
		return Emphasis{Scale: f.focusScale, Saturation: 1, Lift: 0}
	}
	return Emphasis{
		Scale:      1 + (f.focusScale-1)*f.Falloff(d),
		Saturation: 0,
		Lift:       f.grayLift,
	}
}

// Compute fills dst with the emphasis of every item and returns it. dst is
// grown as needed.
func (f FocusField) Compute(focus int, dst []Emphasis) []Emphasis {
	n := f.ring.Len()
	if cap(dst) < n {
		dst = make([]Emphasis, n)
	}
	dst = dst[:n]
	for i := range dst {
		dst[i] = f.At(i, focus)
	}
	return dst
}
