package carousel

import (
	"math"
	"time"
)

// Facing returns how squarely an item at angle faces a camera looking along
// -Z from positive Z: 1 dead ahead, -1 directly behind.
func Facing(angle float64) float64 {
	return math.Cos(angle)
}

// FrontIndex returns the item most directly facing the camera at the given
// rotation. Exact ties go to the lowest index. An empty ring yields NoItem.
func FrontIndex(r Ring, rotation float64) int {
	best, bestFacing := NoItem, math.Inf(-1)
	for i := 0; i < r.Len(); i++ {
		f := Facing(math.Mod(r.AngleOf(i, rotation), 2*math.Pi))
		if f > bestFacing {
			best, bestFacing = i, f
		}
	}
	return best
}

// FrontAligned returns the front item and whether its facing value reaches
// threshold, so items seen at a glancing angle don't count.
func FrontAligned(r Ring, rotation, threshold float64) (int, bool) {
	i := FrontIndex(r, rotation)
	if i == NoItem {
		return NoItem, false
	}
	return i, Facing(r.AngleOf(i, rotation)) >= threshold
}

// phaseCount is the number of caption phases cycled through as the front
// item changes.
const phaseCount = 6

// frontWatcher polls the front item at a coarse wall-clock interval for
// captions, and checks alignment every frame for the tick cue.
type frontWatcher struct {
	interval  time.Duration
	threshold float64

	lastPoll time.Time
	polled   bool
	index    int
	phase    int

	aligned      bool
	alignedIndex int
}

func newFrontWatcher(interval time.Duration, threshold float64) frontWatcher {
	return frontWatcher{
		interval:     interval,
		threshold:    threshold,
		index:        NoItem,
		phase:        1,
		alignedIndex: NoItem,
	}
}

// poll re-evaluates the front index if the interval has elapsed. It
// reports whether the index changed and what it was before.
func (w *frontWatcher) poll(now time.Time, r Ring, rotation float64) (changed bool, prev int) {
	if w.polled && now.Sub(w.lastPoll) < w.interval {
		return false, w.index
	}
	w.polled = true
	w.lastPoll = now

	idx := FrontIndex(r, rotation)
	if idx == w.index {
		return false, w.index
	}
	prev = w.index
	w.index = idx
	w.phase = w.phase%phaseCount + 1
	return true, prev
}

// align reports whether an item just became aligned: either none was
// aligned last frame or a different item is aligned now.
func (w *frontWatcher) align(r Ring, rotation float64) (int, bool) {
	idx, ok := FrontAligned(r, rotation, w.threshold)
	if !ok {
		w.aligned = false
		w.alignedIndex = NoItem
		return NoItem, false
	}
	became := !w.aligned || idx != w.alignedIndex
	w.aligned = true
	w.alignedIndex = idx
	return idx, became
}
