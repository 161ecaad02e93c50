package carousel

// Item is one ring member. Index and Angle0 are fixed at creation. The
// *Target fields are set by the focus field when focus changes; Scale,
// Saturation and Lift are the eased values the renderer reads each frame.
type Item struct {
	Index  int
	Angle0 float64

	Scale       float64
	ScaleTarget float64

	// Saturation of 1 is full colour, 0 is greyscale.
	Saturation       float64
	SaturationTarget float64

	// Lift of 0 leaves the image alone, 1 washes it to white.
	Lift       float64
	LiftTarget float64
}

func newItems(r Ring) []Item {
	items := make([]Item, r.Len())
	for i := range items {
		items[i] = Item{
			Index:            i,
			Angle0:           r.BaseAngle(i),
			Scale:            1,
			ScaleTarget:      1,
			Saturation:       1,
			SaturationTarget: 1,
		}
	}
	return items
}

func (it *Item) setTargets(e Emphasis) {
	it.ScaleTarget = e.Scale
	it.SaturationTarget = e.Saturation
	it.LiftTarget = e.Lift
}

// Settled reports whether every eased value has reached its target.
func (it *Item) Settled() bool {
	return it.Scale == it.ScaleTarget &&
		it.Saturation == it.SaturationTarget &&
		it.Lift == it.LiftTarget
}
