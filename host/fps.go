package host

import (
	"fmt"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"

	"github.com/phanxgames/carousel"
)

// StatsOverlay shows FPS, TPS and the engine's gesture and spin state in
// the top-left corner. The text refreshes about every half second.
type StatsOverlay struct {
	engine *carousel.Engine
	img    *ebiten.Image
	since  float64
	op     ebiten.DrawImageOptions
}

// NewStatsOverlay returns an overlay for e.
func NewStatsOverlay(e *carousel.Engine) *StatsOverlay {
	// 180x80 fits five lines of debug text.
	return &StatsOverlay{engine: e, img: ebiten.NewImage(180, 80), since: 1}
}

// Update advances the refresh timer by dt seconds.
func (o *StatsOverlay) Update(dt float64) {
	o.since += dt
	if o.since < 0.5 {
		return
	}
	o.since = 0

	o.img.Clear()
	o.img.Fill(color.RGBA{0, 0, 0, 128})
	ebitenutil.DebugPrint(o.img, statsText(o.engine, ebiten.ActualFPS(), ebiten.ActualTPS()))
}

// Draw composites the overlay onto screen.
func (o *StatsOverlay) Draw(screen *ebiten.Image) {
	o.op.GeoM.Reset()
	o.op.GeoM.Translate(4, 4)
	screen.DrawImage(o.img, &o.op)
}

func statsText(e *carousel.Engine, fps, tps float64) string {
	return fmt.Sprintf("FPS: %.1f\nTPS: %.1f\ngesture: %s\nvelocity: %+.3f\nfocus: %d front: %d",
		fps, tps, e.Gesture(), e.Velocity(), e.Focus(), e.CaptionIndex())
}
