package host

import (
	"fmt"
	"image/color"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"

	"github.com/phanxgames/carousel"
)

var captionLines = []string{
	"Lorem ipsum dolor sit amet, consectetur adipiscing elit.",
	"Sed do eiusmod tempor incididunt ut labore et dolore magna aliqua.",
	"Ut enim ad minim veniam, quis nostrud exercitation.",
	"Duis aute irure dolor in reprehenderit in voluptate velit esse.",
	"Nulla porttitor accumsan tincidunt.",
}

// captionFor returns the caption shown for a phase while item index is in
// front. The choice is stable for a given pair.
func captionFor(phase, index int) (title, text string) {
	if phase <= 0 {
		return "", ""
	}
	n := len(captionLines)
	i := (phase*7 + index) % n
	j := (i + 1 + index%2) % n
	text = captionLines[i]
	if index%2 == 1 {
		text += "\n" + captionLines[j]
	}
	return fmt.Sprintf("Phase %d", phase), text
}

// Renderer draws the ring back to front with its eased emphasis, the open
// item as a lightbox, and the front item's caption.
type Renderer struct {
	// Background fills the screen before drawing.
	Background color.Color
	// LightboxHeight is the open item's height as a fraction of the screen.
	LightboxHeight float64

	engine      *carousel.Engine
	view        *View
	textures    *Textures
	painter     *emphasisPainter
	placeholder *ebiten.Image
	pixel       *ebiten.Image
	dimOp       ebiten.DrawImageOptions
}

// NewRenderer returns a renderer for e as seen through v. textures may be
// nil, in which case every item draws as a placeholder tile.
func NewRenderer(e *carousel.Engine, v *View, textures *Textures) *Renderer {
	placeholder := ebiten.NewImage(96, 64)
	placeholder.Fill(color.RGBA{R: 0x6c, G: 0x8e, B: 0xbf, A: 0xff})
	pixel := ebiten.NewImage(1, 1)
	pixel.Fill(color.White)
	return &Renderer{
		Background:     color.RGBA{R: 0x10, G: 0x10, B: 0x14, A: 0xff},
		LightboxHeight: 0.7,
		engine:         e,
		view:           v,
		textures:       textures,
		painter:        newEmphasisPainter(),
		placeholder:    placeholder,
		pixel:          pixel,
	}
}

func (r *Renderer) image(i int) *ebiten.Image {
	if r.textures != nil {
		if img := r.textures.Image(i); img != nil {
			return img
		}
	}
	return r.placeholder
}

// Draw renders one frame into screen.
func (r *Renderer) Draw(screen *ebiten.Image) {
	screen.Fill(r.Background)

	opened := r.engine.Opened()
	caption := r.engine.CaptionIndex()
	var captionRect screenRect
	haveCaption := false

	for _, d := range r.view.layout() {
		it := r.engine.Item(d.index)
		r.painter.draw(screen, r.image(d.index), d.rect, it.Saturation, it.Lift, 1)
		if d.index == caption {
			captionRect, haveCaption = d.rect, true
		}
	}

	if haveCaption && opened == carousel.NoItem {
		title, text := captionFor(r.engine.Phase(), caption)
		x := int(captionRect.X)
		y := int(captionRect.Y + captionRect.Height + 12)
		ebitenutil.DebugPrintAt(screen, title+"\n"+text, x, y)
	}

	if opened != carousel.NoItem {
		r.drawLightbox(screen, opened)
	}
}

func (r *Renderer) drawLightbox(screen *ebiten.Image, i int) {
	r.dimOp.GeoM.Reset()
	r.dimOp.GeoM.Scale(r.view.Width, r.view.Height)
	r.dimOp.ColorScale.Reset()
	r.dimOp.ColorScale.Scale(0, 0, 0, 0.75)
	screen.DrawImage(r.pixel, &r.dimOp)

	img := r.image(i)
	b := img.Bounds()
	rect := fitRect(float64(b.Dx()), float64(b.Dy()), r.view.Width, r.view.Height*r.LightboxHeight)
	rect.X = (r.view.Width - rect.Width) / 2
	rect.Y = (r.view.Height - rect.Height) / 2
	r.painter.draw(screen, img, rect, 1, 0, 1)
}

// fitRect scales a w×h image to fit inside maxW×maxH, keeping its aspect.
func fitRect(w, h, maxW, maxH float64) screenRect {
	if w <= 0 || h <= 0 {
		return screenRect{}
	}
	s := math.Min(maxW/w, maxH/h)
	return screenRect{Width: w * s, Height: h * s}
}
