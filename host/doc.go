// Package host runs a carousel engine inside an Ebitengine game.
//
// [View] projects the ring through a perspective camera and serves as the
// engine's Projector and HitTester. [Input] polls mouse, touch, wheel and
// keyboard state each tick and forwards edges to the engine. [Renderer]
// draws items far to near, graded by each item's eased saturation and lift
// with a Kage colour-matrix shader, plus the lightbox and caption.
// [Textures] decodes png, jpeg and webp files in the background and
// uploads them on the frame goroutine. [TickSound] is the alignment cue.
//
// A typical game wires them like this:
//
//	view := host.NewView(1280, 720)
//	e, err := carousel.New(len(paths), cfg,
//		carousel.WithProjector(view), carousel.WithHitTester(view))
//	if err != nil {
//		log.Fatal(err)
//	}
//	view.Attach(e)
//	textures := host.NewTextures(len(paths), 4)
//	textures.Load(ctx, paths)
//	renderer := host.NewRenderer(e, view, textures)
//	input := host.NewInput()
//
// and in the game's Update: textures.Poll(), input.Poll(e), e.Update().
package host
