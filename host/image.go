package host

import (
	"context"
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"os"

	"github.com/hajimehoshi/ebiten/v2"
	_ "golang.org/x/image/webp"

	"github.com/phanxgames/carousel"
)

// DecodeImageFile decodes a png, jpeg or webp file. It is a
// carousel.LoadFunc, safe to run off the frame goroutine.
func DecodeImageFile(ctx context.Context, _ int, path string) (image.Image, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()
	img, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}
	return img, nil
}

// Textures loads item images in the background and uploads each to the
// GPU on the frame goroutine once decoded.
type Textures struct {
	set    *carousel.TextureSet[image.Image]
	images []*ebiten.Image
}

// NewTextures returns a texture table for n items decoding at most
// maxConcurrent files at once.
func NewTextures(n int, maxConcurrent int64) *Textures {
	t := &Textures{
		set:    carousel.NewTextureSet[image.Image](n, maxConcurrent),
		images: make([]*ebiten.Image, n),
	}
	t.set.OnResolve(func(i int, img image.Image) {
		t.images[i] = ebiten.NewImageFromImage(img)
	})
	return t
}

// Load starts decoding paths[i] for item i.
func (t *Textures) Load(ctx context.Context, paths []string) {
	t.set.Load(ctx, paths, DecodeImageFile)
}

// Poll uploads every finished decode. Call once per frame.
func (t *Textures) Poll() int { return t.set.Poll() }

// Pending returns the number of decodes still outstanding.
func (t *Textures) Pending() int { return t.set.Pending() }

// Image returns item i's texture, or nil while it is unresolved.
func (t *Textures) Image(i int) *ebiten.Image {
	if i < 0 || i >= len(t.images) {
		return nil
	}
	return t.images[i]
}
