package host

import (
	"encoding/binary"
	"log"
	"math"
	"time"

	"github.com/hajimehoshi/ebiten/v2/audio"
)

// Tick sound shape.
const (
	tickFrequency = 1760.0 // A6
	tickLength    = 40 * time.Millisecond
	tickVolume    = 0.2
)

// TickSound is the short click played when an item lines up with the
// camera.
type TickSound struct {
	player *audio.Player
}

// NewTickSound generates the tick into a player on ctx.
func NewTickSound(ctx *audio.Context) *TickSound {
	pcm := tonePCM(ctx.SampleRate(), tickFrequency, tickLength)
	p := ctx.NewPlayerFromBytes(pcm)
	p.SetVolume(tickVolume)
	return &TickSound{player: p}
}

// Play restarts the tick from the beginning.
func (t *TickSound) Play() {
	if t == nil || t.player == nil {
		return
	}
	if err := t.player.Rewind(); err != nil {
		log.Printf("carousel: tick rewind: %v", err)
		return
	}
	t.player.Play()
}

// tonePCM renders a sine blip with a linear decay as 16-bit little-endian
// stereo, the format ebiten's audio players consume.
func tonePCM(sampleRate int, freq float64, d time.Duration) []byte {
	n := sampleRate * int(d/time.Millisecond) / 1000
	buf := make([]byte, n*4)
	for i := 0; i < n; i++ {
		env := 1 - float64(i)/float64(n)
		v := math.Sin(2*math.Pi*freq*float64(i)/float64(sampleRate)) * env
		s := uint16(int16(v * math.MaxInt16))
		binary.LittleEndian.PutUint16(buf[4*i:], s)
		binary.LittleEndian.PutUint16(buf[4*i+2:], s)
	}
	return buf
}
