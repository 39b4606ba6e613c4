// Package audio implements the beeper of the emulator. The VM core only
// exposes whether the sound timer is running, the tone itself is generated
// here and played through the default audio device.
package audio

import (
	"encoding/binary"
	"fmt"
	"math"
	"sync/atomic"

	"github.com/ebitengine/oto/v3"
)

const (
	sampleRate     = 48000
	toneFrequency  = 440.0
	toneAmplitude  = 0.20
	bytesPerSample = 4 // one mono float32 sample
)

// Beeper plays a 440 Hz sine tone while the sound timer is active.
type Beeper struct {
	ctx    *oto.Context
	player *oto.Player

	active atomic.Bool
	phase  float64 // only accessed by the player goroutine in Read
}

// New opens the default audio device and starts a silent stream.
func New() (*Beeper, error) {
	op := &oto.NewContextOptions{
		SampleRate:   sampleRate,
		ChannelCount: 1,
		Format:       oto.FormatFloat32LE,
	}

	ctx, ready, err := oto.NewContext(op)
	if err != nil {
		return nil, fmt.Errorf("opening audio context: %w", err)
	}
	<-ready

	b := &Beeper{ctx: ctx}
	b.player = ctx.NewPlayer(b)
	b.player.Play()
	return b, nil
}

// SetActive switches the tone on or off. The host calls this once per frame
// with the sound timer state of the VM.
func (b *Beeper) SetActive(on bool) {
	b.active.Store(on)
}

// Read produces the sample stream for the audio device: a sine wave while
// the beeper is active, silence otherwise.
func (b *Beeper) Read(p []byte) (int, error) {
	numSamples := len(p) / bytesPerSample
	active := b.active.Load()

	for i := range numSamples {
		var sample float64
		if active {
			sample = toneAmplitude * math.Sin(2*math.Pi*toneFrequency*b.phase/sampleRate)
			b.phase++
		}
		bits := math.Float32bits(float32(sample))
		binary.LittleEndian.PutUint32(p[i*bytesPerSample:], bits)
	}

	if !active {
		// restart the wave at a zero crossing to avoid clicks
		b.phase = 0
	}
	return numSamples * bytesPerSample, nil
}

// Close stops playback and releases the audio device.
func (b *Beeper) Close() error {
	if b.player != nil {
		if err := b.player.Close(); err != nil {
			return fmt.Errorf("closing audio player: %w", err)
		}
	}
	return nil
}
