package chip8

// Timers holds the two independent 8-bit countdown timers. Both decrement by
// exactly 1 per 60 Hz tick while nonzero, independent of how many instruction
// cycles run between ticks.
type Timers struct {
	Delay uint8
	Sound uint8
}

// Tick advances both timers by one 60 Hz interval.
func (t *Timers) Tick() {
	if t.Delay > 0 {
		t.Delay--
	}
	if t.Sound > 0 {
		t.Sound--
	}
}

// SoundActive reports whether the sound timer is running. This boolean is the
// only signal the audio collaborator receives, waveform generation happens
// outside the core.
func (t *Timers) SoundActive() bool {
	return t.Sound > 0
}
