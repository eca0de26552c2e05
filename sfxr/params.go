package sfxr

import "fmt"

// WaveType selects the oscillator waveform.
type WaveType int

const (
	WaveSquare WaveType = iota
	WaveSawtooth
	WaveSine
	WaveNoise
)

func (w WaveType) String() string {
	switch w {
	case WaveSquare:
		return "square"
	case WaveSawtooth:
		return "sawtooth"
	case WaveSine:
		return "sine"
	case WaveNoise:
		return "noise"
	default:
		return fmt.Sprintf("wave(%d)", int(w))
	}
}

// Valid reports whether w is a known waveform.
func (w WaveType) Valid() bool {
	return w >= WaveSquare && w <= WaveNoise
}

// Params describes one sound effect. All float fields are normalized
// scalars; unsigned fields live in [0,1], signed fields in [-1,1].
// Producers are expected to keep fields in range; the engine clamps
// derived quantities but does not re-validate inputs.
//
// The field order Attack..HpfRamp is part of the token wire contract
// (see the codec package) and must not be reordered.
type Params struct {
	WaveType WaveType

	// Envelope. Punch is a sustain-stage overshoot factor.
	Attack  float64
	Sustain float64
	Punch   float64
	Decay   float64

	// Frequency. FreqLimit of 0 disables the low-frequency cutoff.
	BaseFreq      float64
	FreqLimit     float64
	FreqRamp      float64 // signed
	FreqDeltaRamp float64 // signed

	// Vibrato.
	VibStrength float64
	VibSpeed    float64

	// Arpeggio. ArpSpeed of 1 disables the pitch jump.
	ArpMod   float64 // signed
	ArpSpeed float64

	// Duty cycle (square/sawtooth shaping).
	Duty     float64
	DutyRamp float64 // signed

	// RepeatSpeed of 0 disables retriggering.
	RepeatSpeed float64

	// Phaser.
	PhaseOffset float64 // signed
	PhaseRamp   float64 // signed

	// Low-pass filter. LpfFreq of 1 disables the filter.
	LpfFreq      float64
	LpfRamp      float64 // signed
	LpfResonance float64

	// High-pass filter.
	HpfFreq float64
	HpfRamp float64 // signed

	// Output. Volume maps to linear gain as exp(Volume)-1.
	Volume      float64
	SampleRate  int
	SampleDepth int
}

// NewDefaultParams returns the classic starting point: a plain square
// beep with a short sustain and decay.
func NewDefaultParams() *Params {
	return &Params{
		WaveType:    WaveSquare,
		BaseFreq:    0.3,
		Sustain:     0.3,
		Decay:       0.4,
		LpfFreq:     1.0,
		Volume:      0.5,
		SampleRate:  44100,
		SampleDepth: 16,
	}
}
