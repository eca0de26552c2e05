package sfxr

import (
	"errors"
	"fmt"
	"math"
	"math/rand"
	"sync"
)

// ErrWaveType is returned by Render for a waveform selector outside the
// known set. It is checked before any sample is produced.
var ErrWaveType = errors.New("sfxr: unknown wave type")

// internalRate is the fixed synthesis rate; requested output rates are
// reached by block-average decimation from it.
const internalRate = 44100

// oversample is the number of inner oscillator steps per synthesis tick.
const oversample = 8

var (
	masterMu     sync.RWMutex
	masterVolume = 1.0
)

// SetMasterVolume sets the process-wide output level applied to all
// subsequent renders. Safe to call concurrently with in-flight renders;
// a render reads the value once at its start.
func SetMasterVolume(v float64) {
	masterMu.Lock()
	masterVolume = v
	masterMu.Unlock()
}

// MasterVolume returns the process-wide output level.
func MasterVolume() float64 {
	masterMu.RLock()
	defer masterMu.RUnlock()
	return masterVolume
}

// Rendering is the output of one Render call.
type Rendering struct {
	// Samples is the normalized float buffer, one entry per output sample.
	Samples []float32
	// PCM is the quantized byte stream: one byte per sample at 8-bit
	// depth, two little-endian bytes at 16-bit.
	PCM []byte
	// Clipped counts samples that exceeded the quantization range and
	// were clamped.
	Clipped int

	SampleRate  int
	SampleDepth int
}

// Synth renders Params into sample buffers. All per-render state lives in
// the struct and is rebuilt at the start of every Render call, so a single
// Synth can render any number of sounds sequentially; use one Synth per
// goroutine for parallel batches.
type Synth struct {
	rng *rand.Rand

	params *Params

	// Oscillator group, re-initialized on every repeat boundary.
	period     float64
	maxPeriod  float64
	slide      float64
	deltaSlide float64
	duty       float64
	dutyRamp   float64
	arpMod     float64
	arpTime    int
	arpLimit   int

	// Persistent across repeats.
	phase       int
	envStage    int
	envTime     float64
	envLength   [3]float64
	lpPos       float64
	lpDelta     float64
	lpCutoff    float64
	lpRamp      float64
	lpDamping   float64
	hpPos       float64
	hpCutoff    float64
	hpRamp      float64
	vibPhase    float64
	vibSpeed    float64
	vibAmp      float64
	phaserPos   float64
	phaserRamp  float64
	phaserIdx   int
	phaserIpp   int
	repeatTime  int
	repeatLimit int

	phaserBuffer [1024]float64
	noiseBuffer  [32]float64
}

// NewSynth creates a synthesizer whose noise oscillator draws from a
// deterministic stream seeded with seed.
func NewSynth(seed int64) *Synth {
	return &Synth{rng: rand.New(rand.NewSource(seed))}
}

// resetOscillator initializes the oscillator/duty/arpeggio group. On a
// repeat boundary only this group restarts; envelope, filters, phaser and
// vibrato keep their state, which gives the retrigger texture instead of
// a hard restart.
func (s *Synth) resetOscillator() {
	p := s.params

	s.period = 100 / (p.BaseFreq*p.BaseFreq + 0.001)
	s.maxPeriod = 100 / (p.FreqLimit*p.FreqLimit + 0.001)
	s.slide = 1 - p.FreqRamp*p.FreqRamp*p.FreqRamp*0.01
	s.deltaSlide = -p.FreqDeltaRamp * p.FreqDeltaRamp * p.FreqDeltaRamp * 0.000001

	s.duty = 0.5 - p.Duty*0.5
	s.dutyRamp = -p.DutyRamp * 0.00005

	if p.ArpMod >= 0 {
		s.arpMod = 1 - p.ArpMod*p.ArpMod*0.9
	} else {
		s.arpMod = 1 + p.ArpMod*p.ArpMod*10
	}
	s.arpTime = 0
	s.arpLimit = int((1-p.ArpSpeed)*(1-p.ArpSpeed)*20000) + 32
	if p.ArpSpeed == 1 {
		s.arpLimit = 0
	}
}

// reset initializes the full synthesis state for a new render.
func (s *Synth) reset() {
	p := s.params
	s.resetOscillator()

	s.phase = 0

	s.lpPos = 0
	s.lpDelta = 0
	s.lpCutoff = p.LpfFreq * p.LpfFreq * p.LpfFreq * 0.1
	s.lpRamp = 1 + p.LpfRamp*0.0001
	s.lpDamping = 5 / (1 + p.LpfResonance*p.LpfResonance*20) * (0.01 + s.lpCutoff)
	if s.lpDamping > 0.8 {
		s.lpDamping = 0.8
	}
	s.lpDamping = 1 - s.lpDamping

	s.hpPos = 0
	s.hpCutoff = p.HpfFreq * p.HpfFreq * 0.1
	s.hpRamp = 1 + p.HpfRamp*0.0003

	s.vibPhase = 0
	s.vibSpeed = p.VibSpeed * p.VibSpeed * 0.01
	s.vibAmp = p.VibStrength * 0.5

	s.envStage = 0
	s.envTime = 0
	s.envLength[0] = p.Attack * p.Attack * 100000
	s.envLength[1] = p.Sustain * p.Sustain * 100000
	s.envLength[2] = p.Decay * p.Decay * 100000

	s.phaserPos = p.PhaseOffset * p.PhaseOffset * 1020
	if p.PhaseOffset < 0 {
		s.phaserPos = -s.phaserPos
	}
	s.phaserRamp = p.PhaseRamp * p.PhaseRamp
	if p.PhaseRamp < 0 {
		s.phaserRamp = -s.phaserRamp
	}
	s.phaserIdx = phaserTap(s.phaserPos)
	s.phaserIpp = 0
	for i := range s.phaserBuffer {
		s.phaserBuffer[i] = 0
	}

	s.repeatTime = 0
	s.repeatLimit = int((1-p.RepeatSpeed)*(1-p.RepeatSpeed)*20000) + 32
	if p.RepeatSpeed == 0 {
		s.repeatLimit = 0
	}

	s.refillNoise()
}

func (s *Synth) refillNoise() {
	for i := range s.noiseBuffer {
		s.noiseBuffer[i] = s.rng.Float64()*2 - 1
	}
}

// phaserTap derives the delay-line tap index from the drifting offset,
// clamped to the buffer size.
func phaserTap(pos float64) int {
	idx := int(math.Abs(pos))
	if idx > 1023 {
		idx = 1023
	}
	return idx
}

// Render synthesizes p into a quantized PCM stream plus a normalized
// float buffer. Rendering runs until the envelope completes or, with
// FreqLimit set, until the period hits its ceiling. The buffer length is
// not known in advance.
func (s *Synth) Render(p *Params) (*Rendering, error) {
	if !p.WaveType.Valid() {
		return nil, fmt.Errorf("%w: %d", ErrWaveType, int(p.WaveType))
	}
	depth := p.SampleDepth
	if depth != 8 && depth != 16 {
		return nil, fmt.Errorf("sfxr: unsupported sample depth %d (want 8 or 16)", depth)
	}
	rate := p.SampleRate
	if rate == 0 {
		rate = internalRate
	}
	if rate < 1 || rate > internalRate {
		return nil, fmt.Errorf("sfxr: sample rate %d out of range (0,%d]", p.SampleRate, internalRate)
	}
	decim := internalRate / rate

	s.params = p
	s.reset()

	gain := math.Exp(p.Volume) - 1
	level := MasterVolume()

	lpEnabled := p.LpfFreq != 1

	out := &Rendering{
		SampleRate:  rate,
		SampleDepth: depth,
	}

	var (
		acc      float64
		accTicks int
		finished bool
	)

	for !finished {
		// Repeat boundary: retrigger the oscillator group only.
		if s.repeatLimit != 0 {
			s.repeatTime++
			if s.repeatTime >= s.repeatLimit {
				s.repeatTime = 0
				s.resetOscillator()
			}
		}

		// One-shot arpeggio pitch jump.
		if s.arpLimit != 0 {
			s.arpTime++
			if s.arpTime >= s.arpLimit {
				s.arpLimit = 0
				s.period *= s.arpMod
			}
		}

		// Frequency slide and its drift.
		s.slide += s.deltaSlide
		s.period *= s.slide
		if s.period > s.maxPeriod {
			s.period = s.maxPeriod
			if p.FreqLimit > 0 {
				finished = true
			}
		}

		// Vibrato-modulated effective period.
		rperiod := s.period
		if s.vibAmp > 0 {
			s.vibPhase += s.vibSpeed
			rperiod = s.period * (1 + math.Sin(s.vibPhase)*s.vibAmp)
		}
		period := int(rperiod)
		if period < 8 {
			period = 8
		}

		s.duty += s.dutyRamp
		if s.duty < 0 {
			s.duty = 0
		}
		if s.duty > 0.5 {
			s.duty = 0.5
		}

		// Envelope. Zero-length stages are skipped the tick they are
		// entered so the stage fraction never divides by zero.
		s.envTime++
		for s.envStage < 3 && (s.envLength[s.envStage] == 0 || s.envTime > s.envLength[s.envStage]) {
			s.envTime = 0
			s.envStage++
		}
		var envVol float64
		switch s.envStage {
		case 0:
			envVol = s.envTime / s.envLength[0]
		case 1:
			envVol = 1 + (1-s.envTime/s.envLength[1])*2*p.Punch
		case 2:
			envVol = 1 - s.envTime/s.envLength[2]
		default:
			finished = true
		}
		if finished {
			break
		}

		// Phaser tap index follows the drifting offset.
		s.phaserPos += s.phaserRamp
		s.phaserIdx = phaserTap(s.phaserPos)

		// High-pass cutoff drift, held inside a safe numeric band.
		s.hpCutoff *= s.hpRamp
		if s.hpCutoff < 0.00001 {
			s.hpCutoff = 0.00001
		}
		if s.hpCutoff > 0.1 {
			s.hpCutoff = 0.1
		}

		var tickSum float64
		for i := 0; i < oversample; i++ {
			s.phase++
			if s.phase >= period {
				s.phase %= period
				if p.WaveType == WaveNoise {
					s.refillNoise()
				}
			}
			fp := float64(s.phase) / float64(period)

			var sample float64
			switch p.WaveType {
			case WaveSquare:
				if fp < s.duty {
					sample = 0.5
				} else {
					sample = -0.5
				}
			case WaveSawtooth:
				// Duty splits the rise/fall of the ramp.
				if fp < s.duty {
					sample = -1 + 2*fp/s.duty
				} else {
					sample = 1 - 2*(fp-s.duty)/(1-s.duty)
				}
			case WaveSine:
				sample = math.Sin(fp * 2 * math.Pi)
			case WaveNoise:
				sample = s.noiseBuffer[int(fp*32)&31]
			}

			// Low-pass: damped first-order integrator toward the raw
			// sample; pass-through when disabled.
			prevLp := s.lpPos
			s.lpCutoff *= s.lpRamp
			if s.lpCutoff < 0 {
				s.lpCutoff = 0
			}
			if s.lpCutoff > 0.1 {
				s.lpCutoff = 0.1
			}
			if lpEnabled {
				s.lpDelta += (sample - s.lpPos) * s.lpCutoff
				s.lpDelta *= s.lpDamping
			} else {
				s.lpPos = sample
				s.lpDelta = 0
			}
			s.lpPos += s.lpDelta

			// High-pass: leaky difference of the low-pass output.
			s.hpPos += s.lpPos - prevLp
			s.hpPos *= 1 - s.hpCutoff
			sample = s.hpPos

			// Feed-forward comb through the circular delay line.
			s.phaserBuffer[s.phaserIpp&1023] = sample
			sample += s.phaserBuffer[(s.phaserIpp-s.phaserIdx+1024)&1023]
			s.phaserIpp = (s.phaserIpp + 1) & 1023

			tickSum += sample * envVol
		}

		acc += tickSum
		accTicks++
		if accTicks < decim {
			continue
		}

		v := acc / float64(accTicks*oversample) * level * gain
		acc = 0
		accTicks = 0

		out.Samples = append(out.Samples, float32(v))
		switch depth {
		case 8:
			q := int(math.Floor((v + 1) * 128))
			if q < 0 {
				q = 0
				out.Clipped++
			} else if q > 255 {
				q = 255
				out.Clipped++
			}
			out.PCM = append(out.PCM, byte(q))
		case 16:
			q := int(math.Floor(v * 32768))
			if q < -32768 {
				q = -32768
				out.Clipped++
			} else if q > 32767 {
				q = 32767
				out.Clipped++
			}
			out.PCM = append(out.PCM, byte(uint16(q)), byte(uint16(q)>>8))
		}
	}

	return out, nil
}
