package sfxr

import (
	"math"
	"math/rand"
)

// Preset generators produce ready-to-render parameter sets from an
// explicit randomness source, so batch generation stays reproducible
// under a caller-chosen seed.

func frnd(rng *rand.Rand, r float64) float64 {
	return rng.Float64() * r
}

// rndi returns a uniform integer in [0, n].
func rndi(rng *rand.Rand, n int) int {
	return rng.Intn(n + 1)
}

// PickupCoin generates a short rising blip with punch.
func PickupCoin(rng *rand.Rand) *Params {
	p := NewDefaultParams()
	p.BaseFreq = 0.4 + frnd(rng, 0.5)
	p.Attack = 0
	p.Sustain = frnd(rng, 0.1)
	p.Decay = 0.1 + frnd(rng, 0.4)
	p.Punch = 0.3 + frnd(rng, 0.3)
	if rndi(rng, 1) == 1 {
		p.ArpSpeed = 0.5 + frnd(rng, 0.2)
		p.ArpMod = 0.2 + frnd(rng, 0.4)
	}
	return p
}

// LaserShoot generates a descending zap.
func LaserShoot(rng *rand.Rand) *Params {
	p := NewDefaultParams()
	p.WaveType = WaveType(rndi(rng, 2))
	if p.WaveType == WaveSine && rndi(rng, 1) == 1 {
		p.WaveType = WaveType(rndi(rng, 1))
	}
	p.BaseFreq = 0.5 + frnd(rng, 0.5)
	p.FreqLimit = p.BaseFreq - 0.2 - frnd(rng, 0.6)
	if p.FreqLimit < 0.2 {
		p.FreqLimit = 0.2
	}
	p.FreqRamp = -0.15 - frnd(rng, 0.2)
	if rndi(rng, 2) == 0 {
		p.BaseFreq = 0.3 + frnd(rng, 0.6)
		p.FreqLimit = frnd(rng, 0.1)
		p.FreqRamp = -0.35 - frnd(rng, 0.3)
	}
	if rndi(rng, 1) == 1 {
		p.Duty = frnd(rng, 0.5)
		p.DutyRamp = frnd(rng, 0.2)
	} else {
		p.Duty = 0.4 + frnd(rng, 0.5)
		p.DutyRamp = -frnd(rng, 0.7)
	}
	p.Attack = 0
	p.Sustain = 0.1 + frnd(rng, 0.2)
	p.Decay = frnd(rng, 0.4)
	if rndi(rng, 1) == 1 {
		p.Punch = frnd(rng, 0.3)
	}
	if rndi(rng, 2) == 0 {
		p.PhaseOffset = frnd(rng, 0.2)
		p.PhaseRamp = -frnd(rng, 0.2)
	}
	if rndi(rng, 1) == 1 {
		p.HpfFreq = frnd(rng, 0.3)
	}
	return p
}

// Explosion generates a noisy boom.
func Explosion(rng *rand.Rand) *Params {
	p := NewDefaultParams()
	p.WaveType = WaveNoise
	if rndi(rng, 1) == 1 {
		p.BaseFreq = 0.1 + frnd(rng, 0.4)
		p.FreqRamp = -0.1 + frnd(rng, 0.4)
	} else {
		p.BaseFreq = 0.2 + frnd(rng, 0.7)
		p.FreqRamp = -0.2 - frnd(rng, 0.2)
	}
	p.BaseFreq *= p.BaseFreq
	if rndi(rng, 4) == 0 {
		p.FreqRamp = 0
	}
	if rndi(rng, 2) == 0 {
		p.RepeatSpeed = 0.3 + frnd(rng, 0.5)
	}
	p.Attack = 0
	p.Sustain = 0.1 + frnd(rng, 0.3)
	p.Decay = frnd(rng, 0.5)
	if rndi(rng, 1) == 0 {
		p.PhaseOffset = -0.3 + frnd(rng, 0.9)
		p.PhaseRamp = -frnd(rng, 0.3)
	}
	p.Punch = 0.2 + frnd(rng, 0.6)
	if rndi(rng, 1) == 1 {
		p.VibStrength = frnd(rng, 0.7)
		p.VibSpeed = frnd(rng, 0.6)
	}
	if rndi(rng, 2) == 0 {
		p.ArpSpeed = 0.6 + frnd(rng, 0.3)
		p.ArpMod = 0.8 - frnd(rng, 1.6)
	}
	return p
}

// PowerUp generates a rising jingle.
func PowerUp(rng *rand.Rand) *Params {
	p := NewDefaultParams()
	if rndi(rng, 1) == 1 {
		p.WaveType = WaveSawtooth
	} else {
		p.Duty = frnd(rng, 0.6)
	}
	p.BaseFreq = 0.2 + frnd(rng, 0.3)
	if rndi(rng, 1) == 1 {
		p.FreqRamp = 0.1 + frnd(rng, 0.4)
		p.RepeatSpeed = 0.4 + frnd(rng, 0.4)
	} else {
		p.FreqRamp = 0.05 + frnd(rng, 0.2)
		if rndi(rng, 1) == 1 {
			p.VibStrength = frnd(rng, 0.7)
			p.VibSpeed = frnd(rng, 0.6)
		}
	}
	p.Attack = 0
	p.Sustain = frnd(rng, 0.4)
	p.Decay = 0.1 + frnd(rng, 0.4)
	return p
}

// HitHurt generates a short falling hit.
func HitHurt(rng *rand.Rand) *Params {
	p := NewDefaultParams()
	p.WaveType = WaveType(rndi(rng, 2))
	if p.WaveType == WaveSine {
		p.WaveType = WaveNoise
	}
	if p.WaveType == WaveSquare {
		p.Duty = frnd(rng, 0.6)
	}
	p.BaseFreq = 0.2 + frnd(rng, 0.6)
	p.FreqRamp = -0.3 - frnd(rng, 0.4)
	p.Attack = 0
	p.Sustain = frnd(rng, 0.1)
	p.Decay = 0.1 + frnd(rng, 0.2)
	if rndi(rng, 1) == 1 {
		p.HpfFreq = frnd(rng, 0.3)
	}
	return p
}

// Jump generates a rising square hop.
func Jump(rng *rand.Rand) *Params {
	p := NewDefaultParams()
	p.WaveType = WaveSquare
	p.Duty = frnd(rng, 0.6)
	p.BaseFreq = 0.3 + frnd(rng, 0.3)
	p.FreqRamp = 0.1 + frnd(rng, 0.2)
	p.Attack = 0
	p.Sustain = 0.1 + frnd(rng, 0.3)
	p.Decay = 0.1 + frnd(rng, 0.2)
	if rndi(rng, 1) == 1 {
		p.HpfFreq = frnd(rng, 0.3)
	}
	if rndi(rng, 1) == 1 {
		p.LpfFreq = 1 - frnd(rng, 0.6)
	}
	return p
}

// BlipSelect generates a tiny UI click.
func BlipSelect(rng *rand.Rand) *Params {
	p := NewDefaultParams()
	p.WaveType = WaveType(rndi(rng, 1))
	if p.WaveType == WaveSquare {
		p.Duty = frnd(rng, 0.6)
	}
	p.BaseFreq = 0.2 + frnd(rng, 0.4)
	p.Attack = 0
	p.Sustain = 0.1 + frnd(rng, 0.1)
	p.Decay = frnd(rng, 0.2)
	p.HpfFreq = 0.1
	return p
}

// Randomize generates a fully random parameter set. Unsigned fields are
// clamped into [0,1] so the result is always a valid render input.
func Randomize(rng *rand.Rand) *Params {
	p := NewDefaultParams()
	p.WaveType = WaveType(rndi(rng, 3))
	p.BaseFreq = math.Pow(frnd(rng, 2)-1, 2)
	if rndi(rng, 1) == 1 {
		p.BaseFreq = math.Pow(frnd(rng, 2)-1, 3) + 0.5
	}
	p.FreqLimit = 0
	p.FreqRamp = math.Pow(frnd(rng, 2)-1, 5)
	if p.BaseFreq > 0.7 && p.FreqRamp > 0.2 {
		p.FreqRamp = -p.FreqRamp
	}
	if p.BaseFreq < 0.2 && p.FreqRamp < -0.05 {
		p.FreqRamp = -p.FreqRamp
	}
	p.FreqDeltaRamp = math.Pow(frnd(rng, 2)-1, 3)
	p.Duty = frnd(rng, 2) - 1
	p.DutyRamp = math.Pow(frnd(rng, 2)-1, 3)
	p.VibStrength = math.Pow(frnd(rng, 2)-1, 3)
	p.VibSpeed = frnd(rng, 2) - 1
	p.Attack = math.Pow(frnd(rng, 2)-1, 3)
	p.Sustain = math.Pow(frnd(rng, 2)-1, 2)
	p.Decay = frnd(rng, 2) - 1
	p.Punch = math.Pow(frnd(rng, 0.8), 2)
	if p.Attack+p.Sustain+p.Decay < 0.2 {
		p.Sustain += 0.2 + frnd(rng, 0.3)
		p.Decay += 0.2 + frnd(rng, 0.3)
	}
	p.LpfResonance = frnd(rng, 2) - 1
	p.LpfFreq = 1 - math.Pow(frnd(rng, 1), 3)
	p.LpfRamp = math.Pow(frnd(rng, 2)-1, 3)
	if p.LpfFreq < 0.1 && p.LpfRamp < -0.05 {
		p.LpfRamp = -p.LpfRamp
	}
	p.HpfFreq = math.Pow(frnd(rng, 1), 5)
	p.HpfRamp = math.Pow(frnd(rng, 2)-1, 5)
	p.PhaseOffset = math.Pow(frnd(rng, 2)-1, 3)
	p.PhaseRamp = math.Pow(frnd(rng, 2)-1, 3)
	p.RepeatSpeed = frnd(rng, 2) - 1
	p.ArpSpeed = frnd(rng, 2) - 1
	p.ArpMod = frnd(rng, 2) - 1
	clampUnsigned(p)
	return p
}

// Mutate nudges roughly half of the fields of p by a small random amount
// and returns a new parameter set; p is left untouched.
func Mutate(p *Params, rng *rand.Rand) *Params {
	q := *p
	nudge := func(v *float64) {
		if rndi(rng, 1) == 1 {
			*v += frnd(rng, 0.1) - 0.05
		}
	}
	nudge(&q.BaseFreq)
	nudge(&q.FreqRamp)
	nudge(&q.FreqDeltaRamp)
	nudge(&q.Duty)
	nudge(&q.DutyRamp)
	nudge(&q.VibStrength)
	nudge(&q.VibSpeed)
	nudge(&q.Attack)
	nudge(&q.Sustain)
	nudge(&q.Decay)
	nudge(&q.Punch)
	nudge(&q.LpfResonance)
	nudge(&q.LpfFreq)
	nudge(&q.LpfRamp)
	nudge(&q.HpfFreq)
	nudge(&q.HpfRamp)
	nudge(&q.PhaseOffset)
	nudge(&q.PhaseRamp)
	nudge(&q.RepeatSpeed)
	nudge(&q.ArpSpeed)
	nudge(&q.ArpMod)
	clampUnsigned(&q)
	clampSigned(&q)
	return &q
}
