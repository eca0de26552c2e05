package sfxr

import "math/rand"

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

func clamp11(v float64) float64 {
	if v < -1 {
		return -1
	}
	if v > 1 {
		return 1
	}
	return v
}

func clampUnsigned(p *Params) {
	p.Attack = clamp01(p.Attack)
	p.Sustain = clamp01(p.Sustain)
	p.Punch = clamp01(p.Punch)
	p.Decay = clamp01(p.Decay)
	p.BaseFreq = clamp01(p.BaseFreq)
	p.FreqLimit = clamp01(p.FreqLimit)
	p.VibStrength = clamp01(p.VibStrength)
	p.VibSpeed = clamp01(p.VibSpeed)
	p.ArpSpeed = clamp01(p.ArpSpeed)
	p.Duty = clamp01(p.Duty)
	p.RepeatSpeed = clamp01(p.RepeatSpeed)
	p.LpfFreq = clamp01(p.LpfFreq)
	p.LpfResonance = clamp01(p.LpfResonance)
	p.HpfFreq = clamp01(p.HpfFreq)
	p.Volume = clamp01(p.Volume)
}

func clampSigned(p *Params) {
	p.FreqRamp = clamp11(p.FreqRamp)
	p.FreqDeltaRamp = clamp11(p.FreqDeltaRamp)
	p.ArpMod = clamp11(p.ArpMod)
	p.DutyRamp = clamp11(p.DutyRamp)
	p.PhaseOffset = clamp11(p.PhaseOffset)
	p.PhaseRamp = clamp11(p.PhaseRamp)
	p.LpfRamp = clamp11(p.LpfRamp)
	p.HpfRamp = clamp11(p.HpfRamp)
}

// Presets maps generator names to their functions, for CLI lookup.
var Presets = map[string]func(*rand.Rand) *Params{
	"pickup":    PickupCoin,
	"laser":     LaserShoot,
	"explosion": Explosion,
	"powerup":   PowerUp,
	"hit":       HitHurt,
	"jump":      Jump,
	"blip":      BlipSelect,
	"random":    Randomize,
}
