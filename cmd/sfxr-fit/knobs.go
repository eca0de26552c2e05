package main

import "github.com/cwbudde/algo-sfxr/sfxr"

// knobDef maps one optimizer dimension to a parameter field. The
// optimizer works on normalized [0,1] positions; signed fields stretch
// that to [-1,1].
type knobDef struct {
	Name   string
	Signed bool
	Set    func(p *sfxr.Params, v float64)
	Get    func(p *sfxr.Params) float64
}

var knobDefs = []knobDef{
	{"attack", false, func(p *sfxr.Params, v float64) { p.Attack = v }, func(p *sfxr.Params) float64 { return p.Attack }},
	{"sustain", false, func(p *sfxr.Params, v float64) { p.Sustain = v }, func(p *sfxr.Params) float64 { return p.Sustain }},
	{"punch", false, func(p *sfxr.Params, v float64) { p.Punch = v }, func(p *sfxr.Params) float64 { return p.Punch }},
	{"decay", false, func(p *sfxr.Params, v float64) { p.Decay = v }, func(p *sfxr.Params) float64 { return p.Decay }},
	{"base_freq", false, func(p *sfxr.Params, v float64) { p.BaseFreq = v }, func(p *sfxr.Params) float64 { return p.BaseFreq }},
	{"freq_limit", false, func(p *sfxr.Params, v float64) { p.FreqLimit = v }, func(p *sfxr.Params) float64 { return p.FreqLimit }},
	{"freq_ramp", true, func(p *sfxr.Params, v float64) { p.FreqRamp = v }, func(p *sfxr.Params) float64 { return p.FreqRamp }},
	{"freq_delta_ramp", true, func(p *sfxr.Params, v float64) { p.FreqDeltaRamp = v }, func(p *sfxr.Params) float64 { return p.FreqDeltaRamp }},
	{"vib_strength", false, func(p *sfxr.Params, v float64) { p.VibStrength = v }, func(p *sfxr.Params) float64 { return p.VibStrength }},
	{"vib_speed", false, func(p *sfxr.Params, v float64) { p.VibSpeed = v }, func(p *sfxr.Params) float64 { return p.VibSpeed }},
	{"arp_mod", true, func(p *sfxr.Params, v float64) { p.ArpMod = v }, func(p *sfxr.Params) float64 { return p.ArpMod }},
	{"arp_speed", false, func(p *sfxr.Params, v float64) { p.ArpSpeed = v }, func(p *sfxr.Params) float64 { return p.ArpSpeed }},
	{"duty", false, func(p *sfxr.Params, v float64) { p.Duty = v }, func(p *sfxr.Params) float64 { return p.Duty }},
	{"duty_ramp", true, func(p *sfxr.Params, v float64) { p.DutyRamp = v }, func(p *sfxr.Params) float64 { return p.DutyRamp }},
	{"repeat_speed", false, func(p *sfxr.Params, v float64) { p.RepeatSpeed = v }, func(p *sfxr.Params) float64 { return p.RepeatSpeed }},
	{"phase_offset", true, func(p *sfxr.Params, v float64) { p.PhaseOffset = v }, func(p *sfxr.Params) float64 { return p.PhaseOffset }},
	{"phase_ramp", true, func(p *sfxr.Params, v float64) { p.PhaseRamp = v }, func(p *sfxr.Params) float64 { return p.PhaseRamp }},
	{"lpf_freq", false, func(p *sfxr.Params, v float64) { p.LpfFreq = v }, func(p *sfxr.Params) float64 { return p.LpfFreq }},
	{"lpf_ramp", true, func(p *sfxr.Params, v float64) { p.LpfRamp = v }, func(p *sfxr.Params) float64 { return p.LpfRamp }},
	{"lpf_resonance", false, func(p *sfxr.Params, v float64) { p.LpfResonance = v }, func(p *sfxr.Params) float64 { return p.LpfResonance }},
	{"hpf_freq", false, func(p *sfxr.Params, v float64) { p.HpfFreq = v }, func(p *sfxr.Params) float64 { return p.HpfFreq }},
	{"hpf_ramp", true, func(p *sfxr.Params, v float64) { p.HpfRamp = v }, func(p *sfxr.Params) float64 { return p.HpfRamp }},
}

// fromNormalized builds a parameter set from an optimizer position.
func fromNormalized(pos []float64, wave sfxr.WaveType, sampleRate int) *sfxr.Params {
	p := sfxr.NewDefaultParams()
	p.WaveType = wave
	p.SampleRate = sampleRate
	for i, d := range knobDefs {
		v := pos[i]
		if v < 0 {
			v = 0
		}
		if v > 1 {
			v = 1
		}
		if d.Signed {
			v = v*2 - 1
		}
		d.Set(p, v)
	}
	return p
}

// toNormalized projects a parameter set back into optimizer space.
func toNormalized(p *sfxr.Params) []float64 {
	pos := make([]float64, len(knobDefs))
	for i, d := range knobDefs {
		v := d.Get(p)
		if d.Signed {
			v = (v + 1) / 2
		}
		if v < 0 {
			v = 0
		}
		if v > 1 {
			v = 1
		}
		pos[i] = v
	}
	return pos
}
