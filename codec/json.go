package codec

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/cwbudde/algo-sfxr/sfxr"
)

// File is the JSON schema for the structured parameter form. Every field
// is a pointer so that absent keys keep the engine defaults; unknown
// keys are ignored.
type File struct {
	WaveType *int `json:"wave_type"`

	Attack  *float64 `json:"attack"`
	Sustain *float64 `json:"sustain"`
	Punch   *float64 `json:"punch"`
	Decay   *float64 `json:"decay"`

	BaseFreq      *float64 `json:"base_freq"`
	FreqLimit     *float64 `json:"freq_limit"`
	FreqRamp      *float64 `json:"freq_ramp"`
	FreqDeltaRamp *float64 `json:"freq_delta_ramp"`

	VibStrength *float64 `json:"vib_strength"`
	VibSpeed    *float64 `json:"vib_speed"`

	ArpMod   *float64 `json:"arp_mod"`
	ArpSpeed *float64 `json:"arp_speed"`

	Duty     *float64 `json:"duty"`
	DutyRamp *float64 `json:"duty_ramp"`

	RepeatSpeed *float64 `json:"repeat_speed"`

	PhaseOffset *float64 `json:"phase_offset"`
	PhaseRamp   *float64 `json:"phase_ramp"`

	LpfFreq      *float64 `json:"lpf_freq"`
	LpfRamp      *float64 `json:"lpf_ramp"`
	LpfResonance *float64 `json:"lpf_resonance"`

	HpfFreq *float64 `json:"hpf_freq"`
	HpfRamp *float64 `json:"hpf_ramp"`

	Volume      *float64 `json:"volume"`
	SampleRate  *int     `json:"sample_rate"`
	SampleDepth *int     `json:"sample_depth"`
}

// FromParams builds a fully populated File from p, for writing presets.
func FromParams(p *sfxr.Params) *File {
	w := int(p.WaveType)
	rate := p.SampleRate
	depth := p.SampleDepth
	return &File{
		WaveType:      &w,
		Attack:        ptr(p.Attack),
		Sustain:       ptr(p.Sustain),
		Punch:         ptr(p.Punch),
		Decay:         ptr(p.Decay),
		BaseFreq:      ptr(p.BaseFreq),
		FreqLimit:     ptr(p.FreqLimit),
		FreqRamp:      ptr(p.FreqRamp),
		FreqDeltaRamp: ptr(p.FreqDeltaRamp),
		VibStrength:   ptr(p.VibStrength),
		VibSpeed:      ptr(p.VibSpeed),
		ArpMod:        ptr(p.ArpMod),
		ArpSpeed:      ptr(p.ArpSpeed),
		Duty:          ptr(p.Duty),
		DutyRamp:      ptr(p.DutyRamp),
		RepeatSpeed:   ptr(p.RepeatSpeed),
		PhaseOffset:   ptr(p.PhaseOffset),
		PhaseRamp:     ptr(p.PhaseRamp),
		LpfFreq:       ptr(p.LpfFreq),
		LpfRamp:       ptr(p.LpfRamp),
		LpfResonance:  ptr(p.LpfResonance),
		HpfFreq:       ptr(p.HpfFreq),
		HpfRamp:       ptr(p.HpfRamp),
		Volume:        ptr(p.Volume),
		SampleRate:    &rate,
		SampleDepth:   &depth,
	}
}

// DecodeJSON reads one structured parameter document from r and applies
// it on top of defaults.
func DecodeJSON(r io.Reader) (*sfxr.Params, error) {
	var f File
	if err := json.NewDecoder(r).Decode(&f); err != nil {
		return nil, fmt.Errorf("codec: malformed structured input: %w", err)
	}
	p := sfxr.NewDefaultParams()
	if err := ApplyFile(p, &f); err != nil {
		return nil, err
	}
	return p, nil
}

// LoadJSON loads a structured parameter file from disk.
func LoadJSON(path string) (*sfxr.Params, error) {
	fh, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer fh.Close()
	return DecodeJSON(fh)
}

// SaveJSON writes p as a structured parameter file.
func SaveJSON(path string, p *sfxr.Params) error {
	b, err := json.MarshalIndent(FromParams(p), "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, append(b, '\n'), 0o644)
}

// ApplyFile applies a parsed structured form onto existing params.
func ApplyFile(dst *sfxr.Params, f *File) error {
	if dst == nil {
		return fmt.Errorf("nil destination params")
	}
	if f == nil {
		return nil
	}

	if f.WaveType != nil {
		w := sfxr.WaveType(*f.WaveType)
		if !w.Valid() {
			return fmt.Errorf("wave_type must be 0..3, got %d", *f.WaveType)
		}
		dst.WaveType = w
	}

	unsigned := []struct {
		name string
		src  *float64
		dst  *float64
	}{
		{"attack", f.Attack, &dst.Attack},
		{"sustain", f.Sustain, &dst.Sustain},
		{"punch", f.Punch, &dst.Punch},
		{"decay", f.Decay, &dst.Decay},
		{"base_freq", f.BaseFreq, &dst.BaseFreq},
		{"freq_limit", f.FreqLimit, &dst.FreqLimit},
		{"vib_strength", f.VibStrength, &dst.VibStrength},
		{"vib_speed", f.VibSpeed, &dst.VibSpeed},
		{"arp_speed", f.ArpSpeed, &dst.ArpSpeed},
		{"duty", f.Duty, &dst.Duty},
		{"repeat_speed", f.RepeatSpeed, &dst.RepeatSpeed},
		{"lpf_freq", f.LpfFreq, &dst.LpfFreq},
		{"lpf_resonance", f.LpfResonance, &dst.LpfResonance},
		{"hpf_freq", f.HpfFreq, &dst.HpfFreq},
		{"volume", f.Volume, &dst.Volume},
	}
	for _, u := range unsigned {
		if u.src == nil {
			continue
		}
		if *u.src < 0 || *u.src > 1 {
			return fmt.Errorf("%s must be in [0,1], got %g", u.name, *u.src)
		}
		*u.dst = *u.src
	}

	signed := []struct {
		name string
		src  *float64
		dst  *float64
	}{
		{"freq_ramp", f.FreqRamp, &dst.FreqRamp},
		{"freq_delta_ramp", f.FreqDeltaRamp, &dst.FreqDeltaRamp},
		{"arp_mod", f.ArpMod, &dst.ArpMod},
		{"duty_ramp", f.DutyRamp, &dst.DutyRamp},
		{"phase_offset", f.PhaseOffset, &dst.PhaseOffset},
		{"phase_ramp", f.PhaseRamp, &dst.PhaseRamp},
		{"lpf_ramp", f.LpfRamp, &dst.LpfRamp},
		{"hpf_ramp", f.HpfRamp, &dst.HpfRamp},
	}
	for _, s := range signed {
		if s.src == nil {
			continue
		}
		if *s.src < -1 || *s.src > 1 {
			return fmt.Errorf("%s must be in [-1,1], got %g", s.name, *s.src)
		}
		*s.dst = *s.src
	}

	if f.SampleRate != nil {
		if *f.SampleRate <= 0 || *f.SampleRate > 44100 {
			return fmt.Errorf("sample_rate must be in (0,44100], got %d", *f.SampleRate)
		}
		dst.SampleRate = *f.SampleRate
	}
	if f.SampleDepth != nil {
		if *f.SampleDepth != 8 && *f.SampleDepth != 16 {
			return fmt.Errorf("sample_depth must be 8 or 16, got %d", *f.SampleDepth)
		}
		dst.SampleDepth = *f.SampleDepth
	}
	return nil
}

func ptr(v float64) *float64 { return &v }
