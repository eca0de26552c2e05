package main

import (
	"testing"

	"github.com/cwbudde/algo-sfxr/sfxr"
)

func TestKnobRoundTrip(t *testing.T) {
	pos := make([]float64, len(knobDefs))
	for i := range pos {
		pos[i] = float64(i%8) / 8.0
	}
	p := fromNormalized(pos, sfxr.WaveSine, 22050)
	if p.WaveType != sfxr.WaveSine {
		t.Fatalf("WaveType = %v", p.WaveType)
	}
	if p.SampleRate != 22050 {
		t.Fatalf("SampleRate = %d", p.SampleRate)
	}
	back := toNormalized(p)
	for i := range pos {
		if back[i] != pos[i] {
			t.Fatalf("knob %s: got %g, want %g", knobDefs[i].Name, back[i], pos[i])
		}
	}
}

func TestKnobSignedMapping(t *testing.T) {
	pos := make([]float64, len(knobDefs))
	for i := range pos {
		pos[i] = 0.5
	}
	p := fromNormalized(pos, sfxr.WaveSquare, 44100)
	for _, d := range knobDefs {
		v := d.Get(p)
		want := 0.5
		if d.Signed {
			want = 0
		}
		if v != want {
			t.Fatalf("knob %s: got %g, want %g", d.Name, v, want)
		}
	}
}

func TestKnobClampsOutOfRangePositions(t *testing.T) {
	pos := make([]float64, len(knobDefs))
	for i := range pos {
		pos[i] = -0.5
		if i%2 == 1 {
			pos[i] = 1.5
		}
	}
	p := fromNormalized(pos, sfxr.WaveSquare, 44100)
	for _, d := range knobDefs {
		v := d.Get(p)
		lo, hi := 0.0, 1.0
		if d.Signed {
			lo = -1
		}
		if v < lo || v > hi {
			t.Fatalf("knob %s: %g outside [%g,%g]", d.Name, v, lo, hi)
		}
	}
}

func TestKnobCountMatchesWireFields(t *testing.T) {
	if len(knobDefs) != 22 {
		t.Fatalf("expected 22 knobs, got %d", len(knobDefs))
	}
	seen := map[string]bool{}
	for _, d := range knobDefs {
		if seen[d.Name] {
			t.Fatalf("duplicate knob %q", d.Name)
		}
		seen[d.Name] = true
	}
}
