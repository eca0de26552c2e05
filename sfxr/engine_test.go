package sfxr

import (
	"errors"
	"testing"
)

func TestRenderRejectsUnknownWave(t *testing.T) {
	p := NewDefaultParams()
	p.WaveType = WaveType(7)
	_, err := NewSynth(1).Render(p)
	if err == nil {
		t.Fatal("expected error for unknown wave type")
	}
	if !errors.Is(err, ErrWaveType) {
		t.Fatalf("expected ErrWaveType, got %v", err)
	}
}

func TestRenderRejectsBadDepth(t *testing.T) {
	p := NewDefaultParams()
	p.SampleDepth = 24
	if _, err := NewSynth(1).Render(p); err == nil {
		t.Fatal("expected error for 24-bit depth")
	}
}

func TestRenderRejectsBadSampleRate(t *testing.T) {
	for _, rate := range []int{-1, 48000, 96000} {
		p := NewDefaultParams()
		p.SampleRate = rate
		if _, err := NewSynth(1).Render(p); err == nil {
			t.Fatalf("expected error for sample rate %d", rate)
		}
	}
}

func TestEmptyEnvelopeProducesEmptyBuffer(t *testing.T) {
	p := NewDefaultParams()
	p.Attack = 0
	p.Sustain = 0
	p.Decay = 0
	r, err := NewSynth(1).Render(p)
	if err != nil {
		t.Fatalf("Render failed: %v", err)
	}
	if len(r.Samples) != 0 || len(r.PCM) != 0 {
		t.Fatalf("expected empty buffers, got %d samples / %d bytes", len(r.Samples), len(r.PCM))
	}
	if r.Clipped != 0 {
		t.Fatalf("expected zero clips, got %d", r.Clipped)
	}
}

func TestSquareScenarioLengthIsDeterministic(t *testing.T) {
	p := NewDefaultParams()
	p.WaveType = WaveSquare
	p.BaseFreq = 0.3
	p.Attack = 0
	p.Sustain = 0.3
	p.Decay = 0.4
	p.SampleDepth = 8

	r, err := NewSynth(1).Render(p)
	if err != nil {
		t.Fatalf("Render failed: %v", err)
	}

	// With a skipped zero-length attack, each remaining stage emits one
	// tick per envelope count from 0 through its length.
	sustainTicks := int(0.3*0.3*100000) + 1
	decayTicks := int(0.4*0.4*100000) + 1
	want := sustainTicks + decayTicks
	if len(r.Samples) != want {
		t.Fatalf("expected %d samples, got %d", want, len(r.Samples))
	}
	if len(r.PCM) != len(r.Samples) {
		t.Fatalf("8-bit PCM length %d != sample count %d", len(r.PCM), len(r.Samples))
	}
}

func TestPCMLengthMatchesDepth(t *testing.T) {
	for _, depth := range []int{8, 16} {
		p := NewDefaultParams()
		p.SampleDepth = depth
		r, err := NewSynth(1).Render(p)
		if err != nil {
			t.Fatalf("depth %d: Render failed: %v", depth, err)
		}
		want := len(r.Samples) * depth / 8
		if len(r.PCM) != want {
			t.Fatalf("depth %d: PCM length %d, want %d", depth, len(r.PCM), want)
		}
	}
}

func TestFreqLimitCutoffStopsRender(t *testing.T) {
	p := NewDefaultParams()
	p.BaseFreq = 0.3
	p.FreqLimit = 0.2
	p.FreqRamp = -0.3 // downward slide toward the cutoff
	p.Sustain = 0.8
	p.Decay = 0.8

	r, err := NewSynth(1).Render(p)
	if err != nil {
		t.Fatalf("Render failed: %v", err)
	}
	full := int(0.8*0.8*100000)*2 + 2
	if len(r.Samples) == 0 {
		t.Fatal("expected some samples before the cutoff")
	}
	if len(r.Samples) >= full {
		t.Fatalf("expected cutoff before the full envelope (%d samples), got %d", full, len(r.Samples))
	}
}

func TestRenderDeterministicForSameSeed(t *testing.T) {
	p := NewDefaultParams()
	p.WaveType = WaveNoise
	p.RepeatSpeed = 0.5

	a, err := NewSynth(42).Render(p)
	if err != nil {
		t.Fatalf("Render failed: %v", err)
	}
	b, err := NewSynth(42).Render(p)
	if err != nil {
		t.Fatalf("Render failed: %v", err)
	}
	if len(a.Samples) != len(b.Samples) {
		t.Fatalf("lengths differ: %d vs %d", len(a.Samples), len(b.Samples))
	}
	for i := range a.Samples {
		if a.Samples[i] != b.Samples[i] {
			t.Fatalf("sample %d differs: %v vs %v", i, a.Samples[i], b.Samples[i])
		}
	}
}

func TestNoiseReseedKeepsLength(t *testing.T) {
	p := NewDefaultParams()
	p.WaveType = WaveNoise
	p.RepeatSpeed = 0.5

	a, err := NewSynth(1).Render(p)
	if err != nil {
		t.Fatalf("Render failed: %v", err)
	}
	b, err := NewSynth(2).Render(p)
	if err != nil {
		t.Fatalf("Render failed: %v", err)
	}
	// Fresh noise draws change the waveform but never the duration.
	if len(a.Samples) != len(b.Samples) {
		t.Fatalf("lengths differ across seeds: %d vs %d", len(a.Samples), len(b.Samples))
	}
}

func TestDecimationHalvesSampleCount(t *testing.T) {
	p := NewDefaultParams()
	full, err := NewSynth(1).Render(p)
	if err != nil {
		t.Fatalf("Render failed: %v", err)
	}

	p.SampleRate = 22050
	half, err := NewSynth(1).Render(p)
	if err != nil {
		t.Fatalf("Render failed: %v", err)
	}
	if got, want := len(half.Samples), len(full.Samples)/2; got != want {
		t.Fatalf("22050 Hz render has %d samples, want %d", got, want)
	}
	if half.SampleRate != 22050 {
		t.Fatalf("SampleRate = %d, want 22050", half.SampleRate)
	}
}

func TestMasterVolumeScalesOutput(t *testing.T) {
	defer SetMasterVolume(MasterVolume())

	p := NewDefaultParams()
	SetMasterVolume(1.0)
	loud, err := NewSynth(1).Render(p)
	if err != nil {
		t.Fatalf("Render failed: %v", err)
	}
	SetMasterVolume(0.5)
	quiet, err := NewSynth(1).Render(p)
	if err != nil {
		t.Fatalf("Render failed: %v", err)
	}
	if len(loud.Samples) != len(quiet.Samples) {
		t.Fatalf("lengths differ: %d vs %d", len(loud.Samples), len(quiet.Samples))
	}
	for i := range loud.Samples {
		want := loud.Samples[i] / 2
		diff := quiet.Samples[i] - want
		if diff < -1e-6 || diff > 1e-6 {
			t.Fatalf("sample %d: got %v, want %v", i, quiet.Samples[i], want)
		}
	}
}

func TestClipCounterOnHotSignal(t *testing.T) {
	defer SetMasterVolume(MasterVolume())
	SetMasterVolume(20)

	p := NewDefaultParams()
	r, err := NewSynth(1).Render(p)
	if err != nil {
		t.Fatalf("Render failed: %v", err)
	}
	if r.Clipped == 0 {
		t.Fatal("expected clipping at 20x master volume")
	}
	if len(r.PCM) != 2*len(r.Samples) {
		t.Fatalf("PCM length %d != 2x sample count %d", len(r.PCM), len(r.Samples))
	}
}
