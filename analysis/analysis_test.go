package analysis

import (
	"math"
	"testing"
)

func sine(freq float64, sampleRate, n int) []float32 {
	out := make([]float32, n)
	for i := range out {
		out[i] = float32(math.Sin(2 * math.Pi * freq * float64(i) / float64(sampleRate)))
	}
	return out
}

func TestPeakFrequencyFindsSine(t *testing.T) {
	for _, freq := range []float64{220, 1000, 4000} {
		x := sine(freq, 44100, 4096)
		got := PeakFrequency(x, 44100)
		if math.Abs(got-freq) > 10 {
			t.Fatalf("PeakFrequency(%g Hz sine) = %g", freq, got)
		}
	}
}

func TestPeakFrequencyShortInput(t *testing.T) {
	if got := PeakFrequency(make([]float32, 32), 44100); got != 0 {
		t.Fatalf("expected 0 for short input, got %g", got)
	}
	if got := PeakFrequency(sine(440, 44100, 4096), 0); got != 0 {
		t.Fatalf("expected 0 for zero sample rate, got %g", got)
	}
}

func TestCompareIdenticalSignals(t *testing.T) {
	x := sine(440, 44100, 8192)
	m := Compare(x, x, 44100)
	if m.Score > 1e-9 {
		t.Fatalf("identical signals scored %g", m.Score)
	}
	if m.Similarity < 0.999 {
		t.Fatalf("identical signals similarity %g", m.Similarity)
	}
	if m.LengthRatio != 1 {
		t.Fatalf("LengthRatio = %g, want 1", m.LengthRatio)
	}
}

func TestCompareDistinguishesSignals(t *testing.T) {
	ref := sine(440, 44100, 8192)
	near := sine(450, 44100, 8192)
	far := sine(3000, 44100, 4096)

	mNear := Compare(ref, near, 44100)
	mFar := Compare(ref, far, 44100)
	if mNear.Score >= mFar.Score {
		t.Fatalf("near score %g not below far score %g", mNear.Score, mFar.Score)
	}
	if mFar.LengthRatio != 0.5 {
		t.Fatalf("LengthRatio = %g, want 0.5", mFar.LengthRatio)
	}
}

func TestCompareEmptyInput(t *testing.T) {
	x := sine(440, 44100, 1024)
	if m := Compare(nil, x, 44100); m.Score != 1 {
		t.Fatalf("empty reference scored %g, want 1", m.Score)
	}
	if m := Compare(x, nil, 44100); m.Score != 1 {
		t.Fatalf("empty candidate scored %g, want 1", m.Score)
	}
}

func TestCompareIsLevelInvariant(t *testing.T) {
	ref := sine(440, 44100, 8192)
	loud := make([]float32, len(ref))
	for i, v := range ref {
		loud[i] = v * 8
	}
	m := Compare(ref, loud, 44100)
	if m.Score > 1e-6 {
		t.Fatalf("scaled copy scored %g", m.Score)
	}
}

func TestRMS(t *testing.T) {
	x := make([]float32, 1000)
	for i := range x {
		x[i] = 0.5
	}
	if got := RMS(x); math.Abs(got-0.5) > 1e-9 {
		t.Fatalf("RMS of constant 0.5 = %g", got)
	}
	if got := RMS(nil); got != 0 {
		t.Fatalf("RMS of empty = %g", got)
	}
}

func TestDecaySlopeDBPerS(t *testing.T) {
	n := 22050
	x := make([]float32, n)
	for i := range x {
		tt := float64(i) / 44100.0
		x[i] = float32(math.Exp(-3*tt) * math.Sin(2*math.Pi*440*tt))
	}
	slope := DecaySlopeDBPerS(x, 44100)
	if math.IsNaN(slope) {
		t.Fatal("expected a slope, got NaN")
	}
	// exp(-3t) decays at about -26 dB/s.
	if slope > -20 || slope < -33 {
		t.Fatalf("slope = %g dB/s, want about -26", slope)
	}
	if !math.IsNaN(DecaySlopeDBPerS(make([]float32, 100), 44100)) {
		t.Fatal("expected NaN for too-short input")
	}
}
