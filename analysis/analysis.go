// Package analysis provides objective measurements of rendered sound
// effects: waveform distance, envelope distance, spectral distance and
// fundamental-frequency estimation. The fit command uses Compare as its
// optimization objective; the engine tests use PeakFrequency to pin the
// oscillator pitch to the period formulas.
package analysis

import (
	"math"

	"gonum.org/v1/gonum/stat"
)

// Metrics contains distance and similarity measurements between two
// rendered effects.
type Metrics struct {
	SampleRate int `json:"sample_rate"`

	ReferenceFrames int `json:"reference_frames"`
	CandidateFrames int `json:"candidate_frames"`

	TimeRMSE       float64 `json:"time_rmse"`
	EnvelopeRMSEDB float64 `json:"envelope_rmse_db"`
	SpectralRMSEDB float64 `json:"spectral_rmse_db"`
	LengthRatio    float64 `json:"length_ratio"`

	Score      float64 `json:"score"`
	Similarity float64 `json:"similarity"`
}

// Compare returns distance metrics between a reference and a candidate
// render at the same sample rate, and a combined score in [0,1] where 0
// is identical. Both signals are RMS-normalized first, so Compare
// measures shape, not level.
func Compare(reference, candidate []float32, sampleRate int) Metrics {
	m := Metrics{
		SampleRate:      sampleRate,
		ReferenceFrames: len(reference),
		CandidateFrames: len(candidate),
	}
	if sampleRate <= 0 || len(reference) == 0 || len(candidate) == 0 {
		m.Score = 1.0
		return m
	}

	ref := normalizeRMS(toFloat64(reference), 0.1)
	cand := normalizeRMS(toFloat64(candidate), 0.1)

	longer, shorter := float64(len(ref)), float64(len(cand))
	if shorter > longer {
		longer, shorter = shorter, longer
	}
	m.LengthRatio = shorter / longer

	m.TimeRMSE = rmse(ref, cand)

	refEnv := rmsEnvelope(ref, 256, 128)
	candEnv := rmsEnvelope(cand, 256, 128)
	envN := len(refEnv)
	if len(candEnv) < envN {
		envN = len(candEnv)
	}
	if envN > 0 {
		var sum float64
		for i := 0; i < envN; i++ {
			d := linToDB(refEnv[i]) - linToDB(candEnv[i])
			sum += d * d
		}
		m.EnvelopeRMSEDB = math.Sqrt(sum / float64(envN))
	}

	m.SpectralRMSEDB = spectralRMSEDB(ref, cand)

	timeNorm := clamp01(m.TimeRMSE / 0.25)
	envNorm := clamp01(m.EnvelopeRMSEDB / 30.0)
	specNorm := clamp01(m.SpectralRMSEDB / 30.0)
	lenNorm := 1 - m.LengthRatio
	m.Score = clamp01(0.25*timeNorm + 0.25*envNorm + 0.30*specNorm + 0.20*lenNorm)
	m.Similarity = clamp01(math.Exp(-4.0 * m.Score))
	return m
}

// PeakFrequency estimates the dominant frequency of x in Hz using a
// Hann-windowed DFT over at most 4096 samples, with parabolic
// interpolation between neighboring bins.
func PeakFrequency(x []float32, sampleRate int) float64 {
	n := len(x)
	if n > 4096 {
		n = 4096
	}
	if n < 64 || sampleRate <= 0 {
		return 0
	}
	w := make([]float64, n)
	for i := 0; i < n; i++ {
		hann := 0.5 - 0.5*math.Cos(2*math.Pi*float64(i)/float64(n-1))
		w[i] = float64(x[i]) * hann
	}
	bins := n / 2
	mags := make([]float64, bins)
	best := 1
	for k := 1; k < bins; k++ {
		mags[k] = dftBinMag(w, k)
		if mags[k] > mags[best] {
			best = k
		}
	}
	peak := float64(best)
	if best > 1 && best < bins-1 {
		// Parabolic refinement on log magnitudes.
		a := linToDB(mags[best-1])
		b := linToDB(mags[best])
		c := linToDB(mags[best+1])
		den := a - 2*b + c
		if math.Abs(den) > 1e-12 {
			peak += 0.5 * (a - c) / den
		}
	}
	return peak * float64(sampleRate) / float64(n)
}

// DecaySlopeDBPerS fits a line to the post-peak RMS envelope in dB and
// returns its slope. NaN when the envelope is too short to fit.
func DecaySlopeDBPerS(x []float32, sampleRate int) float64 {
	if sampleRate <= 0 {
		return math.NaN()
	}
	env := rmsEnvelope(toFloat64(x), 256, 128)
	if len(env) < 8 {
		return math.NaN()
	}
	peak := math.Inf(-1)
	peakIdx := 0
	for i, v := range env {
		if db := linToDB(v); db > peak {
			peak = db
			peakIdx = i
		}
	}
	start := peakIdx + 1
	if start >= len(env)-4 {
		return math.NaN()
	}
	hopSec := 128.0 / float64(sampleRate)
	xs := make([]float64, 0, len(env)-start)
	ys := make([]float64, 0, len(env)-start)
	for i := start; i < len(env); i++ {
		db := linToDB(env[i])
		if db < peak-60.0 {
			break
		}
		xs = append(xs, float64(i-start)*hopSec)
		ys = append(ys, db)
	}
	if len(xs) < 6 {
		return math.NaN()
	}
	_, slope := stat.LinearRegression(xs, ys, nil, false)
	return slope
}

// RMS returns the root-mean-square level of x.
func RMS(x []float32) float64 {
	if len(x) == 0 {
		return 0
	}
	var sum float64
	for _, s := range x {
		v := float64(s)
		sum += v * v
	}
	return math.Sqrt(sum / float64(len(x)))
}

func toFloat64(in []float32) []float64 {
	out := make([]float64, len(in))
	for i, v := range in {
		out[i] = float64(v)
	}
	return out
}

func normalizeRMS(x []float64, target float64) []float64 {
	if len(x) == 0 {
		return x
	}
	var sum float64
	for _, v := range x {
		sum += v * v
	}
	r := math.Sqrt(sum / float64(len(x)))
	if r <= 1e-12 {
		return x
	}
	g := target / r
	out := make([]float64, len(x))
	for i := range x {
		out[i] = x[i] * g
	}
	return out
}

func rmse(a, b []float64) float64 {
	n := len(a)
	if len(b) < n {
		n = len(b)
	}
	if n == 0 {
		return 0
	}
	var sum float64
	for i := 0; i < n; i++ {
		d := a[i] - b[i]
		sum += d * d
	}
	return math.Sqrt(sum / float64(n))
}

func rmsEnvelope(x []float64, frame, hop int) []float64 {
	if frame <= 0 || hop <= 0 || len(x) < frame {
		return nil
	}
	n := 1 + (len(x)-frame)/hop
	out := make([]float64, n)
	for i := 0; i < n; i++ {
		var sum float64
		for _, v := range x[i*hop : i*hop+frame] {
			sum += v * v
		}
		out[i] = math.Sqrt(sum / float64(frame))
	}
	return out
}

func spectralRMSEDB(a, b []float64) float64 {
	n := len(a)
	if len(b) < n {
		n = len(b)
	}
	if n < 512 {
		return 0
	}
	if n > 4096 {
		n = 4096
	}
	aw := make([]float64, n)
	bw := make([]float64, n)
	for i := 0; i < n; i++ {
		w := 0.5 - 0.5*math.Cos(2*math.Pi*float64(i)/float64(n-1))
		aw[i] = a[i] * w
		bw[i] = b[i] * w
	}
	bins := n / 2
	var sum float64
	for k := 1; k < bins; k++ {
		d := linToDB(dftBinMag(aw, k)) - linToDB(dftBinMag(bw, k))
		sum += d * d
	}
	return math.Sqrt(sum / float64(bins-1))
}

func dftBinMag(x []float64, bin int) float64 {
	n := len(x)
	var re, im float64
	for i := 0; i < n; i++ {
		phi := -2.0 * math.Pi * float64(bin*i) / float64(n)
		re += x[i] * math.Cos(phi)
		im += x[i] * math.Sin(phi)
	}
	return math.Hypot(re, im)
}

func linToDB(x float64) float64 {
	if x < 1e-12 {
		x = 1e-12
	}
	return 20.0 * math.Log10(x)
}

func clamp01(x float64) float64 {
	if x < 0 {
		return 0
	}
	if x > 1 {
		return 1
	}
	return x
}
