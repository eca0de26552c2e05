// Command sfxr-fit searches for a parameter set whose render matches a
// reference WAV, using the Mayfly optimizer over the normalized knob
// space with the analysis package's distance score as the objective.
package main

import (
	"flag"
	"fmt"
	"math/rand"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/cwbudde/mayfly"

	"github.com/cwbudde/algo-sfxr/analysis"
	"github.com/cwbudde/algo-sfxr/codec"
	"github.com/cwbudde/algo-sfxr/internal/wavio"
	"github.com/cwbudde/algo-sfxr/sfxr"
)

func main() {
	reference := flag.String("reference", "", "Reference WAV file to match (required)")
	wave := flag.Int("wave", 0, "Waveform to fit with (0=square 1=sawtooth 2=sine 3=noise)")
	variant := flag.String("variant", "desma", "Mayfly variant: ma|desma|olce|eobbma|gsasma|mpma|aoblmoa")
	pop := flag.Int("pop", 10, "Male and female population size")
	evals := flag.Int("evals", 2000, "Objective evaluation budget")
	seed := flag.Int64("seed", 1, "Seed for the optimizer and the candidate noise oscillator")
	outputPreset := flag.String("output-preset", "fitted.json", "Fitted parameter JSON output path")
	outputWAV := flag.String("output", "fitted.wav", "Fitted render WAV output path")
	flag.Parse()

	if *reference == "" {
		fmt.Fprintln(os.Stderr, "Missing -reference")
		flag.Usage()
		os.Exit(1)
	}
	waveType := sfxr.WaveType(*wave)
	if !waveType.Valid() {
		fmt.Fprintf(os.Stderr, "Invalid -wave %d\n", *wave)
		os.Exit(1)
	}

	ref, refRate, err := wavio.ReadMono(*reference)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error reading reference %q: %v\n", *reference, err)
		os.Exit(1)
	}
	if refRate <= 0 || 44100%refRate != 0 {
		fmt.Fprintf(os.Stderr, "Reference sample rate %d Hz is not a divisor of 44100 (use 44100, 22050, 11025 or 5512)\n", refRate)
		os.Exit(1)
	}

	fmt.Printf("Fitting %s (%d frames at %d Hz) with %s wave, %d evals...\n",
		*reference, len(ref), refRate, waveType, *evals)

	if *pop < 2 {
		*pop = 2
	}
	iters := *evals / (2 * *pop)
	if iters < 1 {
		iters = 1
	}

	cfg, err := newMayflyConfig(strings.ToLower(*variant), *pop, len(knobDefs), iters)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	cfg.Rand = rand.New(rand.NewSource(*seed))

	var (
		mu         sync.Mutex
		best       []float64
		bestScore  = 1.0
		bestRender *sfxr.Rendering
		evalCount  int
	)
	start := time.Now()
	cfg.ObjectiveFunc = func(pos []float64) float64 {
		params := fromNormalized(pos, waveType, refRate)
		// Fixed seed: the objective must be deterministic per position.
		rendering, err := sfxr.NewSynth(*seed).Render(params)
		if err != nil {
			return 1.0
		}
		m := analysis.Compare(ref, rendering.Samples, refRate)

		mu.Lock()
		defer mu.Unlock()
		evalCount++
		if m.Score < bestScore {
			bestScore = m.Score
			best = append([]float64(nil), pos...)
			bestRender = rendering
			fmt.Printf("  eval %d: score %.4f (similarity %.3f)\n", evalCount, m.Score, m.Similarity)
		}
		return m.Score
	}

	if _, err := runMayfly(cfg); err != nil {
		fmt.Fprintf(os.Stderr, "Error optimizing: %v\n", err)
		os.Exit(1)
	}
	if best == nil {
		fmt.Fprintln(os.Stderr, "Optimizer produced no candidates")
		os.Exit(1)
	}

	bestParams := fromNormalized(best, waveType, refRate)
	if err := codec.SaveJSON(*outputPreset, bestParams); err != nil {
		fmt.Fprintf(os.Stderr, "Error writing %s: %v\n", *outputPreset, err)
		os.Exit(1)
	}
	if err := wavio.WriteRendering(*outputWAV, bestRender); err != nil {
		fmt.Fprintf(os.Stderr, "Error writing %s: %v\n", *outputWAV, err)
		os.Exit(1)
	}

	fmt.Printf("Done in %.1fs after %d evals: score %.4f\n", time.Since(start).Seconds(), evalCount, bestScore)
	fmt.Printf("Wrote %s and %s\n", *outputPreset, *outputWAV)
	fmt.Printf("Token: %c%s\n", codec.Marker, codec.Encode(bestParams))
}

func newMayflyConfig(variant string, pop, dims, iters int) (*mayfly.Config, error) {
	var cfg *mayfly.Config
	switch variant {
	case "ma":
		cfg = mayfly.NewDefaultConfig()
	case "desma":
		cfg = mayfly.NewDESMAConfig()
	case "olce":
		cfg = mayfly.NewOLCEConfig()
	case "eobbma":
		cfg = mayfly.NewEOBBMAConfig()
	case "gsasma":
		cfg = mayfly.NewGSASMAConfig()
	case "mpma":
		cfg = mayfly.NewMPMAConfig()
	case "aoblmoa":
		cfg = mayfly.NewAOBLMOAConfig()
	default:
		return nil, fmt.Errorf("unsupported variant %q", variant)
	}
	cfg.ProblemSize = dims
	cfg.LowerBound = 0.0
	cfg.UpperBound = 1.0
	cfg.MaxIterations = iters
	cfg.NPop = pop
	cfg.NPopF = pop
	cfg.NC = 2 * pop
	nm := pop / 20
	if nm < 1 {
		nm = 1
	}
	cfg.NM = nm
	return cfg, nil
}

func runMayfly(cfg *mayfly.Config) (_ *mayfly.Result, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("mayfly panic: %v", r)
		}
	}()
	return mayfly.Optimize(cfg)
}
