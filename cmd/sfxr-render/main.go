// Command sfxr-render synthesizes one sound effect and writes it as a
// mono PCM WAV file. The parameter set comes from a base-58 token given
// as a positional argument, from a named preset generator, or from a
// JSON document piped on stdin.
package main

import (
	"flag"
	"fmt"
	"math/rand"
	"os"
	"sort"
	"time"

	"github.com/cwbudde/algo-sfxr/codec"
	"github.com/cwbudde/algo-sfxr/internal/wavio"
	"github.com/cwbudde/algo-sfxr/sfxr"
)

func main() {
	preset := flag.String("preset", "", "Preset generator name ("+presetNames()+")")
	seed := flag.Int64("seed", 0, "Random seed for preset generation and the noise oscillator (0 = time-based)")
	sampleRate := flag.Int("sample-rate", 0, "Output sample rate override in Hz")
	bits := flag.Int("bits", 0, "Output sample depth override (8 or 16)")
	output := flag.String("output", "output.wav", "Output WAV file path")
	printToken := flag.Bool("token", false, "Print the parameter token for the rendered sound")
	flag.Parse()

	if *seed == 0 {
		*seed = time.Now().UnixNano()
	}
	rng := rand.New(rand.NewSource(*seed))

	var (
		params *sfxr.Params
		err    error
	)
	switch {
	case flag.NArg() > 0:
		params, err = codec.Decode(flag.Arg(0))
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error decoding token: %v\n", err)
			os.Exit(1)
		}
	case *preset != "":
		gen, ok := sfxr.Presets[*preset]
		if !ok {
			fmt.Fprintf(os.Stderr, "Unknown preset %q (have: %s)\n", *preset, presetNames())
			os.Exit(1)
		}
		params = gen(rng)
	default:
		params, err = codec.DecodeJSON(os.Stdin)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error reading structured input: %v\n", err)
			os.Exit(1)
		}
	}

	if *sampleRate != 0 {
		params.SampleRate = *sampleRate
	}
	if *bits != 0 {
		params.SampleDepth = *bits
	}

	synth := sfxr.NewSynth(*seed)
	rendering, err := synth.Render(params)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error rendering: %v\n", err)
		os.Exit(1)
	}

	if err := wavio.WriteRendering(*output, rendering); err != nil {
		fmt.Fprintf(os.Stderr, "Error writing %s: %v\n", *output, err)
		os.Exit(1)
	}

	secs := float64(len(rendering.Samples)) / float64(rendering.SampleRate)
	fmt.Printf("Wrote %s: %s wave, %d samples (%.3fs) at %d Hz/%d-bit, %d clipped\n",
		*output, params.WaveType, len(rendering.Samples), secs,
		rendering.SampleRate, rendering.SampleDepth, rendering.Clipped)
	if *printToken {
		fmt.Printf("%c%s\n", codec.Marker, codec.Encode(params))
	}
}

func presetNames() string {
	names := make([]string, 0, len(sfxr.Presets))
	for name := range sfxr.Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	out := ""
	for i, n := range names {
		if i > 0 {
			out += ", "
		}
		out += n
	}
	return out
}
