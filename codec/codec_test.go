package codec

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cwbudde/algo-sfxr/sfxr"
)

func TestEncodeAllZeroParams(t *testing.T) {
	// 89 zero bytes encode to 89 leading-zero symbols.
	token := Encode(&sfxr.Params{})
	assert.Equal(t, strings.Repeat("1", tokenBytes), token)

	p, err := Decode(token)
	require.NoError(t, err)
	assert.Equal(t, sfxr.WaveSquare, p.WaveType)
	assert.Equal(t, 0.0, p.Sustain)
	// Output-stage fields are not on the wire and keep their defaults.
	assert.Equal(t, 44100, p.SampleRate)
	assert.Equal(t, 16, p.SampleDepth)
	assert.Equal(t, 0.5, p.Volume)
}

func TestTokenRoundTrip(t *testing.T) {
	p := sfxr.NewDefaultParams()
	p.WaveType = sfxr.WaveSawtooth
	p.Attack = 0.12
	p.Punch = 0.77
	p.FreqRamp = -0.31
	p.FreqDeltaRamp = 0.004
	p.ArpMod = -0.9
	p.Duty = 0.666
	p.PhaseOffset = -0.25
	p.LpfRamp = 0.1
	p.HpfRamp = -0.05

	got, err := Decode(Encode(p))
	require.NoError(t, err)
	assert.Equal(t, p.WaveType, got.WaveType)

	want := wireFields(p)
	for i, f := range wireFields(got) {
		assert.InDelta(t, *want[i], *f, 1e-6, "wire field %d", i)
	}
}

func TestTokenRoundTripRenderEquivalence(t *testing.T) {
	p := sfxr.NewDefaultParams()
	p.WaveType = sfxr.WaveNoise
	p.RepeatSpeed = 0.5

	q, err := Decode(Encode(p))
	require.NoError(t, err)

	a, err := sfxr.NewSynth(42).Render(p)
	require.NoError(t, err)
	b, err := sfxr.NewSynth(42).Render(q)
	require.NoError(t, err)

	// Decoding is float32-lossy, but a re-render of the decoded set must
	// keep the exact duration and stay numerically close throughout.
	require.Equal(t, len(a.Samples), len(b.Samples))
	for i := range a.Samples {
		require.InDelta(t, float64(a.Samples[i]), float64(b.Samples[i]), 1e-5, "sample %d", i)
	}
}

func TestDecodeStripsMarker(t *testing.T) {
	p := sfxr.NewDefaultParams()
	p.BaseFreq = 0.42
	token := Encode(p)

	withMarker, err := Decode(string(Marker) + token)
	require.NoError(t, err)
	bare, err := Decode(token)
	require.NoError(t, err)
	assert.Equal(t, *withMarker, *bare)
}

func TestDecodeRejectsBadTokens(t *testing.T) {
	_, err := Decode("not a token!")
	assert.ErrorIs(t, err, ErrAlphabet)

	// Valid alphabet, wrong payload size.
	_, err = Decode("2xyz")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "bytes")
}

func TestDecodeRejectsUnknownWaveByte(t *testing.T) {
	buf := make([]byte, tokenBytes)
	buf[0] = 9
	_, err := Decode(encodeBase58(buf))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "wave type")
}
