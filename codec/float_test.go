package codec

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPackFloatZeroPreservesSign(t *testing.T) {
	assert.Equal(t, uint32(0), packFloat(0))
	assert.Equal(t, uint32(signMask), packFloat(math.Copysign(0, -1)))
	assert.Equal(t, 0.0, unpackFloat(0))
	assert.True(t, math.Signbit(unpackFloat(signMask)))
}

func TestPackFloatNaNSentinel(t *testing.T) {
	bits := packFloat(math.NaN())
	assert.Equal(t, uint32(expMask|nanSentinel), bits)
	assert.True(t, math.IsNaN(unpackFloat(bits)))
	// Sign of the NaN payload is always cleared.
	assert.Equal(t, bits, packFloat(math.Copysign(math.NaN(), -1)))
}

func TestPackFloatSaturatesOutOfRangeExponents(t *testing.T) {
	assert.Equal(t, uint32(expMask), packFloat(1e39))
	assert.Equal(t, uint32(signMask|expMask), packFloat(-1e39))
	// Below the normal float32 range the same saturation pattern applies.
	assert.Equal(t, uint32(expMask), packFloat(1e-40))
	assert.True(t, math.IsInf(unpackFloat(expMask), 1))
	assert.True(t, math.IsInf(unpackFloat(signMask|expMask), -1))
}

func TestPackFloatRoundTripsToSinglePrecision(t *testing.T) {
	values := []float64{
		1, -1, 0.5, -0.5, 0.3, 0.123456789, -0.987654321,
		1e-3, -1e-3, 0.999999, 42.42, -1e6,
		math.MaxFloat32 / 2, 1.1754944e-38,
	}
	for _, v := range values {
		got := unpackFloat(packFloat(v))
		require.InDelta(t, v, got, math.Abs(v)*1e-6+1e-38, "value %g", v)
	}
}
