package codec

import "math"

// Token floats are IEEE-754 binary32 bit patterns with two deliberate
// deviations kept for wire compatibility with existing tokens:
//
//   - NaN encodes as a fixed sentinel (sign 0, exponent all-ones,
//     mantissa 0x1337) rather than whatever payload the host produced.
//   - A magnitude whose binary exponent falls outside [-126,127] is
//     flushed to the signed all-ones-exponent, zero-mantissa pattern.
//     This is saturation, not standard infinity handling; do not
//     "correct" it without a token format bump.
//
// Everything else rides on the native float32 conversion.

const (
	signMask    = 1 << 31
	expMask     = 0xFF << 23
	nanSentinel = 0x1337
)

// packFloat converts a float64 parameter value to its 32-bit wire pattern.
func packFloat(v float64) uint32 {
	var sign uint32
	if math.Signbit(v) {
		sign = signMask
	}
	if v == 0 {
		return sign
	}
	if math.IsNaN(v) {
		return expMask | nanSentinel
	}
	_, exp := math.Frexp(math.Abs(v))
	// Frexp normalizes to [0.5,1), so the binary32 exponent is exp-1.
	if e := exp - 1; e < -126 || e > 127 {
		return sign | expMask
	}
	return math.Float32bits(float32(v))
}

// unpackFloat reverses packFloat. The sentinel NaN pattern decodes to a
// NaN, the saturation pattern to a signed infinity, and all-zero
// exponents to denormal-range values or signed zero.
func unpackFloat(bits uint32) float64 {
	return float64(math.Float32frombits(bits))
}
