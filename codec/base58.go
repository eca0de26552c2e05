package codec

import (
	"errors"
	"fmt"
)

// ErrAlphabet is returned when a token contains a character outside the
// base-58 alphabet.
var ErrAlphabet = errors.New("codec: invalid base58 character")

// alphabet is the usual 58-symbol set: digits, uppercase, lowercase,
// minus the visually ambiguous 0, O, I and l. The first symbol doubles
// as the "zero" digit for leading zero bytes.
const alphabet = "123456789ABCDEFGHJKLMNPQRSTUVWXYZabcdefghijkmnopqrstuvwxyz"

var alphabetIdx = func() [256]int8 {
	var m [256]int8
	for i := range m {
		m[i] = -1
	}
	for i := 0; i < len(alphabet); i++ {
		m[alphabet[i]] = int8(i)
	}
	return m
}()

// encodeBase58 converts a big-endian byte string to base-58 text.
// Each leading zero byte contributes exactly one leading zero symbol,
// so the decoded byte count is preserved.
func encodeBase58(input []byte) string {
	zeros := 0
	for zeros < len(input) && input[zeros] == 0 {
		zeros++
	}

	// Repeated division of a base-256 digit array by 58, emitting
	// remainders least-significant first.
	num := append([]byte(nil), input[zeros:]...)
	var rem []byte
	for len(num) > 0 {
		var carry int
		quot := num[:0:len(num)]
		for _, d := range num {
			carry = carry<<8 | int(d)
			q := carry / 58
			carry %= 58
			if len(quot) > 0 || q != 0 {
				quot = append(quot, byte(q))
			}
		}
		rem = append(rem, byte(carry))
		num = quot
	}

	out := make([]byte, 0, zeros+len(rem))
	for i := 0; i < zeros; i++ {
		out = append(out, alphabet[0])
	}
	for i := len(rem) - 1; i >= 0; i-- {
		out = append(out, alphabet[rem[i]])
	}
	return string(out)
}

// decodeBase58 reverses encodeBase58, restoring one leading zero byte
// per leading zero symbol.
func decodeBase58(s string) ([]byte, error) {
	zeros := 0
	for zeros < len(s) && s[zeros] == alphabet[0] {
		zeros++
	}

	// Fold symbols into a big-endian base-256 accumulator via
	// multiply-by-58-and-add.
	var num []byte
	for i := zeros; i < len(s); i++ {
		d := alphabetIdx[s[i]]
		if d < 0 {
			return nil, fmt.Errorf("%w: %q at offset %d", ErrAlphabet, s[i], i)
		}
		carry := int(d)
		for j := len(num) - 1; j >= 0; j-- {
			carry += int(num[j]) * 58
			num[j] = byte(carry)
			carry >>= 8
		}
		for carry > 0 {
			num = append([]byte{byte(carry)}, num...)
			carry >>= 8
		}
	}

	out := make([]byte, zeros+len(num))
	copy(out[zeros:], num)
	return out, nil
}
