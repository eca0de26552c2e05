// Package codec serializes sound-effect parameter sets to and from the
// compact base-58 token format. The byte layout and the float packing
// are part of a cross-platform wire contract: tokens encode 89 bytes
// (one waveform byte followed by 22 little-endian float32 blocks in
// declared field order) and must round-trip every parameter to float32
// precision on any platform.
package codec

import (
	"encoding/binary"
	"fmt"
	"strings"

	"github.com/cwbudde/algo-sfxr/sfxr"
)

// tokenBytes is the fixed wire size: 1 waveform byte + 22 float blocks.
const tokenBytes = 1 + 22*4

// Marker is the optional leading character callers may prefix to a
// token (e.g. as a URL fragment); Decode strips one if present.
const Marker = '#'

// wireFields returns pointers to the 22 float fields in wire order.
// The order is frozen; appending new fields requires a format bump.
func wireFields(p *sfxr.Params) [22]*float64 {
	return [22]*float64{
		&p.Attack, &p.Sustain, &p.Punch, &p.Decay,
		&p.BaseFreq, &p.FreqLimit, &p.FreqRamp, &p.FreqDeltaRamp,
		&p.VibStrength, &p.VibSpeed,
		&p.ArpMod, &p.ArpSpeed,
		&p.Duty, &p.DutyRamp,
		&p.RepeatSpeed,
		&p.PhaseOffset, &p.PhaseRamp,
		&p.LpfFreq, &p.LpfRamp, &p.LpfResonance,
		&p.HpfFreq, &p.HpfRamp,
	}
}

// Encode serializes p into a base-58 token. Output-stage fields
// (volume, sample rate, sample depth) are not part of the token.
func Encode(p *sfxr.Params) string {
	buf := make([]byte, tokenBytes)
	buf[0] = byte(p.WaveType)
	for i, f := range wireFields(p) {
		binary.LittleEndian.PutUint32(buf[1+i*4:], packFloat(*f))
	}
	return encodeBase58(buf)
}

// Decode parses a token produced by Encode. Fields absent from the wire
// format keep their defaults. Decoded values carry float32 precision,
// so decode(encode(p)) is close to p but not bit-identical.
func Decode(token string) (*sfxr.Params, error) {
	token = strings.TrimPrefix(token, string(Marker))
	raw, err := decodeBase58(token)
	if err != nil {
		return nil, err
	}
	if len(raw) != tokenBytes {
		return nil, fmt.Errorf("codec: token decodes to %d bytes, want %d", len(raw), tokenBytes)
	}

	p := sfxr.NewDefaultParams()
	p.WaveType = sfxr.WaveType(raw[0])
	if !p.WaveType.Valid() {
		return nil, fmt.Errorf("codec: token carries unknown wave type %d", raw[0])
	}
	for i, f := range wireFields(p) {
		*f = unpackFloat(binary.LittleEndian.Uint32(raw[1+i*4:]))
	}
	return p, nil
}
