// Package wavio writes rendered effects as mono PCM WAV files and reads
// reference WAVs back for fitting.
package wavio

import (
	"encoding/binary"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/cwbudde/wav"
	"github.com/go-audio/audio"

	"github.com/cwbudde/algo-sfxr/sfxr"
)

// WriteRendering writes the quantized byte stream of r as a canonical
// uncompressed PCM WAV: the fixed 44-byte header followed by the bytes
// exactly as the engine produced them.
func WriteRendering(path string, r *sfxr.Rendering) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return EncodeRendering(f, r)
}

// EncodeRendering writes the WAV byte stream for r to w.
func EncodeRendering(w io.Writer, r *sfxr.Rendering) error {
	depth := r.SampleDepth
	if depth != 8 && depth != 16 {
		return fmt.Errorf("wavio: unsupported sample depth %d", depth)
	}
	blockAlign := depth / 8
	header := make([]byte, 44)
	copy(header[0:], "RIFF")
	binary.LittleEndian.PutUint32(header[4:], uint32(36+len(r.PCM)))
	copy(header[8:], "WAVE")
	copy(header[12:], "fmt ")
	binary.LittleEndian.PutUint32(header[16:], 16)
	binary.LittleEndian.PutUint16(header[20:], 1) // PCM
	binary.LittleEndian.PutUint16(header[22:], 1) // mono
	binary.LittleEndian.PutUint32(header[24:], uint32(r.SampleRate))
	binary.LittleEndian.PutUint32(header[28:], uint32(r.SampleRate*blockAlign))
	binary.LittleEndian.PutUint16(header[32:], uint16(blockAlign))
	binary.LittleEndian.PutUint16(header[34:], uint16(depth))
	copy(header[36:], "data")
	binary.LittleEndian.PutUint32(header[40:], uint32(len(r.PCM)))
	if _, err := w.Write(header); err != nil {
		return err
	}
	_, err := w.Write(r.PCM)
	return err
}

// WriteFloat32 writes a normalized mono float buffer as a 16-bit WAV,
// letting the encoder do the quantization. Used for diagnostic dumps
// where byte-exactness against the engine's own quantizer is not needed.
func WriteFloat32(path string, samples []float32, sampleRate int) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	enc := wav.NewEncoder(f, sampleRate, 16, 1, 1)
	defer enc.Close()

	buf := &audio.Float32Buffer{
		Format: &audio.Format{
			SampleRate:  sampleRate,
			NumChannels: 1,
		},
		Data:           samples,
		SourceBitDepth: 16,
	}
	return enc.Write(buf)
}

// ReadMono reads a WAV file, averages its channels down to mono and
// returns normalized float samples plus the file's sample rate.
func ReadMono(path string) ([]float32, int, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, 0, err
	}
	defer f.Close()
	dec := wav.NewDecoder(f)
	if !dec.IsValidFile() {
		return nil, 0, fmt.Errorf("wavio: invalid wav file: %s", path)
	}
	buf, err := dec.FullPCMBuffer()
	if err != nil {
		return nil, 0, err
	}
	if buf == nil || buf.Format == nil || buf.Format.NumChannels < 1 {
		return nil, 0, fmt.Errorf("wavio: invalid wav buffer: %s", path)
	}
	depth := buf.SourceBitDepth
	if depth == 0 {
		depth = 16
	}
	ch := buf.Format.NumChannels
	frames := len(buf.Data) / ch
	out := make([]float32, frames)
	if depth == 8 {
		// 8-bit WAV data is offset-binary (0..255, silence at 128); the
		// decoder passes the raw byte values through, so recenter before
		// scaling. Masking keeps this correct whether the decoder hands
		// the byte back unsigned or sign-reinterpreted.
		for i := 0; i < frames; i++ {
			var sum float64
			for c := 0; c < ch; c++ {
				sum += float64(int(buf.Data[i*ch+c])&0xFF) - 128
			}
			out[i] = float32(sum / float64(ch) / 128)
		}
		return out, buf.Format.SampleRate, nil
	}
	scale := 1.0 / float64(int(1)<<(depth-1))
	for i := 0; i < frames; i++ {
		var sum float64
		for c := 0; c < ch; c++ {
			sum += float64(buf.Data[i*ch+c])
		}
		out[i] = float32(sum / float64(ch) * scale)
	}
	return out, buf.Format.SampleRate, nil
}
