// Package mixdown turns the finished master buffer into a normalised 16-bit
// mono WAV file.
package mixdown

import (
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"
	"time"

	"github.com/Conceptual-Machines/soul-vamp/internal/models"
	"github.com/Conceptual-Machines/soul-vamp/internal/synth"
	"github.com/gopxl/beep"
	"github.com/gopxl/beep/wav"
)

// Headroom is the peak level after normalisation
const Headroom = 0.95

// Peaks this close to the target count as normalised, which keeps
// Normalize idempotent under float rounding
const normalizeTolerance = 1e-12

// Format is the output format: mono, 16-bit, SampleRate
var Format = beep.Format{
	SampleRate:  beep.SampleRate(synth.SampleRate),
	NumChannels: 1,
	Precision:   2,
}

// Stats describes a finished mix
type Stats struct {
	Samples  int
	Peak     float64
	RMS      float64
	Duration time.Duration
}

// Trim drops everything past the nominal length n
func Trim(buf synth.Buffer, n int) synth.Buffer {
	if n < 0 {
		n = 0
	}
	if n > len(buf) {
		return buf
	}
	return buf[:n]
}

// Normalize scales buf in place so its peak equals target. A silent buffer
// is left alone. Returns the peak before scaling.
func Normalize(buf synth.Buffer, target float64) float64 {
	peak := buf.Peak()
	if peak == 0 || math.Abs(peak-target) <= normalizeTolerance*target {
		return peak
	}
	gain := target / peak
	for i := range buf {
		buf[i] *= gain
	}
	return peak
}

// Finalize trims the tail pad and normalises to Headroom
func Finalize(master synth.Buffer, samples int) synth.Buffer {
	out := Trim(master, samples)
	Normalize(out, Headroom)
	return out
}

// Measure reports level statistics for buf
func Measure(buf synth.Buffer) Stats {
	return Stats{
		Samples:  len(buf),
		Peak:     buf.Peak(),
		RMS:      buf.RMS(),
		Duration: Format.SampleRate.D(len(buf)),
	}
}

// Filename is the output name for a seed; the recording tool looks for this pattern
func Filename(seed models.Seed) string {
	return fmt.Sprintf("Soul_Improv_%d.wav", uint32(seed))
}

// WriteWAV encodes buf as 16-bit mono PCM
func WriteWAV(w io.WriteSeeker, buf synth.Buffer) error {
	if err := wav.Encode(w, NewStreamer(buf), Format); err != nil {
		return fmt.Errorf("failed to encode wav: %w", err)
	}
	return nil
}

// WriteFile writes buf to dir under Filename(seed). The file appears only
// once fully encoded.
func WriteFile(dir string, seed models.Seed, buf synth.Buffer) (string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create output dir: %w", err)
	}

	tmp, err := os.CreateTemp(dir, ".soul-*.wav.tmp")
	if err != nil {
		return "", fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName) // no-op after a successful rename

	if err := WriteWAV(tmp, buf); err != nil {
		tmp.Close()
		return "", err
	}
	if err := tmp.Close(); err != nil {
		return "", fmt.Errorf("failed to close temp file: %w", err)
	}

	path := filepath.Join(dir, Filename(seed))
	if err := os.Rename(tmpName, path); err != nil {
		return "", fmt.Errorf("failed to move wav into place: %w", err)
	}
	return path, nil
}
