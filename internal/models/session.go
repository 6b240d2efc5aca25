package models

import "fmt"

// Seed is the single determinism anchor of a run
type Seed uint32

// Default session values used when the session leader omits or garbles a field
const (
	DefaultBPM      = 80
	DefaultRootFreq = 43.65
)

// DefaultScaleIntervals is the minor pentatonic
var DefaultScaleIntervals = []float64{0, 3, 5, 7, 10}

// SessionParams is the harmonic plan ("sheet music") for one piece
type SessionParams struct {
	BPM            int       `json:"bpm"`
	RootFreq       float64   `json:"root_freq"`
	ScaleIntervals []float64 `json:"scale_intervals"`
	Chord1         []float64 `json:"chord_1"`
	Chord2         []float64 `json:"chord_2"`
}

// DefaultChord1 returns the fallback first chord for a root
func DefaultChord1(root float64) []float64 {
	return []float64{root * 2, root * 2.4}
}

// DefaultChord2 returns the fallback second chord for a root
func DefaultChord2(root float64) []float64 {
	return []float64{root * 3, root * 3.6}
}

// DefaultSessionParams returns the plan used when every field is missing
func DefaultSessionParams() SessionParams {
	return SessionParams{
		BPM:            DefaultBPM,
		RootFreq:       DefaultRootFreq,
		ScaleIntervals: append([]float64(nil), DefaultScaleIntervals...),
		Chord1:         DefaultChord1(DefaultRootFreq),
		Chord2:         DefaultChord2(DefaultRootFreq),
	}
}

// Summary renders the one-line console status for the plan
func (p SessionParams) Summary() string {
	return fmt.Sprintf("BPM: %d | Key: %.1fHz", p.BPM, p.RootFreq)
}
