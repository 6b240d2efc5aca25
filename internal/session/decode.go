package session

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/Conceptual-Machines/soul-vamp/internal/models"
)

var errNoObject = errors.New("no JSON object in response")

// Accepted ranges; anything outside falls back to the default
const (
	minBPM       = 75
	maxBPM       = 85
	maxRootFreq  = 1000.0
	maxInterval  = 48.0
	maxChordFreq = 20000.0
)

func validBPM(v float64) bool {
	return v >= minBPM && v <= maxBPM && v == math.Trunc(v)
}

func validRoot(v float64) bool {
	return v > 0 && v <= maxRootFreq
}

func validInterval(v float64) bool {
	return math.Abs(v) <= maxInterval
}

func validChordFreq(v float64) bool {
	return v > 0 && v <= maxChordFreq
}

// ExtractJSON returns the text between the first '{' and the last '}'
func ExtractJSON(text string) (string, error) {
	start := strings.Index(text, "{")
	end := strings.LastIndex(text, "}")
	if start < 0 || end < start {
		return "", errNoObject
	}
	return text[start : end+1], nil
}

// Decode parses a session object. Fields that are missing or have the wrong
// shape are replaced with their defaults; only an unparseable object fails.
// Chord defaults are derived from the root after it has been defaulted.
// Tempo must be a whole number in [75, 85] and the root in (0, 1000] Hz.
func Decode(raw string) (*models.SessionParams, error) {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal([]byte(raw), &fields); err != nil {
		return nil, fmt.Errorf("failed to parse session object: %w", err)
	}

	params := models.DefaultSessionParams()

	if bpm, ok := decodeNumber(fields["bpm"]); ok && validBPM(bpm) {
		params.BPM = int(bpm)
	}
	if root, ok := decodeNumber(fields["root_freq"]); ok && validRoot(root) {
		params.RootFreq = root
	}
	if intervals, ok := decodeNumbers(fields["scale_intervals"], validInterval); ok {
		params.ScaleIntervals = intervals
	}

	params.Chord1 = models.DefaultChord1(params.RootFreq)
	if chord, ok := decodeNumbers(fields["chord_1"], validChordFreq); ok {
		params.Chord1 = chord
	}
	params.Chord2 = models.DefaultChord2(params.RootFreq)
	if chord, ok := decodeNumbers(fields["chord_2"], validChordFreq); ok {
		params.Chord2 = chord
	}

	return &params, nil
}

// decodeNumber accepts a finite JSON number
func decodeNumber(raw json.RawMessage) (float64, bool) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return 0, false
	}
	var v float64
	if err := json.Unmarshal(raw, &v); err != nil {
		return 0, false
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, false
	}
	return v, true
}

// decodeNumbers accepts a non-empty array of finite JSON numbers that all
// satisfy valid
func decodeNumbers(raw json.RawMessage, valid func(float64) bool) ([]float64, bool) {
	if len(raw) == 0 {
		return nil, false
	}
	var items []json.RawMessage
	if err := json.Unmarshal(raw, &items); err != nil || len(items) == 0 {
		return nil, false
	}
	out := make([]float64, 0, len(items))
	for _, item := range items {
		v, ok := decodeNumber(item)
		if !ok || !valid(v) {
			return nil, false
		}
		out = append(out, v)
	}
	return out, true
}
