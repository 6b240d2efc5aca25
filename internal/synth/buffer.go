// Package synth renders the band's instruments as mono float64 sample
// buffers at SampleRate. Generators are pure apart from the random draws
// they take from the stream passed in.
package synth

import "math"

// SampleRate of every buffer in the system
const SampleRate = 44100

// Buffer is mono float64 samples
type Buffer []float64

// Samples converts seconds to a sample count
func Samples(seconds float64) int {
	return int(seconds * SampleRate)
}

// timeAxis returns n evenly spaced instants from 0 to dur inclusive
func timeAxis(n int, dur float64) []float64 {
	t := make([]float64, n)
	if n == 1 {
		return t
	}
	step := dur / float64(n-1)
	for i := range t {
		t[i] = float64(i) * step
	}
	return t
}

// rampEnvelope is unity with a linear rise over the first attack samples and
// a linear fall over the last release samples. Where the two overlap the
// release wins.
func rampEnvelope(n, attack, release int) []float64 {
	env := make([]float64, n)
	for i := range env {
		env[i] = 1
	}

	attack = min(attack, n)
	for i := 0; i < attack; i++ {
		env[i] = ramp(i, attack)
	}

	release = min(release, n)
	start := n - release
	for j := 0; j < release; j++ {
		env[start+j] = 1 - ramp(j, release)
	}
	return env
}

// ramp is the j-th of n points from 0 to 1 inclusive
func ramp(j, n int) float64 {
	if n <= 1 {
		return 0
	}
	return float64(j) / float64(n-1)
}

// Peak returns the largest absolute sample
func (b Buffer) Peak() float64 {
	peak := 0.0
	for _, s := range b {
		if a := math.Abs(s); a > peak {
			peak = a
		}
	}
	return peak
}

// RMS returns the root mean square level
func (b Buffer) RMS() float64 {
	if len(b) == 0 {
		return 0
	}
	sum := 0.0
	for _, s := range b {
		sum += s * s
	}
	return math.Sqrt(sum / float64(len(b)))
}
