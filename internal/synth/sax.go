package synth

import (
	"math"
	"math/rand/v2"
)

const (
	saxVibratoDepth = 0.015 // fraction of the note frequency
	saxVibratoRate  = 5.5   // Hz
	saxScoopDepth   = 20.0  // Hz flat at onset
	saxScoopDecay   = 20.0
	saxDrive        = 2.5
	saxBreath       = 0.05
	saxRamp         = 0.08 // seconds, attack and release
	saxGain         = 0.45
)

// Lead renders one sax note: scooped onset, vibrato that widens over the
// note, tanh saturation and a little breath noise.
func Lead(rng *rand.Rand, freq, dur float64) Buffer {
	n := Samples(dur)
	t := timeAxis(n, dur)
	out := make(Buffer, n)

	edge := Samples(saxRamp)
	env := rampEnvelope(n, edge, edge)

	phase := 0.0
	for i, ti := range t {
		// Delayed vibrato: absent at onset, full depth at the end
		grow := 0.0
		if n > 1 {
			grow = float64(i) / float64(n-1)
		}
		vib := freq * saxVibratoDepth * math.Sin(2*math.Pi*saxVibratoRate*ti) * grow * grow
		scoop := -saxScoopDepth * math.Exp(-saxScoopDecay*ti)

		phase += 2 * math.Pi * (freq + vib + scoop) / SampleRate
		tone := math.Tanh(math.Sin(phase) * saxDrive)
		breath := uniform(rng, -saxBreath, saxBreath)

		out[i] = (tone + breath) * env[i] * saxGain
	}
	return out
}

func uniform(rng *rand.Rand, lo, hi float64) float64 {
	return lo + (hi-lo)*rng.Float64()
}
