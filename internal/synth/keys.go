package synth

import (
	"math"
	"math/rand/v2"
)

const (
	keysRegisterCeiling = 800.0 // Hz; higher chord tones drop an octave
	keysDriftDepth      = 0.002
	keysDriftRate       = 0.5 // Hz
	keysModIndex        = 0.5
	keysModDecay        = 5.0
	keysFadeIn          = 1000 // samples
	keysFadeOut         = 5000 // samples
	keysGain            = 0.3
)

// Pad renders a drifting FM electric-piano chord. Each chord tone gets its
// own random drift phase, like an old tape machine.
func Pad(rng *rand.Rand, freqs []float64, dur float64) Buffer {
	n := Samples(dur)
	t := timeAxis(n, dur)
	out := make(Buffer, n)

	for _, f := range freqs {
		if f > keysRegisterCeiling {
			f /= 2
		}
		phase := rng.Float64()

		for i, ti := range t {
			drift := 1 + keysDriftDepth*math.Sin(2*math.Pi*keysDriftRate*ti+phase)
			mod := math.Sin(2*math.Pi*f*ti) * f * keysModIndex * math.Exp(-keysModDecay*ti)
			out[i] += math.Sin(2*math.Pi*(f*drift)*ti + mod)
		}
	}

	env := rampEnvelope(n, keysFadeIn, keysFadeOut)
	for i := range out {
		out[i] *= env[i] * keysGain
	}
	return out
}
