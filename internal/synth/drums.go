package synth

import (
	"math"
	"math/rand/v2"
)

const (
	kickDuration  = 0.3
	snareDuration = 0.1
	hatDuration   = 0.05
	snareToneFreq = 400.0
)

// Kick is a thump whose pitch falls from 100 Hz toward 30 Hz
func Kick() Buffer {
	n := Samples(kickDuration)
	t := timeAxis(n, kickDuration)
	out := make(Buffer, n)
	for i, ti := range t {
		freq := 70*math.Exp(-10*ti) + 30
		out[i] = math.Sin(2*math.Pi*freq*ti) * math.Exp(-6*ti)
	}
	return out
}

// Snare is a rim shot: noise plus a 400 Hz body, decaying fast
func Snare(rng *rand.Rand) Buffer {
	n := Samples(snareDuration)
	t := timeAxis(n, snareDuration)
	out := make(Buffer, n)
	for i, ti := range t {
		noise := uniform(rng, -0.6, 0.6)
		out[i] = (noise + math.Sin(2*math.Pi*snareToneFreq*ti)) * math.Exp(-20*ti) * 0.6
	}
	return out
}

// Hat is a soft closed hi-hat
func Hat(rng *rand.Rand) Buffer {
	n := Samples(hatDuration)
	t := timeAxis(n, hatDuration)
	out := make(Buffer, n)
	for i, ti := range t {
		out[i] = uniform(rng, -0.4, 0.4) * math.Exp(-40*ti) * 0.3
	}
	return out
}

// Kit holds the one-shots rendered once per piece
type Kit struct {
	Kick  Buffer
	Snare Buffer
	Hat   Buffer
}

// NewKit renders the drum one-shots, drawing noise in kick, snare, hat order
func NewKit(rng *rand.Rand) Kit {
	kick := Kick()
	snare := Snare(rng)
	hat := Hat(rng)
	return Kit{Kick: kick, Snare: snare, Hat: hat}
}
