package music

import (
	"math/rand/v2"

	"github.com/Conceptual-Machines/soul-vamp/internal/models"
)

const (
	busyIntensity = 0.6
)

// stepJumps favours stepwise motion over leaps
var stepJumps = []int{-1, -1, 0, 1, 1, 2, -2}

// noteLengths are short, medium and long in sixteenth steps
var noteLengths = []int{2, 4, 8}

// syncopation is the gap before each note in sixteenth steps
var syncopation = []int{2, 4}

// Improviser plays licks over a fixed scale pool. Cursor is the last note
// played and carries melodic continuity from bar to bar.
type Improviser struct {
	Scale  []float64
	Cursor int
}

// NewImproviser starts the player in the middle of the pool
func NewImproviser(scale []float64) *Improviser {
	return &Improviser{
		Scale:  scale,
		Cursor: len(scale) / 2,
	}
}

// PlayLick generates one bar's phrase. Intensity in [0,1] controls how often
// the player rests (rest when a uniform draw exceeds it) and how many notes
// a phrase holds. Notes are not clamped to the bar.
func (imp *Improviser) PlayLick(rng *rand.Rand, intensity float64) models.Phrase {
	if rng.Float64() > intensity {
		return nil
	}
	if len(imp.Scale) == 0 {
		return nil
	}

	var count int
	if intensity > busyIntensity {
		count = 3 + rng.IntN(6)
	} else {
		count = 1 + rng.IntN(4)
	}

	phrase := make(models.Phrase, 0, count)
	current := 0
	for i := 0; i < count; i++ {
		imp.Cursor = clamp(imp.Cursor+pick(rng, stepJumps), 0, len(imp.Scale)-1)

		dur := pick(rng, noteLengths)
		start := current + pick(rng, syncopation)

		phrase = append(phrase, models.Note{
			Step:          start,
			Freq:          imp.Scale[imp.Cursor],
			DurationSteps: dur,
		})
		current = start + dur
	}
	return phrase
}

func pick(rng *rand.Rand, choices []int) int {
	return choices[rng.IntN(len(choices))]
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
