package music

import (
	"math/rand/v2"
	"testing"

	"github.com/Conceptual-Machines/soul-vamp/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testScale() []float64 {
	return BuildScale(43.65, models.DefaultScaleIntervals, DefaultOctaveRange)
}

func TestNewImproviserStartsInMiddle(t *testing.T) {
	imp := NewImproviser(testScale())
	assert.Equal(t, 7, imp.Cursor)
}

func TestPlayLickCursorBounds(t *testing.T) {
	rng := rand.New(rand.NewPCG(1, 2))
	scale := testScale()

	for _, size := range []int{1, 2, len(scale)} {
		imp := NewImproviser(scale[:size])
		for i := 0; i < 2000; i++ {
			intensity := rng.Float64()
			phrase := imp.PlayLick(rng, intensity)
			require.GreaterOrEqual(t, imp.Cursor, 0)
			require.Less(t, imp.Cursor, size)
			for _, n := range phrase {
				assert.Contains(t, scale[:size], n.Freq)
			}
		}
	}
}

func TestPlayLickShape(t *testing.T) {
	rng := rand.New(rand.NewPCG(7, 7))
	imp := NewImproviser(testScale())

	for i := 0; i < 500; i++ {
		phrase := imp.PlayLick(rng, 1.0)
		require.NotEmpty(t, phrase, "intensity 1 never rests")
		assert.GreaterOrEqual(t, len(phrase), 3)
		assert.LessOrEqual(t, len(phrase), 8)

		prevEnd := 0
		for _, n := range phrase {
			gap := n.Step - prevEnd
			assert.Contains(t, []int{2, 4}, gap)
			assert.Contains(t, []int{2, 4, 8}, n.DurationSteps)
			prevEnd = n.Step + n.DurationSteps
		}
	}
}

func TestPlayLickSparseLength(t *testing.T) {
	rng := rand.New(rand.NewPCG(3, 9))
	imp := NewImproviser(testScale())

	for i := 0; i < 500; i++ {
		phrase := imp.PlayLick(rng, 0.5)
		assert.LessOrEqual(t, len(phrase), 4)
	}
}

func TestPlayLickRestMatchesDraw(t *testing.T) {
	for seed := uint64(0); seed < 200; seed++ {
		intensity := 0.4
		gate := rand.New(rand.NewPCG(seed, 0))
		shouldRest := gate.Float64() > intensity

		imp := NewImproviser(testScale())
		phrase := imp.PlayLick(rand.New(rand.NewPCG(seed, 0)), intensity)
		assert.Equal(t, shouldRest, len(phrase) == 0, "seed %d", seed)
		if shouldRest {
			assert.Equal(t, 7, imp.Cursor, "resting must not move the cursor")
		}
	}
}

func TestPlayLickRestRateMonotonic(t *testing.T) {
	rng := rand.New(rand.NewPCG(11, 13))
	const trials = 4000

	restRate := func(intensity float64) float64 {
		imp := NewImproviser(testScale())
		rests := 0
		for i := 0; i < trials; i++ {
			if len(imp.PlayLick(rng, intensity)) == 0 {
				rests++
			}
		}
		return float64(rests) / trials
	}

	assert.Equal(t, 1.0, restRate(0))
	assert.Equal(t, 0.0, restRate(1))
	assert.InDelta(t, 0.9, restRate(0.1), 0.03)
	assert.InDelta(t, 0.6, restRate(0.4), 0.03)
	assert.InDelta(t, 0.1, restRate(0.9), 0.03)
}

func TestPlayLickBarOverrunAllowed(t *testing.T) {
	rng := rand.New(rand.NewPCG(5, 5))
	imp := NewImproviser(testScale())

	overran := false
	for i := 0; i < 500 && !overran; i++ {
		if imp.PlayLick(rng, 0.9).Span() > 16 {
			overran = true
		}
	}
	assert.True(t, overran, "long phrases spill past the bar")
}

func TestPlayLickEmptyScale(t *testing.T) {
	imp := NewImproviser(nil)
	rng := rand.New(rand.NewPCG(1, 1))
	assert.Empty(t, imp.PlayLick(rng, 1.0))
}

func TestPlayLickDeterministic(t *testing.T) {
	play := func() []models.Phrase {
		rng := rand.New(rand.NewPCG(42, 42))
		imp := NewImproviser(testScale())
		var out []models.Phrase
		for i := 0; i < 40; i++ {
			out = append(out, imp.PlayLick(rng, 0.9))
		}
		return out
	}
	assert.Equal(t, play(), play())
}
