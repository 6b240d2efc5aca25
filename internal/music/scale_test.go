package music

import (
	"math"
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildScaleDefault(t *testing.T) {
	intervals := []float64{0, 3, 5, 7, 10}
	pool := BuildScale(43.65, intervals, DefaultOctaveRange)

	require.Len(t, pool, 15)
	assert.True(t, sort.Float64sAreSorted(pool))
	assert.InDelta(t, 87.3, pool[0], 1e-9)
	assert.InDelta(t, 43.65*math.Pow(2, 10.0/12)*8, pool[14], 1e-9)
}

func TestBuildScaleMembership(t *testing.T) {
	tests := []struct {
		name        string
		root        float64
		intervals   []float64
		octaveRange int
	}{
		{"pentatonic", 43.65, []float64{0, 3, 5, 7, 10}, 2},
		{"dorian unsorted", 41.2, []float64{10, 0, 2, 9, 3, 5, 7}, 1},
		{"wide", 45, []float64{0, 7}, 4},
		{"intervals past octave", 43, []float64{0, 14, 17}, 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pool := BuildScale(tt.root, tt.intervals, tt.octaveRange)
			assert.Len(t, pool, len(tt.intervals)*(tt.octaveRange+1))
			assert.True(t, sort.Float64sAreSorted(pool))

			for _, f := range pool {
				found := false
				for _, k := range tt.intervals {
					for m := 1; m <= tt.octaveRange+1; m++ {
						want := tt.root * math.Pow(2, k/12) * math.Pow(2, float64(m))
						if math.Abs(f-want) < 1e-9 {
							found = true
						}
					}
				}
				assert.True(t, found, "unexpected pool entry %f", f)
			}
		})
	}
}

func TestBuildScaleEmpty(t *testing.T) {
	assert.Empty(t, BuildScale(43.65, nil, 2))
}
