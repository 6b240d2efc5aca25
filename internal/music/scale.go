// Package music holds the scale model and the improviser that walks it.
package music

import (
	"math"
	"sort"
)

// DefaultOctaveRange spans three octaves starting one octave above the root
const DefaultOctaveRange = 2

// BuildScale generates the pool of notes the lead may choose from: every
// interval above root, transposed by 2^1 .. 2^(octaveRange+1), ascending.
func BuildScale(root float64, intervals []float64, octaveRange int) []float64 {
	base := make([]float64, len(intervals))
	for i, semis := range intervals {
		base[i] = root * math.Pow(2, semis/12)
	}

	pool := make([]float64, 0, len(base)*(octaveRange+1))
	for octave := 1; octave <= octaveRange+1; octave++ {
		mult := math.Pow(2, float64(octave))
		for _, f := range base {
			pool = append(pool, f*mult)
		}
	}
	sort.Float64s(pool)
	return pool
}
