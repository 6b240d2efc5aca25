package arranger

import "github.com/Conceptual-Machines/soul-vamp/internal/synth"

// Mix adds sound*vol into master starting at loc. Placements that start
// before the buffer or past its end are dropped; overruns are truncated.
// Mix never writes outside master.
func Mix(master, sound synth.Buffer, loc int, vol float64) {
	if loc < 0 || loc >= len(master) {
		return
	}
	if avail := len(master) - loc; len(sound) > avail {
		sound = sound[:avail]
	}
	dst := master[loc : loc+len(sound)]
	for i, s := range sound {
		dst[i] += s * vol
	}
}
