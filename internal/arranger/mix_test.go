package arranger

import (
	"testing"

	"github.com/Conceptual-Machines/soul-vamp/internal/synth"
	"github.com/stretchr/testify/assert"
)

func TestMix(t *testing.T) {
	tests := []struct {
		name  string
		loc   int
		sound synth.Buffer
		vol   float64
		want  synth.Buffer
	}{
		{"inside", 1, synth.Buffer{1, 2}, 1, synth.Buffer{1, 2, 3, 1, 1}},
		{"scaled", 0, synth.Buffer{2, 2}, 0.5, synth.Buffer{2, 2, 1, 1, 1}},
		{"exactly fits end", 3, synth.Buffer{1, 1}, 1, synth.Buffer{1, 1, 1, 2, 2}},
		{"overrun truncated", 4, synth.Buffer{1, 1, 1}, 1, synth.Buffer{1, 1, 1, 1, 2}},
		{"at end is no-op", 5, synth.Buffer{1}, 1, synth.Buffer{1, 1, 1, 1, 1}},
		{"past end is no-op", 50, synth.Buffer{1}, 1, synth.Buffer{1, 1, 1, 1, 1}},
		{"negative is no-op", -1, synth.Buffer{1, 1}, 1, synth.Buffer{1, 1, 1, 1, 1}},
		{"empty sound", 2, nil, 1, synth.Buffer{1, 1, 1, 1, 1}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			master := synth.Buffer{1, 1, 1, 1, 1}
			assert.NotPanics(t, func() { Mix(master, tt.sound, tt.loc, tt.vol) })
			assert.Equal(t, tt.want, master)
		})
	}
}

func TestMixDoesNotWritePastSlice(t *testing.T) {
	backing := synth.Buffer{0, 0, 0, 0, 0, 0}
	master := backing[:4] // spare capacity must stay untouched
	Mix(master, synth.Buffer{1, 1, 1, 1}, 2, 1)

	assert.Equal(t, synth.Buffer{0, 0, 1, 1}, master)
	assert.Equal(t, synth.Buffer{0, 0}, backing[4:])
}

func TestMixEmptyMaster(t *testing.T) {
	assert.NotPanics(t, func() { Mix(nil, synth.Buffer{1}, 0, 1) })
}
