// Package arranger sequences a whole piece: drums, vamp chords and the
// improvised lead, bar by bar into one master buffer.
package arranger

import (
	"math/rand/v2"

	"github.com/Conceptual-Machines/soul-vamp/internal/models"
	"github.com/Conceptual-Machines/soul-vamp/internal/music"
	"github.com/Conceptual-Machines/soul-vamp/internal/synth"
)

const (
	// TailPad leaves room for the last notes' release
	TailPad = 2 * synth.SampleRate

	ghostKickThreshold = 0.7 // ghost kick when a uniform draw exceeds this
	ghostKickVolume    = 0.6
	keysVolume         = 0.5
	leadVolume         = 1.0

	// Lead plays behind the beat by this many samples
	minLag = 1000
	maxLag = 5000
)

// BarEvent reports what was played in one bar
type BarEvent struct {
	Index     int
	Section   models.Section
	Phrase    models.Phrase
	GhostKick bool
}

// Stats summarises a render
type Stats struct {
	Bars       int
	Notes      int
	Rests      int
	GhostKicks int
	BySection  map[models.Section]int // notes per section label
}

// Piece is a rendered master buffer. Master still carries the tail pad;
// Samples is the nominal length.
type Piece struct {
	Master  synth.Buffer
	Samples int
	Timing  Timing
	Stats   Stats
}

// Arranger renders the fixed song form
type Arranger struct {
	Structure   []models.Section
	OctaveRange int
	OnBar       func(BarEvent) // Optional progress hook
}

// New creates an arranger for the standard song form
func New() *Arranger {
	return &Arranger{
		Structure:   models.Structure(),
		OctaveRange: music.DefaultOctaveRange,
	}
}

// Render composes the whole piece. Every random draw comes from rng, in bar
// order, so equal seeds and params give identical buffers.
func (a *Arranger) Render(params models.SessionParams, rng *rand.Rand) *Piece {
	timing := NewTiming(params.BPM)
	scale := music.BuildScale(params.RootFreq, params.ScaleIntervals, a.OctaveRange)
	player := music.NewImproviser(scale)
	kit := synth.NewKit(rng)

	total := timing.PieceSamples(len(a.Structure))
	master := make(synth.Buffer, total+TailPad)
	stats := Stats{
		Bars:      len(a.Structure),
		BySection: make(map[models.Section]int),
	}

	for i, section := range a.Structure {
		bar := timing.BarOffset(i)

		// Drums: kick on 1, snare on 3 for the half-time feel
		Mix(master, kit.Kick, bar, 1)
		Mix(master, kit.Hat, bar+timing.BeatOffset(1), 1)
		Mix(master, kit.Snare, bar+timing.BeatOffset(2), 1)
		Mix(master, kit.Hat, bar+timing.BeatOffset(3), 1)

		ghost := rng.Float64() > ghostKickThreshold
		if ghost {
			Mix(master, kit.Kick, bar+timing.BeatOffset(2.5), ghostKickVolume)
			stats.GhostKicks++
		}

		// Keys: the vamp switches chord every bar
		chord := params.Chord1
		if i%2 == 1 {
			chord = params.Chord2
		}
		Mix(master, synth.Pad(rng, chord, timing.Bar), bar, keysVolume)

		// Lead
		phrase := player.PlayLick(rng, section.Intensity())
		if len(phrase) == 0 {
			stats.Rests++
		}
		for _, note := range phrase {
			lag := minLag + rng.IntN(maxLag-minLag+1)
			start := bar + timing.StepOffset(note.Step) + lag
			Mix(master, synth.Lead(rng, note.Freq, float64(note.DurationSteps)*timing.Step), start, leadVolume)
		}
		stats.Notes += len(phrase)
		stats.BySection[section] += len(phrase)

		if a.OnBar != nil {
			a.OnBar(BarEvent{Index: i, Section: section, Phrase: phrase, GhostKick: ghost})
		}
	}

	return &Piece{
		Master:  master,
		Samples: total,
		Timing:  timing,
		Stats:   stats,
	}
}
