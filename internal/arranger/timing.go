package arranger

import "github.com/Conceptual-Machines/soul-vamp/internal/synth"

// Timing holds the grid lengths in seconds for one tempo in 4/4
type Timing struct {
	Beat float64
	Step float64 // sixteenth note
	Bar  float64
}

// NewTiming derives the grid from beats per minute
func NewTiming(bpm int) Timing {
	beat := 60 / float64(bpm)
	return Timing{
		Beat: beat,
		Step: beat / 4,
		Bar:  beat * 4,
	}
}

// BarOffset is the first sample of bar i
func (t Timing) BarOffset(i int) int {
	return int(float64(i) * t.Bar * synth.SampleRate)
}

// BeatOffset is the sample distance of a (possibly fractional) beat from the bar start
func (t Timing) BeatOffset(beats float64) int {
	return int(t.Beat * beats * synth.SampleRate)
}

// StepOffset is the sample distance of a sixteenth-step position from the bar start
func (t Timing) StepOffset(steps int) int {
	return int(float64(steps) * t.Step * synth.SampleRate)
}

// PieceSamples is the nominal length of a piece of the given number of bars
func (t Timing) PieceSamples(bars int) int {
	return int(float64(bars) * t.Bar * synth.SampleRate)
}
