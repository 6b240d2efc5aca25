package models

// Note is one event of an improvised phrase, timed in sixteenth-note steps
type Note struct {
	Step          int     `json:"step"`
	Freq          float64 `json:"freq"`
	DurationSteps int     `json:"dur"`
}

// Phrase is one bar's lick. Empty means the player rests.
type Phrase []Note

// Span returns the step just past the last note
func (p Phrase) Span() int {
	end := 0
	for _, n := range p {
		if e := n.Step + n.DurationSteps; e > end {
			end = e
		}
	}
	return end
}
