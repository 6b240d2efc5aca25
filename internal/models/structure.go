package models

// Section labels a bar of the song form
type Section string

const (
	SectionIntro  Section = "Intro"
	SectionVerse  Section = "Verse"
	SectionChorus Section = "Chorus"
	SectionOutro  Section = "Outro"
)

// Intensity returns how hard the lead plays in the section
func (s Section) Intensity() float64 {
	switch s {
	case SectionIntro, SectionOutro:
		return 0.9 // Soloing hard
	case SectionChorus:
		return 0.4
	case SectionVerse:
		return 0.1 // Leave room for vocals
	default:
		return 0.0
	}
}

// Part is a run of consecutive bars sharing a section label
type Part struct {
	Section Section
	Bars    int
}

// SongForm is the fixed bar-level schedule of every piece
var SongForm = []Part{
	{SectionIntro, 4},
	{SectionVerse, 16},
	{SectionChorus, 8},
	{SectionVerse, 8},
	{SectionOutro, 4},
}

// Structure expands SongForm into one label per bar
func Structure() []Section {
	var bars []Section
	for _, part := range SongForm {
		for i := 0; i < part.Bars; i++ {
			bars = append(bars, part.Section)
		}
	}
	return bars
}
