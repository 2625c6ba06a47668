package midinotes

import (
	"sort"
)

// Sorts notes by start time, then by note number, keeping the emission order
// of notes that start together on the same key.
func SortNotes(notes []Note) {
	sort.SliceStable(notes, func(i, j int) bool {
		if notes[i].Start != notes[j].Start {
			return notes[i].Start < notes[j].Start
		}
		return notes[i].Number < notes[j].Number
	})
}

// Describes the area covered by a list of notes.
type Extent struct {
	// The latest time at which any note stops sounding.
	End Time
	// The lowest and highest note numbers used. Both are 0 if there are no
	// notes.
	Lowest  NoteNumber
	Highest NoteNumber
}

// Returns the extent of the given notes.
func NoteExtent(notes []Note) Extent {
	if len(notes) == 0 {
		return Extent{}
	}
	toReturn := Extent{
		Lowest:  notes[0].Number,
		Highest: notes[0].Number,
	}
	for i := range notes {
		n := &notes[i]
		if n.End() > toReturn.End {
			toReturn.End = n.End()
		}
		if n.Number < toReturn.Lowest {
			toReturn.Lowest = n.Number
		}
		if n.Number > toReturn.Highest {
			toReturn.Highest = n.Number
		}
	}
	return toReturn
}
