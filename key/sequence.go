package key

import "strings"

// Sequence is an ordered list of chords, eg. the two keystrokes of
// "<ctrl>+x <ctrl>+f".
type Sequence struct {
	chords []Chord
}

// NewSequence creates an empty sequence.
func NewSequence() *Sequence {
	return &Sequence{}
}

// FromChords creates a sequence from prebuilt chords. Raw modifier and
// key codes are accepted as-is; codes outside the key table serialize
// as "<Unknown>" but otherwise behave like any other chord.
func FromChords(chords ...Chord) *Sequence {
	s := &Sequence{chords: make([]Chord, len(chords))}
	copy(s.chords, chords)
	return s
}

// Append adds a chord to the end of the sequence.
func (s *Sequence) Append(c Chord) {
	s.chords = append(s.chords, c)
}

// Reset removes all chords.
func (s *Sequence) Reset() {
	s.chords = s.chords[:0]
}

// Len returns the number of chords.
func (s *Sequence) Len() int {
	return len(s.chords)
}

// At returns the chord at index i.
func (s *Sequence) At(i int) Chord {
	return s.chords[i]
}

// Chords returns a copy of the chord list.
func (s *Sequence) Chords() []Chord {
	out := make([]Chord, len(s.chords))
	copy(out, s.chords)
	return out
}

// Clone returns an independent copy of the sequence.
func (s *Sequence) Clone() *Sequence {
	return FromChords(s.chords...)
}

// Equals returns true if both sequences hold the same chords in the
// same order.
func (s *Sequence) Equals(other *Sequence) bool {
	if s.Len() != other.Len() {
		return false
	}
	for i, c := range s.chords {
		if other.chords[i] != c {
			return false
		}
	}
	return true
}

// String returns the canonical text form, chords joined by single
// spaces. Parsing the result of String on a table-known sequence
// yields an equal sequence.
func (s *Sequence) String() string {
	if len(s.chords) == 0 {
		return ""
	}
	parts := make([]string, len(s.chords))
	for i, c := range s.chords {
		parts[i] = c.String()
	}
	return strings.Join(parts, " ")
}
