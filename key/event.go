package key

import "time"

// Event is a raw keystroke as delivered by a host: modifier state,
// key code, the text the keystroke produced (if any), and a
// timestamp.
type Event struct {
	Mods Modifier
	Key  Key
	Text rune
	Time time.Time
}

// NewEvent creates an event with the current time.
func NewEvent(mods Modifier, k Key, text rune) Event {
	return Event{Mods: mods, Key: k, Text: text, Time: time.Now()}
}

// EventForChord creates a synthetic event reproducing the given chord.
// Used for key emulation.
func EventForChord(c Chord) Event {
	return Event{Mods: c.Mods, Key: c.Key, Time: time.Now()}
}

// Chord returns the chord this event contributes to a key sequence.
func (e Event) Chord() Chord {
	return Chord{Mods: e.Mods, Key: e.Key}
}

// IsModifierOnly returns true if the event is a bare press of a
// modifier key (Shift, Control, Meta, Alt, AltGr).
func (e Event) IsModifierOnly() bool {
	return e.Key.IsModifierKey()
}

// String returns the canonical chord text of the event.
func (e Event) String() string {
	return e.Chord().String()
}
