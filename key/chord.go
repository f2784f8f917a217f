package key

// Chord is a single keystroke: a set of modifiers plus one symbolic
// key.
type Chord struct {
	Mods Modifier
	Key  Key
}

// NewChord creates a chord from a modifier set and a key code.
func NewChord(mods Modifier, k Key) Chord {
	return Chord{Mods: mods, Key: k}
}

// String returns the canonical chord text. Modifiers come first in the
// fixed order Ctrl, Alt, Meta, Keypad, GroupSwitch. Shift is folded
// into the key token when the table has a shifted symbol for it
// (KeyA with Shift renders "A", not "<Shift>+a"); otherwise it is
// rendered as an explicit "<Shift>+" prefix. Keys with no table entry
// render "<Unknown>".
func (c Chord) String() string {
	prefix := c.Mods.Without(ModShift).String()

	shift := c.Mods & ModShift
	if tok, ok := reverseKeyTable[tableEntry{shift, c.Key}]; ok {
		return prefix + tok
	}
	if shift != ModNone {
		if tok, ok := reverseKeyTable[tableEntry{ModNone, c.Key}]; ok {
			return prefix + "<Shift>+" + tok
		}
	}
	return prefix + unknownToken
}
