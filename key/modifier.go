package key

import "strings"

// Modifier represents keyboard modifier keys as a bitmask.
type Modifier uint8

const (
	// ModNone indicates no modifiers.
	ModNone Modifier = 0

	// ModShift indicates the Shift key.
	ModShift Modifier = 1 << iota

	// ModCtrl indicates the Control key.
	ModCtrl

	// ModAlt indicates the Alt key (Option on macOS).
	ModAlt

	// ModMeta indicates the Meta key (Cmd on macOS, Win on Windows).
	ModMeta

	// ModKeypad indicates a key on the numeric keypad.
	ModKeypad

	// ModGroupSwitch indicates the X11 group-switch modifier (AltGr).
	ModGroupSwitch
)

// Has returns true if m contains the specified modifier.
func (m Modifier) Has(mod Modifier) bool {
	return m&mod != 0
}

// HasShift returns true if Shift is pressed.
func (m Modifier) HasShift() bool {
	return m.Has(ModShift)
}

// HasCtrl returns true if Control is pressed.
func (m Modifier) HasCtrl() bool {
	return m.Has(ModCtrl)
}

// HasAlt returns true if Alt is pressed.
func (m Modifier) HasAlt() bool {
	return m.Has(ModAlt)
}

// HasMeta returns true if Meta is pressed.
func (m Modifier) HasMeta() bool {
	return m.Has(ModMeta)
}

// With returns a new Modifier with the specified modifier added.
func (m Modifier) With(mod Modifier) Modifier {
	return m | mod
}

// Without returns a new Modifier with the specified modifier removed.
func (m Modifier) Without(mod Modifier) Modifier {
	return m &^ mod
}

// IsEmpty returns true if no modifiers are set.
func (m Modifier) IsEmpty() bool {
	return m == ModNone
}

// String returns the chord-prefix form of the modifiers in canonical
// order, eg. "<Ctrl>+<Alt>+". Shift is rendered last because the chord
// serializer usually folds it into the key token instead.
func (m Modifier) String() string {
	if m == ModNone {
		return ""
	}

	var b strings.Builder
	if m.HasCtrl() {
		b.WriteString("<Ctrl>+")
	}
	if m.HasAlt() {
		b.WriteString("<Alt>+")
	}
	if m.HasMeta() {
		b.WriteString("<Meta>+")
	}
	if m.Has(ModKeypad) {
		b.WriteString("<Keypad>+")
	}
	if m.Has(ModGroupSwitch) {
		b.WriteString("<GroupSwitch>+")
	}
	if m.HasShift() {
		b.WriteString("<Shift>+")
	}
	return b.String()
}

// modifierNameMap maps bracketed modifier tokens (upper case) to
// Modifier values. Tokens are upper-cased before lookup, so the names
// are case-insensitive in chord text.
var modifierNameMap = map[string]Modifier{
	"<NONE>":        ModNone,
	"<CTRL>":        ModCtrl,
	"<CONTROL>":     ModCtrl,
	"<ALT>":         ModAlt,
	"<META>":        ModMeta,
	"<SHIFT>":       ModShift,
	"<KEYPAD>":      ModKeypad,
	"<GROUPSWITCH>": ModGroupSwitch,
}

// ModifierFromName returns the Modifier for a bracketed token like
// "<ctrl>" (case-insensitive). The second return value reports whether
// the name is known.
func ModifierFromName(name string) (Modifier, bool) {
	m, ok := modifierNameMap[strings.ToUpper(name)]
	return m, ok
}
