package key

// Key identifies a symbolic key. The alphabet is closed: chords refer
// to keys by the tokens in the key table, and raw key codes outside
// the table serialize as "<Unknown>".
type Key uint16

const (
	// KeyNone indicates no key.
	KeyNone Key = iota

	// Letters.
	KeyA
	KeyB
	KeyC
	KeyD
	KeyE
	KeyF
	KeyG
	KeyH
	KeyI
	KeyJ
	KeyK
	KeyL
	KeyM
	KeyN
	KeyO
	KeyP
	KeyQ
	KeyR
	KeyS
	KeyT
	KeyU
	KeyV
	KeyW
	KeyX
	KeyY
	KeyZ

	// Digits.
	Key0
	Key1
	Key2
	Key3
	Key4
	Key5
	Key6
	Key7
	Key8
	Key9

	// Punctuation, unshifted row.
	KeyApostrophe
	KeyComma
	KeyMinus
	KeyPeriod
	KeySlash
	KeySemicolon
	KeyEqual
	KeyBracketLeft
	KeyBackslash
	KeyBracketRight
	KeyGrave

	// Punctuation, shifted row.
	KeyExclam
	KeyQuoteDbl
	KeyNumberSign
	KeyDollar
	KeyPercent
	KeyAmpersand
	KeyParenLeft
	KeyParenRight
	KeyAsterisk
	KeyPlus
	KeyColon
	KeyLess
	KeyGreater
	KeyQuestion
	KeyAt
	KeyCaret
	KeyUnderscore
	KeyBraceLeft
	KeyBar
	KeyBraceRight
	KeyTilde

	// Named keys.
	KeyReturn
	KeyEnter
	KeyTab
	KeySpace
	KeyBackspace
	KeyEscape
	KeyDelete
	KeyInsert
	KeyHome
	KeyEnd
	KeyPageUp
	KeyPageDown
	KeyUp
	KeyDown
	KeyLeft
	KeyRight

	// Function keys.
	KeyF1
	KeyF2
	KeyF3
	KeyF4
	KeyF5
	KeyF6
	KeyF7
	KeyF8
	KeyF9
	KeyF10
	KeyF11
	KeyF12

	// Modifier keys as they arrive in raw key events. A press of one
	// of these on its own never extends a key sequence.
	KeyShiftKey
	KeyControlKey
	KeyMetaKey
	KeyAltKey
	KeyAltGrKey
)

// IsModifierKey returns true if k is one of the bare modifier keys.
func (k Key) IsModifierKey() bool {
	switch k {
	case KeyShiftKey, KeyControlKey, KeyMetaKey, KeyAltKey, KeyAltGrKey:
		return true
	}
	return false
}

// String returns the unshifted chord token for k, or "<Unknown>" if k
// has no table entry.
func (k Key) String() string {
	if tok, ok := reverseKeyTable[tableEntry{ModNone, k}]; ok {
		return tok
	}
	return unknownToken
}
