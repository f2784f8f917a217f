package key

// unknownToken is emitted for key codes with no table entry.
const unknownToken = "<Unknown>"

// tableEntry pairs the Shift component implied by a token with its
// key code. Only ModNone and ModShift ever appear in the entry.
type tableEntry struct {
	mods Modifier
	key  Key
}

// keyTable maps chord key tokens to their (implied Shift, key) pair.
// Single-character tokens are case-sensitive; bracketed tokens are
// stored upper case and upper-cased before lookup.
var keyTable = map[string]tableEntry{
	"0": {ModNone, Key0},
	"1": {ModNone, Key1},
	"2": {ModNone, Key2},
	"3": {ModNone, Key3},
	"4": {ModNone, Key4},
	"5": {ModNone, Key5},
	"6": {ModNone, Key6},
	"7": {ModNone, Key7},
	"8": {ModNone, Key8},
	"9": {ModNone, Key9},

	"a": {ModNone, KeyA}, "A": {ModShift, KeyA},
	"b": {ModNone, KeyB}, "B": {ModShift, KeyB},
	"c": {ModNone, KeyC}, "C": {ModShift, KeyC},
	"d": {ModNone, KeyD}, "D": {ModShift, KeyD},
	"e": {ModNone, KeyE}, "E": {ModShift, KeyE},
	"f": {ModNone, KeyF}, "F": {ModShift, KeyF},
	"g": {ModNone, KeyG}, "G": {ModShift, KeyG},
	"h": {ModNone, KeyH}, "H": {ModShift, KeyH},
	"i": {ModNone, KeyI}, "I": {ModShift, KeyI},
	"j": {ModNone, KeyJ}, "J": {ModShift, KeyJ},
	"k": {ModNone, KeyK}, "K": {ModShift, KeyK},
	"l": {ModNone, KeyL}, "L": {ModShift, KeyL},
	"m": {ModNone, KeyM}, "M": {ModShift, KeyM},
	"n": {ModNone, KeyN}, "N": {ModShift, KeyN},
	"o": {ModNone, KeyO}, "O": {ModShift, KeyO},
	"p": {ModNone, KeyP}, "P": {ModShift, KeyP},
	"q": {ModNone, KeyQ}, "Q": {ModShift, KeyQ},
	"r": {ModNone, KeyR}, "R": {ModShift, KeyR},
	"s": {ModNone, KeyS}, "S": {ModShift, KeyS},
	"t": {ModNone, KeyT}, "T": {ModShift, KeyT},
	"u": {ModNone, KeyU}, "U": {ModShift, KeyU},
	"v": {ModNone, KeyV}, "V": {ModShift, KeyV},
	"w": {ModNone, KeyW}, "W": {ModShift, KeyW},
	"x": {ModNone, KeyX}, "X": {ModShift, KeyX},
	"y": {ModNone, KeyY}, "Y": {ModShift, KeyY},
	"z": {ModNone, KeyZ}, "Z": {ModShift, KeyZ},

	"'":  {ModNone, KeyApostrophe},
	",":  {ModNone, KeyComma},
	"-":  {ModNone, KeyMinus},
	".":  {ModNone, KeyPeriod},
	"/":  {ModNone, KeySlash},
	";":  {ModNone, KeySemicolon},
	"=":  {ModNone, KeyEqual},
	"[":  {ModNone, KeyBracketLeft},
	"\\": {ModNone, KeyBackslash},
	"]":  {ModNone, KeyBracketRight},
	"`":  {ModNone, KeyGrave},

	"!":  {ModShift, KeyExclam},
	"\"": {ModShift, KeyQuoteDbl},
	"#":  {ModShift, KeyNumberSign},
	"$":  {ModShift, KeyDollar},
	"%":  {ModShift, KeyPercent},
	"&":  {ModShift, KeyAmpersand},
	"(":  {ModShift, KeyParenLeft},
	")":  {ModShift, KeyParenRight},
	"*":  {ModShift, KeyAsterisk},
	"+":  {ModShift, KeyPlus},
	":":  {ModShift, KeyColon},
	"<":  {ModShift, KeyLess},
	">":  {ModShift, KeyGreater},
	"?":  {ModShift, KeyQuestion},
	"@":  {ModShift, KeyAt},
	"^":  {ModShift, KeyCaret},
	"_":  {ModShift, KeyUnderscore},
	"{":  {ModShift, KeyBraceLeft},
	"|":  {ModShift, KeyBar},
	"}":  {ModShift, KeyBraceRight},
	"~":  {ModShift, KeyTilde},

	"<RETURN>":    {ModNone, KeyReturn},
	"<ENTER>":     {ModNone, KeyEnter},
	"<TAB>":       {ModNone, KeyTab},
	"<SPACE>":     {ModNone, KeySpace},
	"<COLON>":     {ModNone, KeyColon},
	"<BACKSPACE>": {ModNone, KeyBackspace},
	"<ESC>":       {ModNone, KeyEscape},
	"<ESCAPE>":    {ModNone, KeyEscape},
	"<DEL>":       {ModNone, KeyDelete},
	"<DELETE>":    {ModNone, KeyDelete},
	"<INS>":       {ModNone, KeyInsert},
	"<INSERT>":    {ModNone, KeyInsert},
	"<HOME>":      {ModNone, KeyHome},
	"<END>":       {ModNone, KeyEnd},
	"<PGUP>":      {ModNone, KeyPageUp},
	"<PGDOWN>":    {ModNone, KeyPageDown},
	"<UP>":        {ModNone, KeyUp},
	"<DOWN>":      {ModNone, KeyDown},
	"<LEFT>":      {ModNone, KeyLeft},
	"<RIGHT>":     {ModNone, KeyRight},

	"<F1>":  {ModNone, KeyF1},
	"<F2>":  {ModNone, KeyF2},
	"<F3>":  {ModNone, KeyF3},
	"<F4>":  {ModNone, KeyF4},
	"<F5>":  {ModNone, KeyF5},
	"<F6>":  {ModNone, KeyF6},
	"<F7>":  {ModNone, KeyF7},
	"<F8>":  {ModNone, KeyF8},
	"<F9>":  {ModNone, KeyF9},
	"<F10>": {ModNone, KeyF10},
	"<F11>": {ModNone, KeyF11},
	"<F12>": {ModNone, KeyF12},
}

// reverseKeyTable maps (implied Shift, key) pairs back to their chord
// token. Alias tokens for the same pair resolve to the canonical one.
var reverseKeyTable = make(map[tableEntry]string, len(keyTable))

// reverseAliases lists the preferred token where several tokens share
// a table entry.
var reverseAliases = map[tableEntry]string{
	{ModNone, KeyEscape}: "<ESC>",
	{ModNone, KeyDelete}: "<DEL>",
	{ModNone, KeyInsert}: "<INS>",
}

func init() {
	for tok, entry := range keyTable {
		if canon, ok := reverseAliases[entry]; ok && tok != canon {
			continue
		}
		reverseKeyTable[entry] = tok
	}
}

// KeyFromToken resolves a chord key token to its implied Shift
// modifier and key code. Bracketed tokens must already be upper case;
// the parser normalizes them before lookup.
func KeyFromToken(tok string) (Modifier, Key, bool) {
	entry, ok := keyTable[tok]
	if !ok {
		return ModNone, KeyNone, false
	}
	return entry.mods, entry.key, true
}
