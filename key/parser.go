package key

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
)

// Parse errors
var (
	ErrEmptySequence   = errors.New("empty key sequence")
	ErrMalformedChord  = errors.New("malformed chord token")
	ErrUnknownModifier = errors.New("unknown modifier name")
	ErrUnknownKey      = errors.New("unknown key name")
)

var bracketGroupRe = regexp.MustCompile(`<[^<>]*>`)

// Parse parses the text form of a key sequence into a Sequence.
//
// The grammar: chord tokens separated by whitespace, each token zero
// to two "<modifier>+" prefixes followed by one key token. Bracketed
// names are case-insensitive; single characters are case-sensitive,
// and shifted symbols ("A", "&") carry an implicit Shift modifier.
//
//	Parse("<ctrl>+x <ctrl>+f")
//	Parse("<ctrl>+<alt>+<space>")
//	Parse("x")
func Parse(spec string) (*Sequence, error) {
	tokens := strings.Fields(spec)
	if len(tokens) == 0 {
		return nil, ErrEmptySequence
	}

	seq := NewSequence()
	for _, tok := range tokens {
		chord, err := parseChordToken(tok)
		if err != nil {
			return nil, err
		}
		seq.Append(chord)
	}
	return seq, nil
}

// MustParse is like Parse but panics on error. Intended for
// compile-time constant sequences.
func MustParse(spec string) *Sequence {
	seq, err := Parse(spec)
	if err != nil {
		panic(fmt.Sprintf("key: MustParse(%q): %v", spec, err))
	}
	return seq
}

// parseChordToken splits one chord token into its modifier prefixes
// and key token. The split is driven by the number of bracketed groups
// and '+' separators, which disambiguates keys that are themselves
// '+' or bracketed names (eg. "<alt>++", "<ctrl>+<space>").
func parseChordToken(tok string) (Chord, error) {
	groups := len(bracketGroupRe.FindAllString(tok, -1))
	plus := strings.Count(tok, "+")

	var modToks []string
	var keyTok string

	switch groups {
	case 0:
		// No bracketed group means no modifier; the key stands alone.
		keyTok = tok
	case 1:
		if plus == 0 {
			// A bracketed key without modifiers, eg. "<space>".
			keyTok = tok
		} else {
			// One modifier and a plain key, eg. "<ctrl>+f", "<alt>++".
			idx := strings.Index(tok, "+")
			modToks = []string{tok[:idx]}
			keyTok = tok[idx+1:]
		}
	case 2:
		// Either one modifier with a bracketed key ("<ctrl>+<space>")
		// or two modifiers with a plain key ("<ctrl>+<alt>+f").
		switch {
		case plus == 0 || plus > 3:
			return Chord{}, fmt.Errorf("%w: %q", ErrMalformedChord, tok)
		case plus == 1:
			idx := strings.Index(tok, "+")
			modToks = []string{tok[:idx]}
			keyTok = tok[idx+1:]
		default:
			idx1 := strings.Index(tok, "+")
			idx2 := idx1 + 1 + strings.Index(tok[idx1+1:], "+")
			modToks = []string{tok[:idx1], tok[idx1+1 : idx2]}
			keyTok = tok[idx2+1:]
		}
	case 3:
		// Two modifiers with a bracketed key ("<ctrl>+<alt>+<space>").
		if plus != 2 {
			return Chord{}, fmt.Errorf("%w: %q", ErrMalformedChord, tok)
		}
		idx1 := strings.Index(tok, "+")
		idx2 := idx1 + 1 + strings.Index(tok[idx1+1:], "+")
		modToks = []string{tok[:idx1], tok[idx1+1 : idx2]}
		keyTok = tok[idx2+1:]
	default:
		return Chord{}, fmt.Errorf("%w: %q", ErrMalformedChord, tok)
	}

	var mods Modifier
	for _, mt := range modToks {
		m, ok := ModifierFromName(mt)
		if !ok {
			return Chord{}, fmt.Errorf("%w: %q in %q", ErrUnknownModifier, mt, tok)
		}
		mods = mods.With(m)
	}

	if keyTok == "" {
		return Chord{}, fmt.Errorf("%w: %q", ErrMalformedChord, tok)
	}
	if strings.HasPrefix(keyTok, "<") && strings.HasSuffix(keyTok, ">") {
		keyTok = strings.ToUpper(keyTok)
	}
	implied, k, ok := KeyFromToken(keyTok)
	if !ok {
		return Chord{}, fmt.Errorf("%w: %q in %q", ErrUnknownKey, keyTok, tok)
	}

	return Chord{Mods: mods.With(implied), Key: k}, nil
}
