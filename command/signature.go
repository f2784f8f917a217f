package command

import (
	"errors"
	"fmt"
	"strings"
)

// ErrBadSignature is returned for signatures that are empty or embed
// the wildcard marker.
var ErrBadSignature = errors.New("invalid signature")

const wildcardText = "*"

// Signature names a compatibility class of owners or targets. It is
// either concrete (a non-empty label) or the wildcard, which matches
// every concrete signature. The zero value is invalid.
type Signature struct {
	value string
}

// Wildcard returns the signature matching any concrete signature.
func Wildcard() Signature {
	return Signature{wildcardText}
}

// NewSignature creates a concrete signature. The text must be
// non-empty and must not contain the wildcard marker.
func NewSignature(s string) (Signature, error) {
	if s == "" {
		return Signature{}, fmt.Errorf("%w: empty", ErrBadSignature)
	}
	if strings.Contains(s, wildcardText) {
		return Signature{}, fmt.Errorf("%w: %q contains %q", ErrBadSignature, s, wildcardText)
	}
	return Signature{value: s}, nil
}

// MustSignature is like NewSignature but panics on error.
func MustSignature(s string) Signature {
	sig, err := NewSignature(s)
	if err != nil {
		panic(fmt.Sprintf("command: MustSignature(%q): %v", s, err))
	}
	return sig
}

// IsWildcard returns true for the wildcard signature.
func (s Signature) IsWildcard() bool {
	return s.value == wildcardText
}

// IsZero returns true for the invalid zero value.
func (s Signature) IsZero() bool {
	return s.value == ""
}

// String returns the signature text, "*" for the wildcard.
func (s Signature) String() string {
	return s.value
}
