// Package command implements the command registry: named commands
// registered under owner and target signatures, with wildcard entries
// and tiered resolution.
package command

import (
	"reflect"
	"strings"
	"unicode"
)

// Target is what a command runs against. Owners always have a
// signature; the target itself may not report one, in which case only
// wildcard-target registrations can resolve to it.
type Target interface {
	OwnerSignature() Signature
	TargetSignature() (Signature, bool)
}

// Command is an executable editor command. Run must not block: work
// that waits on anything external belongs in the host, not here.
type Command interface {
	Run(tgt Target) error
}

// Func adapts a function to the Command interface.
type Func func(Target) error

// Run calls f.
func (f Func) Run(tgt Target) error {
	return f(tgt)
}

// Named is implemented by commands that choose their own registration
// name, overriding the mangled type name.
type Named interface {
	CommandName() string
}

// Signed is implemented by commands that carry their own owner and
// target signatures, enabling RegisterCommand.
type Signed interface {
	OwnerSignatures() []Signature
	TargetSignatures() []Signature
}

// Mangle derives a command name from a CamelCase type name: a dash is
// inserted before every capital and the result is lower-cased, so
// "KillLine" becomes "kill-line" and "ThisIsAMacro" becomes
// "this-is-a-macro".
func Mangle(typeName string) string {
	var b strings.Builder
	for _, r := range typeName {
		if unicode.IsUpper(r) {
			b.WriteByte('-')
			b.WriteRune(unicode.ToLower(r))
		} else {
			b.WriteRune(r)
		}
	}
	return strings.TrimPrefix(b.String(), "-")
}

// NameOf returns the registration name for a command: its Named name
// if it has one, otherwise its mangled type name. Returns "" for
// unnamed types such as bare Func values.
func NameOf(cmd Command) string {
	if n, ok := cmd.(Named); ok {
		return n.CommandName()
	}
	t := reflect.TypeOf(cmd)
	for t != nil && t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	if t == nil || t.Kind() == reflect.Func || t.Name() == "" {
		return ""
	}
	return Mangle(t.Name())
}
