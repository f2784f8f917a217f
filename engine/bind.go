package engine

import (
	"errors"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/dshills/keychord/key"
	"github.com/dshills/keychord/keymap"
)

// Bind errors
var (
	ErrUnknownCommand = errors.New("command not registered")
	ErrNoLocalKeymap  = errors.New("target has no local keymap")
	ErrNotBound       = errors.New("key sequence not bound")
)

// BindGlobal binds a key sequence to a registered command in the
// global keymap. Local keymaps created earlier are unaffected.
func (e *Engine) BindGlobal(spec, cmdName string) error {
	seq, err := key.Parse(spec)
	if err != nil {
		return err
	}
	if !e.registry.IsRegistered(cmdName) {
		return fmt.Errorf("%w: %q", ErrUnknownCommand, cmdName)
	}
	e.global.Insert(seq, cmdName)
	e.log.WithFields(logrus.Fields{
		"sequence": seq.String(),
		"command":  cmdName,
	}).Debug("bound key sequence globally")
	return nil
}

// BindLocal binds a key sequence to a registered command in the
// target's local keymap only.
func (e *Engine) BindLocal(spec, cmdName string, tgt Target) error {
	km := tgt.LocalKeymap()
	if km == nil {
		return ErrNoLocalKeymap
	}
	seq, err := key.Parse(spec)
	if err != nil {
		return err
	}
	if !e.registry.IsRegistered(cmdName) {
		return fmt.Errorf("%w: %q", ErrUnknownCommand, cmdName)
	}
	km.Insert(seq, cmdName)
	return nil
}

// UnbindGlobal removes a complete binding from the global keymap.
func (e *Engine) UnbindGlobal(spec string) error {
	seq, err := key.Parse(spec)
	if err != nil {
		return err
	}
	if !e.global.Remove(seq) {
		return fmt.Errorf("%w: %q", ErrNotBound, seq.String())
	}
	return nil
}

// UnbindLocal removes a complete binding from the target's local
// keymap.
func (e *Engine) UnbindLocal(spec string, tgt Target) error {
	km := tgt.LocalKeymap()
	if km == nil {
		return ErrNoLocalKeymap
	}
	seq, err := key.Parse(spec)
	if err != nil {
		return err
	}
	if !km.Remove(seq) {
		return fmt.Errorf("%w: %q", ErrNotBound, seq.String())
	}
	return nil
}

// GlobalBindings enumerates the global keymap, sorted by sequence
// text.
func (e *Engine) GlobalBindings() []keymap.Binding {
	return e.global.Bindings()
}

// LoadBindings reads a JSON bindings file and applies each entry as a
// global bind. The file is rejected as a whole on the first entry
// whose command is not registered.
func (e *Engine) LoadBindings(path string) error {
	bindings, err := keymap.LoadFile(path)
	if err != nil {
		return err
	}
	for _, b := range bindings {
		if !e.registry.IsRegistered(b.Command) {
			return fmt.Errorf("%w: %q", ErrUnknownCommand, b.Command)
		}
	}
	for _, b := range bindings {
		e.global.Insert(b.Seq, b.Command)
	}
	return nil
}
