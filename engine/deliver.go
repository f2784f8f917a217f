package engine

import (
	"github.com/dshills/keychord/command"
	"github.com/dshills/keychord/key"
)

// DeliverRawKeyName is the registration name of the pass-through
// command (the mangled form of DeliverRawKey).
const DeliverRawKeyName = "deliver-raw-key"

// RawKeyReceiver is implemented by targets that accept keystrokes not
// consumed by any binding.
type RawKeyReceiver interface {
	ReceiveRawKey(ev key.Event)
}

// DeliverRawKey is the pass-through command: it hands the triggering
// keystroke back to the target untouched. The engine registers it
// under wildcard owner and target signatures at construction, so every
// unregistered target is covered.
type DeliverRawKey struct {
	engine *Engine
}

// Run delivers the keystroke that triggered this command. Targets
// that are not RawKeyReceivers swallow it silently.
func (d *DeliverRawKey) Run(tgt command.Target) error {
	r, ok := tgt.(RawKeyReceiver)
	if !ok {
		return nil
	}
	r.ReceiveRawKey(d.engine.lastRaw)
	return nil
}

// OwnerSignatures declares compatibility with every owner.
func (d *DeliverRawKey) OwnerSignatures() []command.Signature {
	return []command.Signature{command.Wildcard()}
}

// TargetSignatures declares compatibility with every target.
func (d *DeliverRawKey) TargetSignatures() []command.Signature {
	return []command.Signature{command.Wildcard()}
}
