// Package engine implements the per-keystroke dispatch state machine:
// it accumulates chords into the current key sequence, matches them
// against the focused target's keymap, and queues bound commands for
// deferred execution.
package engine

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/dshills/keychord/command"
	"github.com/dshills/keychord/key"
	"github.com/dshills/keychord/keymap"
)

// DefaultAbortChord cancels the current key sequence.
const DefaultAbortChord = "<ctrl>+g"

// ErrBadAbortChord is returned by New when the configured abort chord
// is not exactly one parseable chord.
var ErrBadAbortChord = errors.New("abort chord must be a single chord")

// Target is a focusable unit the engine dispatches against: it has an
// owner signature, possibly a signature of its own, and possibly a
// local keymap. A nil LocalKeymap means the target never registered
// with the engine; such targets are matched against the global keymap
// and unmatched keys are passed through to them raw.
type Target interface {
	command.Target
	LocalKeymap() *keymap.Map
}

// Config configures an Engine.
type Config struct {
	// Logger receives structured engine logs. Defaults to
	// logrus.StandardLogger().
	Logger *logrus.Logger

	// AbortChord cancels the current sequence and flushes the queues.
	// Defaults to DefaultAbortChord.
	AbortChord string
}

// DefaultConfig returns the default engine configuration.
func DefaultConfig() Config {
	return Config{AbortChord: DefaultAbortChord}
}

// Engine is the dispatch state machine. It is confined to the host's
// event goroutine: Feed, Drain, and the bind surface must all be
// called from the same goroutine.
type Engine struct {
	registry *command.Registry
	global   *keymap.Map
	current  *key.Sequence
	abort    key.Chord

	// runCommands gates enqueueing. While false, complete sequences
	// and pass-through deliveries are parsed but not queued.
	runCommands bool

	cmdQueue    []queuedCommand
	replayQueue []key.Event

	// lastSeq and lastRaw describe the keystrokes that triggered the
	// currently running command.
	lastSeq *key.Sequence
	lastRaw key.Event

	observers []Observer
	log       *logrus.Logger
}

// New creates an engine with an empty global keymap and a fresh
// registry holding only the pass-through delivery command.
func New(cfg Config) (*Engine, error) {
	log := cfg.Logger
	if log == nil {
		log = logrus.StandardLogger()
	}

	abortSpec := cfg.AbortChord
	if abortSpec == "" {
		abortSpec = DefaultAbortChord
	}
	abortSeq, err := key.Parse(abortSpec)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBadAbortChord, err)
	}
	if abortSeq.Len() != 1 {
		return nil, fmt.Errorf("%w: %q", ErrBadAbortChord, abortSpec)
	}

	e := &Engine{
		registry:    command.NewRegistry(),
		global:      keymap.New(),
		current:     key.NewSequence(),
		abort:       abortSeq.At(0),
		runCommands: true,
		log:         log,
	}
	if _, err := e.registry.RegisterCommand(&DeliverRawKey{engine: e}, true); err != nil {
		return nil, err
	}
	return e, nil
}

// Registry returns the engine's command registry.
func (e *Engine) Registry() *command.Registry {
	return e.registry
}

// CurrentSequence returns a snapshot of the partially entered
// sequence.
func (e *Engine) CurrentSequence() *key.Sequence {
	return e.current.Clone()
}

// LastSequence returns a snapshot of the sequence that triggered the
// currently running command, nil outside a command run.
func (e *Engine) LastSequence() *key.Sequence {
	if e.lastSeq == nil {
		return nil
	}
	return e.lastSeq.Clone()
}

// Registration attaches a target to the engine: a unique ID plus a
// local keymap seeded as a deep copy of the global map. Later global
// binds do not appear in it.
type Registration struct {
	ID     string
	Keymap *keymap.Map
}

// NewRegistration creates a registration snapshotting the current
// global keymap.
func (e *Engine) NewRegistration() *Registration {
	return &Registration{
		ID:     uuid.NewString(),
		Keymap: e.global.Clone(),
	}
}

// Feed advances the state machine by one keystroke against the given
// focus target. Bound commands are queued, not run; call Drain to
// execute them.
func (e *Engine) Feed(ev key.Event, tgt Target) {
	e.emit(Event{Kind: EventKeyPressed, Target: tgt})

	// A modifier on its own never extends the sequence.
	if ev.IsModifierOnly() {
		return
	}

	chord := ev.Chord()
	if chord == e.abort {
		e.abortSequence(tgt)
		e.emit(Event{Kind: EventKeyParsed, Target: tgt})
		return
	}

	e.current.Append(chord)

	km := tgt.LocalKeymap()
	registered := km != nil
	if km == nil {
		km = e.global
	}

	name, res := km.Match(e.current)
	switch res {
	case keymap.MatchIncomplete:
		e.emit(Event{Kind: EventSequencePartial, Seq: e.current.Clone(), Target: tgt})

	case keymap.MatchBound:
		if e.runCommands {
			e.enqueue(queuedCommand{name: name, target: tgt, seq: e.current.Clone(), raw: ev})
		}
		e.emit(Event{Kind: EventSequenceComplete, Seq: e.current.Clone(), Command: name, Target: tgt})
		e.current.Reset()

	case keymap.MatchInvalid:
		if registered {
			e.log.WithFields(logrus.Fields{
				"sequence": e.current.String(),
			}).Warn("no command bound to key sequence")
			e.emit(Event{Kind: EventSequenceInvalid, Seq: e.current.Clone(), Target: tgt})
		} else if e.runCommands {
			// Unregistered targets get the keystroke back untouched.
			e.enqueue(queuedCommand{name: DeliverRawKeyName, target: tgt, seq: e.current.Clone(), raw: ev})
		}
		e.current.Reset()
	}

	e.emit(Event{Kind: EventKeyParsed, Target: tgt})
}

// abortSequence implements the abort chord: the pending sequence and
// both queues are discarded and command processing is switched back
// on.
func (e *Engine) abortSequence(tgt Target) {
	e.current.Reset()
	e.cmdQueue = e.cmdQueue[:0]
	e.replayQueue = e.replayQueue[:0]
	e.runCommands = true
	e.log.Debug("key sequence aborted")
	e.emit(Event{Kind: EventAborted, Target: tgt})
}

// EnableCommandProcessing turns command execution back on and resets
// the current sequence.
func (e *Engine) EnableCommandProcessing() {
	e.runCommands = true
	e.current.Reset()
}

// DisableCommandProcessing stops complete sequences from being
// queued. Keys are still parsed and the current sequence keeps
// advancing.
func (e *Engine) DisableCommandProcessing() {
	e.runCommands = false
}

// CommandProcessingEnabled reports whether complete sequences are
// queued for execution.
func (e *Engine) CommandProcessingEnabled() bool {
	return e.runCommands
}
