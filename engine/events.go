package engine

import "github.com/dshills/keychord/key"

// EventKind classifies engine observations.
type EventKind uint8

const (
	// EventKeyPressed fires for every keystroke fed to the engine,
	// before matching.
	EventKeyPressed EventKind = iota

	// EventKeyParsed fires after a keystroke has been fully handled.
	EventKeyParsed

	// EventSequencePartial fires when the current sequence is a strict
	// prefix of at least one binding.
	EventSequencePartial

	// EventSequenceComplete fires when the current sequence resolved
	// to a bound command.
	EventSequenceComplete

	// EventSequenceInvalid fires when the current sequence matches no
	// binding on a registered target.
	EventSequenceInvalid

	// EventAborted fires when the abort chord cancelled the current
	// sequence and flushed the queues.
	EventAborted

	// EventCommandStart fires immediately before a queued command
	// runs.
	EventCommandStart

	// EventCommandFinished fires after a queued command returned
	// without error.
	EventCommandFinished

	// EventCommandError fires when a queued command returned an error
	// or panicked.
	EventCommandError

	// EventInternalError reports a broken engine invariant. It should
	// never fire; observers are expected to surface it prominently.
	EventInternalError
)

var eventKindNames = map[EventKind]string{
	EventKeyPressed:       "key-pressed",
	EventKeyParsed:        "key-parsed",
	EventSequencePartial:  "sequence-partial",
	EventSequenceComplete: "sequence-complete",
	EventSequenceInvalid:  "sequence-invalid",
	EventAborted:          "aborted",
	EventCommandStart:     "command-start",
	EventCommandFinished:  "command-finished",
	EventCommandError:     "command-error",
	EventInternalError:    "internal-error",
}

// String returns the kind name.
func (k EventKind) String() string {
	if n, ok := eventKindNames[k]; ok {
		return n
	}
	return "unknown"
}

// Event is one engine observation.
type Event struct {
	Kind    EventKind
	Seq     *key.Sequence // snapshot of the sequence at emission, may be nil
	Command string        // command name for Complete and lifecycle kinds
	Target  Target        // target in focus when the event fired
	Err     error         // set for CommandError and InternalError
}

// Observer receives engine observations. Notify is called on the
// dispatch goroutine and must return quickly.
type Observer interface {
	Notify(ev Event)
}

// ObserverFunc adapts a function to the Observer interface.
type ObserverFunc func(Event)

// Notify calls f.
func (f ObserverFunc) Notify(ev Event) {
	f(ev)
}

// Observe adds an observer. Observers are notified in registration
// order.
func (e *Engine) Observe(o Observer) {
	e.observers = append(e.observers, o)
}

func (e *Engine) emit(ev Event) {
	for _, o := range e.observers {
		o.Notify(ev)
	}
}
