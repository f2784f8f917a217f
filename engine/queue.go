package engine

import (
	"errors"
	"fmt"
	"runtime"

	"github.com/sirupsen/logrus"

	"github.com/dshills/keychord/command"
	"github.com/dshills/keychord/key"
)

// queuedCommand is one deferred command run: the name is resolved
// against the target's signatures at execution time, not enqueue time.
type queuedCommand struct {
	name   string
	target Target
	seq    *key.Sequence
	raw    key.Event
}

// Host is the application side of the drain loop. Refresh runs
// between queue items so the display reflects each command's effects
// before the next one starts; FocusedTarget receives replayed keys.
type Host interface {
	Refresh()
	FocusedTarget() Target
}

func (e *Engine) enqueue(qc queuedCommand) {
	e.cmdQueue = append(e.cmdQueue, qc)
}

// PendingCommands returns the number of queued command runs.
func (e *Engine) PendingCommands() int {
	return len(e.cmdQueue)
}

// PendingReplays returns the number of queued replay keystrokes.
func (e *Engine) PendingReplays() int {
	return len(e.replayQueue)
}

// EmulateKeys parses spec and appends one synthetic keystroke per
// chord to the replay queue. The keys are fed through the engine
// against the host's focused target during Drain, after the command
// queue is empty.
func (e *Engine) EmulateKeys(spec string) error {
	seq, err := key.Parse(spec)
	if err != nil {
		return err
	}
	for _, chord := range seq.Chords() {
		e.replayQueue = append(e.replayQueue, key.EventForChord(chord))
	}
	return nil
}

// Drain runs the deferred work: while either queue is non-empty it
// calls host.Refresh() and then pops exactly one item, commands
// before replayed keys. Replayed keys go through Feed and may queue
// further commands. A final Refresh runs once both queues are empty.
func (e *Engine) Drain(host Host) {
	for len(e.cmdQueue) > 0 || len(e.replayQueue) > 0 {
		host.Refresh()

		if len(e.cmdQueue) > 0 {
			qc := e.cmdQueue[0]
			e.cmdQueue = e.cmdQueue[1:]
			e.runQueued(qc)
			continue
		}

		ev := e.replayQueue[0]
		e.replayQueue = e.replayQueue[1:]
		e.Feed(ev, host.FocusedTarget())
	}
	host.Refresh()
}

// runQueued resolves and runs one queued command. Resolution misses
// are warnings: the binding may legitimately outlive the registration
// that matched at bind time. Run failures re-enable command processing
// so an error inside a command can never wedge the engine.
func (e *Engine) runQueued(qc queuedCommand) {
	owner := qc.target.OwnerSignature()
	tsig, hasTarget := qc.target.TargetSignature()

	cmd, err := e.registry.Resolve(qc.name, owner, tsig, hasTarget)
	if err != nil {
		if errors.Is(err, command.ErrInvariant) {
			e.log.WithError(err).WithField("command", qc.name).Error("command resolution invariant violated")
			e.emit(Event{Kind: EventInternalError, Command: qc.name, Target: qc.target, Err: err})
			return
		}
		e.log.WithFields(logrus.Fields{
			"command": qc.name,
			"owner":   owner.String(),
			"target":  tsig.String(),
		}).Warn("no compatible command for target")
		return
	}

	e.lastSeq = qc.seq
	e.lastRaw = qc.raw
	defer func() {
		e.lastSeq = nil
		e.lastRaw = key.Event{}
	}()

	e.emit(Event{Kind: EventCommandStart, Seq: qc.seq, Command: qc.name, Target: qc.target})

	if err := runWithRecovery(cmd, qc.target); err != nil {
		e.EnableCommandProcessing()
		e.log.WithError(err).WithField("command", qc.name).Error("command failed")
		e.emit(Event{Kind: EventCommandError, Seq: qc.seq, Command: qc.name, Target: qc.target, Err: err})
		return
	}

	e.emit(Event{Kind: EventCommandFinished, Seq: qc.seq, Command: qc.name, Target: qc.target})
}

// runWithRecovery converts a command panic into an error carrying the
// stack.
func runWithRecovery(cmd command.Command, tgt Target) (err error) {
	defer func() {
		if r := recover(); r != nil {
			buf := make([]byte, 4096)
			n := runtime.Stack(buf, false)
			err = fmt.Errorf("command panicked: %v\n%s", r, buf[:n])
		}
	}()
	return cmd.Run(tgt)
}
