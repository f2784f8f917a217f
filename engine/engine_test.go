package engine

import (
	"errors"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/sirupsen/logrus"

	"github.com/dshills/keychord/command"
	"github.com/dshills/keychord/key"
	"github.com/dshills/keychord/keymap"
)

type testTarget struct {
	reg      *Registration
	owner    command.Signature
	sig      command.Signature
	hasSig   bool
	received []key.Event
}

func (t *testTarget) OwnerSignature() command.Signature { return t.owner }

func (t *testTarget) TargetSignature() (command.Signature, bool) { return t.sig, t.hasSig }

func (t *testTarget) LocalKeymap() *keymap.Map {
	if t.reg == nil {
		return nil
	}
	return t.reg.Keymap
}

func (t *testTarget) ReceiveRawKey(ev key.Event) {
	t.received = append(t.received, ev)
}

type testHost struct {
	refreshes int
	focused   Target
}

func (h *testHost) Refresh() { h.refreshes++ }

func (h *testHost) FocusedTarget() Target { return h.focused }

type recorder struct {
	events []Event
}

func (r *recorder) Notify(ev Event) { r.events = append(r.events, ev) }

func (r *recorder) kinds() []EventKind {
	out := make([]EventKind, len(r.events))
	for i, ev := range r.events {
		out[i] = ev.Kind
	}
	return out
}

func newTestEngine(t *testing.T) *Engine {
	t.Helper()
	log := logrus.New()
	log.SetOutput(io.Discard)
	e, err := New(Config{Logger: log})
	if err != nil {
		t.Fatalf("New error: %v", err)
	}
	return e
}

func registeredTarget(e *Engine, owner, sig string) *testTarget {
	return &testTarget{
		reg:    e.NewRegistration(),
		owner:  command.MustSignature(owner),
		sig:    command.MustSignature(sig),
		hasSig: true,
	}
}

func registerFunc(t *testing.T, e *Engine, name string, fn func(command.Target) error) {
	t.Helper()
	wild := []command.Signature{command.Wildcard()}
	if err := e.Registry().Register(name, wild, wild, command.Func(fn), false); err != nil {
		t.Fatalf("Register(%q) error: %v", name, err)
	}
}

func feed(t *testing.T, e *Engine, spec string, tgt Target) {
	t.Helper()
	for _, chord := range key.MustParse(spec).Chords() {
		e.Feed(key.EventForChord(chord), tgt)
	}
}

func kindsEqual(a, b []EventKind) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func TestFeedCompleteQueuesAndRuns(t *testing.T) {
	e := newTestEngine(t)
	tgt := registeredTarget(e, "app", "text")

	ran := 0
	registerFunc(t, e, "find-file", func(command.Target) error {
		ran++
		return nil
	})
	if err := e.BindGlobal("<ctrl>+x <ctrl>+f", "find-file"); err != nil {
		t.Fatalf("BindGlobal error: %v", err)
	}
	// The registration predates the bind, so refresh its keymap.
	tgt.reg = e.NewRegistration()

	rec := &recorder{}
	e.Observe(rec)

	feed(t, e, "<ctrl>+x <ctrl>+f", tgt)

	want := []EventKind{
		EventKeyPressed, EventSequencePartial, EventKeyParsed,
		EventKeyPressed, EventSequenceComplete, EventKeyParsed,
	}
	if !kindsEqual(rec.kinds(), want) {
		t.Errorf("events = %v, want %v", rec.kinds(), want)
	}
	if e.PendingCommands() != 1 {
		t.Fatalf("PendingCommands() = %d, want 1", e.PendingCommands())
	}
	if e.CurrentSequence().Len() != 0 {
		t.Errorf("sequence not reset after completion")
	}

	host := &testHost{focused: tgt}
	e.Drain(host)

	if ran != 1 {
		t.Errorf("command ran %d times, want 1", ran)
	}
	if host.refreshes != 2 {
		t.Errorf("refreshes = %d, want 2", host.refreshes)
	}
}

func TestFeedPartialAccumulates(t *testing.T) {
	e := newTestEngine(t)
	registerFunc(t, e, "noop", func(command.Target) error { return nil })
	if err := e.BindGlobal("<ctrl>+x <ctrl>+f", "noop"); err != nil {
		t.Fatalf("BindGlobal error: %v", err)
	}
	tgt := registeredTarget(e, "app", "text")

	feed(t, e, "<ctrl>+x", tgt)
	if got := e.CurrentSequence().String(); got != "<Ctrl>+x" {
		t.Errorf("CurrentSequence() = %q, want \"<Ctrl>+x\"", got)
	}
	if e.PendingCommands() != 0 {
		t.Errorf("PendingCommands() = %d, want 0", e.PendingCommands())
	}
}

func TestFeedModifierOnlyIgnored(t *testing.T) {
	e := newTestEngine(t)
	tgt := registeredTarget(e, "app", "text")
	rec := &recorder{}
	e.Observe(rec)

	e.Feed(key.NewEvent(key.ModCtrl, key.KeyControlKey, 0), tgt)

	if !kindsEqual(rec.kinds(), []EventKind{EventKeyPressed}) {
		t.Errorf("events = %v, want [key-pressed]", rec.kinds())
	}
	if e.CurrentSequence().Len() != 0 {
		t.Error("bare modifier extended the sequence")
	}
}

func TestFeedInvalidOnRegisteredTarget(t *testing.T) {
	e := newTestEngine(t)
	tgt := registeredTarget(e, "app", "text")
	rec := &recorder{}
	e.Observe(rec)

	feed(t, e, "q", tgt)

	want := []EventKind{EventKeyPressed, EventSequenceInvalid, EventKeyParsed}
	if !kindsEqual(rec.kinds(), want) {
		t.Errorf("events = %v, want %v", rec.kinds(), want)
	}
	if e.PendingCommands() != 0 {
		t.Errorf("PendingCommands() = %d, want 0", e.PendingCommands())
	}
	if e.CurrentSequence().Len() != 0 {
		t.Error("sequence not reset after invalid match")
	}
	if len(tgt.received) != 0 {
		t.Error("registered target received a raw key")
	}
}

func TestFeedPassThroughOnUnregisteredTarget(t *testing.T) {
	e := newTestEngine(t)
	tgt := &testTarget{owner: command.MustSignature("app")}

	ev := key.NewEvent(key.ModNone, key.KeyQ, 'q')
	e.Feed(ev, tgt)

	if e.PendingCommands() != 1 {
		t.Fatalf("PendingCommands() = %d, want 1", e.PendingCommands())
	}
	e.Drain(&testHost{focused: tgt})

	if len(tgt.received) != 1 {
		t.Fatalf("target received %d raw keys, want 1", len(tgt.received))
	}
	if tgt.received[0].Key != key.KeyQ || tgt.received[0].Text != 'q' {
		t.Errorf("delivered event = %+v", tgt.received[0])
	}
}

func TestAbortClearsEverything(t *testing.T) {
	e := newTestEngine(t)
	registerFunc(t, e, "noop", func(command.Target) error { return nil })
	if err := e.BindGlobal("a", "noop"); err != nil {
		t.Fatalf("BindGlobal error: %v", err)
	}
	if err := e.BindGlobal("<ctrl>+x <ctrl>+f", "noop"); err != nil {
		t.Fatalf("BindGlobal error: %v", err)
	}
	tgt := registeredTarget(e, "app", "text")
	rec := &recorder{}

	feed(t, e, "a", tgt) // queues one command
	if err := e.EmulateKeys("a a"); err != nil {
		t.Fatalf("EmulateKeys error: %v", err)
	}
	feed(t, e, "<ctrl>+x", tgt) // pending partial sequence
	e.DisableCommandProcessing()

	e.Observe(rec)
	feed(t, e, "<ctrl>+g", tgt)

	want := []EventKind{EventKeyPressed, EventAborted, EventKeyParsed}
	if !kindsEqual(rec.kinds(), want) {
		t.Errorf("events = %v, want %v", rec.kinds(), want)
	}
	if e.PendingCommands() != 0 || e.PendingReplays() != 0 {
		t.Errorf("queues = (%d, %d), want (0, 0)", e.PendingCommands(), e.PendingReplays())
	}
	if e.CurrentSequence().Len() != 0 {
		t.Error("sequence survived abort")
	}
	if !e.CommandProcessingEnabled() {
		t.Error("abort did not re-enable command processing")
	}
}

func TestAbortIdempotent(t *testing.T) {
	e := newTestEngine(t)
	tgt := registeredTarget(e, "app", "text")

	feed(t, e, "<ctrl>+g <ctrl>+g", tgt)
	if e.CurrentSequence().Len() != 0 {
		t.Error("repeated abort corrupted state")
	}
}

func TestDisableCommandProcessing(t *testing.T) {
	e := newTestEngine(t)
	ran := 0
	registerFunc(t, e, "noop", func(command.Target) error {
		ran++
		return nil
	})
	if err := e.BindGlobal("a", "noop"); err != nil {
		t.Fatalf("BindGlobal error: %v", err)
	}
	if err := e.BindGlobal("<ctrl>+x <ctrl>+f", "noop"); err != nil {
		t.Fatalf("BindGlobal error: %v", err)
	}
	tgt := registeredTarget(e, "app", "text")
	rec := &recorder{}
	e.Observe(rec)

	e.DisableCommandProcessing()
	feed(t, e, "a", tgt)

	// The sequence still completes, it just queues nothing.
	want := []EventKind{EventKeyPressed, EventSequenceComplete, EventKeyParsed}
	if !kindsEqual(rec.kinds(), want) {
		t.Errorf("events = %v, want %v", rec.kinds(), want)
	}
	if e.PendingCommands() != 0 {
		t.Errorf("PendingCommands() = %d, want 0", e.PendingCommands())
	}

	// Enabling resets a half-entered sequence.
	feed(t, e, "<ctrl>+x", tgt)
	e.EnableCommandProcessing()
	if e.CurrentSequence().Len() != 0 {
		t.Error("EnableCommandProcessing did not reset the sequence")
	}

	e.Drain(&testHost{focused: tgt})
	if ran != 0 {
		t.Errorf("command ran %d times while disabled, want 0", ran)
	}
}

func TestDrainRunsCommandsBeforeReplays(t *testing.T) {
	e := newTestEngine(t)
	var order []string
	registerFunc(t, e, "first", func(command.Target) error {
		order = append(order, "first")
		return nil
	})
	registerFunc(t, e, "second", func(command.Target) error {
		order = append(order, "second")
		return nil
	})
	if err := e.BindGlobal("a", "second"); err != nil {
		t.Fatalf("BindGlobal error: %v", err)
	}
	if err := e.BindGlobal("b", "first"); err != nil {
		t.Fatalf("BindGlobal error: %v", err)
	}
	tgt := registeredTarget(e, "app", "text")

	if err := e.EmulateKeys("a"); err != nil {
		t.Fatalf("EmulateKeys error: %v", err)
	}
	feed(t, e, "b", tgt)

	host := &testHost{focused: tgt}
	e.Drain(host)

	if len(order) != 2 || order[0] != "first" || order[1] != "second" {
		t.Errorf("order = %v, want [first second]", order)
	}
	// Three items drained (first, replayed key, second) plus the
	// final refresh.
	if host.refreshes != 4 {
		t.Errorf("refreshes = %d, want 4", host.refreshes)
	}
}

func TestCommandErrorReenablesProcessing(t *testing.T) {
	e := newTestEngine(t)
	registerFunc(t, e, "boom", func(command.Target) error {
		e.DisableCommandProcessing()
		return errors.New("boom")
	})
	if err := e.BindGlobal("a", "boom"); err != nil {
		t.Fatalf("BindGlobal error: %v", err)
	}
	tgt := registeredTarget(e, "app", "text")
	rec := &recorder{}
	e.Observe(rec)

	feed(t, e, "a", tgt)
	e.Drain(&testHost{focused: tgt})

	if !e.CommandProcessingEnabled() {
		t.Error("command error did not re-enable processing")
	}
	var sawError bool
	for _, ev := range rec.events {
		if ev.Kind == EventCommandError && ev.Err != nil && ev.Command == "boom" {
			sawError = true
		}
	}
	if !sawError {
		t.Error("no command-error event observed")
	}
}

func TestCommandPanicRecovered(t *testing.T) {
	e := newTestEngine(t)
	registerFunc(t, e, "panics", func(command.Target) error {
		panic("kaboom")
	})
	if err := e.BindGlobal("a", "panics"); err != nil {
		t.Fatalf("BindGlobal error: %v", err)
	}
	tgt := registeredTarget(e, "app", "text")
	rec := &recorder{}
	e.Observe(rec)

	feed(t, e, "a", tgt)
	e.Drain(&testHost{focused: tgt})

	var sawError bool
	for _, ev := range rec.events {
		if ev.Kind == EventCommandError && ev.Err != nil {
			sawError = true
		}
	}
	if !sawError {
		t.Error("panic did not surface as a command-error event")
	}
}

func TestResolutionMissAtExecutionIsSilentNoOp(t *testing.T) {
	e := newTestEngine(t)
	// Registered only for a different owner class; bind-time checks
	// pass, execution-time resolution misses.
	other := []command.Signature{command.MustSignature("other")}
	if err := e.Registry().Register("narrow", other, other, command.Func(func(command.Target) error {
		t.Error("incompatible command ran")
		return nil
	}), false); err != nil {
		t.Fatalf("Register error: %v", err)
	}
	if err := e.BindGlobal("a", "narrow"); err != nil {
		t.Fatalf("BindGlobal error: %v", err)
	}
	tgt := registeredTarget(e, "app", "text")
	rec := &recorder{}
	e.Observe(rec)

	feed(t, e, "a", tgt)
	e.Drain(&testHost{focused: tgt})

	for _, ev := range rec.events {
		if ev.Kind == EventCommandStart || ev.Kind == EventInternalError {
			t.Errorf("unexpected event %v", ev.Kind)
		}
	}
}

func TestRegistrationSnapshotsGlobalMap(t *testing.T) {
	e := newTestEngine(t)
	registerFunc(t, e, "noop", func(command.Target) error { return nil })
	if err := e.BindGlobal("a", "noop"); err != nil {
		t.Fatalf("BindGlobal error: %v", err)
	}

	reg := e.NewRegistration()
	if err := e.BindGlobal("b", "noop"); err != nil {
		t.Fatalf("BindGlobal error: %v", err)
	}

	if _, res := reg.Keymap.Match(key.MustParse("a")); res != keymap.MatchBound {
		t.Error("registration missing binding present at creation")
	}
	if _, res := reg.Keymap.Match(key.MustParse("b")); res != keymap.MatchInvalid {
		t.Error("later global bind leaked into existing registration")
	}

	if reg.ID == "" || reg.ID == e.NewRegistration().ID {
		t.Error("registration IDs not unique")
	}
}

func TestBindErrors(t *testing.T) {
	e := newTestEngine(t)
	registerFunc(t, e, "noop", func(command.Target) error { return nil })
	bare := &testTarget{owner: command.MustSignature("app")}

	if err := e.BindGlobal("a", "missing"); !errors.Is(err, ErrUnknownCommand) {
		t.Errorf("BindGlobal(unregistered) error = %v, want ErrUnknownCommand", err)
	}
	if err := e.BindGlobal("<ctlr>+x", "noop"); !errors.Is(err, key.ErrUnknownModifier) {
		t.Errorf("BindGlobal(bad spec) error = %v, want ErrUnknownModifier", err)
	}
	if err := e.BindLocal("a", "noop", bare); !errors.Is(err, ErrNoLocalKeymap) {
		t.Errorf("BindLocal(no keymap) error = %v, want ErrNoLocalKeymap", err)
	}
	if err := e.UnbindGlobal("a"); !errors.Is(err, ErrNotBound) {
		t.Errorf("UnbindGlobal(unbound) error = %v, want ErrNotBound", err)
	}
}

func TestBindLocalShadowsGlobal(t *testing.T) {
	e := newTestEngine(t)
	var got []string
	registerFunc(t, e, "global-cmd", func(command.Target) error {
		got = append(got, "global")
		return nil
	})
	registerFunc(t, e, "local-cmd", func(command.Target) error {
		got = append(got, "local")
		return nil
	})
	if err := e.BindGlobal("a", "global-cmd"); err != nil {
		t.Fatalf("BindGlobal error: %v", err)
	}

	tgt := registeredTarget(e, "app", "text")
	if err := e.BindLocal("a", "local-cmd", tgt); err != nil {
		t.Fatalf("BindLocal error: %v", err)
	}

	feed(t, e, "a", tgt)
	e.Drain(&testHost{focused: tgt})

	if len(got) != 1 || got[0] != "local" {
		t.Errorf("ran %v, want [local]", got)
	}
}

func TestLoadBindings(t *testing.T) {
	e := newTestEngine(t)
	registerFunc(t, e, "find-file", func(command.Target) error { return nil })

	path := filepath.Join(t.TempDir(), "bindings.json")
	data := `{"bindings": [{"keys": "<ctrl>+x <ctrl>+f", "command": "find-file"}]}`
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatal(err)
	}

	if err := e.LoadBindings(path); err != nil {
		t.Fatalf("LoadBindings error: %v", err)
	}
	got := e.GlobalBindings()
	if len(got) != 1 || got[0].Command != "find-file" {
		t.Errorf("GlobalBindings() = %v", got)
	}

	bad := filepath.Join(t.TempDir(), "bad.json")
	data = `{"bindings": [{"keys": "a", "command": "missing"}]}`
	if err := os.WriteFile(bad, []byte(data), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := e.LoadBindings(bad); !errors.Is(err, ErrUnknownCommand) {
		t.Errorf("LoadBindings(unknown command) error = %v, want ErrUnknownCommand", err)
	}
}

func TestNewRejectsBadAbortChord(t *testing.T) {
	log := logrus.New()
	log.SetOutput(io.Discard)

	if _, err := New(Config{Logger: log, AbortChord: "<ctrl>+x <ctrl>+c"}); !errors.Is(err, ErrBadAbortChord) {
		t.Errorf("New(two-chord abort) error = %v, want ErrBadAbortChord", err)
	}
	if _, err := New(Config{Logger: log, AbortChord: "<ctlr>+g"}); !errors.Is(err, ErrBadAbortChord) {
		t.Errorf("New(bad abort) error = %v, want ErrBadAbortChord", err)
	}
}
