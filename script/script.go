// Package script runs Lua rc files against an engine. An rc file is
// startup configuration: it registers commands, binds keys, and seeds
// the replay queue through a small `keychord` table.
package script

import (
	"fmt"

	"github.com/sirupsen/logrus"
	lua "github.com/yuin/gopher-lua"

	"github.com/dshills/keychord/command"
	"github.com/dshills/keychord/engine"
)

// Runner owns a Lua state bound to one engine. The state stays alive
// after the rc file finishes because commands registered from Lua run
// in it later. Like the engine, it is confined to the host's event
// goroutine.
type Runner struct {
	engine *engine.Engine
	state  *lua.LState
	log    *logrus.Logger
}

// NewRunner creates a runner exposing the keychord table to Lua.
func NewRunner(e *engine.Engine, log *logrus.Logger) *Runner {
	if log == nil {
		log = logrus.StandardLogger()
	}
	r := &Runner{
		engine: e,
		state:  lua.NewState(),
		log:    log,
	}
	r.install()
	return r
}

// Close releases the Lua state. Commands registered from Lua must not
// run afterwards.
func (r *Runner) Close() {
	r.state.Close()
}

// RunFile executes an rc file. Errors raised by the keychord functions
// abort the file and surface here.
func (r *Runner) RunFile(path string) error {
	if err := r.state.DoFile(path); err != nil {
		return fmt.Errorf("rc file %s: %w", path, err)
	}
	return nil
}

// RunString executes rc source directly.
func (r *Runner) RunString(src string) error {
	if err := r.state.DoString(src); err != nil {
		return fmt.Errorf("rc script: %w", err)
	}
	return nil
}

func (r *Runner) install() {
	L := r.state
	tbl := L.NewTable()
	L.SetField(tbl, "bind_global", L.NewFunction(r.luaBindGlobal))
	L.SetField(tbl, "unbind_global", L.NewFunction(r.luaUnbindGlobal))
	L.SetField(tbl, "register_command", L.NewFunction(r.luaRegisterCommand))
	L.SetField(tbl, "emulate_keys", L.NewFunction(r.luaEmulateKeys))
	L.SetField(tbl, "commands", L.NewFunction(r.luaCommands))
	L.SetField(tbl, "log", L.NewFunction(r.luaLog))
	L.SetGlobal("keychord", tbl)
}

// bind_global(sequence, command)
func (r *Runner) luaBindGlobal(L *lua.LState) int {
	spec := L.CheckString(1)
	name := L.CheckString(2)
	if err := r.engine.BindGlobal(spec, name); err != nil {
		L.RaiseError("bind_global(%q, %q): %v", spec, name, err)
	}
	return 0
}

// unbind_global(sequence)
func (r *Runner) luaUnbindGlobal(L *lua.LState) int {
	spec := L.CheckString(1)
	if err := r.engine.UnbindGlobal(spec); err != nil {
		L.RaiseError("unbind_global(%q): %v", spec, err)
	}
	return 0
}

// register_command(name, owner_sigs, target_sigs, fn [, replace])
//
// The signature lists are arrays of strings; "*" is the wildcard. fn
// is called with the owner signature of the target the command runs
// against.
func (r *Runner) luaRegisterCommand(L *lua.LState) int {
	name := L.CheckString(1)
	owners := r.toSignatures(L, L.CheckTable(2))
	targets := r.toSignatures(L, L.CheckTable(3))
	fn := L.CheckFunction(4)
	replace := L.OptBool(5, false)

	cmd := command.Func(func(tgt command.Target) error {
		return r.state.CallByParam(lua.P{
			Fn:      fn,
			NRet:    0,
			Protect: true,
		}, lua.LString(tgt.OwnerSignature().String()))
	})

	if err := r.engine.Registry().Register(name, owners, targets, cmd, replace); err != nil {
		L.RaiseError("register_command(%q): %v", name, err)
	}
	return 0
}

// emulate_keys(sequence)
func (r *Runner) luaEmulateKeys(L *lua.LState) int {
	spec := L.CheckString(1)
	if err := r.engine.EmulateKeys(spec); err != nil {
		L.RaiseError("emulate_keys(%q): %v", spec, err)
	}
	return 0
}

// commands() -> array of registered command names
func (r *Runner) luaCommands(L *lua.LState) int {
	tbl := L.NewTable()
	for i, name := range r.engine.Registry().Names() {
		tbl.RawSetInt(i+1, lua.LString(name))
	}
	L.Push(tbl)
	return 1
}

// log(message)
func (r *Runner) luaLog(L *lua.LState) int {
	r.log.WithField("source", "rc").Info(L.CheckString(1))
	return 0
}

func (r *Runner) toSignatures(L *lua.LState, tbl *lua.LTable) []command.Signature {
	out := make([]command.Signature, 0, tbl.Len())
	for i := 1; i <= tbl.Len(); i++ {
		v := tbl.RawGetInt(i)
		s, ok := v.(lua.LString)
		if !ok {
			L.RaiseError("signature list entry %d is not a string", i)
			return nil
		}
		if string(s) == "*" {
			out = append(out, command.Wildcard())
			continue
		}
		sig, err := command.NewSignature(string(s))
		if err != nil {
			L.RaiseError("signature %q: %v", string(s), err)
			return nil
		}
		out = append(out, sig)
	}
	return out
}
