package main

import (
	"fmt"

	"github.com/gdamore/tcell/v2"

	"github.com/dshills/keychord/command"
	"github.com/dshills/keychord/engine"
	"github.com/dshills/keychord/key"
	"github.com/dshills/keychord/keymap"
)

// pane is an unregistered engine target: it has no local keymap, so
// every keystroke the global map does not claim comes back through
// ReceiveRawKey.
type pane struct {
	title string
	owner command.Signature
	lines []string
}

func newPane(title, owner string) *pane {
	return &pane{
		title: title,
		owner: command.MustSignature(owner),
		lines: []string{""},
	}
}

func (p *pane) OwnerSignature() command.Signature { return p.owner }

func (p *pane) TargetSignature() (command.Signature, bool) {
	return command.Signature{}, false
}

func (p *pane) LocalKeymap() *keymap.Map { return nil }

func (p *pane) ReceiveRawKey(ev key.Event) {
	last := len(p.lines) - 1
	switch {
	case ev.Key == key.KeyReturn || ev.Key == key.KeyEnter:
		p.lines = append(p.lines, "")
	case ev.Key == key.KeyBackspace:
		if line := []rune(p.lines[last]); len(line) > 0 {
			p.lines[last] = string(line[:len(line)-1])
		} else if last > 0 {
			p.lines = p.lines[:last]
		}
	case ev.Text != 0:
		p.lines[last] += string(ev.Text)
	}
}

func (p *pane) clear() {
	p.lines = []string{""}
}

// demo drives the engine from a tcell screen. It is the engine's
// drain host: Refresh redraws between queued commands.
type demo struct {
	screen  tcell.Screen
	eng     *engine.Engine
	panes   [2]*pane
	active  int
	status  string
	quit    bool
	stopped bool
}

func newDemo(eng *engine.Engine) (*demo, error) {
	screen, err := tcell.NewScreen()
	if err != nil {
		return nil, err
	}
	if err := screen.Init(); err != nil {
		return nil, err
	}

	d := &demo{
		screen: screen,
		eng:    eng,
		panes:  [2]*pane{newPane("left", "demo"), newPane("right", "demo")},
		status: "C-x C-c quits, C-x o switches panes, C-g aborts",
	}
	eng.Observe(engine.ObserverFunc(d.observe))

	if err := d.registerCommands(); err != nil {
		d.shutdown()
		return nil, err
	}
	return d, nil
}

func (d *demo) shutdown() {
	if d.stopped {
		return
	}
	d.stopped = true
	d.screen.Fini()
}

func (d *demo) registerCommands() error {
	wild := []command.Signature{command.Wildcard()}
	reg := d.eng.Registry()

	cmds := map[string]func() error{
		"quit-demo": func() error {
			d.quit = true
			return nil
		},
		"other-window": func() error {
			d.active = (d.active + 1) % len(d.panes)
			return nil
		},
		"clear-pane": func() error {
			d.panes[d.active].clear()
			return nil
		},
	}
	for name, fn := range cmds {
		run := fn
		err := reg.Register(name, wild, wild, command.Func(func(command.Target) error {
			return run()
		}), false)
		if err != nil {
			return err
		}
	}

	binds := map[string]string{
		"<ctrl>+x <ctrl>+c": "quit-demo",
		"<ctrl>+x o":        "other-window",
		"<ctrl>+x k":        "clear-pane",
	}
	for spec, name := range binds {
		if err := d.eng.BindGlobal(spec, name); err != nil {
			return err
		}
	}
	return nil
}

func (d *demo) observe(ev engine.Event) {
	switch ev.Kind {
	case engine.EventSequencePartial:
		d.status = ev.Seq.String() + " -"
	case engine.EventSequenceComplete:
		d.status = fmt.Sprintf("%s (%s)", ev.Seq.String(), ev.Command)
	case engine.EventSequenceInvalid:
		d.status = ev.Seq.String() + " is unbound"
	case engine.EventAborted:
		d.status = "aborted"
	case engine.EventCommandError:
		d.status = fmt.Sprintf("%s failed: %v", ev.Command, ev.Err)
	case engine.EventInternalError:
		d.status = fmt.Sprintf("INTERNAL ERROR: %v", ev.Err)
	}
}

// FocusedTarget returns the active pane.
func (d *demo) FocusedTarget() engine.Target {
	return d.panes[d.active]
}

// Refresh redraws the whole screen.
func (d *demo) Refresh() {
	d.screen.Clear()
	width, height := d.screen.Size()
	paneWidth := width / 2

	d.drawPane(d.panes[0], 0, paneWidth, height-1, d.active == 0)
	d.drawPane(d.panes[1], paneWidth, width-paneWidth, height-1, d.active == 1)

	statusStyle := tcell.StyleDefault.Reverse(true)
	d.drawText(0, height-1, width, d.status, statusStyle)
	d.screen.Show()
}

func (d *demo) drawPane(p *pane, x, width, height int, active bool) {
	titleStyle := tcell.StyleDefault.Bold(active)
	d.drawText(x, 0, width, " "+p.title+" ", titleStyle)

	first := 0
	if len(p.lines) > height-1 {
		first = len(p.lines) - (height - 1)
	}
	for i, line := range p.lines[first:] {
		d.drawText(x, i+1, width, line, tcell.StyleDefault)
	}
}

func (d *demo) drawText(x, y, width int, text string, style tcell.Style) {
	col := x
	for _, r := range text {
		if col >= x+width {
			break
		}
		d.screen.SetContent(col, y, r, nil, style)
		col++
	}
	for ; col < x+width; col++ {
		d.screen.SetContent(col, y, ' ', nil, style)
	}
}

func (d *demo) loop() {
	d.Refresh()
	for !d.quit {
		switch ev := d.screen.PollEvent().(type) {
		case *tcell.EventKey:
			kev, ok := eventFromTcell(ev)
			if !ok {
				continue
			}
			d.eng.Feed(kev, d.FocusedTarget())
			d.eng.Drain(d)
		case *tcell.EventResize:
			d.screen.Sync()
			d.Refresh()
		}
	}
}
