package main

import (
	"github.com/gdamore/tcell/v2"

	"github.com/dshills/keychord/key"
)

// eventFromTcell converts a tcell key event into an engine keystroke.
// Keys with no symbolic equivalent are dropped.
func eventFromTcell(ev *tcell.EventKey) (key.Event, bool) {
	mods := modsFromTcell(ev.Modifiers())

	switch ev.Key() {
	case tcell.KeyRune:
		r := ev.Rune()
		if r == ' ' {
			return key.NewEvent(mods, key.KeySpace, ' '), true
		}
		implied, k, ok := key.KeyFromToken(string(r))
		if !ok {
			return key.Event{}, false
		}
		return key.NewEvent(mods.With(implied), k, r), true
	case tcell.KeyEnter:
		return key.NewEvent(mods, key.KeyReturn, 0), true
	case tcell.KeyTab:
		return key.NewEvent(mods, key.KeyTab, 0), true
	case tcell.KeyEscape:
		return key.NewEvent(mods, key.KeyEscape, 0), true
	case tcell.KeyBackspace, tcell.KeyBackspace2:
		return key.NewEvent(mods, key.KeyBackspace, 0), true
	case tcell.KeyDelete:
		return key.NewEvent(mods, key.KeyDelete, 0), true
	case tcell.KeyInsert:
		return key.NewEvent(mods, key.KeyInsert, 0), true
	case tcell.KeyHome:
		return key.NewEvent(mods, key.KeyHome, 0), true
	case tcell.KeyEnd:
		return key.NewEvent(mods, key.KeyEnd, 0), true
	case tcell.KeyPgUp:
		return key.NewEvent(mods, key.KeyPageUp, 0), true
	case tcell.KeyPgDn:
		return key.NewEvent(mods, key.KeyPageDown, 0), true
	case tcell.KeyUp:
		return key.NewEvent(mods, key.KeyUp, 0), true
	case tcell.KeyDown:
		return key.NewEvent(mods, key.KeyDown, 0), true
	case tcell.KeyLeft:
		return key.NewEvent(mods, key.KeyLeft, 0), true
	case tcell.KeyRight:
		return key.NewEvent(mods, key.KeyRight, 0), true
	}

	if k := ev.Key(); k >= tcell.KeyF1 && k <= tcell.KeyF12 {
		return key.NewEvent(mods, key.KeyF1+key.Key(k-tcell.KeyF1), 0), true
	}

	// Control letters arrive as dedicated key codes.
	if k := ev.Key(); k >= tcell.KeyCtrlA && k <= tcell.KeyCtrlZ {
		letter := key.KeyA + key.Key(k-tcell.KeyCtrlA)
		return key.NewEvent(mods.With(key.ModCtrl), letter, 0), true
	}

	return key.Event{}, false
}

func modsFromTcell(m tcell.ModMask) key.Modifier {
	var out key.Modifier
	if m&tcell.ModShift != 0 {
		out = out.With(key.ModShift)
	}
	if m&tcell.ModCtrl != 0 {
		out = out.With(key.ModCtrl)
	}
	if m&tcell.ModAlt != 0 {
		out = out.With(key.ModAlt)
	}
	if m&tcell.ModMeta != 0 {
		out = out.With(key.ModMeta)
	}
	return out
}
