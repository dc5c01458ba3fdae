package ui

import (
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"

	"github.com/macropower/vscroll/pkg/keys"
)

// keyMap exposes [KeyBinds] to [help.Model].
type keyMap struct {
	kb *KeyBinds
}

func newHelp() help.Model {
	h := help.New()
	h.ShowAll = true

	return h
}

func (k keyMap) ShortHelp() []key.Binding {
	return bindings(k.kb.Help, k.kb.Quit)
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		bindings(k.kb.Up, k.kb.Down, k.kb.PageUp, k.kb.PageDown),
		bindings(k.kb.Left, k.kb.Right, k.kb.PageLeft, k.kb.PageRight),
		bindings(k.kb.Home, k.kb.End, k.kb.Copy, k.kb.Help, k.kb.Quit),
	}
}

func bindings(kbs ...*keys.KeyBind) []key.Binding {
	out := make([]key.Binding, 0, len(kbs))
	for _, kb := range kbs {
		if kb != nil {
			out = append(out, kb.Binding())
		}
	}

	return out
}
