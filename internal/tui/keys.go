package tui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	keepLocal  key.Binding
	keepRemote key.Binding
	cancel     key.Binding
}

var keys = keyMap{
	keepLocal: key.NewBinding(
		key.WithKeys("l"),
		key.WithHelp("l", "keep local"),
	),
	keepRemote: key.NewBinding(
		key.WithKeys("r"),
		key.WithHelp("r", "keep remote"),
	),
	cancel: key.NewBinding(
		key.WithKeys("q", "esc", "ctrl+c"),
		key.WithHelp("q", "cancel"),
	),
}

func (k keyMap) help() string {
	var out string
	for i, b := range []key.Binding{k.keepLocal, k.keepRemote, k.cancel} {
		if i > 0 {
			out += "    "
		}
		h := b.Help()
		out += h.Key + " " + h.Desc
	}
	return out
}
