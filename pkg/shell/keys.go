package shell

import (
	"fmt"

	"github.com/charmbracelet/bubbles/key"
)

type keyMap struct {
	PlayPause key.Binding
	Forward   key.Binding
	Backward  key.Binding
	Annotate  key.Binding
	Save      key.Binding
	NextField key.Binding
	PrevField key.Binding
	Back      key.Binding
	Quit      key.Binding
}

func defaultKeyMap(step int) keyMap {
	return keyMap{
		PlayPause: key.NewBinding(key.WithKeys(" ", "ctrl+p"), key.WithHelp("space", "play/pause")),
		Forward:   key.NewBinding(key.WithKeys("right", "ctrl+f"), key.WithHelp("→", fmt.Sprintf("+%d frames", step))),
		Backward:  key.NewBinding(key.WithKeys("left", "ctrl+b"), key.WithHelp("←", fmt.Sprintf("-%d frames", step))),
		Annotate:  key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "annotate")),
		Save:      key.NewBinding(key.WithKeys("ctrl+s"), key.WithHelp("ctrl+s", "save")),
		NextField: key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "label/team")),
		PrevField: key.NewBinding(key.WithKeys("shift+tab")),
		Back:      key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "leave field/quit")),
		Quit:      key.NewBinding(key.WithKeys("ctrl+c"), key.WithHelp("ctrl+c", "quit")),
	}
}

// ShortHelp implements help.KeyMap.
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.PlayPause, k.Backward, k.Forward, k.NextField, k.Annotate, k.Save, k.Back}
}

// FullHelp implements help.KeyMap.
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.PlayPause, k.Backward, k.Forward},
		{k.NextField, k.Annotate, k.Save},
		{k.Back, k.Quit},
	}
}
