package tui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Up       key.Binding
	Down     key.Binding
	Left     key.Binding
	Right    key.Binding
	Home     key.Binding
	End      key.Binding
	Focus    key.Binding
	NextPage key.Binding
	PrevPage key.Binding
	Save     key.Binding
	Help     key.Binding
	Quit     key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Up:       key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "qubit up")),
		Down:     key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "qubit down")),
		Left:     key.NewBinding(key.WithKeys("left", "h"), key.WithHelp("←/h", "step back")),
		Right:    key.NewBinding(key.WithKeys("right", "l"), key.WithHelp("→/l", "step forward")),
		Home:     key.NewBinding(key.WithKeys("home", "g"), key.WithHelp("g", "first step")),
		End:      key.NewBinding(key.WithKeys("end", "G"), key.WithHelp("G", "last step")),
		Focus:    key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "switch focus")),
		NextPage: key.NewBinding(key.WithKeys("]"), key.WithHelp("]", "next page")),
		PrevPage: key.NewBinding(key.WithKeys("["), key.WithHelp("[", "prev page")),
		Save:     key.NewBinding(key.WithKeys("ctrl+s"), key.WithHelp("^S", "save qasm")),
		Help:     key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
		Quit:     key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

// ShortHelp implements help.KeyMap.
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Focus, k.NextPage, k.Save, k.Help, k.Quit}
}

// FullHelp implements help.KeyMap.
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Left, k.Right},
		{k.Home, k.End, k.Focus},
		{k.NextPage, k.PrevPage, k.Save},
		{k.Help, k.Quit},
	}
}
