package ui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Start   key.Binding
	Toggle  key.Binding
	Forward key.Binding
	Back    key.Binding
	Restart key.Binding
	SkipEnd key.Binding
	Speed   key.Binding
	Dismiss key.Binding
	Quit    key.Binding

	// sort only
	Randomize key.Binding
	Grow      key.Binding
	Shrink    key.Binding

	// prime only
	Edit key.Binding

	extra []key.Binding
}

func baseKeys() keyMap {
	return keyMap{
		Start:   key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "start")),
		Toggle:  key.NewBinding(key.WithKeys(" "), key.WithHelp("space", "pause/resume")),
		Forward: key.NewBinding(key.WithKeys("right", "l"), key.WithHelp("→/l", "next")),
		Back:    key.NewBinding(key.WithKeys("left", "h"), key.WithHelp("←/h", "prev")),
		Restart: key.NewBinding(key.WithKeys("home", "g"), key.WithHelp("g", "restart")),
		SkipEnd: key.NewBinding(key.WithKeys("end", "G"), key.WithHelp("G", "skip to end")),
		Speed:   key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "speed")),
		Dismiss: key.NewBinding(key.WithKeys("enter", "esc")),
		Quit:    key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

func sortKeys() keyMap {
	k := baseKeys()
	k.Randomize = key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "randomize"))
	k.Grow = key.NewBinding(key.WithKeys("+", "="), key.WithHelp("+/-", "size"))
	k.Shrink = key.NewBinding(key.WithKeys("-", "_"))
	k.extra = []key.Binding{k.Randomize, k.Grow}
	return k
}

func primeKeys() keyMap {
	k := baseKeys()
	k.Start = key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "check again"))
	k.Edit = key.NewBinding(key.WithKeys("/", "n"), key.WithHelp("n", "new number"))
	k.extra = []key.Binding{k.Edit}
	return k
}

func (k keyMap) ShortHelp() []key.Binding {
	return append([]key.Binding{k.Start, k.Toggle, k.Back, k.Forward, k.Speed}, append(k.extra, k.Quit)...)
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Start, k.Toggle, k.Speed},
		{k.Back, k.Forward, k.Restart, k.SkipEnd},
		append(k.extra, k.Quit),
	}
}
