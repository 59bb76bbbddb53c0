package tui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Left      key.Binding
	Right     key.Binding
	Up        key.Binding
	Down      key.Binding
	PrevMonth key.Binding
	NextMonth key.Binding
	PrevYear  key.Binding
	NextYear  key.Binding
	WeekStart key.Binding
	WeekEnd   key.Binding
	Select    key.Binding
	Today     key.Binding
	GoTo      key.Binding
	Done      key.Binding
	Quit      key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Left:      key.NewBinding(key.WithKeys("left", "h"), key.WithHelp("←/h", "day")),
		Right:     key.NewBinding(key.WithKeys("right", "l"), key.WithHelp("→/l", "day")),
		Up:        key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "week")),
		Down:      key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "week")),
		PrevMonth: key.NewBinding(key.WithKeys("pgup", "["), key.WithHelp("pgup/[", "prev month")),
		NextMonth: key.NewBinding(key.WithKeys("pgdown", "]"), key.WithHelp("pgdn/]", "next month")),
		PrevYear:  key.NewBinding(key.WithKeys("alt+pgup", "{"), key.WithHelp("alt+pgup/{", "prev year")),
		NextYear:  key.NewBinding(key.WithKeys("alt+pgdown", "}"), key.WithHelp("alt+pgdn/}", "next year")),
		WeekStart: key.NewBinding(key.WithKeys("home"), key.WithHelp("home", "week start")),
		WeekEnd:   key.NewBinding(key.WithKeys("end"), key.WithHelp("end", "week end")),
		Select:    key.NewBinding(key.WithKeys("enter", " "), key.WithHelp("enter", "select")),
		Today:     key.NewBinding(key.WithKeys("."), key.WithHelp(".", "today")),
		GoTo:      key.NewBinding(key.WithKeys("y"), key.WithHelp("y", "go to")),
		Done:      key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "done")),
		Quit:      key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

// ShortHelp implements help.KeyMap.
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Left, k.Up, k.PrevMonth, k.NextMonth, k.Select, k.Today, k.GoTo, k.Done, k.Quit}
}

// FullHelp implements help.KeyMap.
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Left, k.Right, k.Up, k.Down},
		{k.PrevMonth, k.NextMonth, k.PrevYear, k.NextYear},
		{k.WeekStart, k.WeekEnd, k.Select, k.Today},
		{k.GoTo, k.Done, k.Quit},
	}
}
