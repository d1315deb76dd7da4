package tui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Up         key.Binding
	Down       key.Binding
	Preview    key.Binding
	Switch     key.Binding
	Refresh    key.Binding
	ArchiveOne key.Binding
	ArchiveAll key.Binding
	RestoreOne key.Binding
	RestoreAll key.Binding
	Delete     key.Binding
	Quit       key.Binding
}

func newKeyMap() keyMap {
	return keyMap{
		Up:         key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
		Down:       key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
		Preview:    key.NewBinding(key.WithKeys("enter", "p"), key.WithHelp("enter", "preview")),
		Switch:     key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "live/archive")),
		Refresh:    key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "refresh")),
		ArchiveOne: key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "archive")),
		ArchiveAll: key.NewBinding(key.WithKeys("A"), key.WithHelp("A", "archive all")),
		RestoreOne: key.NewBinding(key.WithKeys("i"), key.WithHelp("i", "restore")),
		RestoreAll: key.NewBinding(key.WithKeys("I"), key.WithHelp("I", "restore all")),
		Delete:     key.NewBinding(key.WithKeys("d", "delete"), key.WithHelp("d", "delete")),
		Quit:       key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

// setView enables the actions that make sense for the root being shown: archiving
// from the live list, restoring and deleting from the archive list.
func (k *keyMap) setView(view View) {
	live := view == ViewLive
	k.ArchiveOne.SetEnabled(live)
	k.ArchiveAll.SetEnabled(live)
	k.RestoreOne.SetEnabled(!live)
	k.RestoreAll.SetEnabled(!live)
	k.Delete.SetEnabled(!live)
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Preview, k.Switch, k.ArchiveOne, k.ArchiveAll, k.RestoreOne, k.RestoreAll, k.Delete, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Preview, k.Refresh},
		{k.Switch, k.ArchiveOne, k.ArchiveAll},
		{k.RestoreOne, k.RestoreAll, k.Delete, k.Quit},
	}
}
