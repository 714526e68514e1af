package ui

import (
	"github.com/charmbracelet/bubbles/key"

	"buylist/internal/config"
)

type keyMap struct {
	Quit      key.Binding
	Add       key.Binding
	Up        key.Binding
	Down      key.Binding
	Increment key.Binding
	Decrement key.Binding
	Toggle    key.Binding
	Delete    key.Binding
	Rename    key.Binding
	Confirm   key.Binding
	Cancel    key.Binding
}

func newKeyMap(k config.Keymap) keyMap {
	return keyMap{
		Quit:      key.NewBinding(key.WithKeys(k.Quit, "ctrl+c"), key.WithHelp(k.Quit, "quit")),
		Add:       key.NewBinding(key.WithKeys(k.Add), key.WithHelp(k.Add, "add")),
		Up:        key.NewBinding(key.WithKeys(k.Up, "up"), key.WithHelp("↑/"+k.Up, "up")),
		Down:      key.NewBinding(key.WithKeys(k.Down, "down"), key.WithHelp("↓/"+k.Down, "down")),
		Increment: key.NewBinding(key.WithKeys(k.Increment, "="), key.WithHelp(k.Increment, "more")),
		Decrement: key.NewBinding(key.WithKeys(k.Decrement), key.WithHelp(k.Decrement, "less")),
		Toggle:    key.NewBinding(key.WithKeys(k.Toggle), key.WithHelp(displayKey(k.Toggle), "toggle bought")),
		Delete:    key.NewBinding(key.WithKeys(k.Delete), key.WithHelp(k.Delete, "delete")),
		Rename:    key.NewBinding(key.WithKeys(k.Rename), key.WithHelp(k.Rename, "rename")),
		Confirm:   key.NewBinding(key.WithKeys(k.Confirm), key.WithHelp(k.Confirm, "confirm")),
		Cancel:    key.NewBinding(key.WithKeys(k.Cancel), key.WithHelp(k.Cancel, "cancel")),
	}
}

func displayKey(k string) string {
	if k == " " {
		return "space"
	}
	return k
}

// ShortHelp and FullHelp implement help.KeyMap.
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Add, k.Increment, k.Decrement, k.Toggle, k.Delete, k.Rename, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down},
		{k.Add, k.Rename, k.Delete},
		{k.Increment, k.Decrement, k.Toggle},
		{k.Confirm, k.Cancel, k.Quit},
	}
}

type editKeyMap struct {
	Confirm key.Binding
	Cancel  key.Binding
}

func (k editKeyMap) ShortHelp() []key.Binding  { return []key.Binding{k.Confirm, k.Cancel} }
func (k editKeyMap) FullHelp() [][]key.Binding { return [][]key.Binding{k.ShortHelp()} }
