package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/verte-zerg/typetest/internal/typing"
)

// KeyMap defines the control keys of the typing screen.
type KeyMap struct {
	Quit        key.Binding
	Restart     key.Binding
	Backspace   key.Binding
	IdleRestart key.Binding
}

// DefaultKeyMap returns the bindings for the given idle restart characters.
func DefaultKeyMap(idleRestart string) KeyMap {
	km := KeyMap{
		Quit: key.NewBinding(
			key.WithKeys("esc", "ctrl+c"),
			key.WithHelp("esc", "quit"),
		),
		Restart: key.NewBinding(
			key.WithKeys("enter", "ctrl+j"),
			key.WithHelp("enter", "new text"),
		),
		Backspace: key.NewBinding(
			key.WithKeys("backspace", "ctrl+h"),
			key.WithHelp("⌫", "delete"),
		),
	}
	if idleRestart != "" {
		keys := strings.Split(idleRestart, "")
		km.IdleRestart = key.NewBinding(
			key.WithKeys(keys...),
			key.WithHelp(strings.Join(keys, "/"), "new text (when not typing)"),
		)
	} else {
		km.IdleRestart = key.NewBinding(key.WithDisabled())
	}
	return km
}

// ShortHelp implements help.KeyMap.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Restart, k.IdleRestart, k.Backspace, k.Quit}
}

// FullHelp implements help.KeyMap.
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{k.ShortHelp()}
}

// Events maps a key message to processor events. Multi-rune messages
// (paste, IME input) yield one event per rune.
func (k KeyMap) Events(msg tea.KeyMsg) []typing.Event {
	switch {
	case key.Matches(msg, k.Quit):
		return []typing.Event{typing.Quit}
	case key.Matches(msg, k.Restart):
		return []typing.Event{typing.Restart}
	case key.Matches(msg, k.Backspace):
		return []typing.Event{typing.Backspace}
	}
	switch msg.Type {
	case tea.KeySpace:
		return []typing.Event{typing.Char(' ')}
	case tea.KeyRunes:
		if msg.Alt {
			return []typing.Event{typing.Ignored}
		}
		events := make([]typing.Event, 0, len(msg.Runes))
		for _, r := range msg.Runes {
			events = append(events, typing.Char(r))
		}
		return events
	default:
		return []typing.Event{typing.Ignored}
	}
}
