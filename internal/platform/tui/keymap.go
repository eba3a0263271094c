package tui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/autostack/internal/core"
)

// PlayKeyMap defines the viewer's key bindings.
type PlayKeyMap struct {
	Start    key.Binding
	Skip     key.Binding
	Faster   key.Binding
	Slower   key.Binding
	Blocks   key.Binding
	ProbUp   key.Binding
	ProbDown key.Binding
	Debug    key.Binding
	Reseed   key.Binding
	Help     key.Binding
	Quit     key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k PlayKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Start, k.Faster, k.Slower, k.Blocks, k.Help, k.Quit}
}

// FullHelp returns key bindings for the full help view.
func (k PlayKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Start, k.Skip, k.Faster, k.Slower},
		{k.Blocks, k.ProbDown, k.ProbUp},
		{k.Debug, k.Reseed, k.Help, k.Quit},
	}
}

// DefaultPlayKeyMap returns default key bindings.
func DefaultPlayKeyMap() PlayKeyMap {
	return PlayKeyMap{
		Start: key.NewBinding(
			key.WithKeys(" "),
			key.WithHelp("space", "start round"),
		),
		Skip: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "resolve round"),
		),
		Faster: key.NewBinding(
			key.WithKeys("+", "="),
			key.WithHelp("+", "faster"),
		),
		Slower: key.NewBinding(
			key.WithKeys("-", "_"),
			key.WithHelp("-", "slower"),
		),
		Blocks: key.NewBinding(
			key.WithKeys("b"),
			key.WithHelp("b", "blocks"),
		),
		ProbUp: key.NewBinding(
			key.WithKeys("]"),
			key.WithHelp("]", "target +5%"),
		),
		ProbDown: key.NewBinding(
			key.WithKeys("["),
			key.WithHelp("[", "target -5%"),
		),
		Debug: key.NewBinding(
			key.WithKeys("d"),
			key.WithHelp("d", "debug"),
		),
		Reseed: key.NewBinding(
			key.WithKeys("s"),
			key.WithHelp("s", "reseed"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "more keys"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// KeyMapper translates Bubble Tea key messages to operator actions.
// This centralizes key bindings and makes them testable.
type KeyMapper struct {
	keys PlayKeyMap
}

// NewKeyMapper creates a new key mapper with default bindings.
func NewKeyMapper() *KeyMapper {
	return &KeyMapper{keys: DefaultPlayKeyMap()}
}

// Keys returns the bindings, for the help view.
func (km *KeyMapper) Keys() PlayKeyMap {
	return km.keys
}

// MapKey translates a key message to an action.
// Returns the action (may be ActionNone) and whether it's a quit request.
func (km *KeyMapper) MapKey(msg tea.KeyMsg) (action core.Action, isQuit bool) {
	k := km.keys
	switch {
	case key.Matches(msg, k.Quit):
		return core.ActionQuit, true
	case key.Matches(msg, k.Start):
		return core.ActionStart, false
	case key.Matches(msg, k.Skip):
		return core.ActionSkip, false
	case key.Matches(msg, k.Faster):
		return core.ActionSpeedUp, false
	case key.Matches(msg, k.Slower):
		return core.ActionSpeedDown, false
	case key.Matches(msg, k.Blocks):
		return core.ActionBlocks, false
	case key.Matches(msg, k.ProbUp):
		return core.ActionProbUp, false
	case key.Matches(msg, k.ProbDown):
		return core.ActionProbDown, false
	case key.Matches(msg, k.Debug):
		return core.ActionDebug, false
	case key.Matches(msg, k.Reseed):
		return core.ActionReseed, false
	}
	return core.ActionNone, false
}

// MapKeyToFrame updates an input frame based on a key message.
// Returns true if the key was a quit request.
func (km *KeyMapper) MapKeyToFrame(msg tea.KeyMsg, frame *core.InputFrame) bool {
	action, isQuit := km.MapKey(msg)
	if action != core.ActionNone {
		frame.Set(action)
	}
	return isQuit
}
