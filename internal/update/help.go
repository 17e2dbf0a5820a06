package update

import (
	"github.com/charmbracelet/bubbles/key"

	"github.com/sandeepkv93/remindd/internal/views"
)

type KeyBinding struct {
	Key    string
	Action string
}

type helpKeyMap struct {
	short []key.Binding
	full  [][]key.Binding
}

func (k helpKeyMap) ShortHelp() []key.Binding  { return k.short }
func (k helpKeyMap) FullHelp() [][]key.Binding { return k.full }

var paletteGrammar = []string{
	"/add HH:MM <frequency> <name...>",
	"/edit <id> HH:MM <frequency> <name...>",
	"/done <id>",
	"/fav <id>",
	"/del <id>",
	"/filter all|pending|completed|favorites",
	"/activate",
}

func (m Model) renderHelpIfVisible() string {
	if !m.HelpVisible {
		return ""
	}
	plain := make([][2]string, 0, len(m.globalBindings()))
	for _, kb := range m.globalBindings() {
		plain = append(plain, [2]string{kb.Key, kb.Action})
	}
	return views.RenderHelpPanel(views.HelpPanelData{Bindings: plain, Grammar: paletteGrammar})
}

func (m Model) globalBindings() []KeyBinding {
	return []KeyBinding{
		{Key: "j/k", Action: "move selection"},
		{Key: m.Keys.Add, Action: "add task"},
		{Key: m.Keys.Edit, Action: "edit selected task"},
		{Key: "space", Action: "toggle completed"},
		{Key: m.Keys.Favorite, Action: "toggle favorite"},
		{Key: m.Keys.Delete, Action: "delete (asks y/n)"},
		{Key: m.Keys.Filter + "/1-4", Action: "switch filter"},
		{Key: m.Keys.Activate, Action: "enable alarm sound"},
		{Key: m.Keys.Palette, Action: "open command palette"},
		{Key: m.Keys.Help, Action: "toggle help panel"},
		{Key: m.Keys.Quit, Action: "quit"},
	}
}

func (m Model) modeBindings() []KeyBinding {
	if m.Palette.Active {
		return []KeyBinding{{Key: "enter", Action: "run"}, {Key: "esc", Action: "close"}}
	}
	switch m.Mode {
	case ModeForm:
		return []KeyBinding{{Key: "tab", Action: "next field"}, {Key: "enter", Action: "save"}, {Key: "esc", Action: "cancel"}}
	case ModeConfirm:
		return []KeyBinding{{Key: "y", Action: "delete"}, {Key: "n", Action: "keep"}}
	case ModeConfirmOverwrite:
		return []KeyBinding{{Key: "y", Action: "allow changes"}, {Key: "n", Action: "stay read-only"}}
	default:
		return []KeyBinding{
			{Key: m.Keys.Add, Action: "add"},
			{Key: "space", Action: "done"},
			{Key: m.Keys.Favorite, Action: "fav"},
			{Key: m.Keys.Delete, Action: "delete"},
			{Key: m.Keys.Filter, Action: "filter"},
			{Key: m.Keys.Help, Action: "help"},
			{Key: m.Keys.Quit, Action: "quit"},
		}
	}
}

func (m Model) renderFooter() string {
	bindings := make([]key.Binding, 0, len(m.modeBindings()))
	for _, kb := range m.modeBindings() {
		bindings = append(bindings, key.NewBinding(key.WithKeys(kb.Key), key.WithHelp(kb.Key, kb.Action)))
	}
	return m.helpModel.ShortHelpView(helpKeyMap{short: bindings}.ShortHelp())
}
