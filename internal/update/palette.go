package update

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/sandeepkv93/remindd/internal/commands"
	"github.com/sandeepkv93/remindd/internal/store"
)

func (m Model) handlePaletteKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.closePalette()
		m.Status = StatusBar{Text: "command palette closed"}
	case "enter":
		m.Palette.Input = m.commandInput.Value()
		m = m.executePaletteCommand()
	default:
		if msg.Type == tea.KeyRunes || msg.Type == tea.KeySpace {
			text := string(msg.Runes)
			if msg.Type == tea.KeySpace {
				text = " "
			}
			m.commandInput.SetValue(m.commandInput.Value() + text)
			m.Palette.Input = m.commandInput.Value()
			return m, nil
		}
		var cmd tea.Cmd
		m.commandInput, cmd = m.commandInput.Update(msg)
		m.Palette.Input = m.commandInput.Value()
		return m, cmd
	}
	return m, nil
}

func (m *Model) closePalette() {
	m.Palette.Active = false
	m.Palette.Input = ""
	m.commandInput.SetValue("")
	m.commandInput.Blur()
}

func (m Model) executePaletteCommand() Model {
	raw := strings.TrimSpace(m.Palette.Input)
	m.closePalette()

	cmd, err := commands.Parse(raw)
	if err != nil {
		m.Status = StatusBar{Text: err.Error(), IsError: true}
		return m
	}

	res, err := commands.Execute(cmd, commands.Handlers{
		Add: func(a commands.AddArgs) (commands.Result, error) {
			if !m.allowWrite() {
				return commands.Result{}, nil
			}
			t, err := m.store.Create(m.ctx, a.Input)
			if t.ID != 0 {
				m.SelectedID = t.ID
			}
			return commands.Result{Message: fmt.Sprintf("added #%d %s", t.ID, t.Name)}, err
		},
		Edit: func(e commands.EditArgs) (commands.Result, error) {
			if !m.allowWrite() {
				return commands.Result{}, nil
			}
			t, err := m.store.Update(m.ctx, e.ID, e.Input)
			return commands.Result{Message: fmt.Sprintf("updated #%d %s", t.ID, t.Name)}, err
		},
		Done: func(a commands.TargetArgs) (commands.Result, error) {
			if !m.allowWrite() {
				return commands.Result{}, nil
			}
			msg, err := m.toggleCompleted(a.ID)
			return commands.Result{Message: msg}, err
		},
		Favorite: func(a commands.TargetArgs) (commands.Result, error) {
			if !m.allowWrite() {
				return commands.Result{}, nil
			}
			msg, err := m.toggleFavorite(a.ID)
			return commands.Result{Message: msg}, err
		},
		Delete: func(a commands.TargetArgs) (commands.Result, error) {
			if !m.allowWrite() {
				return commands.Result{}, nil
			}
			t, ok := m.store.Get(a.ID)
			if !ok {
				return commands.Result{}, fmt.Errorf("%w: %d", store.ErrNotFound, a.ID)
			}
			m.askDelete(t)
			return commands.Result{Message: m.Status.Text}, nil
		},
		Filter: func(f commands.FilterArgs) (commands.Result, error) {
			m.setFilter(f.Mode)
			return commands.Result{Message: m.Status.Text}, nil
		},
		Activate: func() (commands.Result, error) {
			m.activateAudio()
			if m.Status.IsError {
				return commands.Result{}, m.LastError
			}
			return commands.Result{Message: m.Status.Text}, nil
		},
	})
	if m.Mode == ModeConfirmOverwrite {
		return m
	}
	m.report(err, res.Message)
	m.clampSelection()
	return m
}
