package update

import (
	"errors"
	"fmt"
	"strconv"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/sandeepkv93/remindd/internal/model"
	"github.com/sandeepkv93/remindd/internal/store"
)

func (m Model) Init() tea.Cmd {
	if m.scheduler != nil {
		return waitForAlarmCmd(m.scheduler.C())
	}
	return nil
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch typed := msg.(type) {
	case tea.KeyMsg:
		if typed.String() == "ctrl+c" {
			m.Quitting = true
			return m, tea.Quit
		}
		if m.Palette.Active {
			return m.handlePaletteKey(typed)
		}
		switch m.Mode {
		case ModeForm:
			return m.handleFormKey(typed)
		case ModeConfirm:
			return m.handleConfirmKey(typed), nil
		case ModeConfirmOverwrite:
			return m.handleConfirmOverwriteKey(typed), nil
		}
		return m.handleListKey(typed)
	case AlarmFiredMsg:
		return m.handleAlarm(typed.Event)
	case ToastExpiredMsg:
		return m, nil
	case SetStatusMsg:
		m.Status = StatusBar{Text: typed.Text, IsError: typed.IsError}
		return m, nil
	case ClearStatusMsg:
		m.Status = StatusBar{}
		return m, nil
	case AppErrorMsg:
		m.LastError = typed.Err
		if typed.Err != nil {
			m.Status = StatusBar{Text: typed.Err.Error(), IsError: true}
		}
		return m, nil
	}
	return m, nil
}

func (m Model) handleListKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	keyStr := msg.String()
	switch keyStr {
	case "up", "k":
		m.moveSelection(-1)
	case "down", "j":
		m.moveSelection(1)
	case m.Keys.Add:
		if !m.allowWrite() {
			return m, nil
		}
		return m.openForm(nil)
	case m.Keys.Edit:
		if !m.allowWrite() {
			return m, nil
		}
		t, ok := m.selectedTask()
		if !ok {
			m.Status = StatusBar{Text: "no task selected", IsError: true}
			return m, nil
		}
		return m.openForm(&t)
	case m.Keys.Toggle:
		if t, ok := m.selectedTask(); ok && m.allowWrite() {
			text, err := m.toggleCompleted(t.ID)
			m.report(err, text)
			m.clampSelection()
		}
	case m.Keys.Favorite:
		if t, ok := m.selectedTask(); ok && m.allowWrite() {
			text, err := m.toggleFavorite(t.ID)
			m.report(err, text)
			m.clampSelection()
		}
	case m.Keys.Delete:
		if t, ok := m.selectedTask(); ok && m.allowWrite() {
			m.askDelete(t)
		}
	case m.Keys.Filter:
		m.setFilter(m.Filter.Next())
	case "1", "2", "3", "4":
		idx, _ := strconv.Atoi(keyStr)
		m.setFilter(model.FilterModes()[idx-1])
	case m.Keys.Activate:
		m.activateAudio()
	case m.Keys.Palette:
		m.Palette.Active = true
		m.Palette.Input = ""
		m.commandInput.SetValue("")
		m.commandInput.Focus()
		m.Status = StatusBar{Text: "command palette active"}
	case m.Keys.Help:
		m.HelpVisible = !m.HelpVisible
	case m.Keys.Quit:
		m.Quitting = true
		return m, tea.Quit
	}
	return m, nil
}

func (m Model) handleConfirmKey(msg tea.KeyMsg) Model {
	switch msg.String() {
	case "y", "Y":
		id := m.PendingDelete
		m.Mode = ModeList
		m.PendingDelete = 0
		err := m.store.Delete(m.ctx, id)
		m.report(err, fmt.Sprintf("deleted #%d", id))
		m.clampSelection()
	case "n", "N", "esc":
		m.Mode = ModeList
		m.PendingDelete = 0
		m.Status = StatusBar{Text: "delete cancelled"}
	}
	return m
}

// allowWrite lets a mutation through unless the startup load failed, in
// which case it switches to the overwrite prompt instead.
func (m *Model) allowWrite() bool {
	if !m.readOnly {
		return true
	}
	m.Mode = ModeConfirmOverwrite
	m.Status = StatusBar{Text: "saved tasks could not be read; replace them with this session's tasks? (y/n)", IsError: true}
	return false
}

func (m Model) handleConfirmOverwriteKey(msg tea.KeyMsg) Model {
	switch msg.String() {
	case "y", "Y":
		m.readOnly = false
		m.Mode = ModeList
		m.Status = StatusBar{Text: "changes enabled; the next save replaces the unreadable snapshot"}
		m.log.Warn("user allowed overwriting unreadable task snapshot")
	case "n", "N", "esc":
		m.Mode = ModeList
		m.Status = StatusBar{Text: "changes disabled; saved tasks left untouched"}
	}
	return m
}

func (m *Model) askDelete(t model.Task) {
	m.Mode = ModeConfirm
	m.PendingDelete = t.ID
	m.Status = StatusBar{Text: fmt.Sprintf("delete %q?", t.Name)}
}

func (m *Model) toggleCompleted(id int64) (string, error) {
	t, err := m.store.ToggleCompleted(m.ctx, id)
	state := "reopened"
	if t.Completed {
		state = "completed"
	}
	return fmt.Sprintf("%s #%d %s", state, t.ID, t.Name), err
}

func (m *Model) toggleFavorite(id int64) (string, error) {
	t, err := m.store.ToggleFavorite(m.ctx, id)
	state := "unstarred"
	if t.Favorite {
		state = "starred"
	}
	return fmt.Sprintf("%s #%d %s", state, t.ID, t.Name), err
}

func (m *Model) setFilter(mode model.FilterMode) {
	m.Filter = mode
	m.clampSelection()
	m.Status = StatusBar{Text: "filter: " + mode.Label()}
}

func (m *Model) activateAudio() {
	if err := m.gate.Activate(); err != nil {
		m.LastError = err
		m.Status = StatusBar{Text: fmt.Sprintf("sound alerts unavailable: %v", err), IsError: true}
		m.log.Warn("audio activation failed", zap.Error(err))
		return
	}
	m.Status = StatusBar{Text: "sound alerts enabled"}
}

// report turns a store result into the status line. A persistence failure
// still leaves the change visible, so the message says so.
func (m *Model) report(err error, okText string) {
	switch {
	case err == nil:
		m.Status = StatusBar{Text: okText}
	case errors.Is(err, store.ErrPersistence):
		m.LastError = err
		m.Status = StatusBar{Text: fmt.Sprintf("%s (not saved: %v)", okText, err), IsError: true}
		m.log.Error("save failed", zap.Error(err))
	default:
		m.LastError = err
		m.Status = StatusBar{Text: err.Error(), IsError: true}
	}
}

func (m *Model) moveSelection(delta int) {
	tasks := m.VisibleTasks()
	if len(tasks) == 0 {
		m.SelectedID = 0
		return
	}
	idx := indexOf(tasks, m.SelectedID)
	if idx < 0 {
		idx = 0
	} else {
		idx = clamp(idx+delta, 0, len(tasks)-1)
	}
	m.SelectedID = tasks[idx].ID
}

// clampSelection keeps SelectedID pointing at a visible task.
func (m *Model) clampSelection() {
	tasks := m.VisibleTasks()
	if len(tasks) == 0 {
		m.SelectedID = 0
		return
	}
	if indexOf(tasks, m.SelectedID) < 0 {
		m.SelectedID = tasks[0].ID
	}
}
