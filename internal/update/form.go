package update

import (
	"errors"
	"fmt"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/sandeepkv93/remindd/internal/model"
)

// openForm starts the add form, or the edit form pre-filled from t.
func (m Model) openForm(t *model.Task) (tea.Model, tea.Cmd) {
	m.Form = newFormState()
	if t != nil {
		m.Form.EditingID = t.ID
		m.Form.inputs[fieldName].SetValue(t.Name)
		m.Form.inputs[fieldTime].SetValue(t.Time)
		m.Form.inputs[fieldFrequency].SetValue(t.Frequency)
	}
	m.Mode = ModeForm
	m.focusField(fieldName)
	return m, textinput.Blink
}

func (m Model) handleFormKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.Mode = ModeList
		m.Status = StatusBar{Text: "edit cancelled"}
		return m, nil
	case "tab", "down":
		m.focusField((m.Form.Focus + 1) % fieldCount)
		return m, nil
	case "shift+tab", "up":
		m.focusField((m.Form.Focus + fieldCount - 1) % fieldCount)
		return m, nil
	case "enter":
		return m.submitForm(), nil
	}
	var cmd tea.Cmd
	m.Form.inputs[m.Form.Focus], cmd = m.Form.inputs[m.Form.Focus].Update(msg)
	return m, cmd
}

func (m *Model) focusField(idx int) {
	m.Form.Focus = idx
	for i := range m.Form.inputs {
		if i == idx {
			m.Form.inputs[i].Focus()
		} else {
			m.Form.inputs[i].Blur()
		}
	}
}

func (m Model) formInput() model.TaskInput {
	return model.TaskInput{
		Name:      m.Form.inputs[fieldName].Value(),
		Time:      m.Form.inputs[fieldTime].Value(),
		Frequency: m.Form.inputs[fieldFrequency].Value(),
	}
}

// submitForm keeps the form open on validation errors so the user can fix
// the field; any other outcome closes it.
func (m Model) submitForm() Model {
	in := m.formInput()
	var (
		t   model.Task
		err error
		ok  string
	)
	if m.Form.EditingID == 0 {
		t, err = m.store.Create(m.ctx, in)
		ok = fmt.Sprintf("added #%d %s", t.ID, t.Name)
	} else {
		t, err = m.store.Update(m.ctx, m.Form.EditingID, in)
		ok = fmt.Sprintf("updated #%d %s", t.ID, t.Name)
	}
	if errors.Is(err, model.ErrValidation) {
		m.Form.Err = err.Error()
		return m
	}
	m.Mode = ModeList
	m.report(err, ok)
	if t.ID != 0 {
		m.SelectedID = t.ID
	}
	m.clampSelection()
	return m
}
