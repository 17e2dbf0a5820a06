package update

import (
	"fmt"
	"strings"

	"github.com/sandeepkv93/remindd/internal/model"
	"github.com/sandeepkv93/remindd/internal/views"
)

func (m Model) View() string {
	body := m.renderTaskList()
	switch m.Mode {
	case ModeForm:
		body = m.renderForm()
	case ModeConfirm:
		if t, ok := m.store.Get(m.PendingDelete); ok {
			body += "\n\n" + views.RenderConfirmDelete(t.Name)
		}
	}

	side := strings.TrimSpace(strings.Join([]string{
		m.renderCommandPalette(),
		m.renderHelpIfVisible(),
	}, "\n"))

	tabs := m.renderFilterTabs()
	if prompt := views.RenderActivationPrompt(m.gate.Active()); prompt != "" {
		tabs += "\n" + prompt
	}

	total := 0
	if m.store != nil {
		total = m.store.Len()
	}
	return views.RenderApp(views.AppData{
		Header:     fmt.Sprintf("remindd | %d tasks | filter: %s", total, m.Filter.Label()),
		Tabs:       tabs,
		Body:       body,
		Side:       side,
		StatusLine: m.Status.Text,
		IsError:    m.Status.IsError,
		Toast:      m.currentToast(),
		Footer:     m.renderFooter(),
	})
}

func (m Model) currentToast() string {
	if m.toast == nil {
		return ""
	}
	text, ok := m.toast.Current(m.now())
	if !ok {
		return ""
	}
	return text
}

func (m Model) renderTaskList() string {
	tasks := m.VisibleTasks()
	rows := make([]views.TaskRow, 0, len(tasks))
	for _, t := range tasks {
		rows = append(rows, views.TaskRow{
			ID:        t.ID,
			Name:      t.Name,
			Time:      t.Time,
			Frequency: t.Frequency,
			Completed: t.Completed,
			Favorite:  t.Favorite,
		})
	}
	return views.RenderTaskList(views.TaskListData{Rows: rows, SelectedID: m.SelectedID})
}

func (m Model) renderFilterTabs() string {
	modes := model.FilterModes()
	tabs := make([]views.FilterTab, 0, len(modes))
	for i, mode := range modes {
		tabs = append(tabs, views.FilterTab{
			Label:  mode.Label(),
			Key:    fmt.Sprintf("%d", i+1),
			Active: mode == m.Filter,
		})
	}
	return views.RenderFilterTabs(tabs)
}

func (m Model) renderForm() string {
	title := "new task"
	if m.Form.EditingID != 0 {
		title = fmt.Sprintf("edit task #%d", m.Form.EditingID)
	}
	return views.RenderForm(views.FormData{
		Title:         title,
		NameView:      m.Form.inputs[fieldName].View(),
		TimeView:      m.Form.inputs[fieldTime].View(),
		FrequencyView: m.Form.inputs[fieldFrequency].View(),
		ErrorText:     m.Form.Err,
	})
}

func (m Model) renderCommandPalette() string {
	return views.RenderCommandPalette(m.Palette.Active, m.Palette.Input)
}
