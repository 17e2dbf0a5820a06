package update

import (
	"errors"
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/sandeepkv93/remindd/internal/alarm"
	"github.com/sandeepkv93/remindd/internal/notify"
)

// waitForAlarmCmd blocks on the scheduler channel for the next event. A
// closed channel ends the chain.
func waitForAlarmCmd(ch <-chan alarm.Event) tea.Cmd {
	if ch == nil {
		return nil
	}
	return func() tea.Msg {
		ev, ok := <-ch
		if !ok {
			return nil
		}
		return AlarmFiredMsg{Event: ev}
	}
}

func toastExpiryCmd(d time.Duration) tea.Cmd {
	return tea.Tick(d, func(time.Time) tea.Msg { return ToastExpiredMsg{} })
}

func (m Model) handleAlarm(ev alarm.Event) (tea.Model, tea.Cmd) {
	m.LastAlarm = &ev
	text := fmt.Sprintf("reminder: %s (%s)", ev.Name, ev.Time)
	if ev.AudioErr != nil {
		if errors.Is(ev.AudioErr, notify.ErrChannelUnavailable) {
			text += " [sound off, press A]"
		} else {
			text += fmt.Sprintf(" [sound failed: %v]", ev.AudioErr)
		}
	}
	m.Status = StatusBar{Text: text}

	cmds := make([]tea.Cmd, 0, 2)
	if m.toast != nil {
		cmds = append(cmds, toastExpiryCmd(m.toast.Duration()))
	}
	if m.scheduler != nil {
		cmds = append(cmds, waitForAlarmCmd(m.scheduler.C()))
	}
	return m, tea.Batch(cmds...)
}
