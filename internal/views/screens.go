package views

import (
	"fmt"
	"strings"
)

const EmptyListText = "no tasks found"

type TaskRow struct {
	ID        int64
	Name      string
	Time      string
	Frequency string
	Completed bool
	Favorite  bool
}

type TaskListData struct {
	Rows       []TaskRow
	SelectedID int64
}

type FilterTab struct {
	Label  string
	Key    string
	Active bool
}

type FormData struct {
	Title         string
	NameView      string
	TimeView      string
	FrequencyView string
	ErrorText     string
}

type HelpPanelData struct {
	Bindings [][2]string
	Grammar  []string
}

func RenderFilterTabs(tabs []FilterTab) string {
	parts := make([]string, 0, len(tabs))
	for _, tab := range tabs {
		label := fmt.Sprintf("[%s] %s", tab.Key, tab.Label)
		if tab.Active {
			parts = append(parts, activeTabStyle.Render(label))
		} else {
			parts = append(parts, tabStyle.Render(label))
		}
	}
	return strings.Join(parts, "  ")
}

func RenderTaskList(data TaskListData) string {
	if len(data.Rows) == 0 {
		return EmptyListText
	}
	var b strings.Builder
	for _, row := range data.Rows {
		cursor := " "
		if row.ID == data.SelectedID {
			cursor = ">"
		}
		check := "[ ]"
		if row.Completed {
			check = "[x]"
		}
		star := " "
		if row.Favorite {
			star = "*"
		}
		line := fmt.Sprintf("%s %s %s %s %s", cursor, check, star, row.Time, row.Name)
		if row.Frequency != "" {
			line += fmt.Sprintf(" (%s)", row.Frequency)
		}
		if row.Completed {
			line = doneStyle.Render(line)
		}
		b.WriteString(line + "\n")
	}
	return strings.TrimSuffix(b.String(), "\n")
}

func RenderForm(data FormData) string {
	var b strings.Builder
	b.WriteString(data.Title + ":\n")
	b.WriteString("name:      " + data.NameView + "\n")
	b.WriteString("time:      " + data.TimeView + "\n")
	b.WriteString("frequency: " + data.FrequencyView + "\n")
	b.WriteString("keys: [tab] next field [enter] save [esc] cancel")
	if data.ErrorText != "" {
		b.WriteString("\n" + errorStyle.Render("error: "+data.ErrorText))
	}
	return b.String()
}

func RenderConfirmDelete(name string) string {
	return promptStyle.Render(fmt.Sprintf("Delete %q? [y] yes [n] no", name))
}

// RenderActivationPrompt is shown until audio alerts have been enabled.
func RenderActivationPrompt(active bool) string {
	if active {
		return ""
	}
	return promptStyle.Render("Sound alerts are off. Press [A] to enable alarm sounds.")
}

func RenderCommandPalette(active bool, input string) string {
	if !active {
		return ""
	}
	return fmt.Sprintf("command: /%s", input)
}

func RenderHelpPanel(data HelpPanelData) string {
	var md strings.Builder
	md.WriteString("# Keys\n\n| key | action |\n|---|---|\n")
	for _, kb := range data.Bindings {
		md.WriteString(fmt.Sprintf("| `%s` | %s |\n", kb[0], kb[1]))
	}
	if len(data.Grammar) > 0 {
		md.WriteString("\n# Commands\n\n")
		for _, g := range data.Grammar {
			md.WriteString(fmt.Sprintf("- `%s`\n", g))
		}
	}
	return RenderMarkdown(md.String())
}
