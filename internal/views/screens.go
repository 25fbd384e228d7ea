package views

import (
	"fmt"
	"strings"
)

type TaskItemData struct {
	Index     int
	Title     string
	DueDate   string
	DueTime   string
	Priority  string
	Reminder  string
	Completed bool
}

type TasksPanelData struct {
	View          string
	ListView      string
	Items         []TaskItemData
	SelectedIndex int
}

type FormPanelData struct {
	Mode       string
	FieldViews []string
	FieldNames []string
	Focused    int
	ErrorText  string
}

type AuthPanelData struct {
	Mode       string
	FieldViews []string
	FieldNames []string
	Focused    int
	ErrorText  string
}

type AlertModalData struct {
	Title   string
	DueDate string
	DueTime string
}

type HelpPanelData struct {
	CurrentView string
	Bindings    []string
	HelpView    string
}

type DetailPanelData struct {
	Title        string
	Priority     string
	DueDate      string
	DueTime      string
	Reminder     string
	Completed    bool
	MarkdownView string
}

func RenderTasksPanel(data TasksPanelData) string {
	var b strings.Builder
	b.WriteString(fmt.Sprintf("tasks (%s):\n", data.View))
	b.WriteString("actions: [j/k]move [a]add [e]edit [space]done [x]delete [y]copy [v]view\n")
	b.WriteString(data.ListView + "\n")
	if len(data.Items) == 0 {
		b.WriteString("(no tasks)")
		return strings.TrimSpace(b.String())
	}
	for i, item := range data.Items {
		cursor := " "
		if i == data.SelectedIndex {
			cursor = ">"
		}
		check := "[ ]"
		if item.Completed {
			check = "[x]"
		}
		b.WriteString(fmt.Sprintf("%s %d. %s %s %s", cursor, item.Index, check, priorityBadge(item.Priority), item.Title))
		if item.DueDate != "" {
			b.WriteString(" due:" + item.DueDate)
			if item.DueTime != "" {
				b.WriteString(" " + item.DueTime)
			}
		}
		if item.Reminder != "" {
			b.WriteString(" remind:" + item.Reminder)
		}
		b.WriteString("\n")
	}
	return strings.TrimSpace(b.String())
}

func RenderFormPanel(data FormPanelData) string {
	var b strings.Builder
	b.WriteString(fmt.Sprintf("%s task:\n", data.Mode))
	b.WriteString("keys: [tab]next field [enter]save [esc]cancel\n")
	for i, view := range data.FieldViews {
		marker := " "
		if i == data.Focused {
			marker = ">"
		}
		b.WriteString(fmt.Sprintf("%s %s: %s\n", marker, data.FieldNames[i], view))
	}
	if data.ErrorText != "" {
		b.WriteString("error: " + data.ErrorText)
	}
	return strings.TrimSpace(b.String())
}

func RenderAuthPanel(data AuthPanelData) string {
	var b strings.Builder
	b.WriteString(fmt.Sprintf("%s:\n", data.Mode))
	b.WriteString("keys: [tab]next field [enter]submit [ctrl+s]switch sign-in/sign-up\n")
	for i, view := range data.FieldViews {
		marker := " "
		if i == data.Focused {
			marker = ">"
		}
		b.WriteString(fmt.Sprintf("%s %s: %s\n", marker, data.FieldNames[i], view))
	}
	if data.ErrorText != "" {
		b.WriteString("error: " + data.ErrorText)
	}
	return strings.TrimSpace(b.String())
}

func RenderAlertModal(data AlertModalData) string {
	var b strings.Builder
	b.WriteString("TASK REMINDER\n\n")
	b.WriteString(data.Title + "\n")
	when := ""
	if data.DueTime != "" {
		when = fmt.Sprintf("due at %s on %s", data.DueTime, data.DueDate)
	} else if data.DueDate != "" {
		when = fmt.Sprintf("due on %s", data.DueDate)
	}
	if when != "" {
		b.WriteString(when + "\n")
	}
	b.WriteString("\npress [enter] or [esc] to dismiss")
	return b.String()
}

func RenderCommandPalette(active bool, input string) string {
	if !active {
		return ""
	}
	return fmt.Sprintf("command: /%s", input)
}

func RenderHelpPanel(data HelpPanelData) string {
	return fmt.Sprintf("help:\nglobal:\n%s view:\n%s\n%s",
		strings.ToLower(data.CurrentView),
		strings.Join(data.Bindings, "\n"),
		data.HelpView,
	)
}

func RenderDetailPanel(data DetailPanelData) string {
	if strings.TrimSpace(data.Title) == "" {
		return "detail:\n(no selection)"
	}
	var b strings.Builder
	b.WriteString("detail:\n")
	b.WriteString("title: " + data.Title + "\n")
	b.WriteString("priority: " + data.Priority + "\n")
	if data.DueDate != "" {
		b.WriteString("due: " + data.DueDate)
		if data.DueTime != "" {
			b.WriteString(" " + data.DueTime)
		}
		b.WriteString("\n")
	}
	if data.Reminder != "" {
		b.WriteString("reminder: " + data.Reminder + "\n")
	}
	if data.Completed {
		b.WriteString("state: completed\n")
	} else {
		b.WriteString("state: open\n")
	}
	if data.MarkdownView != "" {
		b.WriteString("\nnotes:\n" + data.MarkdownView)
	}
	return strings.TrimSpace(b.String())
}

func priorityBadge(priority string) string {
	switch strings.ToLower(priority) {
	case "high":
		return "[RED]"
	case "medium":
		return "[YELLOW]"
	default:
		return "[GREEN]"
	}
}
