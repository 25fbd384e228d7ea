package update

import (
	"fmt"
	"strings"

	"github.com/atotto/clipboard"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/sandeepkv93/taskflow/internal/model"
	"github.com/sandeepkv93/taskflow/internal/notify"
	"github.com/sandeepkv93/taskflow/internal/storage"
	"github.com/sandeepkv93/taskflow/internal/views"
)

var listViewCycle = []storage.TaskListView{
	storage.ViewAll,
	storage.ViewToday,
	storage.ViewUpcoming,
	storage.ViewCompleted,
	storage.ViewPriority,
}

func (m Model) handleTasksKey(msg tea.KeyMsg) Model {
	switch msg.String() {
	case "j", "down":
		if m.Cursor < len(m.Tasks)-1 {
			m.Cursor++
		}
	case "k", "up":
		if m.Cursor > 0 {
			m.Cursor--
		}
	case m.Keys.Add:
		return m.openAddForm()
	case m.Keys.Edit:
		if t, ok := m.selectedTask(); ok {
			return m.openEditForm(t)
		}
		m.Status = StatusBar{Text: "no task selected", IsError: true}
	case m.Keys.Toggle, "space":
		return m.toggleSelectedDone()
	case m.Keys.Delete:
		return m.deleteSelected()
	case m.Keys.Copy:
		return m.copySelected()
	case m.Keys.CycleV:
		m.ListView = nextListView(m.ListView)
		m = m.refreshTasks()
		m.Status = StatusBar{Text: fmt.Sprintf("view: %s", viewLabel(m.ListView)), IsError: false}
	case m.Keys.Refresh:
		m = m.refreshTasks()
		m.Status = StatusBar{Text: "tasks reloaded", IsError: false}
	}
	return m
}

func (m Model) toggleSelectedDone() Model {
	t, ok := m.selectedTask()
	if !ok {
		m.Status = StatusBar{Text: "no task selected", IsError: true}
		return m
	}
	updated, err := m.tasksSvc.SetCompleted(m.ctx, m.Session.UserID, t.ID, !t.Completed)
	if err != nil {
		m.LastError = err
		m.Status = StatusBar{Text: err.Error(), IsError: true}
		return m
	}
	m = m.refreshTasks()
	if updated.Completed {
		m.Status = StatusBar{Text: fmt.Sprintf("completed: %s", updated.Title), IsError: false}
	} else {
		m.Status = StatusBar{Text: fmt.Sprintf("reopened: %s", updated.Title), IsError: false}
	}
	return m
}

func (m Model) deleteSelected() Model {
	t, ok := m.selectedTask()
	if !ok {
		m.Status = StatusBar{Text: "no task selected", IsError: true}
		return m
	}
	if err := m.tasksSvc.Delete(m.ctx, m.Session.UserID, t.ID); err != nil {
		m.LastError = err
		m.Status = StatusBar{Text: err.Error(), IsError: true}
		return m
	}
	m = m.refreshTasks()
	m.Status = StatusBar{Text: fmt.Sprintf("deleted: %s", t.Title), IsError: false}
	return m
}

func (m Model) copySelected() Model {
	t, ok := m.selectedTask()
	if !ok {
		m.Status = StatusBar{Text: "no task selected", IsError: true}
		return m
	}
	text := t.Title
	if t.DueDate != "" {
		text += " (" + notify.DueDescription(t.DueDate, t.DueTime) + ")"
	}
	if err := clipboard.WriteAll(text); err != nil {
		m.Status = StatusBar{Text: "clipboard unavailable: " + err.Error(), IsError: true}
		return m
	}
	m.Status = StatusBar{Text: fmt.Sprintf("copied: %s", t.Title), IsError: false}
	return m
}

func (m Model) refreshTasks() Model {
	if m.tasksSvc == nil || m.Session.UserID == "" {
		return m
	}
	items, err := m.tasksSvc.List(m.ctx, m.Session.UserID, m.ListView)
	if err != nil {
		m.LastError = err
		m.Status = StatusBar{Text: err.Error(), IsError: true}
		return m
	}
	m.Tasks = items
	if m.Cursor >= len(items) {
		m.Cursor = len(items) - 1
	}
	if m.Cursor < 0 {
		m.Cursor = 0
	}
	return m
}

func (m Model) renderTasksView() string {
	items := make([]views.TaskItemData, 0, len(m.Tasks))
	for i, t := range m.Tasks {
		items = append(items, views.TaskItemData{
			Index:     i + 1,
			Title:     t.Title,
			DueDate:   t.DueDate,
			DueTime:   t.DueTime,
			Priority:  string(t.Priority),
			Reminder:  reminderLabel(t),
			Completed: t.Completed,
		})
	}
	return views.RenderTasksPanel(views.TasksPanelData{
		View:          viewLabel(m.ListView),
		ListView:      m.taskList.View(),
		Items:         items,
		SelectedIndex: m.Cursor,
	})
}

func (m Model) renderDetailPane() string {
	t, ok := m.selectedTask()
	if !ok {
		return views.RenderDetailPanel(views.DetailPanelData{})
	}
	return views.RenderDetailPanel(views.DetailPanelData{
		Title:        t.Title,
		Priority:     string(t.Priority),
		DueDate:      notify.FormatDueDate(t.DueDate),
		DueTime:      notify.FormatDueTime(t.DueTime),
		Reminder:     reminderLabel(t),
		Completed:    t.Completed,
		MarkdownView: m.detailViewport.View(),
	})
}

func (m Model) renderCommandPalette() string {
	return views.RenderCommandPalette(m.Palette.Active, m.Palette.Input)
}

func renderTaskNotes(notes string) string {
	if strings.TrimSpace(notes) == "" {
		return ""
	}
	return views.RenderMarkdown(notes)
}

func reminderLabel(t model.Task) string {
	if t.Reminder == nil {
		return ""
	}
	return fmt.Sprintf("%dm", *t.Reminder)
}

func nextListView(current storage.TaskListView) storage.TaskListView {
	for i, v := range listViewCycle {
		if v == current {
			return listViewCycle[(i+1)%len(listViewCycle)]
		}
	}
	return storage.ViewAll
}

func viewLabel(v storage.TaskListView) string {
	if v == storage.ViewAll {
		return "all"
	}
	return string(v)
}
