package update

import (
	"fmt"
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/sandeepkv93/taskflow/internal/commands"
	"github.com/sandeepkv93/taskflow/internal/importer"
	"github.com/sandeepkv93/taskflow/internal/model"
	"github.com/sandeepkv93/taskflow/internal/storage"
	"github.com/sandeepkv93/taskflow/internal/tasks"
)

func (m Model) handlePaletteKey(msg tea.KeyMsg) Model {
	switch msg.String() {
	case "esc":
		m.Palette.Active = false
		m.Palette.Input = ""
		m.commandInput.SetValue("")
		m.commandInput.Blur()
		m.Status = StatusBar{Text: "command palette closed", IsError: false}
	case "enter":
		m.Palette.Input = m.commandInput.Value()
		m = m.executePaletteCommand()
	default:
		if msg.Type == tea.KeyRunes {
			m.commandInput.SetValue(m.commandInput.Value() + string(msg.Runes))
			m.Palette.Input = m.commandInput.Value()
			return m
		}
		var cmd tea.Cmd
		m.commandInput, cmd = m.commandInput.Update(msg)
		_ = cmd
		m.Palette.Input = m.commandInput.Value()
	}
	return m
}

func (m Model) executePaletteCommand() Model {
	raw := strings.TrimSpace(m.Palette.Input)
	cmd, err := commands.Parse(raw)
	if err != nil {
		m.Status = StatusBar{Text: err.Error(), IsError: true}
		m.Palette.Active = false
		m.Palette.Input = ""
		return m
	}

	res, err := commands.Execute(cmd, commands.Handlers{
		Add: func(a commands.AddArgs) (commands.Result, error) {
			created, err := m.tasksSvc.Create(m.ctx, m.Session.UserID, tasks.Input{Title: a.Title})
			if err != nil {
				return commands.Result{}, err
			}
			return commands.Result{Message: fmt.Sprintf("added task: %s", created.Title)}, nil
		},
		Done: func(a commands.DoneArgs) (commands.Result, error) {
			t, err := m.resolveTarget(a.Target)
			if err != nil {
				return commands.Result{}, err
			}
			if _, err := m.tasksSvc.SetCompleted(m.ctx, m.Session.UserID, t.ID, true); err != nil {
				return commands.Result{}, err
			}
			return commands.Result{Message: fmt.Sprintf("completed: %s", t.Title)}, nil
		},
		Delete: func(a commands.DeleteArgs) (commands.Result, error) {
			t, err := m.resolveTarget(a.Target)
			if err != nil {
				return commands.Result{}, err
			}
			if err := m.tasksSvc.Delete(m.ctx, m.Session.UserID, t.ID); err != nil {
				return commands.Result{}, err
			}
			return commands.Result{Message: fmt.Sprintf("deleted: %s", t.Title)}, nil
		},
		Remind: func(a commands.RemindArgs) (commands.Result, error) {
			t, err := m.resolveTarget(a.Target)
			if err != nil {
				return commands.Result{}, err
			}
			minutes := a.Minutes
			if _, err := m.tasksSvc.Update(m.ctx, m.Session.UserID, t.ID, inputFromTask(t, &minutes)); err != nil {
				return commands.Result{}, err
			}
			return commands.Result{Message: fmt.Sprintf("reminder set: %s (%d min before due)", t.Title, minutes)}, nil
		},
		ClearReminder: func(a commands.ClearReminderArgs) (commands.Result, error) {
			t, err := m.resolveTarget(a.Target)
			if err != nil {
				return commands.Result{}, err
			}
			if _, err := m.tasksSvc.Update(m.ctx, m.Session.UserID, t.ID, inputFromTask(t, nil)); err != nil {
				return commands.Result{}, err
			}
			return commands.Result{Message: fmt.Sprintf("reminder cleared: %s", t.Title)}, nil
		},
		Show: func(a commands.ShowArgs) (commands.Result, error) {
			switch a.View {
			case "all":
				m.ListView = storage.ViewAll
			default:
				m.ListView = storage.TaskListView(a.View)
			}
			return commands.Result{Message: fmt.Sprintf("show %s", a.View)}, nil
		},
		Import: func(a commands.ImportArgs) (commands.Result, error) {
			count, err := importer.ImportFile(m.ctx, m.tasksSvc, m.Session.UserID, a.Path)
			if err != nil {
				return commands.Result{}, err
			}
			return commands.Result{Message: fmt.Sprintf("imported %d task(s) from %s", count, a.Path)}, nil
		},
	})
	if err != nil {
		m.Status = StatusBar{Text: err.Error(), IsError: true}
	} else {
		m.Status = StatusBar{Text: res.Message, IsError: false}
		m = m.refreshTasks()
	}

	m.Palette.Active = false
	m.Palette.Input = ""
	m.commandInput.SetValue("")
	return m
}

// resolveTarget maps a 1-based list position from the rendered task
// panel onto the backing task.
func (m Model) resolveTarget(target string) (model.Task, error) {
	idx, err := strconv.Atoi(target)
	if err != nil || idx < 1 || idx > len(m.Tasks) {
		return model.Task{}, &commands.CommandError{
			Code:    commands.ErrCodeInvalidArgument,
			Message: fmt.Sprintf("no task at position %s", target),
		}
	}
	return m.Tasks[idx-1], nil
}

func inputFromTask(t model.Task, reminder *int) tasks.Input {
	return tasks.Input{
		Title:       t.Title,
		Description: t.Description,
		DueDate:     t.DueDate,
		DueTime:     t.DueTime,
		Priority:    t.Priority,
		Reminder:    reminder,
	}
}
