package update

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/sandeepkv93/taskflow/internal/notify"
	"github.com/sandeepkv93/taskflow/internal/views"
)

func (m Model) Init() tea.Cmd {
	if m.presenter != nil {
		return waitForAlertCmd(m.presenter.Events())
	}
	return nil
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	next, cmd := m.update(msg)
	next.syncBubbleData()
	return next, cmd
}

func (m Model) update(msg tea.Msg) (Model, tea.Cmd) {
	switch typed := msg.(type) {
	case tea.KeyMsg:
		keyStr := typed.String()

		// A visible reminder modal captures all input until dismissed.
		if m.Alert != nil {
			if keyStr == "enter" || keyStr == "esc" {
				m = m.dismissAlert()
			}
			return m, nil
		}

		if keyStr == "ctrl+c" {
			m.Quitting = true
			return m, tea.Quit
		}

		if m.Palette.Active {
			if keyStr == m.Keys.Help {
				m.HelpVisible = !m.HelpVisible
				return m, nil
			}
			next := m.handlePaletteKey(typed)
			return next, nil
		}

		switch m.CurrentView {
		case ViewAuth:
			return m.handleAuthKey(typed), nil
		case ViewForm:
			return m.handleFormKey(typed), nil
		}

		switch keyStr {
		case "/":
			m.Palette.Active = true
			m.Palette.Input = ""
			m.commandInput.Focus()
			m.commandInput.SetValue("")
			m.Status = StatusBar{Text: "command palette active", IsError: false}
			return m, nil
		case m.Keys.Help:
			m.HelpVisible = !m.HelpVisible
			if m.HelpVisible {
				m.Status = StatusBar{Text: "help shown", IsError: false}
			} else {
				m.Status = StatusBar{Text: "help hidden", IsError: false}
			}
			return m, nil
		case m.Keys.Quit:
			m.Quitting = true
			return m, tea.Quit
		}
		return m.handleTasksKey(typed), nil
	case SwitchViewMsg:
		if isKnownView(typed.View) {
			m.CurrentView = typed.View
			if typed.View == ViewForm {
				m = m.openAddForm()
			}
		}
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
	case TasksReloadedMsg:
		m = m.refreshTasks()
		return m, nil
	case AlertFiredMsg:
		ev := typed.Event
		m.Alert = &ev
		m.Status = StatusBar{Text: fmt.Sprintf("reminder: %s", ev.Title), IsError: false}
		if m.presenter != nil {
			return m, waitForAlertCmd(m.presenter.Events())
		}
		return m, nil
	}

	return m, nil
}

func (m Model) View() string {
	status := ""
	if m.Status.Text != "" {
		if m.Status.IsError {
			status = fmt.Sprintf("status: error: %s", m.Status.Text)
		} else {
			status = fmt.Sprintf("status: %s", m.Status.Text)
		}
	}

	body := ""
	side := ""
	switch m.CurrentView {
	case ViewAuth:
		body = m.renderAuthView()
		side = m.renderHelpIfVisible()
	case ViewForm:
		body = m.renderFormView()
		side = m.renderHelpIfVisible()
	default:
		body = m.renderTasksView()
		side = m.renderDetailPane() + m.renderCommandPalette() + m.renderHelpIfVisible()
	}

	alert := ""
	if m.Alert != nil {
		alert = views.RenderAlertModal(views.AlertModalData{
			Title:   m.Alert.Title,
			DueDate: notify.FormatDueDate(m.Alert.DueDate),
			DueTime: notify.FormatDueTime(m.Alert.DueTime),
		})
	}

	who := "(signed out)"
	if m.Session.Email != "" {
		who = m.Session.Email
	}
	return views.RenderApp(views.AppData{
		Header:     fmt.Sprintf("taskflow | view: %s | user: %s", m.CurrentView, who),
		Body:       body,
		SidePane:   side,
		StatusLine: status,
		Alert:      alert,
		Footer: fmt.Sprintf("keys: %s add | %s edit | %s done | %s delete | %s copy | %s view | / cmd | %s help | %s quit",
			m.Keys.Add, m.Keys.Edit, "space", m.Keys.Delete, m.Keys.Copy, m.Keys.CycleV, m.Keys.Help, m.Keys.Quit),
	})
}

func (m Model) dismissAlert() Model {
	if m.presenter != nil {
		m.presenter.Dismiss()
	}
	m.Alert = nil
	m.Status = StatusBar{Text: "reminder dismissed", IsError: false}
	return m
}

func waitForAlertCmd(ch <-chan notify.AlertEvent) tea.Cmd {
	if ch == nil {
		return nil
	}
	return func() tea.Msg {
		ev, ok := <-ch
		if !ok {
			return nil
		}
		return AlertFiredMsg{Event: ev}
	}
}

func isKnownView(v View) bool {
	switch v {
	case ViewAuth, ViewTasks, ViewForm:
		return true
	default:
		return false
	}
}
