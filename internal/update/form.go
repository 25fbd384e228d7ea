package update

import (
	"fmt"
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/sandeepkv93/taskflow/internal/model"
	"github.com/sandeepkv93/taskflow/internal/tasks"
	"github.com/sandeepkv93/taskflow/internal/views"
)

const (
	formFieldTitle = iota
	formFieldDescription
	formFieldDueDate
	formFieldDueTime
	formFieldPriority
	formFieldReminder
)

func (m Model) openAddForm() Model {
	m.CurrentView = ViewForm
	m.Form = FormState{Mode: FormModeAdd}
	for i := range m.formInputs {
		m.formInputs[i].SetValue("")
	}
	m.formInputs[formFieldPriority].SetValue(string(model.PriorityMedium))
	m.Status = StatusBar{Text: "adding task", IsError: false}
	return m
}

func (m Model) openEditForm(t model.Task) Model {
	m.CurrentView = ViewForm
	m.Form = FormState{Mode: FormModeEdit, EditID: t.ID}
	m.formInputs[formFieldTitle].SetValue(t.Title)
	m.formInputs[formFieldDescription].SetValue(t.Description)
	m.formInputs[formFieldDueDate].SetValue(t.DueDate)
	m.formInputs[formFieldDueTime].SetValue(t.DueTime)
	m.formInputs[formFieldPriority].SetValue(string(t.Priority))
	if t.Reminder != nil {
		m.formInputs[formFieldReminder].SetValue(strconv.Itoa(*t.Reminder))
	} else {
		m.formInputs[formFieldReminder].SetValue("")
	}
	m.Status = StatusBar{Text: fmt.Sprintf("editing: %s", t.Title), IsError: false}
	return m
}

func (m Model) handleFormKey(msg tea.KeyMsg) Model {
	switch msg.String() {
	case "esc":
		m.CurrentView = ViewTasks
		m.Form.Err = ""
		m.Status = StatusBar{Text: "form canceled", IsError: false}
		return m
	case "tab", "down":
		m.Form.Focused = (m.Form.Focused + 1) % len(m.formInputs)
		return m
	case "shift+tab", "up":
		m.Form.Focused = (m.Form.Focused + len(m.formInputs) - 1) % len(m.formInputs)
		return m
	case "enter":
		return m.submitForm()
	}

	idx := m.Form.Focused
	if msg.Type == tea.KeyRunes {
		m.formInputs[idx].SetValue(m.formInputs[idx].Value() + string(msg.Runes))
		return m
	}
	var cmd tea.Cmd
	m.formInputs[idx], cmd = m.formInputs[idx].Update(msg)
	_ = cmd
	return m
}

func (m Model) submitForm() Model {
	in, err := m.formInput()
	if err != nil {
		m.Form.Err = err.Error()
		return m
	}

	var saved model.Task
	if m.Form.Mode == FormModeEdit {
		saved, err = m.tasksSvc.Update(m.ctx, m.Session.UserID, m.Form.EditID, in)
	} else {
		saved, err = m.tasksSvc.Create(m.ctx, m.Session.UserID, in)
	}
	if err != nil {
		m.Form.Err = err.Error()
		return m
	}

	m.Form.Err = ""
	m.CurrentView = ViewTasks
	m = m.refreshTasks()
	m.Status = StatusBar{Text: fmt.Sprintf("saved: %s", saved.Title), IsError: false}
	return m
}

func (m Model) formInput() (tasks.Input, error) {
	in := tasks.Input{
		Title:       strings.TrimSpace(m.formInputs[formFieldTitle].Value()),
		Description: strings.TrimSpace(m.formInputs[formFieldDescription].Value()),
		DueDate:     strings.TrimSpace(m.formInputs[formFieldDueDate].Value()),
		DueTime:     strings.TrimSpace(m.formInputs[formFieldDueTime].Value()),
	}
	if priority := strings.TrimSpace(m.formInputs[formFieldPriority].Value()); priority != "" {
		in.Priority = model.Priority(strings.ToLower(priority))
	}
	if raw := strings.TrimSpace(m.formInputs[formFieldReminder].Value()); raw != "" {
		minutes, err := strconv.Atoi(raw)
		if err != nil || minutes < 0 {
			return tasks.Input{}, fmt.Errorf("invalid reminder minutes: %s", raw)
		}
		in.Reminder = &minutes
	}
	return in, nil
}

func (m Model) renderFormView() string {
	fieldViews := make([]string, len(m.formInputs))
	for i := range m.formInputs {
		fieldViews[i] = m.formInputs[i].View()
	}
	return views.RenderFormPanel(views.FormPanelData{
		Mode:       string(m.Form.Mode),
		FieldViews: fieldViews,
		FieldNames: formFieldNames,
		Focused:    m.Form.Focused,
		ErrorText:  m.Form.Err,
	})
}
