package update

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/sandeepkv93/taskflow/internal/views"
)

func (m Model) handleAuthKey(msg tea.KeyMsg) Model {
	fields := m.activeAuthFields()
	switch msg.String() {
	case "ctrl+s":
		if m.Auth.Mode == AuthModeSignIn {
			m.Auth.Mode = AuthModeSignUp
		} else {
			m.Auth.Mode = AuthModeSignIn
		}
		m.Auth.Focused = 0
		m.Auth.Err = ""
		m.Status = StatusBar{Text: fmt.Sprintf("switched to %s", m.Auth.Mode), IsError: false}
		return m
	case "tab", "down":
		m.Auth.Focused = (m.Auth.Focused + 1) % len(fields)
		return m
	case "shift+tab", "up":
		m.Auth.Focused = (m.Auth.Focused + len(fields) - 1) % len(fields)
		return m
	case "enter":
		return m.submitAuth()
	}

	idx := fields[m.Auth.Focused]
	if msg.Type == tea.KeyRunes {
		m.authInputs[idx].SetValue(m.authInputs[idx].Value() + string(msg.Runes))
		return m
	}
	var cmd tea.Cmd
	m.authInputs[idx], cmd = m.authInputs[idx].Update(msg)
	_ = cmd
	return m
}

func (m Model) submitAuth() Model {
	name := m.authInputs[0].Value()
	email := m.authInputs[1].Value()
	password := m.authInputs[2].Value()

	if m.Auth.Mode == AuthModeSignUp {
		if _, err := m.authSvc.SignUp(m.ctx, name, email, password); err != nil {
			m.Auth.Err = err.Error()
			return m
		}
	}

	token, user, err := m.authSvc.SignIn(m.ctx, email, password)
	if err != nil {
		m.Auth.Err = err.Error()
		return m
	}

	m.Session = SessionState{UserID: user.ID, Email: user.Email, Token: token}
	m.Auth.Err = ""
	m.authInputs[2].SetValue("")
	m.CurrentView = ViewTasks
	m = m.refreshTasks()
	m.Status = StatusBar{Text: fmt.Sprintf("signed in as %s", user.Email), IsError: false}
	return m
}

// activeAuthFields maps focus positions to authInputs indices; sign-in
// has no name field.
func (m Model) activeAuthFields() []int {
	if m.Auth.Mode == AuthModeSignUp {
		return []int{0, 1, 2}
	}
	return []int{1, 2}
}

func (m Model) renderAuthView() string {
	fields := m.activeAuthFields()
	fieldViews := make([]string, 0, len(fields))
	fieldNames := make([]string, 0, len(fields))
	for _, idx := range fields {
		fieldViews = append(fieldViews, m.authInputs[idx].View())
		fieldNames = append(fieldNames, authFieldNames[idx])
	}
	return views.RenderAuthPanel(views.AuthPanelData{
		Mode:       string(m.Auth.Mode),
		FieldViews: fieldViews,
		FieldNames: fieldNames,
		Focused:    m.Auth.Focused,
		ErrorText:  m.Auth.Err,
	})
}
