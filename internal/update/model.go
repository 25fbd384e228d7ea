package update

import (
	"context"
	"io"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	"github.com/charmbracelet/log"

	"github.com/sandeepkv93/taskflow/internal/auth"
	"github.com/sandeepkv93/taskflow/internal/model"
	"github.com/sandeepkv93/taskflow/internal/notify"
	"github.com/sandeepkv93/taskflow/internal/storage"
	"github.com/sandeepkv93/taskflow/internal/tasks"
)

type View string

const (
	ViewAuth  View = "Auth"
	ViewTasks View = "Tasks"
	ViewForm  View = "Form"
)

type AuthMode string

const (
	AuthModeSignIn AuthMode = "sign-in"
	AuthModeSignUp AuthMode = "sign-up"
)

type FormMode string

const (
	FormModeAdd  FormMode = "add"
	FormModeEdit FormMode = "edit"
)

type StatusBar struct {
	Text    string
	IsError bool
}

type GlobalKeyMap struct {
	Add     string
	Edit    string
	Toggle  string
	Delete  string
	Copy    string
	CycleV  string
	Refresh string
	Help    string
	Quit    string
}

type SessionState struct {
	UserID string
	Email  string
	Token  string
}

type AuthState struct {
	Mode    AuthMode
	Focused int
	Err     string
}

type FormState struct {
	Mode    FormMode
	EditID  string
	Focused int
	Err     string
}

type CommandPaletteState struct {
	Active bool
	Input  string
}

type listItem struct {
	title       string
	description string
}

func (i listItem) FilterValue() string { return i.title + " " + i.description }
func (i listItem) Title() string       { return i.title }
func (i listItem) Description() string { return i.description }

type Model struct {
	CurrentView View
	Session     SessionState
	Tasks       []model.Task
	Cursor      int
	ListView    storage.TaskListView
	Auth        AuthState
	Form        FormState
	Palette     CommandPaletteState
	Alert       *notify.AlertEvent
	HelpVisible bool
	Status      StatusBar
	Keys        GlobalKeyMap
	Quitting    bool
	LastError   error

	ctx       context.Context
	authSvc   *auth.Service
	tasksSvc  *tasks.Service
	presenter *notify.Presenter
	logger    *log.Logger

	// Bubble components used for rich TUI controls
	taskList       list.Model
	commandInput   textinput.Model
	authInputs     []textinput.Model
	formInputs     []textinput.Model
	helpModel      help.Model
	detailViewport viewport.Model
}

type Deps struct {
	Auth      *auth.Service
	Tasks     *tasks.Service
	Presenter *notify.Presenter
	Logger    *log.Logger
}

type SwitchViewMsg struct {
	View View
}

type SetStatusMsg struct {
	Text    string
	IsError bool
}

type ClearStatusMsg struct{}

type AppErrorMsg struct {
	Err error
}

type AlertFiredMsg struct {
	Event notify.AlertEvent
}

type TasksReloadedMsg struct{}

var authFieldNames = []string{"name", "email", "password"}

var formFieldNames = []string{"title", "description", "due date (YYYY-MM-DD)", "due time (HH:MM)", "priority", "reminder minutes"}

func NewModel(deps Deps) Model {
	m := Model{
		CurrentView: ViewAuth,
		ListView:    storage.ViewAll,
		Auth:        AuthState{Mode: AuthModeSignIn},
		Form:        FormState{Mode: FormModeAdd},
		Keys: GlobalKeyMap{
			Add:     "a",
			Edit:    "e",
			Toggle:  " ",
			Delete:  "x",
			Copy:    "y",
			CycleV:  "v",
			Refresh: "R",
			Help:    "?",
			Quit:    "q",
		},
		ctx:       context.Background(),
		authSvc:   deps.Auth,
		tasksSvc:  deps.Tasks,
		presenter: deps.Presenter,
		logger:    deps.Logger,
	}
	if m.logger == nil {
		m.logger = log.New(io.Discard)
	}
	m.initBubbleComponents()
	m.syncBubbleData()
	return m
}

func (m *Model) initBubbleComponents() {
	m.taskList = list.New([]list.Item{}, list.NewDefaultDelegate(), 56, 12)
	m.taskList.Title = "Tasks (list)"
	m.taskList.SetShowHelp(false)
	m.taskList.SetFilteringEnabled(false)

	m.commandInput = textinput.New()
	m.commandInput.Prompt = "/"
	m.commandInput.CharLimit = 256
	m.commandInput.Width = 48

	m.authInputs = make([]textinput.Model, len(authFieldNames))
	for i := range m.authInputs {
		in := textinput.New()
		in.CharLimit = 128
		in.Width = 40
		m.authInputs[i] = in
	}
	m.authInputs[2].EchoMode = textinput.EchoPassword

	m.formInputs = make([]textinput.Model, len(formFieldNames))
	for i := range m.formInputs {
		in := textinput.New()
		in.CharLimit = 256
		in.Width = 40
		m.formInputs[i] = in
	}

	m.helpModel = help.New()
	m.detailViewport = viewport.New(54, 12)
}

func (m *Model) syncBubbleData() {
	items := make([]list.Item, 0, len(m.Tasks))
	for _, t := range m.Tasks {
		desc := string(t.Priority)
		if t.DueDate != "" {
			desc += " | due " + t.DueDate
		}
		items = append(items, listItem{title: t.Title, description: desc})
	}
	m.taskList.SetItems(items)
	if len(items) > 0 && m.Cursor < len(items) {
		m.taskList.Select(m.Cursor)
	}

	m.commandInput.SetValue(m.Palette.Input)
	if m.Palette.Active {
		m.commandInput.Focus()
	}

	if t, ok := m.selectedTask(); ok && t.Description != "" {
		m.detailViewport.SetContent(renderTaskNotes(t.Description))
	} else {
		m.detailViewport.SetContent("")
	}
}

func (m Model) selectedTask() (model.Task, bool) {
	if m.Cursor < 0 || m.Cursor >= len(m.Tasks) {
		return model.Task{}, false
	}
	return m.Tasks[m.Cursor], true
}
