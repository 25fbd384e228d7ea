package storage

import "time"

type Task struct {
	ID          string
	UserID      string
	Title       string
	Description string
	DueDate     string
	DueTime     string
	Priority    string
	Reminder    *int
	Completed   bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

type User struct {
	ID           string
	Name         string
	Email        string
	PasswordHash string
	CreatedAt    time.Time
}

type Session struct {
	Token     string
	UserID    string
	CreatedAt time.Time
	ExpiresAt time.Time
}

// TaskListView mirrors the filters the dashboard offers.
type TaskListView string

const (
	ViewAll       TaskListView = ""
	ViewToday     TaskListView = "today"
	ViewUpcoming  TaskListView = "upcoming"
	ViewCompleted TaskListView = "completed"
	ViewPriority  TaskListView = "priority"
)

type TaskListFilter struct {
	UserID string
	View   TaskListView
	// Today anchors the today/upcoming views; zero value means time.Now.
	Today  string
	Limit  int
	Offset int
}
