package model

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

var (
	ErrInvalidPriority = errors.New("model: invalid task priority")
	ErrInvalidDueDate  = errors.New("model: invalid due date")
	ErrInvalidDueTime  = errors.New("model: invalid due time")
	ErrInvalidReminder = errors.New("model: invalid reminder")
)

const (
	DueDateLayout     = "2006-01-02"
	DueTimeLayout     = "15:04"
	DueTimeLayoutSecs = "15:04:05"
)

type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
)

func (p Priority) IsValid() bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh:
		return true
	default:
		return false
	}
}

type Task struct {
	ID          string
	UserID      string
	Title       string
	Description string
	DueDate     string
	DueTime     string
	Priority    Priority
	Reminder    *int
	Completed   bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

func (t Task) Validate() error {
	if strings.TrimSpace(t.ID) == "" {
		return errors.New("model: task id is required")
	}
	if strings.TrimSpace(t.UserID) == "" {
		return errors.New("model: task user_id is required")
	}
	if strings.TrimSpace(t.Title) == "" {
		return errors.New("model: task title is required")
	}
	if !t.Priority.IsValid() {
		return fmt.Errorf("%w: %q", ErrInvalidPriority, t.Priority)
	}
	if t.DueDate != "" {
		if _, err := time.Parse(DueDateLayout, t.DueDate); err != nil {
			return fmt.Errorf("%w: %q", ErrInvalidDueDate, t.DueDate)
		}
	}
	if t.DueTime != "" {
		if _, err := ParseDueTime(t.DueTime); err != nil {
			return fmt.Errorf("%w: %q", ErrInvalidDueTime, t.DueTime)
		}
	}
	if t.Reminder != nil && *t.Reminder < 0 {
		return fmt.Errorf("%w: %d minutes", ErrInvalidReminder, *t.Reminder)
	}
	if t.CreatedAt.IsZero() {
		return errors.New("model: task created_at is required")
	}
	return nil
}

// ParseDueTime accepts both "HH:MM" and "HH:MM:SS".
func ParseDueTime(value string) (time.Time, error) {
	if tm, err := time.Parse(DueTimeLayout, value); err == nil {
		return tm, nil
	}
	return time.Parse(DueTimeLayoutSecs, value)
}

// DueMoment combines the task's due date and optional due time into one
// instant in the given location. A missing due time means midnight.
func (t Task) DueMoment(loc *time.Location) (time.Time, error) {
	if t.DueDate == "" {
		return time.Time{}, ErrInvalidDueDate
	}
	day, err := time.ParseInLocation(DueDateLayout, t.DueDate, loc)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidDueDate, t.DueDate)
	}
	if t.DueTime == "" {
		return day, nil
	}
	clock, err := ParseDueTime(t.DueTime)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidDueTime, t.DueTime)
	}
	return time.Date(day.Year(), day.Month(), day.Day(),
		clock.Hour(), clock.Minute(), clock.Second(), 0, loc), nil
}
