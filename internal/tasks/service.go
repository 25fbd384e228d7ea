package tasks

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/sandeepkv93/taskflow/internal/model"
	"github.com/sandeepkv93/taskflow/internal/notify"
	"github.com/sandeepkv93/taskflow/internal/storage"
)

var ErrNotFound = errors.New("tasks: not found")

// ReminderScheduler is the slice of the notification service the task
// flow needs. Scheduling failures never propagate into CRUD results.
type ReminderScheduler interface {
	Schedule(taskID, title, dueDate, dueTime string, reminderMinutes *int) *notify.ReminderEntry
	Cancel(taskID string)
}

type noopScheduler struct{}

func (noopScheduler) Schedule(string, string, string, string, *int) *notify.ReminderEntry {
	return nil
}
func (noopScheduler) Cancel(string) {}

// Input carries the editable task fields.
type Input struct {
	Title       string
	Description string
	DueDate     string
	DueTime     string
	Priority    model.Priority
	Reminder    *int
}

// Service owns task CRUD and keeps the reminder subsystem in step:
// saves with a reminder schedule one, saves without one cancel, and
// deletes and completions cancel.
type Service struct {
	repo      storage.Repository
	reminders ReminderScheduler
	logger    *log.Logger
	now       func() time.Time
}

func NewService(repo storage.Repository, reminders ReminderScheduler, logger *log.Logger) *Service {
	if reminders == nil {
		reminders = noopScheduler{}
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Service{repo: repo, reminders: reminders, logger: logger, now: time.Now}
}

func (s *Service) Create(ctx context.Context, userID string, in Input) (model.Task, error) {
	now := s.now().UTC()
	task := model.Task{
		ID:          uuid.NewString(),
		UserID:      userID,
		Title:       strings.TrimSpace(in.Title),
		Description: in.Description,
		DueDate:     in.DueDate,
		DueTime:     in.DueTime,
		Priority:    in.Priority,
		Reminder:    in.Reminder,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if task.Priority == "" {
		task.Priority = model.PriorityMedium
	}
	if err := task.Validate(); err != nil {
		return model.Task{}, err
	}
	if err := s.repo.CreateTask(ctx, toRecord(task)); err != nil {
		return model.Task{}, fmt.Errorf("create task: %w", err)
	}
	s.syncReminder(task)
	return task, nil
}

func (s *Service) Update(ctx context.Context, userID, id string, in Input) (model.Task, error) {
	existing, err := s.ownedTask(ctx, userID, id)
	if err != nil {
		return model.Task{}, err
	}
	task := existing
	task.Title = strings.TrimSpace(in.Title)
	task.Description = in.Description
	task.DueDate = in.DueDate
	task.DueTime = in.DueTime
	task.Priority = in.Priority
	task.Reminder = in.Reminder
	task.UpdatedAt = s.now().UTC()
	if err := task.Validate(); err != nil {
		return model.Task{}, err
	}
	if err := s.repo.UpdateTask(ctx, toRecord(task)); err != nil {
		return model.Task{}, fmt.Errorf("update task: %w", err)
	}
	s.syncReminder(task)
	return task, nil
}

// SetCompleted toggles completion. Completing a task retires its
// reminder; reopening one with a reminder re-schedules it.
func (s *Service) SetCompleted(ctx context.Context, userID, id string, completed bool) (model.Task, error) {
	task, err := s.ownedTask(ctx, userID, id)
	if err != nil {
		return model.Task{}, err
	}
	task.Completed = completed
	task.UpdatedAt = s.now().UTC()
	if err := s.repo.UpdateTask(ctx, toRecord(task)); err != nil {
		return model.Task{}, fmt.Errorf("update task: %w", err)
	}
	s.syncReminder(task)
	return task, nil
}

func (s *Service) Delete(ctx context.Context, userID, id string) error {
	if _, err := s.ownedTask(ctx, userID, id); err != nil {
		return err
	}
	if err := s.repo.DeleteTask(ctx, id); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return ErrNotFound
		}
		return fmt.Errorf("delete task: %w", err)
	}
	s.reminders.Cancel(id)
	return nil
}

func (s *Service) Get(ctx context.Context, userID, id string) (model.Task, error) {
	return s.ownedTask(ctx, userID, id)
}

func (s *Service) List(ctx context.Context, userID string, view storage.TaskListView) ([]model.Task, error) {
	records, err := s.repo.ListTasks(ctx, storage.TaskListFilter{
		UserID: userID,
		View:   view,
		Today:  s.now().Format(model.DueDateLayout),
	})
	if err != nil {
		return nil, fmt.Errorf("list tasks: %w", err)
	}
	out := make([]model.Task, 0, len(records))
	for _, rec := range records {
		out = append(out, fromRecord(rec))
	}
	return out, nil
}

// syncReminder runs after every successful save. An active reminder on
// an open task schedules (replacing any earlier schedule); anything
// else cancels.
func (s *Service) syncReminder(task model.Task) {
	if task.Reminder != nil && !task.Completed && task.DueDate != "" {
		s.reminders.Schedule(task.ID, task.Title, task.DueDate, task.DueTime, task.Reminder)
		return
	}
	s.reminders.Cancel(task.ID)
}

func (s *Service) ownedTask(ctx context.Context, userID, id string) (model.Task, error) {
	rec, err := s.repo.GetTask(ctx, id)
	if errors.Is(err, storage.ErrNotFound) {
		return model.Task{}, ErrNotFound
	}
	if err != nil {
		return model.Task{}, fmt.Errorf("get task: %w", err)
	}
	// A task belonging to someone else is indistinguishable from a
	// missing one.
	if rec.UserID != userID {
		return model.Task{}, ErrNotFound
	}
	return fromRecord(rec), nil
}

func toRecord(t model.Task) storage.Task {
	return storage.Task{
		ID:          t.ID,
		UserID:      t.UserID,
		Title:       t.Title,
		Description: t.Description,
		DueDate:     t.DueDate,
		DueTime:     t.DueTime,
		Priority:    string(t.Priority),
		Reminder:    t.Reminder,
		Completed:   t.Completed,
		CreatedAt:   t.CreatedAt,
		UpdatedAt:   t.UpdatedAt,
	}
}

func fromRecord(rec storage.Task) model.Task {
	return model.Task{
		ID:          rec.ID,
		UserID:      rec.UserID,
		Title:       rec.Title,
		Description: rec.Description,
		DueDate:     rec.DueDate,
		DueTime:     rec.DueTime,
		Priority:    model.Priority(rec.Priority),
		Reminder:    rec.Reminder,
		Completed:   rec.Completed,
		CreatedAt:   rec.CreatedAt,
		UpdatedAt:   rec.UpdatedAt,
	}
}
