package tasks

import (
	"context"
	"database/sql"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/sandeepkv93/taskflow/internal/model"
	"github.com/sandeepkv93/taskflow/internal/notify"
	"github.com/sandeepkv93/taskflow/internal/storage"
)

type schedulerSpy struct {
	scheduled []string
	canceled  []string
}

func (s *schedulerSpy) Schedule(taskID, title, dueDate, dueTime string, reminderMinutes *int) *notify.ReminderEntry {
	s.scheduled = append(s.scheduled, taskID)
	return &notify.ReminderEntry{TaskID: taskID}
}

func (s *schedulerSpy) Cancel(taskID string) {
	s.canceled = append(s.canceled, taskID)
}

func setupService(t *testing.T) (*Service, *schedulerSpy, string) {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "tasks-test.db")
	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	if err := storage.MigrateUp(db); err != nil {
		t.Fatalf("migrate up: %v", err)
	}
	repo, err := storage.NewSQLiteRepository(db)
	if err != nil {
		t.Fatalf("new repo: %v", err)
	}

	user := storage.User{
		ID:           "user-1",
		Email:        "user-1@example.com",
		PasswordHash: "salt:digest",
		CreatedAt:    time.Now().UTC(),
	}
	if err := repo.CreateUser(context.Background(), user); err != nil {
		t.Fatalf("seed user: %v", err)
	}

	spy := &schedulerSpy{}
	return NewService(repo, spy, nil), spy, user.ID
}

func intPtr(v int) *int { return &v }

func TestCreateWithReminderSchedules(t *testing.T) {
	svc, spy, userID := setupService(t)
	ctx := context.Background()

	task, err := svc.Create(ctx, userID, Input{
		Title:    "Submit report",
		DueDate:  "2030-06-15",
		DueTime:  "14:00",
		Priority: model.PriorityHigh,
		Reminder: intPtr(60),
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if len(spy.scheduled) != 1 || spy.scheduled[0] != task.ID {
		t.Fatalf("expected one schedule for %s, got %#v", task.ID, spy.scheduled)
	}
	if len(spy.canceled) != 0 {
		t.Fatalf("unexpected cancels: %#v", spy.canceled)
	}
}

func TestCreateWithoutReminderDoesNotSchedule(t *testing.T) {
	svc, spy, userID := setupService(t)

	if _, err := svc.Create(context.Background(), userID, Input{
		Title:   "No reminder",
		DueDate: "2030-06-15",
	}); err != nil {
		t.Fatalf("create: %v", err)
	}
	if len(spy.scheduled) != 0 {
		t.Fatalf("unexpected schedules: %#v", spy.scheduled)
	}
}

func TestUpdateClearingReminderCancels(t *testing.T) {
	svc, spy, userID := setupService(t)
	ctx := context.Background()

	task, err := svc.Create(ctx, userID, Input{
		Title: "Report", DueDate: "2030-06-15", Reminder: intPtr(30),
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	if _, err := svc.Update(ctx, userID, task.ID, Input{
		Title: "Report", DueDate: "2030-06-15", Priority: task.Priority,
	}); err != nil {
		t.Fatalf("update: %v", err)
	}
	if len(spy.canceled) != 1 || spy.canceled[0] != task.ID {
		t.Fatalf("expected cancel after reminder cleared, got %#v", spy.canceled)
	}
}

func TestCompleteCancelsAndReopenReschedules(t *testing.T) {
	svc, spy, userID := setupService(t)
	ctx := context.Background()

	task, err := svc.Create(ctx, userID, Input{
		Title: "Report", DueDate: "2030-06-15", Reminder: intPtr(30),
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	if _, err := svc.SetCompleted(ctx, userID, task.ID, true); err != nil {
		t.Fatalf("complete: %v", err)
	}
	if len(spy.canceled) != 1 {
		t.Fatalf("expected cancel on completion, got %#v", spy.canceled)
	}

	if _, err := svc.SetCompleted(ctx, userID, task.ID, false); err != nil {
		t.Fatalf("reopen: %v", err)
	}
	if len(spy.scheduled) != 2 {
		t.Fatalf("expected reschedule on reopen, got %#v", spy.scheduled)
	}
}

func TestDeleteCancelsReminder(t *testing.T) {
	svc, spy, userID := setupService(t)
	ctx := context.Background()

	task, err := svc.Create(ctx, userID, Input{
		Title: "Report", DueDate: "2030-06-15", Reminder: intPtr(30),
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if err := svc.Delete(ctx, userID, task.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if len(spy.canceled) != 1 || spy.canceled[0] != task.ID {
		t.Fatalf("expected cancel on delete, got %#v", spy.canceled)
	}
	if _, err := svc.Get(ctx, userID, task.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got: %v", err)
	}
}

func TestOwnershipIsEnforced(t *testing.T) {
	svc, _, userID := setupService(t)
	ctx := context.Background()

	task, err := svc.Create(ctx, userID, Input{Title: "Mine", DueDate: "2030-06-15"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	if _, err := svc.Get(ctx, "someone-else", task.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound for foreign task, got: %v", err)
	}
	if err := svc.Delete(ctx, "someone-else", task.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound on foreign delete, got: %v", err)
	}
}

func TestListViews(t *testing.T) {
	svc, _, userID := setupService(t)
	ctx := context.Background()

	today := time.Now().Format(model.DueDateLayout)
	tomorrow := time.Now().AddDate(0, 0, 1).Format(model.DueDateLayout)
	if _, err := svc.Create(ctx, userID, Input{Title: "Today", DueDate: today}); err != nil {
		t.Fatalf("create today: %v", err)
	}
	if _, err := svc.Create(ctx, userID, Input{Title: "Tomorrow", DueDate: tomorrow, Priority: model.PriorityHigh}); err != nil {
		t.Fatalf("create tomorrow: %v", err)
	}

	gotToday, err := svc.List(ctx, userID, storage.ViewToday)
	if err != nil {
		t.Fatalf("list today: %v", err)
	}
	if len(gotToday) != 1 || gotToday[0].Title != "Today" {
		t.Fatalf("unexpected today view: %#v", gotToday)
	}

	gotUpcoming, err := svc.List(ctx, userID, storage.ViewUpcoming)
	if err != nil {
		t.Fatalf("list upcoming: %v", err)
	}
	if len(gotUpcoming) != 1 || gotUpcoming[0].Title != "Tomorrow" {
		t.Fatalf("unexpected upcoming view: %#v", gotUpcoming)
	}
}

func TestCreateValidates(t *testing.T) {
	svc, spy, userID := setupService(t)

	if _, err := svc.Create(context.Background(), userID, Input{Title: "  "}); err == nil {
		t.Fatal("expected validation error for empty title")
	}
	if _, err := svc.Create(context.Background(), userID, Input{
		Title: "Bad", DueDate: "15/06/2030",
	}); !errors.Is(err, model.ErrInvalidDueDate) {
		t.Fatalf("expected ErrInvalidDueDate, got: %v", err)
	}
	if len(spy.scheduled) != 0 {
		t.Fatalf("failed saves must not schedule: %#v", spy.scheduled)
	}
}
