package storage

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"
	"time"
)

func setupRepo(t *testing.T) *SQLiteRepository {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "taskflow-test.db")
	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	if err := MigrateUp(db); err != nil {
		t.Fatalf("migrate up: %v", err)
	}

	repo, err := NewSQLiteRepository(db)
	if err != nil {
		t.Fatalf("new repo: %v", err)
	}
	return repo
}

func seedUser(t *testing.T, repo *SQLiteRepository, id string) User {
	t.Helper()
	user := User{
		ID:           id,
		Name:         "Test User",
		Email:        id + "@example.com",
		PasswordHash: "salt:digest",
		CreatedAt:    parseRFC3339(t, "2026-06-01T09:00:00Z"),
	}
	if err := repo.CreateUser(context.Background(), user); err != nil {
		t.Fatalf("create user: %v", err)
	}
	return user
}

func parseRFC3339(t *testing.T, value string) time.Time {
	t.Helper()
	out, err := time.Parse(time.RFC3339, value)
	if err != nil {
		t.Fatalf("parse time: %v", err)
	}
	return out
}

func TestTaskCRUD(t *testing.T) {
	repo := setupRepo(t)
	ctx := context.Background()
	user := seedUser(t, repo, "user-1")
	created := parseRFC3339(t, "2026-06-10T12:00:00Z")

	reminder := 60
	task := Task{
		ID:          "task-1",
		UserID:      user.ID,
		Title:       "Submit report",
		Description: "Quarterly numbers",
		DueDate:     "2026-06-15",
		DueTime:     "14:00",
		Priority:    "high",
		Reminder:    &reminder,
		CreatedAt:   created,
		UpdatedAt:   created,
	}
	if err := repo.CreateTask(ctx, task); err != nil {
		t.Fatalf("create task: %v", err)
	}

	got, err := repo.GetTask(ctx, task.ID)
	if err != nil {
		t.Fatalf("get task: %v", err)
	}
	if got.Title != task.Title || got.Reminder == nil || *got.Reminder != 60 {
		t.Fatalf("unexpected task get result: %#v", got)
	}

	task.Title = "Submit report v2"
	task.Reminder = nil
	task.Completed = true
	if err := repo.UpdateTask(ctx, task); err != nil {
		t.Fatalf("update task: %v", err)
	}
	got, err = repo.GetTask(ctx, task.ID)
	if err != nil {
		t.Fatalf("get updated task: %v", err)
	}
	if got.Reminder != nil || !got.Completed {
		t.Fatalf("unexpected updated task: %#v", got)
	}

	if err := repo.DeleteTask(ctx, task.ID); err != nil {
		t.Fatalf("delete task: %v", err)
	}
	if _, err := repo.GetTask(ctx, task.ID); err != ErrNotFound {
		t.Fatalf("expected ErrNotFound, got: %v", err)
	}
	if err := repo.DeleteTask(ctx, task.ID); err != ErrNotFound {
		t.Fatalf("expected ErrNotFound on second delete, got: %v", err)
	}
}

func TestListTasksViews(t *testing.T) {
	repo := setupRepo(t)
	ctx := context.Background()
	user := seedUser(t, repo, "user-1")
	other := seedUser(t, repo, "user-2")
	created := parseRFC3339(t, "2026-06-10T12:00:00Z")

	mk := func(id, userID, due, priority string, completed bool) Task {
		return Task{
			ID: id, UserID: userID, Title: id, DueDate: due,
			Priority: priority, Completed: completed,
			CreatedAt: created, UpdatedAt: created,
		}
	}
	seed := []Task{
		mk("due-today", user.ID, "2026-06-15", "medium", false),
		mk("due-later", user.ID, "2026-06-20", "high", false),
		mk("done", user.ID, "2026-06-14", "low", true),
		mk("other-user", other.ID, "2026-06-15", "high", false),
	}
	for _, task := range seed {
		if err := repo.CreateTask(ctx, task); err != nil {
			t.Fatalf("create %s: %v", task.ID, err)
		}
	}

	cases := []struct {
		view TaskListView
		want []string
	}{
		{ViewAll, []string{"done", "due-today", "due-later"}},
		{ViewToday, []string{"due-today"}},
		{ViewUpcoming, []string{"due-later"}},
		{ViewCompleted, []string{"done"}},
		{ViewPriority, []string{"due-later"}},
	}
	for _, tc := range cases {
		got, err := repo.ListTasks(ctx, TaskListFilter{
			UserID: user.ID,
			View:   tc.view,
			Today:  "2026-06-15",
		})
		if err != nil {
			t.Fatalf("list view %q: %v", tc.view, err)
		}
		if len(got) != len(tc.want) {
			t.Fatalf("view %q: expected %d tasks, got %#v", tc.view, len(tc.want), got)
		}
		for i, id := range tc.want {
			if got[i].ID != id {
				t.Fatalf("view %q: expected %s at %d, got %s", tc.view, id, i, got[i].ID)
			}
		}
	}
}

func TestUserUniqueEmail(t *testing.T) {
	repo := setupRepo(t)
	ctx := context.Background()
	seedUser(t, repo, "user-1")

	dup := User{
		ID:           "user-dup",
		Email:        "USER-1@example.com",
		PasswordHash: "salt:digest",
		CreatedAt:    parseRFC3339(t, "2026-06-01T09:00:00Z"),
	}
	if err := repo.CreateUser(ctx, dup); err != ErrDuplicateEmail {
		t.Fatalf("expected ErrDuplicateEmail, got: %v", err)
	}

	got, err := repo.GetUserByEmail(ctx, "User-1@Example.com")
	if err != nil {
		t.Fatalf("get user by email: %v", err)
	}
	if got.ID != "user-1" {
		t.Fatalf("unexpected user: %#v", got)
	}
}

func TestSessionLifecycle(t *testing.T) {
	repo := setupRepo(t)
	ctx := context.Background()
	user := seedUser(t, repo, "user-1")

	now := time.Now().UTC()
	live := Session{Token: "tok-live", UserID: user.ID, CreatedAt: now, ExpiresAt: now.Add(time.Hour)}
	stale := Session{Token: "tok-stale", UserID: user.ID, CreatedAt: now.Add(-2 * time.Hour), ExpiresAt: now.Add(-time.Hour)}
	for _, s := range []Session{live, stale} {
		if err := repo.CreateSession(ctx, s); err != nil {
			t.Fatalf("create session %s: %v", s.Token, err)
		}
	}

	got, err := repo.GetSession(ctx, "tok-live")
	if err != nil {
		t.Fatalf("get session: %v", err)
	}
	if got.UserID != user.ID {
		t.Fatalf("unexpected session: %#v", got)
	}

	removed, err := repo.DeleteExpiredSessions(ctx)
	if err != nil {
		t.Fatalf("delete expired: %v", err)
	}
	if removed != 1 {
		t.Fatalf("expected 1 expired session removed, got %d", removed)
	}
	if _, err := repo.GetSession(ctx, "tok-stale"); err != ErrNotFound {
		t.Fatalf("expected ErrNotFound for stale session, got: %v", err)
	}

	if err := repo.DeleteSession(ctx, "tok-live"); err != nil {
		t.Fatalf("delete session: %v", err)
	}
	if _, err := repo.GetSession(ctx, "tok-live"); err != ErrNotFound {
		t.Fatalf("expected ErrNotFound after delete, got: %v", err)
	}
}

func TestDeleteUserCascadesTasks(t *testing.T) {
	repo := setupRepo(t)
	ctx := context.Background()
	user := seedUser(t, repo, "user-1")
	created := parseRFC3339(t, "2026-06-10T12:00:00Z")

	task := Task{
		ID: "task-1", UserID: user.ID, Title: "t", Priority: "low",
		CreatedAt: created, UpdatedAt: created,
	}
	if err := repo.CreateTask(ctx, task); err != nil {
		t.Fatalf("create task: %v", err)
	}
	if _, err := repo.DB().ExecContext(ctx, `DELETE FROM users WHERE id = ?`, user.ID); err != nil {
		t.Fatalf("delete user: %v", err)
	}
	if _, err := repo.GetTask(ctx, task.ID); err != ErrNotFound {
		t.Fatalf("expected cascade delete, got: %v", err)
	}
}
