package importer

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/sandeepkv93/taskflow/internal/model"
	"github.com/sandeepkv93/taskflow/internal/tasks"
)

type creatorSpy struct {
	created []tasks.Input
	failOn  string
}

func (c *creatorSpy) Create(_ context.Context, userID string, in tasks.Input) (model.Task, error) {
	if c.failOn != "" && in.Title == c.failOn {
		return model.Task{}, errors.New("boom")
	}
	c.created = append(c.created, in)
	return model.Task{ID: "task-" + in.Title, UserID: userID, Title: in.Title}, nil
}

const sampleYAML = `
tasks:
  - title: Submit report
    description: Quarterly numbers
    due_date: "2030-06-15"
    due_time: "14:00"
    priority: high
    reminder: 60
  - title: Water plants
`

func TestImportCreatesTasks(t *testing.T) {
	spy := &creatorSpy{}
	count, err := Import(context.Background(), spy, "user-1", sampleYAML)
	if err != nil {
		t.Fatalf("import: %v", err)
	}
	if count != 2 || len(spy.created) != 2 {
		t.Fatalf("expected 2 tasks, got count=%d created=%#v", count, spy.created)
	}

	first := spy.created[0]
	if first.Title != "Submit report" || first.DueTime != "14:00" || first.Priority != model.PriorityHigh {
		t.Fatalf("unexpected first task: %#v", first)
	}
	if first.Reminder == nil || *first.Reminder != 60 {
		t.Fatalf("expected reminder 60, got %#v", first.Reminder)
	}

	second := spy.created[1]
	if second.Priority != model.PriorityMedium {
		t.Fatalf("expected default priority, got %#v", second)
	}
	if second.Reminder != nil {
		t.Fatalf("expected no reminder, got %#v", second.Reminder)
	}
}

func TestImportRejectsBadInput(t *testing.T) {
	spy := &creatorSpy{}
	ctx := context.Background()

	if _, err := Import(ctx, spy, "user-1", "tasks: ["); err == nil {
		t.Fatal("expected parse error")
	}
	if _, err := Import(ctx, spy, "user-1", "tasks: []"); err == nil {
		t.Fatal("expected error for empty task list")
	}
	if _, err := Import(ctx, spy, "user-1", "tasks:\n  - description: no title\n"); err == nil {
		t.Fatal("expected error for missing title")
	}
}

func TestImportStopsAtFirstFailure(t *testing.T) {
	spy := &creatorSpy{failOn: "Water plants"}
	count, err := Import(context.Background(), spy, "user-1", sampleYAML)
	if err == nil {
		t.Fatal("expected error")
	}
	if count != 1 {
		t.Fatalf("expected 1 task created before failure, got %d", count)
	}
}

func TestImportFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tasks.yaml")
	if err := os.WriteFile(path, []byte(sampleYAML), 0o644); err != nil {
		t.Fatalf("write file: %v", err)
	}
	spy := &creatorSpy{}
	count, err := ImportFile(context.Background(), spy, "user-1", path)
	if err != nil {
		t.Fatalf("import file: %v", err)
	}
	if count != 2 {
		t.Fatalf("expected 2 tasks, got %d", count)
	}

	if _, err := ImportFile(context.Background(), spy, "user-1", filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Fatal("expected error for missing file")
	}
}
