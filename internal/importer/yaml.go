package importer

import (
	"context"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/sandeepkv93/taskflow/internal/model"
	"github.com/sandeepkv93/taskflow/internal/tasks"
)

// YAMLTask represents a single task in the YAML input.
type YAMLTask struct {
	Title       string `yaml:"title"`
	Description string `yaml:"description,omitempty"`
	DueDate     string `yaml:"due_date,omitempty"`
	DueTime     string `yaml:"due_time,omitempty"`
	Priority    string `yaml:"priority,omitempty"`
	Reminder    *int   `yaml:"reminder,omitempty"`
}

// YAMLInput represents the root structure of the YAML input.
type YAMLInput struct {
	Tasks []YAMLTask `yaml:"tasks"`
}

// TaskCreator is the slice of the task service the importer needs.
// Going through it means imported reminders get scheduled like any
// other save.
type TaskCreator interface {
	Create(ctx context.Context, userID string, in tasks.Input) (model.Task, error)
}

// Import parses a YAML document and creates its tasks for the user.
// Returns the number of tasks created; on error, tasks created before
// the failure stay.
func Import(ctx context.Context, creator TaskCreator, userID, yamlStr string) (int, error) {
	var input YAMLInput
	if err := yaml.Unmarshal([]byte(yamlStr), &input); err != nil {
		return 0, fmt.Errorf("YAML parse error: %w", err)
	}
	if len(input.Tasks) == 0 {
		return 0, fmt.Errorf("no tasks found in YAML")
	}

	count := 0
	for _, yt := range input.Tasks {
		if yt.Title == "" {
			return count, fmt.Errorf("task title is required")
		}
		in := tasks.Input{
			Title:       yt.Title,
			Description: yt.Description,
			DueDate:     yt.DueDate,
			DueTime:     yt.DueTime,
			Priority:    model.Priority(yt.Priority),
			Reminder:    yt.Reminder,
		}
		if in.Priority == "" {
			in.Priority = model.PriorityMedium
		}
		if _, err := creator.Create(ctx, userID, in); err != nil {
			return count, fmt.Errorf("add task %q: %w", yt.Title, err)
		}
		count++
	}
	return count, nil
}

// ImportFile reads the YAML document from disk and imports it.
func ImportFile(ctx context.Context, creator TaskCreator, userID, path string) (int, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return 0, fmt.Errorf("read import file: %w", err)
	}
	return Import(ctx, creator, userID, string(raw))
}
