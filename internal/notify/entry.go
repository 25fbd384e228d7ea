package notify

import "time"

// ReminderEntry is one pending reminder, keyed by task id. The summary
// fields are captured at scheduling time so a fired alert can render
// without re-fetching the task.
type ReminderEntry struct {
	TaskID  string `json:"task_id"`
	FireAt  int64  `json:"fire_at"` // epoch milliseconds
	Title   string `json:"title"`
	DueDate string `json:"due_date"`
	DueTime string `json:"due_time,omitempty"`
}

func (e ReminderEntry) FireTime() time.Time {
	return time.UnixMilli(e.FireAt)
}

// AlertEvent is what the presenter publishes to the UI when a reminder
// fires.
type AlertEvent struct {
	TaskID  string
	Title   string
	DueDate string
	DueTime string
}
