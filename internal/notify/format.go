package notify

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/sandeepkv93/taskflow/internal/model"
)

// FormatDueDate renders "2026-06-15" as "Mon, Jun 15". Unparseable
// input is returned as-is.
func FormatDueDate(dueDate string) string {
	day, err := time.Parse(model.DueDateLayout, dueDate)
	if err != nil {
		return dueDate
	}
	return day.Format("Mon, Jan 2")
}

// FormatDueTime renders a 24-hour "HH:MM[:SS]" string on a 12-hour
// clock with an AM/PM suffix. Unparseable input is returned as-is.
func FormatDueTime(dueTime string) string {
	if dueTime == "" {
		return ""
	}
	parts := strings.Split(dueTime, ":")
	if len(parts) < 2 {
		return dueTime
	}
	hour, err := strconv.Atoi(parts[0])
	if err != nil || hour < 0 || hour > 23 {
		return dueTime
	}
	minute, err := strconv.Atoi(parts[1])
	if err != nil || minute < 0 || minute > 59 {
		return dueTime
	}
	period := "AM"
	if hour >= 12 {
		period = "PM"
	}
	display := hour % 12
	if display == 0 {
		display = 12
	}
	return fmt.Sprintf("%d:%02d %s", display, minute, period)
}

// DueDescription builds the human-readable clause used in the desktop
// notification body, e.g. `due at 2:00 PM on Sun, Jun 15`.
func DueDescription(dueDate, dueTime string) string {
	if dueTime != "" {
		return fmt.Sprintf("due at %s on %s", FormatDueTime(dueTime), FormatDueDate(dueDate))
	}
	return fmt.Sprintf("due on %s", FormatDueDate(dueDate))
}
