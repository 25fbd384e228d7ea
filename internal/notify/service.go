package notify

import (
	"sync"
	"time"

	"github.com/charmbracelet/log"

	"github.com/sandeepkv93/taskflow/internal/model"
)

// AlertSink consumes fired reminders. *Presenter is the production
// implementation.
type AlertSink interface {
	Present(AlertEvent) bool
}

// Service is the reminder scheduler: it turns a task's due date, due
// time and reminder lead time into an absolute fire moment, keeps the
// durable ledger and the engine's live timers consistent, and hands
// fired entries to the alert sink. Constructed once at app start.
//
// Schedule, Cancel and RecoverAll never return an error: every failure
// in this subsystem is contained and logged, and must not block the
// task CRUD flow.
type Service struct {
	mu          sync.Mutex
	engine      *Engine
	ledger      Ledger
	sink        AlertSink
	logger      *log.Logger
	loc         *time.Location
	now         func() time.Time
	recoverOnce sync.Once
	consumeDone chan struct{}
}

func NewService(engine *Engine, ledger Ledger, sink AlertSink, logger *log.Logger) *Service {
	if logger == nil {
		logger = log.Default()
	}
	return &Service{
		engine:      engine,
		ledger:      ledger,
		sink:        sink,
		logger:      logger,
		loc:         time.Local,
		now:         time.Now,
		consumeDone: make(chan struct{}),
	}
}

// Start arms the engine and begins consuming fired entries.
func (s *Service) Start() {
	s.engine.Start()
	go s.consume()
}

// Stop shuts the engine down and waits for in-flight deliveries.
func (s *Service) Stop() {
	s.engine.Stop()
	<-s.consumeDone
}

// Schedule computes fireAt = dueMoment - reminderMinutes and arms a
// reminder, replacing any earlier schedule for the task. Returns nil
// without scheduling when the task has no reminder, the due date is
// unusable, or the computed fire moment is not in the future; a
// reminder whose trigger time has already passed is never fired
// retroactively.
func (s *Service) Schedule(taskID, title, dueDate, dueTime string, reminderMinutes *int) *ReminderEntry {
	if reminderMinutes == nil {
		return nil
	}
	due, err := (model.Task{DueDate: dueDate, DueTime: dueTime}).DueMoment(s.loc)
	if err != nil {
		s.logger.Warn("reminder skipped, unusable due moment",
			"task_id", taskID, "due_date", dueDate, "due_time", dueTime, "err", err)
		return nil
	}
	fireAt := due.Add(-time.Duration(*reminderMinutes) * time.Minute)
	if !fireAt.After(s.now()) {
		s.logger.Debug("reminder skipped, fire moment already past",
			"task_id", taskID, "fire_at", fireAt)
		return nil
	}

	entry := ReminderEntry{
		TaskID:  taskID,
		FireAt:  fireAt.UnixMilli(),
		Title:   title,
		DueDate: dueDate,
		DueTime: dueTime,
	}

	// Persist and arm under one lock so a still-armed older timer for
	// this task cannot fire between the ledger write and its
	// replacement.
	s.mu.Lock()
	entries := s.loadEntriesLocked()
	entries[taskID] = entry
	s.storeEntriesLocked(entries)
	if err := s.engine.Arm(entry); err != nil {
		s.logger.Warn("arm reminder timer failed", "task_id", taskID, "err", err)
	}
	s.mu.Unlock()
	return &entry
}

// Cancel disarms any live timer for the task and removes its persisted
// entry. A no-op when none exists.
func (s *Service) Cancel(taskID string) {
	s.engine.Disarm(taskID)

	s.mu.Lock()
	defer s.mu.Unlock()
	entries := s.loadEntriesLocked()
	if _, ok := entries[taskID]; !ok {
		return
	}
	delete(entries, taskID)
	s.storeEntriesLocked(entries)
}

// RecoverAll re-arms persisted reminders against the current clock.
// Entries whose fire moment passed while the app was closed are pruned
// without firing. Runs at most once per process; call it at startup
// before any Schedule call.
func (s *Service) RecoverAll() {
	s.recoverOnce.Do(func() {
		s.mu.Lock()
		entries := s.loadEntriesLocked()
		nowMs := s.now().UnixMilli()

		pending := make([]ReminderEntry, 0, len(entries))
		expired := 0
		for taskID, entry := range entries {
			if entry.FireAt <= nowMs {
				delete(entries, taskID)
				expired++
				continue
			}
			pending = append(pending, entry)
		}
		s.storeEntriesLocked(entries)
		s.mu.Unlock()

		for _, entry := range pending {
			if err := s.engine.Arm(entry); err != nil {
				s.logger.Warn("rearm reminder failed", "task_id", entry.TaskID, "err", err)
			}
		}
		s.logger.Info("reminder recovery complete", "rearmed", len(pending), "expired", expired)
	})
}

func (s *Service) consume() {
	defer close(s.consumeDone)
	for entry := range s.engine.C() {
		s.onFired(entry)
	}
}

// onFired removes the consumed entry from the ledger (fire-once) and
// presents the alert with the summary captured at scheduling time. The
// stored entry is only removed when it is the one that fired: a fire
// already in flight when the task was rescheduled must not take the
// newer persisted entry with it.
func (s *Service) onFired(entry ReminderEntry) {
	s.mu.Lock()
	entries := s.loadEntriesLocked()
	if stored, ok := entries[entry.TaskID]; ok && stored.FireAt == entry.FireAt {
		delete(entries, entry.TaskID)
		s.storeEntriesLocked(entries)
	}
	s.mu.Unlock()

	s.sink.Present(AlertEvent{
		TaskID:  entry.TaskID,
		Title:   entry.Title,
		DueDate: entry.DueDate,
		DueTime: entry.DueTime,
	})
}

// loadEntriesLocked treats an unreadable or corrupt ledger as empty so
// a bad file never takes scheduling down.
func (s *Service) loadEntriesLocked() map[string]ReminderEntry {
	entries, err := s.ledger.Load()
	if err != nil {
		s.logger.Warn("reminder ledger unreadable, treating as empty", "err", err)
		return make(map[string]ReminderEntry)
	}
	return entries
}

func (s *Service) storeEntriesLocked(entries map[string]ReminderEntry) {
	if err := s.ledger.Store(entries); err != nil {
		s.logger.Warn("persist reminder ledger failed", "err", err)
	}
}
