package notify

import (
	"fmt"
	"sync"

	"github.com/charmbracelet/log"
)

// Presenter renders the user-visible consequence of a fired reminder:
// the sound cue, the native notification, and the alert event the UI
// turns into a modal. It owns the dialog de-duplication guard: while an
// alert is visible no second one is presented, and only Dismiss frees
// the guard.
type Presenter struct {
	mu       sync.Mutex
	open     bool
	sounds   []SoundPlayer
	playing  SoundPlayer
	notifier DesktopNotifier
	events   chan AlertEvent
	logger   *log.Logger
}

func NewPresenter(sounds []SoundPlayer, notifier DesktopNotifier, logger *log.Logger) *Presenter {
	if notifier == nil {
		notifier = NoopDesktopNotifier{}
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Presenter{
		sounds:   sounds,
		notifier: notifier,
		events:   make(chan AlertEvent, 8),
		logger:   logger,
	}
}

// Events is the channel the UI subscribes to for alert modals.
func (p *Presenter) Events() <-chan AlertEvent {
	return p.events
}

// Present raises the alert for the entry's summary. Returns false when
// an alert is already visible; the fired reminder is dropped, not
// queued.
func (p *Presenter) Present(ev AlertEvent) bool {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.open {
		p.logger.Debug("alert already visible, dropping reminder", "task_id", ev.TaskID)
		return false
	}

	p.startSoundLocked()

	body := fmt.Sprintf("Your task %q is %s", ev.Title, DueDescription(ev.DueDate, ev.DueTime))
	if err := p.notifier.Send("Task Reminder", body); err != nil {
		p.logger.Warn("desktop notification failed", "task_id", ev.TaskID, "err", err)
	}

	p.open = true

	// The in-app modal is the guaranteed minimum: publish even when
	// every sound and the desktop notifier failed.
	select {
	case p.events <- ev:
	default:
		p.logger.Error("alert channel full, modal not delivered", "task_id", ev.TaskID)
	}
	return true
}

// Dismiss stops the sound cue and frees the guard. This is the only
// path that clears it.
func (p *Presenter) Dismiss() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.playing != nil {
		p.playing.Stop()
		p.playing = nil
	}
	p.open = false
}

func (p *Presenter) IsOpen() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.open
}

func (p *Presenter) startSoundLocked() {
	if p.playing != nil {
		p.playing.Stop()
		p.playing = nil
	}
	for _, player := range p.sounds {
		if err := player.Start(true); err != nil {
			p.logger.Warn("sound playback failed, trying next", "player", player.Name(), "err", err)
			continue
		}
		p.playing = player
		return
	}
	if len(p.sounds) > 0 {
		p.logger.Error("all sound players failed, alert is silent")
	}
}
