package notify

import (
	"errors"
	"testing"
)

type fakePlayer struct {
	name    string
	fail    bool
	started int
	stopped int
}

func (p *fakePlayer) Name() string { return p.name }

func (p *fakePlayer) Start(loop bool) error {
	if p.fail {
		return errors.New("player broken")
	}
	p.started++
	return nil
}

func (p *fakePlayer) Stop() { p.stopped++ }

type fakeNotifier struct {
	sent []string
	err  error
}

func (n *fakeNotifier) Send(title, body string) error {
	n.sent = append(n.sent, body)
	return n.err
}

func drainEvent(t *testing.T, p *Presenter) AlertEvent {
	t.Helper()
	select {
	case ev := <-p.Events():
		return ev
	default:
		t.Fatal("expected an alert event on the channel")
		return AlertEvent{}
	}
}

func TestPresentSetsGuardAndPublishes(t *testing.T) {
	player := &fakePlayer{name: "fake"}
	notifier := &fakeNotifier{}
	pres := NewPresenter([]SoundPlayer{player}, notifier, nil)

	ev := AlertEvent{TaskID: "task-1", Title: "Report", DueDate: "2026-06-15", DueTime: "14:00"}
	if !pres.Present(ev) {
		t.Fatal("expected first present to succeed")
	}
	if !pres.IsOpen() {
		t.Fatal("expected guard open after present")
	}
	if player.started != 1 {
		t.Fatalf("expected sound started once, got %d", player.started)
	}
	if len(notifier.sent) != 1 || notifier.sent[0] != `Your task "Report" is due at 2:00 PM on Mon, Jun 15` {
		t.Fatalf("unexpected notification body: %#v", notifier.sent)
	}
	if got := drainEvent(t, pres); got != ev {
		t.Fatalf("unexpected event: %#v", got)
	}
}

func TestSecondPresentWhileOpenIsDropped(t *testing.T) {
	player := &fakePlayer{name: "fake"}
	pres := NewPresenter([]SoundPlayer{player}, nil, nil)

	first := AlertEvent{TaskID: "task-1", Title: "First", DueDate: "2026-06-15"}
	second := AlertEvent{TaskID: "task-2", Title: "Second", DueDate: "2026-06-15"}

	if !pres.Present(first) {
		t.Fatal("expected first present to succeed")
	}
	if pres.Present(second) {
		t.Fatal("expected second present to be dropped while guard is open")
	}
	if got := drainEvent(t, pres); got.TaskID != "task-1" {
		t.Fatalf("unexpected event: %#v", got)
	}
	select {
	case ev := <-pres.Events():
		t.Fatalf("dropped alert must not be queued: %#v", ev)
	default:
	}

	// Dismissal frees the guard; a later present succeeds.
	pres.Dismiss()
	if pres.IsOpen() {
		t.Fatal("expected guard cleared after dismiss")
	}
	if player.stopped != 1 {
		t.Fatalf("expected sound stopped on dismiss, got %d", player.stopped)
	}
	if !pres.Present(second) {
		t.Fatal("expected present after dismiss to succeed")
	}
}

func TestSoundChainFallsThroughFailures(t *testing.T) {
	broken := &fakePlayer{name: "broken", fail: true}
	alsoBroken := &fakePlayer{name: "also-broken", fail: true}
	working := &fakePlayer{name: "working"}
	pres := NewPresenter([]SoundPlayer{broken, alsoBroken, working}, nil, nil)

	pres.Present(AlertEvent{TaskID: "task-1", Title: "Report", DueDate: "2026-06-15"})
	if working.started != 1 {
		t.Fatalf("expected third player to start, got %d", working.started)
	}
	pres.Dismiss()
	if working.stopped != 1 {
		t.Fatalf("expected third player stopped, got %d", working.stopped)
	}
}

func TestPresentSurvivesTotalSoundAndNotifierFailure(t *testing.T) {
	pres := NewPresenter(
		[]SoundPlayer{&fakePlayer{name: "broken", fail: true}},
		&fakeNotifier{err: errors.New("no notification daemon")},
		nil,
	)

	if !pres.Present(AlertEvent{TaskID: "task-1", Title: "Report", DueDate: "2026-06-15"}) {
		t.Fatal("modal is the guaranteed minimum, present must succeed")
	}
	if got := drainEvent(t, pres); got.TaskID != "task-1" {
		t.Fatalf("unexpected event: %#v", got)
	}
}
