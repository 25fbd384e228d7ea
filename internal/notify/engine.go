package notify

import (
	"container/heap"
	"errors"
	"sync"
	"sync/atomic"
	"time"
)

var ErrInvalidFireTime = errors.New("notify: invalid fire time")

type queueItem struct {
	entry ReminderEntry
	gen   uint64
}

type fireQueue []queueItem

func (q fireQueue) Len() int { return len(q) }

func (q fireQueue) Less(i, j int) bool {
	return q[i].entry.FireAt < q[j].entry.FireAt
}

func (q fireQueue) Swap(i, j int) {
	q[i], q[j] = q[j], q[i]
}

func (q *fireQueue) Push(x any) {
	*q = append(*q, x.(queueItem))
}

func (q *fireQueue) Pop() any {
	old := *q
	n := len(old)
	item := old[n-1]
	*q = old[0 : n-1]
	return item
}

// Engine owns the in-process timers. One goroutine sleeps until the
// earliest pending entry; superseded and disarmed entries stay in the
// heap and are skipped when popped. At most one live entry exists per
// task id: arming the same id again replaces the earlier schedule.
type Engine struct {
	mu      sync.Mutex
	queue   fireQueue
	gens    map[string]uint64
	live    map[string]uint64
	out     chan ReminderEntry
	wakeup  chan struct{}
	stopCh  chan struct{}
	doneCh  chan struct{}
	started bool
	stopped bool
	dropped uint64
}

func NewEngine(bufferSize int) *Engine {
	if bufferSize <= 0 {
		bufferSize = 1
	}
	return &Engine{
		queue:  make(fireQueue, 0),
		gens:   make(map[string]uint64),
		live:   make(map[string]uint64),
		out:    make(chan ReminderEntry, bufferSize),
		wakeup: make(chan struct{}, 1),
		stopCh: make(chan struct{}),
		doneCh: make(chan struct{}),
	}
}

func (e *Engine) C() <-chan ReminderEntry {
	return e.out
}

func (e *Engine) Start() {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.started {
		return
	}
	e.started = true
	heap.Init(&e.queue)
	go e.loop()
}

func (e *Engine) Stop() {
	e.mu.Lock()
	if !e.started || e.stopped {
		e.mu.Unlock()
		return
	}
	e.stopped = true
	close(e.stopCh)
	e.mu.Unlock()
	<-e.doneCh
}

// Arm schedules the entry, replacing any earlier schedule for the same
// task id.
func (e *Engine) Arm(entry ReminderEntry) error {
	if entry.FireAt <= 0 {
		return ErrInvalidFireTime
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	if e.stopped {
		return errors.New("notify: engine stopped")
	}

	e.gens[entry.TaskID]++
	gen := e.gens[entry.TaskID]
	e.live[entry.TaskID] = gen
	heap.Push(&e.queue, queueItem{entry: entry, gen: gen})
	e.signalWakeup()
	return nil
}

// Disarm cancels any live schedule for the task id. Safe to call when
// none exists or when the entry already fired.
func (e *Engine) Disarm(taskID string) {
	e.mu.Lock()
	defer e.mu.Unlock()
	delete(e.live, taskID)
}

// Pending reports whether the task id has a live, not yet fired entry.
func (e *Engine) Pending(taskID string) bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	_, ok := e.live[taskID]
	return ok
}

func (e *Engine) Dropped() uint64 {
	return atomic.LoadUint64(&e.dropped)
}

func (e *Engine) loop() {
	defer close(e.doneCh)
	defer close(e.out)

	var timer *time.Timer
	for {
		next, hasNext := e.peek()
		if !hasNext {
			select {
			case <-e.wakeup:
				continue
			case <-e.stopCh:
				return
			}
		}

		wait := time.Until(next.FireTime())
		if wait < 0 {
			wait = 0
		}
		timer = resetTimer(timer, wait)

		select {
		case <-timer.C:
			due := e.popDue(time.Now())
			for _, entry := range due {
				select {
				case e.out <- entry:
				default:
					atomic.AddUint64(&e.dropped, 1)
				}
			}
		case <-e.wakeup:
			continue
		case <-e.stopCh:
			if timer != nil {
				stopTimer(timer)
			}
			return
		}
	}
}

func (e *Engine) signalWakeup() {
	select {
	case e.wakeup <- struct{}{}:
	default:
	}
}

// peek returns the earliest live entry, discarding superseded items on
// the way.
func (e *Engine) peek() (ReminderEntry, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	for len(e.queue) > 0 {
		head := e.queue[0]
		if e.live[head.entry.TaskID] == head.gen {
			return head.entry, true
		}
		heap.Pop(&e.queue)
	}
	return ReminderEntry{}, false
}

// popDue removes and returns every live entry with fireAt <= now. Fired
// entries lose their live slot, so a later Disarm is a no-op.
func (e *Engine) popDue(now time.Time) []ReminderEntry {
	e.mu.Lock()
	defer e.mu.Unlock()

	nowMs := now.UnixMilli()
	out := make([]ReminderEntry, 0)
	for len(e.queue) > 0 {
		head := e.queue[0]
		if head.entry.FireAt > nowMs {
			break
		}
		heap.Pop(&e.queue)
		if e.live[head.entry.TaskID] != head.gen {
			continue
		}
		delete(e.live, head.entry.TaskID)
		out = append(out, head.entry)
	}
	return out
}

func resetTimer(timer *time.Timer, d time.Duration) *time.Timer {
	if timer == nil {
		return time.NewTimer(d)
	}
	stopTimer(timer)
	timer.Reset(d)
	return timer
}

func stopTimer(timer *time.Timer) {
	if timer == nil {
		return
	}
	if !timer.Stop() {
		select {
		case <-timer.C:
		default:
		}
	}
}
