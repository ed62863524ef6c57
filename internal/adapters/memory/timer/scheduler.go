package timer

import (
	"sort"
	"sync"
	"time"

	timerport "github.com/Mergington-High/activity-signup-client/internal/ports/out/timer"
)

type entry struct {
	seq int
	due time.Duration
	f   func()
}

// ManualScheduler is a deterministic timerport.Scheduler for tests. Nothing
// fires until Advance moves its virtual clock past a callback's due time.
type ManualScheduler struct {
	mu      sync.Mutex
	now     time.Duration
	nextSeq int
	pending map[int]entry
}

func NewManualScheduler() *ManualScheduler {
	return &ManualScheduler{pending: make(map[int]entry)}
}

func (m *ManualScheduler) AfterFunc(d time.Duration, f func()) timerport.CancelFunc {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.nextSeq++
	seq := m.nextSeq
	m.pending[seq] = entry{seq: seq, due: m.now + d, f: f}

	return func() bool {
		m.mu.Lock()
		defer m.mu.Unlock()
		_, ok := m.pending[seq]
		delete(m.pending, seq)
		return ok
	}
}

// Advance moves the virtual clock forward and fires every callback that has
// come due, in scheduling order. Callbacks run synchronously on the caller's
// goroutine, outside the scheduler lock.
func (m *ManualScheduler) Advance(d time.Duration) {
	m.mu.Lock()
	m.now += d
	var due []entry
	for seq, e := range m.pending {
		if e.due <= m.now {
			due = append(due, e)
			delete(m.pending, seq)
		}
	}
	m.mu.Unlock()

	sort.Slice(due, func(i, j int) bool { return due[i].seq < due[j].seq })
	for _, e := range due {
		e.f()
	}
}

// PendingCount reports how many callbacks are scheduled and not yet fired.
func (m *ManualScheduler) PendingCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.pending)
}
