package notify

import (
	"sync"
	"time"

	displayport "github.com/Mergington-High/activity-signup-client/internal/ports/out/display"
	timerport "github.com/Mergington-High/activity-signup-client/internal/ports/out/timer"
)

// DefaultVisibleFor matches the original UI's five second auto-hide.
const DefaultVisibleFor = 5 * time.Second

// Recorder counts shown notifications; satisfied by *metrics.Collector.
type Recorder interface {
	RecordNotification(kind string)
}

// Channel shows one transient status message at a time. A new message
// replaces the current one and restarts the hide timer: last write wins,
// nothing is queued.
type Channel struct {
	sink       displayport.Sink
	sched      timerport.Scheduler
	visibleFor time.Duration
	rec        Recorder

	mu     sync.Mutex
	gen    int
	cancel timerport.CancelFunc
}

func NewChannel(sink displayport.Sink, sched timerport.Scheduler, visibleFor time.Duration, rec Recorder) *Channel {
	if visibleFor <= 0 {
		visibleFor = DefaultVisibleFor
	}
	return &Channel{sink: sink, sched: sched, visibleFor: visibleFor, rec: rec}
}

// Notify displays text tagged by kind and schedules the auto-hide. Any
// pending hide from an earlier message is canceled first, so the new message
// gets the full visibility window.
func (c *Channel) Notify(text string, kind displayport.Kind) {
	c.mu.Lock()
	if c.cancel != nil {
		c.cancel()
	}
	c.gen++
	gen := c.gen
	c.cancel = c.sched.AfterFunc(c.visibleFor, func() { c.hide(gen) })
	c.mu.Unlock()

	c.sink.Show(text, kind)
	c.rec.RecordNotification(string(kind))
}

// hide clears the display unless a newer message has superseded gen (a timer
// can fire concurrently with its own cancellation).
func (c *Channel) hide(gen int) {
	c.mu.Lock()
	if gen != c.gen {
		c.mu.Unlock()
		return
	}
	c.cancel = nil
	c.mu.Unlock()

	c.sink.Hide()
}
