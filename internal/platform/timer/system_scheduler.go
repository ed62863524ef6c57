package timer

import (
	"time"

	timerport "github.com/Mergington-High/activity-signup-client/internal/ports/out/timer"
)

// SystemScheduler defers calls using the runtime timer.
type SystemScheduler struct{}

func NewSystemScheduler() SystemScheduler { return SystemScheduler{} }

func (SystemScheduler) AfterFunc(d time.Duration, f func()) timerport.CancelFunc {
	t := time.AfterFunc(d, f)
	return t.Stop
}
