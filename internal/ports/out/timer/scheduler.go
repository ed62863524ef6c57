package timer

import "time"

// CancelFunc stops a pending scheduled call. It reports whether the call was
// prevented from firing; calling it more than once is safe.
type CancelFunc func() bool

// Scheduler defers a single function call. Using an interface enables
// deterministic tests via a manually advanced implementation.
type Scheduler interface {
	AfterFunc(d time.Duration, f func()) CancelFunc
}
