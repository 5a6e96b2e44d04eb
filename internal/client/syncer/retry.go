package syncer

import (
	"sync"
	"time"
)

// RetryScheduler holds a single pending-timer slot. Arming replaces any
// armed timer instead of stacking a second one, so repeated failures never
// leak timers or produce duplicate in-flight retries. Attempts are not
// capped; the caller decides when to stop re-arming.
type RetryScheduler struct {
	mu    sync.Mutex
	delay time.Duration
	timer *time.Timer
}

func NewRetryScheduler(delay time.Duration) *RetryScheduler {
	return &RetryScheduler{delay: delay}
}

// Arm schedules fn to run once after the fixed delay, replacing any
// previously armed timer.
func (s *RetryScheduler) Arm(fn func()) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.timer != nil {
		s.timer.Stop()
	}
	s.timer = time.AfterFunc(s.delay, func() {
		s.mu.Lock()
		s.timer = nil
		s.mu.Unlock()
		fn()
	})
}

// Clear cancels the pending timer, if any.
func (s *RetryScheduler) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.timer != nil {
		s.timer.Stop()
		s.timer = nil
	}
}

// Armed reports whether a retry is currently scheduled.
func (s *RetryScheduler) Armed() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.timer != nil
}
