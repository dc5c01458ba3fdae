package replay

import (
	"sync"
	"time"
)

// queueScheduler is a [scrolling.Scheduler] that holds callbacks until they
// are flushed, in scheduling order.
type queueScheduler struct {
	queue []*queued
	mu    sync.Mutex
}

type queued struct {
	fn        func()
	cancelled bool
}

func (s *queueScheduler) Schedule(_ time.Duration, fn func()) func() {
	s.mu.Lock()
	defer s.mu.Unlock()

	q := &queued{fn: fn}
	s.queue = append(s.queue, q)

	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()

		q.cancelled = true
	}
}

// Flush runs the queued callbacks and returns how many ran.
func (s *queueScheduler) Flush() int {
	s.mu.Lock()
	queue := s.queue
	s.queue = nil
	s.mu.Unlock()

	ran := 0
	for _, q := range queue {
		s.mu.Lock()
		cancelled := q.cancelled
		s.mu.Unlock()

		if cancelled {
			continue
		}

		q.fn()
		ran++
	}

	return ran
}
