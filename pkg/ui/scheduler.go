package ui

import (
	"sync"
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// renderMsg delivers a debounced render to the update loop.
type renderMsg struct {
	id uint64
}

// tickScheduler is a [scrolling.Scheduler] that runs callbacks from the
// bubbletea update loop. Scheduling queues a tick command, which the model
// returns from Update; the callback runs when the tick's [renderMsg]
// arrives, unless it was cancelled.
type tickScheduler struct {
	pending map[uint64]func()
	cmds    []tea.Cmd
	next    uint64
	mu      sync.Mutex
}

func newTickScheduler() *tickScheduler {
	return &tickScheduler{pending: map[uint64]func(){}}
}

func (s *tickScheduler) Schedule(delay time.Duration, fn func()) func() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.next++
	id := s.next

	s.pending[id] = fn
	s.cmds = append(s.cmds, tea.Tick(delay, func(time.Time) tea.Msg {
		return renderMsg{id: id}
	}))

	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()

		delete(s.pending, id)
	}
}

// run runs the callback of id, if it is still pending.
func (s *tickScheduler) run(id uint64) bool {
	s.mu.Lock()
	fn, ok := s.pending[id]
	delete(s.pending, id)
	s.mu.Unlock()

	if !ok {
		return false
	}

	fn()

	return true
}

// drain returns the commands queued since the last call.
func (s *tickScheduler) drain() tea.Cmd {
	s.mu.Lock()
	defer s.mu.Unlock()

	cmds := s.cmds
	s.cmds = nil

	return tea.Batch(cmds...)
}

// Pending returns the number of callbacks waiting to run.
func (s *tickScheduler) Pending() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	return len(s.pending)
}
