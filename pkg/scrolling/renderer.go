package scrolling

import (
	"sync"
	"time"
)

const (
	// DefaultRenderDelay is the debounce applied to render requests.
	DefaultRenderDelay = 15 * time.Millisecond

	// RenderImmediately disables debouncing. Any negative delay has the
	// same effect.
	RenderImmediately time.Duration = -1
)

// Scheduler runs fn after delay. The returned function cancels the call if
// it has not run yet.
type Scheduler interface {
	Schedule(delay time.Duration, fn func()) (cancel func())
}

// SchedulerFunc adapts a function to [Scheduler].
type SchedulerFunc func(delay time.Duration, fn func()) func()

// Schedule implements [Scheduler].
func (f SchedulerFunc) Schedule(delay time.Duration, fn func()) func() {
	return f(delay, fn)
}

// TimerScheduler is a [Scheduler] backed by [time.AfterFunc]. Callbacks run
// on their own goroutine.
type TimerScheduler struct{}

// Schedule implements [Scheduler].
func (TimerScheduler) Schedule(delay time.Duration, fn func()) func() {
	t := time.AfterFunc(delay, fn)

	return func() { t.Stop() }
}

type pendingRender struct {
	cancel func()
	seq    uint64
}

// Renderer debounces render requests per [Axis]. A newer request for an
// axis replaces any request still pending for it.
type Renderer struct {
	scheduler Scheduler
	pending   map[Axis]pendingRender
	delay     time.Duration
	seq       uint64
	mu        sync.Mutex
}

// NewRenderer creates a [Renderer]. A nil scheduler uses [TimerScheduler].
func NewRenderer(delay time.Duration, scheduler Scheduler) *Renderer {
	if scheduler == nil {
		scheduler = TimerScheduler{}
	}

	return &Renderer{
		scheduler: scheduler,
		pending:   map[Axis]pendingRender{},
		delay:     delay,
	}
}

// Delay returns the configured render delay.
func (r *Renderer) Delay() time.Duration {
	return r.delay
}

// Immediate reports whether renders run synchronously.
func (r *Renderer) Immediate() bool {
	return r.delay < 0
}

// Render requests fn to run for axis.
//
// The scheduler is called without holding the renderer's lock, so it may run
// fn inline.
func (r *Renderer) Render(axis Axis, fn func()) {
	if r.Immediate() {
		r.mu.Lock()
		prev := r.takeLocked(axis)
		r.mu.Unlock()

		prev.stop()
		fn()

		return
	}

	r.mu.Lock()
	prev := r.takeLocked(axis)
	r.seq++
	seq := r.seq
	r.pending[axis] = pendingRender{seq: seq}
	r.mu.Unlock()

	prev.stop()

	cancel := r.scheduler.Schedule(r.delay, func() {
		r.mu.Lock()
		p, ok := r.pending[axis]
		if !ok || p.seq != seq {
			r.mu.Unlock()
			return
		}

		delete(r.pending, axis)
		r.mu.Unlock()

		fn()
	})

	r.mu.Lock()
	p, ok := r.pending[axis]
	current := ok && p.seq == seq
	if current {
		p.cancel = cancel
		r.pending[axis] = p
	}
	r.mu.Unlock()

	// The render ran or was dropped before cancel could be stored.
	if !current && cancel != nil {
		cancel()
	}
}

// Pending reports whether a render is waiting for axis.
func (r *Renderer) Pending(axis Axis) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	_, ok := r.pending[axis]

	return ok
}

// Cancel drops all pending renders.
func (r *Renderer) Cancel() {
	r.mu.Lock()
	dropped := make([]pendingRender, 0, len(r.pending))
	for axis := range r.pending {
		dropped = append(dropped, r.takeLocked(axis))
	}
	r.mu.Unlock()

	for _, p := range dropped {
		p.stop()
	}
}

// takeLocked removes the pending render for axis and returns it. The caller
// stops it after releasing r.mu.
func (r *Renderer) takeLocked(axis Axis) pendingRender {
	p := r.pending[axis]
	delete(r.pending, axis)

	return p
}

func (p pendingRender) stop() {
	if p.cancel != nil {
		p.cancel()
	}
}
