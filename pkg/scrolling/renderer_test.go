package scrolling_test

import (
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/macropower/vscroll/pkg/scrolling"
)

func TestRendererImmediate(t *testing.T) {
	t.Parallel()

	r := scrolling.NewRenderer(scrolling.RenderImmediately, nil)
	require.True(t, r.Immediate())

	calls := 0
	r.Render(scrolling.AxisVertical, func() { calls++ })
	r.Render(scrolling.AxisVertical, func() { calls++ })

	assert.Equal(t, 2, calls)
	assert.False(t, r.Pending(scrolling.AxisVertical))
}

func TestRendererTimer(t *testing.T) {
	t.Parallel()

	r := scrolling.NewRenderer(5*time.Millisecond, nil)
	assert.Equal(t, 5*time.Millisecond, r.Delay())

	var first, second, cells atomic.Int32

	r.Render(scrolling.AxisVertical, func() { first.Add(1) })
	r.Render(scrolling.AxisVertical, func() { second.Add(1) })
	r.Render(scrolling.AxisHorizontal, func() { cells.Add(1) })

	require.Eventually(t, func() bool {
		return second.Load() == 1 && cells.Load() == 1
	}, time.Second, time.Millisecond)

	assert.Zero(t, first.Load())
	assert.False(t, r.Pending(scrolling.AxisVertical))
}

func TestRendererCancel(t *testing.T) {
	t.Parallel()

	r := scrolling.NewRenderer(time.Hour, nil)

	r.Render(scrolling.AxisHorizontal, func() { t.Error("cancelled render ran") })
	require.True(t, r.Pending(scrolling.AxisHorizontal))

	r.Cancel()
	assert.False(t, r.Pending(scrolling.AxisHorizontal))
}

// runWithin fails the test if fn does not return within a second.
func runWithin(t *testing.T, fn func()) {
	t.Helper()

	done := make(chan struct{})

	go func() {
		defer close(done)
		fn()
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("did not return")
	}
}

func TestRendererInlineScheduler(t *testing.T) {
	t.Parallel()

	var r *scrolling.Renderer

	var calls, cancels atomic.Int32

	inline := scrolling.SchedulerFunc(func(_ time.Duration, fn func()) func() {
		fn()

		return func() {
			cancels.Add(1)
			// Cancel funcs may call back into the renderer.
			r.Pending(scrolling.AxisVertical)
		}
	})

	r = scrolling.NewRenderer(0, inline)

	runWithin(t, func() {
		r.Render(scrolling.AxisVertical, func() { calls.Add(1) })
		r.Render(scrolling.AxisVertical, func() {
			calls.Add(1)
			r.Render(scrolling.AxisHorizontal, func() { calls.Add(1) })
		})
		r.Cancel()
	})

	assert.Equal(t, int32(3), calls.Load())
	assert.Equal(t, int32(3), cancels.Load(), "renders that already ran are released")
	assert.False(t, r.Pending(scrolling.AxisVertical))
	assert.False(t, r.Pending(scrolling.AxisHorizontal))
}

func TestRendererCancelCallsBack(t *testing.T) {
	t.Parallel()

	var r *scrolling.Renderer

	var cancelled atomic.Bool

	deferred := scrolling.SchedulerFunc(func(_ time.Duration, _ func()) func() {
		return func() {
			cancelled.Store(true)
			r.Pending(scrolling.AxisHorizontal)
		}
	})

	r = scrolling.NewRenderer(time.Hour, deferred)

	runWithin(t, func() {
		r.Render(scrolling.AxisHorizontal, func() { t.Error("cancelled render ran") })
		assert.True(t, r.Pending(scrolling.AxisHorizontal))
		r.Cancel()
	})

	assert.True(t, cancelled.Load())
	assert.False(t, r.Pending(scrolling.AxisHorizontal))
}
