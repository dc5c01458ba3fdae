package log

import (
	"fmt"
	"io"
	"sync"
)

// DefaultBacklogSize is used when a non-positive size is requested.
const DefaultBacklogSize = 100

// Backlog keeps the most recent log records in memory. It is used while a
// full-screen program owns the terminal, and flushed once the terminal is
// released.
//
// Each call to [Backlog.Write] is one record. When the backlog is full, the
// oldest record is dropped. Backlog is safe for concurrent use.
type Backlog struct {
	records [][]byte
	start   int
	count   int
	dropped int
	mu      sync.Mutex
}

// NewBacklog creates a [Backlog] holding up to size records.
func NewBacklog(size int) *Backlog {
	if size <= 0 {
		size = DefaultBacklogSize
	}

	return &Backlog{records: make([][]byte, size)}
}

// Write implements [io.Writer]. p is copied.
func (b *Backlog) Write(p []byte) (int, error) {
	if len(p) == 0 {
		return 0, nil
	}

	record := append([]byte(nil), p...)

	b.mu.Lock()
	defer b.mu.Unlock()

	size := len(b.records)
	if b.count == size {
		b.records[b.start] = record
		b.start = (b.start + 1) % size
		b.dropped++

		return len(p), nil
	}

	b.records[(b.start+b.count)%size] = record
	b.count++

	return len(p), nil
}

// Records returns copies of the retained records, oldest first.
func (b *Backlog) Records() [][]byte {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.count == 0 {
		return nil
	}

	out := make([][]byte, 0, b.count)
	for i := range b.count {
		r := b.records[(b.start+i)%len(b.records)]
		out = append(out, append([]byte(nil), r...))
	}

	return out
}

// Len returns the number of retained records.
func (b *Backlog) Len() int {
	b.mu.Lock()
	defer b.mu.Unlock()

	return b.count
}

// Cap returns the maximum number of retained records.
func (b *Backlog) Cap() int {
	return len(b.records)
}

// Dropped returns the number of records overwritten since the last
// [Backlog.Reset].
func (b *Backlog) Dropped() int {
	b.mu.Lock()
	defer b.mu.Unlock()

	return b.dropped
}

// Reset discards all records.
func (b *Backlog) Reset() {
	b.mu.Lock()
	defer b.mu.Unlock()

	clear(b.records)
	b.start, b.count, b.dropped = 0, 0, 0
}

// WriteTo implements [io.WriterTo]. Records are written oldest first,
// preceded by a note when records were dropped.
func (b *Backlog) WriteTo(w io.Writer) (int64, error) {
	var total int64

	if dropped := b.Dropped(); dropped > 0 {
		n, err := fmt.Fprintf(w, "... %d earlier log records dropped\n", dropped)
		total += int64(n)

		if err != nil {
			return total, fmt.Errorf("write backlog: %w", err)
		}
	}

	for _, r := range b.Records() {
		n, err := w.Write(r)
		total += int64(n)

		if err != nil {
			return total, fmt.Errorf("write backlog: %w", err)
		}
	}

	return total, nil
}
