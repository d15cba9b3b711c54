package process

import (
	"strings"
	"sync"
	"time"
)

// Stream identifies the source stream of an output line.
type Stream int

const (
	// StreamStdout is standard output.
	StreamStdout Stream = iota
	// StreamStderr is standard error.
	StreamStderr
)

// String returns the stream name.
func (s Stream) String() string {
	switch s {
	case StreamStdout:
		return "stdout"
	case StreamStderr:
		return "stderr"
	default:
		return "unknown"
	}
}

// Line is a single line of run output.
type Line struct {
	// Content is the line content without the trailing newline.
	Content string

	// Stream identifies the source.
	Stream Stream

	// Timestamp is when the line was received.
	Timestamp time.Time

	// Number is the sequential line number across both streams (1-based).
	Number int
}

// Buffer stores run output in a bounded ring. Once full, the oldest lines
// fall off.
type Buffer struct {
	mu       sync.RWMutex
	lines    []Line
	capacity int
	head     int
	count    int
	seq      int
}

// NewBuffer creates a buffer with the given line capacity.
func NewBuffer(capacity int) *Buffer {
	if capacity <= 0 {
		capacity = 1000
	}
	return &Buffer{
		lines:    make([]Line, capacity),
		capacity: capacity,
	}
}

// Add appends a line, assigning its sequence number.
func (b *Buffer) Add(content string, stream Stream) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.seq++
	line := Line{
		Content:   content,
		Stream:    stream,
		Timestamp: time.Now(),
		Number:    b.seq,
	}

	idx := (b.head + b.count) % b.capacity
	b.lines[idx] = line

	if b.count < b.capacity {
		b.count++
	} else {
		b.head = (b.head + 1) % b.capacity
	}
}

// Lines returns the buffered lines in arrival order.
func (b *Buffer) Lines() []Line {
	b.mu.RLock()
	defer b.mu.RUnlock()

	result := make([]Line, b.count)
	for i := 0; i < b.count; i++ {
		result[i] = b.lines[(b.head+i)%b.capacity]
	}
	return result
}

// Count returns the number of buffered lines.
func (b *Buffer) Count() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.count
}

// Total returns the number of lines ever added, including those that have
// fallen off the ring.
func (b *Buffer) Total() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.seq
}

// Content returns all buffered lines joined with newlines.
func (b *Buffer) Content() string {
	return b.join(nil)
}

// StreamContent returns buffered lines of one stream joined with newlines.
func (b *Buffer) StreamContent(stream Stream) string {
	return b.join(&stream)
}

func (b *Buffer) join(stream *Stream) string {
	b.mu.RLock()
	defer b.mu.RUnlock()

	var sb strings.Builder
	first := true
	for i := 0; i < b.count; i++ {
		line := b.lines[(b.head+i)%b.capacity]
		if stream != nil && line.Stream != *stream {
			continue
		}
		if !first {
			sb.WriteByte('\n')
		}
		sb.WriteString(line.Content)
		first = false
	}
	return sb.String()
}
