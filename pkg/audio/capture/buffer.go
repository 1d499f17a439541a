// Package capture keeps the most recent samples of a mono stream so the
// analysis loop can read a fixed window at any time.
package capture

import (
	"fmt"
	"sync"
	"time"
)

// DefaultWindow is the span of audio analyzed per visual frame
const DefaultWindow = 50 * time.Millisecond

// Buffer is a thread-safe ring buffer of samples. Writes never block: once
// the buffer is full the oldest samples are overwritten.
type Buffer struct {
	mu         sync.Mutex
	buf        []float64
	head, tail int64
	sampleRate float64
}

// NewBuffer creates a buffer holding up to size samples
func NewBuffer(size int, sampleRate float64) (*Buffer, error) {
	if size <= 0 {
		return nil, fmt.Errorf("capture: buffer size must be positive, got %d", size)
	}
	if sampleRate <= 0 {
		return nil, fmt.Errorf("capture: sample rate must be positive, got %v", sampleRate)
	}
	return &Buffer{
		buf:        make([]float64, size),
		sampleRate: sampleRate,
	}, nil
}

// NewBufferForDuration creates a buffer sized to hold d of audio
func NewBufferForDuration(d time.Duration, sampleRate float64) (*Buffer, error) {
	return NewBuffer(SamplesFor(d, sampleRate), sampleRate)
}

// SamplesFor converts a duration into a sample count, rounding down
func SamplesFor(d time.Duration, sampleRate float64) int {
	return int(d.Seconds() * sampleRate)
}

// Write appends samples, discarding the oldest ones that no longer fit
func (b *Buffer) Write(p []float64) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	size := int64(len(b.buf))
	src := p
	if int64(len(src)) > size {
		// only the last size samples can survive
		skipped := int64(len(src)) - size
		b.tail += skipped
		src = src[skipped:]
	}

	for len(src) > 0 {
		tail := int(b.tail % size)
		n := copy(b.buf[tail:], src)
		b.tail += int64(n)
		src = src[n:]
	}
	if b.tail-b.head > size {
		b.head = b.tail - size
	}
	return len(p), nil
}

// Latest returns a copy of the last n samples in time order. Fewer samples
// are returned when the buffer holds less than n.
func (b *Buffer) Latest(n int) []float64 {
	b.mu.Lock()
	defer b.mu.Unlock()

	avail := int(b.tail - b.head)
	if n > avail {
		n = avail
	}
	if n <= 0 {
		return []float64{}
	}

	out := make([]float64, n)
	size := int64(len(b.buf))
	start := int((b.tail - int64(n)) % size)
	copied := copy(out, b.buf[start:])
	if copied < n {
		copy(out[copied:], b.buf[:n-copied])
	}
	return out
}

// Window returns the last d of audio
func (b *Buffer) Window(d time.Duration) []float64 {
	return b.Latest(SamplesFor(d, b.sampleRate))
}

// Len returns the number of samples currently held
func (b *Buffer) Len() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return int(b.tail - b.head)
}

// Cap returns the buffer capacity in samples
func (b *Buffer) Cap() int {
	return len(b.buf)
}

// SampleRate returns the sample rate of the buffered stream
func (b *Buffer) SampleRate() float64 {
	return b.sampleRate
}

// Written returns the number of samples written since creation or the last Reset
func (b *Buffer) Written() int64 {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.tail
}

// Reset discards all buffered samples
func (b *Buffer) Reset() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.head = 0
	b.tail = 0
}
