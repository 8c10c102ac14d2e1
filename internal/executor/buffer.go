package executor

import (
	"sync"
)

// HeadBuffer keeps the first size bytes written to it and discards the rest.
// Only the head of the output is ever shown, so a chatty command such as
// `yes` or tcpdump cannot exhaust memory.
type HeadBuffer struct {
	buf     []byte
	size    int
	dropped int64
	mu      sync.Mutex
}

// NewHeadBuffer creates a buffer that retains at most size bytes.
// Default size is 1MB.
func NewHeadBuffer(size int) *HeadBuffer {
	if size <= 0 {
		size = DefaultMaxBytes
	}
	return &HeadBuffer{
		buf:  make([]byte, 0, min(size, 64*1024)),
		size: size,
	}
}

// Write implements io.Writer. It never fails; bytes past capacity are counted
// and dropped so the subprocess is not blocked or killed by a short write.
func (hb *HeadBuffer) Write(p []byte) (int, error) {
	hb.mu.Lock()
	defer hb.mu.Unlock()

	room := hb.size - len(hb.buf)
	if room <= 0 {
		hb.dropped += int64(len(p))
		return len(p), nil
	}
	if len(p) > room {
		hb.buf = append(hb.buf, p[:room]...)
		hb.dropped += int64(len(p) - room)
		return len(p), nil
	}
	hb.buf = append(hb.buf, p...)
	return len(p), nil
}

// String returns the retained bytes as a string.
func (hb *HeadBuffer) String() string {
	hb.mu.Lock()
	defer hb.mu.Unlock()
	return string(hb.buf)
}

// Len returns the number of retained bytes.
func (hb *HeadBuffer) Len() int {
	hb.mu.Lock()
	defer hb.mu.Unlock()
	return len(hb.buf)
}

// Dropped returns how many bytes were discarded after the buffer filled.
func (hb *HeadBuffer) Dropped() int64 {
	hb.mu.Lock()
	defer hb.mu.Unlock()
	return hb.dropped
}

// Capacity returns the maximum capacity of the buffer.
func (hb *HeadBuffer) Capacity() int {
	return hb.size
}
