// Package history persists command records off the request path.
//
// Delivery is best-effort: Submit never blocks, a full queue drops the
// record, and a failed insert is logged and counted but not retried beyond
// the store's own lock-conflict retry. Callers must not rely on a submitted
// record ever becoming visible in the store.
package history

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/ashureev/heartx/internal/domain"
	"github.com/ashureev/heartx/internal/metrics"
)

// DefaultQueueSize is the number of records that may wait for persistence.
const DefaultQueueSize = 256

const writeTimeout = 10 * time.Second

// Appender is the subset of store.Repository the recorder needs.
type Appender interface {
	AppendCommand(ctx context.Context, record domain.CommandRecord) error
}

// Recorder writes submitted records to an Appender from one background
// goroutine.
type Recorder struct {
	store  Appender
	queue  chan domain.CommandRecord
	logger *slog.Logger

	mu     sync.RWMutex
	closed bool
	done   chan struct{}
	stop   chan struct{}

	// onWrite, when set, observes every persistence attempt. Tests use it.
	onWrite func(domain.CommandRecord, error)
}

// NewRecorder starts a recorder with the given queue size.
func NewRecorder(store Appender, queueSize int, logger *slog.Logger) *Recorder {
	if logger == nil {
		logger = slog.Default()
	}
	if queueSize <= 0 {
		queueSize = DefaultQueueSize
	}

	r := &Recorder{
		store:  store,
		queue:  make(chan domain.CommandRecord, queueSize),
		logger: logger,
		done:   make(chan struct{}),
		stop:   make(chan struct{}),
	}
	go r.run()
	return r
}

// Submit queues record for persistence without blocking. It returns false
// when the record was dropped because the queue is full or the recorder is
// closed.
func (r *Recorder) Submit(record domain.CommandRecord) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if r.closed {
		metrics.HistoryWrites.WithLabelValues("dropped").Inc()
		r.logger.Warn("History recorder closed, dropping record", "id", record.ID)
		return false
	}

	select {
	case r.queue <- record:
		metrics.HistoryQueueDepth.Set(float64(len(r.queue)))
		return true
	default:
		metrics.HistoryWrites.WithLabelValues("dropped").Inc()
		r.logger.Warn("History queue full, dropping record",
			"id", record.ID,
			"queue_len", len(r.queue))
		return false
	}
}

// Pending returns the number of queued records.
func (r *Recorder) Pending() int {
	return len(r.queue)
}

func (r *Recorder) run() {
	defer close(r.done)

	for {
		select {
		case record, ok := <-r.queue:
			if !ok {
				return
			}
			r.write(record)
		case <-r.stop:
			return
		}
	}
}

func (r *Recorder) write(record domain.CommandRecord) {
	metrics.HistoryQueueDepth.Set(float64(len(r.queue)))

	ctx, cancel := context.WithTimeout(context.Background(), writeTimeout)
	defer cancel()

	start := time.Now()
	err := r.store.AppendCommand(ctx, record)
	if err != nil {
		metrics.HistoryWrites.WithLabelValues("failed").Inc()
		r.logger.Error("Failed to persist command history", "id", record.ID, "error", err)
	} else {
		metrics.HistoryWrites.WithLabelValues("persisted").Inc()
		if d := time.Since(start); d > 100*time.Millisecond {
			r.logger.Warn("Slow history write", "id", record.ID, "duration_ms", d.Milliseconds())
		}
	}

	if r.onWrite != nil {
		r.onWrite(record, err)
	}
}

// Close stops intake and lets the worker drain the queue until ctx expires.
// Records still queued at that point are abandoned.
func (r *Recorder) Close(ctx context.Context) error {
	r.mu.Lock()
	if r.closed {
		r.mu.Unlock()
		return nil
	}
	r.closed = true
	remaining := len(r.queue)
	close(r.queue)
	r.mu.Unlock()

	r.logger.Info("Closing history recorder", "queue_remaining", remaining)

	select {
	case <-r.done:
		r.logger.Info("History recorder drained")
		return nil
	case <-ctx.Done():
		close(r.stop)
		r.logger.Warn("History recorder shutdown timeout", "abandoned", len(r.queue))
		return ctx.Err()
	}
}
