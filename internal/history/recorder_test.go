package history

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/ashureev/heartx/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memAppender struct {
	mu      sync.Mutex
	records []domain.CommandRecord
	failIDs map[string]bool
}

func (m *memAppender) AppendCommand(_ context.Context, record domain.CommandRecord) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failIDs[record.ID] {
		return errors.New("disk full")
	}
	m.records = append(m.records, record)
	return nil
}

func (m *memAppender) ids() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	ids := make([]string, 0, len(m.records))
	for _, r := range m.records {
		ids = append(ids, r.ID)
	}
	return ids
}

// blockingAppender holds every write until release is closed.
type blockingAppender struct {
	entered chan struct{}
	release chan struct{}
	once    sync.Once
}

func newBlockingAppender() *blockingAppender {
	return &blockingAppender{entered: make(chan struct{}), release: make(chan struct{})}
}

func (b *blockingAppender) AppendCommand(ctx context.Context, _ domain.CommandRecord) error {
	b.once.Do(func() { close(b.entered) })
	select {
	case <-b.release:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func rec(id string) domain.CommandRecord {
	return domain.CommandRecord{ID: id, Type: domain.ResultSuccess, Output: []string{}}
}

func TestRecorderPersistsInSubmissionOrder(t *testing.T) {
	t.Parallel()

	store := &memAppender{}
	r := NewRecorder(store, 8, nil)

	for _, id := range []string{"cmd_1", "cmd_2", "cmd_3"} {
		require.True(t, r.Submit(rec(id)))
	}
	require.NoError(t, r.Close(context.Background()))

	assert.Equal(t, []string{"cmd_1", "cmd_2", "cmd_3"}, store.ids())
}

func TestRecorderSubmitNeverBlocksWhenStoreStalls(t *testing.T) {
	t.Parallel()

	store := newBlockingAppender()
	r := NewRecorder(store, 1, nil)
	defer func() {
		close(store.release)
		_ = r.Close(context.Background())
	}()

	require.True(t, r.Submit(rec("cmd_1")))
	<-store.entered // worker is now stuck inside the first write

	require.True(t, r.Submit(rec("cmd_2")), "one slot of queue space")

	start := time.Now()
	accepted := r.Submit(rec("cmd_3"))
	assert.False(t, accepted, "a full queue drops the record")
	assert.Less(t, time.Since(start), 100*time.Millisecond)
	assert.Equal(t, 1, r.Pending())
}

func TestRecorderWriteFailureIsNotSurfaced(t *testing.T) {
	t.Parallel()

	store := &memAppender{failIDs: map[string]bool{"cmd_bad": true}}
	r := NewRecorder(store, 8, nil)

	var mu sync.Mutex
	var failed []string
	r.onWrite = func(record domain.CommandRecord, err error) {
		if err != nil {
			mu.Lock()
			failed = append(failed, record.ID)
			mu.Unlock()
		}
	}

	assert.True(t, r.Submit(rec("cmd_bad")))
	assert.True(t, r.Submit(rec("cmd_good")))
	require.NoError(t, r.Close(context.Background()))

	assert.Equal(t, []string{"cmd_good"}, store.ids())
	mu.Lock()
	assert.Equal(t, []string{"cmd_bad"}, failed)
	mu.Unlock()
}

func TestRecorderRejectsAfterClose(t *testing.T) {
	t.Parallel()

	r := NewRecorder(&memAppender{}, 4, nil)
	require.NoError(t, r.Close(context.Background()))
	require.NoError(t, r.Close(context.Background()), "close is idempotent")

	assert.False(t, r.Submit(rec("cmd_late")))
}

func TestRecorderCloseHonoursDeadline(t *testing.T) {
	t.Parallel()

	store := newBlockingAppender()
	r := NewRecorder(store, 4, nil)

	require.True(t, r.Submit(rec("cmd_1")))
	<-store.entered

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	err := r.Close(ctx)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
	close(store.release)
}
