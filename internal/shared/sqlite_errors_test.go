package shared

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestIsSQLiteConflictError(t *testing.T) {
	assert.False(t, IsSQLiteConflictError(nil))
	assert.True(t, IsSQLiteConflictError(errors.New("database is locked (5) (SQLITE_BUSY)")))
	assert.True(t, IsSQLiteConflictError(errors.New("insert: database is locked")))
	assert.False(t, IsSQLiteConflictError(errors.New("UNIQUE constraint failed")))
}

func TestRetryOnConflict(t *testing.T) {
	policy := RetryPolicy{MaxAttempts: 3, BaseDelay: time.Millisecond}

	calls := 0
	err := RetryOnConflict(context.Background(), policy, func() error {
		calls++
		if calls < 3 {
			return errors.New("SQLITE_BUSY")
		}
		return nil
	})
	assert.NoError(t, err)
	assert.Equal(t, 3, calls)

	calls = 0
	err = RetryOnConflict(context.Background(), policy, func() error {
		calls++
		return errors.New("UNIQUE constraint failed")
	})
	assert.Error(t, err)
	assert.Equal(t, 1, calls, "non-conflict errors are not retried")

	calls = 0
	err = RetryOnConflict(context.Background(), policy, func() error {
		calls++
		return errors.New("database is locked")
	})
	assert.Error(t, err)
	assert.Equal(t, 3, calls)
}
