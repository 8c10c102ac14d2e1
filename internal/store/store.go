// Package store provides data persistence interfaces and implementations.
package store

import (
	"context"

	"github.com/ashureev/heartx/internal/domain"
)

// Repository is the append-only command history. There are no update or
// delete operations.
type Repository interface {
	// AppendCommand inserts one record.
	AppendCommand(ctx context.Context, record domain.CommandRecord) error

	// ListCommands returns up to limit records, most recent first.
	ListCommands(ctx context.Context, limit int) ([]domain.CommandRecord, error)

	// Ping verifies database connectivity and returns an error if the database is unreachable.
	Ping(ctx context.Context) error

	// Close closes the database connection.
	Close() error
}
