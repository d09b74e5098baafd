// Package storage defines the Queue interface - the contract for the
// local durable store that holds enrollments the remote service could not
// accept.
//
// The submission pipeline and the HTTP handlers depend only on this
// interface, so tests can pass a fake and main.go decides which backend
// to open.
package storage

import (
	"context"
	"errors"

	"github.com/aanand-mishra/enrollment-intake/internal/types"
)

// ErrNotFound is returned when no queued entry has the requested local ID.
var ErrNotFound = errors.New("pending enrollment not found")

// ErrDuplicateID is returned when an entry's local ID is already queued.
var ErrDuplicateID = errors.New("duplicate local id")

// Queue is the local durable-queue contract.
// Entries must survive process restarts and stay until a sync process
// drains them. Implementations must be safe for concurrent appends.
type Queue interface {
	// Append stores entry and returns its local ID.
	Append(ctx context.Context, entry types.PendingEnrollment) (string, error)

	// GetPending fetches one queued entry by local ID.
	// Returns ErrNotFound if there is none.
	GetPending(ctx context.Context, localID string) (types.PendingEnrollment, error)

	// ListPending returns every queued entry, oldest first.
	// Returns an empty slice (not nil) when the queue is empty.
	ListPending(ctx context.Context) ([]types.PendingEnrollment, error)
}
