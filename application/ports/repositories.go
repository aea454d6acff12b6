package ports

import (
	"context"

	"photostack-backend/domain/entities"
)

// PutOutcome is the result of a conditional insert. A conditional-check
// failure is not an error: it means another write already owns the key.
type PutOutcome int

const (
	PutOutcomeInserted PutOutcome = iota
	PutOutcomeAlreadyExists
)

// StackRepository persists and queries stacks.
type StackRepository interface {
	// PutIfAbsent inserts the stack only when no stack with the same
	// StackID exists.
	PutIfAbsent(ctx context.Context, stack entities.Stack) (PutOutcome, error)

	// QueryByTimeRange returns stacks whose UploadTimestamp lies in
	// [start, end], most recent first, capped at limit results.
	QueryByTimeRange(ctx context.Context, start, end int64, limit int32) ([]entities.Stack, error)
}

// MediaRepository persists and queries media items.
type MediaRepository interface {
	// PutIfAbsent inserts the media item only when no item with the same
	// MediaID exists.
	PutIfAbsent(ctx context.Context, media entities.Media) (PutOutcome, error)

	// QueryByStackID returns all media items belonging to the given stack.
	QueryByStackID(ctx context.Context, stackID string) ([]entities.Media, error)
}

// UploadURLSigner issues time-limited upload URLs for the object store.
type UploadURLSigner interface {
	SignUploadURL(ctx context.Context, key, contentType string) (string, error)
}
