package domain

import "errors"

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors.
var (
	// ErrNotFound indicates a requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput indicates malformed or invalid input.
	ErrInvalidInput = errors.New("invalid input")

	// ErrInvalidTask indicates a task descriptor lacking a cluster id
	// or an entry list. The whole unit fails, nothing runs downstream.
	ErrInvalidTask = errors.New("invalid task descriptor")

	// ErrUnsupportedType indicates an alignment type id with no
	// registered aligner.
	ErrUnsupportedType = errors.New("unsupported alignment type")

	// ErrNoAlignment indicates a comparison capability produced no
	// result for a pair. This is the explicit "no result" signal: it is
	// logged and excluded from merging, never fatal to the batch.
	ErrNoAlignment = errors.New("no alignment produced")

	// ErrQueueClosed indicates the task queue no longer accepts tasks.
	ErrQueueClosed = errors.New("task queue closed")
)
