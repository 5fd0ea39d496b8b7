package model

import "errors"

// Sentinel errors shared by the store and the command layer.
var (
	// ErrInvalidInput marks a write rejected by validation.
	ErrInvalidInput = errors.New("invalid input")
	// ErrNotFound marks a point lookup or targeted write that matched no record.
	ErrNotFound = errors.New("not found")
	// ErrStoreUnavailable marks an I/O or driver failure in the store.
	ErrStoreUnavailable = errors.New("store unavailable")
)
