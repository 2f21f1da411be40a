package ports

import "errors"

// Storage-level sentinel errors. Adapters translate driver failures into
// these so the core can branch with errors.Is without importing pgx.
var (
	// ErrNotFound means the requested row does not exist.
	ErrNotFound = errors.New("record not found")

	// ErrVersionConflict means a conditional balance write lost the race:
	// the account version changed between read and write.
	ErrVersionConflict = errors.New("account version conflict")

	// ErrDuplicate means a uniqueness constraint rejected the write.
	ErrDuplicate = errors.New("duplicate record")
)
