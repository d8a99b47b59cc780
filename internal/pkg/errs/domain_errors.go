package errs

import "errors"

// Domain-specific sentinel errors shared by usecases and handlers
var (
	// Lifecycle errors
	ErrRequestNotFound   = errors.New("service request not found")
	ErrIllegalTransition = errors.New("illegal status transition")
	ErrUnknownState      = errors.New("unknown request state")

	// Command log errors
	ErrNothingToUndo   = errors.New("nothing to undo")
	ErrNothingToRedo   = errors.New("nothing to redo")
	ErrUndoNotPossible = errors.New("undo not possible")

	// Snapshot errors
	ErrSnapshotNotFound = errors.New("snapshot not found")

	// Validation errors
	ErrDomainValidation = errors.New("domain validation error")

	// Operation errors
	ErrStorageFailure = errors.New("storage operation failed")
)
