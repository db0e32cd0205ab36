package domain

import "errors"

// Workflow and store errors. All of them are recoverable at the
// caller; the HTTP layer maps them to response codes with errors.Is.
var (
	// ErrNotFound indicates a referenced id is absent from the store.
	ErrNotFound = errors.New("record not found")

	// ErrAlreadyIssued indicates an issue attempt on an item that is
	// currently issued.
	ErrAlreadyIssued = errors.New("item already issued")

	// ErrAlreadyClosed indicates a return or damage report against a
	// transaction (or line) that has already been resolved.
	ErrAlreadyClosed = errors.New("transaction already closed")

	// ErrDamagedConfirmationRequired indicates an issue attempt on a
	// damaged item without the caller's explicit override flag. The
	// caller is expected to re-invoke with the flag set after user
	// confirmation.
	ErrDamagedConfirmationRequired = errors.New("damaged item requires confirmation")

	// ErrDuplicateKey indicates a uniqueness violation (student code,
	// inventory name, serial number).
	ErrDuplicateKey = errors.New("duplicate key")

	// ErrStoreUnavailable indicates a backend transport failure. Store
	// implementations wrap every non-domain error into this one; raw
	// driver errors never reach callers.
	ErrStoreUnavailable = errors.New("store unavailable")

	// ErrValidation indicates a missing required field or an
	// out-of-range value in a request.
	ErrValidation = errors.New("validation failed")
)
