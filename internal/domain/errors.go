package domain

import (
	"errors"
	"fmt"
)

// Validation errors, surfaced at folder creation. User-correctable, no retry.
var (
	ErrEmptyName        = errors.New("folder name must not be empty")
	ErrNoPlacesSelected = errors.New("at least one place must be selected")
)

// Vote errors, surfaced on vote submission. Terminal for the attempt, no
// partial application.
var (
	ErrFolderNotFound = errors.New("folder not found")
	ErrPollClosed     = errors.New("poll has ended")
	ErrAlreadyVoted   = errors.New("this device has already voted in this poll")
	ErrInvalidPlace   = errors.New("place is not an option of this poll")
)

// CorruptDataError marks a stored document that exists but cannot be decoded
// into its expected shape. Callers recover by treating the document as empty
// rather than failing the operation.
type CorruptDataError struct {
	Key string
	Err error
}

func (e *CorruptDataError) Error() string {
	return fmt.Sprintf("corrupt data under key %q: %v", e.Key, e.Err)
}

func (e *CorruptDataError) Unwrap() error { return e.Err }
