package store

import "errors"

var (
	// ErrCursorNotFound is returned when no sync cursor exists yet for the
	// requested (user, device) pair.
	ErrCursorNotFound = errors.New("sync cursor not found")

	// ErrCursorRegression is returned when a caller attempts to move a
	// cursor's last_event_id backwards. Cursors only advance.
	ErrCursorRegression = errors.New("sync cursor regression")

	// ErrConflictNotFound is returned when a conflict id has no stored
	// record (already resolved or never recorded).
	ErrConflictNotFound = errors.New("conflict not found")

	// ErrDuplicateChange is returned when a pending change with the same
	// idempotency key is already staged.
	ErrDuplicateChange = errors.New("pending change already staged")
)
