package validators

import "errors"

var (
	ErrMissingEntityType     = errors.New("entity type is required")
	ErrMissingIdempotencyKey = errors.New("idempotency key is required")
	ErrUnknownOperation      = errors.New("unknown change operation")
	ErrMissingFields         = errors.New("create and update changes require fields")
)
