// Package validators enforces structural rules on data entering the sync
// layer before it is persisted or sent over the wire.
package validators

import (
	"fmt"

	"github.com/adaptsync/adaptsync/models"
)

// ChangeValidator checks pending changes before they are staged in the
// outbox. Catching malformed changes locally keeps them from occupying the
// outbox as permanently rejected entries after a round trip.
type ChangeValidator struct{}

func NewChangeValidator() *ChangeValidator {
	return &ChangeValidator{}
}

func (v *ChangeValidator) Validate(change models.PendingChange) error {
	if change.EntityType == "" {
		return ErrMissingEntityType
	}
	if change.IdempotencyKey == "" {
		return ErrMissingIdempotencyKey
	}

	switch change.Op {
	case models.OpCreate, models.OpUpdate:
		if len(change.Fields) == 0 {
			return fmt.Errorf("%s change for %s: %w", change.Op, change.EntityType, ErrMissingFields)
		}
	case models.OpDelete:
	default:
		return fmt.Errorf("operation %q: %w", change.Op, ErrUnknownOperation)
	}

	return nil
}
