package validators

import (
	"testing"

	"github.com/adaptsync/adaptsync/models"
	"github.com/stretchr/testify/assert"
)

func TestChangeValidator(t *testing.T) {
	validator := NewChangeValidator()

	valid := models.PendingChange{
		EntityType:     "task",
		EntityID:       1,
		Op:             models.OpUpdate,
		Fields:         models.ValueMap{"name": models.String("n")},
		IdempotencyKey: "k1",
	}

	tests := []struct {
		name    string
		mutate  func(*models.PendingChange)
		wantErr error
	}{
		{name: "valid update", mutate: func(*models.PendingChange) {}},
		{name: "delete without fields", mutate: func(c *models.PendingChange) {
			c.Op = models.OpDelete
			c.Fields = nil
		}},
		{name: "missing entity type", mutate: func(c *models.PendingChange) {
			c.EntityType = ""
		}, wantErr: ErrMissingEntityType},
		{name: "missing idempotency key", mutate: func(c *models.PendingChange) {
			c.IdempotencyKey = ""
		}, wantErr: ErrMissingIdempotencyKey},
		{name: "create without fields", mutate: func(c *models.PendingChange) {
			c.Op = models.OpCreate
			c.Fields = nil
		}, wantErr: ErrMissingFields},
		{name: "unknown operation", mutate: func(c *models.PendingChange) {
			c.Op = "upsert"
		}, wantErr: ErrUnknownOperation},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			change := valid
			tt.mutate(&change)

			err := validator.Validate(change)

			if tt.wantErr == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}
