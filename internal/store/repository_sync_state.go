package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"

	"github.com/adaptsync/adaptsync/internal/logger"
	"github.com/adaptsync/adaptsync/internal/validators"
	"github.com/adaptsync/adaptsync/models"
)

type syncStateRepository struct {
	*DB
	validator *validators.ChangeValidator
	logger    *logger.Logger
}

// NewSyncStateRepository returns the SQLite-backed implementation of
// [SyncStateRepository].
func NewSyncStateRepository(db *DB, logger *logger.Logger) SyncStateRepository {
	return &syncStateRepository{
		DB:        db,
		validator: validators.NewChangeValidator(),
		logger:    logger,
	}
}

func (r *syncStateRepository) EnsureCursor(ctx context.Context, userID int64, deviceID string) (models.SyncCursor, error) {
	cursor, err := r.GetCursor(ctx, userID, deviceID)
	if err == nil {
		return cursor, nil
	}
	if !errors.Is(err, ErrCursorNotFound) {
		return models.SyncCursor{}, err
	}

	now := time.Now().UTC()
	if _, err = r.DB.ExecContext(ctx, insertCursor, userID, deviceID, now, now); err != nil {
		return models.SyncCursor{}, fmt.Errorf("create sync cursor for device %s: %w", deviceID, err)
	}

	return r.GetCursor(ctx, userID, deviceID)
}

func (r *syncStateRepository) GetCursor(ctx context.Context, userID int64, deviceID string) (models.SyncCursor, error) {
	log := logger.FromContext(ctx)

	var (
		cursor      models.SyncCursor
		lastEventID sql.NullInt64
		updatedAt   time.Time
	)
	row := r.DB.QueryRowContext(ctx, getCursor, userID, deviceID)
	err := row.Scan(
		&cursor.UserID,
		&cursor.DeviceID,
		&lastEventID,
		&cursor.LastSyncAt,
		&updatedAt,
		&cursor.PendingChanges,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return models.SyncCursor{}, fmt.Errorf("cursor for device %s: %w", deviceID, ErrCursorNotFound)
	}
	if err != nil {
		log.Err(err).
			Int64("user_id", userID).
			Str("device_id", deviceID).
			Msg("failed to query sync cursor")
		return models.SyncCursor{}, fmt.Errorf("failed to query sync cursor: %w", err)
	}

	if lastEventID.Valid {
		cursor.LastEventID = &lastEventID.Int64
	}
	cursor.UpdatedAt = &updatedAt

	return cursor, nil
}

func (r *syncStateRepository) AdvanceCursor(ctx context.Context, userID int64, deviceID string, eventID int64, at time.Time) error {
	log := logger.FromContext(ctx)

	res, err := r.DB.ExecContext(ctx, advanceCursor, eventID, at, time.Now().UTC(), userID, deviceID, eventID)
	if err != nil {
		log.Err(err).
			Int64("user_id", userID).
			Str("device_id", deviceID).
			Int64("event_id", eventID).
			Msg("failed to advance sync cursor")
		return fmt.Errorf("failed to advance sync cursor: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("advance cursor rows affected: %w", err)
	}
	if affected > 0 {
		return nil
	}

	// The guarded UPDATE matched nothing: either the cursor does not exist
	// or eventID is behind the stored position.
	cursor, err := r.GetCursor(ctx, userID, deviceID)
	if err != nil {
		return err
	}
	return fmt.Errorf("advance to event %d behind cursor %d: %w", eventID, cursor.EventID(), ErrCursorRegression)
}

func (r *syncStateRepository) TouchCursor(ctx context.Context, userID int64, deviceID string, at time.Time) error {
	_, err := r.DB.ExecContext(ctx, touchCursor, at, time.Now().UTC(), userID, deviceID)
	if err != nil {
		return fmt.Errorf("failed to touch sync cursor: %w", err)
	}
	return nil
}

func (r *syncStateRepository) ResetCursor(ctx context.Context, userID int64, deviceID string) error {
	log := logger.FromContext(ctx)

	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin reset transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	now := time.Now().UTC()
	if _, err = tx.ExecContext(ctx, resetCursor, now, now, userID, deviceID); err != nil {
		log.Err(err).
			Int64("user_id", userID).
			Str("device_id", deviceID).
			Msg("failed to reset sync cursor")
		return fmt.Errorf("failed to reset sync cursor: %w", err)
	}
	if _, err = tx.ExecContext(ctx, deleteConflictsAll); err != nil {
		return fmt.Errorf("failed to discard conflict history: %w", err)
	}

	return tx.Commit()
}

func (r *syncStateRepository) Enqueue(ctx context.Context, change models.PendingChange) error {
	log := logger.FromContext(ctx)

	if err := r.validator.Validate(change); err != nil {
		return fmt.Errorf("invalid change: %w", err)
	}

	var staged int
	if err := r.DB.QueryRowContext(ctx, existsPendingChange, change.IdempotencyKey).Scan(&staged); err != nil {
		return fmt.Errorf("check staged change %s: %w", change.IdempotencyKey, err)
	}
	if staged > 0 {
		return fmt.Errorf("change %s: %w", change.IdempotencyKey, ErrDuplicateChange)
	}

	fields, err := encodeValueMap(change.Fields)
	if err != nil {
		return fmt.Errorf("encode change fields: %w", err)
	}

	_, err = r.DB.ExecContext(ctx, insertPendingChange,
		change.IdempotencyKey,
		change.EntityType,
		change.EntityID,
		string(change.Op),
		fields,
		change.StagedAt,
	)
	if err != nil {
		log.Err(err).
			Str("idempotency_key", change.IdempotencyKey).
			Str("entity_type", change.EntityType).
			Msg("failed to stage pending change")
		return fmt.Errorf("failed to stage pending change %s: %w", change.IdempotencyKey, err)
	}

	return nil
}

func (r *syncStateRepository) ListPending(ctx context.Context, filter OutboxFilter) ([]models.PendingChange, error) {
	log := logger.FromContext(ctx)

	q := sq.Select("idempotency_key", "entity_type", "entity_id", "operation", "fields", "staged_at").
		From("outbox").
		OrderBy("staged_at ASC", "idempotency_key ASC")
	if filter.EntityType != "" {
		q = q.Where(sq.Eq{"entity_type": filter.EntityType})
	}
	if filter.Limit > 0 {
		q = q.Limit(uint64(filter.Limit))
	}

	query, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build outbox query: %w", err)
	}

	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		log.Err(err).Msg("failed to query outbox")
		return nil, fmt.Errorf("failed to query outbox: %w", err)
	}
	defer rows.Close()

	var changes []models.PendingChange
	for rows.Next() {
		var (
			change models.PendingChange
			op     string
			fields sql.NullString
		)
		if err = rows.Scan(&change.IdempotencyKey, &change.EntityType, &change.EntityID, &op, &fields, &change.StagedAt); err != nil {
			return nil, fmt.Errorf("scan outbox row: %w", err)
		}
		change.Op = models.ChangeOp(op)
		if change.Fields, err = decodeValueMap(fields); err != nil {
			return nil, fmt.Errorf("decode fields of change %s: %w", change.IdempotencyKey, err)
		}
		changes = append(changes, change)
	}

	return changes, rows.Err()
}

func (r *syncStateRepository) RemovePending(ctx context.Context, idempotencyKeys ...string) error {
	log := logger.FromContext(ctx)

	for _, key := range idempotencyKeys {
		if _, err := r.DB.ExecContext(ctx, deletePendingChange, key); err != nil {
			log.Err(err).Str("idempotency_key", key).Msg("failed to remove pending change")
			return fmt.Errorf("failed to remove pending change %s: %w", key, err)
		}
	}

	return nil
}

func (r *syncStateRepository) PendingCount(ctx context.Context) (int, error) {
	var count int
	if err := r.DB.QueryRowContext(ctx, countPendingChanges).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count pending changes: %w", err)
	}
	return count, nil
}

func (r *syncStateRepository) SaveConflicts(ctx context.Context, conflicts ...models.Conflict) error {
	log := logger.FromContext(ctx)

	for _, conflict := range conflicts {
		local, err := encodeValueMap(conflict.Local)
		if err != nil {
			return fmt.Errorf("encode local payload of conflict %s: %w", conflict.ID, err)
		}
		remote, err := encodeValueMap(conflict.Remote)
		if err != nil {
			return fmt.Errorf("encode remote payload of conflict %s: %w", conflict.ID, err)
		}

		_, err = r.DB.ExecContext(ctx, upsertConflict,
			conflict.ID,
			conflict.EntityType,
			conflict.EntityID,
			string(conflict.Kind),
			conflict.IdempotencyKey,
			local,
			remote,
			conflict.DetectedAt,
		)
		if err != nil {
			log.Err(err).
				Str("conflict_id", conflict.ID).
				Str("entity_type", conflict.EntityType).
				Msg("failed to save conflict")
			return fmt.Errorf("failed to save conflict %s: %w", conflict.ID, err)
		}
	}

	return nil
}

func (r *syncStateRepository) ListConflicts(ctx context.Context, filter ConflictFilter) ([]models.Conflict, error) {
	log := logger.FromContext(ctx)

	q := sq.Select("conflict_id", "entity_type", "entity_id", "kind", "idempotency_key", "local_payload", "remote_payload", "detected_at").
		From("conflicts").
		OrderBy("detected_at ASC", "conflict_id ASC")
	if filter.EntityType != "" {
		q = q.Where(sq.Eq{"entity_type": filter.EntityType})
	}
	if filter.EntityID != 0 {
		q = q.Where(sq.Eq{"entity_id": filter.EntityID})
	}
	if filter.Limit > 0 {
		q = q.Limit(uint64(filter.Limit))
	}

	query, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build conflicts query: %w", err)
	}

	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		log.Err(err).Msg("failed to query conflicts")
		return nil, fmt.Errorf("failed to query conflicts: %w", err)
	}
	defer rows.Close()

	var conflicts []models.Conflict
	for rows.Next() {
		var (
			conflict models.Conflict
			kind     string
			local    sql.NullString
			remote   sql.NullString
		)
		if err = rows.Scan(&conflict.ID, &conflict.EntityType, &conflict.EntityID, &kind, &conflict.IdempotencyKey, &local, &remote, &conflict.DetectedAt); err != nil {
			return nil, fmt.Errorf("scan conflict row: %w", err)
		}
		conflict.Kind = models.ConflictKind(kind)
		if conflict.Local, err = decodeValueMap(local); err != nil {
			return nil, fmt.Errorf("decode local payload of conflict %s: %w", conflict.ID, err)
		}
		if conflict.Remote, err = decodeValueMap(remote); err != nil {
			return nil, fmt.Errorf("decode remote payload of conflict %s: %w", conflict.ID, err)
		}
		conflicts = append(conflicts, conflict)
	}

	return conflicts, rows.Err()
}

func (r *syncStateRepository) DeleteConflict(ctx context.Context, conflictID string) error {
	res, err := r.DB.ExecContext(ctx, deleteConflict, conflictID)
	if err != nil {
		return fmt.Errorf("failed to delete conflict %s: %w", conflictID, err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete conflict rows affected: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("conflict %s: %w", conflictID, ErrConflictNotFound)
	}

	return nil
}

func encodeValueMap(m models.ValueMap) (sql.NullString, error) {
	if m == nil {
		return sql.NullString{}, nil
	}
	payload, err := json.Marshal(m)
	if err != nil {
		return sql.NullString{}, err
	}
	return sql.NullString{String: string(payload), Valid: true}, nil
}

func decodeValueMap(raw sql.NullString) (models.ValueMap, error) {
	if !raw.Valid || raw.String == "" {
		return nil, nil
	}
	var m models.ValueMap
	if err := json.Unmarshal([]byte(raw.String), &m); err != nil {
		return nil, err
	}
	return m, nil
}
