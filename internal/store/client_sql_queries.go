package store

const schemaDDL = `
	CREATE TABLE IF NOT EXISTS sync_cursors (
		user_id       INTEGER NOT NULL,
		device_id     TEXT    NOT NULL,
		last_event_id INTEGER,
		last_sync_at  TIMESTAMP NOT NULL,
		updated_at    TIMESTAMP NOT NULL,
		PRIMARY KEY (user_id, device_id)
	);

	CREATE TABLE IF NOT EXISTS outbox (
		idempotency_key TEXT PRIMARY KEY,
		entity_type     TEXT    NOT NULL,
		entity_id       INTEGER NOT NULL,
		operation       TEXT    NOT NULL,
		fields          TEXT,
		staged_at       TIMESTAMP NOT NULL
	);

	CREATE TABLE IF NOT EXISTS conflicts (
		conflict_id     TEXT PRIMARY KEY,
		entity_type     TEXT    NOT NULL,
		entity_id       INTEGER NOT NULL,
		kind            TEXT    NOT NULL,
		idempotency_key TEXT    NOT NULL,
		local_payload   TEXT,
		remote_payload  TEXT,
		detected_at     TIMESTAMP NOT NULL
	);`

const (
	getCursor = `
		SELECT
			user_id,
			device_id,
			last_event_id,
			last_sync_at,
			updated_at,
			(SELECT COUNT(*) FROM outbox) AS pending_changes
		FROM sync_cursors
		WHERE user_id = ? AND device_id = ?;`

	insertCursor = `
		INSERT INTO sync_cursors (
			user_id,
			device_id,
			last_event_id,
			last_sync_at,
			updated_at
		) VALUES (?, ?, NULL, ?, ?);`

	advanceCursor = `
		UPDATE sync_cursors
		SET last_event_id = ?, last_sync_at = ?, updated_at = ?
		WHERE user_id = ? AND device_id = ?
		  AND (last_event_id IS NULL OR last_event_id <= ?);`

	touchCursor = `
		UPDATE sync_cursors
		SET last_sync_at = ?, updated_at = ?
		WHERE user_id = ? AND device_id = ?;`

	resetCursor = `
		UPDATE sync_cursors
		SET last_event_id = NULL, last_sync_at = ?, updated_at = ?
		WHERE user_id = ? AND device_id = ?;`

	insertPendingChange = `
		INSERT INTO outbox (
			idempotency_key,
			entity_type,
			entity_id,
			operation,
			fields,
			staged_at
		) VALUES (?, ?, ?, ?, ?, ?);`

	existsPendingChange = `
		SELECT COUNT(*) FROM outbox WHERE idempotency_key = ?;`

	deletePendingChange = `
		DELETE FROM outbox WHERE idempotency_key = ?;`

	countPendingChanges = `
		SELECT COUNT(*) FROM outbox;`

	upsertConflict = `
		INSERT INTO conflicts (
			conflict_id,
			entity_type,
			entity_id,
			kind,
			idempotency_key,
			local_payload,
			remote_payload,
			detected_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT (conflict_id) DO UPDATE SET
			entity_type = excluded.entity_type,
			entity_id = excluded.entity_id,
			kind = excluded.kind,
			idempotency_key = excluded.idempotency_key,
			local_payload = excluded.local_payload,
			remote_payload = excluded.remote_payload,
			detected_at = excluded.detected_at;`

	deleteConflict = `
		DELETE FROM conflicts WHERE conflict_id = ?;`

	deleteConflictsAll = `
		DELETE FROM conflicts;`
)
