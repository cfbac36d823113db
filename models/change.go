package models

import "time"

// ChangeOp is the kind of local mutation recorded in the outbox.
type ChangeOp string

const (
	OpCreate ChangeOp = "create"
	OpUpdate ChangeOp = "update"
	OpDelete ChangeOp = "delete"
)

// PendingChange is one local mutation awaiting delivery to the server.
// A change is immutable once staged: superseding edits create a new
// PendingChange and callers coalesce before push if desired. EntityID is
// negative for records created locally that have not yet been assigned a
// server id.
type PendingChange struct {
	EntityType     string    `json:"entity_type"`
	EntityID       int64     `json:"entity_id"`
	Op             ChangeOp  `json:"operation"`
	Fields         ValueMap  `json:"fields,omitempty"`
	IdempotencyKey string    `json:"idempotency_key"`
	StagedAt       time.Time `json:"staged_at"`
}

// ConflictKind classifies why a pushed change could not be applied.
type ConflictKind string

const (
	ConflictBothModified  ConflictKind = "both_modified"
	ConflictRemoteDeleted ConflictKind = "remote_deleted"
)

// Conflict pairs a rejected local change with the server's current version of
// the same entity. Conflicts stay in the sync state store until an explicit
// resolution is submitted; there is no implicit default.
type Conflict struct {
	ID             string       `json:"conflict_id"`
	EntityType     string       `json:"entity_type"`
	EntityID       int64        `json:"entity_id"`
	Kind           ConflictKind `json:"kind"`
	IdempotencyKey string       `json:"idempotency_key"`
	Local          ValueMap     `json:"local,omitempty"`
	Remote         ValueMap     `json:"remote,omitempty"`
	DetectedAt     time.Time    `json:"detected_at"`
}

// ResolutionChoice selects which side of a conflict wins.
type ResolutionChoice string

const (
	KeepLocal  ResolutionChoice = "keep_local"
	KeepRemote ResolutionChoice = "keep_remote"
	Merge      ResolutionChoice = "merge"
)

// Resolution is a caller-supplied decision for one conflict. Merged is only
// consulted when Choice is Merge; when nil the local and remote payloads are
// merged field-wise with local values taking precedence.
type Resolution struct {
	ConflictID string           `json:"conflict_id"`
	Choice     ResolutionChoice `json:"resolution"`
	Merged     ValueMap         `json:"merged_payload,omitempty"`
}

// ResolutionOutcome reports the per-conflict result of a resolution batch.
type ResolutionOutcome struct {
	Resolved []string          `json:"resolved"`
	Failed   map[string]string `json:"failed,omitempty"`
}
