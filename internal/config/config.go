package config

import (
	"time"
)

// StructuredConfig is the top-level configuration container for adaptsync.
// It aggregates all sub-configurations and is populated by merging values
// from environment variables, command-line flags, and an optional JSON file.
//
// Struct tags:
//   - envPrefix — prefix applied to all nested env tag lookups (caarlos0/env).
//   - env       — direct environment variable name for scalar fields.
type StructuredConfig struct {
	// App holds application-level identity settings: the user, device and
	// application type this sync client acts for.
	App App `envPrefix:"APP_"`

	// Adapter holds configuration for the outbound transport layer.
	Adapter Adapter `envPrefix:"ADAPTER_"`

	// Storage holds configuration for the local durable store.
	Storage Storage `envPrefix:"STORAGE_"`

	// Workers holds configuration for the background sync scheduler.
	Workers Workers `envPrefix:"WORKERS_"`

	// JSONFilePath is the optional path to a JSON configuration file.
	// When non-empty, the file is parsed and merged on top of the values
	// already loaded from environment variables and flags.
	// Populated via the CONFIG environment variable or the -c / -config flag.
	JSONFilePath string `env:"CONFIG"`
}

// App holds the identity this client syncs on behalf of.
type App struct {
	// UserID is the server-side id of the authenticated user.
	// Env: APP_USER_ID
	UserID int64 `env:"USER_ID"`

	// DeviceID identifies this installation to the server. When empty a
	// stable id is generated on first start and persisted in the local
	// store.
	// Env: APP_DEVICE_ID
	DeviceID string `env:"DEVICE_ID"`

	// AppType labels the kind of client (e.g. "desktop", "mobile") in
	// check-updates and smart-pull calls.
	// Env: APP_TYPE
	AppType string `env:"TYPE"`

	// Token is the bearer token attached to every backend request.
	// Env: APP_TOKEN
	Token string `env:"TOKEN"`
}

// Adapter holds network settings used by the client transport layer.
type Adapter struct {
	// HTTPAddress is the backend HTTP endpoint address.
	// Env: ADAPTER_ADDRESS
	HTTPAddress string `env:"ADDRESS"`

	// StreamAddress is the optional websocket endpoint for the live event
	// stream. Empty disables streaming.
	// Env: ADAPTER_STREAM_ADDRESS
	StreamAddress string `env:"STREAM_ADDRESS"`

	// RequestTimeout is the default timeout for outbound client requests
	// (e.g. "30s", "1m").
	// Env: ADAPTER_REQUEST_TIMEOUT
	RequestTimeout time.Duration `env:"REQUEST_TIMEOUT"`
}

// Storage groups local persistence settings.
type Storage struct {
	// DB holds the local database connection settings.
	DB DB `envPrefix:"DB_"`
}

// DB holds connection settings for the local SQLite database that backs the
// sync state store and the outbox.
type DB struct {
	// DSN is the SQLite file path.
	// Env: STORAGE_DB_DATABASE_URI
	DSN string `env:"DATABASE_URI"`
}

// Workers holds background scheduler settings.
type Workers struct {
	// CheckInterval is how often the periodic checker polls check-updates
	// when the previous poll succeeded.
	// Env: WORKERS_CHECK_INTERVAL
	CheckInterval time.Duration `env:"CHECK_INTERVAL"`

	// SyncInterval is the fallback full-sync interval.
	// Env: WORKERS_SYNC_INTERVAL
	SyncInterval time.Duration `env:"SYNC_INTERVAL"`

	// BackoffBase is the base delay of the shared linear backoff policy.
	// Env: WORKERS_BACKOFF_BASE
	BackoffBase time.Duration `env:"BACKOFF_BASE"`

	// BackoffMaxAttempts bounds retry attempts before a consumer gives up.
	// Env: WORKERS_BACKOFF_MAX_ATTEMPTS
	BackoffMaxAttempts int `env:"BACKOFF_MAX_ATTEMPTS"`
}
