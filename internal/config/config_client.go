package config

import (
	"fmt"
	"time"
)

// ClientApp holds the identity the sync client acts for.
type ClientApp struct {
	// UserID is the server-side id of the authenticated user.
	UserID int64
	// DeviceID identifies this installation; may be empty until the app
	// generates and persists one.
	DeviceID string
	// AppType labels the kind of client in polling calls.
	AppType string
	// Token is the bearer token for backend requests.
	Token string
}

// ClientAdapter holds network settings used by the client transport layer.
type ClientAdapter struct {
	// HTTPAddress is the HTTP endpoint address used by the client.
	HTTPAddress string
	// StreamAddress is the optional websocket endpoint for live events.
	StreamAddress string
	// RequestTimeout is the default timeout for outbound client requests.
	RequestTimeout time.Duration
}

// ClientDB contains local database connection settings for the client.
type ClientDB struct {
	// DSN is the SQLite connection string used by the client.
	DSN string
}

// ClientStorage groups client storage backend settings.
type ClientStorage struct {
	// DB holds local database settings.
	DB ClientDB
}

// ClientWorkers contains background scheduler settings.
type ClientWorkers struct {
	// CheckInterval defines how often the update checker polls the backend.
	CheckInterval time.Duration
	// SyncInterval defines the fallback full-sync cadence.
	SyncInterval time.Duration
	// BackoffBase is the base delay of the shared backoff policy.
	BackoffBase time.Duration
	// BackoffMaxAttempts bounds retry attempts per consumer.
	BackoffMaxAttempts int
}

// ClientConfig is the top-level client configuration assembled from
// [StructuredConfig].
type ClientConfig struct {
	// App contains identity settings.
	App ClientApp
	// Adapter contains client transport addresses and timeouts.
	Adapter ClientAdapter
	// Storage contains client storage settings.
	Storage ClientStorage
	// Workers contains background scheduler settings.
	Workers ClientWorkers
}

// GetClientConfig builds and validates a client-specific config view from
// the merged structured configuration.
//
// It loads the base config via [GetStructuredConfig], maps only the fields
// relevant to the client runtime, applies scheduling defaults, and validates
// the resulting [ClientConfig].
func GetClientConfig() (*ClientConfig, error) {
	cfg, err := GetStructuredConfig()
	if err != nil {
		return nil, fmt.Errorf("error get structured config: %w", err)
	}

	clientCfg := &ClientConfig{
		App: ClientApp{
			UserID:   cfg.App.UserID,
			DeviceID: cfg.App.DeviceID,
			AppType:  cfg.App.AppType,
			Token:    cfg.App.Token,
		},
		Adapter: ClientAdapter{
			HTTPAddress:    cfg.Adapter.HTTPAddress,
			StreamAddress:  cfg.Adapter.StreamAddress,
			RequestTimeout: cfg.Adapter.RequestTimeout,
		},
		Storage: ClientStorage{
			DB: ClientDB{
				DSN: cfg.Storage.DB.DSN,
			},
		},
		Workers: ClientWorkers{
			CheckInterval:      cfg.Workers.CheckInterval,
			SyncInterval:       cfg.Workers.SyncInterval,
			BackoffBase:        cfg.Workers.BackoffBase,
			BackoffMaxAttempts: cfg.Workers.BackoffMaxAttempts,
		},
	}
	clientCfg.applyDefaults()

	return clientCfg, clientCfg.validate()
}

func (cfg *ClientConfig) applyDefaults() {
	if cfg.App.AppType == "" {
		cfg.App.AppType = "desktop"
	}
	if cfg.Adapter.RequestTimeout == 0 {
		cfg.Adapter.RequestTimeout = 30 * time.Second
	}
	if cfg.Workers.CheckInterval == 0 {
		cfg.Workers.CheckInterval = 30 * time.Second
	}
	if cfg.Workers.SyncInterval == 0 {
		cfg.Workers.SyncInterval = 5 * time.Minute
	}
	if cfg.Workers.BackoffBase == 0 {
		cfg.Workers.BackoffBase = 2 * time.Second
	}
	if cfg.Workers.BackoffMaxAttempts == 0 {
		cfg.Workers.BackoffMaxAttempts = 10
	}
}
