package config

import (
	"flag"
	"os"
	"time"
)

// ParseFlags parses all configuration flags from the process arguments.
//
// Flags:
//
//	-a backend address in format [host]:[port]
//	-stream-address websocket stream address
//	-d local database DSN (SQLite file path)
//	-c/-config json file path with configs
//	-user-id server-side user id
//	-device-id stable device identifier
//	-app-type client application type label
//	-token bearer token
//	-check-interval update-check interval (e.g. "30s")
//	-sync-interval fallback full-sync interval (e.g. "5m")
//	-request-timeout request timeout (e.g. "30s", "1m")
func ParseFlags() *StructuredConfig {
	return parseFlagsFrom(flag.NewFlagSet(os.Args[0], flag.ContinueOnError), os.Args[1:])
}

func parseFlagsFrom(fs *flag.FlagSet, args []string) *StructuredConfig {
	var serverAddress string
	var streamAddress string
	var databaseDSN string
	var jsonConfigPath string
	var userID int64
	var deviceID string
	var appType string
	var token string
	var checkInterval time.Duration
	var syncInterval time.Duration
	var requestTimeout time.Duration

	fs.StringVar(&serverAddress, "a", "", "Backend address host:port")
	fs.StringVar(&streamAddress, "stream-address", "", "Websocket stream address")
	fs.StringVar(&databaseDSN, "d", "", "Local database DSN")
	fs.StringVar(&jsonConfigPath, "c", "", "JSON config file path")
	fs.StringVar(&jsonConfigPath, "config", "", "JSON config file path (alias)")
	fs.Int64Var(&userID, "user-id", 0, "Server-side user id")
	fs.StringVar(&deviceID, "device-id", "", "Stable device identifier")
	fs.StringVar(&appType, "app-type", "", "Client application type")
	fs.StringVar(&token, "token", "", "Bearer token")
	fs.DurationVar(&checkInterval, "check-interval", 0, "Update check interval (e.g., 30s)")
	fs.DurationVar(&syncInterval, "sync-interval", 0, "Full sync interval (e.g., 5m)")
	fs.DurationVar(&requestTimeout, "request-timeout", 0, "Request timeout (e.g., 30s, 1m)")

	_ = fs.Parse(args)

	return &StructuredConfig{
		App: App{
			UserID:   userID,
			DeviceID: deviceID,
			AppType:  appType,
			Token:    token,
		},
		Adapter: Adapter{
			HTTPAddress:    serverAddress,
			StreamAddress:  streamAddress,
			RequestTimeout: requestTimeout,
		},
		Storage: Storage{
			DB: DB{
				DSN: databaseDSN,
			},
		},
		Workers: Workers{
			CheckInterval: checkInterval,
			SyncInterval:  syncInterval,
		},
		JSONFilePath: jsonConfigPath,
	}
}
