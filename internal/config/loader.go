package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Store backend names accepted by GYMADMIN_STORE.
const (
	StoreMemory = "memory"
	StoreSQLite = "sqlite"
)

// Config captures environment driven configuration values for the admin service.
type Config struct {
	HTTPPort   int
	Store      string
	SQLiteDSN  string
	APILatency time.Duration
	RandSeed   int64
}

// Load parses configuration values from the current process environment.
//
// Every variable is optional and falls back to a default; set values are
// validated and reported together when invalid.
func Load() (Config, error) {
	cfg := Config{
		HTTPPort:   8080,
		Store:      StoreMemory,
		SQLiteDSN:  "",
		APILatency: 0,
		RandSeed:   1,
	}

	invalid := make([]string, 0, 2)

	if portValue := strings.TrimSpace(os.Getenv("GYMADMIN_HTTP_PORT")); portValue != "" {
		port, err := strconv.Atoi(portValue)
		if err != nil || port <= 0 {
			invalid = append(invalid, "GYMADMIN_HTTP_PORT")
		} else {
			cfg.HTTPPort = port
		}
	}

	if store := strings.TrimSpace(os.Getenv("GYMADMIN_STORE")); store != "" {
		switch store {
		case StoreMemory, StoreSQLite:
			cfg.Store = store
		default:
			invalid = append(invalid, "GYMADMIN_STORE")
		}
	}

	if dsn := strings.TrimSpace(os.Getenv("GYMADMIN_SQLITE_DSN")); dsn != "" {
		cfg.SQLiteDSN = dsn
	}

	if latencyValue := strings.TrimSpace(os.Getenv("GYMADMIN_API_LATENCY")); latencyValue != "" {
		latency, err := time.ParseDuration(latencyValue)
		if err != nil || latency < 0 {
			invalid = append(invalid, "GYMADMIN_API_LATENCY")
		} else {
			cfg.APILatency = latency
		}
	}

	if seedValue := strings.TrimSpace(os.Getenv("GYMADMIN_RAND_SEED")); seedValue != "" {
		seed, err := strconv.ParseInt(seedValue, 10, 64)
		if err != nil {
			invalid = append(invalid, "GYMADMIN_RAND_SEED")
		} else {
			cfg.RandSeed = seed
		}
	}

	if len(invalid) > 0 {
		return Config{}, fmt.Errorf("invalid environment variable values: %s", strings.Join(invalid, ", "))
	}

	return cfg, nil
}
