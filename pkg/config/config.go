// Package config holds the process configuration for the product
// directory. Values are read from the environment exactly once at
// startup and injected into the components that need them; nothing in
// the codebase reads the environment ad hoc after boot.
package config

import (
	"os"
	"strings"
)

// Config is the read-once configuration surface.
type Config struct {
	// DatabaseURL is the direct PostgreSQL connection string. When set,
	// the relational backend is selected exclusively, even if REST
	// credentials are also present.
	DatabaseURL string

	// RestURL and RestServiceKey configure the REST-fronted
	// database-as-a-service backend. Both must be set for the REST
	// backend to be selected.
	RestURL        string
	RestServiceKey string

	// DevMode widens every "approved" status filter to also include
	// "pending" rows, so developers can see seeded data that would
	// otherwise be hidden. Presence of DevSeedToken implies the same
	// widening.
	DevMode      bool
	DevSeedToken string

	// ListenAddr is the HTTP bind address for the serve command.
	ListenAddr string
}

// FromEnv reads the configuration from the environment.
func FromEnv() Config {
	return Config{
		DatabaseURL:    os.Getenv("DATABASE_URL"),
		RestURL:        strings.TrimRight(os.Getenv("REST_URL"), "/"),
		RestServiceKey: os.Getenv("REST_SERVICE_KEY"),
		DevMode:        parseBool(os.Getenv("DEV_MODE")),
		DevSeedToken:   os.Getenv("DEV_SEED_TOKEN"),
		ListenAddr:     defaultString(os.Getenv("LISTEN_ADDR"), ":8080"),
	}
}

// WidenApproved reports whether approved-status filters should also
// match pending rows. This applies uniformly to product listing,
// search, favorite listings, and the top-categories aggregation.
func (c Config) WidenApproved() bool {
	return c.DevMode || c.DevSeedToken != ""
}

func parseBool(s string) bool {
	switch strings.ToLower(s) {
	case "1", "true", "yes", "on":
		return true
	default:
		return false
	}
}

func defaultString(s, def string) string {
	if s == "" {
		return def
	}
	return s
}
