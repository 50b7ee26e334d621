package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
)

// Storage backends
const (
	BackendMemory   = "memory"
	BackendPostgres = "postgres"
)

// Config holds process-wide settings loaded from the environment
type Config struct {
	ServerPort         string
	AdminPassword      string
	JWTSecret          string
	JWTExpirationHours int64
	StorageBackend     string
	SeedSampleData     bool
}

// Load reads application configuration from environment variables.
// ADMIN_PASSWORD and JWT_SECRET_KEY are required; everything else defaults.
func Load() (*Config, error) {
	adminPassword := os.Getenv("ADMIN_PASSWORD")
	if adminPassword == "" {
		return nil, fmt.Errorf("ADMIN_PASSWORD not set in environment")
	}

	jwtSecret := os.Getenv("JWT_SECRET_KEY")
	if jwtSecret == "" {
		return nil, fmt.Errorf("JWT_SECRET_KEY not set in environment")
	}

	jwtExpHours := int64(24)
	if v := os.Getenv("JWT_EXPIRATION_HOURS"); v != "" {
		parsed, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			log.Printf("Invalid JWT_EXPIRATION_HOURS, defaulting to 24: %v", err)
		} else {
			jwtExpHours = parsed
		}
	}

	serverPort := os.Getenv("SERVER_PORT")
	if serverPort == "" {
		serverPort = "8080" // Default port
	}

	backend := os.Getenv("STORAGE_BACKEND")
	if backend == "" {
		backend = BackendMemory
	}
	if backend != BackendMemory && backend != BackendPostgres {
		return nil, fmt.Errorf("unknown STORAGE_BACKEND %q (want %q or %q)", backend, BackendMemory, BackendPostgres)
	}

	seed := true
	if v := os.Getenv("SEED_SAMPLE_DATA"); v != "" {
		parsed, err := strconv.ParseBool(v)
		if err != nil {
			log.Printf("Invalid SEED_SAMPLE_DATA, defaulting to true: %v", err)
		} else {
			seed = parsed
		}
	}

	return &Config{
		ServerPort:         serverPort,
		AdminPassword:      adminPassword,
		JWTSecret:          jwtSecret,
		JWTExpirationHours: jwtExpHours,
		StorageBackend:     backend,
		SeedSampleData:     seed,
	}, nil
}
