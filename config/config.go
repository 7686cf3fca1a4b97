package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Event source kinds.
const (
	SourceSeed     = "seed"
	SourceGraphQL  = "graphql"
	SourcePostgres = "postgres"
)

// placeholderEndpoint marks a GraphQL endpoint that was never configured.
const placeholderEndpoint = "localhost:4000"

// Config holds all configuration for the application
type Config struct {
	Environment string
	Port        string

	EventSource string

	GraphQLEndpoint  string
	GraphQLAPIKey    string
	GraphQLAuthToken string
	GraphQLAuthType  string
	GraphQLTimeout   time.Duration

	DBUrl            string
	SeedFile         string
	SimulatedLatency time.Duration

	CacheTTL        time.Duration
	RequestTimeout  time.Duration
	CoalesceFetches bool

	AllowedOrigins []string
	AdminToken     string
}

// Load loads configuration from environment variables
// It attempts to load from .env file if not in production
func Load() (*Config, error) {
	env := os.Getenv("GO_ENV")
	if env == "" {
		env = "development"
	}

	// In production the environment is the only source.
	if env != "production" {
		if err := godotenv.Load(); err != nil {
			log.Printf("Warning: .env file not found or couldn't be loaded: %v", err)
		}
	}

	cfg := &Config{
		Environment:      env,
		Port:             getEnv("PORT", "8080"),
		GraphQLEndpoint:  os.Getenv("GRAPHQL_ENDPOINT"),
		GraphQLAPIKey:    os.Getenv("GRAPHQL_API_KEY"),
		GraphQLAuthToken: os.Getenv("GRAPHQL_AUTH_TOKEN"),
		GraphQLAuthType:  strings.ToLower(getEnv("GRAPHQL_AUTH_TYPE", "bearer")),
		DBUrl:            os.Getenv("DATABASE_URL"),
		SeedFile:         os.Getenv("SEED_FILE"),
		AllowedOrigins:   splitCSV(os.Getenv("ALLOWED_ORIGINS")),
		AdminToken:       os.Getenv("ADMIN_TOKEN"),
	}

	var err error
	if cfg.GraphQLTimeout, err = getDuration("GRAPHQL_TIMEOUT", 10*time.Second); err != nil {
		return nil, err
	}
	if cfg.SimulatedLatency, err = getDuration("SIMULATED_LATENCY", 0); err != nil {
		return nil, err
	}
	if cfg.CacheTTL, err = getDuration("CACHE_TTL", 5*time.Minute); err != nil {
		return nil, err
	}
	if cfg.RequestTimeout, err = getDuration("REQUEST_TIMEOUT", 15*time.Second); err != nil {
		return nil, err
	}
	if cfg.CoalesceFetches, err = getBool("COALESCE_FETCHES", false); err != nil {
		return nil, err
	}

	cfg.EventSource, err = resolveSource(strings.ToLower(strings.TrimSpace(os.Getenv("EVENT_SOURCE"))), cfg)
	if err != nil {
		return nil, err
	}
	return cfg, nil
}

// resolveSource picks graphql when a real endpoint is configured and seed
// otherwise, unless the kind is set explicitly.
func resolveSource(kind string, cfg *Config) (string, error) {
	switch kind {
	case "":
		if cfg.GraphQLEndpoint != "" && !strings.Contains(cfg.GraphQLEndpoint, placeholderEndpoint) {
			return SourceGraphQL, nil
		}
		return SourceSeed, nil
	case SourceSeed:
		return kind, nil
	case SourceGraphQL:
		if cfg.GraphQLEndpoint == "" {
			return "", fmt.Errorf("EVENT_SOURCE=graphql requires GRAPHQL_ENDPOINT")
		}
		return kind, nil
	case SourcePostgres:
		if cfg.DBUrl == "" {
			return "", fmt.Errorf("EVENT_SOURCE=postgres requires DATABASE_URL")
		}
		return kind, nil
	default:
		return "", fmt.Errorf("unknown EVENT_SOURCE %q", kind)
	}
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getDuration(key string, fallback time.Duration) (time.Duration, error) {
	s := os.Getenv(key)
	if s == "" {
		return fallback, nil
	}
	d, err := time.ParseDuration(s)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	if d < 0 {
		return 0, fmt.Errorf("invalid %s: must not be negative", key)
	}
	return d, nil
}

func getBool(key string, fallback bool) (bool, error) {
	s := os.Getenv(key)
	if s == "" {
		return fallback, nil
	}
	b, err := strconv.ParseBool(s)
	if err != nil {
		return false, fmt.Errorf("invalid %s: %w", key, err)
	}
	return b, nil
}

func splitCSV(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
