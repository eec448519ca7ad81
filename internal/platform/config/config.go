// Package config builds the process configuration from environment variables
// so main stays lean. Every variable carries the RECSCOPE_ prefix.
package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"recscope/internal/scope"
)

// Config is the full process configuration.
type Config struct {
	Server   Server
	Postgres Postgres
	Redis    Redis
	Kafka    Kafka
	Catalog  Catalog
	Weights  scope.Weights
}

// Server captures HTTP server level configuration.
type Server struct {
	Addr            string
	ShutdownTimeout time.Duration
}

// Postgres captures the relational store configuration. An empty URL selects
// the in-memory stores, which is the mode unit tests and local smoke runs use.
type Postgres struct {
	URL string
}

// Redis captures the question cache configuration. An empty URL disables the
// cache; refreshes still work, clients just re-fetch question sets.
type Redis struct {
	URL          string
	PoolSize     int
	MinIdleConns int
	DialTimeout  time.Duration
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

// Kafka captures the audit sink configuration. No brokers means audit events
// stay in memory.
type Kafka struct {
	Brokers []string
	Topic   string
}

// Catalog locates the standard version file published at startup.
type Catalog struct {
	Path string
}

// FromEnv builds a Config from environment variables.
func FromEnv() Config {
	return Config{
		Server: Server{
			Addr:            getEnv("RECSCOPE_ADDR", ":8080"),
			ShutdownTimeout: getDuration("RECSCOPE_SHUTDOWN_TIMEOUT", 10*time.Second),
		},
		Postgres: Postgres{
			URL: os.Getenv("RECSCOPE_POSTGRES_URL"),
		},
		Redis: Redis{
			URL:          os.Getenv("RECSCOPE_REDIS_URL"),
			PoolSize:     getInt("RECSCOPE_REDIS_POOL_SIZE", 10),
			MinIdleConns: getInt("RECSCOPE_REDIS_MIN_IDLE_CONNS", 2),
			DialTimeout:  getDuration("RECSCOPE_REDIS_DIAL_TIMEOUT", 5*time.Second),
			ReadTimeout:  getDuration("RECSCOPE_REDIS_READ_TIMEOUT", 3*time.Second),
			WriteTimeout: getDuration("RECSCOPE_REDIS_WRITE_TIMEOUT", 3*time.Second),
		},
		Kafka: Kafka{
			Brokers: splitNonEmpty(os.Getenv("RECSCOPE_KAFKA_BROKERS")),
			Topic:   getEnv("RECSCOPE_KAFKA_AUDIT_TOPIC", "recscope.audit"),
		},
		Catalog: Catalog{
			Path: getEnv("RECSCOPE_CATALOG_PATH", "catalog/r2v3.yaml"),
		},
		Weights: weightsFromEnv(),
	}
}

// weightsFromEnv reads complexity weight overrides; unset variables keep the
// defaults so deployments only pin the factors they tune.
func weightsFromEnv() scope.Weights {
	w := scope.DefaultWeights()
	w.FacilityCount = getFloat("RECSCOPE_WEIGHT_FACILITY_COUNT", w.FacilityCount)
	w.ActivityKind = getFloat("RECSCOPE_WEIGHT_ACTIVITY_KIND", w.ActivityKind)
	w.ExportMarkets = getFloat("RECSCOPE_WEIGHT_EXPORT_MARKETS", w.ExportMarkets)
	w.DataBearing = getFloat("RECSCOPE_WEIGHT_DATA_BEARING", w.DataBearing)
	w.FocusMaterials = getFloat("RECSCOPE_WEIGHT_FOCUS_MATERIALS", w.FocusMaterials)
	w.MultiSite = getFloat("RECSCOPE_WEIGHT_MULTI_SITE", w.MultiSite)
	return w
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func getFloat(key string, fallback float64) float64 {
	if v := os.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	}
	return fallback
}

func getDuration(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return fallback
}

func splitNonEmpty(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
