// Package config loads service settings from the environment and decode
// settings from an optional YAML file.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

type CacheCfg struct {
	RedisEnabled bool
	RedisAddr    string        `validate:"required_if=RedisEnabled true"`
	TTL          time.Duration `validate:"gte=0"`
	LRUSize      int           `validate:"gt=0"`
	OpTimeout    time.Duration `validate:"gt=0"`
}

type IngestCfg struct {
	Enabled   bool
	Brokers   []string `validate:"dive,required"`
	Topic     string   `validate:"required"`
	GroupID   string   `validate:"required"`
	DedupeLRU int      `validate:"gt=0"`
}

type Config struct {
	Addr         string `validate:"required"`
	LogLevel     string `validate:"oneof=debug info warn error"`
	LogConsole   bool
	LogSampleN   int    `validate:"gte=0"`
	MetricsPath  string `validate:"required,startswith=/"`
	MaxBodyBytes int64  `validate:"gt=0"`
	OptionsFile  string
	Dimension    string `validate:"oneof=2d 3d 2 3"`
	Cache        CacheCfg
	Ingest       IngestCfg
}

func FromEnv() Config {
	return Config{
		Addr:         getenv("ADDR", ":8090"),
		LogLevel:     strings.ToLower(getenv("LOG_LEVEL", "info")),
		LogConsole:   getbool("LOG_CONSOLE", false),
		LogSampleN:   getint("LOG_SAMPLE_N", 0),
		MetricsPath:  getenv("METRICS_PATH", "/metrics"),
		MaxBodyBytes: getint64("MAX_BODY_BYTES", 8<<20),
		OptionsFile:  getenv("OPTIONS_FILE", ""),
		Dimension:    strings.ToLower(getenv("DEFAULT_DIMENSION", "3d")),
		Cache: CacheCfg{
			RedisEnabled: getbool("REDIS_ENABLED", false),
			RedisAddr:    getenv("REDIS_ADDR", "localhost:6379"),
			TTL:          getduration("CACHE_TTL", 10*time.Minute),
			LRUSize:      getint("CACHE_LRU_SIZE", 1024),
			OpTimeout:    getduration("CACHE_OP_TIMEOUT", 250*time.Millisecond),
		},
		Ingest: IngestCfg{
			Enabled:   getbool("INGEST_ENABLED", false),
			Brokers:   splitCSV(getenv("KAFKA_BROKERS", "localhost:9092")),
			Topic:     getenv("KAFKA_TOPIC", "geojson-documents"),
			GroupID:   getenv("KAFKA_GROUP_ID", "geojson-ingest"),
			DedupeLRU: getint("INGEST_DEDUPE_SIZE", 4096),
		},
	}
}

// Validate reports the first invalid field. Ingest stores its results in
// Redis, so it needs Redis enabled.
func (c Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	if c.Ingest.Enabled && !c.Cache.RedisEnabled {
		return errors.New("config: INGEST_ENABLED requires REDIS_ENABLED")
	}
	return nil
}

func getenv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

func getint(k string, def int) int {
	if v := os.Getenv(k); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return def
}

func getint64(k string, def int64) int64 {
	if v := os.Getenv(k); v != "" {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil {
			return n
		}
	}
	return def
}

func getbool(k string, def bool) bool {
	if v := os.Getenv(k); v != "" {
		switch strings.ToLower(strings.TrimSpace(v)) {
		case "1", "t", "true", "y", "yes":
			return true
		case "0", "f", "false", "n", "no":
			return false
		}
	}
	return def
}

func getduration(k string, def time.Duration) time.Duration {
	if v := os.Getenv(k); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return def
}

func splitCSV(s string) []string {
	var out []string
	for p := range strings.SplitSeq(s, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
