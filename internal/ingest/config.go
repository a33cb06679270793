package ingest

import (
	"time"

	"github.com/mohammed-shakir/geojson-geometry/internal/config"
)

type Config struct {
	Brokers             []string
	Topic               string
	GroupID             string
	SessionTimeout      time.Duration
	Heartbeat           time.Duration
	RebalanceTimeout    time.Duration
	InitialOffsetOldest bool
	DedupeSize          int
	// TTL of stored results; zero keeps them until overwritten.
	TTL time.Duration
}

func FromConfig(c config.Config) Config {
	return Config{
		Brokers:             c.Ingest.Brokers,
		Topic:               c.Ingest.Topic,
		GroupID:             c.Ingest.GroupID,
		SessionTimeout:      30 * time.Second,
		Heartbeat:           3 * time.Second,
		RebalanceTimeout:    30 * time.Second,
		InitialOffsetOldest: true,
		DedupeSize:          c.Ingest.DedupeLRU,
		TTL:                 c.Cache.TTL,
	}
}
