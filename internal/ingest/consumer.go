// Package ingest consumes GeoJSON documents from Kafka, decodes them and
// stores the rendered result under the message key.
package ingest

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/IBM/sarama"
	"github.com/rs/zerolog"

	"github.com/mohammed-shakir/geojson-geometry/internal/cache/keys"
	mylog "github.com/mohammed-shakir/geojson-geometry/internal/logger"
	"github.com/mohammed-shakir/geojson-geometry/internal/observability"
	"github.com/mohammed-shakir/geojson-geometry/internal/render"
	"github.com/mohammed-shakir/geojson-geometry/pkg/geojson"
)

// Store receives rendered results; satisfied by *redisstore.Client.
type Store interface {
	Set(ctx context.Context, key string, val []byte, ttl time.Duration) error
}

type Consumer struct {
	cfg     Config
	store   Store
	opts    geojson.Options
	dim     geojson.Dimension
	dedupe  *contentDedupe
	metrics *observability.Metrics
	log     zerolog.Logger

	ready atomic.Bool
	mu    sync.Mutex
	parts []int32
}

func New(cfg Config, store Store, opts geojson.Options, dim geojson.Dimension, m *observability.Metrics, log zerolog.Logger) *Consumer {
	return &Consumer{
		cfg:     cfg,
		store:   store,
		opts:    opts,
		dim:     dim,
		dedupe:  newContentDedupe(cfg.DedupeSize),
		metrics: m,
		log:     log,
	}
}

// Start joins the consumer group and blocks until ctx is canceled.
func (c *Consumer) Start(ctx context.Context) error {
	if c.store == nil {
		return errors.New("ingest: missing store")
	}

	cfg := sarama.NewConfig()
	cfg.Version = sarama.V2_1_0_0
	cfg.Consumer.Group.Session.Timeout = c.cfg.SessionTimeout
	cfg.Consumer.Group.Heartbeat.Interval = c.cfg.Heartbeat
	cfg.Consumer.Group.Rebalance.Timeout = c.cfg.RebalanceTimeout
	if c.cfg.InitialOffsetOldest {
		cfg.Consumer.Offsets.Initial = sarama.OffsetOldest
	} else {
		cfg.Consumer.Offsets.Initial = sarama.OffsetNewest
	}
	cfg.Consumer.Offsets.AutoCommit.Enable = true

	group, err := sarama.NewConsumerGroup(c.cfg.Brokers, c.cfg.GroupID, cfg)
	if err != nil {
		return fmt.Errorf("create consumer group: %w", err)
	}
	defer func() { _ = group.Close() }()

	handler := c.handler()
	c.log.Info().
		Strs("brokers", c.cfg.Brokers).
		Str("topic", c.cfg.Topic).
		Str("group", c.cfg.GroupID).
		Msg("ingest consumer starting")

	for {
		if err := group.Consume(ctx, []string{c.cfg.Topic}, handler); err != nil && !errors.Is(err, sarama.ErrClosedConsumerGroup) {
			c.log.Error().Err(err).Str("topic", c.cfg.Topic).Msg("kafka consumer error")
			select {
			case <-ctx.Done():
			case <-time.After(2 * time.Second):
			}
		}
		if ctx.Err() != nil {
			c.log.Info().Msg("ingest consumer shutting down")
			return nil
		}
	}
}

func (c *Consumer) handler() *groupHandler {
	return &groupHandler{
		process: c.ProcessOne,
		onSetup: func(claims map[string][]int32) {
			c.mu.Lock()
			c.parts = append(c.parts[:0], claims[c.cfg.Topic]...)
			c.mu.Unlock()
			c.ready.Store(true)
		},
		onClean: func() { c.ready.Store(false) },
	}
}

// Ping reports ready once the consumer holds a group session.
func (c *Consumer) Ping(context.Context) error {
	if !c.ready.Load() {
		return errors.New("no active consumer group session")
	}
	return nil
}

func (c *Consumer) Partitions() []int32 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]int32(nil), c.parts...)
}

// ProcessOne decodes and stores a single message. Messages whose content
// was already stored under the same id are skipped. Documents that fail to
// decode are stored as error bodies so readers can see why.
func (c *Consumer) ProcessOne(ctx context.Context, msg *sarama.ConsumerMessage) error {
	id := string(msg.Key)
	if id == "" {
		id = fmt.Sprintf("%s-%d-%d", msg.Topic, msg.Partition, msg.Offset)
	}
	log := mylog.FromContext(mylog.WithDocumentID(mylog.WithComponent(ctx, "ingest"), id), &c.log)

	sum := keys.ContentHash(msg.Value)
	if c.dedupe.seen(id, sum) {
		c.metrics.Ingested("duplicate")
		log.Debug().Int64("offset", msg.Offset).Msg("duplicate document skipped")
		return nil
	}

	start := time.Now()
	res := geojson.DecodeBytes(msg.Value, c.opts, c.dim)
	c.metrics.ObserveDecode(c.dim.String(), res.Kind().String(), time.Since(start))

	body, err := render.Marshal(res, c.dim)
	if err != nil {
		c.metrics.Ingested("failed")
		return fmt.Errorf("render %s: %w", id, err)
	}
	if err := c.store.Set(ctx, keys.Document(id), body, c.cfg.TTL); err != nil {
		c.metrics.Ingested("failed")
		log.Error().Err(err).
			Str("topic", msg.Topic).
			Int32("partition", msg.Partition).
			Int64("offset", msg.Offset).
			Msg("store failed")
		return fmt.Errorf("store %s: %w", id, err)
	}
	c.dedupe.remember(id, sum)

	if !res.OK() {
		c.metrics.Ingested("rejected")
		log.Warn().Err(res.Err()).Msg("document rejected")
		return nil
	}
	c.metrics.Ingested("stored")
	log.Debug().Str("kind", res.Kind().String()).Msg("document stored")
	return nil
}
