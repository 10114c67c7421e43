package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"strconv"
	"time"

	"eventgo-ticketing/internal/domain/catalog"
	"eventgo-ticketing/internal/usecase/shared"

	"github.com/redis/go-redis/v9"
)

// CachedReader is a read-through cache in front of the events service.
// Cache failures fall through to the service.
type CachedReader struct {
	next   shared.CatalogReader
	client *redis.Client
	ttl    time.Duration
	logger *slog.Logger
}

func NewCachedReader(next shared.CatalogReader, client *redis.Client, ttl time.Duration, logger *slog.Logger) *CachedReader {
	return &CachedReader{
		next:   next,
		client: client,
		ttl:    ttl,
		logger: logger,
	}
}

func (c *CachedReader) Event(ctx context.Context, eventID int64) (*catalog.Event, error) {
	key := eventKey(eventID)

	var event catalog.Event
	if c.load(ctx, key, &event) {
		return &event, nil
	}

	fresh, err := c.next.Event(ctx, eventID)
	if err != nil {
		return nil, err
	}
	c.store(ctx, key, fresh)
	return fresh, nil
}

func (c *CachedReader) Events(ctx context.Context) ([]catalog.Event, error) {
	var events []catalog.Event
	if c.load(ctx, eventsKey(), &events) {
		return events, nil
	}

	fresh, err := c.next.Events(ctx)
	if err != nil {
		return nil, err
	}
	c.store(ctx, eventsKey(), fresh)
	return fresh, nil
}

func (c *CachedReader) load(ctx context.Context, key string, out any) bool {
	data, err := c.client.Get(ctx, key).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			c.logger.Warn("catalog cache read failed", "key", key, "error", err.Error())
		}
		return false
	}
	if err := json.Unmarshal(data, out); err != nil {
		c.logger.Warn("catalog cache entry corrupt", "key", key, "error", err.Error())
		return false
	}
	return true
}

func (c *CachedReader) store(ctx context.Context, key string, v any) {
	payload, err := json.Marshal(v)
	if err != nil {
		return
	}
	if err := c.client.Set(ctx, key, payload, c.ttl).Err(); err != nil {
		c.logger.Warn("catalog cache write failed", "key", key, "error", err.Error())
	}
}

func eventKey(eventID int64) string {
	return "cache:catalog:event:" + strconv.FormatInt(eventID, 10)
}

func eventsKey() string {
	return "cache:catalog:events"
}
