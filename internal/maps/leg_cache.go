package maps

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"towpricing/internal/types"
)

const legCachePrefix = "legs:"

// LegSource is anything that can measure a single leg.
type LegSource interface {
	Leg(ctx context.Context, from, to types.Waypoint) (types.Leg, error)
}

// CachedDistance is a read-through Redis cache in front of a LegSource.
// Cache failures are logged and fall through to the source.
type CachedDistance struct {
	source LegSource
	redis  *redis.Client
	ttl    time.Duration
	log    *zap.Logger
}

func NewCachedDistance(source LegSource, rdb *redis.Client, ttl time.Duration, log *zap.Logger) *CachedDistance {
	if log == nil {
		log = zap.NewNop()
	}
	return &CachedDistance{source: source, redis: rdb, ttl: ttl, log: log}
}

func (c *CachedDistance) Leg(ctx context.Context, from, to types.Waypoint) (types.Leg, error) {
	if c.redis == nil || c.ttl <= 0 {
		return c.source.Leg(ctx, from, to)
	}

	key := legCacheKey(from, to)
	raw, err := c.redis.Get(ctx, key).Bytes()
	switch {
	case err == nil:
		var leg types.Leg
		if jerr := json.Unmarshal(raw, &leg); jerr == nil {
			return leg, nil
		}
		c.log.Warn("discarding unreadable cached leg", zap.String("key", key))
	case !errors.Is(err, redis.Nil):
		c.log.Warn("leg cache read failed", zap.String("key", key), zap.Error(err))
	}

	leg, err := c.source.Leg(ctx, from, to)
	if err != nil {
		return types.Leg{}, err
	}

	if payload, jerr := json.Marshal(leg); jerr == nil {
		if serr := c.redis.Set(ctx, key, payload, c.ttl).Err(); serr != nil {
			c.log.Warn("leg cache write failed", zap.String("key", key), zap.Error(serr))
		}
	}
	return leg, nil
}

func legCacheKey(from, to types.Waypoint) string {
	return legCachePrefix + from.String() + ":" + to.String()
}
