package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

var Rdb *redis.Client

// occurrenceFeedTTL keeps the cached feed short-lived; window availability is
// recomputed per request, only the occurrence rows themselves are cached.
const occurrenceFeedTTL = 30 * time.Second

func InitRedis(redisAddress string, redisUsername string, redisPassword string) {
	Rdb = redis.NewClient(&redis.Options{
		Addr:     redisAddress,
		Username: redisUsername,
		Password: redisPassword,
		DB:       0,
	})
}

func occurrenceFeedKey(eventID int) string {
	return fmt.Sprintf("event:%d:occurrences", eventID)
}

// CacheOccurrenceFeed stores the serialized occurrence list for an event.
// No-op when Redis is not configured.
func CacheOccurrenceFeed(ctx context.Context, eventID int, payload []byte) {
	if Rdb == nil {
		return
	}
	if err := Rdb.Set(ctx, occurrenceFeedKey(eventID), payload, occurrenceFeedTTL).Err(); err != nil {
		log.Warn().Err(err).Int("event_id", eventID).Msg("failed to cache occurrence feed")
	}
}

// GetOccurrenceFeed returns the cached occurrence list, or nil on miss or
// when Redis is not configured.
func GetOccurrenceFeed(ctx context.Context, eventID int) []byte {
	if Rdb == nil {
		return nil
	}
	payload, err := Rdb.Get(ctx, occurrenceFeedKey(eventID)).Bytes()
	if err != nil {
		return nil
	}
	return payload
}

// InvalidateOccurrenceFeed drops the cached feed after a regenerate.
func InvalidateOccurrenceFeed(ctx context.Context, eventID int) {
	if Rdb == nil {
		return
	}
	if err := Rdb.Del(ctx, occurrenceFeedKey(eventID)).Err(); err != nil {
		log.Warn().Err(err).Int("event_id", eventID).Msg("failed to invalidate occurrence feed")
	}
}
