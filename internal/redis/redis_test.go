package redis

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestOccurrenceFeedNoopWithoutClient(t *testing.T) {
	Rdb = nil
	ctx := context.Background()

	assert.Nil(t, GetOccurrenceFeed(ctx, 1))
	CacheOccurrenceFeed(ctx, 1, []byte("payload"))
	InvalidateOccurrenceFeed(ctx, 1)
}

func TestInitRedisSetsClient(t *testing.T) {
	InitRedis("localhost:6379", "", "")
	assert.NotNil(t, Rdb, "Redis client should not be nil after InitRedis")
	Rdb = nil
}
