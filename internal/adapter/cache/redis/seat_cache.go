package redis

import (
	"context"
	"fmt"

	goredis "github.com/redis/go-redis/v9"
)

// SeatCache deletes the seats:<showtime id> key whenever a showtime's seats
// change, so a shared Redis never holds stale availability for it.
type SeatCache struct {
	client goredis.Cmdable
	prefix string
}

func NewSeatCache(client goredis.Cmdable) *SeatCache {
	return &SeatCache{client: client, prefix: "seats"}
}

func (c *SeatCache) Key(showtimeID string) string {
	return fmt.Sprintf("%s:%s", c.prefix, showtimeID)
}

func (c *SeatCache) Invalidate(ctx context.Context, showtimeID string) error {
	if err := c.client.Del(ctx, c.Key(showtimeID)).Err(); err != nil {
		return fmt.Errorf("redis del %s: %w", c.Key(showtimeID), err)
	}

	return nil
}
