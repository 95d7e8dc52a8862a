// Package cache holds Redis-backed helpers. The seen cache rotates discovery
// results so a user is not shown the same candidates on every request; it is
// best-effort and a Redis outage only disables rotation.
package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const seenTTL = 6 * time.Hour

type SeenCache struct {
	client *redis.Client
}

func NewSeenCache(client *redis.Client) *SeenCache {
	return &SeenCache{client: client}
}

func seenKey(requesterID uuid.UUID) string {
	return fmt.Sprintf("discovery:seen:%s", requesterID)
}

// Seen returns the set of candidate ids recently served to the requester.
// Unparseable members are skipped.
func (c *SeenCache) Seen(ctx context.Context, requesterID uuid.UUID) (map[uuid.UUID]struct{}, error) {
	members, err := c.client.SMembers(ctx, seenKey(requesterID)).Result()
	if err != nil {
		return nil, err
	}
	seen := make(map[uuid.UUID]struct{}, len(members))
	for _, m := range members {
		id, err := uuid.Parse(m)
		if err != nil {
			continue
		}
		seen[id] = struct{}{}
	}
	return seen, nil
}

// MarkSeen records served candidate ids and refreshes the rotation window.
func (c *SeenCache) MarkSeen(ctx context.Context, requesterID uuid.UUID, candidateIDs []uuid.UUID) error {
	if len(candidateIDs) == 0 {
		return nil
	}
	members := make([]interface{}, len(candidateIDs))
	for i, id := range candidateIDs {
		members[i] = id.String()
	}
	key := seenKey(requesterID)
	pipe := c.client.Pipeline()
	pipe.SAdd(ctx, key, members...)
	pipe.Expire(ctx, key, seenTTL)
	_, err := pipe.Exec(ctx)
	return err
}

// Reset clears the rotation window, letting previously served candidates
// reappear.
func (c *SeenCache) Reset(ctx context.Context, requesterID uuid.UUID) error {
	return c.client.Del(ctx, seenKey(requesterID)).Err()
}
