package cartstore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/aayushsiwach/fruit-seller/models"
)

const cartTTL = 30 * 24 * time.Hour

// RedisPersistence stores each session's cart as a JSON document at
// cart:<session>. Writes replace the whole document: last writer wins,
// no cross-device merge.
type RedisPersistence struct {
	client *redis.Client
}

func NewRedisPersistence(client *redis.Client) *RedisPersistence {
	return &RedisPersistence{client: client}
}

func cartKey(sessionID string) string {
	return "cart:" + sessionID
}

func (p *RedisPersistence) Load(ctx context.Context, sessionID string) ([]models.CartLine, error) {
	raw, err := p.client.Get(ctx, cartKey(sessionID)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, fmt.Errorf("load cart %s: %w", sessionID, err)
	}

	var lines []models.CartLine
	if err := json.Unmarshal([]byte(raw), &lines); err != nil {
		return nil, fmt.Errorf("unmarshal cart %s: %w", sessionID, err)
	}
	return lines, nil
}

func (p *RedisPersistence) Save(ctx context.Context, sessionID string, lines []models.CartLine) error {
	if len(lines) == 0 {
		if err := p.client.Del(ctx, cartKey(sessionID)).Err(); err != nil {
			return fmt.Errorf("clear cart %s: %w", sessionID, err)
		}
		return nil
	}

	raw, err := json.Marshal(lines)
	if err != nil {
		return fmt.Errorf("marshal cart %s: %w", sessionID, err)
	}
	if err := p.client.Set(ctx, cartKey(sessionID), raw, cartTTL).Err(); err != nil {
		return fmt.Errorf("save cart %s: %w", sessionID, err)
	}
	return nil
}
