package redis

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/wishwatch/wishwatch/internal/repository"
)

// wishlistKey is the single key the whole wishlist lives under. The value is
// a Redis list; each element is one self-contained encoded record.
const wishlistKey = "wishlist"

type wishlistStore struct {
	client *redis.Client
}

// NewWishlistStore creates a Redis-backed wishlist store.
func NewWishlistStore(client *redis.Client) repository.WishlistStore {
	return &wishlistStore{client: client}
}

func (s *wishlistStore) Load(ctx context.Context) ([]string, error) {
	records, err := s.client.LRange(ctx, wishlistKey, 0, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to load wishlist: %w: %w", repository.ErrStoreUnavailable, err)
	}
	// A missing key yields an empty range: first run, not an error.
	return records, nil
}

func (s *wishlistStore) Save(ctx context.Context, records []string) error {
	// DEL + RPUSH inside MULTI/EXEC so observers never see a partial list.
	pipe := s.client.TxPipeline()
	pipe.Del(ctx, wishlistKey)
	if len(records) > 0 {
		values := make([]interface{}, len(records))
		for i, r := range records {
			values[i] = r
		}
		pipe.RPush(ctx, wishlistKey, values...)
	}

	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to save wishlist: %w: %w", repository.ErrStoreUnavailable, err)
	}
	return nil
}
