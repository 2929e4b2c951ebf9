package repositories

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"event-registrations/internal/models"

	"github.com/redis/go-redis/v9"
)

const cartKeyPrefix = "cart:"

// CartStore keeps session cart snapshots in Redis
type CartStore struct {
	client redis.Cmdable
	ttl    time.Duration
	now    func() time.Time
}

// NewCartStore creates a cart store whose entries expire after ttl
func NewCartStore(client redis.Cmdable, ttl time.Duration) *CartStore {
	return &CartStore{client: client, ttl: ttl, now: time.Now}
}

func cartKey(cartID string) string {
	return cartKeyPrefix + cartID
}

// GetCart loads a cart snapshot
func (s *CartStore) GetCart(ctx context.Context, cartID string) (*models.Cart, error) {
	data, err := s.client.Get(ctx, cartKey(cartID)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, fmt.Errorf("cart %s: %w", cartID, models.ErrCartNotFound)
		}
		return nil, fmt.Errorf("failed to get cart: %w", err)
	}

	var cart models.Cart
	if err := json.Unmarshal([]byte(data), &cart); err != nil {
		return nil, fmt.Errorf("failed to decode cart %s: %w", cartID, err)
	}
	return &cart, nil
}

// GetCartLines returns the lines of a cart. A missing or expired cart has
// no lines.
func (s *CartStore) GetCartLines(ctx context.Context, cartID string) ([]models.CartLine, error) {
	cart, err := s.GetCart(ctx, cartID)
	if err != nil {
		if errors.Is(err, models.ErrCartNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return cart.Lines, nil
}

// SaveCart stores a cart snapshot and refreshes its expiry
func (s *CartStore) SaveCart(ctx context.Context, cart *models.Cart) error {
	if cart.ID == "" {
		return fmt.Errorf("%w: cart id is required", models.ErrInvalidInput)
	}

	cart.ExpiresAt = s.now().Add(s.ttl).Unix()
	data, err := json.Marshal(cart)
	if err != nil {
		return fmt.Errorf("failed to encode cart: %w", err)
	}

	if err := s.client.Set(ctx, cartKey(cart.ID), string(data), s.ttl).Err(); err != nil {
		return fmt.Errorf("failed to save cart: %w", err)
	}
	return nil
}

// ClearCart removes a cart snapshot
func (s *CartStore) ClearCart(ctx context.Context, cartID string) error {
	if err := s.client.Del(ctx, cartKey(cartID)).Err(); err != nil {
		return fmt.Errorf("failed to clear cart: %w", err)
	}
	return nil
}
