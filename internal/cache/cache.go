package cache

import (
	"context"
	"errors"

	"github.com/fjod/go_storefront/internal/domain"
)

var ErrCacheMiss = errors.New("order not found in cache")

// OrderCache caches persisted orders by order number. Orders never change
// after creation, so a cached entry can never go stale.
type OrderCache interface {
	Get(ctx context.Context, orderNumber string) (*domain.Order, error)
	Set(ctx context.Context, order *domain.Order) error
}
