package cache

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/fjod/go_storefront/internal/domain"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// setupTestRedis creates a miniredis server and returns a RedisCache instance
func setupTestRedis(t *testing.T) (*RedisCache, *miniredis.Miniredis, func()) {
	mr := miniredis.RunT(t)

	client := redis.NewClient(&redis.Options{
		Addr: mr.Addr(),
	})

	orderCache := NewRedisCache(client)

	cleanup := func() {
		client.Close()
		mr.Close()
	}

	return orderCache, mr, cleanup
}

func testOrder(orderNumber string) *domain.Order {
	return &domain.Order{
		OrderNumber:  orderNumber,
		CustomerName: "Jane Doe",
		Email:        "jane@x.com",
		Product: domain.ProductSelection{
			ProductID: "prod_12345",
			Name:      "Shoe",
			Price:     75.00,
			Quantity:  2,
		},
		Subtotal:  150.00,
		Total:     150.00,
		CardLast4: "1234",
		Status:    domain.TransactionApproved,
		CreatedAt: time.Now().UTC().Truncate(time.Second),
	}
}

func TestGet_Success(t *testing.T) {
	orderCache, mr, cleanup := setupTestRedis(t)
	defer cleanup()

	ctx := context.Background()
	order := testOrder("ORD-AB12CD34")

	// Manually set data in miniredis
	orderJSON, _ := json.Marshal(order)
	mr.Set(cacheKey(order.OrderNumber), string(orderJSON))

	result, err := orderCache.Get(ctx, "ORD-AB12CD34")
	require.NoError(t, err)
	assert.Equal(t, "ORD-AB12CD34", result.OrderNumber)
	assert.Equal(t, 150.00, result.Total)
	assert.Equal(t, domain.TransactionApproved, result.Status)
}

func TestGet_CacheMiss(t *testing.T) {
	orderCache, _, cleanup := setupTestRedis(t)
	defer cleanup()

	_, err := orderCache.Get(context.Background(), "ORD-MISSING0")
	assert.ErrorIs(t, err, ErrCacheMiss)
}

func TestSet_RoundTrip(t *testing.T) {
	orderCache, _, cleanup := setupTestRedis(t)
	defer cleanup()

	ctx := context.Background()
	order := testOrder("ORD-SET00001")

	err := orderCache.Set(ctx, order)
	require.NoError(t, err)

	result, err := orderCache.Get(ctx, "ORD-SET00001")
	require.NoError(t, err)
	assert.Equal(t, order.OrderNumber, result.OrderNumber)
	assert.Equal(t, order.Product, result.Product)
	assert.Equal(t, order.CardLast4, result.CardLast4)
}

func TestSet_AppliesTTL(t *testing.T) {
	orderCache, mr, cleanup := setupTestRedis(t)
	defer cleanup()

	order := testOrder("ORD-TTL00001")
	require.NoError(t, orderCache.Set(context.Background(), order))

	ttl := mr.TTL(cacheKey(order.OrderNumber))
	assert.GreaterOrEqual(t, ttl, 30*time.Minute)
	assert.LessOrEqual(t, ttl, 35*time.Minute)
}

func TestGet_CorruptEntry(t *testing.T) {
	orderCache, mr, cleanup := setupTestRedis(t)
	defer cleanup()

	mr.Set(cacheKey("ORD-BROKEN01"), "{not json")

	_, err := orderCache.Get(context.Background(), "ORD-BROKEN01")
	assert.Error(t, err)
	assert.NotErrorIs(t, err, ErrCacheMiss)
}
