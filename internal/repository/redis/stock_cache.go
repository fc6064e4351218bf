// Package redis mirrors ledger stock levels so other terminals can
// read them without hitting the document store. Best-effort only: the
// document store stays the source of truth.
package redis

import (
	"context"

	"github.com/redis/go-redis/v9"
)

const stockKeyPrefix = "stock:"

// decrementFloorScript lowers the cached stock, clamped at zero. A
// missing key is left missing: the cache never invents stock.
var decrementFloorScript = redis.NewScript(`
local key = KEYS[1]
local amount = tonumber(ARGV[1])

local current = redis.call('GET', key)
if not current then
	return -1
end

current = tonumber(current)
local next = current - amount
if next < 0 then
	next = 0
end
redis.call('SET', key, next)
return next
`)

type StockCache struct {
	client *redis.Client
}

func NewStockCache(client *redis.Client) *StockCache {
	return &StockCache{client: client}
}

func (c *StockCache) SetStock(ctx context.Context, productID string, stock int) error {
	return c.client.Set(ctx, stockKeyPrefix+productID, stock, 0).Err()
}

// GetStock returns the mirrored level, or (-1, nil) when the product
// is not cached.
func (c *StockCache) GetStock(ctx context.Context, productID string) (int, error) {
	v, err := c.client.Get(ctx, stockKeyPrefix+productID).Int()
	if err == redis.Nil {
		return -1, nil
	}
	if err != nil {
		return -1, err
	}
	return v, nil
}

// DecrementFloor applies the floor-at-zero decrement atomically in the
// cache and returns the new level, or -1 when the key is absent.
func (c *StockCache) DecrementFloor(ctx context.Context, productID string, amount int) (int, error) {
	return decrementFloorScript.Run(ctx, c.client, []string{stockKeyPrefix + productID}, amount).Int()
}
