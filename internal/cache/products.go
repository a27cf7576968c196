package cache

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"github.com/redis/go-redis/v9"

	"vastra-backend/internal/models"
)

const (
	productListKey = "products:all"
	productListTTL = 60 * time.Second
)

// ProductCache is an optional redis-backed cache for the public product
// list. A nil *ProductCache is valid and disables caching; every cache
// failure degrades to a database read.
type ProductCache struct {
	client *redis.Client
}

// NewProductCache connects to redis at addr, or returns nil when addr is
// empty or the ping fails.
func NewProductCache(addr string) *ProductCache {
	if addr == "" {
		return nil
	}

	client := redis.NewClient(&redis.Options{Addr: addr})

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		log.Println("[CACHE] redis unavailable, caching disabled:", err)
		return nil
	}

	log.Println("[CACHE] redis connected:", addr)
	return &ProductCache{client: client}
}

// GetProducts returns the cached unfiltered list, or ok=false on any miss.
func (pc *ProductCache) GetProducts(ctx context.Context) ([]models.Product, bool) {
	if pc == nil {
		return nil, false
	}

	raw, err := pc.client.Get(ctx, productListKey).Result()
	if err != nil {
		return nil, false
	}

	var products []models.Product
	if err := json.Unmarshal([]byte(raw), &products); err != nil {
		return nil, false
	}
	return products, true
}

// SetProducts stores the unfiltered list with a short TTL.
func (pc *ProductCache) SetProducts(ctx context.Context, products []models.Product) {
	if pc == nil {
		return
	}

	data, err := json.Marshal(products)
	if err != nil {
		return
	}
	if err := pc.client.Set(ctx, productListKey, data, productListTTL).Err(); err != nil {
		log.Println("[CACHE] set failed:", err)
	}
}

// Invalidate drops the cached list. Called on every product mutation.
func (pc *ProductCache) Invalidate(ctx context.Context) {
	if pc == nil {
		return
	}
	if err := pc.client.Del(ctx, productListKey).Err(); err != nil {
		log.Println("[CACHE] invalidate failed:", err)
	}
}
