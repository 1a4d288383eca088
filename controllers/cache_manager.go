package controllers

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/DivyaDarni/ShopSmart/models"
	"github.com/DivyaDarni/ShopSmart/services"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const (
	productListCachePrefix = "products:v:"
	cacheVersionKey        = "products:version"
)

// CacheManager handles Redis caching for product listings. Caching is
// version-keyed: every catalog mutation bumps the version, implicitly
// invalidating all cached listings. All operations are best-effort — a
// Redis failure is a cache miss, never a request failure. A nil client
// disables caching entirely.
type CacheManager struct {
	redis *redis.Client
	ttl   time.Duration
}

func NewCacheManager(client *redis.Client, ttl time.Duration) *CacheManager {
	return &CacheManager{redis: client, ttl: ttl}
}

// GetProductList retrieves a cached product list.
func (cm *CacheManager) GetProductList(ctx context.Context, params services.ListProductsParams) ([]*models.Product, bool) {
	if cm.redis == nil {
		return nil, false
	}

	version, err := cm.getCacheVersion(ctx)
	if err != nil {
		return nil, false
	}

	cachedData, err := cm.redis.Get(ctx, cm.listCacheKey(version, params)).Result()
	if err != nil {
		return nil, false
	}

	var products []*models.Product
	if err := json.Unmarshal([]byte(cachedData), &products); err != nil {
		zap.L().Warn("Failed to unmarshal cached product list", zap.Error(err))
		return nil, false
	}
	return products, true
}

// SetProductListAsync caches a product list without blocking the request.
func (cm *CacheManager) SetProductListAsync(params services.ListProductsParams, products []*models.Product) {
	if cm.redis == nil {
		return
	}

	go func() {
		bgCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		version, err := cm.getCacheVersion(bgCtx)
		if err != nil {
			return
		}

		jsonBytes, err := json.Marshal(products)
		if err != nil {
			zap.L().Warn("Failed to marshal product list for cache", zap.Error(err))
			return
		}

		if err := cm.redis.Set(bgCtx, cm.listCacheKey(version, params), jsonBytes, cm.ttl).Err(); err != nil {
			zap.L().Warn("Failed to cache product list", zap.Error(err))
		}
	}()
}

// Invalidate invalidates all cached product listings by bumping the
// version. Called after every catalog mutation, including stock changes.
func (cm *CacheManager) Invalidate(ctx context.Context) {
	if cm.redis == nil {
		return
	}

	if _, err := cm.redis.Incr(ctx, cacheVersionKey).Result(); err != nil {
		zap.L().Warn("Failed to invalidate product cache", zap.Error(err))
	}
}

func (cm *CacheManager) getCacheVersion(ctx context.Context) (int64, error) {
	ver, err := cm.redis.Get(ctx, cacheVersionKey).Int64()
	if err == nil {
		return ver, nil
	}
	if err == redis.Nil {
		if err := cm.redis.Set(ctx, cacheVersionKey, 1, 0).Err(); err == nil {
			return 1, nil
		}
	}
	return 0, err
}

func (cm *CacheManager) listCacheKey(version int64, params services.ListProductsParams) string {
	return fmt.Sprintf("%s%d:c:%s:a:%s:q:%s:s:%s",
		productListCachePrefix, version,
		params.Category, params.Availability, params.Search, params.Sort)
}
