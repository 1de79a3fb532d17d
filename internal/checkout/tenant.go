package checkout

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/JoaoOliveiraaa/minishop/internal/cache"
	"github.com/JoaoOliveiraaa/minishop/internal/models"
)

const storeCacheTTL = 5 * time.Minute

// ResolveStore maps a human-facing store slug to the internal store
// record. Unknown slugs fail closed with ErrStoreNotFound. Lookups are
// served from Redis when available.
func ResolveStore(ctx context.Context, g *gorm.DB, slug string) (*models.Store, error) {
	cacheKey := "store:slug:" + slug

	if cache.Client != nil {
		cacheCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
		defer cancel()

		if data, err := cache.Client.Get(cacheCtx, cacheKey).Result(); err == nil {
			var store models.Store
			if err := json.Unmarshal([]byte(data), &store); err == nil {
				return &store, nil
			}
		}
	}

	var store models.Store
	if err := g.WithContext(ctx).Where("slug = ?", slug).First(&store).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrStoreNotFound
		}
		return nil, fmt.Errorf("store lookup failed: %w", err)
	}

	if cache.Client != nil {
		if data, err := json.Marshal(store); err == nil {
			go cache.Client.Set(context.Background(), cacheKey, data, storeCacheTTL)
		}
	}

	return &store, nil
}
