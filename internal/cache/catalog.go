// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// catalog.go provides a Valkey-backed cache for the template catalog.
// The matcher reads the whole catalog on every recommendation call, so the
// serialized catalog is kept hot and invalidated on any template write.
package cache

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"

	"slideforge/internal/models"
)

const (
	// catalogKey is the Valkey key holding the serialized catalog.
	catalogKey = "templates:catalog"

	// DefaultCatalogTTL is how long the catalog stays cached.
	DefaultCatalogTTL = 5 * time.Minute
)

// CatalogCache manages template-catalog caching in Valkey. A nil client is
// a valid no-op cache; every Get misses and every Set is dropped.
type CatalogCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewCatalogCache creates a catalog cache backed by the given Valkey client.
func NewCatalogCache(client *redis.Client, ttl time.Duration) *CatalogCache {
	if ttl == 0 {
		ttl = DefaultCatalogTTL
	}
	return &CatalogCache{client: client, ttl: ttl}
}

// Get retrieves the cached catalog. Returns false on miss or decode error.
func (cc *CatalogCache) Get(ctx context.Context) ([]models.PromptTemplate, bool) {
	if cc.client == nil {
		return nil, false
	}

	val, err := cc.client.Get(ctx, catalogKey).Bytes()
	if err == redis.Nil {
		return nil, false
	}
	if err != nil {
		slog.Warn("catalog cache get error", "error", err)
		return nil, false
	}

	var catalog []models.PromptTemplate
	if err := json.Unmarshal(val, &catalog); err != nil {
		slog.Warn("catalog cache decode error", "error", err)
		return nil, false
	}
	slog.Debug("catalog cache hit", "templates", len(catalog))
	return catalog, true
}

// Set stores the catalog with the configured TTL.
func (cc *CatalogCache) Set(ctx context.Context, catalog []models.PromptTemplate) {
	if cc.client == nil {
		return
	}

	payload, err := json.Marshal(catalog)
	if err != nil {
		slog.Warn("catalog cache encode error", "error", err)
		return
	}
	if err := cc.client.Set(ctx, catalogKey, payload, cc.ttl).Err(); err != nil {
		slog.Warn("catalog cache set error", "error", err)
	}
}

// Invalidate drops the cached catalog. Called after any template write,
// including bulk sample-image regeneration.
func (cc *CatalogCache) Invalidate(ctx context.Context) {
	if cc.client == nil {
		return
	}

	if err := cc.client.Del(ctx, catalogKey).Err(); err != nil {
		slog.Warn("catalog cache invalidate error", "error", err)
	}
	slog.Debug("catalog cache invalidated")
}
