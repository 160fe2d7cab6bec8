package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"

	domain "github.com/BruksfildServices01/salon-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/salon-scheduler/pkg/logging"
)

const DefaultTTL = 5 * time.Minute

// ServiceCatalog is a read-through redis cache in front of another catalog.
// Redis failures are logged and the inner catalog answers instead.
type ServiceCatalog struct {
	inner  domain.ServiceCatalog
	client *redis.Client
	ttl    time.Duration
	logger *logging.Logger
}

func NewServiceCatalog(
	inner domain.ServiceCatalog,
	client *redis.Client,
	ttl time.Duration,
	logger *logging.Logger,
) *ServiceCatalog {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &ServiceCatalog{inner: inner, client: client, ttl: ttl, logger: logger}
}

func serviceKey(companyID, professionalID uint) string {
	return fmt.Sprintf("catalog:services:%d:%d", companyID, professionalID)
}

func (c *ServiceCatalog) ListByProfessional(
	ctx context.Context,
	companyID uint,
	professionalID uint,
) ([]domain.ServiceCatalogEntry, error) {

	key := serviceKey(companyID, professionalID)

	raw, err := c.client.Get(ctx, key).Bytes()
	switch {
	case err == nil:
		var entries []domain.ServiceCatalogEntry
		if jsonErr := json.Unmarshal(raw, &entries); jsonErr == nil {
			return entries, nil
		}
		c.logger.Warn("discarding corrupt catalog cache entry", "key", key)
	case !errors.Is(err, redis.Nil):
		c.logger.Warn("catalog cache read failed", "key", key, "error", err)
	}

	entries, err := c.inner.ListByProfessional(ctx, companyID, professionalID)
	if err != nil {
		return nil, err
	}

	if payload, err := json.Marshal(entries); err == nil {
		if err := c.client.Set(ctx, key, payload, c.ttl).Err(); err != nil {
			c.logger.Warn("catalog cache write failed", "key", key, "error", err)
		}
	}
	return entries, nil
}

var _ domain.ServiceCatalog = (*ServiceCatalog)(nil)
