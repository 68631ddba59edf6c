package redis

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"acadiasafe/internal/domain"

	goredis "github.com/redis/go-redis/v9"
)

const (
	alertsKey       = "campus:alerts"
	locationsPrefix = "campus:locations:"
	allLocations    = "all"
)

// CampusCache holds the read-mostly alert and location listings. A miss is
// reported as (nil, nil).
type CampusCache struct {
	client *goredis.Client
	ttl    time.Duration
}

func NewCampusCache(r *Redis, ttl time.Duration) *CampusCache {
	return &CampusCache{client: r.Client, ttl: ttl}
}

func (c *CampusCache) GetAlerts(ctx context.Context) ([]domain.CampusAlert, error) {
	var out []domain.CampusAlert
	ok, err := c.get(ctx, alertsKey, &out)
	if err != nil || !ok {
		return nil, err
	}
	return out, nil
}

func (c *CampusCache) SetAlerts(ctx context.Context, alerts []domain.CampusAlert) error {
	return c.set(ctx, alertsKey, alerts)
}

func (c *CampusCache) GetLocations(ctx context.Context, locType *domain.LocationType) ([]domain.CampusLocation, error) {
	var out []domain.CampusLocation
	ok, err := c.get(ctx, locationsKey(locType), &out)
	if err != nil || !ok {
		return nil, err
	}
	return out, nil
}

func (c *CampusCache) SetLocations(ctx context.Context, locType *domain.LocationType, locs []domain.CampusLocation) error {
	return c.set(ctx, locationsKey(locType), locs)
}

func (c *CampusCache) InvalidateAlerts(ctx context.Context) error {
	return c.client.Del(ctx, alertsKey).Err()
}

func (c *CampusCache) InvalidateAll(ctx context.Context) error {
	keys := []string{alertsKey, locationsPrefix + allLocations}
	for _, t := range domain.LocationTypes {
		keys = append(keys, locationsPrefix+string(t))
	}
	return c.client.Del(ctx, keys...).Err()
}

func (c *CampusCache) get(ctx context.Context, key string, dst any) (bool, error) {
	data, err := c.client.Get(ctx, key).Bytes()
	if err != nil {
		if errors.Is(err, goredis.Nil) {
			return false, nil
		}
		return false, err
	}
	if err := json.Unmarshal(data, dst); err != nil {
		return false, err
	}
	return true, nil
}

func (c *CampusCache) set(ctx context.Context, key string, v any) error {
	b, err := json.Marshal(v)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, key, b, c.ttl).Err()
}

func locationsKey(t *domain.LocationType) string {
	if t == nil {
		return locationsPrefix + allLocations
	}
	return locationsPrefix + string(*t)
}
