package cache

import (
	"context"

	"github.com/hashicorp/golang-lru/v2/expirable"

	"github.com/suchimauz/appointment-reminder-bot/internal/config"
	"github.com/suchimauz/appointment-reminder-bot/internal/core/domain"
	"github.com/suchimauz/appointment-reminder-bot/internal/core/ports/out"
)

// Профиль один, но ключ хранилища настраивается
const profileCacheSize = 8

type CacheAdapter struct {
	profiles *expirable.LRU[string, domain.ContactProfile]
	logger   out.LoggerPort
}

var _ out.CachePort = (*CacheAdapter)(nil)

// NewCacheAdapter returns nil when PROFILE_CACHE_TTL is zero.
func NewCacheAdapter(cfg *config.Config, logger out.LoggerPort) *CacheAdapter {
	if cfg.Profile.CacheTTL <= 0 {
		logger.Info("cache.disabled", out.LogFields{
			"message": "Profile cache is disabled",
		})
		return nil
	}

	return &CacheAdapter{
		profiles: expirable.NewLRU[string, domain.ContactProfile](profileCacheSize, nil, cfg.Profile.CacheTTL),
		logger:   logger.WithModule("CacheAdapter"),
	}
}

func (c *CacheAdapter) GetProfile(ctx context.Context, key string) (domain.ContactProfile, bool) {
	profile, exists := c.profiles.Get(key)
	if !exists {
		c.logger.Debug("cache.profile.get.miss", out.LogFields{
			"key": key,
		})
		return domain.ContactProfile{}, false
	}

	c.logger.Debug("cache.profile.get.hit", out.LogFields{
		"key": key,
	})
	return profile, true
}

func (c *CacheAdapter) StoreProfile(ctx context.Context, key string, profile domain.ContactProfile) {
	c.logger.Debug("cache.profile.store", out.LogFields{
		"key": key,
	})
	c.profiles.Add(key, profile)
}

func (c *CacheAdapter) InvalidateProfile(ctx context.Context, key string) {
	c.profiles.Remove(key)
}
