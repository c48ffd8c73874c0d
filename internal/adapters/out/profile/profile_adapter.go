package profile

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/suchimauz/appointment-reminder-bot/internal/config"
	"github.com/suchimauz/appointment-reminder-bot/internal/core/domain"
	"github.com/suchimauz/appointment-reminder-bot/internal/core/ports/out"
)

// Store is the key-value record store behind the profile. FileStore implements it.
type Store interface {
	Get(key string) (json.RawMessage, bool, error)
	Put(key string, value json.RawMessage) error
}

// ProfileAdapter keeps the contact profile under one fixed key. Reads go through the cache when it is set.
type ProfileAdapter struct {
	store  Store
	key    string
	cache  out.CachePort
	logger out.LoggerPort

	// mu держит чтение из хранилища вместе с заполнением кэша против записи
	mu sync.Mutex
}

var _ out.ProfilePort = (*ProfileAdapter)(nil)

func NewProfileAdapter(cfg *config.Config, store Store, cache out.CachePort, logger out.LoggerPort) *ProfileAdapter {
	return &ProfileAdapter{
		store:  store,
		key:    cfg.Profile.Key,
		cache:  cache,
		logger: logger.WithModule("ProfileAdapter"),
	}
}

func (a *ProfileAdapter) Load(ctx context.Context) (domain.ContactProfile, error) {
	if a.cache != nil {
		if profile, ok := a.cache.GetProfile(ctx, a.key); ok {
			return profile, nil
		}
	}

	a.mu.Lock()
	defer a.mu.Unlock()

	// Пока ждали блокировку, Save мог уже положить свежий профиль
	if a.cache != nil {
		if profile, ok := a.cache.GetProfile(ctx, a.key); ok {
			return profile, nil
		}
	}

	raw, ok, err := a.store.Get(a.key)
	if err != nil {
		a.logger.Error("profile.load.failed", out.LogFields{
			"key":   a.key,
			"error": err.Error(),
		})
		return domain.ContactProfile{}, err
	}

	var profile domain.ContactProfile
	if ok {
		if err := json.Unmarshal(raw, &profile); err != nil {
			a.logger.Error("profile.decode.failed", out.LogFields{
				"key":   a.key,
				"error": err.Error(),
			})
			return domain.ContactProfile{}, fmt.Errorf("decode profile: %w", err)
		}
	}

	if a.cache != nil {
		a.cache.StoreProfile(ctx, a.key, profile)
	}
	return profile, nil
}

func (a *ProfileAdapter) Save(ctx context.Context, profile domain.ContactProfile) error {
	raw, err := json.Marshal(profile)
	if err != nil {
		return fmt.Errorf("encode profile: %w", err)
	}

	a.mu.Lock()
	defer a.mu.Unlock()

	if err := a.store.Put(a.key, raw); err != nil {
		a.logger.Error("profile.save.failed", out.LogFields{
			"key":   a.key,
			"error": err.Error(),
		})
		// Состояние файла неизвестно, следующее чтение пойдёт в хранилище
		if a.cache != nil {
			a.cache.InvalidateProfile(ctx, a.key)
		}
		return err
	}

	// Последняя запись побеждает
	if a.cache != nil {
		a.cache.StoreProfile(ctx, a.key, profile)
	}

	a.logger.Info("profile.saved", out.LogFields{
		"key":        a.key,
		"hasContact": profile.HasContact(),
	})
	return nil
}
