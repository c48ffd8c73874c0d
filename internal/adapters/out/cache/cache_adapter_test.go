package cache

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/suchimauz/appointment-reminder-bot/internal/adapters/out/logger"
	"github.com/suchimauz/appointment-reminder-bot/internal/config"
	"github.com/suchimauz/appointment-reminder-bot/internal/core/domain"
)

func TestCacheDisabledWithZeroTTL(t *testing.T) {
	cfg := &config.Config{}
	assert.Nil(t, NewCacheAdapter(cfg, logger.NewNopLogger()))
}

func TestCacheStoreGetInvalidate(t *testing.T) {
	cfg := &config.Config{}
	cfg.Profile.CacheTTL = time.Minute
	c := NewCacheAdapter(cfg, logger.NewNopLogger())
	require.NotNil(t, c)

	ctx := context.Background()
	_, ok := c.GetProfile(ctx, "k")
	assert.False(t, ok)

	c.StoreProfile(ctx, "k", domain.ContactProfile{Phone: "+1555"})
	got, ok := c.GetProfile(ctx, "k")
	assert.True(t, ok)
	assert.Equal(t, "+1555", got.Phone)

	c.InvalidateProfile(ctx, "k")
	_, ok = c.GetProfile(ctx, "k")
	assert.False(t, ok)
}

func TestCacheEntriesExpire(t *testing.T) {
	cfg := &config.Config{}
	cfg.Profile.CacheTTL = 20 * time.Millisecond
	c := NewCacheAdapter(cfg, logger.NewNopLogger())

	c.StoreProfile(context.Background(), "k", domain.ContactProfile{Email: "a@b.c"})

	assert.Eventually(t, func() bool {
		_, ok := c.GetProfile(context.Background(), "k")
		return !ok
	}, time.Second, 10*time.Millisecond)
}
