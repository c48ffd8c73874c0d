package out

import (
	"context"

	"github.com/suchimauz/appointment-reminder-bot/internal/core/domain"
)

type CachePort interface {
	// Кэширование профиля
	GetProfile(ctx context.Context, key string) (domain.ContactProfile, bool)
	StoreProfile(ctx context.Context, key string, profile domain.ContactProfile)
	InvalidateProfile(ctx context.Context, key string)
}
