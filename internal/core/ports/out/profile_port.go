package out

import (
	"context"

	"github.com/suchimauz/appointment-reminder-bot/internal/core/domain"
)

// ProfilePort keeps the single contact profile. A missing record loads as the zero profile.
type ProfilePort interface {
	Load(ctx context.Context) (domain.ContactProfile, error)
	Save(ctx context.Context, profile domain.ContactProfile) error
}
