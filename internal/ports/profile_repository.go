package ports

import (
	"context"
	"time"

	"github.com/bnema/petcare-cli/internal/domain"
)

// Profile is the non-secret half of a session: the cached user snapshot.
type Profile struct {
	User       domain.User
	SecretRef  string
	LoggedInAt time.Time
	UpdatedAt  time.Time
}

type ProfileRepository interface {
	// Get returns domain.ErrProfileNotFound when no profile is stored.
	Get(ctx context.Context) (Profile, error)
	Save(ctx context.Context, profile Profile) error
	Clear(ctx context.Context) error
}
