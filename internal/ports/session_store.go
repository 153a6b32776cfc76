package ports

import (
	"context"

	"github.com/bnema/petcare-cli/internal/domain"
)

type SessionStore interface {
	// Load returns domain.ErrNoSession when nobody is logged in.
	Load(ctx context.Context) (domain.Session, error)
	Save(ctx context.Context, session domain.Session) error
	UpdateTokens(ctx context.Context, accessToken, refreshToken string) error
	SaveUser(ctx context.Context, user domain.User) error
	Clear(ctx context.Context) error
}
