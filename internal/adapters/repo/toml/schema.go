package toml

import (
	"fmt"
	"time"

	"github.com/bnema/petcare-cli/internal/domain"
	"github.com/bnema/petcare-cli/internal/ports"
)

const currentSchemaVersion = 1

type fileSchema struct {
	Version int            `toml:"version"`
	Profile *profileSchema `toml:"profile,omitempty"`
}

func (s *fileSchema) applyDefaults() {
	if s.Version == 0 {
		s.Version = currentSchemaVersion
	}
}

func (s fileSchema) validateVersion() error {
	if s.Version > currentSchemaVersion {
		return fmt.Errorf("unsupported profile schema version %d (current %d)", s.Version, currentSchemaVersion)
	}

	return nil
}

type profileSchema struct {
	SecretRef  string     `toml:"secret_ref"`
	LoggedInAt string     `toml:"logged_in_at,omitempty"`
	UpdatedAt  string     `toml:"updated_at,omitempty"`
	User       userSchema `toml:"user"`
}

type userSchema struct {
	ID        string `toml:"id"`
	Name      string `toml:"name"`
	Email     string `toml:"email"`
	Role      string `toml:"role"`
	Phone     string `toml:"phone,omitempty"`
	AvatarURL string `toml:"avatar_url,omitempty"`
}

func newProfileSchema(p ports.Profile) *profileSchema {
	return &profileSchema{
		SecretRef:  p.SecretRef,
		LoggedInAt: stamp(p.LoggedInAt),
		UpdatedAt:  stamp(p.UpdatedAt),
		User: userSchema{
			ID:        p.User.ID,
			Name:      p.User.Name,
			Email:     p.User.Email,
			Role:      string(p.User.Role),
			Phone:     p.User.Phone,
			AvatarURL: p.User.AvatarURL,
		},
	}
}

func (s profileSchema) profile() ports.Profile {
	return ports.Profile{
		SecretRef:  s.SecretRef,
		LoggedInAt: unstamp(s.LoggedInAt),
		UpdatedAt:  unstamp(s.UpdatedAt),
		User: domain.User{
			ID:        s.User.ID,
			Name:      s.User.Name,
			Email:     s.User.Email,
			Role:      domain.Role(s.User.Role),
			Phone:     s.User.Phone,
			AvatarURL: s.User.AvatarURL,
		},
	}
}

// Timestamps are stored as RFC 3339 strings; unreadable ones load as zero.
func stamp(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.UTC().Format(time.RFC3339)
}

func unstamp(raw string) time.Time {
	t, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		return time.Time{}
	}
	return t
}
