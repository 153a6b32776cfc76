package domain

import (
	"strings"
	"time"
)

// Session is the authenticated state of the single logged-in user.
type Session struct {
	AccessToken  string
	RefreshToken string
	// ExpiresAt is zero when the access token carries no readable expiry.
	ExpiresAt time.Time
	User      User
}

func (s Session) Active() bool {
	return strings.TrimSpace(s.AccessToken) != ""
}

func (s Session) CanRefresh() bool {
	return strings.TrimSpace(s.RefreshToken) != ""
}

func (s Session) ExpiringSoon(now time.Time, skew time.Duration) bool {
	if s.ExpiresAt.IsZero() {
		return false
	}
	return !s.ExpiresAt.After(now.Add(skew))
}
