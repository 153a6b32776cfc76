package httpapi

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/bnema/petcare-cli/internal/domain"
	"github.com/bnema/petcare-cli/internal/ports"
)

type refreshRequest struct {
	RefreshToken string `json:"refreshToken"`
}

type refreshResponse struct {
	Token        string `json:"token"`
	RefreshToken string `json:"refreshToken"`
}

// recoverSession returns the access token to replay with after failedToken
// was rejected. Concurrent callers holding the same refresh token share a
// single refresh call, and a caller whose token was already replaced reuses
// the replacement.
func (c *Client) recoverSession(ctx context.Context, failedToken string) (string, error) {
	session, err := c.currentSession(ctx)
	if err != nil {
		return "", err
	}

	if session.AccessToken != failedToken && session.Active() {
		c.logger.Debug("access token already refreshed, replaying")
		return session.AccessToken, nil
	}

	result, err, shared := c.refreshes.Do(session.RefreshToken, func() (any, error) {
		return c.refreshStale(context.WithoutCancel(ctx), failedToken)
	})
	if err != nil {
		return "", err
	}

	c.logger.WithField("shared", shared).Debug("session refreshed")
	return result.(string), nil
}

// refreshStale re-reads the session inside the flight so a caller arriving
// just after another refresh finished does not spend the refresh token again.
func (c *Client) refreshStale(ctx context.Context, failedToken string) (string, error) {
	session, err := c.currentSession(ctx)
	if err != nil {
		return "", err
	}

	if session.AccessToken != failedToken && session.Active() {
		return session.AccessToken, nil
	}
	if !session.CanRefresh() {
		return "", c.expire(ctx, errors.New("no refresh token"))
	}

	return c.refresh(ctx, session.RefreshToken)
}

func (c *Client) refresh(ctx context.Context, refreshToken string) (string, error) {
	req := ports.Request{
		Method:    http.MethodPost,
		Path:      c.refreshPath,
		Body:      refreshRequest{RefreshToken: refreshToken},
		Anonymous: true,
	}

	body, err := encodeBody(req)
	if err != nil {
		return "", err
	}

	var payload refreshResponse
	if _, err := c.attempt(ctx, req, body, "", &payload, 1); err != nil {
		return "", c.expire(ctx, fmt.Errorf("refresh: %w", err))
	}

	accessToken := strings.TrimSpace(payload.Token)
	if accessToken == "" {
		return "", c.expire(ctx, errors.New("refresh response missing token"))
	}

	nextRefresh := strings.TrimSpace(payload.RefreshToken)
	if nextRefresh == "" {
		nextRefresh = refreshToken
	}

	if err := c.sessions.UpdateTokens(ctx, accessToken, nextRefresh); err != nil {
		return "", c.expire(ctx, fmt.Errorf("store refreshed tokens: %w", err))
	}

	return accessToken, nil
}

// expire clears the session and reports cause as a session expiry.
func (c *Client) expire(ctx context.Context, cause error) error {
	c.logger.WithError(cause).Debug("session expired, clearing")

	expired := fmt.Errorf("%w: %w", domain.ErrSessionExpired, cause)
	if err := c.sessions.Clear(context.WithoutCancel(ctx)); err != nil {
		return errors.Join(expired, fmt.Errorf("clear session: %w", err))
	}
	return expired
}

func (c *Client) currentSession(ctx context.Context) (domain.Session, error) {
	session, err := c.sessions.Load(ctx)
	if err != nil {
		if errors.Is(err, domain.ErrNoSession) {
			return domain.Session{}, fmt.Errorf("%w: session was cleared", domain.ErrSessionExpired)
		}
		return domain.Session{}, fmt.Errorf("load session: %w", err)
	}
	return session, nil
}
