package application

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/bnema/petcare-cli/internal/domain"
	"github.com/bnema/petcare-cli/internal/ports"
)

type AuthService struct {
	api      ports.APIClient
	sessions ports.SessionStore
}

func NewAuthService(api ports.APIClient, sessions ports.SessionStore) *AuthService {
	return &AuthService{api: api, sessions: sessions}
}

type authResponse struct {
	Token        string      `json:"token"`
	AccessToken  string      `json:"accessToken"`
	RefreshToken string      `json:"refreshToken"`
	User         domain.User `json:"user"`
}

func (r authResponse) accessToken() string {
	if token := strings.TrimSpace(r.Token); token != "" {
		return token
	}
	return strings.TrimSpace(r.AccessToken)
}

// Login authenticates and stores the resulting session. When the login
// response carries no user, the profile is fetched with the new token.
func (s *AuthService) Login(ctx context.Context, creds domain.Credentials) (domain.Session, error) {
	if err := creds.Validate(); err != nil {
		return domain.Session{}, err
	}

	var resp authResponse
	if _, err := s.api.Do(ctx, ports.Request{
		Method:    http.MethodPost,
		Path:      "/auth/login",
		Body:      creds,
		Anonymous: true,
	}, &resp); err != nil {
		return domain.Session{}, fmt.Errorf("login: %w", err)
	}

	token := resp.accessToken()
	if token == "" {
		return domain.Session{}, errors.New("login: response missing token")
	}

	session := domain.Session{AccessToken: token, RefreshToken: strings.TrimSpace(resp.RefreshToken), User: resp.User}
	if err := s.sessions.Save(ctx, session); err != nil {
		return domain.Session{}, fmt.Errorf("save session: %w", err)
	}

	if session.User.ID == "" {
		if _, err := s.Me(ctx); err != nil {
			// A login that cannot name its user is not kept.
			if clearErr := s.sessions.Clear(context.WithoutCancel(ctx)); clearErr != nil {
				return domain.Session{}, errors.Join(err, fmt.Errorf("clear session: %w", clearErr))
			}
			return domain.Session{}, err
		}
	}

	return s.sessions.Load(ctx)
}

// Register creates an account. Backends that log the new user in right away
// return tokens, which are stored as the active session.
func (s *AuthService) Register(ctx context.Context, reg domain.Registration) (domain.User, error) {
	if strings.TrimSpace(reg.Name) == "" {
		return domain.User{}, errors.New("name is required")
	}
	if err := (domain.Credentials{Email: reg.Email, Password: reg.Password}).Validate(); err != nil {
		return domain.User{}, err
	}
	if _, err := domain.ParseRole(string(reg.Role)); err != nil {
		return domain.User{}, err
	}

	var resp authResponse
	if _, err := s.api.Do(ctx, ports.Request{
		Method:    http.MethodPost,
		Path:      "/auth/register",
		Body:      reg,
		Anonymous: true,
	}, &resp); err != nil {
		return domain.User{}, fmt.Errorf("register: %w", err)
	}

	if token := resp.accessToken(); token != "" {
		session := domain.Session{AccessToken: token, RefreshToken: strings.TrimSpace(resp.RefreshToken), User: resp.User}
		if err := s.sessions.Save(ctx, session); err != nil {
			return domain.User{}, fmt.Errorf("save session: %w", err)
		}
	}

	return resp.User, nil
}

// Logout tells the backend on a best-effort basis, then always clears the
// local session.
func (s *AuthService) Logout(ctx context.Context) error {
	session, err := s.sessions.Load(ctx)
	if err != nil && !errors.Is(err, domain.ErrNoSession) {
		return fmt.Errorf("load session: %w", err)
	}

	if session.Active() {
		_, _ = s.api.Do(ctx, ports.Request{
			Method: http.MethodPost,
			Path:   "/auth/logout",
			Body:   map[string]string{"refreshToken": session.RefreshToken},
		}, nil)
	}

	if err := s.sessions.Clear(ctx); err != nil {
		return fmt.Errorf("clear session: %w", err)
	}
	return nil
}

func (s *AuthService) Me(ctx context.Context) (domain.User, error) {
	var user domain.User
	if _, err := s.api.Do(ctx, ports.Request{Method: http.MethodGet, Path: "/auth/me"}, &user); err != nil {
		return domain.User{}, fmt.Errorf("fetch profile: %w", err)
	}

	if err := s.sessions.SaveUser(ctx, user); err != nil {
		return domain.User{}, fmt.Errorf("cache profile: %w", err)
	}
	return user, nil
}

func (s *AuthService) Current(ctx context.Context) (domain.Session, error) {
	return s.sessions.Load(ctx)
}
