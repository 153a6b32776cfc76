package session

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/bnema/petcare-cli/internal/domain"
	"github.com/bnema/petcare-cli/internal/ports"
	"github.com/sirupsen/logrus"
)

const DefaultSecretKey = "petcare/session/tokens"

type Options struct {
	// SecretKey defaults to DefaultSecretKey.
	SecretKey string
	Clock     ports.Clock
	Logger    logrus.FieldLogger
}

// Store holds the single active session. The token pair lives in a
// SecretStore, the user snapshot in a ProfileRepository, and a copy of both
// is kept in memory after the first Load.
type Store struct {
	secrets  ports.SecretStore
	profiles ports.ProfileRepository
	key      string
	clock    ports.Clock
	logger   logrus.FieldLogger

	mu      sync.RWMutex
	loaded  bool
	current *domain.Session
	profile ports.Profile
}

var _ ports.SessionStore = (*Store)(nil)

func NewStore(secrets ports.SecretStore, profiles ports.ProfileRepository, opts Options) (*Store, error) {
	if secrets == nil {
		return nil, errors.New("session secret store is required")
	}
	if profiles == nil {
		return nil, errors.New("session profile repository is required")
	}

	store := &Store{
		secrets:  secrets,
		profiles: profiles,
		key:      strings.TrimSpace(opts.SecretKey),
		clock:    opts.Clock,
		logger:   opts.Logger,
	}
	if store.key == "" {
		store.key = DefaultSecretKey
	}
	if store.clock == nil {
		store.clock = ports.SystemClock{}
	}
	if store.logger == nil {
		logger := logrus.New()
		logger.SetLevel(logrus.PanicLevel)
		store.logger = logger
	}

	return store, nil
}

func (s *Store) Load(ctx context.Context) (domain.Session, error) {
	s.mu.RLock()
	if s.loaded {
		defer s.mu.RUnlock()
		return s.snapshot()
	}
	s.mu.RUnlock()

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.loadLocked(ctx); err != nil {
		return domain.Session{}, err
	}
	return s.snapshot()
}

func (s *Store) Save(ctx context.Context, session domain.Session) error {
	if strings.TrimSpace(session.AccessToken) == "" {
		return errors.New("session access token is required")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.putTokens(ctx, tokenPair{AccessToken: session.AccessToken, RefreshToken: session.RefreshToken}); err != nil {
		return err
	}

	now := s.clock.Now()
	profile := ports.Profile{User: session.User, SecretRef: s.key, LoggedInAt: now, UpdatedAt: now}
	if err := s.profiles.Save(ctx, profile); err != nil {
		saveErr := fmt.Errorf("save session profile: %w", err)
		if rollbackErr := s.secrets.Delete(context.WithoutCancel(ctx), s.key); rollbackErr != nil {
			return errors.Join(saveErr, fmt.Errorf("rollback session tokens: %w", rollbackErr))
		}
		return saveErr
	}

	session.ExpiresAt = expiryOf(session.AccessToken)
	s.current = &session
	s.profile = profile
	s.loaded = true

	s.logger.WithFields(logrus.Fields{
		"user_id": session.User.ID,
		"role":    session.User.Role,
	}).Debug("session saved")

	return nil
}

func (s *Store) UpdateTokens(ctx context.Context, accessToken, refreshToken string) error {
	if strings.TrimSpace(accessToken) == "" {
		return errors.New("session access token is required")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.loadLocked(ctx); err != nil {
		return err
	}
	if s.current == nil {
		return domain.ErrNoSession
	}

	if err := s.putTokens(ctx, tokenPair{AccessToken: accessToken, RefreshToken: refreshToken}); err != nil {
		return err
	}

	s.current.AccessToken = accessToken
	s.current.RefreshToken = refreshToken
	s.current.ExpiresAt = expiryOf(accessToken)

	s.logger.WithField("expires_at", s.current.ExpiresAt).Debug("session tokens updated")
	return nil
}

func (s *Store) SaveUser(ctx context.Context, user domain.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.loadLocked(ctx); err != nil {
		return err
	}
	if s.current == nil {
		return domain.ErrNoSession
	}

	profile := s.profile
	profile.User = user
	profile.SecretRef = s.key
	profile.UpdatedAt = s.clock.Now()
	if err := s.profiles.Save(ctx, profile); err != nil {
		return fmt.Errorf("save session profile: %w", err)
	}

	s.current.User = user
	s.profile = profile
	return nil
}

// Clear forgets the session even when a backing store fails to delete.
func (s *Store) Clear(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.current = nil
	s.profile = ports.Profile{}
	s.loaded = true

	var errs []error
	if err := s.secrets.Delete(ctx, s.key); err != nil && !errors.Is(err, domain.ErrSecretNotFound) {
		errs = append(errs, fmt.Errorf("delete session tokens: %w", err))
	}
	if err := s.profiles.Clear(ctx); err != nil {
		errs = append(errs, fmt.Errorf("clear session profile: %w", err))
	}

	s.logger.Debug("session cleared")
	return errors.Join(errs...)
}

func (s *Store) loadLocked(ctx context.Context) error {
	if s.loaded {
		return nil
	}

	raw, err := s.secrets.Get(ctx, s.key)
	if err != nil {
		if errors.Is(err, domain.ErrSecretNotFound) {
			s.loaded = true
			s.current = nil
			return nil
		}
		return fmt.Errorf("load session tokens: %w", err)
	}

	tokens, err := decodeTokens(raw)
	if err != nil {
		return err
	}

	profile, err := s.profiles.Get(ctx)
	if err != nil && !errors.Is(err, domain.ErrProfileNotFound) {
		return fmt.Errorf("load session profile: %w", err)
	}

	s.current = &domain.Session{
		AccessToken:  tokens.AccessToken,
		RefreshToken: tokens.RefreshToken,
		ExpiresAt:    expiryOf(tokens.AccessToken),
		User:         profile.User,
	}
	s.profile = profile
	s.loaded = true
	return nil
}

func (s *Store) putTokens(ctx context.Context, tokens tokenPair) error {
	encoded, err := encodeTokens(tokens)
	if err != nil {
		return err
	}
	if err := s.secrets.Put(ctx, s.key, encoded); err != nil {
		return fmt.Errorf("store session tokens: %w", err)
	}
	return nil
}

func (s *Store) snapshot() (domain.Session, error) {
	if s.current == nil {
		return domain.Session{}, domain.ErrNoSession
	}
	return *s.current, nil
}
