// Package chain layers two secret backends: writes go to the preferred one
// and only land in the fallback while the preferred one is failing.
package chain

import (
	"context"
	"errors"
	"fmt"

	"github.com/bnema/petcare-cli/internal/domain"
	"github.com/bnema/petcare-cli/internal/ports"
	"github.com/sirupsen/logrus"
)

type Store struct {
	preferred ports.SecretStore
	fallback  ports.SecretStore
	logger    logrus.FieldLogger
}

var _ ports.SecretStore = (*Store)(nil)

var (
	errNoPreferred = errors.New("chain: preferred secret store is required")
	errNoFallback  = errors.New("chain: fallback secret store is required")
)

func NewStore(preferred, fallback ports.SecretStore, logger logrus.FieldLogger) (*Store, error) {
	if preferred == nil {
		return nil, errNoPreferred
	}
	if fallback == nil {
		return nil, errNoFallback
	}
	if logger == nil {
		quiet := logrus.New()
		quiet.SetLevel(logrus.PanicLevel)
		logger = quiet
	}
	return &Store{preferred: preferred, fallback: fallback, logger: logger}, nil
}

// Put writes to the preferred backend and then drops any copy the fallback
// still holds. While the preferred backend fails, the value goes to the
// fallback, which Get consults first.
func (s *Store) Put(ctx context.Context, key string, value string) error {
	err := s.preferred.Put(ctx, key, value)
	if err == nil {
		if dropErr := s.fallback.Delete(ctx, key); dropErr != nil && !errors.Is(dropErr, domain.ErrSecretNotFound) {
			s.logger.WithError(dropErr).WithField("key", key).Warn("could not remove stale fallback secret")
		}
		return nil
	}
	if interrupted(err) {
		return err
	}

	s.logger.WithError(err).WithField("key", key).Warn("preferred secret store failed, writing to fallback")
	if fallbackErr := s.fallback.Put(ctx, key, value); fallbackErr != nil {
		return joined("put", err, fallbackErr)
	}
	return nil
}

// Get reads the fallback first. Put removes the fallback copy after every
// successful preferred write, so a copy found there is always the newest.
func (s *Store) Get(ctx context.Context, key string) (string, error) {
	value, fallbackErr := s.fallback.Get(ctx, key)
	if fallbackErr == nil || interrupted(fallbackErr) {
		return value, fallbackErr
	}
	if !errors.Is(fallbackErr, domain.ErrSecretNotFound) {
		s.logger.WithError(fallbackErr).WithField("key", key).Debug("fallback secret store failed, reading preferred")
	}

	value, err := s.preferred.Get(ctx, key)
	switch {
	case err == nil:
		return value, nil
	case interrupted(err):
		return "", err
	case errors.Is(err, domain.ErrSecretNotFound) && errors.Is(fallbackErr, domain.ErrSecretNotFound):
		return "", err
	default:
		return "", joined("get", err, fallbackErr)
	}
}

// Delete clears both backends. A missing entry counts as cleared, and the
// call only fails when neither backend could be cleared.
func (s *Store) Delete(ctx context.Context, key string) error {
	err := s.preferred.Delete(ctx, key)
	if interrupted(err) {
		return err
	}
	if errors.Is(err, domain.ErrSecretNotFound) {
		err = nil
	}
	fallbackErr := s.fallback.Delete(ctx, key)
	if errors.Is(fallbackErr, domain.ErrSecretNotFound) {
		fallbackErr = nil
	}
	if err != nil && fallbackErr != nil {
		return joined("delete", err, fallbackErr)
	}
	if err != nil {
		s.logger.WithError(err).WithField("key", key).Warn("preferred secret store delete failed")
	}
	return nil
}

func interrupted(err error) bool {
	return errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded)
}

func joined(op string, preferred, fallback error) error {
	return errors.Join(
		fmt.Errorf("preferred store %s: %w", op, preferred),
		fmt.Errorf("fallback store %s: %w", op, fallback),
	)
}
