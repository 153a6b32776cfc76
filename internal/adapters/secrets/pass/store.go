// Package pass stores secrets in the pass(1) password manager so session
// tokens are encrypted at rest with the user's GPG key.
package pass

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"path"
	"strings"

	"github.com/bnema/petcare-cli/internal/domain"
	"github.com/bnema/petcare-cli/internal/ports"
)

var ErrUnavailable = errors.New("pass command unavailable")

const (
	defaultBinary = "pass"
	missingMarker = "is not in the password store"
)

type Options struct {
	// Binary defaults to "pass" resolved through PATH.
	Binary string
	// Namespace is prepended to every key, e.g. "cli" turns
	// "petcare/session/tokens" into "cli/petcare/session/tokens".
	Namespace string
}

type command func(ctx context.Context, stdin string, args ...string) (stdout string, stderr string, err error)

type Store struct {
	exec      command
	namespace string
}

var _ ports.SecretStore = (*Store)(nil)

func NewStore(opts Options) *Store {
	binary := strings.TrimSpace(opts.Binary)
	if binary == "" {
		binary = defaultBinary
	}
	return &Store{
		exec:      runner(binary),
		namespace: strings.Trim(strings.TrimSpace(opts.Namespace), "/"),
	}
}

func (s *Store) Put(ctx context.Context, key string, value string) error {
	entry, err := s.entry(ctx, key)
	if err != nil {
		return err
	}
	_, stderr, err := s.exec(ctx, value+"\n", "insert", "--multiline", "--force", entry)
	if err != nil {
		return commandError("insert", entry, err, stderr)
	}
	return nil
}

func (s *Store) Get(ctx context.Context, key string) (string, error) {
	entry, err := s.entry(ctx, key)
	if err != nil {
		return "", err
	}
	stdout, stderr, err := s.exec(ctx, "", "show", entry)
	switch {
	case err == nil:
		return strings.TrimRight(stdout, "\r\n"), nil
	case strings.Contains(stderr, missingMarker):
		return "", fmt.Errorf("pass entry %q: %w", entry, domain.ErrSecretNotFound)
	default:
		return "", commandError("show", entry, err, stderr)
	}
}

// Delete treats a missing entry as already deleted.
func (s *Store) Delete(ctx context.Context, key string) error {
	entry, err := s.entry(ctx, key)
	if err != nil {
		return err
	}
	_, stderr, err := s.exec(ctx, "", "rm", "--force", entry)
	if err != nil && !strings.Contains(stderr, missingMarker) {
		return commandError("rm", entry, err, stderr)
	}
	return nil
}

func (s *Store) entry(ctx context.Context, key string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	key = strings.Trim(strings.TrimSpace(key), "/")
	if key == "" {
		return "", errors.New("secret key is empty")
	}
	if s.namespace == "" {
		return key, nil
	}
	return path.Join(s.namespace, key), nil
}

func runner(binary string) command {
	return func(ctx context.Context, stdin string, args ...string) (string, string, error) {
		resolved, err := exec.LookPath(binary)
		if err != nil {
			if errors.Is(err, exec.ErrNotFound) {
				return "", "", fmt.Errorf("%w: %s not found in PATH", ErrUnavailable, binary)
			}
			return "", "", fmt.Errorf("locate %s: %w", binary, err)
		}

		cmd := exec.CommandContext(ctx, resolved, args...)
		if stdin != "" {
			cmd.Stdin = strings.NewReader(stdin)
		}
		var stdout, stderr bytes.Buffer
		cmd.Stdout = &stdout
		cmd.Stderr = &stderr

		err = cmd.Run()
		return stdout.String(), strings.TrimSpace(stderr.String()), err
	}
}

func commandError(op string, entry string, err error, stderr string) error {
	if stderr != "" {
		return fmt.Errorf("pass %s %q: %w: %s", op, entry, err, stderr)
	}
	return fmt.Errorf("pass %s %q: %w", op, entry, err)
}
