// Package toml keeps the signed-in user's profile in a small TOML file next
// to the config. Tokens never go here; the profile only names the secret
// that holds them.
package toml

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/bnema/petcare-cli/internal/domain"
	"github.com/bnema/petcare-cli/internal/ports"
	toml "github.com/pelletier/go-toml/v2"
)

const (
	filePerm fs.FileMode = 0o600
	dirPerm  fs.FileMode = 0o700
)

// Repositories opened on the same path share one lock.
var pathLocks sync.Map

type Repository struct {
	path string
	mu   *sync.RWMutex
}

var _ ports.ProfileRepository = (*Repository)(nil)

func NewRepository(path string) (*Repository, error) {
	if strings.TrimSpace(path) == "" {
		return nil, errors.New("profile path is empty")
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("resolve profile path: %w", err)
	}
	lock, _ := pathLocks.LoadOrStore(abs, &sync.RWMutex{})
	return &Repository{path: abs, mu: lock.(*sync.RWMutex)}, nil
}

func (r *Repository) Path() string { return r.path }

func (r *Repository) Get(ctx context.Context) (ports.Profile, error) {
	if err := ctx.Err(); err != nil {
		return ports.Profile{}, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	doc, err := r.load()
	if err != nil {
		return ports.Profile{}, err
	}
	if doc.Profile == nil {
		return ports.Profile{}, domain.ErrProfileNotFound
	}
	return doc.Profile.profile(), nil
}

func (r *Repository) Save(ctx context.Context, profile ports.Profile) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	doc, err := r.load()
	if err != nil {
		return err
	}
	doc.Profile = newProfileSchema(profile)

	if err := ctx.Err(); err != nil {
		return err
	}
	return r.store(doc)
}

// Clear deletes the profile file. A missing file is not an error.
func (r *Repository) Clear(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if err := os.Remove(r.path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("remove profile file: %w", err)
	}
	return nil
}

func (r *Repository) load() (fileSchema, error) {
	var doc fileSchema
	data, err := os.ReadFile(r.path)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		return doc, nil
	case err != nil:
		return doc, fmt.Errorf("read profile file: %w", err)
	}

	if err := toml.Unmarshal(data, &doc); err != nil {
		return fileSchema{}, fmt.Errorf("decode profile file %s: %w", r.path, err)
	}
	if err := doc.validateVersion(); err != nil {
		return fileSchema{}, err
	}
	doc.applyDefaults()
	return doc, nil
}

func (r *Repository) store(doc fileSchema) error {
	doc.applyDefaults()
	data, err := toml.Marshal(doc)
	if err != nil {
		return fmt.Errorf("encode profile file: %w", err)
	}

	dir := filepath.Dir(r.path)
	if err := os.MkdirAll(dir, dirPerm); err != nil {
		return fmt.Errorf("create profile directory: %w", err)
	}
	tmp, err := os.CreateTemp(dir, ".profile-*.toml")
	if err != nil {
		return fmt.Errorf("create temp profile file: %w", err)
	}
	defer func() { _ = os.Remove(tmp.Name()) }()

	err = tmp.Chmod(filePerm)
	if err == nil {
		_, err = tmp.Write(data)
	}
	if closeErr := tmp.Close(); err == nil {
		err = closeErr
	}
	if err == nil {
		err = os.Rename(tmp.Name(), r.path)
	}
	if err != nil {
		return fmt.Errorf("write profile file: %w", err)
	}
	return nil
}
