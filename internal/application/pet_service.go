package application

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"github.com/bnema/petcare-cli/internal/domain"
	"github.com/bnema/petcare-cli/internal/ports"
)

type PetService struct {
	api ports.APIClient
}

func NewPetService(api ports.APIClient) *PetService {
	return &PetService{api: api}
}

func (s *PetService) List(ctx context.Context, filter domain.PetFilter) ([]domain.Pet, error) {
	query := url.Values{}
	setQuery(query, "ownerId", filter.OwnerID)
	setQuery(query, "species", filter.Species)
	setQuery(query, "search", filter.Search)

	var pets []domain.Pet
	if _, err := s.api.Do(ctx, ports.Request{Method: http.MethodGet, Path: "/pets", Query: query}, &pets); err != nil {
		return nil, fmt.Errorf("list pets: %w", err)
	}
	return pets, nil
}

func (s *PetService) Get(ctx context.Context, id string) (domain.Pet, error) {
	escaped, err := requireID("pet", id)
	if err != nil {
		return domain.Pet{}, err
	}

	var pet domain.Pet
	if _, err := s.api.Do(ctx, ports.Request{Method: http.MethodGet, Path: resourcePath("pets", escaped)}, &pet); err != nil {
		return domain.Pet{}, fmt.Errorf("get pet %s: %w", id, err)
	}
	return pet, nil
}

func (s *PetService) Create(ctx context.Context, input domain.PetInput) (domain.Pet, error) {
	if err := input.ValidateForCreate(); err != nil {
		return domain.Pet{}, err
	}

	var pet domain.Pet
	if _, err := s.api.Do(ctx, ports.Request{Method: http.MethodPost, Path: "/pets", Body: input}, &pet); err != nil {
		return domain.Pet{}, fmt.Errorf("create pet: %w", err)
	}
	return pet, nil
}

func (s *PetService) Update(ctx context.Context, id string, input domain.PetInput) (domain.Pet, error) {
	escaped, err := requireID("pet", id)
	if err != nil {
		return domain.Pet{}, err
	}

	var pet domain.Pet
	if _, err := s.api.Do(ctx, ports.Request{Method: http.MethodPut, Path: resourcePath("pets", escaped), Body: input}, &pet); err != nil {
		return domain.Pet{}, fmt.Errorf("update pet %s: %w", id, err)
	}
	return pet, nil
}

func (s *PetService) Delete(ctx context.Context, id string) error {
	escaped, err := requireID("pet", id)
	if err != nil {
		return err
	}

	if _, err := s.api.Do(ctx, ports.Request{Method: http.MethodDelete, Path: resourcePath("pets", escaped)}, nil); err != nil {
		return fmt.Errorf("delete pet %s: %w", id, err)
	}
	return nil
}

func (s *PetService) UploadPhoto(ctx context.Context, id string, upload Upload) (domain.Pet, error) {
	escaped, err := requireID("pet", id)
	if err != nil {
		return domain.Pet{}, err
	}
	form, err := upload.form("photo")
	if err != nil {
		return domain.Pet{}, err
	}

	var pet domain.Pet
	if _, err := s.api.Do(ctx, ports.Request{Method: http.MethodPost, Path: resourcePath("pets", escaped, "photo"), Form: form}, &pet); err != nil {
		return domain.Pet{}, fmt.Errorf("upload pet photo %s: %w", id, err)
	}
	return pet, nil
}
