package application

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/bnema/petcare-cli/internal/domain"
	"github.com/bnema/petcare-cli/internal/ports"
)

type MarketplaceService struct {
	api ports.APIClient
}

func NewMarketplaceService(api ports.APIClient) *MarketplaceService {
	return &MarketplaceService{api: api}
}

func (s *MarketplaceService) ListProviders(ctx context.Context, filter domain.ProviderFilter) ([]domain.ServiceProvider, error) {
	query := url.Values{}
	setQuery(query, "type", filter.Kind)
	setQuery(query, "city", filter.City)
	setQuery(query, "category", filter.Category)

	var providers []domain.ServiceProvider
	if _, err := s.api.Do(ctx, ports.Request{Method: http.MethodGet, Path: "/services/providers", Query: query}, &providers); err != nil {
		return nil, fmt.Errorf("list providers: %w", err)
	}
	return providers, nil
}

func (s *MarketplaceService) GetProvider(ctx context.Context, id string) (domain.ServiceProvider, error) {
	escaped, err := requireID("provider", id)
	if err != nil {
		return domain.ServiceProvider{}, err
	}

	var provider domain.ServiceProvider
	if _, err := s.api.Do(ctx, ports.Request{Method: http.MethodGet, Path: resourcePath("services", "providers", escaped)}, &provider); err != nil {
		return domain.ServiceProvider{}, fmt.Errorf("get provider %s: %w", id, err)
	}
	return provider, nil
}

func (s *MarketplaceService) Contract(ctx context.Context, req domain.ContractRequest) (domain.ServiceContract, error) {
	if strings.TrimSpace(req.ProviderID) == "" {
		return domain.ServiceContract{}, errors.New("provider id is required")
	}
	if strings.TrimSpace(req.ServiceID) == "" {
		return domain.ServiceContract{}, errors.New("service id is required")
	}

	var contract domain.ServiceContract
	if _, err := s.api.Do(ctx, ports.Request{Method: http.MethodPost, Path: "/services/contracts", Body: req}, &contract); err != nil {
		return domain.ServiceContract{}, fmt.Errorf("contract service: %w", err)
	}
	return contract, nil
}

func (s *MarketplaceService) ListContracts(ctx context.Context) ([]domain.ServiceContract, error) {
	var contracts []domain.ServiceContract
	if _, err := s.api.Do(ctx, ports.Request{Method: http.MethodGet, Path: "/services/contracts"}, &contracts); err != nil {
		return nil, fmt.Errorf("list contracts: %w", err)
	}
	return contracts, nil
}

func (s *MarketplaceService) CancelContract(ctx context.Context, id string) (domain.ServiceContract, error) {
	escaped, err := requireID("contract", id)
	if err != nil {
		return domain.ServiceContract{}, err
	}

	var contract domain.ServiceContract
	if _, err := s.api.Do(ctx, ports.Request{Method: http.MethodPost, Path: resourcePath("services", "contracts", escaped, "cancel")}, &contract); err != nil {
		return domain.ServiceContract{}, fmt.Errorf("cancel contract %s: %w", id, err)
	}
	return contract, nil
}
