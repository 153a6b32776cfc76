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

type CampaignService struct {
	api ports.APIClient
}

func NewCampaignService(api ports.APIClient) *CampaignService {
	return &CampaignService{api: api}
}

// List returns campaigns, optionally narrowed to one status.
func (s *CampaignService) List(ctx context.Context, status string) ([]domain.Campaign, error) {
	query := url.Values{}
	setQuery(query, "status", status)

	var campaigns []domain.Campaign
	if _, err := s.api.Do(ctx, ports.Request{Method: http.MethodGet, Path: "/campaigns", Query: query}, &campaigns); err != nil {
		return nil, fmt.Errorf("list campaigns: %w", err)
	}
	return campaigns, nil
}

func (s *CampaignService) Get(ctx context.Context, id string) (domain.Campaign, error) {
	escaped, err := requireID("campaign", id)
	if err != nil {
		return domain.Campaign{}, err
	}

	var campaign domain.Campaign
	if _, err := s.api.Do(ctx, ports.Request{Method: http.MethodGet, Path: resourcePath("campaigns", escaped)}, &campaign); err != nil {
		return domain.Campaign{}, fmt.Errorf("get campaign %s: %w", id, err)
	}
	return campaign, nil
}

func (s *CampaignService) Create(ctx context.Context, input domain.CampaignInput) (domain.Campaign, error) {
	if strings.TrimSpace(input.Title) == "" {
		return domain.Campaign{}, errors.New("title is required")
	}
	if input.StartsAt != nil && input.EndsAt != nil && input.EndsAt.Before(*input.StartsAt) {
		return domain.Campaign{}, errors.New("end date must not be before start date")
	}

	var campaign domain.Campaign
	if _, err := s.api.Do(ctx, ports.Request{Method: http.MethodPost, Path: "/campaigns", Body: input}, &campaign); err != nil {
		return domain.Campaign{}, fmt.Errorf("create campaign: %w", err)
	}
	return campaign, nil
}

func (s *CampaignService) Update(ctx context.Context, id string, input domain.CampaignInput) (domain.Campaign, error) {
	escaped, err := requireID("campaign", id)
	if err != nil {
		return domain.Campaign{}, err
	}

	var campaign domain.Campaign
	if _, err := s.api.Do(ctx, ports.Request{Method: http.MethodPut, Path: resourcePath("campaigns", escaped), Body: input}, &campaign); err != nil {
		return domain.Campaign{}, fmt.Errorf("update campaign %s: %w", id, err)
	}
	return campaign, nil
}

func (s *CampaignService) Delete(ctx context.Context, id string) error {
	escaped, err := requireID("campaign", id)
	if err != nil {
		return err
	}

	if _, err := s.api.Do(ctx, ports.Request{Method: http.MethodDelete, Path: resourcePath("campaigns", escaped)}, nil); err != nil {
		return fmt.Errorf("delete campaign %s: %w", id, err)
	}
	return nil
}

func (s *CampaignService) UploadBanner(ctx context.Context, id string, upload Upload) (domain.Campaign, error) {
	escaped, err := requireID("campaign", id)
	if err != nil {
		return domain.Campaign{}, err
	}
	form, err := upload.form("banner")
	if err != nil {
		return domain.Campaign{}, err
	}

	var campaign domain.Campaign
	if _, err := s.api.Do(ctx, ports.Request{Method: http.MethodPost, Path: resourcePath("campaigns", escaped, "banner"), Form: form}, &campaign); err != nil {
		return domain.Campaign{}, fmt.Errorf("upload banner for campaign %s: %w", id, err)
	}
	return campaign, nil
}
