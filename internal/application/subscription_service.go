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

type SubscriptionService struct {
	api ports.APIClient
}

func NewSubscriptionService(api ports.APIClient) *SubscriptionService {
	return &SubscriptionService{api: api}
}

func (s *SubscriptionService) Plans(ctx context.Context) ([]domain.Plan, error) {
	var plans []domain.Plan
	if _, err := s.api.Do(ctx, ports.Request{Method: http.MethodGet, Path: "/subscriptions/plans"}, &plans); err != nil {
		return nil, fmt.Errorf("list plans: %w", err)
	}
	return plans, nil
}

func (s *SubscriptionService) Current(ctx context.Context) (domain.Subscription, error) {
	var subscription domain.Subscription
	if _, err := s.api.Do(ctx, ports.Request{Method: http.MethodGet, Path: "/subscriptions/current"}, &subscription); err != nil {
		return domain.Subscription{}, fmt.Errorf("get current subscription: %w", err)
	}
	return subscription, nil
}

func (s *SubscriptionService) Subscribe(ctx context.Context, planID string) (domain.Subscription, error) {
	planID = strings.TrimSpace(planID)
	if planID == "" {
		return domain.Subscription{}, errors.New("plan id is required")
	}

	var subscription domain.Subscription
	if _, err := s.api.Do(ctx, ports.Request{
		Method: http.MethodPost,
		Path:   "/subscriptions",
		Body:   map[string]string{"planId": planID},
	}, &subscription); err != nil {
		return domain.Subscription{}, fmt.Errorf("subscribe to plan %s: %w", planID, err)
	}
	return subscription, nil
}

func (s *SubscriptionService) Cancel(ctx context.Context, id string) (domain.Subscription, error) {
	escaped, err := requireID("subscription", id)
	if err != nil {
		return domain.Subscription{}, err
	}

	var subscription domain.Subscription
	if _, err := s.api.Do(ctx, ports.Request{Method: http.MethodPost, Path: resourcePath("subscriptions", escaped, "cancel")}, &subscription); err != nil {
		return domain.Subscription{}, fmt.Errorf("cancel subscription %s: %w", id, err)
	}
	return subscription, nil
}
