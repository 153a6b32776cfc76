package application

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"github.com/bnema/petcare-cli/internal/domain"
	"github.com/bnema/petcare-cli/internal/ports"
)

type FeedbackService struct {
	api ports.APIClient
}

func NewFeedbackService(api ports.APIClient) *FeedbackService {
	return &FeedbackService{api: api}
}

func (s *FeedbackService) Send(ctx context.Context, input domain.FeedbackInput) (domain.Feedback, error) {
	if err := input.Validate(); err != nil {
		return domain.Feedback{}, err
	}

	var feedback domain.Feedback
	if _, err := s.api.Do(ctx, ports.Request{Method: http.MethodPost, Path: "/feedback", Body: input}, &feedback); err != nil {
		return domain.Feedback{}, fmt.Errorf("send feedback: %w", err)
	}
	return feedback, nil
}

func (s *FeedbackService) List(ctx context.Context, providerID string) ([]domain.Feedback, error) {
	query := url.Values{}
	setQuery(query, "providerId", providerID)

	var feedback []domain.Feedback
	if _, err := s.api.Do(ctx, ports.Request{Method: http.MethodGet, Path: "/feedback", Query: query}, &feedback); err != nil {
		return nil, fmt.Errorf("list feedback: %w", err)
	}
	return feedback, nil
}

type NotificationService struct {
	api ports.APIClient
}

func NewNotificationService(api ports.APIClient) *NotificationService {
	return &NotificationService{api: api}
}

func (s *NotificationService) List(ctx context.Context, unreadOnly bool) ([]domain.Notification, error) {
	query := url.Values{}
	if unreadOnly {
		query.Set("unread", "true")
	}

	var notifications []domain.Notification
	if _, err := s.api.Do(ctx, ports.Request{Method: http.MethodGet, Path: "/notifications", Query: query}, &notifications); err != nil {
		return nil, fmt.Errorf("list notifications: %w", err)
	}
	return notifications, nil
}

func (s *NotificationService) MarkRead(ctx context.Context, id string) error {
	escaped, err := requireID("notification", id)
	if err != nil {
		return err
	}

	if _, err := s.api.Do(ctx, ports.Request{Method: http.MethodPatch, Path: resourcePath("notifications", escaped, "read")}, nil); err != nil {
		return fmt.Errorf("mark notification %s read: %w", id, err)
	}
	return nil
}

func (s *NotificationService) MarkAllRead(ctx context.Context) error {
	if _, err := s.api.Do(ctx, ports.Request{Method: http.MethodPatch, Path: "/notifications/read-all"}, nil); err != nil {
		return fmt.Errorf("mark all notifications read: %w", err)
	}
	return nil
}
