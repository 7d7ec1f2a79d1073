package service

import (
	"context"
	"fmt"
	"testing"
	"time"

	subscriptionerrors "tripdey/internal/subscription/errors"
	"tripdey/pkg/config"
	apperrors "tripdey/pkg/errors"
	"tripdey/pkg/logger"
	"tripdey/pkg/model"

	"github.com/google/uuid"
)

type mockSubscriptionRepository struct {
	createFunc             func(ctx context.Context, subscription *model.Subscription) error
	findActiveByUserFunc   func(ctx context.Context, userID string) (*model.Subscription, error)
	deactivateFunc         func(ctx context.Context, id string) error
	findMembershipByIDFunc func(ctx context.Context, id string) (*model.UserMembership, error)
}

func (m *mockSubscriptionRepository) Create(ctx context.Context, subscription *model.Subscription) error {
	if m.createFunc != nil {
		return m.createFunc(ctx, subscription)
	}
	return nil
}

func (m *mockSubscriptionRepository) FindActiveByUser(ctx context.Context, userID string) (*model.Subscription, error) {
	if m.findActiveByUserFunc != nil {
		return m.findActiveByUserFunc(ctx, userID)
	}
	return nil, fmt.Errorf("%w: user %s", subscriptionerrors.ErrNotFound, userID)
}

func (m *mockSubscriptionRepository) Deactivate(ctx context.Context, id string) error {
	if m.deactivateFunc != nil {
		return m.deactivateFunc(ctx, id)
	}
	return nil
}

func (m *mockSubscriptionRepository) FindMemberships(ctx context.Context) ([]*model.UserMembership, error) {
	return []*model.UserMembership{}, nil
}

func (m *mockSubscriptionRepository) FindMembershipByID(ctx context.Context, id string) (*model.UserMembership, error) {
	if m.findMembershipByIDFunc != nil {
		return m.findMembershipByIDFunc(ctx, id)
	}
	return &model.UserMembership{ID: id, Name: "Monthly", DurationDay: 30}, nil
}

func testConfig() *config.Config {
	return &config.Config{
		Log: logger.New(logger.Config{
			Level:   "error",
			Format:  logger.FormatJSON,
			Service: "test",
		}),
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 5 * time.Second,
	}
}

func TestHasActiveSubscription(t *testing.T) {
	tests := []struct {
		name         string
		subscription *model.Subscription
		want         bool
	}{
		{
			name: "active and unexpired",
			subscription: &model.Subscription{
				ID:        uuid.NewString(),
				Active:    true,
				ExpiresOn: time.Now().UTC().Add(24 * time.Hour),
			},
			want: true,
		},
		{
			name: "active flag but expired",
			subscription: &model.Subscription{
				ID:        uuid.NewString(),
				Active:    true,
				ExpiresOn: time.Now().UTC().Add(-time.Hour),
			},
			want: false,
		},
		{
			name:         "no subscription",
			subscription: nil,
			want:         false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := &mockSubscriptionRepository{
				findActiveByUserFunc: func(ctx context.Context, userID string) (*model.Subscription, error) {
					if tt.subscription == nil {
						return nil, fmt.Errorf("%w: user %s", subscriptionerrors.ErrNotFound, userID)
					}
					return tt.subscription, nil
				},
			}
			svc := NewSubscriptionService(repo, testConfig())

			got, err := svc.HasActiveSubscription(context.Background(), uuid.NewString())
			if err != nil {
				t.Fatalf("HasActiveSubscription() error = %v", err)
			}
			if got != tt.want {
				t.Errorf("HasActiveSubscription() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestSubscribe(t *testing.T) {
	previousID := uuid.NewString()
	deactivated := []string{}
	repo := &mockSubscriptionRepository{
		findActiveByUserFunc: func(ctx context.Context, userID string) (*model.Subscription, error) {
			return &model.Subscription{ID: previousID, Active: true}, nil
		},
		deactivateFunc: func(ctx context.Context, id string) error {
			deactivated = append(deactivated, id)
			return nil
		},
	}
	svc := NewSubscriptionService(repo, testConfig())

	subscription, err := svc.Subscribe(context.Background(), uuid.NewString(), uuid.NewString())
	if err != nil {
		t.Fatalf("Subscribe() error = %v", err)
	}

	if !subscription.Active {
		t.Error("new subscription must be active")
	}
	wantExpiry := time.Now().UTC().AddDate(0, 0, 30)
	if subscription.ExpiresOn.Before(wantExpiry.Add(-time.Minute)) || subscription.ExpiresOn.After(wantExpiry.Add(time.Minute)) {
		t.Errorf("expiry = %v, want about %v", subscription.ExpiresOn, wantExpiry)
	}
	if len(deactivated) != 1 || deactivated[0] != previousID {
		t.Errorf("deactivated = %v, want [%s]", deactivated, previousID)
	}
}

func TestSubscribe_UnknownMembership(t *testing.T) {
	repo := &mockSubscriptionRepository{
		findMembershipByIDFunc: func(ctx context.Context, id string) (*model.UserMembership, error) {
			return nil, fmt.Errorf("%w: %s", subscriptionerrors.ErrMembershipNotFound, id)
		},
	}
	svc := NewSubscriptionService(repo, testConfig())

	_, err := svc.Subscribe(context.Background(), uuid.NewString(), uuid.NewString())
	appErr, ok := err.(*apperrors.AppError)
	if !ok {
		t.Fatalf("expected AppError, got %T: %v", err, err)
	}
	if appErr.Code != apperrors.CodeNotFound {
		t.Fatalf("error code = %s, want %s", appErr.Code, apperrors.CodeNotFound)
	}
}
