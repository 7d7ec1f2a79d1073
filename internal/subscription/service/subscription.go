package service

import (
	"context"
	"errors"
	"time"

	subscriptionerrors "tripdey/internal/subscription/errors"
	"tripdey/internal/subscription/repository"
	"tripdey/pkg/config"
	apperrors "tripdey/pkg/errors"
	"tripdey/pkg/model"
)

// SubscriptionService backs both the subscription endpoints and the
// middleware gate on listing creation.
type SubscriptionService interface {
	HasActiveSubscription(ctx context.Context, userID string) (bool, error)
	Subscribe(ctx context.Context, userID, membershipID string) (*model.Subscription, error)
	GetMine(ctx context.Context, userID string) (*model.Subscription, error)
	ListMemberships(ctx context.Context) ([]*model.UserMembership, error)
}

type subscriptionService struct {
	subscriptions repository.SubscriptionRepository
	cfg           *config.Config
}

func NewSubscriptionService(subscriptions repository.SubscriptionRepository, cfg *config.Config) SubscriptionService {
	return &subscriptionService{
		subscriptions: subscriptions,
		cfg:           cfg,
	}
}

// HasActiveSubscription reports whether the user holds a subscription that is
// both flagged active and not yet expired.
func (s *subscriptionService) HasActiveSubscription(ctx context.Context, userID string) (bool, error) {
	subscription, err := s.subscriptions.FindActiveByUser(ctx, userID)
	if err != nil {
		if errors.Is(err, subscriptionerrors.ErrNotFound) {
			return false, nil
		}
		return false, apperrors.Internal("Failed to check subscription", err)
	}
	return subscription.ExpiresOn.After(time.Now().UTC()), nil
}

func (s *subscriptionService) Subscribe(ctx context.Context, userID, membershipID string) (*model.Subscription, error) {
	membership, err := s.subscriptions.FindMembershipByID(ctx, membershipID)
	if err != nil {
		switch {
		case errors.Is(err, subscriptionerrors.ErrMembershipNotFound):
			return nil, apperrors.NotFoundWithID("Membership", membershipID)
		case errors.Is(err, subscriptionerrors.ErrInvalidID):
			return nil, apperrors.InvalidInput("Invalid membership ID format")
		default:
			return nil, apperrors.Internal("An unexpected error occurred", err)
		}
	}

	// A fresh subscription supersedes any existing active one.
	if existing, err := s.subscriptions.FindActiveByUser(ctx, userID); err == nil {
		if err := s.subscriptions.Deactivate(ctx, existing.ID); err != nil {
			s.cfg.Log.Error("failed to deactivate previous subscription", "subscription_id", existing.ID, "error", err)
		}
	}

	now := time.Now().UTC()
	subscription := &model.Subscription{
		UserID:       userID,
		MembershipID: membership.ID,
		Active:       true,
		ExpiresOn:    now.AddDate(0, 0, membership.DurationDay),
	}
	if err := s.subscriptions.Create(ctx, subscription); err != nil {
		return nil, apperrors.Internal("Failed to create subscription", err)
	}
	return subscription, nil
}

func (s *subscriptionService) GetMine(ctx context.Context, userID string) (*model.Subscription, error) {
	subscription, err := s.subscriptions.FindActiveByUser(ctx, userID)
	if err != nil {
		if errors.Is(err, subscriptionerrors.ErrNotFound) {
			return nil, apperrors.NotFound("Active subscription")
		}
		return nil, apperrors.Internal("An unexpected error occurred", err)
	}
	return subscription, nil
}

func (s *subscriptionService) ListMemberships(ctx context.Context) ([]*model.UserMembership, error) {
	memberships, err := s.subscriptions.FindMemberships(ctx)
	if err != nil {
		return nil, apperrors.Internal("Failed to retrieve memberships", err)
	}
	return memberships, nil
}
