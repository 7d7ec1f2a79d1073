package service

import (
	"context"
	"fmt"
	"testing"
	"time"

	catalogerrors "tripdey/internal/catalog/errors"
	"tripdey/internal/review/validator"
	"tripdey/pkg/config"
	apperrors "tripdey/pkg/errors"
	"tripdey/pkg/logger"
	"tripdey/pkg/model"

	"github.com/google/uuid"
)

type mockReviewRepository struct {
	createFunc func(ctx context.Context, review *model.Review) error
}

func (m *mockReviewRepository) Create(ctx context.Context, review *model.Review) error {
	if m.createFunc != nil {
		return m.createFunc(ctx, review)
	}
	return nil
}

func (m *mockReviewRepository) FindByID(ctx context.Context, id string) (*model.Review, error) {
	return &model.Review{ID: id}, nil
}

func (m *mockReviewRepository) FindByListing(ctx context.Context, kind model.ListingKind, listingID string) ([]*model.Review, error) {
	return []*model.Review{}, nil
}

func (m *mockReviewRepository) RemoveForUser(ctx context.Context, userID string) error {
	return nil
}

type mockListingResolver struct {
	resolveFunc func(ctx context.Context, kind model.ListingKind, id string) (*model.ListingRef, error)
}

func (m *mockListingResolver) ResolveListing(ctx context.Context, kind model.ListingKind, id string) (*model.ListingRef, error) {
	if m.resolveFunc != nil {
		return m.resolveFunc(ctx, kind, id)
	}
	return &model.ListingRef{Kind: kind, ID: id}, nil
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

func newTestService(reviews *mockReviewRepository, listings *mockListingResolver) ReviewService {
	if reviews == nil {
		reviews = &mockReviewRepository{}
	}
	if listings == nil {
		listings = &mockListingResolver{}
	}
	return NewReviewService(reviews, listings, validator.NewReviewValidator(), testConfig())
}

func assertAppErrorCode(t *testing.T, err error, wantCode string) {
	t.Helper()
	appErr, ok := err.(*apperrors.AppError)
	if !ok {
		t.Fatalf("expected AppError, got %T: %v", err, err)
	}
	if appErr.Code != wantCode {
		t.Fatalf("error code = %s, want %s (message: %s)", appErr.Code, wantCode, appErr.Message)
	}
}

func TestCreate(t *testing.T) {
	svc := newTestService(nil, nil)

	userID := uuid.NewString()
	review, err := svc.Create(context.Background(), userID, &model.Review{
		ListingKind: model.ListingKindShortlet,
		ListingID:   uuid.NewString(),
		Rating:      5,
		Review:      "  Spotless  apartment, great host. ",
	})
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	if review.UserID != userID {
		t.Errorf("UserID = %q, want %q", review.UserID, userID)
	}
	if review.Review != "Spotless apartment, great host." {
		t.Errorf("review text not normalized: %q", review.Review)
	}
}

func TestCreate_Invalid(t *testing.T) {
	tests := []struct {
		name   string
		review model.Review
	}{
		{
			name: "unknown listing kind",
			review: model.Review{
				ListingKind: "boat_listing",
				ListingID:   uuid.NewString(),
				Rating:      3,
				Review:      "fine",
			},
		},
		{
			name: "rating out of range",
			review: model.Review{
				ListingKind: model.ListingKindCar,
				ListingID:   uuid.NewString(),
				Rating:      6,
				Review:      "fine",
			},
		},
		{
			name: "missing review text",
			review: model.Review{
				ListingKind: model.ListingKindCar,
				ListingID:   uuid.NewString(),
				Rating:      3,
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := newTestService(nil, nil)
			_, err := svc.Create(context.Background(), uuid.NewString(), &tt.review)
			assertAppErrorCode(t, err, apperrors.CodeValidation)
		})
	}
}

func TestCreate_ListingDoesNotExist(t *testing.T) {
	listings := &mockListingResolver{
		resolveFunc: func(ctx context.Context, kind model.ListingKind, id string) (*model.ListingRef, error) {
			return nil, fmt.Errorf("%w: %s", catalogerrors.ErrNotFound, id)
		},
	}
	svc := newTestService(nil, listings)

	_, err := svc.Create(context.Background(), uuid.NewString(), &model.Review{
		ListingKind: model.ListingKindCar,
		ListingID:   uuid.NewString(),
		Rating:      4,
		Review:      "good car",
	})
	assertAppErrorCode(t, err, apperrors.CodeValidation)
}
