package service

import (
	"context"
	"errors"

	catalogerrors "tripdey/internal/catalog/errors"
	"tripdey/internal/review/repository"
	"tripdey/internal/review/validator"
	"tripdey/pkg/config"
	apperrors "tripdey/pkg/errors"
	"tripdey/pkg/model"
	"tripdey/pkg/sanitizer"
	"tripdey/pkg/validation"

	reviewerrors "tripdey/internal/review/errors"
)

// ListingResolver confirms the reviewed listing exists. Satisfied by the
// catalog service.
type ListingResolver interface {
	ResolveListing(ctx context.Context, kind model.ListingKind, id string) (*model.ListingRef, error)
}

type ReviewService interface {
	Create(ctx context.Context, userID string, review *model.Review) (*model.Review, error)
	Get(ctx context.Context, id string) (*model.Review, error)
}

type reviewService struct {
	reviews   repository.ReviewRepository
	listings  ListingResolver
	validator *validator.ReviewValidator
	cfg       *config.Config
}

func NewReviewService(
	reviews repository.ReviewRepository,
	listings ListingResolver,
	validator *validator.ReviewValidator,
	cfg *config.Config,
) ReviewService {
	return &reviewService{
		reviews:   reviews,
		listings:  listings,
		validator: validator,
		cfg:       cfg,
	}
}

func (s *reviewService) Create(ctx context.Context, userID string, review *model.Review) (*model.Review, error) {
	review.UserID = userID
	review.Review = sanitizer.TrimAndNormalize(review.Review)

	if !review.ListingKind.Valid() {
		return nil, apperrors.Validation("listing_type must be car_listing or shortlet_listing", nil)
	}
	if err := s.validator.Validate(review); err != nil {
		return nil, asValidationError(err)
	}

	// A review must point at a listing that exists; a dangling reference is
	// treated as bad input rather than a missing resource.
	if _, err := s.listings.ResolveListing(ctx, review.ListingKind, review.ListingID); err != nil {
		if errors.Is(err, catalogerrors.ErrNotFound) || errors.Is(err, catalogerrors.ErrInvalidID) {
			return nil, apperrors.Validation("The referenced listing does not exist", nil)
		}
		return nil, apperrors.Internal("An unexpected error occurred", err)
	}

	if err := s.reviews.Create(ctx, review); err != nil {
		return nil, apperrors.Internal("Failed to create review", err)
	}
	return review, nil
}

func (s *reviewService) Get(ctx context.Context, id string) (*model.Review, error) {
	review, err := s.reviews.FindByID(ctx, id)
	if err != nil {
		switch {
		case errors.Is(err, reviewerrors.ErrNotFound):
			return nil, apperrors.NotFoundWithID("Review", id)
		case errors.Is(err, reviewerrors.ErrInvalidID):
			return nil, apperrors.InvalidInput("Invalid review ID format")
		default:
			return nil, apperrors.Internal("An unexpected error occurred", err)
		}
	}
	return review, nil
}

func asValidationError(err error) error {
	var fieldErrors validation.FieldErrors
	if errors.As(err, &fieldErrors) {
		return apperrors.Validation("Validation failed", fieldErrors.Details())
	}
	return apperrors.Validation(err.Error(), nil)
}
