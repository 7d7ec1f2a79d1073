package service

import (
	"context"
	"errors"

	businesserrors "tripdey/internal/business/errors"
	"tripdey/internal/business/repository"
	"tripdey/internal/business/validator"
	"tripdey/pkg/config"
	apperrors "tripdey/pkg/errors"
	"tripdey/pkg/model"
	"tripdey/pkg/sanitizer"
	"tripdey/pkg/validation"
)

// BusinessFlagSetter flips the owning user's business flag when their
// first business profile is created.
type BusinessFlagSetter interface {
	SetBusiness(ctx context.Context, id string, isBusiness bool) error
}

type BusinessService interface {
	Create(ctx context.Context, userID string, business *model.UserBusiness) (*model.UserBusiness, error)
	ListMine(ctx context.Context, userID string) ([]*model.UserBusiness, error)
	Update(ctx context.Context, id, userID string, business *model.UserBusiness) (*model.UserBusiness, error)
	Delete(ctx context.Context, id, userID string) error

	ListCategories(ctx context.Context) ([]*model.BusinessCategory, error)
	CreateCategories(ctx context.Context, categories []*model.BusinessCategory) ([]*model.BusinessCategory, error)
	UpdateCategory(ctx context.Context, id string, category *model.BusinessCategory) (*model.BusinessCategory, error)
	DeleteCategory(ctx context.Context, id string) error
}

type businessService struct {
	businesses repository.BusinessRepository
	categories repository.CategoryRepository
	users      BusinessFlagSetter
	validator  *validator.BusinessValidator
	cfg        *config.Config
}

func NewBusinessService(
	businesses repository.BusinessRepository,
	categories repository.CategoryRepository,
	users BusinessFlagSetter,
	validator *validator.BusinessValidator,
	cfg *config.Config,
) BusinessService {
	return &businessService{
		businesses: businesses,
		categories: categories,
		users:      users,
		validator:  validator,
		cfg:        cfg,
	}
}

func (s *businessService) Create(ctx context.Context, userID string, business *model.UserBusiness) (*model.UserBusiness, error) {
	business.UserID = userID
	business.IsOwner = true
	business.BusinessName = sanitizer.NormalizeName(business.BusinessName)

	if err := s.validator.Validate(business); err != nil {
		return nil, asValidationError(err)
	}

	if err := s.businesses.Create(ctx, business); err != nil {
		s.cfg.Log.Error("Failed to create business", "user_id", userID, "error", err)
		return nil, apperrors.Internal("Failed to create business", err)
	}

	// The owner is a business account from here on.
	if err := s.users.SetBusiness(ctx, userID, true); err != nil {
		s.cfg.Log.Error("Failed to flag user as business", "user_id", userID, "error", err)
	}

	s.cfg.Log.Info("Business created", "id", business.ID, "user_id", userID)
	return business, nil
}

func (s *businessService) ListMine(ctx context.Context, userID string) ([]*model.UserBusiness, error) {
	businesses, err := s.businesses.FindByUser(ctx, userID)
	if err != nil {
		s.cfg.Log.Error("Failed to list businesses", "user_id", userID, "error", err)
		return nil, apperrors.Internal("Failed to retrieve businesses", err)
	}
	return businesses, nil
}

func (s *businessService) Update(ctx context.Context, id, userID string, business *model.UserBusiness) (*model.UserBusiness, error) {
	business.BusinessName = sanitizer.NormalizeName(business.BusinessName)

	if err := s.validator.Validate(business); err != nil {
		return nil, asValidationError(err)
	}

	if err := s.businesses.UpdateOwned(ctx, id, userID, business); err != nil {
		return nil, s.mapBusinessError(err, id)
	}

	updated, err := s.businesses.FindByID(ctx, id)
	if err != nil {
		return nil, s.mapBusinessError(err, id)
	}

	s.cfg.Log.Info("Business updated", "id", id, "user_id", userID)
	return updated, nil
}

func (s *businessService) Delete(ctx context.Context, id, userID string) error {
	if err := s.businesses.DeleteOwned(ctx, id, userID); err != nil {
		return s.mapBusinessError(err, id)
	}

	s.cfg.Log.Info("Business deleted", "id", id, "user_id", userID)
	return nil
}

func (s *businessService) ListCategories(ctx context.Context) ([]*model.BusinessCategory, error) {
	categories, err := s.categories.FindAll(ctx)
	if err != nil {
		s.cfg.Log.Error("Failed to list categories", "error", err)
		return nil, apperrors.Internal("Failed to retrieve categories", err)
	}
	return categories, nil
}

func (s *businessService) CreateCategories(ctx context.Context, categories []*model.BusinessCategory) ([]*model.BusinessCategory, error) {
	if len(categories) == 0 {
		return nil, apperrors.InvalidInput("At least one category is required")
	}

	for _, category := range categories {
		category.Text = sanitizer.NormalizeName(category.Text)
		if err := s.validator.Validate(category); err != nil {
			return nil, asValidationError(err)
		}
	}

	if err := s.categories.CreateMany(ctx, categories); err != nil {
		s.cfg.Log.Error("Failed to create categories", "count", len(categories), "error", err)
		return nil, apperrors.Internal("Failed to create categories", err)
	}

	return categories, nil
}

func (s *businessService) UpdateCategory(ctx context.Context, id string, category *model.BusinessCategory) (*model.BusinessCategory, error) {
	category.Text = sanitizer.NormalizeName(category.Text)

	if err := s.validator.Validate(category); err != nil {
		return nil, asValidationError(err)
	}

	if err := s.categories.Update(ctx, id, category); err != nil {
		return nil, s.mapCategoryError(err, id)
	}

	updated, err := s.categories.FindByID(ctx, id)
	if err != nil {
		return nil, s.mapCategoryError(err, id)
	}
	return updated, nil
}

func (s *businessService) DeleteCategory(ctx context.Context, id string) error {
	if err := s.categories.Delete(ctx, id); err != nil {
		return s.mapCategoryError(err, id)
	}
	return nil
}

func (s *businessService) mapBusinessError(err error, id string) error {
	if errors.Is(err, businesserrors.ErrNotFound) {
		return apperrors.NotFoundWithID("Business", id)
	}
	if errors.Is(err, businesserrors.ErrInvalidID) {
		return apperrors.InvalidInput("Invalid business ID format")
	}
	s.cfg.Log.Error("Business operation failed", "id", id, "error", err)
	return apperrors.Internal("Failed to access business", err)
}

func (s *businessService) mapCategoryError(err error, id string) error {
	if errors.Is(err, businesserrors.ErrCategoryNotFound) {
		return apperrors.NotFoundWithID("Business category", id)
	}
	if errors.Is(err, businesserrors.ErrInvalidID) {
		return apperrors.InvalidInput("Invalid category ID format")
	}
	s.cfg.Log.Error("Category operation failed", "id", id, "error", err)
	return apperrors.Internal("Failed to access category", err)
}

func asValidationError(err error) error {
	var fieldErrs validation.FieldErrors
	if errors.As(err, &fieldErrs) {
		return apperrors.Validation("Validation failed", fieldErrs.Details())
	}
	return apperrors.Validation("Validation failed", map[string]any{"error": err.Error()})
}
