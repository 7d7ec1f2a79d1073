package service

import (
	"context"
	"fmt"
	"testing"
	"time"

	businesserrors "tripdey/internal/business/errors"
	"tripdey/internal/business/validator"
	"tripdey/pkg/config"
	apperrors "tripdey/pkg/errors"
	"tripdey/pkg/logger"
	"tripdey/pkg/model"
)

type mockBusinessRepository struct {
	createFunc      func(ctx context.Context, business *model.UserBusiness) error
	findByUserFunc  func(ctx context.Context, userID string) ([]*model.UserBusiness, error)
	updateOwnedFunc func(ctx context.Context, id, userID string, business *model.UserBusiness) error
	deleteOwnedFunc func(ctx context.Context, id, userID string) error
}

func (m *mockBusinessRepository) Create(ctx context.Context, business *model.UserBusiness) error {
	if m.createFunc != nil {
		return m.createFunc(ctx, business)
	}
	return nil
}

func (m *mockBusinessRepository) FindByID(ctx context.Context, id string) (*model.UserBusiness, error) {
	return &model.UserBusiness{ID: id}, nil
}

func (m *mockBusinessRepository) FindByUser(ctx context.Context, userID string) ([]*model.UserBusiness, error) {
	if m.findByUserFunc != nil {
		return m.findByUserFunc(ctx, userID)
	}
	return []*model.UserBusiness{}, nil
}

func (m *mockBusinessRepository) UpdateOwned(ctx context.Context, id, userID string, business *model.UserBusiness) error {
	if m.updateOwnedFunc != nil {
		return m.updateOwnedFunc(ctx, id, userID, business)
	}
	return nil
}

func (m *mockBusinessRepository) DeleteOwned(ctx context.Context, id, userID string) error {
	if m.deleteOwnedFunc != nil {
		return m.deleteOwnedFunc(ctx, id, userID)
	}
	return nil
}

func (m *mockBusinessRepository) CountByUser(ctx context.Context, userID string) (int64, error) {
	return 0, nil
}

func (m *mockBusinessRepository) RemoveForUser(ctx context.Context, userID string) error {
	return nil
}

type mockCategoryRepository struct {
	createManyFunc func(ctx context.Context, categories []*model.BusinessCategory) error
}

func (m *mockCategoryRepository) FindAll(ctx context.Context) ([]*model.BusinessCategory, error) {
	return []*model.BusinessCategory{}, nil
}

func (m *mockCategoryRepository) FindByID(ctx context.Context, id string) (*model.BusinessCategory, error) {
	return &model.BusinessCategory{ID: id}, nil
}

func (m *mockCategoryRepository) CreateMany(ctx context.Context, categories []*model.BusinessCategory) error {
	if m.createManyFunc != nil {
		return m.createManyFunc(ctx, categories)
	}
	return nil
}

func (m *mockCategoryRepository) Update(ctx context.Context, id string, category *model.BusinessCategory) error {
	return nil
}

func (m *mockCategoryRepository) Delete(ctx context.Context, id string) error {
	return nil
}

type mockFlagSetter struct {
	calls []string
}

func (m *mockFlagSetter) SetBusiness(ctx context.Context, id string, isBusiness bool) error {
	m.calls = append(m.calls, id)
	return nil
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

func TestCreate_FlipsBusinessFlag(t *testing.T) {
	flagSetter := &mockFlagSetter{}
	svc := NewBusinessService(
		&mockBusinessRepository{},
		&mockCategoryRepository{},
		flagSetter,
		validator.NewBusinessValidator(),
		testConfig(),
	)

	business, err := svc.Create(context.Background(), "7b0b44aa-9c5a-4c6e-8f1d-0e2a1b3c4d5e", &model.UserBusiness{
		BusinessName:       "  Lagos   Rentals ",
		BusinessCountry:    "Nigeria",
		BusinessState:      "Lagos",
		BusinessPostalCode: "100001",
	})
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	if business.BusinessName != "Lagos Rentals" {
		t.Errorf("name not normalized: %q", business.BusinessName)
	}
	if business.UserID != "7b0b44aa-9c5a-4c6e-8f1d-0e2a1b3c4d5e" {
		t.Errorf("UserID = %q", business.UserID)
	}
	if !business.IsOwner {
		t.Error("creator must be the owner")
	}
	if len(flagSetter.calls) != 1 {
		t.Errorf("SetBusiness called %d times, want 1", len(flagSetter.calls))
	}
}

func TestCreate_ValidationFailure(t *testing.T) {
	svc := NewBusinessService(
		&mockBusinessRepository{},
		&mockCategoryRepository{},
		&mockFlagSetter{},
		validator.NewBusinessValidator(),
		testConfig(),
	)

	_, err := svc.Create(context.Background(), "7b0b44aa-9c5a-4c6e-8f1d-0e2a1b3c4d5e", &model.UserBusiness{
		BusinessName: "X", // too short
	})
	assertAppErrorCode(t, err, apperrors.CodeValidation)
}

func TestUpdate_OtherUsersBusinessLooksMissing(t *testing.T) {
	repo := &mockBusinessRepository{
		updateOwnedFunc: func(ctx context.Context, id, userID string, business *model.UserBusiness) error {
			return fmt.Errorf("%w: %s", businesserrors.ErrNotFound, id)
		},
	}
	svc := NewBusinessService(repo, &mockCategoryRepository{}, &mockFlagSetter{}, validator.NewBusinessValidator(), testConfig())

	_, err := svc.Update(context.Background(), "4dfd36dc-bafc-4ecc-b9a1-7d6a2f84d1f1", "7b0b44aa-9c5a-4c6e-8f1d-0e2a1b3c4d5e", &model.UserBusiness{
		BusinessName:       "Lagos Rentals",
		BusinessCountry:    "Nigeria",
		BusinessState:      "Lagos",
		BusinessPostalCode: "100001",
	})
	assertAppErrorCode(t, err, apperrors.CodeNotFound)
}

func TestDelete_NotFound(t *testing.T) {
	repo := &mockBusinessRepository{
		deleteOwnedFunc: func(ctx context.Context, id, userID string) error {
			return fmt.Errorf("%w: %s", businesserrors.ErrNotFound, id)
		},
	}
	svc := NewBusinessService(repo, &mockCategoryRepository{}, &mockFlagSetter{}, validator.NewBusinessValidator(), testConfig())

	err := svc.Delete(context.Background(), "4dfd36dc-bafc-4ecc-b9a1-7d6a2f84d1f1", "7b0b44aa-9c5a-4c6e-8f1d-0e2a1b3c4d5e")
	assertAppErrorCode(t, err, apperrors.CodeNotFound)
}

func TestCreateCategories(t *testing.T) {
	tests := []struct {
		name       string
		categories []*model.BusinessCategory
		wantCode   string
	}{
		{
			name: "batch create",
			categories: []*model.BusinessCategory{
				{Text: " Car  Rental "},
				{Text: "Apartments"},
			},
		},
		{
			name:       "empty batch",
			categories: nil,
			wantCode:   apperrors.CodeInvalidInput,
		},
		{
			name: "invalid entry",
			categories: []*model.BusinessCategory{
				{Text: "A"},
			},
			wantCode: apperrors.CodeValidation,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := NewBusinessService(&mockBusinessRepository{}, &mockCategoryRepository{}, &mockFlagSetter{}, validator.NewBusinessValidator(), testConfig())

			created, err := svc.CreateCategories(context.Background(), tt.categories)
			if tt.wantCode != "" {
				assertAppErrorCode(t, err, tt.wantCode)
				return
			}
			if err != nil {
				t.Fatalf("CreateCategories() error = %v", err)
			}
			if created[0].Text != "Car Rental" {
				t.Errorf("text not normalized: %q", created[0].Text)
			}
		})
	}
}
