package service

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	catalogerrors "tripdey/internal/catalog/errors"
	"tripdey/internal/catalog/repository"
	"tripdey/internal/catalog/validator"
	"tripdey/pkg/config"
	apperrors "tripdey/pkg/errors"
	"tripdey/pkg/logger"
	"tripdey/pkg/model"

	"github.com/google/uuid"
)

type mockTaxonomyRepository struct {
	findByLabelFunc    func(ctx context.Context, kind model.TaxonomyKind, label string) (*model.TaxonomyItem, error)
	findIDsFunc        func(ctx context.Context, kind model.TaxonomyKind, fragment string) ([]string, error)
	getOrCreateFunc    func(ctx context.Context, kind model.TaxonomyKind, label string) (*model.TaxonomyItem, error)
	getOrCreateCalls   []string
	createManyFunc     func(ctx context.Context, kind model.TaxonomyKind, items []*model.TaxonomyItem) error
}

func (m *mockTaxonomyRepository) FindAll(ctx context.Context, kind model.TaxonomyKind) ([]*model.TaxonomyItem, error) {
	return []*model.TaxonomyItem{}, nil
}

func (m *mockTaxonomyRepository) FindByID(ctx context.Context, kind model.TaxonomyKind, id string) (*model.TaxonomyItem, error) {
	return &model.TaxonomyItem{ID: id}, nil
}

func (m *mockTaxonomyRepository) FindByLabel(ctx context.Context, kind model.TaxonomyKind, label string) (*model.TaxonomyItem, error) {
	if m.findByLabelFunc != nil {
		return m.findByLabelFunc(ctx, kind, label)
	}
	return nil, fmt.Errorf("%w: %s", catalogerrors.ErrLabelNotFound, label)
}

func (m *mockTaxonomyRepository) FindIDsByLabelContains(ctx context.Context, kind model.TaxonomyKind, fragment string) ([]string, error) {
	if m.findIDsFunc != nil {
		return m.findIDsFunc(ctx, kind, fragment)
	}
	return nil, nil
}

func (m *mockTaxonomyRepository) CreateMany(ctx context.Context, kind model.TaxonomyKind, items []*model.TaxonomyItem) error {
	if m.createManyFunc != nil {
		return m.createManyFunc(ctx, kind, items)
	}
	return nil
}

func (m *mockTaxonomyRepository) GetOrCreate(ctx context.Context, kind model.TaxonomyKind, label string) (*model.TaxonomyItem, error) {
	m.getOrCreateCalls = append(m.getOrCreateCalls, string(kind)+":"+label)
	if m.getOrCreateFunc != nil {
		return m.getOrCreateFunc(ctx, kind, label)
	}
	return &model.TaxonomyItem{ID: uuid.NewString(), Label: label}, nil
}

func (m *mockTaxonomyRepository) Update(ctx context.Context, kind model.TaxonomyKind, id string, item *model.TaxonomyItem) error {
	return nil
}

func (m *mockTaxonomyRepository) Delete(ctx context.Context, kind model.TaxonomyKind, id string) error {
	return nil
}

type mockCarListingRepository struct {
	createFunc     func(ctx context.Context, listing *model.CarListing) error
	findByIDFunc   func(ctx context.Context, id string) (*model.CarListing, error)
	findByUserFunc func(ctx context.Context, userID string, query repository.CarListingQuery) ([]*model.CarListing, error)
}

func (m *mockCarListingRepository) Create(ctx context.Context, listing *model.CarListing) error {
	if m.createFunc != nil {
		return m.createFunc(ctx, listing)
	}
	return nil
}

func (m *mockCarListingRepository) FindByID(ctx context.Context, id string) (*model.CarListing, error) {
	if m.findByIDFunc != nil {
		return m.findByIDFunc(ctx, id)
	}
	return nil, fmt.Errorf("%w: %s", catalogerrors.ErrNotFound, id)
}

func (m *mockCarListingRepository) FindByUser(ctx context.Context, userID string, query repository.CarListingQuery) ([]*model.CarListing, error) {
	if m.findByUserFunc != nil {
		return m.findByUserFunc(ctx, userID, query)
	}
	return []*model.CarListing{}, nil
}

func (m *mockCarListingRepository) UpdateOwned(ctx context.Context, id, userID string, listing *model.CarListing) error {
	return nil
}

func (m *mockCarListingRepository) DeleteOwned(ctx context.Context, id, userID string) error {
	return nil
}

func (m *mockCarListingRepository) RemoveForUser(ctx context.Context, userID string) error {
	return nil
}

type mockShortletListingRepository struct {
	findByIDFunc   func(ctx context.Context, id string) (*model.ShortletListing, error)
	findByUserFunc func(ctx context.Context, userID string, query repository.ShortletListingQuery) ([]*model.ShortletListing, error)
}

func (m *mockShortletListingRepository) Create(ctx context.Context, listing *model.ShortletListing) error {
	return nil
}

func (m *mockShortletListingRepository) FindByID(ctx context.Context, id string) (*model.ShortletListing, error) {
	if m.findByIDFunc != nil {
		return m.findByIDFunc(ctx, id)
	}
	return nil, fmt.Errorf("%w: %s", catalogerrors.ErrNotFound, id)
}

func (m *mockShortletListingRepository) FindByUser(ctx context.Context, userID string, query repository.ShortletListingQuery) ([]*model.ShortletListing, error) {
	if m.findByUserFunc != nil {
		return m.findByUserFunc(ctx, userID, query)
	}
	return []*model.ShortletListing{}, nil
}

func (m *mockShortletListingRepository) UpdateOwned(ctx context.Context, id, userID string, listing *model.ShortletListing) error {
	return nil
}

func (m *mockShortletListingRepository) DeleteOwned(ctx context.Context, id, userID string) error {
	return nil
}

func (m *mockShortletListingRepository) RemoveForUser(ctx context.Context, userID string) error {
	return nil
}

type mockBusinessSource struct {
	findByUserFunc func(ctx context.Context, userID string) ([]*model.UserBusiness, error)
}

func (m *mockBusinessSource) FindByUser(ctx context.Context, userID string) ([]*model.UserBusiness, error) {
	if m.findByUserFunc != nil {
		return m.findByUserFunc(ctx, userID)
	}
	return []*model.UserBusiness{{ID: uuid.NewString(), UserID: userID}}, nil
}

type mockReviewSource struct {
	findByListingFunc func(ctx context.Context, kind model.ListingKind, listingID string) ([]*model.Review, error)
}

func (m *mockReviewSource) FindByListing(ctx context.Context, kind model.ListingKind, listingID string) ([]*model.Review, error) {
	if m.findByListingFunc != nil {
		return m.findByListingFunc(ctx, kind, listingID)
	}
	return []*model.Review{}, nil
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

func newTestService(
	taxonomies *mockTaxonomyRepository,
	cars *mockCarListingRepository,
	shortlets *mockShortletListingRepository,
	businesses *mockBusinessSource,
	reviews *mockReviewSource,
) CatalogService {
	if taxonomies == nil {
		taxonomies = &mockTaxonomyRepository{}
	}
	if cars == nil {
		cars = &mockCarListingRepository{}
	}
	if shortlets == nil {
		shortlets = &mockShortletListingRepository{}
	}
	if businesses == nil {
		businesses = &mockBusinessSource{}
	}
	if reviews == nil {
		reviews = &mockReviewSource{}
	}
	return NewCatalogService(taxonomies, cars, shortlets, businesses, reviews, validator.NewCatalogValidator(), testConfig())
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

func validCarInput() *model.CarListingInput {
	return &model.CarListingInput{
		Address:     "12 Adeola Odeku Street, Victoria Island",
		ProductName: "Toyota Camry 2021",
		Amenities:   []string{" Air Conditioning ", "Bluetooth"},
		TypeOfCar:   "Sedan",
		CarModel:    "Camry",
		PricePerDay: 25000,
	}
}

func TestCreateCarListing(t *testing.T) {
	taxonomies := &mockTaxonomyRepository{}
	var created *model.CarListing
	cars := &mockCarListingRepository{
		createFunc: func(ctx context.Context, listing *model.CarListing) error {
			created = listing
			return nil
		},
	}
	svc := newTestService(taxonomies, cars, nil, nil, nil)

	listing, err := svc.CreateCarListing(context.Background(), uuid.NewString(), validCarInput())
	if err != nil {
		t.Fatalf("CreateCarListing() error = %v", err)
	}

	if created == nil {
		t.Fatal("listing was not persisted")
	}
	if listing.Status != model.ListingStatusPending {
		t.Errorf("status = %q, want %q", listing.Status, model.ListingStatusPending)
	}
	if listing.BusinessID == "" {
		t.Error("listing must carry the owner's business id")
	}
	if len(listing.AmenityIDs) != 2 {
		t.Errorf("amenity ids = %d, want 2", len(listing.AmenityIDs))
	}
	if listing.CarTypeID == "" || listing.CarModelID == "" {
		t.Error("car type and model labels must resolve to ids")
	}

	// labels are normalized before resolution
	want := string(model.TaxonomyAmenity) + ":air conditioning"
	found := false
	for _, call := range taxonomies.getOrCreateCalls {
		if call == want {
			found = true
		}
	}
	if !found {
		t.Errorf("GetOrCreate calls = %v, want one %q", taxonomies.getOrCreateCalls, want)
	}
}

func TestCreateCarListing_NoBusinessProfile(t *testing.T) {
	businesses := &mockBusinessSource{
		findByUserFunc: func(ctx context.Context, userID string) ([]*model.UserBusiness, error) {
			return []*model.UserBusiness{}, nil
		},
	}
	svc := newTestService(nil, nil, nil, businesses, nil)

	_, err := svc.CreateCarListing(context.Background(), uuid.NewString(), validCarInput())
	assertAppErrorCode(t, err, apperrors.CodeNotFound)
}

func TestCreateCarListing_ValidationFailure(t *testing.T) {
	svc := newTestService(nil, nil, nil, nil, nil)

	input := validCarInput()
	input.ProductName = ""
	_, err := svc.CreateCarListing(context.Background(), uuid.NewString(), input)
	assertAppErrorCode(t, err, apperrors.CodeValidation)
}

func TestGetCarListing_EmbedsReviews(t *testing.T) {
	listingID := uuid.NewString()
	cars := &mockCarListingRepository{
		findByIDFunc: func(ctx context.Context, id string) (*model.CarListing, error) {
			return &model.CarListing{ID: id, ProductName: "Toyota Camry 2021"}, nil
		},
	}
	reviews := &mockReviewSource{
		findByListingFunc: func(ctx context.Context, kind model.ListingKind, id string) ([]*model.Review, error) {
			if kind != model.ListingKindCar {
				t.Errorf("kind = %q, want %q", kind, model.ListingKindCar)
			}
			return []*model.Review{{ID: uuid.NewString(), ListingID: id, Rating: 4}}, nil
		},
	}
	svc := newTestService(nil, cars, nil, nil, reviews)

	detail, err := svc.GetCarListing(context.Background(), listingID)
	if err != nil {
		t.Fatalf("GetCarListing() error = %v", err)
	}
	if len(detail.Reviews) != 1 {
		t.Fatalf("reviews = %d, want 1", len(detail.Reviews))
	}
}

func TestListCarListings_UnknownFilterValuesShortCircuit(t *testing.T) {
	tests := []struct {
		name   string
		filter model.CarListingFilter
	}{
		{
			name:   "unknown amenity label",
			filter: model.CarListingFilter{Amenities: []string{"submarine dock"}},
		},
		{
			name:   "car type fragment with no match",
			filter: model.CarListingFilter{TypeOfCar: "zeppelin"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cars := &mockCarListingRepository{
				findByUserFunc: func(ctx context.Context, userID string, query repository.CarListingQuery) ([]*model.CarListing, error) {
					t.Fatal("listings collection must not be queried")
					return nil, nil
				},
			}
			svc := newTestService(&mockTaxonomyRepository{}, cars, nil, nil, nil)

			listings, err := svc.ListCarListings(context.Background(), uuid.NewString(), tt.filter)
			if err != nil {
				t.Fatalf("ListCarListings() error = %v", err)
			}
			if len(listings) != 0 {
				t.Fatalf("listings = %d, want 0", len(listings))
			}
		})
	}
}

func TestListCarListings_ResolvesFilters(t *testing.T) {
	amenityID := uuid.NewString()
	typeID := uuid.NewString()
	taxonomies := &mockTaxonomyRepository{
		findByLabelFunc: func(ctx context.Context, kind model.TaxonomyKind, label string) (*model.TaxonomyItem, error) {
			return &model.TaxonomyItem{ID: amenityID, Label: label}, nil
		},
		findIDsFunc: func(ctx context.Context, kind model.TaxonomyKind, fragment string) ([]string, error) {
			return []string{typeID}, nil
		},
	}

	var got repository.CarListingQuery
	cars := &mockCarListingRepository{
		findByUserFunc: func(ctx context.Context, userID string, query repository.CarListingQuery) ([]*model.CarListing, error) {
			got = query
			return []*model.CarListing{}, nil
		},
	}
	svc := newTestService(taxonomies, cars, nil, nil, nil)

	approved := true
	_, err := svc.ListCarListings(context.Background(), uuid.NewString(), model.CarListingFilter{
		Amenities:  []string{"Air Conditioning"},
		TypeOfCar:  "sed",
		IsApproved: &approved,
	})
	if err != nil {
		t.Fatalf("ListCarListings() error = %v", err)
	}

	if len(got.AmenityIDs) != 1 || got.AmenityIDs[0] != amenityID {
		t.Errorf("amenity ids = %v, want [%s]", got.AmenityIDs, amenityID)
	}
	if len(got.CarTypeIDs) != 1 || got.CarTypeIDs[0] != typeID {
		t.Errorf("car type ids = %v, want [%s]", got.CarTypeIDs, typeID)
	}
	if got.IsApproved == nil || !*got.IsApproved {
		t.Error("is_approved flag not forwarded")
	}
}

func TestListShortletListings_EmbedsReviews(t *testing.T) {
	listingID := uuid.NewString()
	shortlets := &mockShortletListingRepository{
		findByUserFunc: func(ctx context.Context, userID string, query repository.ShortletListingQuery) ([]*model.ShortletListing, error) {
			return []*model.ShortletListing{{ID: listingID, ProductName: "Lekki Studio"}}, nil
		},
	}
	reviews := &mockReviewSource{
		findByListingFunc: func(ctx context.Context, kind model.ListingKind, id string) ([]*model.Review, error) {
			if kind != model.ListingKindShortlet {
				t.Errorf("kind = %q, want %q", kind, model.ListingKindShortlet)
			}
			return []*model.Review{{ID: uuid.NewString(), ListingID: id, Rating: 5}}, nil
		},
	}
	svc := newTestService(nil, nil, shortlets, nil, reviews)

	details, err := svc.ListShortletListings(context.Background(), uuid.NewString(), model.ShortletListingFilter{})
	if err != nil {
		t.Fatalf("ListShortletListings() error = %v", err)
	}
	if len(details) != 1 {
		t.Fatalf("listings = %d, want 1", len(details))
	}
	if len(details[0].Reviews) != 1 {
		t.Fatalf("reviews = %d, want 1", len(details[0].Reviews))
	}
	// A review lookup failure costs the array, never the request.
	reviews.findByListingFunc = func(ctx context.Context, kind model.ListingKind, id string) ([]*model.Review, error) {
		return nil, fmt.Errorf("reviews unavailable")
	}
	details, err = svc.ListShortletListings(context.Background(), uuid.NewString(), model.ShortletListingFilter{})
	if err != nil {
		t.Fatalf("ListShortletListings() error = %v", err)
	}
	if details[0].Reviews == nil {
		t.Error("reviews must render as an empty array, not null")
	}
}

func TestListCarListings_EmbedsReviews(t *testing.T) {
	listingID := uuid.NewString()
	cars := &mockCarListingRepository{
		findByUserFunc: func(ctx context.Context, userID string, query repository.CarListingQuery) ([]*model.CarListing, error) {
			return []*model.CarListing{{ID: listingID, ProductName: "Toyota Camry 2021"}}, nil
		},
	}
	reviews := &mockReviewSource{
		findByListingFunc: func(ctx context.Context, kind model.ListingKind, id string) ([]*model.Review, error) {
			if id != listingID {
				t.Errorf("listing id = %q, want %q", id, listingID)
			}
			return []*model.Review{{ID: uuid.NewString(), ListingID: id, Rating: 3}}, nil
		},
	}
	svc := newTestService(nil, cars, nil, nil, reviews)

	details, err := svc.ListCarListings(context.Background(), uuid.NewString(), model.CarListingFilter{})
	if err != nil {
		t.Fatalf("ListCarListings() error = %v", err)
	}
	if len(details) != 1 || len(details[0].Reviews) != 1 {
		t.Fatalf("expected one listing with one embedded review, got %d listings", len(details))
	}
}

func TestResolveListing(t *testing.T) {
	carID := uuid.NewString()
	ownerID := uuid.NewString()
	cars := &mockCarListingRepository{
		findByIDFunc: func(ctx context.Context, id string) (*model.CarListing, error) {
			if id != carID {
				return nil, fmt.Errorf("%w: %s", catalogerrors.ErrNotFound, id)
			}
			return &model.CarListing{ID: id, UserID: ownerID, ProductName: "Toyota Camry 2021"}, nil
		},
	}
	svc := newTestService(nil, cars, nil, nil, nil)

	ref, err := svc.ResolveListing(context.Background(), model.ListingKindCar, carID)
	if err != nil {
		t.Fatalf("ResolveListing() error = %v", err)
	}
	if ref.OwnerID != ownerID {
		t.Errorf("owner id = %q, want %q", ref.OwnerID, ownerID)
	}

	_, err = svc.ResolveListing(context.Background(), model.ListingKindCar, uuid.NewString())
	if !errors.Is(err, catalogerrors.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}

	_, err = svc.ResolveListing(context.Background(), model.ListingKind("boat_listing"), carID)
	if !errors.Is(err, catalogerrors.ErrInvalidKind) {
		t.Fatalf("expected ErrInvalidKind, got %v", err)
	}
}

func TestCreateTaxonomy(t *testing.T) {
	svc := newTestService(nil, nil, nil, nil, nil)

	items, err := svc.CreateTaxonomy(context.Background(), model.TaxonomyAmenity, []*model.TaxonomyItem{
		{Label: "  Air   Conditioning "},
	})
	if err != nil {
		t.Fatalf("CreateTaxonomy() error = %v", err)
	}
	if items[0].Label != "air conditioning" {
		t.Errorf("label not normalized: %q", items[0].Label)
	}

	_, err = svc.CreateTaxonomy(context.Background(), model.TaxonomyAmenity, nil)
	assertAppErrorCode(t, err, apperrors.CodeInvalidInput)
}

func TestCreateTaxonomy_DuplicateLabel(t *testing.T) {
	taxonomies := &mockTaxonomyRepository{
		createManyFunc: func(ctx context.Context, kind model.TaxonomyKind, items []*model.TaxonomyItem) error {
			return fmt.Errorf("%w: %s", catalogerrors.ErrDuplicateLabel, kind)
		},
	}
	svc := newTestService(taxonomies, nil, nil, nil, nil)

	_, err := svc.CreateTaxonomy(context.Background(), model.TaxonomyAmenity, []*model.TaxonomyItem{
		{Label: "wifi"},
	})
	assertAppErrorCode(t, err, apperrors.CodeConflict)
}
