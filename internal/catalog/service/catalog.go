package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	catalogerrors "tripdey/internal/catalog/errors"
	"tripdey/internal/catalog/repository"
	"tripdey/internal/catalog/validator"
	"tripdey/pkg/config"
	apperrors "tripdey/pkg/errors"
	"tripdey/pkg/model"
	"tripdey/pkg/sanitizer"
	"tripdey/pkg/validation"
)

// BusinessSource supplies the requester's business profiles. Listings can
// only be created by users with at least one.
type BusinessSource interface {
	FindByUser(ctx context.Context, userID string) ([]*model.UserBusiness, error)
}

// ReviewSource supplies the reviews embedded in listing detail responses.
type ReviewSource interface {
	FindByListing(ctx context.Context, kind model.ListingKind, listingID string) ([]*model.Review, error)
}

type CarListingDetail struct {
	*model.CarListing
	Reviews []*model.Review `json:"reviews"`
}

type ShortletListingDetail struct {
	*model.ShortletListing
	Reviews []*model.Review `json:"reviews"`
}

type CatalogService interface {
	ListTaxonomy(ctx context.Context, kind model.TaxonomyKind) ([]*model.TaxonomyItem, error)
	GetTaxonomy(ctx context.Context, kind model.TaxonomyKind, id string) (*model.TaxonomyItem, error)
	CreateTaxonomy(ctx context.Context, kind model.TaxonomyKind, items []*model.TaxonomyItem) ([]*model.TaxonomyItem, error)
	UpdateTaxonomy(ctx context.Context, kind model.TaxonomyKind, id string, item *model.TaxonomyItem) (*model.TaxonomyItem, error)
	DeleteTaxonomy(ctx context.Context, kind model.TaxonomyKind, id string) error

	CreateCarListing(ctx context.Context, userID string, input *model.CarListingInput) (*model.CarListing, error)
	GetCarListing(ctx context.Context, id string) (*CarListingDetail, error)
	ListCarListings(ctx context.Context, userID string, filter model.CarListingFilter) ([]*CarListingDetail, error)
	UpdateCarListing(ctx context.Context, id, userID string, input *model.CarListingInput) (*model.CarListing, error)
	DeleteCarListing(ctx context.Context, id, userID string) error

	CreateShortletListing(ctx context.Context, userID string, input *model.ShortletListingInput) (*model.ShortletListing, error)
	GetShortletListing(ctx context.Context, id string) (*ShortletListingDetail, error)
	ListShortletListings(ctx context.Context, userID string, filter model.ShortletListingFilter) ([]*ShortletListingDetail, error)
	UpdateShortletListing(ctx context.Context, id, userID string, input *model.ShortletListingInput) (*model.ShortletListing, error)
	DeleteShortletListing(ctx context.Context, id, userID string) error

	// ResolveListing turns a polymorphic (kind, id) reference into a ListingRef.
	// Callers map the sentinel errors into their own domain responses.
	ResolveListing(ctx context.Context, kind model.ListingKind, id string) (*model.ListingRef, error)
}

type catalogService struct {
	taxonomies repository.TaxonomyRepository
	cars       repository.CarListingRepository
	shortlets  repository.ShortletListingRepository
	businesses BusinessSource
	reviews    ReviewSource
	validator  *validator.CatalogValidator
	cfg        *config.Config
}

func NewCatalogService(
	taxonomies repository.TaxonomyRepository,
	cars repository.CarListingRepository,
	shortlets repository.ShortletListingRepository,
	businesses BusinessSource,
	reviews ReviewSource,
	validator *validator.CatalogValidator,
	cfg *config.Config,
) CatalogService {
	return &catalogService{
		taxonomies: taxonomies,
		cars:       cars,
		shortlets:  shortlets,
		businesses: businesses,
		reviews:    reviews,
		validator:  validator,
		cfg:        cfg,
	}
}

func (s *catalogService) ListTaxonomy(ctx context.Context, kind model.TaxonomyKind) ([]*model.TaxonomyItem, error) {
	items, err := s.taxonomies.FindAll(ctx, kind)
	if err != nil {
		return nil, apperrors.Internal(fmt.Sprintf("Failed to retrieve %s items", strings.ToLower(kind.Resource())), err)
	}
	return items, nil
}

func (s *catalogService) GetTaxonomy(ctx context.Context, kind model.TaxonomyKind, id string) (*model.TaxonomyItem, error) {
	item, err := s.taxonomies.FindByID(ctx, kind, id)
	if err != nil {
		return nil, s.mapTaxonomyError(err, kind, id)
	}
	return item, nil
}

func (s *catalogService) CreateTaxonomy(ctx context.Context, kind model.TaxonomyKind, items []*model.TaxonomyItem) ([]*model.TaxonomyItem, error) {
	if len(items) == 0 {
		return nil, apperrors.InvalidInput("At least one item is required")
	}

	for _, item := range items {
		item.Label = sanitizer.NormalizeLabel(item.Label)
		if err := s.validator.Validate(item); err != nil {
			return nil, asValidationError(err)
		}
	}

	if err := s.taxonomies.CreateMany(ctx, kind, items); err != nil {
		return nil, s.mapTaxonomyError(err, kind, "")
	}
	return items, nil
}

func (s *catalogService) UpdateTaxonomy(ctx context.Context, kind model.TaxonomyKind, id string, item *model.TaxonomyItem) (*model.TaxonomyItem, error) {
	item.Label = sanitizer.NormalizeLabel(item.Label)
	if err := s.validator.Validate(item); err != nil {
		return nil, asValidationError(err)
	}

	if err := s.taxonomies.Update(ctx, kind, id, item); err != nil {
		return nil, s.mapTaxonomyError(err, kind, id)
	}

	updated, err := s.taxonomies.FindByID(ctx, kind, id)
	if err != nil {
		return nil, s.mapTaxonomyError(err, kind, id)
	}
	return updated, nil
}

func (s *catalogService) DeleteTaxonomy(ctx context.Context, kind model.TaxonomyKind, id string) error {
	if err := s.taxonomies.Delete(ctx, kind, id); err != nil {
		return s.mapTaxonomyError(err, kind, id)
	}
	return nil
}

func (s *catalogService) CreateCarListing(ctx context.Context, userID string, input *model.CarListingInput) (*model.CarListing, error) {
	if err := s.validator.Validate(input); err != nil {
		return nil, asValidationError(err)
	}

	businessID, err := s.requireBusiness(ctx, userID)
	if err != nil {
		return nil, err
	}

	listing := &model.CarListing{
		UserID:     userID,
		BusinessID: businessID,
		Status:     model.ListingStatusPending,
	}
	if err := s.applyCarInput(ctx, listing, input); err != nil {
		return nil, err
	}

	if err := s.cars.Create(ctx, listing); err != nil {
		return nil, apperrors.Internal("Failed to create car listing", err)
	}
	return listing, nil
}

func (s *catalogService) GetCarListing(ctx context.Context, id string) (*CarListingDetail, error) {
	listing, err := s.cars.FindByID(ctx, id)
	if err != nil {
		return nil, s.mapListingError(err, id)
	}

	return &CarListingDetail{
		CarListing: listing,
		Reviews:    s.listingReviews(ctx, model.ListingKindCar, listing.ID),
	}, nil
}

func (s *catalogService) ListCarListings(ctx context.Context, userID string, filter model.CarListingFilter) ([]*CarListingDetail, error) {
	query := repository.CarListingQuery{
		ProductName: sanitizer.TrimAndNormalize(filter.ProductName),
		Address:     sanitizer.TrimAndNormalize(filter.Address),
		Status:      strings.ToUpper(strings.TrimSpace(filter.Status)),
		IsApproved:  filter.IsApproved,
		IsBooked:    filter.IsBooked,
	}

	amenityIDs, empty, err := s.resolveAmenityFilter(ctx, filter.Amenities)
	if err != nil {
		return nil, err
	}
	if empty {
		return []*CarListingDetail{}, nil
	}
	query.AmenityIDs = amenityIDs

	if fragment := strings.TrimSpace(filter.TypeOfCar); fragment != "" {
		ids, err := s.taxonomies.FindIDsByLabelContains(ctx, model.TaxonomyCarType, fragment)
		if err != nil {
			return nil, apperrors.Internal("Failed to resolve car type filter", err)
		}
		if len(ids) == 0 {
			return []*CarListingDetail{}, nil
		}
		query.CarTypeIDs = ids
	}

	if fragment := strings.TrimSpace(filter.CarModel); fragment != "" {
		ids, err := s.taxonomies.FindIDsByLabelContains(ctx, model.TaxonomyCarModel, fragment)
		if err != nil {
			return nil, apperrors.Internal("Failed to resolve car model filter", err)
		}
		if len(ids) == 0 {
			return []*CarListingDetail{}, nil
		}
		query.CarModelIDs = ids
	}

	listings, err := s.cars.FindByUser(ctx, userID, query)
	if err != nil {
		return nil, apperrors.Internal("Failed to retrieve car listings", err)
	}

	details := make([]*CarListingDetail, 0, len(listings))
	for _, listing := range listings {
		details = append(details, &CarListingDetail{
			CarListing: listing,
			Reviews:    s.listingReviews(ctx, model.ListingKindCar, listing.ID),
		})
	}
	return details, nil
}

func (s *catalogService) UpdateCarListing(ctx context.Context, id, userID string, input *model.CarListingInput) (*model.CarListing, error) {
	if err := s.validator.Validate(input); err != nil {
		return nil, asValidationError(err)
	}

	listing := &model.CarListing{}
	if err := s.applyCarInput(ctx, listing, input); err != nil {
		return nil, err
	}

	if err := s.cars.UpdateOwned(ctx, id, userID, listing); err != nil {
		return nil, s.mapListingError(err, id)
	}

	updated, err := s.cars.FindByID(ctx, id)
	if err != nil {
		return nil, s.mapListingError(err, id)
	}
	return updated, nil
}

func (s *catalogService) DeleteCarListing(ctx context.Context, id, userID string) error {
	if err := s.cars.DeleteOwned(ctx, id, userID); err != nil {
		return s.mapListingError(err, id)
	}
	return nil
}

func (s *catalogService) CreateShortletListing(ctx context.Context, userID string, input *model.ShortletListingInput) (*model.ShortletListing, error) {
	if err := s.validator.Validate(input); err != nil {
		return nil, asValidationError(err)
	}

	businessID, err := s.requireBusiness(ctx, userID)
	if err != nil {
		return nil, err
	}

	listing := &model.ShortletListing{
		UserID:     userID,
		BusinessID: businessID,
		Status:     model.ListingStatusPending,
	}
	if err := s.applyShortletInput(ctx, listing, input); err != nil {
		return nil, err
	}

	if err := s.shortlets.Create(ctx, listing); err != nil {
		return nil, apperrors.Internal("Failed to create shortlet listing", err)
	}
	return listing, nil
}

func (s *catalogService) GetShortletListing(ctx context.Context, id string) (*ShortletListingDetail, error) {
	listing, err := s.shortlets.FindByID(ctx, id)
	if err != nil {
		return nil, s.mapListingError(err, id)
	}

	return &ShortletListingDetail{
		ShortletListing: listing,
		Reviews:         s.listingReviews(ctx, model.ListingKindShortlet, listing.ID),
	}, nil
}

func (s *catalogService) ListShortletListings(ctx context.Context, userID string, filter model.ShortletListingFilter) ([]*ShortletListingDetail, error) {
	query := repository.ShortletListingQuery{
		ProductName:     sanitizer.TrimAndNormalize(filter.ProductName),
		Address:         sanitizer.TrimAndNormalize(filter.Address),
		TypeOfApartment: sanitizer.TrimAndNormalize(filter.TypeOfApartment),
		Status:          strings.ToUpper(strings.TrimSpace(filter.Status)),
		IsApproved:      filter.IsApproved,
		IsBooked:        filter.IsBooked,
	}

	amenityIDs, empty, err := s.resolveAmenityFilter(ctx, filter.Amenities)
	if err != nil {
		return nil, err
	}
	if empty {
		return []*ShortletListingDetail{}, nil
	}
	query.AmenityIDs = amenityIDs

	listings, err := s.shortlets.FindByUser(ctx, userID, query)
	if err != nil {
		return nil, apperrors.Internal("Failed to retrieve shortlet listings", err)
	}

	details := make([]*ShortletListingDetail, 0, len(listings))
	for _, listing := range listings {
		details = append(details, &ShortletListingDetail{
			ShortletListing: listing,
			Reviews:         s.listingReviews(ctx, model.ListingKindShortlet, listing.ID),
		})
	}
	return details, nil
}

func (s *catalogService) UpdateShortletListing(ctx context.Context, id, userID string, input *model.ShortletListingInput) (*model.ShortletListing, error) {
	if err := s.validator.Validate(input); err != nil {
		return nil, asValidationError(err)
	}

	listing := &model.ShortletListing{}
	if err := s.applyShortletInput(ctx, listing, input); err != nil {
		return nil, err
	}

	if err := s.shortlets.UpdateOwned(ctx, id, userID, listing); err != nil {
		return nil, s.mapListingError(err, id)
	}

	updated, err := s.shortlets.FindByID(ctx, id)
	if err != nil {
		return nil, s.mapListingError(err, id)
	}
	return updated, nil
}

func (s *catalogService) DeleteShortletListing(ctx context.Context, id, userID string) error {
	if err := s.shortlets.DeleteOwned(ctx, id, userID); err != nil {
		return s.mapListingError(err, id)
	}
	return nil
}

func (s *catalogService) ResolveListing(ctx context.Context, kind model.ListingKind, id string) (*model.ListingRef, error) {
	switch kind {
	case model.ListingKindCar:
		listing, err := s.cars.FindByID(ctx, id)
		if err != nil {
			return nil, err
		}
		return &model.ListingRef{
			Kind:       kind,
			ID:         listing.ID,
			OwnerID:    listing.UserID,
			BusinessID: listing.BusinessID,
			Name:       listing.ProductName,
			IsBooked:   listing.IsBooked,
		}, nil
	case model.ListingKindShortlet:
		listing, err := s.shortlets.FindByID(ctx, id)
		if err != nil {
			return nil, err
		}
		return &model.ListingRef{
			Kind:       kind,
			ID:         listing.ID,
			OwnerID:    listing.UserID,
			BusinessID: listing.BusinessID,
			Name:       listing.ProductName,
			IsBooked:   listing.IsBooked,
		}, nil
	}
	return nil, fmt.Errorf("%w: %q", catalogerrors.ErrInvalidKind, kind)
}

// listingReviews loads the reviews embedded in a listing response. A
// review lookup failure never fails the listing request, it only costs
// the embedded array.
func (s *catalogService) listingReviews(ctx context.Context, kind model.ListingKind, listingID string) []*model.Review {
	reviews, err := s.reviews.FindByListing(ctx, kind, listingID)
	if err != nil {
		s.cfg.Log.Error("failed to load reviews for listing", "listing_id", listingID, "error", err)
		return []*model.Review{}
	}
	return reviews
}

// requireBusiness returns the id of the requester's business profile. Users
// without one cannot own listings.
func (s *catalogService) requireBusiness(ctx context.Context, userID string) (string, error) {
	businesses, err := s.businesses.FindByUser(ctx, userID)
	if err != nil {
		return "", apperrors.Internal("Failed to verify business profile", err)
	}
	if len(businesses) == 0 {
		return "", apperrors.NotFound("Business profile")
	}
	return businesses[0].ID, nil
}

// applyCarInput copies the write shape onto the listing, resolving every
// label-addressed sub-resource get-or-create.
func (s *catalogService) applyCarInput(ctx context.Context, listing *model.CarListing, input *model.CarListingInput) error {
	listing.Address = sanitizer.TrimAndNormalize(input.Address)
	listing.Landmark1 = sanitizer.TrimAndNormalize(input.Landmark1)
	listing.Landmark2 = sanitizer.TrimAndNormalize(input.Landmark2)
	listing.Landmark3 = sanitizer.TrimAndNormalize(input.Landmark3)
	listing.ProductName = sanitizer.NormalizeName(input.ProductName)
	listing.ProductDescription = sanitizer.TrimAndNormalize(input.ProductDescription)
	listing.Thumbnails = input.Thumbnails
	listing.IsDriver = input.IsDriver
	listing.PricePerDay = input.PricePerDay
	listing.Discount = sanitizer.TrimAndNormalize(input.Discount)
	listing.DiscountPrice = input.DiscountPrice
	listing.ProofOfOwnership = strings.TrimSpace(input.ProofOfOwnership)

	var err error
	if listing.SpecificationIDs, err = s.resolveLabels(ctx, model.TaxonomySpecification, input.Specifications); err != nil {
		return err
	}
	if listing.AmenityIDs, err = s.resolveLabels(ctx, model.TaxonomyAmenity, input.Amenities); err != nil {
		return err
	}
	if listing.CarTypeID, err = s.resolveLabel(ctx, model.TaxonomyCarType, input.TypeOfCar); err != nil {
		return err
	}
	if listing.CarModelID, err = s.resolveLabel(ctx, model.TaxonomyCarModel, input.CarModel); err != nil {
		return err
	}
	if listing.DiscountOptionID, err = s.resolveLabel(ctx, model.TaxonomyDiscountOption, input.DiscountOption); err != nil {
		return err
	}
	return nil
}

func (s *catalogService) applyShortletInput(ctx context.Context, listing *model.ShortletListing, input *model.ShortletListingInput) error {
	listing.Address = sanitizer.TrimAndNormalize(input.Address)
	listing.Landmark1 = sanitizer.TrimAndNormalize(input.Landmark1)
	listing.Landmark2 = sanitizer.TrimAndNormalize(input.Landmark2)
	listing.Landmark3 = sanitizer.TrimAndNormalize(input.Landmark3)
	listing.ProductName = sanitizer.NormalizeName(input.ProductName)
	listing.ProductDescription = sanitizer.TrimAndNormalize(input.ProductDescription)
	listing.Thumbnails = input.Thumbnails
	listing.TypeOfApartment = sanitizer.NormalizeName(input.TypeOfApartment)
	listing.UtilityServiceStaffs = sanitizer.TrimAndNormalize(input.UtilityServiceStaffs)
	listing.MaxGuests = input.MaxGuests
	listing.PricePerDay = input.PricePerDay
	listing.Discount = sanitizer.TrimAndNormalize(input.Discount)
	listing.DiscountPrice = input.DiscountPrice
	listing.ProofOfOwnership = strings.TrimSpace(input.ProofOfOwnership)

	var err error
	if listing.SpecificationIDs, err = s.resolveLabels(ctx, model.TaxonomySpecification, input.Specifications); err != nil {
		return err
	}
	if listing.AmenityIDs, err = s.resolveLabels(ctx, model.TaxonomyAmenity, input.Amenities); err != nil {
		return err
	}
	if listing.DiscountOptionID, err = s.resolveLabel(ctx, model.TaxonomyDiscountOption, input.DiscountOption); err != nil {
		return err
	}
	return nil
}

func (s *catalogService) resolveLabel(ctx context.Context, kind model.TaxonomyKind, label string) (string, error) {
	label = sanitizer.NormalizeLabel(label)
	if label == "" {
		return "", nil
	}
	item, err := s.taxonomies.GetOrCreate(ctx, kind, label)
	if err != nil {
		return "", apperrors.Internal(fmt.Sprintf("Failed to resolve %s", strings.ToLower(kind.Resource())), err)
	}
	return item.ID, nil
}

func (s *catalogService) resolveLabels(ctx context.Context, kind model.TaxonomyKind, labels []string) ([]string, error) {
	normalized := sanitizer.NormalizeLabels(labels)
	if len(normalized) == 0 {
		return nil, nil
	}

	ids := make([]string, 0, len(normalized))
	for _, label := range normalized {
		item, err := s.taxonomies.GetOrCreate(ctx, kind, label)
		if err != nil {
			return nil, apperrors.Internal(fmt.Sprintf("Failed to resolve %s", strings.ToLower(kind.Resource())), err)
		}
		ids = append(ids, item.ID)
	}
	return ids, nil
}

// resolveAmenityFilter maps amenity labels to ids for a listing query. A
// label no amenity carries cannot match any listing, so the whole query is
// known-empty without hitting the listings collection.
func (s *catalogService) resolveAmenityFilter(ctx context.Context, labels []string) (ids []string, emptyResult bool, err error) {
	for _, label := range sanitizer.NormalizeLabels(labels) {
		item, err := s.taxonomies.FindByLabel(ctx, model.TaxonomyAmenity, label)
		if err != nil {
			if errors.Is(err, catalogerrors.ErrLabelNotFound) {
				return nil, true, nil
			}
			return nil, false, apperrors.Internal("Failed to resolve amenities filter", err)
		}
		ids = append(ids, item.ID)
	}
	return ids, false, nil
}

func (s *catalogService) mapListingError(err error, id string) error {
	switch {
	case errors.Is(err, catalogerrors.ErrNotFound):
		return apperrors.NotFoundWithID("Listing", id)
	case errors.Is(err, catalogerrors.ErrInvalidID):
		return apperrors.InvalidInput("Invalid listing ID format")
	default:
		return apperrors.Internal("An unexpected error occurred", err)
	}
}

func (s *catalogService) mapTaxonomyError(err error, kind model.TaxonomyKind, id string) error {
	switch {
	case errors.Is(err, catalogerrors.ErrLabelNotFound):
		if id == "" {
			return apperrors.NotFound(kind.Resource())
		}
		return apperrors.NotFoundWithID(kind.Resource(), id)
	case errors.Is(err, catalogerrors.ErrInvalidID):
		return apperrors.InvalidInput(fmt.Sprintf("Invalid %s ID format", strings.ToLower(kind.Resource())))
	case errors.Is(err, catalogerrors.ErrDuplicateLabel):
		return apperrors.Conflict("One or more labels already exist")
	default:
		return apperrors.Internal("An unexpected error occurred", err)
	}
}

func asValidationError(err error) error {
	var fieldErrors validation.FieldErrors
	if errors.As(err, &fieldErrors) {
		return apperrors.Validation("Validation failed", fieldErrors.Details())
	}
	return apperrors.Validation(err.Error(), nil)
}
