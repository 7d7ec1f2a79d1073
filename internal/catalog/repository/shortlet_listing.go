package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	catalogerrors "tripdey/internal/catalog/errors"
	"tripdey/pkg/config"
	"tripdey/pkg/model"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const (
	ShortletListingCollectionName = "shortlet_listings"
)

type ShortletListingRepository interface {
	Create(ctx context.Context, listing *model.ShortletListing) error
	FindByID(ctx context.Context, id string) (*model.ShortletListing, error)
	FindByUser(ctx context.Context, userID string, query ShortletListingQuery) ([]*model.ShortletListing, error)
	UpdateOwned(ctx context.Context, id, userID string, listing *model.ShortletListing) error
	DeleteOwned(ctx context.Context, id, userID string) error

	RemoveForUser(ctx context.Context, userID string) error
}

type mongoShortletListingRepository struct {
	cfg        *config.Config
	collection *mongo.Collection
}

func NewMongoShortletListingRepository(cfg *config.Config) ShortletListingRepository {
	db := cfg.Client.Mongo.Database(cfg.MongoDatabaseName)
	return &mongoShortletListingRepository{
		cfg:        cfg,
		collection: db.Collection(ShortletListingCollectionName),
	}
}

func (r *mongoShortletListingRepository) Create(ctx context.Context, listing *model.ShortletListing) error {
	ctx, cancel := context.WithTimeout(ctx, r.cfg.WriteTimeout)
	defer cancel()

	if listing.ID == "" {
		listing.ID = uuid.NewString()
	}
	now := time.Now().UTC().Truncate(time.Millisecond)
	listing.CreatedOn = now
	listing.UpdatedOn = now

	if _, err := r.collection.InsertOne(ctx, listing); err != nil {
		return fmt.Errorf("failed to create shortlet listing: %w", err)
	}
	return nil
}

func (r *mongoShortletListingRepository) FindByID(ctx context.Context, id string) (*model.ShortletListing, error) {
	ctx, cancel := context.WithTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	if _, err := uuid.Parse(id); err != nil {
		return nil, fmt.Errorf("%w: %s", catalogerrors.ErrInvalidID, id)
	}

	var listing model.ShortletListing
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&listing)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, fmt.Errorf("%w: %s", catalogerrors.ErrNotFound, id)
		}
		return nil, fmt.Errorf("failed to find shortlet listing: %w", err)
	}
	return &listing, nil
}

func (r *mongoShortletListingRepository) FindByUser(ctx context.Context, userID string, query ShortletListingQuery) ([]*model.ShortletListing, error) {
	ctx, cancel := context.WithTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "created_on", Value: -1}})
	cursor, err := r.collection.Find(ctx, query.build(userID), opts)
	if err != nil {
		return nil, fmt.Errorf("failed to query shortlet listings: %w", err)
	}
	defer cursor.Close(ctx)

	listings := []*model.ShortletListing{}
	if err = cursor.All(ctx, &listings); err != nil {
		return nil, fmt.Errorf("failed to decode shortlet listings: %w", err)
	}
	return listings, nil
}

func (r *mongoShortletListingRepository) UpdateOwned(ctx context.Context, id, userID string, listing *model.ShortletListing) error {
	ctx, cancel := context.WithTimeout(ctx, r.cfg.WriteTimeout)
	defer cancel()

	if _, err := uuid.Parse(id); err != nil {
		return fmt.Errorf("%w: %s", catalogerrors.ErrInvalidID, id)
	}

	set := bson.M{
		"address":                listing.Address,
		"landmark_1":             listing.Landmark1,
		"landmark_2":             listing.Landmark2,
		"landmark_3":             listing.Landmark3,
		"product_name":           listing.ProductName,
		"product_description":    listing.ProductDescription,
		"thumbnails":             listing.Thumbnails,
		"specification_ids":      listing.SpecificationIDs,
		"amenity_ids":            listing.AmenityIDs,
		"type_of_apartment":      listing.TypeOfApartment,
		"utility_service_staffs": listing.UtilityServiceStaffs,
		"max_guests":             listing.MaxGuests,
		"price_per_day":          listing.PricePerDay,
		"discount":               listing.Discount,
		"discount_option_id":     listing.DiscountOptionID,
		"discount_price":         listing.DiscountPrice,
		"proof_of_ownership":     listing.ProofOfOwnership,
		"updated_on":             time.Now().UTC().Truncate(time.Millisecond),
	}

	result, err := r.collection.UpdateOne(ctx, bson.M{"_id": id, "user_id": userID}, bson.M{"$set": set})
	if err != nil {
		return fmt.Errorf("failed to update shortlet listing: %w", err)
	}
	if result.MatchedCount == 0 {
		return fmt.Errorf("%w: %s", catalogerrors.ErrNotFound, id)
	}
	return nil
}

func (r *mongoShortletListingRepository) DeleteOwned(ctx context.Context, id, userID string) error {
	ctx, cancel := context.WithTimeout(ctx, r.cfg.WriteTimeout)
	defer cancel()

	if _, err := uuid.Parse(id); err != nil {
		return fmt.Errorf("%w: %s", catalogerrors.ErrInvalidID, id)
	}

	result, err := r.collection.DeleteOne(ctx, bson.M{"_id": id, "user_id": userID})
	if err != nil {
		return fmt.Errorf("failed to delete shortlet listing: %w", err)
	}
	if result.DeletedCount == 0 {
		return fmt.Errorf("%w: %s", catalogerrors.ErrNotFound, id)
	}
	return nil
}

func (r *mongoShortletListingRepository) RemoveForUser(ctx context.Context, userID string) error {
	ctx, cancel := context.WithTimeout(ctx, r.cfg.WriteTimeout)
	defer cancel()

	if _, err := r.collection.DeleteMany(ctx, bson.M{"user_id": userID}); err != nil {
		return fmt.Errorf("failed to remove shortlet listings for user: %w", err)
	}
	return nil
}
