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
	CarListingCollectionName = "car_listings"
)

type CarListingRepository interface {
	Create(ctx context.Context, listing *model.CarListing) error
	FindByID(ctx context.Context, id string) (*model.CarListing, error)
	FindByUser(ctx context.Context, userID string, query CarListingQuery) ([]*model.CarListing, error)
	UpdateOwned(ctx context.Context, id, userID string, listing *model.CarListing) error
	DeleteOwned(ctx context.Context, id, userID string) error

	RemoveForUser(ctx context.Context, userID string) error
}

type mongoCarListingRepository struct {
	cfg        *config.Config
	collection *mongo.Collection
}

func NewMongoCarListingRepository(cfg *config.Config) CarListingRepository {
	db := cfg.Client.Mongo.Database(cfg.MongoDatabaseName)
	return &mongoCarListingRepository{
		cfg:        cfg,
		collection: db.Collection(CarListingCollectionName),
	}
}

func (r *mongoCarListingRepository) Create(ctx context.Context, listing *model.CarListing) error {
	ctx, cancel := context.WithTimeout(ctx, r.cfg.WriteTimeout)
	defer cancel()

	if listing.ID == "" {
		listing.ID = uuid.NewString()
	}
	now := time.Now().UTC().Truncate(time.Millisecond)
	listing.CreatedOn = now
	listing.UpdatedOn = now

	if _, err := r.collection.InsertOne(ctx, listing); err != nil {
		return fmt.Errorf("failed to create car listing: %w", err)
	}
	return nil
}

func (r *mongoCarListingRepository) FindByID(ctx context.Context, id string) (*model.CarListing, error) {
	ctx, cancel := context.WithTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	if _, err := uuid.Parse(id); err != nil {
		return nil, fmt.Errorf("%w: %s", catalogerrors.ErrInvalidID, id)
	}

	var listing model.CarListing
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&listing)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, fmt.Errorf("%w: %s", catalogerrors.ErrNotFound, id)
		}
		return nil, fmt.Errorf("failed to find car listing: %w", err)
	}
	return &listing, nil
}

func (r *mongoCarListingRepository) FindByUser(ctx context.Context, userID string, query CarListingQuery) ([]*model.CarListing, error) {
	ctx, cancel := context.WithTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "created_on", Value: -1}})
	cursor, err := r.collection.Find(ctx, query.build(userID), opts)
	if err != nil {
		return nil, fmt.Errorf("failed to query car listings: %w", err)
	}
	defer cursor.Close(ctx)

	listings := []*model.CarListing{}
	if err = cursor.All(ctx, &listings); err != nil {
		return nil, fmt.Errorf("failed to decode car listings: %w", err)
	}
	return listings, nil
}

// UpdateOwned filters on both id and owner so another user's listing is
// indistinguishable from a missing one.
func (r *mongoCarListingRepository) UpdateOwned(ctx context.Context, id, userID string, listing *model.CarListing) error {
	ctx, cancel := context.WithTimeout(ctx, r.cfg.WriteTimeout)
	defer cancel()

	if _, err := uuid.Parse(id); err != nil {
		return fmt.Errorf("%w: %s", catalogerrors.ErrInvalidID, id)
	}

	set := bson.M{
		"address":             listing.Address,
		"landmark_1":          listing.Landmark1,
		"landmark_2":          listing.Landmark2,
		"landmark_3":          listing.Landmark3,
		"product_name":        listing.ProductName,
		"product_description": listing.ProductDescription,
		"thumbnails":          listing.Thumbnails,
		"specification_ids":   listing.SpecificationIDs,
		"amenity_ids":         listing.AmenityIDs,
		"car_type_id":         listing.CarTypeID,
		"car_model_id":        listing.CarModelID,
		"is_driver":           listing.IsDriver,
		"price_per_day":       listing.PricePerDay,
		"discount":            listing.Discount,
		"discount_option_id":  listing.DiscountOptionID,
		"discount_price":      listing.DiscountPrice,
		"proof_of_ownership":  listing.ProofOfOwnership,
		"updated_on":          time.Now().UTC().Truncate(time.Millisecond),
	}

	result, err := r.collection.UpdateOne(ctx, bson.M{"_id": id, "user_id": userID}, bson.M{"$set": set})
	if err != nil {
		return fmt.Errorf("failed to update car listing: %w", err)
	}
	if result.MatchedCount == 0 {
		return fmt.Errorf("%w: %s", catalogerrors.ErrNotFound, id)
	}
	return nil
}

func (r *mongoCarListingRepository) DeleteOwned(ctx context.Context, id, userID string) error {
	ctx, cancel := context.WithTimeout(ctx, r.cfg.WriteTimeout)
	defer cancel()

	if _, err := uuid.Parse(id); err != nil {
		return fmt.Errorf("%w: %s", catalogerrors.ErrInvalidID, id)
	}

	result, err := r.collection.DeleteOne(ctx, bson.M{"_id": id, "user_id": userID})
	if err != nil {
		return fmt.Errorf("failed to delete car listing: %w", err)
	}
	if result.DeletedCount == 0 {
		return fmt.Errorf("%w: %s", catalogerrors.ErrNotFound, id)
	}
	return nil
}

func (r *mongoCarListingRepository) RemoveForUser(ctx context.Context, userID string) error {
	ctx, cancel := context.WithTimeout(ctx, r.cfg.WriteTimeout)
	defer cancel()

	if _, err := r.collection.DeleteMany(ctx, bson.M{"user_id": userID}); err != nil {
		return fmt.Errorf("failed to remove car listings for user: %w", err)
	}
	return nil
}
