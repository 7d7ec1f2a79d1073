package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	businesserrors "tripdey/internal/business/errors"
	"tripdey/pkg/config"
	"tripdey/pkg/model"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const (
	CollectionName = "user_businesses"
)

type mongoBusinessRepository struct {
	cfg        *config.Config
	collection *mongo.Collection
}

type BusinessRepository interface {
	Create(ctx context.Context, business *model.UserBusiness) error
	FindByID(ctx context.Context, id string) (*model.UserBusiness, error)
	FindByUser(ctx context.Context, userID string) ([]*model.UserBusiness, error)
	UpdateOwned(ctx context.Context, id, userID string, business *model.UserBusiness) error
	DeleteOwned(ctx context.Context, id, userID string) error
	CountByUser(ctx context.Context, userID string) (int64, error)

	RemoveForUser(ctx context.Context, userID string) error
}

func NewMongoBusinessRepository(cfg *config.Config) BusinessRepository {
	db := cfg.Client.Mongo.Database(cfg.MongoDatabaseName)
	return &mongoBusinessRepository{
		cfg:        cfg,
		collection: db.Collection(CollectionName),
	}
}

func (r *mongoBusinessRepository) Create(ctx context.Context, business *model.UserBusiness) error {
	ctx, cancel := context.WithTimeout(ctx, r.cfg.WriteTimeout)
	defer cancel()

	if business.ID == "" {
		business.ID = uuid.NewString()
	}
	now := time.Now().UTC().Truncate(time.Millisecond)
	business.CreatedOn = now
	business.UpdatedOn = now

	if _, err := r.collection.InsertOne(ctx, business); err != nil {
		return fmt.Errorf("failed to create business: %w", err)
	}

	return nil
}

func (r *mongoBusinessRepository) FindByID(ctx context.Context, id string) (*model.UserBusiness, error) {
	ctx, cancel := context.WithTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	if _, err := uuid.Parse(id); err != nil {
		return nil, fmt.Errorf("%w: %s", businesserrors.ErrInvalidID, id)
	}

	var business model.UserBusiness
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&business)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, fmt.Errorf("%w: %s", businesserrors.ErrNotFound, id)
		}
		return nil, fmt.Errorf("failed to find business: %w", err)
	}
	return &business, nil
}

func (r *mongoBusinessRepository) FindByUser(ctx context.Context, userID string) ([]*model.UserBusiness, error) {
	ctx, cancel := context.WithTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "created_on", Value: -1}})
	cursor, err := r.collection.Find(ctx, bson.M{"user_id": userID}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to query businesses: %w", err)
	}
	defer cursor.Close(ctx)

	var businesses []*model.UserBusiness
	if err = cursor.All(ctx, &businesses); err != nil {
		return nil, fmt.Errorf("failed to decode businesses: %w", err)
	}

	return businesses, nil
}

// UpdateOwned filters on both id and owner so another user's business is
// indistinguishable from a missing one.
func (r *mongoBusinessRepository) UpdateOwned(ctx context.Context, id, userID string, business *model.UserBusiness) error {
	ctx, cancel := context.WithTimeout(ctx, r.cfg.WriteTimeout)
	defer cancel()

	if _, err := uuid.Parse(id); err != nil {
		return fmt.Errorf("%w: %s", businesserrors.ErrInvalidID, id)
	}

	set := bson.M{
		"business_name":        business.BusinessName,
		"category_ids":         business.CategoryIDs,
		"business_country":     business.BusinessCountry,
		"business_state":       business.BusinessState,
		"business_postal_code": business.BusinessPostalCode,
		"business_city":        business.BusinessCity,
		"updated_on":           time.Now().UTC().Truncate(time.Millisecond),
	}

	result, err := r.collection.UpdateOne(ctx, bson.M{"_id": id, "user_id": userID}, bson.M{"$set": set})
	if err != nil {
		return fmt.Errorf("failed to update business: %w", err)
	}
	if result.MatchedCount == 0 {
		return fmt.Errorf("%w: %s", businesserrors.ErrNotFound, id)
	}

	return nil
}

func (r *mongoBusinessRepository) DeleteOwned(ctx context.Context, id, userID string) error {
	ctx, cancel := context.WithTimeout(ctx, r.cfg.WriteTimeout)
	defer cancel()

	if _, err := uuid.Parse(id); err != nil {
		return fmt.Errorf("%w: %s", businesserrors.ErrInvalidID, id)
	}

	result, err := r.collection.DeleteOne(ctx, bson.M{"_id": id, "user_id": userID})
	if err != nil {
		return fmt.Errorf("failed to delete business: %w", err)
	}
	if result.DeletedCount == 0 {
		return fmt.Errorf("%w: %s", businesserrors.ErrNotFound, id)
	}

	return nil
}

func (r *mongoBusinessRepository) CountByUser(ctx context.Context, userID string) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	count, err := r.collection.CountDocuments(ctx, bson.M{"user_id": userID})
	if err != nil {
		return 0, fmt.Errorf("failed to count businesses: %w", err)
	}
	return count, nil
}

func (r *mongoBusinessRepository) RemoveForUser(ctx context.Context, userID string) error {
	ctx, cancel := context.WithTimeout(ctx, r.cfg.WriteTimeout)
	defer cancel()

	if _, err := r.collection.DeleteMany(ctx, bson.M{"user_id": userID}); err != nil {
		return fmt.Errorf("failed to remove businesses for user: %w", err)
	}
	return nil
}
