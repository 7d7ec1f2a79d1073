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
	CategoryCollectionName = "business_categories"
)

type mongoCategoryRepository struct {
	cfg        *config.Config
	collection *mongo.Collection
}

type CategoryRepository interface {
	FindAll(ctx context.Context) ([]*model.BusinessCategory, error)
	FindByID(ctx context.Context, id string) (*model.BusinessCategory, error)
	CreateMany(ctx context.Context, categories []*model.BusinessCategory) error
	Update(ctx context.Context, id string, category *model.BusinessCategory) error
	Delete(ctx context.Context, id string) error
}

func NewMongoCategoryRepository(cfg *config.Config) CategoryRepository {
	db := cfg.Client.Mongo.Database(cfg.MongoDatabaseName)
	return &mongoCategoryRepository{
		cfg:        cfg,
		collection: db.Collection(CategoryCollectionName),
	}
}

func (r *mongoCategoryRepository) FindAll(ctx context.Context) ([]*model.BusinessCategory, error) {
	ctx, cancel := context.WithTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "text", Value: 1}})
	cursor, err := r.collection.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to query categories: %w", err)
	}
	defer cursor.Close(ctx)

	var categories []*model.BusinessCategory
	if err = cursor.All(ctx, &categories); err != nil {
		return nil, fmt.Errorf("failed to decode categories: %w", err)
	}

	return categories, nil
}

func (r *mongoCategoryRepository) FindByID(ctx context.Context, id string) (*model.BusinessCategory, error) {
	ctx, cancel := context.WithTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	if _, err := uuid.Parse(id); err != nil {
		return nil, fmt.Errorf("%w: %s", businesserrors.ErrInvalidID, id)
	}

	var category model.BusinessCategory
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&category)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, fmt.Errorf("%w: %s", businesserrors.ErrCategoryNotFound, id)
		}
		return nil, fmt.Errorf("failed to find category: %w", err)
	}
	return &category, nil
}

func (r *mongoCategoryRepository) CreateMany(ctx context.Context, categories []*model.BusinessCategory) error {
	ctx, cancel := context.WithTimeout(ctx, r.cfg.WriteTimeout)
	defer cancel()

	now := time.Now().UTC().Truncate(time.Millisecond)
	docs := make([]any, 0, len(categories))
	for _, category := range categories {
		if category.ID == "" {
			category.ID = uuid.NewString()
		}
		category.CreatedOn = now
		category.UpdatedOn = now
		docs = append(docs, category)
	}

	if _, err := r.collection.InsertMany(ctx, docs); err != nil {
		return fmt.Errorf("failed to create categories: %w", err)
	}

	return nil
}

func (r *mongoCategoryRepository) Update(ctx context.Context, id string, category *model.BusinessCategory) error {
	ctx, cancel := context.WithTimeout(ctx, r.cfg.WriteTimeout)
	defer cancel()

	if _, err := uuid.Parse(id); err != nil {
		return fmt.Errorf("%w: %s", businesserrors.ErrInvalidID, id)
	}

	set := bson.M{
		"text":       category.Text,
		"updated_on": time.Now().UTC().Truncate(time.Millisecond),
	}

	result, err := r.collection.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": set})
	if err != nil {
		return fmt.Errorf("failed to update category: %w", err)
	}
	if result.MatchedCount == 0 {
		return fmt.Errorf("%w: %s", businesserrors.ErrCategoryNotFound, id)
	}

	return nil
}

func (r *mongoCategoryRepository) Delete(ctx context.Context, id string) error {
	ctx, cancel := context.WithTimeout(ctx, r.cfg.WriteTimeout)
	defer cancel()

	if _, err := uuid.Parse(id); err != nil {
		return fmt.Errorf("%w: %s", businesserrors.ErrInvalidID, id)
	}

	result, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("failed to delete category: %w", err)
	}
	if result.DeletedCount == 0 {
		return fmt.Errorf("%w: %s", businesserrors.ErrCategoryNotFound, id)
	}

	return nil
}
