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

// TaxonomyRepository serves amenities, specifications, discount options,
// car types and car models. The five kinds share one document shape, each
// backed by its own collection.
type TaxonomyRepository interface {
	FindAll(ctx context.Context, kind model.TaxonomyKind) ([]*model.TaxonomyItem, error)
	FindByID(ctx context.Context, kind model.TaxonomyKind, id string) (*model.TaxonomyItem, error)
	FindByLabel(ctx context.Context, kind model.TaxonomyKind, label string) (*model.TaxonomyItem, error)
	FindIDsByLabelContains(ctx context.Context, kind model.TaxonomyKind, fragment string) ([]string, error)
	CreateMany(ctx context.Context, kind model.TaxonomyKind, items []*model.TaxonomyItem) error
	GetOrCreate(ctx context.Context, kind model.TaxonomyKind, label string) (*model.TaxonomyItem, error)
	Update(ctx context.Context, kind model.TaxonomyKind, id string, item *model.TaxonomyItem) error
	Delete(ctx context.Context, kind model.TaxonomyKind, id string) error
}

type mongoTaxonomyRepository struct {
	cfg *config.Config
	db  *mongo.Database
}

func NewMongoTaxonomyRepository(cfg *config.Config) TaxonomyRepository {
	return &mongoTaxonomyRepository{
		cfg: cfg,
		db:  cfg.Client.Mongo.Database(cfg.MongoDatabaseName),
	}
}

func (r *mongoTaxonomyRepository) collection(kind model.TaxonomyKind) *mongo.Collection {
	return r.db.Collection(kind.Collection())
}

func (r *mongoTaxonomyRepository) FindAll(ctx context.Context, kind model.TaxonomyKind) ([]*model.TaxonomyItem, error) {
	ctx, cancel := context.WithTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "label", Value: 1}})
	cursor, err := r.collection(kind).Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to query %s items: %w", kind, err)
	}
	defer cursor.Close(ctx)

	items := []*model.TaxonomyItem{}
	if err = cursor.All(ctx, &items); err != nil {
		return nil, fmt.Errorf("failed to decode %s items: %w", kind, err)
	}
	return items, nil
}

func (r *mongoTaxonomyRepository) FindByID(ctx context.Context, kind model.TaxonomyKind, id string) (*model.TaxonomyItem, error) {
	ctx, cancel := context.WithTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	if _, err := uuid.Parse(id); err != nil {
		return nil, fmt.Errorf("%w: %s", catalogerrors.ErrInvalidID, id)
	}

	var item model.TaxonomyItem
	err := r.collection(kind).FindOne(ctx, bson.M{"_id": id}).Decode(&item)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, fmt.Errorf("%w: %s", catalogerrors.ErrLabelNotFound, id)
		}
		return nil, fmt.Errorf("failed to find %s item: %w", kind, err)
	}
	return &item, nil
}

func (r *mongoTaxonomyRepository) FindByLabel(ctx context.Context, kind model.TaxonomyKind, label string) (*model.TaxonomyItem, error) {
	ctx, cancel := context.WithTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	var item model.TaxonomyItem
	err := r.collection(kind).FindOne(ctx, bson.M{"label": label}).Decode(&item)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, fmt.Errorf("%w: %s", catalogerrors.ErrLabelNotFound, label)
		}
		return nil, fmt.Errorf("failed to find %s item by label: %w", kind, err)
	}
	return &item, nil
}

// FindIDsByLabelContains resolves a case-insensitive label fragment into the
// ids of all matching items. Used to translate text filters into id filters
// on listing queries.
func (r *mongoTaxonomyRepository) FindIDsByLabelContains(ctx context.Context, kind model.TaxonomyKind, fragment string) ([]string, error) {
	ctx, cancel := context.WithTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	filter := bson.M{"label": bson.M{"$regex": regexEscape(fragment), "$options": "i"}}
	cursor, err := r.collection(kind).Find(ctx, filter, options.Find().SetProjection(bson.M{"_id": 1}))
	if err != nil {
		return nil, fmt.Errorf("failed to query %s items by label: %w", kind, err)
	}
	defer cursor.Close(ctx)

	var docs []struct {
		ID string `bson:"_id"`
	}
	if err = cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("failed to decode %s ids: %w", kind, err)
	}

	ids := make([]string, 0, len(docs))
	for _, doc := range docs {
		ids = append(ids, doc.ID)
	}
	return ids, nil
}

func (r *mongoTaxonomyRepository) CreateMany(ctx context.Context, kind model.TaxonomyKind, items []*model.TaxonomyItem) error {
	ctx, cancel := context.WithTimeout(ctx, r.cfg.WriteTimeout)
	defer cancel()

	now := time.Now().UTC().Truncate(time.Millisecond)
	docs := make([]interface{}, 0, len(items))
	for _, item := range items {
		if item.ID == "" {
			item.ID = uuid.NewString()
		}
		item.CreatedOn = now
		item.UpdatedOn = now
		docs = append(docs, item)
	}

	if _, err := r.collection(kind).InsertMany(ctx, docs); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return fmt.Errorf("%w: %s", catalogerrors.ErrDuplicateLabel, kind)
		}
		return fmt.Errorf("failed to create %s items: %w", kind, err)
	}
	return nil
}

// GetOrCreate returns the item carrying the given label, inserting it when
// missing. Labels carry a unique index, so a duplicate-key error on insert
// means another writer got there first and the item can be re-fetched.
func (r *mongoTaxonomyRepository) GetOrCreate(ctx context.Context, kind model.TaxonomyKind, label string) (*model.TaxonomyItem, error) {
	item, err := r.FindByLabel(ctx, kind, label)
	if err == nil {
		return item, nil
	}
	if !errors.Is(err, catalogerrors.ErrLabelNotFound) {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, r.cfg.WriteTimeout)
	defer cancel()

	now := time.Now().UTC().Truncate(time.Millisecond)
	fresh := &model.TaxonomyItem{
		ID:        uuid.NewString(),
		Label:     label,
		CreatedOn: now,
		UpdatedOn: now,
	}
	if _, err := r.collection(kind).InsertOne(ctx, fresh); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return r.FindByLabel(ctx, kind, label)
		}
		return nil, fmt.Errorf("failed to create %s item: %w", kind, err)
	}
	return fresh, nil
}

func (r *mongoTaxonomyRepository) Update(ctx context.Context, kind model.TaxonomyKind, id string, item *model.TaxonomyItem) error {
	ctx, cancel := context.WithTimeout(ctx, r.cfg.WriteTimeout)
	defer cancel()

	if _, err := uuid.Parse(id); err != nil {
		return fmt.Errorf("%w: %s", catalogerrors.ErrInvalidID, id)
	}

	set := bson.M{
		"label":      item.Label,
		"updated_on": time.Now().UTC().Truncate(time.Millisecond),
	}
	if item.Thumbnail != "" {
		set["thumbnail"] = item.Thumbnail
	}

	result, err := r.collection(kind).UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": set})
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return fmt.Errorf("%w: %s", catalogerrors.ErrDuplicateLabel, item.Label)
		}
		return fmt.Errorf("failed to update %s item: %w", kind, err)
	}
	if result.MatchedCount == 0 {
		return fmt.Errorf("%w: %s", catalogerrors.ErrLabelNotFound, id)
	}
	return nil
}

func (r *mongoTaxonomyRepository) Delete(ctx context.Context, kind model.TaxonomyKind, id string) error {
	ctx, cancel := context.WithTimeout(ctx, r.cfg.WriteTimeout)
	defer cancel()

	if _, err := uuid.Parse(id); err != nil {
		return fmt.Errorf("%w: %s", catalogerrors.ErrInvalidID, id)
	}

	result, err := r.collection(kind).DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("failed to delete %s item: %w", kind, err)
	}
	if result.DeletedCount == 0 {
		return fmt.Errorf("%w: %s", catalogerrors.ErrLabelNotFound, id)
	}
	return nil
}
