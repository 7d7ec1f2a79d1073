package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	subscriptionerrors "tripdey/internal/subscription/errors"
	"tripdey/pkg/config"
	"tripdey/pkg/model"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const (
	CollectionName           = "subscriptions"
	MembershipCollectionName = "memberships"
)

type SubscriptionRepository interface {
	Create(ctx context.Context, subscription *model.Subscription) error
	FindActiveByUser(ctx context.Context, userID string) (*model.Subscription, error)
	Deactivate(ctx context.Context, id string) error

	FindMemberships(ctx context.Context) ([]*model.UserMembership, error)
	FindMembershipByID(ctx context.Context, id string) (*model.UserMembership, error)
}

type mongoSubscriptionRepository struct {
	cfg           *config.Config
	subscriptions *mongo.Collection
	memberships   *mongo.Collection
}

func NewMongoSubscriptionRepository(cfg *config.Config) SubscriptionRepository {
	db := cfg.Client.Mongo.Database(cfg.MongoDatabaseName)
	return &mongoSubscriptionRepository{
		cfg:           cfg,
		subscriptions: db.Collection(CollectionName),
		memberships:   db.Collection(MembershipCollectionName),
	}
}

func (r *mongoSubscriptionRepository) Create(ctx context.Context, subscription *model.Subscription) error {
	ctx, cancel := context.WithTimeout(ctx, r.cfg.WriteTimeout)
	defer cancel()

	if subscription.ID == "" {
		subscription.ID = uuid.NewString()
	}
	subscription.CreatedOn = time.Now().UTC().Truncate(time.Millisecond)

	if _, err := r.subscriptions.InsertOne(ctx, subscription); err != nil {
		return fmt.Errorf("failed to create subscription: %w", err)
	}
	return nil
}

// FindActiveByUser returns the user's latest active subscription. Expiry is
// checked by the caller; the flag alone is not enough.
func (r *mongoSubscriptionRepository) FindActiveByUser(ctx context.Context, userID string) (*model.Subscription, error) {
	ctx, cancel := context.WithTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	opts := options.FindOne().SetSort(bson.D{{Key: "created_on", Value: -1}})
	var subscription model.Subscription
	err := r.subscriptions.FindOne(ctx, bson.M{"user_id": userID, "active": true}, opts).Decode(&subscription)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, fmt.Errorf("%w: user %s", subscriptionerrors.ErrNotFound, userID)
		}
		return nil, fmt.Errorf("failed to find subscription: %w", err)
	}
	return &subscription, nil
}

func (r *mongoSubscriptionRepository) Deactivate(ctx context.Context, id string) error {
	ctx, cancel := context.WithTimeout(ctx, r.cfg.WriteTimeout)
	defer cancel()

	result, err := r.subscriptions.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": bson.M{"active": false}})
	if err != nil {
		return fmt.Errorf("failed to deactivate subscription: %w", err)
	}
	if result.MatchedCount == 0 {
		return fmt.Errorf("%w: %s", subscriptionerrors.ErrNotFound, id)
	}
	return nil
}

func (r *mongoSubscriptionRepository) FindMemberships(ctx context.Context) ([]*model.UserMembership, error) {
	ctx, cancel := context.WithTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "price", Value: 1}})
	cursor, err := r.memberships.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to query memberships: %w", err)
	}
	defer cursor.Close(ctx)

	memberships := []*model.UserMembership{}
	if err = cursor.All(ctx, &memberships); err != nil {
		return nil, fmt.Errorf("failed to decode memberships: %w", err)
	}
	return memberships, nil
}

func (r *mongoSubscriptionRepository) FindMembershipByID(ctx context.Context, id string) (*model.UserMembership, error) {
	ctx, cancel := context.WithTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	if _, err := uuid.Parse(id); err != nil {
		return nil, fmt.Errorf("%w: %s", subscriptionerrors.ErrInvalidID, id)
	}

	var membership model.UserMembership
	err := r.memberships.FindOne(ctx, bson.M{"_id": id}).Decode(&membership)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, fmt.Errorf("%w: %s", subscriptionerrors.ErrMembershipNotFound, id)
		}
		return nil, fmt.Errorf("failed to find membership: %w", err)
	}
	return &membership, nil
}
