package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"tripdey/pkg/config"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

const (
	RevokedTokenCollectionName = "revoked_tokens"
)

type revokedToken struct {
	JTI       string    `bson:"_id"`
	UserID    string    `bson:"user_id"`
	RevokedAt time.Time `bson:"revoked_at"`
	ExpiresAt time.Time `bson:"expires_at"`
}

// TokenRepository persists revoked refresh token ids. The migrate job
// puts a TTL index on expires_at so records vanish once the token they
// block would have expired anyway.
type TokenRepository interface {
	Revoke(ctx context.Context, jti, userID string, expiresAt time.Time) error
	IsRevoked(ctx context.Context, jti string) (bool, error)
}

type mongoTokenRepository struct {
	cfg        *config.Config
	collection *mongo.Collection
}

func NewMongoTokenRepository(cfg *config.Config) TokenRepository {
	db := cfg.Client.Mongo.Database(cfg.MongoDatabaseName)
	return &mongoTokenRepository{
		cfg:        cfg,
		collection: db.Collection(RevokedTokenCollectionName),
	}
}

func (r *mongoTokenRepository) Revoke(ctx context.Context, jti, userID string, expiresAt time.Time) error {
	ctx, cancel := context.WithTimeout(ctx, r.cfg.WriteTimeout)
	defer cancel()

	_, err := r.collection.InsertOne(ctx, revokedToken{
		JTI:       jti,
		UserID:    userID,
		RevokedAt: time.Now().UTC(),
		ExpiresAt: expiresAt,
	})
	if err != nil {
		// Revoking twice is a no-op.
		if mongo.IsDuplicateKeyError(err) {
			return nil
		}
		return fmt.Errorf("failed to revoke token: %w", err)
	}

	return nil
}

func (r *mongoTokenRepository) IsRevoked(ctx context.Context, jti string) (bool, error) {
	ctx, cancel := context.WithTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	err := r.collection.FindOne(ctx, bson.M{"_id": jti}).Err()
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return false, nil
		}
		return false, fmt.Errorf("failed to check token revocation: %w", err)
	}
	return true, nil
}
