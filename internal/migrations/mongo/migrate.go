package mongo

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"tripdey/internal/migrations/mongo/validators"
)

var (
	UserIndexes = []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "email", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
	}

	// Revoked refresh tokens expire from storage together with the token
	// itself.
	RevokedTokenIndexes = []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "expires_at", Value: 1}},
			Options: options.Index().SetExpireAfterSeconds(0),
		},
	}

	UserBusinessIndexes = []mongo.IndexModel{
		{Keys: bson.D{{Key: "user_id", Value: 1}}},
	}

	BusinessCategoryIndexes = []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "text", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
	}

	// The unique label index backs get-or-create: repositories treat a
	// duplicate-key error on insert as a lost race and re-fetch.
	TaxonomyIndexes = []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "label", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
	}

	CarListingIndexes = []mongo.IndexModel{
		{Keys: bson.D{{Key: "user_id", Value: 1}, {Key: "created_on", Value: -1}}},
		{Keys: bson.D{{Key: "amenity_ids", Value: 1}}},
		{Keys: bson.D{{Key: "car_type_id", Value: 1}}},
		{Keys: bson.D{{Key: "car_model_id", Value: 1}}},
	}

	ShortletListingIndexes = []mongo.IndexModel{
		{Keys: bson.D{{Key: "user_id", Value: 1}, {Key: "created_on", Value: -1}}},
		{Keys: bson.D{{Key: "amenity_ids", Value: 1}}},
	}

	BookingIndexes = []mongo.IndexModel{
		{Keys: bson.D{{Key: "user_id", Value: 1}, {Key: "created_on", Value: -1}}},
		{Keys: bson.D{{Key: "listing_kind", Value: 1}, {Key: "listing_id", Value: 1}}},
		{Keys: bson.D{{Key: "owner_id", Value: 1}}},
	}

	ReviewIndexes = []mongo.IndexModel{
		{Keys: bson.D{{Key: "listing_kind", Value: 1}, {Key: "listing_id", Value: 1}, {Key: "created_on", Value: -1}}},
		{Keys: bson.D{{Key: "user_id", Value: 1}}},
	}

	MembershipIndexes = []mongo.IndexModel{
		{Keys: bson.D{{Key: "price", Value: 1}}},
	}

	SubscriptionIndexes = []mongo.IndexModel{
		{Keys: bson.D{{Key: "user_id", Value: 1}, {Key: "active", Value: 1}}},
	}
)

type collectionDef struct {
	Indexes   []mongo.IndexModel
	Validator bson.M
}

func collectionDefs() map[string]collectionDef {
	defs := map[string]collectionDef{
		"users":               {Indexes: UserIndexes, Validator: validators.UserValidator},
		"revoked_tokens":      {Indexes: RevokedTokenIndexes, Validator: validators.RevokedTokenValidator},
		"user_businesses":     {Indexes: UserBusinessIndexes, Validator: validators.UserBusinessValidator},
		"business_categories": {Indexes: BusinessCategoryIndexes, Validator: validators.BusinessCategoryValidator},
		"car_listings":        {Indexes: CarListingIndexes, Validator: validators.CarListingValidator},
		"shortlet_listings":   {Indexes: ShortletListingIndexes, Validator: validators.ShortletListingValidator},
		"bookings":            {Indexes: BookingIndexes, Validator: validators.BookingValidator},
		"reviews":             {Indexes: ReviewIndexes, Validator: validators.ReviewValidator},
		"memberships":         {Indexes: MembershipIndexes, Validator: validators.MembershipValidator},
		"subscriptions":       {Indexes: SubscriptionIndexes, Validator: validators.SubscriptionValidator},
	}

	for _, name := range []string{"amenities", "specifications", "discount_options", "car_types", "car_models"} {
		defs[name] = collectionDef{Indexes: TaxonomyIndexes, Validator: validators.TaxonomyValidator}
	}
	return defs
}

func RunMigration(ctx context.Context, client *mongo.Client, dbName string) error {
	db := client.Database(dbName)
	fmt.Printf("🚀 Running tripdey Mongo migrations on database: %s\n", dbName)

	for name, def := range collectionDefs() {
		if err := ensureCollection(ctx, db, name, def.Validator); err != nil {
			return fmt.Errorf("failed to ensure collection %s: %w", name, err)
		}
		if err := ensureIndexes(ctx, db, name, def.Indexes); err != nil {
			return fmt.Errorf("failed to ensure indexes for %s: %w", name, err)
		}
	}

	fmt.Println("✅ All migrations applied successfully.")
	return nil
}

func ensureCollection(ctx context.Context, db *mongo.Database, name string, validator bson.M) error {
	existing, err := db.ListCollectionNames(ctx, bson.D{{Key: "name", Value: name}})
	if err != nil {
		return err
	}

	if len(existing) == 0 {
		fmt.Printf("🆕 Creating collection: %s\n", name)
		opts := options.CreateCollection().SetValidator(validator)
		if err := db.CreateCollection(ctx, name, opts); err != nil {
			return fmt.Errorf("failed creating %s: %w", name, err)
		}
	} else {
		fmt.Printf("ℹ️ Collection %s already exists — updating validator if needed\n", name)
		command := bson.D{
			{Key: "collMod", Value: name},
			{Key: "validator", Value: validator},
		}
		if err := db.RunCommand(ctx, command).Err(); err != nil {
			fmt.Printf("⚠️ Warning: failed updating validator for %s: %v\n", name, err)
		}
	}

	return nil
}

func ensureIndexes(ctx context.Context, db *mongo.Database, name string, models []mongo.IndexModel) error {
	if len(models) == 0 {
		return nil
	}

	coll := db.Collection(name)
	_, err := coll.Indexes().CreateMany(ctx, models)
	if err != nil {
		return err
	}
	fmt.Printf("📚 Ensured indexes for %s\n", name)
	return nil
}
