package repository

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// EnsureMongoIndexes creates the secondary indexes used by the owner and
// location filters.  Index creation is idempotent for identical definitions.
func EnsureMongoIndexes(ctx context.Context, db *mongo.Database) error {
	_, err := db.Collection(InventoryCollection).Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "user_id", Value: 1}, {Key: "location_id", Value: 1}},
	})
	if err != nil {
		return fmt.Errorf("inventory index: %w", err)
	}
	_, err = db.Collection(LocationCollection).Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "zip_code", Value: 1}},
	})
	if err != nil {
		return fmt.Errorf("location index: %w", err)
	}
	return nil
}
