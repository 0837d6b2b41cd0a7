package repository

import (
	"context"
	"fmt"
	"time"

	"skyfare/internal/domain/repository"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// kvDocument is one stored key
type kvDocument struct {
	Key       string    `bson:"key"`
	Value     []byte    `bson:"value"`
	UpdatedAt time.Time `bson:"updatedAt"`
}

// MongoKVRepository implements KeyValueRepository on a MongoDB collection
type MongoKVRepository struct {
	collection *mongo.Collection
}

// NewMongoKVRepository creates a new key/value repository in the given
// collection (one collection per device/profile namespace)
func NewMongoKVRepository(ctx context.Context, db *mongo.Database, collectionName string) (repository.KeyValueRepository, error) {
	collection := db.Collection(collectionName)

	// Create unique index on key
	indexModel := mongo.IndexModel{
		Keys:    bson.M{"key": 1},
		Options: options.Index().SetUnique(true),
	}
	if _, err := collection.Indexes().CreateOne(ctx, indexModel); err != nil {
		return nil, fmt.Errorf("failed to create key index: %w", err)
	}

	return &MongoKVRepository{
		collection: collection,
	}, nil
}

// Get finds a value by key
func (r *MongoKVRepository) Get(ctx context.Context, key string) ([]byte, error) {
	var doc kvDocument
	err := r.collection.FindOne(ctx, bson.M{"key": key}).Decode(&doc)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find key: %w", err)
	}
	if doc.Value == nil {
		return []byte{}, nil
	}
	return doc.Value, nil
}

// Set creates or updates a key
func (r *MongoKVRepository) Set(ctx context.Context, key string, value []byte) error {
	opts := options.Update().SetUpsert(true)
	filter := bson.M{"key": key}

	_, err := r.collection.UpdateOne(
		ctx,
		filter,
		bson.M{"$set": bson.M{
			"key":       key,
			"value":     value,
			"updatedAt": time.Now(),
		}},
		opts,
	)
	if err != nil {
		return fmt.Errorf("failed to upsert key: %w", err)
	}
	return nil
}

// Delete removes a key
func (r *MongoKVRepository) Delete(ctx context.Context, key string) error {
	if _, err := r.collection.DeleteOne(ctx, bson.M{"key": key}); err != nil {
		return fmt.Errorf("failed to delete key: %w", err)
	}
	return nil
}
