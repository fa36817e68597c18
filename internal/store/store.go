package store

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"github.com/blogifyhq/blogify/internal/config"
)

// ErrDuplicateEmail reports a signup against an already-registered email.
var ErrDuplicateEmail = errors.New("email already registered")

const (
	collSessions = "chat_sessions"
	collBlogs    = "blogs"
	collComments = "comments"
	collUsers    = "users"
)

// Connect establishes and verifies the MongoDB connection.
func Connect(ctx context.Context, cfg config.MongoConfig) (*mongo.Client, error) {
	client, err := mongo.Connect(options.Client().ApplyURI(cfg.URI))
	if err != nil {
		return nil, fmt.Errorf("connect mongodb: %w", err)
	}

	if err := client.Ping(ctx, nil); err != nil {
		return nil, fmt.Errorf("ping mongodb: %w", err)
	}

	return client, nil
}

// EnsureIndexes creates the indexes every collection relies on. Safe to call
// on every startup.
func EnsureIndexes(ctx context.Context, db *mongo.Database) error {
	_, err := db.Collection(collSessions).Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "sessionId", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		return fmt.Errorf("index %s.sessionId: %w", collSessions, err)
	}

	_, err = db.Collection(collUsers).Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "email", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		return fmt.Errorf("index %s.email: %w", collUsers, err)
	}

	_, err = db.Collection(collBlogs).Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "createdAt", Value: -1}},
	})
	if err != nil {
		return fmt.Errorf("index %s.createdAt: %w", collBlogs, err)
	}

	_, err = db.Collection(collComments).Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "blogId", Value: 1}},
	})
	if err != nil {
		return fmt.Errorf("index %s.blogId: %w", collComments, err)
	}

	return nil
}
