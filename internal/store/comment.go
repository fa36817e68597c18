package store

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"github.com/blogifyhq/blogify/internal/model/blog"
)

// CommentStore persists flat comments keyed to posts.
type CommentStore struct {
	coll  *mongo.Collection
	users *mongo.Collection
}

func NewCommentStore(db *mongo.Database) *CommentStore {
	return &CommentStore{
		coll:  db.Collection(collComments),
		users: db.Collection(collUsers),
	}
}

// Create inserts a comment and returns it with the generated id.
func (s *CommentStore) Create(ctx context.Context, c blog.Comment) (blog.Comment, error) {
	c.CreatedAt = time.Now().UTC()

	res, err := s.coll.InsertOne(ctx, c)
	if err != nil {
		return blog.Comment{}, fmt.Errorf("insert comment: %w", err)
	}
	c.ID = res.InsertedID.(bson.ObjectID)
	return c, nil
}

// ListByBlog returns a post's comments newest first, with author names.
func (s *CommentStore) ListByBlog(ctx context.Context, blogID bson.ObjectID) ([]blog.CommentWithAuthor, error) {
	cursor, err := s.coll.Find(ctx, bson.M{"blogId": blogID},
		options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}}))
	if err != nil {
		return nil, fmt.Errorf("list comments: %w", err)
	}

	var comments []blog.Comment
	if err := cursor.All(ctx, &comments); err != nil {
		return nil, fmt.Errorf("decode comments: %w", err)
	}

	ids := make([]bson.ObjectID, 0, len(comments))
	for _, c := range comments {
		ids = append(ids, c.CreatedBy)
	}
	names, err := authorNames(ctx, s.users, ids)
	if err != nil {
		return nil, err
	}

	out := make([]blog.CommentWithAuthor, 0, len(comments))
	for _, c := range comments {
		name := names[c.CreatedBy]
		if name == "" {
			name = "Anonymous"
		}
		out = append(out, blog.CommentWithAuthor{Comment: c, AuthorName: name})
	}
	return out, nil
}

// DeleteByBlog removes every comment on a post. Used by the delete cascade.
func (s *CommentStore) DeleteByBlog(ctx context.Context, blogID bson.ObjectID) error {
	_, err := s.coll.DeleteMany(ctx, bson.M{"blogId": blogID})
	if err != nil {
		return fmt.Errorf("delete comments: %w", err)
	}
	return nil
}
