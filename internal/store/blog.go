package store

import (
	"context"
	"fmt"
	"regexp"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"github.com/blogifyhq/blogify/internal/model/blog"
)

// BlogStore persists posts and resolves author display names for listings
// and chat context.
type BlogStore struct {
	coll  *mongo.Collection
	users *mongo.Collection
}

func NewBlogStore(db *mongo.Database) *BlogStore {
	return &BlogStore{
		coll:  db.Collection(collBlogs),
		users: db.Collection(collUsers),
	}
}

// Create inserts a post and returns it with the generated id.
func (s *BlogStore) Create(ctx context.Context, b blog.Blog) (blog.Blog, error) {
	now := time.Now().UTC()
	b.CreatedAt = now
	b.UpdatedAt = now

	res, err := s.coll.InsertOne(ctx, b)
	if err != nil {
		return blog.Blog{}, fmt.Errorf("insert blog: %w", err)
	}
	b.ID = res.InsertedID.(bson.ObjectID)
	return b, nil
}

// FindByID returns one post.
func (s *BlogStore) FindByID(ctx context.Context, id bson.ObjectID) (blog.Blog, error) {
	var b blog.Blog
	err := s.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&b)
	if err != nil {
		return blog.Blog{}, err
	}
	return b, nil
}

// FindByIDWithAuthor returns one post with its author name resolved.
func (s *BlogStore) FindByIDWithAuthor(ctx context.Context, id bson.ObjectID) (blog.WithAuthor, error) {
	b, err := s.FindByID(ctx, id)
	if err != nil {
		return blog.WithAuthor{}, err
	}

	resolved, err := s.withAuthors(ctx, []blog.Blog{b})
	if err != nil {
		return blog.WithAuthor{}, err
	}
	return resolved[0], nil
}

// List returns all posts newest first, with author names resolved.
func (s *BlogStore) List(ctx context.Context) ([]blog.WithAuthor, error) {
	cursor, err := s.coll.Find(ctx, bson.M{},
		options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}}))
	if err != nil {
		return nil, fmt.Errorf("list blogs: %w", err)
	}

	var blogs []blog.Blog
	if err := cursor.All(ctx, &blogs); err != nil {
		return nil, fmt.Errorf("decode blogs: %w", err)
	}
	return s.withAuthors(ctx, blogs)
}

// SearchByKeyword finds posts whose title or body contains the keyword as a
// case-insensitive substring, newest first, capped at limit.
func (s *BlogStore) SearchByKeyword(ctx context.Context, keyword string, limit int) ([]blog.WithAuthor, error) {
	pattern := regexp.QuoteMeta(keyword)
	filter := bson.M{"$or": bson.A{
		bson.M{"title": bson.M{"$regex": pattern, "$options": "i"}},
		bson.M{"body": bson.M{"$regex": pattern, "$options": "i"}},
	}}

	cursor, err := s.coll.Find(ctx, filter,
		options.Find().
			SetSort(bson.D{{Key: "createdAt", Value: -1}}).
			SetLimit(int64(limit)))
	if err != nil {
		return nil, fmt.Errorf("search blogs: %w", err)
	}

	var blogs []blog.Blog
	if err := cursor.All(ctx, &blogs); err != nil {
		return nil, fmt.Errorf("decode blogs: %w", err)
	}
	return s.withAuthors(ctx, blogs)
}

// Delete removes one post.
func (s *BlogStore) Delete(ctx context.Context, id bson.ObjectID) error {
	_, err := s.coll.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("delete blog: %w", err)
	}
	return nil
}

// withAuthors joins author display names in one users query. Authors whose
// accounts are gone render as "Anonymous".
func (s *BlogStore) withAuthors(ctx context.Context, blogs []blog.Blog) ([]blog.WithAuthor, error) {
	names, err := authorNames(ctx, s.users, authorIDs(blogs))
	if err != nil {
		return nil, err
	}

	out := make([]blog.WithAuthor, 0, len(blogs))
	for _, b := range blogs {
		name := names[b.CreatedBy]
		if name == "" {
			name = "Anonymous"
		}
		out = append(out, blog.WithAuthor{Blog: b, AuthorName: name})
	}
	return out, nil
}

func authorIDs(blogs []blog.Blog) []bson.ObjectID {
	ids := make([]bson.ObjectID, 0, len(blogs))
	for _, b := range blogs {
		ids = append(ids, b.CreatedBy)
	}
	return ids
}

// authorNames maps user ids to full names for the given id set.
func authorNames(ctx context.Context, users *mongo.Collection, ids []bson.ObjectID) (map[bson.ObjectID]string, error) {
	names := make(map[bson.ObjectID]string, len(ids))
	if len(ids) == 0 {
		return names, nil
	}

	cursor, err := users.Find(ctx, bson.M{"_id": bson.M{"$in": ids}})
	if err != nil {
		return nil, fmt.Errorf("resolve authors: %w", err)
	}

	var docs []struct {
		ID       bson.ObjectID `bson:"_id"`
		FullName string        `bson:"fullName"`
	}
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("decode authors: %w", err)
	}

	for _, doc := range docs {
		names[doc.ID] = doc.FullName
	}
	return names, nil
}
