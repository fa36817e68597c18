package blog

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.uber.org/zap"

	blogmodel "github.com/blogifyhq/blogify/internal/model/blog"
	"github.com/blogifyhq/blogify/internal/service/storage"
)

var (
	ErrNotFound     = errors.New("blog post not found")
	ErrForbidden    = errors.New("not the author of this blog post")
	ErrInvalidInput = errors.New("title and body are required")
)

// Blogs is the post persistence capability this service consumes.
type Blogs interface {
	Create(ctx context.Context, b blogmodel.Blog) (blogmodel.Blog, error)
	FindByID(ctx context.Context, id bson.ObjectID) (blogmodel.Blog, error)
	FindByIDWithAuthor(ctx context.Context, id bson.ObjectID) (blogmodel.WithAuthor, error)
	List(ctx context.Context) ([]blogmodel.WithAuthor, error)
	Delete(ctx context.Context, id bson.ObjectID) error
}

// Comments is the comment persistence capability.
type Comments interface {
	Create(ctx context.Context, c blogmodel.Comment) (blogmodel.Comment, error)
	ListByBlog(ctx context.Context, blogID bson.ObjectID) ([]blogmodel.CommentWithAuthor, error)
	DeleteByBlog(ctx context.Context, blogID bson.ObjectID) error
}

// Service implements blog CRUD with cover-image lifecycle and the comment
// cascade on delete.
type Service struct {
	blogs    Blogs
	comments Comments
	storage  storage.Storage
	logger   *zap.Logger
}

func NewService(blogs Blogs, comments Comments, store storage.Storage, logger *zap.Logger) *Service {
	return &Service{
		blogs:    blogs,
		comments: comments,
		storage:  store,
		logger:   logger,
	}
}

// Create publishes a post, uploading the cover image when one is supplied.
func (s *Service) Create(ctx context.Context, authorID, title, body string, cover *storage.Upload) (blogmodel.Blog, error) {
	title = strings.TrimSpace(title)
	body = strings.TrimSpace(body)
	if title == "" || body == "" {
		return blogmodel.Blog{}, ErrInvalidInput
	}

	author, err := bson.ObjectIDFromHex(authorID)
	if err != nil {
		return blogmodel.Blog{}, fmt.Errorf("invalid author id: %w", err)
	}

	coverURL := blogmodel.DefaultCoverImageURL
	if cover != nil {
		key := storage.ObjectKey("blogs", cover.Filename)
		coverURL, err = s.storage.Put(ctx, key, *cover)
		if err != nil {
			return blogmodel.Blog{}, fmt.Errorf("upload cover image: %w", err)
		}
	}

	created, err := s.blogs.Create(ctx, blogmodel.Blog{
		Title:         title,
		Body:          body,
		CoverImageURL: coverURL,
		CreatedBy:     author,
	})
	if err != nil {
		return blogmodel.Blog{}, err
	}

	s.logger.Info("blog created",
		zap.String("blogId", created.ID.Hex()),
		zap.String("author", authorID))
	return created, nil
}

// List returns every post, newest first.
func (s *Service) List(ctx context.Context) ([]blogmodel.WithAuthor, error) {
	return s.blogs.List(ctx)
}

// Get returns one post with its comments.
func (s *Service) Get(ctx context.Context, id string) (blogmodel.WithAuthor, []blogmodel.CommentWithAuthor, error) {
	oid, err := bson.ObjectIDFromHex(id)
	if err != nil {
		return blogmodel.WithAuthor{}, nil, ErrNotFound
	}

	b, err := s.blogs.FindByIDWithAuthor(ctx, oid)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return blogmodel.WithAuthor{}, nil, ErrNotFound
		}
		return blogmodel.WithAuthor{}, nil, fmt.Errorf("find blog: %w", err)
	}

	comments, err := s.comments.ListByBlog(ctx, oid)
	if err != nil {
		return blogmodel.WithAuthor{}, nil, err
	}

	return b, comments, nil
}

// Delete removes a post, its comments, and its stored cover image. Only the
// author may delete.
func (s *Service) Delete(ctx context.Context, id, requesterID string) error {
	oid, err := bson.ObjectIDFromHex(id)
	if err != nil {
		return ErrNotFound
	}

	b, err := s.blogs.FindByID(ctx, oid)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return ErrNotFound
		}
		return fmt.Errorf("find blog: %w", err)
	}

	if b.CreatedBy.Hex() != requesterID {
		return ErrForbidden
	}

	if b.CoverImageURL != "" && b.CoverImageURL != blogmodel.DefaultCoverImageURL {
		if err := s.storage.Delete(ctx, b.CoverImageURL); err != nil {
			// The post still goes away; an orphaned image is an operator
			// cleanup, not a user-facing failure.
			s.logger.Warn("failed to delete cover image",
				zap.String("url", b.CoverImageURL), zap.Error(err))
		}
	}

	if err := s.comments.DeleteByBlog(ctx, oid); err != nil {
		return err
	}

	if err := s.blogs.Delete(ctx, oid); err != nil {
		return err
	}

	s.logger.Info("blog deleted", zap.String("blogId", id))
	return nil
}

// AddComment attaches a comment to an existing post.
func (s *Service) AddComment(ctx context.Context, blogID, authorID, content string) (blogmodel.Comment, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return blogmodel.Comment{}, ErrInvalidInput
	}

	oid, err := bson.ObjectIDFromHex(blogID)
	if err != nil {
		return blogmodel.Comment{}, ErrNotFound
	}

	if _, err := s.blogs.FindByID(ctx, oid); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return blogmodel.Comment{}, ErrNotFound
		}
		return blogmodel.Comment{}, fmt.Errorf("find blog: %w", err)
	}

	author, err := bson.ObjectIDFromHex(authorID)
	if err != nil {
		return blogmodel.Comment{}, fmt.Errorf("invalid author id: %w", err)
	}

	return s.comments.Create(ctx, blogmodel.Comment{
		Content:   content,
		BlogID:    oid,
		CreatedBy: author,
	})
}
