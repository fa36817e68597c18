package store

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"

	"github.com/blogifyhq/blogify/internal/model/user"
)

// UserStore persists accounts. Email uniqueness is enforced by index.
type UserStore struct {
	coll *mongo.Collection
}

func NewUserStore(db *mongo.Database) *UserStore {
	return &UserStore{coll: db.Collection(collUsers)}
}

// Create inserts an account and returns it with the generated id. A
// duplicate email surfaces as a mongo write error the caller inspects.
func (s *UserStore) Create(ctx context.Context, u user.User) (user.User, error) {
	u.CreatedAt = time.Now().UTC()

	res, err := s.coll.InsertOne(ctx, u)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return user.User{}, ErrDuplicateEmail
		}
		return user.User{}, fmt.Errorf("insert user: %w", err)
	}
	u.ID = res.InsertedID.(bson.ObjectID)
	return u, nil
}

// FindByEmail returns the account registered under email.
func (s *UserStore) FindByEmail(ctx context.Context, email string) (user.User, error) {
	var u user.User
	err := s.coll.FindOne(ctx, bson.M{"email": email}).Decode(&u)
	if err != nil {
		return user.User{}, err
	}
	return u, nil
}

// FindByID returns one account.
func (s *UserStore) FindByID(ctx context.Context, id bson.ObjectID) (user.User, error) {
	var u user.User
	err := s.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&u)
	if err != nil {
		return user.User{}, err
	}
	return u, nil
}
