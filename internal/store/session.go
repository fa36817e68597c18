package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"github.com/blogifyhq/blogify/internal/model/chat"
)

// SessionStore persists chat sessions in the chat_sessions collection, one
// document per session token.
type SessionStore struct {
	coll *mongo.Collection
}

func NewSessionStore(db *mongo.Database) *SessionStore {
	return &SessionStore{coll: db.Collection(collSessions)}
}

// LoadOrCreate finds the session by token, constructing a new empty one when
// absent. Creation is lazy: nothing is written until the first Save.
func (s *SessionStore) LoadOrCreate(ctx context.Context, token, ownerID string) (*chat.Session, error) {
	var session chat.Session
	err := s.coll.FindOne(ctx, bson.M{"sessionId": token}).Decode(&session)
	if err == nil {
		return &session, nil
	}
	if !errors.Is(err, mongo.ErrNoDocuments) {
		return nil, fmt.Errorf("find session %q: %w", token, err)
	}

	session = chat.Session{
		SessionID: token,
		Turns:     []chat.Turn{},
		CreatedAt: time.Now().UTC(),
	}
	if ownerID != "" {
		oid, err := bson.ObjectIDFromHex(ownerID)
		if err != nil {
			return nil, fmt.Errorf("invalid owner id %q: %w", ownerID, err)
		}
		session.UserID = &oid
	}
	return &session, nil
}

// Save persists the full session document, replacing any prior version.
// Concurrent writers on one token are not coordinated: the later replace
// wins, a documented limitation of this store.
func (s *SessionStore) Save(ctx context.Context, session *chat.Session) error {
	session.UpdatedAt = time.Now().UTC()

	_, err := s.coll.ReplaceOne(ctx,
		bson.M{"sessionId": session.SessionID},
		session,
		options.Replace().SetUpsert(true),
	)
	if err != nil {
		return fmt.Errorf("save session %q: %w", session.SessionID, err)
	}
	return nil
}
