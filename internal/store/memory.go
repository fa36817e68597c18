package store

import (
	"context"
	"sync"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"

	"github.com/blogifyhq/blogify/internal/model/chat"
)

// MemorySessionStore implements the session contract with an in-memory map,
// suitable for tests and local development without MongoDB.
type MemorySessionStore struct {
	mu       sync.RWMutex
	sessions map[string]chat.Session
}

func NewMemorySessionStore() *MemorySessionStore {
	return &MemorySessionStore{sessions: make(map[string]chat.Session)}
}

// LoadOrCreate mirrors the Mongo store: a copy of the stored session, or a
// fresh empty one for an unknown token.
func (s *MemorySessionStore) LoadOrCreate(_ context.Context, token, ownerID string) (*chat.Session, error) {
	s.mu.RLock()
	stored, ok := s.sessions[token]
	s.mu.RUnlock()

	if ok {
		copied := stored
		copied.Turns = append([]chat.Turn(nil), stored.Turns...)
		return &copied, nil
	}

	session := chat.Session{
		SessionID: token,
		Turns:     []chat.Turn{},
		CreatedAt: time.Now().UTC(),
	}
	if ownerID != "" {
		oid, err := bson.ObjectIDFromHex(ownerID)
		if err != nil {
			return nil, err
		}
		session.UserID = &oid
	}
	return &session, nil
}

// Save stores a copy of the full session. Last write wins, matching the
// Mongo store's replace-with-upsert semantics.
func (s *MemorySessionStore) Save(_ context.Context, session *chat.Session) error {
	session.UpdatedAt = time.Now().UTC()

	copied := *session
	copied.Turns = append([]chat.Turn(nil), session.Turns...)

	s.mu.Lock()
	s.sessions[session.SessionID] = copied
	s.mu.Unlock()
	return nil
}
