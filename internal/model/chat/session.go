package chat

import (
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
)

// Role identifies the author of a turn. Exactly two variants exist.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Turn is one message in a conversation. Immutable once appended.
type Turn struct {
	Role      Role      `bson:"role" json:"role"`
	Content   string    `bson:"content" json:"content"`
	CreatedAt time.Time `bson:"createdAt" json:"createdAt"`
}

// Session holds the ordered transcript for one conversation, keyed by a
// caller-supplied session token. Turns are append-only; the store persists
// the whole document on save, so the later of two concurrent saves wins.
type Session struct {
	ID        bson.ObjectID  `bson:"_id,omitempty" json:"-"`
	SessionID string         `bson:"sessionId" json:"sessionId"`
	UserID    *bson.ObjectID `bson:"userId,omitempty" json:"userId,omitempty"`
	Turns     []Turn         `bson:"messages" json:"messages"`
	CreatedAt time.Time      `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time      `bson:"updatedAt" json:"updatedAt"`
}

// Append adds a turn to the in-memory transcript. Durability is the store's
// concern.
func (s *Session) Append(role Role, content string) {
	s.Turns = append(s.Turns, Turn{
		Role:      role,
		Content:   content,
		CreatedAt: time.Now().UTC(),
	})
}
