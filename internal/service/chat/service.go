package chat

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"

	chatmodel "github.com/blogifyhq/blogify/internal/model/chat"
	"github.com/blogifyhq/blogify/internal/service/ai"
	"github.com/blogifyhq/blogify/internal/service/retrieval"
)

// ErrInvalidRequest signals a caller error: missing message or session token.
var ErrInvalidRequest = errors.New("message and sessionId are required")

// SessionStore persists chat transcripts keyed by session token.
type SessionStore interface {
	// LoadOrCreate returns the session for the token, constructing an empty
	// one owned by ownerID (may be empty for anonymous use) when absent.
	LoadOrCreate(ctx context.Context, token, ownerID string) (*chatmodel.Session, error)
	// Save durably persists the full session document.
	Save(ctx context.Context, session *chatmodel.Session) error
}

// ContextRetriever supplies optional blog context for a user message.
type ContextRetriever interface {
	MaybeRetrieve(ctx context.Context, message string) ([]retrieval.Document, error)
}

// Completer executes an assembled prompt against the model.
type Completer interface {
	Complete(ctx context.Context, prompt string) (string, error)
}

// Service orchestrates one chat turn: validate, load session, retrieve
// context, assemble prompt, complete, persist. Concurrent requests on the
// same token are not coordinated; the later save wins.
type Service struct {
	sessions  SessionStore
	retriever ContextRetriever
	completer Completer
	logger    *zap.Logger
}

func NewService(sessions SessionStore, retriever ContextRetriever, completer Completer, logger *zap.Logger) *Service {
	return &Service{
		sessions:  sessions,
		retriever: retriever,
		completer: completer,
		logger:    logger,
	}
}

// Handle processes one user message and returns the assistant's reply text.
// On transient upstream failure it substitutes a canned reply; every other
// failure propagates without committing a partial transcript.
func (s *Service) Handle(ctx context.Context, token, message, ownerID string) (string, error) {
	if strings.TrimSpace(message) == "" || strings.TrimSpace(token) == "" {
		return "", ErrInvalidRequest
	}

	session, err := s.sessions.LoadOrCreate(ctx, token, ownerID)
	if err != nil {
		return "", fmt.Errorf("load session: %w", err)
	}

	// In-memory only until the assistant turn is ready: a crash before the
	// final save loses this turn and the client resubmits.
	session.Append(chatmodel.RoleUser, message)

	docs, err := s.retriever.MaybeRetrieve(ctx, message)
	if err != nil {
		return "", fmt.Errorf("retrieve context: %w", err)
	}

	prompt := ai.BuildPrompt(docs, session.Turns)

	reply, err := s.completer.Complete(ctx, prompt)
	if err != nil {
		if !errors.Is(err, ai.ErrServiceOverloaded) && !errors.Is(err, ai.ErrRateLimited) {
			return "", err
		}
		// Transient capacity failure: answer from the canned cascade keyed
		// on the raw user message, never the assembled prompt.
		reply = ai.FallbackReply(message)
		s.logger.Warn("substituting fallback reply",
			zap.String("sessionId", token),
			zap.Error(err))
	}

	session.Append(chatmodel.RoleAssistant, reply)
	if err := s.sessions.Save(ctx, session); err != nil {
		return "", fmt.Errorf("save session: %w", err)
	}

	s.logger.Info("chat turn completed",
		zap.String("sessionId", token),
		zap.Int("turns", len(session.Turns)),
		zap.Int("replyLength", len(reply)))
	return reply, nil
}
