package store_test

import (
	"context"
	"fmt"
	"testing"

	chatmodel "github.com/blogifyhq/blogify/internal/model/chat"
	"github.com/blogifyhq/blogify/internal/store"
)

func TestMemoryStoreLoadOrCreateNewToken(t *testing.T) {
	s := store.NewMemorySessionStore()

	session, err := s.LoadOrCreate(context.Background(), "tok-1", "")
	if err != nil {
		t.Fatalf("LoadOrCreate err: %v", err)
	}
	if session.SessionID != "tok-1" {
		t.Fatalf("unexpected token %q", session.SessionID)
	}
	if len(session.Turns) != 0 {
		t.Fatalf("expected empty transcript, got %d turns", len(session.Turns))
	}
	if session.UserID != nil {
		t.Fatal("anonymous session should have no owner")
	}
}

func TestMemoryStoreRoundTrip(t *testing.T) {
	s := store.NewMemorySessionStore()
	ctx := context.Background()

	session, err := s.LoadOrCreate(ctx, "tok-1", "")
	if err != nil {
		t.Fatalf("LoadOrCreate err: %v", err)
	}
	for i := 0; i < 5; i++ {
		role := chatmodel.RoleUser
		if i%2 == 1 {
			role = chatmodel.RoleAssistant
		}
		session.Append(role, fmt.Sprintf("turn %d", i))
	}
	if err := s.Save(ctx, session); err != nil {
		t.Fatalf("Save err: %v", err)
	}

	reloaded, err := s.LoadOrCreate(ctx, "tok-1", "")
	if err != nil {
		t.Fatalf("reload err: %v", err)
	}
	if len(reloaded.Turns) != 5 {
		t.Fatalf("expected 5 turns, got %d", len(reloaded.Turns))
	}
	for i, turn := range reloaded.Turns {
		if turn.Content != fmt.Sprintf("turn %d", i) {
			t.Fatalf("turn %d content %q out of order", i, turn.Content)
		}
		if turn.Role != session.Turns[i].Role {
			t.Fatalf("turn %d role changed across reload", i)
		}
	}
}

func TestMemoryStoreOwnedSession(t *testing.T) {
	s := store.NewMemorySessionStore()

	session, err := s.LoadOrCreate(context.Background(), "tok-1", "507f1f77bcf86cd799439011")
	if err != nil {
		t.Fatalf("LoadOrCreate err: %v", err)
	}
	if session.UserID == nil || session.UserID.Hex() != "507f1f77bcf86cd799439011" {
		t.Fatalf("owner not recorded: %+v", session.UserID)
	}
}

func TestMemoryStoreInvalidOwnerID(t *testing.T) {
	s := store.NewMemorySessionStore()

	if _, err := s.LoadOrCreate(context.Background(), "tok-1", "not-hex"); err == nil {
		t.Fatal("expected error for malformed owner id")
	}
}

func TestMemoryStoreLoadReturnsCopy(t *testing.T) {
	s := store.NewMemorySessionStore()
	ctx := context.Background()

	session, _ := s.LoadOrCreate(ctx, "tok-1", "")
	session.Append(chatmodel.RoleUser, "persisted")
	if err := s.Save(ctx, session); err != nil {
		t.Fatalf("Save err: %v", err)
	}

	first, _ := s.LoadOrCreate(ctx, "tok-1", "")
	first.Append(chatmodel.RoleUser, "not persisted")

	second, _ := s.LoadOrCreate(ctx, "tok-1", "")
	if len(second.Turns) != 1 {
		t.Fatalf("mutation leaked into store: %d turns", len(second.Turns))
	}
}
