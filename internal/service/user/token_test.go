package user

import (
	"testing"

	"go.mongodb.org/mongo-driver/v2/bson"

	usermodel "github.com/blogifyhq/blogify/internal/model/user"
)

func TestTokenRoundTrip(t *testing.T) {
	issuer := NewTokenIssuer("test-secret")
	u := usermodel.User{
		ID:              bson.NewObjectID(),
		Email:           "ada@example.com",
		FullName:        "Ada Lovelace",
		ProfileImageURL: "/uploads/profiles/ada.png",
		Role:            "user",
	}

	token, err := issuer.Issue(u)
	if err != nil {
		t.Fatalf("Issue err: %v", err)
	}

	id, err := issuer.Verify(token)
	if err != nil {
		t.Fatalf("Verify err: %v", err)
	}
	if id.UserID != u.ID.Hex() {
		t.Fatalf("UserID = %q, want %q", id.UserID, u.ID.Hex())
	}
	if id.Email != u.Email || id.FullName != u.FullName {
		t.Fatalf("identity claims mismatch: %+v", id)
	}
	if id.ProfileImageURL != u.ProfileImageURL || id.Role != u.Role {
		t.Fatalf("identity claims mismatch: %+v", id)
	}
}

func TestVerifyRejectsWrongSecret(t *testing.T) {
	token, err := NewTokenIssuer("secret-a").Issue(usermodel.User{ID: bson.NewObjectID()})
	if err != nil {
		t.Fatalf("Issue err: %v", err)
	}

	if _, err := NewTokenIssuer("secret-b").Verify(token); err == nil {
		t.Fatal("expected verification failure with wrong secret")
	}
}

func TestVerifyRejectsGarbage(t *testing.T) {
	if _, err := NewTokenIssuer("secret").Verify("not.a.jwt"); err == nil {
		t.Fatal("expected parse failure")
	}
}

func TestVerifyRejectsTamperedToken(t *testing.T) {
	issuer := NewTokenIssuer("secret")
	token, err := issuer.Issue(usermodel.User{ID: bson.NewObjectID(), Email: "a@example.com"})
	if err != nil {
		t.Fatalf("Issue err: %v", err)
	}

	tampered := token[:len(token)-2] + "xx"
	if _, err := issuer.Verify(tampered); err == nil {
		t.Fatal("expected verification failure for tampered signature")
	}
}
