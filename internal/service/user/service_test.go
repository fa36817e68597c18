package user

import (
	"context"
	"errors"
	"testing"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	usermodel "github.com/blogifyhq/blogify/internal/model/user"
)

type fakeRepo struct {
	byEmail   map[string]usermodel.User
	createErr error
	created   []usermodel.User
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{byEmail: make(map[string]usermodel.User)}
}

func (f *fakeRepo) Create(_ context.Context, u usermodel.User) (usermodel.User, error) {
	if f.createErr != nil {
		return usermodel.User{}, f.createErr
	}
	if _, exists := f.byEmail[u.Email]; exists {
		return usermodel.User{}, ErrDuplicateEmail
	}
	u.ID = bson.NewObjectID()
	f.byEmail[u.Email] = u
	f.created = append(f.created, u)
	return u, nil
}

func (f *fakeRepo) FindByEmail(_ context.Context, email string) (usermodel.User, error) {
	u, ok := f.byEmail[email]
	if !ok {
		return usermodel.User{}, errors.New("not found")
	}
	return u, nil
}

func newUserService(repo *fakeRepo) *Service {
	return NewService(repo, nil, NewTokenIssuer("test-secret"), zap.NewNop())
}

func TestSignupHashesPassword(t *testing.T) {
	repo := newFakeRepo()
	svc := newUserService(repo)

	created, err := svc.Signup(context.Background(), "Ada Lovelace", "Ada@Example.com", "s3cret", nil)
	if err != nil {
		t.Fatalf("Signup err: %v", err)
	}
	if created.Email != "ada@example.com" {
		t.Fatalf("email not normalized: %q", created.Email)
	}
	if created.Password == "s3cret" {
		t.Fatal("password stored in plaintext")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(created.Password), []byte("s3cret")); err != nil {
		t.Fatalf("stored hash does not match password: %v", err)
	}
	if created.ProfileImageURL != usermodel.DefaultProfileImageURL {
		t.Fatalf("expected default profile image, got %q", created.ProfileImageURL)
	}
	if created.Role != "user" {
		t.Fatalf("role = %q", created.Role)
	}
}

func TestSignupValidatesInput(t *testing.T) {
	svc := newUserService(newFakeRepo())

	for _, tc := range []struct{ name, fullName, email, password string }{
		{"missing name", "", "a@example.com", "pw"},
		{"missing email", "Ada", "", "pw"},
		{"missing password", "Ada", "a@example.com", ""},
		{"blank name", "   ", "a@example.com", "pw"},
	} {
		if _, err := svc.Signup(context.Background(), tc.fullName, tc.email, tc.password, nil); !errors.Is(err, ErrInvalidSignup) {
			t.Fatalf("%s: expected ErrInvalidSignup, got %v", tc.name, err)
		}
	}
}

func TestSignupDuplicateEmail(t *testing.T) {
	repo := newFakeRepo()
	svc := newUserService(repo)
	ctx := context.Background()

	if _, err := svc.Signup(ctx, "Ada", "ada@example.com", "pw", nil); err != nil {
		t.Fatalf("first signup err: %v", err)
	}
	if _, err := svc.Signup(ctx, "Other Ada", "ada@example.com", "pw2", nil); !errors.Is(err, ErrDuplicateEmail) {
		t.Fatalf("expected ErrDuplicateEmail, got %v", err)
	}
}

func TestSigninIssuesVerifiableToken(t *testing.T) {
	repo := newFakeRepo()
	svc := newUserService(repo)
	ctx := context.Background()

	created, err := svc.Signup(ctx, "Ada", "ada@example.com", "s3cret", nil)
	if err != nil {
		t.Fatalf("Signup err: %v", err)
	}

	token, err := svc.Signin(ctx, "ada@example.com", "s3cret")
	if err != nil {
		t.Fatalf("Signin err: %v", err)
	}

	id, err := NewTokenIssuer("test-secret").Verify(token)
	if err != nil {
		t.Fatalf("Verify err: %v", err)
	}
	if id.UserID != created.ID.Hex() {
		t.Fatalf("token subject %q, want %q", id.UserID, created.ID.Hex())
	}
}

func TestSigninCollapsesFailures(t *testing.T) {
	repo := newFakeRepo()
	svc := newUserService(repo)
	ctx := context.Background()

	if _, err := svc.Signup(ctx, "Ada", "ada@example.com", "s3cret", nil); err != nil {
		t.Fatalf("Signup err: %v", err)
	}

	if _, err := svc.Signin(ctx, "ada@example.com", "wrong"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("wrong password: expected ErrInvalidCredentials, got %v", err)
	}
	if _, err := svc.Signin(ctx, "nobody@example.com", "s3cret"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("unknown account: expected ErrInvalidCredentials, got %v", err)
	}
}
