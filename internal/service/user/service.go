package user

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	usermodel "github.com/blogifyhq/blogify/internal/model/user"
	"github.com/blogifyhq/blogify/internal/service/storage"
	"github.com/blogifyhq/blogify/internal/store"
)

var (
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrInvalidSignup      = errors.New("fullName, email and password are required")

	// ErrDuplicateEmail surfaces the store's uniqueness violation so handlers
	// need not reach past this service.
	ErrDuplicateEmail = store.ErrDuplicateEmail
)

// Repository is the account persistence capability this service consumes.
type Repository interface {
	Create(ctx context.Context, u usermodel.User) (usermodel.User, error)
	FindByEmail(ctx context.Context, email string) (usermodel.User, error)
}

// Service handles account signup and signin.
type Service struct {
	users   Repository
	storage storage.Storage
	tokens  *TokenIssuer
	logger  *zap.Logger
}

func NewService(users Repository, store storage.Storage, tokens *TokenIssuer, logger *zap.Logger) *Service {
	return &Service{
		users:   users,
		storage: store,
		tokens:  tokens,
		logger:  logger,
	}
}

// Signup registers an account with a bcrypt-hashed password and an optional
// profile image. On a storage failure after upload, the orphaned object is
// removed.
func (s *Service) Signup(ctx context.Context, fullName, email, password string, image *storage.Upload) (usermodel.User, error) {
	fullName = strings.TrimSpace(fullName)
	email = strings.ToLower(strings.TrimSpace(email))
	if fullName == "" || email == "" || password == "" {
		return usermodel.User{}, ErrInvalidSignup
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return usermodel.User{}, fmt.Errorf("hash password: %w", err)
	}

	profileURL := usermodel.DefaultProfileImageURL
	if image != nil {
		key := storage.ObjectKey("profiles", image.Filename)
		profileURL, err = s.storage.Put(ctx, key, *image)
		if err != nil {
			return usermodel.User{}, fmt.Errorf("upload profile image: %w", err)
		}
	}

	created, err := s.users.Create(ctx, usermodel.User{
		FullName:        fullName,
		Email:           email,
		Password:        string(hash),
		ProfileImageURL: profileURL,
		Role:            "user",
	})
	if err != nil {
		if profileURL != usermodel.DefaultProfileImageURL {
			if delErr := s.storage.Delete(ctx, profileURL); delErr != nil {
				s.logger.Warn("failed to remove orphaned profile image",
					zap.String("url", profileURL), zap.Error(delErr))
			}
		}
		return usermodel.User{}, err
	}

	s.logger.Info("user registered", zap.String("email", email))
	return created, nil
}

// Signin verifies credentials and returns a signed token. Lookup and compare
// failures collapse into one error so callers cannot probe for accounts.
func (s *Service) Signin(ctx context.Context, email, password string) (string, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	u, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		return "", ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(u.Password), []byte(password)); err != nil {
		return "", ErrInvalidCredentials
	}

	token, err := s.tokens.Issue(u)
	if err != nil {
		return "", fmt.Errorf("issue token: %w", err)
	}
	return token, nil
}
