package user

import (
	"errors"
	"fmt"

	"github.com/golang-jwt/jwt/v5"

	usermodel "github.com/blogifyhq/blogify/internal/model/user"
)

// Identity is the authenticated caller attached to a request. UserID is the
// account's hex object id.
type Identity struct {
	UserID          string
	Email           string
	FullName        string
	ProfileImageURL string
	Role            string
}

// TokenIssuer signs and verifies the HS256 cookie tokens.
type TokenIssuer struct {
	secret []byte
}

func NewTokenIssuer(secret string) *TokenIssuer {
	return &TokenIssuer{secret: []byte(secret)}
}

// Issue signs a token carrying the identity claims.
func (t *TokenIssuer) Issue(u usermodel.User) (string, error) {
	claims := jwt.MapClaims{
		"sub":          u.ID.Hex(),
		"email":        u.Email,
		"fullName":     u.FullName,
		"profileImage": u.ProfileImageURL,
		"role":         u.Role,
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(t.secret)
}

// Verify parses a token and reconstructs the identity.
func (t *TokenIssuer) Verify(tokenString string) (Identity, error) {
	token, err := jwt.Parse(tokenString, func(tok *jwt.Token) (any, error) {
		if _, ok := tok.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", tok.Header["alg"])
		}
		return t.secret, nil
	})
	if err != nil {
		return Identity{}, err
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return Identity{}, errors.New("unexpected token claims")
	}

	id := Identity{
		UserID:          stringClaim(claims, "sub"),
		Email:           stringClaim(claims, "email"),
		FullName:        stringClaim(claims, "fullName"),
		ProfileImageURL: stringClaim(claims, "profileImage"),
		Role:            stringClaim(claims, "role"),
	}
	if id.UserID == "" {
		return Identity{}, errors.New("token missing subject")
	}
	return id, nil
}

func stringClaim(claims jwt.MapClaims, key string) string {
	if v, ok := claims[key].(string); ok {
		return v
	}
	return ""
}
