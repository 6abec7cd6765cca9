package handler

import (
	"context"
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/wadjakorntonsri/go-linkmaker/pkg/core/domain"
)

const (
	sessionCookie   = "auth_token"
	sessionLifetime = 24 * time.Hour
)

type sessionClaims struct {
	Name  string `json:"name"`
	Photo string `json:"photo"`
	jwt.RegisteredClaims
}

type ctxKey struct{}

func issueSession(secret []byte, id *domain.Identity, now time.Time) (string, time.Time, error) {
	expires := now.Add(sessionLifetime)
	claims := &sessionClaims{
		Name:  id.Name,
		Photo: id.Photo,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   id.Email,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expires),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(secret)
	return token, expires, err
}

func parseSession(secret []byte, tokenString string) (*domain.Identity, error) {
	claims := &sessionClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		return secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return nil, err
	}
	if !token.Valid {
		return nil, errors.New("invalid session token")
	}
	return &domain.Identity{Name: claims.Name, Email: claims.Subject, Photo: claims.Photo}, nil
}

// IdentityFromContext returns the signed-in user put there by the middleware
func IdentityFromContext(ctx context.Context) (*domain.Identity, bool) {
	id, ok := ctx.Value(ctxKey{}).(*domain.Identity)
	return id, ok
}

func withIdentity(ctx context.Context, id *domain.Identity) context.Context {
	return context.WithValue(ctx, ctxKey{}, id)
}
