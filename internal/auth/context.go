package auth

import (
	"context"
	"errors"
)

type contextKey string

// UserContextKey is the context key for the authenticated user's claims.
const UserContextKey contextKey = "authenticated_user"

// ErrNoUserInContext is returned when no user is found in context.
var ErrNoUserInContext = errors.New("no authenticated user in context")

// GetUserFromContext extracts the authenticated user's claims from the
// request context.
func GetUserFromContext(ctx context.Context) (*Claims, error) {
	claims, ok := ctx.Value(UserContextKey).(*Claims)
	if !ok {
		return nil, ErrNoUserInContext
	}
	return claims, nil
}

// MustGetUserFromContext panics if no user is in context (use after the
// auth middleware).
func MustGetUserFromContext(ctx context.Context) *Claims {
	claims, err := GetUserFromContext(ctx)
	if err != nil {
		panic("expected authenticated user in context")
	}
	return claims
}
