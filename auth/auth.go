// Package auth provides authentication interfaces and helpers for search
// dispatch. An authenticated identity is attached to the request context and
// later drives the authorization criteria appended to executed queries.
package auth

import (
	"context"
	"errors"
	"strings"
)

var (
	// ErrInvalidAuthHeader is returned when the authorization header is malformed.
	ErrInvalidAuthHeader = errors.New("authorization header must use Bearer scheme")

	// ErrTokenIsEmpty is returned when no authorization token is present.
	ErrTokenIsEmpty = errors.New("authorization token is empty")

	// ErrUnauthenticated is returned when authentication fails.
	ErrUnauthenticated = errors.New("unauthenticated")
)

// Authenticator validates bearer tokens and returns user identity.
// Implementations MUST be goroutine-safe.
type Authenticator interface {
	// Authenticate validates a bearer token and returns user identity.
	// Returns error if token is invalid or expired.
	// Identity string is used for authorization filtering and logging.
	// Context allows timeout for auth backend calls.
	Authenticate(ctx context.Context, token string) (identity string, err error)

	// IsAdmin reports whether the identity bypasses authorization filtering.
	// Admin identities see all resources; everyone else is restricted to
	// resources granted to them.
	IsAdmin(ctx context.Context, identity string) bool
}

// noAuthenticator is an Authenticator that allows all requests.
// Used for development/testing. DO NOT use in production.
type noAuthenticator struct{}

// NoAuth returns an Authenticator that allows all requests with an admin
// "anonymous" identity. Useful for development/testing. DO NOT use in
// production.
func NoAuth() Authenticator {
	return &noAuthenticator{}
}

func (n *noAuthenticator) Authenticate(ctx context.Context, token string) (string, error) {
	return "anonymous", nil
}

func (n *noAuthenticator) IsAdmin(ctx context.Context, identity string) bool {
	return true
}

// bearerAuthenticator wraps a user-provided validation function.
type bearerAuthenticator struct {
	validateFunc func(token string) (identity string, err error)
	isAdminFunc  func(identity string) bool
}

// BearerAuth creates an Authenticator from a validation function and an
// optional admin check. A nil isAdminFunc means no identity is an admin.
//
// Example:
//
//	a := auth.BearerAuth(func(token string) (string, error) {
//	    user, err := validateWithMyBackend(token)
//	    if err != nil {
//	        return "", auth.ErrUnauthenticated
//	    }
//	    return user.ID, nil
//	}, nil)
func BearerAuth(validateFunc func(token string) (identity string, err error), isAdminFunc func(identity string) bool) Authenticator {
	return &bearerAuthenticator{
		validateFunc: validateFunc,
		isAdminFunc:  isAdminFunc,
	}
}

// Authenticate calls the user-provided validation function with the token.
// The function might perform I/O that should respect context deadlines.
func (b *bearerAuthenticator) Authenticate(ctx context.Context, token string) (string, error) {
	return b.validateFunc(token)
}

func (b *bearerAuthenticator) IsAdmin(ctx context.Context, identity string) bool {
	if b.isAdminFunc == nil {
		return false
	}
	return b.isAdminFunc(identity)
}

// contextKey is a private type for context keys to avoid collisions.
type contextKey int

const (
	identityKey contextKey = iota
)

// WithIdentity returns a new context carrying the given user identity.
func WithIdentity(ctx context.Context, identity string) context.Context {
	return context.WithValue(ctx, identityKey, identity)
}

// IdentityFromContext retrieves the authenticated user identity from context.
// Returns empty string if no identity is set (unauthenticated request).
func IdentityFromContext(ctx context.Context) string {
	identity, ok := ctx.Value(identityKey).(string)
	if !ok {
		return ""
	}
	return identity
}

const bearerPrefix = "Bearer "

// TokenFromAuthorizationHeader extracts the bearer token from an
// "Authorization: Bearer <token>" header value.
func TokenFromAuthorizationHeader(authHeader string) (string, error) {
	if !strings.HasPrefix(authHeader, bearerPrefix) {
		return "", ErrInvalidAuthHeader
	}

	token := strings.TrimPrefix(authHeader, bearerPrefix)
	if token == "" {
		return "", ErrTokenIsEmpty
	}
	return token, nil
}

// ValidateToken validates a bearer token using the provided Authenticator.
// Returns context with identity set or error.
func ValidateToken(ctx context.Context, token string, authenticator Authenticator) (context.Context, error) {
	if token == "" {
		return ctx, ErrTokenIsEmpty
	}

	identity, err := authenticator.Authenticate(ctx, token)
	if err != nil {
		return ctx, ErrUnauthenticated
	}

	return WithIdentity(ctx, identity), nil
}
