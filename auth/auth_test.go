package auth

import (
	"context"
	"errors"
	"testing"
)

func TestNoAuth(t *testing.T) {
	a := NoAuth()

	identity, err := a.Authenticate(context.Background(), "whatever")
	if err != nil {
		t.Fatalf("Authenticate: %v", err)
	}
	if identity != "anonymous" {
		t.Errorf("identity = %q, want anonymous", identity)
	}
	if !a.IsAdmin(context.Background(), identity) {
		t.Error("NoAuth identity should be admin")
	}
}

func TestBearerAuth(t *testing.T) {
	a := BearerAuth(func(token string) (string, error) {
		if token == "good" {
			return "alice", nil
		}
		return "", ErrUnauthenticated
	}, func(identity string) bool {
		return identity == "alice"
	})

	identity, err := a.Authenticate(context.Background(), "good")
	if err != nil {
		t.Fatalf("Authenticate: %v", err)
	}
	if identity != "alice" {
		t.Errorf("identity = %q, want alice", identity)
	}
	if !a.IsAdmin(context.Background(), "alice") {
		t.Error("alice should be admin")
	}
	if a.IsAdmin(context.Background(), "bob") {
		t.Error("bob should not be admin")
	}

	if _, err := a.Authenticate(context.Background(), "bad"); err == nil {
		t.Error("expected error for bad token")
	}
}

func TestBearerAuthNilAdminFunc(t *testing.T) {
	a := BearerAuth(func(token string) (string, error) { return "alice", nil }, nil)
	if a.IsAdmin(context.Background(), "alice") {
		t.Error("nil admin func should deny everyone")
	}
}

func TestIdentityContext(t *testing.T) {
	ctx := context.Background()
	if got := IdentityFromContext(ctx); got != "" {
		t.Errorf("IdentityFromContext on empty context = %q", got)
	}

	ctx = WithIdentity(ctx, "alice")
	if got := IdentityFromContext(ctx); got != "alice" {
		t.Errorf("IdentityFromContext = %q, want alice", got)
	}
}

func TestTokenFromAuthorizationHeader(t *testing.T) {
	tests := []struct {
		name    string
		header  string
		want    string
		wantErr error
	}{
		{"valid", "Bearer abc123", "abc123", nil},
		{"missing scheme", "abc123", "", ErrInvalidAuthHeader},
		{"wrong scheme", "Basic abc123", "", ErrInvalidAuthHeader},
		{"empty token", "Bearer ", "", ErrTokenIsEmpty},
		{"empty header", "", "", ErrInvalidAuthHeader},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := TokenFromAuthorizationHeader(tt.header)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("err = %v, want %v", err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("token = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestValidateToken(t *testing.T) {
	a := BearerAuth(func(token string) (string, error) {
		if token == "good" {
			return "alice", nil
		}
		return "", errors.New("nope")
	}, nil)

	ctx, err := ValidateToken(context.Background(), "good", a)
	if err != nil {
		t.Fatalf("ValidateToken: %v", err)
	}
	if got := IdentityFromContext(ctx); got != "alice" {
		t.Errorf("identity = %q, want alice", got)
	}

	if _, err := ValidateToken(context.Background(), "", a); !errors.Is(err, ErrTokenIsEmpty) {
		t.Errorf("empty token err = %v", err)
	}
	if _, err := ValidateToken(context.Background(), "bad", a); !errors.Is(err, ErrUnauthenticated) {
		t.Errorf("bad token err = %v", err)
	}
}
