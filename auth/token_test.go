package auth

import (
	"context"
	"errors"
	"testing"
	"time"
)

var testSecret = []byte("test-secret")

func TestTokenRoundTrip(t *testing.T) {
	now := time.Date(2026, time.March, 1, 12, 0, 0, 0, time.UTC)
	issuer := Issuer{Secret: testSecret, Validity: time.Hour}

	tok := issuer.Issue("alice", now)
	decoded, err := DecodeToken(tok.String())
	if err != nil {
		t.Fatalf("DecodeToken: %v", err)
	}

	if decoded.IdentityName != "alice" {
		t.Errorf("identity = %q, want alice", decoded.IdentityName)
	}
	if !decoded.ValidFrom.Equal(now) {
		t.Errorf("ValidFrom = %v, want %v", decoded.ValidFrom, now)
	}
	if !decoded.ValidUpTo.Equal(now.Add(time.Hour)) {
		t.Errorf("ValidUpTo = %v", decoded.ValidUpTo)
	}

	if err := decoded.Validate(testSecret, now.Add(30*time.Minute)); err != nil {
		t.Errorf("Validate inside window: %v", err)
	}
}

func TestTokenValidate(t *testing.T) {
	now := time.Date(2026, time.March, 1, 12, 0, 0, 0, time.UTC)
	tok := Issuer{Secret: testSecret, Validity: time.Hour}.Issue("alice", now)

	tests := []struct {
		name    string
		secret  []byte
		at      time.Time
		wantErr error
	}{
		{"valid", testSecret, now.Add(time.Minute), nil},
		{"wrong secret", []byte("other"), now.Add(time.Minute), ErrTokenSignature},
		{"expired", testSecret, now.Add(2 * time.Hour), ErrTokenExpired},
		{"not yet valid", testSecret, now.Add(-time.Minute), ErrTokenExpired},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := tok.Validate(tt.secret, tt.at); !errors.Is(err, tt.wantErr) {
				t.Errorf("Validate = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestTokenTampering(t *testing.T) {
	now := time.Now()
	tok := Issuer{Secret: testSecret}.Issue("alice", now)

	// Re-encode the payload with a different identity but the original mac.
	forged := tok
	forged.IdentityName = "admin"
	decoded, err := DecodeToken(forged.String())
	if err != nil {
		t.Fatalf("DecodeToken: %v", err)
	}
	if err := decoded.Validate(testSecret, now); !errors.Is(err, ErrTokenSignature) {
		t.Errorf("forged token Validate = %v, want %v", err, ErrTokenSignature)
	}
}

func TestDecodeTokenMalformed(t *testing.T) {
	for _, s := range []string{
		"",
		"no-dot",
		"!!!.???",
		"YWJj.YWJj", // payload without separators
	} {
		if _, err := DecodeToken(s); !errors.Is(err, ErrTokenMalformed) {
			t.Errorf("DecodeToken(%q) = %v, want %v", s, err, ErrTokenMalformed)
		}
	}
}

func TestTokenAuth(t *testing.T) {
	issuer := Issuer{Secret: testSecret, Validity: time.Hour}
	a := TokenAuth(testSecret, "root")

	tok := issuer.Issue("alice", time.Now())
	identity, err := a.Authenticate(context.Background(), tok.String())
	if err != nil {
		t.Fatalf("Authenticate: %v", err)
	}
	if identity != "alice" {
		t.Errorf("identity = %q, want alice", identity)
	}

	if a.IsAdmin(context.Background(), "alice") {
		t.Error("alice should not be admin")
	}
	if !a.IsAdmin(context.Background(), "root") {
		t.Error("root should be admin")
	}

	expired := issuer.Issue("alice", time.Now().Add(-2*time.Hour))
	if _, err := a.Authenticate(context.Background(), expired.String()); !errors.Is(err, ErrUnauthenticated) {
		t.Errorf("expired token err = %v, want %v", err, ErrUnauthenticated)
	}

	if _, err := a.Authenticate(context.Background(), "garbage"); err == nil {
		t.Error("expected error for garbage token")
	}
}
