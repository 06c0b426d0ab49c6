package auth

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

var (
	// ErrTokenMalformed is returned when a token string cannot be decoded.
	ErrTokenMalformed = errors.New("token is malformed")

	// ErrTokenSignature is returned when a token's signature does not verify.
	ErrTokenSignature = errors.New("token signature mismatch")

	// ErrTokenExpired is returned when a token is outside its validity window.
	ErrTokenExpired = errors.New("token is expired or not yet valid")
)

// Token is a self-contained bearer credential: an identity name, a validity
// window and an HMAC-SHA256 signature over both.
type Token struct {
	IdentityName string
	ValidFrom    time.Time
	ValidUpTo    time.Time

	mac []byte
}

// String encodes the token as <base64url(payload)>.<base64url(mac)>.
func (t Token) String() string {
	enc := base64.RawURLEncoding
	return enc.EncodeToString([]byte(t.payload())) + "." + enc.EncodeToString(t.mac)
}

func (t Token) payload() string {
	return t.IdentityName + "|" +
		strconv.FormatInt(t.ValidFrom.Unix(), 10) + "|" +
		strconv.FormatInt(t.ValidUpTo.Unix(), 10)
}

// Validate verifies the token signature against the secret and checks the
// validity window against the given time.
func (t Token) Validate(secret []byte, now time.Time) error {
	if !hmac.Equal(t.mac, sign(secret, t.payload())) {
		return ErrTokenSignature
	}
	if now.Before(t.ValidFrom) || now.After(t.ValidUpTo) {
		return ErrTokenExpired
	}
	return nil
}

// DecodeToken parses a token string produced by Token.String. Decoding does
// not verify the signature; call Validate for that.
func DecodeToken(s string) (Token, error) {
	enc := base64.RawURLEncoding

	head, tail, ok := strings.Cut(s, ".")
	if !ok {
		return Token{}, ErrTokenMalformed
	}
	payload, err := enc.DecodeString(head)
	if err != nil {
		return Token{}, ErrTokenMalformed
	}
	mac, err := enc.DecodeString(tail)
	if err != nil {
		return Token{}, ErrTokenMalformed
	}

	parts := strings.Split(string(payload), "|")
	if len(parts) != 3 || parts[0] == "" {
		return Token{}, ErrTokenMalformed
	}
	from, err := strconv.ParseInt(parts[1], 10, 64)
	if err != nil {
		return Token{}, ErrTokenMalformed
	}
	upTo, err := strconv.ParseInt(parts[2], 10, 64)
	if err != nil {
		return Token{}, ErrTokenMalformed
	}

	return Token{
		IdentityName: parts[0],
		ValidFrom:    time.Unix(from, 0).UTC(),
		ValidUpTo:    time.Unix(upTo, 0).UTC(),
		mac:          mac,
	}, nil
}

func sign(secret []byte, payload string) []byte {
	h := hmac.New(sha256.New, secret)
	h.Write([]byte(payload))
	return h.Sum(nil)
}

// Issuer mints signed tokens.
type Issuer struct {
	// Secret is the HMAC signing key shared with the validating side. REQUIRED.
	Secret []byte

	// Validity is how long issued tokens stay valid. OPTIONAL.
	// Default: 24 hours.
	Validity time.Duration
}

// Issue creates a signed token for the identity, valid from now.
func (i Issuer) Issue(identity string, now time.Time) Token {
	validity := i.Validity
	if validity <= 0 {
		validity = 24 * time.Hour
	}
	t := Token{
		IdentityName: identity,
		ValidFrom:    now.UTC(),
		ValidUpTo:    now.UTC().Add(validity),
	}
	t.mac = sign(i.Secret, t.payload())
	return t
}

// tokenAuthenticator validates self-contained signed tokens.
type tokenAuthenticator struct {
	secret []byte
	admins map[string]struct{}
}

// TokenAuth creates an Authenticator that accepts tokens signed with the
// given secret. Identities listed in admins bypass authorization filtering.
func TokenAuth(secret []byte, admins ...string) Authenticator {
	set := make(map[string]struct{}, len(admins))
	for _, a := range admins {
		set[a] = struct{}{}
	}
	return &tokenAuthenticator{secret: secret, admins: set}
}

func (a *tokenAuthenticator) Authenticate(ctx context.Context, token string) (string, error) {
	t, err := DecodeToken(token)
	if err != nil {
		return "", err
	}
	if err := t.Validate(a.secret, time.Now()); err != nil {
		return "", fmt.Errorf("%w: %w", ErrUnauthenticated, err)
	}
	return t.IdentityName, nil
}

func (a *tokenAuthenticator) IsAdmin(ctx context.Context, identity string) bool {
	_, ok := a.admins[identity]
	return ok
}
