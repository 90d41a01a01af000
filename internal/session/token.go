package session

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// ErrNotReady is returned when tokens are used before a signing key exists.
var ErrNotReady = errors.New("session tokens are not configured")

// Claims are the JWT claims of a session token.
type Claims struct {
	Email   string `json:"email"`
	Name    string `json:"name,omitempty"`
	Picture string `json:"picture,omitempty"`
	jwt.RegisteredClaims
}

// Tokens issues and verifies HS256 session tokens for one project. Issuer is
// https://securetoken.<authDomain>/<projectID> and audience is the project id.
type Tokens struct {
	secret   []byte
	issuer   string
	audience string
	ttl      time.Duration
	now      func() time.Time
}

var _ Verifier = (*Tokens)(nil)

// NewTokens builds a token authority. An empty secret leaves it unready.
func NewTokens(secret, authDomain, projectID string, ttl time.Duration) *Tokens {
	return &Tokens{
		secret:   []byte(secret),
		issuer:   fmt.Sprintf("https://securetoken.%s/%s", authDomain, projectID),
		audience: projectID,
		ttl:      ttl,
		now:      time.Now,
	}
}

// Ready reports whether a signing key is configured.
func (t *Tokens) Ready() bool {
	return len(t.secret) > 0
}

// Issue signs a token for id and returns it with its expiry.
func (t *Tokens) Issue(id Identity) (string, time.Time, error) {
	if !t.Ready() {
		return "", time.Time{}, ErrNotReady
	}
	now := t.now()
	expires := now.Add(t.ttl)
	claims := &Claims{
		Email:   id.Email,
		Name:    id.Name,
		Picture: id.PhotoURL,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(expires),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			Issuer:    t.issuer,
			Audience:  jwt.ClaimStrings{t.audience},
			Subject:   id.UID,
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(t.secret)
	if err != nil {
		return "", time.Time{}, err
	}
	return signed, expires, nil
}

// Verify parses tokenString and returns the identity it carries.
func (t *Tokens) Verify(tokenString string) (*Identity, error) {
	if !t.Ready() {
		return nil, ErrNotReady
	}
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return t.secret, nil
	},
		jwt.WithIssuer(t.issuer),
		jwt.WithAudience(t.audience),
		jwt.WithTimeFunc(t.now),
	)
	if err != nil || !token.Valid {
		return nil, fmt.Errorf("invalid session token: %w", err)
	}
	if claims.Subject == "" {
		return nil, errors.New("invalid session token: missing subject")
	}

	return &Identity{
		UID:      claims.Subject,
		Email:    claims.Email,
		Name:     claims.Name,
		PhotoURL: claims.Picture,
	}, nil
}
