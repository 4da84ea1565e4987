// Package auth holds the leaf security primitives: the signed bearer-token
// codec and the password hasher. Both are pure of I/O; the only state is
// the process-wide signing secret held by TokenCodec.
package auth

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Token verification failure kinds. The HTTP boundary collapses all three
// to a single 401-class response; callers inside the core can distinguish.
var (
	ErrTokenExpired   = errors.New("token expired")
	ErrTokenSignature = errors.New("token signature invalid")
	ErrTokenMalformed = errors.New("token malformed")
)

// Claims is the decoded content of a verified bearer token. Subject carries
// the wire-contract "{id}:{username}" claim of the issued identity.
type Claims struct {
	jwt.RegisteredClaims
}

// Identity splits the subject claim into its numeric id and username.
// A subject that does not parse is a malformed token, not a trusted string.
func (c *Claims) Identity() (int64, string, error) {
	idPart, username, ok := strings.Cut(c.Subject, ":")
	if !ok || username == "" {
		return 0, "", ErrTokenMalformed
	}
	id, err := strconv.ParseInt(idPart, 10, 64)
	if err != nil || id <= 0 {
		return 0, "", ErrTokenMalformed
	}
	return id, username, nil
}

// TokenCodec issues and verifies HS256-signed bearer tokens. The secret is
// loaded once at startup and immutable for the process lifetime.
type TokenCodec struct {
	secret []byte
	ttl    time.Duration
}

func NewTokenCodec(secret string, ttl time.Duration) *TokenCodec {
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &TokenCodec{secret: []byte(secret), ttl: ttl}
}

// Issue signs a token for the given identity, valid from now until now+ttl.
func (tc *TokenCodec) Issue(userID int64, username string, now time.Time) (string, error) {
	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   fmt.Sprintf("%d:%s", userID, username),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(tc.ttl)),
		},
	}
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString(tc.secret)
}

// Verify parses and validates a token string, returning the decoded claims.
// Failures are reported as exactly one of ErrTokenExpired, ErrTokenSignature
// or ErrTokenMalformed.
func (tc *TokenCodec) Verify(tokenString string) (*Claims, error) {
	claims := &Claims{}
	tkn, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if token.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, jwt.ErrTokenSignatureInvalid
		}
		return tc.secret, nil
	})
	if err != nil {
		switch {
		case errors.Is(err, jwt.ErrTokenExpired):
			return nil, ErrTokenExpired
		case errors.Is(err, jwt.ErrTokenSignatureInvalid):
			return nil, ErrTokenSignature
		default:
			return nil, ErrTokenMalformed
		}
	}
	if !tkn.Valid {
		return nil, ErrTokenMalformed
	}
	return claims, nil
}
