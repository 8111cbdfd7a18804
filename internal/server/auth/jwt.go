// Package auth implements the credential primitives of the server: the
// token authority (signed bearer tokens), the password hasher, and the
// revocation registry.
package auth

import (
	"errors"
	"time"

	"github.com/dmitrijs2005/authgate/internal/common"
	"github.com/golang-jwt/jwt/v5"
)

// Claims is the signed claim set bound to a subject identity.
type Claims struct {
	jwt.RegisteredClaims
	UserID int64 `json:"uid"`
}

// TokenAuthority issues and verifies HS256 bearer tokens. It is stateless:
// revocation before natural expiry is handled by the RevocationRegistry.
type TokenAuthority struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

// NewTokenAuthority constructs a TokenAuthority with the given signing
// secret and token lifetime.
func NewTokenAuthority(secret []byte, ttl time.Duration) *TokenAuthority {
	return &TokenAuthority{secret: secret, ttl: ttl, now: time.Now}
}

// Issue signs a new token for the given subject id with issued-at set to
// the current time and expiry at issued-at + TTL.
func (a *TokenAuthority) Issue(userID int64) (string, error) {
	now := a.now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(a.ttl)),
		},
		UserID: userID,
	})
	return token.SignedString(a.secret)
}

// Verify checks the signature and expiry of a token string and returns its
// claims. Expired tokens yield common.ErrTokenExpired; malformed tokens and
// signature mismatches both yield common.ErrInvalidToken.
func (a *TokenAuthority) Verify(tokenString string) (*Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, common.ErrInvalidToken
		}
		return a.secret, nil
	}, jwt.WithTimeFunc(func() time.Time { return a.now() }))
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, common.ErrTokenExpired
		}
		return nil, common.ErrInvalidToken
	}
	if !token.Valid {
		return nil, common.ErrInvalidToken
	}
	return claims, nil
}
