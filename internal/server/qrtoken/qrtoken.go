// Package qrtoken mints and verifies the short-lived tokens carried in the
// QR codes handed out at events. Tokens are HS256 JWTs; a redeemed token id
// is remembered so the same code cannot be scanned twice.
package qrtoken

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

var (
	ErrInvalid     = errors.New("token invalid")
	ErrExpired     = errors.New("token expired")
	ErrAlreadyUsed = errors.New("token already redeemed")
)

// Claims carry the reward attached to a QR code.
type Claims struct {
	Points int `json:"points"`
	jwt.RegisteredClaims
}

// Issuer mints and redeems tokens. Redeemed jtis are kept in memory, which
// is enough for a development server.
type Issuer struct {
	key []byte
	ttl time.Duration

	mu       sync.Mutex
	redeemed map[string]struct{}
}

func NewIssuer(key []byte, ttl time.Duration) *Issuer {
	return &Issuer{key: key, ttl: ttl, redeemed: make(map[string]struct{})}
}

// Mint signs a fresh token worth the given points.
func (i *Issuer) Mint(points int) (string, error) {
	now := time.Now()
	claims := Claims{
		Points: points,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(i.ttl)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(i.key)
	if err != nil {
		return "", fmt.Errorf("signing token: %w", err)
	}
	return signed, nil
}

// Redeem verifies signature and expiry and burns the token's jti. A second
// redemption of the same token fails with ErrAlreadyUsed.
func (i *Issuer) Redeem(tokenString string) (*Claims, error) {
	claims := &Claims{}
	_, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return i.key, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrExpired
		}
		return nil, fmt.Errorf("%w: %v", ErrInvalid, err)
	}
	if claims.ID == "" {
		return nil, ErrInvalid
	}

	i.mu.Lock()
	defer i.mu.Unlock()
	if _, used := i.redeemed[claims.ID]; used {
		return nil, ErrAlreadyUsed
	}
	i.redeemed[claims.ID] = struct{}{}
	return claims, nil
}
