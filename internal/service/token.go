package service

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

const tokenIssuer = "wellness-app"

// TokenClaims defines the structure of the JWT payload.
type TokenClaims struct {
	UserID string `json:"uid"`
	jwt.RegisteredClaims
}

// TokenManager issues and verifies HS256 access tokens.
type TokenManager struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

// NewTokenManager creates a TokenManager. A non-positive ttl falls back to 7 days.
func NewTokenManager(secret string, ttl time.Duration) *TokenManager {
	if secret == "" {
		panic("JWT secret cannot be empty") // Critical configuration
	}
	if ttl <= 0 {
		ttl = 7 * 24 * time.Hour
	}
	return &TokenManager{secret: []byte(secret), ttl: ttl, now: time.Now}
}

// Issue signs a token for userID. Every token carries a unique id (jti) so it can be revoked.
func (m *TokenManager) Issue(userID primitive.ObjectID) (string, error) {
	now := m.now()
	claims := &TokenClaims{
		UserID: userID.Hex(),
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			Subject:   userID.Hex(),
			Issuer:    tokenIssuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(m.ttl)),
		},
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(m.secret)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrTokenGeneration, err)
	}
	return signed, nil
}

// Parse verifies the signature and expiry of tokenString and returns its claims.
func (m *TokenManager) Parse(tokenString string) (*TokenClaims, error) {
	claims := &TokenClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		// Validate the alg is what we expect:
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return m.secret, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, unauthorized("Token has expired")
		}
		return nil, unauthorized("Invalid token")
	}
	if !token.Valid || claims.UserID == "" || claims.ExpiresAt == nil {
		return nil, unauthorized("Invalid token or missing claims")
	}
	return claims, nil
}

// Remaining returns how long the token behind claims stays valid.
func (m *TokenManager) Remaining(claims *TokenClaims) time.Duration {
	if claims.ExpiresAt == nil {
		return 0
	}
	return claims.ExpiresAt.Time.Sub(m.now())
}
