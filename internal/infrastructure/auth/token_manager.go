package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

var (
	ErrInvalidAppID = errors.New("invalid app id")
	ErrInvalidToken = errors.New("invalid or expired token")
	ErrNoSecret     = errors.New("auth secret not configured")
)

const DefaultTokenTTL = 3 * time.Hour

// Claims identify the calling application. TokenID is unique per issued token.
type Claims struct {
	AppID   string `json:"appId"`
	TokenID string `json:"token_id"`
	jwt.RegisteredClaims
}

// TokenManager issues and checks HS256 bearer tokens for one application id.
type TokenManager struct {
	appID  string
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

func NewTokenManager(appID, secret string, ttl time.Duration) (*TokenManager, error) {
	if secret == "" {
		return nil, ErrNoSecret
	}
	if ttl <= 0 {
		ttl = DefaultTokenTTL
	}
	return &TokenManager{appID: appID, secret: []byte(secret), ttl: ttl, now: time.Now}, nil
}

func (m *TokenManager) Issue(appID string) (string, error) {
	if appID == "" || appID != m.appID {
		return "", ErrInvalidAppID
	}
	now := m.now()
	claims := Claims{
		AppID:   appID,
		TokenID: uuid.NewString(),
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(m.ttl)),
		},
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(m.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return signed, nil
}

func (m *TokenManager) Verify(raw string) (*Claims, error) {
	claims := &Claims{}
	_, err := jwt.ParseWithClaims(raw, claims, func(*jwt.Token) (any, error) {
		return m.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(m.now),
	)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	return claims, nil
}
