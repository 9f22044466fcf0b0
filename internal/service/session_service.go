package service

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/reviewloop/reviewloop/internal/models"
)

// SessionClaims is the payload carried by an admin session token. Tokens are
// issued when a shop completes the OAuth flow and presented on every admin
// API call.
type SessionClaims struct {
	ShopID     uint   `json:"shop_id"`
	ShopDomain string `json:"shop_domain"`
	jwt.RegisteredClaims
}

type SessionService struct {
	secret []byte
	expire time.Duration
}

func NewSessionService(secretKey string, expireHours int) (*SessionService, error) {
	if len(secretKey) < 16 {
		return nil, ErrWeakSecretKey
	}
	if expireHours <= 0 {
		expireHours = 24
	}
	return &SessionService{
		secret: []byte(secretKey),
		expire: time.Duration(expireHours) * time.Hour,
	}, nil
}

// IssueToken signs a session token for the given shop.
func (s *SessionService) IssueToken(shop *models.Shop) (string, error) {
	now := time.Now()
	claims := SessionClaims{
		ShopID:     shop.ID,
		ShopDomain: shop.ShopDomain,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   shop.ShopDomain,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.expire)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.secret)
}

// ParseToken validates a session token and returns its claims.
func (s *SessionService) ParseToken(tokenString string) (*SessionClaims, error) {
	claims := &SessionClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return s.secret, nil
	})
	if err != nil || !token.Valid {
		return nil, ErrTokenInvalid
	}
	return claims, nil
}
