package helpers

import (
	"errors"
	"fmt"
	"time"

	"food-marketplace/models"

	"github.com/dgrijalva/jwt-go"
)

// TokenTTL is how long an issued signature stays valid.
const TokenTTL = 24 * time.Hour

type SignedDetails struct {
	Uid      string
	Email    string
	Verified bool
	Role     models.Role
	jwt.StandardClaims
}

type TokenHelper struct {
	secret []byte
	ttl    time.Duration
}

func NewTokenHelper(secret string, ttl time.Duration) *TokenHelper {
	return &TokenHelper{secret: []byte(secret), ttl: ttl}
}

func (h *TokenHelper) GenerateToken(p models.Principal) (string, error) {
	now := time.Now()
	claims := SignedDetails{
		Uid:      p.ID,
		Email:    p.Email,
		Verified: p.Verified,
		Role:     p.Role,
		StandardClaims: jwt.StandardClaims{
			IssuedAt:  now.Unix(),
			ExpiresAt: now.Add(h.ttl).Unix(),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(h.secret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return token, nil
}

func (h *TokenHelper) ValidateToken(signedToken string) (*SignedDetails, error) {
	token, err := jwt.ParseWithClaims(
		signedToken,
		&SignedDetails{},
		func(t *jwt.Token) (interface{}, error) {
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, errors.New("invalid token signing method")
			}
			return h.secret, nil
		},
	)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", models.ErrUnauthorized, err)
	}
	claims, ok := token.Claims.(*SignedDetails)
	if !ok || !token.Valid {
		return nil, fmt.Errorf("%w: the token is invalid", models.ErrUnauthorized)
	}
	return claims, nil
}

// Principal converts validated claims into the request principal.
func (d *SignedDetails) Principal() models.Principal {
	return models.Principal{ID: d.Uid, Email: d.Email, Verified: d.Verified, Role: d.Role}
}
