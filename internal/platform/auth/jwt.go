package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/brunolandim/back-jurix/internal/platform/config"
)

type Claims struct {
	LawyerID       string `json:"sub_lawyer"`
	OrganizationID string `json:"oid"`
	Role           string `json:"role"`
	jwt.RegisteredClaims
}

// Context is the caller identity passed into engine services.
type Context struct {
	LawyerID       string
	OrganizationID string
	Role           string
}

func (c *Claims) Context() Context {
	return Context{LawyerID: c.LawyerID, OrganizationID: c.OrganizationID, Role: c.Role}
}

type TokenService struct {
	config config.JWTConfig
}

func NewTokenService(cfg config.JWTConfig) *TokenService {
	return &TokenService{config: cfg}
}

func (s *TokenService) GenerateToken(lawyerID, orgID, role string) (string, error) {
	claims := Claims{
		LawyerID:       lawyerID,
		OrganizationID: orgID,
		Role:           role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   lawyerID,
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(s.config.AccessTokenTTL)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			Issuer:    "jurix",
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.config.Secret))
}

func (s *TokenService) ValidateToken(tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return []byte(s.config.Secret), nil
	})

	if err != nil {
		return nil, err
	}

	if claims, ok := token.Claims.(*Claims); ok && token.Valid {
		return claims, nil
	}

	return nil, errors.New("invalid token")
}
