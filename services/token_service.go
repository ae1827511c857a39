package services

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/yeonz90/restaurant-api/config"
)

// TokenClaims holds the typed JWT payload carried in the authorization cookie.
type TokenClaims struct {
	UserID uint   `json:"user_id"`
	Role   string `json:"role"`
	jwt.RegisteredClaims
}

// TokenTTL is how long an issued credential stays valid.
const TokenTTL = 24 * time.Hour

func tokenSecret() []byte {
	return []byte(config.GetConfig().JWTSecret)
}

// GenerateToken creates a signed JWT for the given user.
func GenerateToken(userID uint, role string) (string, error) {
	claims := TokenClaims{
		UserID: userID,
		Role:   role,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(TokenTTL)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(tokenSecret())
}

// ValidateToken parses and verifies a JWT string against the server secret.
func ValidateToken(t string) (*TokenClaims, error) {
	token, err := jwt.ParseWithClaims(t, &TokenClaims{}, func(tok *jwt.Token) (interface{}, error) {
		return tokenSecret(), nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return nil, err
	}

	claims, ok := token.Claims.(*TokenClaims)
	if !ok || !token.Valid {
		return nil, jwt.ErrTokenInvalidClaims
	}

	return claims, nil
}
