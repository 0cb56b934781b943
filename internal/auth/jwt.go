package auth

import (
	"errors"
	"time"

	"mediconnect_backend/internal/config"
	"mediconnect_backend/internal/models"

	"github.com/golang-jwt/jwt/v5"
)

// Claims are the JWT claims carried by access tokens.
type Claims struct {
	UserID string          `json:"user_id"`
	Email  string          `json:"email"`
	Role   models.UserRole `json:"role"`
	jwt.RegisteredClaims
}

// RefreshTokenExpiry is how long a refresh token stays valid.
const RefreshTokenExpiry = 7 * 24 * time.Hour

func secret() []byte {
	return []byte(config.GetConfig().JWT.Secret)
}

func tokenTTL() time.Duration {
	ttl := config.GetConfig().JWT.TTL
	if ttl <= 0 {
		ttl = 60
	}
	return time.Duration(ttl) * time.Minute
}

// GenerateToken creates a signed access token for the user.
func GenerateToken(userID, email string, role models.UserRole) (string, error) {
	now := time.Now()
	claims := &Claims{
		UserID: userID,
		Email:  email,
		Role:   role,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(tokenTTL())),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(secret())
}

// ParseToken validates a token string and returns its claims.
func ParseToken(tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return secret(), nil
	})
	if err != nil {
		return nil, err
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, errors.New("invalid token")
	}

	return claims, nil
}
