package utils

import (
	"errors"
	"time"

	"karigar/config"
	"karigar/models"

	"github.com/golang-jwt/jwt"
)

// Claims carried by bearer tokens. Tokens are issued elsewhere; this
// service only validates them.
type Claims struct {
	Role models.Role `json:"role"`
	Name string      `json:"name,omitempty"`
	jwt.StandardClaims
}

func secretKey() []byte {
	return []byte(config.AppConfig.JWTSecret)
}

// GenerateToken creates a signed HS256 token for subject with the given role.
func GenerateToken(subject string, role models.Role, name string, duration time.Duration) (string, error) {
	now := time.Now()
	claims := Claims{
		Role: role,
		Name: name,
		StandardClaims: jwt.StandardClaims{
			Subject:   subject,
			IssuedAt:  now.Unix(),
			ExpiresAt: now.Add(duration).Unix(),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(secretKey())
}

// ValidateToken parses a token string and returns the claims if valid.
func ValidateToken(tokenString string) (*Claims, error) {
	if len(secretKey()) == 0 {
		return nil, errors.New("jwt secret is not configured")
	}

	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return secretKey(), nil
	})
	if err != nil {
		return nil, err
	}
	if !token.Valid {
		return nil, errors.New("invalid token")
	}
	if claims.Subject == "" {
		return nil, errors.New("token does not contain a valid 'sub' claim")
	}
	return claims, nil
}

// ActorFromClaims converts validated claims into the caller identity.
func ActorFromClaims(c *Claims) models.Actor {
	return models.Actor{ID: c.Subject, Role: c.Role, Name: c.Name}
}
