// Package auth issues and validates the bearer tokens that identify users.
//
// A user is identified by their email address. The token carries it as a
// custom claim, signed with HS256.
package auth

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

// ContextUser is the gin context key the middleware stores the user's email
// under.
const ContextUser = "user"

// DefaultTokenLifetime is used when no explicit lifetime is configured.
const DefaultTokenLifetime = 24 * time.Hour

var ErrNoToken = errors.New("missing or malformed Authorization header")

type Claims struct {
	Email string `json:"email"`
	jwt.RegisteredClaims
}

// GenerateToken creates a signed token for the user with the given email.
func GenerateToken(email, secret string, lifetime time.Duration) (string, error) {
	claims := Claims{
		Email: email,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(lifetime)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

// ParseToken validates a token string and returns its claims.
func ParseToken(tokenString, secret string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(_ *jwt.Token) (any, error) {
		return []byte(secret), nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return nil, err
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid || claims.Email == "" {
		return nil, jwt.ErrTokenInvalidClaims
	}

	return claims, nil
}

// Middleware rejects requests without a valid bearer token and stores the
// user's email in the context for the handlers.
func Middleware(secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" || !strings.HasPrefix(header, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": ErrNoToken.Error()})
			return
		}

		claims, err := ParseToken(strings.TrimPrefix(header, "Bearer "), secret)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid or expired token"})
			return
		}

		c.Set(ContextUser, claims.Email)
		c.Next()
	}
}

// User returns the authenticated user's email from the context.
func User(c *gin.Context) string {
	return c.GetString(ContextUser)
}
