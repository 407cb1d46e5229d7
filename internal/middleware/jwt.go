package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/stemsi/eduverse-backend/internal/response"
	"github.com/stemsi/eduverse-backend/internal/service"
)

const (
	// ContextKeyClaims is the Gin context key for JWT claims.
	ContextKeyClaims = "claims"

	// HeaderLegacyToken is the pre-Bearer token header still sent by older clients.
	HeaderLegacyToken = "x-auth-token"
)

var errTokenMissing = errors.New("authorization header, x-auth-token or token query required")

// TokenValidator parses tokens and checks them against the denylist.
// Implemented by *service.AuthService.
type TokenValidator interface {
	ValidateToken(tokenStr string) (*service.Claims, error)
	CheckRevoked(ctx context.Context, jti string) error
}

// RequireAuth validates the JWT and stores its claims in the context.
// The token is read from the Authorization header, then x-auth-token, then ?token.
func RequireAuth(auth TokenValidator) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenStr, err := extractToken(c)
		if err != nil {
			response.AbortFail(c, http.StatusUnauthorized, response.ErrTokenRequired)
			return
		}

		claims, err := auth.ValidateToken(tokenStr)
		if err != nil {
			response.AbortFail(c, http.StatusUnauthorized, response.ErrTokenInvalid)
			return
		}

		c.Set(ContextKeyClaims, claims)
		c.Next()
	}
}

// GetClaims retrieves the JWT claims from the Gin context.
func GetClaims(c *gin.Context) *service.Claims {
	val, exists := c.Get(ContextKeyClaims)
	if !exists {
		return nil
	}
	claims, ok := val.(*service.Claims)
	if !ok {
		return nil
	}
	return claims
}

func extractToken(c *gin.Context) (string, error) {
	authHeader := c.GetHeader("Authorization")
	if authHeader != "" {
		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) == 2 && strings.EqualFold(parts[0], "bearer") {
			if tok := strings.TrimSpace(parts[1]); tok != "" {
				return tok, nil
			}
		}
	}

	if tok := c.GetHeader(HeaderLegacyToken); tok != "" {
		return tok, nil
	}

	// Fallback for clients that cannot send headers, such as file links.
	if tok := c.Query("token"); tok != "" {
		return tok, nil
	}

	return "", errTokenMissing
}
