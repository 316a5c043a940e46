package httpserver

import (
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"

	"github.com/nielsbergsma/blimpco/internal/platform/apierrors"
)

const agentScopeKey = "blimpco_is_agent"

// RequireAPIKey guards operator-only routes (journey publishing, scheduling
// commands) with a static API key.
func RequireAPIKey(expected string) gin.HandlerFunc {
	return func(c *gin.Context) {
		key := c.GetHeader("X-API-Key")
		if key == "" {
			WriteError(c, apierrors.NewUnauthorizedError("missing_api_key", "X-API-Key header is required"))
			c.Abort()
			return
		}
		if key != expected {
			WriteError(c, apierrors.NewForbiddenError("invalid_api_key", "X-API-Key header is invalid"))
			c.Abort()
			return
		}
		c.Next()
	}
}

// RequireBearerToken parses a JWT bearer token (if present) and records
// whether it carries the "agent" scope, so downstream handlers can select
// the agent or passenger reservation policy. A missing token is treated as
// an anonymous passenger request, not an error — §6's HTTP surface allows
// unauthenticated passenger confirmation.
func RequireBearerToken(signingKey string) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" {
			c.Set(agentScopeKey, false)
			c.Next()
			return
		}

		parts := strings.SplitN(header, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			WriteError(c, apierrors.NewUnauthorizedError("malformed_authorization_header", "expected 'Bearer <token>'"))
			c.Abort()
			return
		}

		claims := jwt.MapClaims{}
		_, err := jwt.ParseWithClaims(parts[1], claims, func(t *jwt.Token) (interface{}, error) {
			return []byte(signingKey), nil
		})
		if err != nil {
			WriteError(c, apierrors.NewForbiddenError("invalid_token", "bearer token is invalid or expired"))
			c.Abort()
			return
		}

		isAgent := false
		if scope, ok := claims["scope"].(string); ok {
			isAgent = strings.Contains(scope, "agent")
		}
		c.Set(agentScopeKey, isAgent)
		c.Next()
	}
}

// IsAgent reads the scope recorded by RequireBearerToken.
func IsAgent(c *gin.Context) bool {
	v, _ := c.Get(agentScopeKey)
	isAgent, _ := v.(bool)
	return isAgent
}
