package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"
)

const (
	tokenHeader = "authorization"
	tokenKey    = "access_token"
)

// Token copies the bearer token from the authorization header into the
// request context. The header carries either the raw token or
// "Bearer <token>". Validation is left to the services, which know which
// failure to report for the operation at hand.
func Token() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(tokenKey, ExtractToken(c.GetHeader(tokenHeader)))
		c.Next()
	}
}

func ExtractToken(header string) string {
	header = strings.TrimSpace(header)
	if len(header) > 7 && strings.EqualFold(header[:7], "bearer ") {
		return strings.TrimSpace(header[7:])
	}
	return header
}

// AccessToken returns the token stored by Token, or "" when absent.
func AccessToken(c *gin.Context) string {
	return c.GetString(tokenKey)
}
