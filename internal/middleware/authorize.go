package middleware

import (
	"context"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"qaforum/api/internal/apperr"
	"qaforum/api/internal/models"
	"qaforum/api/internal/service"
)

const principalKey = "principal"

type Authenticator interface {
	Authenticate(ctx context.Context, token string, action service.Action) (service.Principal, error)
}

// RequireRoles authenticates the caller and admits only the given roles.
// It must run after Token.
func RequireRoles(auth Authenticator, action service.Action, log zerolog.Logger, roles ...models.UserRole) gin.HandlerFunc {
	roleSet := make(map[models.UserRole]struct{}, len(roles))
	for _, role := range roles {
		roleSet[role] = struct{}{}
	}

	return func(c *gin.Context) {
		principal, err := auth.Authenticate(c.Request.Context(), AccessToken(c), action)
		if err != nil {
			AbortWithError(c, log, err)
			return
		}

		if _, ok := roleSet[principal.Role]; !ok {
			AbortWithError(c, log, apperr.ErrForbidden)
			return
		}

		c.Set(principalKey, principal)
		c.Next()
	}
}

// CurrentPrincipal returns the principal set by RequireRoles.
func CurrentPrincipal(c *gin.Context) (service.Principal, bool) {
	val, exists := c.Get(principalKey)
	if !exists {
		return service.Principal{}, false
	}
	principal, ok := val.(service.Principal)
	return principal, ok
}
