package auth

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/finanzas-app/backend/internal/httputil"
	"github.com/finanzas-app/backend/internal/models"
	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

type contextKey string

const identityKey contextKey = "identity"

// Authenticator resolves session tokens to identities.
type Authenticator interface {
	CurrentUser(ctx context.Context, token string) (*models.Identity, error)
}

// BearerToken returns the token from the Authorization header.
func BearerToken(c *gin.Context) string {
	header := c.GetHeader("Authorization")
	if !strings.HasPrefix(header, "Bearer ") {
		return ""
	}

	return strings.TrimSpace(strings.TrimPrefix(header, "Bearer "))
}

// Middleware aborts all requests that do not carry a valid session token.
// For valid tokens, the identity is stored in the context.
func Middleware(a Authenticator) gin.HandlerFunc {
	return func(c *gin.Context) {
		identity, err := a.CurrentUser(c.Request.Context(), BearerToken(c))
		if err != nil {
			if !errors.Is(err, models.ErrAuth) {
				log.Error().Str("request-id", requestid.Get(c)).Err(err).Msg("looking up session failed")
				httputil.NewError(c, http.StatusInternalServerError, models.ErrGeneral)
				c.Abort()
				return
			}

			log.Debug().Str("request-id", requestid.Get(c)).Err(err).Msg("authentication failed")
			httputil.NewError(c, http.StatusUnauthorized, err)
			c.Abort()
			return
		}

		if identity == nil {
			httputil.NewError(c, http.StatusUnauthorized, models.ErrSessionMissing)
			c.Abort()
			return
		}

		c.Set(string(identityKey), *identity)
		c.Next()
	}
}

// Identity returns the identity of the authenticated user.
func Identity(c *gin.Context) (models.Identity, bool) {
	value, ok := c.Get(string(identityKey))
	if !ok {
		return models.Identity{}, false
	}

	identity, ok := value.(models.Identity)
	return identity, ok
}
