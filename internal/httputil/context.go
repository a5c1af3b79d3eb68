package httputil

import (
	"net/url"

	"github.com/gin-gonic/gin"
)

type ContextKey string

// ContextURL is the key for the base URL of the API in the gin context.
const ContextURL ContextKey = "apiURL"

// URLMiddleware sets the base URL of the API in the context
// so that handlers can build links to resources.
func URLMiddleware(url *url.URL) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(string(ContextURL), url.String())
		c.Next()
	}
}
