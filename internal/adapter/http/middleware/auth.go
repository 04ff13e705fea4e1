package middleware

import (
	"errors"
	"log"
	"net/http"
	"strings"

	"estimate_service/internal/domain/entities"
	"estimate_service/internal/usecase/interfaces"
	"estimate_service/pkg"

	"github.com/gin-gonic/gin"
)

const principalKey = "estimate.principal"

var (
	errMissingToken  = pkg.NewDomainErrorSimple("UNAUTHORIZED", "Missing bearer token", http.StatusUnauthorized)
	errInvalidToken  = pkg.NewDomainErrorSimple("UNAUTHORIZED", "Session not found or expired", http.StatusUnauthorized)
	errSessionLookup = pkg.NewDomainErrorSimple("SESSION_UNAVAILABLE", "Session store unavailable", http.StatusServiceUnavailable)
)

// AuthRequired resolves "Authorization: Bearer <token>" through the session
// store and stores the principal on the gin context.
func AuthRequired(sessions interfaces.ISessionStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := bearerToken(c.GetHeader("Authorization"))
		if token == "" {
			c.AbortWithStatusJSON(errMissingToken.HTTPStatus, errMissingToken.ToHTTPError())
			return
		}

		principal, err := sessions.Lookup(c.Request.Context(), token)
		if err != nil {
			if errors.Is(err, interfaces.ErrSessionNotFound) {
				c.AbortWithStatusJSON(errInvalidToken.HTTPStatus, errInvalidToken.ToHTTPError())
				return
			}
			log.Printf("[estimate][auth] session lookup failed err=%v", err)
			c.AbortWithStatusJSON(errSessionLookup.HTTPStatus, errSessionLookup.ToHTTPError())
			return
		}

		c.Set(principalKey, principal)
		c.Next()
	}
}

// PrincipalFromContext returns the caller set by AuthRequired, or the zero
// principal when the route is not protected.
func PrincipalFromContext(c *gin.Context) entities.Principal {
	v, ok := c.Get(principalKey)
	if !ok {
		return entities.Principal{}
	}
	p, _ := v.(entities.Principal)
	return p
}

// SetPrincipal is used by tests and internal callers that authenticate by
// other means.
func SetPrincipal(c *gin.Context, p entities.Principal) {
	c.Set(principalKey, p)
}

func bearerToken(header string) string {
	scheme, token, ok := strings.Cut(strings.TrimSpace(header), " ")
	if !ok || !strings.EqualFold(scheme, "Bearer") {
		return ""
	}
	return strings.TrimSpace(token)
}
