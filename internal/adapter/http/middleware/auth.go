package middleware

import (
	"log"
	"net/http"
	"strings"

	"webcharge_api/internal/infrastructure/auth"
	"webcharge_api/pkg"

	"github.com/gin-gonic/gin"
)

const ClaimsKey = "auth.claims"

// ITokenVerifier checks a raw bearer token.

type ITokenVerifier interface {
	Verify(raw string) (*auth.Claims, error)
}

var errUnauthorized = pkg.NewDomainErrorSimple("UNAUTHORIZED", "Invalid or expired token", http.StatusUnauthorized)

// RequireBearer rejects requests without a valid "Authorization: Bearer" token
// and stores the claims on the context under ClaimsKey.
func RequireBearer(v ITokenVerifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		scheme, raw, ok := strings.Cut(header, " ")
		if !ok || !strings.EqualFold(scheme, "Bearer") || strings.TrimSpace(raw) == "" {
			c.AbortWithStatusJSON(errUnauthorized.HTTPStatus, errUnauthorized.ToHTTPError())
			return
		}
		claims, err := v.Verify(strings.TrimSpace(raw))
		if err != nil {
			log.Printf("[auth][middleware] token rejected path=%s err=%v", c.FullPath(), err)
			c.AbortWithStatusJSON(errUnauthorized.HTTPStatus, errUnauthorized.ToHTTPError())
			return
		}
		c.Set(ClaimsKey, claims)
		c.Next()
	}
}
