package auth

import (
	"errors"
	"net/http"
	"strings"

	"hr-platform/internal/obs"

	"github.com/gin-gonic/gin"
)

const authorizationHeader = "Authorization"
const bearerPrefix = "Bearer "

// RequireUser verifies the bearer token, reloads live account state and
// injects the identity into the request context. It does not perform RBAC
// checks; those belong to internal/rbac.
//
// Any failed step is terminal for the request: missing/invalid/expired
// token -> 401, account gone or deactivated mid-session -> 403.
func RequireUser(svc *Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		raw := strings.TrimSpace(c.GetHeader(authorizationHeader))
		if raw == "" || !strings.HasPrefix(raw, bearerPrefix) {
			obs.AuthzRejection(obs.OutcomeMissingToken)
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing bearer token"})
			return
		}
		tok := strings.TrimPrefix(raw, bearerPrefix)

		id, err := svc.Authorize(c.Request.Context(), tok)
		if err != nil {
			status, msg, reason := authzStatus(err)
			obs.AuthzRejection(reason)
			c.AbortWithStatusJSON(status, gin.H{"error": msg})
			return
		}

		c.Request = c.Request.WithContext(WithIdentity(c.Request.Context(), id))

		// Also store on gin context for handler convenience.
		c.Set("user_id", id.UserID)
		c.Set("role", id.Role)

		c.Next()
	}
}

func authzStatus(err error) (int, string, string) {
	switch {
	case errors.Is(err, ErrTokenExpired):
		// Expired access is rejected here; the client is expected to call
		// the refresh endpoint, which is the only path with a grace window.
		return http.StatusUnauthorized, "token expired", obs.OutcomeExpired
	case errors.Is(err, ErrInvalidToken):
		return http.StatusUnauthorized, "invalid token", obs.OutcomeInvalidToken
	case errors.Is(err, ErrAccountNotFound):
		return http.StatusForbidden, "account not found", obs.OutcomeAccountMissing
	case errors.Is(err, ErrAccountInactive):
		return http.StatusForbidden, "account inactive", obs.OutcomeInactive
	default:
		return http.StatusInternalServerError, "internal error", obs.OutcomeError
	}
}
