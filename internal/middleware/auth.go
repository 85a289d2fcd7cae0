package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"sahayak/internal/domain"
	"sahayak/internal/pkg/apperror"
	"sahayak/internal/pkg/jwt"
	"sahayak/internal/pkg/response"
)

const (
	ctxPrincipalID = "principal_id"
	ctxRole        = "role"
	tokenCookie    = "token"
)

// PrincipalChecker reports the current account status of a token subject.
type PrincipalChecker interface {
	PrincipalStatus(ctx context.Context, id string, role domain.Role) (domain.AccountStatus, error)
}

// JWTAuth verifies the bearer token (or the token cookie) and, when
// principals is set, re-reads the account on every request so a block takes
// effect without waiting for the token to expire.
func JWTAuth(jwtSvc *jwt.Service, principals PrincipalChecker) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, code, msg := extractToken(c)
		if token == "" {
			response.Abort(c, http.StatusUnauthorized, code, msg)
			return
		}

		claims, err := jwtSvc.ValidateToken(token)
		if err != nil {
			response.Abort(c, http.StatusUnauthorized, "INVALID_TOKEN", "Invalid or expired token")
			return
		}

		role := domain.Role(claims.Role)
		if principals != nil {
			status, err := principals.PrincipalStatus(c.Request.Context(), claims.Subject, role)
			switch {
			case errors.Is(err, apperror.ErrNotFound):
				response.Abort(c, http.StatusUnauthorized, "INVALID_TOKEN", "Account no longer exists")
				return
			case err != nil:
				_ = c.Error(err)
				response.Abort(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Internal error")
				return
			case status == domain.StatusBlocked:
				response.Abort(c, http.StatusForbidden, "ACCOUNT_BLOCKED", "Account is blocked")
				return
			}
		}

		c.Set(ctxPrincipalID, claims.Subject)
		c.Set(ctxRole, string(role))
		c.Next()
	}
}

func extractToken(c *gin.Context) (string, string, string) {
	header := c.GetHeader("Authorization")
	if header == "" {
		if cookie, err := c.Cookie(tokenCookie); err == nil && cookie != "" {
			return cookie, "", ""
		}
		return "", "AUTH_HEADER_MISSING", "Authorization header is required"
	}

	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") || strings.TrimSpace(parts[1]) == "" {
		return "", "INVALID_AUTH_FORMAT", "Authorization header must be 'Bearer <token>'"
	}
	return strings.TrimSpace(parts[1]), "", ""
}

// PrincipalID returns the authenticated subject id, or "" on public routes.
func PrincipalID(c *gin.Context) string {
	return c.GetString(ctxPrincipalID)
}

func Role(c *gin.Context) domain.Role {
	return domain.Role(c.GetString(ctxRole))
}
