package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/directiva-mx/admin-api/internal/domain/admin"
	xerrors "github.com/directiva-mx/admin-api/internal/pkg/errors"
	"github.com/directiva-mx/admin-api/internal/pkg/response"

	"github.com/gin-gonic/gin"
)

const principalKey = "admin_principal"

// Verifier validates a bearer credential and returns the live principal.
type Verifier interface {
	Verify(ctx context.Context, tokenString string) (*admin.AdminUser, error)
}

// AuthMiddleware gates every protected route. The credential is re-checked
// against the store on each request; a deactivated admin loses access
// immediately, not at token expiry.
func AuthMiddleware(verifier Verifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		raw := extractToken(c)
		if raw == "" {
			response.Error(c, http.StatusUnauthorized, "Token no proporcionado", nil)
			return
		}

		principal, err := verifier.Verify(c.Request.Context(), raw)
		if err != nil {
			switch {
			case errors.Is(err, xerrors.ErrPrincipalInactive):
				response.Error(c, http.StatusUnauthorized, "Usuario no encontrado o inactivo", nil)
			case errors.Is(err, xerrors.ErrTokenExpired), errors.Is(err, xerrors.ErrTokenMalformed), errors.Is(err, xerrors.ErrWrongTokenType):
				response.Error(c, http.StatusUnauthorized, "Token inválido o expirado", nil)
			default:
				response.Error(c, http.StatusInternalServerError, "Error interno del servidor", err)
			}
			return
		}

		c.Set(principalKey, principal)
		c.Next()
	}
}

// GetAdmin returns the authenticated principal set by AuthMiddleware.
func GetAdmin(c *gin.Context) (*admin.AdminUser, bool) {
	v, ok := c.Get(principalKey)
	if !ok {
		return nil, false
	}
	principal, ok := v.(*admin.AdminUser)
	return principal, ok
}

func extractToken(c *gin.Context) string {
	header := c.GetHeader("Authorization")
	if header == "" {
		return ""
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return strings.TrimSpace(parts[1])
}
