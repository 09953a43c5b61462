package middleware

import (
	"net/http"

	"retailpos/internal/apierror"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	UsuarioIDKey = "usuario_id"
	// UsuarioIDHeader carries the tenant identity verified by the upstream
	// auth gateway. This service never validates credentials itself — it
	// trusts the header and threads the id explicitly through every call.
	UsuarioIDHeader = "X-Usuario-ID"
)

// TenantContext extracts the owning tenant for the request. Every business
// route requires it; a request without a valid tenant id never reaches a
// service.
func TenantContext() gin.HandlerFunc {
	return func(c *gin.Context) {
		raw := c.GetHeader(UsuarioIDHeader)
		if raw == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, apierror.New("Identidad de negocio requerida"))
			return
		}
		usuarioID, err := uuid.Parse(raw)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, apierror.New("Identidad de negocio inválida"))
			return
		}
		c.Set(UsuarioIDKey, usuarioID)
		c.Next()
	}
}

// GetUsuarioID retrieves the tenant id set by TenantContext.
func GetUsuarioID(c *gin.Context) uuid.UUID {
	id, _ := c.MustGet(UsuarioIDKey).(uuid.UUID)
	return id
}
