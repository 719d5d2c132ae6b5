package utils

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"cardapio/model"
)

const usuarioKey = "usuario"

// AuthMiddleware validates the bearer token and loads the matching active
// user into the request context.
func AuthMiddleware(db *gorm.DB, secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Token de acesso requerido"})
			c.Abort()
			return
		}

		if !strings.HasPrefix(authHeader, "Bearer ") {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Token inválido"})
			c.Abort()
			return
		}

		userID, err := ValidateToken(secret, strings.TrimPrefix(authHeader, "Bearer "))
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Token inválido"})
			c.Abort()
			return
		}

		var usuario model.Usuario
		if err := db.First(&usuario, userID).Error; err != nil || !usuario.Ativo {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Token inválido"})
			c.Abort()
			return
		}

		c.Set(usuarioKey, &usuario)
		c.Next()
	}
}

// AdminOnly rejects requests from users without the admin role. It must run
// after AuthMiddleware.
func AdminOnly() gin.HandlerFunc {
	return func(c *gin.Context) {
		usuario, ok := CurrentUser(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Token de acesso requerido"})
			c.Abort()
			return
		}
		if usuario.Tipo != model.Admin {
			c.JSON(http.StatusForbidden, gin.H{"error": "Acesso negado. Apenas administradores."})
			c.Abort()
			return
		}
		c.Next()
	}
}

// CurrentUser returns the authenticated user stored by AuthMiddleware.
func CurrentUser(c *gin.Context) (*model.Usuario, bool) {
	value, exists := c.Get(usuarioKey)
	if !exists {
		return nil, false
	}
	usuario, ok := value.(*model.Usuario)
	return usuario, ok
}
