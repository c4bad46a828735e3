package auth

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
)

// ContextKey é a chave das claims do administrador no contexto do gin.
const ContextKey = "admin"

// Required é um middleware que só deixa passar requisições com credencial
// válida de administrador. Sem credencial válida responde 401.
func (g *Gate) Required(s *Sessions) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, err := g.Verify(TokenFromRequest(c.Request, s))
		if err != nil {
			slog.Debug("AuthRequired: credencial ausente ou inválida", "path", c.Request.URL.Path, "err", err)
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Não autorizado"})
			return
		}

		c.Set(ContextKey, claims)
		c.Next()
	}
}

// FromContext devolve as claims gravadas por Required.
func FromContext(c *gin.Context) (*Claims, bool) {
	v, ok := c.Get(ContextKey)
	if !ok {
		return nil, false
	}
	claims, ok := v.(*Claims)
	return claims, ok
}
