package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ericoliveiras/simulador-financiamento/internal/auth"
)

type AuthHandler struct {
	Gate     *auth.Gate
	Sessions *auth.Sessions
}

type loginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// Login confere as credenciais do administrador, devolve o token e o grava
// também no cookie de sessão.
func (h *AuthHandler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badBody(c, err)
		return
	}

	token, err := h.Gate.Login(req.Email, req.Password)
	if errors.Is(err, auth.ErrInvalidCredentials) {
		slog.Warn("tentativa de login inválida", "ip", c.ClientIP())
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Credenciais inválidas"})
		return
	}
	if err != nil {
		respondError(c, err)
		return
	}

	if err := h.Sessions.Save(c.Writer, c.Request, token); err != nil {
		respondError(c, err)
		return
	}

	slog.Info("administrador autenticado", "ip", c.ClientIP())
	c.JSON(http.StatusOK, gin.H{"token": token})
}

// Logout expira o cookie de sessão. Tokens já emitidos continuam válidos até
// expirar.
func (h *AuthHandler) Logout(c *gin.Context) {
	if err := h.Sessions.Clear(c.Writer, c.Request); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}
