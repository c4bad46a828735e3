package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ericoliveiras/simulador-financiamento/internal/database"
	"github.com/ericoliveiras/simulador-financiamento/internal/pdf"
	"github.com/ericoliveiras/simulador-financiamento/internal/proposal"
)

// respondError traduz os erros do domínio para a resposta HTTP. Causas
// internas ficam só no log.
func respondError(c *gin.Context, err error) {
	var (
		ve *proposal.ValidationError
		re *pdf.RenderError
		pe *database.PersistenceError
	)

	switch {
	case errors.As(err, &ve):
		c.JSON(http.StatusBadRequest, gin.H{"error": "Dados inválidos", "details": ve.Fields})
	case errors.Is(err, database.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Proposta não encontrada"})
	case errors.As(err, &re):
		slog.Error("falha ao gerar PDF", "path", c.Request.URL.Path, "err", err)
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "Não foi possível gerar o documento"})
	case errors.As(err, &pe):
		slog.Error("falha de persistência", "op", pe.Op, "path", c.Request.URL.Path, "err", pe.Err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erro interno do servidor"})
	default:
		slog.Error("erro inesperado", "path", c.Request.URL.Path, "err", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erro interno do servidor"})
	}
}

// badBody responde a corpos que não puderam ser decodificados.
func badBody(c *gin.Context, err error) {
	slog.Debug("corpo da requisição inválido", "path", c.Request.URL.Path, "err", err)
	c.JSON(http.StatusBadRequest, gin.H{
		"error":   "Dados inválidos",
		"details": []proposal.FieldError{{Field: "body", Message: "Corpo da requisição inválido"}},
	})
}
