package handler

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/ericoliveiras/simulador-financiamento/internal/cache"
	"github.com/ericoliveiras/simulador-financiamento/internal/database"
	"github.com/ericoliveiras/simulador-financiamento/internal/model"
	"github.com/ericoliveiras/simulador-financiamento/internal/pdf"
	"github.com/ericoliveiras/simulador-financiamento/internal/proposal"
)

// ProposalStore é o que os handlers precisam do armazenamento.
type ProposalStore interface {
	Create(ctx context.Context, p *model.Proposal) (string, error)
	ListSigned(ctx context.Context) ([]model.Proposal, error)
	SearchSigned(ctx context.Context, f database.Filter) (database.Page, error)
	Get(ctx context.Context, id string) (*model.Proposal, error)
	Stats(ctx context.Context) (database.Stats, error)
}

type ProposalHandler struct {
	Store    ProposalStore
	Renderer *pdf.Renderer
	Cache    cache.Cache
}

// Simulate calcula os termos do financiamento sem gravar nada.
func (h *ProposalHandler) Simulate(c *gin.Context) {
	var in proposal.SimulationInput
	if err := c.ShouldBindJSON(&in); err != nil {
		badBody(c, err)
		return
	}

	draft, err := proposal.Simulate(in)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, draft)
}

// Create valida, assina e grava a proposta.
func (h *ProposalHandler) Create(c *gin.Context) {
	var in proposal.ProposalInput
	if err := c.ShouldBindJSON(&in); err != nil {
		badBody(c, err)
		return
	}

	p, err := proposal.Build(in)
	if err != nil {
		respondError(c, err)
		return
	}

	id, err := h.Store.Create(c.Request.Context(), p)
	if err != nil {
		respondError(c, err)
		return
	}

	slog.Info("proposta assinada gravada", "id", id)
	c.JSON(http.StatusCreated, gin.H{"success": true, "id": id})
}

// RenderPDF gera o PDF de uma proposta enviada no corpo, sem consultar o
// armazenamento.
func (h *ProposalHandler) RenderPDF(c *gin.Context) {
	var p model.Proposal
	if err := c.ShouldBindJSON(&p); err != nil {
		badBody(c, err)
		return
	}

	doc, err := h.Renderer.Render(p, "")
	if err != nil {
		respondError(c, err)
		return
	}
	writePDF(c, doc)
}

// List devolve as propostas assinadas, da mais recente para a mais antiga.
// Com q, page ou pageSize a listagem é filtrada e paginada, e o total vai no
// cabeçalho X-Total-Count.
func (h *ProposalHandler) List(c *gin.Context) {
	q, hasQ := c.GetQuery("q")
	pageParam, hasPage := c.GetQuery("page")
	sizeParam, hasSize := c.GetQuery("pageSize")

	if !hasQ && !hasPage && !hasSize {
		proposals, err := h.Store.ListSigned(c.Request.Context())
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, proposals)
		return
	}

	page, _ := strconv.Atoi(pageParam)
	size, _ := strconv.Atoi(sizeParam)
	result, err := h.Store.SearchSigned(c.Request.Context(), database.Filter{
		Search:   q,
		Page:     page,
		PageSize: size,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	c.Header("X-Total-Count", strconv.FormatInt(result.Total, 10))
	c.JSON(http.StatusOK, result.Items)
}

// ExportPDF gera o PDF de uma proposta gravada. Propostas não mudam depois de
// criadas, então o documento fica em cache pelo id.
func (h *ProposalHandler) ExportPDF(c *gin.Context) {
	ctx := c.Request.Context()
	id := c.Param("id")
	key := "pdf:" + id

	if h.Cache != nil {
		if doc, ok := h.Cache.Get(ctx, key); ok {
			c.Header("X-Cache", "HIT")
			writePDF(c, doc)
			return
		}
	}

	p, err := h.Store.Get(ctx, id)
	if err != nil {
		respondError(c, err)
		return
	}

	doc, err := h.Renderer.Render(*p, "")
	if err != nil {
		respondError(c, err)
		return
	}

	if h.Cache != nil {
		if err := h.Cache.Set(ctx, key, doc); err != nil {
			slog.Warn("falha ao gravar PDF em cache", "id", id, "err", err)
		}
	}
	c.Header("X-Cache", "MISS")
	writePDF(c, doc)
}

// Stats devolve os indicadores do painel administrativo.
func (h *ProposalHandler) Stats(c *gin.Context) {
	st, err := h.Store.Stats(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, st)
}

func writePDF(c *gin.Context, doc []byte) {
	disposition := "inline"
	if c.Query("download") == "1" {
		disposition = "attachment"
	}
	c.Header("Content-Disposition", disposition+`; filename="`+pdf.Filename+`"`)
	c.Data(http.StatusOK, "application/pdf", doc)
}
