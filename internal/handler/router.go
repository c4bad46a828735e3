package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/ericoliveiras/simulador-financiamento/internal/auth"
)

// Deps reúne as dependências das rotas.
type Deps struct {
	Proposals    *ProposalHandler
	Auth         *AuthHandler
	Gate         *auth.Gate
	Sessions     *auth.Sessions
	LoginLimiter *RateLimiter
}

// NewRouter monta as rotas da API.
func NewRouter(d Deps) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery(), RequestLogger())

	router.GET("/healthz", Healthz)

	api := router.Group("/api")
	api.POST("/simulacoes", d.Proposals.Simulate)
	api.POST("/proposals", d.Proposals.Create)
	api.POST("/proposals/pdf", d.Proposals.RenderPDF)

	login := []gin.HandlerFunc{d.Auth.Login}
	if d.LoginLimiter != nil {
		login = append([]gin.HandlerFunc{d.LoginLimiter.Middleware()}, login...)
	}
	api.POST("/admin/login", login...)
	api.POST("/admin/logout", d.Auth.Logout)

	admin := api.Group("", d.Gate.Required(d.Sessions))
	admin.GET("/proposals", d.Proposals.List)
	admin.GET("/proposals/:id/pdf", d.Proposals.ExportPDF)
	admin.GET("/admin/stats", d.Proposals.Stats)

	return router
}
