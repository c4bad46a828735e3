// /cmd/web/main.go
package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/ericoliveiras/simulador-financiamento/internal/auth"
	"github.com/ericoliveiras/simulador-financiamento/internal/cache"
	"github.com/ericoliveiras/simulador-financiamento/internal/config"
	"github.com/ericoliveiras/simulador-financiamento/internal/database"
	"github.com/ericoliveiras/simulador-financiamento/internal/handler"
	"github.com/ericoliveiras/simulador-financiamento/internal/pdf"
)

func main() {
	cfg, err := config.Load("")
	if err != nil {
		slog.Error("erro ao carregar configuração", "err", err)
		os.Exit(1)
	}

	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: cfg.SlogLevel()})))

	if err := cfg.ValidateServer(); err != nil {
		slog.Error("configuração inválida", "err", err)
		os.Exit(1)
	}

	db, err := database.Connect(cfg.DatabaseURL)
	if err != nil {
		slog.Error("erro ao conectar ao banco de dados", "err", err)
		os.Exit(1)
	}

	var pdfCache cache.Cache = cache.NewMemoryCache()
	if cfg.RedisAddr != "" {
		redisCache := cache.NewRedisCache(cfg.RedisAddr, cfg.CacheTTL)
		defer redisCache.Close()

		pingCtx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
		if err := redisCache.Ping(pingCtx); err != nil {
			slog.Warn("redis indisponível, usando cache em memória", "addr", cfg.RedisAddr, "err", err)
		} else {
			pdfCache = redisCache
		}
		cancel()
	}

	gate, err := auth.NewGate(cfg.Admin)
	if err != nil {
		slog.Error("erro ao configurar acesso administrativo", "err", err)
		os.Exit(1)
	}

	sessions := auth.NewSessions([]byte(cfg.SessionSecret), int(cfg.Admin.TokenTTL.Seconds()), gin.Mode() == gin.ReleaseMode)

	loginLimiter := handler.NewRateLimiter(cfg.LoginRateLimit)
	defer loginLimiter.Stop()

	router := handler.NewRouter(handler.Deps{
		Proposals: &handler.ProposalHandler{
			Store:    database.NewProposalStore(db),
			Renderer: pdf.NewRenderer(cfg.AppName, cfg.Location()),
			Cache:    pdfCache,
		},
		Auth:         &handler.AuthHandler{Gate: gate, Sessions: sessions},
		Gate:         gate,
		Sessions:     sessions,
		LoginLimiter: loginLimiter,
	})

	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	serverErr := make(chan error, 1)
	go func() {
		slog.Info("servidor rodando", "porta", cfg.Port)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-serverErr:
		slog.Error("erro ao iniciar servidor", "err", err)
		return
	case <-quit:
		slog.Info("encerrando servidor")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		slog.Error("erro ao encerrar servidor", "err", err)
	}

	if sqlDB, err := db.DB(); err == nil {
		sqlDB.Close()
	}
	slog.Info("servidor encerrado")
}
