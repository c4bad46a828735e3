// /internal/database/database.go
package database

import (
	"fmt"
	"log/slog"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/ericoliveiras/simulador-financiamento/internal/model"
)

// Option ajusta a configuração do GORM.
type Option func(*gorm.Config)

// WithNowFunc define o relógio usado para preencher created_at.
func WithNowFunc(now func() time.Time) Option {
	return func(c *gorm.Config) { c.NowFunc = now }
}

// WithSilentLogger desliga o log de SQL do GORM.
func WithSilentLogger() Option {
	return func(c *gorm.Config) { c.Logger = logger.Default.LogMode(logger.Silent) }
}

// Connect abre a conexão com o Postgres e executa as migrações.
func Connect(dsn string, opts ...Option) (*gorm.DB, error) {
	if dsn == "" {
		return nil, fmt.Errorf("DATABASE_URL não encontrado")
	}
	db, err := Open(postgres.Open(dsn), opts...)
	if err != nil {
		return nil, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("falha ao obter conexão sql: %w", err)
	}
	sqlDB.SetMaxOpenConns(10)
	sqlDB.SetMaxIdleConns(2)
	sqlDB.SetConnMaxLifetime(30 * time.Minute)

	slog.Info("conexão com o banco de dados estabelecida")
	return db, nil
}

// Open abre o banco com o dialeto informado e executa as migrações. Os testes
// usam SQLite em memória.
func Open(dialector gorm.Dialector, opts ...Option) (*gorm.DB, error) {
	cfg := &gorm.Config{}
	for _, opt := range opts {
		opt(cfg)
	}

	db, err := gorm.Open(dialector, cfg)
	if err != nil {
		return nil, fmt.Errorf("falha ao conectar ao banco de dados: %w", err)
	}

	if err := db.AutoMigrate(&model.Proposal{}); err != nil {
		return nil, fmt.Errorf("falha ao executar migrações: %w", err)
	}
	return db, nil
}
