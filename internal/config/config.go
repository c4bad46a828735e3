// /internal/config/config.go
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Admin é a identidade única do administrador, injetada na inicialização.
type Admin struct {
	Email        string        `yaml:"email"`
	Password     string        `yaml:"password"`
	PasswordHash string        `yaml:"password_hash"`
	Secret       string        `yaml:"secret"`
	TokenTTL     time.Duration `yaml:"token_ttl"`
}

// Config reúne a configuração do servidor e da CLI.
type Config struct {
	Port           string        `yaml:"port"`
	DatabaseURL    string        `yaml:"database_url"`
	SessionSecret  string        `yaml:"session_secret"`
	RedisAddr      string        `yaml:"redis_addr"`
	CacheTTL       time.Duration `yaml:"cache_ttl"`
	LoginRateLimit int           `yaml:"login_rate_limit"` // tentativas por minuto por IP
	AppName        string        `yaml:"app_name"`
	Timezone       string        `yaml:"timezone"`
	LogLevel       string        `yaml:"log_level"`
	Admin          Admin         `yaml:"admin"`
}

// Defaults devolve a configuração padrão.
func Defaults() Config {
	return Config{
		Port:           "8080",
		CacheTTL:       24 * time.Hour,
		LoginRateLimit: 5,
		AppName:        "Simulador",
		Timezone:       "America/Sao_Paulo",
		LogLevel:       "info",
		Admin: Admin{
			TokenTTL: 24 * time.Hour,
		},
	}
}

// Load carrega a configuração na ordem: padrões, arquivo YAML (path ou
// CONFIG_FILE) e variáveis de ambiente, que têm a palavra final. O arquivo
// .env é carregado antes, se existir.
func Load(path string) (Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Config{}, fmt.Errorf("erro ao carregar o arquivo .env: %w", err)
	}

	cfg := Defaults()

	if path == "" {
		path = os.Getenv("CONFIG_FILE")
	}
	if path != "" {
		if err := loadFile(path, &cfg); err != nil {
			return Config{}, err
		}
	}

	if err := applyEnv(&cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func loadFile(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("erro ao ler configuração %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("erro ao interpretar configuração %s: %w", path, err)
	}
	return nil
}

func applyEnv(cfg *Config) error {
	setString := func(key string, dst *string) {
		if v, ok := os.LookupEnv(key); ok && v != "" {
			*dst = v
		}
	}

	setString("PORT", &cfg.Port)
	setString("DATABASE_URL", &cfg.DatabaseURL)
	setString("SESSION_SECRET", &cfg.SessionSecret)
	setString("REDIS_ADDR", &cfg.RedisAddr)
	setString("APP_NAME", &cfg.AppName)
	setString("TIMEZONE", &cfg.Timezone)
	setString("LOG_LEVEL", &cfg.LogLevel)
	setString("ADMIN_EMAIL", &cfg.Admin.Email)
	setString("ADMIN_PASSWORD", &cfg.Admin.Password)
	setString("ADMIN_PASSWORD_HASH", &cfg.Admin.PasswordHash)
	setString("ADMIN_SECRET", &cfg.Admin.Secret)

	for key, dst := range map[string]*time.Duration{
		"TOKEN_TTL": &cfg.Admin.TokenTTL,
		"CACHE_TTL": &cfg.CacheTTL,
	} {
		if v := os.Getenv(key); v != "" {
			d, err := time.ParseDuration(v)
			if err != nil {
				return fmt.Errorf("%s inválido: %w", key, err)
			}
			*dst = d
		}
	}

	if v := os.Getenv("LOGIN_RATE_LIMIT"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("LOGIN_RATE_LIMIT inválido: %w", err)
		}
		cfg.LoginRateLimit = n
	}
	return nil
}

// Validate confere os campos obrigatórios para autenticação do administrador.
func (c Config) Validate() error {
	var missing []string
	if c.Admin.Email == "" {
		missing = append(missing, "ADMIN_EMAIL")
	}
	if c.Admin.Password == "" && c.Admin.PasswordHash == "" {
		missing = append(missing, "ADMIN_PASSWORD ou ADMIN_PASSWORD_HASH")
	}
	if c.Admin.Secret == "" {
		missing = append(missing, "ADMIN_SECRET")
	}
	if c.SessionSecret == "" {
		missing = append(missing, "SESSION_SECRET")
	}
	if len(missing) > 0 {
		return fmt.Errorf("configuração incompleta: %s", strings.Join(missing, ", "))
	}
	if c.Admin.TokenTTL <= 0 {
		return errors.New("TOKEN_TTL deve ser positivo")
	}
	return nil
}

// ValidateServer acrescenta as exigências do servidor HTTP.
func (c Config) ValidateServer() error {
	if err := c.Validate(); err != nil {
		return err
	}
	if c.DatabaseURL == "" {
		return errors.New("DATABASE_URL não encontrado")
	}
	return nil
}

// Location resolve o fuso horário usado nos documentos.
func (c Config) Location() *time.Location {
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return time.Local
	}
	return loc
}

// SlogLevel converte LOG_LEVEL para slog.Level.
func (c Config) SlogLevel() slog.Level {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return slog.LevelInfo
	}
	return lvl
}
