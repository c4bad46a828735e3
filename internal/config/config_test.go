package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// chdir muda o diretório de trabalho e o restaura ao fim do teste
// (equivalente a testing.T.Chdir, indisponível antes do Go 1.24).
func chdir(t *testing.T, dir string) {
	t.Helper()
	old, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(old) })
}

func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{
		"PORT", "DATABASE_URL", "SESSION_SECRET", "REDIS_ADDR", "APP_NAME", "TIMEZONE",
		"LOG_LEVEL", "ADMIN_EMAIL", "ADMIN_PASSWORD", "ADMIN_PASSWORD_HASH", "ADMIN_SECRET",
		"TOKEN_TTL", "CACHE_TTL", "LOGIN_RATE_LIMIT", "CONFIG_FILE",
	} {
		t.Setenv(k, "")
	}
}

func TestLoad_DefaultsAndEnv(t *testing.T) {
	clearEnv(t)
	chdir(t, t.TempDir())
	t.Setenv("ADMIN_EMAIL", "admin@admin.com")
	t.Setenv("ADMIN_PASSWORD", "admin123")
	t.Setenv("ADMIN_SECRET", "segredo")
	t.Setenv("SESSION_SECRET", "sessao")
	t.Setenv("TOKEN_TTL", "2h")
	t.Setenv("LOGIN_RATE_LIMIT", "3")

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, 2*time.Hour, cfg.Admin.TokenTTL)
	assert.Equal(t, 3, cfg.LoginRateLimit)
	assert.NoError(t, cfg.Validate())
	assert.Error(t, cfg.ValidateServer(), "DATABASE_URL is required for the server")
}

func TestLoad_YAMLFileThenEnvOverride(t *testing.T) {
	clearEnv(t)
	dir := t.TempDir()
	chdir(t, dir)

	path := filepath.Join(dir, "simulador.yaml")
	yml := `
port: "9090"
database_url: postgres://localhost/simulador
app_name: Simulador Imobiliário
admin:
  email: admin@example.com
  password_hash: "$2a$10$abcdefghijklmnopqrstuu"
  secret: do-arquivo
  token_ttl: 12h
`
	require.NoError(t, os.WriteFile(path, []byte(yml), 0o600))
	t.Setenv("ADMIN_SECRET", "do-ambiente")
	t.Setenv("SESSION_SECRET", "sessao")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "9090", cfg.Port)
	assert.Equal(t, "Simulador Imobiliário", cfg.AppName)
	assert.Equal(t, "do-ambiente", cfg.Admin.Secret)
	assert.Equal(t, 12*time.Hour, cfg.Admin.TokenTTL)
	assert.NoError(t, cfg.ValidateServer())
}

func TestLoad_DotEnv(t *testing.T) {
	clearEnv(t)
	dir := t.TempDir()
	chdir(t, dir)
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte("APP_NAME=Via Dotenv\n"), 0o600))
	// godotenv não sobrescreve variáveis já definidas, então APP_NAME não pode
	// existir no ambiente neste teste.
	require.NoError(t, os.Unsetenv("APP_NAME"))

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "Via Dotenv", cfg.AppName)
}

func TestLoad_InvalidDuration(t *testing.T) {
	clearEnv(t)
	chdir(t, t.TempDir())
	t.Setenv("TOKEN_TTL", "amanhã")
	_, err := Load("")
	assert.Error(t, err)
}

func TestValidate_Missing(t *testing.T) {
	err := Defaults().Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "ADMIN_EMAIL")
	assert.Contains(t, err.Error(), "ADMIN_SECRET")
}

func TestSlogLevel(t *testing.T) {
	cfg := Defaults()
	cfg.LogLevel = "debug"
	assert.Equal(t, slog.LevelDebug, cfg.SlogLevel())
	cfg.LogLevel = "???"
	assert.Equal(t, slog.LevelInfo, cfg.SlogLevel())
}
