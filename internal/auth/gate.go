// /internal/auth/gate.go
package auth

import (
	"crypto/subtle"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"github.com/ericoliveiras/simulador-financiamento/internal/config"
)

var (
	ErrUnauthenticated    = errors.New("não autorizado")
	ErrInvalidCredentials = errors.New("credenciais inválidas")
)

// Claims são os dados carregados pelo token do administrador.
type Claims struct {
	Email string `json:"email"`
	jwt.RegisteredClaims
}

// Gate emite e verifica as credenciais do administrador. Existe uma única
// identidade, vinda da configuração.
type Gate struct {
	email        string
	passwordHash []byte
	secret       []byte
	ttl          time.Duration
	now          func() time.Time
}

// Option ajusta a criação do Gate.
type Option func(*gateOptions)

type gateOptions struct {
	now  func() time.Time
	cost int
}

// WithClock substitui o relógio usado na emissão e na verificação.
func WithClock(now func() time.Time) Option {
	return func(o *gateOptions) { o.now = now }
}

// WithBcryptCost define o custo do hash gerado a partir da senha em texto.
func WithBcryptCost(cost int) Option {
	return func(o *gateOptions) { o.cost = cost }
}

// NewGate cria o Gate a partir da identidade configurada. Quando só a senha
// em texto é informada, o hash é gerado aqui e a senha não é guardada.
func NewGate(admin config.Admin, opts ...Option) (*Gate, error) {
	o := gateOptions{now: time.Now, cost: bcrypt.DefaultCost}
	for _, opt := range opts {
		opt(&o)
	}

	if admin.Email == "" || admin.Secret == "" {
		return nil, errors.New("identidade do administrador incompleta")
	}

	hash := []byte(admin.PasswordHash)
	if len(hash) == 0 {
		if admin.Password == "" {
			return nil, errors.New("senha do administrador não configurada")
		}
		var err error
		hash, err = bcrypt.GenerateFromPassword([]byte(admin.Password), o.cost)
		if err != nil {
			return nil, fmt.Errorf("erro ao gerar hash da senha: %w", err)
		}
	}

	ttl := admin.TokenTTL
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}

	return &Gate{
		email:        strings.ToLower(strings.TrimSpace(admin.Email)),
		passwordHash: hash,
		secret:       []byte(admin.Secret),
		ttl:          ttl,
		now:          o.now,
	}, nil
}

// Login confere email e senha e emite um token válido por TTL (24h padrão).
func (g *Gate) Login(email, password string) (string, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	emailOK := subtle.ConstantTimeCompare([]byte(email), []byte(g.email)) == 1
	passErr := bcrypt.CompareHashAndPassword(g.passwordHash, []byte(password))
	if !emailOK || passErr != nil {
		return "", ErrInvalidCredentials
	}

	now := g.now()
	claims := Claims{
		Email: g.email,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   g.email,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(g.ttl)),
		},
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(g.secret)
	if err != nil {
		return "", fmt.Errorf("erro ao assinar token: %w", err)
	}
	return token, nil
}

// Verify valida assinatura e expiração do token. Qualquer falha resulta em
// ErrUnauthenticated.
func (g *Gate) Verify(token string) (*Claims, error) {
	if token == "" {
		return nil, ErrUnauthenticated
	}

	claims := &Claims{}
	parsed, err := jwt.ParseWithClaims(token, claims,
		func(*jwt.Token) (any, error) { return g.secret, nil },
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(g.now),
	)
	if err != nil || !parsed.Valid {
		return nil, fmt.Errorf("%w: %v", ErrUnauthenticated, err)
	}
	if claims.Email != g.email {
		return nil, ErrUnauthenticated
	}
	return claims, nil
}

// BearerToken extrai o token do cabeçalho Authorization.
func BearerToken(r *http.Request) string {
	h := r.Header.Get("Authorization")
	if len(h) > 7 && strings.EqualFold(h[:7], "Bearer ") {
		return strings.TrimSpace(h[7:])
	}
	return ""
}
