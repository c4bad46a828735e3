package auth

import (
	"net/http"

	"github.com/gorilla/sessions"
)

const (
	SessionName = "simulador-admin"
	tokenKey    = "adminToken"
)

// Sessions guarda o token do administrador em um cookie de sessão assinado.
type Sessions struct {
	store *sessions.CookieStore
}

// NewSessions cria o armazenamento de sessões. maxAge é em segundos.
func NewSessions(secret []byte, maxAge int, secure bool) *Sessions {
	store := sessions.NewCookieStore(secret)
	store.Options = &sessions.Options{
		Path:     "/",
		MaxAge:   maxAge,
		HttpOnly: true,
		Secure:   secure,
		SameSite: http.SameSiteLaxMode,
	}
	return &Sessions{store: store}
}

// Token lê o token gravado no cookie, se houver.
func (s *Sessions) Token(r *http.Request) string {
	session, err := s.store.Get(r, SessionName)
	if err != nil {
		return ""
	}
	token, _ := session.Values[tokenKey].(string)
	return token
}

// Save grava o token no cookie de sessão.
func (s *Sessions) Save(w http.ResponseWriter, r *http.Request, token string) error {
	session, _ := s.store.Get(r, SessionName)
	session.Values[tokenKey] = token
	return session.Save(r, w)
}

// Clear expira o cookie de sessão.
func (s *Sessions) Clear(w http.ResponseWriter, r *http.Request) error {
	session, _ := s.store.Get(r, SessionName)
	delete(session.Values, tokenKey)
	session.Options.MaxAge = -1
	return session.Save(r, w)
}

// TokenFromRequest busca a credencial primeiro no cabeçalho Authorization e,
// na ausência dele, no cookie de sessão.
func TokenFromRequest(r *http.Request, s *Sessions) string {
	if token := BearerToken(r); token != "" {
		return token
	}
	if s == nil {
		return ""
	}
	return s.Token(r)
}
