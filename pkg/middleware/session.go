package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/AU-Client-Portal/analytics-dashboard-api/pkg/apiErrors"
)

type contextKey string

const (
	// ContextKeySessionToken guarda o token de sessão do portal no contexto
	ContextKeySessionToken contextKey = "session_token"
)

// Rotas servidas sem token de sessão
var openPaths = map[string]struct{}{
	"/healthcheck": {},
}

// SessionToken exige a presença do token de sessão do portal em toda rota
// protegida. A ausência do token é sempre falha de autenticação e nunca chega
// ao núcleo de agregação; a validade do token é decidida depois, pelo
// resolvedor de tenant, que degrada para o tenant default em vez de rejeitar
func SessionToken() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if _, open := openPaths[r.URL.Path]; open {
				next.ServeHTTP(w, r)
				return
			}

			token := extractToken(r)
			if token == "" {
				apiErrors.WriteError(w, apiErrors.ErrMissingToken, "token de sessão ausente", "")
				return
			}

			ctx := context.WithValue(r.Context(), ContextKeySessionToken, token)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// extractToken aceita o token tanto no header Authorization quanto no
// parâmetro de query usado pelo iframe do portal
func extractToken(r *http.Request) string {
	authHeader := r.Header.Get("Authorization")
	if authHeader != "" {
		token := strings.TrimPrefix(authHeader, "Bearer ")
		if token != authHeader {
			return strings.TrimSpace(token)
		}
	}

	return strings.TrimSpace(r.URL.Query().Get("token"))
}

// SessionTokenFromContext retorna o token extraído pelo middleware
func SessionTokenFromContext(ctx context.Context) string {
	if token, ok := ctx.Value(ContextKeySessionToken).(string); ok {
		return token
	}
	return ""
}
