package auth

import (
	"context"
	"net/http"
	"strings"
)

type ctxKey string

const (
	CtxUserID ctxKey = "usuarioID"
	CtxPerfil ctxKey = "perfil"
)

// Perfis aceitos nos tokens
const (
	PerfilCliente  = "cliente"
	PerfilAdvogado = "advogado"
	PerfilAdmin    = "admin"
)

func MiddlewareAutenticacao(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodOptions {
			next.ServeHTTP(w, r)
			return
		}
		h := r.Header.Get("Authorization")
		if h == "" || !strings.HasPrefix(h, "Bearer ") {
			http.Error(w, "Token ausente", http.StatusUnauthorized)
			return
		}
		raw := strings.TrimPrefix(h, "Bearer ")
		claims, err := ValidarToken(raw)
		if err != nil {
			http.Error(w, "Token inválido", http.StatusUnauthorized)
			return
		}
		ctx := context.WithValue(r.Context(), CtxUserID, claims.UserID)
		ctx = context.WithValue(ctx, CtxPerfil, claims.Perfil)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func RequireAdmin(next http.Handler) http.Handler {
	return RequirePerfil(PerfilAdmin, next)
}

// RequirePerfil restringe a rota a um perfil específico
func RequirePerfil(perfil string, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		v, _ := r.Context().Value(CtxPerfil).(string)
		if v != perfil {
			http.Error(w, "acesso negado", http.StatusForbidden)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// PerfilDo retorna o perfil do usuário autenticado no contexto
func PerfilDo(r *http.Request) string {
	v, _ := r.Context().Value(CtxPerfil).(string)
	return v
}

// UsuarioDo retorna o ID do usuário autenticado no contexto (0 se ausente)
func UsuarioDo(r *http.Request) uint {
	v, _ := r.Context().Value(CtxUserID).(uint)
	return v
}
