package auth

import (
	"context"
	"net/http"
	"strings"
)

type ctxKey string

const (
	CtxUsuarioID ctxKey = "usuarioID"
	CtxPerfil    ctxKey = "perfil"
)

// PerfilAdmin é o perfil com acesso às operações administrativas.
const PerfilAdmin = "admin"

// rotas acessíveis sem token
var rotasPublicas = map[string]bool{
	"/health":     true,
	"/auth/login": true,
	"/setup":      true,
}

func MiddlewareAutenticacao(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodOptions || rotasPublicas[r.URL.Path] {
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
		ctx := context.WithValue(r.Context(), CtxUsuarioID, claims.UserID)
		ctx = context.WithValue(ctx, CtxPerfil, claims.Perfil)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func RequireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !EhAdmin(r.Context()) {
			http.Error(w, "Acesso restrito a administradores", http.StatusForbidden)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// UsuarioDoContexto devolve o ID do usuário autenticado.
func UsuarioDoContexto(ctx context.Context) (uint, bool) {
	id, ok := ctx.Value(CtxUsuarioID).(uint)
	return id, ok
}

// EhAdmin informa se o usuário autenticado tem perfil de administrador.
func EhAdmin(ctx context.Context) bool {
	perfil, _ := ctx.Value(CtxPerfil).(string)
	return perfil == PerfilAdmin
}
