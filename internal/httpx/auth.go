package httpx

import (
	"context"
	"net/http"
	"strings"

	"github.com/Ishangupta-cyber/BookStoreManagement/internal/users"
)

type ctxKey int

const userCtxKey ctxKey = 0

// UserSource memuat user dari id hasil verifikasi token.
type UserSource interface {
	GetByID(ctx context.Context, id string) (*users.User, error)
}

// AuthMiddleware = padanan middleware authorizer di versi aslinya:
// token dari cookie "token" atau header Authorization Bearer, verifikasi
// JWT, muat user, taruh di context request.
type AuthMiddleware struct {
	Auth  *users.Auth
	Users UserSource
}

func (a *AuthMiddleware) Authorize(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token := tokenFrom(r)
		if token == "" {
			writeError(w, http.StatusUnauthorized, "authentication required")
			return
		}
		id, err := a.Auth.VerifyToken(token)
		if err != nil {
			writeError(w, http.StatusUnauthorized, "invalid or expired token")
			return
		}
		u, err := a.Users.GetByID(r.Context(), id)
		if err != nil {
			writeError(w, http.StatusUnauthorized, "unknown user")
			return
		}
		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), userCtxKey, u)))
	})
}

func tokenFrom(r *http.Request) string {
	if c, err := r.Cookie("token"); err == nil && c.Value != "" {
		return c.Value
	}
	if h := r.Header.Get("Authorization"); strings.HasPrefix(h, "Bearer ") {
		return strings.TrimPrefix(h, "Bearer ")
	}
	return ""
}

// UserFrom mengambil user yang sudah dipasang AuthMiddleware; nil kalau
// route tidak lewat middleware.
func UserFrom(ctx context.Context) *users.User {
	u, _ := ctx.Value(userCtxKey).(*users.User)
	return u
}
