package httpx

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/Ishangupta-cyber/BookStoreManagement/internal/books"
	"github.com/Ishangupta-cyber/BookStoreManagement/internal/orders"
	"github.com/Ishangupta-cyber/BookStoreManagement/internal/users"
)

func context5s(r *http.Request) (context.Context, context.CancelFunc) {
	return context.WithTimeout(r.Context(), 5*time.Second)
}

func context3s(r *http.Request) (context.Context, context.CancelFunc) {
	return context.WithTimeout(r.Context(), 3*time.Second)
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, code int, msg string) {
	writeJSON(w, code, map[string]any{"success": false, "message": msg})
}

// errStatus memetakan taksonomi error domain ke kode HTTP.
func errStatus(err error) int {
	var (
		notFound *orders.BookNotFoundError
		noStock  *books.InsufficientStockError
		persist  *orders.PersistenceError
	)
	switch {
	case errors.Is(err, orders.ErrForbidden):
		return http.StatusForbidden
	case errors.Is(err, orders.ErrEmptyOrder),
		errors.Is(err, orders.ErrInvalidItem),
		errors.Is(err, users.ErrInvalidInput):
		return http.StatusBadRequest
	case errors.As(err, &notFound),
		errors.Is(err, books.ErrNotFound),
		errors.Is(err, users.ErrNotFound):
		return http.StatusNotFound
	case errors.As(err, &noStock),
		errors.Is(err, books.ErrTitleTaken),
		errors.Is(err, users.ErrEmailTaken):
		return http.StatusConflict
	case errors.Is(err, users.ErrBadCredentials):
		return http.StatusUnauthorized
	case errors.As(err, &persist):
		return http.StatusServiceUnavailable // transient, boleh retry
	default:
		return http.StatusInternalServerError
	}
}
