package httpx

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/redis/go-redis/v9"

	"github.com/Ishangupta-cyber/BookStoreManagement/internal/books"
	"github.com/Ishangupta-cyber/BookStoreManagement/internal/redisx"
	"github.com/Ishangupta-cyber/BookStoreManagement/internal/users"
)

type BooksHandler struct {
	Repo  *books.Repo
	Redis *redis.Client
}

func (h *BooksHandler) Register(r *chi.Mux, authorize func(http.Handler) http.Handler) {
	r.Get("/book/", h.listBooks)
	r.Get("/book/{id}", h.getBook)

	r.Group(func(r chi.Router) {
		r.Use(authorize)
		r.Post("/book/create", h.createBook)
		r.Patch("/book/{id}", h.updateBook)
		r.Delete("/book/{id}", h.deleteBook)
	})
}

func (h *BooksHandler) createBook(w http.ResponseWriter, r *http.Request) {
	caller := UserFrom(r.Context())
	if caller.Role != users.RoleAuthor && caller.Role != users.RoleAdmin {
		writeError(w, http.StatusForbidden, "Forbidden: Only authors and admins can create books.")
		return
	}

	var in books.CreateInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		writeError(w, http.StatusBadRequest, "invalid json")
		return
	}
	if in.Title == "" || in.Price <= 0 || in.Stock <= 0 {
		writeError(w, http.StatusBadRequest, "Title, Price, and Stock are required fields.")
		return
	}
	if in.Genre != "" && !books.ValidGenre(in.Genre) {
		writeError(w, http.StatusBadRequest, fmt.Sprintf("unknown genre %q", in.Genre))
		return
	}

	ctx, cancel := context5s(r)
	defer cancel()

	b, err := h.Repo.Create(ctx, caller.ID, in)
	if err != nil {
		writeError(w, errStatus(err), err.Error())
		return
	}
	writeJSON(w, http.StatusCreated, map[string]any{
		"success": true,
		"message": "Book created successfully",
		"data":    b,
	})
}

func (h *BooksHandler) listBooks(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	f := books.ListFilter{
		Genre:  books.Genre(q.Get("genre")),
		SortBy: q.Get("sortBy"),
		Order:  q.Get("order"),
	}
	if v := q.Get("minPrice"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			f.MinPrice = &n
		}
	}
	if v := q.Get("maxPrice"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			f.MaxPrice = &n
		}
	}
	f.Page, _ = strconv.Atoi(q.Get("page"))
	f.Limit, _ = strconv.Atoi(q.Get("limit"))
	page, limit := f.Page, f.Limit
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 10
	}

	ctx, cancel := context3s(r)
	defer cancel()

	list, total, err := h.Repo.List(ctx, f)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Internal server error during book retrieval.")
		return
	}
	if list == nil {
		list = []books.Book{}
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"results": len(list),
		"page":    page,
		"limit":   limit,
		"total":   total,
		"data":    list,
	})
}

func (h *BooksHandler) getBook(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	ctx, cancel := context3s(r)
	defer cancel()

	// 1) coba cache
	key := fmt.Sprintf(redisx.KeyBookCache, id)
	if s, err := h.Redis.Get(ctx, key).Result(); err == nil && s != "" {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(s))
		return
	}

	// 2) fallback DB
	b, err := h.Repo.GetByID(ctx, id)
	if err != nil {
		writeError(w, errStatus(err), err.Error())
		return
	}

	body, _ := json.Marshal(map[string]any{"success": true, "data": b})
	_ = h.Redis.Set(ctx, key, body, redisx.TTLBookCache).Err()
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(body)
}

func (h *BooksHandler) updateBook(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	ctx, cancel := context5s(r)
	defer cancel()

	b, err := h.Repo.GetByID(ctx, id)
	if err != nil {
		writeError(w, errStatus(err), err.Error())
		return
	}
	if !ownerOrAdmin(r, b.CreatedBy) {
		writeError(w, http.StatusForbidden, "Forbidden: You can only update books you created.")
		return
	}

	var in books.UpdateInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		writeError(w, http.StatusBadRequest, "invalid json")
		return
	}
	if in.Genre != nil && !books.ValidGenre(*in.Genre) {
		writeError(w, http.StatusBadRequest, fmt.Sprintf("unknown genre %q", *in.Genre))
		return
	}

	updated, err := h.Repo.Update(ctx, id, in)
	if err != nil {
		writeError(w, errStatus(err), err.Error())
		return
	}

	// cache lama tidak valid lagi
	_ = h.Redis.Del(ctx, fmt.Sprintf(redisx.KeyBookCache, id)).Err()

	writeJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"message": "Book updated successfully.",
		"data":    updated,
	})
}

func (h *BooksHandler) deleteBook(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	ctx, cancel := context5s(r)
	defer cancel()

	b, err := h.Repo.GetByID(ctx, id)
	if err != nil {
		writeError(w, errStatus(err), err.Error())
		return
	}
	if !ownerOrAdmin(r, b.CreatedBy) {
		writeError(w, http.StatusForbidden, "Forbidden: You can only delete books you created.")
		return
	}

	if err := h.Repo.Delete(ctx, id); err != nil {
		writeError(w, errStatus(err), err.Error())
		return
	}
	_ = h.Redis.Del(ctx, fmt.Sprintf(redisx.KeyBookCache, id)).Err()

	writeJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"message": "Book deleted successfully.",
	})
}

func ownerOrAdmin(r *http.Request, createdBy string) bool {
	caller := UserFrom(r.Context())
	return caller != nil && (caller.ID == createdBy || caller.Role == users.RoleAdmin)
}
