package httpx

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/Ishangupta-cyber/BookStoreManagement/internal/users"
)

type UsersHandler struct {
	Auth *users.Auth
	Repo *users.Repo
}

// Register: path /author mengikuti router aslinya (user router mount di situ).
func (h *UsersHandler) Register(r *chi.Mux, authorize func(http.Handler) http.Handler) {
	r.Post("/author/signup", h.signUp)
	r.Post("/author/login", h.login)

	r.Group(func(r chi.Router) {
		r.Use(authorize)
		r.Get("/author/users", h.listUsers)
		r.Get("/author/users/{id}", h.getUser)
		r.Patch("/author/users/{id}/role", h.updateRole)
		r.Delete("/author/users/{id}", h.deleteUser)
	})
}

func (h *UsersHandler) signUp(w http.ResponseWriter, r *http.Request) {
	var in users.SignUpInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		writeError(w, http.StatusBadRequest, "invalid json")
		return
	}

	ctx, cancel := context5s(r)
	defer cancel()

	u, token, err := h.Auth.SignUp(ctx, in)
	if err != nil {
		writeError(w, errStatus(err), err.Error())
		return
	}

	setTokenCookie(w, token)
	writeJSON(w, http.StatusCreated, map[string]any{
		"success": true,
		"data":    u,
		"token":   token,
	})
}

func (h *UsersHandler) login(w http.ResponseWriter, r *http.Request) {
	var in struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		writeError(w, http.StatusBadRequest, "invalid json")
		return
	}

	ctx, cancel := context5s(r)
	defer cancel()

	_, token, err := h.Auth.Login(ctx, in.Email, in.Password)
	if err != nil {
		writeError(w, errStatus(err), err.Error())
		return
	}

	setTokenCookie(w, token)
	writeJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"token":   token,
		"message": "Login successful",
	})
}

func (h *UsersHandler) listUsers(w http.ResponseWriter, r *http.Request) {
	caller := UserFrom(r.Context())
	if caller.Role != users.RoleAdmin {
		writeError(w, http.StatusForbidden, "Forbidden: Only admins can view all users.")
		return
	}

	ctx, cancel := context5s(r)
	defer cancel()

	list, err := h.Repo.List(ctx)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to fetch users")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"results": len(list),
		"data":    list,
	})
}

func (h *UsersHandler) getUser(w http.ResponseWriter, r *http.Request) {
	caller := UserFrom(r.Context())
	id := chi.URLParam(r, "id")
	if caller.Role != users.RoleAdmin && caller.ID != id {
		writeError(w, http.StatusForbidden, "Forbidden: You can only view your own account.")
		return
	}

	ctx, cancel := context5s(r)
	defer cancel()

	u, err := h.Repo.GetByID(ctx, id)
	if err != nil {
		writeError(w, errStatus(err), err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"success": true, "data": u})
}

func (h *UsersHandler) updateRole(w http.ResponseWriter, r *http.Request) {
	caller := UserFrom(r.Context())
	if caller.Role != users.RoleAdmin {
		writeError(w, http.StatusForbidden, "Forbidden: Only admins can change roles.")
		return
	}

	var in struct {
		Role users.Role `json:"role"`
	}
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil || !users.ValidRole(in.Role) {
		writeError(w, http.StatusBadRequest, "a valid role is required")
		return
	}

	ctx, cancel := context5s(r)
	defer cancel()

	u, err := h.Repo.UpdateRole(ctx, chi.URLParam(r, "id"), in.Role)
	if err != nil {
		writeError(w, errStatus(err), err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"success": true, "data": u})
}

func (h *UsersHandler) deleteUser(w http.ResponseWriter, r *http.Request) {
	caller := UserFrom(r.Context())
	if caller.Role != users.RoleAdmin {
		writeError(w, http.StatusForbidden, "Forbidden: Only admins can delete accounts.")
		return
	}

	ctx, cancel := context5s(r)
	defer cancel()

	if err := h.Repo.Delete(ctx, chi.URLParam(r, "id")); err != nil {
		writeError(w, errStatus(err), err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"success": true, "message": "User deleted successfully."})
}

func setTokenCookie(w http.ResponseWriter, token string) {
	http.SetCookie(w, &http.Cookie{
		Name:     "token",
		Value:    token,
		Path:     "/",
		HttpOnly: true,
		MaxAge:   int((24 * time.Hour).Seconds()),
	})
}
