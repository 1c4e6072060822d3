package httpx

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/golang-jwt/jwt/v5"

	"github.com/Ishangupta-cyber/BookStoreManagement/internal/users"
)

type fakeUserSource struct {
	byID map[string]*users.User
}

func (f *fakeUserSource) GetByID(ctx context.Context, id string) (*users.User, error) {
	u, ok := f.byID[id]
	if !ok {
		return nil, users.ErrNotFound
	}
	return u, nil
}

func testMiddleware(t *testing.T) (*AuthMiddleware, string) {
	t.Helper()
	auth := &users.Auth{Secret: []byte("test-secret")}
	src := &fakeUserSource{byID: map[string]*users.User{
		"u1": {ID: "u1", Name: "Ana", Role: users.RoleCustomer},
	}}

	tok, err := jwt.NewWithClaims(jwt.SigningMethodHS256,
		jwt.RegisteredClaims{Subject: "u1"}).SignedString([]byte("test-secret"))
	if err != nil {
		t.Fatal(err)
	}
	return &AuthMiddleware{Auth: auth, Users: src}, tok
}

func protected(mw *AuthMiddleware, got **users.User) http.Handler {
	return mw.Authorize(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		*got = UserFrom(r.Context())
		w.WriteHeader(http.StatusOK)
	}))
}

func TestAuthorize_CookieToken(t *testing.T) {
	mw, tok := testMiddleware(t)
	var seen *users.User

	req := httptest.NewRequest(http.MethodGet, "/order/history", nil)
	req.AddCookie(&http.Cookie{Name: "token", Value: tok})
	rec := httptest.NewRecorder()
	protected(mw, &seen).ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if seen == nil || seen.ID != "u1" {
		t.Errorf("expected user u1 in context, got %+v", seen)
	}
}

func TestAuthorize_BearerToken(t *testing.T) {
	mw, tok := testMiddleware(t)
	var seen *users.User

	req := httptest.NewRequest(http.MethodGet, "/order/history", nil)
	req.Header.Set("Authorization", "Bearer "+tok)
	rec := httptest.NewRecorder()
	protected(mw, &seen).ServeHTTP(rec, req)

	if rec.Code != http.StatusOK || seen == nil {
		t.Fatalf("expected authorized request, got %d", rec.Code)
	}
}

func TestAuthorize_MissingToken(t *testing.T) {
	mw, _ := testMiddleware(t)
	var seen *users.User

	req := httptest.NewRequest(http.MethodGet, "/order/history", nil)
	rec := httptest.NewRecorder()
	protected(mw, &seen).ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Errorf("expected 401, got %d", rec.Code)
	}
	if seen != nil {
		t.Error("handler must not run without a token")
	}
}

func TestAuthorize_BadToken(t *testing.T) {
	mw, tok := testMiddleware(t)
	var seen *users.User

	req := httptest.NewRequest(http.MethodGet, "/order/history", nil)
	req.Header.Set("Authorization", "Bearer "+tok+"x")
	rec := httptest.NewRecorder()
	protected(mw, &seen).ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Errorf("expected 401 for tampered token, got %d", rec.Code)
	}
}

func TestAuthorize_UnknownUser(t *testing.T) {
	mw, _ := testMiddleware(t)
	var seen *users.User

	// token sah tapi usernya sudah dihapus
	tok, _ := jwt.NewWithClaims(jwt.SigningMethodHS256,
		jwt.RegisteredClaims{Subject: "gone"}).SignedString([]byte("test-secret"))

	req := httptest.NewRequest(http.MethodGet, "/order/history", nil)
	req.Header.Set("Authorization", "Bearer "+tok)
	rec := httptest.NewRecorder()
	protected(mw, &seen).ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Errorf("expected 401 for deleted user, got %d", rec.Code)
	}
}
