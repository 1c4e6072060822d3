package users

import (
	"context"
	"errors"
	"testing"

	"golang.org/x/crypto/bcrypt"
)

type fakeAccounts struct {
	byEmail map[string]*User
}

func newFakeAccounts() *fakeAccounts {
	return &fakeAccounts{byEmail: map[string]*User{}}
}

func (f *fakeAccounts) Create(ctx context.Context, name, email, passwordHash string, role Role) (*User, error) {
	if _, ok := f.byEmail[email]; ok {
		return nil, ErrEmailTaken
	}
	u := &User{ID: "id-" + email, Name: name, Email: email, Password: passwordHash, Role: role}
	f.byEmail[email] = u
	return u, nil
}

func (f *fakeAccounts) GetByEmail(ctx context.Context, email string) (*User, error) {
	u, ok := f.byEmail[email]
	if !ok {
		return nil, ErrNotFound
	}
	return u, nil
}

func newTestAuth() *Auth {
	return &Auth{Repo: newFakeAccounts(), Secret: []byte("test-secret")}
}

func TestSignUp_HashesPassword(t *testing.T) {
	a := newTestAuth()

	u, token, err := a.SignUp(context.Background(), SignUpInput{
		Name: "Ana", Email: "ana@example.com", Password: "s3cret", Role: RoleCustomer,
	})
	if err != nil {
		t.Fatalf("signup failed: %v", err)
	}
	if token == "" {
		t.Error("expected a token")
	}
	if u.Password == "s3cret" {
		t.Fatal("password stored in plain text")
	}
	if bcrypt.CompareHashAndPassword([]byte(u.Password), []byte("s3cret")) != nil {
		t.Error("stored hash does not verify against the original password")
	}
}

func TestSignUp_Validation(t *testing.T) {
	a := newTestAuth()

	if _, _, err := a.SignUp(context.Background(), SignUpInput{Email: "x@y.z", Password: "p", Role: RoleCustomer}); err == nil {
		t.Error("expected error for missing name")
	}
	if _, _, err := a.SignUp(context.Background(), SignUpInput{Name: "n", Email: "x@y.z", Password: "p", Role: "superuser"}); err == nil {
		t.Error("expected error for unknown role")
	}
}

func TestLogin_RoundTrip(t *testing.T) {
	a := newTestAuth()

	if _, _, err := a.SignUp(context.Background(), SignUpInput{
		Name: "Ana", Email: "ana@example.com", Password: "s3cret", Role: RoleCustomer,
	}); err != nil {
		t.Fatal(err)
	}

	u, token, err := a.Login(context.Background(), "ana@example.com", "s3cret")
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}
	if u.Email != "ana@example.com" || token == "" {
		t.Error("unexpected login result")
	}

	id, err := a.VerifyToken(token)
	if err != nil {
		t.Fatalf("verify failed: %v", err)
	}
	if id != u.ID {
		t.Errorf("token subject %q != user id %q", id, u.ID)
	}
}

func TestLogin_BadCredentials(t *testing.T) {
	a := newTestAuth()
	_, _, _ = a.SignUp(context.Background(), SignUpInput{
		Name: "Ana", Email: "ana@example.com", Password: "s3cret", Role: RoleCustomer,
	})

	if _, _, err := a.Login(context.Background(), "ana@example.com", "wrong"); !errors.Is(err, ErrBadCredentials) {
		t.Errorf("expected ErrBadCredentials for wrong password, got %v", err)
	}
	// user tidak ada dilaporkan sebagai kredensial salah, bukan not-found
	if _, _, err := a.Login(context.Background(), "ghost@example.com", "s3cret"); !errors.Is(err, ErrBadCredentials) {
		t.Errorf("expected ErrBadCredentials for unknown email, got %v", err)
	}
}

func TestVerifyToken_Tampered(t *testing.T) {
	a := newTestAuth()
	_, token, err := a.SignUp(context.Background(), SignUpInput{
		Name: "Ana", Email: "ana@example.com", Password: "s3cret", Role: RoleCustomer,
	})
	if err != nil {
		t.Fatal(err)
	}

	if _, err := a.VerifyToken(token + "x"); err == nil {
		t.Error("tampered token must not verify")
	}

	other := &Auth{Repo: newFakeAccounts(), Secret: []byte("other-secret")}
	if _, err := other.VerifyToken(token); err == nil {
		t.Error("token signed with a different secret must not verify")
	}
}
