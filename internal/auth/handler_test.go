package auth

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/roberrrrrr/App-Activo-Entrena/internal/models"
)

func newTestHandler(users *stubUserStore) *Handler {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return NewHandler(NewService(users, time.Second), logger)
}

func postLogin(t *testing.T, h *Handler, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/api/auth/login", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	h.Login(rec, req)
	return rec
}

func TestLoginSuccess(t *testing.T) {
	users := newStubUserStore()
	seeded := users.seed(t, "usuario_test", "password123")
	h := newTestHandler(users)

	rec := postLogin(t, h, `{"userName":"usuario_test","password":"password123"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200; body: %s", rec.Code, rec.Body.String())
	}

	var resp models.LoginResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if !resp.Success {
		t.Fatal("success = false")
	}
	if resp.User.Username != "usuario_test" {
		t.Fatalf("user.username = %q", resp.User.Username)
	}
	if resp.User.ID != "1" {
		t.Fatalf("user.id = %q, want %q", resp.User.ID, "1")
	}
	if strings.Contains(rec.Body.String(), seeded.PasswordHash) {
		t.Fatal("response leaks the stored hash")
	}
}

func TestLoginRejectionsAreIndistinguishable(t *testing.T) {
	users := newStubUserStore()
	users.seed(t, "usuario_test", "password123")
	h := newTestHandler(users)

	wrongPw := postLogin(t, h, `{"userName":"usuario_test","password":"incorrecta"}`)
	unknown := postLogin(t, h, `{"userName":"no_existe","password":"password123"}`)

	if wrongPw.Code != http.StatusUnauthorized || unknown.Code != http.StatusUnauthorized {
		t.Fatalf("statuses = %d, %d, want 401 for both", wrongPw.Code, unknown.Code)
	}
	if wrongPw.Body.String() != unknown.Body.String() {
		t.Fatalf("rejection bodies differ:\n%s\n%s", wrongPw.Body.String(), unknown.Body.String())
	}

	var resp models.ErrorResponse
	if err := json.Unmarshal(wrongPw.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.Detail != "Credenciales inválidas" {
		t.Fatalf("detail = %q", resp.Detail)
	}
}

func TestLoginMissingFieldSkipsStore(t *testing.T) {
	users := newStubUserStore()
	users.seed(t, "usuario_test", "password123")
	h := newTestHandler(users)

	for _, body := range []string{
		`{"password":"password123"}`,
		`{"userName":"usuario_test"}`,
		`{"userName":"","password":"password123"}`,
	} {
		rec := postLogin(t, h, body)
		if rec.Code != http.StatusBadRequest {
			t.Fatalf("body %s: status = %d, want 400", body, rec.Code)
		}
	}
	if users.lookups != 0 {
		t.Fatalf("store queried %d times on validation failures", users.lookups)
	}
}

func TestLoginMalformedBody(t *testing.T) {
	h := newTestHandler(newStubUserStore())

	rec := postLogin(t, h, `{"userName":`)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
}

func TestLoginStoreUnavailable(t *testing.T) {
	users := newStubUserStore()
	users.seed(t, "usuario_test", "password123")
	users.err = errors.New("dial tcp 10.0.0.5:5432: connect: connection refused")
	h := newTestHandler(users)

	rec := postLogin(t, h, `{"userName":"usuario_test","password":"password123"}`)
	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d, want 500", rec.Code)
	}
	if strings.Contains(rec.Body.String(), "10.0.0.5") {
		t.Fatalf("response leaks connection details: %s", rec.Body.String())
	}
}

func TestRegisterSuccess(t *testing.T) {
	users := newStubUserStore()
	h := newTestHandler(users)

	req := httptest.NewRequest(http.MethodPost, "/api/auth/register",
		strings.NewReader(`{"userName":"usuario_test","password":"password123"}`))
	rec := httptest.NewRecorder()
	h.Register(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d, want 201; body: %s", rec.Code, rec.Body.String())
	}

	var resp models.RegisterResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if !resp.Success || resp.Username != "usuario_test" || resp.UserID != 1 {
		t.Fatalf("unexpected response: %+v", resp)
	}
}

func TestRegisterDuplicate(t *testing.T) {
	users := newStubUserStore()
	users.seed(t, "usuario_test", "password123")
	h := newTestHandler(users)

	req := httptest.NewRequest(http.MethodPost, "/api/auth/register",
		strings.NewReader(`{"userName":"usuario_test","password":"otra"}`))
	rec := httptest.NewRecorder()
	h.Register(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
	var resp models.ErrorResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.Detail != "El nombre de usuario ya está en uso." {
		t.Fatalf("detail = %q", resp.Detail)
	}
}
