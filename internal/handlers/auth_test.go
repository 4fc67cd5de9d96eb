package handlers

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/Ougobatec/Breezy-sub000/internal/mailer"
	"github.com/Ougobatec/Breezy-sub000/internal/models"
	"github.com/Ougobatec/Breezy-sub000/pkg/config"
	"github.com/Ougobatec/Breezy-sub000/pkg/validators"
)

func newAuthFixture() (*AuthHandler, *fakeUserRepo, *echo.Echo) {
	users := newFakeUserRepo()
	m := mailer.New(&config.MailConfig{}, zap.NewNop())
	h := NewAuthHandler(users, nil, m, nil, config.JWTConfig{Secret: "test-secret", TTLHours: 1})

	e := echo.New()
	e.Validator = validators.NewValidator()
	return h, users, e
}

func postJSON(e *echo.Echo, path, body string) (echo.Context, *httptest.ResponseRecorder) {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func httpCode(t *testing.T, err error) int {
	t.Helper()
	he, ok := err.(*echo.HTTPError)
	if !ok {
		t.Fatalf("got %v, want *echo.HTTPError", err)
	}
	return he.Code
}

func TestRegister(t *testing.T) {
	h, users, e := newAuthFixture()

	c, rec := postJSON(e, "/register",
		`{"name":"Alice","username":"Alice","email":"alice@example.com","password":"correcthorse"}`)
	if err := h.Register(c); err != nil {
		t.Fatalf("Register: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Errorf("got status %d, want %d", rec.Code, http.StatusCreated)
	}

	// handle is normalized to lowercase
	user, err := users.GetUserByUsername("alice")
	if err != nil {
		t.Fatalf("account not stored: %v", err)
	}
	if user.Password == "correcthorse" {
		t.Error("password stored in clear")
	}
	if user.Role != models.RoleUser {
		t.Errorf("role: got %q, want %q", user.Role, models.RoleUser)
	}
}

func TestRegisterDuplicate(t *testing.T) {
	h, _, e := newAuthFixture()

	c, _ := postJSON(e, "/register",
		`{"name":"Alice","username":"alice","email":"alice@example.com","password":"correcthorse"}`)
	if err := h.Register(c); err != nil {
		t.Fatalf("first Register: %v", err)
	}

	c, _ = postJSON(e, "/register",
		`{"name":"Mallory","username":"alice","email":"mallory@example.com","password":"correcthorse"}`)
	if code := httpCode(t, h.Register(c)); code != http.StatusConflict {
		t.Errorf("duplicate username: got status %d, want %d", code, http.StatusConflict)
	}

	c, _ = postJSON(e, "/register",
		`{"name":"Mallory","username":"mallory","email":"alice@example.com","password":"correcthorse"}`)
	if code := httpCode(t, h.Register(c)); code != http.StatusConflict {
		t.Errorf("duplicate email: got status %d, want %d", code, http.StatusConflict)
	}
}

func TestLogout(t *testing.T) {
	h, _, e := newAuthFixture()

	c, _ := postJSON(e, "/logout", "")
	if code := httpCode(t, h.Logout(c)); code != http.StatusUnauthorized {
		t.Errorf("anonymous logout: got status %d, want %d", code, http.StatusUnauthorized)
	}

	c, rec := postJSON(e, "/logout", "")
	c.Set("user", &models.JwtCustomClaims{UserID: 1})
	if err := h.Logout(c); err != nil {
		t.Fatalf("Logout: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Errorf("got status %d, want %d", rec.Code, http.StatusOK)
	}
}

func TestHandleFromName(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"plain name", "Alice", "alice"},
		{"spaces stripped", "Jean Claude", "jeanclaude"},
		{"digits kept", "agent 47", "agent47"},
		{"punctuation stripped", "o'brien-smith", "obriensmith"},
		{"all non-alnum falls back", "!!!", "user"},
		{"empty falls back", "", "user"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := handleFromName(tt.in); got != tt.want {
				t.Errorf("handleFromName(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestUniqueHandleFreeBase(t *testing.T) {
	got := uniqueHandle("alice", func(string) bool { return false })
	if got != "alice" {
		t.Errorf("got %q, want the base handle unchanged", got)
	}
}

func TestUniqueHandleTakenBase(t *testing.T) {
	taken := map[string]bool{"alice": true}
	got := uniqueHandle("alice", func(h string) bool { return taken[h] })

	if got == "alice" {
		t.Fatal("got the taken base back")
	}
	if !strings.HasPrefix(got, "alice") {
		t.Errorf("got %q, want an alice-prefixed handle", got)
	}
	if len(got) != len("alice")+8 {
		t.Errorf("suffix length: got %d chars total, want %d", len(got), len("alice")+8)
	}
}
