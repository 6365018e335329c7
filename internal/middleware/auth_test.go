package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/alexedwards/scs/v2"

	"github.com/vorokhovskii-creator/felix-hub/internal/session"
)

func TestAuthRedirectsAnonymous(t *testing.T) {
	sm := scs.New()
	called := false
	handler := sm.LoadAndSave(Auth(sm)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
	})))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/admin", nil))

	if called {
		t.Error("handler should not run for anonymous requests")
	}
	if rec.Code != http.StatusSeeOther || rec.Header().Get("Location") != LoginPath {
		t.Errorf("got %d to %q", rec.Code, rec.Header().Get("Location"))
	}
}

func TestAuthAllowsLoggedInUser(t *testing.T) {
	sm := scs.New()

	mux := http.NewServeMux()
	mux.HandleFunc("/login", func(w http.ResponseWriter, r *http.Request) {
		if err := session.Login(r.Context(), sm, "admin"); err != nil {
			t.Errorf("Login: %v", err)
		}
	})
	var user string
	mux.Handle("/admin", Auth(sm)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user = GetUser(r)
	})))
	handler := sm.LoadAndSave(mux)

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/login", nil))
	cookies := rec.Result().Cookies()
	if len(cookies) == 0 {
		t.Fatal("login should set a session cookie")
	}

	req := httptest.NewRequest(http.MethodGet, "/admin", nil)
	for _, c := range cookies {
		req.AddCookie(c)
	}
	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Errorf("status = %d", rec.Code)
	}
	if user != "admin" {
		t.Errorf("GetUser = %q", user)
	}
}
