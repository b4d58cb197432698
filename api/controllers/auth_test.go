package controllers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/evamarchetti/lessonplanner-backend/api/middleware"
	"github.com/evamarchetti/lessonplanner-backend/pkg/config"
	"github.com/evamarchetti/lessonplanner-backend/pkg/db/models"
	pkgerrors "github.com/evamarchetti/lessonplanner-backend/pkg/errors"
)

type fakeAuthService struct {
	loginURLFn       func(state string) string
	handleCallbackFn func(ctx context.Context, code string) (*models.User, *models.Session, error)
	logoutFn         func(ctx context.Context, sessionID string) error
}

func (f *fakeAuthService) LoginURL(state string) string {
	return f.loginURLFn(state)
}

func (f *fakeAuthService) HandleCallback(ctx context.Context, code string) (*models.User, *models.Session, error) {
	return f.handleCallbackFn(ctx, code)
}

func (f *fakeAuthService) Logout(ctx context.Context, sessionID string) error {
	return f.logoutFn(ctx, sessionID)
}

func testConfig() *config.Config {
	return &config.Config{
		Session: config.SessionConfig{
			CookieName:   "session",
			TTL:          168 * time.Hour,
			CookieSecure: true,
		},
	}
}

func findCookie(t *testing.T, w *httptest.ResponseRecorder, name string) *http.Cookie {
	t.Helper()
	res := w.Result()
	defer res.Body.Close()
	for _, c := range res.Cookies() {
		if c.Name == name {
			return c
		}
	}
	return nil
}

func TestGoogleLoginRedirectsWithStateCookie(t *testing.T) {
	svc := &fakeAuthService{
		loginURLFn: func(state string) string {
			return "https://accounts.google.com/o/oauth2/v2/auth?state=" + url.QueryEscape(state)
		},
	}

	w := httptest.NewRecorder()
	GoogleLogin(svc, testConfig(), nil)(w, httptest.NewRequest(http.MethodGet, "/auth/google", nil))

	if w.Code != http.StatusFound {
		t.Fatalf("expected 302, got %d", w.Code)
	}

	cookie := findCookie(t, w, stateCookieName)
	if cookie == nil || cookie.Value == "" {
		t.Fatal("expected a state cookie")
	}
	if !cookie.HttpOnly || cookie.SameSite != http.SameSiteLaxMode {
		t.Fatal("state cookie must be HttpOnly and SameSite=Lax")
	}

	location := w.Header().Get("Location")
	parsed, err := url.Parse(location)
	if err != nil {
		t.Fatalf("parsing redirect target: %v", err)
	}
	if parsed.Query().Get("state") != cookie.Value {
		t.Fatal("redirect state must match the cookie")
	}
}

func TestGoogleCallbackSetsSessionCookie(t *testing.T) {
	session := &models.Session{ID: "abc123", UserID: uuid.New()}
	svc := &fakeAuthService{
		handleCallbackFn: func(_ context.Context, code string) (*models.User, *models.Session, error) {
			if code != "auth-code" {
				t.Fatalf("unexpected code %q", code)
			}
			return &models.User{ID: session.UserID}, session, nil
		},
	}

	req := httptest.NewRequest(http.MethodGet, "/auth/google/callback?code=auth-code&state=state-token", nil)
	req.AddCookie(&http.Cookie{Name: stateCookieName, Value: "state-token"})

	w := httptest.NewRecorder()
	GoogleCallback(svc, testConfig(), nil)(w, req)

	if w.Code != http.StatusFound {
		t.Fatalf("expected 302, got %d: %s", w.Code, w.Body.String())
	}
	if loc := w.Header().Get("Location"); loc != "/" {
		t.Fatalf("expected redirect to /, got %q", loc)
	}

	cookie := findCookie(t, w, "session")
	if cookie == nil || cookie.Value != "abc123" {
		t.Fatal("expected the session cookie to be set")
	}
	if !cookie.HttpOnly || !cookie.Secure || cookie.SameSite != http.SameSiteLaxMode {
		t.Fatal("session cookie attributes are wrong")
	}
	if cookie.MaxAge != 604800 {
		t.Fatalf("expected Max-Age 604800, got %d", cookie.MaxAge)
	}
	if cookie.Path != "/" {
		t.Fatalf("expected Path /, got %q", cookie.Path)
	}
}

func TestGoogleCallbackRejectsStateMismatch(t *testing.T) {
	svc := &fakeAuthService{
		handleCallbackFn: func(_ context.Context, _ string) (*models.User, *models.Session, error) {
			t.Fatal("exchange must not run on a state mismatch")
			return nil, nil, nil
		},
	}

	req := httptest.NewRequest(http.MethodGet, "/auth/google/callback?code=auth-code&state=evil", nil)
	req.AddCookie(&http.Cookie{Name: stateCookieName, Value: "state-token"})

	w := httptest.NewRecorder()
	GoogleCallback(svc, testConfig(), nil)(w, req)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", w.Code)
	}
}

func TestGoogleCallbackWithoutCode(t *testing.T) {
	svc := &fakeAuthService{}

	req := httptest.NewRequest(http.MethodGet, "/auth/google/callback?state=state-token", nil)
	req.AddCookie(&http.Cookie{Name: stateCookieName, Value: "state-token"})

	w := httptest.NewRecorder()
	GoogleCallback(svc, testConfig(), nil)(w, req)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", w.Code)
	}

	var body map[string]any
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("decoding body: %v", err)
	}
	if body["error"] != "No code provided" {
		t.Fatalf("unexpected error %v", body["error"])
	}
}

func TestGoogleCallbackExchangeFailure(t *testing.T) {
	svc := &fakeAuthService{
		handleCallbackFn: func(_ context.Context, _ string) (*models.User, *models.Session, error) {
			return nil, nil, pkgerrors.New(pkgerrors.CodeValidation, `Failed to get access token: {"error":"invalid_grant"}`)
		},
	}

	req := httptest.NewRequest(http.MethodGet, "/auth/google/callback?code=stale&state=state-token", nil)
	req.AddCookie(&http.Cookie{Name: stateCookieName, Value: "state-token"})

	w := httptest.NewRecorder()
	GoogleCallback(svc, testConfig(), nil)(w, req)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", w.Code)
	}

	var body map[string]any
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("decoding body: %v", err)
	}
	if body["error"] != `Failed to get access token: {"error":"invalid_grant"}` {
		t.Fatalf("unexpected error %v", body["error"])
	}
}

func TestMeAnonymous(t *testing.T) {
	w := httptest.NewRecorder()
	Me()(w, httptest.NewRequest(http.MethodGet, "/auth/me", nil))

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	if body := w.Body.String(); body != "{\"user\":null}\n" {
		t.Fatalf("unexpected body %q", body)
	}
}

func TestMeAuthenticated(t *testing.T) {
	user := &models.User{ID: uuid.New(), Email: "eva@example.com", Name: "Eva", GoogleID: "google-123"}

	req := httptest.NewRequest(http.MethodGet, "/auth/me", nil)
	req = req.WithContext(middleware.WithUser(req.Context(), user))

	w := httptest.NewRecorder()
	Me()(w, req)

	var body map[string]map[string]any
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("decoding body: %v", err)
	}
	got := body["user"]
	if got["email"] != "eva@example.com" || got["name"] != "Eva" {
		t.Fatalf("unexpected user payload %v", got)
	}
	if _, leaked := got["google_id"]; leaked {
		t.Fatal("google id must not be serialized")
	}
}

func TestLogoutClearsCookie(t *testing.T) {
	var deleted string
	svc := &fakeAuthService{
		logoutFn: func(_ context.Context, sessionID string) error {
			deleted = sessionID
			return nil
		},
	}

	req := httptest.NewRequest(http.MethodPost, "/auth/logout", nil)
	req.AddCookie(&http.Cookie{Name: "session", Value: "abc123"})

	w := httptest.NewRecorder()
	Logout(svc, testConfig(), nil)(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	if deleted != "abc123" {
		t.Fatalf("expected the session to be deleted, got %q", deleted)
	}
	cookie := findCookie(t, w, "session")
	if cookie == nil || cookie.MaxAge >= 0 || cookie.Value != "" {
		t.Fatal("expected an expired session cookie")
	}
	if body := w.Body.String(); body != "{\"success\":true}\n" {
		t.Fatalf("unexpected body %q", body)
	}
}

func TestLogoutWithoutCookie(t *testing.T) {
	svc := &fakeAuthService{
		logoutFn: func(_ context.Context, _ string) error {
			t.Fatal("logout must not hit the store without a cookie")
			return nil
		},
	}

	w := httptest.NewRecorder()
	Logout(svc, testConfig(), nil)(w, httptest.NewRequest(http.MethodPost, "/auth/logout", nil))

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
}
