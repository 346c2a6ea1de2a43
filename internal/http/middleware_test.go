package httpx

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domainauth "github.com/uniadmin/records-console/internal/domain/auth"
)

// stubResolver resolves sessions from an in-memory map.
type stubResolver struct{ sessions map[string]domainauth.Session }

func (s *stubResolver) Resolve(_ context.Context, id string) (domainauth.Session, error) {
	sess, ok := s.sessions[id]
	if !ok {
		return domainauth.Session{}, errors.New("no session")
	}
	return sess, nil
}

func resolverWith(sessions ...domainauth.Session) *stubResolver {
	m := map[string]domainauth.Session{}
	for _, s := range sessions {
		m[s.ID] = s
	}
	return &stubResolver{sessions: m}
}

func testSessionWithRole(id string, role domainauth.Role) domainauth.Session {
	return domainauth.Session{
		ID:        id,
		Token:     "token-" + id,
		Identity:  domainauth.Identity{Email: "u@example.edu", Role: role},
		ExpiresAt: time.Now().Add(time.Hour),
	}
}

// okHandler records whether it ran and reports the session it saw.
func okHandler(t *testing.T, ran *bool) http.Handler {
	t.Helper()
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		*ran = true
		w.WriteHeader(http.StatusOK)
	})
}

func browserRequest(method, target, sessionID string) *http.Request {
	r := httptest.NewRequest(method, target, nil)
	r.Header.Set("Accept", "text/html")
	if sessionID != "" {
		r.AddCookie(&http.Cookie{Name: sessionCookieName, Value: sessionID})
	}
	return r
}

func TestRequireAuthBrowser_UnauthenticatedBrowserRedirects(t *testing.T) {
	var ran bool
	h := BrowserDetection()(RequireAuthBrowser(resolverWith())(okHandler(t, &ran)))

	w := httptest.NewRecorder()
	h.ServeHTTP(w, browserRequest(http.MethodGet, "/dashboard?tab=all", ""))

	assert.False(t, ran)
	assert.Equal(t, http.StatusSeeOther, w.Code)
	loc := w.Header().Get("Location")
	assert.Contains(t, loc, "/auth/login")
	assert.Contains(t, loc, "redirect_uri=%2Fdashboard%3Ftab%3Dall")
}

func TestRequireAuthBrowser_UnauthenticatedAPIGets401(t *testing.T) {
	var ran bool
	h := BrowserDetection()(RequireAuthBrowser(resolverWith())(okHandler(t, &ran)))

	w := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodGet, "/dashboard", nil)
	r.Header.Set("Accept", "application/json")
	h.ServeHTTP(w, r)

	assert.False(t, ran)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "authentication_required")
}

func TestRequireAuthBrowser_LiveSessionPasses(t *testing.T) {
	sess := testSessionWithRole("sess1", domainauth.RoleStudent)
	var sawSession *domainauth.Session
	inner := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		sawSession = GetSessionFromContext(r.Context())
		w.WriteHeader(http.StatusOK)
	})
	h := BrowserDetection()(RequireAuthBrowser(resolverWith(sess))(inner))

	w := httptest.NewRecorder()
	h.ServeHTTP(w, browserRequest(http.MethodGet, "/dashboard", "sess1"))

	assert.Equal(t, http.StatusOK, w.Code)
	require.NotNil(t, sawSession)
	assert.Equal(t, "token-sess1", sawSession.Token)
}

func TestRequireRolesBrowser_WrongRoleGetsAccessDeniedInPlace(t *testing.T) {
	sess := testSessionWithRole("sess1", domainauth.RoleStudent)
	var ran bool
	h := BrowserDetection()(
		RequireRolesBrowser(resolverWith(sess), domainauth.RoleAdmin)(okHandler(t, &ran)),
	)

	w := httptest.NewRecorder()
	h.ServeHTTP(w, browserRequest(http.MethodGet, "/users", "sess1"))

	assert.False(t, ran)
	assert.Equal(t, http.StatusForbidden, w.Code)
	// Rendered in place, never a redirect.
	assert.Empty(t, w.Header().Get("Location"))
	assert.Contains(t, w.Body.String(), "Access Denied")
}

func TestRequireRolesBrowser_WrongRoleAPIGets403JSON(t *testing.T) {
	sess := testSessionWithRole("sess1", domainauth.RoleTeacher)
	var ran bool
	h := BrowserDetection()(
		RequireRolesBrowser(resolverWith(sess), domainauth.RoleAdmin)(okHandler(t, &ran)),
	)

	w := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodGet, "/users", nil)
	r.Header.Set("Accept", "application/json")
	r.AddCookie(&http.Cookie{Name: sessionCookieName, Value: "sess1"})
	h.ServeHTTP(w, r)

	assert.False(t, ran)
	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Contains(t, w.Body.String(), "insufficient_permissions")
}

func TestRequireRolesBrowser_MemberOfAllowedSetPasses(t *testing.T) {
	sess := testSessionWithRole("sess1", domainauth.RoleStudent)
	var ran bool
	h := BrowserDetection()(
		RequireRolesBrowser(resolverWith(sess), domainauth.RoleAdmin, domainauth.RoleStudent)(okHandler(t, &ran)),
	)

	w := httptest.NewRecorder()
	h.ServeHTTP(w, browserRequest(http.MethodGet, "/students/7", "sess1"))

	assert.True(t, ran)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestRequireRolesBrowser_EmptySetAdmitsAnyAuthenticated(t *testing.T) {
	sess := testSessionWithRole("sess1", domainauth.RoleTeacher)
	var ran bool
	h := BrowserDetection()(RequireRolesBrowser(resolverWith(sess))(okHandler(t, &ran)))

	w := httptest.NewRecorder()
	h.ServeHTTP(w, browserRequest(http.MethodGet, "/dashboard", "sess1"))

	assert.True(t, ran)
}

func TestRequireRolesBrowser_UnauthenticatedRedirectsNotDenied(t *testing.T) {
	var ran bool
	h := BrowserDetection()(
		RequireRolesBrowser(resolverWith(), domainauth.RoleAdmin)(okHandler(t, &ran)),
	)

	w := httptest.NewRecorder()
	h.ServeHTTP(w, browserRequest(http.MethodGet, "/users", ""))

	assert.False(t, ran)
	assert.Equal(t, http.StatusSeeOther, w.Code)
	assert.Contains(t, w.Header().Get("Location"), "/auth/login")
}

func TestIsBrowserRequest(t *testing.T) {
	tests := []struct {
		name   string
		path   string
		accept string
		want   bool
	}{
		{"html accept", "/dashboard", "text/html,application/xhtml+xml", true},
		{"no accept header", "/dashboard", "", true},
		{"json accept", "/dashboard", "application/json", false},
		{"static path", "/static/css/styles.css", "text/html", false},
		{"healthz", "/healthz", "text/html", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := httptest.NewRequest(http.MethodGet, tt.path, nil)
			if tt.accept != "" {
				r.Header.Set("Accept", tt.accept)
			}
			assert.Equal(t, tt.want, isBrowserRequest(r))
		})
	}
}

func TestSafeRedirectPath(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"empty", "", "/"},
		{"relative path", "/students/3/edit", "/students/3/edit"},
		{"keeps query", "/search?value=x", "/search?value=x"},
		{"absolute url", "https://evil.example/phish", "/"},
		{"protocol relative", "//evil.example/phish", "/"},
		{"no leading slash", "students", "/"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, safeRedirectPath(tt.in))
		})
	}
}
