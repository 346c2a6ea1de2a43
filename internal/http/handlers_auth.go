package httpx

import (
	"context"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	domainauth "github.com/uniadmin/records-console/internal/domain/auth"
	apperrors "github.com/uniadmin/records-console/internal/errors"
)

// SessionResolver is the slice of the session service the gate middleware needs.
type SessionResolver interface {
	Resolve(ctx context.Context, sessionID string) (domainauth.Session, error)
}

// SessionServiceInterface defines the session operations the HTTP layer uses.
type SessionServiceInterface interface {
	SessionResolver
	Login(ctx context.Context, email, password string) (domainauth.Session, error)
	Logout(ctx context.Context, sessionID string)
	Invalidate(ctx context.Context, sessionID string)
}

// AuthHandlers provides HTTP handlers for login and logout.
type AuthHandlers struct {
	Svc          SessionServiceInterface
	T            *TemplateRenderer
	CookieDomain string
	Logger       *slog.Logger
}

func (h *AuthHandlers) logger() *slog.Logger {
	if h != nil && h.Logger != nil {
		return h.Logger
	}
	return slog.Default()
}

// LoginForm renders the login page.
// GET /auth/login?redirect_uri=<optional_redirect>.
// An already authenticated visitor is bounced straight to the dashboard.
func (h *AuthHandlers) LoginForm(w http.ResponseWriter, r *http.Request) {
	if sessionCookie, err := r.Cookie(sessionCookieName); err == nil {
		if _, resolveErr := h.Svc.Resolve(r.Context(), sessionCookie.Value); resolveErr == nil {
			http.Redirect(w, r, "/dashboard", http.StatusSeeOther)
			return
		}
	}

	h.renderLogin(w, r, loginPageData{
		RedirectURI: safeRedirectPath(r.URL.Query().Get("redirect_uri")),
	})
}

// Login handles the credential submit.
// POST /auth/login with form fields email, password, redirect_uri.
// A rejected credential re-renders the form with the error; nothing about the
// visitor's session changes.
func (h *AuthHandlers) Login(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		h.renderLogin(w, r, loginPageData{Error: "Invalid form submission."})
		return
	}

	email := strings.TrimSpace(r.PostFormValue("email"))
	password := r.PostFormValue("password")
	redirectURI := safeRedirectPath(r.PostFormValue("redirect_uri"))

	sess, err := h.Svc.Login(r.Context(), email, password)
	if err != nil {
		msg := "Invalid credentials"
		if !apperrors.IsValidation(err) {
			h.logger().ErrorContext(r.Context(), "login failed", slog.Any("error", err))
			msg = "Login is unavailable right now. Please try again."
		}
		h.renderLogin(w, r, loginPageData{
			Email:       email,
			RedirectURI: redirectURI,
			Error:       msg,
		})
		return
	}

	h.setSessionCookie(w, r, sess)
	http.Redirect(w, r, redirectURI, http.StatusSeeOther)
}

// Logout handles the logout endpoint.
// POST /auth/logout.
func (h *AuthHandlers) Logout(w http.ResponseWriter, r *http.Request) {
	if sessionCookie, err := r.Cookie(sessionCookieName); err == nil {
		h.Svc.Logout(r.Context(), sessionCookie.Value)
	}
	clearSessionCookie(w, r, h.CookieDomain)
	http.Redirect(w, r, "/auth/login", http.StatusSeeOther)
}

// loginPageData is the template data for the login page.
type loginPageData struct {
	Email       string
	RedirectURI string
	Error       string
}

func (h *AuthHandlers) renderLogin(w http.ResponseWriter, _ *http.Request, data loginPageData) {
	if data.RedirectURI == "" {
		data.RedirectURI = "/dashboard"
	}
	payload := map[string]any{
		"Title":       "Sign in - Records Console",
		"Email":       data.Email,
		"RedirectURI": data.RedirectURI,
	}
	if data.Error != "" {
		payload["Error"] = data.Error
	}
	if err := h.T.renderTemplate(w, "login-page", payload); err != nil {
		http.Error(w, "internal server error", http.StatusInternalServerError)
	}
}

// setSessionCookie writes the session cookie based on the session's expiry.
func (h *AuthHandlers) setSessionCookie(w http.ResponseWriter, r *http.Request, s domainauth.Session) {
	isSecure := r.TLS != nil || strings.EqualFold(r.Header.Get("X-Forwarded-Proto"), "https")
	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookieName,
		Value:    s.ID,
		Path:     "/",
		Domain:   h.CookieDomain,
		HttpOnly: true,
		Secure:   isSecure,
		SameSite: http.SameSiteLaxMode,
		MaxAge:   int(time.Until(s.ExpiresAt).Seconds()),
	})
}

// clearSessionCookie clears the session cookie by setting it to expire
// immediately. It mirrors key attributes (Secure, Path, Domain, SameSite)
// used when setting cookies to maximize compatibility across browsers during
// deletion.
func clearSessionCookie(w http.ResponseWriter, r *http.Request, domain string) {
	isSecure := r.TLS != nil || strings.EqualFold(r.Header.Get("X-Forwarded-Proto"), "https")
	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookieName,
		Value:    "",
		Path:     "/",
		Domain:   domain,
		HttpOnly: true,
		Secure:   isSecure,
		MaxAge:   -1,
		Expires:  time.Unix(0, 0).UTC(),
		SameSite: http.SameSiteLaxMode,
	})
}

// loginRedirectURL builds the login URL that lands the user back on target
// after they re-authenticate.
func loginRedirectURL(target string) string {
	return "/auth/login?redirect_uri=" + url.QueryEscape(safeRedirectPath(target))
}
