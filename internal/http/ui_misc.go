package httpx

import (
	"errors"
	"net/http"
)

// NotFound handles 404s with auth-aware behavior: browser requests get the
// HTML error page, anything else a JSON error.
func (h *UIHandlers) NotFound(w http.ResponseWriter, r *http.Request) {
	if IsBrowserRequest(r) {
		h.renderBrowserNotFound(w, r)
		return
	}
	WriteError(w, ErrorParams{
		Code:    http.StatusNotFound,
		ErrCode: "not_found",
		Err:     errors.New("not found"),
	})
}

func (h *UIHandlers) renderBrowserNotFound(w http.ResponseWriter, r *http.Request) {
	session := GetSessionFromContext(r.Context())

	data := map[string]any{
		"Title":           "Page Not Found - Records Console",
		"Code":            "404",
		"Message":         "The page you're looking for doesn't exist.",
		"IsAuthenticated": session != nil,
		"RedirectURI":     safeRedirectPath(r.URL.RequestURI()),
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusNotFound)
	if h.T == nil || h.T.RenderError(w, r, data) != nil {
		http.Error(w, "Page not found", http.StatusNotFound)
	}
}
