package httpx

import (
	"context"
	"log/slog"
	"net/http"

	apperrors "github.com/uniadmin/records-console/internal/errors"
)

// Profile serves the signed-in user's own profile page. The view prefers the
// enriched record from the profile lookup; when that fails the session
// identity is enough to render a useful page, so the failure only logs.
func (h *UIHandlers) Profile(w http.ResponseWriter, r *http.Request) {
	session, token := sessionToken(r)

	h.Page(w, r, PageSpec{
		Meta: PageMeta{Title: "My Profile - Records Console", PageTitle: "My Profile", CurrentPage: PageProfile},
		Fetch: func(ctx context.Context, data map[string]any) error {
			if session == nil {
				return nil
			}
			data["Identity"] = session.Identity

			profile, err := h.Searcher.SearchUser(ctx, token, session.Identity.Email)
			if err != nil {
				// A rejected token still has to tear the session down.
				if apperrors.IsUnauthorized(err) {
					return err
				}
				h.logger().WarnContext(ctx, "profile lookup failed, showing session identity",
					slog.Any("error", err),
				)
				return nil
			}
			if profile.Email == session.Identity.Email {
				data["Profile"] = profile
			}
			return nil
		},
	})
}
