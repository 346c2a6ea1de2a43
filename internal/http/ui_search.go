package httpx

import (
	"context"
	"net/http"
	"strings"

	apperrors "github.com/uniadmin/records-console/internal/errors"
)

// Search serves the admin lookup tool. The backend accepts an email, a
// member code, or a document number and answers with the superset record.
// GET /search?value=...
func (h *UIHandlers) Search(w http.ResponseWriter, r *http.Request) {
	_, token := sessionToken(r)
	value := strings.TrimSpace(r.URL.Query().Get("value"))

	h.Page(w, r, PageSpec{
		Meta: PageMeta{Title: "Search - Records Console", PageTitle: "Search", CurrentPage: PageSearch},
		Fetch: func(ctx context.Context, data map[string]any) error {
			data["Query"] = value
			if value == "" {
				return nil
			}

			result, err := h.Searcher.SearchUser(ctx, token, value)
			if err != nil {
				if apperrors.IsNotFound(err) {
					data["NotFound"] = true
					return nil
				}
				return err
			}
			data["Result"] = result
			return nil
		},
	})
}
