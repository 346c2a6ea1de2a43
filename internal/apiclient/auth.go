package apiclient

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"github.com/uniadmin/records-console/internal/domain/model"
	apperrors "github.com/uniadmin/records-console/internal/errors"
)

// loginRequest is the credential payload for POST /auth/login.
type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// loginResponse carries the issued bearer token.
type loginResponse struct {
	Token string `json:"token"`
}

// Login exchanges credentials for a bearer token.
//
// This endpoint is unauthenticated and its failures are never session-fatal:
// any non-2xx answer means the credentials were rejected, so the status is
// mapped to a validation error rather than the unauthorized variant that
// forces logout elsewhere.
func (c *Client) Login(ctx context.Context, email, password string) (string, error) {
	var resp loginResponse
	err := c.doJSON(ctx, request{
		Method: http.MethodPost,
		Path:   "/auth/login",
		Body:   loginRequest{Email: email, Password: password},
	}, &resp)
	if err != nil {
		if status := apperrors.GetStatus(err); status != 0 {
			return "", &apperrors.AppError{
				Code:    apperrors.ErrCodeValidation,
				Message: "Invalid credentials",
				Status:  status,
			}
		}
		return "", fmt.Errorf("login: %w", err)
	}
	if resp.Token == "" {
		return "", apperrors.Internal("login succeeded but no token was returned")
	}
	return resp.Token, nil
}

// SearchUser looks up the superset profile record for an email, member code,
// or document number. Used both as the post-login enrichment lookup and as
// the admin search tool.
func (c *Client) SearchUser(ctx context.Context, token, value string) (*model.SearchResult, error) {
	path := "/users/search?value=" + url.QueryEscape(value)
	return getOne[model.SearchResult](ctx, c, token, path)
}
