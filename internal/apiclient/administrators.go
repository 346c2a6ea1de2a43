package apiclient

import (
	"context"
	"fmt"
	"net/http"

	"github.com/uniadmin/records-console/internal/domain/model"
)

// ListAdministrators returns every administrator record.
func (c *Client) ListAdministrators(ctx context.Context, token string) ([]model.Administrator, error) {
	return getList[model.Administrator](ctx, c, token, "/administrators")
}

// GetAdministrator returns one administrator record by id.
func (c *Client) GetAdministrator(ctx context.Context, token string, id int64) (*model.Administrator, error) {
	return getOne[model.Administrator](ctx, c, token, fmt.Sprintf("/administrators/%d", id))
}

// CreateAdministrator creates an administrator record.
func (c *Client) CreateAdministrator(ctx context.Context, token string, req model.CreateAdministratorRequest) (*model.Administrator, error) {
	return writeOne[model.Administrator](ctx, c, request{
		Method: http.MethodPost,
		Path:   "/administrators",
		Token:  token,
		Body:   req,
	})
}

// UpdateAdministrator applies a partial update to an administrator record.
func (c *Client) UpdateAdministrator(ctx context.Context, token string, id int64, req model.CreateAdministratorRequest) (*model.Administrator, error) {
	return writeOne[model.Administrator](ctx, c, request{
		Method: http.MethodPut,
		Path:   fmt.Sprintf("/administrators/%d", id),
		Token:  token,
		Body:   req,
	})
}

// DeleteAdministrator removes an administrator record.
func (c *Client) DeleteAdministrator(ctx context.Context, token string, id int64) error {
	return c.doDiscard(ctx, request{
		Method: http.MethodDelete,
		Path:   fmt.Sprintf("/administrators/%d", id),
		Token:  token,
	})
}
