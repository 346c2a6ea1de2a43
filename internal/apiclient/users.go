package apiclient

import (
	"context"
	"fmt"
	"net/http"

	"github.com/uniadmin/records-console/internal/domain/model"
)

// ListUsers returns every system account.
func (c *Client) ListUsers(ctx context.Context, token string) ([]model.User, error) {
	return getList[model.User](ctx, c, token, "/users")
}

// GetUser returns one system account by id.
func (c *Client) GetUser(ctx context.Context, token string, id int64) (*model.User, error) {
	return getOne[model.User](ctx, c, token, fmt.Sprintf("/users/%d", id))
}

// CreateUser creates a system account.
func (c *Client) CreateUser(ctx context.Context, token string, req model.CreateUserRequest) (*model.User, error) {
	return writeOne[model.User](ctx, c, request{
		Method: http.MethodPost,
		Path:   "/users",
		Token:  token,
		Body:   req,
	})
}

// UpdateUser applies a partial update to a system account.
func (c *Client) UpdateUser(ctx context.Context, token string, id int64, req model.UpdateUserRequest) (*model.User, error) {
	return writeOne[model.User](ctx, c, request{
		Method: http.MethodPut,
		Path:   fmt.Sprintf("/users/%d", id),
		Token:  token,
		Body:   req,
	})
}

// DeleteUser removes a system account.
func (c *Client) DeleteUser(ctx context.Context, token string, id int64) error {
	return c.doDiscard(ctx, request{
		Method: http.MethodDelete,
		Path:   fmt.Sprintf("/users/%d", id),
		Token:  token,
	})
}
