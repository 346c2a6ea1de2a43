package apiclient

import (
	"context"
	"fmt"
	"net/http"

	"github.com/uniadmin/records-console/internal/domain/model"
)

// ListTeachers returns every teacher record.
func (c *Client) ListTeachers(ctx context.Context, token string) ([]model.Teacher, error) {
	return getList[model.Teacher](ctx, c, token, "/teachers")
}

// GetTeacher returns one teacher record by id.
func (c *Client) GetTeacher(ctx context.Context, token string, id int64) (*model.Teacher, error) {
	return getOne[model.Teacher](ctx, c, token, fmt.Sprintf("/teachers/%d", id))
}

// CreateTeacher creates a teacher record.
func (c *Client) CreateTeacher(ctx context.Context, token string, req model.CreateTeacherRequest) (*model.Teacher, error) {
	return writeOne[model.Teacher](ctx, c, request{
		Method: http.MethodPost,
		Path:   "/teachers",
		Token:  token,
		Body:   req,
	})
}

// UpdateTeacher applies a partial update to a teacher record.
func (c *Client) UpdateTeacher(ctx context.Context, token string, id int64, req model.CreateTeacherRequest) (*model.Teacher, error) {
	return writeOne[model.Teacher](ctx, c, request{
		Method: http.MethodPut,
		Path:   fmt.Sprintf("/teachers/%d", id),
		Token:  token,
		Body:   req,
	})
}

// DeleteTeacher removes a teacher record.
func (c *Client) DeleteTeacher(ctx context.Context, token string, id int64) error {
	return c.doDiscard(ctx, request{
		Method: http.MethodDelete,
		Path:   fmt.Sprintf("/teachers/%d", id),
		Token:  token,
	})
}
