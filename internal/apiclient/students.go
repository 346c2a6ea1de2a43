package apiclient

import (
	"context"
	"fmt"
	"net/http"

	"github.com/uniadmin/records-console/internal/domain/model"
)

// ListStudents returns every student record.
func (c *Client) ListStudents(ctx context.Context, token string) ([]model.Student, error) {
	return getList[model.Student](ctx, c, token, "/students")
}

// GetStudent returns one student record by id.
func (c *Client) GetStudent(ctx context.Context, token string, id int64) (*model.Student, error) {
	return getOne[model.Student](ctx, c, token, fmt.Sprintf("/students/%d", id))
}

// CreateStudent creates a student record.
func (c *Client) CreateStudent(ctx context.Context, token string, req model.CreateStudentRequest) (*model.Student, error) {
	return writeOne[model.Student](ctx, c, request{
		Method: http.MethodPost,
		Path:   "/students",
		Token:  token,
		Body:   req,
	})
}

// UpdateStudent applies a partial update to a student record. The backend
// accepts the creation shape with absent fields left unchanged.
func (c *Client) UpdateStudent(ctx context.Context, token string, id int64, req model.CreateStudentRequest) (*model.Student, error) {
	return writeOne[model.Student](ctx, c, request{
		Method: http.MethodPut,
		Path:   fmt.Sprintf("/students/%d", id),
		Token:  token,
		Body:   req,
	})
}

// DeleteStudent removes a student record.
func (c *Client) DeleteStudent(ctx context.Context, token string, id int64) error {
	return c.doDiscard(ctx, request{
		Method: http.MethodDelete,
		Path:   fmt.Sprintf("/students/%d", id),
		Token:  token,
	})
}
