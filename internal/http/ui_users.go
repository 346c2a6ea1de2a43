package httpx

import (
	"context"
	"net/http"
	"net/mail"
	"strconv"
	"strings"

	"github.com/uniadmin/records-console/internal/domain/model"
)

// Users serves the user accounts list page.
func (h *UIHandlers) UsersList(w http.ResponseWriter, r *http.Request) {
	_, token := sessionToken(r)
	h.Page(w, r, PageSpec{
		Meta: PageMeta{Title: "Users - Records Console", PageTitle: "Users", CurrentPage: PageUsers},
		Fetch: func(ctx context.Context, data map[string]any) error {
			users, err := h.Users.ListUsers(ctx, token)
			if err != nil {
				return err
			}
			data["Users"] = users
			return nil
		},
	})
}

// UserView serves a single user account page.
func (h *UIHandlers) UserView(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		h.NotFound(w, r)
		return
	}

	_, token := sessionToken(r)
	h.Page(w, r, PageSpec{
		Meta: PageMeta{Title: "User - Records Console", PageTitle: "User", CurrentPage: PageUser},
		Fetch: func(ctx context.Context, data map[string]any) error {
			user, err := h.Users.GetUser(ctx, token, id)
			if err != nil {
				return err
			}
			data["User"] = user
			return nil
		},
	})
}

// UserNew renders the create-user form.
func (h *UIHandlers) UserNew(w http.ResponseWriter, r *http.Request) {
	h.renderUserForm(w, r, map[string]any{"Mode": FormModeCreate})
}

// UserCreate handles the create-user submit.
// POST /users with form fields email, password, role.
func (h *UIHandlers) UserCreate(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "bad request", http.StatusBadRequest)
		return
	}

	req := model.CreateUserRequest{
		Email:    strings.TrimSpace(r.PostFormValue("email")),
		Password: r.PostFormValue("password"),
		Role:     strings.TrimSpace(r.PostFormValue("role")),
	}
	if errs := validateUserForm(req.Email, req.Password, req.Role, true); len(errs) > 0 {
		h.renderUserForm(w, r, map[string]any{
			"Mode":         FormModeCreate,
			"Errors":       errs,
			"Error":        true,
			"ErrorMessage": errMsgFixBelow,
			"Form":         req,
		})
		return
	}

	_, token := sessionToken(r)
	created, err := h.Users.CreateUser(r.Context(), token, req)
	if h.handleBackendError(w, r, err, func(msg string) {
		h.renderUserForm(w, r, map[string]any{
			"Mode":         FormModeCreate,
			"Error":        true,
			"ErrorMessage": msg,
			"Form":         req,
		})
	}) {
		return
	}

	http.Redirect(w, r, "/users/"+strconv.FormatInt(created.ID, 10), http.StatusSeeOther)
}

// UserEdit renders the edit-user form.
func (h *UIHandlers) UserEdit(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		h.NotFound(w, r)
		return
	}

	_, token := sessionToken(r)
	user, err := h.Users.GetUser(r.Context(), token, id)
	if h.handleBackendError(w, r, err, func(msg string) {
		h.renderUserForm(w, r, map[string]any{
			"Mode":         FormModeEdit,
			"Error":        true,
			"ErrorMessage": msg,
		})
	}) {
		return
	}

	h.renderUserForm(w, r, map[string]any{
		"Mode": FormModeEdit,
		"User": user,
		"Form": model.CreateUserRequest{Email: user.Email, Role: user.Role},
	})
}

// UserUpdate handles the edit-user submit. Blank fields are left out of the
// request so the backend applies a partial update.
// POST /users/{id}.
func (h *UIHandlers) UserUpdate(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		h.NotFound(w, r)
		return
	}
	if err := r.ParseForm(); err != nil {
		http.Error(w, "bad request", http.StatusBadRequest)
		return
	}

	req := model.UpdateUserRequest{
		Email:    strings.TrimSpace(r.PostFormValue("email")),
		Password: r.PostFormValue("password"),
		Role:     strings.TrimSpace(r.PostFormValue("role")),
		Status:   strings.TrimSpace(r.PostFormValue("status")),
	}
	if errs := validateUserForm(req.Email, req.Password, req.Role, false); len(errs) > 0 {
		h.renderUserForm(w, r, map[string]any{
			"Mode":         FormModeEdit,
			"Errors":       errs,
			"Error":        true,
			"ErrorMessage": errMsgFixBelow,
			"User":         &model.User{ID: id, Email: req.Email, Role: req.Role},
		})
		return
	}

	_, token := sessionToken(r)
	updated, err := h.Users.UpdateUser(r.Context(), token, id, req)
	if h.handleBackendError(w, r, err, func(msg string) {
		h.renderUserForm(w, r, map[string]any{
			"Mode":         FormModeEdit,
			"Error":        true,
			"ErrorMessage": msg,
			"User":         &model.User{ID: id, Email: req.Email, Role: req.Role},
		})
	}) {
		return
	}

	http.Redirect(w, r, "/users/"+strconv.FormatInt(updated.ID, 10), http.StatusSeeOther)
}

// UserDelete handles the delete-user submit.
// POST /users/{id}/delete.
func (h *UIHandlers) UserDelete(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		h.NotFound(w, r)
		return
	}

	_, token := sessionToken(r)
	err := h.Users.DeleteUser(r.Context(), token, id)
	if h.handleBackendError(w, r, err, func(msg string) {
		h.Page(w, r, PageSpec{
			Meta: PageMeta{Title: "Users - Records Console", PageTitle: "Users", CurrentPage: PageUsers},
			Fetch: func(ctx context.Context, data map[string]any) error {
				data["Error"] = true
				data["ErrorMessage"] = msg
				users, listErr := h.Users.ListUsers(ctx, token)
				if listErr == nil {
					data["Users"] = users
				}
				return nil
			},
		})
	}) {
		return
	}

	http.Redirect(w, r, "/users", http.StatusSeeOther)
}

func (h *UIHandlers) renderUserForm(w http.ResponseWriter, r *http.Request, data map[string]any) {
	mode, _ := data["Mode"].(FormMode)
	if mode == "" {
		mode = FormModeCreate
	}
	meta := PageMeta{Title: "New User - Records Console", PageTitle: "New User", CurrentPage: PageUserForm}
	if mode == FormModeEdit {
		meta = PageMeta{Title: "Edit User - Records Console", PageTitle: "Edit User", CurrentPage: PageUserForm}
	}
	if _, ok := data["Form"]; !ok {
		data["Form"] = model.CreateUserRequest{}
	}
	data["Action"] = "/users"
	if mode == FormModeEdit {
		if u, ok := data["User"].(*model.User); ok && u != nil {
			data["Action"] = "/users/" + strconv.FormatInt(u.ID, 10)
		}
	}
	prepareForm(data, mode)
	for k, v := range basePageData(r, meta) {
		data[k] = v
	}
	h.render(w, r, data)
}

// validateUserForm checks the account form fields. Password is only required
// on create; role must be one of the canonical set.
func validateUserForm(email, password, role string, requirePassword bool) map[string]string {
	errs := map[string]string{}
	if email == "" {
		errs["email"] = "Email is required."
	} else if _, err := mail.ParseAddress(email); err != nil {
		errs["email"] = "Enter a valid email address."
	}
	if requirePassword && password == "" {
		errs["password"] = "Password is required."
	}
	if role != "" && !isKnownRole(role) {
		errs["role"] = "Choose a valid role."
	}
	if requirePassword && role == "" {
		errs["role"] = "Role is required."
	}
	return errs
}

func isKnownRole(role string) bool {
	switch role {
	case "ADMIN", "STUDENT", "TEACHER":
		return true
	default:
		return false
	}
}
