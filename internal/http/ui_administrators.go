package httpx

import (
	"context"
	"net/http"
	"strconv"
	"strings"

	"github.com/uniadmin/records-console/internal/domain/model"
)

// Administrators serves the administrators list page.
func (h *UIHandlers) Administrators(w http.ResponseWriter, r *http.Request) {
	_, token := sessionToken(r)
	h.Page(w, r, PageSpec{
		Meta: PageMeta{Title: "Administrators - Records Console", PageTitle: "Administrators", CurrentPage: PageAdministrators},
		Fetch: func(ctx context.Context, data map[string]any) error {
			admins, err := h.Admins.ListAdministrators(ctx, token)
			if err != nil {
				return err
			}
			data["Administrators"] = admins
			return nil
		},
	})
}

// AdministratorView serves a single administrator page.
func (h *UIHandlers) AdministratorView(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		h.NotFound(w, r)
		return
	}

	_, token := sessionToken(r)
	h.Page(w, r, PageSpec{
		Meta: PageMeta{Title: "Administrator - Records Console", PageTitle: "Administrator", CurrentPage: PageAdministrator},
		Fetch: func(ctx context.Context, data map[string]any) error {
			admin, err := h.Admins.GetAdministrator(ctx, token, id)
			if err != nil {
				return err
			}
			data["Administrator"] = admin
			return nil
		},
	})
}

// AdministratorNew renders the create-administrator form.
func (h *UIHandlers) AdministratorNew(w http.ResponseWriter, r *http.Request) {
	h.renderAdministratorForm(w, r, map[string]any{"Mode": FormModeCreate})
}

// AdministratorCreate handles the create-administrator submit.
// POST /administrators.
func (h *UIHandlers) AdministratorCreate(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "bad request", http.StatusBadRequest)
		return
	}

	req := parseAdministratorForm(r)
	if errs := validateAdministratorForm(req, true); len(errs) > 0 {
		h.renderAdministratorForm(w, r, map[string]any{
			"Mode":         FormModeCreate,
			"Errors":       errs,
			"Error":        true,
			"ErrorMessage": errMsgFixBelow,
			"Form":         req,
		})
		return
	}

	_, token := sessionToken(r)
	created, err := h.Admins.CreateAdministrator(r.Context(), token, req)
	if h.handleBackendError(w, r, err, func(msg string) {
		h.renderAdministratorForm(w, r, map[string]any{
			"Mode":         FormModeCreate,
			"Error":        true,
			"ErrorMessage": msg,
			"Form":         req,
		})
	}) {
		return
	}

	http.Redirect(w, r, "/administrators/"+strconv.FormatInt(created.ID, 10), http.StatusSeeOther)
}

// AdministratorEdit renders the edit-administrator form.
func (h *UIHandlers) AdministratorEdit(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		h.NotFound(w, r)
		return
	}

	_, token := sessionToken(r)
	admin, err := h.Admins.GetAdministrator(r.Context(), token, id)
	if h.handleBackendError(w, r, err, func(msg string) {
		h.renderAdministratorForm(w, r, map[string]any{
			"Mode":         FormModeEdit,
			"Error":        true,
			"ErrorMessage": msg,
		})
	}) {
		return
	}

	h.renderAdministratorForm(w, r, map[string]any{
		"Mode":          FormModeEdit,
		"Administrator": admin,
		"Form":          administratorFormFromRecord(admin),
	})
}

// AdministratorUpdate handles the edit-administrator submit.
// POST /administrators/{id}.
func (h *UIHandlers) AdministratorUpdate(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		h.NotFound(w, r)
		return
	}
	if err := r.ParseForm(); err != nil {
		http.Error(w, "bad request", http.StatusBadRequest)
		return
	}

	req := parseAdministratorForm(r)
	if errs := validateAdministratorForm(req, false); len(errs) > 0 {
		h.renderAdministratorForm(w, r, map[string]any{
			"Mode":          FormModeEdit,
			"Errors":        errs,
			"Error":         true,
			"ErrorMessage":  errMsgFixBelow,
			"Form":          req,
			"Administrator": &model.Administrator{Person: model.Person{ID: id}},
		})
		return
	}

	_, token := sessionToken(r)
	updated, err := h.Admins.UpdateAdministrator(r.Context(), token, id, req)
	if h.handleBackendError(w, r, err, func(msg string) {
		h.renderAdministratorForm(w, r, map[string]any{
			"Mode":          FormModeEdit,
			"Error":         true,
			"ErrorMessage":  msg,
			"Form":          req,
			"Administrator": &model.Administrator{Person: model.Person{ID: id}},
		})
	}) {
		return
	}

	http.Redirect(w, r, "/administrators/"+strconv.FormatInt(updated.ID, 10), http.StatusSeeOther)
}

// AdministratorDelete handles the delete-administrator submit.
// POST /administrators/{id}/delete.
func (h *UIHandlers) AdministratorDelete(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		h.NotFound(w, r)
		return
	}

	_, token := sessionToken(r)
	err := h.Admins.DeleteAdministrator(r.Context(), token, id)
	if h.handleBackendError(w, r, err, func(msg string) {
		h.Administrators(w, r)
	}) {
		return
	}

	http.Redirect(w, r, "/administrators", http.StatusSeeOther)
}

func (h *UIHandlers) renderAdministratorForm(w http.ResponseWriter, r *http.Request, data map[string]any) {
	mode, _ := data["Mode"].(FormMode)
	if mode == "" {
		mode = FormModeCreate
	}
	meta := PageMeta{
		Title:       "New Administrator - Records Console",
		PageTitle:   "New Administrator",
		CurrentPage: PageAdministratorForm,
	}
	if mode == FormModeEdit {
		meta = PageMeta{
			Title:       "Edit Administrator - Records Console",
			PageTitle:   "Edit Administrator",
			CurrentPage: PageAdministratorForm,
		}
	}
	if _, ok := data["Form"]; !ok {
		data["Form"] = model.CreateAdministratorRequest{}
	}
	data["Action"] = "/administrators"
	if mode == FormModeEdit {
		if a, ok := data["Administrator"].(*model.Administrator); ok && a != nil {
			data["Action"] = "/administrators/" + strconv.FormatInt(a.ID, 10)
		}
	}
	prepareForm(data, mode)
	for k, v := range basePageData(r, meta) {
		data[k] = v
	}
	h.render(w, r, data)
}

func parseAdministratorForm(r *http.Request) model.CreateAdministratorRequest {
	return model.CreateAdministratorRequest{
		CreatePersonRequest: parsePersonForm(r),
		Department:          strings.TrimSpace(r.PostFormValue("department")),
		Position:            strings.TrimSpace(r.PostFormValue("position")),
	}
}

func validateAdministratorForm(req model.CreateAdministratorRequest, requirePassword bool) map[string]string {
	errs := validatePersonForm(req.CreatePersonRequest, requirePassword)
	if req.Department == "" {
		errs["department"] = "Department is required."
	}
	return errs
}

func administratorFormFromRecord(a *model.Administrator) model.CreateAdministratorRequest {
	return model.CreateAdministratorRequest{
		CreatePersonRequest: model.CreatePersonRequest{
			DNI:         a.DNI,
			Name:        a.Name,
			LastName:    a.LastName,
			PhoneNumber: a.PhoneNumber,
			Address:     a.Address,
			Email:       a.Email,
		},
		Department: a.Department,
		Position:   a.Position,
	}
}
