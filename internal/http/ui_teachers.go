package httpx

import (
	"context"
	"net/http"
	"strconv"
	"strings"

	"github.com/uniadmin/records-console/internal/domain/model"
)

// Teachers serves the teachers list page.
func (h *UIHandlers) TeachersList(w http.ResponseWriter, r *http.Request) {
	_, token := sessionToken(r)
	h.Page(w, r, PageSpec{
		Meta: PageMeta{Title: "Teachers - Records Console", PageTitle: "Teachers", CurrentPage: PageTeachers},
		Fetch: func(ctx context.Context, data map[string]any) error {
			teachers, err := h.Teachers.ListTeachers(ctx, token)
			if err != nil {
				return err
			}
			data["Teachers"] = teachers
			return nil
		},
	})
}

// TeacherView serves a single teacher page.
func (h *UIHandlers) TeacherView(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		h.NotFound(w, r)
		return
	}

	_, token := sessionToken(r)
	h.Page(w, r, PageSpec{
		Meta: PageMeta{Title: "Teacher - Records Console", PageTitle: "Teacher", CurrentPage: PageTeacher},
		Fetch: func(ctx context.Context, data map[string]any) error {
			teacher, err := h.Teachers.GetTeacher(ctx, token, id)
			if err != nil {
				return err
			}
			data["Teacher"] = teacher
			return nil
		},
	})
}

// TeacherNew renders the create-teacher form.
func (h *UIHandlers) TeacherNew(w http.ResponseWriter, r *http.Request) {
	h.renderTeacherForm(w, r, map[string]any{"Mode": FormModeCreate})
}

// TeacherCreate handles the create-teacher submit.
// POST /teachers.
func (h *UIHandlers) TeacherCreate(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "bad request", http.StatusBadRequest)
		return
	}

	req := parseTeacherForm(r)
	if errs := validateTeacherForm(req, true); len(errs) > 0 {
		h.renderTeacherForm(w, r, map[string]any{
			"Mode":         FormModeCreate,
			"Errors":       errs,
			"Error":        true,
			"ErrorMessage": errMsgFixBelow,
			"Form":         req,
		})
		return
	}

	_, token := sessionToken(r)
	created, err := h.Teachers.CreateTeacher(r.Context(), token, req)
	if h.handleBackendError(w, r, err, func(msg string) {
		h.renderTeacherForm(w, r, map[string]any{
			"Mode":         FormModeCreate,
			"Error":        true,
			"ErrorMessage": msg,
			"Form":         req,
		})
	}) {
		return
	}

	http.Redirect(w, r, "/teachers/"+strconv.FormatInt(created.ID, 10), http.StatusSeeOther)
}

// TeacherEdit renders the edit-teacher form.
func (h *UIHandlers) TeacherEdit(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		h.NotFound(w, r)
		return
	}

	_, token := sessionToken(r)
	teacher, err := h.Teachers.GetTeacher(r.Context(), token, id)
	if h.handleBackendError(w, r, err, func(msg string) {
		h.renderTeacherForm(w, r, map[string]any{
			"Mode":         FormModeEdit,
			"Error":        true,
			"ErrorMessage": msg,
		})
	}) {
		return
	}

	h.renderTeacherForm(w, r, map[string]any{
		"Mode":    FormModeEdit,
		"Teacher": teacher,
		"Form":    teacherFormFromRecord(teacher),
	})
}

// TeacherUpdate handles the edit-teacher submit.
// POST /teachers/{id}.
func (h *UIHandlers) TeacherUpdate(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		h.NotFound(w, r)
		return
	}
	if err := r.ParseForm(); err != nil {
		http.Error(w, "bad request", http.StatusBadRequest)
		return
	}

	req := parseTeacherForm(r)
	if errs := validateTeacherForm(req, false); len(errs) > 0 {
		h.renderTeacherForm(w, r, map[string]any{
			"Mode":         FormModeEdit,
			"Errors":       errs,
			"Error":        true,
			"ErrorMessage": errMsgFixBelow,
			"Form":         req,
			"Teacher":      &model.Teacher{Person: model.Person{ID: id}},
		})
		return
	}

	_, token := sessionToken(r)
	updated, err := h.Teachers.UpdateTeacher(r.Context(), token, id, req)
	if h.handleBackendError(w, r, err, func(msg string) {
		h.renderTeacherForm(w, r, map[string]any{
			"Mode":         FormModeEdit,
			"Error":        true,
			"ErrorMessage": msg,
			"Form":         req,
			"Teacher":      &model.Teacher{Person: model.Person{ID: id}},
		})
	}) {
		return
	}

	http.Redirect(w, r, "/teachers/"+strconv.FormatInt(updated.ID, 10), http.StatusSeeOther)
}

// TeacherDelete handles the delete-teacher submit.
// POST /teachers/{id}/delete.
func (h *UIHandlers) TeacherDelete(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		h.NotFound(w, r)
		return
	}

	_, token := sessionToken(r)
	err := h.Teachers.DeleteTeacher(r.Context(), token, id)
	if h.handleBackendError(w, r, err, func(msg string) {
		h.TeachersList(w, r)
	}) {
		return
	}

	http.Redirect(w, r, "/teachers", http.StatusSeeOther)
}

func (h *UIHandlers) renderTeacherForm(w http.ResponseWriter, r *http.Request, data map[string]any) {
	mode, _ := data["Mode"].(FormMode)
	if mode == "" {
		mode = FormModeCreate
	}
	meta := PageMeta{Title: "New Teacher - Records Console", PageTitle: "New Teacher", CurrentPage: PageTeacherForm}
	if mode == FormModeEdit {
		meta = PageMeta{Title: "Edit Teacher - Records Console", PageTitle: "Edit Teacher", CurrentPage: PageTeacherForm}
	}
	if _, ok := data["Form"]; !ok {
		data["Form"] = model.CreateTeacherRequest{}
	}
	data["Action"] = "/teachers"
	if mode == FormModeEdit {
		if t, ok := data["Teacher"].(*model.Teacher); ok && t != nil {
			data["Action"] = "/teachers/" + strconv.FormatInt(t.ID, 10)
		}
	}
	prepareForm(data, mode)
	for k, v := range basePageData(r, meta) {
		data[k] = v
	}
	h.render(w, r, data)
}

func parseTeacherForm(r *http.Request) model.CreateTeacherRequest {
	return model.CreateTeacherRequest{
		CreatePersonRequest: parsePersonForm(r),
		Specialization:      strings.TrimSpace(r.PostFormValue("specialization")),
		AcademicDegree:      strings.TrimSpace(r.PostFormValue("academicDegree")),
		ContractType:        strings.TrimSpace(r.PostFormValue("contractType")),
		HireDate:            strings.TrimSpace(r.PostFormValue("hireDate")),
	}
}

func validateTeacherForm(req model.CreateTeacherRequest, requirePassword bool) map[string]string {
	errs := validatePersonForm(req.CreatePersonRequest, requirePassword)
	if req.Specialization == "" {
		errs["specialization"] = "Specialization is required."
	}
	return errs
}

func teacherFormFromRecord(t *model.Teacher) model.CreateTeacherRequest {
	return model.CreateTeacherRequest{
		CreatePersonRequest: model.CreatePersonRequest{
			DNI:         t.DNI,
			Name:        t.Name,
			LastName:    t.LastName,
			PhoneNumber: t.PhoneNumber,
			Address:     t.Address,
			Email:       t.Email,
		},
		Specialization: t.Specialization,
		AcademicDegree: t.AcademicDegree,
		ContractType:   t.ContractType,
		HireDate:       t.HireDate,
	}
}
