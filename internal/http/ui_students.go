package httpx

import (
	"context"
	"net/http"
	"strconv"
	"strings"

	"github.com/uniadmin/records-console/internal/domain/model"
)

// Students serves the students list page.
func (h *UIHandlers) StudentsList(w http.ResponseWriter, r *http.Request) {
	_, token := sessionToken(r)
	h.Page(w, r, PageSpec{
		Meta: PageMeta{Title: "Students - Records Console", PageTitle: "Students", CurrentPage: PageStudents},
		Fetch: func(ctx context.Context, data map[string]any) error {
			students, err := h.Students.ListStudents(ctx, token)
			if err != nil {
				return err
			}
			data["Students"] = students
			return nil
		},
	})
}

// StudentView serves a single student page.
func (h *UIHandlers) StudentView(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		h.NotFound(w, r)
		return
	}

	_, token := sessionToken(r)
	h.Page(w, r, PageSpec{
		Meta: PageMeta{Title: "Student - Records Console", PageTitle: "Student", CurrentPage: PageStudent},
		Fetch: func(ctx context.Context, data map[string]any) error {
			student, err := h.Students.GetStudent(ctx, token, id)
			if err != nil {
				return err
			}
			data["Student"] = student
			return nil
		},
	})
}

// StudentNew renders the create-student form.
func (h *UIHandlers) StudentNew(w http.ResponseWriter, r *http.Request) {
	h.renderStudentForm(w, r, map[string]any{"Mode": FormModeCreate})
}

// StudentCreate handles the create-student submit.
// POST /students.
func (h *UIHandlers) StudentCreate(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "bad request", http.StatusBadRequest)
		return
	}

	req := parseStudentForm(r)
	if errs := validateStudentForm(req, true); len(errs) > 0 {
		h.renderStudentForm(w, r, map[string]any{
			"Mode":         FormModeCreate,
			"Errors":       errs,
			"Error":        true,
			"ErrorMessage": errMsgFixBelow,
			"Form":         req,
		})
		return
	}

	_, token := sessionToken(r)
	created, err := h.Students.CreateStudent(r.Context(), token, req)
	if h.handleBackendError(w, r, err, func(msg string) {
		h.renderStudentForm(w, r, map[string]any{
			"Mode":         FormModeCreate,
			"Error":        true,
			"ErrorMessage": msg,
			"Form":         req,
		})
	}) {
		return
	}

	http.Redirect(w, r, "/students/"+strconv.FormatInt(created.ID, 10), http.StatusSeeOther)
}

// StudentEdit renders the edit-student form.
func (h *UIHandlers) StudentEdit(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		h.NotFound(w, r)
		return
	}

	_, token := sessionToken(r)
	student, err := h.Students.GetStudent(r.Context(), token, id)
	if h.handleBackendError(w, r, err, func(msg string) {
		h.renderStudentForm(w, r, map[string]any{
			"Mode":         FormModeEdit,
			"Error":        true,
			"ErrorMessage": msg,
		})
	}) {
		return
	}

	h.renderStudentForm(w, r, map[string]any{
		"Mode":    FormModeEdit,
		"Student": student,
		"Form":    studentFormFromRecord(student),
	})
}

// StudentUpdate handles the edit-student submit.
// POST /students/{id}.
func (h *UIHandlers) StudentUpdate(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		h.NotFound(w, r)
		return
	}
	if err := r.ParseForm(); err != nil {
		http.Error(w, "bad request", http.StatusBadRequest)
		return
	}

	req := parseStudentForm(r)
	if errs := validateStudentForm(req, false); len(errs) > 0 {
		h.renderStudentForm(w, r, map[string]any{
			"Mode":         FormModeEdit,
			"Errors":       errs,
			"Error":        true,
			"ErrorMessage": errMsgFixBelow,
			"Form":         req,
			"Student":      &model.Student{Person: model.Person{ID: id}},
		})
		return
	}

	_, token := sessionToken(r)
	updated, err := h.Students.UpdateStudent(r.Context(), token, id, req)
	if h.handleBackendError(w, r, err, func(msg string) {
		h.renderStudentForm(w, r, map[string]any{
			"Mode":         FormModeEdit,
			"Error":        true,
			"ErrorMessage": msg,
			"Form":         req,
			"Student":      &model.Student{Person: model.Person{ID: id}},
		})
	}) {
		return
	}

	http.Redirect(w, r, "/students/"+strconv.FormatInt(updated.ID, 10), http.StatusSeeOther)
}

// StudentDelete handles the delete-student submit.
// POST /students/{id}/delete.
func (h *UIHandlers) StudentDelete(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		h.NotFound(w, r)
		return
	}

	_, token := sessionToken(r)
	err := h.Students.DeleteStudent(r.Context(), token, id)
	if h.handleBackendError(w, r, err, func(msg string) {
		h.StudentsList(w, r)
	}) {
		return
	}

	http.Redirect(w, r, "/students", http.StatusSeeOther)
}

func (h *UIHandlers) renderStudentForm(w http.ResponseWriter, r *http.Request, data map[string]any) {
	mode, _ := data["Mode"].(FormMode)
	if mode == "" {
		mode = FormModeCreate
	}
	meta := PageMeta{Title: "New Student - Records Console", PageTitle: "New Student", CurrentPage: PageStudentForm}
	if mode == FormModeEdit {
		meta = PageMeta{Title: "Edit Student - Records Console", PageTitle: "Edit Student", CurrentPage: PageStudentForm}
	}
	if _, ok := data["Form"]; !ok {
		data["Form"] = model.CreateStudentRequest{}
	}
	data["Action"] = "/students"
	if mode == FormModeEdit {
		if s, ok := data["Student"].(*model.Student); ok && s != nil {
			data["Action"] = "/students/" + strconv.FormatInt(s.ID, 10)
		}
	}
	prepareForm(data, mode)
	for k, v := range basePageData(r, meta) {
		data[k] = v
	}
	h.render(w, r, data)
}

func parseStudentForm(r *http.Request) model.CreateStudentRequest {
	req := model.CreateStudentRequest{
		CreatePersonRequest: parsePersonForm(r),
		Career:              strings.TrimSpace(r.PostFormValue("career")),
		AdmissionDate:       strings.TrimSpace(r.PostFormValue("admissionDate")),
		StudentStatus:       strings.TrimSpace(r.PostFormValue("studentStatus")),
	}
	if gpa := strings.TrimSpace(r.PostFormValue("gpa")); gpa != "" {
		if v, err := strconv.ParseFloat(gpa, 64); err == nil {
			req.GPA = v
		}
	}
	if grad := strings.TrimSpace(r.PostFormValue("graduationDate")); grad != "" {
		req.GraduationDate = &grad
	}
	return req
}

func validateStudentForm(req model.CreateStudentRequest, requirePassword bool) map[string]string {
	errs := validatePersonForm(req.CreatePersonRequest, requirePassword)
	if req.Career == "" {
		errs["career"] = "Career is required."
	}
	if req.GPA < 0 || req.GPA > 20 {
		errs["gpa"] = "GPA must be between 0 and 20."
	}
	return errs
}

func studentFormFromRecord(s *model.Student) model.CreateStudentRequest {
	return model.CreateStudentRequest{
		CreatePersonRequest: model.CreatePersonRequest{
			DNI:         s.DNI,
			Name:        s.Name,
			LastName:    s.LastName,
			PhoneNumber: s.PhoneNumber,
			Address:     s.Address,
			Email:       s.Email,
		},
		Career:         s.Career,
		AdmissionDate:  s.AdmissionDate,
		GraduationDate: s.GraduationDate,
		GPA:            s.GPA,
		StudentStatus:  s.StudentStatus,
	}
}
