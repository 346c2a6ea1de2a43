package httpx

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domainauth "github.com/uniadmin/records-console/internal/domain/auth"
	"github.com/uniadmin/records-console/internal/domain/model"
	apperrors "github.com/uniadmin/records-console/internal/errors"
)

// fakeRecordsAPI answers every record interface from fixed fixtures. A set
// err makes every call fail with it, which is how the forced-logout boundary
// gets exercised.
type fakeRecordsAPI struct {
	err      error
	users    []model.User
	students []model.Student
	teachers []model.Teacher
	admins   []model.Administrator
	result   *model.SearchResult
}

func (f *fakeRecordsAPI) ListUsers(context.Context, string) ([]model.User, error) {
	return f.users, f.err
}

func (f *fakeRecordsAPI) GetUser(_ context.Context, _ string, id int64) (*model.User, error) {
	if f.err != nil {
		return nil, f.err
	}
	for i := range f.users {
		if f.users[i].ID == id {
			return &f.users[i], nil
		}
	}
	return nil, apperrors.NotFound("user not found")
}

func (f *fakeRecordsAPI) CreateUser(_ context.Context, _ string, req model.CreateUserRequest) (*model.User, error) {
	if f.err != nil {
		return nil, f.err
	}
	return &model.User{ID: 1, Email: req.Email, Role: req.Role}, nil
}

func (f *fakeRecordsAPI) UpdateUser(_ context.Context, _ string, id int64, req model.UpdateUserRequest) (*model.User, error) {
	if f.err != nil {
		return nil, f.err
	}
	return &model.User{ID: id, Email: req.Email, Role: req.Role}, nil
}

func (f *fakeRecordsAPI) DeleteUser(context.Context, string, int64) error { return f.err }

func (f *fakeRecordsAPI) ListStudents(context.Context, string) ([]model.Student, error) {
	return f.students, f.err
}

func (f *fakeRecordsAPI) GetStudent(_ context.Context, _ string, id int64) (*model.Student, error) {
	if f.err != nil {
		return nil, f.err
	}
	for i := range f.students {
		if f.students[i].ID == id {
			return &f.students[i], nil
		}
	}
	return nil, apperrors.NotFound("student not found")
}

func (f *fakeRecordsAPI) CreateStudent(_ context.Context, _ string, req model.CreateStudentRequest) (*model.Student, error) {
	if f.err != nil {
		return nil, f.err
	}
	return &model.Student{Person: model.Person{ID: 1, Email: req.Email}}, nil
}

func (f *fakeRecordsAPI) UpdateStudent(_ context.Context, _ string, id int64, _ model.CreateStudentRequest) (*model.Student, error) {
	if f.err != nil {
		return nil, f.err
	}
	return &model.Student{Person: model.Person{ID: id}}, nil
}

func (f *fakeRecordsAPI) DeleteStudent(context.Context, string, int64) error { return f.err }

func (f *fakeRecordsAPI) ListTeachers(context.Context, string) ([]model.Teacher, error) {
	return f.teachers, f.err
}

func (f *fakeRecordsAPI) GetTeacher(_ context.Context, _ string, id int64) (*model.Teacher, error) {
	if f.err != nil {
		return nil, f.err
	}
	for i := range f.teachers {
		if f.teachers[i].ID == id {
			return &f.teachers[i], nil
		}
	}
	return nil, apperrors.NotFound("teacher not found")
}

func (f *fakeRecordsAPI) CreateTeacher(_ context.Context, _ string, req model.CreateTeacherRequest) (*model.Teacher, error) {
	if f.err != nil {
		return nil, f.err
	}
	return &model.Teacher{Person: model.Person{ID: 1, Email: req.Email}}, nil
}

func (f *fakeRecordsAPI) UpdateTeacher(_ context.Context, _ string, id int64, _ model.CreateTeacherRequest) (*model.Teacher, error) {
	if f.err != nil {
		return nil, f.err
	}
	return &model.Teacher{Person: model.Person{ID: id}}, nil
}

func (f *fakeRecordsAPI) DeleteTeacher(context.Context, string, int64) error { return f.err }

func (f *fakeRecordsAPI) ListAdministrators(context.Context, string) ([]model.Administrator, error) {
	return f.admins, f.err
}

func (f *fakeRecordsAPI) GetAdministrator(_ context.Context, _ string, id int64) (*model.Administrator, error) {
	if f.err != nil {
		return nil, f.err
	}
	for i := range f.admins {
		if f.admins[i].ID == id {
			return &f.admins[i], nil
		}
	}
	return nil, apperrors.NotFound("administrator not found")
}

func (f *fakeRecordsAPI) CreateAdministrator(_ context.Context, _ string, req model.CreateAdministratorRequest) (*model.Administrator, error) {
	if f.err != nil {
		return nil, f.err
	}
	return &model.Administrator{Person: model.Person{ID: 1, Email: req.Email}}, nil
}

func (f *fakeRecordsAPI) UpdateAdministrator(_ context.Context, _ string, id int64, _ model.CreateAdministratorRequest) (*model.Administrator, error) {
	if f.err != nil {
		return nil, f.err
	}
	return &model.Administrator{Person: model.Person{ID: id}}, nil
}

func (f *fakeRecordsAPI) DeleteAdministrator(context.Context, string, int64) error { return f.err }

func (f *fakeRecordsAPI) SearchUser(context.Context, string, string) (*model.SearchResult, error) {
	if f.err != nil {
		return nil, f.err
	}
	if f.result == nil {
		return nil, apperrors.NotFound("no match")
	}
	return f.result, nil
}

// newTestRouter assembles the production route table with test doubles.
func newTestRouter(t *testing.T, svc SessionServiceInterface, api *fakeRecordsAPI) http.Handler {
	t.Helper()
	tr := RequireTemplateRenderer(t)
	ui := &UIHandlers{
		T:        tr,
		Auth:     svc,
		Users:    api,
		Students: api,
		Teachers: api,
		Admins:   api,
		Searcher: api,
	}
	mux := http.NewServeMux()
	mux.Handle("GET /healthz", http.HandlerFunc(healthHandler))
	mux.Handle("HEAD /healthz", http.HandlerFunc(healthHandler))
	registerAuthRoutes(mux, &AuthHandlers{Svc: svc, T: tr})
	registerUIRoutes(mux, ui, uiRouteConfig{Auth: svc})
	mux.Handle("/", http.HandlerFunc(ui.NotFound))
	return BrowserDetection()(mux)
}

func adminSessionService() *fakeSessionService {
	return &fakeSessionService{sessions: map[string]domainauth.Session{
		"sess-admin": testSessionWithRole("sess-admin", domainauth.RoleAdmin),
	}}
}

func TestUIRoutes_UsersListRendersForAdmin(t *testing.T) {
	api := &fakeRecordsAPI{users: []model.User{
		{ID: 1, Email: "dean@example.edu", Role: "ADMIN", Status: domainauth.StatusActive},
		{ID: 2, Email: "prof@example.edu", Role: "TEACHER", Status: domainauth.StatusActive},
	}}
	h := newTestRouter(t, adminSessionService(), api)

	w := httptest.NewRecorder()
	h.ServeHTTP(w, browserRequest(http.MethodGet, "/users", "sess-admin"))

	assert.Equal(t, http.StatusOK, w.Code)
	body := w.Body.String()
	assert.True(t, ContainsAll(body, []string{"dean@example.edu", "prof@example.edu"}), body)
}

func TestUIRoutes_BackendRejectionForcesLogout(t *testing.T) {
	svc := adminSessionService()
	api := &fakeRecordsAPI{err: apperrors.Unauthorized(http.StatusUnauthorized, "token expired")}
	h := newTestRouter(t, svc, api)

	w := httptest.NewRecorder()
	h.ServeHTTP(w, browserRequest(http.MethodGet, "/users", "sess-admin"))

	assert.Equal(t, http.StatusSeeOther, w.Code)
	loc := w.Header().Get("Location")
	assert.Contains(t, loc, "/auth/login")
	assert.Contains(t, loc, "redirect_uri=%2Fusers")

	// Session is torn down, not just redirected around.
	assert.Equal(t, []string{"sess-admin"}, svc.invalidated)
	cookie := sessionCookieFrom(t, w)
	require.NotNil(t, cookie)
	assert.Empty(t, cookie.Value)
	assert.Negative(t, cookie.MaxAge)
}

func TestUIRoutes_BackendOutageRendersPageWithMessage(t *testing.T) {
	svc := adminSessionService()
	api := &fakeRecordsAPI{err: apperrors.Unavailable("records API unreachable", nil)}
	h := newTestRouter(t, svc, api)

	w := httptest.NewRecorder()
	h.ServeHTTP(w, browserRequest(http.MethodGet, "/students", "sess-admin"))

	// An outage never costs the user their session.
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "unreachable right now")
	assert.Empty(t, svc.invalidated)
}

func TestUIRoutes_StudentBlockedFromAdminPages(t *testing.T) {
	svc := &fakeSessionService{sessions: map[string]domainauth.Session{
		"sess-student": testSessionWithRole("sess-student", domainauth.RoleStudent),
	}}
	h := newTestRouter(t, svc, &fakeRecordsAPI{})

	for _, path := range []string{"/users", "/administrators", "/search", "/students", "/teachers"} {
		w := httptest.NewRecorder()
		h.ServeHTTP(w, browserRequest(http.MethodGet, path, "sess-student"))

		assert.Equal(t, http.StatusForbidden, w.Code, "path %s", path)
		assert.Contains(t, w.Body.String(), "Access Denied", "path %s", path)
	}
}

func TestUIRoutes_StudentCanOpenStudentRecordPage(t *testing.T) {
	svc := &fakeSessionService{sessions: map[string]domainauth.Session{
		"sess-student": testSessionWithRole("sess-student", domainauth.RoleStudent),
	}}
	api := &fakeRecordsAPI{students: []model.Student{{
		Person:        model.Person{ID: 7, Name: "Maria", LastName: "Lopez", Email: "maria@example.edu"},
		StudentCode:   "S2024-007",
		Career:        "Systems Engineering",
		StudentStatus: "ENROLLED",
	}}}
	h := newTestRouter(t, svc, api)

	w := httptest.NewRecorder()
	h.ServeHTTP(w, browserRequest(http.MethodGet, "/students/7", "sess-student"))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.True(t, ContainsAll(w.Body.String(), []string{"Maria Lopez", "S2024-007", "Systems Engineering"}))
}

func TestUIRoutes_DashboardShowsCountsForAdmin(t *testing.T) {
	api := &fakeRecordsAPI{
		users:    []model.User{{ID: 1}, {ID: 2}, {ID: 3}},
		students: []model.Student{{Person: model.Person{ID: 1}}},
		teachers: []model.Teacher{{Person: model.Person{ID: 1}}, {Person: model.Person{ID: 2}}},
	}
	h := newTestRouter(t, adminSessionService(), api)

	w := httptest.NewRecorder()
	h.ServeHTTP(w, browserRequest(http.MethodGet, "/dashboard", "sess-admin"))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.True(t, ContainsAll(w.Body.String(), []string{"User accounts", "Students", "Teachers", "Administrators"}))
}

func TestUIRoutes_RootRedirectsToDashboard(t *testing.T) {
	h := newTestRouter(t, adminSessionService(), &fakeRecordsAPI{})

	w := httptest.NewRecorder()
	h.ServeHTTP(w, browserRequest(http.MethodGet, "/", "sess-admin"))

	assert.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/dashboard", w.Header().Get("Location"))
}

func TestUIRoutes_UnknownPathRendersNotFoundPage(t *testing.T) {
	h := newTestRouter(t, adminSessionService(), &fakeRecordsAPI{})

	w := httptest.NewRecorder()
	h.ServeHTTP(w, browserRequest(http.MethodGet, "/no-such-page", "sess-admin"))

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), "404")
}

func TestUIRoutes_SearchRendersResult(t *testing.T) {
	api := &fakeRecordsAPI{result: &model.SearchResult{
		ID: 9, Email: "maria@example.edu", Role: "STUDENT", Status: "ACTIVE",
		Name: "Maria", LastName: "Lopez", StudentCode: "S2024-007", Career: "Systems Engineering",
	}}
	h := newTestRouter(t, adminSessionService(), api)

	w := httptest.NewRecorder()
	h.ServeHTTP(w, browserRequest(http.MethodGet, "/search?value=maria%40example.edu", "sess-admin"))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.True(t, ContainsAll(w.Body.String(), []string{"maria@example.edu", "S2024-007"}))
}

func TestUIRoutes_SearchMissRendersNoMatch(t *testing.T) {
	h := newTestRouter(t, adminSessionService(), &fakeRecordsAPI{})

	w := httptest.NewRecorder()
	h.ServeHTTP(w, browserRequest(http.MethodGet, "/search?value=nobody", "sess-admin"))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "No record matches")
}

func TestHealthz(t *testing.T) {
	h := newTestRouter(t, &fakeSessionService{}, &fakeRecordsAPI{})

	w := httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/healthz", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"ok"}`, w.Body.String())

	w = httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest(http.MethodHead, "/healthz", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, w.Body.String())
}
