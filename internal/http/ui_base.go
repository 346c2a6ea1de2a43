package httpx

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/uniadmin/records-console/internal/apiclient"
	domainauth "github.com/uniadmin/records-console/internal/domain/auth"
	"github.com/uniadmin/records-console/internal/domain/model"
	apperrors "github.com/uniadmin/records-console/internal/errors"
)

const errMsgFixBelow = "Please fix the errors below."

// UsersService is a minimal interface for user account UI needs. Every call
// is made on behalf of the signed-in session, so the bearer token travels
// with each request.
type UsersService interface {
	ListUsers(ctx context.Context, token string) ([]model.User, error)
	GetUser(ctx context.Context, token string, id int64) (*model.User, error)
	CreateUser(ctx context.Context, token string, req model.CreateUserRequest) (*model.User, error)
	UpdateUser(ctx context.Context, token string, id int64, req model.UpdateUserRequest) (*model.User, error)
	DeleteUser(ctx context.Context, token string, id int64) error
}

// StudentsService is a minimal interface for student UI needs.
type StudentsService interface {
	ListStudents(ctx context.Context, token string) ([]model.Student, error)
	GetStudent(ctx context.Context, token string, id int64) (*model.Student, error)
	CreateStudent(ctx context.Context, token string, req model.CreateStudentRequest) (*model.Student, error)
	UpdateStudent(ctx context.Context, token string, id int64, req model.CreateStudentRequest) (*model.Student, error)
	DeleteStudent(ctx context.Context, token string, id int64) error
}

// TeachersService is a minimal interface for teacher UI needs.
type TeachersService interface {
	ListTeachers(ctx context.Context, token string) ([]model.Teacher, error)
	GetTeacher(ctx context.Context, token string, id int64) (*model.Teacher, error)
	CreateTeacher(ctx context.Context, token string, req model.CreateTeacherRequest) (*model.Teacher, error)
	UpdateTeacher(ctx context.Context, token string, id int64, req model.CreateTeacherRequest) (*model.Teacher, error)
	DeleteTeacher(ctx context.Context, token string, id int64) error
}

// AdministratorsService is a minimal interface for administrator UI needs.
type AdministratorsService interface {
	ListAdministrators(ctx context.Context, token string) ([]model.Administrator, error)
	GetAdministrator(ctx context.Context, token string, id int64) (*model.Administrator, error)
	CreateAdministrator(ctx context.Context, token string, req model.CreateAdministratorRequest) (*model.Administrator, error)
	UpdateAdministrator(ctx context.Context, token string, id int64, req model.CreateAdministratorRequest) (*model.Administrator, error)
	DeleteAdministrator(ctx context.Context, token string, id int64) error
}

// ProfileSearcher looks up the superset profile record.
type ProfileSearcher interface {
	SearchUser(ctx context.Context, token, value string) (*model.SearchResult, error)
}

// Compile-time interface assertions to ensure the API client satisfies the UI interfaces.
var (
	_ UsersService          = (*apiclient.Client)(nil)
	_ StudentsService       = (*apiclient.Client)(nil)
	_ TeachersService       = (*apiclient.Client)(nil)
	_ AdministratorsService = (*apiclient.Client)(nil)
	_ ProfileSearcher       = (*apiclient.Client)(nil)
)

// UIHandlers serves browser-facing routes.
type UIHandlers struct {
	T        *TemplateRenderer
	Auth     SessionServiceInterface
	Users    UsersService
	Students StudentsService
	Teachers TeachersService
	Admins   AdministratorsService
	Searcher ProfileSearcher

	CookieDomain string
	Logger       *slog.Logger
}

// logger returns the configured logger or falls back to slog.Default().
func (h *UIHandlers) logger() *slog.Logger {
	if h != nil && h.Logger != nil {
		return h.Logger
	}
	return slog.Default()
}

// PageMeta contains metadata for page rendering.
type PageMeta struct {
	Title       string
	PageTitle   string
	CurrentPage string
}

// basePageData constructs the common page data map with user context.
func basePageData(r *http.Request, meta PageMeta) map[string]any {
	data := map[string]any{
		"Title":       meta.Title,
		"PageTitle":   meta.PageTitle,
		"CurrentPage": meta.CurrentPage,
	}

	if session := GetSessionFromContext(r.Context()); session != nil {
		data["IsAuthenticated"] = true
		data["UserEmail"] = session.Identity.Email
		data["UserRole"] = string(session.Identity.Role)
		data["IsAdmin"] = session.Identity.Role == domainauth.RoleAdmin
	}

	return data
}

// sessionToken returns the signed-in session and its bearer token. The gate
// middleware guarantees presence on guarded routes; the empty fallback keeps
// misused handlers failing at the backend rather than panicking.
func sessionToken(r *http.Request) (*domainauth.Session, string) {
	session := GetSessionFromContext(r.Context())
	if session == nil {
		return nil, ""
	}
	return session, session.Token
}

// handleBackendError is the single boundary for errors coming back from the
// records API. A 401/403 means the session's token is no longer accepted:
// the session is invalidated, the cookie cleared, and the browser sent to
// login. Every other error renders the given page with a message, leaving
// the session untouched.
func (h *UIHandlers) handleBackendError(w http.ResponseWriter, r *http.Request, err error, render func(errMsg string)) bool {
	if err == nil {
		return false
	}

	if apperrors.IsUnauthorized(err) {
		h.forceLogout(w, r)
		return true
	}

	msg := "Something went wrong talking to the records service. Please try again."
	switch {
	case apperrors.IsNotFound(err):
		msg = "The requested record was not found."
	case apperrors.IsValidation(err) || apperrors.IsConflict(err):
		msg = appErrorMessage(err, msg)
	case apperrors.IsUnavailable(err):
		msg = "The records service is unreachable right now."
		h.logger().ErrorContext(r.Context(), "records API unavailable", slog.Any("error", err))
	default:
		h.logger().ErrorContext(r.Context(), "records API call failed", slog.Any("error", err))
	}

	render(msg)
	return true
}

// forceLogout tears down the session after the records API rejected its token.
func (h *UIHandlers) forceLogout(w http.ResponseWriter, r *http.Request) {
	if sessionCookie, cookieErr := r.Cookie(sessionCookieName); cookieErr == nil {
		h.Auth.Invalidate(r.Context(), sessionCookie.Value)
	}
	clearSessionCookie(w, r, h.CookieDomain)
	h.logger().WarnContext(r.Context(), "session invalidated after backend rejection",
		slog.String("path", r.URL.Path),
	)
	http.Redirect(w, r, loginRedirectURL(r.URL.RequestURI()), http.StatusSeeOther)
}

// appErrorMessage returns the AppError message when err carries one.
func appErrorMessage(err error, fallback string) string {
	var appErr *apperrors.AppError
	if errors.As(err, &appErr) && appErr.Message != "" {
		return appErr.Message
	}
	return fallback
}

// Page renders a full page: base data, optional fetch, layout.
type PageSpec struct {
	Meta  PageMeta
	Fetch func(ctx context.Context, data map[string]any) error
}

// Page builds base data, optionally fetches content data, and renders. Fetch
// errors pass through the backend error boundary, so an unauthorized answer
// forces logout instead of rendering.
func (h *UIHandlers) Page(w http.ResponseWriter, r *http.Request, spec PageSpec) {
	data := basePageData(r, spec.Meta)
	if spec.Fetch != nil {
		if err := spec.Fetch(r.Context(), data); err != nil {
			h.handleBackendError(w, r, err, func(msg string) {
				data["Error"] = true
				data["ErrorMessage"] = msg
				h.render(w, r, data)
			})
			return
		}
	}
	h.render(w, r, data)
}

func (h *UIHandlers) render(w http.ResponseWriter, r *http.Request, data any) {
	if err := h.T.RenderFull(w, r, data); err != nil {
		http.Error(w, "internal server error", http.StatusInternalServerError)
	}
}

// prepareForm normalizes shared form data fields before rendering.
func prepareForm(data map[string]any, mode FormMode) {
	data["Mode"] = string(mode)
	if errs, ok := data["Errors"]; !ok || errs == nil {
		data["Errors"] = map[string]string{}
	}
}

// pathID parses the {id} path segment.
func pathID(r *http.Request) (int64, bool) {
	raw := r.PathValue("id")
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}
