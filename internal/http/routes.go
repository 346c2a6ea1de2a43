package httpx

import (
	"io/fs"
	"log"
	"log/slog"
	"net/http"
	"os"

	console "github.com/uniadmin/records-console"
	"github.com/uniadmin/records-console/internal/apiclient"
	domainauth "github.com/uniadmin/records-console/internal/domain/auth"
)

// TemplatePathFromRoot is where templates live on disk, relative to the
// repository root. Dev mode reads them from here for hot reloading.
const TemplatePathFromRoot = "frontend/templates"

// RouterServices holds everything the HTTP router needs.
type RouterServices struct {
	Auth         SessionServiceInterface
	API          *apiclient.Client
	CookieDomain string
	IsDev        bool
	Logger       *slog.Logger
}

// NewRouter creates and configures the HTTP router with browser middleware.
func NewRouter(services RouterServices) http.Handler {
	mux := http.NewServeMux()

	mux.Handle("GET /healthz", http.HandlerFunc(healthHandler))
	mux.Handle("HEAD /healthz", http.HandlerFunc(healthHandler))
	mux.Handle("GET /static/", staticHandler(services.IsDev))

	uiHandlers := setupUIHandlers(services)
	if uiHandlers != nil {
		authHandlers := &AuthHandlers{
			Svc:          services.Auth,
			T:            uiHandlers.T,
			CookieDomain: services.CookieDomain,
			Logger:       services.Logger,
		}
		registerAuthRoutes(mux, authHandlers)

		cfg := uiRouteConfig{Auth: services.Auth}
		registerUIRoutes(mux, uiHandlers, cfg)

		// Anything the mux does not recognise gets the styled 404 page.
		mux.Handle("/", http.HandlerFunc(uiHandlers.NotFound))
	}

	return BrowserDetection()(mux)
}

// setupUIHandlers builds the template renderer and the UI handler set.
// Dev mode loads templates from disk so edits show up without a rebuild;
// production serves them from the embedded filesystem.
func setupUIHandlers(services RouterServices) *UIHandlers {
	var templateFS fs.FS
	if services.IsDev {
		templateFS = os.DirFS(TemplatePathFromRoot)
	} else {
		sub, err := fs.Sub(console.TemplateFS, "frontend/templates")
		if err != nil {
			log.Printf("failed to create sub-filesystem for templates: %v; falling back to disk", err)
			sub = os.DirFS(TemplatePathFromRoot)
		}
		templateFS = sub
	}

	tr, err := NewTemplateRenderer(TemplateRendererConfig{
		TemplateFS: templateFS,
		Logger:     services.Logger,
	})
	if err != nil {
		if services.Logger != nil {
			services.Logger.Error("failed to create template renderer", slog.Any("error", err))
		} else {
			log.Printf("ERROR: failed to create template renderer: %v", err)
		}
		return nil
	}

	return &UIHandlers{
		T:            tr,
		Auth:         services.Auth,
		Users:        services.API,
		Students:     services.API,
		Teachers:     services.API,
		Admins:       services.API,
		Searcher:     services.API,
		CookieDomain: services.CookieDomain,
		Logger:       services.Logger,
	}
}

// staticHandler serves /static/* assets. Dev mode reads from disk so
// stylesheet edits show up without a rebuild.
func staticHandler(isDev bool) http.Handler {
	if isDev {
		return http.StripPrefix("/static/", http.FileServer(http.Dir("frontend/static")))
	}
	staticSub, err := fs.Sub(console.StaticFS, "frontend/static")
	if err != nil {
		log.Printf("failed to create sub-filesystem for static assets: %v", err)
		return http.StripPrefix("/static/", http.FileServer(http.Dir("frontend/static")))
	}
	return http.StripPrefix("/static/", http.FileServer(http.FS(staticSub)))
}

func registerAuthRoutes(mux *http.ServeMux, h *AuthHandlers) {
	mux.HandleFunc("GET /auth/login", h.LoginForm)
	mux.HandleFunc("POST /auth/login", h.Login)
	mux.HandleFunc("POST /auth/logout", h.Logout)
}

// uiRouteConfig holds configuration for UI route registration.
type uiRouteConfig struct {
	Auth SessionServiceInterface
}

// authWrap requires a live session but no particular role.
func (cfg uiRouteConfig) authWrap() func(http.Handler) http.Handler {
	return RequireAuthBrowser(cfg.Auth)
}

// roleWrap requires a live session carrying one of the given roles.
func (cfg uiRouteConfig) roleWrap(roles ...domainauth.Role) func(http.Handler) http.Handler {
	return RequireRolesBrowser(cfg.Auth, roles...)
}

func registerUIRoutes(mux *http.ServeMux, h *UIHandlers, cfg uiRouteConfig) {
	registerUIDashboardRoutes(mux, h, cfg)
	registerUIUserRoutes(mux, h, cfg)
	registerUIStudentRoutes(mux, h, cfg)
	registerUITeacherRoutes(mux, h, cfg)
	registerUIAdministratorRoutes(mux, h, cfg)
}

// registerUIDashboardRoutes wires the pages every authenticated user can reach.
func registerUIDashboardRoutes(mux *http.ServeMux, h *UIHandlers, cfg uiRouteConfig) {
	wrap := cfg.authWrap()
	mux.Handle("GET /{$}", wrap(http.HandlerFunc(h.Index)))
	mux.Handle("GET /dashboard", wrap(http.HandlerFunc(h.Dashboard)))
	mux.Handle("GET /profile", wrap(http.HandlerFunc(h.Profile)))
}

// registerUIUserRoutes wires account management and directory search, both
// admin-only surfaces.
func registerUIUserRoutes(mux *http.ServeMux, h *UIHandlers, cfg uiRouteConfig) {
	wrapAdmin := cfg.roleWrap(domainauth.RoleAdmin)
	mux.Handle("GET /search", wrapAdmin(http.HandlerFunc(h.Search)))
	mux.Handle("GET /users", wrapAdmin(http.HandlerFunc(h.UsersList)))
	mux.Handle("GET /users/new", wrapAdmin(http.HandlerFunc(h.UserNew)))
	mux.Handle("GET /users/{id}", wrapAdmin(http.HandlerFunc(h.UserView)))
	mux.Handle("GET /users/{id}/edit", wrapAdmin(http.HandlerFunc(h.UserEdit)))
	mux.Handle("POST /users", wrapAdmin(http.HandlerFunc(h.UserCreate)))
	mux.Handle("POST /users/{id}", wrapAdmin(http.HandlerFunc(h.UserUpdate)))
	mux.Handle("POST /users/{id}/delete", wrapAdmin(http.HandlerFunc(h.UserDelete)))
}

// registerUIStudentRoutes wires student record pages. List and lifecycle are
// admin-only; a student may view and edit their own record pages.
func registerUIStudentRoutes(mux *http.ServeMux, h *UIHandlers, cfg uiRouteConfig) {
	wrapAdmin := cfg.roleWrap(domainauth.RoleAdmin)
	wrapViewer := cfg.roleWrap(domainauth.RoleAdmin, domainauth.RoleStudent)
	mux.Handle("GET /students", wrapAdmin(http.HandlerFunc(h.StudentsList)))
	mux.Handle("GET /students/new", wrapAdmin(http.HandlerFunc(h.StudentNew)))
	mux.Handle("POST /students", wrapAdmin(http.HandlerFunc(h.StudentCreate)))
	mux.Handle("POST /students/{id}/delete", wrapAdmin(http.HandlerFunc(h.StudentDelete)))

	mux.Handle("GET /students/{id}", wrapViewer(http.HandlerFunc(h.StudentView)))
	mux.Handle("GET /students/{id}/edit", wrapViewer(http.HandlerFunc(h.StudentEdit)))
	mux.Handle("POST /students/{id}", wrapViewer(http.HandlerFunc(h.StudentUpdate)))
}

// registerUITeacherRoutes mirrors the student layout for teacher records.
func registerUITeacherRoutes(mux *http.ServeMux, h *UIHandlers, cfg uiRouteConfig) {
	wrapAdmin := cfg.roleWrap(domainauth.RoleAdmin)
	wrapViewer := cfg.roleWrap(domainauth.RoleAdmin, domainauth.RoleTeacher)
	mux.Handle("GET /teachers", wrapAdmin(http.HandlerFunc(h.TeachersList)))
	mux.Handle("GET /teachers/new", wrapAdmin(http.HandlerFunc(h.TeacherNew)))
	mux.Handle("POST /teachers", wrapAdmin(http.HandlerFunc(h.TeacherCreate)))
	mux.Handle("POST /teachers/{id}/delete", wrapAdmin(http.HandlerFunc(h.TeacherDelete)))

	mux.Handle("GET /teachers/{id}", wrapViewer(http.HandlerFunc(h.TeacherView)))
	mux.Handle("GET /teachers/{id}/edit", wrapViewer(http.HandlerFunc(h.TeacherEdit)))
	mux.Handle("POST /teachers/{id}", wrapViewer(http.HandlerFunc(h.TeacherUpdate)))
}

// registerUIAdministratorRoutes wires administrator record pages (admin-only).
func registerUIAdministratorRoutes(mux *http.ServeMux, h *UIHandlers, cfg uiRouteConfig) {
	wrapAdmin := cfg.roleWrap(domainauth.RoleAdmin)
	mux.Handle("GET /administrators", wrapAdmin(http.HandlerFunc(h.Administrators)))
	mux.Handle("GET /administrators/new", wrapAdmin(http.HandlerFunc(h.AdministratorNew)))
	mux.Handle("GET /administrators/{id}", wrapAdmin(http.HandlerFunc(h.AdministratorView)))
	mux.Handle("GET /administrators/{id}/edit", wrapAdmin(http.HandlerFunc(h.AdministratorEdit)))
	mux.Handle("POST /administrators", wrapAdmin(http.HandlerFunc(h.AdministratorCreate)))
	mux.Handle("POST /administrators/{id}", wrapAdmin(http.HandlerFunc(h.AdministratorUpdate)))
	mux.Handle("POST /administrators/{id}/delete", wrapAdmin(http.HandlerFunc(h.AdministratorDelete)))
}
