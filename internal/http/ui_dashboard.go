package httpx

import (
	"context"
	"net/http"

	"golang.org/x/sync/errgroup"

	domainauth "github.com/uniadmin/records-console/internal/domain/auth"
)

// Index redirects the root path to the dashboard.
func (h *UIHandlers) Index(w http.ResponseWriter, r *http.Request) {
	http.Redirect(w, r, "/dashboard", http.StatusSeeOther)
}

// Dashboard serves the landing page. Administrators get record counts for
// every collection, fetched concurrently; other roles get their own corner
// of the system.
func (h *UIHandlers) Dashboard(w http.ResponseWriter, r *http.Request) {
	session, token := sessionToken(r)

	h.Page(w, r, PageSpec{
		Meta: PageMeta{Title: "Dashboard - Records Console", PageTitle: "Dashboard", CurrentPage: PageDashboard},
		Fetch: func(ctx context.Context, data map[string]any) error {
			if session == nil || session.Identity.Role != domainauth.RoleAdmin {
				return nil
			}
			return h.populateCounts(ctx, token, data)
		},
	})
}

// populateCounts fans out the four collection fetches and records their sizes.
func (h *UIHandlers) populateCounts(ctx context.Context, token string, data map[string]any) error {
	var userCount, studentCount, teacherCount, adminCount int

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		users, err := h.Users.ListUsers(gctx, token)
		if err != nil {
			return err
		}
		userCount = len(users)
		return nil
	})
	g.Go(func() error {
		students, err := h.Students.ListStudents(gctx, token)
		if err != nil {
			return err
		}
		studentCount = len(students)
		return nil
	})
	g.Go(func() error {
		teachers, err := h.Teachers.ListTeachers(gctx, token)
		if err != nil {
			return err
		}
		teacherCount = len(teachers)
		return nil
	})
	g.Go(func() error {
		admins, err := h.Admins.ListAdministrators(gctx, token)
		if err != nil {
			return err
		}
		adminCount = len(admins)
		return nil
	})
	if err := g.Wait(); err != nil {
		return err
	}

	data["ShowCounts"] = true
	data["UserCount"] = userCount
	data["StudentCount"] = studentCount
	data["TeacherCount"] = teacherCount
	data["AdministratorCount"] = adminCount
	return nil
}
