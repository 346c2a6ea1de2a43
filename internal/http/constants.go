package httpx

// CurrentPage constants define the page identifiers used in templates and navigation.
const (
	PageDashboard = "dashboard"
	PageProfile   = "profile"
	PageSearch    = "search"

	// User account pages.
	PageUsers    = "users"
	PageUser     = "user"
	PageUserForm = "user-form"

	// Student pages.
	PageStudents    = "students"
	PageStudent     = "student"
	PageStudentForm = "student-form"

	// Teacher pages.
	PageTeachers    = "teachers"
	PageTeacher     = "teacher"
	PageTeacherForm = "teacher-form"

	// Administrator pages.
	PageAdministrators    = "administrators"
	PageAdministrator     = "administrator"
	PageAdministratorForm = "administrator-form"
)

// sessionCookieName is the cookie that carries the opaque session id.
const sessionCookieName = "session_id"

// FormMode represents the mode of a form (create or edit).
type FormMode string

const (
	FormModeCreate FormMode = "create"
	FormModeEdit   FormMode = "edit"
)

// Content templates are defined once and reused to avoid per-call allocations.
//
//nolint:gochecknoglobals // static read-only lookup for templates
var contentTemplates = map[string]string{
	PageDashboard:         "dashboard-content",
	PageProfile:           "profile-content",
	PageSearch:            "search-content",
	PageUsers:             "users-content",
	PageUser:              "user-view-content",
	PageUserForm:          "user-form-content",
	PageStudents:          "students-content",
	PageStudent:           "student-view-content",
	PageStudentForm:       "student-form-content",
	PageTeachers:          "teachers-content",
	PageTeacher:           "teacher-view-content",
	PageTeacherForm:       "teacher-form-content",
	PageAdministrators:    "administrators-content",
	PageAdministrator:     "administrator-view-content",
	PageAdministratorForm: "administrator-form-content",
}

// ContentTemplateFor returns the content template for the given CurrentPage.
// Falls back to dashboard-content for unknown pages.
func ContentTemplateFor(currentPage string) string {
	if name, ok := contentTemplates[currentPage]; ok {
		return name
	}
	return "dashboard-content"
}
