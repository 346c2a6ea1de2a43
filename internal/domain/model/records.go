// Package model defines wire-level record shapes exchanged with the records API.
package model

import "github.com/uniadmin/records-console/internal/domain/auth"

// User is a system account record.
type User struct {
	ID     int64       `json:"id"`
	Email  string      `json:"email"`
	Role   string      `json:"role"`
	Status auth.Status `json:"status"`
}

// Person carries the fields shared by every member record type.
type Person struct {
	ID          int64  `json:"id"`
	DNI         string `json:"dni"`
	Name        string `json:"name"`
	LastName    string `json:"lastName"`
	PhoneNumber string `json:"phoneNumber"`
	Address     string `json:"address"`
	Email       string `json:"email"`
	Status      string `json:"status"`
	Role        string `json:"role"`
	CreatedAt   string `json:"createdAt,omitempty"`
	UpdatedAt   string `json:"updatedAt,omitempty"`
}

// FullName joins the given and family names for display.
func (p Person) FullName() string {
	switch {
	case p.Name == "":
		return p.LastName
	case p.LastName == "":
		return p.Name
	default:
		return p.Name + " " + p.LastName
	}
}

// Student is an enrolled member record.
type Student struct {
	Person
	StudentCode    string  `json:"studentCode"`
	Career         string  `json:"career"`
	AdmissionDate  string  `json:"admissionDate"`
	GraduationDate *string `json:"graduationDate"`
	GPA            float64 `json:"gpa"`
	StudentStatus  string  `json:"studentStatus"`
}

// Teacher is a faculty member record.
type Teacher struct {
	Person
	TeacherCode    string `json:"teacherCode"`
	Specialization string `json:"specialization"`
	AcademicDegree string `json:"academicDegree"`
	ContractType   string `json:"contractType"`
	HireDate       string `json:"hireDate"`
}

// Administrator is a staff member record.
type Administrator struct {
	Person
	AdminCode  string `json:"adminCode"`
	Department string `json:"department"`
	Position   string `json:"position"`
}

// CreatePersonRequest carries the shared fields for member creation.
type CreatePersonRequest struct {
	DocumentType string `json:"documentType"`
	DNI          string `json:"dni"`
	Name         string `json:"name"`
	LastName     string `json:"lastName"`
	Gender       string `json:"gender"`
	BirthDate    string `json:"birthDate"`
	PhoneNumber  string `json:"phoneNumber"`
	Address      string `json:"address"`
	Email        string `json:"email"`
	Password     string `json:"password,omitempty"`
}

// CreateUserRequest creates a system account.
type CreateUserRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     string `json:"role"`
}

// UpdateUserRequest updates a system account. Empty fields are omitted so the
// backend applies a partial update.
type UpdateUserRequest struct {
	Email    string `json:"email,omitempty"`
	Password string `json:"password,omitempty"`
	Role     string `json:"role,omitempty"`
	Status   string `json:"status,omitempty"`
}

// CreateStudentRequest creates a student record.
type CreateStudentRequest struct {
	CreatePersonRequest
	Career         string  `json:"career"`
	AdmissionDate  string  `json:"admissionDate"`
	GraduationDate *string `json:"graduationDate,omitempty"`
	GPA            float64 `json:"gpa"`
	StudentStatus  string  `json:"studentStatus"`
}

// CreateTeacherRequest creates a teacher record.
type CreateTeacherRequest struct {
	CreatePersonRequest
	Specialization string `json:"specialization"`
	AcademicDegree string `json:"academicDegree"`
	ContractType   string `json:"contractType"`
	HireDate       string `json:"hireDate"`
}

// CreateAdministratorRequest creates an administrator record.
type CreateAdministratorRequest struct {
	CreatePersonRequest
	Department string `json:"department"`
	Position   string `json:"position"`
}

// SearchResult is the superset record returned by GET /users/search. The
// endpoint accepts an email, a member code, or a document number and returns
// the core account fields plus whichever role-specific fields apply.
type SearchResult struct {
	ID          int64  `json:"id"`
	Email       string `json:"email"`
	Role        string `json:"role"`
	Status      string `json:"status"`
	DNI         string `json:"dni,omitempty"`
	Name        string `json:"name,omitempty"`
	LastName    string `json:"lastName,omitempty"`
	PhoneNumber string `json:"phoneNumber,omitempty"`
	Address     string `json:"address,omitempty"`
	Gender      string `json:"gender,omitempty"`

	StudentCode    string  `json:"studentCode,omitempty"`
	Career         string  `json:"career,omitempty"`
	GPA            float64 `json:"gpa,omitempty"`
	TeacherCode    string  `json:"teacherCode,omitempty"`
	Specialization string  `json:"specialization,omitempty"`
	AdminCode      string  `json:"adminCode,omitempty"`
	Department     string  `json:"department,omitempty"`
	Position       string  `json:"position,omitempty"`
}
