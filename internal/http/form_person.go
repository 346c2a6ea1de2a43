package httpx

import (
	"net/http"
	"net/mail"
	"strings"

	"github.com/uniadmin/records-console/internal/domain/model"
)

// parsePersonForm reads the shared member fields out of a submitted form.
// Callers must have run r.ParseForm already.
func parsePersonForm(r *http.Request) model.CreatePersonRequest {
	return model.CreatePersonRequest{
		DocumentType: strings.TrimSpace(r.PostFormValue("documentType")),
		DNI:          strings.TrimSpace(r.PostFormValue("dni")),
		Name:         strings.TrimSpace(r.PostFormValue("name")),
		LastName:     strings.TrimSpace(r.PostFormValue("lastName")),
		Gender:       strings.TrimSpace(r.PostFormValue("gender")),
		BirthDate:    strings.TrimSpace(r.PostFormValue("birthDate")),
		PhoneNumber:  strings.TrimSpace(r.PostFormValue("phoneNumber")),
		Address:      strings.TrimSpace(r.PostFormValue("address")),
		Email:        strings.TrimSpace(r.PostFormValue("email")),
		Password:     r.PostFormValue("password"),
	}
}

// validatePersonForm checks the shared member fields. A password is only
// demanded when the submit creates a new account.
func validatePersonForm(p model.CreatePersonRequest, requirePassword bool) map[string]string {
	errs := map[string]string{}
	if p.Name == "" {
		errs["name"] = "First name is required."
	}
	if p.LastName == "" {
		errs["lastName"] = "Last name is required."
	}
	if p.DNI == "" {
		errs["dni"] = "Document number is required."
	}
	if p.Email == "" {
		errs["email"] = "Email is required."
	} else if _, err := mail.ParseAddress(p.Email); err != nil {
		errs["email"] = "Enter a valid email address."
	}
	if requirePassword && p.Password == "" {
		errs["password"] = "Password is required."
	}
	return errs
}
