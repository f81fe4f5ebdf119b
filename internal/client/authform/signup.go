// Package authform holds the sign-up and sign-in form state machines:
// per-field validation after first touch, submit gating, and the mapping
// from backend error envelopes to field and banner messages.
package authform

import (
	"errors"
	"strings"

	"github.com/julzedz/pbs-frontend/internal/client/api"
)

// Form field names. They match the call-site naming, not the backend's.
const (
	FieldFirstName       = "firstName"
	FieldLastName        = "lastName"
	FieldPhone           = "phone"
	FieldEmail           = "email"
	FieldPassword        = "password"
	FieldConfirmPassword = "confirmPassword"
)

// backend attribute -> form field
var attrToField = map[string]string{
	"telephone":  FieldPhone,
	"first_name": FieldFirstName,
	"last_name":  FieldLastName,
}

// Signup is the sign-up form. Zero value is not usable; call NewSignup.
type Signup struct {
	FirstName       string
	LastName        string
	Phone           string
	Email           string
	Password        string
	ConfirmPassword string

	// Banner is the form-level message shown above the fields.
	Banner string

	touched map[string]bool
	errors  map[string]string
}

func NewSignup() *Signup {
	return &Signup{touched: map[string]bool{}, errors: map[string]string{}}
}

// Set updates one field, marks it touched, and revalidates it, clearing any
// stale banner. Mirrors an on-change handler.
func (f *Signup) Set(field, value string) {
	switch field {
	case FieldFirstName:
		f.FirstName = value
	case FieldLastName:
		f.LastName = value
	case FieldPhone:
		f.Phone = value
	case FieldEmail:
		f.Email = value
	case FieldPassword:
		f.Password = value
	case FieldConfirmPassword:
		f.ConfirmPassword = value
	default:
		return
	}
	f.touched[field] = true
	f.validateField(field)
	f.Banner = ""
}

// Blur marks a field touched and revalidates it without changing its value.
func (f *Signup) Blur(field string) {
	f.touched[field] = true
	f.validateField(field)
}

// Error returns the visible message for a field: empty until the field has
// been touched.
func (f *Signup) Error(field string) string {
	if !f.touched[field] {
		return ""
	}
	return f.errors[field]
}

func (f *Signup) validateField(field string) {
	msg := ""
	switch field {
	case FieldFirstName:
		if strings.TrimSpace(f.FirstName) == "" {
			msg = "First name is required"
		} else if !ValidName(f.FirstName) {
			msg = "First name must be at least 2 letters and contain only letters, spaces, hyphens, or apostrophes"
		}
	case FieldLastName:
		if strings.TrimSpace(f.LastName) == "" {
			msg = "Last name is required"
		} else if !ValidName(f.LastName) {
			msg = "Last name must be at least 2 letters and contain only letters, spaces, hyphens, or apostrophes"
		}
	case FieldPhone:
		if strings.TrimSpace(f.Phone) == "" {
			msg = "Phone number is required"
		} else if !ValidPhone(f.Phone) {
			msg = "Phone number must be in format: 08012345678 (11 digits starting with 0)"
		}
	case FieldEmail:
		if strings.TrimSpace(f.Email) == "" {
			msg = "Email is required"
		} else if !ValidEmail(f.Email) {
			msg = "Please enter a valid email address"
		}
	case FieldPassword:
		if f.Password == "" {
			msg = "Password is required"
		} else if !ValidPassword(f.Password) {
			msg = "Password must be at least 7 characters long"
		}
	case FieldConfirmPassword:
		if f.ConfirmPassword == "" {
			msg = "Please confirm your password"
		} else if f.Password != f.ConfirmPassword {
			msg = "Passwords do not match"
		}
	}
	if msg == "" {
		delete(f.errors, field)
	} else {
		f.errors[field] = msg
	}
}

// CanSubmit gates the submit control: true iff every field validator
// accepts the current values.
func (f *Signup) CanSubmit() bool {
	return ValidName(f.FirstName) &&
		ValidName(f.LastName) &&
		ValidPhone(f.Phone) &&
		ValidEmail(f.Email) &&
		ValidPassword(f.Password) &&
		f.ConfirmPassword != "" &&
		f.Password == f.ConfirmPassword
}

// ValidateAll runs every field validator (marking all touched) and reports
// whether the form may be submitted.
func (f *Signup) ValidateAll() bool {
	for _, field := range []string{
		FieldFirstName, FieldLastName, FieldPhone,
		FieldEmail, FieldPassword, FieldConfirmPassword,
	} {
		f.touched[field] = true
		f.validateField(field)
	}
	return len(f.errors) == 0
}

// Params builds the API call parameters from the form.
func (f *Signup) Params() api.SignupParams {
	return api.SignupParams{
		FirstName:       f.FirstName,
		LastName:        f.LastName,
		Phone:           f.Phone,
		Email:           f.Email,
		Password:        f.Password,
		ConfirmPassword: f.ConfirmPassword,
	}
}

// ApplyServerError maps a failed signup onto field errors and the banner,
// per the backend's envelopes.
func (f *Signup) ApplyServerError(err error) {
	var apiErr *api.Error
	if !errors.As(err, &apiErr) {
		f.Banner = "An unexpected error occurred. Please try again"
		return
	}
	switch {
	case apiErr.IsValidation() && len(apiErr.Errors) > 0:
		for attr, msgs := range apiErr.Errors {
			if len(msgs) == 0 {
				continue
			}
			field := attr
			if mapped, ok := attrToField[attr]; ok {
				field = mapped
			}
			msg := msgs[0]
			if strings.Contains(msg, "has already been taken") {
				switch attr {
				case "email":
					msg = "This email has already been used to create an account"
				case "telephone":
					msg = "This phone number has already been registered"
				}
			}
			f.errors[field] = msg
			f.touched[field] = true
		}
		f.Banner = "Please correct the errors below"
	case apiErr.IsNetwork():
		f.Banner = "Network connection failed. Please check your internet connection and try again"
	case apiErr.StatusCode == 500:
		f.Banner = "Server error. Please try again later"
	case apiErr.Message != "":
		f.Banner = apiErr.Message
	default:
		f.Banner = "Signup failed. Please try again"
	}
}
