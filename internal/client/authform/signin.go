package authform

import (
	"errors"

	"github.com/julzedz/pbs-frontend/internal/client/api"
)

// Signin is the sign-in form: both fields are simply required.
type Signin struct {
	Email    string
	Password string

	Banner string
	errors map[string]string
}

func NewSignin() *Signin {
	return &Signin{errors: map[string]string{}}
}

func (f *Signin) Error(field string) string { return f.errors[field] }

// Validate checks the two required fields and reports submittability.
func (f *Signin) Validate() bool {
	f.errors = map[string]string{}
	if f.Email == "" {
		f.errors[FieldEmail] = "Email is required"
	}
	if f.Password == "" {
		f.errors[FieldPassword] = "Password is required"
	}
	f.Banner = ""
	return len(f.errors) == 0
}

func (f *Signin) Params() api.SigninParams {
	return api.SigninParams{Email: f.Email, Password: f.Password}
}

// ApplyServerError sets the banner for a failed sign-in. Field-level errors
// never come back from this endpoint.
func (f *Signin) ApplyServerError(err error) {
	var apiErr *api.Error
	if errors.As(err, &apiErr) && apiErr.Message != "" {
		f.Banner = apiErr.Message
		return
	}
	f.Banner = "Signin failed. Please try again."
}
