package api

import (
	"context"
	"net/http"
	"strings"

	"github.com/julzedz/pbs-frontend/internal/shared/models"
)

// SignupParams are the call-site field names; the wire shape nests them
// under "user" with the backend's attribute names.
type SignupParams struct {
	FirstName       string
	LastName        string
	Phone           string
	Email           string
	Password        string
	ConfirmPassword string
}

// Signup registers a new account via POST /users.
func (c *Client) Signup(ctx context.Context, p SignupParams) error {
	payload := map[string]any{
		"user": map[string]any{
			"first_name":            p.FirstName,
			"last_name":             p.LastName,
			"telephone":             p.Phone,
			"email":                 p.Email,
			"password":              p.Password,
			"password_confirmation": p.ConfirmPassword,
		},
	}
	_, err := c.sendJSON(ctx, http.MethodPost, "/users", payload, nil)
	return err
}

type SigninParams struct {
	Email    string
	Password string
}

// signinUser is the flat user object the sign-in endpoint returns under
// "data" (not a full JSON:API resource).
type signinUser struct {
	ID        string `json:"id"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Email     string `json:"email"`
	Telephone string `json:"telephone"`
	CreatedAt string `json:"created_at"`
}

// Signin authenticates via POST /users/sign_in and assembles a session from
// the response body plus the bearer credential carried in the Authorization
// response header. It does not install the session; that is the caller's
// move.
func (c *Client) Signin(ctx context.Context, p SigninParams) (*models.Session, error) {
	payload := map[string]any{
		"user": map[string]string{
			"email":    p.Email,
			"password": p.Password,
		},
	}
	var body struct {
		Data *signinUser `json:"data"`
	}
	header, err := c.sendJSON(ctx, http.MethodPost, "/users/sign_in", payload, &body)
	if err != nil {
		return nil, err
	}
	token := strings.TrimPrefix(header.Get("Authorization"), "Bearer ")
	sess := &models.Session{Email: p.Email, Token: token}
	if u := body.Data; u != nil {
		sess.ID = u.ID
		sess.FirstName = u.FirstName
		sess.LastName = u.LastName
		sess.Email = u.Email
		sess.Telephone = u.Telephone
		sess.CreatedAt = u.CreatedAt
	}
	return sess, nil
}

// Signout issues the best-effort DELETE /users/sign_out. Callers treat a
// failure as non-fatal and evict the local session regardless.
func (c *Client) Signout(ctx context.Context) error {
	resp, err := c.send(ctx, http.MethodDelete, "/users/sign_out", "", nil)
	if err != nil {
		return err
	}
	resp.Body.Close()
	return nil
}

type ProfileParams struct {
	FirstName string
	LastName  string
	Phone     string
	Email     string
}

// UpdateProfile edits the signed-in user via PUT /users.
func (c *Client) UpdateProfile(ctx context.Context, p ProfileParams) error {
	payload := map[string]any{
		"user": map[string]string{
			"first_name": p.FirstName,
			"last_name":  p.LastName,
			"telephone":  p.Phone,
			"email":      p.Email,
		},
	}
	_, err := c.sendJSON(ctx, http.MethodPut, "/users", payload, nil)
	return err
}
