package cmd

import (
	"bufio"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/julzedz/pbs-frontend/internal/client/authform"
	"github.com/julzedz/pbs-frontend/internal/client/nav"
)

type authClient struct {
	app *app

	email           string
	password        string
	firstName       string
	lastName        string
	phone           string
	confirmPassword string
}

func newAuthCmd(a *app) *cobra.Command {
	c := &authClient{app: a}
	cmd := &cobra.Command{Use: "auth", Short: "Account and session commands"}

	signup := &cobra.Command{Use: "signup", Short: "Create a new account", RunE: c.signup}
	signup.Flags().StringVar(&c.firstName, "first-name", "", "First name")
	signup.Flags().StringVar(&c.lastName, "last-name", "", "Last name")
	signup.Flags().StringVar(&c.phone, "phone", "", "Phone number (08012345678)")
	signup.Flags().StringVar(&c.email, "email", "", "Email address")
	signup.Flags().StringVar(&c.password, "password", "", "Password (prompted when omitted)")
	signup.Flags().StringVar(&c.confirmPassword, "confirm-password", "", "Password confirmation")
	cmd.AddCommand(signup)

	login := &cobra.Command{Use: "login", Short: "Sign in and store the session", RunE: c.login}
	login.Flags().StringVar(&c.email, "email", "", "Email address")
	login.Flags().StringVar(&c.password, "password", "", "Password (prompted when omitted)")
	cmd.AddCommand(login)

	cmd.AddCommand(&cobra.Command{Use: "logout", Short: "Sign out everywhere local", RunE: c.logout})
	cmd.AddCommand(&cobra.Command{Use: "whoami", Short: "Show the current session", RunE: c.whoami})
	return cmd
}

func (c *authClient) signup(cmd *cobra.Command, args []string) error {
	form := authform.NewSignup()
	form.Set(authform.FieldFirstName, c.promptIfEmpty(cmd, c.firstName, "First name: "))
	form.Set(authform.FieldLastName, c.promptIfEmpty(cmd, c.lastName, "Last name: "))
	form.Set(authform.FieldPhone, c.promptIfEmpty(cmd, c.phone, "Phone: "))
	form.Set(authform.FieldEmail, c.promptIfEmpty(cmd, c.email, "Email: "))
	pw, err := c.promptSecretIfEmpty(cmd, c.password, "Password: ")
	if err != nil {
		return err
	}
	form.Set(authform.FieldPassword, pw)
	confirm, err := c.promptSecretIfEmpty(cmd, c.confirmPassword, "Confirm password: ")
	if err != nil {
		return err
	}
	form.Set(authform.FieldConfirmPassword, confirm)

	if !form.ValidateAll() || !form.CanSubmit() {
		printFieldErrors(cmd, form)
		return fmt.Errorf("signup form is not valid")
	}

	client, _, _ := c.app.wire(cmd)
	if err := client.Signup(cmd.Context(), form.Params()); err != nil {
		form.ApplyServerError(err)
		printFieldErrors(cmd, form)
		if form.Banner != "" {
			fmt.Fprintln(cmd.OutOrStdout(), form.Banner)
		}
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), "Account created, sign in to continue")
	fmt.Fprintf(cmd.OutOrStdout(), "→ %s\n", nav.SignIn)
	return nil
}

func (c *authClient) login(cmd *cobra.Command, args []string) error {
	form := authform.NewSignin()
	form.Email = c.promptIfEmpty(cmd, c.email, "Email: ")
	pw, err := c.promptSecretIfEmpty(cmd, c.password, "Password: ")
	if err != nil {
		return err
	}
	form.Password = pw
	if !form.Validate() {
		for _, field := range []string{authform.FieldEmail, authform.FieldPassword} {
			if msg := form.Error(field); msg != "" {
				fmt.Fprintf(cmd.OutOrStdout(), "%s: %s\n", field, msg)
			}
		}
		return fmt.Errorf("signin form is not valid")
	}

	client, store, _ := c.app.wire(cmd)
	sess, err := client.Signin(cmd.Context(), form.Params())
	if err != nil {
		form.ApplyServerError(err)
		fmt.Fprintln(cmd.OutOrStdout(), form.Banner)
		return err
	}
	if err := store.Set(sess); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Signed in as %s %s\n", sess.FirstName, sess.LastName)
	fmt.Fprintf(cmd.OutOrStdout(), "→ %s\n", nav.Dashboard)
	return nil
}

func (c *authClient) logout(cmd *cobra.Command, args []string) error {
	client, store, _ := c.app.wire(cmd)
	// best effort; the local session is evicted regardless of the outcome
	if err := client.Signout(cmd.Context()); err != nil {
		fmt.Fprintln(cmd.ErrOrStderr(), "remote sign-out failed:", err)
	}
	store.Logout()
	fmt.Fprintln(cmd.OutOrStdout(), "Signed out")
	fmt.Fprintf(cmd.OutOrStdout(), "→ %s\n", nav.SignIn)
	return nil
}

func (c *authClient) whoami(cmd *cobra.Command, args []string) error {
	_, store, _ := c.app.wire(cmd)
	sess := store.Current()
	if sess == nil {
		fmt.Fprintln(cmd.OutOrStdout(), "Not signed in")
		return nil
	}
	fmt.Fprintf(cmd.OutOrStdout(), "%s %s <%s> (id %s)\n", sess.FirstName, sess.LastName, sess.Email, sess.ID)
	if exp, ok := store.TokenExpiry(); ok {
		fmt.Fprintf(cmd.OutOrStdout(), "credential expires %s\n", exp.Format(time.RFC3339))
	}
	return nil
}

func printFieldErrors(cmd *cobra.Command, form *authform.Signup) {
	for _, field := range []string{
		authform.FieldFirstName, authform.FieldLastName, authform.FieldPhone,
		authform.FieldEmail, authform.FieldPassword, authform.FieldConfirmPassword,
	} {
		if msg := form.Error(field); msg != "" {
			fmt.Fprintf(cmd.OutOrStdout(), "%s: %s\n", field, msg)
		}
	}
}

func (c *authClient) promptIfEmpty(cmd *cobra.Command, val, prompt string) string {
	if val != "" {
		return val
	}
	fmt.Fprint(cmd.OutOrStdout(), prompt)
	reader := bufio.NewReader(cmd.InOrStdin())
	line, _ := reader.ReadString('\n')
	return strings.TrimSpace(line)
}

func (c *authClient) promptSecretIfEmpty(cmd *cobra.Command, val, prompt string) (string, error) {
	if val != "" {
		return val, nil
	}
	fmt.Fprint(cmd.OutOrStdout(), prompt)
	pass, err := term.ReadPassword(int(os.Stdin.Fd()))
	fmt.Fprintln(cmd.OutOrStdout())
	if err != nil {
		return "", err
	}
	return string(pass), nil
}
