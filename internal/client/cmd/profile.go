package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/julzedz/pbs-frontend/internal/client/api"
)

type profileClient struct {
	app *app

	firstName string
	lastName  string
	phone     string
	email     string
}

func newProfileCmd(a *app) *cobra.Command {
	c := &profileClient{app: a}
	cmd := &cobra.Command{Use: "profile", Short: "Manage your profile"}

	update := &cobra.Command{Use: "update", Short: "Edit profile fields", RunE: c.update}
	update.Flags().StringVar(&c.firstName, "first-name", "", "First name")
	update.Flags().StringVar(&c.lastName, "last-name", "", "Last name")
	update.Flags().StringVar(&c.phone, "phone", "", "Phone number")
	update.Flags().StringVar(&c.email, "email", "", "Email address")
	cmd.AddCommand(update)
	return cmd
}

func (c *profileClient) update(cmd *cobra.Command, args []string) error {
	client, store, notifier := c.app.wire(cmd)
	sess := store.Current()
	if sess == nil {
		return fmt.Errorf("not signed in, run: pbs auth login")
	}

	// unset flags keep the current values
	params := api.ProfileParams{
		FirstName: sess.FirstName,
		LastName:  sess.LastName,
		Phone:     sess.Telephone,
		Email:     sess.Email,
	}
	if c.firstName != "" {
		params.FirstName = c.firstName
	}
	if c.lastName != "" {
		params.LastName = c.lastName
	}
	if c.phone != "" {
		params.Phone = c.phone
	}
	if c.email != "" {
		params.Email = c.email
	}

	if err := client.UpdateProfile(cmd.Context(), params); err != nil {
		notifier.Error("Failed to update profile.")
		return err
	}

	sess.FirstName = params.FirstName
	sess.LastName = params.LastName
	sess.Telephone = params.Phone
	sess.Email = params.Email
	if err := store.Set(sess); err != nil {
		return err
	}
	notifier.Success("Profile updated.")
	return nil
}
