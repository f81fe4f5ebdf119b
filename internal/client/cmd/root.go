package cmd

import (
	"fmt"
	"io"
	"log"

	"github.com/spf13/cobra"

	"github.com/julzedz/pbs-frontend/internal/client/api"
	"github.com/julzedz/pbs-frontend/internal/client/config"
	"github.com/julzedz/pbs-frontend/internal/client/nav"
	"github.com/julzedz/pbs-frontend/internal/client/session"
	"github.com/julzedz/pbs-frontend/internal/client/toast"
)

// app holds the flag-bound settings and wires the client stack once flags
// have been parsed.
type app struct {
	serverURL string
	stateDir  string
	verbose   bool
}

func NewRootCmd(version, buildDate string) *cobra.Command {
	cfg := config.Load()
	a := &app{}
	root := &cobra.Command{
		Use:   "pbs",
		Short: "PropertyBusStop marketplace client",
	}
	root.PersistentFlags().StringVar(&a.serverURL, "server", cfg.APIBaseURL, "Backend base URL")
	root.PersistentFlags().StringVar(&a.stateDir, "state-dir", cfg.StateDir, "Directory for the durable session state")
	root.PersistentFlags().BoolVar(&a.verbose, "verbose", false, "Log HTTP-level events")

	root.AddCommand(newVersionCmd(version, buildDate))
	root.AddCommand(newAuthCmd(a))
	root.AddCommand(newPropertiesCmd(a))
	root.AddCommand(newProfileCmd(a))
	return root
}

// wire builds the session store, navigator, notifier, and API client bound
// to the command's output stream.
func (a *app) wire(cmd *cobra.Command) (*api.Client, *session.Store, toast.Notifier) {
	out := cmd.OutOrStdout()
	logger := log.New(io.Discard, "", 0)
	if a.verbose {
		logger = log.New(cmd.ErrOrStderr(), "pbs: ", 0)
	}
	store := session.NewStore(a.stateDir)
	navigator := nav.Func(func(route string) {
		fmt.Fprintf(out, "→ %s\n", route)
	})
	notifier := toast.Logger{L: log.New(out, "", 0)}
	client := api.New(a.serverURL, store, navigator, logger)
	return client, store, notifier
}

// requireSession returns the signed-in user's id or an actionable error.
func requireSession(store *session.Store) (string, error) {
	sess := store.Current()
	if sess == nil {
		return "", fmt.Errorf("not signed in, run: pbs auth login")
	}
	return sess.ID, nil
}
