package cmd

import (
	"bufio"
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/julzedz/pbs-frontend/internal/client/api"
	"github.com/julzedz/pbs-frontend/internal/client/jsonapi"
	"github.com/julzedz/pbs-frontend/internal/client/naira"
	"github.com/julzedz/pbs-frontend/internal/client/nav"
	"github.com/julzedz/pbs-frontend/internal/client/pager"
	"github.com/julzedz/pbs-frontend/internal/client/session"
	"github.com/julzedz/pbs-frontend/internal/client/wizard"
	"github.com/julzedz/pbs-frontend/internal/shared/models"
)

type propertiesClient struct {
	app *app

	filters api.PropertyFilters
	pages   int
}

func newPropertiesCmd(a *app) *cobra.Command {
	c := &propertiesClient{app: a}
	cmd := &cobra.Command{Use: "properties", Short: "Browse and manage listings"}

	list := &cobra.Command{Use: "list", Short: "List properties page by page", RunE: c.list}
	list.Flags().StringVar(&c.filters.Purpose, "purpose", "", "sale or rent")
	list.Flags().StringVar(&c.filters.Search, "search", "", "Free-text search")
	list.Flags().StringVar(&c.filters.PropertyType, "type", "", "house or land")
	list.Flags().StringVar(&c.filters.Bedrooms, "bedrooms", "", "Bedroom count")
	list.Flags().StringVar(&c.filters.MinPrice, "min-price", "", "Lower price bound, e.g. ₦1,000,000")
	list.Flags().StringVar(&c.filters.MaxPrice, "max-price", "", "Upper price bound")
	list.Flags().StringVar(&c.filters.StateID, "state", "", "State id")
	list.Flags().StringVar(&c.filters.LocalityID, "locality", "", "Locality id")
	list.Flags().IntVar(&c.pages, "pages", 1, "How many pages to fetch")
	cmd.AddCommand(list)

	mine := &cobra.Command{Use: "mine", Short: "List your own listings", RunE: c.mine}
	mine.Flags().IntVar(&c.pages, "pages", 1, "How many pages to fetch")
	cmd.AddCommand(mine)

	cmd.AddCommand(&cobra.Command{Use: "get", Short: "Show one property with its relations", Args: cobra.ExactArgs(1), RunE: c.get})
	cmd.AddCommand(&cobra.Command{Use: "post", Short: "Post a new property (three-step form)", RunE: c.post})
	cmd.AddCommand(&cobra.Command{Use: "delete", Short: "Delete a listing by id", Args: cobra.ExactArgs(1), RunE: c.del})
	cmd.AddCommand(&cobra.Command{Use: "count", Short: "Show how many listings you own", RunE: c.count})
	cmd.AddCommand(&cobra.Command{Use: "featured", Short: "Show featured properties", RunE: c.featured})
	return cmd
}

func (c *propertiesClient) list(cmd *cobra.Command, args []string) error {
	client, store, _ := c.app.wire(cmd)
	return c.paginate(cmd, client, store, c.filters)
}

func (c *propertiesClient) mine(cmd *cobra.Command, args []string) error {
	client, store, _ := c.app.wire(cmd)
	userID, err := requireSession(store)
	if err != nil {
		return err
	}
	filters := api.PropertyFilters{UserID: userID}
	return c.paginate(cmd, client, store, filters)
}

func (c *propertiesClient) paginate(cmd *cobra.Command, client *api.Client, store *session.Store, filters api.PropertyFilters) error {
	fetch := func(ctx context.Context, page int) (*jsonapi.ListDocument, error) {
		return client.ListProperties(ctx, filters, page)
	}
	p := pager.New(fetch, api.PageSize, store.IsPropertyDeleted)
	if err := p.Load(cmd.Context()); err != nil {
		return err
	}
	for fetched := 1; fetched < c.pages && p.HasMore(); fetched++ {
		if err := p.More(cmd.Context()); err != nil {
			return err
		}
	}

	if p.Empty() {
		fmt.Fprintln(cmd.OutOrStdout(), "No properties found")
		return nil
	}
	for _, res := range p.Visible() {
		printPropertyLine(cmd, res, p.Included())
	}
	if p.HasMore() {
		fmt.Fprintln(cmd.OutOrStdout(), "… more available (--pages)")
	}
	return nil
}

func (c *propertiesClient) get(cmd *cobra.Command, args []string) error {
	client, _, _ := c.app.wire(cmd)
	doc, err := client.GetProperty(cmd.Context(), args[0])
	if err != nil {
		return err
	}

	var attrs models.Property
	if err := doc.Data.DecodeAttributes(&attrs); err != nil {
		return err
	}
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "%s  %s\n", attrs.Title, naira.Format(int64(attrs.Price)))
	fmt.Fprintf(out, "%s for %s, %d bed / %d bath\n", attrs.PropertyType, attrs.Purpose, attrs.Bedrooms, attrs.Bathrooms)
	fmt.Fprintf(out, "%s\n", attrs.Street)
	if attrs.Description != "" {
		fmt.Fprintln(out, attrs.Description)
	}

	if id, ok := doc.Data.Relationships["locality"].One(); ok {
		if res := jsonapi.FindIncluded(doc.Included, id.Type, id.ID); res != nil {
			var loc models.Locality
			_ = res.DecodeAttributes(&loc)
			fmt.Fprintf(out, "Locality: %s\n", loc.Name)
		}
	}
	if id, ok := doc.Data.Relationships["user"].One(); ok {
		if res := jsonapi.FindIncluded(doc.Included, id.Type, id.ID); res != nil {
			var owner models.User
			_ = res.DecodeAttributes(&owner)
			fmt.Fprintf(out, "Listed by: %s %s (%s)\n", owner.FirstName, owner.LastName, owner.Telephone)
		}
	}
	if rels := doc.Data.Relationships["features"].Many(); len(rels) > 0 {
		ids := make([]string, len(rels))
		for i, r := range rels {
			ids[i] = r.ID
		}
		var names []string
		for _, res := range jsonapi.FindAllIncluded(doc.Included, "feature", ids) {
			var feat models.Feature
			_ = res.DecodeAttributes(&feat)
			names = append(names, feat.Name)
		}
		fmt.Fprintf(out, "Features: %s\n", strings.Join(names, ", "))
	}
	return nil
}

func (c *propertiesClient) post(cmd *cobra.Command, args []string) error {
	client, store, notifier := c.app.wire(cmd)
	if _, err := requireSession(store); err != nil {
		return err
	}

	w := wizard.New(client, notifier, nav.Func(navPrinter(cmd)))
	if err := w.Init(cmd.Context()); err != nil {
		return err
	}
	return runWizard(cmd, w)
}

func (c *propertiesClient) del(cmd *cobra.Command, args []string) error {
	client, store, notifier := c.app.wire(cmd)
	if _, err := requireSession(store); err != nil {
		return err
	}
	if err := client.DeleteProperty(cmd.Context(), args[0]); err != nil {
		notifier.Error("Failed to delete property.")
		return err
	}
	// hide it from lists already fetched this session without a refetch
	store.MarkPropertyDeleted(args[0])
	notifier.Success("Property deleted.")
	return nil
}

func (c *propertiesClient) count(cmd *cobra.Command, args []string) error {
	client, store, _ := c.app.wire(cmd)
	userID, err := requireSession(store)
	if err != nil {
		return err
	}
	n, err := client.MyPropertiesCount(cmd.Context(), userID)
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "%d listing(s)\n", n)
	return nil
}

func (c *propertiesClient) featured(cmd *cobra.Command, args []string) error {
	client, _, _ := c.app.wire(cmd)
	doc, err := client.FeaturedProperties(cmd.Context())
	if err != nil {
		return err
	}
	if len(doc.Data) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "No featured properties")
		return nil
	}
	for _, res := range doc.Data {
		printPropertyLine(cmd, res, doc.Included)
	}
	return nil
}

func printPropertyLine(cmd *cobra.Command, res jsonapi.Resource, included []jsonapi.Resource) {
	var attrs models.Property
	if err := res.DecodeAttributes(&attrs); err != nil {
		fmt.Fprintf(cmd.OutOrStdout(), "%s  (unreadable)\n", res.ID)
		return
	}
	line := fmt.Sprintf("%s  %s  %s for %s", res.ID, naira.Format(int64(attrs.Price)), attrs.Title, attrs.Purpose)
	if id, ok := res.Relationships["locality"].One(); ok {
		if inc := jsonapi.FindIncluded(included, id.Type, id.ID); inc != nil {
			var loc models.Locality
			_ = inc.DecodeAttributes(&loc)
			line += "  @" + loc.Name
		}
	}
	fmt.Fprintln(cmd.OutOrStdout(), line)
}

func navPrinter(cmd *cobra.Command) func(string) {
	return func(route string) { fmt.Fprintf(cmd.OutOrStdout(), "→ %s\n", route) }
}

// runWizard walks the three steps interactively, re-prompting a step while
// it fails validation.
func runWizard(cmd *cobra.Command, w *wizard.Wizard) error {
	reader := bufio.NewReader(cmd.InOrStdin())
	out := cmd.OutOrStdout()
	ask := func(label string) string {
		fmt.Fprint(out, label)
		line, _ := reader.ReadString('\n')
		return strings.TrimSpace(line)
	}

	for w.Step() == wizard.StepAddress {
		fmt.Fprintln(out, "-- Address --")
		w.Form.Title = ask("Title: ")
		w.Form.Purpose = ask("Purpose (sale/rent): ")
		printOptions(cmd, "States", w.States())
		if err := w.SetState(cmd.Context(), ask("State id: ")); err != nil {
			return err
		}
		printOptions(cmd, "Localities", w.Localities())
		w.Form.LocalityID = ask("Locality id: ")
		w.Form.Street = ask("Street: ")
		w.Form.PropertyType = ask("Type (house/land): ")
		if !w.Next() {
			printWizardErrors(cmd, w)
		}
	}

	for w.Step() == wizard.StepInfo {
		fmt.Fprintln(out, "-- Info --")
		w.Form.Price = ask("Price: ")
		w.Form.Bedrooms = ask("Bedrooms: ")
		w.Form.Bathrooms = ask("Bathrooms: ")
		w.Form.AreaSize = ask("Area size (optional): ")
		w.Form.Description = ask("Description: ")
		w.Form.InstagramVideoLink = ask("Instagram video link (optional): ")
		printOptions(cmd, "Features", w.VisibleFeatures())
		for _, id := range strings.Fields(ask("Feature ids (space-separated, optional): ")) {
			w.ToggleFeature(id)
		}
		if !w.Next() {
			printWizardErrors(cmd, w)
		}
	}

	for {
		fmt.Fprintln(out, "-- Submit --")
		w.Form.PicturePath = ask("Picture file: ")
		if err := w.Submit(cmd.Context()); err != nil {
			if err == wizard.ErrInvalid {
				printWizardErrors(cmd, w)
				continue
			}
			return err
		}
		return nil
	}
}

func printOptions(cmd *cobra.Command, label string, options []jsonapi.Resource) {
	if len(options) == 0 {
		return
	}
	fmt.Fprintf(cmd.OutOrStdout(), "%s:\n", label)
	for _, res := range options {
		var named struct {
			Name string `json:"name"`
		}
		_ = res.DecodeAttributes(&named)
		fmt.Fprintf(cmd.OutOrStdout(), "  %s  %s\n", res.ID, named.Name)
	}
}

func printWizardErrors(cmd *cobra.Command, w *wizard.Wizard) {
	for field, msg := range w.Errors() {
		fmt.Fprintf(cmd.OutOrStdout(), "%s: %s\n", field, msg)
	}
}
