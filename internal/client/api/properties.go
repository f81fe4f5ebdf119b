package api

import (
	"context"
	"io"
	"net/http"
	"net/url"
	"strconv"

	"github.com/julzedz/pbs-frontend/internal/client/jsonapi"
	"github.com/julzedz/pbs-frontend/internal/client/naira"
)

// PageSize is the backend's fixed page size for property lists.
const PageSize = 6

// PropertyFilters are the optional query parameters of the property list
// endpoint. Zero values are omitted. Price bounds accept user-entered
// strings like "₦1,000,000" and are normalised to plain integers.
type PropertyFilters struct {
	Purpose      string
	Search       string
	PropertyType string
	Bedrooms     string
	MinPrice     string
	MaxPrice     string
	StateID      string
	LocalityID   string
	UserID       string
}

func (f PropertyFilters) query(page int) url.Values {
	q := url.Values{}
	set := func(key, val string) {
		if val != "" {
			q.Set(key, val)
		}
	}
	set("purpose", f.Purpose)
	set("search", f.Search)
	set("property_type", f.PropertyType)
	set("bedrooms", f.Bedrooms)
	if n, err := naira.Parse(f.MinPrice); err == nil {
		q.Set("min_price", strconv.FormatInt(n, 10))
	}
	if n, err := naira.Parse(f.MaxPrice); err == nil {
		q.Set("max_price", strconv.FormatInt(n, 10))
	}
	set("state_id", f.StateID)
	set("locality_id", f.LocalityID)
	set("user_id", f.UserID)
	if page > 0 {
		q.Set("page", strconv.Itoa(page))
	}
	return q
}

// ListProperties fetches one page of the filtered property list.
func (c *Client) ListProperties(ctx context.Context, f PropertyFilters, page int) (*jsonapi.ListDocument, error) {
	var doc jsonapi.ListDocument
	path := "/api/v1/properties"
	if q := f.query(page).Encode(); q != "" {
		path += "?" + q
	}
	if err := c.getJSON(ctx, path, &doc); err != nil {
		return nil, err
	}
	return &doc, nil
}

// GetProperty fetches a single property with its side-loaded relationships.
func (c *Client) GetProperty(ctx context.Context, id string) (*jsonapi.SingleDocument, error) {
	var doc jsonapi.SingleDocument
	if err := c.getJSON(ctx, "/api/v1/properties/"+url.PathEscape(id), &doc); err != nil {
		return nil, err
	}
	return &doc, nil
}

// CreateProperty posts the multipart payload produced by the wizard.
// contentType carries the multipart boundary.
func (c *Client) CreateProperty(ctx context.Context, contentType string, body io.Reader) (*jsonapi.SingleDocument, error) {
	resp, err := c.send(ctx, http.MethodPost, "/api/v1/properties", contentType, body)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	var doc jsonapi.SingleDocument
	if err := decodeBody(resp.Body, &doc); err != nil {
		return nil, err
	}
	return &doc, nil
}

// DeleteProperty removes a listing. The ".json" suffix mirrors the backend
// route as-is; do not normalise it.
func (c *Client) DeleteProperty(ctx context.Context, id string) error {
	resp, err := c.send(ctx, http.MethodDelete, "/api/v1/properties/"+url.PathEscape(id)+".json", "", nil)
	if err != nil {
		return err
	}
	resp.Body.Close()
	return nil
}

// MyPropertiesCount returns the number of listings owned by userID.
func (c *Client) MyPropertiesCount(ctx context.Context, userID string) (int, error) {
	var body struct {
		Count int `json:"count"`
	}
	if err := c.getJSON(ctx, "/api/v1/properties/count?user_id="+url.QueryEscape(userID), &body); err != nil {
		return 0, err
	}
	return body.Count, nil
}

// FeaturedProperties fetches the curated featured list.
func (c *Client) FeaturedProperties(ctx context.Context) (*jsonapi.ListDocument, error) {
	var doc jsonapi.ListDocument
	if err := c.getJSON(ctx, "/api/v1/featured_properties", &doc); err != nil {
		return nil, err
	}
	return &doc, nil
}

// States lists all states.
func (c *Client) States(ctx context.Context) (*jsonapi.ListDocument, error) {
	var doc jsonapi.ListDocument
	if err := c.getJSON(ctx, "/api/v1/states", &doc); err != nil {
		return nil, err
	}
	return &doc, nil
}

// Localities lists the localities of one state.
func (c *Client) Localities(ctx context.Context, stateID string) (*jsonapi.ListDocument, error) {
	var doc jsonapi.ListDocument
	if err := c.getJSON(ctx, "/api/v1/localities?state_id="+url.QueryEscape(stateID), &doc); err != nil {
		return nil, err
	}
	return &doc, nil
}

// Features lists all selectable property features.
func (c *Client) Features(ctx context.Context) (*jsonapi.ListDocument, error) {
	var doc jsonapi.ListDocument
	if err := c.getJSON(ctx, "/api/v1/features", &doc); err != nil {
		return nil, err
	}
	return &doc, nil
}
