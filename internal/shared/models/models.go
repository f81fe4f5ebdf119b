package models

// Session is the authenticated user plus the bearer credential, as persisted
// under the "user" key of the durable store.
type Session struct {
	ID        string `json:"id"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Email     string `json:"email"`
	Telephone string `json:"telephone"`
	Token     string `json:"token"`
	CreatedAt string `json:"created_at,omitempty"`
}

// Purpose is the listing purpose enum used by the backend.
type Purpose string

const (
	PurposeSale Purpose = "sale"
	PurposeRent Purpose = "rent"
)

// PropertyType is the property kind enum used by the backend.
type PropertyType string

const (
	PropertyTypeHouse PropertyType = "house"
	PropertyTypeLand  PropertyType = "land"
)

// Property holds the attributes of a "property" JSON:API resource.
type Property struct {
	Title              string       `json:"title"`
	Purpose            Purpose      `json:"purpose"`
	PropertyType       PropertyType `json:"property_type"`
	Price              float64      `json:"price"`
	Bedrooms           int          `json:"bedrooms"`
	Bathrooms          int          `json:"bathrooms"`
	AreaSize           string       `json:"area_size,omitempty"`
	Description        string       `json:"description"`
	Street             string       `json:"street"`
	ImageURL           string       `json:"image_url"`
	InstagramVideoLink string       `json:"instagram_video_link,omitempty"`
	ContactName        string       `json:"contact_name"`
	ContactPhone       string       `json:"contact_phone"`
	UserID             string       `json:"user_id"`
}

// State and Locality are the location resources side-loaded by the backend.
type State struct {
	Name string `json:"name"`
}

type Locality struct {
	Name    string `json:"name"`
	StateID string `json:"state_id"`
}

// Feature is a selectable property feature (e.g. "Borehole").
type Feature struct {
	Name string `json:"name"`
}

// User holds the attributes of a side-loaded "user" resource.
type User struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Email     string `json:"email"`
	Telephone string `json:"telephone"`
}
