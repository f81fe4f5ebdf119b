// Package nav names the client route surface and the navigation sink the
// HTTP layer uses to redirect on credential expiry.
package nav

// Client routes. The HTTP layer and the auth flows reference these exact
// paths; everything else belongs to the view layer.
const (
	Home         = "/"
	SignUp       = "/signup"
	SignIn       = "/signin"
	Dashboard    = "/dashboard"
	Buy          = "/buy"
	Rent         = "/rent"
	Featured     = "/featured"
	Agents       = "/agents"
	MyListings   = "/my-listings"
	PostProperty = "/post-property"
	EditProfile  = "/edit-profile"
	About        = "/about"
	Contact      = "/contact"
)

// Navigator is where imperative redirects land. The view layer supplies the
// real one; NopNavigator is for contexts with nowhere to go.
type Navigator interface {
	To(route string)
}

// Func adapts a function to the Navigator interface.
type Func func(route string)

func (f Func) To(route string) { f(route) }

// Nop discards navigations.
var Nop Navigator = Func(func(string) {})
