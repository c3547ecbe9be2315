// Package storefront holds the client-side state controllers behind the
// storefront UI: the cart and wishlist drawers, the marketplace catalog
// filters, and the checkout flow. Controllers keep a local copy of their
// resource and resynchronize by refetching the whole thing after every
// mutation; sibling views subscribe through OnUpdate callbacks.
package storefront

// State is the drawer lifecycle. A drawer opened without a signed-in
// session short-circuits to SignedOut and performs no network calls.
type State string

const (
	StateClosed    State = "closed"
	StateSignedOut State = "signed-out"
	StateLoading   State = "loading"
	StateEmpty     State = "empty"
	StatePopulated State = "populated"
)
