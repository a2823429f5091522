package domain

import "time"

// OfferingKind distinguishes reusable passes from one-off ticket routes.
type OfferingKind string

const (
	// OfferingPass is a reusable pass with a validity window.
	OfferingPass OfferingKind = "pass"

	// OfferingTicket is a one-off ticket route.
	OfferingTicket OfferingKind = "ticket"
)

// DefaultValidityDays is the validity window applied to passes seeded
// without an explicit one.
const DefaultValidityDays = 30

// Offering is a fixed-price catalog entry for a route. Immutable once
// seeded; the ledger only reads it to price operations.
type Offering struct {
	ID           string
	Origin       string
	Destination  string
	Price        int64
	Kind         OfferingKind
	ValidityDays int
	CreatedAt    time.Time
}

// SameRoute reports whether two offerings describe the same priced route.
// Seeding uses this to stay idempotent across restarts.
func (o *Offering) SameRoute(other *Offering) bool {
	return o.Origin == other.Origin &&
		o.Destination == other.Destination &&
		o.Price == other.Price
}
