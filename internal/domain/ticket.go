package domain

import "time"

// TicketPurchase records a one-off ticket bought for a route. Tickets carry
// no balance deduction and no duplicate guard; the record is a pure append.
type TicketPurchase struct {
	ID          string
	AccountID   string
	Origin      string
	Destination string
	PurchasedAt time.Time
}

// Validate rejects degenerate routes.
func (t *TicketPurchase) Validate() error {
	if t.Origin == t.Destination {
		return ErrInvalidRoute
	}
	return nil
}
