package domain

import "time"

// Entitlement records a purchased pass. At most one entitlement may exist
// per (account, offering) pair; a repeat purchase of the same offering is
// rejected. Never mutated or deleted after creation.
type Entitlement struct {
	ID          string
	AccountID   string
	OfferingID  string
	PurchasedAt time.Time
}
