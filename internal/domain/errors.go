package domain

import "errors"

var (
	// Account errors
	ErrAccountNotFound = errors.New("account not found")
	ErrDuplicateEmail  = errors.New("email already registered")

	// Settlement errors
	ErrInsufficientFunds = errors.New("insufficient wallet balance")
	ErrContention        = errors.New("account contention: retries exhausted")

	// Catalog errors
	ErrOfferingNotFound = errors.New("offering not found")
	ErrNotPassOffering  = errors.New("offering is not a pass")

	// Purchase errors
	ErrDuplicateEntitlement = errors.New("pass already purchased for this offering")
	ErrInvalidRoute         = errors.New("origin and destination must differ")
	ErrInvalidDistance      = errors.New("distance must be non-negative")
)
