package dto

import (
	"github.com/shopspring/decimal"

	"github.com/farebox/farebox/internal/domain"
	"github.com/farebox/farebox/internal/usecase"
)

// RegisterAccountRequest represents a request to register a rider account.
type RegisterAccountRequest struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

// ToUseCaseInput converts to use case input.
func (r *RegisterAccountRequest) ToUseCaseInput() usecase.RegisterInput {
	return usecase.RegisterInput{
		Name:  r.Name,
		Email: r.Email,
	}
}

// SignInRequest represents a sign-in request.
type SignInRequest struct {
	Email string `json:"email"`
}

// AddOfferingRequest represents a request to add a catalog offering.
type AddOfferingRequest struct {
	Origin       string `json:"origin"`
	Destination  string `json:"destination"`
	Price        int64  `json:"price"`
	Kind         string `json:"kind,omitempty"`
	ValidityDays int    `json:"validity_days,omitempty"`
}

// ToUseCaseInput converts to use case input.
func (r *AddOfferingRequest) ToUseCaseInput() usecase.AddOfferingInput {
	return usecase.AddOfferingInput{
		Origin:       r.Origin,
		Destination:  r.Destination,
		Price:        r.Price,
		Kind:         domain.OfferingKind(r.Kind),
		ValidityDays: r.ValidityDays,
	}
}

// PurchaseEntitlementRequest represents a pass purchase request.
type PurchaseEntitlementRequest struct {
	OfferingID string `json:"offering_id"`
}

// CoordinateRequest represents a geographic point in a request body.
type CoordinateRequest struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// ToDomain converts to a domain coordinate.
func (c CoordinateRequest) ToDomain() domain.Coordinate {
	return domain.Coordinate{Lat: c.Lat, Lng: c.Lng}
}

// ChargeTravelRequest represents a distance charge request.
type ChargeTravelRequest struct {
	Start    CoordinateRequest `json:"start"`
	End      CoordinateRequest `json:"end"`
	Distance decimal.Decimal   `json:"distance"`
}

// PurchaseTicketRequest represents a one-off ticket purchase request.
type PurchaseTicketRequest struct {
	Origin      string `json:"origin"`
	Destination string `json:"destination"`
}
