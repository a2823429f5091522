package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/farebox/farebox/internal/domain"
	"github.com/farebox/farebox/internal/usecase"
)

// AccountResponse represents an account in API responses.
type AccountResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Balance   int64     `json:"balance"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// AccountFromDomain converts a domain account to a response.
func AccountFromDomain(a *domain.Account) *AccountResponse {
	return &AccountResponse{
		ID:        a.ID,
		Name:      a.Name,
		Email:     a.Email,
		Balance:   a.Balance,
		CreatedAt: a.CreatedAt,
		UpdatedAt: a.UpdatedAt,
	}
}

// OfferingResponse represents a catalog offering in API responses.
type OfferingResponse struct {
	ID           string    `json:"id"`
	Origin       string    `json:"origin"`
	Destination  string    `json:"destination"`
	Price        int64     `json:"price"`
	Kind         string    `json:"kind"`
	ValidityDays int       `json:"validity_days"`
	CreatedAt    time.Time `json:"created_at"`
}

// OfferingFromDomain converts a domain offering to a response.
func OfferingFromDomain(o *domain.Offering) *OfferingResponse {
	return &OfferingResponse{
		ID:           o.ID,
		Origin:       o.Origin,
		Destination:  o.Destination,
		Price:        o.Price,
		Kind:         string(o.Kind),
		ValidityDays: o.ValidityDays,
		CreatedAt:    o.CreatedAt,
	}
}

// OfferingsFromDomain converts domain offerings to responses.
func OfferingsFromDomain(offerings []*domain.Offering) []*OfferingResponse {
	result := make([]*OfferingResponse, len(offerings))
	for i, o := range offerings {
		result[i] = OfferingFromDomain(o)
	}
	return result
}

// ListOfferingsResponse wraps a catalog listing.
type ListOfferingsResponse struct {
	Offerings []*OfferingResponse `json:"offerings"`
	Total     int64               `json:"total"`
}

// EntitlementResponse represents a held pass in API responses.
type EntitlementResponse struct {
	ID          string    `json:"id"`
	AccountID   string    `json:"account_id"`
	OfferingID  string    `json:"offering_id"`
	PurchasedAt time.Time `json:"purchased_at"`
}

// EntitlementFromDomain converts a domain entitlement to a response.
func EntitlementFromDomain(e *domain.Entitlement) *EntitlementResponse {
	return &EntitlementResponse{
		ID:          e.ID,
		AccountID:   e.AccountID,
		OfferingID:  e.OfferingID,
		PurchasedAt: e.PurchasedAt,
	}
}

// EntitlementsFromDomain converts domain entitlements to responses.
func EntitlementsFromDomain(entitlements []*domain.Entitlement) []*EntitlementResponse {
	result := make([]*EntitlementResponse, len(entitlements))
	for i, e := range entitlements {
		result[i] = EntitlementFromDomain(e)
	}
	return result
}

// CoordinateResponse represents a geographic point in API responses.
type CoordinateResponse struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// TripResponse represents a settled trip charge in API responses.
type TripResponse struct {
	ID        string             `json:"id"`
	AccountID string             `json:"account_id"`
	Start     CoordinateResponse `json:"start"`
	End       CoordinateResponse `json:"end"`
	Distance  decimal.Decimal    `json:"distance"`
	Cost      int64              `json:"cost"`
	CreatedAt time.Time          `json:"created_at"`
}

// TripFromDomain converts a domain trip charge to a response.
func TripFromDomain(t *domain.TripCharge) *TripResponse {
	return &TripResponse{
		ID:        t.ID,
		AccountID: t.AccountID,
		Start:     CoordinateResponse{Lat: t.Start.Lat, Lng: t.Start.Lng},
		End:       CoordinateResponse{Lat: t.End.Lat, Lng: t.End.Lng},
		Distance:  t.Distance,
		Cost:      t.Cost,
		CreatedAt: t.CreatedAt,
	}
}

// TripsFromDomain converts domain trip charges to responses.
func TripsFromDomain(trips []*domain.TripCharge) []*TripResponse {
	result := make([]*TripResponse, len(trips))
	for i, t := range trips {
		result[i] = TripFromDomain(t)
	}
	return result
}

// TicketResponse represents a one-off ticket in API responses.
type TicketResponse struct {
	ID          string    `json:"id"`
	AccountID   string    `json:"account_id"`
	Origin      string    `json:"origin"`
	Destination string    `json:"destination"`
	QRCodeURL   string    `json:"qr_code_url"`
	PurchasedAt time.Time `json:"purchased_at"`
}

// TicketFromDomain converts a domain ticket purchase to a response. The QR
// code URL is derived from the ticket ID under the given base path.
func TicketFromDomain(t *domain.TicketPurchase, qrBaseURL string) *TicketResponse {
	return &TicketResponse{
		ID:          t.ID,
		AccountID:   t.AccountID,
		Origin:      t.Origin,
		Destination: t.Destination,
		QRCodeURL:   qrBaseURL + "/" + t.ID + ".png",
		PurchasedAt: t.PurchasedAt,
	}
}

// TicketsFromDomain converts domain ticket purchases to responses.
func TicketsFromDomain(tickets []*domain.TicketPurchase, qrBaseURL string) []*TicketResponse {
	result := make([]*TicketResponse, len(tickets))
	for i, t := range tickets {
		result[i] = TicketFromDomain(t, qrBaseURL)
	}
	return result
}

// BalanceResponse reports the balance after a settlement.
type BalanceResponse struct {
	AccountID string `json:"account_id"`
	Balance   int64  `json:"balance"`
}

// DashboardResponse is the full account view.
type DashboardResponse struct {
	Account      *AccountResponse       `json:"account"`
	Entitlements []*EntitlementResponse `json:"entitlements"`
	Trips        []*TripResponse        `json:"trips"`
	Tickets      []*TicketResponse      `json:"tickets"`
}

// DashboardFromView converts an account view to a response.
func DashboardFromView(v *usecase.AccountView, qrBaseURL string) *DashboardResponse {
	return &DashboardResponse{
		Account:      AccountFromDomain(v.Account),
		Entitlements: EntitlementsFromDomain(v.Entitlements),
		Trips:        TripsFromDomain(v.Trips),
		Tickets:      TicketsFromDomain(v.Tickets, qrBaseURL),
	}
}

// ErrorResponse represents an error in API responses.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}
