package handler

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/farebox/farebox/internal/adapter/http/dto"
	"github.com/farebox/farebox/internal/domain"
	"github.com/farebox/farebox/internal/usecase"
)

// CatalogService defines the behavior needed by CatalogHandler.
type CatalogService interface {
	AddOffering(ctx context.Context, input usecase.AddOfferingInput) (*domain.Offering, error)
	ListOfferings(ctx context.Context) ([]*domain.Offering, error)
	GetOffering(ctx context.Context, id string) (*domain.Offering, error)
}

// CatalogHandler handles offering catalog HTTP requests.
type CatalogHandler struct {
	catalogUC CatalogService
}

// NewCatalogHandler creates a new CatalogHandler.
func NewCatalogHandler(catalogUC CatalogService) *CatalogHandler {
	return &CatalogHandler{catalogUC: catalogUC}
}

// Add creates a new offering. Adding an existing route at the same price
// returns the existing offering.
func (h *CatalogHandler) Add(w http.ResponseWriter, r *http.Request) {
	var req dto.AddOfferingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	offering, err := h.catalogUC.AddOffering(r.Context(), req.ToUseCaseInput())
	if err != nil {
		status := mapDomainError(err)
		writeError(w, status, "failed to add offering", err.Error())
		return
	}

	writeJSON(w, http.StatusCreated, dto.OfferingFromDomain(offering))
}

// List lists all offerings.
func (h *CatalogHandler) List(w http.ResponseWriter, r *http.Request) {
	offerings, err := h.catalogUC.ListOfferings(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to list offerings", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.ListOfferingsResponse{
		Offerings: dto.OfferingsFromDomain(offerings),
		Total:     int64(len(offerings)),
	})
}

// Get retrieves an offering by ID.
func (h *CatalogHandler) Get(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "missing offering ID", "")
		return
	}

	offering, err := h.catalogUC.GetOffering(r.Context(), id)
	if err != nil {
		status := mapDomainError(err)
		writeError(w, status, "failed to get offering", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.OfferingFromDomain(offering))
}
