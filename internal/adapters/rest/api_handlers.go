package rest

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"listing-site/internal/contextkeys"
	"listing-site/internal/core/domain"
	"listing-site/internal/core/port"
	"listing-site/internal/core/port/usecases_port"
)

const maxConsultingBody = 64 << 10

// APIHandlers - JSON API каталога и заявок
type APIHandlers struct {
	browseUC     usecases_port.BrowseCatalogUseCasePort
	refreshUC    usecases_port.RefreshCatalogUseCasePort
	loadUC       usecases_port.LoadCatalogUseCasePort
	consultingUC usecases_port.SubmitConsultingUseCasePort
}

func NewAPIHandlers(
	browseUC usecases_port.BrowseCatalogUseCasePort,
	refreshUC usecases_port.RefreshCatalogUseCasePort,
	loadUC usecases_port.LoadCatalogUseCasePort,
	consultingUC usecases_port.SubmitConsultingUseCasePort,
) *APIHandlers {
	return &APIHandlers{
		browseUC:     browseUC,
		refreshUC:    refreshUC,
		loadUC:       loadUC,
		consultingUC: consultingUC,
	}
}

// HandleListings - GET /api/v1/listings
func (h *APIHandlers) HandleListings(w http.ResponseWriter, r *http.Request) {
	logger := contextkeys.LoggerFromContext(r.Context()).WithFields(port.Fields{"handler": "HandleListings"})

	view, err := h.browseUC.Execute(r.Context(), parseCatalogQuery(r.URL.Query()))
	if err != nil {
		if errors.Is(err, context.Canceled) {
			return
		}
		logger.Error("Failed to build catalog view", err, nil)
		WriteJSONError(w, http.StatusServiceUnavailable, domain.UserMessage(err))
		return
	}

	resp := ListingsResponseDTO{
		Items:      view.Cards,
		Pagination: view.Page,
		Sort:       view.Sort,
	}
	if view.Empty {
		resp.Message = domain.MessageNoResults
	}
	RespondWithJSON(w, http.StatusOK, resp)
}

// HandleFilterOptions - GET /api/v1/filters/options
func (h *APIHandlers) HandleFilterOptions(w http.ResponseWriter, r *http.Request) {
	logger := contextkeys.LoggerFromContext(r.Context()).WithFields(port.Fields{"handler": "HandleFilterOptions"})

	opts, err := h.browseUC.FilterOptions(r.Context())
	if err != nil {
		if errors.Is(err, context.Canceled) {
			return
		}
		logger.Error("Failed to get filter options", err, nil)
		WriteJSONError(w, http.StatusServiceUnavailable, domain.UserMessage(err))
		return
	}
	RespondWithJSON(w, http.StatusOK, opts)
}

// HandleStatus - GET /api/v1/catalog/status
func (h *APIHandlers) HandleStatus(w http.ResponseWriter, r *http.Request) {
	RespondWithJSON(w, http.StatusOK, h.loadUC.Status())
}

// HandleRefresh - POST /api/v1/catalog/refresh
func (h *APIHandlers) HandleRefresh(w http.ResponseWriter, r *http.Request) {
	logger := contextkeys.LoggerFromContext(r.Context()).WithFields(port.Fields{"handler": "HandleRefresh"})

	snap, err := h.refreshUC.Execute(r.Context())
	if err != nil {
		if errors.Is(err, context.Canceled) {
			return
		}
		logger.Error("Forced refresh failed", err, nil)
		WriteJSONError(w, http.StatusServiceUnavailable, domain.UserMessage(err))
		return
	}

	RespondWithJSON(w, http.StatusOK, RefreshResponseDTO{
		Message:      domain.MessageRefreshed,
		ListingCount: len(snap.Listings),
		Quarantined:  snap.Quarantined,
		FetchedAt:    snap.FetchedAt,
		Source:       string(snap.Source),
	})
}

// HandleConsulting - POST /api/v1/consulting
func (h *APIHandlers) HandleConsulting(w http.ResponseWriter, r *http.Request) {
	logger := contextkeys.LoggerFromContext(r.Context()).WithFields(port.Fields{"handler": "HandleConsulting"})

	var reqDTO ConsultingRequestDTO
	if err := json.NewDecoder(io.LimitReader(r.Body, maxConsultingBody)).Decode(&reqDTO); err != nil {
		if err == io.EOF {
			WriteJSONError(w, http.StatusBadRequest, "Request body is empty")
			return
		}
		WriteJSONError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if len(reqDTO.Fields) == 0 {
		WriteJSONError(w, http.StatusBadRequest, "Field 'fields' is required")
		return
	}

	fields := make(map[string][]string, len(reqDTO.Fields))
	for k, v := range reqDTO.Fields {
		fields[k] = []string{v}
	}

	receipt, err := h.consultingUC.Execute(r.Context(), fields)
	if err != nil {
		if errors.Is(err, context.Canceled) {
			return
		}
		logger.Error("Consulting submission failed", err, nil)
		WriteJSONError(w, http.StatusInternalServerError, "Failed to accept request")
		return
	}

	RespondWithJSON(w, http.StatusAccepted, ConsultingResponseDTO{
		ID:          receipt.ID,
		SubmittedAt: receipt.SubmittedAt,
		Message:     receipt.Message,
	})
}
