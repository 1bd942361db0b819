package rest

import (
	"time"

	"listing-site/internal/core/catalog"
	"listing-site/internal/core/domain"

	"github.com/google/uuid"
)

// ListingsResponseDTO - ответ GET /api/v1/listings
type ListingsResponseDTO struct {
	Items      []catalog.Card  `json:"items"`
	Pagination catalog.Page    `json:"pagination"`
	Sort       domain.SortMode `json:"sort"`
	Message    string          `json:"message,omitempty"`
}

// RefreshResponseDTO - ответ POST /api/v1/catalog/refresh
type RefreshResponseDTO struct {
	Message      string    `json:"message"`
	ListingCount int       `json:"listing_count"`
	Quarantined  int       `json:"quarantined"`
	FetchedAt    time.Time `json:"fetched_at"`
	Source       string    `json:"source"`
}

// ConsultingRequestDTO - тело POST /api/v1/consulting
type ConsultingRequestDTO struct {
	Fields map[string]string `json:"fields"`
}

// ConsultingResponseDTO - квитанция о приеме заявки
type ConsultingResponseDTO struct {
	ID          uuid.UUID `json:"id"`
	SubmittedAt time.Time `json:"submitted_at"`
	Message     string    `json:"message"`
}
