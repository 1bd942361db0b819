package usecases_port

import (
	"context"

	"listing-site/internal/core/domain"
)

type LoadCatalogUseCasePort interface {
	// Snapshot возвращает свежий снимок, при необходимости загружая его
	Snapshot(ctx context.Context) (*domain.CatalogSnapshot, error)
	Status() domain.CatalogStatus
}
