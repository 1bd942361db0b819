package usecases_port

import (
	"context"

	"listing-site/internal/core/domain"
)

type RefreshCatalogUseCasePort interface {
	Execute(ctx context.Context) (*domain.CatalogSnapshot, error)
}
