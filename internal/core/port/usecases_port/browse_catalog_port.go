package usecases_port

import (
	"context"

	"listing-site/internal/core/catalog"
	"listing-site/internal/core/domain"
)

type BrowseCatalogUseCasePort interface {
	Execute(ctx context.Context, q catalog.Query) (catalog.View, error)
	FilterOptions(ctx context.Context) (domain.FilterOptions, error)
}
