package usecase

import (
	"context"

	"listing-site/internal/contextkeys"
	"listing-site/internal/core/catalog"
	"listing-site/internal/core/domain"
	"listing-site/internal/core/port"
	"listing-site/internal/core/port/usecases_port"
)

type BrowseCatalogUseCase struct {
	loader usecases_port.LoadCatalogUseCasePort
}

func NewBrowseCatalogUseCase(loader usecases_port.LoadCatalogUseCasePort) *BrowseCatalogUseCase {
	return &BrowseCatalogUseCase{loader: loader}
}

// Execute применяет фильтры, сортировку и пагинацию к текущему снимку
func (uc *BrowseCatalogUseCase) Execute(ctx context.Context, q catalog.Query) (catalog.View, error) {
	ucLogger := contextkeys.LoggerFromContext(ctx).WithFields(port.Fields{
		"use_case": "BrowseCatalog",
		"sort":     q.Sort,
		"page":     q.Page,
	})

	snap, err := uc.loader.Snapshot(ctx)
	if err != nil {
		ucLogger.Error("Catalog is not available", err, nil)
		return catalog.View{}, err
	}

	view := catalog.BuildView(snap.Listings, snap.Options, q)
	ucLogger.Debug("Catalog view built", port.Fields{
		"matched":     view.Page.TotalItems,
		"total":       len(snap.Listings),
		"total_pages": view.Page.TotalPages,
	})
	return view, nil
}

// FilterOptions возвращает очищенные наборы значений фильтров
func (uc *BrowseCatalogUseCase) FilterOptions(ctx context.Context) (domain.FilterOptions, error) {
	snap, err := uc.loader.Snapshot(ctx)
	if err != nil {
		return nil, err
	}
	return snap.Options, nil
}
