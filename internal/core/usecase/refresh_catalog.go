package usecase

import (
	"context"

	"listing-site/internal/contextkeys"
	"listing-site/internal/core/domain"
	"listing-site/internal/core/port"
)

type RefreshCatalogUseCase struct {
	loader *LoadCatalogUseCase
}

func NewRefreshCatalogUseCase(loader *LoadCatalogUseCase) *RefreshCatalogUseCase {
	return &RefreshCatalogUseCase{loader: loader}
}

// Execute сбрасывает кэш и загружает каталог из таблицы заново
func (uc *RefreshCatalogUseCase) Execute(ctx context.Context) (*domain.CatalogSnapshot, error) {
	ucLogger := contextkeys.LoggerFromContext(ctx).WithFields(port.Fields{"use_case": "RefreshCatalog"})
	ucLogger.Info("Use case started", nil)

	snap, err := uc.loader.Refresh(ctx)
	if err != nil {
		ucLogger.Error("Forced refresh failed", err, nil)
		return nil, err
	}

	ucLogger.Info("Use case finished successfully", port.Fields{"listings": len(snap.Listings)})
	return snap, nil
}
