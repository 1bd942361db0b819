package port

import (
	"context"

	"listing-site/internal/contracts"
	"listing-site/internal/core/domain"
)

// CatalogFeedPort - внешний источник каталога.
// Возвращает тело успешного ответа как есть, ошибки оборачивают domain.ErrFeedUnavailable.
type CatalogFeedPort interface {
	Fetch(ctx context.Context) ([]byte, error)
}

// CatalogDecoderPort - граница проверки входящих данных
type CatalogDecoderPort interface {
	DecodeCatalog(body []byte) (*contracts.DecodedCatalog, error)
	DecodeCacheEntry(body []byte) (*domain.CacheEntry, *contracts.DecodedCatalog, error)
}
