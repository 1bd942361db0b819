package port

import "context"

// CacheStorePort - хранилище записи кэша каталога по ключу.
// Запись хранится целиком и заменяется целиком.
type CacheStorePort interface {
	// Get возвращает found=false, если ключа нет
	Get(ctx context.Context, key string) (value []byte, found bool, err error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
}
