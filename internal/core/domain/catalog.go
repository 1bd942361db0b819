package domain

import (
	"encoding/json"
	"time"
)

// SnapshotSource - откуда загружен снимок каталога
type SnapshotSource string

const (
	SourceCache SnapshotSource = "cache"
	SourceFeed  SnapshotSource = "feed"
)

// CatalogSnapshot - полный загруженный каталог. После создания не изменяется.
type CatalogSnapshot struct {
	FetchedAt   time.Time
	Listings    []Listing
	Options     FilterOptions
	Quarantined int
	Source      SnapshotSource
}

// Age возвращает возраст снимка относительно now
func (s *CatalogSnapshot) Age(now time.Time) time.Duration {
	return now.Sub(s.FetchedAt)
}

// CacheEntry - запись кэша: ответ сервера целиком и момент загрузки в миллисекундах
type CacheEntry struct {
	Timestamp int64           `json:"timestamp"`
	Data      json.RawMessage `json:"data"`
}

// NewCacheEntry фиксирует ответ сервера на момент at
func NewCacheEntry(at time.Time, data []byte) CacheEntry {
	return CacheEntry{Timestamp: at.UnixMilli(), Data: json.RawMessage(data)}
}

// FetchedAt возвращает момент загрузки
func (e CacheEntry) FetchedAt() time.Time {
	return time.UnixMilli(e.Timestamp)
}

// FreshAt сообщает, моложе ли запись окна свежести
func (e CacheEntry) FreshAt(now time.Time, window time.Duration) bool {
	return now.Sub(e.FetchedAt()) < window
}

// LoadState - состояние загрузки каталога
type LoadState string

const (
	StateIdle    LoadState = "idle"
	StateLoading LoadState = "loading"
	StateReady   LoadState = "ready"
	StateError   LoadState = "error"
)

// CatalogStatus - то, что видно снаружи о загрузке каталога
type CatalogStatus struct {
	State        LoadState  `json:"state"`
	Loading      bool       `json:"loading"`
	FetchedAt    *time.Time `json:"fetched_at,omitempty"`
	Source       string     `json:"source,omitempty"`
	ListingCount int        `json:"listing_count"`
	Quarantined  int        `json:"quarantined"`
	LastError    string     `json:"last_error,omitempty"`
	Generation   uint64     `json:"generation"`
}

// SortMode - порядок вывода карточек
type SortMode string

const (
	SortDefault   SortMode = "default"
	SortPriceAsc  SortMode = "price-asc"
	SortPriceDesc SortMode = "price-desc"
)

// ParseSortMode принимает значение селектора, неизвестное превращается в SortDefault
func ParseSortMode(s string) SortMode {
	switch SortMode(s) {
	case SortPriceAsc:
		return SortPriceAsc
	case SortPriceDesc:
		return SortPriceDesc
	default:
		return SortDefault
	}
}

// FilterState - текущие значения всех фильтров. Пустое значение не ограничивает выборку.
type FilterState struct {
	Project  string
	Zone     string
	Row      string
	TagTTS   string
	TagFull  string
	FundType string
	AreaMin  *float64
	AreaMax  *float64
	Search   string
}

// IsZero сообщает, что ни один фильтр не задан
func (f FilterState) IsZero() bool {
	return f.Project == "" && f.Zone == "" && f.Row == "" &&
		f.TagTTS == "" && f.TagFull == "" && f.FundType == "" &&
		f.AreaMin == nil && f.AreaMax == nil && f.Search == ""
}

// PageSize - число карточек на странице
const PageSize = 40
