package contracts

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"listing-site/internal/core/domain"
)

// DecodedCatalog - результат разбора ответа endpoint-а
type DecodedCatalog struct {
	Listings    []domain.Listing
	Options     domain.FilterOptions
	Quarantined int
}

// CatalogDecoder - граница проверки данных, входящих в систему.
// Все, что прошло через него, уже типизировано.
type CatalogDecoder struct{}

func NewCatalogDecoder() *CatalogDecoder {
	return &CatalogDecoder{}
}

// DecodeCatalog разбирает ответ endpoint-а.
// Битый JSON - domain.ErrFeedUnavailable, нет массива data - domain.ErrInvalidFeed.
// Записи, не прошедшие схему, откладываются в карантин и только подсчитываются.
func (d *CatalogDecoder) DecodeCatalog(body []byte) (*DecodedCatalog, error) {
	raw, err := unmarshalRaw(body)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrFeedUnavailable, err)
	}
	return decodeEnvelope(raw)
}

// DecodeCacheEntry разбирает запись кэша и проверяет ее содержимое той же схемой,
// что и ответ endpoint-а. Несовместимая запись возвращает domain.ErrInvalidFeed.
func (d *CatalogDecoder) DecodeCacheEntry(body []byte) (*domain.CacheEntry, *DecodedCatalog, error) {
	raw, err := unmarshalRaw(body)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: cache entry: %v", domain.ErrInvalidFeed, err)
	}
	if err := Validate(SchemaCacheEntry, raw); err != nil {
		return nil, nil, fmt.Errorf("%w: cache entry: %v", domain.ErrInvalidFeed, err)
	}

	obj := raw.(map[string]interface{})
	ts, err := obj["timestamp"].(json.Number).Int64()
	if err != nil {
		return nil, nil, fmt.Errorf("%w: cache entry timestamp: %v", domain.ErrInvalidFeed, err)
	}

	catalog, err := decodeEnvelope(obj["data"])
	if err != nil {
		return nil, nil, err
	}

	data, err := json.Marshal(obj["data"])
	if err != nil {
		return nil, nil, fmt.Errorf("failed to re-encode cached data: %w", err)
	}

	return &domain.CacheEntry{Timestamp: ts, Data: data}, catalog, nil
}

func decodeEnvelope(raw interface{}) (*DecodedCatalog, error) {
	if err := Validate(SchemaCatalogResponse, raw); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrInvalidFeed, err)
	}
	obj := raw.(map[string]interface{})
	records := obj["data"].([]interface{})

	result := &DecodedCatalog{
		Listings: make([]domain.Listing, 0, len(records)),
		Options:  make(domain.FilterOptions, len(domain.FilterCategories)),
	}

	for _, rec := range records {
		listing, ok := decodeRecord(rec)
		if !ok {
			result.Quarantined++
			continue
		}
		result.Listings = append(result.Listings, listing)
	}

	// filterOptions необязателен: отсутствующая или не-массивная категория дает пустой список
	opts, _ := obj["filterOptions"].(map[string]interface{})
	for _, c := range domain.FilterCategories {
		values, _ := opts[string(c)].([]interface{})
		out := make([]string, 0, len(values))
		for _, v := range values {
			out = append(out, scalarString(v))
		}
		result.Options[c] = out
	}

	return result, nil
}

func decodeRecord(rec interface{}) (domain.Listing, bool) {
	if err := Validate(SchemaListingRecord, rec); err != nil {
		return domain.Listing{}, false
	}
	obj := rec.(map[string]interface{})
	fields := make(map[string]string, len(obj))
	for k, v := range obj {
		fields[k] = scalarString(v)
	}
	return domain.ListingFromFields(fields), true
}

// scalarString приводит значение JSON к тексту. Число сохраняет исходную запись,
// кроме экспоненциальной: 1e3 превращается в 1000.
func scalarString(v interface{}) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case json.Number:
		return numberString(t)
	case bool:
		return strconv.FormatBool(t)
	case []interface{}:
		parts := make([]string, len(t))
		for i, item := range t {
			parts[i] = scalarString(item)
		}
		return strings.Join(parts, ",")
	case map[string]interface{}:
		return "[object Object]"
	default:
		return fmt.Sprint(t)
	}
}

func numberString(n json.Number) string {
	lit := n.String()
	if !strings.ContainsAny(lit, "eE") {
		return lit
	}
	f, err := strconv.ParseFloat(lit, 64)
	if err != nil {
		return lit
	}
	return strconv.FormatFloat(f, 'f', -1, 64)
}
