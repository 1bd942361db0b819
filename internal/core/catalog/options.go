package catalog

import (
	"strings"

	"listing-site/internal/core/domain"
)

// AllOptionLabel - первый пункт каждого выпадающего фильтра
const AllOptionLabel = "-- Tất cả --"

// Option - пункт выпадающего списка
type Option struct {
	Value    string `json:"value"`
	Label    string `json:"label"`
	Selected bool   `json:"selected,omitempty"`
}

// SanitizeValues обрезает пробелы и выбрасывает пустые значения, порядок сохраняется
func SanitizeValues(values []string) []string {
	out := make([]string, 0, len(values))
	for _, v := range values {
		if t := strings.TrimSpace(v); t != "" {
			out = append(out, t)
		}
	}
	return out
}

// SanitizeOptions применяет SanitizeValues ко всем категориям
func SanitizeOptions(opts domain.FilterOptions) domain.FilterOptions {
	out := make(domain.FilterOptions, len(domain.FilterCategories))
	for _, c := range domain.FilterCategories {
		out[c] = SanitizeValues(opts[c])
	}
	return out
}

// PopulateOptions строит пункты списка: сначала "все", затем значения сервера.
// selected отмечает текущий выбор.
func PopulateOptions(values []string, selected string) []Option {
	clean := SanitizeValues(values)
	out := make([]Option, 0, len(clean)+1)
	out = append(out, Option{Value: "", Label: AllOptionLabel, Selected: selected == ""})
	for _, v := range clean {
		out = append(out, Option{Value: v, Label: v, Selected: v == selected})
	}
	return out
}
