package catalog

import (
	"strings"

	"listing-site/internal/core/domain"
)

// Filter оставляет записи, подходящие под все заданные фильтры.
// Исходный срез не меняется, порядок сохраняется.
func Filter(listings []domain.Listing, f domain.FilterState) []domain.Listing {
	out := make([]domain.Listing, 0, len(listings))
	if f.IsZero() {
		return append(out, listings...)
	}
	search := strings.ToLower(f.Search)
	for _, l := range listings {
		if matches(l, f, search) {
			out = append(out, l)
		}
	}
	return out
}

func matches(l domain.Listing, f domain.FilterState, search string) bool {
	if f.Project != "" && l.Project != f.Project {
		return false
	}
	if f.Zone != "" && l.Zone != f.Zone {
		return false
	}
	if f.Row != "" && l.Row != f.Row {
		return false
	}
	if f.TagTTS != "" && strings.TrimSpace(l.TagTTS) != f.TagTTS {
		return false
	}
	if f.TagFull != "" && strings.TrimSpace(l.TagFull) != f.TagFull {
		return false
	}
	if f.FundType != "" && strings.TrimSpace(l.FundType) != f.FundType {
		return false
	}

	if f.AreaMin != nil || f.AreaMax != nil {
		area := ParseArea(l.Area)
		if f.AreaMin != nil && area < *f.AreaMin {
			return false
		}
		if f.AreaMax != nil && area > *f.AreaMax {
			return false
		}
	}

	// запись без кода под поиск не попадает
	if search != "" && (l.Code == "" || !strings.Contains(strings.ToLower(l.Code), search)) {
		return false
	}
	return true
}
