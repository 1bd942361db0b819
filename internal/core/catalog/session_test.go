package catalog

import (
	"fmt"
	"testing"

	"listing-site/internal/core/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func manyListings(n int) []domain.Listing {
	out := make([]domain.Listing, n)
	for i := range out {
		out[i] = domain.Listing{
			Code:      fmt.Sprintf("C-%03d", i),
			Project:   []string{"Sun", "Moon"}[i%2],
			PriceFull: fmt.Sprintf("%d", (n-i)*1000),
		}
	}
	return out
}

func TestReduceFilterResetsPage(t *testing.T) {
	s := NewState(manyListings(85))
	s, r := Reduce(s, PageChanged{Page: 3})
	require.Equal(t, RenderView, r.Kind)
	assert.True(t, r.ScrollToTop)
	assert.Equal(t, 3, s.Page)

	s, r = Reduce(s, FilterChanged{Filters: domain.FilterState{Project: "Sun"}})
	assert.Equal(t, RenderView, r.Kind)
	assert.Equal(t, 1, s.Page)
	assert.Len(t, s.Visible(), 43)
}

func TestReduceSortResetsPage(t *testing.T) {
	s := NewState(manyListings(85))
	s, _ = Reduce(s, PageChanged{Page: 2})
	s, _ = Reduce(s, SortChanged{Mode: domain.SortPriceAsc})

	assert.Equal(t, 1, s.Page)
	assert.Equal(t, "C-084", s.Visible()[0].Code)
}

func TestReduceClearRestoresOriginal(t *testing.T) {
	all := manyListings(85)
	s := NewState(all)
	s, _ = Reduce(s, FilterChanged{Filters: domain.FilterState{Project: "Moon", Search: "c-0"}})
	s, _ = Reduce(s, SortChanged{Mode: domain.SortPriceDesc})
	s, _ = Reduce(s, PageChanged{Page: 2})

	s, r := Reduce(s, FiltersCleared{})
	assert.Equal(t, RenderView, r.Kind)
	assert.Equal(t, all, s.Visible())
	assert.Equal(t, 1, s.Page)
	assert.Equal(t, domain.SortDefault, s.Sort)
	assert.True(t, s.Filters.IsZero())
}

func TestReducePageOutOfRange(t *testing.T) {
	s := NewState(manyListings(85))
	s, r := Reduce(s, PageChanged{Page: 0})
	assert.Equal(t, RenderNone, r.Kind)
	assert.Equal(t, 1, s.Page)

	s, _ = Reduce(s, PageChanged{Page: 10})
	assert.Equal(t, 3, s.Page)
	assert.Len(t, s.PageListings(), 5)
}

func TestReduceRefreshAndToggle(t *testing.T) {
	s := NewState(nil)
	_, r := Reduce(s, RefreshRequested{})
	assert.Equal(t, RenderReload, r.Kind)

	s, _ = Reduce(s, FilterPanelToggled{})
	assert.True(t, s.FiltersOpen)
	s, _ = Reduce(s, FilterPanelToggled{})
	assert.False(t, s.FiltersOpen)
}

func TestReduceDataLoadedKeepsFilters(t *testing.T) {
	s := NewState(nil)
	s, _ = Reduce(s, FilterChanged{Filters: domain.FilterState{Project: "Sun"}})
	s, _ = Reduce(s, DataLoaded{Listings: manyListings(10)})

	assert.Len(t, s.Visible(), 5)
	assert.Equal(t, 1, s.Page)
}
