package catalog

import (
	"cmp"
	"slices"

	"listing-site/internal/core/domain"
)

type pricedListing struct {
	price   float64
	listing domain.Listing
}

// Sort возвращает новый срез, упорядоченный по цене FULL.
// Сортировка стабильная, SortDefault сохраняет порядок таблицы.
func Sort(listings []domain.Listing, mode domain.SortMode) []domain.Listing {
	if mode != domain.SortPriceAsc && mode != domain.SortPriceDesc {
		return slices.Clone(listings)
	}

	items := make([]pricedListing, len(listings))
	for i, l := range listings {
		items[i] = pricedListing{price: ParsePrice(l.PriceFull), listing: l}
	}

	slices.SortStableFunc(items, func(a, b pricedListing) int {
		if mode == domain.SortPriceDesc {
			return cmp.Compare(b.price, a.price)
		}
		return cmp.Compare(a.price, b.price)
	})

	out := make([]domain.Listing, len(items))
	for i, it := range items {
		out[i] = it.listing
	}
	return out
}
