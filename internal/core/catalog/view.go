package catalog

import "listing-site/internal/core/domain"

// Query - состояние элементов управления, пришедшее с запросом
type Query struct {
	Filters   domain.FilterState
	Sort      domain.SortMode
	Page      int
	PanelOpen bool
}

// View - все, что нужно для вывода страницы каталога
type View struct {
	Cards       []Card                             `json:"cards"`
	Page        Page                               `json:"pagination"`
	Options     map[domain.FilterCategory][]Option `json:"filter_options"`
	Sort        domain.SortMode                    `json:"sort"`
	Filters     domain.FilterState                 `json:"-"`
	FiltersOpen bool                               `json:"filters_open"`
	Empty       bool                               `json:"empty"`
	Instruction RenderInstruction                  `json:"-"`
}

// BuildView прогоняет запрос через Reduce так же, как это делали бы
// последовательные действия пользователя, и собирает представление страницы.
func BuildView(all []domain.Listing, opts domain.FilterOptions, q Query) View {
	s := NewState(all)
	s, _ = Reduce(s, FilterChanged{Filters: q.Filters})
	s, _ = Reduce(s, SortChanged{Mode: q.Sort})
	var last RenderInstruction
	s, last = Reduce(s, PageChanged{Page: q.Page})
	if q.PanelOpen {
		s, _ = Reduce(s, FilterPanelToggled{})
	}

	page := s.CurrentPage()
	cards := Cards(s.PageListings())

	options := make(map[domain.FilterCategory][]Option, len(domain.FilterCategories))
	for _, c := range domain.FilterCategories {
		options[c] = PopulateOptions(opts[c], selectedFor(s.Filters, c))
	}

	return View{
		Cards:       cards,
		Page:        page,
		Options:     options,
		Sort:        s.Sort,
		Filters:     s.Filters,
		FiltersOpen: s.FiltersOpen,
		Empty:       len(cards) == 0,
		Instruction: last,
	}
}

func selectedFor(f domain.FilterState, c domain.FilterCategory) string {
	switch c {
	case domain.CategoryProject:
		return f.Project
	case domain.CategoryZone:
		return f.Zone
	case domain.CategoryRow:
		return f.Row
	case domain.CategoryTagTTS:
		return f.TagTTS
	case domain.CategoryTagFull:
		return f.TagFull
	case domain.CategoryFundType:
		return f.FundType
	}
	return ""
}
