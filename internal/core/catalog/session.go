package catalog

import "listing-site/internal/core/domain"

// State - состояние одного сеанса просмотра каталога.
// Меняется только через Reduce.
type State struct {
	All         []domain.Listing
	Filters     domain.FilterState
	Sort        domain.SortMode
	Page        int
	FiltersOpen bool

	visible []domain.Listing
}

// NewState открывает сеанс над загруженными записями: без фильтров, первая страница
func NewState(all []domain.Listing) State {
	s := State{All: all, Sort: domain.SortDefault, Page: 1}
	s.visible = s.compute()
	return s
}

// Visible - отфильтрованные и упорядоченные записи
func (s State) Visible() []domain.Listing { return s.visible }

// CurrentPage - границы текущей страницы
func (s State) CurrentPage() Page {
	return Paginate(len(s.visible), s.Page, domain.PageSize)
}

// PageListings - записи текущей страницы
func (s State) PageListings() []domain.Listing {
	return Slice(s.visible, s.CurrentPage())
}

func (s State) compute() []domain.Listing {
	return Sort(Filter(s.All, s.Filters), s.Sort)
}

// Action - событие пользовательского интерфейса
type Action interface{ action() }

type (
	FilterChanged      struct{ Filters domain.FilterState }
	SortChanged        struct{ Mode domain.SortMode }
	PageChanged        struct{ Page int }
	FiltersCleared     struct{}
	RefreshRequested   struct{}
	DataLoaded         struct{ Listings []domain.Listing }
	FilterPanelToggled struct{}
)

func (FilterChanged) action()      {}
func (SortChanged) action()        {}
func (PageChanged) action()        {}
func (FiltersCleared) action()     {}
func (RefreshRequested) action()   {}
func (DataLoaded) action()         {}
func (FilterPanelToggled) action() {}

// RenderKind - что нужно сделать с представлением после действия
type RenderKind int

const (
	RenderNone RenderKind = iota
	RenderView
	RenderReload
)

// RenderInstruction - указание представлению
type RenderInstruction struct {
	Kind        RenderKind
	ScrollToTop bool
}

// Reduce применяет действие и возвращает новое состояние и указание на перерисовку.
// Смена фильтров, сортировки и сброс возвращают на первую страницу.
func Reduce(s State, a Action) (State, RenderInstruction) {
	switch a := a.(type) {
	case FilterChanged:
		s.Filters = a.Filters
		s.Page = 1
		s.visible = s.compute()
		return s, RenderInstruction{Kind: RenderView}

	case SortChanged:
		s.Sort = a.Mode
		s.Page = 1
		s.visible = s.compute()
		return s, RenderInstruction{Kind: RenderView}

	case FiltersCleared:
		s.Filters = domain.FilterState{}
		s.Sort = domain.SortDefault
		s.Page = 1
		s.visible = s.compute()
		return s, RenderInstruction{Kind: RenderView}

	case PageChanged:
		target := Paginate(len(s.visible), a.Page, domain.PageSize).Number
		if target == s.Page {
			return s, RenderInstruction{Kind: RenderNone}
		}
		s.Page = target
		return s, RenderInstruction{Kind: RenderView, ScrollToTop: true}

	case DataLoaded:
		s.All = a.Listings
		s.Page = 1
		s.visible = s.compute()
		return s, RenderInstruction{Kind: RenderView}

	case RefreshRequested:
		return s, RenderInstruction{Kind: RenderReload}

	case FilterPanelToggled:
		s.FiltersOpen = !s.FiltersOpen
		return s, RenderInstruction{Kind: RenderView}
	}
	return s, RenderInstruction{Kind: RenderNone}
}
