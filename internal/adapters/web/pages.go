package web

import (
	"net/url"
	"strconv"

	"listing-site/internal/core/catalog"
	"listing-site/internal/core/domain"
)

// Имена параметров запроса страницы каталога
const (
	ParamSearch   = "q"
	ParamProject  = "duan"
	ParamZone     = "khu"
	ParamRow      = "day"
	ParamTagTTS   = "tts"
	ParamTagFull  = "full"
	ParamFundType = "coche"
	ParamAreaMin  = "dtMin"
	ParamAreaMax  = "dtMax"
	ParamSort     = "sort"
	ParamPage     = "page"
	ParamPanel    = "panel"
	ParamUpdated  = "updated"
	ParamSent     = "sent"

	PanelOpen = "open"
)

// Имена страниц сайта
const (
	PageCatalog    = "index.html"
	PageConsulting = "tu-van.html"
	PageInfo       = "thong-tin.html"
)

const siteTitle = "Bảng hàng"

// FilterSelect - выпадающий фильтр формы каталога
type FilterSelect struct {
	ID      string
	Name    string
	Label   string
	Options []catalog.Option
}

var selectLayout = []struct {
	category domain.FilterCategory
	id       string
	param    string
	label    string
}{
	{domain.CategoryProject, "filter-duan", ParamProject, "Dự án"},
	{domain.CategoryZone, "filter-khu", ParamZone, "Khu"},
	{domain.CategoryRow, "filter-day", ParamRow, "Dãy căn"},
	{domain.CategoryTagTTS, "filter-tts", ParamTagTTS, "TTS"},
	{domain.CategoryTagFull, "filter-full", ParamTagFull, "FULL"},
	{domain.CategoryFundType, "filter-CoChe", ParamFundType, "Cơ chế"},
}

var sortLabels = []struct {
	mode  domain.SortMode
	label string
}{
	{domain.SortDefault, "Mặc định"},
	{domain.SortPriceAsc, "Giá tăng dần"},
	{domain.SortPriceDesc, "Giá giảm dần"},
}

// CatalogPage - данные шаблона index.html
type CatalogPage struct {
	Title       string
	View        catalog.View
	Selects     []FilterSelect
	SortChoices []catalog.Option

	Search  string
	AreaMin string
	AreaMax string

	Error  string
	Notice string

	PrevURL   string
	NextURL   string
	ToggleURL string
	ClearURL  string
}

// NewCatalogPage собирает данные страницы каталога.
// raw - исходные параметры запроса, из них строятся ссылки пагинации и переключателя панели.
func NewCatalogPage(view catalog.View, raw url.Values) CatalogPage {
	page := CatalogPage{
		Title:   siteTitle,
		View:    view,
		Search:  raw.Get(ParamSearch),
		AreaMin: raw.Get(ParamAreaMin),
		AreaMax: raw.Get(ParamAreaMax),
	}

	for _, s := range selectLayout {
		page.Selects = append(page.Selects, FilterSelect{
			ID:      s.id,
			Name:    s.param,
			Label:   s.label,
			Options: view.Options[s.category],
		})
	}
	for _, s := range sortLabels {
		page.SortChoices = append(page.SortChoices, catalog.Option{
			Value:    string(s.mode),
			Label:    s.label,
			Selected: s.mode == view.Sort,
		})
	}

	if view.Page.HasPrev() {
		page.PrevURL = pageLink(raw, func(v url.Values) { v.Set(ParamPage, strconv.Itoa(view.Page.Number-1)) })
	}
	if view.Page.HasNext() {
		page.NextURL = pageLink(raw, func(v url.Values) { v.Set(ParamPage, strconv.Itoa(view.Page.Number+1)) })
	}
	page.ToggleURL = pageLink(raw, func(v url.Values) {
		if view.FiltersOpen {
			v.Del(ParamPanel)
		} else {
			v.Set(ParamPanel, PanelOpen)
		}
	})
	// сброс фильтров возвращает первую страницу и порядок таблицы, панель остается как была
	cleared := url.Values{}
	if view.FiltersOpen {
		cleared.Set(ParamPanel, PanelOpen)
	}
	page.ClearURL = pageLink(cleared, nil)

	return page
}

// NewCatalogErrorPage - страница каталога, когда данные загрузить не удалось
func NewCatalogErrorPage(message string, raw url.Values) CatalogPage {
	view := catalog.BuildView(nil, nil, catalog.Query{PanelOpen: raw.Get(ParamPanel) == PanelOpen})
	page := NewCatalogPage(view, raw)
	page.Error = message
	return page
}

func pageLink(raw url.Values, mutate func(url.Values)) string {
	v := url.Values{}
	for k, vs := range raw {
		// служебные параметры не переносятся в ссылки
		if k == ParamUpdated || k == ParamSent {
			continue
		}
		v[k] = append([]string(nil), vs...)
	}
	if mutate != nil {
		mutate(v)
	}
	if len(v) == 0 {
		return "/" + PageCatalog
	}
	return "/" + PageCatalog + "?" + v.Encode()
}

// ConsultingPage - данные шаблона tu-van.html
type ConsultingPage struct {
	Title      string
	FormAction string
	Notice     string
}

func NewConsultingPage(notice string) ConsultingPage {
	return ConsultingPage{Title: "Tư vấn", FormAction: "/" + PageConsulting, Notice: notice}
}

// InfoPage - данные шаблона thong-tin.html
type InfoPage struct {
	Title        string
	CacheMinutes int
	Status       domain.CatalogStatus
}

func NewInfoPage(status domain.CatalogStatus, cacheMinutes int) InfoPage {
	return InfoPage{Title: "Thông tin", CacheMinutes: cacheMinutes, Status: status}
}
