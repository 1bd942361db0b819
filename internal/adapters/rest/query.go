package rest

import (
	"net/url"
	"strconv"
	"strings"

	"listing-site/internal/adapters/web"
	"listing-site/internal/core/catalog"
	"listing-site/internal/core/domain"
)

// parseCatalogQuery переводит параметры запроса в состояние элементов управления.
// Некорректные значения не ошибка: страница приводится к 1, сортировка к default.
func parseCatalogQuery(v url.Values) catalog.Query {
	page, err := strconv.Atoi(strings.TrimSpace(v.Get(web.ParamPage)))
	if err != nil || page < 1 {
		page = 1
	}

	return catalog.Query{
		Filters: domain.FilterState{
			Project:  v.Get(web.ParamProject),
			Zone:     v.Get(web.ParamZone),
			Row:      v.Get(web.ParamRow),
			TagTTS:   v.Get(web.ParamTagTTS),
			TagFull:  v.Get(web.ParamTagFull),
			FundType: v.Get(web.ParamFundType),
			AreaMin:  catalog.ParseBound(v.Get(web.ParamAreaMin)),
			AreaMax:  catalog.ParseBound(v.Get(web.ParamAreaMax)),
			Search:   v.Get(web.ParamSearch),
		},
		Sort:      domain.ParseSortMode(v.Get(web.ParamSort)),
		Page:      page,
		PanelOpen: v.Get(web.ParamPanel) == web.PanelOpen,
	}
}
