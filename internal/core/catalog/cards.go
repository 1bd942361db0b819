package catalog

import "listing-site/internal/core/domain"

// Card - данные одной карточки в готовом к выводу виде
type Card struct {
	Code      string `json:"code"`
	Zone      string `json:"zone"`
	Type      string `json:"type"`
	Area      string `json:"area"`
	FundType  string `json:"fund_type"`
	PriceTTS  string `json:"price_tts"`
	PriceFull string `json:"price_full"`
	Note      string `json:"note"`
	Copyable  bool   `json:"copyable"`
}

// NewCard подставляет заглушки вместо пустых полей и форматирует цены
func NewCard(l domain.Listing) Card {
	code := orPlaceholder(l.Code)
	return Card{
		Code:      code,
		Zone:      orPlaceholder(l.Zone),
		Type:      orPlaceholder(l.Type),
		Area:      orPlaceholder(l.Area) + " m²",
		FundType:  orPlaceholder(l.FundType),
		PriceTTS:  FormatNumberWithSeparators(l.PriceTTS),
		PriceFull: FormatNumberWithSeparators(l.PriceFull),
		Note:      l.Note,
		Copyable:  code != Placeholder,
	}
}

// Cards строит карточки для страницы
func Cards(listings []domain.Listing) []Card {
	out := make([]Card, len(listings))
	for i, l := range listings {
		out[i] = NewCard(l)
	}
	return out
}

func orPlaceholder(s string) string {
	if s == "" {
		return Placeholder
	}
	return s
}
