package catalog

// Page - границы одной страницы в отфильтрованной выборке, [Start, End)
type Page struct {
	Number     int `json:"page"`
	TotalPages int `json:"total_pages"`
	TotalItems int `json:"total_items"`
	PerPage    int `json:"per_page"`
	Start      int `json:"-"`
	End        int `json:"-"`
}

// Paginate считает страницу number для total элементов.
// Номер страницы приводится к диапазону [1, TotalPages].
func Paginate(total, number, perPage int) Page {
	if perPage <= 0 {
		perPage = 1
	}
	if total < 0 {
		total = 0
	}
	totalPages := (total + perPage - 1) / perPage

	if number > totalPages {
		number = totalPages
	}
	if number < 1 {
		number = 1
	}

	start := (number - 1) * perPage
	end := start + perPage
	if start > total {
		start = total
	}
	if end > total {
		end = total
	}

	return Page{
		Number:     number,
		TotalPages: totalPages,
		TotalItems: total,
		PerPage:    perPage,
		Start:      start,
		End:        end,
	}
}

// HasPrev - можно ли перейти на предыдущую страницу
func (p Page) HasPrev() bool { return p.Number > 1 }

// HasNext - можно ли перейти на следующую страницу
func (p Page) HasNext() bool { return p.Number < p.TotalPages }

// ShowControls - при одной странице навигация не выводится
func (p Page) ShowControls() bool { return p.TotalPages > 1 }

// Slice вырезает страницу из выборки
func Slice[T any](items []T, p Page) []T {
	if p.Start >= len(items) {
		return nil
	}
	end := p.End
	if end > len(items) {
		end = len(items)
	}
	return items[p.Start:end]
}
