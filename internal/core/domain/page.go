package domain

// Page est l'enveloppe de pagination offset, 1-indexée.
type Page[T any] struct {
	Items   []T
	Page    int
	PerPage int
	Total   int
	Pages   int
	HasNext bool
	HasPrev bool
}

// NewPage calcule l'enveloppe à partir du total et des items de la page courante.
func NewPage[T any](items []T, page, perPage, total int) Page[T] {
	pages := 0
	if perPage > 0 {
		pages = (total + perPage - 1) / perPage
	}
	return Page[T]{
		Items:   items,
		Page:    page,
		PerPage: perPage,
		Total:   total,
		Pages:   pages,
		HasNext: page < pages,
		HasPrev: page > 1,
	}
}

// NormalizePageArgs borne les paramètres de pagination : page et perPage
// non positifs retombent sur les défauts, perPage est plafonné.
func NormalizePageArgs(page, perPage, defaultPerPage, maxPerPage int) (int, int) {
	if page < 1 {
		page = 1
	}
	if perPage < 1 {
		perPage = defaultPerPage
	}
	if perPage > maxPerPage {
		perPage = maxPerPage
	}
	return page, perPage
}
