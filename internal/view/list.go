package view

import "strings"

// List is the table view-model behind the management screens: case-insensitive
// substring search over one key plus pagination by slicing. Pages are 1-based.
type List[T any] struct {
	source  func() []T
	key     func(T) string
	perPage int
	page    int
	term    string
}

// NewList binds a view to a live collection. source is read on every access so
// the view never works from a stale snapshot.
func NewList[T any](source func() []T, key func(T) string, perPage int) *List[T] {
	return &List[T]{source: source, key: key, perPage: perPage, page: 1}
}

func (l *List[T]) Search(term string) {
	l.term = term
	l.page = 1
}

func (l *List[T]) Term() string {
	return l.term
}

func (l *List[T]) filtered() []T {
	items := l.source()
	if l.term == "" {
		return items
	}
	term := strings.ToLower(l.term)
	matched := make([]T, 0, len(items))
	for _, item := range items {
		if strings.Contains(strings.ToLower(l.key(item)), term) {
			matched = append(matched, item)
		}
	}
	return matched
}

func (l *List[T]) TotalPages() int {
	n := len(l.filtered())
	if n == 0 {
		return 1
	}
	return (n + l.perPage - 1) / l.perPage
}

func (l *List[T]) Page() int {
	return l.page
}

// SetPage moves to page p; out-of-range requests are a no-op and the current
// page is unchanged.
func (l *List[T]) SetPage(p int) {
	if p < 1 || p > l.TotalPages() {
		return
	}
	l.page = p
}

func (l *List[T]) NextPage() {
	l.SetPage(l.page + 1)
}

func (l *List[T]) PrevPage() {
	l.SetPage(l.page - 1)
}

// PageItems slices the filtered list for the current page, clamping the page
// when the underlying list shrank under it.
func (l *List[T]) PageItems() []T {
	items := l.filtered()
	if total := l.TotalPages(); l.page > total {
		l.page = total
	}
	start := (l.page - 1) * l.perPage
	if start >= len(items) {
		return nil
	}
	end := start + l.perPage
	if end > len(items) {
		end = len(items)
	}
	return items[start:end]
}
