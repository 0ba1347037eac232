package domain

const (
	DefaultPageSize = 10
	MaxPageSize     = 100
)

// Page is one server-side slice of a collection.
type Page[T any] struct {
	Items      []T  `json:"content"`
	TotalItems int  `json:"totalElements"`
	TotalPages int  `json:"totalPages"`
	Index      int  `json:"number"`
	Size       int  `json:"size"`
	First      bool `json:"first"`
	Last       bool `json:"last"`
	Empty      bool `json:"empty"`
}

// Consistent reports whether the page honours the size and index bounds.
func (p Page[T]) Consistent() bool {
	if p.Size > 0 && len(p.Items) > p.Size {
		return false
	}
	if !p.Empty && p.Index >= p.TotalPages {
		return false
	}
	return true
}

type PageRequest struct {
	Index int
	Size  int
}

// Normalize clamps a request coming from a query string.
func (r PageRequest) Normalize(defaultSize int) PageRequest {
	if defaultSize <= 0 {
		defaultSize = DefaultPageSize
	}
	if r.Index < 0 {
		r.Index = 0
	}
	if r.Size <= 0 {
		r.Size = defaultSize
	}
	if r.Size > MaxPageSize {
		r.Size = MaxPageSize
	}
	return r
}
