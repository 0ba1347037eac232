package crud

import "strconv"

const MaxPageLinks = 5

// PageLink is one item of the page control. Index is 0-based; Label is what
// the user sees.
type PageLink struct {
	Index    int
	Label    string
	URL      string
	Active   bool
	Disabled bool
	Ellipsis bool
}

type Pagination struct {
	Current int
	Total   int
	Prev    PageLink
	Next    PageLink
	Links   []PageLink
}

// Window computes the numeric links around current: at most MaxPageLinks
// numbers, plus the first and last page and ellipses when the window does
// not reach the edges.
func Window(current, total int, href func(page int) string) Pagination {
	p := Pagination{Current: current, Total: total}

	p.Prev = PageLink{Label: "Anterior", Index: current - 1, Disabled: current <= 0}
	p.Next = PageLink{Label: "Próxima", Index: current + 1, Disabled: current >= total-1}
	if !p.Prev.Disabled {
		p.Prev.URL = href(p.Prev.Index)
	}
	if !p.Next.Disabled {
		p.Next.URL = href(p.Next.Index)
	}
	if total <= 0 {
		return p
	}

	start := current - MaxPageLinks/2
	if start < 0 {
		start = 0
	}
	end := start + MaxPageLinks - 1
	if end > total-1 {
		end = total - 1
	}
	if end-start+1 < MaxPageLinks {
		start = end - MaxPageLinks + 1
		if start < 0 {
			start = 0
		}
	}

	number := func(i int) PageLink {
		return PageLink{Index: i, Label: strconv.Itoa(i + 1), URL: href(i), Active: i == current}
	}

	if start > 0 {
		p.Links = append(p.Links, number(0))
		if start > 1 {
			p.Links = append(p.Links, PageLink{Ellipsis: true, Label: "…"})
		}
	}
	for i := start; i <= end; i++ {
		p.Links = append(p.Links, number(i))
	}
	if end < total-1 {
		if end < total-2 {
			p.Links = append(p.Links, PageLink{Ellipsis: true, Label: "…"})
		}
		p.Links = append(p.Links, number(total-1))
	}
	return p
}

// ActiveIndex returns the index of the highlighted link, or -1.
func (p Pagination) ActiveIndex() int {
	for _, l := range p.Links {
		if l.Active {
			return l.Index
		}
	}
	return -1
}
