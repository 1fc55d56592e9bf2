package repository

import "strings"

// Filter holds the optional list predicates. An empty field means
// "no predicate for that column", never "match empty string".
type Filter struct {
	Status    string
	IssueType string
}

func (f Filter) Normalize() Filter {
	return Filter{
		Status:    strings.TrimSpace(f.Status),
		IssueType: strings.TrimSpace(f.IssueType),
	}
}

// Page is 1-indexed with a fixed size; page n covers rows
// [(n-1)*size, n*size-1] of the filtered, ordered result.
type Page struct {
	Number int
	Size   int
}

func (p Page) Clamp() Page {
	if p.Number < 1 {
		p.Number = 1
	}
	if p.Size <= 0 || p.Size > 200 {
		p.Size = 50
	}
	return p
}

// Range returns the LIMIT/OFFSET pair for the page.
func (p Page) Range() (limit, offset int) {
	p = p.Clamp()
	return p.Size, (p.Number - 1) * p.Size
}

func (p Page) HasPrev() bool { return p.Number > 1 }

func (p Page) HasNext(total int) bool { return p.Number*p.Size < total }
