package terrascope

import (
	"net/url"
	"strconv"
	"strings"
)

// ListParams are common query parameters accepted by list endpoints.
type ListParams struct {
	// PageSize asks the server for that many items per page.
	PageSize int

	// SortBy orders results, e.g. "created desc".
	SortBy string

	// Source filters by order source type where supported.
	Source string

	// Hosting filters subscriptions by hosting kind.
	Hosting string

	// Filters holds endpoint-specific filters, joined with commas when a
	// key carries several values.
	Filters map[string][]string
}

// NewListParams creates empty list parameters.
func NewListParams() *ListParams {
	return &ListParams{Filters: make(map[string][]string)}
}

// WithPageSize sets the server page size.
func (p *ListParams) WithPageSize(size int) *ListParams {
	p.PageSize = size

	return p
}

// WithSource filters by source type.
func (p *ListParams) WithSource(source string) *ListParams {
	p.Source = source

	return p
}

// WithHosting filters by hosting kind.
func (p *ListParams) WithHosting(hosting string) *ListParams {
	p.Hosting = hosting

	return p
}

// WithSort sets the sort order.
func (p *ListParams) WithSort(sortBy string) *ListParams {
	p.SortBy = sortBy

	return p
}

// WithFilter appends values for an endpoint-specific filter key.
func (p *ListParams) WithFilter(key string, values ...string) *ListParams {
	if p.Filters == nil {
		p.Filters = make(map[string][]string)
	}

	p.Filters[key] = append(p.Filters[key], values...)

	return p
}

// ToValues converts the parameters to URL query values.
func (p *ListParams) ToValues() url.Values {
	values := url.Values{}

	if p == nil {
		return values
	}

	if p.PageSize > 0 {
		values.Set("page_size", strconv.Itoa(p.PageSize))
	}

	if p.SortBy != "" {
		values.Set("sort_by", p.SortBy)
	}

	if p.Source != "" {
		values.Set("source_type", p.Source)
	}

	if p.Hosting != "" {
		values.Set("hosting", p.Hosting)
	}

	for key, vals := range p.Filters {
		if len(vals) > 0 {
			values.Set(key, strings.Join(vals, ","))
		}
	}

	return values
}
