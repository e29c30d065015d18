package pagination

import (
	"net/url"
	"strconv"
)

const (
	// DefaultPerPage is the standard page size when none is configured.
	DefaultPerPage = 12
	// MaxPerPage caps how many rows any listing can request.
	MaxPerPage = 100
)

// Params holds page-number pagination inputs from controllers or services.
// Pages are 1-indexed.
type Params struct {
	Page    int
	PerPage int
}

// Normalize clamps the params to sane values.
func (p Params) Normalize() Params {
	if p.Page < 1 {
		p.Page = 1
	}
	if p.PerPage <= 0 {
		p.PerPage = DefaultPerPage
	}
	if p.PerPage > MaxPerPage {
		p.PerPage = MaxPerPage
	}
	return p
}

// Offset returns the row offset for the normalized page.
func (p Params) Offset() int {
	n := p.Normalize()
	return (n.Page - 1) * n.PerPage
}

// Link mirrors the paginator link shape the catalog UI consumes.
type Link struct {
	URL    *string `json:"url"`
	Label  string  `json:"label"`
	Active bool    `json:"active"`
}

// Meta carries the pagination metadata returned alongside listings.
type Meta struct {
	CurrentPage int    `json:"current_page"`
	LastPage    int    `json:"last_page"`
	PerPage     int    `json:"per_page"`
	Total       int64  `json:"total"`
	Links       []Link `json:"links"`
}

// LastPage computes the final 1-indexed page for the given total.
func LastPage(total int64, perPage int) int {
	if perPage <= 0 {
		perPage = DefaultPerPage
	}
	last := int((total + int64(perPage) - 1) / int64(perPage))
	if last < 1 {
		last = 1
	}
	return last
}

// BuildMeta assembles the metadata block, including prev/number/next links
// anchored at basePath (query params other than page are preserved).
func BuildMeta(total int64, params Params, basePath string, query url.Values) Meta {
	normalized := params.Normalize()
	last := LastPage(total, normalized.PerPage)
	if normalized.Page > last {
		normalized.Page = last
	}

	meta := Meta{
		CurrentPage: normalized.Page,
		LastPage:    last,
		PerPage:     normalized.PerPage,
		Total:       total,
	}

	pageURL := func(page int) *string {
		if page < 1 || page > last {
			return nil
		}
		values := url.Values{}
		for key, vals := range query {
			if key == "page" {
				continue
			}
			for _, v := range vals {
				values.Add(key, v)
			}
		}
		values.Set("page", strconv.Itoa(page))
		u := basePath + "?" + values.Encode()
		return &u
	}

	meta.Links = append(meta.Links, Link{
		URL:   pageURL(normalized.Page - 1),
		Label: "&laquo; Previous",
	})
	for page := 1; page <= last; page++ {
		meta.Links = append(meta.Links, Link{
			URL:    pageURL(page),
			Label:  strconv.Itoa(page),
			Active: page == normalized.Page,
		})
	}
	meta.Links = append(meta.Links, Link{
		URL:   pageURL(normalized.Page + 1),
		Label: "Next &raquo;",
	})

	return meta
}
