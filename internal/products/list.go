package product

import (
	"net/url"

	"github.com/avelarde/catalog-backend/pkg/pagination"
)

// ListProductsInput holds the listing inputs as parsed from the query
// string. BasePath and Query feed the pagination links so search terms
// survive page navigation.
type ListProductsInput struct {
	Page     int
	Search   string
	BasePath string
	Query    url.Values
}

// ProductListResult is one catalog page plus its pagination metadata.
type ProductListResult struct {
	Products []ProductDTO    `json:"data"`
	Meta     pagination.Meta `json:"meta"`
}
