// File: travelgo/catalog/filter.go
package catalog

import "net/url"

// SearchFilter is the ephemeral query state for the catalog. Every
// field is optional; an absent field imposes no constraint remotely.
type SearchFilter struct {
	Query      string
	CategoryID string
	MinPrice   string
	MaxPrice   string
	Location   string
}

// Values composes the remote query. Empty fields are omitted entirely
// rather than sent as empty values, so they never over-constrain the
// server-side filtering.
func (f SearchFilter) Values() url.Values {
	v := url.Values{}
	set := func(key, val string) {
		if val != "" {
			v.Set(key, val)
		}
	}
	set("search", f.Query)
	set("category_id", f.CategoryID)
	set("min_price", f.MinPrice)
	set("max_price", f.MaxPrice)
	set("location", f.Location)
	return v
}
