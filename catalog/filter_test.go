package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSearchFilterValues(t *testing.T) {
	tests := []struct {
		name     string
		filter   SearchFilter
		expected string
	}{
		{
			name:     "empty filter sends nothing",
			filter:   SearchFilter{},
			expected: "",
		},
		{
			name:     "query only",
			filter:   SearchFilter{Query: "Đà Lạt"},
			expected: "search=%C4%90%C3%A0+L%E1%BA%A1t",
		},
		{
			name:     "query and min price, empty fields omitted",
			filter:   SearchFilter{Query: "Đà Lạt", MinPrice: "100000"},
			expected: "min_price=100000&search=%C4%90%C3%A0+L%E1%BA%A1t",
		},
		{
			name: "all fields",
			filter: SearchFilter{
				Query:      "beach",
				CategoryID: "3",
				MinPrice:   "100000",
				MaxPrice:   "2000000",
				Location:   "Nha Trang",
			},
			expected: "category_id=3&location=Nha+Trang&max_price=2000000&min_price=100000&search=beach",
		},
		{
			name:     "category only",
			filter:   SearchFilter{CategoryID: "7"},
			expected: "category_id=7",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			values := tc.filter.Values()
			assert.Equal(t, tc.expected, values.Encode())

			// No key may appear with an empty value.
			for key, vals := range values {
				for _, val := range vals {
					assert.NotEmpty(t, val, "key %s sent empty", key)
				}
			}
		})
	}
}
