package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormatVND(t *testing.T) {
	tests := []struct {
		name     string
		amount   float64
		expected string
	}{
		{name: "million", amount: 1000000, expected: "1.000.000 ₫"},
		{name: "typical tour price", amount: 500000, expected: "500.000 ₫"},
		{name: "small amount", amount: 999, expected: "999 ₫"},
		{name: "exact thousand", amount: 1000, expected: "1.000 ₫"},
		{name: "zero", amount: 0, expected: "0 ₫"},
		{name: "rounds fractions", amount: 1234567.4, expected: "1.234.567 ₫"},
		{name: "negative", amount: -25000, expected: "-25.000 ₫"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, FormatVND(tc.amount))
		})
	}
}
