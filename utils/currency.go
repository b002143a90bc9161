package utils

import (
	"math"
	"strconv"
	"strings"
)

// FormatVND renders an amount the way the marketplace displays prices:
// dot-separated thousands with the đồng sign, e.g. 1000000 -> "1.000.000 ₫".
func FormatVND(amount float64) string {
	n := int64(math.Round(amount))
	neg := n < 0
	if neg {
		n = -n
	}

	digits := strconv.FormatInt(n, 10)
	var sb strings.Builder
	if neg {
		sb.WriteByte('-')
	}
	for i, d := range digits {
		if i > 0 && (len(digits)-i)%3 == 0 {
			sb.WriteByte('.')
		}
		sb.WriteRune(d)
	}
	sb.WriteString(" ₫")
	return sb.String()
}
