package report

import (
	"math"
	"strconv"
	"strings"
)

// round rounds half away from zero to the given number of decimals.
func round(v float64, decimals int) float64 {
	p := math.Pow10(decimals)
	return math.Round(v*p) / p
}

// fixed formats v with up to decimals fractional digits, dropping trailing
// zeros and always keeping the integer digit: 3.14159 -> "3.14", 2 -> "2".
func fixed(v float64, decimals int) string {
	s := strconv.FormatFloat(round(v, decimals), 'f', decimals, 64)
	if strings.Contains(s, ".") {
		s = strings.TrimRight(s, "0")
		s = strings.TrimSuffix(s, ".")
	}
	if s == "-0" {
		s = "0"
	}
	return s
}

// optional is fixed without a leading zero integer digit: 0.5 -> ".5" and
// 0 -> "".
func optional(v float64, decimals int) string {
	s := fixed(v, decimals)
	switch {
	case s == "0":
		return ""
	case strings.HasPrefix(s, "0."):
		return s[1:]
	case strings.HasPrefix(s, "-0."):
		return "-" + s[2:]
	}
	return s
}

// percent renders a ratio as a percentage with two decimals: 0.9512 -> "95.12%".
func percent(v float64) string {
	s := strconv.FormatFloat(round(v*100, 2), 'f', 2, 64)
	if s == "-0.00" {
		s = "0.00"
	}
	return s + "%"
}

// plain renders the shortest representation that round-trips.
func plain(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
