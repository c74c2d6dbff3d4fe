package parser

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/shopspring/decimal"
)

// amountPattern is a plain decimal with an optional leading sign.
// Thousands separators, currency symbols and exponents are rejected.
var amountPattern = regexp.MustCompile(`^[+-]?(\d+(\.\d*)?|\.\d+)$`)

// ParseAmount converts a cell like "100", "-25.50" or "+.5" into a decimal.
// Surrounding whitespace is ignored; an empty cell is an error.
func ParseAmount(s string) (decimal.Decimal, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return decimal.Zero, fmt.Errorf("empty amount")
	}
	if !amountPattern.MatchString(s) {
		return decimal.Zero, fmt.Errorf("invalid amount %q", s)
	}

	// decimal rejects a trailing point ("5.") and a leading plus sign.
	s = strings.TrimSuffix(strings.TrimPrefix(s, "+"), ".")
	return decimal.NewFromString(s)
}
