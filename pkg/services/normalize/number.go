package normalize

import (
	"errors"
	"strings"

	"github.com/shopspring/decimal"
)

// ErrNotNumeric marks a non-blank cell that could not be read as a number.
// Blank cells are not errors; they mean "absent", which downstream stages
// treat differently from a recorded zero.
var ErrNotNumeric = errors.New("cell is not numeric")

// ParseDecimal reads a raw cell as a decimal. A blank cell yields
// (nil, nil). Thousands separators and surrounding whitespace are
// tolerated.
func ParseDecimal(raw string) (*decimal.Decimal, error) {
	s := cleanNumeric(raw)
	if s == "" {
		return nil, nil
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return nil, ErrNotNumeric
	}
	return &d, nil
}

// ParseQuantity reads a raw cell as an integer count. Whole-valued
// decimals ("24.0") are accepted; fractional values are not.
func ParseQuantity(raw string) (*int64, error) {
	d, err := ParseDecimal(raw)
	if err != nil || d == nil {
		return nil, err
	}
	if !d.IsInteger() {
		return nil, ErrNotNumeric
	}
	n := d.IntPart()
	return &n, nil
}

func cleanNumeric(raw string) string {
	s := strings.TrimSpace(raw)
	s = strings.ReplaceAll(s, ",", "")
	s = strings.ReplaceAll(s, " ", "")
	return s
}
