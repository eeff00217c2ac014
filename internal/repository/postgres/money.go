package postgres

import (
	"fmt"
	"math"
	"strconv"
)

// Balances are stored as NUMERIC(15,2) and handled in Go as int64
// paise. These helpers convert between the two representations at the
// repository boundary.

func numericStringToCents(s string) (int64, error) {
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid numeric value %q: %w", s, err)
	}
	return int64(math.Round(f * 100)), nil
}

func centsToNumericString(cents int64) string {
	sign := ""
	if cents < 0 {
		sign = "-"
		cents = -cents
	}
	return fmt.Sprintf("%s%d.%02d", sign, cents/100, cents%100)
}
