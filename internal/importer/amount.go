package importer

import (
	"strings"

	"github.com/shopspring/decimal"
)

// parseAmount parses an amount into cents. When a comma is the last
// separator the value is read in the European format ("1.234,56"); otherwise
// commas are grouping ("1,234.56").
func parseAmount(s string) (int64, error) {
	clean := strings.ReplaceAll(strings.TrimSpace(s), " ", "")

	if strings.LastIndex(clean, ",") > strings.LastIndex(clean, ".") {
		clean = strings.ReplaceAll(clean, ".", "")
		clean = strings.ReplaceAll(clean, ",", ".")
	} else {
		clean = strings.ReplaceAll(clean, ",", "")
	}

	d, err := decimal.NewFromString(clean)
	if err != nil {
		return 0, err
	}

	return d.Shift(2).Round(0).IntPart(), nil
}
