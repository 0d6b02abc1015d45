package models

import (
	"strings"

	"github.com/shopspring/decimal"
)

// FormatEUR renders integer cents as a Dutch-style euro amount, e.g.
// 4000 -> "€ 40,00". All arithmetic stays in cents; decimal is only used
// at the display boundary.
func FormatEUR(cents int64) string {
	amount := decimal.New(cents, -2).StringFixed(2)
	return "€ " + strings.Replace(amount, ".", ",", 1)
}
