package types

import (
	"strings"

	"github.com/shopspring/decimal"
)

// Money is an amount in the smallest currency unit plus its display form.
type Money struct {
	Amount    int64  `json:"amount"`
	Currency  string `json:"currency"`
	Formatted string `json:"formatted"`
}

// MoneyFormatter renders minor-unit amounts for display.
type MoneyFormatter struct {
	Code        string
	Symbol      string
	MinorDigits int32
}

// Format converts amount (smallest unit) into Money.
func (f MoneyFormatter) Format(amount int64) Money {
	digits := f.MinorDigits
	if digits < 0 {
		digits = 0
	}
	value := decimal.New(amount, -digits)

	sign := ""
	if value.IsNegative() {
		sign = "-"
		value = value.Neg()
	}
	fixed := value.StringFixed(digits)
	whole, frac, _ := strings.Cut(fixed, ".")

	var b strings.Builder
	b.WriteString(sign)
	b.WriteString(f.Symbol)
	b.WriteString(groupThousands(whole))
	if frac != "" {
		b.WriteByte('.')
		b.WriteString(frac)
	}
	return Money{Amount: amount, Currency: f.Code, Formatted: b.String()}
}

func groupThousands(digits string) string {
	if len(digits) <= 3 {
		return digits
	}
	lead := len(digits) % 3
	var b strings.Builder
	if lead > 0 {
		b.WriteString(digits[:lead])
	}
	for i := lead; i < len(digits); i += 3 {
		if b.Len() > 0 {
			b.WriteByte(',')
		}
		b.WriteString(digits[i : i+3])
	}
	return b.String()
}
