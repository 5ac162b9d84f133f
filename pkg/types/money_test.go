package types

import "testing"

func TestMoneyFormatterFormat(t *testing.T) {
	tests := []struct {
		name   string
		f      MoneyFormatter
		amount int64
		want   string
	}{
		{name: "whole rupees", f: MoneyFormatter{Code: "INR", Symbol: "₹"}, amount: 8990, want: "₹8,990"},
		{name: "zero", f: MoneyFormatter{Code: "INR", Symbol: "₹"}, amount: 0, want: "₹0"},
		{name: "large", f: MoneyFormatter{Code: "INR", Symbol: "₹"}, amount: 1234567, want: "₹1,234,567"},
		{name: "minor digits", f: MoneyFormatter{Code: "USD", Symbol: "$", MinorDigits: 2}, amount: 899050, want: "$8,990.50"},
		{name: "small minor", f: MoneyFormatter{Code: "USD", Symbol: "$", MinorDigits: 2}, amount: 5, want: "$0.05"},
		{name: "negative", f: MoneyFormatter{Code: "USD", Symbol: "$", MinorDigits: 2}, amount: -123456, want: "-$1,234.56"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.f.Format(tt.amount)
			if got.Formatted != tt.want {
				t.Fatalf("expected %q got %q", tt.want, got.Formatted)
			}
			if got.Amount != tt.amount || got.Currency != tt.f.Code {
				t.Fatalf("unexpected money %+v", got)
			}
		})
	}
}
