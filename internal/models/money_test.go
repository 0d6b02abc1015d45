package models

import "testing"

func TestFormatEUR(t *testing.T) {
	tests := []struct {
		cents int64
		want  string
	}{
		{0, "€ 0,00"},
		{4000, "€ 40,00"},
		{2595, "€ 25,95"},
		{5, "€ 0,05"},
		{123456, "€ 1234,56"},
	}
	for _, tt := range tests {
		if got := FormatEUR(tt.cents); got != tt.want {
			t.Errorf("FormatEUR(%d) = %q, want %q", tt.cents, got, tt.want)
		}
	}
}

func TestLineTotalCents(t *testing.T) {
	item := CartItem{UnitPriceCents: 2500, UnitDiscountCents: 500, Quantity: 2}
	if got := item.LineTotalCents(); got != 4000 {
		t.Errorf("got %d, want 4000", got)
	}
}
