package utils

import (
	"testing"

	"github.com/shopspring/decimal"
)

func TestFormatAmount(t *testing.T) {
	tests := map[string]string{
		"263442.63": "263.442,63",
		"67762.01":  "67.762,01",
		"27000":     "27.000,00",
		"5789.9":    "5.789,90",
		"999.99":    "999,99",
		"0":         "0,00",
		"1234567.5": "1.234.567,50",
		"-3064.65":  "-3.064,65",
		"0.004":     "0,00",
	}

	for in, want := range tests {
		if got := FormatAmount(decimal.RequireFromString(in)); got != want {
			t.Errorf("FormatAmount(%s) = %q, want %q", in, got, want)
		}
	}
}
