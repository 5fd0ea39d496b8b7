package cli

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
)

func TestFormatMoney(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"0", "$0.00"},
		{"12.5", "$12.50"},
		{"1234567.891", "$1,234,567.89"},
		{"-150", "-$150.00"},
		{"999.999", "$1,000.00"},
	}
	for _, tt := range tests {
		d := decimal.RequireFromString(tt.in)
		if got := FormatMoney(d, "$"); got != tt.want {
			t.Fatalf("FormatMoney(%s) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestFormatNumber(t *testing.T) {
	tests := map[int64]string{0: "0", 999: "999", 1000: "1,000", -1234567: "-1,234,567"}
	for in, want := range tests {
		if got := FormatNumber(in); got != want {
			t.Fatalf("FormatNumber(%d) = %q, want %q", in, got, want)
		}
	}
}

func TestFormatDue(t *testing.T) {
	tests := map[int]string{0: "today", 1: "tomorrow", 5: "in 5d", -1: "1d overdue", -2: "2d overdue"}
	for in, want := range tests {
		if got := FormatDue(in); got != want {
			t.Fatalf("FormatDue(%d) = %q, want %q", in, got, want)
		}
	}
}

func TestParseMonth(t *testing.T) {
	now := time.Date(2024, 7, 19, 15, 0, 0, 0, time.Local)
	got, err := ParseMonth("", now)
	if err != nil || got.Month() != time.July || got.Day() != 1 {
		t.Fatalf("ParseMonth(\"\") = %v, %v", got, err)
	}
	got, err = ParseMonth("2023-02", now)
	if err != nil || got.Year() != 2023 || got.Month() != time.February {
		t.Fatalf("ParseMonth(2023-02) = %v, %v", got, err)
	}
	if _, err := ParseMonth("02/2023", now); err == nil {
		t.Fatal("expected error for bad month")
	}
}
