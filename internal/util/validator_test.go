package util

import (
	"testing"
)

func TestValidateAmount_Positive(t *testing.T) {
	testCases := []float64{0.01, 1.0, 100.5, 9999999.99}

	for _, amount := range testCases {
		err := ValidateAmount(amount)
		if err != nil {
			t.Errorf("ValidateAmount(%f) error = %v, want nil", amount, err)
		}
	}
}

func TestValidateAmount_Zero(t *testing.T) {
	err := ValidateAmount(0)

	if err == nil {
		t.Error("ValidateAmount(0) error = nil, want error")
	}
}

func TestValidateAmount_Negative(t *testing.T) {
	testCases := []float64{-0.01, -100, -9999.99}

	for _, amount := range testCases {
		err := ValidateAmount(amount)
		if err == nil {
			t.Errorf("ValidateAmount(%f) error = nil, want error", amount)
		}
	}
}

func TestValidateAmount_TooLarge(t *testing.T) {
	err := ValidateAmount(100000000)

	if err == nil {
		t.Error("ValidateAmount(100000000) error = nil, want error")
	}
}

func TestValidateDate_Valid(t *testing.T) {
	testCases := []string{
		"2024-01-01",
		"2024-12-31",
		"2025-06-15",
	}

	for _, date := range testCases {
		err := ValidateDate(date)
		if err != nil {
			t.Errorf("ValidateDate(%q) error = %v, want nil", date, err)
		}
	}
}

func TestValidateDate_InvalidFormat(t *testing.T) {
	testCases := []string{
		"",
		"2024/01/01",
		"01-01-2024",
		"2024-1-1",
		"not-a-date",
		"2024-13-01",
		"2024-01-32",
	}

	for _, date := range testCases {
		err := ValidateDate(date)
		if err == nil {
			t.Errorf("ValidateDate(%q) error = nil, want error", date)
		}
	}
}

func TestValidateDayOfMonth_Valid(t *testing.T) {
	testCases := []int{1, 15, 28, 31}

	for _, day := range testCases {
		err := ValidateDayOfMonth(day)
		if err != nil {
			t.Errorf("ValidateDayOfMonth(%d) error = %v, want nil", day, err)
		}
	}
}

func TestValidateDayOfMonth_OutOfRange(t *testing.T) {
	testCases := []int{0, -3, 32, 100}

	for _, day := range testCases {
		err := ValidateDayOfMonth(day)
		if err == nil {
			t.Errorf("ValidateDayOfMonth(%d) error = nil, want error", day)
		}
	}
}

func TestValidateTicker_Valid(t *testing.T) {
	testCases := []string{"AAPL", "VOO", "BINANCE:BTCUSDT", "BRK.B"}

	for _, ticker := range testCases {
		err := ValidateTicker(ticker)
		if err != nil {
			t.Errorf("ValidateTicker(%q) error = %v, want nil", ticker, err)
		}
	}
}

func TestValidateTicker_Invalid(t *testing.T) {
	testCases := []string{"", "   ", "BAD TICKER", "WAYTOOLONGTICKERSYMBOLNAMEFORREAL123"}

	for _, ticker := range testCases {
		err := ValidateTicker(ticker)
		if err == nil {
			t.Errorf("ValidateTicker(%q) error = nil, want error", ticker)
		}
	}
}
