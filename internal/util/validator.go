package util

import (
	"fmt"
	"strings"
	"time"
)

// ValidateAmount checks a money amount (positive, below the cap).
func ValidateAmount(amount float64) error {
	if amount <= 0 {
		return fmt.Errorf("amount must be positive, got %f", amount)
	}
	if amount >= 10000000 {
		return fmt.Errorf("amount too large, got %f", amount)
	}
	return nil
}

// ValidateDate checks the YYYY-MM-DD storage format.
func ValidateDate(dateStr string) error {
	if dateStr == "" {
		return fmt.Errorf("date is empty")
	}
	_, err := time.Parse("2006-01-02", dateStr)
	if err != nil {
		return fmt.Errorf("invalid date format: %w", err)
	}
	return nil
}

// ValidateDayOfMonth checks a payment or cutoff day.
func ValidateDayOfMonth(day int) error {
	if day < 1 || day > 31 {
		return fmt.Errorf("day must be between 1 and 31, got %d", day)
	}
	return nil
}

// ValidateTicker checks a market symbol (non-empty, short, no spaces).
func ValidateTicker(ticker string) error {
	ticker = strings.TrimSpace(ticker)
	if ticker == "" {
		return fmt.Errorf("ticker is empty")
	}
	if len(ticker) > 32 {
		return fmt.Errorf("ticker too long, max 32 characters")
	}
	if strings.ContainsAny(ticker, " \t") {
		return fmt.Errorf("ticker must not contain spaces")
	}
	return nil
}
