package config

import (
	"errors"
	"fmt"
	"math"
)

var ErrInvalidPriceFactor = errors.New("price adjust factor must be a finite number greater than 0")

// ValidatePriceFactor rejects factors that could make a stored price
// negative, zero or non-numeric.
func ValidatePriceFactor(factor float64) error {
	if math.IsNaN(factor) || math.IsInf(factor, 0) || factor <= 0 {
		return fmt.Errorf("%w: %v", ErrInvalidPriceFactor, factor)
	}
	return nil
}

// Validate checks settings that would otherwise fail late or corrupt data.
func (c *Config) Validate() error {
	if err := ValidatePriceFactor(c.Pricing.AdjustFactor); err != nil {
		return fmt.Errorf("PRICE_ADJUST_FACTOR: %w", err)
	}
	return nil
}
