package handlers

import (
	"errors"
	"fmt"
)

var errQuantityTooLow = errors.New("quantity must be at least 1")

type insufficientStockError struct {
	Available int
}

func (e *insufficientStockError) Error() string {
	return fmt.Sprintf("Only %d items available", e.Available)
}

// validateCartQuantity enforces the two quantity guards shared by add and
// update: a positive quantity that does not exceed current stock. Nothing
// reserves stock; the check only stops obvious over-asks at add time.
func validateCartQuantity(quantity, stock int) error {
	if quantity < 1 {
		return errQuantityTooLow
	}
	if quantity > stock {
		return &insufficientStockError{Available: stock}
	}
	return nil
}
