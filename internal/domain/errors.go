package domain

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidIndex        = errors.New("no cart entry at that index")
	ErrInvalidSelection    = errors.New("unknown menu item or topping")
	ErrInvalidDiscountCode = errors.New("unrecognized discount code")
	ErrEmptyCart           = errors.New("cart is empty")
	ErrInsufficientPoints  = errors.New("not enough loyalty points to redeem")
)

// StockError reports the first ingredient found short during a reservation.
// The operation that raised it committed nothing.
type StockError struct {
	Ingredient Ingredient
}

func (e *StockError) Error() string {
	return fmt.Sprintf("insufficient stock of %s", e.Ingredient)
}

// AsStockError unwraps err into a StockError, if it is one.
func AsStockError(err error) (*StockError, bool) {
	var se *StockError
	if errors.As(err, &se) {
		return se, true
	}
	return nil, false
}
