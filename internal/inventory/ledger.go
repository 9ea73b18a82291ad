// Package inventory tracks ingredient stock for a single register session.
package inventory

import "burger-pos/internal/domain"

// Ledger maps ingredients to remaining units. Counts never go negative:
// a reservation either commits in full or not at all.
type Ledger struct {
	stock map[domain.Ingredient]int
}

// DefaultStock is the opening stock for a session.
func DefaultStock() map[domain.Ingredient]int {
	return map[domain.Ingredient]int{
		domain.IngredientBeefPatty:     20,
		domain.IngredientDoublePatty:   15,
		domain.IngredientBun:           30,
		domain.IngredientGlutenFreeBun: 10,
		domain.IngredientBacon:         20,
		domain.IngredientExtraCheese:   30,
		domain.IngredientOnionRings:    15,
		domain.IngredientFriesDrink:    10,
	}
}

func NewLedger(stock map[domain.Ingredient]int) *Ledger {
	l := &Ledger{stock: make(map[domain.Ingredient]int, len(stock))}
	for k, v := range stock {
		l.stock[k] = v
	}
	return l
}

// Count returns the remaining units of an ingredient.
func (l *Ledger) Count(ing domain.Ingredient) int { return l.stock[ing] }

// TryReserve checks every requirement before decrementing anything, so a
// shortfall mid-way never leaves a partial reservation. The returned
// StockError names the first ingredient found short.
func (l *Ledger) TryReserve(req domain.Requirements) error {
	for ing, need := range req {
		if l.stock[ing] < need {
			return &domain.StockError{Ingredient: ing}
		}
	}
	for ing, need := range req {
		l.stock[ing] -= need
	}
	return nil
}

// Release returns units to stock unconditionally. Callers only ever
// release requirements they previously reserved, so stock is conserved.
func (l *Ledger) Release(req domain.Requirements) {
	for ing, n := range req {
		l.stock[ing] += n
	}
}
