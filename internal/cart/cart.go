// Package cart holds the in-progress order and reconciles every mutation
// against the inventory ledger. All operations are all-or-nothing: a
// failed add or resize leaves cart and stock exactly as they were.
package cart

import (
	"github.com/shopspring/decimal"

	"burger-pos/internal/catalog"
	"burger-pos/internal/domain"
	"burger-pos/internal/inventory"
	"burger-pos/internal/recipe"
)

type Cart struct {
	catalog *catalog.Catalog
	ledger  *inventory.Ledger
	entries []domain.CartEntry
}

func New(cat *catalog.Catalog, ledger *inventory.Ledger) *Cart {
	return &Cart{catalog: cat, ledger: ledger}
}

// Entries returns the cart lines in insertion order. The slice is shared;
// callers must not mutate it.
func (c *Cart) Entries() []domain.CartEntry { return c.entries }

func (c *Cart) Len() int { return len(c.entries) }

// HasBurger reports whether any line is a burger-category item, which is
// what gates the meal-deal offer.
func (c *Cart) HasBurger() bool {
	for _, e := range c.entries {
		if c.catalog.IsBurger(e.Name) {
			return true
		}
	}
	return false
}

// Add prices and reserves a new line. The unit price is the catalog base
// plus the gluten-free surcharge and topping prices, rounded to cents at
// this moment; later catalog changes never reprice an existing line.
func (c *Cart) Add(itemName string, qty int, toppingNames []string, glutenFree bool, notes string) (domain.CartEntry, error) {
	item, ok := c.catalog.Item(itemName)
	if !ok || qty < 1 {
		return domain.CartEntry{}, domain.ErrInvalidSelection
	}
	if glutenFree && !item.GlutenFreeAvailable {
		return domain.CartEntry{}, domain.ErrInvalidSelection
	}

	price := item.Price
	if glutenFree {
		price = price.Add(c.catalog.GlutenFreeSurcharge())
	}
	toppings := make([]domain.Topping, 0, len(toppingNames))
	for _, name := range toppingNames {
		t, ok := c.catalog.Topping(name)
		if !ok {
			return domain.CartEntry{}, domain.ErrInvalidSelection
		}
		toppings = append(toppings, t)
		price = price.Add(t.Price)
	}

	if err := c.ledger.TryReserve(recipe.Resolve(item, qty, toppings, glutenFree)); err != nil {
		return domain.CartEntry{}, err
	}

	entry := domain.CartEntry{
		Name:       itemName,
		Quantity:   qty,
		UnitPrice:  domain.RoundCents(price),
		Toppings:   toppingNames,
		GlutenFree: glutenFree,
		Notes:      notes,
	}
	c.entries = append(c.entries, entry)
	return entry, nil
}

// AddMealDeal appends the fries-and-drink upsell at its flat price. It
// carries no recipe beyond its own stock unit.
func (c *Cart) AddMealDeal() (domain.CartEntry, error) {
	req := domain.Requirements{domain.IngredientFriesDrink: 1}
	if err := c.ledger.TryReserve(req); err != nil {
		return domain.CartEntry{}, err
	}
	entry := domain.CartEntry{
		Name:      catalog.MealDealName,
		Quantity:  1,
		UnitPrice: catalog.MealDealPrice,
		Notes:     "Meal deal",
	}
	c.entries = append(c.entries, entry)
	return entry, nil
}

// Remove releases the line's reserved ingredients and drops it.
func (c *Cart) Remove(index int) error {
	if index < 0 || index >= len(c.entries) {
		return domain.ErrInvalidIndex
	}
	c.ledger.Release(c.requirementsFor(c.entries[index], c.entries[index].Quantity))
	c.entries = append(c.entries[:index], c.entries[index+1:]...)
	return nil
}

// ChangeQuantity resizes a line. Growth reserves the delta against the
// line's original recipe and fails without side effects when stock is
// short; shrinking releases the delta unconditionally.
func (c *Cart) ChangeQuantity(index, newQty int) error {
	if index < 0 || index >= len(c.entries) {
		return domain.ErrInvalidIndex
	}
	if newQty < 1 {
		return domain.ErrInvalidSelection
	}
	entry := &c.entries[index]
	delta := newQty - entry.Quantity
	switch {
	case delta > 0:
		if err := c.ledger.TryReserve(c.requirementsFor(*entry, delta)); err != nil {
			return err
		}
	case delta < 0:
		c.ledger.Release(c.requirementsFor(*entry, -delta))
	}
	entry.Quantity = newQty
	return nil
}

// Subtotal sums quantity times unit price across all lines.
func (c *Cart) Subtotal() decimal.Decimal {
	total := decimal.Zero
	for _, e := range c.entries {
		total = total.Add(e.LineTotal())
	}
	return total
}

// Clear empties the cart without touching the ledger. Settlement uses it
// once the reserved stock is consumed for good.
func (c *Cart) Clear() { c.entries = nil }

// requirementsFor recomputes what qty units of a stored line consume,
// from the line's own name/toppings/flag rather than the live catalog.
func (c *Cart) requirementsFor(e domain.CartEntry, qty int) domain.Requirements {
	item, ok := c.catalog.Item(e.Name)
	if !ok {
		// Off-menu line, i.e. the meal deal: one stock unit per unit.
		return domain.Requirements{domain.IngredientFriesDrink: qty}
	}
	toppings := make([]domain.Topping, 0, len(e.Toppings))
	for _, name := range e.Toppings {
		if t, ok := c.catalog.Topping(name); ok {
			toppings = append(toppings, t)
		}
	}
	return recipe.Resolve(item, qty, toppings, e.GlutenFree)
}
