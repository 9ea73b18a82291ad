// Package catalog holds the static menu: items, toppings and their prices.
// Definitions are immutable once the catalog is built.
package catalog

import (
	"github.com/shopspring/decimal"

	"burger-pos/internal/domain"
)

// GlutenFreeBunTopping doubles as the gluten-free surcharge line on the
// toppings board and the ingredient the gluten-free bun swap consumes.
const GlutenFreeBunTopping = "GlutenFreeBun"

// MealDealName is the zero-recipe upsell entry appended to the cart when
// the customer accepts the fries-and-drink offer.
const MealDealName = "Fries+Drink"

// MealDealPrice is the flat price of the fries-and-drink upsell.
var MealDealPrice = decimal.RequireFromString("3.00")

type Catalog struct {
	items    []domain.MenuItem
	toppings []domain.Topping
}

// Default returns the Beef Burger Co. menu.
func Default() *Catalog {
	return &Catalog{
		items: []domain.MenuItem{
			{
				Name:      "Cheeseburger",
				Price:     decimal.RequireFromString("4.99"),
				Category:  domain.CategoryBurger,
				Patty:     domain.IngredientBeefPatty,
				Allergens: []string{"dairy", "gluten"},
			},
			{
				Name:                "Double Cheeseburger",
				Price:               decimal.RequireFromString("5.50"),
				Category:            domain.CategoryBurger,
				Patty:               domain.IngredientDoublePatty,
				Allergens:           []string{"dairy", "gluten"},
				GlutenFreeAvailable: true,
			},
			{
				Name:      "The Clogger",
				Price:     decimal.RequireFromString("6.70"),
				Category:  domain.CategoryBurger,
				Patty:     domain.IngredientBeefPatty,
				Allergens: []string{"gluten"},
			},
		},
		toppings: []domain.Topping{
			{Name: "Bacon", Price: decimal.RequireFromString("0.75"), Ingredient: domain.IngredientBacon},
			{Name: "Extra Cheese", Price: decimal.RequireFromString("0.50"), Ingredient: domain.IngredientExtraCheese},
			{Name: "Onion Rings", Price: decimal.RequireFromString("1.00"), Ingredient: domain.IngredientOnionRings},
			{Name: GlutenFreeBunTopping, Price: decimal.RequireFromString("1.50"), Ingredient: domain.IngredientGlutenFreeBun},
		},
	}
}

// Items returns menu items in display order; the index shown to the
// customer is position+1.
func (c *Catalog) Items() []domain.MenuItem { return c.items }

// ItemByIndex resolves a 1-based menu index.
func (c *Catalog) ItemByIndex(i int) (domain.MenuItem, error) {
	if i < 1 || i > len(c.items) {
		return domain.MenuItem{}, domain.ErrInvalidSelection
	}
	return c.items[i-1], nil
}

func (c *Catalog) Item(name string) (domain.MenuItem, bool) {
	for _, it := range c.items {
		if it.Name == name {
			return it, true
		}
	}
	return domain.MenuItem{}, false
}

func (c *Catalog) Toppings() []domain.Topping { return c.toppings }

func (c *Catalog) Topping(name string) (domain.Topping, bool) {
	for _, t := range c.toppings {
		if t.Name == name {
			return t, true
		}
	}
	return domain.Topping{}, false
}

// GlutenFreeSurcharge is the per-unit price added when the gluten-free
// bun is selected.
func (c *Catalog) GlutenFreeSurcharge() decimal.Decimal {
	t, ok := c.Topping(GlutenFreeBunTopping)
	if !ok {
		return decimal.Zero
	}
	return t.Price
}

// IsBurger reports whether a cart entry name refers to a burger-category
// menu item. Off-menu entries (the meal deal) are never burgers.
func (c *Catalog) IsBurger(name string) bool {
	it, ok := c.Item(name)
	return ok && it.Category == domain.CategoryBurger
}
