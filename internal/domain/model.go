package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Ingredient identifies a stock-tracked ingredient in the inventory ledger.
type Ingredient string

const (
	IngredientBeefPatty     Ingredient = "beef_patty"
	IngredientDoublePatty   Ingredient = "double_patty"
	IngredientBun           Ingredient = "bun"
	IngredientGlutenFreeBun Ingredient = "gluten_free_bun"
	IngredientBacon         Ingredient = "bacon"
	IngredientExtraCheese   Ingredient = "extra_cheese"
	IngredientOnionRings    Ingredient = "onion_rings"
	IngredientFriesDrink    Ingredient = "fries_drink"
)

// Requirements maps ingredients to the units a cart entry consumes.
type Requirements map[Ingredient]int

type Category string

const (
	CategoryBurger Category = "burger"
	CategoryOther  Category = "other"
)

// MenuItem is a catalog definition. Immutable after catalog load.
type MenuItem struct {
	Name                string
	Price               decimal.Decimal
	Category            Category
	Patty               Ingredient
	Allergens           []string
	GlutenFreeAvailable bool
}

// Topping is a priced extra that also consumes its own ingredient unit.
type Topping struct {
	Name       string
	Price      decimal.Decimal
	Ingredient Ingredient
}

// CartEntry is one line in the cart. Unit price is fixed at add time and
// already includes topping and gluten-free surcharges.
type CartEntry struct {
	Name       string
	Quantity   int
	UnitPrice  decimal.Decimal
	Toppings   []string
	GlutenFree bool
	Notes      string
}

func (e CartEntry) LineTotal() decimal.Decimal {
	return e.UnitPrice.Mul(decimal.NewFromInt(int64(e.Quantity)))
}

// PickupCredential is issued once per settled order and never mutated.
type PickupCredential struct {
	OrderNumber int
	Code        string
	IssuedAt    time.Time
}
