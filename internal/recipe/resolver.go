// Package recipe derives ingredient requirements for a cart line.
package recipe

import "burger-pos/internal/domain"

// Resolve computes what a line of qty units of an item consumes: one patty
// of the item's kind and one bun per unit (the gluten-free bun when the
// flag is set), plus qty units of each chosen topping's ingredient.
func Resolve(item domain.MenuItem, qty int, toppings []domain.Topping, glutenFree bool) domain.Requirements {
	req := domain.Requirements{}
	req[item.Patty] += qty
	if glutenFree {
		req[domain.IngredientGlutenFreeBun] += qty
	} else {
		req[domain.IngredientBun] += qty
	}
	for _, t := range toppings {
		req[t.Ingredient] += qty
	}
	return req
}
