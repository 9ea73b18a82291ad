package recipe

import (
	"testing"

	"burger-pos/internal/catalog"
	"burger-pos/internal/domain"
)

func mustItem(t *testing.T, name string) domain.MenuItem {
	t.Helper()
	it, ok := catalog.Default().Item(name)
	if !ok {
		t.Fatalf("menu item %q not in catalog", name)
	}
	return it
}

func TestResolveStandardBurger(t *testing.T) {
	req := Resolve(mustItem(t, "Cheeseburger"), 2, nil, false)
	want := domain.Requirements{
		domain.IngredientBeefPatty: 2,
		domain.IngredientBun:       2,
	}
	if len(req) != len(want) {
		t.Fatalf("requirements = %v, want %v", req, want)
	}
	for ing, n := range want {
		if req[ing] != n {
			t.Errorf("%s = %d, want %d", ing, req[ing], n)
		}
	}
}

func TestResolveDoublePattyKind(t *testing.T) {
	req := Resolve(mustItem(t, "Double Cheeseburger"), 1, nil, false)
	if req[domain.IngredientDoublePatty] != 1 {
		t.Errorf("double patty = %d, want 1", req[domain.IngredientDoublePatty])
	}
	if req[domain.IngredientBeefPatty] != 0 {
		t.Errorf("beef patty = %d, want 0", req[domain.IngredientBeefPatty])
	}
}

func TestResolveGlutenFreeSwapsBun(t *testing.T) {
	req := Resolve(mustItem(t, "Double Cheeseburger"), 3, nil, true)
	if req[domain.IngredientGlutenFreeBun] != 3 {
		t.Errorf("gf bun = %d, want 3", req[domain.IngredientGlutenFreeBun])
	}
	if req[domain.IngredientBun] != 0 {
		t.Errorf("bun = %d, want 0", req[domain.IngredientBun])
	}
}

func TestResolveToppingsScaleWithQuantity(t *testing.T) {
	cat := catalog.Default()
	bacon, _ := cat.Topping("Bacon")
	rings, _ := cat.Topping("Onion Rings")
	req := Resolve(mustItem(t, "The Clogger"), 2, []domain.Topping{bacon, rings}, false)
	if req[domain.IngredientBacon] != 2 {
		t.Errorf("bacon = %d, want 2", req[domain.IngredientBacon])
	}
	if req[domain.IngredientOnionRings] != 2 {
		t.Errorf("onion rings = %d, want 2", req[domain.IngredientOnionRings])
	}
}
