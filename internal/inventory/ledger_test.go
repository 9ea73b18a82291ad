package inventory

import (
	"testing"

	"burger-pos/internal/domain"
)

func TestTryReserveDecrementsAll(t *testing.T) {
	l := NewLedger(map[domain.Ingredient]int{
		domain.IngredientBeefPatty: 5,
		domain.IngredientBun:       5,
	})
	err := l.TryReserve(domain.Requirements{
		domain.IngredientBeefPatty: 2,
		domain.IngredientBun:       2,
	})
	if err != nil {
		t.Fatalf("reserve failed: %v", err)
	}
	if got := l.Count(domain.IngredientBeefPatty); got != 3 {
		t.Errorf("patty count = %d, want 3", got)
	}
	if got := l.Count(domain.IngredientBun); got != 3 {
		t.Errorf("bun count = %d, want 3", got)
	}
}

func TestTryReserveShortfallCommitsNothing(t *testing.T) {
	l := NewLedger(map[domain.Ingredient]int{
		domain.IngredientBeefPatty: 5,
		domain.IngredientBun:       1,
	})
	err := l.TryReserve(domain.Requirements{
		domain.IngredientBeefPatty: 2,
		domain.IngredientBun:       2,
	})
	se, ok := domain.AsStockError(err)
	if !ok {
		t.Fatalf("expected StockError, got %v", err)
	}
	if se.Ingredient != domain.IngredientBun {
		t.Errorf("short ingredient = %s, want %s", se.Ingredient, domain.IngredientBun)
	}
	// Nothing committed, nothing negative.
	if got := l.Count(domain.IngredientBeefPatty); got != 5 {
		t.Errorf("patty count = %d, want 5", got)
	}
	if got := l.Count(domain.IngredientBun); got != 1 {
		t.Errorf("bun count = %d, want 1", got)
	}
}

func TestReleaseRestoresStock(t *testing.T) {
	l := NewLedger(map[domain.Ingredient]int{domain.IngredientBacon: 3})
	req := domain.Requirements{domain.IngredientBacon: 2}
	if err := l.TryReserve(req); err != nil {
		t.Fatalf("reserve failed: %v", err)
	}
	l.Release(req)
	if got := l.Count(domain.IngredientBacon); got != 3 {
		t.Errorf("bacon count = %d, want 3", got)
	}
}

func TestConservationAcrossSequence(t *testing.T) {
	initial := DefaultStock()
	l := NewLedger(initial)

	reqA := domain.Requirements{domain.IngredientBeefPatty: 3, domain.IngredientBun: 3}
	reqB := domain.Requirements{domain.IngredientDoublePatty: 1, domain.IngredientGlutenFreeBun: 1}
	if err := l.TryReserve(reqA); err != nil {
		t.Fatalf("reserve A: %v", err)
	}
	if err := l.TryReserve(reqB); err != nil {
		t.Fatalf("reserve B: %v", err)
	}
	l.Release(reqA)

	// Only B is still held; every other count must be back at initial.
	held := map[domain.Ingredient]int{}
	for k, v := range reqB {
		held[k] = v
	}
	for ing, start := range initial {
		want := start - held[ing]
		if got := l.Count(ing); got != want {
			t.Errorf("%s count = %d, want %d", ing, got, want)
		}
	}
}
