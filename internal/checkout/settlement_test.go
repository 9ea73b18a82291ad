package checkout

import (
	"context"
	"errors"
	"io"
	"testing"

	"github.com/shopspring/decimal"

	"burger-pos/internal/cart"
	"burger-pos/internal/catalog"
	"burger-pos/internal/common/logger"
	"burger-pos/internal/domain"
	"burger-pos/internal/inventory"
	"burger-pos/internal/loyalty"
)

type fakeSink struct {
	stored []domain.PickupCredential
	fail   error
}

func (f *fakeSink) Store(_ context.Context, cred domain.PickupCredential) error {
	if f.fail != nil {
		return f.fail
	}
	f.stored = append(f.stored, cred)
	return nil
}

type fakeNotifier struct {
	messages []domain.OrderSettledMessage
}

func (f *fakeNotifier) OrderSettled(_ context.Context, msg domain.OrderSettledMessage) error {
	f.messages = append(f.messages, msg)
	return nil
}

type fixture struct {
	cart       *cart.Cart
	ledger     *inventory.Ledger
	loyalty    *loyalty.Store
	sink       *fakeSink
	notifier   *fakeNotifier
	settlement *Settlement
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	cat := catalog.Default()
	ledger := inventory.NewLedger(inventory.DefaultStock())
	c := cart.New(cat, ledger)
	ls := loyalty.NewStore()
	sink := &fakeSink{}
	notifier := &fakeNotifier{}
	lg := logger.NewWriter("checkout-test", io.Discard)
	return &fixture{
		cart:       c,
		ledger:     ledger,
		loyalty:    ls,
		sink:       sink,
		notifier:   notifier,
		settlement: NewSettlement(c, cat, ls, sink, notifier, lg),
	}
}

// addBurgerPair loads a Double Cheeseburger and a Clogger: subtotal
// 12.20, bundle savings 2.20, adjusted 10.00.
func (f *fixture) addBurgerPair(t *testing.T) {
	t.Helper()
	if _, err := f.cart.Add("Double Cheeseburger", 1, nil, false, ""); err != nil {
		t.Fatalf("add failed: %v", err)
	}
	if _, err := f.cart.Add("The Clogger", 1, nil, false, ""); err != nil {
		t.Fatalf("add failed: %v", err)
	}
}

func money(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func TestPreviewEmptyCart(t *testing.T) {
	f := newFixture(t)
	if _, err := f.settlement.BuildPreview("", "", false); err != domain.ErrEmptyCart {
		t.Errorf("err = %v, want ErrEmptyCart", err)
	}
}

func TestPreviewArithmetic(t *testing.T) {
	f := newFixture(t)
	f.addBurgerPair(t)

	p, err := f.settlement.BuildPreview("DISCOUNT10", "", false)
	if err != nil {
		t.Fatalf("preview failed: %v", err)
	}
	if !p.Subtotal.Equal(money("10.00")) {
		t.Errorf("subtotal = %s, want 10.00", p.Subtotal)
	}
	if !p.BundleSavings.Equal(money("2.20")) {
		t.Errorf("bundle savings = %s, want 2.20", p.BundleSavings)
	}
	if !p.Discount.Equal(money("1.00")) {
		t.Errorf("discount = %s, want 1.00", p.Discount)
	}
	if !p.Tax.Equal(money("1.00")) {
		t.Errorf("tax = %s, want 1.00", p.Tax)
	}
	if !p.Total.Equal(money("10.00")) {
		t.Errorf("total = %s, want 10.00", p.Total)
	}
	if !p.CodeApplied || p.InvalidCode {
		t.Errorf("code flags = applied %v invalid %v", p.CodeApplied, p.InvalidCode)
	}
}

func TestPreviewInvalidCodeIsNonFatal(t *testing.T) {
	f := newFixture(t)
	f.addBurgerPair(t)

	p, err := f.settlement.BuildPreview("BOGUS", "", false)
	if err != nil {
		t.Fatalf("preview failed: %v", err)
	}
	if !p.InvalidCode {
		t.Error("expected InvalidCode flag")
	}
	if !p.Discount.IsZero() {
		t.Errorf("discount = %s, want 0", p.Discount)
	}
}

func TestPreviewDoesNotMutate(t *testing.T) {
	f := newFixture(t)
	f.addBurgerPair(t)
	f.loyalty.Ensure("alice")
	f.loyalty.Credit("alice", 150)
	pattyBefore := f.ledger.Count(domain.IngredientDoublePatty)

	if _, err := f.settlement.BuildPreview("DISCOUNT10", "alice", true); err != nil {
		t.Fatalf("preview failed: %v", err)
	}
	if got := f.loyalty.Balance("alice"); got != 150 {
		t.Errorf("balance mutated by preview: %d", got)
	}
	if got := f.ledger.Count(domain.IngredientDoublePatty); got != pattyBefore {
		t.Errorf("inventory mutated by preview: %d", got)
	}
	if f.cart.Len() != 2 {
		t.Errorf("cart mutated by preview: len %d", f.cart.Len())
	}
}

func TestConfirmSettlesOrder(t *testing.T) {
	f := newFixture(t)
	f.addBurgerPair(t)
	afterAdd := map[domain.Ingredient]int{}
	for ing := range inventory.DefaultStock() {
		afterAdd[ing] = f.ledger.Count(ing)
	}

	p, err := f.settlement.BuildPreview("", "", false)
	if err != nil {
		t.Fatalf("preview failed: %v", err)
	}
	cred, err := f.settlement.Confirm(context.Background(), p)
	if err != nil {
		t.Fatalf("confirm failed: %v", err)
	}

	if f.cart.Len() != 0 {
		t.Errorf("cart length = %d, want 0 after settlement", f.cart.Len())
	}
	// Inventory stays consumed, not released.
	for ing, n := range afterAdd {
		if got := f.ledger.Count(ing); got != n {
			t.Errorf("%s count = %d, want %d", ing, got, n)
		}
	}
	if cred.Code == "" || cred.OrderNumber == 0 {
		t.Errorf("credential incomplete: %+v", cred)
	}
	if len(f.sink.stored) != 1 || f.sink.stored[0].Code != cred.Code {
		t.Errorf("sink stored = %+v", f.sink.stored)
	}
	if len(f.notifier.messages) != 1 || f.notifier.messages[0].OrderNumber != cred.OrderNumber {
		t.Errorf("notifier messages = %+v", f.notifier.messages)
	}
}

func TestConfirmOrderNumbersAreDistinct(t *testing.T) {
	f := newFixture(t)

	var seen []int
	for i := 0; i < 3; i++ {
		f.addBurgerPair(t)
		p, err := f.settlement.BuildPreview("", "", false)
		if err != nil {
			t.Fatalf("preview failed: %v", err)
		}
		cred, err := f.settlement.Confirm(context.Background(), p)
		if err != nil {
			t.Fatalf("confirm failed: %v", err)
		}
		for _, n := range seen {
			if n == cred.OrderNumber {
				t.Fatalf("order number %d repeated", n)
			}
		}
		seen = append(seen, cred.OrderNumber)
	}
}

func TestConfirmRedeemsAndCreditsLoyalty(t *testing.T) {
	f := newFixture(t)
	f.addBurgerPair(t)
	f.loyalty.Ensure("alice")
	f.loyalty.Credit("alice", 150)

	p, err := f.settlement.BuildPreview("DISCOUNT10", "alice", true)
	if err != nil {
		t.Fatalf("preview failed: %v", err)
	}
	// discount = 1.00 code + 5.00 redemption; total = 10 - 6 + 1 = 5.00.
	if !p.Total.Equal(money("5.00")) {
		t.Fatalf("total = %s, want 5.00", p.Total)
	}
	if _, err := f.settlement.Confirm(context.Background(), p); err != nil {
		t.Fatalf("confirm failed: %v", err)
	}
	// 150 - 100 redeemed + 5 earned (floor of total).
	if got := f.loyalty.Balance("alice"); got != 55 {
		t.Errorf("balance = %d, want 55", got)
	}
}

func TestConfirmSinkFailureLeavesStateIntact(t *testing.T) {
	f := newFixture(t)
	f.addBurgerPair(t)
	f.loyalty.Ensure("alice")
	f.loyalty.Credit("alice", 150)
	f.sink.fail = errors.New("disk full")

	p, err := f.settlement.BuildPreview("", "alice", true)
	if err != nil {
		t.Fatalf("preview failed: %v", err)
	}
	if _, err := f.settlement.Confirm(context.Background(), p); err == nil {
		t.Fatal("expected confirm to fail")
	}
	if f.cart.Len() != 2 {
		t.Errorf("cart length = %d, want 2", f.cart.Len())
	}
	if got := f.loyalty.Balance("alice"); got != 150 {
		t.Errorf("balance = %d, want 150", got)
	}
	if len(f.notifier.messages) != 0 {
		t.Errorf("notifier messages = %+v, want none", f.notifier.messages)
	}
}

func TestConfirmEmptyCart(t *testing.T) {
	f := newFixture(t)
	if _, err := f.settlement.Confirm(context.Background(), Preview{}); err != domain.ErrEmptyCart {
		t.Errorf("err = %v, want ErrEmptyCart", err)
	}
}
