// Package checkout builds receipt previews and settles confirmed orders.
//
// The flow is Idle -> PreviewBuilt -> settled or rejected. A preview never
// mutates inventory or loyalty; a rejected preview is discarded whole, so
// the discount code and redemption choice are collected again next time.
package checkout

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"burger-pos/internal/cart"
	"burger-pos/internal/catalog"
	"burger-pos/internal/common/logger"
	"burger-pos/internal/domain"
	"burger-pos/internal/loyalty"
	"burger-pos/internal/pricing"
)

// PickupSink persists a pickup credential keyed by order number. The
// engine only ever writes to it.
type PickupSink interface {
	Store(ctx context.Context, cred domain.PickupCredential) error
}

// Notifier announces a settled order downstream. Failures are logged,
// never surfaced: the order is already paid.
type Notifier interface {
	OrderSettled(ctx context.Context, msg domain.OrderSettledMessage) error
}

// NopNotifier is used when no broker is configured.
type NopNotifier struct{}

func (NopNotifier) OrderSettled(context.Context, domain.OrderSettledMessage) error { return nil }

// Preview is an itemized breakdown computed from cart state alone.
type Preview struct {
	Subtotal      decimal.Decimal
	BundleSavings decimal.Decimal
	Discount      decimal.Decimal
	Tax           decimal.Decimal
	Total         decimal.Decimal

	DiscountCode  string
	CodeApplied   bool
	InvalidCode   bool
	LoyaltyID     string
	RedeemApplied bool
}

type Settlement struct {
	cart     *cart.Cart
	catalog  *catalog.Catalog
	loyalty  *loyalty.Store
	sink     PickupSink
	notifier Notifier
	lg       *logger.Logger

	// Order numbers are seeded from the clock once and then count up, so
	// they cannot collide within a session. Cross-process collisions
	// remain possible and accepted.
	orderSeq int
}

func NewSettlement(c *cart.Cart, cat *catalog.Catalog, ls *loyalty.Store, sink PickupSink, n Notifier, lg *logger.Logger) *Settlement {
	if n == nil {
		n = NopNotifier{}
	}
	return &Settlement{
		cart:     c,
		catalog:  cat,
		loyalty:  ls,
		sink:     sink,
		notifier: n,
		lg:       lg,
		orderSeq: int(time.Now().Unix() % 1_000_000),
	}
}

// BuildPreview prices the cart as it stands: subtotal, pair bundle,
// discount code, optional loyalty redemption, tax. An unknown code is
// flagged on the preview and worth zero; the checkout still proceeds.
func (s *Settlement) BuildPreview(code, loyaltyID string, redeem bool) (Preview, error) {
	if s.cart.Len() == 0 {
		return Preview{}, domain.ErrEmptyCart
	}

	p := Preview{DiscountCode: code, LoyaltyID: loyaltyID}
	p.Subtotal = s.cart.Subtotal()

	adjusted, savings := pricing.ApplyBundles(p.Subtotal, s.cart.Entries(), s.catalog)
	p.Subtotal, p.BundleSavings = adjusted, savings

	discount, err := pricing.CodeDiscount(adjusted, code)
	if err != nil {
		p.InvalidCode = true
	} else if code != "" {
		p.CodeApplied = true
	}
	p.Discount = discount

	if redeem && loyaltyID != "" && s.loyalty.CanRedeem(loyaltyID, pricing.RedeemPoints) {
		p.Discount = p.Discount.Add(pricing.RedeemValue)
		p.RedeemApplied = true
	}

	p.Tax = pricing.Tax(adjusted)
	p.Total = adjusted.Sub(p.Discount).Add(p.Tax)
	return p, nil
}

// Confirm commits a previewed order: issues the pickup credential,
// redeems and credits loyalty points, notifies downstream and clears the
// cart. Reserved stock stays consumed. There is no undo.
func (s *Settlement) Confirm(ctx context.Context, p Preview) (domain.PickupCredential, error) {
	if s.cart.Len() == 0 {
		return domain.PickupCredential{}, domain.ErrEmptyCart
	}
	if p.RedeemApplied && !s.loyalty.CanRedeem(p.LoyaltyID, pricing.RedeemPoints) {
		return domain.PickupCredential{}, domain.ErrInsufficientPoints
	}

	cred := domain.PickupCredential{
		OrderNumber: s.nextOrderNumber(),
		IssuedAt:    time.Now().UTC(),
	}
	cred.Code = pickupCode(cred.OrderNumber)

	if err := s.sink.Store(ctx, cred); err != nil {
		return domain.PickupCredential{}, fmt.Errorf("store pickup code: %w", err)
	}

	if p.RedeemApplied {
		if err := s.loyalty.Redeem(p.LoyaltyID, pricing.RedeemPoints); err != nil {
			return domain.PickupCredential{}, err
		}
	}
	earned := 0
	if p.LoyaltyID != "" {
		earned = int(p.Total.IntPart())
		s.loyalty.Credit(p.LoyaltyID, earned)
	}

	msg := s.settledMessage(cred, p)
	if err := s.notifier.OrderSettled(ctx, msg); err != nil {
		s.lg.Error("order_settled_publish", err, map[string]any{"order_number": cred.OrderNumber})
	}

	s.cart.Clear()
	s.lg.Info("order_settled", map[string]any{
		"order_number": cred.OrderNumber,
		"total":        p.Total.StringFixed(2),
		"points":       earned,
	})
	return cred, nil
}

func (s *Settlement) nextOrderNumber() int {
	s.orderSeq++
	return s.orderSeq
}

// pickupCode mints the opaque code handed to the customer. The uuid
// suffix keeps codes unguessable from order numbers.
func pickupCode(orderNumber int) string {
	suffix := strings.SplitN(uuid.NewString(), "-", 2)[0]
	return fmt.Sprintf("BBG-%d-%s", orderNumber, suffix)
}

func (s *Settlement) settledMessage(cred domain.PickupCredential, p Preview) domain.OrderSettledMessage {
	entries := s.cart.Entries()
	items := make([]domain.SettledItemMsg, 0, len(entries))
	for _, e := range entries {
		items = append(items, domain.SettledItemMsg{
			Name:      e.Name,
			Quantity:  e.Quantity,
			UnitPrice: e.UnitPrice.StringFixed(2),
		})
	}
	return domain.OrderSettledMessage{
		OrderNumber: cred.OrderNumber,
		PickupCode:  cred.Code,
		Items:       items,
		Subtotal:    p.Subtotal.StringFixed(2),
		Discount:    p.Discount.StringFixed(2),
		Tax:         p.Tax.StringFixed(2),
		Total:       p.Total.StringFixed(2),
		LoyaltyID:   p.LoyaltyID,
		SettledAt:   cred.IssuedAt,
	}
}
