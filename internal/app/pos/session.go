// Package pos runs the interactive register loop. It owns all prompting
// and rendering; the engine packages only ever see validated values.
package pos

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"burger-pos/internal/cart"
	"burger-pos/internal/catalog"
	"burger-pos/internal/checkout"
	"burger-pos/internal/common/logger"
	"burger-pos/internal/domain"
	"burger-pos/internal/inventory"
	"burger-pos/internal/loyalty"
)

// Session owns the engine state for one register: catalog, ledger, cart,
// loyalty balances and the settlement flow. No package globals.
type Session struct {
	catalog  *catalog.Catalog
	ledger   *inventory.Ledger
	cart     *cart.Cart
	loyalty  *loyalty.Store
	checkout *checkout.Settlement
	lg       *logger.Logger

	in  *bufio.Scanner
	out io.Writer

	loyaltyID string
}

func New(sink checkout.PickupSink, notifier checkout.Notifier, lg *logger.Logger) *Session {
	return NewWithIO(sink, notifier, lg, os.Stdin, os.Stdout)
}

func NewWithIO(sink checkout.PickupSink, notifier checkout.Notifier, lg *logger.Logger, in io.Reader, out io.Writer) *Session {
	cat := catalog.Default()
	ledger := inventory.NewLedger(inventory.DefaultStock())
	ct := cart.New(cat, ledger)
	ls := loyalty.NewStore()
	return &Session{
		catalog:  cat,
		ledger:   ledger,
		cart:     ct,
		loyalty:  ls,
		checkout: checkout.NewSettlement(ct, cat, ls, sink, notifier, lg),
		lg:       lg,
		in:       bufio.NewScanner(in),
		out:      out,
	}
}

// Run loops until the customer quits, input ends or the context is
// cancelled. Every command runs to completion before the next prompt.
func (s *Session) Run(ctx context.Context) error {
	fmt.Fprintln(s.out, "Welcome to the Beef Burger Co. menu!")
	for {
		if err := ctx.Err(); err != nil {
			return nil
		}
		s.printMenu()
		line, err := s.readLine("Enter item # or action: ")
		if err != nil {
			if errors.Is(err, io.EOF) {
				return nil
			}
			return err
		}
		if line == "" {
			continue
		}
		switch strings.ToUpper(line) {
		case "T":
			s.printToppings()
		case "R", "E":
			s.editCart(ctx)
		case "L":
			s.loyaltyFlow()
		case "C":
			s.checkoutFlow(ctx)
		case "Q":
			fmt.Fprintln(s.out, "Exiting. Goodbye!")
			return nil
		default:
			n, convErr := strconv.Atoi(line)
			if convErr != nil {
				fmt.Fprintln(s.out, "Invalid input. Try again.")
				continue
			}
			s.addItemFlow(n)
		}
	}
}

func (s *Session) printMenu() {
	fmt.Fprintln(s.out, "\n--- Beef Burger Menu ---")
	for i, it := range s.catalog.Items() {
		gf := ""
		if it.GlutenFreeAvailable {
			gf = " (GF Available)"
		}
		fmt.Fprintf(s.out, "%d. %s%s - %s  Allergens: %s\n",
			i+1, it.Name, gf, domain.FormatCurrency(it.Price), strings.Join(it.Allergens, ", "))
	}
	fmt.Fprintln(s.out, "T. Show Toppings & Prices")
	fmt.Fprintln(s.out, "R. Remove / Edit cart")
	fmt.Fprintln(s.out, "L. Loyalty / Enter ID")
	fmt.Fprintln(s.out, "C. Checkout")
	fmt.Fprintln(s.out, "Q. Quit")
}

func (s *Session) printToppings() {
	fmt.Fprintln(s.out, "\n--- Toppings & Extra Options ---")
	for _, t := range s.catalog.Toppings() {
		fmt.Fprintf(s.out, "- %s: %s\n", t.Name, domain.FormatCurrency(t.Price))
	}
	fmt.Fprintln(s.out)
}

func (s *Session) printCart() {
	entries := s.cart.Entries()
	if len(entries) == 0 {
		fmt.Fprintln(s.out, "\nYour cart is empty.")
		return
	}
	fmt.Fprintln(s.out, "\n--- Your Cart ---")
	for i, e := range entries {
		tops := "No extras"
		if len(e.Toppings) > 0 {
			tops = strings.Join(e.Toppings, ", ")
		}
		gf := ""
		if e.GlutenFree {
			gf = " GF"
		}
		fmt.Fprintf(s.out, "%d. %d x %s%s @ %s ea - %s | %s\n",
			i+1, e.Quantity, e.Name, gf,
			domain.FormatCurrency(e.UnitPrice), domain.FormatCurrency(e.LineTotal()), tops)
	}
	fmt.Fprintf(s.out, "Cart subtotal: %s\n", domain.FormatCurrency(s.cart.Subtotal()))
}

func (s *Session) addItemFlow(itemNum int) {
	item, err := s.catalog.ItemByIndex(itemNum)
	if err != nil {
		fmt.Fprintln(s.out, "Invalid item number.")
		return
	}
	qty, err := s.readInt("Quantity: ", false)
	if err != nil {
		return
	}
	glutenFree := false
	if item.GlutenFreeAvailable {
		choice, err := s.readChoice("Gluten-free bun? (Y/N): ", "Y", "N")
		if err != nil {
			return
		}
		glutenFree = choice == "Y"
	}
	s.printToppings()
	var toppings []string
	for {
		name, err := s.readLine("Add topping name or press Enter to finish: ")
		if err != nil || name == "" {
			break
		}
		if _, ok := s.catalog.Topping(name); !ok {
			fmt.Fprintln(s.out, "Invalid topping name. Try again or press Enter to finish.")
			continue
		}
		toppings = append(toppings, name)
		fmt.Fprintf(s.out, "Added %s.\n", name)
	}
	notes, err := s.readLine("Any notes (e.g., no onion)? Press Enter to skip: ")
	if err != nil {
		notes = ""
	}

	if _, err := s.cart.Add(item.Name, qty, toppings, glutenFree, notes); err != nil {
		if se, ok := domain.AsStockError(err); ok {
			fmt.Fprintf(s.out, "Sorry, insufficient %s. Try smaller qty or different item.\n", se.Ingredient)
		} else {
			fmt.Fprintln(s.out, "Could not add item:", err)
		}
		return
	}
	fmt.Fprintf(s.out, "Added %d x %s to cart.\n", qty, item.Name)
	s.lg.Debug("item_added", map[string]any{"item": item.Name, "quantity": qty})

	if s.cart.HasBurger() {
		s.offerMealDeal()
	}
}

func (s *Session) offerMealDeal() {
	choice, err := s.readChoice("Deal suggestion: Add Fries + Drink for $3 extra (Y/N)? ", "Y", "N")
	if err != nil || choice != "Y" {
		return
	}
	if _, err := s.cart.AddMealDeal(); err != nil {
		fmt.Fprintln(s.out, "Sorry, Fries+Drink is out of stock.")
		return
	}
	fmt.Fprintln(s.out, "Fries+Drink added as meal deal.")
}

func (s *Session) editCart(ctx context.Context) {
	s.printCart()
	if s.cart.Len() == 0 {
		return
	}
	idx, err := s.readInt("Enter item # to edit (0 to cancel): ", true)
	if err != nil || idx == 0 {
		return
	}
	if idx < 1 || idx > s.cart.Len() {
		fmt.Fprintln(s.out, "Invalid index.")
		return
	}
	fmt.Fprintln(s.out, "1. Change quantity")
	fmt.Fprintln(s.out, "2. Remove item")
	choice, err := s.readChoice("Choose (1/2): ", "1", "2")
	if err != nil {
		return
	}
	if choice == "2" {
		if err := s.cart.Remove(idx - 1); err != nil {
			fmt.Fprintln(s.out, "Invalid index.")
			return
		}
		fmt.Fprintln(s.out, "Item removed.")
		return
	}
	newQty, err := s.readInt("New quantity: ", false)
	if err != nil {
		return
	}
	if err := s.cart.ChangeQuantity(idx-1, newQty); err != nil {
		if se, ok := domain.AsStockError(err); ok {
			fmt.Fprintf(s.out, "Cannot change quantity: insufficient %s.\n", se.Ingredient)
		} else {
			fmt.Fprintln(s.out, "Cannot change quantity:", err)
		}
		return
	}
	fmt.Fprintln(s.out, "Quantity updated.")
}

func (s *Session) loyaltyFlow() {
	id, err := s.readLine("Enter loyalty ID (or press Enter to skip / new ID): ")
	if err != nil {
		return
	}
	if id == "" {
		s.loyaltyID = ""
		return
	}
	s.loyaltyID = id
	s.loyalty.Ensure(id)
	fmt.Fprintf(s.out, "Loyalty ID set: %s\n", id)
}

func (s *Session) checkoutFlow(ctx context.Context) {
	if s.cart.Len() == 0 {
		fmt.Fprintln(s.out, "Cart empty. Returning to menu.")
		return
	}
	code, err := s.readLine("Discount code (press Enter to skip): ")
	if err != nil {
		return
	}
	redeem := false
	if s.loyaltyID != "" {
		points := s.loyalty.Balance(s.loyaltyID)
		fmt.Fprintf(s.out, "Loyalty points: %d\n", points)
		if points >= 100 {
			choice, err := s.readChoice("Redeem 100 points for $5 off? (Y/N): ", "Y", "N")
			if err != nil {
				return
			}
			redeem = choice == "Y"
		}
	}

	preview, err := s.checkout.BuildPreview(code, s.loyaltyID, redeem)
	if err != nil {
		fmt.Fprintln(s.out, "Cart empty. Returning to menu.")
		return
	}
	if preview.InvalidCode {
		fmt.Fprintln(s.out, "Invalid discount code. No discount applied.")
	} else if preview.CodeApplied {
		fmt.Fprintln(s.out, "10% discount code applied.")
	}
	if preview.RedeemApplied {
		fmt.Fprintln(s.out, "100 points redeemed for $5 off.")
	}

	fmt.Fprintln(s.out, "\n--- RECEIPT PREVIEW ---")
	s.printCart()
	fmt.Fprintf(s.out, "SUBTOTAL: %s\n", domain.FormatCurrency(preview.Subtotal))
	if preview.Discount.IsPositive() {
		fmt.Fprintf(s.out, "DISCOUNT: -%s\n", domain.FormatCurrency(preview.Discount))
	}
	fmt.Fprintf(s.out, "TAX: %s\n", domain.FormatCurrency(preview.Tax))
	fmt.Fprintf(s.out, "TOTAL: %s\n", domain.FormatCurrency(preview.Total))

	confirm, err := s.readChoice("Confirm & Pay? (P = pay / R = edit): ", "P", "R")
	if err != nil {
		return
	}
	if confirm == "R" {
		// Preview discarded; amounts and choices are recollected next time.
		s.editCart(ctx)
		return
	}

	cred, err := s.checkout.Confirm(ctx, preview)
	if err != nil {
		s.lg.Error("checkout_failed", err, nil)
		fmt.Fprintln(s.out, "Checkout failed:", err)
		return
	}
	if s.loyaltyID != "" {
		earned := int(preview.Total.IntPart())
		fmt.Fprintf(s.out, "Earned %d loyalty points. Total: %d\n", earned, s.loyalty.Balance(s.loyaltyID))
	}
	fmt.Fprintf(s.out, "Order #%d paid. Pickup code: %s\n", cred.OrderNumber, cred.Code)
}

func (s *Session) readLine(prompt string) (string, error) {
	fmt.Fprint(s.out, prompt)
	if !s.in.Scan() {
		if err := s.in.Err(); err != nil {
			return "", err
		}
		return "", io.EOF
	}
	return strings.TrimSpace(s.in.Text()), nil
}

// readInt re-prompts until it gets a whole number in range; raw-text
// validation never reaches the engine.
func (s *Session) readInt(prompt string, allowZero bool) (int, error) {
	for {
		line, err := s.readLine(prompt)
		if err != nil {
			return 0, err
		}
		v, convErr := strconv.Atoi(line)
		if convErr == nil && (v > 0 || (allowZero && v == 0)) {
			return v, nil
		}
		if allowZero {
			fmt.Fprintln(s.out, "Please enter a whole number (0 or more).")
		} else {
			fmt.Fprintln(s.out, "Please enter a whole number greater than 0.")
		}
	}
}

func (s *Session) readChoice(prompt string, choices ...string) (string, error) {
	for {
		line, err := s.readLine(prompt)
		if err != nil {
			return "", err
		}
		up := strings.ToUpper(line)
		for _, c := range choices {
			if up == strings.ToUpper(c) {
				return up, nil
			}
		}
		fmt.Fprintln(s.out, "Invalid choice. Try:", strings.Join(choices, "/"))
	}
}
