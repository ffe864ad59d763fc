package cli

import (
	"context"

	"github.com/dmitrijs2005/bookstore/internal/client/models"
)

func (a *App) cmdCart(ctx context.Context, _ []string) error {
	items, err := load(a, "cart", func() ([]models.CartItem, error) { return a.api.Cart(ctx) })
	if err != nil {
		return err
	}
	a.renderCart(items)
	return nil
}

func (a *App) cmdAddToCart(ctx context.Context, args []string) error {
	bookID, err := parseID(args[0])
	if err != nil {
		return err
	}
	qty := 1
	if len(args) > 1 {
		if qty, err = parseCount(args[1]); err != nil {
			return err
		}
	}

	if err := loadErr(a, "cart", func() error {
		return a.api.AddToCart(ctx, models.AddToCart{BookID: bookID, Quantity: qty})
	}); err != nil {
		return err
	}
	a.refreshCartCount(ctx)
	a.println("Added to cart.")
	return nil
}

func (a *App) cmdQuantity(ctx context.Context, args []string) error {
	itemID, err := parseID(args[0])
	if err != nil {
		return err
	}
	qty, err := parseCount(args[1])
	if err != nil {
		return err
	}

	res, err := load(a, "cart", func() (*models.CartUpdateResult, error) {
		return a.api.UpdateCartItem(ctx, itemID, qty)
	})
	if err != nil {
		return err
	}
	a.refreshCartCount(ctx)
	a.printf("Quantity set to %d.\n", res.Quantity)
	return nil
}

func (a *App) cmdRemove(ctx context.Context, args []string) error {
	itemID, err := parseID(args[0])
	if err != nil {
		return err
	}
	if err := loadErr(a, "cart", func() error { return a.api.RemoveCartItem(ctx, itemID) }); err != nil {
		return err
	}
	a.refreshCartCount(ctx)
	a.println("Removed from cart.")
	return nil
}

// cmdCheckout places an order for the whole cart and moves to the orders view.
func (a *App) cmdCheckout(ctx context.Context, _ []string) error {
	ok, err := Confirm(a.reader, "Place an order for everything in your cart?", a.out)
	if err != nil || !ok {
		return err
	}

	res, err := load(a, "order", func() (*models.OrderResult, error) { return a.api.PlaceOrder(ctx) })
	if err != nil {
		return err
	}
	a.refreshCartCount(ctx)
	a.printf("Order #%d placed, total %s.\n", res.OrderID, money(res.TotalAmount))
	a.history.Navigate("/orders")
	return nil
}

func (a *App) cmdOrders(ctx context.Context, _ []string) error {
	orders, err := load(a, "orders", func() ([]models.Order, error) { return a.api.Orders(ctx) })
	if err != nil {
		return err
	}
	a.renderOrders(orders, false)
	return nil
}
