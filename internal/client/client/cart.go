package client

import (
	"context"

	"github.com/dmitrijs2005/bookstore/internal/client/models"
)

func (a *API) Cart(ctx context.Context) ([]models.CartItem, error) {
	return getList[models.CartItem](ctx, a, "get cart", "/api/cart")
}

func (a *API) AddToCart(ctx context.Context, req models.AddToCart) error {
	if err := req.Validate(); err != nil {
		return err
	}
	return wrap("add to cart", a.post(ctx, "/api/cart", req, nil))
}

// UpdateCartItem sets the quantity of a cart line. Stock shortages come
// back as an *APIError carrying the service's message.
func (a *API) UpdateCartItem(ctx context.Context, itemID int64, quantity int) (*models.CartUpdateResult, error) {
	if err := requireID("item", itemID); err != nil {
		return nil, err
	}
	if quantity < 1 {
		return nil, models.Invalid("quantity", "must be at least 1")
	}
	var res models.CartUpdateResult
	if err := a.put(ctx, "/api/cart/"+id(itemID), models.CartQuantity{Quantity: quantity}, &res); err != nil {
		return nil, wrap("update cart", err)
	}
	return &res, nil
}

func (a *API) RemoveCartItem(ctx context.Context, itemID int64) error {
	if err := requireID("item", itemID); err != nil {
		return err
	}
	return wrap("remove cart item", a.delete(ctx, "/api/cart/"+id(itemID), nil))
}

func (a *API) CartCount(ctx context.Context) (int, error) {
	var c models.CartCount
	if err := a.get(ctx, "/api/cart/count", &c); err != nil {
		return 0, wrap("cart count", err)
	}
	return c.Count, nil
}

// PlaceOrder turns the current cart into an order.
func (a *API) PlaceOrder(ctx context.Context) (*models.OrderResult, error) {
	var res models.OrderResult
	if err := a.post(ctx, "/api/orders", nil, &res); err != nil {
		return nil, wrap("place order", err)
	}
	return &res, nil
}

func (a *API) Orders(ctx context.Context) ([]models.Order, error) {
	return getList[models.Order](ctx, a, "list orders", "/api/orders")
}
