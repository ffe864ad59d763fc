package client

import (
	"context"

	"github.com/dmitrijs2005/bookstore/internal/client/models"
)

func (a *API) AdminBooks(ctx context.Context) ([]models.Book, error) {
	return getList[models.Book](ctx, a, "admin books", "/api/admin/books")
}

func (a *API) AdminUsers(ctx context.Context) ([]models.AdminUser, error) {
	return getList[models.AdminUser](ctx, a, "admin users", "/api/admin/users")
}

func (a *API) AdminOrders(ctx context.Context) ([]models.Order, error) {
	return getList[models.Order](ctx, a, "admin orders", "/api/admin/orders")
}

func (a *API) UpdateOrderStatus(ctx context.Context, orderID int64, status string) error {
	if err := requireID("order", orderID); err != nil {
		return err
	}
	st, err := models.ParseOrderStatus(status)
	if err != nil {
		return err
	}
	return wrap("update order status", a.put(ctx, "/api/admin/orders/"+id(orderID), models.OrderStatusUpdate{Status: st}, nil))
}
