package models

import "fmt"

type CartItem struct {
	ID       int64   `json:"id"`
	Book     Book    `json:"book"`
	Quantity int     `json:"quantity"`
	Total    float64 `json:"total"`
}

// AddToCart is the POST /api/cart body.
type AddToCart struct {
	BookID   int64 `json:"book_id"`
	Quantity int   `json:"quantity"`
}

func (a AddToCart) Validate() error {
	if a.BookID <= 0 {
		return Invalid("book_id", "is required")
	}
	if a.Quantity < 1 {
		return Invalid("quantity", "must be at least 1")
	}
	return nil
}

type CartQuantity struct {
	Quantity int `json:"quantity"`
}

type CartUpdateResult struct {
	Message  string `json:"message"`
	Quantity int    `json:"quantity"`
}

type CartCount struct {
	Count int `json:"count"`
}

// CartTotal sums the item totals as reported by the service.
func CartTotal(items []CartItem) float64 {
	var total float64
	for _, it := range items {
		total += it.Total
	}
	return total
}

type OrderStatus string

const (
	OrderPending   OrderStatus = "pending"
	OrderCompleted OrderStatus = "completed"
	OrderCancelled OrderStatus = "cancelled"
)

func ParseOrderStatus(s string) (OrderStatus, error) {
	switch st := OrderStatus(s); st {
	case OrderPending, OrderCompleted, OrderCancelled:
		return st, nil
	default:
		return "", Invalid("status", fmt.Sprintf("%q is not one of pending, completed, cancelled", s))
	}
}

type OrderItem struct {
	BookTitle string  `json:"book_title"`
	Quantity  int     `json:"quantity"`
	Price     float64 `json:"price"`
}

type Order struct {
	ID          int64       `json:"id"`
	TotalAmount float64     `json:"total_amount"`
	Status      OrderStatus `json:"status"`
	CreatedAt   string      `json:"created_at"`
	Items       []OrderItem `json:"items,omitempty"`
	User        *Ref        `json:"user,omitempty"`
}

// OrderResult is the POST /api/orders response.
type OrderResult struct {
	Message     string  `json:"message"`
	OrderID     int64   `json:"order_id"`
	TotalAmount float64 `json:"total_amount"`
}

type OrderStatusUpdate struct {
	Status OrderStatus `json:"status"`
}
