package ports

import (
	"context"

	"github.com/miniorder/order-system/internal/core/domain"
)

// CreateOrderInput carries the data needed to create a new order. OwnerID is
// resolved from the caller's credentials by the transport layer and is
// trusted here.
type CreateOrderInput struct {
	OwnerID     int64
	ProductName string
	Amount      float64
}

// ListOrdersInput carries the parameters for the list operation.
// StatusFilter is the raw query value; empty means all statuses.
type ListOrdersInput struct {
	OwnerID      int64
	StatusFilter string
}

// OrderService is the lifecycle engine: the sole authority for validating
// and applying order state transitions.
type OrderService interface {
	CreateOrder(ctx context.Context, input CreateOrderInput) (*domain.Order, error)
	ListOrders(ctx context.Context, input ListOrdersInput) ([]domain.Order, error)
	CancelOrder(ctx context.Context, ownerID, orderID int64) (*domain.Order, error)
	// AdvancePendingOrders is the batch sweep invoked by the background
	// scheduler; it returns the number of orders advanced.
	AdvancePendingOrders(ctx context.Context) (int64, error)
}
