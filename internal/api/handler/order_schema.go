package handler

import (
	"time"

	"github.com/miniorder/order-system/internal/core/domain"
)

type createOrderRequest struct {
	ProductName string  `json:"product_name" validate:"required,min=1,max=200"`
	Amount      float64 `json:"amount"       validate:"required,gt=0"`
}

// orderResponse is the transport view of an order. Kept separate from the
// domain type so the JSON contract is not coupled to internal changes.
type orderResponse struct {
	ID          int64     `json:"id"`
	UserID      int64     `json:"user_id"`
	ProductName string    `json:"product_name"`
	Amount      float64   `json:"amount"`
	Status      string    `json:"status"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

type listOrdersResponse struct {
	Orders []orderResponse `json:"orders"`
	Total  int             `json:"total"`
}

func toOrderResponse(o *domain.Order) orderResponse {
	return orderResponse{
		ID:          o.ID,
		UserID:      o.UserID,
		ProductName: o.ProductName,
		Amount:      o.Amount,
		Status:      string(o.Status),
		CreatedAt:   o.CreatedAt,
		UpdatedAt:   o.UpdatedAt,
	}
}
