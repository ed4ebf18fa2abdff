package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/miniorder/order-system/internal/api/metrics"
	"github.com/miniorder/order-system/internal/core/ports"
)

// OrderHandler handles HTTP requests for order operations. The owner id
// always comes from the authenticated token, never from the payload.
type OrderHandler struct {
	service ports.OrderService
}

func NewOrderHandler(service ports.OrderService) *OrderHandler {
	return &OrderHandler{service: service}
}

// Create handles POST /v1/orders.
//
// @Summary      Create a new order
// @Tags         orders
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      createOrderRequest  true  "Order details"
// @Success      201   {object}  orderResponse
// @Failure      400   {object}  map[string]string
// @Failure      401   {object}  map[string]string
// @Failure      422   {object}  map[string]string
// @Router       /v1/orders [post]
func (h *OrderHandler) Create(c echo.Context) error {
	userID, err := ctxUserID(c)
	if err != nil {
		return err
	}

	var req createOrderRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}

	order, err := h.service.CreateOrder(c.Request().Context(), ports.CreateOrderInput{
		OwnerID:     userID,
		ProductName: req.ProductName,
		Amount:      req.Amount,
	})
	if err != nil {
		return err
	}

	metrics.OrdersCreatedTotal.Inc()
	return c.JSON(http.StatusCreated, toOrderResponse(order))
}

// List handles GET /v1/orders, newest first, optionally filtered by status.
//
// @Summary      List the caller's orders
// @Tags         orders
// @Produce      json
// @Security     BearerAuth
// @Param        status  query     string  false  "Filter by status: pending, processing, completed, cancelled"
// @Success      200     {object}  listOrdersResponse
// @Failure      400     {object}  map[string]string
// @Failure      401     {object}  map[string]string
// @Router       /v1/orders [get]
func (h *OrderHandler) List(c echo.Context) error {
	userID, err := ctxUserID(c)
	if err != nil {
		return err
	}

	orders, err := h.service.ListOrders(c.Request().Context(), ports.ListOrdersInput{
		OwnerID:      userID,
		StatusFilter: c.QueryParam("status"),
	})
	if err != nil {
		return err
	}

	items := make([]orderResponse, 0, len(orders))
	for i := range orders {
		items = append(items, toOrderResponse(&orders[i]))
	}
	return c.JSON(http.StatusOK, listOrdersResponse{Orders: items, Total: len(items)})
}

// Cancel handles PATCH /v1/orders/:id/cancel.
//
// @Summary      Cancel an order
// @Tags         orders
// @Produce      json
// @Security     BearerAuth
// @Param        id  path      int  true  "Order id"
// @Success      200  {object}  orderResponse
// @Failure      400  {object}  map[string]string
// @Failure      401  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Failure      422  {object}  map[string]string
// @Router       /v1/orders/{id}/cancel [patch]
func (h *OrderHandler) Cancel(c echo.Context) error {
	userID, err := ctxUserID(c)
	if err != nil {
		return err
	}

	orderID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || orderID <= 0 {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid order id")
	}

	order, err := h.service.CancelOrder(c.Request().Context(), userID, orderID)
	if err != nil {
		return err
	}

	metrics.OrdersCancelledTotal.Inc()
	return c.JSON(http.StatusOK, toOrderResponse(order))
}
