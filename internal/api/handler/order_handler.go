package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/khadamat/marketplace-api/internal/core/domain"
	"github.com/khadamat/marketplace-api/internal/core/ports"
)

// OrderHandler exposes buyer orders. Every route requires a session;
// visibility is decided per order by the order service.
type OrderHandler struct {
	orders ports.OrderService
}

func NewOrderHandler(orders ports.OrderService) *OrderHandler {
	return &OrderHandler{orders: orders}
}

type createOrderRequest struct {
	ServiceID    string `json:"service_id" validate:"required"`
	PaymentProof string `json:"payment_proof"`
}

type orderStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=pending in_progress delivered completed cancelled"`
}

type orderResponse struct {
	Success bool          `json:"success"`
	Order   *domain.Order `json:"order"`
}

type orderListResponse struct {
	Success bool           `json:"success"`
	Orders  []domain.Order `json:"orders"`
}

// Create places an order for a service. Buyers only.
//
// @Summary      Place an order
// @Tags         orders
// @Accept       json
// @Produce      json
// @Param        body  body      createOrderRequest  true  "Order payload"
// @Success      201   {object}  orderResponse
// @Failure      401   {object}  errorResponse
// @Failure      403   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Router       /v1/orders [post]
func (h *OrderHandler) Create(c echo.Context) error {
	claims, err := ctxClaims(c)
	if err != nil {
		return err
	}

	var req createOrderRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "البيانات المرسلة غير صالحة"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: err.Error()})
	}

	order, err := h.orders.Create(c.Request().Context(), claims, ports.CreateOrderInput{
		ServiceID:    req.ServiceID,
		PaymentProof: req.PaymentProof,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, orderResponse{Success: true, Order: order})
}

// Get returns one order, visible to its buyer, its seller, or an admin.
//
// @Summary      Fetch an order
// @Tags         orders
// @Produce      json
// @Param        id   path      string  true  "Order id"
// @Success      200  {object}  orderResponse
// @Failure      403  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /v1/orders/{id} [get]
func (h *OrderHandler) Get(c echo.Context) error {
	claims, err := ctxClaims(c)
	if err != nil {
		return err
	}

	order, err := h.orders.Get(c.Request().Context(), claims, c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, orderResponse{Success: true, Order: order})
}

// List returns the caller's orders, on either side of the trade.
//
// @Summary      List my orders
// @Tags         orders
// @Produce      json
// @Param        limit   query     int  false  "Page size (default 20, max 100)"
// @Param        offset  query     int  false  "Page offset"
// @Success      200     {object}  orderListResponse
// @Failure      401     {object}  errorResponse
// @Router       /v1/orders [get]
func (h *OrderHandler) List(c echo.Context) error {
	claims, err := ctxClaims(c)
	if err != nil {
		return err
	}

	limit, _ := strconv.Atoi(c.QueryParam("limit"))
	offset, _ := strconv.Atoi(c.QueryParam("offset"))

	orders, err := h.orders.ListMine(c.Request().Context(), claims, limit, offset)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, orderListResponse{Success: true, Orders: orders})
}

// UpdateStatus advances an order through its lifecycle. Seller or admin.
//
// @Summary      Update order status
// @Tags         orders
// @Accept       json
// @Produce      json
// @Param        id    path      string              true  "Order id"
// @Param        body  body      orderStatusRequest  true  "Target status"
// @Success      200   {object}  orderResponse
// @Failure      403   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Failure      422   {object}  errorResponse
// @Router       /v1/orders/{id}/status [put]
func (h *OrderHandler) UpdateStatus(c echo.Context) error {
	claims, err := ctxClaims(c)
	if err != nil {
		return err
	}

	var req orderStatusRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "البيانات المرسلة غير صالحة"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: err.Error()})
	}

	order, err := h.orders.UpdateStatus(c.Request().Context(), claims, c.Param("id"), domain.OrderStatus(req.Status))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, orderResponse{Success: true, Order: order})
}
