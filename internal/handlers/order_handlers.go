package handlers

import (
	"database/sql"
	"errors"
	"net/http"

	"github.com/01moynul/fashionhub/internal/models"
	"github.com/01moynul/fashionhub/internal/orders"
	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

const placeOrderFailedMsg = "Failed to place order. Please try again later."

//
// --- Storefront Checkout ---
//

// PlaceOrder is the handler for POST /api/orders
func (h *Handlers) PlaceOrder(c *gin.Context) {
	var req orders.PlaceOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.CustomerName != nil {
		name := sanitize(*req.CustomerName, 100)
		req.CustomerName = &name
	}
	for i := range req.Items {
		if color := req.Items[i].Color; color != nil {
			clean := sanitize(*color, 50)
			req.Items[i].Color = &clean
		}
	}

	orderID, err := h.Orders.PlaceOrder(c.Request.Context(), req)
	if err != nil {
		status, msg := orderErrorResponse(err)
		fail(c, status, msg)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"orderId": orderID,
		"message": "Order placed successfully",
	})
}

// orderErrorResponse maps engine errors to a status and a client-safe message.
func orderErrorResponse(err error) (int, string) {
	var (
		vErr     *orders.ValidationError
		nfErr    *orders.NotFoundError
		stockErr *orders.InsufficientStockError
	)
	switch {
	case errors.As(err, &vErr):
		return http.StatusBadRequest, vErr.Error()
	case errors.As(err, &nfErr):
		return http.StatusNotFound, nfErr.Error()
	case errors.As(err, &stockErr):
		return http.StatusConflict, stockErr.Error()
	default:
		return http.StatusInternalServerError, placeOrderFailedMsg
	}
}

//
// --- Admin: Order Review ---
//

// OrderSummary is an order row plus its line count.
type OrderSummary struct {
	models.Order
	ItemCount int `json:"item_count"`
}

// OrderLine is an order item joined with the product's current name.
type OrderLine struct {
	models.OrderItem
	ProductName *string `json:"product_name"`
}

// ListOrders is the handler for GET /api/admin/orders?status=
func (h *Handlers) ListOrders(c *gin.Context) {
	query := `
		SELECT o.order_id, o.customer_name, o.total_amount, o.order_date, o.status, COUNT(oi.item_id)
		FROM orders o
		LEFT JOIN order_items oi ON oi.order_id = o.order_id`
	var args []interface{}
	if status := c.Query("status"); status != "" {
		if !models.ValidOrderStatus(status) {
			fail(c, http.StatusBadRequest, "Invalid status filter")
			return
		}
		query += " WHERE o.status = ?"
		args = append(args, status)
	}
	query += " GROUP BY o.order_id ORDER BY o.order_date DESC, o.order_id DESC"

	rows, err := h.DB.QueryContext(c.Request.Context(), query, args...)
	if err != nil {
		h.Log.Error().Err(err).Msg("list orders")
		fail(c, http.StatusInternalServerError, "Failed to fetch orders")
		return
	}
	defer rows.Close()

	list := []OrderSummary{}
	for rows.Next() {
		var o OrderSummary
		if err := rows.Scan(&o.ID, &o.CustomerName, &o.TotalAmount, &o.OrderDate, &o.Status, &o.ItemCount); err != nil {
			h.Log.Error().Err(err).Msg("scan order")
			fail(c, http.StatusInternalServerError, "Failed to fetch orders")
			return
		}
		list = append(list, o)
	}
	if err := rows.Err(); err != nil {
		h.Log.Error().Err(err).Msg("iterate orders")
		fail(c, http.StatusInternalServerError, "Failed to fetch orders")
		return
	}

	c.JSON(http.StatusOK, list)
}

// GetOrder is the handler for GET /api/admin/orders/:id
func (h *Handlers) GetOrder(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}
	ctx := c.Request.Context()

	var order models.Order
	err := h.DB.QueryRowContext(ctx,
		"SELECT order_id, customer_name, total_amount, order_date, status FROM orders WHERE order_id = ?", id,
	).Scan(&order.ID, &order.CustomerName, &order.TotalAmount, &order.OrderDate, &order.Status)
	if errors.Is(err, sql.ErrNoRows) {
		fail(c, http.StatusNotFound, "Order not found")
		return
	}
	if err != nil {
		h.Log.Error().Err(err).Int64("order_id", id).Msg("get order")
		fail(c, http.StatusInternalServerError, "Failed to fetch order")
		return
	}

	rows, err := h.DB.QueryContext(ctx, `
		SELECT oi.item_id, oi.order_id, oi.product_id, oi.color_name, oi.quantity, oi.unit_price, p.product_name
		FROM order_items oi
		LEFT JOIN products p ON p.product_id = oi.product_id
		WHERE oi.order_id = ?
		ORDER BY oi.item_id`, id)
	if err != nil {
		h.Log.Error().Err(err).Int64("order_id", id).Msg("get order items")
		fail(c, http.StatusInternalServerError, "Failed to fetch order")
		return
	}
	defer rows.Close()

	items := []OrderLine{}
	for rows.Next() {
		var it OrderLine
		var name sql.NullString
		if err := rows.Scan(&it.ID, &it.OrderID, &it.ProductID, &it.ColorName, &it.Quantity, &it.UnitPrice, &name); err != nil {
			h.Log.Error().Err(err).Msg("scan order item")
			fail(c, http.StatusInternalServerError, "Failed to fetch order")
			return
		}
		if name.Valid {
			it.ProductName = &name.String
		}
		items = append(items, it)
	}
	if err := rows.Err(); err != nil {
		h.Log.Error().Err(err).Msg("iterate order items")
		fail(c, http.StatusInternalServerError, "Failed to fetch order")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"order":    order,
		"items":    items,
		"subtotal": lineTotal(items),
	})
}

func lineTotal(items []OrderLine) decimal.Decimal {
	sum := decimal.Zero
	for _, it := range items {
		sum = sum.Add(it.UnitPrice.Mul(decimal.NewFromInt(int64(it.Quantity))))
	}
	return sum.Round(2)
}

// UpdateOrderStatusInput defines the JSON input for changing an order's status.
type UpdateOrderStatusInput struct {
	Status string `json:"status" binding:"required,oneof=pending confirmed shipped delivered cancelled"`
}

// UpdateOrderStatus is the handler for PATCH /api/admin/orders/:id/status
// Stock is not restored on cancellation.
func (h *Handlers) UpdateOrderStatus(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}

	var input UpdateOrderStatusInput
	if err := c.ShouldBindJSON(&input); err != nil {
		fail(c, http.StatusBadRequest, "Status must be one of pending, confirmed, shipped, delivered, cancelled")
		return
	}

	result, err := h.DB.ExecContext(c.Request.Context(),
		"UPDATE orders SET status = ? WHERE order_id = ?", input.Status, id)
	if err != nil {
		h.Log.Error().Err(err).Int64("order_id", id).Msg("update order status")
		fail(c, http.StatusInternalServerError, "Failed to update order")
		return
	}
	if n, err := result.RowsAffected(); err == nil && n == 0 &&
		!h.rowExists(c.Request.Context(), "SELECT 1 FROM orders WHERE order_id = ?", id) {
		fail(c, http.StatusNotFound, "Order not found")
		return
	}

	h.Log.Info().Int64("order_id", id).Str("status", input.Status).Msg("order status updated")
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Order status updated"})
}
