package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

// LowStockThreshold is the stock level at which a product shows up on the dashboard.
const LowStockThreshold = 5

// AdminStats holds the KPI counters for the admin dashboard.
type AdminStats struct {
	PendingOrders      int             `json:"pendingOrders"`
	TotalOrders        int             `json:"totalOrders"`
	Revenue            decimal.Decimal `json:"revenue"` // non-cancelled orders
	ActiveProducts     int             `json:"activeProducts"`
	LowStockProducts   int             `json:"lowStockProducts"`
	NewContactMessages int             `json:"newContactMessages"`
}

// GetDashboardStats returns KPI data for the admin dashboard
// GET /api/admin/dashboard-stats
func (h *Handlers) GetDashboardStats(c *gin.Context) {
	ctx := c.Request.Context()
	stats := AdminStats{}

	// 1. Orders & Revenue
	err := h.DB.QueryRowContext(ctx, `
		SELECT COUNT(*),
		       COALESCE(SUM(status = 'pending'), 0),
		       COALESCE(SUM(CASE WHEN status <> 'cancelled' THEN total_amount END), 0)
		FROM orders`).Scan(&stats.TotalOrders, &stats.PendingOrders, &stats.Revenue)
	if err != nil {
		h.Log.Error().Err(err).Msg("dashboard: count orders")
		fail(c, http.StatusInternalServerError, "Failed to count orders")
		return
	}

	// 2. Catalog
	err = h.DB.QueryRowContext(ctx, `
		SELECT COUNT(*), COALESCE(SUM(stock_quantity <= ?), 0)
		FROM products
		WHERE is_active = 1`, LowStockThreshold).Scan(&stats.ActiveProducts, &stats.LowStockProducts)
	if err != nil {
		h.Log.Error().Err(err).Msg("dashboard: count products")
		fail(c, http.StatusInternalServerError, "Failed to count products")
		return
	}

	// 3. Unread contact messages
	err = h.DB.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM contact_messages WHERE status = 'new'").Scan(&stats.NewContactMessages)
	if err != nil {
		h.Log.Error().Err(err).Msg("dashboard: count messages")
		fail(c, http.StatusInternalServerError, "Failed to count messages")
		return
	}

	c.JSON(http.StatusOK, stats)
}
