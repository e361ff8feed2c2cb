package handler

import (
	"go-pos-backend/internal/service"

	"github.com/gofiber/fiber/v2"
)

type DashboardHandler struct {
	stats service.StatsService
}

func NewDashboardHandler(stats service.StatsService) *DashboardHandler {
	return &DashboardHandler{stats: stats}
}

// Admin serves the admin landing dashboard. Stats reads never fail the
// page; they degrade to zero values.
func (h *DashboardHandler) Admin(c *fiber.Ctx) error {
	return c.JSON(h.stats.AdminDashboard())
}

// Sales serves the admin sales page, unfiltered.
func (h *DashboardHandler) Sales(c *fiber.Ctx) error {
	return c.JSON(h.stats.SalesDashboard(nil, nil, nil))
}

// SalesFiltered narrows the sales page by date range and cashier.
func (h *DashboardHandler) SalesFiltered(c *fiber.Ctx) error {
	start := queryDate(c, "startDate")
	end := queryDate(c, "endDate")
	cashier := queryUUID(c, "cashier")
	return c.JSON(h.stats.SalesDashboard(start, end, cashier))
}

// Report serves the reports page with optional date, cashier and category
// filters.
func (h *DashboardHandler) Report(c *fiber.Ctx) error {
	start := queryDate(c, "startDate")
	end := queryDate(c, "endDate")
	cashier := queryUUID(c, "cashier")
	category := queryUUID(c, "category")
	return c.JSON(h.stats.Report(start, end, cashier, category))
}

// Cashier serves a cashier's personal sales dashboard.
func (h *DashboardHandler) Cashier(c *fiber.Ctx) error {
	userID, err := currentUserID(c)
	if err != nil {
		return c.Status(401).JSON(fiber.Map{"error": "Invalid session"})
	}
	return c.JSON(h.stats.CashierDashboard(userID))
}
