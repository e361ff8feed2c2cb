package handler

import (
	"errors"

	"go-pos-backend/internal/service"

	"github.com/gofiber/fiber/v2"
)

type POSHandler struct {
	catalog service.CatalogService
	sales   service.SaleService
	stats   service.StatsService
}

func NewPOSHandler(catalog service.CatalogService, sales service.SaleService, stats service.StatsService) *POSHandler {
	return &POSHandler{catalog: catalog, sales: sales, stats: stats}
}

// Products lists what the POS screen can sell: active products with stock
// on hand.
func (h *POSHandler) Products(c *fiber.Ctx) error {
	products, err := h.catalog.GetSellableProducts()
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Internal Server Error"})
	}
	return c.JSON(products)
}

// CompleteSale rings up the cart. The response keeps the legacy POS shape:
// {success, transaction} on the happy path, {success, message} on errors.
func (h *POSHandler) CompleteSale(c *fiber.Ctx) error {
	var req service.CompleteSaleRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"success": false, "message": "Invalid JSON"})
	}

	cashierID, err := currentUserID(c)
	if err != nil {
		return c.Status(401).JSON(fiber.Map{"success": false, "message": "Invalid session"})
	}

	transaction, err := h.sales.CompleteSale(c.Context(), cashierID, &req)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrEmptyCart):
			return c.Status(400).JSON(fiber.Map{"success": false, "message": "Cart is empty"})
		case errors.Is(err, service.ErrInsufficientStock):
			return c.Status(400).JSON(fiber.Map{"success": false, "message": err.Error()})
		default:
			return c.Status(500).JSON(fiber.Map{"success": false, "message": "Failed to complete sale"})
		}
	}

	return c.JSON(fiber.Map{"success": true, "transaction": transaction})
}

// LiveStats serves the POS ticker: today's personal totals, cached for a
// few seconds.
func (h *POSHandler) LiveStats(c *fiber.Ctx) error {
	cashierID, err := currentUserID(c)
	if err != nil {
		return c.Status(401).JSON(fiber.Map{"error": "Invalid session"})
	}

	live, err := h.stats.LiveStats(c.Context(), cashierID)
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Internal Server Error"})
	}
	return c.JSON(live)
}

// Transactions lists the cashier's own ledger entries, optionally bounded
// by date.
func (h *POSHandler) Transactions(c *fiber.Ctx) error {
	cashierID, err := currentUserID(c)
	if err != nil {
		return c.Status(401).JSON(fiber.Map{"error": "Invalid session"})
	}

	start := queryDate(c, "startDate")
	end := queryDate(c, "endDate")

	transactions, err := h.stats.CashierLedger(cashierID, start, end)
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Internal Server Error"})
	}
	return c.JSON(transactions)
}
