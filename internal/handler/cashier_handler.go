package handler

import (
	"errors"

	"go-pos-backend/internal/service"

	"github.com/gofiber/fiber/v2"
)

type CashierHandler struct {
	users service.UserService
}

func NewCashierHandler(users service.UserService) *CashierHandler {
	return &CashierHandler{users: users}
}

func (h *CashierHandler) List(c *fiber.Ctx) error {
	cashiers, err := h.users.GetCashiers()
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Internal Server Error"})
	}
	return c.JSON(cashiers)
}

func (h *CashierHandler) Get(c *fiber.Ctx) error {
	id, err := parseUUID(c.Params("id"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid cashier ID"})
	}

	cashier, err := h.users.GetCashier(id)
	if err != nil {
		return c.Status(404).JSON(fiber.Map{"error": "Cashier not found"})
	}
	return c.JSON(cashier)
}

func (h *CashierHandler) Create(c *fiber.Ctx) error {
	var req service.CreateCashierRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}

	cashier, err := h.users.CreateCashier(&req, getUserID(c))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": err.Error()})
	}

	return c.Status(201).JSON(fiber.Map{"message": "Cashier created", "data": cashier.ToResponse()})
}

func (h *CashierHandler) Update(c *fiber.Ctx) error {
	id, err := parseUUID(c.Params("id"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid cashier ID"})
	}

	var req service.UpdateCashierRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}

	cashier, err := h.users.UpdateCashier(id, &req, getUserID(c))
	if err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			return c.Status(404).JSON(fiber.Map{"error": err.Error()})
		}
		return c.Status(400).JSON(fiber.Map{"error": err.Error()})
	}

	return c.JSON(fiber.Map{"message": "Cashier updated", "data": cashier.ToResponse()})
}

func (h *CashierHandler) Delete(c *fiber.Ctx) error {
	id, err := parseUUID(c.Params("id"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid cashier ID"})
	}

	if err := h.users.DeleteCashier(id); err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Internal Server Error"})
	}

	return c.JSON(fiber.Map{"message": "Cashier deleted"})
}
