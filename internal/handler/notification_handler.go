package handler

import (
	"go-pos-backend/internal/model"
	"go-pos-backend/internal/repository"
	"go-pos-backend/internal/service"

	"github.com/gofiber/fiber/v2"
)

type NotificationHandler struct {
	notifications service.NotificationService
}

func NewNotificationHandler(notifications service.NotificationService) *NotificationHandler {
	return &NotificationHandler{notifications: notifications}
}

// scopeFor resolves the caller's notification feed. Admins see every
// notification; cashiers only their own.
func scopeFor(c *fiber.Ctx) repository.NotificationScope {
	if getUserRole(c) == model.RoleAdmin {
		return repository.NotificationScope{}
	}

	scope := repository.NotificationScope{}
	if id, err := currentUserID(c); err == nil {
		scope.CashierID = &id
	}
	return scope
}

func (h *NotificationHandler) List(c *fiber.Ctx) error {
	notifications, err := h.notifications.List(scopeFor(c))
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Internal Server Error"})
	}
	return c.JSON(notifications)
}

func (h *NotificationHandler) Create(c *fiber.Ctx) error {
	var req service.NotificationRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}

	notification, err := h.notifications.Create(&req, scopeFor(c), getUserID(c))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": err.Error()})
	}

	return c.Status(201).JSON(fiber.Map{"message": "Notification created", "data": notification})
}

func (h *NotificationHandler) MarkRead(c *fiber.Ctx) error {
	id, err := parseUUID(c.Params("id"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid notification ID"})
	}

	if err := h.notifications.MarkRead(id); err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Internal Server Error"})
	}

	return c.JSON(fiber.Map{"message": "Notification marked as read"})
}

func (h *NotificationHandler) MarkAllRead(c *fiber.Ctx) error {
	if err := h.notifications.MarkAllRead(scopeFor(c)); err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Internal Server Error"})
	}
	return c.JSON(fiber.Map{"message": "All notifications marked as read"})
}

func (h *NotificationHandler) Clear(c *fiber.Ctx) error {
	if err := h.notifications.Clear(scopeFor(c)); err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Internal Server Error"})
	}
	return c.JSON(fiber.Map{"message": "Notifications cleared"})
}
