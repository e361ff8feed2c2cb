package handler

import (
	"go-pos-backend/internal/service"
	"go-pos-backend/internal/upload"

	"github.com/gofiber/fiber/v2"
)

type SettingsHandler struct {
	settings service.SettingsService
	uploads  *upload.Store
}

func NewSettingsHandler(settings service.SettingsService, uploads *upload.Store) *SettingsHandler {
	return &SettingsHandler{settings: settings, uploads: uploads}
}

func (h *SettingsHandler) Get(c *fiber.Ctx) error {
	settings, err := h.settings.GetSettings()
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Internal Server Error"})
	}
	return c.JSON(settings)
}

// UpdateStore takes a multipart form so the logo can ride along with the
// store details.
func (h *SettingsHandler) UpdateStore(c *fiber.Ctx) error {
	req := &service.StoreSettingsRequest{
		StoreName:    c.FormValue("store_name"),
		StoreAddress: c.FormValue("store_address"),
		StoreEmail:   c.FormValue("store_email"),
		StorePhone:   c.FormValue("store_phone"),
	}

	logoPath, err := h.uploads.SaveLogo(c, "logo")
	if err != nil {
		return c.Status(uploadStatus(err)).JSON(fiber.Map{"error": err.Error()})
	}

	settings, err := h.settings.UpdateStore(req, logoPath, getUserID(c))
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Internal Server Error"})
	}

	return c.JSON(fiber.Map{"message": "Store settings updated", "data": settings})
}

func (h *SettingsHandler) UpdateTax(c *fiber.Ctx) error {
	var req service.TaxSettingsRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}

	settings, err := h.settings.UpdateTax(&req, getUserID(c))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": err.Error()})
	}

	return c.JSON(fiber.Map{"message": "Tax settings updated", "data": settings})
}

func (h *SettingsHandler) UpdateNotifications(c *fiber.Ctx) error {
	var req service.NotificationSettingsRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}

	settings, err := h.settings.UpdateNotifications(&req, getUserID(c))
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Internal Server Error"})
	}

	return c.JSON(fiber.Map{"message": "Notification settings updated", "data": settings})
}

func (h *SettingsHandler) UpdateTheme(c *fiber.Ctx) error {
	var req struct {
		Theme string `json:"theme"`
	}
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}

	settings, err := h.settings.UpdateTheme(req.Theme, getUserID(c))
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Internal Server Error"})
	}

	return c.JSON(fiber.Map{"message": "Theme updated", "data": settings})
}
