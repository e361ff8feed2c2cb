package handler

import (
	"errors"

	"go-pos-backend/internal/service"
	"go-pos-backend/internal/upload"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type ProductHandler struct {
	catalog service.CatalogService
	uploads *upload.Store
}

func NewProductHandler(catalog service.CatalogService, uploads *upload.Store) *ProductHandler {
	return &ProductHandler{catalog: catalog, uploads: uploads}
}

// productRequestFromForm builds the request from a multipart product form.
func productRequestFromForm(c *fiber.Ctx) *service.ProductRequest {
	req := &service.ProductRequest{
		Name:         c.FormValue("name"),
		SKU:          c.FormValue("sku"),
		BuyingPrice:  formFloat(c, "buying_price"),
		SellingPrice: formFloat(c, "selling_price"),
		Quantity:     formInt(c, "quantity"),
		MinStock:     formInt(c, "min_stock"),
		Description:  c.FormValue("description"),
	}
	if raw := c.FormValue("category_id"); raw != "" {
		if id, err := uuid.Parse(raw); err == nil {
			req.CategoryID = &id
		}
	}
	return req
}

func uploadStatus(err error) int {
	if errors.Is(err, upload.ErrFileTooLarge) || errors.Is(err, upload.ErrNotImage) {
		return 400
	}
	return 500
}

func (h *ProductHandler) Inventory(c *fiber.Ctx) error {
	inventory, err := h.catalog.GetInventory()
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Internal Server Error"})
	}
	return c.JSON(inventory)
}

func (h *ProductHandler) Get(c *fiber.Ctx) error {
	id, err := parseUUID(c.Params("id"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid product ID"})
	}

	product, err := h.catalog.GetProduct(id)
	if err != nil {
		return c.Status(404).JSON(fiber.Map{"error": "Product not found"})
	}
	return c.JSON(product)
}

func (h *ProductHandler) Create(c *fiber.Ctx) error {
	req := productRequestFromForm(c)

	imagePath, err := h.uploads.SaveProductImage(c, "image")
	if err != nil {
		return c.Status(uploadStatus(err)).JSON(fiber.Map{"error": err.Error()})
	}

	product, err := h.catalog.CreateProduct(req, imagePath, getUserID(c))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": err.Error()})
	}

	return c.Status(201).JSON(fiber.Map{"message": "Product created", "data": product})
}

func (h *ProductHandler) Update(c *fiber.Ctx) error {
	id, err := parseUUID(c.Params("id"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid product ID"})
	}

	req := productRequestFromForm(c)

	imagePath, err := h.uploads.SaveProductImage(c, "image")
	if err != nil {
		return c.Status(uploadStatus(err)).JSON(fiber.Map{"error": err.Error()})
	}

	product, err := h.catalog.UpdateProduct(id, req, imagePath, getUserID(c))
	if err != nil {
		if errors.Is(err, service.ErrProductNotFound) {
			return c.Status(404).JSON(fiber.Map{"error": err.Error()})
		}
		return c.Status(400).JSON(fiber.Map{"error": err.Error()})
	}

	return c.JSON(fiber.Map{"message": "Product updated", "data": product})
}

func (h *ProductHandler) Delete(c *fiber.Ctx) error {
	id, err := parseUUID(c.Params("id"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid product ID"})
	}

	if err := h.catalog.DeleteProduct(id); err != nil {
		if errors.Is(err, service.ErrProductNotFound) {
			return c.Status(404).JSON(fiber.Map{"error": err.Error()})
		}
		return c.Status(500).JSON(fiber.Map{"error": "Internal Server Error"})
	}

	return c.JSON(fiber.Map{"message": "Product deleted"})
}
