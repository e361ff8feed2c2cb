package service

import (
	"errors"
	"fmt"
	"log"

	"github.com/google/uuid"

	"go-pos-backend/internal/model"
	"go-pos-backend/internal/repository"
	"go-pos-backend/internal/ws"
	"go-pos-backend/pkg/validator"
)

var (
	ErrSKUExists        = errors.New("SKU already exists")
	ErrCategoryNotFound = errors.New("category not found")
	ErrProductNotFound  = errors.New("product not found")
)

// ImageStore abstracts removal of an uploaded file; deletion failures are
// logged, never propagated.
type ImageStore interface {
	Remove(path string) error
}

type CatalogService interface {
	CreateCategory(req *CategoryRequest, actorID string) (*model.Category, error)
	UpdateCategory(id uuid.UUID, req *CategoryRequest, actorID string) (*model.Category, error)
	DeleteCategory(id uuid.UUID) error
	GetCategories(search string) ([]model.Category, error)
	GetCategory(id uuid.UUID) (*model.Category, error)

	CreateProduct(req *ProductRequest, imagePath, actorID string) (*model.Product, error)
	UpdateProduct(id uuid.UUID, req *ProductRequest, imagePath, actorID string) (*model.Product, error)
	DeleteProduct(id uuid.UUID) error
	GetInventory() (*Inventory, error)
	GetProduct(id uuid.UUID) (*model.Product, error)
	GetSellableProducts() ([]model.Product, error)
}

type CategoryRequest struct {
	Name        string `json:"name" validate:"required"`
	Description string `json:"description"`
}

type ProductRequest struct {
	Name         string     `json:"name" validate:"required"`
	SKU          string     `json:"sku" validate:"required"`
	CategoryID   *uuid.UUID `json:"category_id"`
	BuyingPrice  float64    `json:"buying_price" validate:"gte=0"`
	SellingPrice float64    `json:"selling_price" validate:"gte=0"`
	Quantity     int        `json:"quantity" validate:"gte=0"`
	MinStock     int        `json:"min_stock" validate:"gte=0"`
	Description  string     `json:"description"`
}

// Inventory is the admin inventory page payload: the full catalog plus the
// products sitting at or below their restock threshold.
type Inventory struct {
	Products   []model.Product  `json:"products"`
	Categories []model.Category `json:"categories"`
	Alerts     []model.Product  `json:"alerts"`
}

type catalogService struct {
	categoryRepo repository.CategoryRepository
	productRepo  repository.ProductRepository
	images       ImageStore
	hub          *ws.Hub
}

func NewCatalogService(categoryRepo repository.CategoryRepository, productRepo repository.ProductRepository, images ImageStore, hub *ws.Hub) CatalogService {
	return &catalogService{
		categoryRepo: categoryRepo,
		productRepo:  productRepo,
		images:       images,
		hub:          hub,
	}
}

func (s *catalogService) CreateCategory(req *CategoryRequest, actorID string) (*model.Category, error) {
	if errs := validator.ValidateStruct(req); len(errs) > 0 {
		return nil, errors.New("category name is required")
	}

	category := &model.Category{
		Name:        req.Name,
		Description: req.Description,
	}
	category.CreatedBy = actorID
	category.UpdatedBy = actorID

	if err := s.categoryRepo.Create(category); err != nil {
		return nil, err
	}
	return category, nil
}

func (s *catalogService) UpdateCategory(id uuid.UUID, req *CategoryRequest, actorID string) (*model.Category, error) {
	if errs := validator.ValidateStruct(req); len(errs) > 0 {
		return nil, errors.New("category name is required")
	}

	category, err := s.categoryRepo.FindByID(id)
	if err != nil {
		return nil, ErrCategoryNotFound
	}

	category.Name = req.Name
	category.Description = req.Description
	category.UpdatedBy = actorID

	if err := s.categoryRepo.Update(category); err != nil {
		return nil, err
	}
	return category, nil
}

func (s *catalogService) DeleteCategory(id uuid.UUID) error {
	return s.categoryRepo.Delete(id)
}

func (s *catalogService) GetCategories(search string) ([]model.Category, error) {
	return s.categoryRepo.FindAll(search)
}

func (s *catalogService) GetCategory(id uuid.UUID) (*model.Category, error) {
	return s.categoryRepo.FindByID(id)
}

func (s *catalogService) CreateProduct(req *ProductRequest, imagePath, actorID string) (*model.Product, error) {
	if err := validator.Validate(req); err != nil {
		return nil, err
	}

	existing, _ := s.productRepo.FindBySKU(req.SKU)
	if existing != nil {
		return nil, ErrSKUExists
	}

	minStock := req.MinStock
	if minStock == 0 {
		minStock = 5
	}

	product := &model.Product{
		Name:         req.Name,
		SKU:          req.SKU,
		CategoryID:   req.CategoryID,
		BuyingPrice:  req.BuyingPrice,
		SellingPrice: req.SellingPrice,
		Quantity:     req.Quantity,
		MinStock:     minStock,
		Status:       model.ProductStatusActive,
		Description:  req.Description,
		Image:        imagePath,
	}
	product.CreatedBy = actorID
	product.UpdatedBy = actorID

	if err := s.productRepo.Create(product); err != nil {
		return nil, err
	}

	s.hub.Publish("stock_update", fmt.Sprintf("product '%s' created", product.Name), map[string]interface{}{
		"action":   "product_created",
		"id":       product.ID,
		"sku":      product.SKU,
		"quantity": product.Quantity,
	})

	return product, nil
}

func (s *catalogService) UpdateProduct(id uuid.UUID, req *ProductRequest, imagePath, actorID string) (*model.Product, error) {
	if err := validator.Validate(req); err != nil {
		return nil, err
	}

	product, err := s.productRepo.FindByID(id)
	if err != nil {
		return nil, ErrProductNotFound
	}

	if req.SKU != product.SKU {
		existing, _ := s.productRepo.FindBySKU(req.SKU)
		if existing != nil {
			return nil, ErrSKUExists
		}
	}

	product.Name = req.Name
	product.SKU = req.SKU
	product.CategoryID = req.CategoryID
	product.BuyingPrice = req.BuyingPrice
	product.SellingPrice = req.SellingPrice
	product.Quantity = req.Quantity
	if req.MinStock > 0 {
		product.MinStock = req.MinStock
	}
	product.Description = req.Description
	product.UpdatedBy = actorID
	if imagePath != "" {
		product.Image = imagePath
	}

	if err := s.productRepo.Update(product); err != nil {
		return nil, err
	}

	s.hub.Publish("stock_update", fmt.Sprintf("product '%s' updated", product.Name), map[string]interface{}{
		"action":   "product_updated",
		"id":       product.ID,
		"sku":      product.SKU,
		"quantity": product.Quantity,
	})

	return product, nil
}

func (s *catalogService) DeleteProduct(id uuid.UUID) error {
	product, err := s.productRepo.FindByID(id)
	if err != nil {
		return ErrProductNotFound
	}

	if err := s.productRepo.Delete(id); err != nil {
		return err
	}

	// Best effort: a leaked file is not worth failing the request over.
	if product.Image != "" && s.images != nil {
		if err := s.images.Remove(product.Image); err != nil {
			log.Printf("failed to delete product image %s: %v", product.Image, err)
		}
	}

	s.hub.Publish("stock_update", fmt.Sprintf("product '%s' deleted", product.Name), map[string]interface{}{
		"action": "product_deleted",
		"id":     product.ID,
		"sku":    product.SKU,
	})

	return nil
}

func (s *catalogService) GetInventory() (*Inventory, error) {
	products, err := s.productRepo.FindAll()
	if err != nil {
		return nil, err
	}
	categories, err := s.categoryRepo.FindAll("")
	if err != nil {
		return nil, err
	}

	alerts := make([]model.Product, 0)
	for _, p := range products {
		if p.LowStock() {
			alerts = append(alerts, p)
		}
	}

	return &Inventory{
		Products:   products,
		Categories: categories,
		Alerts:     alerts,
	}, nil
}

func (s *catalogService) GetProduct(id uuid.UUID) (*model.Product, error) {
	return s.productRepo.FindByID(id)
}

func (s *catalogService) GetSellableProducts() ([]model.Product, error) {
	return s.productRepo.FindSellable()
}
