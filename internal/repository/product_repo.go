package repository

import (
	"errors"

	"go-pos-backend/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ErrInsufficientStock signals that a conditional decrement would drive a
// product's quantity negative.
var ErrInsufficientStock = errors.New("insufficient stock remaining")

type ProductRepository interface {
	Create(product *model.Product) error
	FindAll() ([]model.Product, error)
	FindByCategory(categoryID uuid.UUID) ([]model.Product, error)
	FindSellable() ([]model.Product, error)
	FindByID(id uuid.UUID) (*model.Product, error)
	FindBySKU(sku string) (*model.Product, error)
	Update(product *model.Product) error
	Delete(id uuid.UUID) error
	Count() (int64, error)
	CountLowStock() (int64, error)

	// DecrementStock atomically subtracts qty guarded against going negative.
	// Runs on the supplied handle so it can join a larger transaction.
	DecrementStock(tx *gorm.DB, id uuid.UUID, qty int) error
}

type productRepo struct {
	db *gorm.DB
}

func NewProductRepo(db *gorm.DB) ProductRepository {
	return &productRepo{db}
}

func (r *productRepo) Create(product *model.Product) error {
	return r.db.Create(product).Error
}

func (r *productRepo) FindAll() ([]model.Product, error) {
	var products []model.Product
	err := r.db.Preload("Category").Order("name ASC").Find(&products).Error
	return products, err
}

func (r *productRepo) FindByCategory(categoryID uuid.UUID) ([]model.Product, error) {
	var products []model.Product
	err := r.db.Preload("Category").Where("category_id = ?", categoryID).Order("name ASC").Find(&products).Error
	return products, err
}

// FindSellable returns only products the POS screen can ring up.
func (r *productRepo) FindSellable() ([]model.Product, error) {
	var products []model.Product
	err := r.db.Preload("Category").Where("quantity > 0").Order("name ASC").Find(&products).Error
	return products, err
}

func (r *productRepo) FindByID(id uuid.UUID) (*model.Product, error) {
	var product model.Product
	if err := r.db.Preload("Category").First(&product, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &product, nil
}

func (r *productRepo) FindBySKU(sku string) (*model.Product, error) {
	var product model.Product
	if err := r.db.First(&product, "sku = ?", sku).Error; err != nil {
		return nil, err
	}
	return &product, nil
}

func (r *productRepo) Update(product *model.Product) error {
	return r.db.Save(product).Error
}

func (r *productRepo) Delete(id uuid.UUID) error {
	return r.db.Delete(&model.Product{}, "id = ?", id).Error
}

func (r *productRepo) Count() (int64, error) {
	var count int64
	err := r.db.Model(&model.Product{}).Count(&count).Error
	return count, err
}

func (r *productRepo) CountLowStock() (int64, error) {
	var count int64
	err := r.db.Model(&model.Product{}).Where("quantity <= min_stock").Count(&count).Error
	return count, err
}

func (r *productRepo) DecrementStock(tx *gorm.DB, id uuid.UUID, qty int) error {
	res := tx.Model(&model.Product{}).
		Where("id = ? AND quantity >= ?", id, qty).
		UpdateColumn("quantity", gorm.Expr("quantity - ?", qty))
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrInsufficientStock
	}
	return nil
}
