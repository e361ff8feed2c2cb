package repository

import (
	"time"

	"go-pos-backend/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// TransactionFilter narrows ledger queries. Nil fields are ignored.
type TransactionFilter struct {
	CashierID *uuid.UUID
	Start     *time.Time
	End       *time.Time
	Limit     int
}

type TransactionRepository interface {
	// Create persists the ledger entry header and items as one atomic write
	// on the supplied handle.
	Create(tx *gorm.DB, entry *model.Transaction) error
	FindByID(id uuid.UUID) (*model.Transaction, error)
	FindFiltered(filter TransactionFilter) ([]model.Transaction, error)
	// SumAndCountSince backs the POS live-stats endpoint without loading the
	// full ledger.
	SumAndCountSince(cashierID uuid.UUID, since time.Time) (float64, int64, error)
}

type transactionRepo struct {
	db *gorm.DB
}

func NewTransactionRepo(db *gorm.DB) TransactionRepository {
	return &transactionRepo{db}
}

func (r *transactionRepo) Create(tx *gorm.DB, entry *model.Transaction) error {
	return tx.Create(entry).Error
}

func (r *transactionRepo) FindByID(id uuid.UUID) (*model.Transaction, error) {
	var entry model.Transaction
	err := r.db.Preload("Items").Preload("Items.Product").Preload("Cashier").
		First(&entry, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &entry, nil
}

func (r *transactionRepo) FindFiltered(filter TransactionFilter) ([]model.Transaction, error) {
	var entries []model.Transaction
	query := r.db.Preload("Items").Preload("Items.Product").Preload("Cashier").
		Order("created_at DESC")

	if filter.CashierID != nil {
		query = query.Where("cashier_id = ?", *filter.CashierID)
	}
	if filter.Start != nil {
		query = query.Where("created_at >= ?", *filter.Start)
	}
	if filter.End != nil {
		query = query.Where("created_at <= ?", *filter.End)
	}
	if filter.Limit > 0 {
		query = query.Limit(filter.Limit)
	}

	err := query.Find(&entries).Error
	return entries, err
}

func (r *transactionRepo) SumAndCountSince(cashierID uuid.UUID, since time.Time) (float64, int64, error) {
	var total float64
	err := r.db.Model(&model.Transaction{}).
		Where("cashier_id = ? AND created_at >= ? AND status = ?", cashierID, since, model.TransactionCompleted).
		Select("COALESCE(SUM(total_amount), 0)").
		Scan(&total).Error
	if err != nil {
		return 0, 0, err
	}

	var count int64
	err = r.db.Model(&model.Transaction{}).
		Where("cashier_id = ? AND created_at >= ? AND status = ?", cashierID, since, model.TransactionCompleted).
		Count(&count).Error
	if err != nil {
		return 0, 0, err
	}

	return total, count, nil
}
