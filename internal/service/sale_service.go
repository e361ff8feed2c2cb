package service

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"go-pos-backend/internal/cache"
	"go-pos-backend/internal/model"
	"go-pos-backend/internal/repository"
	"go-pos-backend/internal/ws"
)

var (
	ErrEmptyCart         = errors.New("cart is empty")
	ErrInsufficientStock = repository.ErrInsufficientStock
)

// CartLine is one POS cart row. OverridePrice, when present, replaces
// SellingPrice as the charged unit price.
type CartLine struct {
	ProductID     *uuid.UUID `json:"product"`
	Quantity      int        `json:"quantity"`
	SellingPrice  float64    `json:"sellingPrice"`
	CostPrice     float64    `json:"costPrice"`
	OverridePrice *float64   `json:"overridePrice"`
}

type CompleteSaleRequest struct {
	Cart          []CartLine `json:"cart"`
	PaymentMethod string     `json:"paymentMethod"`
}

// SaleService turns a validated cart into one immutable ledger entry. The
// header and its items are written in a single database transaction, so a
// failed sale leaves no partial state.
//
// Deliberately not enforced (matching the POS contract): price-against-
// catalog validation and duplicate-submission detection. Stock decrement is
// an opt-in extension (enforceStock): an atomic conditional decrement per
// line that aborts the whole sale if any product would go negative.
type SaleService interface {
	CompleteSale(ctx context.Context, cashierID uuid.UUID, req *CompleteSaleRequest) (*model.Transaction, error)
}

type saleService struct {
	db               *gorm.DB
	transactionRepo  repository.TransactionRepository
	productRepo      repository.ProductRepository
	notificationRepo repository.NotificationRepository
	statsCache       cache.StatsCache
	hub              *ws.Hub
	enforceStock     bool
}

func NewSaleService(
	db *gorm.DB,
	transactionRepo repository.TransactionRepository,
	productRepo repository.ProductRepository,
	notificationRepo repository.NotificationRepository,
	statsCache cache.StatsCache,
	hub *ws.Hub,
	enforceStock bool,
) SaleService {
	return &saleService{
		db:               db,
		transactionRepo:  transactionRepo,
		productRepo:      productRepo,
		notificationRepo: notificationRepo,
		statsCache:       statsCache,
		hub:              hub,
		enforceStock:     enforceStock,
	}
}

func (s *saleService) CompleteSale(ctx context.Context, cashierID uuid.UUID, req *CompleteSaleRequest) (*model.Transaction, error) {
	if len(req.Cart) == 0 {
		return nil, ErrEmptyCart
	}

	entry := &model.Transaction{
		CashierID:     cashierID,
		PaymentMethod: req.PaymentMethod,
		Status:        model.TransactionCompleted,
	}
	entry.CreatedBy = cashierID.String()
	entry.UpdatedBy = cashierID.String()

	for _, line := range req.Cart {
		price := line.SellingPrice
		if line.OverridePrice != nil {
			price = *line.OverridePrice
		}

		item := model.TransactionItem{
			ProductID:   line.ProductID,
			ProductName: s.resolveProductName(line.ProductID),
			Quantity:    line.Quantity,
			Price:       price,
			CostPrice:   line.CostPrice,
			TotalAmount: float64(line.Quantity) * price,
			Profit:      (price - line.CostPrice) * float64(line.Quantity),
		}

		entry.TotalAmount += item.TotalAmount
		entry.Profit += item.Profit
		entry.Items = append(entry.Items, item)
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if s.enforceStock {
			for _, line := range req.Cart {
				if line.ProductID == nil || line.Quantity <= 0 {
					continue
				}
				if err := s.productRepo.DecrementStock(tx, *line.ProductID, line.Quantity); err != nil {
					return err
				}
			}
		}
		return s.transactionRepo.Create(tx, entry)
	})
	if err != nil {
		return nil, err
	}

	// Reload with product references resolved for the success payload.
	persisted, err := s.transactionRepo.FindByID(entry.ID)
	if err != nil {
		persisted = entry
	}

	s.recordSaleSideEffects(ctx, cashierID, persisted)

	return persisted, nil
}

// resolveProductName snapshots the display name at sale time so reports
// survive later catalog edits or deletions. A missing reference stays empty
// and aggregates under the "Unknown" sentinel.
func (s *saleService) resolveProductName(productID *uuid.UUID) string {
	if productID == nil {
		return ""
	}
	product, err := s.productRepo.FindByID(*productID)
	if err != nil {
		return ""
	}
	return product.Name
}

// recordSaleSideEffects runs after commit; everything here is advisory and
// must not fail the already-persisted sale.
func (s *saleService) recordSaleSideEffects(ctx context.Context, cashierID uuid.UUID, entry *model.Transaction) {
	s.statsCache.Invalidate(ctx, liveStatsKey(cashierID))

	message := fmt.Sprintf("Sale of %.2f recorded via %s", entry.TotalAmount, entry.PaymentMethod)

	notification := &model.Notification{
		Title:     "Sale completed",
		Message:   message,
		Type:      model.NotifySale,
		CashierID: &cashierID,
	}
	if err := s.notificationRepo.Create(notification); err != nil {
		log.Printf("failed to record sale notification: %v", err)
	}

	s.hub.Publish("sale_completed", message, map[string]interface{}{
		"transaction_id": entry.ID,
		"cashier_id":     cashierID,
		"total_amount":   entry.TotalAmount,
		"payment_method": entry.PaymentMethod,
	})
}
