package service

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"

	"go-pos-backend/internal/cache"
	"go-pos-backend/internal/model"
	"go-pos-backend/internal/repository"
	"go-pos-backend/internal/stats"
)

const liveStatsTTL = 5 * time.Second

func liveStatsKey(cashierID uuid.UUID) string {
	return fmt.Sprintf("live_stats:%s:%s", cashierID, time.Now().Format("2006-01-02"))
}

// StatsService feeds every dashboard from the one shared aggregator, so the
// admin overview, sales page, reports and cashier dashboard can never drift
// apart on the same ledger.
//
// Dashboard reads degrade: on a storage failure the page gets zero-valued
// metrics and the error is logged, matching how the UI treats reporting as
// non-critical.
type StatsService interface {
	AdminDashboard() *AdminDashboard
	SalesDashboard(start, end *time.Time, cashierID *uuid.UUID) *SalesDashboard
	Report(start, end *time.Time, cashierID, categoryID *uuid.UUID) *Report
	CashierDashboard(cashierID uuid.UUID) *CashierDashboard
	LiveStats(ctx context.Context, cashierID uuid.UUID) (*LiveStats, error)
	CashierLedger(cashierID uuid.UUID, start, end *time.Time) ([]model.Transaction, error)
}

type AdminDashboard struct {
	Stats              stats.Metrics       `json:"stats"`
	TotalProducts      int64               `json:"total_products"`
	LowStock           int64               `json:"low_stock"`
	TotalCashiers      int64               `json:"total_cashiers"`
	RecentTransactions []model.Transaction `json:"recent_transactions"`
}

type SalesDashboard struct {
	Stats        stats.Metrics        `json:"stats"`
	Transactions []model.Transaction  `json:"transactions"`
	Cashiers     []model.UserResponse `json:"cashiers"`
}

type Report struct {
	Stats        stats.Metrics        `json:"stats"`
	Transactions []model.Transaction  `json:"transactions"`
	Inventory    []model.Product      `json:"inventory"`
	Cashiers     []model.UserResponse `json:"cashiers"`
	Categories   []model.Category     `json:"categories"`
}

type CashierDashboard struct {
	Stats              stats.Metrics       `json:"stats"`
	LowStock           int64               `json:"low_stock"`
	RecentTransactions []model.Transaction `json:"recent_transactions"`
}

type LiveStats struct {
	TotalSalesToday        float64 `json:"totalSalesToday"`
	TotalTransactionsToday int64   `json:"totalTransactionsToday"`
}

type statsService struct {
	transactionRepo repository.TransactionRepository
	productRepo     repository.ProductRepository
	userRepo        repository.UserRepository
	categoryRepo    repository.CategoryRepository
	statsCache      cache.StatsCache

	// now is injectable so trend buckets are reproducible in tests.
	now func() time.Time
}

func NewStatsService(
	transactionRepo repository.TransactionRepository,
	productRepo repository.ProductRepository,
	userRepo repository.UserRepository,
	categoryRepo repository.CategoryRepository,
	statsCache cache.StatsCache,
) StatsService {
	return &statsService{
		transactionRepo: transactionRepo,
		productRepo:     productRepo,
		userRepo:        userRepo,
		categoryRepo:    categoryRepo,
		statsCache:      statsCache,
		now:             time.Now,
	}
}

func (s *statsService) AdminDashboard() *AdminDashboard {
	now := s.now()
	start, end := dayBounds(now)

	entries, err := s.transactionRepo.FindFiltered(repository.TransactionFilter{Start: &start, End: &end})
	if err != nil {
		log.Printf("admin dashboard: failed to load transactions: %v", err)
		return &AdminDashboard{
			Stats:              stats.Aggregate(nil, now, stats.Hourly, 5),
			RecentTransactions: []model.Transaction{},
		}
	}

	dashboard := &AdminDashboard{
		Stats:              stats.Aggregate(toViews(entries), now, stats.Hourly, 5),
		RecentTransactions: firstN(entries, 10),
	}

	dashboard.TotalProducts, _ = s.productRepo.Count()
	dashboard.LowStock, _ = s.productRepo.CountLowStock()
	dashboard.TotalCashiers, _ = s.userRepo.CountByRole(model.RoleCashier)

	return dashboard
}

func (s *statsService) SalesDashboard(start, end *time.Time, cashierID *uuid.UUID) *SalesDashboard {
	now := s.now()
	cashiers, _ := s.cashierResponses()

	entries, err := s.transactionRepo.FindFiltered(repository.TransactionFilter{
		CashierID: cashierID,
		Start:     start,
		End:       end,
	})
	if err != nil {
		log.Printf("sales dashboard: failed to load transactions: %v", err)
		return &SalesDashboard{
			Stats:        stats.Aggregate(nil, now, stats.Daily, 5),
			Transactions: []model.Transaction{},
			Cashiers:     cashiers,
		}
	}

	return &SalesDashboard{
		Stats:        stats.Aggregate(toViews(entries), now, stats.Daily, 5),
		Transactions: firstN(entries, 50),
		Cashiers:     cashiers,
	}
}

func (s *statsService) Report(start, end *time.Time, cashierID, categoryID *uuid.UUID) *Report {
	now := s.now()

	report := &Report{
		Transactions: []model.Transaction{},
		Inventory:    []model.Product{},
	}
	report.Cashiers, _ = s.cashierResponses()
	report.Categories, _ = s.categoryRepo.FindAll("")

	entries, err := s.transactionRepo.FindFiltered(repository.TransactionFilter{
		CashierID: cashierID,
		Start:     start,
		End:       end,
	})
	if err != nil {
		log.Printf("report: failed to load transactions: %v", err)
		report.Stats = stats.Aggregate(nil, now, stats.Daily, 5)
		return report
	}

	report.Stats = stats.Aggregate(toViews(entries), now, stats.Daily, 5)
	report.Transactions = entries

	if categoryID != nil {
		report.Inventory, _ = s.productRepo.FindByCategory(*categoryID)
	} else {
		report.Inventory, _ = s.productRepo.FindAll()
	}

	return report
}

func (s *statsService) CashierDashboard(cashierID uuid.UUID) *CashierDashboard {
	now := s.now()
	start, end := dayBounds(now)

	today, err := s.transactionRepo.FindFiltered(repository.TransactionFilter{
		CashierID: &cashierID,
		Start:     &start,
		End:       &end,
	})
	if err != nil {
		log.Printf("cashier dashboard: failed to load transactions: %v", err)
		return &CashierDashboard{
			Stats:              stats.Aggregate(nil, now, stats.Hourly, 10),
			RecentTransactions: []model.Transaction{},
		}
	}

	dashboard := &CashierDashboard{
		Stats: stats.Aggregate(toViews(today), now, stats.Hourly, 10),
	}
	dashboard.LowStock, _ = s.productRepo.CountLowStock()

	recent, err := s.transactionRepo.FindFiltered(repository.TransactionFilter{
		CashierID: &cashierID,
		Limit:     10,
	})
	if err != nil {
		recent = []model.Transaction{}
	}
	dashboard.RecentTransactions = recent

	return dashboard
}

func (s *statsService) LiveStats(ctx context.Context, cashierID uuid.UUID) (*LiveStats, error) {
	key := liveStatsKey(cashierID)

	var cached LiveStats
	if hit, err := s.statsCache.Get(ctx, key, &cached); err == nil && hit {
		return &cached, nil
	}

	start, _ := dayBounds(s.now())
	total, count, err := s.transactionRepo.SumAndCountSince(cashierID, start)
	if err != nil {
		return nil, err
	}

	live := &LiveStats{
		TotalSalesToday:        total,
		TotalTransactionsToday: count,
	}
	if err := s.statsCache.Set(ctx, key, live, liveStatsTTL); err != nil {
		log.Printf("live stats: failed to cache: %v", err)
	}
	return live, nil
}

func (s *statsService) CashierLedger(cashierID uuid.UUID, start, end *time.Time) ([]model.Transaction, error) {
	return s.transactionRepo.FindFiltered(repository.TransactionFilter{
		CashierID: &cashierID,
		Start:     start,
		End:       end,
	})
}

func (s *statsService) cashierResponses() ([]model.UserResponse, error) {
	users, err := s.userRepo.FindByRole(model.RoleCashier)
	if err != nil {
		return []model.UserResponse{}, err
	}
	responses := make([]model.UserResponse, len(users))
	for i, u := range users {
		responses[i] = u.ToResponse()
	}
	return responses, nil
}

// toViews flattens ledger entries into the aggregator's input shape. Item
// names prefer the sale-time snapshot and fall back to the live product row.
func toViews(entries []model.Transaction) []stats.TxView {
	views := make([]stats.TxView, len(entries))
	for i, entry := range entries {
		view := stats.TxView{
			TotalAmount:   entry.TotalAmount,
			Profit:        entry.Profit,
			PaymentMethod: entry.PaymentMethod,
			CreatedAt:     entry.CreatedAt,
		}
		if entry.Cashier != nil {
			view.CashierName = entry.Cashier.Username
			if view.CashierName == "" {
				view.CashierName = entry.Cashier.Name
			}
		}
		for _, item := range entry.Items {
			name := item.ProductName
			if name == "" && item.Product != nil {
				name = item.Product.Name
			}
			view.Items = append(view.Items, stats.ItemView{
				ProductName: name,
				Quantity:    item.Quantity,
			})
		}
		views[i] = view
	}
	return views
}

func firstN(entries []model.Transaction, n int) []model.Transaction {
	if len(entries) > n {
		return entries[:n]
	}
	return entries
}

func dayBounds(ref time.Time) (time.Time, time.Time) {
	start := time.Date(ref.Year(), ref.Month(), ref.Day(), 0, 0, 0, 0, ref.Location())
	return start, start.AddDate(0, 0, 1).Add(-time.Nanosecond)
}
