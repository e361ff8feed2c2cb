package service

import (
	"context"
	"testing"
	"time"

	"go-pos-backend/internal/cache"
	"go-pos-backend/internal/model"
	"go-pos-backend/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type statsFixture struct {
	db    *gorm.DB
	stats *statsService
	jane  *model.User
	bob   *model.User
	ref   time.Time
}

func newStatsFixture(t *testing.T) *statsFixture {
	t.Helper()

	db := newTestDB(t)
	userRepo := repository.NewUserRepo(db)

	jane := &model.User{Name: "Jane", Username: "jane", Role: model.RoleCashier, IsActive: true}
	require.NoError(t, jane.SetPassword("secret1"))
	require.NoError(t, userRepo.Create(jane))

	bob := &model.User{Name: "Bob", Username: "bob", Role: model.RoleCashier, IsActive: true}
	require.NoError(t, bob.SetPassword("secret1"))
	require.NoError(t, userRepo.Create(bob))

	ref := time.Date(2024, 3, 15, 12, 0, 0, 0, time.Local)
	svc := NewStatsService(
		repository.NewTransactionRepo(db),
		repository.NewProductRepo(db),
		userRepo,
		repository.NewCategoryRepo(db),
		cache.NoopStatsCache{},
	).(*statsService)
	svc.now = func() time.Time { return ref }

	return &statsFixture{db: db, stats: svc, jane: jane, bob: bob, ref: ref}
}

// seedSale writes a completed ledger entry directly, backdated to at.
func (f *statsFixture) seedSale(t *testing.T, cashier *model.User, amount, profit float64, method string, at time.Time) {
	t.Helper()
	entry := &model.Transaction{
		CashierID:     cashier.ID,
		TotalAmount:   amount,
		Profit:        profit,
		PaymentMethod: method,
		Status:        model.TransactionCompleted,
	}
	require.NoError(t, f.db.Create(entry).Error)
	require.NoError(t, f.db.Model(entry).UpdateColumn("created_at", at).Error)
}

func TestAdminDashboardScopesToday(t *testing.T) {
	f := newStatsFixture(t)
	f.seedSale(t, f.jane, 100, 40, "cash", f.ref.Add(-time.Hour))
	f.seedSale(t, f.jane, 50, 10, "mpesa", f.ref.Add(-2*time.Hour))
	// Yesterday's sale stays off the admin landing page.
	f.seedSale(t, f.jane, 999, 99, "cash", f.ref.AddDate(0, 0, -1))

	dashboard := f.stats.AdminDashboard()

	assert.Equal(t, 150.0, dashboard.Stats.TotalSales)
	assert.Equal(t, 50.0, dashboard.Stats.ProfitToday)
	assert.Equal(t, 100.0, dashboard.Stats.CashToday)
	assert.Equal(t, 50.0, dashboard.Stats.MpesaToday)
	assert.Equal(t, int64(2), dashboard.TotalCashiers)
	assert.Len(t, dashboard.RecentTransactions, 2)
}

func TestSalesDashboardFilters(t *testing.T) {
	f := newStatsFixture(t)
	f.seedSale(t, f.jane, 100, 10, "cash", f.ref)
	f.seedSale(t, f.bob, 200, 20, "cash", f.ref)
	f.seedSale(t, f.jane, 300, 30, "cash", f.ref.AddDate(0, 0, -10))

	all := f.stats.SalesDashboard(nil, nil, nil)
	assert.Equal(t, 600.0, all.Stats.TotalSales)
	assert.Len(t, all.Cashiers, 2)

	onlyJane := f.stats.SalesDashboard(nil, nil, &f.jane.ID)
	assert.Equal(t, 400.0, onlyJane.Stats.TotalSales)

	start := f.ref.AddDate(0, 0, -1)
	recent := f.stats.SalesDashboard(&start, nil, nil)
	assert.Equal(t, 300.0, recent.Stats.TotalSales)
}

func TestCashierDashboardIsPersonal(t *testing.T) {
	f := newStatsFixture(t)
	f.seedSale(t, f.jane, 100, 10, "cash", f.ref.Add(-time.Hour))
	f.seedSale(t, f.bob, 500, 50, "cash", f.ref.Add(-time.Hour))

	dashboard := f.stats.CashierDashboard(f.jane.ID)

	assert.Equal(t, 100.0, dashboard.Stats.TotalSales)
	require.Len(t, dashboard.RecentTransactions, 1)
	assert.Equal(t, f.jane.ID, dashboard.RecentTransactions[0].CashierID)
}

func TestLiveStats(t *testing.T) {
	f := newStatsFixture(t)
	f.seedSale(t, f.jane, 100, 10, "cash", f.ref.Add(-time.Hour))
	f.seedSale(t, f.jane, 60, 5, "cash", f.ref.Add(-2*time.Hour))
	f.seedSale(t, f.jane, 999, 9, "cash", f.ref.AddDate(0, 0, -1))
	f.seedSale(t, f.bob, 500, 50, "cash", f.ref)

	live, err := f.stats.LiveStats(context.Background(), f.jane.ID)
	require.NoError(t, err)

	assert.Equal(t, 160.0, live.TotalSalesToday)
	assert.Equal(t, int64(2), live.TotalTransactionsToday)
}

func TestCashierLedgerDateRange(t *testing.T) {
	f := newStatsFixture(t)
	f.seedSale(t, f.jane, 100, 10, "cash", f.ref)
	f.seedSale(t, f.jane, 200, 20, "cash", f.ref.AddDate(0, 0, -5))

	start := f.ref.AddDate(0, 0, -1)
	entries, err := f.stats.CashierLedger(f.jane.ID, &start, nil)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, 100.0, entries[0].TotalAmount)
}

func TestReportInventoryByCategory(t *testing.T) {
	f := newStatsFixture(t)
	categoryRepo := repository.NewCategoryRepo(f.db)
	productRepo := repository.NewProductRepo(f.db)

	drinks := &model.Category{Name: "Drinks"}
	require.NoError(t, categoryRepo.Create(drinks))

	require.NoError(t, productRepo.Create(&model.Product{
		Name: "Soda", SKU: "SKU-1", CategoryID: &drinks.ID, Status: model.ProductStatusActive,
	}))
	require.NoError(t, productRepo.Create(&model.Product{
		Name: "Bread", SKU: "SKU-2", Status: model.ProductStatusActive,
	}))

	all := f.stats.Report(nil, nil, nil, nil)
	assert.Len(t, all.Inventory, 2)
	assert.Len(t, all.Categories, 1)

	scoped := f.stats.Report(nil, nil, nil, &drinks.ID)
	require.Len(t, scoped.Inventory, 1)
	assert.Equal(t, "Soda", scoped.Inventory[0].Name)
}

func TestDashboardsDegradeWhenStoreFails(t *testing.T) {
	f := newStatsFixture(t)

	// Drop the table out from under the service; reads degrade to zeros.
	require.NoError(t, f.db.Migrator().DropTable(&model.Transaction{}))

	dashboard := f.stats.AdminDashboard()
	assert.Zero(t, dashboard.Stats.TotalSales)
	assert.Equal(t, "-", dashboard.Stats.TopCashier)
	assert.Empty(t, dashboard.RecentTransactions)
}
