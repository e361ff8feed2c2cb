package service

import (
	"testing"

	"go-pos-backend/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newCatalog(t *testing.T) CatalogService {
	t.Helper()
	db := newTestDB(t)
	return NewCatalogService(
		repository.NewCategoryRepo(db),
		repository.NewProductRepo(db),
		nopImages{},
		newTestHub(),
	)
}

func TestCreateProductDefaults(t *testing.T) {
	catalog := newCatalog(t)

	product, err := catalog.CreateProduct(&ProductRequest{
		Name: "Soda", SKU: "SKU-1", SellingPrice: 100, BuyingPrice: 60, Quantity: 10,
	}, "", "admin-id")
	require.NoError(t, err)

	assert.Equal(t, 5, product.MinStock)
	assert.Equal(t, "Active", product.Status)
}

func TestCreateProductRejectsDuplicateSKU(t *testing.T) {
	catalog := newCatalog(t)

	_, err := catalog.CreateProduct(&ProductRequest{Name: "Soda", SKU: "SKU-1"}, "", "admin-id")
	require.NoError(t, err)

	_, err = catalog.CreateProduct(&ProductRequest{Name: "Other", SKU: "SKU-1"}, "", "admin-id")
	assert.ErrorIs(t, err, ErrSKUExists)
}

func TestUpdateProductSKUCollision(t *testing.T) {
	catalog := newCatalog(t)

	_, err := catalog.CreateProduct(&ProductRequest{Name: "Soda", SKU: "SKU-1"}, "", "admin-id")
	require.NoError(t, err)
	other, err := catalog.CreateProduct(&ProductRequest{Name: "Bread", SKU: "SKU-2"}, "", "admin-id")
	require.NoError(t, err)

	// Moving onto a taken SKU is rejected, keeping your own is fine.
	_, err = catalog.UpdateProduct(other.ID, &ProductRequest{Name: "Bread", SKU: "SKU-1"}, "", "admin-id")
	assert.ErrorIs(t, err, ErrSKUExists)

	_, err = catalog.UpdateProduct(other.ID, &ProductRequest{Name: "Loaf", SKU: "SKU-2"}, "", "admin-id")
	assert.NoError(t, err)
}

func TestInventoryAlerts(t *testing.T) {
	catalog := newCatalog(t)

	_, err := catalog.CreateProduct(&ProductRequest{
		Name: "Plenty", SKU: "SKU-1", Quantity: 50, MinStock: 5,
	}, "", "admin-id")
	require.NoError(t, err)
	_, err = catalog.CreateProduct(&ProductRequest{
		Name: "Scarce", SKU: "SKU-2", Quantity: 3, MinStock: 5,
	}, "", "admin-id")
	require.NoError(t, err)
	_, err = catalog.CreateProduct(&ProductRequest{
		Name: "AtThreshold", SKU: "SKU-3", Quantity: 5, MinStock: 5,
	}, "", "admin-id")
	require.NoError(t, err)

	inventory, err := catalog.GetInventory()
	require.NoError(t, err)

	assert.Len(t, inventory.Products, 3)
	// At or below the threshold counts as low stock.
	require.Len(t, inventory.Alerts, 2)
	names := []string{inventory.Alerts[0].Name, inventory.Alerts[1].Name}
	assert.Contains(t, names, "Scarce")
	assert.Contains(t, names, "AtThreshold")
}

func TestSellableProductsExcludeOutOfStock(t *testing.T) {
	catalog := newCatalog(t)

	_, err := catalog.CreateProduct(&ProductRequest{Name: "Soda", SKU: "SKU-1", Quantity: 10}, "", "admin-id")
	require.NoError(t, err)
	_, err = catalog.CreateProduct(&ProductRequest{Name: "Empty", SKU: "SKU-2", Quantity: 0}, "", "admin-id")
	require.NoError(t, err)

	sellable, err := catalog.GetSellableProducts()
	require.NoError(t, err)
	require.Len(t, sellable, 1)
	assert.Equal(t, "Soda", sellable[0].Name)
}

func TestCategoryLifecycle(t *testing.T) {
	catalog := newCatalog(t)

	created, err := catalog.CreateCategory(&CategoryRequest{Name: "Drinks"}, "admin-id")
	require.NoError(t, err)

	updated, err := catalog.UpdateCategory(created.ID, &CategoryRequest{Name: "Beverages"}, "admin-id")
	require.NoError(t, err)
	assert.Equal(t, "Beverages", updated.Name)

	require.NoError(t, catalog.DeleteCategory(created.ID))

	categories, err := catalog.GetCategories("")
	require.NoError(t, err)
	assert.Empty(t, categories)
}

func TestCategorySearch(t *testing.T) {
	catalog := newCatalog(t)

	_, err := catalog.CreateCategory(&CategoryRequest{Name: "Drinks"}, "admin-id")
	require.NoError(t, err)
	_, err = catalog.CreateCategory(&CategoryRequest{Name: "Snacks"}, "admin-id")
	require.NoError(t, err)

	found, err := catalog.GetCategories("Dri")
	require.NoError(t, err)
	require.Len(t, found, 1)
	assert.Equal(t, "Drinks", found[0].Name)
}
