// Package testdb opens a migrated in-memory database for package tests.
package testdb

import (
	"testing"

	"github.com/campusthreads/marketplace-api/initializers"
	"github.com/campusthreads/marketplace-api/models"
	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Open returns a fresh database. A single connection keeps the in-memory
// database alive and serialises transactions the way row locks would.
func Open(t testing.TB) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { sqlDB.Close() })

	require.NoError(t, initializers.Migrate(db))
	return db
}

func CreateVendor(t testing.TB, db *gorm.DB, storeName string) models.Vendor {
	t.Helper()
	vendor := models.Vendor{StoreName: storeName}
	require.NoError(t, db.Create(&vendor).Error)
	return vendor
}

func CreateProduct(t testing.TB, db *gorm.DB, vendorID uint, name string, price float64, variants ...models.VariantInput) models.Product {
	t.Helper()
	product := models.Product{
		VendorID: vendorID,
		Name:     name,
		Price:    price,
		Images:   []string{"https://img.example/" + name + ".jpg"},
		Variants: models.BuildVariants(variants),
	}
	require.NoError(t, db.Create(&product).Error)
	return product
}

func VariantStock(t testing.TB, db *gorm.DB, productID uint) []int {
	t.Helper()
	var variants []models.ProductVariant
	require.NoError(t, db.Where("product_id = ?", productID).Order("position ASC").Find(&variants).Error)
	stock := make([]int, len(variants))
	for i, v := range variants {
		stock[i] = v.Stock
	}
	return stock
}
