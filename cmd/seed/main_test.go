package main

import (
	"testing"

	"github.com/campusthreads/marketplace-api/internal/testdb"
	"github.com/campusthreads/marketplace-api/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSeedIsRepeatable(t *testing.T) {
	db := testdb.Open(t)
	opts := options{Vendors: 3, Customers: 2, Products: 10, Password: "password123", Seed: 7}

	require.NoError(t, seed(db, opts))
	require.NoError(t, seed(db, opts))

	var vendors, products, users int64
	require.NoError(t, db.Model(&models.Vendor{}).Count(&vendors).Error)
	require.NoError(t, db.Model(&models.Product{}).Count(&products).Error)
	require.NoError(t, db.Model(&models.User{}).Count(&users).Error)
	assert.EqualValues(t, 3, vendors)
	assert.EqualValues(t, 10, products)
	assert.EqualValues(t, 3+2+1, users)

	var vendorUser models.User
	require.NoError(t, db.Where("email = ?", "vendor1@example.edu").First(&vendorUser).Error)
	require.NotNil(t, vendorUser.VendorID)
	assert.Equal(t, models.RoleVendor, vendorUser.Role)

	var product models.Product
	require.NoError(t, db.Preload("Variants").Preload("Tags").First(&product).Error)
	assert.GreaterOrEqual(t, len(product.Variants), 2)
	assert.NotEmpty(t, product.Categories)
	assert.Greater(t, product.Price, 0.0)
}
