package controllers_test

import (
	"net/http"
	"testing"

	"github.com/campusthreads/marketplace-api/internal/testdb"
	"github.com/campusthreads/marketplace-api/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type orderJSON struct {
	ID         uint   `json:"ID"`
	CustomerID uint   `json:"customerId"`
	VendorID   uint   `json:"vendorId"`
	Status     string `json:"status"`
	Items      []struct {
		ProductID   uint    `json:"productId"`
		Quantity    int     `json:"quantity"`
		Price       float64 `json:"price"`
		ProductName string  `json:"productName"`
		Variant     struct {
			Size  string `json:"size"`
			Color string `json:"color"`
		} `json:"variant"`
	} `json:"items"`
}

func TestCreateAndReadOrder(t *testing.T) {
	s := newTestServer(t)
	vendor, vendorToken := s.vendorUser("Quad Tees", "quad@uni.edu")
	product := testdb.CreateProduct(t, s.db, vendor.ID, "Campus Tee", 20, models.VariantInput{Size: "M", Stock: 5})

	buyer := s.createUser("buyer@uni.edu", models.RoleCustomer, nil)
	buyerToken := s.token(buyer)
	otherToken := s.token(s.createUser("other@uni.edu", models.RoleCustomer, nil))
	adminToken := s.token(s.createUser("admin@uni.edu", models.RoleAdmin, nil))

	w := s.do(http.MethodPost, "/orders", buyerToken, map[string]any{
		"vendorId": vendor.ID,
		"items": []map[string]any{
			{"productId": product.ID, "quantity": 2, "price": 20, "variant": map[string]string{"size": "M"}},
		},
	})
	requireStatus(t, w, http.StatusCreated)
	created := decode[orderJSON](t, w)
	require.NotZero(t, created.ID)
	assert.Equal(t, buyer.ID, created.CustomerID)
	assert.Equal(t, "pending", created.Status)

	path := "/orders/" + itoa(created.ID)

	w = s.do(http.MethodGet, path, buyerToken, nil)
	requireStatus(t, w, http.StatusOK)
	got := decode[orderJSON](t, w)
	require.Len(t, got.Items, 1)
	assert.Equal(t, "Campus Tee", got.Items[0].ProductName)
	assert.Equal(t, "M", got.Items[0].Variant.Size)

	requireStatus(t, s.do(http.MethodGet, path, vendorToken, nil), http.StatusOK)
	requireStatus(t, s.do(http.MethodGet, path, adminToken, nil), http.StatusOK)

	w = s.do(http.MethodGet, path, otherToken, nil)
	requireStatus(t, w, http.StatusNotFound)
	assert.Equal(t, "Not found", decode[map[string]string](t, w)["message"])

	requireStatus(t, s.do(http.MethodGet, "/orders/zero", buyerToken, nil), http.StatusBadRequest)
}

func TestCreateOrderValidation(t *testing.T) {
	s := newTestServer(t)
	token := s.token(s.createUser("buyer@uni.edu", models.RoleCustomer, nil))

	cases := map[string]map[string]any{
		"no items":      {"vendorId": 1, "items": []any{}},
		"zero quantity": {"vendorId": 1, "items": []map[string]any{{"productId": 1, "quantity": 0, "price": 5}}},
		"zero price":    {"vendorId": 1, "items": []map[string]any{{"productId": 1, "quantity": 1, "price": 0}}},
		"no vendor":     {"items": []map[string]any{{"productId": 1, "quantity": 1, "price": 5}}},
	}
	for name, body := range cases {
		t.Run(name, func(t *testing.T) {
			requireStatus(t, s.do(http.MethodPost, "/orders", token, body), http.StatusBadRequest)
		})
	}
}

func TestMyOrdersIsScopedByRole(t *testing.T) {
	s := newTestServer(t)
	vendorA, tokenA := s.vendorUser("A", "a@uni.edu")
	vendorB, _ := s.vendorUser("B", "b@uni.edu")
	buyer := s.createUser("buyer@uni.edu", models.RoleCustomer, nil)

	for _, vendorID := range []uint{vendorA.ID, vendorB.ID, vendorA.ID} {
		require.NoError(t, s.db.Create(&models.Order{
			CustomerID: buyer.ID, VendorID: vendorID,
			Items: []models.OrderItem{{ProductID: 1, Quantity: 1, Price: 3}},
		}).Error)
	}
	other := s.createUser("other@uni.edu", models.RoleCustomer, nil)
	require.NoError(t, s.db.Create(&models.Order{CustomerID: other.ID, VendorID: vendorB.ID}).Error)

	count := func(token string) int {
		w := s.do(http.MethodGet, "/orders/mine", token, nil)
		requireStatus(t, w, http.StatusOK)
		return len(decode[[]orderJSON](t, w))
	}
	assert.Equal(t, 3, count(s.token(buyer)))
	assert.Equal(t, 2, count(tokenA))
	assert.Equal(t, 4, count(s.token(s.createUser("admin@uni.edu", models.RoleAdmin, nil))))

	unlinked := s.createUser("nolink@uni.edu", models.RoleVendor, nil)
	w := s.do(http.MethodGet, "/orders/mine", s.token(unlinked), nil)
	requireStatus(t, w, http.StatusBadRequest)
}

func TestCheckoutSplitsCartPerVendor(t *testing.T) {
	s := newTestServer(t)
	vendorA := testdb.CreateVendor(t, s.db, "A")
	vendorB := testdb.CreateVendor(t, s.db, "B")
	tee := testdb.CreateProduct(t, s.db, vendorA.ID, "Tee", 20)
	beanie := testdb.CreateProduct(t, s.db, vendorA.ID, "Beanie", 10)
	hoodie := testdb.CreateProduct(t, s.db, vendorB.ID, "Hoodie", 40)
	buyer := s.createUser("buyer@uni.edu", models.RoleCustomer, nil)

	w := s.do(http.MethodPost, "/orders/checkout", s.token(buyer), map[string]any{
		"items": []map[string]any{
			{"productId": tee.ID, "vendorId": vendorA.ID, "quantity": 1, "price": 20},
			{"productId": hoodie.ID, "quantity": 2, "price": 40},
			{"productId": beanie.ID, "vendorId": vendorA.ID, "quantity": 3, "price": 10},
			{"productId": 9999, "quantity": 1, "price": 5},
		},
	})
	requireStatus(t, w, http.StatusCreated)
	result := decode[struct {
		OrderIDs []uint      `json:"orderIds"`
		Orders   []orderJSON `json:"orders"`
	}](t, w)
	require.Len(t, result.OrderIDs, 2)
	require.Len(t, result.Orders, 2)
	assert.Equal(t, vendorA.ID, result.Orders[0].VendorID)
	assert.Len(t, result.Orders[0].Items, 2)
	assert.Equal(t, vendorB.ID, result.Orders[1].VendorID)
	assert.Len(t, result.Orders[1].Items, 1)

	var stored int64
	require.NoError(t, s.db.Model(&models.Order{}).Where("customer_id = ?", buyer.ID).Count(&stored).Error)
	assert.EqualValues(t, 2, stored)
}

func TestCheckoutWithNoResolvableVendor(t *testing.T) {
	s := newTestServer(t)
	token := s.token(s.createUser("buyer@uni.edu", models.RoleCustomer, nil))

	w := s.do(http.MethodPost, "/orders/checkout", token, map[string]any{
		"items": []map[string]any{{"productId": 42, "quantity": 1, "price": 5}},
	})
	requireStatus(t, w, http.StatusBadRequest)

	var count int64
	require.NoError(t, s.db.Model(&models.Order{}).Count(&count).Error)
	assert.Zero(t, count)
}

func TestCheckoutTakesVendorFromCatalog(t *testing.T) {
	s := newTestServer(t)
	vendorA, _ := s.vendorUser("A", "a@uni.edu")
	vendorB, tokenB := s.vendorUser("B", "b@uni.edu")
	hoodie := testdb.CreateProduct(t, s.db, vendorB.ID, "Hoodie", 40, models.VariantInput{Size: "M", Stock: 5})
	buyer := s.token(s.createUser("buyer@uni.edu", models.RoleCustomer, nil))

	w := s.do(http.MethodPost, "/orders/checkout", buyer, map[string]any{
		"items": []map[string]any{{"productId": hoodie.ID, "vendorId": vendorA.ID, "quantity": 2, "price": 40}},
	})
	requireStatus(t, w, http.StatusCreated)
	result := decode[struct {
		Orders []orderJSON `json:"orders"`
	}](t, w)
	require.Len(t, result.Orders, 1)
	assert.Equal(t, vendorB.ID, result.Orders[0].VendorID)

	path := "/vendor/orders/" + itoa(result.Orders[0].ID) + "/status"
	requireStatus(t, s.do(http.MethodPatch, path, tokenB, map[string]any{"status": "delivered"}), http.StatusOK)
	assert.Equal(t, []int{3}, testdb.VariantStock(t, s.db, hoodie.ID))
}

func TestCreateOrderRejectsForeignProducts(t *testing.T) {
	s := newTestServer(t)
	vendorA := testdb.CreateVendor(t, s.db, "A")
	vendorB := testdb.CreateVendor(t, s.db, "B")
	tee := testdb.CreateProduct(t, s.db, vendorA.ID, "Tee", 20)
	hoodie := testdb.CreateProduct(t, s.db, vendorB.ID, "Hoodie", 40)
	token := s.token(s.createUser("buyer@uni.edu", models.RoleCustomer, nil))

	cases := map[string][]map[string]any{
		"product of another vendor": {
			{"productId": tee.ID, "quantity": 1, "price": 20},
			{"productId": hoodie.ID, "quantity": 1, "price": 40},
		},
		"unknown product": {{"productId": 9999, "quantity": 1, "price": 5}},
	}
	for name, items := range cases {
		t.Run(name, func(t *testing.T) {
			w := s.do(http.MethodPost, "/orders", token, map[string]any{"vendorId": vendorA.ID, "items": items})
			requireStatus(t, w, http.StatusBadRequest)
		})
	}

	var count int64
	require.NoError(t, s.db.Model(&models.Order{}).Count(&count).Error)
	assert.Zero(t, count)
}
