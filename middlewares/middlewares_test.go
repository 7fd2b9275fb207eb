package middlewares

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/campusthreads/marketplace-api/initializers"
	"github.com/campusthreads/marketplace-api/internal/testdb"
	"github.com/campusthreads/marketplace-api/models"
	"github.com/campusthreads/marketplace-api/utils"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	vendor := r.Group("/vendor", RequireAuth(), RequireRole(models.RoleVendor), RequireVendorID())
	vendor.GET("/ping", func(ctx *gin.Context) {
		principal := MustCurrentUser(ctx)
		ctx.JSON(http.StatusOK, gin.H{"vendorId": *principal.VendorID})
	})
	return r
}

func tokenFor(t *testing.T, user models.User) string {
	token, err := utils.GenerateJWT(user)
	require.NoError(t, err)
	return token
}

func useDB(t *testing.T) *gorm.DB {
	db := testdb.Open(t)
	previous := initializers.DB
	initializers.DB = db
	t.Cleanup(func() { initializers.DB = previous })
	return db
}

func TestVendorRouteGuards(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	db := useDB(t)

	vendor := testdb.CreateVendor(t, db, "Thread Co")
	linked := models.User{Email: "v@example.com", PasswordHash: "x", Role: models.RoleVendor, VendorID: &vendor.ID}
	require.NoError(t, db.Create(&linked).Error)
	otherVendorID := vendor.ID + 1

	cases := []struct {
		name   string
		header string
		status int
	}{
		{"missing header", "", http.StatusUnauthorized},
		{"not bearer", "Basic abc", http.StatusUnauthorized},
		{"malformed token", "Bearer nope", http.StatusUnauthorized},
		{"customer role", "Bearer " + tokenFor(t, models.User{Model: gorm.Model{ID: 1}, Role: models.RoleCustomer}), http.StatusForbidden},
		{"vendor without vendor id", "Bearer " + tokenFor(t, models.User{Model: gorm.Model{ID: linked.ID}, Role: models.RoleVendor}), http.StatusBadRequest},
		{"linked vendor", "Bearer " + tokenFor(t, linked), http.StatusOK},
		{"vendor id of another store", "Bearer " + tokenFor(t, models.User{Model: gorm.Model{ID: linked.ID}, Role: models.RoleVendor, VendorID: &otherVendorID}), http.StatusUnauthorized},
		{"unknown account", "Bearer " + tokenFor(t, models.User{Model: gorm.Model{ID: linked.ID + 100}, Role: models.RoleVendor, VendorID: &vendor.ID}), http.StatusUnauthorized},
	}

	router := newRouter()
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/vendor/ping", nil)
			if tc.header != "" {
				req.Header.Set("Authorization", tc.header)
			}
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)
			assert.Equal(t, tc.status, w.Code, w.Body.String())
		})
	}
}

func TestVendorTokenStopsWorkingAfterAccountRemoval(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	db := useDB(t)

	vendor := testdb.CreateVendor(t, db, "Thread Co")
	user := models.User{Email: "v@example.com", PasswordHash: "x", Role: models.RoleVendor, VendorID: &vendor.ID}
	require.NoError(t, db.Create(&user).Error)
	token := tokenFor(t, user)

	router := newRouter()
	ping := func() int {
		req := httptest.NewRequest(http.MethodGet, "/vendor/ping", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
		return w.Code
	}

	require.Equal(t, http.StatusOK, ping())
	require.NoError(t, db.Delete(&user).Error)
	assert.Equal(t, http.StatusUnauthorized, ping())
}
