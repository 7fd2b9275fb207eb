package controllers_test

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http/httptest"
	"strconv"
	"testing"

	"github.com/campusthreads/marketplace-api/initializers"
	"github.com/campusthreads/marketplace-api/internal/testdb"
	"github.com/campusthreads/marketplace-api/models"
	"github.com/campusthreads/marketplace-api/routes"
	"github.com/campusthreads/marketplace-api/uploads"
	"github.com/campusthreads/marketplace-api/utils"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type testServer struct {
	t      *testing.T
	db     *gorm.DB
	router *gin.Engine
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	t.Setenv("JWT_SECRET", "controller-test-secret")
	gin.SetMode(gin.TestMode)

	db := testdb.Open(t)
	initializers.DB = db
	initializers.AppConfig = initializers.Config{
		APIBaseURL:  "http://api.test",
		UploadDir:   t.TempDir(),
		CORSOrigins: []string{"http://shop.test"},
	}
	store, err := uploads.NewDiskStore(initializers.AppConfig.UploadDir, initializers.AppConfig.APIBaseURL)
	require.NoError(t, err)
	initializers.Uploads = store

	router := gin.New()
	routes.RegisterRoutes(router)
	return &testServer{t: t, db: db, router: router}
}

func (s *testServer) createUser(email, role string, vendorID *uint) models.User {
	s.t.Helper()
	hash, err := utils.HashPassword("password123")
	require.NoError(s.t, err)
	user := models.User{Email: email, PasswordHash: hash, Role: role, VendorID: vendorID}
	require.NoError(s.t, s.db.Create(&user).Error)
	return user
}

func (s *testServer) token(user models.User) string {
	s.t.Helper()
	token, err := utils.GenerateJWT(user)
	require.NoError(s.t, err)
	return token
}

// vendorUser creates a vendor with a linked login and returns both.
func (s *testServer) vendorUser(storeName, email string) (models.Vendor, string) {
	s.t.Helper()
	vendor := testdb.CreateVendor(s.t, s.db, storeName)
	user := s.createUser(email, models.RoleVendor, &vendor.ID)
	return vendor, s.token(user)
}

func (s *testServer) do(method, path, token string, body any) *httptest.ResponseRecorder {
	s.t.Helper()
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		require.NoError(s.t, err)
		reader = bytes.NewReader(payload)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	return w
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out), w.Body.String())
	return out
}

func requireStatus(t *testing.T, w *httptest.ResponseRecorder, status int) {
	t.Helper()
	require.Equal(t, status, w.Code, w.Body.String())
}

func itoa(id uint) string {
	return strconv.FormatUint(uint64(id), 10)
}
