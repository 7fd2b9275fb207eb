package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

func GetHome(ctx *gin.Context) {
	message := `Welcome to the Campus Threads marketplace API.

AUTH
- POST "/auth/register" - Create account
- POST "/auth/login" - Sign in and receive a bearer token
- GET "/auth/me" - Own account and profile
- PATCH "/auth/profile" - Update profile
- PATCH "/auth/password" - Change password
- POST "/auth/uploads" - Upload an image

PRODUCTS
- GET "/products" - Catalog (q, category, minPrice, maxPrice, color, size, inStock, sort, page, limit)
- GET "/products/:id" - Single product

ORDERS
- POST "/orders" - Create a single-vendor order
- POST "/orders/checkout" - Place one order per vendor in a cart
- GET "/orders/mine" - Recent orders for the caller
- GET "/orders/:id" - Single order

VENDOR
- GET|POST "/vendor/products", PATCH|DELETE "/vendor/products/:id"
- POST "/vendor/products/:id/inventory" - Add or clear stock
- GET "/vendor/orders", PATCH "/vendor/orders/:id/status"
- GET "/vendor/analytics/{summary,timeseries,top-products}"

ADMIN
- GET|POST "/admin/vendors", PATCH|DELETE "/admin/vendors/:id"
- GET "/admin/analytics/{summary,timeseries,top}"`

	ctx.JSON(http.StatusOK, gin.H{
		"message": message,
	})
}

func Health(ctx *gin.Context) {
	ctx.JSON(http.StatusOK, gin.H{"ok": true})
}
