package controllers

import (
	"context"
	"errors"
	"net/http"

	"github.com/campusthreads/marketplace-api/checkout"
	"github.com/campusthreads/marketplace-api/initializers"
	"github.com/campusthreads/marketplace-api/middlewares"
	"github.com/campusthreads/marketplace-api/models"
	"github.com/campusthreads/marketplace-api/utils"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

const recentOrdersLimit = 100

type createOrderInput struct {
	VendorID uint                    `json:"vendorId" binding:"required"`
	Items    []models.OrderItemInput `json:"items" binding:"required,min=1,dive"`
}

type checkoutInput struct {
	Items []checkoutLine `json:"items" binding:"required,min=1,dive"`
}

type checkoutLine struct {
	ProductID uint                    `json:"productId" binding:"required"`
	Quantity  int                     `json:"quantity" binding:"required,gt=0"`
	Price     float64                 `json:"price" binding:"required,gt=0"`
	Variant   *models.VariantSelector `json:"variant"`
}

func newOrder(customerID, vendorID uint, items []models.OrderItem) models.Order {
	return models.Order{
		CustomerID: customerID,
		VendorID:   vendorID,
		Status:     models.StatusPending,
		Items:      items,
	}
}

var errVendorMismatch = errors.New("item does not belong to the order's vendor")

// CreateOrder creates a single-vendor order for the signed-in user. Every
// line must reference a product of the given vendor.
func CreateOrder(ctx *gin.Context) {
	principal := middlewares.MustCurrentUser(ctx)

	var input createOrderInput
	if err := ctx.ShouldBindJSON(&input); err != nil {
		respondWithError(ctx, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	productIDs := make([]uint, 0, len(input.Items))
	items := make([]models.OrderItem, 0, len(input.Items))
	for _, in := range input.Items {
		productIDs = append(productIDs, in.ProductID)
		items = append(items, in.ToItem())
	}

	vendors, err := productVendors(productIDs)
	if err != nil {
		respondServerError(ctx, "Unable to resolve vendors", err)
		return
	}
	for _, item := range items {
		if vendors[item.ProductID] != input.VendorID {
			respondWithError(ctx, http.StatusBadRequest, "Invalid request body", errVendorMismatch)
			return
		}
	}

	order := newOrder(principal.UserID, input.VendorID, items)
	if err := initializers.DB.Create(&order).Error; err != nil {
		respondServerError(ctx, "Failed to create order", err)
		return
	}

	sendJSONResponse(ctx, http.StatusCreated, order)
}

// CheckoutCart places one order per vendor found in the submitted cart inside
// a single transaction. The vendor of each line is always taken from the
// catalog; lines for unknown products are dropped.
func CheckoutCart(ctx *gin.Context) {
	principal := middlewares.MustCurrentUser(ctx)

	var input checkoutInput
	if err := ctx.ShouldBindJSON(&input); err != nil {
		respondWithError(ctx, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	productIDs := make([]uint, 0, len(input.Items))
	for _, line := range input.Items {
		productIDs = append(productIDs, line.ProductID)
	}
	vendors, err := productVendors(productIDs)
	if err != nil {
		respondServerError(ctx, "Unable to resolve vendors", err)
		return
	}

	cart := checkout.NewCart()
	for _, line := range input.Items {
		item := checkout.Item{
			ProductID: line.ProductID,
			VendorID:  vendors[line.ProductID],
			Price:     line.Price,
			Quantity:  line.Quantity,
		}
		if line.Variant != nil {
			item.Variant = &checkout.Variant{Size: line.Variant.Size, Color: line.Variant.Color}
		}
		cart.Add(item)
	}

	creator := &transactionalCreator{customerID: principal.UserID}
	var result checkout.Result
	err = initializers.DB.Transaction(func(tx *gorm.DB) error {
		creator.tx = tx
		var err error
		result, err = checkout.Checkout(ctx.Request.Context(), cart, creator)
		return err
	})
	if errors.Is(err, checkout.ErrNoOrders) {
		sendErrorResponse(ctx, http.StatusBadRequest, "No orderable items in cart")
		return
	}
	if err != nil {
		respondServerError(ctx, "Failed to place orders", err)
		return
	}

	sendJSONResponse(ctx, http.StatusCreated, gin.H{"orderIds": result.OrderIDs, "orders": creator.created})
}

// productVendors maps each existing product id to its owning vendor.
func productVendors(productIDs []uint) (map[uint]uint, error) {
	vendors := map[uint]uint{}
	if len(productIDs) == 0 {
		return vendors, nil
	}

	var products []models.Product
	if err := initializers.DB.Select("id", "vendor_id").Where("id IN ?", productIDs).Find(&products).Error; err != nil {
		return nil, err
	}
	for _, p := range products {
		vendors[p.ID] = p.VendorID
	}
	return vendors, nil
}

// transactionalCreator writes checkout orders through one open transaction.
type transactionalCreator struct {
	tx         *gorm.DB
	customerID uint
	created    []models.Order
}

func (c *transactionalCreator) CreateOrder(ctx context.Context, req checkout.OrderRequest) (uint, error) {
	items := make([]models.OrderItem, 0, len(req.Items))
	for _, line := range req.Items {
		item := models.OrderItem{ProductID: line.ProductID, Quantity: line.Quantity, Price: line.Price}
		if line.Variant != nil {
			item.Variant = models.VariantSelector{Size: line.Variant.Size, Color: line.Variant.Color}
		}
		items = append(items, item)
	}

	order := newOrder(c.customerID, req.VendorID, items)
	if err := c.tx.WithContext(ctx).Create(&order).Error; err != nil {
		return 0, err
	}
	c.created = append(c.created, order)
	return order.ID, nil
}

// GetMyOrders lists recent orders scoped by role: a customer's own orders, a
// vendor's received orders, or every order for admins.
func GetMyOrders(ctx *gin.Context) {
	principal := middlewares.MustCurrentUser(ctx)

	query := initializers.DB.Preload("Items")
	switch principal.Role {
	case models.RoleCustomer:
		query = query.Where("customer_id = ?", principal.UserID)
	case models.RoleVendor:
		if principal.VendorID == nil {
			sendErrorResponse(ctx, http.StatusBadRequest, "No vendorId on user")
			return
		}
		query = query.Where("vendor_id = ?", *principal.VendorID)
	}

	orders := []models.Order{}
	if err := query.Order("created_at DESC, id DESC").Limit(recentOrdersLimit).Find(&orders).Error; err != nil {
		respondServerError(ctx, "Failed to fetch orders", err)
		return
	}

	sendJSONResponse(ctx, http.StatusOK, orders)
}

func canViewOrder(principal utils.Principal, order models.Order) bool {
	if principal.Role == models.RoleAdmin || order.CustomerID == principal.UserID {
		return true
	}
	return principal.VendorID != nil && order.VendorID == *principal.VendorID
}

// GetOrder returns one order to its customer, its vendor or an admin. Orders
// the caller may not see are reported as not found.
func GetOrder(ctx *gin.Context) {
	principal := middlewares.MustCurrentUser(ctx)
	orderID, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	var order models.Order
	if err := initializers.DB.Preload("Items").First(&order, orderID).Error; err != nil {
		respondLookupError(ctx, "Failed to fetch order", err)
		return
	}
	if !canViewOrder(principal, order) {
		sendErrorResponse(ctx, http.StatusNotFound, msgNotFound)
		return
	}

	orders := []models.Order{order}
	if err := attachProductSummaries(initializers.DB, orders); err != nil {
		respondServerError(ctx, "Failed to fetch order products", err)
		return
	}

	sendJSONResponse(ctx, http.StatusOK, orders[0])
}

// attachProductSummaries joins each order line to its product's name and
// first image.
func attachProductSummaries(db *gorm.DB, orders []models.Order) error {
	ids := map[uint]bool{}
	for _, o := range orders {
		for _, item := range o.Items {
			ids[item.ProductID] = true
		}
	}
	if len(ids) == 0 {
		return nil
	}
	productIDs := make([]uint, 0, len(ids))
	for id := range ids {
		productIDs = append(productIDs, id)
	}

	var products []models.Product
	if err := db.Unscoped().Where("id IN ?", productIDs).Find(&products).Error; err != nil {
		return err
	}
	byID := make(map[uint]models.Product, len(products))
	for _, p := range products {
		byID[p.ID] = p
	}

	for i := range orders {
		for j := range orders[i].Items {
			p, ok := byID[orders[i].Items[j].ProductID]
			if !ok {
				continue
			}
			orders[i].Items[j].ProductName = p.Name
			if len(p.Images) > 0 {
				orders[i].Items[j].ProductImage = p.Images[0]
			}
		}
	}
	return nil
}
