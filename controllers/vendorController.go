package controllers

import (
	"errors"
	"net/http"

	"github.com/campusthreads/marketplace-api/initializers"
	"github.com/campusthreads/marketplace-api/inventory"
	"github.com/campusthreads/marketplace-api/middlewares"
	"github.com/campusthreads/marketplace-api/models"
	"github.com/gin-gonic/gin"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type createProductInput struct {
	Name        string                `json:"name" binding:"required"`
	Description string                `json:"description"`
	Price       float64               `json:"price" binding:"required,gt=0"`
	Images      []string              `json:"images"`
	Categories  []string              `json:"categories"`
	Variants    []models.VariantInput `json:"variants" binding:"omitempty,dive"`
}

type updateProductInput struct {
	Name        *string                `json:"name" binding:"omitnil,min=1"`
	Description *string                `json:"description"`
	Price       *float64               `json:"price" binding:"omitnil,gt=0"`
	Images      *[]string              `json:"images"`
	Categories  *[]string              `json:"categories"`
	Variants    *[]models.VariantInput `json:"variants" binding:"omitnil,dive"`
}

type inventoryInput struct {
	Action inventory.AdjustAction `json:"action" binding:"required,oneof=add clear"`
	Amount int                    `json:"amount" binding:"gte=0"`
}

type statusInput struct {
	Status models.OrderStatus `json:"status" binding:"required"`
}

// currentVendorID is for handlers mounted behind RequireVendorID.
func currentVendorID(ctx *gin.Context) uint {
	return *middlewares.MustCurrentUser(ctx).VendorID
}

func GetVendorProducts(ctx *gin.Context) {
	products := []models.Product{}
	err := withProductChildren(initializers.DB).
		Where("vendor_id = ?", currentVendorID(ctx)).
		Order("created_at DESC, id DESC").
		Find(&products).Error
	if err != nil {
		respondServerError(ctx, "Unable to fetch products", err)
		return
	}

	sendJSONResponse(ctx, http.StatusOK, products)
}

func CreateProduct(ctx *gin.Context) {
	var input createProductInput
	if err := ctx.ShouldBindJSON(&input); err != nil {
		respondWithError(ctx, http.StatusBadRequest, "Invalid product data", err)
		return
	}

	images := input.Images
	if images == nil {
		images = []string{}
	}
	product := models.Product{
		VendorID:    currentVendorID(ctx),
		Name:        input.Name,
		Description: input.Description,
		Price:       input.Price,
		Images:      datatypes.JSONSlice[string](images),
		Variants:    models.BuildVariants(input.Variants),
		Tags:        models.BuildTags(input.Categories),
	}
	if err := initializers.DB.Create(&product).Error; err != nil {
		respondServerError(ctx, "Unable to create product", err)
		return
	}

	created, err := inventory.LoadProduct(ctx.Request.Context(), initializers.DB, product.ID)
	if err != nil {
		respondServerError(ctx, "Unable to load product", err)
		return
	}
	sendJSONResponse(ctx, http.StatusCreated, created)
}

// UpdateProduct patches the given fields. Variants and categories, when
// present, replace the stored lists wholesale.
func UpdateProduct(ctx *gin.Context) {
	productID, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	var input updateProductInput
	if err := ctx.ShouldBindJSON(&input); err != nil {
		respondWithError(ctx, http.StatusBadRequest, "Invalid product data", err)
		return
	}

	vendorID := currentVendorID(ctx)
	err := initializers.DB.Transaction(func(tx *gorm.DB) error {
		var product models.Product
		if err := tx.Where("id = ? AND vendor_id = ?", productID, vendorID).First(&product).Error; err != nil {
			return err
		}

		fields := map[string]any{}
		if input.Name != nil {
			fields["name"] = *input.Name
		}
		if input.Description != nil {
			fields["description"] = *input.Description
		}
		if input.Price != nil {
			fields["price"] = *input.Price
		}
		if input.Images != nil {
			fields["images"] = datatypes.JSONSlice[string](*input.Images)
		}
		if len(fields) > 0 {
			if err := tx.Model(&product).Updates(fields).Error; err != nil {
				return err
			}
		}

		if input.Variants != nil {
			if err := tx.Where("product_id = ?", product.ID).Delete(&models.ProductVariant{}).Error; err != nil {
				return err
			}
			variants := models.BuildVariants(*input.Variants)
			for i := range variants {
				variants[i].ProductID = product.ID
			}
			if len(variants) > 0 {
				if err := tx.Create(&variants).Error; err != nil {
					return err
				}
			}
		}

		if input.Categories != nil {
			if err := tx.Where("product_id = ?", product.ID).Delete(&models.ProductCategory{}).Error; err != nil {
				return err
			}
			tags := models.BuildTags(*input.Categories)
			for i := range tags {
				tags[i].ProductID = product.ID
			}
			if len(tags) > 0 {
				if err := tx.Create(&tags).Error; err != nil {
					return err
				}
			}
		}
		return nil
	})
	if err != nil {
		respondLookupError(ctx, "Unable to update product", err)
		return
	}

	updated, err := inventory.LoadProduct(ctx.Request.Context(), initializers.DB, productID)
	if err != nil {
		respondServerError(ctx, "Unable to load product", err)
		return
	}
	sendJSONResponse(ctx, http.StatusOK, updated)
}

func DeleteProduct(ctx *gin.Context) {
	productID, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	result := initializers.DB.Where("vendor_id = ?", currentVendorID(ctx)).Delete(&models.Product{}, productID)
	if result.Error != nil {
		respondServerError(ctx, "Unable to delete product", result.Error)
		return
	}
	if result.RowsAffected == 0 {
		sendErrorResponse(ctx, http.StatusNotFound, msgNotFound)
		return
	}

	sendJSONResponse(ctx, http.StatusOK, gin.H{"ok": true})
}

// AdjustInventory adds to or clears the stock of every variant of a product.
func AdjustInventory(ctx *gin.Context) {
	productID, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	var input inventoryInput
	if err := ctx.ShouldBindJSON(&input); err != nil {
		respondWithError(ctx, http.StatusBadRequest, "Invalid inventory adjustment", err)
		return
	}

	product, err := inventory.Adjust(ctx.Request.Context(), initializers.DB, currentVendorID(ctx), productID, input.Action, input.Amount)
	if err != nil {
		respondInventoryError(ctx, "Unable to adjust inventory", err)
		return
	}

	sendJSONResponse(ctx, http.StatusOK, product)
}

func GetVendorOrders(ctx *gin.Context) {
	orders := []models.Order{}
	err := initializers.DB.Preload("Items").
		Where("vendor_id = ?", currentVendorID(ctx)).
		Order("created_at DESC, id DESC").
		Find(&orders).Error
	if err != nil {
		respondServerError(ctx, "Failed to fetch orders", err)
		return
	}
	if err := attachProductSummaries(initializers.DB, orders); err != nil {
		respondServerError(ctx, "Failed to fetch order products", err)
		return
	}

	sendJSONResponse(ctx, http.StatusOK, orders)
}

// UpdateOrderStatus moves one of the vendor's orders to a new status,
// decrementing stock on the first delivery.
func UpdateOrderStatus(ctx *gin.Context) {
	orderID, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	var input statusInput
	if err := ctx.ShouldBindJSON(&input); err != nil {
		respondWithError(ctx, http.StatusBadRequest, "Invalid status", err)
		return
	}

	fulfillment := inventory.NewFulfillment(initializers.DB, inventory.Options{
		StrictVariantMatch: initializers.AppConfig.StrictVariantMatch,
	})
	order, err := fulfillment.UpdateStatus(ctx.Request.Context(), currentVendorID(ctx), orderID, input.Status)
	if err != nil {
		respondInventoryError(ctx, "Unable to update order status", err)
		return
	}

	sendJSONResponse(ctx, http.StatusOK, order)
}

func respondInventoryError(ctx *gin.Context, message string, err error) {
	switch {
	case errors.Is(err, inventory.ErrNotFound):
		sendErrorResponse(ctx, http.StatusNotFound, msgNotFound)
	case errors.Is(err, inventory.ErrInvalidStatus),
		errors.Is(err, inventory.ErrInvalidAdjustment),
		errors.Is(err, inventory.ErrNoMatchingVariant):
		sendErrorResponse(ctx, http.StatusBadRequest, err.Error())
	default:
		respondServerError(ctx, message, err)
	}
}
