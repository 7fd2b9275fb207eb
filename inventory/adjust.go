package inventory

import (
	"context"
	"errors"
	"fmt"

	"github.com/campusthreads/marketplace-api/models"
	"gorm.io/gorm"
)

type AdjustAction string

const (
	ActionAdd   AdjustAction = "add"
	ActionClear AdjustAction = "clear"
)

// Adjust applies a bulk stock change to every variant of one of the vendor's
// products and returns the product as stored afterwards. add with a zero
// amount adds one.
func Adjust(ctx context.Context, db *gorm.DB, vendorID, productID uint, action AdjustAction, amount int) (*models.Product, error) {
	if amount < 0 {
		return nil, fmt.Errorf("%w: amount must be positive", ErrInvalidAdjustment)
	}

	var product models.Product
	err := db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("id = ? AND vendor_id = ?", productID, vendorID).First(&product).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return err
		}

		variants := tx.Model(&models.ProductVariant{}).Where("product_id = ?", product.ID)
		switch action {
		case ActionClear:
			return variants.Update("stock", 0).Error
		case ActionAdd:
			if amount == 0 {
				amount = 1
			}
			return variants.Update("stock", gorm.Expr("stock + ?", amount)).Error
		default:
			return fmt.Errorf("%w: unknown action %q", ErrInvalidAdjustment, action)
		}
	})
	if err != nil {
		return nil, err
	}

	return LoadProduct(ctx, db, product.ID)
}

func LoadProduct(ctx context.Context, db *gorm.DB, productID uint) (*models.Product, error) {
	var product models.Product
	err := db.WithContext(ctx).
		Preload("Variants", func(db *gorm.DB) *gorm.DB { return db.Order("position ASC, id ASC") }).
		Preload("Tags").
		First(&product, productID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &product, nil
}
