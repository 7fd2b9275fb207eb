// Package inventory owns order fulfillment transitions and the variant stock
// counts they consume.
package inventory

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/campusthreads/marketplace-api/models"
	"gorm.io/gorm"
)

type Options struct {
	// StrictVariantMatch rejects a delivered transition when a line's variant
	// selector matches no variant instead of drawing from the first variant.
	StrictVariantMatch bool
}

type Fulfillment struct {
	db   *gorm.DB
	opts Options
}

func NewFulfillment(db *gorm.DB, opts Options) *Fulfillment {
	return &Fulfillment{db: db, opts: opts}
}

// UpdateStatus sets the status of one of the vendor's orders. Any status may
// follow any other. The first transition into delivered decrements the stock
// of every line's variant; the order's stock_applied flag is claimed with a
// conditional update so concurrent or repeated deliveries decrement once.
// Orders owned by other vendors are reported as ErrNotFound.
func (f *Fulfillment) UpdateStatus(ctx context.Context, vendorID, orderID uint, status models.OrderStatus) (*models.Order, error) {
	if !status.Valid() {
		return nil, fmt.Errorf("%w: %q", ErrInvalidStatus, status)
	}

	var order models.Order
	err := f.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Preload("Items").Where("id = ? AND vendor_id = ?", orderID, vendorID).First(&order).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return fmt.Errorf("load order: %w", err)
		}

		if status == models.StatusDelivered {
			claim := tx.Model(&models.Order{}).
				Where("id = ? AND stock_applied = ?", order.ID, false).
				Update("stock_applied", true)
			if claim.Error != nil {
				return fmt.Errorf("claim stock decrement: %w", claim.Error)
			}
			if claim.RowsAffected == 1 {
				if err := f.decrementStock(tx, vendorID, order.Items); err != nil {
					return err
				}
				order.StockApplied = true
			}
		}

		if err := tx.Model(&order).Update("status", status).Error; err != nil {
			return fmt.Errorf("update status: %w", err)
		}
		order.Status = status
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &order, nil
}

func (f *Fulfillment) decrementStock(tx *gorm.DB, vendorID uint, items []models.OrderItem) error {
	for _, item := range items {
		var product models.Product
		err := tx.Preload("Variants", func(db *gorm.DB) *gorm.DB {
			return db.Order("position ASC, id ASC")
		}).Where("id = ? AND vendor_id = ?", item.ProductID, vendorID).First(&product).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			log.Printf("Order line references missing product %d, skipping stock decrement", item.ProductID)
			continue
		}
		if err != nil {
			return fmt.Errorf("load product %d: %w", item.ProductID, err)
		}

		index, ok := MatchVariant(product.Variants, item.Variant, !f.opts.StrictVariantMatch)
		if !ok {
			if len(product.Variants) == 0 {
				continue
			}
			return fmt.Errorf("%w: product %d size=%q color=%q", ErrNoMatchingVariant, product.ID, item.Variant.Size, item.Variant.Color)
		}

		if err := decrementVariant(tx, product.Variants[index].ID, item.Quantity); err != nil {
			return err
		}
	}
	return nil
}

// decrementVariant subtracts quantity from a variant, flooring at zero, in a
// single conditional statement.
func decrementVariant(tx *gorm.DB, variantID uint, quantity int) error {
	if quantity <= 0 {
		return nil
	}
	err := tx.Model(&models.ProductVariant{}).
		Where("id = ?", variantID).
		Update("stock", gorm.Expr("CASE WHEN stock > ? THEN stock - ? ELSE 0 END", quantity, quantity)).Error
	if err != nil {
		return fmt.Errorf("decrement variant %d: %w", variantID, err)
	}
	return nil
}
