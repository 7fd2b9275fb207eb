package analytics

import (
	"context"

	"github.com/campusthreads/marketplace-api/models"
	"gorm.io/gorm"
)

const lineGross = "order_items.price * order_items.quantity"

// Scope selects the orders an aggregation runs over. A nil VendorID means
// the whole marketplace.
type Scope struct {
	VendorID *uint
}

func Marketplace() Scope { return Scope{} }

func ForVendor(vendorID uint) Scope { return Scope{VendorID: &vendorID} }

// Store runs the aggregations in the database; only the rollup rows are
// loaded.
type Store struct {
	db *gorm.DB
}

func NewStore(db *gorm.DB) *Store {
	return &Store{db: db}
}

// lines joins order lines to their live orders within the scope.
func (s *Store) lines(ctx context.Context, scope Scope) *gorm.DB {
	query := s.db.WithContext(ctx).
		Model(&models.OrderItem{}).
		Joins("JOIN orders ON orders.id = order_items.order_id").
		Where("orders.deleted_at IS NULL")
	if scope.VendorID != nil {
		query = query.Where("orders.vendor_id = ?", *scope.VendorID)
	}
	return query
}

// Summary counts the orders that have at least one line and sums their
// gross value.
func (s *Store) Summary(ctx context.Context, scope Scope) (Summary, error) {
	var summary Summary
	err := s.lines(ctx, scope).
		Select("COUNT(DISTINCT orders.id) AS orders, COALESCE(SUM(" + lineGross + "), 0) AS gross").
		Scan(&summary).Error
	return summary, err
}

func (s *Store) VendorCount(ctx context.Context) (int64, error) {
	var count int64
	err := s.db.WithContext(ctx).Model(&models.Vendor{}).Count(&count).Error
	return count, err
}

// TimeSeries totals each order in SQL and buckets the totals by day in Go,
// since date formatting differs between dialects.
func (s *Store) TimeSeries(ctx context.Context, scope Scope) ([]DayBucket, error) {
	var totals []OrderTotal
	err := s.lines(ctx, scope).
		Select("orders.id AS order_id, orders.created_at AS created_at, SUM(" + lineGross + ") AS gross").
		Group("orders.id, orders.created_at").
		Scan(&totals).Error
	if err != nil {
		return nil, err
	}
	return DailySeries(totals), nil
}

// TopVendors ranks vendors by gross value, descending, ties by ascending id.
// Orders counts every order of the vendor, including ones without lines.
func (s *Store) TopVendors(ctx context.Context) ([]VendorRank, error) {
	ranks := []VendorRank{}
	err := s.db.WithContext(ctx).
		Model(&models.Order{}).
		Joins("LEFT JOIN order_items ON order_items.order_id = orders.id").
		Select("orders.vendor_id AS vendor_id, COALESCE(SUM(" + lineGross + "), 0) AS gross, COUNT(DISTINCT orders.id) AS orders").
		Group("orders.vendor_id").
		Order("gross DESC, vendor_id ASC").
		Limit(TopN).
		Scan(&ranks).Error
	if err != nil || len(ranks) == 0 {
		return ranks, err
	}

	ids := make([]uint, len(ranks))
	for i, r := range ranks {
		ids[i] = r.VendorID
	}
	var vendors []models.Vendor
	if err := s.db.WithContext(ctx).Unscoped().Where("id IN ?", ids).Find(&vendors).Error; err != nil {
		return nil, err
	}
	names := make(map[uint]string, len(vendors))
	for _, v := range vendors {
		names[v.ID] = v.StoreName
	}
	for i := range ranks {
		ranks[i].StoreName = names[ranks[i].VendorID]
	}
	return ranks, nil
}

// TopProducts ranks products by gross value, descending, ties by ascending id.
func (s *Store) TopProducts(ctx context.Context, scope Scope) ([]ProductRank, error) {
	ranks := []ProductRank{}
	err := s.lines(ctx, scope).
		Select("order_items.product_id AS product_id, SUM(" + lineGross + ") AS gross, SUM(order_items.quantity) AS units").
		Group("order_items.product_id").
		Order("gross DESC, product_id ASC").
		Limit(TopN).
		Scan(&ranks).Error
	if err != nil || len(ranks) == 0 {
		return ranks, err
	}

	ids := make([]uint, len(ranks))
	for i, r := range ranks {
		ids[i] = r.ProductID
	}
	var products []models.Product
	if err := s.db.WithContext(ctx).Unscoped().Where("id IN ?", ids).Find(&products).Error; err != nil {
		return nil, err
	}
	byID := make(map[uint]models.Product, len(products))
	for _, p := range products {
		byID[p.ID] = p
	}
	for i := range ranks {
		p, ok := byID[ranks[i].ProductID]
		if !ok {
			continue
		}
		ranks[i].Name = p.Name
		if len(p.Images) > 0 {
			ranks[i].Image = p.Images[0]
		}
	}
	return ranks, nil
}
