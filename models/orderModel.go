package models

import "gorm.io/gorm"

type OrderStatus string

const (
	StatusPending   OrderStatus = "pending"
	StatusPaid      OrderStatus = "paid"
	StatusShipped   OrderStatus = "shipped"
	StatusDelivered OrderStatus = "delivered"
	StatusCancelled OrderStatus = "cancelled"
)

var OrderStatuses = []OrderStatus{StatusPending, StatusPaid, StatusShipped, StatusDelivered, StatusCancelled}

func (s OrderStatus) Valid() bool {
	for _, known := range OrderStatuses {
		if s == known {
			return true
		}
	}
	return false
}

// VariantSelector picks a product variant; empty fields match anything.
type VariantSelector struct {
	Size  string `json:"size,omitempty"`
	Color string `json:"color,omitempty"`
}

func (v VariantSelector) IsEmpty() bool {
	return v.Size == "" && v.Color == ""
}

type Order struct {
	gorm.Model
	CustomerID uint        `json:"customerId" gorm:"index;not null"`
	VendorID   uint        `json:"vendorId" gorm:"index;not null"`
	Status     OrderStatus `json:"status" gorm:"size:16;default:pending"`
	Tracking   string      `json:"tracking,omitempty"`
	// StockApplied is set once the delivered-transition stock decrement has run.
	StockApplied bool        `json:"stockApplied" gorm:"not null;default:false"`
	Items        []OrderItem `json:"items" gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
}

type OrderItem struct {
	ID        uint            `json:"-"`
	OrderID   uint            `json:"-" gorm:"index;not null"`
	ProductID uint            `json:"productId" gorm:"index;not null"`
	Quantity  int             `json:"quantity"`
	Price     float64         `json:"price"`
	Variant   VariantSelector `json:"variant" gorm:"embedded;embeddedPrefix:variant_"`

	ProductName  string `json:"productName,omitempty" gorm:"-"`
	ProductImage string `json:"productImage,omitempty" gorm:"-"`
}

// Gross is the order value: unit price times quantity summed over the lines.
func (o Order) Gross() float64 {
	total := 0.0
	for _, item := range o.Items {
		total += item.Price * float64(item.Quantity)
	}
	return total
}

type OrderItemInput struct {
	ProductID uint             `json:"productId" binding:"required"`
	Quantity  int              `json:"quantity" binding:"required,gt=0"`
	Price     float64          `json:"price" binding:"required,gt=0"`
	Variant   *VariantSelector `json:"variant"`
}

func (in OrderItemInput) ToItem() OrderItem {
	item := OrderItem{ProductID: in.ProductID, Quantity: in.Quantity, Price: in.Price}
	if in.Variant != nil {
		item.Variant = *in.Variant
	}
	return item
}
