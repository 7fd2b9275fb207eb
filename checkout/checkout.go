package checkout

import (
	"context"
	"errors"
	"fmt"
)

var ErrNoOrders = errors.New("cart has no orderable items")

type OrderLine struct {
	ProductID uint     `json:"productId"`
	Quantity  int      `json:"quantity"`
	Price     float64  `json:"price"`
	Variant   *Variant `json:"variant,omitempty"`
}

// OrderRequest is the create-order payload for a single vendor.
type OrderRequest struct {
	VendorID uint        `json:"vendorId"`
	Items    []OrderLine `json:"items"`
}

type OrderCreator interface {
	CreateOrder(ctx context.Context, req OrderRequest) (uint, error)
}

// GroupByVendor splits cart lines into one request per vendor, in order of
// each vendor's first appearance. Lines without a vendor are dropped.
func GroupByVendor(items []Item) []OrderRequest {
	var requests []OrderRequest
	index := map[uint]int{}
	for _, item := range items {
		if item.VendorID == 0 {
			continue
		}
		i, ok := index[item.VendorID]
		if !ok {
			i = len(requests)
			index[item.VendorID] = i
			requests = append(requests, OrderRequest{VendorID: item.VendorID})
		}
		requests[i].Items = append(requests[i].Items, OrderLine{
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
			Price:     item.Price,
			Variant:   item.Variant,
		})
	}
	return requests
}

type Result struct {
	OrderIDs []uint
}

// Checkout creates one order per vendor in the cart, one request at a time.
// The first failed request stops the run; orders created before it stay in
// place and are returned alongside the error. The cart is cleared only when
// every request succeeded.
func Checkout(ctx context.Context, cart *Cart, creator OrderCreator) (Result, error) {
	var result Result

	requests := GroupByVendor(cart.Items())
	if len(requests) == 0 {
		return result, ErrNoOrders
	}

	for _, req := range requests {
		if err := ctx.Err(); err != nil {
			return result, err
		}
		id, err := creator.CreateOrder(ctx, req)
		if err != nil {
			return result, fmt.Errorf("create order for vendor %d: %w", req.VendorID, err)
		}
		if id == 0 {
			return result, fmt.Errorf("create order for vendor %d: response has no order id", req.VendorID)
		}
		result.OrderIDs = append(result.OrderIDs, id)
	}

	cart.Clear()
	return result, nil
}
