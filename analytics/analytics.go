// Package analytics computes read-only marketplace rollups over orders.
// Results are recomputed on every call.
package analytics

import (
	"sort"
	"time"
)

// TopN is the length of every ranking.
const TopN = 10

const dayLayout = "2006-01-02"

type Summary struct {
	Orders int     `json:"orders"`
	Gross  float64 `json:"gross"`
}

type DayBucket struct {
	Date   string  `json:"date"`
	Gross  float64 `json:"gross"`
	Orders int     `json:"orders"`
}

type VendorRank struct {
	VendorID  uint    `json:"vendorId"`
	StoreName string  `json:"storeName,omitempty"`
	Gross     float64 `json:"gross"`
	Orders    int     `json:"orders"`
}

type ProductRank struct {
	ProductID uint    `json:"productId"`
	Name      string  `json:"name,omitempty"`
	Image     string  `json:"image,omitempty"`
	Gross     float64 `json:"gross"`
	Units     int     `json:"units"`
}

// OrderTotal is the gross value of one order with at least one line.
type OrderTotal struct {
	OrderID   uint
	CreatedAt time.Time
	Gross     float64
}

// DailySeries buckets order totals by UTC calendar day of creation, in
// ascending date order. Days without orders are absent.
func DailySeries(totals []OrderTotal) []DayBucket {
	byDay := map[string]*DayBucket{}
	for _, o := range totals {
		day := o.CreatedAt.UTC().Format(dayLayout)
		bucket, ok := byDay[day]
		if !ok {
			bucket = &DayBucket{Date: day}
			byDay[day] = bucket
		}
		bucket.Orders++
		bucket.Gross += o.Gross
	}

	series := make([]DayBucket, 0, len(byDay))
	for _, bucket := range byDay {
		series = append(series, *bucket)
	}
	sort.Slice(series, func(i, j int) bool { return series[i].Date < series[j].Date })
	return series
}
