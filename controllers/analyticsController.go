package controllers

import (
	"net/http"

	"github.com/campusthreads/marketplace-api/analytics"
	"github.com/campusthreads/marketplace-api/initializers"
	"github.com/gin-gonic/gin"
)

// Marketplace rollups report order value as "gmv", vendor rollups as
// "revenue".
const (
	gmvKey     = "gmv"
	revenueKey = "revenue"
)

func analyticsStore() *analytics.Store {
	return analytics.NewStore(initializers.DB)
}

func seriesResponse(buckets []analytics.DayBucket, valueKey string) []gin.H {
	out := make([]gin.H, 0, len(buckets))
	for _, b := range buckets {
		out = append(out, gin.H{"date": b.Date, valueKey: b.Gross, "orders": b.Orders})
	}
	return out
}

func productRanksResponse(ranks []analytics.ProductRank, valueKey string) []gin.H {
	out := make([]gin.H, 0, len(ranks))
	for _, r := range ranks {
		out = append(out, gin.H{
			"productId": r.ProductID,
			"name":      r.Name,
			"image":     r.Image,
			valueKey:    r.Gross,
			"units":     r.Units,
		})
	}
	return out
}

func GetMarketplaceSummary(ctx *gin.Context) {
	store := analyticsStore()

	vendors, err := store.VendorCount(ctx.Request.Context())
	if err != nil {
		respondServerError(ctx, "Unable to count vendors", err)
		return
	}
	summary, err := store.Summary(ctx.Request.Context(), analytics.Marketplace())
	if err != nil {
		respondServerError(ctx, "Unable to summarise orders", err)
		return
	}

	sendJSONResponse(ctx, http.StatusOK, gin.H{"vendors": vendors, "orders": summary.Orders, gmvKey: summary.Gross})
}

func GetMarketplaceTimeSeries(ctx *gin.Context) {
	series, err := analyticsStore().TimeSeries(ctx.Request.Context(), analytics.Marketplace())
	if err != nil {
		respondServerError(ctx, "Unable to build time series", err)
		return
	}
	sendJSONResponse(ctx, http.StatusOK, seriesResponse(series, gmvKey))
}

func GetMarketplaceTop(ctx *gin.Context) {
	store := analyticsStore()

	vendors, err := store.TopVendors(ctx.Request.Context())
	if err != nil {
		respondServerError(ctx, "Unable to rank vendors", err)
		return
	}
	products, err := store.TopProducts(ctx.Request.Context(), analytics.Marketplace())
	if err != nil {
		respondServerError(ctx, "Unable to rank products", err)
		return
	}

	topVendors := make([]gin.H, 0, len(vendors))
	for _, v := range vendors {
		topVendors = append(topVendors, gin.H{
			"vendorId":  v.VendorID,
			"storeName": v.StoreName,
			gmvKey:      v.Gross,
			"orders":    v.Orders,
		})
	}

	sendJSONResponse(ctx, http.StatusOK, gin.H{
		"topVendors":  topVendors,
		"topProducts": productRanksResponse(products, gmvKey),
	})
}

func GetVendorSummary(ctx *gin.Context) {
	summary, err := analyticsStore().Summary(ctx.Request.Context(), analytics.ForVendor(currentVendorID(ctx)))
	if err != nil {
		respondServerError(ctx, "Unable to summarise orders", err)
		return
	}
	sendJSONResponse(ctx, http.StatusOK, gin.H{"orders": summary.Orders, revenueKey: summary.Gross})
}

func GetVendorTimeSeries(ctx *gin.Context) {
	series, err := analyticsStore().TimeSeries(ctx.Request.Context(), analytics.ForVendor(currentVendorID(ctx)))
	if err != nil {
		respondServerError(ctx, "Unable to build time series", err)
		return
	}
	sendJSONResponse(ctx, http.StatusOK, seriesResponse(series, revenueKey))
}

func GetVendorTopProducts(ctx *gin.Context) {
	products, err := analyticsStore().TopProducts(ctx.Request.Context(), analytics.ForVendor(currentVendorID(ctx)))
	if err != nil {
		respondServerError(ctx, "Unable to rank products", err)
		return
	}
	sendJSONResponse(ctx, http.StatusOK, productRanksResponse(products, revenueKey))
}
