package controllers

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/campusthreads/marketplace-api/initializers"
	"github.com/campusthreads/marketplace-api/models"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type productFilter struct {
	Query      string
	Categories []string
	MinPrice   *float64
	MaxPrice   *float64
	Color      string
	Size       string
	InStock    bool
}

func parseProductFilter(ctx *gin.Context) productFilter {
	f := productFilter{
		Query: strings.TrimSpace(ctx.Query("q")),
		Color: ctx.Query("color"),
		Size:  ctx.Query("size"),
	}
	for _, c := range strings.Split(ctx.Query("category"), ",") {
		if c = strings.TrimSpace(c); c != "" {
			f.Categories = append(f.Categories, c)
		}
	}
	if v, err := strconv.ParseFloat(ctx.Query("minPrice"), 64); err == nil {
		f.MinPrice = &v
	}
	if v, err := strconv.ParseFloat(ctx.Query("maxPrice"), 64); err == nil {
		f.MaxPrice = &v
	}
	f.InStock = ctx.Query("inStock") == "true"
	return f
}

// Variant filters are independent: color and size may match different
// variants of the same product.
func (f productFilter) apply(query *gorm.DB) *gorm.DB {
	if f.Query != "" {
		pattern := containsPattern(f.Query)
		query = query.Where("(LOWER(name) LIKE ? ESCAPE '!' OR LOWER(description) LIKE ? ESCAPE '!')", pattern, pattern)
	}
	if len(f.Categories) > 0 {
		query = query.Where("EXISTS (SELECT 1 FROM product_categories pc WHERE pc.product_id = products.id AND pc.name IN ?)", f.Categories)
	}
	if f.MinPrice != nil {
		query = query.Where("price >= ?", *f.MinPrice)
	}
	if f.MaxPrice != nil {
		query = query.Where("price <= ?", *f.MaxPrice)
	}
	if f.Color != "" {
		query = query.Where("EXISTS (SELECT 1 FROM product_variants pv WHERE pv.product_id = products.id AND pv.color = ?)", f.Color)
	}
	if f.Size != "" {
		query = query.Where("EXISTS (SELECT 1 FROM product_variants pv WHERE pv.product_id = products.id AND pv.size = ?)", f.Size)
	}
	if f.InStock {
		query = query.Where("EXISTS (SELECT 1 FROM product_variants pv WHERE pv.product_id = products.id AND pv.stock > 0)")
	}
	return query
}

func productSortOrder(sort string) string {
	switch sort {
	case "price_asc":
		return "price ASC, id ASC"
	case "price_desc":
		return "price DESC, id ASC"
	default:
		return "created_at DESC, id DESC"
	}
}

func withProductChildren(query *gorm.DB) *gorm.DB {
	return query.
		Preload("Variants", func(db *gorm.DB) *gorm.DB { return db.Order("position ASC, id ASC") }).
		Preload("Tags")
}

// GetProducts serves the public catalog query.
func GetProducts(ctx *gin.Context) {
	filter := parseProductFilter(ctx)
	page := parsePagination(ctx, 50)

	var total int64
	if err := filter.apply(initializers.DB.Model(&models.Product{})).Count(&total).Error; err != nil {
		respondServerError(ctx, "Unable to fetch products", err)
		return
	}

	products := []models.Product{}
	err := withProductChildren(filter.apply(initializers.DB.Model(&models.Product{}))).
		Order(productSortOrder(ctx.Query("sort"))).
		Limit(page.Limit).
		Offset(page.Offset()).
		Find(&products).Error
	if err != nil {
		respondServerError(ctx, "Unable to fetch products", err)
		return
	}

	sendJSONResponse(ctx, http.StatusOK, pageResponse(products, total, page))
}

func GetProduct(ctx *gin.Context) {
	productID, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	var product models.Product
	if err := withProductChildren(initializers.DB).First(&product, productID).Error; err != nil {
		respondLookupError(ctx, "Unable to retrieve product", err)
		return
	}

	sendJSONResponse(ctx, http.StatusOK, product)
}
