package models

import (
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// ProductVariant is one size/color combination with its own stock count.
// Position keeps the vendor-supplied order; the variant at position 0 is the
// product's first variant.
type ProductVariant struct {
	ID        uint   `json:"id"`
	ProductID uint   `json:"-" gorm:"index;not null"`
	Position  int    `json:"-"`
	Size      string `json:"size"`
	Color     string `json:"color"`
	Stock     int    `json:"stock" gorm:"not null;default:0"`
}

type ProductCategory struct {
	ID        uint   `json:"-"`
	ProductID uint   `json:"-" gorm:"index;not null"`
	Name      string `json:"-" gorm:"size:128;index"`
}

type Product struct {
	gorm.Model
	VendorID    uint                        `json:"vendorId" gorm:"index;not null"`
	Name        string                      `json:"name" gorm:"not null"`
	Description string                      `json:"description,omitempty"`
	Price       float64                     `json:"price" gorm:"not null"`
	Images      datatypes.JSONSlice[string] `json:"images"`
	Variants    []ProductVariant            `json:"variants" gorm:"foreignKey:ProductID;constraint:OnDelete:CASCADE"`
	Tags        []ProductCategory           `json:"-" gorm:"foreignKey:ProductID;constraint:OnDelete:CASCADE"`
	Categories  []string                    `json:"categories" gorm:"-"`
}

// AfterFind exposes the preloaded category tags as a plain string list.
func (p *Product) AfterFind(tx *gorm.DB) error {
	if len(p.Tags) == 0 {
		if p.Categories == nil {
			p.Categories = []string{}
		}
		return nil
	}
	p.Categories = make([]string, 0, len(p.Tags))
	for _, tag := range p.Tags {
		p.Categories = append(p.Categories, tag.Name)
	}
	return nil
}

// TotalStock is the sum of all variant stock counts.
func (p Product) TotalStock() int {
	total := 0
	for _, v := range p.Variants {
		total += v.Stock
	}
	return total
}

func (p Product) InStock() bool {
	return p.TotalStock() > 0
}

// BuildTags turns a category list into tag rows, dropping blanks and duplicates.
func BuildTags(categories []string) []ProductCategory {
	seen := make(map[string]bool, len(categories))
	tags := make([]ProductCategory, 0, len(categories))
	for _, name := range categories {
		if name == "" || seen[name] {
			continue
		}
		seen[name] = true
		tags = append(tags, ProductCategory{Name: name})
	}
	return tags
}

// VariantInput is the vendor-facing shape of a variant in create/update bodies.
type VariantInput struct {
	Size  string `json:"size"`
	Color string `json:"color"`
	Stock int    `json:"stock" binding:"gte=0"`
}

func BuildVariants(inputs []VariantInput) []ProductVariant {
	variants := make([]ProductVariant, 0, len(inputs))
	for i, in := range inputs {
		variants = append(variants, ProductVariant{
			Position: i,
			Size:     in.Size,
			Color:    in.Color,
			Stock:    in.Stock,
		})
	}
	return variants
}
