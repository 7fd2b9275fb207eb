package inventory

import "github.com/campusthreads/marketplace-api/models"

// MatchVariant returns the index of the variant an order line should draw
// stock from. A selector matches the first variant whose non-empty selector
// fields are equal. An empty selector takes the first variant. When a
// selector matches nothing and fallbackFirst is set, the first variant is
// used. ok is false when no variant can be chosen.
func MatchVariant(variants []models.ProductVariant, selector models.VariantSelector, fallbackFirst bool) (index int, ok bool) {
	if len(variants) == 0 {
		return -1, false
	}
	if selector.IsEmpty() {
		return 0, true
	}
	for i, v := range variants {
		if selector.Size != "" && v.Size != selector.Size {
			continue
		}
		if selector.Color != "" && v.Color != selector.Color {
			continue
		}
		return i, true
	}
	if fallbackFirst {
		return 0, true
	}
	return -1, false
}
