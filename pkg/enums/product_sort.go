package enums

import (
	"fmt"
	"strings"
)

// ProductSort is the ordering applied to a catalog listing.
type ProductSort string

const (
	ProductSortDefault   ProductSort = "default"
	ProductSortPriceLow  ProductSort = "price-low"
	ProductSortPriceHigh ProductSort = "price-high"
	ProductSortNewest    ProductSort = "newest"
)

var validProductSorts = []ProductSort{
	ProductSortDefault,
	ProductSortPriceLow,
	ProductSortPriceHigh,
	ProductSortNewest,
}

// String implements fmt.Stringer.
func (p ProductSort) String() string {
	return string(p)
}

// Label is the human-readable name shown in sort pickers.
func (p ProductSort) Label() string {
	switch p {
	case ProductSortPriceLow:
		return "Price: Low to High"
	case ProductSortPriceHigh:
		return "Price: High to Low"
	case ProductSortNewest:
		return "Newest first"
	default:
		return "Default sorting"
	}
}

// IsValid reports whether the value is a known ProductSort.
func (p ProductSort) IsValid() bool {
	for _, candidate := range validProductSorts {
		if candidate == p {
			return true
		}
	}
	return false
}

// ProductSorts lists every supported ordering.
func ProductSorts() []ProductSort {
	out := make([]ProductSort, len(validProductSorts))
	copy(out, validProductSorts)
	return out
}

// ParseProductSort converts raw input into a ProductSort; empty means default.
func ParseProductSort(value string) (ProductSort, error) {
	value = strings.ToLower(strings.TrimSpace(value))
	if value == "" {
		return ProductSortDefault, nil
	}
	for _, candidate := range validProductSorts {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid product sort %q", value)
}
