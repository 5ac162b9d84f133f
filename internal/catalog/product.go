package catalog

import (
	"regexp"
	"slices"
	"strings"
)

// Product is a read-only catalog entry. Prices are in the smallest currency unit.
type Product struct {
	ID            int      `json:"id"`
	Name          string   `json:"name"`
	Price         int64    `json:"price"`
	OriginalPrice *int64   `json:"originalPrice,omitempty"`
	Image         string   `json:"image"`
	Category      string   `json:"category"`
	IsNew         bool     `json:"isNew,omitempty"`
	IsFeatured    bool     `json:"isFeatured,omitempty"`
	IsOnSale      bool     `json:"isOnSale,omitempty"`
	Sizes         []string `json:"sizes,omitempty"`
	Description   string   `json:"description,omitempty"`
}

// RequiresSize reports whether a size must be picked before adding to a cart.
func (p Product) RequiresSize() bool {
	return len(p.Sizes) > 0
}

// HasSize reports whether size is one of the product's size labels.
func (p Product) HasSize(size string) bool {
	return slices.Contains(p.Sizes, size)
}

// DiscountPercent is the rounded markdown from the original price, or 0.
func (p Product) DiscountPercent() int {
	if p.OriginalPrice == nil || *p.OriginalPrice <= p.Price || *p.OriginalPrice <= 0 {
		return 0
	}
	off := *p.OriginalPrice - p.Price
	return int((off*100 + *p.OriginalPrice/2) / *p.OriginalPrice)
}

type Subcategory struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

type Category struct {
	ID            int           `json:"id"`
	Name          string        `json:"name"`
	Icon          string        `json:"icon"`
	Subcategories []Subcategory `json:"subcategories,omitempty"`
}

var whitespaceRun = regexp.MustCompile(`\s+`)

// Slugify lower-cases name and replaces whitespace runs with "-".
func Slugify(name string) string {
	return whitespaceRun.ReplaceAllString(strings.ToLower(strings.TrimSpace(name)), "-")
}

// Slug is the URL path segment for the category.
func (c Category) Slug() string {
	return Slugify(c.Name)
}

type Vehicle struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

// Collection is a featured merchandising banner.
type Collection struct {
	ID          int    `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Image       string `json:"image"`
}
