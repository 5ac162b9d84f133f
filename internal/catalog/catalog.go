package catalog

import (
	"slices"
	"sort"
	"strings"

	"github.com/angelmondragon/ridegear-backend/pkg/enums"
	pkgerrors "github.com/angelmondragon/ridegear-backend/pkg/errors"
)

// Catalog is an immutable, in-process product catalog.
type Catalog struct {
	products    []Product
	byID        map[int]Product
	categories  []Category
	vehicles    []Vehicle
	collections []Collection
}

// Query filters and orders a product listing. Zero value lists everything.
type Query struct {
	CategorySlug string
	Search       string
	Sort         enums.ProductSort
	NewOnly      bool
	FeaturedOnly bool
	OnSaleOnly   bool
}

// New builds a catalog. Product ids must be unique.
func New(products []Product, categories []Category, vehicles []Vehicle, collections []Collection) (*Catalog, error) {
	byID := make(map[int]Product, len(products))
	for _, p := range products {
		if _, dup := byID[p.ID]; dup {
			return nil, pkgerrors.Newf(pkgerrors.CodeConflict, "duplicate product id %d", p.ID)
		}
		byID[p.ID] = p
	}
	return &Catalog{
		products:    slices.Clone(products),
		byID:        byID,
		categories:  slices.Clone(categories),
		vehicles:    slices.Clone(vehicles),
		collections: slices.Clone(collections),
	}, nil
}

// Default returns the storefront's built-in catalog.
func Default() *Catalog {
	c, err := New(fixtureProducts, fixtureCategories, fixtureVehicles, fixtureCollections)
	if err != nil {
		panic(err)
	}
	return c
}

// Product looks a product up by id.
func (c *Catalog) Product(id int) (Product, error) {
	p, ok := c.byID[id]
	if !ok {
		return Product{}, pkgerrors.Newf(pkgerrors.CodeNotFound, "product %d not found", id)
	}
	return p, nil
}

func (c *Catalog) Products() []Product {
	return slices.Clone(c.products)
}

func (c *Catalog) Categories() []Category {
	return slices.Clone(c.categories)
}

// CategoryBySlug resolves a slug such as "riding-gears".
func (c *Catalog) CategoryBySlug(slug string) (Category, error) {
	slug = strings.ToLower(strings.TrimSpace(slug))
	for _, cat := range c.categories {
		if cat.Slug() == slug {
			return cat, nil
		}
	}
	return Category{}, pkgerrors.Newf(pkgerrors.CodeNotFound, "category %q not found", slug)
}

func (c *Catalog) Vehicles() []Vehicle {
	return slices.Clone(c.vehicles)
}

func (c *Catalog) Collections() []Collection {
	return slices.Clone(c.collections)
}

// Query returns the products matching q in the requested order. An unknown
// category slug is a not-found error rather than an empty page.
func (c *Catalog) Query(q Query) ([]Product, error) {
	sortBy := q.Sort
	if sortBy == "" {
		sortBy = enums.ProductSortDefault
	}
	if !sortBy.IsValid() {
		return nil, pkgerrors.Newf(pkgerrors.CodeValidation, "invalid sort %q", sortBy)
	}

	category := ""
	if strings.TrimSpace(q.CategorySlug) != "" {
		cat, err := c.CategoryBySlug(q.CategorySlug)
		if err != nil {
			return nil, err
		}
		category = cat.Name
	}
	search := strings.ToLower(strings.TrimSpace(q.Search))

	out := make([]Product, 0, len(c.products))
	for _, p := range c.products {
		switch {
		case category != "" && p.Category != category:
			continue
		case q.NewOnly && !p.IsNew:
			continue
		case q.FeaturedOnly && !p.IsFeatured:
			continue
		case q.OnSaleOnly && !p.IsOnSale:
			continue
		case search != "" && !strings.Contains(strings.ToLower(p.Name), search):
			continue
		}
		out = append(out, p)
	}

	switch sortBy {
	case enums.ProductSortPriceLow:
		sort.SliceStable(out, func(i, j int) bool { return out[i].Price < out[j].Price })
	case enums.ProductSortPriceHigh:
		sort.SliceStable(out, func(i, j int) bool { return out[i].Price > out[j].Price })
	case enums.ProductSortNewest:
		sort.SliceStable(out, func(i, j int) bool { return out[i].IsNew && !out[j].IsNew })
	}
	return out, nil
}
