package catalog

import (
	"testing"

	"github.com/angelmondragon/ridegear-backend/pkg/enums"
	pkgerrors "github.com/angelmondragon/ridegear-backend/pkg/errors"
)

func ids(products []Product) []int {
	out := make([]int, len(products))
	for i, p := range products {
		out[i] = p.ID
	}
	return out
}

func equalInts(a, b []int) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func TestDefaultCatalogFixtures(t *testing.T) {
	c := Default()
	if got := len(c.Products()); got != 8 {
		t.Fatalf("expected 8 products got %d", got)
	}
	if got := len(c.Categories()); got != 6 {
		t.Fatalf("expected 6 categories got %d", got)
	}
	if got := len(c.Vehicles()); got != 6 {
		t.Fatalf("expected 6 vehicles got %d", got)
	}
	if got := len(c.Collections()); got != 3 {
		t.Fatalf("expected 3 collections got %d", got)
	}

	helmet, err := c.Product(1)
	if err != nil {
		t.Fatalf("product 1: %v", err)
	}
	if helmet.Price != 8990 || helmet.OriginalPrice == nil || *helmet.OriginalPrice != 10990 {
		t.Fatalf("unexpected helmet prices %+v", helmet)
	}
	if !helmet.RequiresSize() || !helmet.HasSize("XL") || helmet.HasSize("XXL") {
		t.Fatalf("unexpected helmet sizes %v", helmet.Sizes)
	}
}

func TestProductNotFound(t *testing.T) {
	_, err := Default().Product(999)
	if !pkgerrors.HasCode(err, pkgerrors.CodeNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestNewRejectsDuplicateIDs(t *testing.T) {
	_, err := New([]Product{{ID: 1}, {ID: 1}}, nil, nil, nil)
	if !pkgerrors.HasCode(err, pkgerrors.CodeConflict) {
		t.Fatalf("expected conflict, got %v", err)
	}
}

func TestDiscountPercent(t *testing.T) {
	cases := []struct {
		name string
		p    Product
		want int
	}{
		{"no original", Product{Price: 100}, 0},
		{"helmet", Product{Price: 8990, OriginalPrice: price(10990)}, 18},
		{"filter", Product{Price: 1450, OriginalPrice: price(1850)}, 22},
		{"original below price", Product{Price: 100, OriginalPrice: price(90)}, 0},
	}
	for _, tc := range cases {
		if got := tc.p.DiscountPercent(); got != tc.want {
			t.Fatalf("%s: expected %d got %d", tc.name, tc.want, got)
		}
	}
}

func TestCategorySlug(t *testing.T) {
	c := Default()
	cat, err := c.CategoryBySlug("luggage-and-touring")
	if err != nil {
		t.Fatalf("slug lookup: %v", err)
	}
	if cat.Name != "Luggage and Touring" || len(cat.Subcategories) != 4 {
		t.Fatalf("unexpected category %+v", cat)
	}
	if Slugify("  Motorcycle   Accessories ") != "motorcycle-accessories" {
		t.Fatalf("unexpected slug %q", Slugify("  Motorcycle   Accessories "))
	}
	if _, err := c.CategoryBySlug("bicycles"); !pkgerrors.HasCode(err, pkgerrors.CodeNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestQuerySorting(t *testing.T) {
	c := Default()

	cases := []struct {
		sort enums.ProductSort
		want []int
	}{
		{enums.ProductSortDefault, []int{1, 2, 3, 4, 5, 6, 7, 8}},
		{enums.ProductSortPriceLow, []int{3, 2, 8, 7, 4, 1, 6, 5}},
		{enums.ProductSortPriceHigh, []int{5, 6, 1, 4, 7, 2, 8, 3}},
		{enums.ProductSortNewest, []int{2, 3, 7, 8, 1, 4, 5, 6}},
	}
	for _, tc := range cases {
		got, err := c.Query(Query{Sort: tc.sort})
		if err != nil {
			t.Fatalf("%s: %v", tc.sort, err)
		}
		if !equalInts(ids(got), tc.want) {
			t.Fatalf("%s: expected %v got %v", tc.sort, tc.want, ids(got))
		}
	}
}

func TestQueryFilters(t *testing.T) {
	c := Default()

	got, err := c.Query(Query{CategorySlug: "helmets"})
	if err != nil {
		t.Fatalf("category: %v", err)
	}
	if !equalInts(ids(got), []int{1, 5}) {
		t.Fatalf("unexpected helmets %v", ids(got))
	}

	got, _ = c.Query(Query{OnSaleOnly: true, NewOnly: true})
	if !equalInts(ids(got), []int{3, 7}) {
		t.Fatalf("unexpected new sale items %v", ids(got))
	}

	got, _ = c.Query(Query{FeaturedOnly: true})
	if !equalInts(ids(got), []int{1, 4, 6}) {
		t.Fatalf("unexpected featured items %v", ids(got))
	}

	got, _ = c.Query(Query{Search: "HELMET"})
	if !equalInts(ids(got), []int{1, 5}) {
		t.Fatalf("unexpected search hits %v", ids(got))
	}

	if _, err := c.Query(Query{CategorySlug: "nope"}); !pkgerrors.HasCode(err, pkgerrors.CodeNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
	if _, err := c.Query(Query{Sort: "random"}); !pkgerrors.HasCode(err, pkgerrors.CodeValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestAccessorsReturnCopies(t *testing.T) {
	c := Default()
	products := c.Products()
	products[0].Name = "mutated"
	if p, _ := c.Product(1); p.Name == "mutated" {
		t.Fatal("catalog mutated through Products()")
	}
	again := c.Products()
	if again[0].Name == "mutated" {
		t.Fatal("catalog slice mutated through Products()")
	}
}
