package controllers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/angelmondragon/ridegear-backend/api/responses"
	"github.com/angelmondragon/ridegear-backend/api/validators"
	"github.com/angelmondragon/ridegear-backend/internal/catalog"
	"github.com/angelmondragon/ridegear-backend/pkg/enums"
	pkgerrors "github.com/angelmondragon/ridegear-backend/pkg/errors"
	"github.com/angelmondragon/ridegear-backend/pkg/logger"
	"github.com/angelmondragon/ridegear-backend/pkg/types"
)

const maxSearchLength = 100

type productResponse struct {
	catalog.Product
	DiscountPercent      int          `json:"discountPercent,omitempty"`
	DisplayPrice         types.Money  `json:"displayPrice"`
	DisplayOriginalPrice *types.Money `json:"displayOriginalPrice,omitempty"`
}

func newProductResponse(p catalog.Product, money types.MoneyFormatter) productResponse {
	resp := productResponse{
		Product:         p,
		DiscountPercent: p.DiscountPercent(),
		DisplayPrice:    money.Format(p.Price),
	}
	if p.OriginalPrice != nil {
		original := money.Format(*p.OriginalPrice)
		resp.DisplayOriginalPrice = &original
	}
	return resp
}

func newProductListResponse(products []catalog.Product, money types.MoneyFormatter) []productResponse {
	out := make([]productResponse, len(products))
	for i, p := range products {
		out[i] = newProductResponse(p, money)
	}
	return out
}

type categoryResponse struct {
	catalog.Category
	Slug string `json:"slug"`
}

type sortOptionResponse struct {
	Value string `json:"value"`
	Label string `json:"label"`
}

type productListResponse struct {
	Products []productResponse    `json:"products"`
	Total    int                  `json:"total"`
	Sort     string               `json:"sort"`
	Sorts    []sortOptionResponse `json:"sorts"`
}

func parseCatalogQuery(r *http.Request) (catalog.Query, error) {
	sortBy, err := enums.ParseProductSort(r.URL.Query().Get("sort"))
	if err != nil {
		return catalog.Query{}, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid sort").
			WithDetails(map[string]any{"field": "sort"})
	}
	newOnly, err := validators.ParseQueryBool(r, "new")
	if err != nil {
		return catalog.Query{}, err
	}
	featuredOnly, err := validators.ParseQueryBool(r, "featured")
	if err != nil {
		return catalog.Query{}, err
	}
	saleOnly, err := validators.ParseQueryBool(r, "sale")
	if err != nil {
		return catalog.Query{}, err
	}
	return catalog.Query{
		CategorySlug: validators.SanitizeString(r.URL.Query().Get("category"), maxSearchLength),
		Search:       validators.SanitizeString(r.URL.Query().Get("q"), maxSearchLength),
		Sort:         sortBy,
		NewOnly:      newOnly,
		FeaturedOnly: featuredOnly,
		OnSaleOnly:   saleOnly,
	}, nil
}

func writeProductList(w http.ResponseWriter, r *http.Request, cat *catalog.Catalog, q catalog.Query, money types.MoneyFormatter, logg *logger.Logger) {
	products, err := cat.Query(q)
	if err != nil {
		responses.WriteError(r.Context(), logg, w, err)
		return
	}
	sorts := enums.ProductSorts()
	options := make([]sortOptionResponse, len(sorts))
	for i, s := range sorts {
		options[i] = sortOptionResponse{Value: s.String(), Label: s.Label()}
	}
	responses.WriteSuccess(r.Context(), w, productListResponse{
		Products: newProductListResponse(products, money),
		Total:    len(products),
		Sort:     q.Sort.String(),
		Sorts:    options,
	})
}

// CatalogProducts lists products filtered by ?category, ?q, ?new, ?featured and
// ?sale, ordered by ?sort.
func CatalogProducts(cat *catalog.Catalog, money types.MoneyFormatter, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		q, err := parseCatalogQuery(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		writeProductList(w, r, cat, q, money, logg)
	}
}

func CatalogCategoryProducts(cat *catalog.Catalog, money types.MoneyFormatter, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		q, err := parseCatalogQuery(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		q.CategorySlug = chi.URLParam(r, "slug")
		writeProductList(w, r, cat, q, money, logg)
	}
}

func CatalogProduct(cat *catalog.Catalog, money types.MoneyFormatter, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := validators.ParsePathInt(r, "productId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		product, err := cat.Product(id)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(r.Context(), w, newProductResponse(product, money))
	}
}

func CatalogCategories(cat *catalog.Catalog) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		categories := cat.Categories()
		out := make([]categoryResponse, len(categories))
		for i, c := range categories {
			out[i] = categoryResponse{Category: c, Slug: c.Slug()}
		}
		responses.WriteSuccess(r.Context(), w, out)
	}
}

func CatalogVehicles(cat *catalog.Catalog) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		responses.WriteSuccess(r.Context(), w, cat.Vehicles())
	}
}

func CatalogCollections(cat *catalog.Catalog) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		responses.WriteSuccess(r.Context(), w, cat.Collections())
	}
}
