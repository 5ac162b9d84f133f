package controllers

import (
	"net/http"

	"github.com/angelmondragon/ridegear-backend/api/middleware"
	"github.com/angelmondragon/ridegear-backend/api/responses"
	"github.com/angelmondragon/ridegear-backend/api/validators"
	cartsvc "github.com/angelmondragon/ridegear-backend/internal/cart"
	pkgerrors "github.com/angelmondragon/ridegear-backend/pkg/errors"
	"github.com/angelmondragon/ridegear-backend/pkg/logger"
)

const maxSizeLength = 16

type addCartItemRequest struct {
	ProductID int    `json:"product_id" validate:"required,min=1"`
	Quantity  int    `json:"quantity" validate:"required,min=1"`
	Size      string `json:"size" validate:"max=16"`
}

type updateCartItemRequest struct {
	Quantity *int `json:"quantity" validate:"required"`
}

func cartIDOrError(w http.ResponseWriter, r *http.Request, logg *logger.Logger) (string, bool) {
	cartID := middleware.CartIDFromContext(r.Context())
	if cartID == "" {
		responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "cart context missing"))
		return "", false
	}
	return cartID, true
}

// CartView returns the visitor's cart with derived count and total.
func CartView(svc cartsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		cartID, ok := cartIDOrError(w, r, logg)
		if !ok {
			return
		}
		view, err := svc.View(r.Context(), cartID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(r.Context(), w, view)
	}
}

// CartAddItem adds a product, merging into an existing line with the same size.
func CartAddItem(svc cartsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		cartID, ok := cartIDOrError(w, r, logg)
		if !ok {
			return
		}

		var payload addCartItemRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		view, err := svc.Add(r.Context(), cartID, cartsvc.AddInput{
			ProductID: payload.ProductID,
			Quantity:  payload.Quantity,
			Size:      validators.SanitizeString(payload.Size, maxSizeLength),
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(r.Context(), w, view)
	}
}

// CartUpdateItem sets the quantity on every line of a product; zero removes it.
func CartUpdateItem(svc cartsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		cartID, ok := cartIDOrError(w, r, logg)
		if !ok {
			return
		}
		productID, err := validators.ParsePathInt(r, "productId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload updateCartItemRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		view, err := svc.UpdateQuantity(r.Context(), cartID, productID, *payload.Quantity)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(r.Context(), w, view)
	}
}

// CartRemoveItem removes every line of a product, or only the ?size= variant
// when that parameter is present.
func CartRemoveItem(svc cartsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		cartID, ok := cartIDOrError(w, r, logg)
		if !ok {
			return
		}
		productID, err := validators.ParsePathInt(r, "productId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var view cartsvc.View
		if r.URL.Query().Has("size") {
			size := validators.SanitizeString(r.URL.Query().Get("size"), maxSizeLength)
			view, err = svc.RemoveVariant(r.Context(), cartID, productID, size)
		} else {
			view, err = svc.Remove(r.Context(), cartID, productID)
		}
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(r.Context(), w, view)
	}
}

func CartClear(svc cartsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		cartID, ok := cartIDOrError(w, r, logg)
		if !ok {
			return
		}
		view, err := svc.Clear(r.Context(), cartID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(r.Context(), w, view)
	}
}
