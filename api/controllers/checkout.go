package controllers

import (
	"net/http"

	"github.com/angelmondragon/ridegear-backend/api/responses"
	checkoutsvc "github.com/angelmondragon/ridegear-backend/internal/checkout"
	"github.com/angelmondragon/ridegear-backend/pkg/logger"
)

// CheckoutBegin starts the simulated checkout and answers 202 while it runs.
func CheckoutBegin(svc checkoutsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		cartID, ok := cartIDOrError(w, r, logg)
		if !ok {
			return
		}
		record, err := svc.Begin(r.Context(), cartID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(r.Context(), w, http.StatusAccepted, record)
	}
}

func CheckoutStatus(svc checkoutsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		cartID, ok := cartIDOrError(w, r, logg)
		if !ok {
			return
		}
		responses.WriteSuccess(r.Context(), w, svc.Status(cartID))
	}
}
