package controllers

import (
	"net/http"
	"time"

	"github.com/adiwijaya/tokokita-backend/api/responses"
	"github.com/adiwijaya/tokokita-backend/api/validators"
	"github.com/adiwijaya/tokokita-backend/internal/cart"
	"github.com/adiwijaya/tokokita-backend/internal/checkout"
	"github.com/adiwijaya/tokokita-backend/internal/transactions"
	pkgerrors "github.com/adiwijaya/tokokita-backend/pkg/errors"
	"github.com/adiwijaya/tokokita-backend/pkg/logger"
)

// Checkout finalizes the cart against the tendered amount. The amount
// travels as a string so the client's raw input reaches validation
// unrounded.
func Checkout(svc checkout.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "checkout service unavailable"))
			return
		}

		var payload checkoutRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		result, err := svc.Checkout(r.Context(), payload.Amount)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		body := newTransactionResponse(result.Transaction)
		if result.PersistWarning != nil {
			responses.WriteSuccessWarning(w, http.StatusCreated, body, result.PersistWarning)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, body)
	}
}

type checkoutRequest struct {
	Amount string `json:"amount" validate:"required"`
}

type transactionResponse struct {
	ID            int64       `json:"id"`
	Timestamp     time.Time   `json:"timestamp"`
	Items         []cart.Line `json:"items"`
	Total         string      `json:"total"`
	PaymentAmount string      `json:"paymentAmount"`
	Change        string      `json:"change"`
}

func newTransactionResponse(txn transactions.Transaction) transactionResponse {
	items := txn.Items
	if items == nil {
		items = []cart.Line{}
	}
	return transactionResponse{
		ID:            txn.ID,
		Timestamp:     txn.Timestamp().UTC(),
		Items:         items,
		Total:         txn.Total.String(),
		PaymentAmount: txn.PaymentAmount.String(),
		Change:        txn.Change.String(),
	}
}
