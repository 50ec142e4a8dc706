package controllers

import (
	"net/http"

	"github.com/adiwijaya/tokokita-backend/api/responses"
	"github.com/adiwijaya/tokokita-backend/api/validators"
	"github.com/adiwijaya/tokokita-backend/internal/session"
	pkgerrors "github.com/adiwijaya/tokokita-backend/pkg/errors"
	"github.com/adiwijaya/tokokita-backend/pkg/logger"
)

// TransactionList returns the full transaction log in append order.
func TransactionList(sess *session.Session, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if sess == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "session unavailable"))
			return
		}

		entries := sess.Transactions()
		out := make([]transactionResponse, 0, len(entries))
		for _, txn := range entries {
			out = append(out, newTransactionResponse(txn))
		}
		responses.WriteSuccess(w, out)
	}
}

// TransactionGet returns one transaction by id.
func TransactionGet(sess *session.Session, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if sess == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "session unavailable"))
			return
		}

		id, err := validators.PathInt64(r, "id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		txn, ok := sess.Transaction(id)
		if !ok {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeNotFound, "transaction not found"))
			return
		}
		responses.WriteSuccess(w, newTransactionResponse(txn))
	}
}

// TransactionDelete removes one transaction from the log and persists
// the shrunken log. Deleting an unknown id succeeds without change.
func TransactionDelete(sess *session.Session, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if sess == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "session unavailable"))
			return
		}

		id, err := validators.PathInt64(r, "id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		if err := sess.DeleteTransaction(r.Context(), id); err != nil {
			typed := pkgerrors.As(err)
			if typed != nil && typed.Code() == pkgerrors.CodePersistenceWrite {
				responses.WriteSuccessWarning(w, http.StatusOK, map[string]any{"deleted": id}, typed)
				return
			}
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]any{"deleted": id})
	}
}
