package controllers

import (
	"net/http"

	"github.com/shopspring/decimal"

	"github.com/adiwijaya/tokokita-backend/api/responses"
	"github.com/adiwijaya/tokokita-backend/api/validators"
	"github.com/adiwijaya/tokokita-backend/internal/cart"
	"github.com/adiwijaya/tokokita-backend/internal/session"
	pkgerrors "github.com/adiwijaya/tokokita-backend/pkg/errors"
	"github.com/adiwijaya/tokokita-backend/pkg/logger"
)

// CartView returns the current cart lines with the derived count and
// total.
func CartView(sess *session.Session, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if sess == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "session unavailable"))
			return
		}
		responses.WriteSuccess(w, newCartResponse(sess))
	}
}

// CartAddItem puts one more unit of the posted product into the cart.
func CartAddItem(sess *session.Session, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if sess == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "session unavailable"))
			return
		}

		var payload addItemRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		if payload.Price.IsNegative() {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeValidation, "price must not be negative").
				WithDetails(map[string]any{"price": payload.Price.String()}))
			return
		}

		sess.Apply(cart.AddItem{Product: cart.Product{
			ID:        payload.ID,
			Title:     payload.Title,
			UnitPrice: payload.Price,
			Thumbnail: payload.Thumbnail,
			Category:  payload.Category,
		}})

		responses.WriteSuccessStatus(w, http.StatusCreated, newCartResponse(sess))
	}
}

// CartUpdateQuantity shifts the quantity of an existing line by delta,
// clamped at one. Unknown product ids leave the cart unchanged.
func CartUpdateQuantity(sess *session.Session, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if sess == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "session unavailable"))
			return
		}

		productID, err := validators.PathString(r, "productId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload updateQuantityRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		sess.Apply(cart.UpdateQuantity{ProductID: productID, Delta: payload.Delta})
		responses.WriteSuccess(w, newCartResponse(sess))
	}
}

// CartRemoveItem drops the line for the product, if present.
func CartRemoveItem(sess *session.Session, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if sess == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "session unavailable"))
			return
		}

		productID, err := validators.PathString(r, "productId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		sess.Apply(cart.RemoveItem{ProductID: productID})
		responses.WriteSuccess(w, newCartResponse(sess))
	}
}

// CartClear empties the cart.
func CartClear(sess *session.Session, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if sess == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "session unavailable"))
			return
		}

		sess.Apply(cart.Clear{})
		responses.WriteSuccess(w, newCartResponse(sess))
	}
}

type addItemRequest struct {
	ID        string          `json:"id" validate:"required"`
	Title     string          `json:"title" validate:"required"`
	Price     decimal.Decimal `json:"price"`
	Thumbnail string          `json:"thumbnail"`
	Category  string          `json:"category"`
}

type updateQuantityRequest struct {
	Delta int `json:"delta" validate:"required"`
}

type cartResponse struct {
	Items []cart.Line `json:"items"`
	Count int         `json:"count"`
	Total string      `json:"total"`
}

func newCartResponse(sess *session.Session) cartResponse {
	lines, count, total := sess.CartView()
	if lines == nil {
		lines = []cart.Line{}
	}
	return cartResponse{
		Items: lines,
		Count: count,
		Total: total.String(),
	}
}
