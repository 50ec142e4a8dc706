package controllers

import (
	"net/http"

	"github.com/adiwijaya/tokokita-backend/api/responses"
	"github.com/adiwijaya/tokokita-backend/api/validators"
	"github.com/adiwijaya/tokokita-backend/internal/catalog"
	pkgerrors "github.com/adiwijaya/tokokita-backend/pkg/errors"
	"github.com/adiwijaya/tokokita-backend/pkg/logger"
)

// ProductList returns catalog products, optionally narrowed by a title
// search and a category.
func ProductList(svc catalog.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "catalog service unavailable"))
			return
		}

		query := catalog.ListQuery{
			Search:   validators.QueryString(r, "search", ""),
			Category: validators.QueryString(r, "category", catalog.AllCategories),
		}

		products, err := svc.List(r.Context(), query)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		if products == nil {
			products = []catalog.Product{}
		}
		responses.WriteSuccess(w, products)
	}
}

// ProductCategories returns the distinct category names with the "All"
// sentinel first.
func ProductCategories(svc catalog.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "catalog service unavailable"))
			return
		}

		categories, err := svc.Categories(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, categories)
	}
}
