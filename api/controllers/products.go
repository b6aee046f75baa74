package controllers

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/angelmondragon/storefront-backend/api/responses"
	"github.com/angelmondragon/storefront-backend/api/validators"
	"github.com/angelmondragon/storefront-backend/internal/catalog"
	"github.com/angelmondragon/storefront-backend/internal/pricing"
	"github.com/angelmondragon/storefront-backend/internal/query"
	"github.com/angelmondragon/storefront-backend/internal/simulation"
	pkgerrors "github.com/angelmondragon/storefront-backend/pkg/errors"
	"github.com/angelmondragon/storefront-backend/pkg/logger"
	"github.com/angelmondragon/storefront-backend/pkg/pagination"
)

const maxQueryTextLen = 128

// ProductList runs the catalog query engine over the request filters and
// returns one page of the result.
func ProductList(cat *catalog.Catalog, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if cat == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "catalog unavailable"))
			return
		}

		spec, err := parseQuerySpec(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		limit, err := validators.ParseQueryInt(r, "limit", pagination.DefaultLimit, 1, pagination.MaxLimit)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		products := query.Run(cat.Products(), spec)
		start, end, next, err := pagination.Window(len(products), pagination.Params{
			Limit:  limit,
			Cursor: r.URL.Query().Get("cursor"),
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid cursor"))
			return
		}

		items := make([]productSummary, 0, end-start)
		for _, p := range products[start:end] {
			items = append(items, newProductSummary(p))
		}
		responses.WriteSuccess(w, productList{
			Items:      items,
			Total:      len(products),
			NextCursor: next,
			Categories: cat.Categories(),
		})
	}
}

func parseQuerySpec(r *http.Request) (query.Spec, error) {
	q := r.URL.Query()
	var spec query.Spec

	sortKey, err := query.ParseSortKey(q.Get("sort"))
	if err != nil {
		return spec, err
	}
	spec.Sort = sortKey

	spec.Filters.Category = validators.SanitizeString(q.Get("category"), maxQueryTextLen)
	spec.Filters.Text = validators.SanitizeString(q.Get("q"), maxQueryTextLen)

	if spec.Filters.MinPrice, err = validators.ParseQueryAmount(r, "minPrice"); err != nil {
		return spec, err
	}
	if spec.Filters.MaxPrice, err = validators.ParseQueryAmount(r, "maxPrice"); err != nil {
		return spec, err
	}
	if spec.Filters.SaleOnly, err = validators.ParseQueryBool(r, "sale"); err != nil {
		return spec, err
	}
	if spec.Filters.FastDelivery, err = validators.ParseQueryBool(r, "fastDelivery"); err != nil {
		return spec, err
	}
	if spec.Filters.MinRating, err = validators.ParseQueryFloat(r, "minRating", 0, 5); err != nil {
		return spec, err
	}
	return spec, nil
}

// ProductDetail returns the product page view and records the view in the
// visitor's history. A failed history write does not fail the request.
func ProductDetail(sessions SessionSource, opts PricingOptions, logg *logger.Logger) http.HandlerFunc {
	opts = opts.withDefaults()
	return func(w http.ResponseWriter, r *http.Request) {
		sess, err := visitorSession(r, sessions)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		productID := strings.TrimSpace(chi.URLParam(r, "productId"))
		product, ok := sess.Catalog().Find(productID)
		if !ok {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeNotFound, "product not found").
				WithDetails(map[string]string{"productId": productID}))
			return
		}

		if _, err := sess.RecordView(r.Context(), product.ID); err != nil && logg != nil {
			logg.Warn(logg.WithField(r.Context(), "product_id", product.ID), "recently viewed not recorded")
		}

		responses.WriteSuccess(w, productDetail{
			productSummary: newProductSummary(product),
			Facets:         simulation.FacetsFor(product.ID),
			EMIOptions:     pricing.EMIOptions(product.Price, opts.EMITenures),
			BankOffers:     pricing.ApplicableBankOffers(product.Price, opts.BankOffers),
			InCart:         sess.InCart(product.ID),
			InWishlist:     sess.InWishlist(product.ID),
			Alerts:         sess.AlertsForProduct(product.ID),
		})
	}
}
